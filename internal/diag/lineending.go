package diag

import (
	"bytes"
	"io"
)

// lineEndingWriter translates "\n" into "\r\n" for serial terminals.
type lineEndingWriter struct {
	w io.Writer
}

func (l *lineEndingWriter) Write(p []byte) (int, error) {
	out := bytes.ReplaceAll(p, []byte("\r\n"), []byte("\n"))
	out = bytes.ReplaceAll(out, []byte("\n"), []byte("\r\n"))
	if _, err := l.w.Write(out); err != nil {
		return 0, err
	}
	return len(p), nil
}
