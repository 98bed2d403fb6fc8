package version

import (
	"bytes"
	"strings"
	"testing"
)

func TestFprint(t *testing.T) {
	Version, Commit, BuildDate = "1.2.3", "abc123", "2024-01-01"

	var buf bytes.Buffer
	Fprint(&buf)

	out := buf.String()
	if !strings.Contains(out, "1.2.3 (commit abc123, built 2024-01-01)") {
		t.Errorf("unexpected version output: %q", out)
	}
	if !strings.HasSuffix(out, "\n") {
		t.Error("version output should end with a newline")
	}
}
