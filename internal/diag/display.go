package diag

import (
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/larsks/display1306/v2/display"
	"github.com/larsks/display1306/v2/display/fakedriver"
)

// DefaultDisplayLines is how many of the most recent lines stay on screen.
const DefaultDisplayLines = 4

// displayWriter keeps the last few complete lines and redraws them on every
// write. A trailing partial line is held until its newline arrives.
type displayWriter struct {
	mutex   sync.Mutex
	display *display.Display
	max     int
	lines   []string
	partial string
}

// Display returns a sink that shows the most recent diagnostic lines on an
// SSD1306 OLED. The display must already be initialized.
func Display(d *display.Display) Sink {
	w := &displayWriter{display: d, max: DefaultDisplayLines}
	return Sink{
		Name:   "display",
		Writer: w,
		Closer: w,
	}
}

// OpenDisplay builds and initializes the I2C display, or an in-memory one
// when dryRun is set, and returns it as a sink.
func OpenDisplay(dryRun bool) (Sink, error) {
	var d *display.Display
	var err error

	if dryRun {
		d, err = display.NewDisplay().WithDriver(fakedriver.NewFakeSSD1306()).Build()
	} else {
		d, err = display.NewDisplay().Build()
	}
	if err != nil {
		return Sink{}, fmt.Errorf("%w: %v", ErrDisplayOpenFailed, err)
	}

	if err := d.Init(); err != nil {
		d.Close() //nolint:errcheck
		return Sink{}, fmt.Errorf("%w: %v", ErrDisplayOpenFailed, err)
	}
	return Display(d), nil
}

func (w *displayWriter) Write(p []byte) (int, error) {
	w.mutex.Lock()
	defer w.mutex.Unlock()

	text := w.partial + string(p)
	parts := strings.Split(text, "\n")
	w.partial = parts[len(parts)-1]
	complete := parts[:len(parts)-1]
	if len(complete) == 0 {
		return len(p), nil
	}

	for _, line := range complete {
		w.lines = append(w.lines, strings.TrimRight(line, "\r"))
	}
	if extra := len(w.lines) - w.max; extra > 0 {
		w.lines = w.lines[extra:]
	}

	if err := w.redraw(); err != nil {
		return 0, err
	}
	return len(p), nil
}

func (w *displayWriter) redraw() error {
	if err := w.display.ClearScreen(); err != nil {
		return err
	}
	if err := w.display.PrintLines(0, w.lines); err != nil {
		return err
	}
	return w.display.Update()
}

// Close blanks the screen and releases the display.
func (w *displayWriter) Close() error {
	w.mutex.Lock()
	defer w.mutex.Unlock()
	return errors.Join(w.display.ClearScreen(), w.display.Close())
}

// shown returns the lines currently on screen.
func (w *displayWriter) shown() []string {
	w.mutex.Lock()
	defer w.mutex.Unlock()
	out := make([]string, len(w.lines))
	copy(out, w.lines)
	return out
}
