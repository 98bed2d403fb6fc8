// Package diag carries human-readable diagnostic lines to one or more sinks:
// the console, a serial port, an OLED display, or an MQTT topic.
package diag

import (
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"strings"
	"sync"
)

// Sink is a named destination for diagnostic lines. Closer may be nil.
type Sink struct {
	Name   string
	Writer io.Writer
	Closer io.Closer
}

// Stream fans every line out to all of its sinks.
type Stream struct {
	mutex sync.Mutex
	sinks []Sink
}

// NewStream creates a Stream writing to sinks.
func NewStream(sinks ...Sink) *Stream {
	return &Stream{sinks: sinks}
}

// Console returns a sink for stderr.
func Console() Sink {
	return Sink{Name: "console", Writer: os.Stderr}
}

// Add appends a sink.
func (s *Stream) Add(sink Sink) {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	s.sinks = append(s.sinks, sink)
}

// Sinks returns the names of the configured sinks.
func (s *Stream) Sinks() []string {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	names := make([]string, len(s.sinks))
	for i, sink := range s.sinks {
		names[i] = sink.Name
	}
	return names
}

// Write sends p to every sink. A failing sink does not stop delivery to the
// others; all failures are returned joined.
func (s *Stream) Write(p []byte) (int, error) {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	var errs []error
	for _, sink := range s.sinks {
		if _, err := sink.Writer.Write(p); err != nil {
			log.Printf("diagnostic sink %s failed: %v", sink.Name, err)
			errs = append(errs, fmt.Errorf("%w to %s: %v", ErrSinkWriteFailed, sink.Name, err))
		}
	}
	return len(p), errors.Join(errs...)
}

// Println writes msg as a single newline-terminated line.
func (s *Stream) Println(msg string) error {
	if !strings.HasSuffix(msg, "\n") {
		msg += "\n"
	}
	_, err := s.Write([]byte(msg))
	return err
}

// Printf formats a line and writes it with Println.
func (s *Stream) Printf(format string, args ...any) error {
	return s.Println(fmt.Sprintf(format, args...))
}

// Close closes every sink that has a Closer.
func (s *Stream) Close() error {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	var errs []error
	for _, sink := range s.sinks {
		if sink.Closer == nil {
			continue
		}
		if err := sink.Closer.Close(); err != nil {
			errs = append(errs, fmt.Errorf("%w %s: %v", ErrSinkCloseFailed, sink.Name, err))
		}
	}
	return errors.Join(errs...)
}
