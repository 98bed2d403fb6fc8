package diag

import (
	"fmt"

	"go.bug.st/serial"
)

// DefaultBaudRate matches the status console baud rate of the boards we
// talk to.
const DefaultBaudRate = 9600

// SerialMode returns an 8N1 mode at baud.
func SerialMode(baud int) *serial.Mode {
	if baud <= 0 {
		baud = DefaultBaudRate
	}
	return &serial.Mode{
		BaudRate: baud,
		Parity:   serial.NoParity,
		DataBits: 8,
		StopBits: serial.OneStopBit,
	}
}

// OpenSerial opens path as a diagnostic sink.
func OpenSerial(path string, baud int) (Sink, error) {
	port, err := serial.Open(path, SerialMode(baud))
	if err != nil {
		return Sink{}, fmt.Errorf("%w %s: %v", ErrSerialOpenFailed, path, err)
	}
	return Sink{
		Name:   "serial:" + path,
		Writer: &lineEndingWriter{w: port},
		Closer: port,
	}, nil
}
