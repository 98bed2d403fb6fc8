package led

import (
	"fmt"
	"strconv"
	"strings"
)

// DefaultPin is the status LED line used when no pin is configured.
const DefaultPin = "GPIO13"

// Polarity represents the electrical polarity of an output pin
type Polarity int

const (
	ActiveHigh Polarity = iota
	ActiveLow
)

// PinSpec represents a parsed pin specification
type PinSpec struct {
	// LineNum is the GPIO line number (e.g., 13 for GPIO13)
	LineNum int

	// Polarity indicates if the LED lights when the pin is high or low
	Polarity Polarity
}

// ParsePin parses a pin specification string.
// Format: "pin[:active-high|active-low]"
// Examples: "GPIO13", "13:active-low"
func ParsePin(pinSpec string) (*PinSpec, error) {
	parts := strings.Split(pinSpec, ":")

	lineNum, err := ParsePinNumber(parts[0])
	if err != nil {
		return nil, err
	}

	polarity := ActiveHigh
	for _, part := range parts[1:] {
		switch param := strings.ToLower(strings.TrimSpace(part)); param {
		case "active-high", "activehigh":
			polarity = ActiveHigh
		case "active-low", "activelow":
			polarity = ActiveLow
		default:
			return nil, fmt.Errorf("%w: unknown parameter %q in %s", ErrInvalidPinSpec, param, pinSpec)
		}
	}

	return &PinSpec{
		LineNum:  lineNum,
		Polarity: polarity,
	}, nil
}

// ParsePinNumber accepts both "GPIO<number>" and "<number>".
func ParsePinNumber(pinName string) (int, error) {
	pinName = strings.TrimSpace(pinName)
	numStr := pinName
	if strings.HasPrefix(strings.ToUpper(pinName), "GPIO") {
		numStr = pinName[len("GPIO"):]
	}

	lineNum, err := strconv.Atoi(numStr)
	if err != nil || lineNum < 0 {
		return 0, fmt.Errorf("%w: %q (expected GPIO<number> or <number>)", ErrInvalidPinSpec, pinName)
	}
	return lineNum, nil
}

// Name returns the periph.io register name for the pin.
func (ps *PinSpec) Name() string {
	return fmt.Sprintf("GPIO%d", ps.LineNum)
}

func (ps *PinSpec) String() string {
	return fmt.Sprintf("%s:%s", ps.Name(), ps.Polarity)
}

func (p Polarity) String() string {
	switch p {
	case ActiveHigh:
		return "active-high"
	case ActiveLow:
		return "active-low"
	default:
		return "unknown"
	}
}

// onValue and offValue give the line value for each logical state.
func (p Polarity) onValue() int {
	if p == ActiveLow {
		return 0
	}
	return 1
}

func (p Polarity) offValue() int {
	return 1 - p.onValue()
}
