package led

import (
	"fmt"
	"log"

	"github.com/warthog618/go-gpiocdev"
)

// DefaultChip is the GPIO character device used on a Raspberry Pi.
const DefaultChip = "gpiochip0"

// CdevLine drives an LED through a GPIO character device line.
type CdevLine struct {
	chip     *gpiocdev.Chip
	line     *gpiocdev.Line
	lineNum  int
	polarity Polarity
}

// NewCdevLine opens chipName and requests the line described by pinSpec as
// an output, initially off.
func NewCdevLine(chipName, pinSpec string) (*CdevLine, error) {
	spec, err := ParsePin(pinSpec)
	if err != nil {
		return nil, err
	}

	if chipName == "" {
		chipName = DefaultChip
	}

	chip, err := gpiocdev.NewChip(chipName)
	if err != nil {
		return nil, fmt.Errorf("%w %s: %v", ErrGPIOChipOpenFailed, chipName, err)
	}

	line, err := chip.RequestLine(spec.LineNum, gpiocdev.AsOutput(spec.Polarity.offValue()))
	if err != nil {
		chip.Close() //nolint:errcheck
		return nil, fmt.Errorf("%w: line %d: %v", ErrLineRequestFailed, spec.LineNum, err)
	}

	return &CdevLine{
		chip:     chip,
		line:     line,
		lineNum:  spec.LineNum,
		polarity: spec.Polarity,
	}, nil
}

func (c *CdevLine) Init() error {
	log.Printf("initializing gpiocdev led %s", c)
	return c.TurnOff()
}

// Close turns the LED off and releases the line and chip.
func (c *CdevLine) Close() error {
	log.Printf("closing gpiocdev led %s", c)
	if err := c.TurnOff(); err != nil {
		log.Printf("failed to reset line to off state: %s", err)
	}
	if err := c.line.Close(); err != nil {
		log.Printf("failed to close GPIO line %d: %s", c.lineNum, err)
	}
	if err := c.chip.Close(); err != nil {
		log.Printf("failed to close GPIO chip: %s", err)
	}
	return nil
}

func (c *CdevLine) TurnOn() error {
	if err := c.line.SetValue(c.polarity.onValue()); err != nil {
		return fmt.Errorf("%w %s: %v", ErrTurnOn, c, err)
	}
	return nil
}

func (c *CdevLine) TurnOff() error {
	if err := c.line.SetValue(c.polarity.offValue()); err != nil {
		return fmt.Errorf("%w %s: %v", ErrTurnOff, c, err)
	}
	return nil
}

// GetState reads the actual line value back from the kernel.
func (c *CdevLine) GetState() (bool, error) {
	v, err := c.line.Value()
	if err != nil {
		return false, fmt.Errorf("%w %s: %v", ErrGetState, c, err)
	}
	return v == c.polarity.onValue(), nil
}

func (c *CdevLine) String() string {
	return fmt.Sprintf("GPIO%d", c.lineNum)
}
