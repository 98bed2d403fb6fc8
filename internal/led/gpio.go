package led

import (
	"fmt"
	"log"

	"periph.io/x/conn/v3/gpio"
	"periph.io/x/conn/v3/gpio/gpioreg"
	"periph.io/x/host/v3"
)

// GPIO drives an LED through a periph.io pin.
type GPIO struct {
	pin      gpio.PinIO
	polarity Polarity
}

// NewGPIO looks up the pin described by pinSpec in the periph.io registry.
func NewGPIO(pinSpec string) (*GPIO, error) {
	spec, err := ParsePin(pinSpec)
	if err != nil {
		return nil, err
	}

	if _, err := host.Init(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPeriphInitFailed, err)
	}

	pin := gpioreg.ByName(spec.Name())
	if pin == nil {
		return nil, fmt.Errorf("%w %s", ErrPinNotFound, spec.Name())
	}

	return newGPIOFromPin(pin, spec.Polarity), nil
}

func newGPIOFromPin(pin gpio.PinIO, polarity Polarity) *GPIO {
	return &GPIO{pin: pin, polarity: polarity}
}

// Init configures the pin as an output in the off state.
func (g *GPIO) Init() error {
	log.Printf("initializing gpio led %s", g)
	if err := g.pin.Out(g.offLevel()); err != nil {
		return fmt.Errorf("failed to set pin %s to output mode: %w", g, err)
	}
	return nil
}

// Close leaves the LED off.
func (g *GPIO) Close() error {
	log.Printf("closing gpio led %s", g)
	if err := g.pin.Out(g.offLevel()); err != nil {
		log.Printf("failed to reset pin %s to off state: %s", g, err)
	}
	return nil
}

func (g *GPIO) TurnOn() error {
	if err := g.pin.Out(g.onLevel()); err != nil {
		return fmt.Errorf("%w %s: %v", ErrTurnOn, g, err)
	}
	return nil
}

func (g *GPIO) TurnOff() error {
	if err := g.pin.Out(g.offLevel()); err != nil {
		return fmt.Errorf("%w %s: %v", ErrTurnOff, g, err)
	}
	return nil
}

func (g *GPIO) GetState() (bool, error) {
	return g.pin.Read() == g.onLevel(), nil
}

func (g *GPIO) String() string {
	return g.pin.Name()
}

func (g *GPIO) onLevel() gpio.Level {
	return gpio.Level(g.polarity.onValue() == 1)
}

func (g *GPIO) offLevel() gpio.Level {
	return gpio.Level(g.polarity.offValue() == 1)
}
