package led

type (
	// LED is a single digital output driven high (on) or low (off).
	LED interface {
		TurnOn() error
		TurnOff() error
		GetState() (bool, error)
		String() string
	}

	// Device is an LED with a hardware lifecycle.
	Device interface {
		LED
		Init() error
		Close() error
	}
)
