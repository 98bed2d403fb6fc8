package led

import "errors"

// Hardware initialization errors
var (
	ErrPeriphInitFailed   = errors.New("failed to initialize periph.io")
	ErrPinNotFound        = errors.New("failed to find pin")
	ErrGPIOChipOpenFailed = errors.New("failed to open GPIO chip")
	ErrLineRequestFailed  = errors.New("failed to request GPIO line")
)

// Pin specification errors
var (
	ErrInvalidPinSpec = errors.New("invalid pin specification")
)

// LED operation errors
var (
	ErrTurnOn   = errors.New("failed to turn on led")
	ErrTurnOff  = errors.New("failed to turn off led")
	ErrGetState = errors.New("failed to get led state")
)
