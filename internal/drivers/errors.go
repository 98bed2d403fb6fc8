package drivers

import "errors"

// Registry errors
var (
	ErrDriverExists  = errors.New("driver already registered")
	ErrUnknownDriver = errors.New("unknown driver")
)

// Driver configuration errors
var (
	ErrInvalidConfig = errors.New("invalid driver configuration")
)
