package blink

import "errors"

// Blink configuration errors
var (
	ErrOutputRequired = errors.New("output is required")
	ErrInvalidPeriod  = errors.New("period must be at least 1ms")
)

// Blink operation errors
var (
	ErrOutputFailed   = errors.New("failed to drive output")
	ErrAlreadyRunning = errors.New("blink is already running")
	ErrNotRunning     = errors.New("blink is not running")
)
