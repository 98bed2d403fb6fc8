package diag

import "errors"

var (
	ErrSerialOpenFailed  = errors.New("failed to open serial port")
	ErrDisplayOpenFailed = errors.New("failed to open display")
	ErrSinkWriteFailed   = errors.New("failed to write diagnostic")
	ErrSinkCloseFailed   = errors.New("failed to close diagnostic sink")
)
