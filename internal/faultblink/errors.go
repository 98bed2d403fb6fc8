package faultblink

import "errors"

// Configuration errors
var (
	ErrNoFault         = errors.New("one of --kind, --code or --pattern is required")
	ErrConflictingMode = errors.New("--kind, --code and --pattern are mutually exclusive")
	ErrInvalidCode     = errors.New("code must be an integer")
	ErrWrongConfigType = errors.New("unexpected configuration type")
)
