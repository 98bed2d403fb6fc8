package pattern

import (
	"errors"
	"fmt"
)

// Pattern validation errors
var (
	ErrInvalidPattern = errors.New("invalid pattern string")
)

// InvalidCharError reports the first character in a pattern that is
// neither '0' nor '1'.
type InvalidCharError struct {
	Index int
	Char  rune
}

func (e *InvalidCharError) Error() string {
	return fmt.Sprintf("%s: invalid character %q at index %d", ErrInvalidPattern, e.Char, e.Index)
}

func (e *InvalidCharError) Unwrap() error {
	return ErrInvalidPattern
}
