package pattern

// Pattern is a sequence of '0' and '1' characters describing a repeating
// on/off blink sequence. Each character is held for one blink period.
type Pattern string

const (
	On  = '1'
	Off = '0'
)

// Parse validates s and returns it as a Pattern.
func Parse(s string) (Pattern, error) {
	p := Pattern(s)
	if err := p.Validate(); err != nil {
		return "", err
	}
	return p, nil
}

// Validate returns an *InvalidCharError for the first character that is not
// '0' or '1'. The empty pattern is valid.
func (p Pattern) Validate() error {
	for i, c := range p {
		if !IsValidChar(c) {
			return &InvalidCharError{Index: i, Char: c}
		}
	}
	return nil
}

// IsValidChar reports whether c may appear in a pattern.
func IsValidChar(c rune) bool {
	return c == On || c == Off
}

// Len returns the number of steps in one repetition of the pattern.
func (p Pattern) Len() int {
	return len(p)
}

func (p Pattern) String() string {
	return string(p)
}
