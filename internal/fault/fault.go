package fault

import (
	"fmt"
	"strings"

	"github.com/larsks/faultblink/internal/pattern"
)

// Kind classifies a terminal fault. The numeric values are part of the
// external interface: codes arriving as plain integers map onto them.
type Kind int

const (
	MemoryLoadFailed Kind = iota
	ConnectionRefused
	DeadBeef
	Unknown
)

// UntaggedPattern is blinked for any code outside the known kinds.
const UntaggedPattern pattern.Pattern = "10100000"

var patterns = map[Kind]pattern.Pattern{
	MemoryLoadFailed:  "1100",
	ConnectionRefused: "1010",
	DeadBeef:          "0001",
	Unknown:           "00010101",
}

var names = map[Kind]string{
	MemoryLoadFailed:  "mem-load-failed",
	ConnectionRefused: "connection-refused",
	DeadBeef:          "deadbeef",
	Unknown:           "unknown",
}

// Kinds returns every known kind in numeric order.
func Kinds() []Kind {
	return []Kind{MemoryLoadFailed, ConnectionRefused, DeadBeef, Unknown}
}

// Pattern returns the blink pattern for k. For a value outside the known
// kinds it returns UntaggedPattern and false.
func (k Kind) Pattern() (pattern.Pattern, bool) {
	p, ok := patterns[k]
	if !ok {
		return UntaggedPattern, false
	}
	return p, true
}

// IsKnown reports whether k is one of the enumerated kinds.
func (k Kind) IsKnown() bool {
	_, ok := patterns[k]
	return ok
}

func (k Kind) String() string {
	if name, ok := names[k]; ok {
		return name
	}
	return fmt.Sprintf("kind(%d)", int(k))
}

// ParseKind converts a CLI name such as "deadbeef" into a Kind.
func ParseKind(name string) (Kind, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	for k, n := range names {
		if n == name {
			return k, nil
		}
	}
	return 0, fmt.Errorf("%w: %s", ErrUnknownKind, name)
}
