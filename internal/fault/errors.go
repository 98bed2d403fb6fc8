package fault

import "errors"

var (
	ErrUnknownKind = errors.New("unknown fault kind")
)
