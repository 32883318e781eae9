package expandlist

import "errors"

var (
	ErrInvalidFlatPosition = errors.New("flat position is not a visible row")
	ErrIllegalViewKind     = errors.New("view kinds must not set the group flag bit")
	ErrNoProvider          = errors.New("a provider is required")
)
