package translator

import "errors"

// The translator panics with errors wrapping these values. Each one indicates
// a caller (or bookkeeping) bug: proceeding would silently corrupt the cached
// offsets.
var (
	ErrInvalidGroupPosition      = errors.New("group position out of range")
	ErrInvalidChildPosition      = errors.New("child position out of range")
	ErrInvalidChildCount         = errors.New("child count must be in the range [0, MaxChildCount]")
	ErrEmptySourceGroup          = errors.New("cannot move a child out of an empty group")
	ErrTooManyGroups             = errors.New("group count exceeds the addressable flat range")
	ErrTooManyRows               = errors.New("flat item count exceeds MaxFlatPosition")
	ErrInconsistentExpandedCount = errors.New("expanded group count does not match the expanded flags")
)
