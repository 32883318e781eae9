package expandstate

import "errors"

var (
	ErrStateNotFound    = errors.New("no expanded state is stored for the list")
	ErrStateConflict    = errors.New("the stored expanded state was changed by another writer")
	ErrStateUnsorted    = errors.New("expanded group ids must be sorted ascending")
	ErrStateVersion     = errors.New("unsupported expanded state version")
	ErrStateMalformed   = errors.New("expanded state data is not well formed")
	ErrListIDRequired   = errors.New("a list id is required")
	ErrStorePathMissing = errors.New("path is required for a persistent store")
)
