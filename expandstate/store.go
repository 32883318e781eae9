package expandstate

import (
	"context"

	"github.com/google/uuid"
)

// Store persists the expanded set of lists, keyed by list id.
type Store interface {
	// Put saves s, replacing any state stored for s.ListID.
	Put(ctx context.Context, s State) error
	// Get returns ErrStateNotFound if nothing is stored for listID.
	Get(ctx context.Context, listID uuid.UUID) (State, error)
	// Delete removes the state for listID. Deleting absent state is not an
	// error.
	Delete(ctx context.Context, listID uuid.UUID) error
}
