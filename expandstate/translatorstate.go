package expandstate

import (
	"context"
	"errors"
	"time"

	"github.com/forestrie/go-expandlist/translator"
	"github.com/google/uuid"
)

// SaveTranslator stores the expanded set of tr under listID.
func SaveTranslator(ctx context.Context, store Store, listID uuid.UUID, tr *translator.Translator) error {
	return store.Put(ctx, State{
		ListID:   listID,
		Version:  StateVersion,
		Expanded: tr.SnapshotExpandedIDs(),
		SavedAt:  time.Now().UnixMilli(),
	})
}

// RestoreTranslator applies the expanded set stored under listID to tr. It
// reports false, without error, when nothing is stored.
func RestoreTranslator(
	ctx context.Context, store Store, listID uuid.UUID, tr *translator.Translator,
	opts ...translator.RestoreOption) (bool, error) {

	st, err := store.Get(ctx, listID)
	if errors.Is(err, ErrStateNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	tr.RestoreExpanded(st.Expanded, opts...)
	return true, nil
}
