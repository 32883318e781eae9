package translator

import (
	"fmt"
	"slices"
)

// SnapshotExpandedIDs returns the ids of the expanded groups, sorted
// ascending. This, and not the position cache, is the state worth
// persisting: it survives reordering and rebuilds because it is keyed by
// identity.
func (t *Translator) SnapshotExpandedIDs() []uint32 {
	expanded := make([]uint32, 0, t.expandedGroupCount)
	for i := 0; i < t.groupCount; i++ {
		if t.info[i].expanded() {
			expanded = append(expanded, t.ids[i])
		}
	}

	if len(expanded) != t.expandedGroupCount {
		panic(fmt.Errorf("%w: found %d, tracking %d",
			ErrInconsistentExpandedCount, len(expanded), t.expandedGroupCount))
	}

	slices.Sort(expanded)
	return expanded
}

type restoreOptions struct {
	expandHook       func(group int) bool
	collapseHook     func(group int) bool
	expandListener   func(group int)
	collapseListener func(group int)
}

type RestoreOption func(*restoreOptions)

// WithExpandHook gates each expansion made by RestoreExpanded. Returning
// false leaves the group as it is.
func WithExpandHook(hook func(group int) bool) RestoreOption {
	return func(o *restoreOptions) { o.expandHook = hook }
}

// WithCollapseHook gates each collapse made by RestoreExpanded.
func WithCollapseHook(hook func(group int) bool) RestoreOption {
	return func(o *restoreOptions) { o.collapseHook = hook }
}

// WithExpandListener is called for every group RestoreExpanded actually
// expanded.
func WithExpandListener(listener func(group int)) RestoreOption {
	return func(o *restoreOptions) { o.expandListener = listener }
}

// WithCollapseListener is called for every group RestoreExpanded actually
// collapsed.
func WithCollapseListener(listener func(group int)) RestoreOption {
	return func(o *restoreOptions) { o.collapseListener = listener }
}

// RestoreExpanded applies a saved expanded set, as returned by
// SnapshotExpandedIDs, to the current groups. Groups are matched by id, not
// position, so the structure may have been rebuilt, reordered, grown or
// shrunk since the snapshot was taken. Every group whose id is in saved is
// expanded and every other group is collapsed, subject to the hooks.
//
// Nothing happens if saved is empty or there are no groups.
func (t *Translator) RestoreExpanded(saved []uint32, opts ...RestoreOption) {
	if len(saved) == 0 || t.groupCount == 0 {
		return
	}

	var o restoreOptions
	for _, opt := range opts {
		opt(&o)
	}

	if !slices.IsSorted(saved) {
		saved = slices.Clone(saved)
		slices.Sort(saved)
	}

	// id in the upper half, position in the lower half, so sorting orders by
	// id and then by position.
	idAndPos := make([]uint64, t.groupCount)
	for i := 0; i < t.groupCount; i++ {
		idAndPos[i] = uint64(t.ids[i])<<32 | uint64(i)
	}
	slices.Sort(idAndPos)

	j := 0
	for _, v := range idAndPos {
		id := uint32(v >> 32)
		group := int(uint32(v))

		for j < len(saved) && saved[j] < id {
			j++
		}

		if j < len(saved) && saved[j] == id {
			if o.expandHook != nil && !o.expandHook(group) {
				continue
			}
			if t.ExpandGroup(group) && o.expandListener != nil {
				o.expandListener(group)
			}
			continue
		}

		if o.collapseHook != nil && !o.collapseHook(group) {
			continue
		}
		if t.CollapseGroup(group) && o.collapseListener != nil {
			o.collapseListener(group)
		}
	}
}
