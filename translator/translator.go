package translator

import (
	"fmt"
)

const (
	// AllocateUnit is the block size, in groups, by which storage grows.
	AllocateUnit = 256

	// NoFlatPosition is returned when a hierarchical position has no flat
	// position in the current structure.
	NoFlatPosition = -1

	noGroup = -1
)

// Group describes one group as supplied by the caller at Build or insert
// time.
type Group struct {
	// ID is the caller's stable identifier for the group. Only its low 32
	// bits are retained, for matching groups across a rebuild.
	ID         int64
	ChildCount int
}

// Translator maps between flat list positions and (group, child) positions
// for a two level list where each group can be expanded or collapsed.
//
// Flat offsets of groups are cached. The cache is valid for groups
// [0, frontier]; anything beyond the frontier is recomputed on demand by
// Resolve and ResolveFlat, which push the frontier forward as they go.
// Mutations only ever pull the frontier back to just before the first group
// whose offset they could have changed.
//
// The flat list is limited to MaxFlatPosition rows, visible children
// included. Operations that would grow it beyond that panic with
// ErrTooManyRows.
//
// The translator is not go routine safe. It is intended to be driven from
// the single goroutine that owns the list.
type Translator struct {
	info []groupInfo
	ids  []uint32

	groupCount         int
	expandedGroupCount int
	expandedChildCount int

	// frontier is the last group whose cached offset is known to be correct,
	// or noGroup.
	frontier int
}

// New returns a translator built from groups. All groups start collapsed.
func New(groups []Group) *Translator {
	t := &Translator{frontier: noGroup}
	t.Build(groups)
	return t
}

// Build discards the current structure, including the expanded flags, and
// rebuilds from groups. Storage is reused when it is large enough. Callers
// that want to keep the expanded set across a rebuild take a
// SnapshotExpandedIDs first and apply it with RestoreExpanded afterwards.
func (t *Translator) Build(groups []Group) {
	n := len(groups)
	if n > MaxFlatPosition {
		panic(fmt.Errorf("%w: Build(len(groups) = %d)", ErrTooManyGroups, n))
	}
	for i, g := range groups {
		checkChildCount("Build", i, g.ChildCount)
	}

	t.ensureCapacity(n, false)

	for i, g := range groups {
		// every group is collapsed, so each group's offset is its own index
		t.info[i] = newGroupInfo(i, g.ChildCount)
		t.ids[i] = uint32(g.ID)
	}

	t.groupCount = n
	t.expandedGroupCount = 0
	t.expandedChildCount = 0
	t.frontier = n - 1
}

// FlatItemCount returns the number of rows in the flat list.
func (t *Translator) FlatItemCount() int {
	return t.groupCount + t.expandedChildCount
}

// GroupCount returns the number of groups, expanded or not.
func (t *Translator) GroupCount() int { return t.groupCount }

// ExpandedGroupCount returns the number of expanded groups.
func (t *Translator) ExpandedGroupCount() int { return t.expandedGroupCount }

// IsExpanded reports whether the children of group are visible.
func (t *Translator) IsExpanded(group int) bool {
	t.checkGroup("IsExpanded", group)
	return t.info[group].expanded()
}

// ChildCount returns the number of children of group, visible or not.
func (t *Translator) ChildCount(group int) int {
	t.checkGroup("ChildCount", group)
	return t.info[group].childCount()
}

// VisibleChildCount returns the child count of an expanded group, and 0 for
// a collapsed one.
func (t *Translator) VisibleChildCount(group int) int {
	t.checkGroup("VisibleChildCount", group)
	return t.info[group].visibleChildCount()
}

// GroupID returns the retained (low 32 bit) identifier of the group.
func (t *Translator) GroupID(group int) uint32 {
	t.checkGroup("GroupID", group)
	return t.ids[group]
}

// ensureCapacity grows the backing arrays so they can hold size groups. The
// allocation is rounded up to whole AllocateUnit blocks with at least one
// spare block, so a run of single group inserts reallocates once per block.
func (t *Translator) ensureCapacity(size int, preserve bool) {
	if len(t.info) >= size && len(t.ids) >= size {
		return
	}
	allocSize := (size + 2*AllocateUnit - 1) &^ (AllocateUnit - 1)

	info := make([]groupInfo, allocSize)
	ids := make([]uint32, allocSize)
	if preserve {
		copy(info, t.info[:t.groupCount])
		copy(ids, t.ids[:t.groupCount])
	}
	t.info = info
	t.ids = ids
}

// invalidateFrom records that offsets of groups >= group may have changed.
func (t *Translator) invalidateFrom(group int) {
	if group <= 0 || t.groupCount == 0 {
		t.frontier = noGroup
		return
	}
	t.frontier = min(t.frontier, group-1)
}

func (t *Translator) checkGroup(op string, group int) {
	if group < 0 || group >= t.groupCount {
		panic(fmt.Errorf("%w: %s(group = %d), group count = %d",
			ErrInvalidGroupPosition, op, group, t.groupCount))
	}
}

// checkRowsAdded panics unless the flat list can grow by added rows with
// every offset still fitting the packed offset field.
func (t *Translator) checkRowsAdded(op string, group int, added int) {
	if t.FlatItemCount()+added > MaxFlatPosition {
		panic(fmt.Errorf("%w: %s(group = %d) adds %d rows to %d",
			ErrTooManyRows, op, group, added, t.FlatItemCount()))
	}
}

func checkChildCount(op string, group int, n int) {
	if n < 0 || n > MaxChildCount {
		panic(fmt.Errorf("%w: %s(group = %d, child count = %d)", ErrInvalidChildCount, op, group, n))
	}
}
