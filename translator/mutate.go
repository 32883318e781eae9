package translator

import (
	"fmt"
)

// ExpandGroup makes the children of group visible. It returns false if the
// group was already expanded. On true, ChildCount(group) rows have appeared
// immediately after the group's own row.
func (t *Translator) ExpandGroup(group int) bool {
	t.checkGroup("ExpandGroup", group)

	gi := t.info[group]
	if gi.expanded() {
		return false
	}
	t.checkRowsAdded("ExpandGroup", group, gi.childCount())

	t.info[group] = gi.withExpanded(true)
	t.expandedGroupCount++
	t.expandedChildCount += gi.childCount()

	// the group's own row does not move
	t.invalidateFrom(group + 1)
	return true
}

// CollapseGroup hides the children of group. It returns false if the group
// was already collapsed.
func (t *Translator) CollapseGroup(group int) bool {
	t.checkGroup("CollapseGroup", group)

	gi := t.info[group]
	if !gi.expanded() {
		return false
	}

	t.info[group] = gi.withExpanded(false)
	t.expandedGroupCount--
	t.expandedChildCount -= gi.childCount()

	t.invalidateFrom(group + 1)
	return true
}

// InsertGroups inserts groups, collapsed, so that the first of them becomes
// group position at. It returns the number of groups inserted.
func (t *Translator) InsertGroups(at int, groups []Group) int {
	n := len(groups)
	if n == 0 {
		return 0
	}
	if at < 0 || at > t.groupCount {
		panic(fmt.Errorf("%w: InsertGroups(at = %d, count = %d), group count = %d",
			ErrInvalidGroupPosition, at, n, t.groupCount))
	}
	if t.groupCount+n > MaxFlatPosition {
		panic(fmt.Errorf("%w: InsertGroups(at = %d, count = %d)", ErrTooManyGroups, at, n))
	}
	t.checkRowsAdded("InsertGroups", at, n)
	for i, g := range groups {
		checkChildCount("InsertGroups", at+i, g.ChildCount)
	}

	t.ensureCapacity(t.groupCount+n, true)

	copy(t.info[at+n:t.groupCount+n], t.info[at:t.groupCount])
	copy(t.ids[at+n:t.groupCount+n], t.ids[at:t.groupCount])

	for i, g := range groups {
		// the offset is a placeholder, it is beyond the frontier
		t.info[at+i] = newGroupInfo(at+i, g.ChildCount)
		t.ids[at+i] = uint32(g.ID)
	}
	t.groupCount += n

	t.invalidateFrom(at)
	return n
}

func (t *Translator) InsertGroup(at int, group Group) int {
	return t.InsertGroups(at, []Group{group})
}

// RemoveGroups removes count groups starting at group position at. It
// returns the number of flat rows removed: the group rows themselves plus
// the children of any that were expanded.
func (t *Translator) RemoveGroups(at int, count int) int {
	if count <= 0 {
		return 0
	}
	if at < 0 || at+count > t.groupCount {
		panic(fmt.Errorf("%w: RemoveGroups(at = %d, count = %d), group count = %d",
			ErrInvalidGroupPosition, at, count, t.groupCount))
	}

	removedRows := count
	for i := at; i < at+count; i++ {
		gi := t.info[i]
		if gi.expanded() {
			removedRows += gi.childCount()
			t.expandedChildCount -= gi.childCount()
			t.expandedGroupCount--
		}
	}

	copy(t.info[at:], t.info[at+count:t.groupCount])
	copy(t.ids[at:], t.ids[at+count:t.groupCount])
	t.groupCount -= count

	t.invalidateFrom(at)
	return removedRows
}

func (t *Translator) RemoveGroup(at int) int {
	return t.RemoveGroups(at, 1)
}

// MoveGroup moves the group at from so that it ends up at position to,
// shifting the groups in between by one. Expanded state and children move
// with the group.
func (t *Translator) MoveGroup(from, to int) {
	t.checkGroup("MoveGroup", from)
	t.checkGroup("MoveGroup", to)
	if from == to {
		return
	}

	gi := t.info[from]
	id := t.ids[from]

	if to < from {
		copy(t.info[to+1:from+1], t.info[to:from])
		copy(t.ids[to+1:from+1], t.ids[to:from])
	} else {
		copy(t.info[from:to], t.info[from+1:to+1])
		copy(t.ids[from:to], t.ids[from+1:to+1])
	}

	t.info[to] = gi
	t.ids[to] = id

	t.invalidateFrom(min(from, to))
}

// InsertChildren records that count children were inserted into group
// starting at child position at.
func (t *Translator) InsertChildren(group, at, count int) {
	t.checkGroup("InsertChildren", group)

	gi := t.info[group]
	cur := gi.childCount()
	if at < 0 || at > cur || count < 0 {
		panic(fmt.Errorf("%w: InsertChildren(group = %d, at = %d, count = %d), child count = %d",
			ErrInvalidChildPosition, group, at, count, cur))
	}
	checkChildCount("InsertChildren", group, cur+count)

	if gi.expanded() {
		t.checkRowsAdded("InsertChildren", group, count)
		t.expandedChildCount += count
	}
	t.info[group] = gi.withChildCount(cur + count)

	t.invalidateFrom(group)
}

func (t *Translator) InsertChild(group, at int) {
	t.InsertChildren(group, at, 1)
}

// RemoveChildren records that count children, starting at child position
// at, were removed from group.
func (t *Translator) RemoveChildren(group, at, count int) {
	t.checkGroup("RemoveChildren", group)

	gi := t.info[group]
	cur := gi.childCount()
	if at < 0 || count < 0 || at+count > cur {
		panic(fmt.Errorf("%w: RemoveChildren(group = %d, at = %d, count = %d), child count = %d",
			ErrInvalidChildPosition, group, at, count, cur))
	}

	if gi.expanded() {
		t.expandedChildCount -= count
	}
	t.info[group] = gi.withChildCount(cur - count)

	t.invalidateFrom(group)
}

func (t *Translator) RemoveChild(group, at int) {
	t.RemoveChildren(group, at, 1)
}

// MoveChild records that one child moved from (fromGroup, fromChild) to
// (toGroup, toChild). A move within a single group changes no child count
// and so no offsets; the order of children is the caller's concern and the
// call is a no-op.
func (t *Translator) MoveChild(fromGroup, fromChild, toGroup, toChild int) {
	t.checkGroup("MoveChild", fromGroup)
	t.checkGroup("MoveChild", toGroup)
	if fromGroup == toGroup {
		return
	}

	from := t.info[fromGroup]
	to := t.info[toGroup]
	fromCount := from.childCount()
	toCount := to.childCount()

	if fromCount == 0 {
		panic(fmt.Errorf("%w: MoveChild(fromGroup = %d, fromChild = %d, toGroup = %d, toChild = %d)",
			ErrEmptySourceGroup, fromGroup, fromChild, toGroup, toChild))
	}
	if fromChild < 0 || fromChild >= fromCount || toChild < 0 || toChild > toCount {
		panic(fmt.Errorf("%w: MoveChild(fromGroup = %d, fromChild = %d, toGroup = %d, toChild = %d)",
			ErrInvalidChildPosition, fromGroup, fromChild, toGroup, toChild))
	}
	checkChildCount("MoveChild", toGroup, toCount+1)
	if to.expanded() && !from.expanded() {
		t.checkRowsAdded("MoveChild", toGroup, 1)
	}

	t.info[fromGroup] = from.withChildCount(fromCount - 1)
	t.info[toGroup] = to.withChildCount(toCount + 1)

	if from.expanded() {
		t.expandedChildCount--
	}
	if to.expanded() {
		t.expandedChildCount++
	}

	t.invalidateFrom(min(fromGroup, toGroup))
}
