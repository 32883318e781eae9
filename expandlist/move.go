package expandlist

import (
	"fmt"

	"github.com/forestrie/go-expandlist/packedpos"
	"github.com/forestrie/go-expandlist/translator"
)

// MoveItem completes a drag of the row at fromFlat onto the row at toFlat.
// The provider's data is reordered through Mover and the positions follow.
//
// Dropping:
//   - a group onto a group, or onto a child of another group, moves the
//     group to that group's position;
//   - a child onto a child moves it next to the target child, after it when
//     dragging down into a different group;
//   - a child onto a group moves it to the end of the group above when
//     dragging up, or into the target group when dragging down: at the top
//     if the group is expanded, else at the end.
//
// It returns the flat position the row ended up at, or
// translator.NoFlatPosition if it landed in a collapsed group. The observer
// sees ItemMoved, or ItemRangeRemoved when the row became hidden. An
// expanded group takes its visible children along, which is reported as
// ItemRangeRemoved then ItemRangeInserted of all its rows. When the
// provider is not a Mover, or the drop changes nothing, fromFlat is
// returned.
func (m *Manager) MoveItem(fromFlat, toFlat int) int {
	mover, ok := m.provider.(Mover)
	if !ok || fromFlat == toFlat {
		return fromFlat
	}

	from := m.tr.Resolve(fromFlat)
	to := m.tr.Resolve(toFlat)
	if from.IsNone() || to.IsNone() {
		panic(fmt.Errorf("%w: MoveItem(%d, %d), item count = %d",
			ErrInvalidFlatPosition, fromFlat, toFlat, m.tr.FlatItemCount()))
	}

	fromGroup, fromChild := from.Group(), from.Child()
	toGroup, toChild := to.Group(), to.Child()

	var dest packedpos.Position
	rows := 1

	switch {
	case from.IsGroup():
		if fromGroup == toGroup {
			// a group dropped onto one of its own children
			return fromFlat
		}
		rows += m.tr.VisibleChildCount(fromGroup)
		mover.MoveGroupItem(fromGroup, toGroup)
		m.tr.MoveGroup(fromGroup, toGroup)
		dest = packedpos.ForGroup(toGroup)

	case !to.IsGroup():
		if fromGroup != toGroup && fromFlat < toFlat {
			toChild++
		}
		mover.MoveChildItem(fromGroup, fromChild, toGroup, toChild)
		m.tr.MoveChild(fromGroup, fromChild, toGroup, toChild)
		dest = packedpos.ForChild(toGroup, toChild)

	default:
		destGroup, destChild := m.childDropOnGroup(fromFlat, toFlat, toGroup)
		if fromGroup == destGroup {
			destChild = min(destChild, max(0, m.tr.ChildCount(destGroup)-1))
			if fromChild == destChild {
				return fromFlat
			}
		}
		mover.MoveChildItem(fromGroup, fromChild, destGroup, destChild)
		m.tr.MoveChild(fromGroup, fromChild, destGroup, destChild)
		dest = packedpos.ForChild(destGroup, destChild)
	}

	actual := m.tr.ResolveFlat(dest)
	switch {
	case actual == fromFlat:
	case rows > 1:
		m.observer.ItemRangeRemoved(fromFlat, rows)
		m.observer.ItemRangeInserted(actual, rows)
	case actual == translator.NoFlatPosition:
		m.observer.ItemRangeRemoved(fromFlat, 1)
	default:
		m.observer.ItemMoved(fromFlat, actual)
	}
	return actual
}

// childDropOnGroup picks the destination of a child dropped onto the row of
// group.
func (m *Manager) childDropOnGroup(fromFlat, toFlat, group int) (int, int) {
	if toFlat < fromFlat {
		if group == 0 {
			return 0, 0
		}
		// the end of the group above
		return group - 1, m.tr.ChildCount(group - 1)
	}
	if m.tr.IsExpanded(group) {
		return group, 0
	}
	return group, m.tr.ChildCount(group)
}
