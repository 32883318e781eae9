package expandlist

import (
	"github.com/forestrie/go-expandlist/packedpos"
	"github.com/forestrie/go-expandlist/translator"
)

// The Notify methods are called by the owner of the provider after its data
// has changed. Insertions read the new groups from the provider, so the
// provider must already hold them. Each method updates the positions and
// reports the visible effect, if any, to the observer.

func (m *Manager) NotifyGroupItemInserted(group int) {
	m.NotifyGroupItemRangeInserted(group, 1)
}

// NotifyGroupItemRangeInserted records count new groups starting at group
// position start. New groups are collapsed.
func (m *Manager) NotifyGroupItemRangeInserted(start, count int) {
	if count <= 0 {
		return
	}
	groups := make([]translator.Group, count)
	for i := range groups {
		g := start + i
		groups[i] = translator.Group{ID: m.provider.GroupID(g), ChildCount: m.provider.ChildCount(g)}
	}

	if n := m.tr.InsertGroups(start, groups); n > 0 {
		flat := m.tr.ResolveFlat(packedpos.ForGroup(start))
		m.observer.ItemRangeInserted(flat, n)
	}
}

func (m *Manager) NotifyGroupItemRemoved(group int) {
	m.NotifyGroupItemRangeRemoved(group, 1)
}

// NotifyGroupItemRangeRemoved records that count groups starting at start
// were removed. The observer is told about the group rows and any visible
// children that went with them.
func (m *Manager) NotifyGroupItemRangeRemoved(start, count int) {
	flat := m.tr.ResolveFlat(packedpos.ForGroup(start))
	if n := m.tr.RemoveGroups(start, count); n > 0 {
		m.observer.ItemRangeRemoved(flat, n)
	}
}

func (m *Manager) NotifyChildItemInserted(group, child int) {
	m.NotifyChildItemRangeInserted(group, child, 1)
}

// NotifyChildItemRangeInserted records count new children in group starting
// at child. Nothing is reported for a collapsed group.
func (m *Manager) NotifyChildItemRangeInserted(group, start, count int) {
	m.tr.InsertChildren(group, start, count)

	flat := m.tr.ResolveFlat(packedpos.ForChild(group, start))
	if flat != translator.NoFlatPosition && count > 0 {
		m.observer.ItemRangeInserted(flat, count)
	}
}

func (m *Manager) NotifyChildItemRemoved(group, child int) {
	m.NotifyChildItemRangeRemoved(group, child, 1)
}

func (m *Manager) NotifyChildItemRangeRemoved(group, start, count int) {
	flat := m.tr.ResolveFlat(packedpos.ForChild(group, start))

	m.tr.RemoveChildren(group, start, count)

	if flat != translator.NoFlatPosition && count > 0 {
		m.observer.ItemRangeRemoved(flat, count)
	}
}

// NotifyGroupItemMoved records that the group at from now sits at to. A
// collapsed group is reported as a move, an expanded one as the removal and
// reinsertion of its rows.
func (m *Manager) NotifyGroupItemMoved(from, to int) {
	if from == to {
		return
	}
	fromFlat := m.tr.ResolveFlat(packedpos.ForGroup(from))
	rows := 1 + m.tr.VisibleChildCount(from)

	m.tr.MoveGroup(from, to)

	toFlat := m.tr.ResolveFlat(packedpos.ForGroup(to))
	if rows == 1 {
		m.observer.ItemMoved(fromFlat, toFlat)
		return
	}
	m.observer.ItemRangeRemoved(fromFlat, rows)
	m.observer.ItemRangeInserted(toFlat, rows)
}

// NotifyChildItemMoved records that a child moved between, or within,
// groups. Only the rows that are visible before or after are reported.
func (m *Manager) NotifyChildItemMoved(fromGroup, fromChild, toGroup, toChild int) {
	fromFlat := m.tr.ResolveFlat(packedpos.ForChild(fromGroup, fromChild))

	m.tr.MoveChild(fromGroup, fromChild, toGroup, toChild)

	toFlat := m.tr.ResolveFlat(packedpos.ForChild(toGroup, toChild))
	switch {
	case fromFlat != translator.NoFlatPosition && toFlat != translator.NoFlatPosition:
		if fromFlat != toFlat {
			m.observer.ItemMoved(fromFlat, toFlat)
		}
	case fromFlat != translator.NoFlatPosition:
		m.observer.ItemRangeRemoved(fromFlat, 1)
	case toFlat != translator.NoFlatPosition:
		m.observer.ItemRangeInserted(toFlat, 1)
	}
}

func (m *Manager) NotifyGroupItemChanged(group int) {
	flat := m.tr.ResolveFlat(packedpos.ForGroup(group))
	if flat != translator.NoFlatPosition {
		m.observer.ItemRangeChanged(flat, 1)
	}
}

// NotifyGroupAndChildrenItemsChanged reports the group row and all of its
// visible children as changed.
func (m *Manager) NotifyGroupAndChildrenItemsChanged(group int) {
	flat := m.tr.ResolveFlat(packedpos.ForGroup(group))
	if flat != translator.NoFlatPosition {
		m.observer.ItemRangeChanged(flat, 1+m.tr.VisibleChildCount(group))
	}
}

func (m *Manager) NotifyChildrenOfGroupItemChanged(group int) {
	n := m.tr.VisibleChildCount(group)
	if n == 0 {
		return
	}
	flat := m.tr.ResolveFlat(packedpos.ForChild(group, 0))
	if flat != translator.NoFlatPosition {
		m.observer.ItemRangeChanged(flat, n)
	}
}

func (m *Manager) NotifyChildItemChanged(group, child int) {
	m.NotifyChildItemRangeChanged(group, child, 1)
}

// NotifyChildItemRangeChanged reports the visible part of the given child
// range as changed. The range is clipped to the group's children.
func (m *Manager) NotifyChildItemRangeChanged(group, start, count int) {
	n := m.tr.VisibleChildCount(group)
	if n == 0 || start < 0 || start >= n || count <= 0 {
		return
	}
	flat := m.tr.ResolveFlat(packedpos.ForChild(group, 0))
	if flat != translator.NoFlatPosition {
		m.observer.ItemRangeChanged(flat+start, min(count, n-start))
	}
}

// NotifyDataSetChanged re-reads the whole provider. Groups that were
// expanded stay expanded, matched by id, without calling hooks or
// listeners.
func (m *Manager) NotifyDataSetChanged() {
	m.rebuild(m.tr.SnapshotExpandedIDs())
	m.observer.DataSetChanged()
}
