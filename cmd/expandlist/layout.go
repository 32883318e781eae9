package main

import (
	"fmt"
	"strings"

	"github.com/forestrie/go-expandlist/expandlist"
	"github.com/forestrie/go-expandlist/packedpos"
)

// formatRow renders one visible row as "<flat> <group>[/<child>] id=<id>".
// Group rows carry a marker for their expanded state.
func formatRow(m *expandlist.Manager, p expandlist.Provider, flat int) string {
	pos := m.ItemAt(flat)
	if pos.IsGroup() {
		marker := "+"
		if m.IsGroupExpanded(pos.Group()) {
			marker = "-"
		}
		return fmt.Sprintf("%3d %s g%d id=%d children=%d",
			flat, marker, pos.Group(), p.GroupID(pos.Group()), p.ChildCount(pos.Group()))
	}
	return fmt.Sprintf("%3d     g%d/c%d id=%d", flat, pos.Group(), pos.Child(), p.ChildID(pos.Group(), pos.Child()))
}

// renderLayout returns the visible rows, one per line.
func renderLayout(m *expandlist.Manager, p expandlist.Provider) string {
	var b strings.Builder
	for flat, n := 0, m.ItemCount(); flat < n; flat++ {
		b.WriteString(formatRow(m, p, flat))
		b.WriteByte('\n')
	}
	return b.String()
}

func formatPosition(pos packedpos.Position) string {
	if pos.IsNone() {
		return "none"
	}
	if pos.IsGroup() {
		return fmt.Sprintf("group %d", pos.Group())
	}
	return fmt.Sprintf("group %d child %d", pos.Group(), pos.Child())
}
