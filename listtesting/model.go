package listtesting

import (
	"slices"

	"github.com/forestrie/go-expandlist/packedpos"
	"github.com/forestrie/go-expandlist/translator"
)

type ModelGroup struct {
	ID         int64
	ChildCount int
	Expanded   bool
}

// Model is a deliberately naive two level list. Every query walks the whole
// structure, which makes it easy to believe and useful as a reference for
// the translator.
type Model struct {
	Groups []ModelGroup
}

func NewModel(groups []translator.Group) *Model {
	m := &Model{}
	for _, g := range groups {
		m.Groups = append(m.Groups, ModelGroup{ID: g.ID, ChildCount: g.ChildCount})
	}
	return m
}

// TranslatorGroups returns the groups in the form accepted by
// translator.Build.
func (m *Model) TranslatorGroups() []translator.Group {
	groups := make([]translator.Group, len(m.Groups))
	for i, g := range m.Groups {
		groups[i] = translator.Group{ID: g.ID, ChildCount: g.ChildCount}
	}
	return groups
}

// Layout lists the position of every visible row in flat order.
func (m *Model) Layout() []packedpos.Position {
	var layout []packedpos.Position
	for g, mg := range m.Groups {
		layout = append(layout, packedpos.ForGroup(g))
		if !mg.Expanded {
			continue
		}
		for c := 0; c < mg.ChildCount; c++ {
			layout = append(layout, packedpos.ForChild(g, c))
		}
	}
	return layout
}

func (m *Model) FlatItemCount() int {
	return len(m.Layout())
}

func (m *Model) ExpandedGroupCount() int {
	n := 0
	for _, g := range m.Groups {
		if g.Expanded {
			n++
		}
	}
	return n
}

// ExpandedIDs returns the low 32 bits of the expanded group ids, sorted.
func (m *Model) ExpandedIDs() []uint32 {
	ids := []uint32{}
	for _, g := range m.Groups {
		if g.Expanded {
			ids = append(ids, uint32(g.ID))
		}
	}
	slices.Sort(ids)
	return ids
}

func (m *Model) insertGroups(at int, groups []translator.Group) {
	added := make([]ModelGroup, len(groups))
	for i, g := range groups {
		added[i] = ModelGroup{ID: g.ID, ChildCount: g.ChildCount}
	}
	m.Groups = slices.Insert(m.Groups, at, added...)
}

func (m *Model) removeGroups(at, count int) int {
	rows := 0
	for _, g := range m.Groups[at : at+count] {
		rows++
		if g.Expanded {
			rows += g.ChildCount
		}
	}
	m.Groups = slices.Delete(m.Groups, at, at+count)
	return rows
}

func (m *Model) moveGroup(from, to int) {
	g := m.Groups[from]
	m.Groups = slices.Delete(m.Groups, from, from+1)
	m.Groups = slices.Insert(m.Groups, to, g)
}
