package expandlist

import "slices"

type SliceChild struct {
	ID   int64  `yaml:"id"`
	Kind uint32 `yaml:"kind,omitempty"`
}

type SliceGroup struct {
	ID       int64        `yaml:"id"`
	Kind     uint32       `yaml:"kind,omitempty"`
	Children []SliceChild `yaml:"children,omitempty"`
}

// SliceProvider is an in memory Provider whose items can be moved. It is
// the provider used by the command line tools and the tests.
type SliceProvider struct {
	Groups []SliceGroup
}

func (p *SliceProvider) GroupCount() int { return len(p.Groups) }

func (p *SliceProvider) ChildCount(group int) int { return len(p.Groups[group].Children) }

func (p *SliceProvider) GroupID(group int) int64 { return p.Groups[group].ID }

func (p *SliceProvider) ChildID(group, child int) int64 {
	return p.Groups[group].Children[child].ID
}

func (p *SliceProvider) GroupViewKind(group int) uint32 { return p.Groups[group].Kind }

func (p *SliceProvider) ChildViewKind(group, child int) uint32 {
	return p.Groups[group].Children[child].Kind
}

func (p *SliceProvider) MoveGroupItem(fromGroup, toGroup int) {
	g := p.Groups[fromGroup]
	p.Groups = slices.Delete(p.Groups, fromGroup, fromGroup+1)
	p.Groups = slices.Insert(p.Groups, toGroup, g)
}

func (p *SliceProvider) MoveChildItem(fromGroup, fromChild, toGroup, toChild int) {
	c := p.Groups[fromGroup].Children[fromChild]
	p.Groups[fromGroup].Children = slices.Delete(p.Groups[fromGroup].Children, fromChild, fromChild+1)
	if fromGroup == toGroup {
		toChild = min(toChild, len(p.Groups[toGroup].Children))
	}
	p.Groups[toGroup].Children = slices.Insert(p.Groups[toGroup].Children, toChild, c)
}

// InsertGroups inserts groups at position at.
func (p *SliceProvider) InsertGroups(at int, groups ...SliceGroup) {
	p.Groups = slices.Insert(p.Groups, at, groups...)
}

func (p *SliceProvider) RemoveGroups(at, count int) {
	p.Groups = slices.Delete(p.Groups, at, at+count)
}

func (p *SliceProvider) InsertChildren(group, at int, children ...SliceChild) {
	p.Groups[group].Children = slices.Insert(p.Groups[group].Children, at, children...)
}

func (p *SliceProvider) RemoveChildren(group, at, count int) {
	p.Groups[group].Children = slices.Delete(p.Groups[group].Children, at, at+count)
}
