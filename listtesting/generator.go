package listtesting

import (
	"fmt"

	"github.com/forestrie/go-expandlist/translator"
)

type OpKind int

const (
	OpExpand OpKind = iota
	OpCollapse
	OpInsertGroups
	OpRemoveGroups
	OpMoveGroup
	OpInsertChildren
	OpRemoveChildren
	OpMoveChild
	OpRebuild
	opKindCount
)

var opNames = [...]string{
	OpExpand:         "expand",
	OpCollapse:       "collapse",
	OpInsertGroups:   "insert-groups",
	OpRemoveGroups:   "remove-groups",
	OpMoveGroup:      "move-group",
	OpInsertChildren: "insert-children",
	OpRemoveChildren: "remove-children",
	OpMoveChild:      "move-child",
	OpRebuild:        "rebuild",
}

func (k OpKind) String() string {
	if k < 0 || k >= opKindCount {
		return fmt.Sprintf("OpKind(%d)", int(k))
	}
	return opNames[k]
}

// Op is one structural change, valid against the model it was generated
// for. The fields used depend on Kind.
type Op struct {
	Kind    OpKind
	Group   int
	Child   int
	Count   int
	ToGroup int
	ToChild int
	Groups  []translator.Group
	// Order is the new group order for OpRebuild, as indices into the
	// current groups.
	Order []int
}

func (op Op) String() string {
	switch op.Kind {
	case OpExpand, OpCollapse:
		return fmt.Sprintf("%v(%d)", op.Kind, op.Group)
	case OpInsertGroups:
		return fmt.Sprintf("%v(at=%d, n=%d)", op.Kind, op.Group, len(op.Groups))
	case OpRemoveGroups:
		return fmt.Sprintf("%v(at=%d, n=%d)", op.Kind, op.Group, op.Count)
	case OpMoveGroup:
		return fmt.Sprintf("%v(%d -> %d)", op.Kind, op.Group, op.ToGroup)
	case OpInsertChildren, OpRemoveChildren:
		return fmt.Sprintf("%v(g=%d, at=%d, n=%d)", op.Kind, op.Group, op.Child, op.Count)
	case OpMoveChild:
		return fmt.Sprintf("%v(%d/%d -> %d/%d)", op.Kind, op.Group, op.Child, op.ToGroup, op.ToChild)
	case OpRebuild:
		return fmt.Sprintf("%v(%v)", op.Kind, op.Order)
	}
	return op.Kind.String()
}

// RandomGroups returns n groups with fresh ids and random child counts.
func (c *TestContext) RandomGroups(n int) []translator.Group {
	groups := make([]translator.Group, n)
	for i := range groups {
		groups[i] = translator.Group{ID: c.NextID(), ChildCount: c.Rand.Intn(c.Cfg.MaxChildren + 1)}
	}
	return groups
}

// RandomOp picks an operation that is legal for the current state of m.
// Kinds that have no legal arguments (removing from an empty list, say) are
// re-drawn.
func (c *TestContext) RandomOp(m *Model) Op {
	r := c.Rand
	n := len(m.Groups)
	for {
		kind := OpKind(r.Intn(int(opKindCount)))
		switch kind {
		case OpExpand, OpCollapse:
			if n == 0 {
				continue
			}
			return Op{Kind: kind, Group: r.Intn(n)}

		case OpInsertGroups:
			if n >= c.Cfg.MaxGroups {
				continue
			}
			count := 1 + r.Intn(min(3, c.Cfg.MaxGroups-n))
			return Op{Kind: kind, Group: r.Intn(n + 1), Groups: c.RandomGroups(count)}

		case OpRemoveGroups:
			if n == 0 {
				continue
			}
			at := r.Intn(n)
			return Op{Kind: kind, Group: at, Count: 1 + r.Intn(min(3, n-at))}

		case OpMoveGroup:
			if n == 0 {
				continue
			}
			return Op{Kind: kind, Group: r.Intn(n), ToGroup: r.Intn(n)}

		case OpInsertChildren:
			if n == 0 {
				continue
			}
			g := r.Intn(n)
			cur := m.Groups[g].ChildCount
			return Op{Kind: kind, Group: g, Child: r.Intn(cur + 1), Count: r.Intn(4)}

		case OpRemoveChildren:
			g, ok := c.randomNonEmptyGroup(m)
			if !ok {
				continue
			}
			cur := m.Groups[g].ChildCount
			at := r.Intn(cur)
			return Op{Kind: kind, Group: g, Child: at, Count: 1 + r.Intn(cur-at)}

		case OpMoveChild:
			g, ok := c.randomNonEmptyGroup(m)
			if !ok {
				continue
			}
			to := r.Intn(n)
			return Op{
				Kind: kind, Group: g, Child: r.Intn(m.Groups[g].ChildCount),
				ToGroup: to, ToChild: r.Intn(m.Groups[to].ChildCount + 1),
			}

		case OpRebuild:
			return Op{Kind: kind, Order: r.Perm(n)}
		}
	}
}

func (c *TestContext) randomNonEmptyGroup(m *Model) (int, bool) {
	var candidates []int
	for g, mg := range m.Groups {
		if mg.ChildCount > 0 {
			candidates = append(candidates, g)
		}
	}
	if len(candidates) == 0 {
		return 0, false
	}
	return candidates[c.Rand.Intn(len(candidates))], true
}

// ApplyModel applies op to the reference model.
func (op Op) ApplyModel(m *Model) {
	switch op.Kind {
	case OpExpand:
		m.Groups[op.Group].Expanded = true
	case OpCollapse:
		m.Groups[op.Group].Expanded = false
	case OpInsertGroups:
		m.insertGroups(op.Group, op.Groups)
	case OpRemoveGroups:
		m.removeGroups(op.Group, op.Count)
	case OpMoveGroup:
		m.moveGroup(op.Group, op.ToGroup)
	case OpInsertChildren:
		m.Groups[op.Group].ChildCount += op.Count
	case OpRemoveChildren:
		m.Groups[op.Group].ChildCount -= op.Count
	case OpMoveChild:
		if op.Group != op.ToGroup {
			m.Groups[op.Group].ChildCount--
			m.Groups[op.ToGroup].ChildCount++
		}
	case OpRebuild:
		// expanded flags follow the ids, which is what a restore does
		groups := make([]ModelGroup, len(op.Order))
		for i, from := range op.Order {
			groups[i] = m.Groups[from]
		}
		m.Groups = groups
	}
}

// ApplyTranslator applies op to tr. For OpRebuild the translator is rebuilt
// from the reordered groups of m, which must be the model as it was before
// op was applied to it.
func (op Op) ApplyTranslator(tr *translator.Translator, m *Model) {
	switch op.Kind {
	case OpExpand:
		tr.ExpandGroup(op.Group)
	case OpCollapse:
		tr.CollapseGroup(op.Group)
	case OpInsertGroups:
		tr.InsertGroups(op.Group, op.Groups)
	case OpRemoveGroups:
		tr.RemoveGroups(op.Group, op.Count)
	case OpMoveGroup:
		tr.MoveGroup(op.Group, op.ToGroup)
	case OpInsertChildren:
		tr.InsertChildren(op.Group, op.Child, op.Count)
	case OpRemoveChildren:
		tr.RemoveChildren(op.Group, op.Child, op.Count)
	case OpMoveChild:
		tr.MoveChild(op.Group, op.Child, op.ToGroup, op.ToChild)
	case OpRebuild:
		saved := tr.SnapshotExpandedIDs()
		groups := make([]translator.Group, len(op.Order))
		for i, from := range op.Order {
			groups[i] = translator.Group{ID: m.Groups[from].ID, ChildCount: m.Groups[from].ChildCount}
		}
		tr.Build(groups)
		tr.RestoreExpanded(saved)
	}
}

// Step applies one random operation to both tr and m and returns it.
func (c *TestContext) Step(tr *translator.Translator, m *Model) Op {
	op := c.RandomOp(m)
	op.ApplyTranslator(tr, m)
	op.ApplyModel(m)
	return op
}
