package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/forestrie/go-expandlist/expandlist"
	"gopkg.in/yaml.v3"
)

var (
	ErrUnknownOp   = errors.New("unknown op")
	ErrBadArgument = errors.New("argument out of range")
)

type ScenarioGroup struct {
	ID       int64   `yaml:"id"`
	Children []int64 `yaml:"children"`
}

// Step is one change to the list. Which fields are used depends on Op.
type Step struct {
	Op       string  `yaml:"op"`
	Group    int     `yaml:"group"`
	Child    int     `yaml:"child"`
	At       int     `yaml:"at"`
	From     int     `yaml:"from"`
	To       int     `yaml:"to"`
	ToGroup  int     `yaml:"to-group"`
	ToChild  int     `yaml:"to-child"`
	ID       int64   `yaml:"id"`
	Children []int64 `yaml:"children"`
}

func (s Step) String() string {
	switch s.Op {
	case "expand", "collapse", "toggle", "remove-group":
		return fmt.Sprintf("%s group=%d", s.Op, s.Group)
	case "insert-group":
		return fmt.Sprintf("%s at=%d id=%d", s.Op, s.At, s.ID)
	case "move-group", "move-item":
		return fmt.Sprintf("%s from=%d to=%d", s.Op, s.From, s.To)
	case "insert-child":
		return fmt.Sprintf("%s group=%d at=%d id=%d", s.Op, s.Group, s.At, s.ID)
	case "remove-child":
		return fmt.Sprintf("%s group=%d child=%d", s.Op, s.Group, s.Child)
	case "move-child":
		return fmt.Sprintf("%s %d/%d -> %d/%d", s.Op, s.Group, s.Child, s.ToGroup, s.ToChild)
	}
	return s.Op
}

type Scenario struct {
	ListID string          `yaml:"list-id"`
	Groups []ScenarioGroup `yaml:"groups"`
	Steps  []Step          `yaml:"steps"`
}

func LoadScenario(path string) (Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Scenario{}, err
	}
	var sc Scenario
	if err := yaml.Unmarshal(data, &sc); err != nil {
		return Scenario{}, fmt.Errorf("parse %s: %w", path, err)
	}
	return sc, nil
}

func sliceGroup(id int64, children []int64) expandlist.SliceGroup {
	g := expandlist.SliceGroup{ID: id}
	for _, c := range children {
		g.Children = append(g.Children, expandlist.SliceChild{ID: c})
	}
	return g
}

// Provider returns the initial groups of the scenario.
func (sc Scenario) Provider() *expandlist.SliceProvider {
	p := &expandlist.SliceProvider{}
	for _, g := range sc.Groups {
		p.Groups = append(p.Groups, sliceGroup(g.ID, g.Children))
	}
	return p
}

func checkRange(name string, v, lo, hi int) error {
	if v < lo || v > hi {
		return fmt.Errorf("%w: %s = %d, expected [%d, %d]", ErrBadArgument, name, v, lo, hi)
	}
	return nil
}

// validate checks the step against the current provider contents, so a bad
// scenario is reported instead of tripping the manager's panics.
func (s Step) validate(p *expandlist.SliceProvider, itemCount int) error {
	n := p.GroupCount()
	group := func() error { return checkRange("group", s.Group, 0, n-1) }

	switch s.Op {
	case "expand", "collapse", "toggle", "remove-group":
		return group()
	case "insert-group":
		return checkRange("at", s.At, 0, n)
	case "move-group":
		if err := checkRange("from", s.From, 0, n-1); err != nil {
			return err
		}
		return checkRange("to", s.To, 0, n-1)
	case "insert-child":
		if err := group(); err != nil {
			return err
		}
		return checkRange("at", s.At, 0, p.ChildCount(s.Group))
	case "remove-child":
		if err := group(); err != nil {
			return err
		}
		return checkRange("child", s.Child, 0, p.ChildCount(s.Group)-1)
	case "move-child":
		if err := group(); err != nil {
			return err
		}
		if err := checkRange("child", s.Child, 0, p.ChildCount(s.Group)-1); err != nil {
			return err
		}
		if err := checkRange("to-group", s.ToGroup, 0, n-1); err != nil {
			return err
		}
		hi := p.ChildCount(s.ToGroup)
		if s.ToGroup == s.Group {
			hi--
		}
		return checkRange("to-child", s.ToChild, 0, hi)
	case "move-item":
		if err := checkRange("from", s.From, 0, itemCount-1); err != nil {
			return err
		}
		return checkRange("to", s.To, 0, itemCount-1)
	case "rebuild", "expand-all", "collapse-all":
		return nil
	}
	return fmt.Errorf("%w: %q", ErrUnknownOp, s.Op)
}

// Apply changes the provider as the step describes and tells the manager.
func (s Step) Apply(p *expandlist.SliceProvider, m *expandlist.Manager) error {
	if err := s.validate(p, m.ItemCount()); err != nil {
		return err
	}

	switch s.Op {
	case "expand":
		m.ExpandGroup(s.Group, true)
	case "collapse":
		m.CollapseGroup(s.Group, true)
	case "toggle":
		m.ToggleGroup(s.Group)
	case "expand-all":
		m.ExpandAll()
	case "collapse-all":
		m.CollapseAll()
	case "insert-group":
		p.InsertGroups(s.At, sliceGroup(s.ID, s.Children))
		m.NotifyGroupItemInserted(s.At)
	case "remove-group":
		p.RemoveGroups(s.Group, 1)
		m.NotifyGroupItemRemoved(s.Group)
	case "move-group":
		p.MoveGroupItem(s.From, s.To)
		m.NotifyGroupItemMoved(s.From, s.To)
	case "insert-child":
		p.InsertChildren(s.Group, s.At, expandlist.SliceChild{ID: s.ID})
		m.NotifyChildItemInserted(s.Group, s.At)
	case "remove-child":
		p.RemoveChildren(s.Group, s.Child, 1)
		m.NotifyChildItemRemoved(s.Group, s.Child)
	case "move-child":
		p.MoveChildItem(s.Group, s.Child, s.ToGroup, s.ToChild)
		m.NotifyChildItemMoved(s.Group, s.Child, s.ToGroup, s.ToChild)
	case "move-item":
		m.MoveItem(s.From, s.To)
	case "rebuild":
		m.NotifyDataSetChanged()
	}
	return nil
}
