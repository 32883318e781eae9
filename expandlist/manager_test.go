package expandlist

import (
	"fmt"
	"slices"
	"testing"

	"github.com/datatrails/go-datatrails-common/logger"
	"github.com/forestrie/go-expandlist/packedpos"
	"github.com/forestrie/go-expandlist/translator"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingObserver struct {
	events []string
}

func (r *recordingObserver) ItemRangeInserted(start, count int) {
	r.events = append(r.events, fmt.Sprintf("inserted(%d,%d)", start, count))
}

func (r *recordingObserver) ItemRangeRemoved(start, count int) {
	r.events = append(r.events, fmt.Sprintf("removed(%d,%d)", start, count))
}

func (r *recordingObserver) ItemRangeChanged(start, count int) {
	r.events = append(r.events, fmt.Sprintf("changed(%d,%d)", start, count))
}

func (r *recordingObserver) ItemMoved(from, to int) {
	r.events = append(r.events, fmt.Sprintf("moved(%d,%d)", from, to))
}

func (r *recordingObserver) DataSetChanged() {
	r.events = append(r.events, "dataset")
}

func (r *recordingObserver) take() []string {
	events := r.events
	r.events = nil
	return events
}

type recordingListener struct {
	events []string
}

func (l *recordingListener) OnGroupExpand(group int, fromUser bool) {
	l.events = append(l.events, fmt.Sprintf("expand(%d,%v)", group, fromUser))
}

func (l *recordingListener) OnGroupCollapse(group int, fromUser bool) {
	l.events = append(l.events, fmt.Sprintf("collapse(%d,%v)", group, fromUser))
}

// vetoHooks refuses changes to the groups it lists.
type vetoHooks struct {
	noExpand   map[int]bool
	noCollapse map[int]bool
}

func (h vetoHooks) OnHookGroupExpand(group int, fromUser bool) bool   { return !h.noExpand[group] }
func (h vetoHooks) OnHookGroupCollapse(group int, fromUser bool) bool { return !h.noCollapse[group] }

// sliceOf builds a provider from child counts. Group i has id 10+i and
// child j of group i has id 100*(i+1)+j.
func sliceOf(childCounts ...int) *SliceProvider {
	p := &SliceProvider{}
	for i, n := range childCounts {
		g := SliceGroup{ID: int64(10 + i)}
		for j := 0; j < n; j++ {
			g.Children = append(g.Children, SliceChild{ID: int64(100*(i+1) + j)})
		}
		p.Groups = append(p.Groups, g)
	}
	return p
}

func newTestManager(t *testing.T, p Provider, opts ...Option) (*Manager, *recordingObserver) {
	t.Helper()
	logger.New("NOOP")
	obs := &recordingObserver{}
	m := New(p, obs, opts...)
	require.Empty(t, obs.events)
	return m, obs
}

func TestManagerExpandCollapse(t *testing.T) {
	m, obs := newTestManager(t, sliceOf(2, 0, 1))
	require.Equal(t, 3, m.ItemCount())

	assert.True(t, m.ExpandGroup(0, false))
	assert.Equal(t, []string{"inserted(1,2)", "changed(0,1)"}, obs.take())
	assert.Equal(t, 5, m.ItemCount())
	assert.Equal(t, packedpos.ForChild(0, 1), m.ItemAt(2))
	assert.Equal(t, 3, m.FlatPosition(packedpos.ForGroup(1)))

	assert.False(t, m.ExpandGroup(0, false))
	assert.Empty(t, obs.take())

	// an empty group only reports its own row
	assert.True(t, m.ExpandGroup(1, false))
	assert.Equal(t, []string{"changed(3,1)"}, obs.take())

	assert.True(t, m.CollapseGroup(0, false))
	assert.Equal(t, []string{"removed(1,2)", "changed(0,1)"}, obs.take())
	assert.False(t, m.CollapseGroup(0, false))
	assert.Equal(t, 3, m.ItemCount())
}

func TestManagerItemID(t *testing.T) {
	m, _ := newTestManager(t, sliceOf(2, 1))
	m.ExpandGroup(0, false)

	assert.Equal(t, packedpos.CombinedGroupID(10), m.ItemID(0))
	assert.Equal(t, packedpos.CombinedChildID(10, 101), m.ItemID(2))
	assert.Equal(t, packedpos.CombinedGroupID(11), m.ItemID(3))
	assert.Equal(t, NoID, m.ItemID(4))
	assert.Equal(t, NoID, m.ItemID(-1))
}

func TestManagerItemViewKind(t *testing.T) {
	p := sliceOf(1, 1)
	p.Groups[0].Kind = 3
	p.Groups[0].Children[0].Kind = 7
	p.Groups[1].Children[0].Kind = packedpos.ViewKindFlagGroup | 1
	m, _ := newTestManager(t, p)
	m.ExpandAll()

	kind, err := m.ItemViewKind(0)
	require.NoError(t, err)
	assert.True(t, packedpos.IsGroupViewKind(kind))
	assert.Equal(t, uint32(3), packedpos.GroupViewKind(kind))

	kind, err = m.ItemViewKind(1)
	require.NoError(t, err)
	assert.Equal(t, uint32(7), kind)

	_, err = m.ItemViewKind(3)
	assert.ErrorIs(t, err, ErrIllegalViewKind)

	_, err = m.ItemViewKind(4)
	assert.ErrorIs(t, err, ErrInvalidFlatPosition)

	// a provider without kinds has only kind 0
	plain, _ := newTestManager(t, struct{ Provider }{sliceOf(1)})
	kind, err = plain.ItemViewKind(0)
	require.NoError(t, err)
	assert.Equal(t, packedpos.ViewKindFlagGroup, kind)
}

func TestManagerHooksAndListener(t *testing.T) {
	hooks := vetoHooks{noExpand: map[int]bool{1: true}, noCollapse: map[int]bool{0: true}}
	listener := &recordingListener{}
	m, obs := newTestManager(t, sliceOf(1, 1, 1), WithHooks(hooks), WithListener(listener))

	assert.Equal(t, 2, m.ExpandAll())
	assert.False(t, m.IsGroupExpanded(1))
	assert.Equal(t, []string{"expand(0,false)", "expand(2,false)"}, listener.events)
	obs.take()

	assert.Equal(t, 1, m.CollapseAll())
	assert.True(t, m.IsGroupExpanded(0))
	assert.False(t, m.IsGroupExpanded(2))
	assert.Equal(t, []string{"removed(4,1)", "changed(3,1)"}, obs.take())
}

type hookedSlice struct {
	*SliceProvider
	vetoHooks
}

func TestManagerProviderHooks(t *testing.T) {
	p := hookedSlice{sliceOf(1, 1), vetoHooks{noExpand: map[int]bool{0: true}}}
	m, _ := newTestManager(t, p)
	assert.False(t, m.ExpandGroup(0, true))
	assert.True(t, m.ExpandGroup(1, true))
}

func TestManagerTapItem(t *testing.T) {
	listener := &recordingListener{}
	m, _ := newTestManager(t, sliceOf(2, 1), WithListener(listener))

	assert.True(t, m.TapItem(0))
	assert.True(t, m.IsGroupExpanded(0))
	// a child row
	assert.False(t, m.TapItem(1))
	assert.False(t, m.TapItem(40))
	assert.True(t, m.TapItem(0))
	assert.False(t, m.IsGroupExpanded(0))
	assert.True(t, m.ToggleGroup(1))

	assert.Equal(t, []string{"expand(0,true)", "collapse(0,true)", "expand(1,true)"}, listener.events)
}

func TestManagerSavedState(t *testing.T) {
	p := sliceOf(1, 2, 3)
	m, _ := newTestManager(t, p)
	m.ExpandGroup(1, false)
	m.ExpandGroup(2, false)
	saved := m.SavedState()
	assert.Equal(t, []uint32{11, 12}, saved)

	// a new manager over reordered data picks the same groups by id
	p.MoveGroupItem(2, 0)
	m2, _ := newTestManager(t, p, WithSavedState(saved))
	assert.True(t, m2.IsGroupExpanded(0))
	assert.False(t, m2.IsGroupExpanded(1))
	assert.True(t, m2.IsGroupExpanded(2))

	listener := &recordingListener{}
	m3, obs3 := newTestManager(t, sliceOf(1, 2, 3), WithListener(listener))
	m3.ExpandGroup(0, false)
	listener.events = nil
	obs3.take()

	m3.RestoreState(saved, false, true)
	assert.Equal(t, []uint32{11, 12}, m3.SavedState())
	assert.ElementsMatch(t, []string{"collapse(0,false)", "expand(1,false)", "expand(2,false)"}, listener.events)
	assert.Equal(t, []string{"dataset"}, obs3.take())
}

func TestManagerRestoreStateHooks(t *testing.T) {
	hooks := vetoHooks{noExpand: map[int]bool{2: true}}
	m, _ := newTestManager(t, sliceOf(1, 1, 1), WithHooks(hooks))

	m.RestoreState([]uint32{11, 12}, true, false)
	assert.Equal(t, []uint32{11}, m.SavedState())

	m.RestoreState([]uint32{11, 12}, false, false)
	assert.Equal(t, []uint32{11, 12}, m.SavedState())
}

func TestManagerNotifyGroups(t *testing.T) {
	p := sliceOf(2, 1)
	m, obs := newTestManager(t, p)
	m.ExpandGroup(0, false)
	obs.take()

	p.InsertGroups(1, SliceGroup{ID: 50}, SliceGroup{ID: 51, Children: []SliceChild{{ID: 1}}})
	m.NotifyGroupItemRangeInserted(1, 2)
	assert.Equal(t, []string{"inserted(3,2)"}, obs.take())
	assert.Equal(t, 6, m.ItemCount())
	assert.Equal(t, uint32(51), m.Translator().GroupID(2))

	p.InsertGroups(0, SliceGroup{ID: 49})
	m.NotifyGroupItemInserted(0)
	assert.Equal(t, []string{"inserted(0,1)"}, obs.take())

	// group 1 is the expanded group with two children
	p.RemoveGroups(1, 1)
	m.NotifyGroupItemRemoved(1)
	assert.Equal(t, []string{"removed(1,3)"}, obs.take())

	p.RemoveGroups(0, 2)
	m.NotifyGroupItemRangeRemoved(0, 2)
	assert.Equal(t, []string{"removed(0,2)"}, obs.take())
	assert.Equal(t, 2, m.ItemCount())

	m.NotifyGroupItemRangeInserted(0, 0)
	assert.Empty(t, obs.take())
}

func TestManagerNotifyChildren(t *testing.T) {
	p := sliceOf(2, 1)
	m, obs := newTestManager(t, p)
	m.ExpandGroup(0, false)
	obs.take()

	p.InsertChildren(0, 1, SliceChild{ID: 7}, SliceChild{ID: 8})
	m.NotifyChildItemRangeInserted(0, 1, 2)
	assert.Equal(t, []string{"inserted(2,2)"}, obs.take())
	assert.Equal(t, 6, m.ItemCount())

	// group 1 is collapsed, nothing visible changes
	p.InsertChildren(1, 0, SliceChild{ID: 9})
	m.NotifyChildItemInserted(1, 0)
	assert.Empty(t, obs.take())
	assert.Equal(t, 2, m.Translator().ChildCount(1))

	p.RemoveChildren(0, 0, 1)
	m.NotifyChildItemRemoved(0, 0)
	assert.Equal(t, []string{"removed(1,1)"}, obs.take())

	p.RemoveChildren(0, 1, 2)
	m.NotifyChildItemRangeRemoved(0, 1, 2)
	assert.Equal(t, []string{"removed(2,2)"}, obs.take())
	assert.Equal(t, 3, m.ItemCount())

	p.RemoveChildren(1, 0, 1)
	m.NotifyChildItemRemoved(1, 0)
	assert.Empty(t, obs.take())
}

func TestManagerNotifyChanged(t *testing.T) {
	m, obs := newTestManager(t, sliceOf(3, 2))
	m.ExpandGroup(1, false)
	obs.take()

	m.NotifyGroupItemChanged(1)
	m.NotifyGroupAndChildrenItemsChanged(1)
	m.NotifyGroupAndChildrenItemsChanged(0)
	m.NotifyChildrenOfGroupItemChanged(1)
	m.NotifyChildrenOfGroupItemChanged(0)
	m.NotifyChildItemChanged(1, 1)
	m.NotifyChildItemRangeChanged(1, 1, 5)
	m.NotifyChildItemRangeChanged(1, 2, 1)
	m.NotifyChildItemRangeChanged(0, 0, 1)

	assert.Equal(t, []string{
		"changed(1,1)",
		"changed(1,3)",
		"changed(0,1)",
		"changed(2,2)",
		"changed(3,1)",
		"changed(3,1)",
	}, obs.take())
}

func TestManagerNotifyDataSetChanged(t *testing.T) {
	p := sliceOf(1, 2, 3)
	hooks := vetoHooks{noExpand: map[int]bool{0: true, 1: true, 2: true}}
	m, obs := newTestManager(t, p)
	m.ExpandGroup(1, false)
	obs.take()

	p.MoveGroupItem(1, 2)
	p.RemoveGroups(0, 1)
	m.hooks = hooks
	m.NotifyDataSetChanged()

	assert.Equal(t, []string{"dataset"}, obs.take())
	assert.Equal(t, 2, m.GroupCount())
	assert.False(t, m.IsGroupExpanded(0))
	assert.True(t, m.IsGroupExpanded(1))
	assert.Equal(t, 2+2, m.ItemCount())
}

func TestNewRequiresProvider(t *testing.T) {
	assert.PanicsWithValue(t, ErrNoProvider, func() { New(nil, nil) })

	logger.New("NOOP")
	m := New(sliceOf(1), nil)
	assert.True(t, m.ExpandGroup(0, false))
}

func TestManagerMoveGroup(t *testing.T) {
	p := sliceOf(2, 1, 0)
	m, obs := newTestManager(t, p)

	assert.Equal(t, 2, m.MoveItem(0, 2))
	assert.Equal(t, []string{"moved(0,2)"}, obs.take())
	assert.Equal(t, []int64{11, 12, 10}, groupIDs(p))
	assert.Equal(t, uint32(10), m.Translator().GroupID(2))

	// the moved group takes its expanded children along
	m.ExpandGroup(2, false)
	obs.take()
	assert.Equal(t, 0, m.MoveItem(2, 0))
	assert.Equal(t, []string{"removed(2,3)", "inserted(0,3)"}, obs.take())
	assert.Equal(t, packedpos.ForChild(0, 1), m.ItemAt(2))
}

// mirrorObserver keeps a copy of the flat list of item ids, updated only
// from the notifications.
type mirrorObserver struct {
	m    *Manager
	rows []uint64
}

func (o *mirrorObserver) ItemRangeInserted(start, count int) {
	ids := make([]uint64, count)
	for i := range ids {
		ids[i] = o.m.ItemID(start + i)
	}
	o.rows = slices.Insert(o.rows, start, ids...)
}

func (o *mirrorObserver) ItemRangeRemoved(start, count int) {
	o.rows = slices.Delete(o.rows, start, start+count)
}

func (o *mirrorObserver) ItemRangeChanged(start, count int) {}

func (o *mirrorObserver) ItemMoved(from, to int) {
	id := o.rows[from]
	o.rows = slices.Delete(o.rows, from, from+1)
	o.rows = slices.Insert(o.rows, to, id)
}

func (o *mirrorObserver) DataSetChanged() {}

func (o *mirrorObserver) requireInSync(t *testing.T) {
	t.Helper()
	require.Len(t, o.rows, o.m.ItemCount())
	for f, id := range o.rows {
		require.Equal(t, o.m.ItemID(f), id, "row %d", f)
	}
}

func TestManagerMoveExpandedGroupKeepsMirrorInSync(t *testing.T) {
	logger.New("NOOP")
	p := sliceOf(1, 2, 0)
	mirror := &mirrorObserver{}
	m := New(p, mirror)
	mirror.m = m
	for f, n := 0, m.ItemCount(); f < n; f++ {
		mirror.rows = append(mirror.rows, m.ItemID(f))
	}

	m.ExpandGroup(1, false)
	mirror.requireInSync(t)
	// g0 0, g1 1, c 2-3, g2 4

	// up, onto the group above
	assert.Equal(t, 0, m.MoveItem(1, 0))
	mirror.requireInSync(t)
	assert.Equal(t, []int64{11, 10, 12}, groupIDs(p))

	// down, onto the last group
	assert.Equal(t, 2, m.MoveItem(0, 4))
	mirror.requireInSync(t)
	assert.Equal(t, []int64{10, 12, 11}, groupIDs(p))
	assert.Equal(t, packedpos.ForChild(2, 1), m.ItemAt(4))

	// a collapsed group is still a single row move
	assert.Equal(t, 1, m.MoveItem(0, 1))
	mirror.requireInSync(t)
	assert.Equal(t, []int64{12, 10, 11}, groupIDs(p))
}

func TestManagerMoveGroupOntoChild(t *testing.T) {
	p := sliceOf(1, 2, 1)
	m, obs := newTestManager(t, p)
	m.ExpandGroup(1, false)
	obs.take()
	// g0 0, g1 1, c 2-3, g2 4

	// the group lands after the expanded group it was dropped into
	assert.Equal(t, 3, m.MoveItem(0, 3))
	assert.Equal(t, []int64{11, 10, 12}, groupIDs(p))
	assert.Equal(t, []string{"moved(0,3)"}, obs.take())
	assert.Equal(t, packedpos.ForGroup(1), m.ItemAt(3))

	// onto one of its own children
	assert.Equal(t, 0, m.MoveItem(0, 1))
	assert.Empty(t, obs.take())
}

func TestManagerMoveChildOntoChild(t *testing.T) {
	p := sliceOf(2, 2)
	m, obs := newTestManager(t, p)
	m.ExpandAll()
	obs.take()
	// g0 0, a0 1, a1 2, g1 3, b0 4, b1 5

	assert.Equal(t, 4, m.MoveItem(1, 4))
	assert.Equal(t, []string{"moved(1,4)"}, obs.take())
	assert.Equal(t, []int64{101}, childIDs(p, 0))
	assert.Equal(t, []int64{200, 100, 201}, childIDs(p, 1))
	assert.Equal(t, 1, m.Translator().ChildCount(0))
	assert.Equal(t, 3, m.Translator().ChildCount(1))

	// within a group
	assert.Equal(t, 5, m.MoveItem(3, 5))
	assert.Equal(t, []string{"moved(3,5)"}, obs.take())
	assert.Equal(t, []int64{100, 201, 200}, childIDs(p, 1))

	// dragging up into another group
	assert.Equal(t, 1, m.MoveItem(4, 1))
	assert.Equal(t, []int64{201, 101}, childIDs(p, 0))
	assert.Equal(t, []int64{100, 200}, childIDs(p, 1))
}

func TestManagerMoveChildOntoGroup(t *testing.T) {
	t.Run("down into collapsed group", func(t *testing.T) {
		p := sliceOf(2, 1)
		m, obs := newTestManager(t, p)
		m.ExpandGroup(0, false)
		obs.take()
		// g0 0, a0 1, a1 2, g1 3

		assert.Equal(t, translator.NoFlatPosition, m.MoveItem(1, 3))
		assert.Equal(t, []string{"removed(1,1)"}, obs.take())
		assert.Equal(t, []int64{200, 100}, childIDs(p, 1))
		assert.Equal(t, 3, m.ItemCount())
	})

	t.Run("down into expanded group", func(t *testing.T) {
		p := sliceOf(2, 1)
		m, obs := newTestManager(t, p)
		m.ExpandAll()
		obs.take()
		// g0 0, a0 1, a1 2, g1 3, b0 4

		assert.Equal(t, 3, m.MoveItem(1, 3))
		assert.Equal(t, []string{"moved(1,3)"}, obs.take())
		assert.Equal(t, []int64{100, 200}, childIDs(p, 1))
	})

	t.Run("up to end of previous group", func(t *testing.T) {
		p := sliceOf(1, 2)
		m, obs := newTestManager(t, p)
		m.ExpandAll()
		obs.take()
		// g0 0, a0 1, g1 2, b0 3, b1 4

		assert.Equal(t, 2, m.MoveItem(3, 2))
		assert.Equal(t, []string{"moved(3,2)"}, obs.take())
		assert.Equal(t, []int64{100, 200}, childIDs(p, 0))
		assert.Equal(t, []int64{201}, childIDs(p, 1))
	})

	t.Run("up onto first group", func(t *testing.T) {
		p := sliceOf(2)
		m, obs := newTestManager(t, p)
		m.ExpandAll()
		obs.take()

		assert.Equal(t, 1, m.MoveItem(2, 0))
		assert.Equal(t, []string{"moved(2,1)"}, obs.take())
		assert.Equal(t, []int64{101, 100}, childIDs(p, 0))
	})
}

func TestManagerMoveItemWithoutMover(t *testing.T) {
	m, obs := newTestManager(t, struct{ Provider }{sliceOf(1, 1)})
	assert.Equal(t, 0, m.MoveItem(0, 1))
	assert.Empty(t, obs.take())

	mm, _ := newTestManager(t, sliceOf(1, 1))
	assert.Equal(t, 1, mm.MoveItem(1, 1))
	assert.Panics(t, func() { mm.MoveItem(0, 9) })
}

func groupIDs(p *SliceProvider) []int64 {
	var ids []int64
	for _, g := range p.Groups {
		ids = append(ids, g.ID)
	}
	return ids
}

func childIDs(p *SliceProvider, group int) []int64 {
	var ids []int64
	for _, c := range p.Groups[group].Children {
		ids = append(ids, c.ID)
	}
	return ids
}

func TestManagerNotifyMoved(t *testing.T) {
	p := sliceOf(2, 1, 0)
	m, obs := newTestManager(t, p)
	m.ExpandGroup(0, false)
	obs.take()
	// g0 0, a0 1, a1 2, g1 3, g2 4

	p.MoveGroupItem(1, 0)
	m.NotifyGroupItemMoved(1, 0)
	assert.Equal(t, []string{"moved(3,0)"}, obs.take())
	// g1 0, g0 1, a0 2, a1 3, g2 4

	p.MoveGroupItem(1, 2)
	m.NotifyGroupItemMoved(1, 2)
	assert.Equal(t, []string{"removed(1,3)", "inserted(2,3)"}, obs.take())
	assert.Equal(t, packedpos.ForChild(2, 1), m.ItemAt(4))

	m.NotifyGroupItemMoved(2, 2)
	assert.Empty(t, obs.take())

	// into the collapsed group 0, out of sight
	p.MoveChildItem(2, 0, 0, 0)
	m.NotifyChildItemMoved(2, 0, 0, 0)
	assert.Equal(t, []string{"removed(3,1)"}, obs.take())

	// and back again
	p.MoveChildItem(0, 0, 2, 1)
	m.NotifyChildItemMoved(0, 0, 2, 1)
	assert.Equal(t, []string{"inserted(4,1)"}, obs.take())

	p.MoveChildItem(2, 1, 2, 0)
	m.NotifyChildItemMoved(2, 1, 2, 0)
	assert.Equal(t, []string{"moved(4,3)"}, obs.take())
	assert.Equal(t, 5, m.ItemCount())
}
