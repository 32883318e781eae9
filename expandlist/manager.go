package expandlist

import (
	"fmt"

	"github.com/datatrails/go-datatrails-common/logger"
	"github.com/forestrie/go-expandlist/packedpos"
	"github.com/forestrie/go-expandlist/translator"
)

// NoID is returned by ItemID for positions that are not visible rows.
const NoID = ^uint64(0)

// Manager presents a Provider's groups and children as a single flat list,
// keeps track of which groups are expanded and tells an Observer how the
// flat list changes.
//
// Like the translator it owns, a Manager is not go routine safe.
type Manager struct {
	log      logger.Logger
	provider Provider
	observer Observer
	hooks    Hooks
	listener Listener

	tr *translator.Translator
}

// New builds a manager over the current contents of provider. A nil observer
// discards notifications.
func New(provider Provider, observer Observer, opts ...Option) *Manager {
	if provider == nil {
		panic(ErrNoProvider)
	}

	var o Options
	for _, opt := range opts {
		opt(&o)
	}
	if observer == nil {
		observer = NopObserver{}
	}
	if o.hooks == nil {
		if hooks, ok := provider.(Hooks); ok {
			o.hooks = hooks
		}
	}
	if o.log == nil && logger.Sugar != nil {
		o.log = logger.Sugar.WithServiceName("expandlist")
	}

	m := &Manager{
		log:      o.log,
		provider: provider,
		observer: observer,
		hooks:    o.hooks,
		listener: o.listener,
		tr:       translator.New(nil),
	}
	m.rebuild(o.saved)
	return m
}

// groups reads the current group structure from the provider.
func (m *Manager) groups() []translator.Group {
	n := m.provider.GroupCount()
	groups := make([]translator.Group, n)
	for i := range groups {
		groups[i] = translator.Group{ID: m.provider.GroupID(i), ChildCount: m.provider.ChildCount(i)}
	}
	return groups
}

// rebuild re-reads the provider and applies saved without hooks or
// listeners.
func (m *Manager) rebuild(saved []uint32) {
	m.tr.Build(m.groups())
	m.tr.RestoreExpanded(saved)
	m.debugf("rebuilt: groups %d, rows %d, expanded %d",
		m.tr.GroupCount(), m.tr.FlatItemCount(), m.tr.ExpandedGroupCount())
}

func (m *Manager) debugf(format string, args ...any) {
	if m.log == nil {
		return
	}
	m.log.Debugf(format, args...)
}

// Translator exposes the position translator for read only use. Callers
// must not mutate it directly.
func (m *Manager) Translator() *translator.Translator { return m.tr }

func (m *Manager) ItemCount() int { return m.tr.FlatItemCount() }

func (m *Manager) GroupCount() int { return m.tr.GroupCount() }

// ItemAt returns the position of the row at flatPosition, or
// packedpos.NoPosition.
func (m *Manager) ItemAt(flatPosition int) packedpos.Position {
	return m.tr.Resolve(flatPosition)
}

// FlatPosition returns the flat position of pos or
// translator.NoFlatPosition when it is not visible.
func (m *Manager) FlatPosition(pos packedpos.Position) int {
	return m.tr.ResolveFlat(pos)
}

// ItemID returns the combined identity of the row at flatPosition, or NoID.
func (m *Manager) ItemID(flatPosition int) uint64 {
	pos := m.tr.Resolve(flatPosition)
	if pos.IsNone() {
		return NoID
	}
	groupID := m.provider.GroupID(pos.Group())
	if pos.IsGroup() {
		return packedpos.CombinedGroupID(groupID)
	}
	return packedpos.CombinedChildID(groupID, m.provider.ChildID(pos.Group(), pos.Child()))
}

// ItemViewKind returns the view kind of the row at flatPosition, with
// packedpos.ViewKindFlagGroup set for group rows. Providers that do not
// implement ViewKindProvider have a single kind, 0.
func (m *Manager) ItemViewKind(flatPosition int) (uint32, error) {
	pos := m.tr.Resolve(flatPosition)
	if pos.IsNone() {
		return 0, fmt.Errorf("%w: ItemViewKind(%d), item count = %d",
			ErrInvalidFlatPosition, flatPosition, m.tr.FlatItemCount())
	}

	var kind uint32
	if vk, ok := m.provider.(ViewKindProvider); ok {
		if pos.IsGroup() {
			kind = vk.GroupViewKind(pos.Group())
		} else {
			kind = vk.ChildViewKind(pos.Group(), pos.Child())
		}
	}
	if packedpos.IsGroupViewKind(kind) {
		return 0, fmt.Errorf("%w: kind %#x at %v", ErrIllegalViewKind, kind, pos)
	}
	if pos.IsGroup() {
		return packedpos.TagGroupViewKind(kind), nil
	}
	return kind, nil
}

func (m *Manager) IsGroupExpanded(group int) bool {
	return m.tr.IsExpanded(group)
}

// ExpandGroup expands group unless it is already expanded or a hook vetoes
// it. The child rows are reported as inserted and the group row as changed.
func (m *Manager) ExpandGroup(group int, fromUser bool) bool {
	if m.tr.IsExpanded(group) {
		return false
	}
	if m.hooks != nil && !m.hooks.OnHookGroupExpand(group, fromUser) {
		m.debugf("expand vetoed: group %d, fromUser %v", group, fromUser)
		return false
	}

	if m.tr.ExpandGroup(group) {
		flat := m.tr.ResolveFlat(packedpos.ForGroup(group))
		if n := m.tr.ChildCount(group); n > 0 {
			m.observer.ItemRangeInserted(flat+1, n)
		}
		m.observer.ItemRangeChanged(flat, 1)
	}

	if m.listener != nil {
		m.listener.OnGroupExpand(group, fromUser)
	}
	return true
}

// CollapseGroup collapses group unless it is already collapsed or a hook
// vetoes it.
func (m *Manager) CollapseGroup(group int, fromUser bool) bool {
	if !m.tr.IsExpanded(group) {
		return false
	}
	if m.hooks != nil && !m.hooks.OnHookGroupCollapse(group, fromUser) {
		m.debugf("collapse vetoed: group %d, fromUser %v", group, fromUser)
		return false
	}

	if m.tr.CollapseGroup(group) {
		flat := m.tr.ResolveFlat(packedpos.ForGroup(group))
		if n := m.tr.ChildCount(group); n > 0 {
			m.observer.ItemRangeRemoved(flat+1, n)
		}
		m.observer.ItemRangeChanged(flat, 1)
	}

	if m.listener != nil {
		m.listener.OnGroupCollapse(group, fromUser)
	}
	return true
}

// ToggleGroup flips the expanded state of group as a user action.
func (m *Manager) ToggleGroup(group int) bool {
	if m.tr.IsExpanded(group) {
		return m.CollapseGroup(group, true)
	}
	return m.ExpandGroup(group, true)
}

// TapItem toggles the group at flatPosition. Taps on child rows, and on
// positions that are not rows, do nothing and return false.
func (m *Manager) TapItem(flatPosition int) bool {
	pos := m.tr.Resolve(flatPosition)
	if pos.IsNone() || !pos.IsGroup() {
		return false
	}
	return m.ToggleGroup(pos.Group())
}

// ExpandAll expands every group, subject to the hooks. It returns the number
// of groups that changed.
func (m *Manager) ExpandAll() int {
	n := 0
	for g := 0; g < m.tr.GroupCount(); g++ {
		if m.ExpandGroup(g, false) {
			n++
		}
	}
	return n
}

func (m *Manager) CollapseAll() int {
	n := 0
	for g := 0; g < m.tr.GroupCount(); g++ {
		if m.CollapseGroup(g, false) {
			n++
		}
	}
	return n
}

// SavedState returns the ids of the expanded groups, for RestoreState or
// WithSavedState.
func (m *Manager) SavedState() []uint32 {
	return m.tr.SnapshotExpandedIDs()
}

// RestoreState expands exactly the groups whose ids are in ids. The hooks
// and listener are consulted only when asked for, with fromUser false. The
// observer is told the data set changed.
func (m *Manager) RestoreState(ids []uint32, callHooks, callListeners bool) {
	var opts []translator.RestoreOption
	if callHooks && m.hooks != nil {
		opts = append(opts,
			translator.WithExpandHook(func(g int) bool { return m.hooks.OnHookGroupExpand(g, false) }),
			translator.WithCollapseHook(func(g int) bool { return m.hooks.OnHookGroupCollapse(g, false) }),
		)
	}
	if callListeners && m.listener != nil {
		opts = append(opts,
			translator.WithExpandListener(func(g int) { m.listener.OnGroupExpand(g, false) }),
			translator.WithCollapseListener(func(g int) { m.listener.OnGroupCollapse(g, false) }),
		)
	}
	m.tr.RestoreExpanded(ids, opts...)
	m.observer.DataSetChanged()
}
