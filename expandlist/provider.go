package expandlist

// Provider supplies the two level data the list presents. Group and child
// positions are indices into the provider's current data.
type Provider interface {
	GroupCount() int
	ChildCount(group int) int
	// GroupID returns a stable identifier for the group. Only the low 31
	// bits take part in row identities and only the low 32 bits are kept for
	// restoring the expanded set.
	GroupID(group int) int64
	ChildID(group, child int) int64
}

// Mover is implemented by providers whose items can be reordered by
// dragging. The manager calls these to make the provider's data follow a
// MoveItem before it updates its own positions.
type Mover interface {
	MoveGroupItem(fromGroup, toGroup int)
	MoveChildItem(fromGroup, fromChild, toGroup, toChild int)
}

// ViewKindProvider is implemented by providers that render more than one
// kind of row. Kinds must not use packedpos.ViewKindFlagGroup.
type ViewKindProvider interface {
	GroupViewKind(group int) uint32
	ChildViewKind(group, child int) uint32
}

// Observer receives changes to the flat list, in flat positions, in the
// order they happen.
type Observer interface {
	ItemRangeInserted(start, count int)
	ItemRangeRemoved(start, count int)
	ItemRangeChanged(start, count int)
	ItemMoved(from, to int)
	DataSetChanged()
}

// Hooks may veto an expand or collapse before it happens. fromUser is true
// when the change was requested by a tap.
type Hooks interface {
	OnHookGroupExpand(group int, fromUser bool) bool
	OnHookGroupCollapse(group int, fromUser bool) bool
}

// Listener is told about every expand and collapse after it happened.
type Listener interface {
	OnGroupExpand(group int, fromUser bool)
	OnGroupCollapse(group int, fromUser bool)
}

// NopObserver ignores all notifications.
type NopObserver struct{}

func (NopObserver) ItemRangeInserted(int, int) {}
func (NopObserver) ItemRangeRemoved(int, int)  {}
func (NopObserver) ItemRangeChanged(int, int)  {}
func (NopObserver) ItemMoved(int, int)         {}
func (NopObserver) DataSetChanged()            {}
