package packedpos

import "fmt"

// Position is a hierarchical (group, child) address packed into 64 bits.
type Position uint64

const (
	// NoChild is the child index of a group only Position.
	NoChild = -1

	lower32Mask = uint64(0x00000000ffffffff)
	upper32Mask = uint64(0xffffffff00000000)

	// NoPosition is the packed equivalent of "no flat position".
	NoPosition Position = Position(lower32Mask)
)

// ForChild returns the packed position of child childIndex in group groupIndex.
func ForChild(groupIndex, childIndex int) Position {
	return Position(uint64(uint32(childIndex))<<32 | uint64(uint32(groupIndex)))
}

// ForGroup returns the packed position of the group row itself.
func ForGroup(groupIndex int) Position {
	return Position(upper32Mask | uint64(uint32(groupIndex)))
}

// Group returns the group index. NoPosition reads back as -1.
func (p Position) Group() int {
	return int(int32(uint64(p) & lower32Mask))
}

// Child returns the child index, or NoChild for a group only position.
func (p Position) Child() int {
	return int(int32(uint64(p) >> 32))
}

func (p Position) IsNone() bool { return p == NoPosition }

// IsGroup is true for group only positions. It is false for NoPosition.
func (p Position) IsGroup() bool {
	return p != NoPosition && p.Child() == NoChild
}

func (p Position) String() string {
	if p == NoPosition {
		return "none"
	}
	if p.Child() == NoChild {
		return fmt.Sprintf("g%d", p.Group())
	}
	return fmt.Sprintf("g%d/c%d", p.Group(), p.Child())
}
