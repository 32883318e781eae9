package packedpos

// ViewKindFlagGroup marks a raw view kind as belonging to a group row.
const ViewKindFlagGroup = uint32(0x80000000)

// TagGroupViewKind marks kind as a group row kind.
func TagGroupViewKind(kind uint32) uint32 {
	return kind | ViewKindFlagGroup
}

func IsGroupViewKind(raw uint32) bool {
	return (raw & ViewKindFlagGroup) != 0
}

// GroupViewKind recovers the caller's kind from a tagged group kind.
func GroupViewKind(raw uint32) uint32 {
	return raw &^ ViewKindFlagGroup
}

// ChildViewKind recovers the caller's kind from a child kind.
func ChildViewKind(raw uint32) uint32 {
	return raw &^ ViewKindFlagGroup
}
