package packedpos

const (
	lower31Mask = uint64(0x000000007fffffff)

	// MaxGroupID is the largest group id preserved by the combined identity.
	// Larger ids are truncated to their low 31 bits.
	MaxGroupID = int64(lower31Mask)
	// MaxChildID is the largest child id that keeps child identities
	// distinct from group identities.
	MaxChildID = int64(lower31Mask)
)

// CombinedChildID returns the identity of a child row.
func CombinedChildID(groupID, childID int64) uint64 {
	return (uint64(groupID)&lower31Mask)<<32 | (uint64(childID) & lower32Mask)
}

// CombinedGroupID returns the identity of a group row.
func CombinedGroupID(groupID int64) uint64 {
	return (uint64(groupID)&lower31Mask)<<32 | lower32Mask
}

// SplitCombinedID inverts CombinedChildID and CombinedGroupID.
func SplitCombinedID(id uint64) (groupID uint32, childID uint32, isGroup bool) {
	groupID = uint32((id >> 32) & lower31Mask)
	childID = uint32(id & lower32Mask)
	isGroup = (id & lower32Mask) == lower32Mask
	return groupID, childID, isGroup
}
