package translator

// Each group is described by a single packed word:
//
//	bit 63:     expanded
//	bit 62-32:  flat offset of the group row (cache, see Translator.frontier)
//	bit 31:     reserved, always zero
//	bit 30-0:   child count
type groupInfo uint64

const (
	flagExpanded   = groupInfo(1) << 63
	offsetShift    = 32
	offsetMask     = groupInfo(0x7fffffff) << offsetShift
	childCountMask = groupInfo(0x7fffffff)

	// MaxChildCount is the largest child count a group can hold.
	MaxChildCount = int(childCountMask)
	// MaxFlatPosition is the largest offset the cache can represent.
	MaxFlatPosition = int(offsetMask >> offsetShift)
)

func newGroupInfo(offset int, childCount int) groupInfo {
	return groupInfo(offset)<<offsetShift&offsetMask | groupInfo(childCount)&childCountMask
}

func (gi groupInfo) expanded() bool { return gi&flagExpanded != 0 }
func (gi groupInfo) offset() int { return int((gi & offsetMask) >> offsetShift) }
func (gi groupInfo) childCount() int { return int(gi & childCountMask) }

func (gi groupInfo) visibleChildCount() int {
	if gi&flagExpanded == 0 {
		return 0
	}
	return int(gi & childCountMask)
}

func (gi groupInfo) withOffset(offset int) groupInfo {
	return gi&^offsetMask | groupInfo(offset)<<offsetShift&offsetMask
}

func (gi groupInfo) withChildCount(n int) groupInfo {
	return gi&^childCountMask | groupInfo(n)&childCountMask
}

func (gi groupInfo) withExpanded(expanded bool) groupInfo {
	if expanded {
		return gi | flagExpanded
	}
	return gi &^ flagExpanded
}
