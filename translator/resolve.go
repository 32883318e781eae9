package translator

import (
	"sort"

	"github.com/forestrie/go-expandlist/packedpos"
)

// Resolve returns the hierarchical position of the row at flatPosition.
//
// packedpos.NoPosition is returned for negative positions (including
// NoFlatPosition) and for positions at or beyond FlatItemCount. That is the
// normal "not present" answer, not a fault.
//
// The search starts from the cached offsets and walks forward from there,
// confirming (and caching) offsets as it goes. On a structure that is not
// changing, repeated calls settle to a binary search.
func (t *Translator) Resolve(flatPosition int) packedpos.Position {
	if flatPosition < 0 || t.groupCount == 0 {
		return packedpos.NoPosition
	}

	start := t.searchCachedOffsets(flatPosition)
	offset := 0
	if start > 0 {
		offset = t.info[start].offset()
	}

	result := packedpos.NoPosition
	reached := t.frontier

	for i := start; i < t.groupCount; i++ {
		gi := t.info[i]

		t.info[i] = gi.withOffset(offset)
		reached = i

		if offset >= flatPosition {
			result = packedpos.ForGroup(i)
			break
		}
		offset++

		if n := gi.visibleChildCount(); n > 0 {
			if flatPosition < offset+n {
				result = packedpos.ForChild(i, flatPosition-offset)
				break
			}
			offset += n
		}
	}

	t.frontier = max(t.frontier, reached)
	return result
}

// ResolveFlat returns the flat position of pos, or NoFlatPosition when pos
// does not address a visible row: NoPosition, a group out of range, a child
// of a collapsed group or a child index out of range.
func (t *Translator) ResolveFlat(pos packedpos.Position) int {
	if pos.IsNone() {
		return NoFlatPosition
	}

	group := pos.Group()
	child := pos.Child()

	if group < 0 || group >= t.groupCount {
		return NoFlatPosition
	}
	if child != packedpos.NoChild {
		if child < 0 || !t.info[group].expanded() {
			return NoFlatPosition
		}
	}

	start := max(0, min(group, t.frontier))
	offset := 0
	if start > 0 {
		offset = t.info[start].offset()
	}

	flatPosition := NoFlatPosition
	reached := t.frontier

	for i := start; i < t.groupCount; i++ {
		gi := t.info[i]

		t.info[i] = gi.withOffset(offset)
		reached = i

		if i == group {
			if child == packedpos.NoChild {
				flatPosition = offset
			} else if child < gi.childCount() {
				flatPosition = offset + 1 + child
			}
			break
		}
		offset += 1 + gi.visibleChildCount()
	}

	t.frontier = max(t.frontier, reached)
	return flatPosition
}

// searchCachedOffsets returns the last group in [0, frontier] whose cached
// offset is <= flatPosition, or 0 if there is none. Offsets are strictly
// increasing within the valid range because every group contributes its own
// row.
func (t *Translator) searchCachedOffsets(flatPosition int) int {
	if t.frontier <= 0 {
		return 0
	}
	end := t.frontier
	if flatPosition >= t.info[end].offset() {
		return end
	}
	i := sort.Search(end+1, func(i int) bool {
		return t.info[i].offset() > flatPosition
	})
	if i == 0 {
		return 0
	}
	return i - 1
}
