package packedpos

/*

# Packed positions for two level (group / child) lists

An expandable list renders a single linear sequence of rows, the *flat*
positions, but callers address rows hierarchically: a group, or a child
within a group. This package provides the primitive encodings shared by the
translator and its callers. Like the mmr package it is a set of small pure
functions over fixed bit layouts, and it places a burden of knowledge on the
caller: indices are assumed non-negative and representable in the documented
widths. Nothing here is checked on the hot path.

## Position

A Position packs a hierarchical address into 64 bits:

	 63                32 31                 0
	+--------------------+--------------------+
	|  child index       |  group index       |
	+--------------------+--------------------+

A group only address carries the all ones child field (NoChild when read
back as a signed 32 bit value). NoPosition is the distinguished "not
present" value. It reads back as group -1, so it can never collide with a
real address.

## Combined identities

Rows that need a stable identity (for persistence, or for matching rows
across a rebuild) combine the external group id and child id:

	 63 62               32 31                 0
	+--+------------------+--------------------+
	|0 | group id (31 bit)| child id / all ones|
	+--+------------------+--------------------+

The group form sets the child field to all ones. Child ids are therefore
restricted to [0, MaxChildID] so no child identity can equal a group
identity.

## View kinds

The renderer distinguishes group rows from child rows by tagging the
caller's opaque 32 bit view kind with ViewKindFlagGroup. Callers must not
use that bit themselves.
*/
