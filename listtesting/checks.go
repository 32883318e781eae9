package listtesting

import (
	"github.com/forestrie/go-expandlist/packedpos"
	"github.com/forestrie/go-expandlist/translator"
	"github.com/stretchr/testify/require"
)

// RequireMatches fails the test unless tr presents exactly the rows of m.
// The flat positions are probed in a scattered order so that both the warm
// and the cold paths through the offset cache are exercised.
func (c *TestContext) RequireMatches(tr *translator.Translator, m *Model, msgAndArgs ...any) {
	t := c.T
	t.Helper()

	layout := m.Layout()
	require.Equal(t, len(m.Groups), tr.GroupCount(), msgAndArgs...)
	require.Equal(t, len(layout), tr.FlatItemCount(), msgAndArgs...)
	require.Equal(t, m.ExpandedGroupCount(), tr.ExpandedGroupCount(), msgAndArgs...)

	for g, mg := range m.Groups {
		require.Equal(t, uint32(mg.ID), tr.GroupID(g), msgAndArgs...)
		require.Equal(t, mg.ChildCount, tr.ChildCount(g), msgAndArgs...)
		require.Equal(t, mg.Expanded, tr.IsExpanded(g), msgAndArgs...)
	}

	for _, f := range c.Rand.Perm(len(layout)) {
		require.Equal(t, layout[f], tr.Resolve(f), msgAndArgs...)
	}
	for f, pos := range layout {
		require.Equal(t, f, tr.ResolveFlat(pos), msgAndArgs...)
	}
	require.Equal(t, packedpos.NoPosition, tr.Resolve(len(layout)), msgAndArgs...)

	require.Equal(t, m.ExpandedIDs(), tr.SnapshotExpandedIDs(), msgAndArgs...)
}
