package incremental

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"boxflow/pkg/geom"
	"boxflow/pkg/style"
)

func sizedStyle(w, h float64) *style.Style {
	st := style.New()
	st.Width = geom.Length(w)
	st.Height = geom.Length(h)
	return st
}

// buildWideTree returns a root with n fixed-size leaves.
func buildWideTree(n int) *LayoutNode {
	root := &LayoutNode{Uid: 0, ID: "root", Style: style.New()}
	for i := 1; i <= n; i++ {
		root.Children = append(root.Children, &LayoutNode{
			Uid:   i,
			ID:    fmt.Sprintf("leaf-%d", i),
			Style: sizedStyle(50, 10),
		})
	}
	return root
}

func TestIncrementalIdempotence(t *testing.T) {
	tree := New(buildWideTree(100), geom.Size{Width: 800, Height: 600})

	first := tree.ComputeIncremental()
	firstStats := tree.CacheStats()
	require.Greater(t, firstStats.Misses, int64(0))
	require.Zero(t, firstStats.Hits)

	tree.ResetStats()
	second := tree.ComputeIncremental()
	secondStats := tree.CacheStats()

	assert.Equal(t, first, second, "identical layout on recompute")
	assert.Zero(t, secondStats.Misses, "no misses on an unchanged tree")
	assert.Greater(t, secondStats.Hits, int64(0))
	assert.Equal(t, 1.0, secondStats.HitRate())
}

func TestDirtyPropagation(t *testing.T) {
	inner := &LayoutNode{Uid: 2, ID: "inner", Style: sizedStyle(40, 10)}
	mid := &LayoutNode{Uid: 1, ID: "mid", Style: style.New(), Children: []*LayoutNode{inner}}
	other := &LayoutNode{Uid: 3, ID: "other", Style: sizedStyle(40, 10)}
	root := &LayoutNode{Uid: 0, ID: "root", Style: style.New(), Children: []*LayoutNode{mid, other}}

	tree := New(root, geom.Size{Width: 800, Height: 600})
	tree.ComputeIncremental()

	require.False(t, inner.Dirty())
	require.False(t, root.ChildrenDirty())

	tree.SetStyle(2, sizedStyle(60, 10))

	assert.True(t, inner.Dirty())
	assert.True(t, mid.ChildrenDirty(), "ancestor chain flagged")
	assert.True(t, root.ChildrenDirty(), "ancestor chain flagged transitively")
	assert.False(t, mid.Dirty(), "ancestors are not themselves dirty")
	assert.False(t, other.Dirty(), "siblings untouched")
	assert.False(t, other.ChildrenDirty())
}

func TestPaintOnlyStyleSwapKeepsCache(t *testing.T) {
	tree := New(buildWideTree(10), geom.Size{Width: 800, Height: 600})
	tree.ComputeIncremental()

	recolored := sizedStyle(50, 10)
	recolored.Color = "#ff0000"
	tree.SetStyle(3, recolored)

	require.False(t, tree.Node(3).Dirty())

	tree.ResetStats()
	tree.ComputeIncremental()
	assert.Zero(t, tree.CacheStats().Misses, "color change does not invalidate layout")
	assert.Equal(t, "#ff0000", tree.Node(3).Style.Color, "new style retained")
}

func TestWidthChangeMissesExactlyOnce(t *testing.T) {
	tree := New(buildWideTree(100), geom.Size{Width: 800, Height: 600})
	tree.ComputeIncremental()

	tree.SetStyle(7, sizedStyle(75, 10))

	tree.ResetStats()
	tree.ComputeIncremental()
	stats := tree.CacheStats()
	assert.Equal(t, int64(1), stats.Misses, "only the restyled leaf misses")
	assert.Equal(t, int64(99), stats.Hits, "every sibling hits")
}

func TestViewportResizeSelectivity(t *testing.T) {
	static := &LayoutNode{Uid: 1, ID: "static", Style: sizedStyle(50, 20)}
	fluid := &LayoutNode{Uid: 2, ID: "fluid", Style: func() *style.Style {
		st := style.New()
		st.Width = geom.Percent(0.5)
		st.Height = geom.Length(20)
		return st
	}()}
	root := &LayoutNode{Uid: 0, ID: "root", Style: style.New(), Children: []*LayoutNode{static, fluid}}

	tree := New(root, geom.Size{Width: 800, Height: 600})
	tree.ComputeIncremental()

	tree.ResizeViewport(900, 600)

	assert.False(t, static.Dirty(), "static node keeps its cache")
	assert.True(t, fluid.Dirty(), "percent-width node invalidated on width change")

	tree.ResetStats()
	l := tree.ComputeIncremental()
	assert.Equal(t, 450.0, l.Children[1].Width)
	assert.GreaterOrEqual(t, tree.CacheStats().Hits, int64(1), "static child served from cache")
}

func TestHeightOnlyResizeSparesWidthDependents(t *testing.T) {
	fluid := &LayoutNode{Uid: 1, ID: "fluid", Style: func() *style.Style {
		st := style.New()
		st.Width = geom.Percent(0.5)
		st.Height = geom.Length(20)
		return st
	}()}
	root := &LayoutNode{Uid: 0, ID: "root", Style: style.New(), Children: []*LayoutNode{fluid}}

	tree := New(root, geom.Size{Width: 800, Height: 600})
	tree.ComputeIncremental()

	tree.ResizeViewport(800, 700)
	assert.False(t, fluid.Dirty(), "width-dependent node spared by height-only resize")
}

func TestAddRemoveChild(t *testing.T) {
	tree := New(buildWideTree(3), geom.Size{Width: 800, Height: 600})
	l := tree.ComputeIncremental()
	require.Len(t, l.Children, 3)

	tree.AddChild(0, &LayoutNode{Uid: 50, ID: "new", Style: sizedStyle(30, 10)})
	l = tree.ComputeIncremental()
	require.Len(t, l.Children, 4)
	assert.Equal(t, 30.0, l.Children[3].Width)
	assert.Equal(t, tree.Node(50).Uid, 50)

	tree.RemoveChild(0, 0)
	l = tree.ComputeIncremental()
	require.Len(t, l.Children, 3)
	assert.Nil(t, tree.Node(1), "removed subtree unregistered")
}

func TestClearCacheForcesFullRecompute(t *testing.T) {
	tree := New(buildWideTree(5), geom.Size{Width: 800, Height: 600})
	tree.ComputeIncremental()

	tree.ClearCache()
	tree.ResetStats()
	tree.ComputeIncremental()
	assert.Zero(t, tree.CacheStats().Hits)
	assert.Greater(t, tree.CacheStats().Misses, int64(0))
}

func TestComputeFullMatchesIncremental(t *testing.T) {
	tree := New(buildWideTree(10), geom.Size{Width: 800, Height: 600})
	assert.Equal(t, tree.ComputeFull(), tree.ComputeIncremental())
}
