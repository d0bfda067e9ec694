package layout

import (
	"reflect"
	"testing"

	"boxflow/pkg/geom"
	"boxflow/pkg/style"
)

// buildMixedTree exercises all three formatting contexts at once.
func buildMixedTree() *Node {
	gridStyle := style.New()
	gridStyle.Display = style.DisplayGrid
	gridStyle.GridTemplateColumns = []style.TrackSizingFunction{
		style.FrTrack(1), style.FixedTrack(80),
	}
	gridStyle.Height = geom.Length(120)

	flexStyle := style.New()
	flexStyle.Display = style.DisplayFlex
	flexStyle.Height = geom.Length(60)

	grow := style.New()
	grow.FlexGrow = 1
	grow.Height = geom.Length(60)

	blockStyle := style.New()
	blockStyle.Padding = style.UniformEdges(4)

	inner := style.New()
	inner.Height = geom.Length(25)

	rootStyle := style.New()
	rootStyle.Width = geom.Length(400)

	return node("root", rootStyle,
		node("grid", gridStyle,
			node("flex-in-grid", flexStyle,
				node("g1", grow.Clone()), node("g2", grow.Clone())),
			node("cell", inner.Clone())),
		node("block", blockStyle, node("inner", inner.Clone())),
	)
}

func TestComputeIsDeterministic(t *testing.T) {
	tree := buildMixedTree()
	a := computeAt(tree, 800, 600)
	b := computeAt(tree, 800, 600)
	if !reflect.DeepEqual(a, b) {
		t.Error("two computations of the same tree differ")
	}
}

func TestDisplayNoneOccupiesIndex(t *testing.T) {
	hidden := style.New()
	hidden.Display = style.DisplayNone
	hidden.Width = geom.Length(100)
	hidden.Height = geom.Length(100)
	visible := style.New()
	visible.Height = geom.Length(30)
	rootStyle := style.New()
	rootStyle.Width = geom.Length(200)

	l := computeAt(node("root", rootStyle,
		node("a", visible.Clone()),
		node("ghost", hidden, node("ghost-child", style.New())),
		node("b", visible.Clone()),
	), 800, 600)

	if len(l.Children) != 3 {
		t.Fatalf("children = %d, want 3", len(l.Children))
	}
	checkBox(t, l.Children[1], 0, 0, 0, 0)
	if len(l.Children[1].Children) != 1 {
		t.Errorf("ghost children = %d, want 1", len(l.Children[1].Children))
	}
	// b stacks directly after a; the ghost contributes nothing.
	if l.Children[2].Y != 30 {
		t.Errorf("b.y = %g, want 30", l.Children[2].Y)
	}
}

func TestContentsChildrenArePromoted(t *testing.T) {
	contents := style.New()
	contents.Display = style.DisplayContents
	item := func(id string, w float64) *Node {
		st := style.New()
		st.Width = geom.Length(w)
		st.Height = geom.Length(40)
		return node(id, st)
	}

	l := computeAt(node("root", flexRoot(300, 40),
		item("a", 50),
		node("wrap", contents, item("d", 60), item("e", 70)),
		item("b", 40),
	), 800, 600)

	if len(l.Children) != 3 {
		t.Fatalf("children = %d, want 3", len(l.Children))
	}
	checkBox(t, l.Children[0], 0, 0, 50, 40)
	holder := l.Children[1]
	if len(holder.Children) != 2 {
		t.Fatalf("holder children = %d, want 2", len(holder.Children))
	}
	// Promoted grandchildren flow between their uncles, in container
	// coordinates.
	checkBox(t, holder.Children[0], 50, 0, 60, 40)
	checkBox(t, holder.Children[1], 110, 0, 70, 40)
	checkBox(t, l.Children[2], 180, 0, 40, 40)
}

func TestLayoutChildrenCountMatchesInput(t *testing.T) {
	tree := buildMixedTree()
	l := computeAt(tree, 800, 600)
	var walk func(n *Node, l *Layout)
	walk = func(n *Node, l *Layout) {
		if len(n.Children) != len(l.Children) {
			t.Errorf("%s: layout children %d != node children %d",
				n.ID, len(l.Children), len(n.Children))
			return
		}
		for i := range n.Children {
			walk(n.Children[i], l.Children[i])
		}
	}
	walk(tree, l)
}

func TestContainmentInvariant(t *testing.T) {
	tree := buildMixedTree()
	l := computeAt(tree, 800, 600)
	var walk func(parent *Layout)
	walk = func(parent *Layout) {
		cw := parent.ContentWidth()
		ch := parent.ContentHeight()
		for _, c := range parent.Children {
			if c.Width == 0 && c.Height == 0 {
				continue
			}
			if c.X < -0.01 || c.Y < -0.01 {
				t.Errorf("%s: negative position (%g, %g)", c.ID, c.X, c.Y)
			}
			if c.X+c.Width > cw+0.01 {
				t.Errorf("%s: overflows parent width: %g > %g", c.ID, c.X+c.Width, cw)
			}
			if c.Y+c.Height > ch+0.01 {
				t.Errorf("%s: overflows parent height: %g > %g", c.ID, c.Y+c.Height, ch)
			}
			walk(c)
		}
	}
	walk(l)
}

func TestDegenerateStylesStayFinite(t *testing.T) {
	bad := style.New()
	bad.Width = geom.Length(-50)
	bad.Height = geom.Percent(-2)
	bad.MinWidth = geom.Length(400)
	bad.MaxWidth = geom.Length(10)
	bad.ColumnGap = geom.Length(-5)
	bad.Display = style.DisplayFlex
	child := style.New()
	child.FlexGrow = 1
	child.FlexShrink = 0

	l := computeAt(node("root", bad, node("c", child)), 800, 600)
	assertFinite(t, l)
}

func assertFinite(t *testing.T, l *Layout) {
	t.Helper()
	for _, v := range []float64{l.X, l.Y, l.Width, l.Height} {
		if v != v || v > 1e12 || v < -1e12 {
			t.Errorf("%s: non-finite geometry %v", l.ID, v)
		}
	}
	for _, c := range l.Children {
		assertFinite(t, c)
	}
}

func TestRootShrinkOption(t *testing.T) {
	rootStyle := style.New()
	rootStyle.Display = style.DisplayFlex
	rootStyle.Height = geom.Length(40)
	item := style.New()
	item.Width = geom.Length(120)
	item.Height = geom.Length(40)
	tree := node("root", rootStyle, node("a", item))

	ctx := Context{
		AvailableWidth:  geom.Some(800),
		AvailableHeight: geom.Some(600),
		ViewportWidth:   800,
		ViewportHeight:  600,
	}
	fill := New().Compute(tree, ctx)
	if fill.Width != 800 {
		t.Errorf("fill width = %g, want 800", fill.Width)
	}
	shrink := New(WithRootSizing(RootShrink)).Compute(tree, ctx)
	if shrink.Width != 120 {
		t.Errorf("shrink width = %g, want 120", shrink.Width)
	}
}
