package layout

import (
	"testing"

	"boxflow/pkg/geom"
	"boxflow/pkg/style"
)

func flexRoot(w, h float64) *style.Style {
	st := style.New()
	st.Display = style.DisplayFlex
	st.Width = geom.Length(w)
	st.Height = geom.Length(h)
	return st
}

func flexItemStyle(grow float64, h float64) *style.Style {
	st := style.New()
	st.FlexGrow = grow
	st.Height = geom.Length(h)
	return st
}

func TestFlexRowGrowSplitsEvenly(t *testing.T) {
	l := computeAt(node("root", flexRoot(300, 50),
		node("a", flexItemStyle(1, 50)),
		node("b", flexItemStyle(1, 50)),
	), 800, 600)

	checkBox(t, l.Children[0], 0, 0, 150, 50)
	checkBox(t, l.Children[1], 150, 0, 150, 50)
}

func TestFlexGrowRatio(t *testing.T) {
	l := computeAt(node("root", flexRoot(300, 50),
		node("a", flexItemStyle(1, 50)),
		node("b", flexItemStyle(2, 50)),
	), 800, 600)

	checkBox(t, l.Children[0], 0, 0, 100, 50)
	checkBox(t, l.Children[1], 100, 0, 200, 50)
}

func TestFlexWrap(t *testing.T) {
	rootStyle := style.New()
	rootStyle.Display = style.DisplayFlex
	rootStyle.FlexWrap = style.FlexWrapWrap
	rootStyle.Width = geom.Length(200)
	item := func(id string) *Node {
		st := style.New()
		st.Width = geom.Length(80)
		st.Height = geom.Length(20)
		return node(id, st)
	}

	l := computeAt(node("root", rootStyle, item("a"), item("b"), item("c")), 800, 600)
	checkBox(t, l.Children[0], 0, 0, 80, 20)
	checkBox(t, l.Children[1], 80, 0, 80, 20)
	checkBox(t, l.Children[2], 0, 20, 80, 20)
}

func TestFlexGrowRespectsMaxAndRedistributes(t *testing.T) {
	a := flexItemStyle(1, 50)
	a.MaxWidth = geom.Length(60)
	b := flexItemStyle(1, 50)
	l := computeAt(node("root", flexRoot(300, 50), node("a", a), node("b", b)), 800, 600)

	// a freezes at its max; the leftover goes to b.
	checkBox(t, l.Children[0], 0, 0, 60, 50)
	checkBox(t, l.Children[1], 60, 0, 240, 50)
}

func TestFlexShrink(t *testing.T) {
	item := func(id string) *Node {
		st := style.New()
		st.Width = geom.Length(150)
		st.Height = geom.Length(40)
		st.OverflowX = style.OverflowHidden
		st.OverflowY = style.OverflowHidden
		return node(id, st)
	}
	l := computeAt(node("root", flexRoot(200, 40), item("a"), item("b")), 800, 600)

	// 100 of overflow shrinks equally (same shrink factor and basis).
	checkBox(t, l.Children[0], 0, 0, 100, 40)
	checkBox(t, l.Children[1], 100, 0, 100, 40)
}

func TestFlexGrowConservation(t *testing.T) {
	rootStyle := flexRoot(517, 40)
	rootStyle.ColumnGap = geom.Length(7)
	items := []*Node{
		node("a", flexItemStyle(1, 40)),
		node("b", flexItemStyle(3, 40)),
		node("c", flexItemStyle(2, 40)),
	}
	l := computeAt(node("root", rootStyle, items...), 800, 600)

	var sum float64
	for _, c := range l.Children {
		sum += c.Width
	}
	sum += 7 * 2
	if diff := sum - 517; diff > 0.01 || diff < -0.01 {
		t.Errorf("outer widths plus gaps = %g, want 517", sum)
	}
}

func TestFlexJustifyCenter(t *testing.T) {
	rootStyle := flexRoot(300, 40)
	rootStyle.JustifyContent = style.JustifyCenter
	item := func(id string) *Node {
		st := style.New()
		st.Width = geom.Length(50)
		st.Height = geom.Length(40)
		return node(id, st)
	}
	l := computeAt(node("root", rootStyle, item("a"), item("b")), 800, 600)
	checkBox(t, l.Children[0], 100, 0, 50, 40)
	checkBox(t, l.Children[1], 150, 0, 50, 40)
}

func TestFlexJustifySpaceBetween(t *testing.T) {
	rootStyle := flexRoot(300, 40)
	rootStyle.JustifyContent = style.JustifySpaceBetween
	item := func(id string) *Node {
		st := style.New()
		st.Width = geom.Length(50)
		st.Height = geom.Length(40)
		return node(id, st)
	}
	l := computeAt(node("root", rootStyle, item("a"), item("b")), 800, 600)
	checkBox(t, l.Children[0], 0, 0, 50, 40)
	checkBox(t, l.Children[1], 250, 0, 50, 40)
}

func TestFlexJustifySpaceEvenly(t *testing.T) {
	rootStyle := flexRoot(300, 40)
	rootStyle.JustifyContent = style.JustifySpaceEvenly
	item := func(id string) *Node {
		st := style.New()
		st.Width = geom.Length(60)
		st.Height = geom.Length(40)
		return node(id, st)
	}
	l := computeAt(node("root", rootStyle, item("a"), item("b")), 800, 600)
	// free = 180, thirds of 60.
	checkBox(t, l.Children[0], 60, 0, 60, 40)
	checkBox(t, l.Children[1], 180, 0, 60, 40)
}

func TestFlexColumnStacks(t *testing.T) {
	rootStyle := style.New()
	rootStyle.Display = style.DisplayFlex
	rootStyle.FlexDirection = style.FlexDirectionColumn
	rootStyle.Width = geom.Length(100)
	rootStyle.Height = geom.Length(200)
	item := func(id string) *Node {
		st := style.New()
		st.Height = geom.Length(50)
		st.Width = geom.Length(100)
		return node(id, st)
	}
	l := computeAt(node("root", rootStyle, item("a"), item("b")), 800, 600)
	checkBox(t, l.Children[0], 0, 0, 100, 50)
	checkBox(t, l.Children[1], 0, 50, 100, 50)
}

func TestFlexColumnGap(t *testing.T) {
	rootStyle := flexRoot(300, 40)
	rootStyle.ColumnGap = geom.Length(10)
	item := func(id string) *Node {
		st := style.New()
		st.Width = geom.Length(50)
		st.Height = geom.Length(40)
		return node(id, st)
	}
	l := computeAt(node("root", rootStyle, item("a"), item("b")), 800, 600)
	checkBox(t, l.Children[1], 60, 0, 50, 40)
}

func TestFlexOrderReordersVisually(t *testing.T) {
	a := style.New()
	a.Width = geom.Length(50)
	a.Height = geom.Length(40)
	a.Order = 2
	b := style.New()
	b.Width = geom.Length(50)
	b.Height = geom.Length(40)
	b.Order = 1

	l := computeAt(node("root", flexRoot(300, 40), node("a", a), node("b", b)), 800, 600)
	// b paints first, but the children array keeps source order.
	if l.Children[0].X != 50 {
		t.Errorf("a.x = %g, want 50", l.Children[0].X)
	}
	if l.Children[1].X != 0 {
		t.Errorf("b.x = %g, want 0", l.Children[1].X)
	}
}

func TestFlexMainAutoMarginAbsorbsFreeSpace(t *testing.T) {
	a := style.New()
	a.Width = geom.Length(100)
	a.Height = geom.Length(40)
	a.Margin.Left = geom.Auto()
	rootStyle := flexRoot(300, 40)
	rootStyle.JustifyContent = style.JustifyCenter // ignored with auto margins

	l := computeAt(node("root", rootStyle, node("a", a)), 800, 600)
	if l.Children[0].X != 200 {
		t.Errorf("x = %g, want 200", l.Children[0].X)
	}
}

func TestFlexStretchCrossAxis(t *testing.T) {
	item := style.New()
	item.Width = geom.Length(50)
	l := computeAt(node("root", flexRoot(300, 100), node("a", item)), 800, 600)
	if l.Children[0].Height != 100 {
		t.Errorf("stretched height = %g, want 100", l.Children[0].Height)
	}
}

func TestFlexAlignCenterCrossAxis(t *testing.T) {
	rootStyle := flexRoot(300, 100)
	rootStyle.AlignItems = style.AlignCenter
	item := style.New()
	item.Width = geom.Length(50)
	item.Height = geom.Length(40)
	l := computeAt(node("root", rootStyle, node("a", item)), 800, 600)
	if l.Children[0].Y != 30 {
		t.Errorf("y = %g, want 30", l.Children[0].Y)
	}
}

func TestFlexAlignSelfOverridesAlignItems(t *testing.T) {
	rootStyle := flexRoot(300, 100)
	rootStyle.AlignItems = style.AlignCenter
	item := style.New()
	item.Width = geom.Length(50)
	item.Height = geom.Length(40)
	item.AlignSelf = style.AlignSelfEnd
	l := computeAt(node("root", rootStyle, node("a", item)), 800, 600)
	if l.Children[0].Y != 60 {
		t.Errorf("y = %g, want 60", l.Children[0].Y)
	}
}

func TestFlexRowReverse(t *testing.T) {
	rootStyle := flexRoot(300, 40)
	rootStyle.FlexDirection = style.FlexDirectionRowReverse
	item := func(id string) *Node {
		st := style.New()
		st.Width = geom.Length(100)
		st.Height = geom.Length(40)
		return node(id, st)
	}
	l := computeAt(node("root", rootStyle, item("a"), item("b")), 800, 600)
	checkBox(t, l.Children[0], 200, 0, 100, 40)
	checkBox(t, l.Children[1], 100, 0, 100, 40)
}

func TestFlexBasisOverridesWidth(t *testing.T) {
	item := style.New()
	item.Width = geom.Length(50)
	item.FlexBasis = geom.Length(120)
	item.Height = geom.Length(40)
	l := computeAt(node("root", flexRoot(300, 40), node("a", item)), 800, 600)
	if l.Children[0].Width != 120 {
		t.Errorf("width = %g, want 120", l.Children[0].Width)
	}
}

func TestFlexAbsoluteChildSkipsLine(t *testing.T) {
	abs := style.New()
	abs.Position = style.PositionAbsolute
	abs.Width = geom.Length(30)
	abs.Height = geom.Length(30)
	abs.Inset.Left = geom.Length(5)
	abs.Inset.Top = geom.Length(5)
	item := func(id string) *Node {
		st := style.New()
		st.Width = geom.Length(100)
		st.Height = geom.Length(40)
		return node(id, st)
	}

	l := computeAt(node("root", flexRoot(300, 40), item("a"), node("abs", abs), item("b")), 800, 600)
	// In-flow items pack as if the absolute child did not exist.
	checkBox(t, l.Children[0], 0, 0, 100, 40)
	checkBox(t, l.Children[2], 100, 0, 100, 40)
	checkBox(t, l.Children[1], 5, 5, 30, 30)
}

func TestFlexWrapAlignContentSpaceBetween(t *testing.T) {
	rootStyle := flexRoot(200, 100)
	rootStyle.FlexWrap = style.FlexWrapWrap
	rootStyle.AlignContent = style.AlignContentSpaceBetween
	item := func(id string) *Node {
		st := style.New()
		st.Width = geom.Length(120)
		st.Height = geom.Length(20)
		return node(id, st)
	}
	l := computeAt(node("root", rootStyle, item("a"), item("b")), 800, 600)
	checkBox(t, l.Children[0], 0, 0, 120, 20)
	checkBox(t, l.Children[1], 0, 80, 120, 20)
}

func TestFlexContainerHeightFromContent(t *testing.T) {
	rootStyle := style.New()
	rootStyle.Display = style.DisplayFlex
	rootStyle.Width = geom.Length(300)
	item := style.New()
	item.Width = geom.Length(50)
	item.Height = geom.Length(70)
	l := computeAt(node("root", rootStyle, node("a", item)), 800, 600)
	if l.Height != 70 {
		t.Errorf("container height = %g, want 70", l.Height)
	}
}
