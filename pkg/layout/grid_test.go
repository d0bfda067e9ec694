package layout

import (
	"testing"

	"boxflow/pkg/geom"
	"boxflow/pkg/style"
)

func gridRoot(w, h float64, cols, rows []style.TrackSizingFunction) *style.Style {
	st := style.New()
	st.Display = style.DisplayGrid
	st.Width = geom.Length(w)
	st.Height = geom.Length(h)
	st.GridTemplateColumns = cols
	st.GridTemplateRows = rows
	return st
}

func leaf(id string) *Node { return node(id, style.New()) }

func TestGridFrDistribution(t *testing.T) {
	rootStyle := gridRoot(300, 100,
		[]style.TrackSizingFunction{style.FrTrack(1), style.FrTrack(2), style.FrTrack(1)}, nil)
	l := computeAt(node("root", rootStyle, leaf("a"), leaf("b"), leaf("c")), 800, 600)

	checkBox(t, l.Children[0], 0, 0, 75, 100)
	checkBox(t, l.Children[1], 75, 0, 150, 100)
	checkBox(t, l.Children[2], 225, 0, 75, 100)
}

func TestGridFixedTracks(t *testing.T) {
	rootStyle := gridRoot(300, 50,
		[]style.TrackSizingFunction{style.FixedTrack(100), style.FixedTrack(200)},
		[]style.TrackSizingFunction{style.FixedTrack(50)})
	l := computeAt(node("root", rootStyle, leaf("a"), leaf("b")), 800, 600)

	checkBox(t, l.Children[0], 0, 0, 100, 50)
	checkBox(t, l.Children[1], 100, 0, 200, 50)
}

func TestGridGaps(t *testing.T) {
	rootStyle := gridRoot(210, 50,
		[]style.TrackSizingFunction{style.FixedTrack(100), style.FixedTrack(100)},
		[]style.TrackSizingFunction{style.FixedTrack(50)})
	rootStyle.ColumnGap = geom.Length(10)
	l := computeAt(node("root", rootStyle, leaf("a"), leaf("b")), 800, 600)

	checkBox(t, l.Children[1], 110, 0, 100, 50)
}

func TestGridAutoRowsFromContent(t *testing.T) {
	rootStyle := style.New()
	rootStyle.Display = style.DisplayGrid
	rootStyle.Width = geom.Length(200)
	rootStyle.GridTemplateColumns = []style.TrackSizingFunction{
		style.FixedTrack(100), style.FixedTrack(100),
	}
	item := func(id string, h float64) *Node {
		st := style.New()
		st.Height = geom.Length(h)
		return node(id, st)
	}
	l := computeAt(node("root", rootStyle,
		item("a", 30), item("b", 45), item("c", 20), item("d", 25)), 800, 600)

	// Row heights are the max of their items.
	checkBox(t, l.Children[0], 0, 0, 100, 30)
	if l.Children[1].Height != 45 {
		t.Errorf("b height = %g, want 45", l.Children[1].Height)
	}
	checkBox(t, l.Children[2], 0, 45, 100, 20)
	if l.Height != 70 {
		t.Errorf("container height = %g, want 70", l.Height)
	}
}

func TestGridColumnSpan(t *testing.T) {
	rootStyle := gridRoot(200, 100,
		[]style.TrackSizingFunction{style.FixedTrack(100), style.FixedTrack(100)},
		[]style.TrackSizingFunction{style.FixedTrack(50), style.FixedTrack(50)})
	spanning := style.New()
	spanning.GridColumn = style.GridLine{Start: style.Line(1), End: style.Line(3)}
	l := computeAt(node("root", rootStyle,
		node("wide", spanning), leaf("b"), leaf("c")), 800, 600)

	checkBox(t, l.Children[0], 0, 0, 200, 50)
	checkBox(t, l.Children[1], 0, 50, 100, 50)
	checkBox(t, l.Children[2], 100, 50, 100, 50)
}

func TestGridNegativeLineSpansToEnd(t *testing.T) {
	rootStyle := gridRoot(300, 50,
		[]style.TrackSizingFunction{
			style.FixedTrack(100), style.FixedTrack(100), style.FixedTrack(100),
		},
		[]style.TrackSizingFunction{style.FixedTrack(50)})
	full := style.New()
	full.GridColumn = style.GridLine{Start: style.Line(1), End: style.Line(-1)}
	l := computeAt(node("root", rootStyle, node("full", full)), 800, 600)

	checkBox(t, l.Children[0], 0, 0, 300, 50)
}

func TestGridTemplateAreas(t *testing.T) {
	rootStyle := gridRoot(300, 150,
		[]style.TrackSizingFunction{style.FixedTrack(100), style.FixedTrack(200)},
		[]style.TrackSizingFunction{style.FixedTrack(50), style.FixedTrack(100)})
	rootStyle.GridTemplateAreas = [][]string{
		{"head", "head"},
		{"nav", "main"},
	}
	in := func(id, area string) *Node {
		st := style.New()
		st.GridArea = area
		return node(id, st)
	}
	l := computeAt(node("root", rootStyle,
		in("head", "head"), in("nav", "nav"), in("main", "main")), 800, 600)

	checkBox(t, l.Children[0], 0, 0, 300, 50)
	checkBox(t, l.Children[1], 0, 50, 100, 100)
	checkBox(t, l.Children[2], 100, 50, 200, 100)
}

func TestGridAutoFlowColumn(t *testing.T) {
	rootStyle := gridRoot(200, 100,
		[]style.TrackSizingFunction{style.FixedTrack(100), style.FixedTrack(100)},
		[]style.TrackSizingFunction{style.FixedTrack(50), style.FixedTrack(50)})
	rootStyle.GridAutoFlow = style.GridAutoFlowColumn
	l := computeAt(node("root", rootStyle, leaf("a"), leaf("b"), leaf("c")), 800, 600)

	// Column-major: a (0,0), b (1,0), c (0,1).
	checkBox(t, l.Children[0], 0, 0, 100, 50)
	checkBox(t, l.Children[1], 0, 50, 100, 50)
	checkBox(t, l.Children[2], 100, 0, 100, 50)
}

func TestGridDensePackingBackfills(t *testing.T) {
	cols := []style.TrackSizingFunction{style.FixedTrack(50), style.FixedTrack(50)}
	rows := []style.TrackSizingFunction{
		style.FixedTrack(20), style.FixedTrack(20), style.FixedTrack(20),
	}
	pinned := style.New()
	pinned.GridColumn = style.GridLine{Start: style.Line(2)}
	wide := style.New()
	wide.GridColumn = style.GridLine{Start: style.AutoPlacement(), End: style.Span(2)}

	build := func(flow style.GridAutoFlow) *Layout {
		rootStyle := gridRoot(100, 60, cols, rows)
		rootStyle.GridAutoFlow = flow
		return computeAt(node("root", rootStyle,
			node("pinned", pinned.Clone()), node("wide", wide.Clone()), leaf("c")), 800, 600)
	}

	sparse := build(style.GridAutoFlowRow)
	if sparse.Children[2].Y != 40 {
		t.Errorf("sparse c.y = %g, want 40", sparse.Children[2].Y)
	}
	dense := build(style.GridAutoFlowRowDense)
	if dense.Children[2].X != 0 || dense.Children[2].Y != 0 {
		t.Errorf("dense c at (%g, %g), want (0, 0)",
			dense.Children[2].X, dense.Children[2].Y)
	}
}

func TestGridAutoFillCount(t *testing.T) {
	rootStyle := style.New()
	rootStyle.Display = style.DisplayGrid
	rootStyle.Width = geom.Length(250)
	rootStyle.Height = geom.Length(40)
	rootStyle.GridTemplateColumns = []style.TrackSizingFunction{
		style.RepeatAuto(style.RepeatAutoFill, style.FixedTrack(100)),
	}
	item := func(id string) *Node {
		st := style.New()
		st.Height = geom.Length(20)
		return node(id, st)
	}
	l := computeAt(node("root", rootStyle, item("a"), item("b"), item("c")), 800, 600)

	// Two 100px columns fit in 250; the third item wraps to row 2.
	checkBox(t, l.Children[0], 0, 0, 100, 20)
	checkBox(t, l.Children[1], 100, 0, 100, 20)
	if l.Children[2].X != 0 || l.Children[2].Y != 20 {
		t.Errorf("c at (%g, %g), want (0, 20)", l.Children[2].X, l.Children[2].Y)
	}
}

func TestGridJustifySelfEnd(t *testing.T) {
	rootStyle := gridRoot(100, 50,
		[]style.TrackSizingFunction{style.FixedTrack(100)},
		[]style.TrackSizingFunction{style.FixedTrack(50)})
	item := style.New()
	item.Width = geom.Length(40)
	item.Height = geom.Length(20)
	item.JustifySelf = style.JustifySelfEnd
	l := computeAt(node("root", rootStyle, node("a", item)), 800, 600)

	if l.Children[0].X != 60 {
		t.Errorf("x = %g, want 60", l.Children[0].X)
	}
}

func TestGridAlignSelfCenter(t *testing.T) {
	rootStyle := gridRoot(100, 50,
		[]style.TrackSizingFunction{style.FixedTrack(100)},
		[]style.TrackSizingFunction{style.FixedTrack(50)})
	item := style.New()
	item.Width = geom.Length(40)
	item.Height = geom.Length(20)
	item.AlignSelf = style.AlignSelfCenter
	l := computeAt(node("root", rootStyle, node("a", item)), 800, 600)

	if l.Children[0].Y != 15 {
		t.Errorf("y = %g, want 15", l.Children[0].Y)
	}
}

func TestGridMinMaxTrack(t *testing.T) {
	rootStyle := gridRoot(300, 50,
		[]style.TrackSizingFunction{
			style.MinMaxTrack(style.FixedTrack(50), style.FixedTrack(120)),
			style.FrTrack(1),
		},
		[]style.TrackSizingFunction{style.FixedTrack(50)})
	l := computeAt(node("root", rootStyle, leaf("a"), leaf("b")), 800, 600)

	// minmax grows to its limit; fr takes the rest.
	checkBox(t, l.Children[0], 0, 0, 120, 50)
	checkBox(t, l.Children[1], 120, 0, 180, 50)
}

func TestGridContentCentering(t *testing.T) {
	rootStyle := gridRoot(300, 100,
		[]style.TrackSizingFunction{style.FixedTrack(50), style.FixedTrack(50)},
		[]style.TrackSizingFunction{style.FixedTrack(100)})
	rootStyle.JustifyContent = style.JustifyCenter
	l := computeAt(node("root", rootStyle, leaf("a"), leaf("b")), 800, 600)

	checkBox(t, l.Children[0], 100, 0, 50, 100)
	checkBox(t, l.Children[1], 150, 0, 50, 100)
}

func TestGridAbsoluteChildAnchoredToLines(t *testing.T) {
	rootStyle := gridRoot(200, 100,
		[]style.TrackSizingFunction{style.FixedTrack(100), style.FixedTrack(100)},
		[]style.TrackSizingFunction{style.FixedTrack(100)})
	abs := style.New()
	abs.Position = style.PositionAbsolute
	abs.GridColumn = style.GridLine{Start: style.Line(2), End: style.Line(3)}
	abs.Inset.Left = geom.Length(0)
	abs.Inset.Right = geom.Length(0)
	abs.Height = geom.Length(30)

	l := computeAt(node("root", rootStyle, leaf("a"), node("abs", abs)), 800, 600)
	got := l.Children[1]
	if got.X != 100 || got.Width != 100 {
		t.Errorf("abs x/width = %g/%g, want 100/100", got.X, got.Width)
	}
}

func TestGridFrUnderIndefiniteAxisActsAsMaxContent(t *testing.T) {
	rootStyle := style.New()
	rootStyle.Display = style.DisplayGrid
	rootStyle.Width = geom.Length(200)
	rootStyle.GridTemplateRows = []style.TrackSizingFunction{style.FrTrack(1)}
	rootStyle.GridTemplateColumns = []style.TrackSizingFunction{style.FixedTrack(200)}
	item := style.New()
	item.Height = geom.Length(35)
	l := computeAt(node("root", rootStyle, node("a", item)), 800, 600)

	// Height is indefinite, so the 1fr row sizes to its content.
	if l.Height != 35 {
		t.Errorf("container height = %g, want 35", l.Height)
	}
}

func TestGridZeroFrKeepsBase(t *testing.T) {
	rootStyle := gridRoot(300, 50,
		[]style.TrackSizingFunction{style.FrTrack(0), style.FrTrack(1)},
		[]style.TrackSizingFunction{style.FixedTrack(50)})
	l := computeAt(node("root", rootStyle, leaf("a"), leaf("b")), 800, 600)

	if l.Children[0].Width != 0 {
		t.Errorf("0fr track width = %g, want 0", l.Children[0].Width)
	}
	if l.Children[1].Width != 300 {
		t.Errorf("1fr track width = %g, want 300", l.Children[1].Width)
	}
}
