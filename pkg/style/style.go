package style

import "boxflow/pkg/geom"

// Edges holds one Dimension per box edge, for margin, padding, border and
// inset. Percentages on any edge resolve against the containing block's
// inline size; auto margins are handled by the formatting algorithms.
type Edges struct {
	Left   geom.Dimension
	Right  geom.Dimension
	Top    geom.Dimension
	Bottom geom.Dimension
}

// UniformEdges returns Edges with the same length on every edge.
func UniformEdges(px float64) Edges {
	d := geom.Length(px)
	return Edges{Left: d, Right: d, Top: d, Bottom: d}
}

// Resolve resolves every edge against the containing inline size.
// Auto and intrinsic keywords resolve to 0.
func (e Edges) Resolve(containingInline geom.OptFloat) geom.Rect {
	return geom.Rect{
		Left:   e.Left.ResolveOr(containingInline, 0),
		Right:  e.Right.ResolveOr(containingInline, 0),
		Top:    e.Top.ResolveOr(containingInline, 0),
		Bottom: e.Bottom.ResolveOr(containingInline, 0),
	}
}

// Style is the computed-style input record for one box. The cascade (out
// of scope here) produces these; every field's zero value is arranged to
// be the CSS initial value, except the handful set by New.
type Style struct {
	Display  Display
	Position Position
	Inset    Edges // auto means "unspecified"

	Width     geom.Dimension
	Height    geom.Dimension
	MinWidth  geom.Dimension
	MinHeight geom.Dimension
	MaxWidth  geom.Dimension
	MaxHeight geom.Dimension

	AspectRatio float64 // width/height; 0 means none
	BoxSizing   BoxSizing

	Margin  Edges // initial value 0 on every edge, set by New
	Padding Edges
	Border  Edges

	OverflowX Overflow
	OverflowY Overflow

	// Flex container.
	FlexDirection  FlexDirection
	FlexWrap       FlexWrap
	JustifyContent JustifyContent
	AlignItems     AlignItems
	AlignContent   AlignContent
	RowGap         geom.Dimension
	ColumnGap      geom.Dimension

	// Flex item.
	FlexGrow   float64
	FlexShrink float64 // initial value 1, set by New
	FlexBasis  geom.Dimension
	AlignSelf  AlignSelf
	Order      int

	// Grid container.
	GridTemplateRows    []TrackSizingFunction
	GridTemplateColumns []TrackSizingFunction
	GridAutoRows        []TrackSizingFunction
	GridAutoColumns     []TrackSizingFunction
	GridAutoFlow        GridAutoFlow
	GridTemplateAreas   [][]string // rows of area names; "" or "." is empty
	JustifyItems        JustifyItems

	// Grid item.
	GridRow     GridLine
	GridColumn  GridLine
	GridArea    string
	JustifySelf JustifySelf

	// Paint-only properties. Carried through for renderers; ignored by
	// every layout computation, including incremental dirtiness.
	Color      string
	Background string
}

// New returns a Style holding the CSS initial value for every property.
func New() *Style {
	return &Style{FlexShrink: 1, Margin: UniformEdges(0)}
}

// LayoutEqual reports whether two styles are indistinguishable to the
// layout engine. Paint-only fields (Color, Background) are excluded, so
// the incremental tree can swap such styles without invalidating.
func LayoutEqual(a, b *Style) bool {
	if a == nil || b == nil {
		return a == b
	}
	if a.Display != b.Display || a.Position != b.Position ||
		a.Inset != b.Inset ||
		a.Width != b.Width || a.Height != b.Height ||
		a.MinWidth != b.MinWidth || a.MinHeight != b.MinHeight ||
		a.MaxWidth != b.MaxWidth || a.MaxHeight != b.MaxHeight ||
		a.AspectRatio != b.AspectRatio || a.BoxSizing != b.BoxSizing ||
		a.Margin != b.Margin || a.Padding != b.Padding || a.Border != b.Border ||
		a.OverflowX != b.OverflowX || a.OverflowY != b.OverflowY {
		return false
	}
	if a.FlexDirection != b.FlexDirection || a.FlexWrap != b.FlexWrap ||
		a.JustifyContent != b.JustifyContent || a.AlignItems != b.AlignItems ||
		a.AlignContent != b.AlignContent ||
		a.RowGap != b.RowGap || a.ColumnGap != b.ColumnGap ||
		a.FlexGrow != b.FlexGrow || a.FlexShrink != b.FlexShrink ||
		a.FlexBasis != b.FlexBasis || a.AlignSelf != b.AlignSelf ||
		a.Order != b.Order {
		return false
	}
	if a.GridAutoFlow != b.GridAutoFlow || a.JustifyItems != b.JustifyItems ||
		a.GridRow != b.GridRow || a.GridColumn != b.GridColumn ||
		a.GridArea != b.GridArea || a.JustifySelf != b.JustifySelf {
		return false
	}
	if !trackListEqual(a.GridTemplateRows, b.GridTemplateRows) ||
		!trackListEqual(a.GridTemplateColumns, b.GridTemplateColumns) ||
		!trackListEqual(a.GridAutoRows, b.GridAutoRows) ||
		!trackListEqual(a.GridAutoColumns, b.GridAutoColumns) {
		return false
	}
	if len(a.GridTemplateAreas) != len(b.GridTemplateAreas) {
		return false
	}
	for i := range a.GridTemplateAreas {
		if len(a.GridTemplateAreas[i]) != len(b.GridTemplateAreas[i]) {
			return false
		}
		for j := range a.GridTemplateAreas[i] {
			if a.GridTemplateAreas[i][j] != b.GridTemplateAreas[i][j] {
				return false
			}
		}
	}
	return true
}

// Clone returns a deep copy of the style.
func (s *Style) Clone() *Style {
	if s == nil {
		return nil
	}
	c := *s
	c.GridTemplateRows = append([]TrackSizingFunction(nil), s.GridTemplateRows...)
	c.GridTemplateColumns = append([]TrackSizingFunction(nil), s.GridTemplateColumns...)
	c.GridAutoRows = append([]TrackSizingFunction(nil), s.GridAutoRows...)
	c.GridAutoColumns = append([]TrackSizingFunction(nil), s.GridAutoColumns...)
	if s.GridTemplateAreas != nil {
		c.GridTemplateAreas = make([][]string, len(s.GridTemplateAreas))
		for i, row := range s.GridTemplateAreas {
			c.GridTemplateAreas[i] = append([]string(nil), row...)
		}
	}
	return &c
}
