package layout

import (
	"math"

	"boxflow/pkg/geom"
	"boxflow/pkg/style"
)

// frame carries a node's resolved box-model edges for one pass.
// Percentages in margin and padding resolve against the containing
// block's inline size regardless of axis; auto margins resolve to 0 here
// and are re-examined by the placement code.
type frame struct {
	margin  geom.Rect
	padding geom.Rect
	border  geom.Rect
}

func resolveFrame(st *style.Style, containingInline geom.OptFloat) frame {
	return frame{
		margin:  st.Margin.Resolve(containingInline),
		padding: st.Padding.Resolve(containingInline),
		border:  st.Border.Resolve(containingInline),
	}
}

// pbWidth is the horizontal padding+border sum.
func (f frame) pbWidth() float64 { return f.padding.Horizontal() + f.border.Horizontal() }

// pbHeight is the vertical padding+border sum.
func (f frame) pbHeight() float64 { return f.padding.Vertical() + f.border.Vertical() }

// contentFromStyleSize converts a resolved style size to a content-box
// size per box-sizing.
func contentFromStyleSize(v float64, bs style.BoxSizing, pb float64) float64 {
	if bs == style.BoxSizingBorderBox {
		v -= pb
	}
	return geom.NonNegative(v)
}

// resolveMinMaxAxis resolves the min/max styles of one axis to
// content-box pixel bounds.
func resolveMinMaxAxis(min, max geom.Dimension, containing geom.OptFloat, bs style.BoxSizing, pb float64) (geom.OptFloat, geom.OptFloat) {
	var lo, hi geom.OptFloat
	if v := min.Resolve(containing); v.Valid {
		lo = geom.Some(contentFromStyleSize(v.Value, bs, pb))
	}
	if v := max.Resolve(containing); v.Valid {
		hi = geom.Some(contentFromStyleSize(v.Value, bs, pb))
	}
	return lo, hi
}

// clampContent applies min/max bounds to a content-box size. The max
// bound is applied first and min afterwards, so a contradictory pair
// resolves in favor of min — mirroring the reference behavior the rest
// of the engine is calibrated against.
func clampContent(v float64, min, max geom.OptFloat) float64 {
	if max.Valid && v > max.Value {
		v = max.Value
	}
	if min.Valid && v < min.Value {
		v = min.Value
	}
	return geom.NonNegative(v)
}

// clampOpt clamps a definite value, passing None through.
func clampOpt(v geom.OptFloat, min, max geom.OptFloat) geom.OptFloat {
	if !v.Valid {
		return v
	}
	return geom.Some(clampContent(v.Value, min, max))
}

// aspectHeight derives a content-box height from a content-box width and
// an aspect ratio (width/height). Returns None when no ratio applies.
func aspectHeight(width geom.OptFloat, ratio float64) geom.OptFloat {
	if !width.Valid || ratio <= 0 {
		return geom.None()
	}
	return geom.Some(width.Value / ratio)
}

// aspectWidth is the inverse derivation.
func aspectWidth(height geom.OptFloat, ratio float64) geom.OptFloat {
	if !height.Valid || ratio <= 0 {
		return geom.None()
	}
	return geom.Some(height.Value * ratio)
}

// measureLeaf runs a leaf's measure callback, normalized.
func measureLeaf(node *Node, availW, availH geom.OptFloat) IntrinsicSize {
	if node.Measure == nil {
		return IntrinsicSize{}
	}
	return node.Measure(availW, availH).Normalize()
}

// relativeOffset computes the x/y shift of a position:relative box from
// its inset styles. left wins over right and top over bottom when both
// are set.
func relativeOffset(st *style.Style, containingW, containingH geom.OptFloat) (dx, dy float64) {
	if st.Position != style.PositionRelative {
		return 0, 0
	}
	if v := st.Inset.Left.Resolve(containingW); v.Valid {
		dx = v.Value
	} else if v := st.Inset.Right.Resolve(containingW); v.Valid {
		dx = -v.Value
	}
	if v := st.Inset.Top.Resolve(containingH); v.Valid {
		dy = v.Value
	} else if v := st.Inset.Bottom.Resolve(containingH); v.Valid {
		dy = -v.Value
	}
	return dx, dy
}

// overflowVisibleBoth reports whether both overflow axes are visible;
// anything else removes the box from automatic-minimum-size treatment.
func overflowVisibleBoth(st *style.Style) bool {
	return st.OverflowX == style.OverflowVisible && st.OverflowY == style.OverflowVisible
}

func maxf(a, b float64) float64 { return math.Max(a, b) }

func minf(a, b float64) float64 { return math.Min(a, b) }

// sumf adds a slice of float64.
func sumf(vs []float64) float64 {
	var s float64
	for _, v := range vs {
		s += v
	}
	return s
}
