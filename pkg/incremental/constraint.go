package incremental

import (
	"math"

	"boxflow/pkg/geom"
	"boxflow/pkg/layout"
	"boxflow/pkg/style"
)

// epsilon is the availability tolerance: two constraints whose
// availabilities differ by at most half a pixel are equivalent.
const epsilon = 0.5

// ConstraintKey identifies the inputs a cached Layout was computed
// under.
type ConstraintKey struct {
	AvailW, AvailH geom.OptFloat
	KnownW, KnownH geom.OptFloat
	Mode           layout.SizingMode
	ViewportW      float64
	ViewportH      float64
}

func keyFromContext(ctx layout.Context) ConstraintKey {
	return ConstraintKey{
		AvailW:    ctx.AvailableWidth,
		AvailH:    ctx.AvailableHeight,
		KnownW:    ctx.KnownWidth,
		KnownH:    ctx.KnownHeight,
		Mode:      ctx.Mode,
		ViewportW: ctx.ViewportWidth,
		ViewportH: ctx.ViewportHeight,
	}
}

// quantize maps a float to half-pixel buckets for hashing. Hashing raw
// doubles is fragile; the bucketed hash groups near-equal keys and the
// exact ε-comparison below arbitrates.
func quantize(v float64) int64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return math.MaxInt64
	}
	return int64(math.Round(v * 2))
}

func hashOpt(h uint64, o geom.OptFloat) uint64 {
	const prime = 1099511628211
	if o.Valid {
		h = (h ^ uint64(quantize(o.Value))) * prime
	} else {
		h = (h ^ 0x9e3779b9) * prime
	}
	return h
}

// Hash buckets the key for map lookup.
func (k ConstraintKey) Hash() uint64 {
	const prime = 1099511628211
	h := uint64(1469598103934665603)
	h = hashOpt(h, k.AvailW)
	h = hashOpt(h, k.AvailH)
	h = hashOpt(h, k.KnownW)
	h = hashOpt(h, k.KnownH)
	h = (h ^ uint64(k.Mode)) * prime
	h = (h ^ uint64(quantize(k.ViewportW))) * prime
	h = (h ^ uint64(quantize(k.ViewportH))) * prime
	return h
}

func optEquivalent(a, b geom.OptFloat) bool {
	if a.Valid != b.Valid {
		return false
	}
	if !a.Valid {
		return true
	}
	return math.Abs(a.Value-b.Value) <= epsilon
}

// EquivalentFor reports whether two keys are interchangeable for a node
// with the given style: sizing modes must match, known sizes must match,
// and on each availability axis either the style fixes the axis (making
// availability irrelevant) or the availabilities agree within ε.
func (k ConstraintKey) EquivalentFor(other ConstraintKey, st *style.Style) bool {
	if k.Mode != other.Mode {
		return false
	}
	if !optEquivalent(k.KnownW, other.KnownW) || !optEquivalent(k.KnownH, other.KnownH) {
		return false
	}
	// The viewport only discriminates for viewport-dependent styles;
	// comparing it unconditionally would defeat resize selectivity.
	if DeriveDependencies(st).Has(DepViewport) {
		if math.Abs(k.ViewportW-other.ViewportW) > epsilon || math.Abs(k.ViewportH-other.ViewportH) > epsilon {
			return false
		}
	}
	if !axisFixed(st, true) && !optEquivalent(k.AvailW, other.AvailW) {
		return false
	}
	if !axisFixed(st, false) && !optEquivalent(k.AvailH, other.AvailH) {
		return false
	}
	return true
}

// axisFixed reports whether the style pins the axis without reference to
// the containing block: a pixel length with pixel edges.
func axisFixed(st *style.Style, horizontal bool) bool {
	if st == nil {
		return false
	}
	var size geom.Dimension
	var a, b geom.Dimension
	if horizontal {
		size = st.Width
		a, b = st.Margin.Left, st.Margin.Right
	} else {
		size = st.Height
		a, b = st.Margin.Top, st.Margin.Bottom
	}
	isPx := func(d geom.Dimension) bool { return d.Kind == geom.DimLength }
	pxOrZero := func(d geom.Dimension) bool { return d.Kind == geom.DimLength || d.Kind == geom.DimAuto }
	if !isPx(size) || !pxOrZero(a) || !pxOrZero(b) {
		return false
	}
	// Percent padding/border would still leak the containing size in.
	edges := []geom.Dimension{
		st.Padding.Left, st.Padding.Right, st.Padding.Top, st.Padding.Bottom,
		st.Border.Left, st.Border.Right, st.Border.Top, st.Border.Bottom,
	}
	for _, e := range edges {
		if e.Kind == geom.DimPercent {
			return false
		}
	}
	return true
}

// DependencyKind classifies what a node's layout depends on beyond its
// own subtree, driving selective viewport invalidation.
type DependencyKind uint8

const (
	DepStatic DependencyKind = 0
	DepParentWidth  DependencyKind = 1 << 0
	DepParentHeight DependencyKind = 1 << 1
	DepViewport     DependencyKind = 1 << 2
	DepIntrinsic    DependencyKind = 1 << 3
)

// DepParentBoth marks dependence on both parent axes.
const DepParentBoth = DepParentWidth | DepParentHeight

// Has reports whether k contains dep.
func (k DependencyKind) Has(dep DependencyKind) bool { return k&dep != 0 }

// DeriveDependencies inspects a style and classifies its constraint
// dependencies.
func DeriveDependencies(st *style.Style) DependencyKind {
	if st == nil {
		st = style.New()
	}
	var k DependencyKind
	if st.Position == style.PositionFixed {
		k |= DepViewport
	}
	pct := func(ds ...geom.Dimension) bool {
		for _, d := range ds {
			if d.Kind == geom.DimPercent {
				return true
			}
		}
		return false
	}
	if pct(st.Width, st.MinWidth, st.MaxWidth,
		st.Margin.Left, st.Margin.Right, st.Padding.Left, st.Padding.Right,
		st.Padding.Top, st.Padding.Bottom, st.Inset.Left, st.Inset.Right) {
		k |= DepParentWidth
	}
	if pct(st.Height, st.MinHeight, st.MaxHeight,
		st.Margin.Top, st.Margin.Bottom, st.Inset.Top, st.Inset.Bottom) {
		k |= DepParentHeight
	}
	if st.Width.IsAuto() && st.Display != style.DisplayNone {
		// Auto widths fill (or shrink against) the containing block.
		k |= DepParentWidth
	}
	if st.Width.IsIntrinsic() || st.Height.IsIntrinsic() {
		k |= DepIntrinsic
	}
	if st.Height.IsAuto() && !st.Width.IsIntrinsic() {
		k |= DepIntrinsic
	}
	if st.FlexBasis.Kind == geom.DimPercent {
		k |= DepParentWidth
	}
	return k
}
