package layout

import (
	"boxflow/pkg/geom"
	"boxflow/pkg/style"
)

// Axis selects an intrinsic-sizing axis.
type Axis int

const (
	AxisHorizontal Axis = iota
	AxisVertical
)

// ComputeIntrinsic returns a node's min-content and max-content sizes on
// one axis (border-box). Parents use this before final layout to resolve
// width: min-content and friends.
func (e *Engine) ComputeIntrinsic(node *Node, axis Axis, viewportW, viewportH float64) (min, max float64) {
	d := engineDispatcher{e}
	base := Context{ViewportWidth: viewportW, ViewportHeight: viewportH}
	if axis == AxisVertical {
		return e.intrinsicBlock(d, node, base, geom.None())
	}
	minL := d.Dispatch(node, base.withMode(SizingMinContent))
	maxL := d.Dispatch(node, base.withMode(SizingMaxContent))
	return minL.Width, maxL.Width
}

// intrinsicInline computes a node's border-box min/max-content inline
// sizes. Results are monotone in the descendants' contributions: every
// combinator below is a max or a sum.
func (e *Engine) intrinsicInline(d Dispatcher, node *Node, ctx Context) (min, max float64) {
	st := styleOf(node)
	fr := resolveFrame(st, geom.None())
	pbW := fr.pbWidth()
	minW, maxW := resolveMinMaxAxis(st.MinWidth, st.MaxWidth, geom.None(), st.BoxSizing, pbW)

	// A definite width pins both intrinsic sizes.
	if v := st.Width.Resolve(geom.None()); v.Valid {
		w := clampContent(contentFromStyleSize(v.Value, st.BoxSizing, pbW), minW, maxW)
		return w + pbW, w + pbW
	}

	if st.Display == style.DisplayNone {
		return 0, 0
	}

	var cmin, cmax float64
	switch {
	case node.Measure != nil && len(node.Children) == 0:
		cmin = measureLeaf(node, geom.Some(0), geom.None()).MinWidth
		cmax = measureLeaf(node, geom.None(), geom.None()).MaxWidth
	case st.Display == style.DisplayFlex || st.Display == style.DisplayInlineFlex:
		cmin, cmax = e.flexIntrinsicInline(d, node, ctx)
	case st.Display == style.DisplayGrid || st.Display == style.DisplayInlineGrid:
		cmin, cmax = e.gridIntrinsicInline(d, node, ctx)
	default:
		cmin, cmax = e.blockIntrinsicInline(d, node, ctx)
	}

	cmin = clampContent(cmin, minW, maxW)
	cmax = clampContent(cmax, minW, maxW)
	if cmax < cmin {
		cmax = cmin
	}
	return cmin + pbW, cmax + pbW
}

// blockIntrinsicInline: children stack, so both bounds are maxima over
// the children's outer contributions, not sums.
func (e *Engine) blockIntrinsicInline(d Dispatcher, node *Node, ctx Context) (min, max float64) {
	_, flow, _ := collectChildren(node)
	for _, it := range flow {
		cmin := d.Dispatch(it.node, ctx.child(geom.None(), geom.None()).withMode(SizingMinContent)).OuterWidth()
		cmax := d.Dispatch(it.node, ctx.child(geom.None(), geom.None()).withMode(SizingMaxContent)).OuterWidth()
		min = maxf(min, cmin)
		max = maxf(max, cmax)
	}
	return min, max
}

// flexIntrinsicInline follows the flexbox intrinsic rules: on the main
// axis the max-content size sums the items (a single unwrapped line);
// the min-content size sums under NoWrap and takes the largest item
// under Wrap. On the cross axis both bounds are maxima.
func (e *Engine) flexIntrinsicInline(d Dispatcher, node *Node, ctx Context) (min, max float64) {
	st := styleOf(node)
	_, flow, _ := collectChildren(node)
	if len(flow) == 0 {
		return 0, 0
	}
	colGap := st.ColumnGap.ResolveOr(geom.None(), 0)
	gaps := colGap * float64(len(flow)-1)

	if st.FlexDirection.IsRow() {
		var sumMin, sumMax, largestMin float64
		for _, it := range flow {
			cmin := d.Dispatch(it.node, ctx.child(geom.None(), geom.None()).withMode(SizingMinContent)).OuterWidth()
			cmax := d.Dispatch(it.node, ctx.child(geom.None(), geom.None()).withMode(SizingMaxContent)).OuterWidth()
			sumMin += cmin
			sumMax += cmax
			largestMin = maxf(largestMin, cmin)
		}
		max = sumMax + gaps
		if st.FlexWrap == style.FlexWrapNoWrap {
			min = sumMin + gaps
		} else {
			min = largestMin
		}
		return min, max
	}

	// Column: the inline axis is the cross axis.
	for _, it := range flow {
		min = maxf(min, d.Dispatch(it.node, ctx.child(geom.None(), geom.None()).withMode(SizingMinContent)).OuterWidth())
		max = maxf(max, d.Dispatch(it.node, ctx.child(geom.None(), geom.None()).withMode(SizingMaxContent)).OuterWidth())
	}
	return min, max
}

// intrinsicBlock computes border-box min/max-content block sizes. Blocks
// sum children with margin collapse; flex sums or maxes by axis; grid
// runs its row track sizing.
func (e *Engine) intrinsicBlock(d Dispatcher, node *Node, ctx Context, availW geom.OptFloat) (min, max float64) {
	st := styleOf(node)
	fr := resolveFrame(st, availW)
	pbH := fr.pbHeight()
	minH, maxH := resolveMinMaxAxis(st.MinHeight, st.MaxHeight, geom.None(), st.BoxSizing, pbH)

	if v := st.Height.Resolve(geom.None()); v.Valid {
		h := clampContent(contentFromStyleSize(v.Value, st.BoxSizing, pbH), minH, maxH)
		return h + pbH, h + pbH
	}
	if st.Display == style.DisplayNone {
		return 0, 0
	}

	var cmin, cmax float64
	switch {
	case node.Measure != nil && len(node.Children) == 0:
		cmin = measureLeaf(node, availW, geom.Some(0)).MinHeight
		cmax = measureLeaf(node, availW, geom.None()).MaxHeight
	case st.Display == style.DisplayGrid || st.Display == style.DisplayInlineGrid:
		cmin, cmax = e.gridIntrinsicBlock(d, node, ctx, availW)
	default:
		// One definite-width pass per bound; margins collapse along the
		// stack for block containers.
		cmin = e.stackedHeight(d, node, ctx, availW, SizingMinContent)
		cmax = e.stackedHeight(d, node, ctx, availW, SizingMaxContent)
	}

	cmin = clampContent(cmin, minH, maxH)
	cmax = clampContent(cmax, minH, maxH)
	if cmax < cmin {
		cmax = cmin
	}
	return cmin + pbH, cmax + pbH
}

func (e *Engine) stackedHeight(d Dispatcher, node *Node, ctx Context, availW geom.OptFloat, mode SizingMode) float64 {
	st := styleOf(node)
	_, flow, _ := collectChildren(node)
	if len(flow) == 0 {
		return 0
	}
	if st.Display == style.DisplayFlex || st.Display == style.DisplayInlineFlex {
		rowGap := st.RowGap.ResolveOr(geom.None(), 0)
		var sum, largest float64
		for _, it := range flow {
			cl := d.Dispatch(it.node, ctx.child(availW, geom.None()).withMode(mode))
			sum += cl.OuterHeight()
			largest = maxf(largest, cl.OuterHeight())
		}
		if st.FlexDirection.IsRow() {
			return largest
		}
		return sum + rowGap*float64(len(flow)-1)
	}
	var cursor, prev float64
	first := true
	for _, it := range flow {
		cl := d.Dispatch(it.node, ctx.child(availW, geom.None()).withMode(mode))
		if isCollapseThrough(cl) {
			prev = collapseMargins(prev, throughMargin(cl))
			continue
		}
		if first {
			first = false
			cursor += cl.Margin.Top
		} else {
			cursor += collapseMargins(prev, cl.Margin.Top)
		}
		cursor += cl.Height
		prev = cl.Margin.Bottom
	}
	return geom.NonNegative(cursor + maxf(prev, 0))
}
