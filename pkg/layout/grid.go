package layout

import (
	"math"

	"boxflow/pkg/geom"
	"boxflow/pkg/style"
)

// gridPass bundles the prepared state of one grid layout: placed items
// and the track lists for both axes, implicit tracks included.
type gridPass struct {
	st       *style.Style
	skeleton []*Layout
	abs      []childRef
	items    []*gridItem

	rowTracks, colTracks []gridTrack
	rowOffset, colOffset int
	rowGap, colGap       float64

	autoFitRows, autoFitCols bool
	explicitRows, explicitCols int
}

func hasAutoFit(template []style.TrackSizingFunction) bool {
	for _, t := range template {
		if t.Kind == style.TrackRepeat && t.Mode == style.RepeatAutoFit {
			return true
		}
	}
	return false
}

// prepareGrid expands templates, gathers items and runs placement.
func (e *Engine) prepareGrid(node *Node, contentW, contentH geom.OptFloat) *gridPass {
	st := styleOf(node)
	gp := &gridPass{st: st}
	gp.rowGap = geom.NonNegative(st.RowGap.ResolveOr(contentH, 0))
	gp.colGap = geom.NonNegative(st.ColumnGap.ResolveOr(contentW, 0))

	areas := resolveTemplateAreas(st.GridTemplateAreas)
	colTemplate := expandTemplate(st.GridTemplateColumns, contentW, gp.colGap)
	rowTemplate := expandTemplate(st.GridTemplateRows, contentH, gp.rowGap)
	gp.autoFitCols = hasAutoFit(st.GridTemplateColumns)
	gp.autoFitRows = hasAutoFit(st.GridTemplateRows)

	explicitRows := len(rowTemplate)
	explicitCols := len(colTemplate)
	if n := len(st.GridTemplateAreas); n > explicitRows {
		explicitRows = n
	}
	for _, row := range st.GridTemplateAreas {
		if len(row) > explicitCols {
			explicitCols = len(row)
		}
	}
	gp.explicitRows, gp.explicitCols = explicitRows, explicitCols

	var flow []childRef
	gp.skeleton, flow, gp.abs = collectChildren(node)
	gp.items = make([]*gridItem, len(flow))
	for i, ref := range flow {
		cst := styleOf(ref.node)
		gp.items[i] = &gridItem{
			node: ref.node,
			ref:  ref,
			st:   cst,
			fr:   resolveFrame(cst, contentW),
		}
	}

	rowCount, colCount, rowOffset, colOffset := placeGridItems(gp.items, areas, explicitRows, explicitCols, st.GridAutoFlow)
	gp.rowOffset, gp.colOffset = rowOffset, colOffset

	gp.colTracks = buildTrackList(colCount, colOffset, colTemplate, st.GridAutoColumns)
	gp.rowTracks = buildTrackList(rowCount, rowOffset, rowTemplate, st.GridAutoRows)

	gp.collapseAutoFit()
	return gp
}

// buildTrackList assembles the full track list for an axis: explicit
// template tracks at their offset, implicit tracks cycling the auto
// list.
func buildTrackList(count, offset int, explicit, auto []style.TrackSizingFunction) []gridTrack {
	tracks := make([]gridTrack, count)
	autoAt := func(i int) style.TrackSizingFunction {
		if len(auto) == 0 {
			return style.AutoTrack()
		}
		idx := ((i % len(auto)) + len(auto)) % len(auto)
		return auto[idx]
	}
	for i := range tracks {
		ei := i - offset
		if ei >= 0 && ei < len(explicit) {
			tracks[i] = decomposeTrack(explicit[ei])
		} else {
			tracks[i] = decomposeTrack(autoAt(ei))
		}
	}
	return tracks
}

// collapseAutoFit zeroes explicit tracks no item touches on axes whose
// template used repeat(auto-fit, …).
func (gp *gridPass) collapseAutoFit() {
	mark := func(tracks []gridTrack, offset, explicit int, isCols bool) {
		for i := offset; i < offset+explicit && i < len(tracks); i++ {
			used := false
			for _, it := range gp.items {
				sp := axisSpan(it, isCols)
				if sp.start <= i && i < sp.end {
					used = true
					break
				}
			}
			if !used {
				tracks[i].collapsed = true
				tracks[i].min = trackFn{kind: fnLength}
				tracks[i].max = trackFn{kind: fnLength}
			}
		}
	}
	if gp.autoFitCols {
		mark(gp.colTracks, gp.colOffset, gp.explicitCols, true)
	}
	if gp.autoFitRows {
		mark(gp.rowTracks, gp.rowOffset, gp.explicitRows, false)
	}
}

// layoutGrid implements the grid formatting context: placement, the
// track sizing algorithm per axis (columns before rows), area
// positioning with self-alignment, content alignment of the whole grid,
// and grid-anchored absolute children.
func (e *Engine) layoutGrid(d Dispatcher, node *Node, ctx Context) *Layout {
	st := styleOf(node)
	cw := ctx.AvailableWidth
	fr := resolveFrame(st, cw)
	pbW, pbH := fr.pbWidth(), fr.pbHeight()
	minW, maxW := resolveMinMaxAxis(st.MinWidth, st.MaxWidth, cw, st.BoxSizing, pbW)
	minH, maxH := resolveMinMaxAxis(st.MinHeight, st.MaxHeight, ctx.AvailableHeight, st.BoxSizing, pbH)

	contentW := e.resolveFlexContainerWidth(d, node, st, ctx, fr, minW, maxW)

	var contentH geom.OptFloat
	switch {
	case ctx.KnownHeight.Valid:
		contentH = geom.Some(geom.NonNegative(ctx.KnownHeight.Value - pbH))
	default:
		if v := st.Height.Resolve(ctx.AvailableHeight); v.Valid {
			contentH = geom.Some(contentFromStyleSize(v.Value, st.BoxSizing, pbH))
		} else if v := aspectHeight(geom.Some(contentW), st.AspectRatio); v.Valid {
			contentH = v
		}
		contentH = clampOpt(contentH, minH, maxH)
	}

	gp := e.prepareGrid(node, geom.Some(contentW), contentH)

	// Columns, then rows under the resolved column widths.
	e.sizeGridTracks(d, ctx, gp.colTracks, gp.items, true, geom.Some(contentW), gp.colGap, nil, st.JustifyContent == style.JustifyStart)
	colWidth := func(it *gridItem) geom.OptFloat {
		return geom.Some(spanSize(gp.colTracks, it.col, gp.colGap))
	}
	stretchRows := st.AlignContent == style.AlignContentStretch
	e.sizeGridTracks(d, ctx, gp.rowTracks, gp.items, false, contentH, gp.rowGap, colWidth, stretchRows)

	colOffsets := trackOffsets(gp.colTracks, gp.colGap)
	rowOffsets := trackOffsets(gp.rowTracks, gp.rowGap)
	gridW := colOffsets[len(gp.colTracks)]
	gridH := rowOffsets[len(gp.rowTracks)]

	if !contentH.Valid {
		contentH = geom.Some(clampContent(gridH, minH, maxH))
	}

	// Content alignment of the whole grid inside its container.
	leadX, betweenX := distributeContentSpace(justifyToDistribution(st.JustifyContent), len(gp.colTracks), contentW-gridW)
	leadY, betweenY := distributeContentSpace(alignToDistribution(st.AlignContent), len(gp.rowTracks), contentH.Value-gridH)

	areaRect := func(it *gridItem) absRect {
		x := colOffsets[it.col.start] + leadX + betweenX*float64(it.col.start)
		y := rowOffsets[it.row.start] + leadY + betweenY*float64(it.row.start)
		w := spanSize(gp.colTracks, it.col, gp.colGap) + betweenX*float64(it.col.len()-1)
		h := spanSize(gp.rowTracks, it.row, gp.rowGap) + betweenY*float64(it.row.len()-1)
		return absRect{x: x, y: y, w: w, h: h}
	}

	for _, it := range gp.items {
		rect := areaRect(it)
		e.placeGridItem(d, ctx, st, it, rect, geom.Some(contentW), contentH)
	}

	out := &Layout{
		ID:        node.ID,
		Width:     contentW + pbW,
		Height:    contentH.Or(0) + pbH,
		Margin:    fr.margin,
		Padding:   fr.padding,
		Border:    fr.border,
		OverflowX: st.OverflowX,
		OverflowY: st.OverflowY,
		Children:  gp.skeleton,
		Text:      node.Text,
	}

	e.layoutGridAbsolute(d, ctx, gp, out, colOffsets, rowOffsets, leadX, leadY)
	finishSkeleton(node, gp.skeleton)
	return out
}

// placeGridItem sizes one item into its area (stretch by default) and
// aligns it per justify-self / align-self.
func (e *Engine) placeGridItem(d Dispatcher, ctx Context, containerStyle *style.Style, it *gridItem, rect absRect, containerW, containerH geom.OptFloat) {
	cst := it.st
	availW := geom.NonNegative(rect.w)
	availH := geom.NonNegative(rect.h)

	justify := cst.JustifySelf.Resolve(containerStyle.JustifyItems)
	align := cst.AlignSelf.Resolve(containerStyle.AlignItems)

	hAutoMargin := cst.Margin.Left.IsAuto() || cst.Margin.Right.IsAuto()
	vAutoMargin := cst.Margin.Top.IsAuto() || cst.Margin.Bottom.IsAuto()

	stretchX := justify == style.JustifyItemsStretch && cst.Width.IsAuto() && !hAutoMargin && cst.AspectRatio == 0
	stretchY := align == style.AlignStretch && cst.Height.IsAuto() && !vAutoMargin && cst.AspectRatio == 0

	var knownW, knownH geom.OptFloat
	if stretchX {
		knownW = geom.Some(geom.NonNegative(availW - it.fr.margin.Horizontal()))
	}
	if stretchY {
		knownH = geom.Some(geom.NonNegative(availH - it.fr.margin.Vertical()))
	}

	l := d.Dispatch(it.node, ctx.child(geom.Some(availW), geom.Some(availH)).withKnown(knownW, knownH))

	// Inline placement within the area.
	ml, mr := it.fr.margin.Left, it.fr.margin.Right
	freeX := availW - l.Width - ml - mr
	la, ra := cst.Margin.Left.IsAuto(), cst.Margin.Right.IsAuto()
	x := rect.x + ml
	switch {
	case freeX > 0 && la && ra:
		x = rect.x + ml + freeX/2
	case freeX > 0 && la:
		x = rect.x + ml + freeX
	case justify == style.JustifyItemsEnd:
		x = rect.x + availW - l.Width - mr
	case justify == style.JustifyItemsCenter:
		x = rect.x + ml + freeX/2
	}

	mt, mb := it.fr.margin.Top, it.fr.margin.Bottom
	freeY := availH - l.Height - mt - mb
	ta, ba := cst.Margin.Top.IsAuto(), cst.Margin.Bottom.IsAuto()
	y := rect.y + mt
	switch {
	case freeY > 0 && ta && ba:
		y = rect.y + mt + freeY/2
	case freeY > 0 && ta:
		y = rect.y + mt + freeY
	case align == style.AlignEnd:
		y = rect.y + availH - l.Height - mb
	case align == style.AlignCenter:
		y = rect.y + mt + freeY/2
	}

	l.X, l.Y = x, y
	if dx, dy := relativeOffset(cst, containerW, containerH); dx != 0 || dy != 0 {
		l.X += dx
		l.Y += dy
	}
	it.layout = l
	it.ref.set(l)
}

// layoutGridAbsolute positions out-of-flow grid children. A definite
// grid-row/grid-column anchors the containing rectangle to those lines
// (line 0 meaning the padding-box edge); otherwise the whole padding box
// is used.
func (e *Engine) layoutGridAbsolute(d Dispatcher, ctx Context, gp *gridPass, out *Layout, colOffsets, rowOffsets []float64, leadX, leadY float64) {
	if len(gp.abs) == 0 {
		return
	}
	padW := geom.NonNegative(out.Width - out.Border.Horizontal())
	padH := geom.NonNegative(out.Height - out.Border.Vertical())

	// lineCoord resolves a Line placement to a padding-box coordinate.
	// Line 0 anchors to the padding-box edge itself (outer = the far
	// edge for end placements).
	lineCoord := func(offsets []float64, lead, pad, contentInset float64, p style.Placement, offset int, outer float64) (float64, bool) {
		if p.Kind != style.PlacementLine {
			return 0, false
		}
		if p.N == 0 {
			return outer, true
		}
		idx := p.N - 1 + offset
		if p.N < 0 {
			idx = len(offsets) + p.N + offset
		}
		if idx < 0 {
			idx = 0
		}
		if idx >= len(offsets) {
			idx = len(offsets) - 1
		}
		return offsets[idx] + lead + contentInset, true
	}

	for _, ref := range gp.abs {
		cst := styleOf(ref.node)
		rect := absRect{w: padW, h: padH}

		x0, ok0 := lineCoord(colOffsets, leadX, padW, out.Padding.Left, cst.GridColumn.Start, gp.colOffset, 0)
		x1, ok1 := lineCoord(colOffsets, leadX, padW, out.Padding.Left, cst.GridColumn.End, gp.colOffset, padW)
		if ok0 || ok1 {
			start, end := 0.0, padW
			if ok0 {
				start = x0
			}
			if ok1 {
				end = x1
			}
			rect.x = start
			rect.w = geom.NonNegative(end - start)
		}
		y0, ok0 := lineCoord(rowOffsets, leadY, padH, out.Padding.Top, cst.GridRow.Start, gp.rowOffset, 0)
		y1, ok1 := lineCoord(rowOffsets, leadY, padH, out.Padding.Top, cst.GridRow.End, gp.rowOffset, padH)
		if ok0 || ok1 {
			start, end := 0.0, padH
			if ok0 {
				start = y0
			}
			if ok1 {
				end = y1
			}
			rect.y = start
			rect.h = geom.NonNegative(end - start)
		}

		l := e.layoutAbsoluteInRect(d, ctx, ref.node, rect)
		l.X -= out.Padding.Left
		l.Y -= out.Padding.Top
		ref.set(l)
	}
}

// contentDistribution mirrors the shared shape of justify-content and
// align-content for whole-grid alignment.
type contentDistribution int

const (
	distStart contentDistribution = iota
	distEnd
	distCenter
	distSpaceBetween
	distSpaceAround
	distSpaceEvenly
	distStretch
)

func justifyToDistribution(j style.JustifyContent) contentDistribution {
	switch j {
	case style.JustifyEnd:
		return distEnd
	case style.JustifyCenter:
		return distCenter
	case style.JustifySpaceBetween:
		return distSpaceBetween
	case style.JustifySpaceAround:
		return distSpaceAround
	case style.JustifySpaceEvenly:
		return distSpaceEvenly
	default:
		return distStart
	}
}

func alignToDistribution(a style.AlignContent) contentDistribution {
	switch a {
	case style.AlignContentEnd:
		return distEnd
	case style.AlignContentCenter:
		return distCenter
	case style.AlignContentSpaceBetween:
		return distSpaceBetween
	case style.AlignContentSpaceAround:
		return distSpaceAround
	case style.AlignContentSpaceEvenly:
		return distSpaceEvenly
	case style.AlignContentStretch:
		return distStretch
	default:
		return distStart
	}
}

// distributeContentSpace splits the container's leftover space into a
// leading offset and an extra per-gap amount.
func distributeContentSpace(kind contentDistribution, tracks int, free float64) (lead, between float64) {
	if free <= 0 || tracks == 0 {
		return 0, 0
	}
	n := float64(tracks)
	switch kind {
	case distEnd:
		return free, 0
	case distCenter:
		return free / 2, 0
	case distSpaceBetween:
		if tracks > 1 {
			return 0, free / (n - 1)
		}
		return 0, 0
	case distSpaceAround:
		return free / n / 2, free / n
	case distSpaceEvenly:
		return free / (n + 1), free / (n + 1)
	default:
		return 0, 0
	}
}

// gridIntrinsicInline sizes the column axis under infinite and zero
// available space. The max-content size sums growth limits (auto tracks
// grow to their max contributions); the min-content size sums bases.
func (e *Engine) gridIntrinsicInline(d Dispatcher, node *Node, ctx Context) (min, max float64) {
	gpMax := e.prepareGrid(node, geom.None(), geom.None())
	e.sizeGridTracks(d, ctx, gpMax.colTracks, gpMax.items, true, geom.None(), gpMax.colGap, nil, false)
	for _, tr := range gpMax.colTracks {
		if math.IsInf(tr.limit, 1) {
			max += tr.base
		} else {
			max += maxf(tr.base, tr.limit)
		}
	}
	if n := len(gpMax.colTracks); n > 1 {
		max += gpMax.colGap * float64(n-1)
	}

	gpMin := e.prepareGrid(node, geom.Some(0), geom.None())
	e.sizeGridTracks(d, ctx, gpMin.colTracks, gpMin.items, true, geom.Some(0), gpMin.colGap, nil, false)
	min = trackOffsets(gpMin.colTracks, gpMin.colGap)[len(gpMin.colTracks)]
	if max < min {
		max = min
	}
	return min, max
}

// gridIntrinsicBlock sizes rows under a given inline availability.
func (e *Engine) gridIntrinsicBlock(d Dispatcher, node *Node, ctx Context, availW geom.OptFloat) (min, max float64) {
	gp := e.prepareGrid(node, availW, geom.None())
	e.sizeGridTracks(d, ctx, gp.colTracks, gp.items, true, availW, gp.colGap, nil, false)
	colWidth := func(it *gridItem) geom.OptFloat {
		return geom.Some(spanSize(gp.colTracks, it.col, gp.colGap))
	}
	e.sizeGridTracks(d, ctx, gp.rowTracks, gp.items, false, geom.None(), gp.rowGap, colWidth, false)
	total := trackOffsets(gp.rowTracks, gp.rowGap)[len(gp.rowTracks)]
	return total, total
}
