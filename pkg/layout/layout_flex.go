package layout

import (
	"sort"

	"boxflow/pkg/geom"
	"boxflow/pkg/style"
)

// flexItem carries the per-item state of one flex pass. All sizes are
// border-box; outer sizes add the item's margins.
type flexItem struct {
	node *Node
	ref  childRef
	st   *style.Style
	fr   frame

	order  int
	srcIdx int

	basis    float64
	minMain  float64
	maxMain  geom.OptFloat
	hypoMain float64
	target   float64
	frozen   bool
	grew     float64 // violation sign from the last clamp round

	crossSize float64
	crossAuto bool
	layout    *Layout

	mainPos  float64
	crossPos float64
}

func (it *flexItem) mainMargins(isRow bool) float64 {
	if isRow {
		return it.fr.margin.Horizontal()
	}
	return it.fr.margin.Vertical()
}

func (it *flexItem) crossMargins(isRow bool) float64 {
	if isRow {
		return it.fr.margin.Vertical()
	}
	return it.fr.margin.Horizontal()
}

func (it *flexItem) outerHypo(isRow bool) float64 { return it.hypoMain + it.mainMargins(isRow) }

func (it *flexItem) outerTarget(isRow bool) float64 { return it.target + it.mainMargins(isRow) }

func (it *flexItem) outerCross(isRow bool) float64 { return it.crossSize + it.crossMargins(isRow) }

// mainAutoMargins counts auto margins on the main axis.
func (it *flexItem) mainAutoMargins(isRow bool) (start, end bool) {
	if isRow {
		return it.st.Margin.Left.IsAuto(), it.st.Margin.Right.IsAuto()
	}
	return it.st.Margin.Top.IsAuto(), it.st.Margin.Bottom.IsAuto()
}

func (it *flexItem) crossAutoMargins(isRow bool) (start, end bool) {
	if isRow {
		return it.st.Margin.Top.IsAuto(), it.st.Margin.Bottom.IsAuto()
	}
	return it.st.Margin.Left.IsAuto(), it.st.Margin.Right.IsAuto()
}

// layoutFlex implements CSS Flexbox Level 1 §9: basis resolution, line
// breaking, flexible-length resolution with freezing, cross sizing,
// alignment, and absolute children.
func (e *Engine) layoutFlex(d Dispatcher, node *Node, ctx Context) *Layout {
	st := styleOf(node)
	isRow := st.FlexDirection.IsRow()
	isReverse := st.FlexDirection.IsReverse()
	wrap := st.FlexWrap

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

	mainAvail := geom.Some(contentW)
	crossAvail := contentH
	if !isRow {
		mainAvail, crossAvail = contentH, geom.Some(contentW)
	}

	mainGap := st.ColumnGap.ResolveOr(geom.Some(contentW), 0)
	crossGap := st.RowGap.ResolveOr(contentH, 0)
	if !isRow {
		mainGap = st.RowGap.ResolveOr(contentH, 0)
		crossGap = st.ColumnGap.ResolveOr(geom.Some(contentW), 0)
	}
	mainGap = geom.NonNegative(mainGap)
	crossGap = geom.NonNegative(crossGap)

	skeleton, flow, abs := collectChildren(node)

	items := e.prepareFlexItems(d, node, ctx, flow, isRow, contentW, mainAvail, crossAvail)

	sort.SliceStable(items, func(i, j int) bool { return items[i].order < items[j].order })

	lines := breakFlexLines(items, wrap, mainAvail, mainGap, isRow)

	// A content-sized main axis wraps to the widest line.
	containerMain := mainAvail
	if !containerMain.Valid {
		var widest float64
		for _, line := range lines {
			var sum float64
			for _, it := range line {
				sum += it.outerHypo(isRow)
			}
			sum += mainGap * float64(len(line)-1)
			widest = maxf(widest, sum)
		}
		if isRow {
			widest = clampContent(widest, minW, maxW)
		} else {
			widest = clampContent(widest, minH, maxH)
		}
		containerMain = geom.Some(widest)
	}

	for _, line := range lines {
		resolveFlexibleLengths(line, containerMain.Value, mainGap, isRow)
	}

	// Cross sizes: hypothetical from style or a nested layout under the
	// resolved main size.
	for _, line := range lines {
		for _, it := range line {
			e.flexItemCrossSize(d, ctx, it, isRow, contentW, crossAvail)
		}
	}

	lineCross := make([]float64, len(lines))
	for i, line := range lines {
		for _, it := range line {
			lineCross[i] = maxf(lineCross[i], it.outerCross(isRow))
		}
	}
	if wrap == style.FlexWrapNoWrap && crossAvail.Valid && len(lines) == 1 {
		lineCross[0] = crossAvail.Value
	}

	totalCross := sumf(lineCross) + crossGap*float64(len(lines)-1)
	containerCross := crossAvail
	if !containerCross.Valid {
		v := totalCross
		if isRow {
			v = clampContent(v, minH, maxH)
		} else {
			v = clampContent(v, minW, maxW)
		}
		containerCross = geom.Some(v)
	}

	// align-content between lines.
	lineOffsets, lineGrow := alignLines(st.AlignContent, wrap, len(lines), lineCross, crossGap, containerCross.Value)
	for i := range lines {
		lineCross[i] += lineGrow[i]
	}
	if wrap == style.FlexWrapWrapReverse {
		// Mirror line positions along the cross axis.
		for i := range lineOffsets {
			lineOffsets[i] = containerCross.Value - lineOffsets[i] - lineCross[i]
		}
	}

	// Main alignment, stretch, and final child layout per line.
	for li, line := range lines {
		e.placeFlexLine(d, ctx, st, line, isRow, isReverse, containerMain.Value, mainGap, lineOffsets[li], lineCross[li], contentW, crossAvail)
	}

	// Commit geometry.
	if isRow {
		contentH = geom.Some(containerCross.Value)
	} else {
		contentH = geom.Some(containerMain.Value)
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
		Children:  skeleton,
		Text:      node.Text,
	}

	for _, line := range lines {
		for _, it := range line {
			l := it.layout
			if isRow {
				l.X = it.mainPos
				l.Y = it.crossPos
			} else {
				l.X = it.crossPos
				l.Y = it.mainPos
			}
			if dx, dy := relativeOffset(it.st, geom.Some(contentW), contentH); dx != 0 || dy != 0 {
				l.X += dx
				l.Y += dy
			}
			it.ref.set(l)
		}
	}

	e.layoutAbsoluteChildren(d, ctx, abs, out)
	finishSkeleton(node, skeleton)
	return out
}

// resolveFlexContainerWidth mirrors block width resolution, except that
// an auto-width flex container fills or shrinks per the engine's
// RootSizing (inline-flex always shrinks).
func (e *Engine) resolveFlexContainerWidth(d Dispatcher, node *Node, st *style.Style, ctx Context, fr frame, minW, maxW geom.OptFloat) float64 {
	pbW := fr.pbWidth()
	if ctx.KnownWidth.Valid {
		return geom.NonNegative(ctx.KnownWidth.Value - pbW)
	}
	cw := ctx.AvailableWidth
	var w float64
	if v := st.Width.Resolve(cw); v.Valid {
		w = contentFromStyleSize(v.Value, st.BoxSizing, pbW)
	} else if v := aspectWidth(st.Height.Resolve(ctx.AvailableHeight), st.AspectRatio); v.Valid {
		w = geom.NonNegative(v.Value)
	} else {
		switch ctx.Mode {
		case SizingMinContent:
			min, _ := e.intrinsicInline(d, node, ctx)
			w = geom.NonNegative(min - pbW)
		case SizingMaxContent:
			_, max := e.intrinsicInline(d, node, ctx)
			w = geom.NonNegative(max - pbW)
		default:
			shrink := st.Display == style.DisplayInlineFlex || st.Display == style.DisplayInlineGrid ||
				e.rootSizing == RootShrink
			if cw.Valid {
				fill := geom.NonNegative(cw.Value - fr.margin.Horizontal() - pbW)
				if shrink {
					min, max := e.intrinsicInline(d, node, ctx)
					w = minf(maxf(geom.NonNegative(min-pbW), fill), geom.NonNegative(max-pbW))
					w = minf(w, fill)
				} else {
					w = fill
				}
			} else {
				_, max := e.intrinsicInline(d, node, ctx)
				w = geom.NonNegative(max - pbW)
			}
		}
	}
	return clampContent(w, minW, maxW)
}

// prepareFlexItems resolves each item's flex base size, automatic
// minimum, and hypothetical main size.
func (e *Engine) prepareFlexItems(d Dispatcher, node *Node, ctx Context, flow []childRef, isRow bool, contentW float64, mainAvail, crossAvail geom.OptFloat) []*flexItem {
	items := make([]*flexItem, 0, len(flow))
	for i, ref := range flow {
		cst := styleOf(ref.node)
		cfr := resolveFrame(cst, geom.Some(contentW))
		it := &flexItem{node: ref.node, ref: ref, st: cst, fr: cfr, order: cst.Order, srcIdx: i}

		pbMain := cfr.pbWidth()
		mainStyle := cst.Width
		crossStyle := cst.Height
		if !isRow {
			pbMain = cfr.pbHeight()
			mainStyle, crossStyle = cst.Height, cst.Width
		}

		// Flex base size.
		var base geom.OptFloat
		if v := cst.FlexBasis.Resolve(mainAvail); v.Valid {
			base = geom.Some(contentFromStyleSize(v.Value, cst.BoxSizing, pbMain) + pbMain)
		}
		if !base.Valid && cst.FlexBasis.IsAuto() {
			if v := mainStyle.Resolve(mainAvail); v.Valid {
				base = geom.Some(contentFromStyleSize(v.Value, cst.BoxSizing, pbMain) + pbMain)
			}
		}
		if !base.Valid && cst.AspectRatio > 0 {
			if v := crossStyle.Resolve(crossAvail); v.Valid {
				if isRow {
					base = geom.Some(v.Value * cst.AspectRatio)
				} else {
					base = geom.Some(v.Value / cst.AspectRatio)
				}
			}
		}
		if !base.Valid {
			// Max-content main size.
			if isRow {
				ml := d.Dispatch(ref.node, ctx.child(geom.None(), crossAvail).withMode(SizingMaxContent))
				base = geom.Some(ml.Width)
			} else {
				ml := d.Dispatch(ref.node, ctx.child(geom.Some(contentW), geom.None()))
				base = geom.Some(ml.Height)
			}
		}
		it.basis = geom.NonNegative(base.Value)

		// Min/max main sizes (border-box).
		var minMainD, maxMainD geom.Dimension
		var pbAxis float64
		var availAxis geom.OptFloat
		if isRow {
			minMainD, maxMainD = cst.MinWidth, cst.MaxWidth
			pbAxis = cfr.pbWidth()
			availAxis = geom.Some(contentW)
		} else {
			minMainD, maxMainD = cst.MinHeight, cst.MaxHeight
			pbAxis = cfr.pbHeight()
			availAxis = mainAvail
		}
		lo, hi := resolveMinMaxAxis(minMainD, maxMainD, availAxis, cst.BoxSizing, pbAxis)
		if hi.Valid {
			it.maxMain = geom.Some(hi.Value + pbAxis)
		}
		if lo.Valid {
			it.minMain = lo.Value + pbAxis
		} else if overflowVisibleBoth(cst) {
			// Automatic minimum size: the item's min-content main size.
			if isRow {
				it.minMain = d.Dispatch(ref.node, ctx.child(geom.None(), crossAvail).withMode(SizingMinContent)).Width
			} else {
				it.minMain = d.Dispatch(ref.node, ctx.child(geom.Some(contentW), geom.None()).withMode(SizingMinContent)).Height
			}
			if it.maxMain.Valid {
				it.minMain = minf(it.minMain, it.maxMain.Value)
			}
		}

		it.hypoMain = it.basis
		if it.maxMain.Valid && it.hypoMain > it.maxMain.Value {
			it.hypoMain = it.maxMain.Value
		}
		if it.hypoMain < it.minMain {
			it.hypoMain = it.minMain
		}

		it.crossAuto = crossStyle.IsAuto()
		items = append(items, it)
	}
	return items
}

// breakFlexLines greedily packs items into lines. NoWrap and an
// indefinite main axis produce a single line.
func breakFlexLines(items []*flexItem, wrap style.FlexWrap, mainAvail geom.OptFloat, gap float64, isRow bool) [][]*flexItem {
	if len(items) == 0 {
		return nil
	}
	if wrap == style.FlexWrapNoWrap || !mainAvail.Valid {
		return [][]*flexItem{items}
	}
	var lines [][]*flexItem
	var line []*flexItem
	var used float64
	for _, it := range items {
		need := it.outerHypo(isRow)
		if len(line) > 0 && used+gap+need > mainAvail.Value+0.0001 {
			lines = append(lines, line)
			line = nil
			used = 0
		}
		if len(line) > 0 {
			used += gap
		}
		line = append(line, it)
		used += need
	}
	if len(line) > 0 {
		lines = append(lines, line)
	}
	return lines
}

// resolveFlexibleLengths runs the grow/shrink loop with freezing for one
// line (CSS Flexbox §9.7).
func resolveFlexibleLengths(line []*flexItem, containerMain, gap float64, isRow bool) {
	gaps := gap * float64(len(line)-1)
	var hypoSum float64
	for _, it := range line {
		hypoSum += it.outerHypo(isRow)
	}
	free := containerMain - hypoSum - gaps
	growing := free > 0

	for _, it := range line {
		it.target = it.hypoMain
		factor := it.st.FlexGrow
		if !growing {
			factor = it.st.FlexShrink
		}
		// Inflexible items, and items already clamped against the
		// helpful direction, freeze immediately.
		it.frozen = factor == 0 ||
			(growing && it.basis > it.hypoMain) ||
			(!growing && it.basis < it.hypoMain)
	}

	const tolerance = 0.0001
	for rounds := 0; rounds <= len(line); rounds++ {
		var unfrozen []*flexItem
		for _, it := range line {
			if !it.frozen {
				unfrozen = append(unfrozen, it)
			}
		}
		if len(unfrozen) == 0 {
			return
		}

		remaining := containerMain - gaps
		for _, it := range line {
			if it.frozen {
				remaining -= it.outerTarget(isRow)
			} else {
				remaining -= it.basis + it.mainMargins(isRow)
			}
		}

		if growing {
			var sumGrow float64
			for _, it := range unfrozen {
				sumGrow += it.st.FlexGrow
			}
			if sumGrow <= 0 || remaining <= 0 {
				for _, it := range unfrozen {
					it.frozen = true
				}
				return
			}
			for _, it := range unfrozen {
				it.target = it.basis + remaining*(it.st.FlexGrow/sumGrow)
			}
		} else {
			var sumScaled float64
			for _, it := range unfrozen {
				sumScaled += it.st.FlexShrink * it.basis
			}
			if sumScaled <= 0 || remaining >= 0 {
				for _, it := range unfrozen {
					it.frozen = true
				}
				return
			}
			for _, it := range unfrozen {
				ratio := it.st.FlexShrink * it.basis / sumScaled
				it.target = it.basis + remaining*ratio
			}
		}

		var totalViolation float64
		for _, it := range unfrozen {
			clamped := it.target
			if it.maxMain.Valid && clamped > it.maxMain.Value {
				clamped = it.maxMain.Value
			}
			if clamped < it.minMain {
				clamped = it.minMain
			}
			clamped = geom.NonNegative(clamped)
			it.grew = clamped - it.target
			totalViolation += it.grew
			it.target = clamped
		}
		switch {
		case totalViolation > tolerance:
			for _, it := range unfrozen {
				if it.grew > 0 {
					it.frozen = true
				}
			}
		case totalViolation < -tolerance:
			for _, it := range unfrozen {
				if it.grew < 0 {
					it.frozen = true
				}
			}
		default:
			for _, it := range unfrozen {
				it.frozen = true
			}
			return
		}
	}
}

// flexItemCrossSize resolves the hypothetical cross size: the style if
// definite, else a nested layout under the resolved main size.
func (e *Engine) flexItemCrossSize(d Dispatcher, ctx Context, it *flexItem, isRow bool, contentW float64, crossAvail geom.OptFloat) {
	cst := it.st
	var crossStyle geom.Dimension
	var pbCross float64
	if isRow {
		crossStyle = cst.Height
		pbCross = it.fr.pbHeight()
	} else {
		crossStyle = cst.Width
		pbCross = it.fr.pbWidth()
	}
	lo, hi := resolveMinMaxAxis(crossMinDim(cst, isRow), crossMaxDim(cst, isRow), crossAvail, cst.BoxSizing, pbCross)

	if v := crossStyle.Resolve(crossAvail); v.Valid {
		it.crossSize = clampContent(contentFromStyleSize(v.Value, cst.BoxSizing, pbCross), lo, hi) + pbCross
		if isRow {
			it.layout = d.Dispatch(it.node, ctx.child(geom.Some(contentW), crossAvail).withKnown(geom.Some(it.target), geom.Some(it.crossSize)))
		} else {
			it.layout = d.Dispatch(it.node, ctx.child(geom.Some(contentW), geom.None()).withKnown(geom.Some(it.crossSize), geom.Some(it.target)))
		}
		return
	}

	if isRow {
		it.layout = d.Dispatch(it.node, ctx.child(geom.Some(contentW), crossAvail).withKnown(geom.Some(it.target), geom.None()))
		it.crossSize = clampContent(it.layout.Height-pbCross, lo, hi) + pbCross
	} else {
		it.layout = d.Dispatch(it.node, ctx.child(geom.Some(contentW), geom.None()).withKnown(geom.None(), geom.Some(it.target)))
		it.crossSize = clampContent(it.layout.Width-pbCross, lo, hi) + pbCross
	}
}

func crossMinDim(st *style.Style, isRow bool) geom.Dimension {
	if isRow {
		return st.MinHeight
	}
	return st.MinWidth
}

func crossMaxDim(st *style.Style, isRow bool) geom.Dimension {
	if isRow {
		return st.MaxHeight
	}
	return st.MaxWidth
}

// alignLines distributes leftover cross space between lines per
// align-content and returns per-line offsets plus per-line growth for
// the Stretch case.
func alignLines(ac style.AlignContent, wrap style.FlexWrap, n int, lineCross []float64, gap, containerCross float64) (offsets, grow []float64) {
	offsets = make([]float64, n)
	grow = make([]float64, n)
	if n == 0 {
		return offsets, grow
	}
	total := sumf(lineCross) + gap*float64(n-1)
	free := containerCross - total
	if wrap == style.FlexWrapNoWrap {
		free = 0
	}

	lead, between := 0.0, gap
	switch {
	case free <= 0:
		// Overflowing lines start-align (center would need negative
		// leads; keep the result contained).
		if ac == style.AlignContentEnd {
			lead = free
		}
	case ac == style.AlignContentEnd:
		lead = free
	case ac == style.AlignContentCenter:
		lead = free / 2
	case ac == style.AlignContentSpaceBetween && n > 1:
		between += free / float64(n-1)
	case ac == style.AlignContentSpaceAround:
		lead = free / float64(n) / 2
		between += free / float64(n)
	case ac == style.AlignContentSpaceEvenly:
		lead = free / float64(n+1)
		between += free / float64(n+1)
	case ac == style.AlignContentStretch:
		for i := range grow {
			grow[i] = free / float64(n)
		}
	case ac == style.AlignContentStart:
		// lead 0
	}

	cursor := lead
	for i := 0; i < n; i++ {
		offsets[i] = cursor
		cursor += lineCross[i] + grow[i] + between
	}
	return offsets, grow
}

// placeFlexLine performs main-axis justification (including auto-margin
// absorption), cross-axis alignment and stretching, and records final
// item positions for one line.
func (e *Engine) placeFlexLine(d Dispatcher, ctx Context, st *style.Style, line []*flexItem, isRow, isReverse bool, containerMain, gap, lineOffset, lineCross float64, contentW float64, crossAvail geom.OptFloat) {
	var outerSum float64
	autoMargins := 0
	for _, it := range line {
		outerSum += it.outerTarget(isRow)
		s, en := it.mainAutoMargins(isRow)
		if s {
			autoMargins++
		}
		if en {
			autoMargins++
		}
	}
	gaps := gap * float64(len(line)-1)
	free := containerMain - outerSum - gaps

	lead, between := 0.0, gap
	autoShare := 0.0
	if free > 0 && autoMargins > 0 {
		// Auto margins absorb all positive free space; justify-content
		// is ignored for the line.
		autoShare = free / float64(autoMargins)
	} else {
		n := float64(len(line))
		switch st.JustifyContent {
		case style.JustifyEnd:
			lead = free
		case style.JustifyCenter:
			lead = free / 2
		case style.JustifySpaceBetween:
			if free > 0 && len(line) > 1 {
				between += free / (n - 1)
			}
		case style.JustifySpaceAround:
			if free > 0 {
				lead = free / n / 2
				between += free / n
			}
		case style.JustifySpaceEvenly:
			if free > 0 {
				lead = free / (n + 1)
				between += free / (n + 1)
			}
		}
	}

	cursor := lead
	for _, it := range line {
		startAuto, endAuto := it.mainAutoMargins(isRow)
		mStart, mEnd := mainMarginPair(it, isRow)
		if startAuto {
			mStart += autoShare
		}
		if endAuto {
			mEnd += autoShare
		}
		it.mainPos = cursor + mStart
		cursor = it.mainPos + it.target + mEnd + between
	}
	// The trailing `between` overshoot is harmless; positions are set.

	if isReverse {
		for _, it := range line {
			it.mainPos = containerMain - it.mainPos - it.target
		}
	}

	for _, it := range line {
		align := it.st.AlignSelf.Resolve(st.AlignItems)
		crossStartAuto, crossEndAuto := it.crossAutoMargins(isRow)
		mStart, mEnd := crossMarginPair(it, isRow)
		freeCross := lineCross - it.outerCross(isRow)

		switch {
		case (crossStartAuto || crossEndAuto) && freeCross > 0:
			if crossStartAuto && crossEndAuto {
				mStart += freeCross / 2
			} else if crossStartAuto {
				mStart += freeCross
			}
			it.crossPos = lineOffset + mStart
		case align == style.AlignStretch && it.crossAuto:
			stretched := geom.NonNegative(lineCross - mStart - mEnd)
			var pbCross float64
			var lo, hi geom.OptFloat
			if isRow {
				pbCross = it.fr.pbHeight()
				lo, hi = resolveMinMaxAxis(it.st.MinHeight, it.st.MaxHeight, crossAvail, it.st.BoxSizing, pbCross)
			} else {
				pbCross = it.fr.pbWidth()
				lo, hi = resolveMinMaxAxis(it.st.MinWidth, it.st.MaxWidth, crossAvail, it.st.BoxSizing, pbCross)
			}
			stretched = clampContent(stretched-pbCross, lo, hi) + pbCross
			if stretched != it.crossSize {
				it.crossSize = stretched
				if isRow {
					it.layout = d.Dispatch(it.node, ctx.child(geom.Some(contentW), crossAvail).withKnown(geom.Some(it.target), geom.Some(stretched)))
				} else {
					it.layout = d.Dispatch(it.node, ctx.child(geom.Some(contentW), geom.None()).withKnown(geom.Some(stretched), geom.Some(it.target)))
				}
			}
			it.crossPos = lineOffset + mStart
		case align == style.AlignEnd:
			it.crossPos = lineOffset + lineCross - it.crossSize - mEnd
		case align == style.AlignCenter:
			it.crossPos = lineOffset + mStart + freeCross/2
		default:
			// Start, and Baseline's Start fallback for wrapped column
			// groups pending proper baseline synthesis.
			it.crossPos = lineOffset + mStart
		}
	}
}

func mainMarginPair(it *flexItem, isRow bool) (start, end float64) {
	if isRow {
		return it.fr.margin.Left, it.fr.margin.Right
	}
	return it.fr.margin.Top, it.fr.margin.Bottom
}

func crossMarginPair(it *flexItem, isRow bool) (start, end float64) {
	if isRow {
		return it.fr.margin.Top, it.fr.margin.Bottom
	}
	return it.fr.margin.Left, it.fr.margin.Right
}
