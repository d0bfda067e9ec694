package layout

import (
	"boxflow/pkg/geom"
	"boxflow/pkg/style"
)

// layoutBlock implements normal block flow: in-flow children stack in
// the block direction, inline sizes resolve against the containing
// block, vertical margins collapse per CSS 2.1 §8.3.1.
func (e *Engine) layoutBlock(d Dispatcher, node *Node, ctx Context) *Layout {
	st := styleOf(node)
	cw := ctx.AvailableWidth
	fr := resolveFrame(st, cw)
	pbW, pbH := fr.pbWidth(), fr.pbHeight()

	minW, maxW := resolveMinMaxAxis(st.MinWidth, st.MaxWidth, cw, st.BoxSizing, pbW)
	minH, maxH := resolveMinMaxAxis(st.MinHeight, st.MaxHeight, ctx.AvailableHeight, st.BoxSizing, pbH)

	contentW := e.resolveBlockContentWidth(d, node, st, ctx, fr, minW, maxW)

	// Height fixed up front when the style or the parent pins it.
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

	out := &Layout{
		ID:        node.ID,
		Margin:    fr.margin,
		Padding:   fr.padding,
		Border:    fr.border,
		OverflowX: st.OverflowX,
		OverflowY: st.OverflowY,
		Text:      node.Text,
	}

	// Measured leaf: content comes from the callback.
	if node.Measure != nil && len(node.Children) == 0 {
		if !contentH.Valid {
			m := measureLeaf(node, geom.Some(contentW), contentH)
			contentH = clampOpt(geom.Some(m.MaxHeight), minH, maxH)
		}
		out.Width = contentW + pbW
		out.Height = contentH.Or(0) + pbH
		return out
	}

	skeleton, flow, abs := collectChildren(node)
	out.Children = skeleton

	heightIsAuto := !contentH.Valid
	topOpen := fr.border.Top == 0 && fr.padding.Top == 0 && overflowVisibleBoth(st)
	bottomOpen := heightIsAuto && fr.border.Bottom == 0 && fr.padding.Bottom == 0 && overflowVisibleBoth(st)

	mcc := marginCollapseContext{topOpen: topOpen}
	cursor := 0.0
	for _, it := range flow {
		remaining := contentH
		if remaining.Valid {
			remaining = geom.Some(geom.NonNegative(remaining.Value - cursor))
		}
		cl := d.Dispatch(it.node, ctx.child(geom.Some(contentW), remaining))
		cst := styleOf(it.node)

		through := isCollapseThrough(cl)
		gap := mcc.add(cl, through)
		cl.Y = cursor + gap
		cl.X = blockChildX(cst, cl, contentW)
		if dx, dy := relativeOffset(cst, geom.Some(contentW), contentH); dx != 0 || dy != 0 {
			cl.X += dx
			cl.Y += dy
		}
		if !through {
			cursor = cl.Y + cl.Height
		}
		it.set(cl)
	}

	if heightIsAuto {
		h := cursor
		if !bottomOpen {
			h += mcc.trailing()
		}
		contentH = clampOpt(geom.Some(geom.NonNegative(h)), minH, maxH)
	}

	// Margins that escaped through an open edge join this box's own
	// margins for the grandparent's collapse pass.
	if topOpen && mcc.sawBox {
		out.Margin.Top = collapseMargins(fr.margin.Top, mcc.leading)
	}
	if bottomOpen {
		out.Margin.Bottom = collapseMargins(fr.margin.Bottom, mcc.trailing())
	}

	out.Width = contentW + pbW
	out.Height = contentH.Or(0) + pbH

	e.layoutAbsoluteChildren(d, ctx, abs, out)
	finishSkeleton(node, skeleton)
	return out
}

// resolveBlockContentWidth resolves a block-level box's content-box
// width: parent-imposed size, explicit style, aspect ratio, intrinsic
// keyword, fill, or shrink-to-fit, clamped by min/max.
func (e *Engine) resolveBlockContentWidth(d Dispatcher, node *Node, st *style.Style, ctx Context, fr frame, minW, maxW geom.OptFloat) float64 {
	pbW := fr.pbWidth()
	if ctx.KnownWidth.Valid {
		return geom.NonNegative(ctx.KnownWidth.Value - pbW)
	}
	cw := ctx.AvailableWidth

	var w float64
	switch {
	case st.Width.Kind == geom.DimMinContent:
		min, _ := e.intrinsicInline(d, node, ctx)
		w = geom.NonNegative(min - pbW)
	case st.Width.Kind == geom.DimMaxContent:
		_, max := e.intrinsicInline(d, node, ctx)
		w = geom.NonNegative(max - pbW)
	case st.Width.Kind == geom.DimFitContent:
		min, max := e.intrinsicInline(d, node, ctx)
		w = geom.NonNegative(minf(max, maxf(min, st.Width.Value)) - pbW)
	default:
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
				if cw.Valid {
					fill := geom.NonNegative(cw.Value - fr.margin.Horizontal() - pbW)
					if st.Display == style.DisplayInlineBlock {
						// Shrink-to-fit per CSS 2.1 §10.3.5.
						min, max := e.intrinsicInline(d, node, ctx)
						mn := geom.NonNegative(min - pbW)
						mx := geom.NonNegative(max - pbW)
						w = minf(maxf(mn, fill), mx)
					} else {
						w = fill
					}
				} else {
					_, max := e.intrinsicInline(d, node, ctx)
					w = geom.NonNegative(max - pbW)
				}
			}
		}
	}
	return clampContent(w, minW, maxW)
}

// blockChildX places a child on the inline axis, honoring auto margins:
// both auto centers, a single auto margin absorbs the free space on its
// side.
func blockChildX(cst *style.Style, cl *Layout, contentW float64) float64 {
	ml, mr := cl.Margin.Left, cl.Margin.Right
	free := contentW - cl.Width - ml - mr
	if free > 0 {
		la := cst.Margin.Left.IsAuto()
		ra := cst.Margin.Right.IsAuto()
		switch {
		case la && ra:
			return ml + free/2
		case la:
			return ml + free
		}
	}
	return ml
}
