package layout

import (
	"boxflow/pkg/geom"
	"boxflow/pkg/style"
)

// layoutAbsoluteChildren lays out absolutely positioned children against
// the container's padding box and installs them in their output slots.
// Resulting coordinates are converted back to content-box space to keep
// the Layout coordinate contract uniform.
func (e *Engine) layoutAbsoluteChildren(d Dispatcher, ctx Context, abs []childRef, out *Layout) {
	if len(abs) == 0 {
		return
	}
	pbW := geom.NonNegative(out.Width - out.Border.Horizontal())
	pbH := geom.NonNegative(out.Height - out.Border.Vertical())
	for _, it := range abs {
		l := e.layoutAbsoluteInRect(d, ctx, it.node, absRect{w: pbW, h: pbH})
		l.X -= out.Padding.Left
		l.Y -= out.Padding.Top
		it.set(l)
	}
}

// absRect is a positioning rectangle in the container's padding-box
// coordinate space.
type absRect struct {
	x, y, w, h float64
}

// layoutAbsoluteInRect sizes and positions one out-of-flow box inside
// rect. Grid containers call this with a track-derived rectangle;
// everything else uses the whole padding box. Fixed boxes resolve their
// insets against the viewport but still position inside rect, since the
// engine's output has no global coordinate space.
func (e *Engine) layoutAbsoluteInRect(d Dispatcher, ctx Context, node *Node, rect absRect) *Layout {
	st := styleOf(node)
	cbW, cbH := rect.w, rect.h
	if st.Position == style.PositionFixed {
		cbW, cbH = ctx.ViewportWidth, ctx.ViewportHeight
	}
	cw, ch := geom.Some(cbW), geom.Some(cbH)

	fr := resolveFrame(st, cw)
	pbW, pbH := fr.pbWidth(), fr.pbHeight()
	minW, maxW := resolveMinMaxAxis(st.MinWidth, st.MaxWidth, cw, st.BoxSizing, pbW)
	minH, maxH := resolveMinMaxAxis(st.MinHeight, st.MaxHeight, ch, st.BoxSizing, pbH)

	left := st.Inset.Left.Resolve(cw)
	right := st.Inset.Right.Resolve(cw)
	top := st.Inset.Top.Resolve(ch)
	bottom := st.Inset.Bottom.Resolve(ch)

	// Width: explicit, inset-stretched, or shrink-to-fit.
	var borderW geom.OptFloat
	if v := st.Width.Resolve(cw); v.Valid {
		borderW = geom.Some(clampContent(contentFromStyleSize(v.Value, st.BoxSizing, pbW), minW, maxW) + pbW)
	} else if left.Valid && right.Valid {
		w := cbW - left.Value - right.Value - fr.margin.Horizontal()
		borderW = geom.Some(clampContent(geom.NonNegative(w)-pbW, minW, maxW) + pbW)
	} else {
		imin, imax := e.intrinsicInline(d, node, ctx)
		avail := cbW - left.Or(0) - right.Or(0) - fr.margin.Horizontal()
		w := minf(maxf(imin, minf(imax, geom.NonNegative(avail))), imax)
		borderW = geom.Some(clampContent(w-pbW, minW, maxW) + pbW)
	}

	var borderH geom.OptFloat
	if v := st.Height.Resolve(ch); v.Valid {
		borderH = geom.Some(clampContent(contentFromStyleSize(v.Value, st.BoxSizing, pbH), minH, maxH) + pbH)
	} else if top.Valid && bottom.Valid {
		h := cbH - top.Value - bottom.Value - fr.margin.Vertical()
		borderH = geom.Some(clampContent(geom.NonNegative(h)-pbH, minH, maxH) + pbH)
	}
	// Otherwise height stays content-driven.

	l := d.Dispatch(node, ctx.child(geom.Some(cbW), geom.Some(cbH)).withKnown(borderW, borderH))

	// Inline position and auto-margin centering.
	ml, mr := fr.margin.Left, fr.margin.Right
	if left.Valid && right.Valid {
		free := cbW - left.Value - right.Value - l.Width - ml - mr
		la := st.Margin.Left.IsAuto()
		ra := st.Margin.Right.IsAuto()
		switch {
		case la && ra && free > 0:
			ml += free / 2
		case la && free > 0:
			ml += free
		}
		l.X = rect.x + left.Value + ml
	} else if left.Valid {
		l.X = rect.x + left.Value + ml
	} else if right.Valid {
		l.X = rect.x + cbW - right.Value - l.Width - mr
	} else {
		l.X = rect.x + ml
	}

	mt, mb := fr.margin.Top, fr.margin.Bottom
	if top.Valid && bottom.Valid {
		free := cbH - top.Value - bottom.Value - l.Height - mt - mb
		ta := st.Margin.Top.IsAuto()
		ba := st.Margin.Bottom.IsAuto()
		switch {
		case ta && ba && free > 0:
			mt += free / 2
		case ta && free > 0:
			mt += free
		}
		l.Y = rect.y + top.Value + mt
	} else if top.Valid {
		l.Y = rect.y + top.Value + mt
	} else if bottom.Valid {
		l.Y = rect.y + cbH - bottom.Value - l.Height - mb
	} else {
		l.Y = rect.y + mt
	}

	return l
}
