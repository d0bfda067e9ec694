package layout

import (
	"boxflow/pkg/geom"
	"boxflow/pkg/style"
)

// SizingMode selects how auto sizes resolve during a pass. Definite is
// the normal mode; MinContent and MaxContent drive the intrinsic-sizing
// passes parents run before final layout.
type SizingMode int

const (
	SizingDefinite SizingMode = iota
	SizingMinContent
	SizingMaxContent
)

// Context is the immutable per-invocation input to the dispatcher.
type Context struct {
	// AvailableWidth/AvailableHeight is the space the containing block
	// offers. Indefinite on an axis when the container's size is
	// content-driven.
	AvailableWidth  geom.OptFloat
	AvailableHeight geom.OptFloat

	// KnownWidth/KnownHeight are border-box sizes imposed by the parent
	// formatting algorithm (a flexed main size, a stretched cross size, a
	// grid area). They override the node's own sizing styles.
	KnownWidth  geom.OptFloat
	KnownHeight geom.OptFloat

	Mode SizingMode

	ViewportWidth  float64
	ViewportHeight float64
}

// child derives the context a container hands to a child: fresh
// availability, Definite mode, same viewport.
func (c Context) child(availW, availH geom.OptFloat) Context {
	return Context{
		AvailableWidth:  availW,
		AvailableHeight: availH,
		Mode:            SizingDefinite,
		ViewportWidth:   c.ViewportWidth,
		ViewportHeight:  c.ViewportHeight,
	}
}

// withKnown returns a copy with parent-imposed border-box sizes.
func (c Context) withKnown(w, h geom.OptFloat) Context {
	c.KnownWidth = w
	c.KnownHeight = h
	return c
}

// withMode returns a copy in the given sizing mode.
func (c Context) withMode(m SizingMode) Context {
	c.Mode = m
	return c
}

// Layout is the output record for one box. X and Y are relative to the
// parent's content box; Width and Height are border-box sizes. Children
// has exactly the same length as the input node's Children: display:none
// children occupy their index with a zero-sized entry.
type Layout struct {
	ID string

	X float64
	Y float64

	Width  float64
	Height float64

	Margin  geom.Rect
	Padding geom.Rect
	Border  geom.Rect

	OverflowX style.Overflow
	OverflowY style.Overflow

	Children []*Layout

	Text string
}

// OuterWidth is the border-box width plus horizontal margins.
func (l *Layout) OuterWidth() float64 { return l.Width + l.Margin.Horizontal() }

// OuterHeight is the border-box height plus vertical margins.
func (l *Layout) OuterHeight() float64 { return l.Height + l.Margin.Vertical() }

// ContentWidth is the width inside padding and border.
func (l *Layout) ContentWidth() float64 {
	return geom.NonNegative(l.Width - l.Padding.Horizontal() - l.Border.Horizontal())
}

// ContentHeight is the height inside padding and border.
func (l *Layout) ContentHeight() float64 {
	return geom.NonNegative(l.Height - l.Padding.Vertical() - l.Border.Vertical())
}

// Dispatcher is the recursion point of the engine. The engine's own
// dispatcher selects a formatting algorithm per node; the incremental
// layer wraps it with a constraint cache. Passing it explicitly keeps
// the engine free of process-wide state.
type Dispatcher interface {
	Dispatch(node *Node, ctx Context) *Layout
}

// zeroLayout builds the placeholder for a display:none subtree: zero
// geometry, ids preserved, children recursively zeroed so index-based
// addressing keeps working.
func zeroLayout(node *Node) *Layout {
	l := &Layout{ID: node.ID, Text: node.Text}
	if len(node.Children) > 0 {
		l.Children = make([]*Layout, len(node.Children))
		for i, c := range node.Children {
			l.Children[i] = zeroLayout(c)
		}
	}
	return l
}
