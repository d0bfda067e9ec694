package layout

import (
	"boxflow/pkg/geom"
	"boxflow/pkg/style"
)

// IntrinsicSize is the result of a measure callback: content-derived
// min/max sizes on both axes.
type IntrinsicSize struct {
	MinWidth  float64
	MaxWidth  float64
	MinHeight float64
	MaxHeight float64
}

// Normalize sanitizes the values and restores min <= max on both axes.
// Measure callbacks are external code; the engine never trusts them to
// uphold the invariant.
func (s IntrinsicSize) Normalize() IntrinsicSize {
	s.MinWidth = geom.NonNegative(s.MinWidth)
	s.MaxWidth = geom.NonNegative(s.MaxWidth)
	s.MinHeight = geom.NonNegative(s.MinHeight)
	s.MaxHeight = geom.NonNegative(s.MaxHeight)
	if s.MinWidth > s.MaxWidth {
		s.MinWidth, s.MaxWidth = s.MaxWidth, s.MinWidth
	}
	if s.MinHeight > s.MaxHeight {
		s.MinHeight, s.MaxHeight = s.MaxHeight, s.MinHeight
	}
	return s
}

// MeasureFunc supplies intrinsic sizes for a leaf carrying external
// content (text, images). availableWidth/availableHeight are the space
// offered by the formatting context; either may be indefinite. The
// callback must be pure and monotone in availableWidth. It may be called
// up to three times per layout pass and is never retained across passes.
type MeasureFunc func(availableWidth, availableHeight geom.OptFloat) IntrinsicSize

// Node is one box in the immutable input tree. Callers build a Node tree,
// hand it to Engine.Compute, and receive a parallel Layout tree back.
type Node struct {
	// Uid uniquely identifies the node within its tree. The incremental
	// layer addresses nodes by Uid.
	Uid int

	// ID is an opaque caller label echoed into the Layout output.
	ID string

	Style    *style.Style
	Children []*Node

	// Measure supplies content sizes for leaves. Ignored when the node
	// has children.
	Measure MeasureFunc

	// Text is an optional payload for the measure callback and renderers.
	Text string
}

// styleOf returns the node's style, or the initial-value style when nil.
var initialStyle = style.New()

func styleOf(n *Node) *style.Style {
	if n == nil || n.Style == nil {
		return initialStyle
	}
	return n.Style
}
