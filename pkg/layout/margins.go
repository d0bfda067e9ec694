package layout

import "boxflow/pkg/style"

// collapseMargins returns the collapsed value of two adjoining block
// margins per CSS 2.1 §8.3.1: both positive takes the max, both negative
// the most negative, mixed the sum.
func collapseMargins(a, b float64) float64 {
	if a >= 0 && b >= 0 {
		if a > b {
			return a
		}
		return b
	}
	if a < 0 && b < 0 {
		if a < b {
			return a
		}
		return b
	}
	return a + b
}

// isCollapseThrough reports whether a laid-out box's top and bottom
// margins collapse through it: zero height, no vertical border or
// padding, visible overflow, and no in-flow content standing in the way.
func isCollapseThrough(l *Layout) bool {
	if l.Height != 0 {
		return false
	}
	if l.Border.Top != 0 || l.Border.Bottom != 0 {
		return false
	}
	if l.Padding.Top != 0 || l.Padding.Bottom != 0 {
		return false
	}
	if l.OverflowX != style.OverflowVisible || l.OverflowY != style.OverflowVisible {
		return false
	}
	return true
}

// throughMargin is the single collapsed margin of a collapse-through
// box: its own top and bottom margins merged.
func throughMargin(l *Layout) float64 {
	return collapseMargins(l.Margin.Top, l.Margin.Bottom)
}

// marginCollapseContext accumulates the adjoining-margin state while a
// block container places its in-flow children.
type marginCollapseContext struct {
	// pending is the margin set currently adjoining the flow cursor:
	// the previous box's bottom margin plus any collapse-through boxes
	// seen since.
	pending float64
	// sawBox is false until the first non-collapse-through box lands.
	sawBox bool
	// leading is the margin that escaped through the container's top
	// edge (parent/first-child collapse), when topOpen.
	leading float64
	topOpen bool
}

// add runs one child through the context and returns the gap to insert
// above the child's border box. Collapse-through children return no gap
// and stay at the cursor.
func (m *marginCollapseContext) add(child *Layout, through bool) (gap float64) {
	if through {
		m.pending = collapseMargins(m.pending, throughMargin(child))
		return 0
	}
	joined := collapseMargins(m.pending, child.Margin.Top)
	m.pending = child.Margin.Bottom
	if !m.sawBox {
		m.sawBox = true
		if m.topOpen {
			// The first box's top margin (and any earlier collapse-through
			// margins) escapes through the container's top edge.
			m.leading = joined
			return 0
		}
	}
	return joined
}

// trailing returns the margin left adjoining the container's bottom
// edge after all children are placed.
func (m *marginCollapseContext) trailing() float64 { return m.pending }
