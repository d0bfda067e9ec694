package layout

import (
	"boxflow/pkg/geom"
	"boxflow/pkg/style"
)

// span is a half-open track range in implicit-grid coordinates. Before
// normalization, start may be negative (implicit prefix tracks).
type span struct {
	start, end int
}

func (s span) len() int { return s.end - s.start }

// gridArea is a named region resolved from grid-template-areas.
type gridArea struct {
	row, col span
}

// resolveTemplateAreas derives named areas from the rows-of-names form.
// Non-rectangular repetitions keep their bounding box; this engine does
// not reject malformed templates (layout is total).
func resolveTemplateAreas(rows [][]string) map[string]gridArea {
	if len(rows) == 0 {
		return nil
	}
	areas := map[string]gridArea{}
	for r, row := range rows {
		for c, name := range row {
			if name == "" || name == "." {
				continue
			}
			a, ok := areas[name]
			if !ok {
				areas[name] = gridArea{row: span{r, r + 1}, col: span{c, c + 1}}
				continue
			}
			if r < a.row.start {
				a.row.start = r
			}
			if r+1 > a.row.end {
				a.row.end = r + 1
			}
			if c < a.col.start {
				a.col.start = c
			}
			if c+1 > a.col.end {
				a.col.end = c + 1
			}
			areas[name] = a
		}
	}
	return areas
}

// placementSpec is one axis of an item's requested placement before
// auto-placement runs.
type placementSpec struct {
	definite bool
	span     span // valid when definite
	spanLen  int  // requested span when not definite
}

// resolveAxisPlacement turns a GridLine pair into a placementSpec.
// explicitTracks is the number of explicit tracks on the axis; negative
// line numbers count back from the grid's end line.
func resolveAxisPlacement(line style.GridLine, explicitTracks int) placementSpec {
	resolveLine := func(p style.Placement) (int, bool) {
		if p.Kind != style.PlacementLine || p.N == 0 {
			return 0, false
		}
		if p.N > 0 {
			return p.N - 1, true
		}
		// -1 is the last line, i.e. index explicitTracks.
		return explicitTracks + 1 + p.N, true
	}

	s, sOK := resolveLine(line.Start)
	en, eOK := resolveLine(line.End)
	switch {
	case sOK && eOK:
		if en < s {
			s, en = en, s
		}
		if en == s {
			en = s + 1
		}
		return placementSpec{definite: true, span: span{s, en}}
	case sOK:
		n := 1
		if line.End.Kind == style.PlacementSpan {
			n = line.End.N
		}
		return placementSpec{definite: true, span: span{s, s + n}}
	case eOK:
		n := 1
		if line.Start.Kind == style.PlacementSpan {
			n = line.Start.N
		}
		return placementSpec{definite: true, span: span{en - n, en}}
	default:
		n := 1
		if line.Start.Kind == style.PlacementSpan {
			n = line.Start.N
		} else if line.End.Kind == style.PlacementSpan {
			n = line.End.N
		}
		return placementSpec{spanLen: n}
	}
}

// gridItem is one in-flow participant of a grid pass.
type gridItem struct {
	node *Node
	ref  childRef
	st   *style.Style
	fr   frame

	row, col span

	// cached contributions (outer, border-box plus margins)
	minContribW, maxContribW float64
	contribH                 float64
	measuredW                bool
	measuredH                bool

	layout *Layout
}

// occupancy tracks filled cells during placement.
type occupancy map[[2]int]bool

func (o occupancy) fits(row, col span) bool {
	for r := row.start; r < row.end; r++ {
		for c := col.start; c < col.end; c++ {
			if o[[2]int{r, c}] {
				return false
			}
		}
	}
	return true
}

func (o occupancy) fill(row, col span) {
	for r := row.start; r < row.end; r++ {
		for c := col.start; c < col.end; c++ {
			o[[2]int{r, c}] = true
		}
	}
}

// placeGridItems runs the three placement passes: grid bounds from
// explicit lines, definite placements, then the auto-placement cursor.
// Returns the items with normalized non-negative spans plus the final
// row/column counts and the offset applied to absorb implicit prefix
// tracks.
func placeGridItems(items []*gridItem, areas map[string]gridArea, explicitRows, explicitCols int, flow style.GridAutoFlow) (rowCount, colCount, rowOffset, colOffset int) {
	type pending struct {
		it       *gridItem
		rowSpec  placementSpec
		colSpec  placementSpec
	}
	specs := make([]pending, len(items))

	// Pass 1: resolve specs; named areas first, then line pairs.
	minRow, minCol := 0, 0
	for i, it := range items {
		var rs, cs placementSpec
		if a, ok := areas[it.st.GridArea]; ok && it.st.GridArea != "" {
			rs = placementSpec{definite: true, span: a.row}
			cs = placementSpec{definite: true, span: a.col}
		} else {
			rs = resolveAxisPlacement(it.st.GridRow, explicitRows)
			cs = resolveAxisPlacement(it.st.GridColumn, explicitCols)
		}
		if rs.definite && rs.span.start < minRow {
			minRow = rs.span.start
		}
		if cs.definite && cs.span.start < minCol {
			minCol = cs.span.start
		}
		specs[i] = pending{it: it, rowSpec: rs, colSpec: cs}
	}
	rowOffset, colOffset = -minRow, -minCol

	occ := occupancy{}
	rowCount = explicitRows + rowOffset
	colCount = explicitCols + colOffset
	if rowCount < 1 {
		rowCount = 1
	}
	if colCount < 1 {
		colCount = 1
	}

	grow := func(row, col span) {
		if row.end > rowCount {
			rowCount = row.end
		}
		if col.end > colCount {
			colCount = col.end
		}
	}

	// Pass 2: items definite on both axes.
	for i := range specs {
		p := &specs[i]
		if !p.rowSpec.definite || !p.colSpec.definite {
			continue
		}
		row := span{p.rowSpec.span.start + rowOffset, p.rowSpec.span.end + rowOffset}
		col := span{p.colSpec.span.start + colOffset, p.colSpec.span.end + colOffset}
		p.it.row, p.it.col = row, col
		grow(row, col)
		occ.fill(row, col)
	}

	// Pass 3: auto placement. DOM order; the cursor only moves forward
	// unless dense packing restarts it.
	cursorRow, cursorCol := 0, 0
	for i := range specs {
		p := &specs[i]
		if p.rowSpec.definite && p.colSpec.definite {
			continue
		}
		rowLen := p.rowSpec.spanLen
		colLen := p.colSpec.spanLen

		switch {
		case p.rowSpec.definite && !flow.IsColumn():
			// Row pinned: scan columns within it.
			row := span{p.rowSpec.span.start + rowOffset, p.rowSpec.span.end + rowOffset}
			c := 0
			for {
				col := span{c, c + colLen}
				if col.end <= colCount || colCount == 0 {
					if occ.fits(row, col) {
						p.it.row, p.it.col = row, col
						break
					}
					c++
					continue
				}
				// Overflow the explicit columns: place at c anyway.
				p.it.row, p.it.col = row, span{c, c + colLen}
				break
			}
		case p.colSpec.definite && flow.IsColumn():
			col := span{p.colSpec.span.start + colOffset, p.colSpec.span.end + colOffset}
			r := 0
			for {
				row := span{r, r + rowLen}
				if row.end <= rowCount || rowCount == 0 {
					if occ.fits(row, col) {
						p.it.row, p.it.col = row, col
						break
					}
					r++
					continue
				}
				p.it.row, p.it.col = span{r, r + rowLen}, col
				break
			}
		case p.colSpec.definite:
			// Column pinned under row flow: advance rows at that column.
			col := span{p.colSpec.span.start + colOffset, p.colSpec.span.end + colOffset}
			r := cursorRow
			for !occ.fits(span{r, r + rowLen}, col) {
				r++
			}
			p.it.row, p.it.col = span{r, r + rowLen}, col
		case p.rowSpec.definite:
			row := span{p.rowSpec.span.start + rowOffset, p.rowSpec.span.end + rowOffset}
			c := cursorCol
			for !occ.fits(row, span{c, c + colLen}) {
				c++
			}
			p.it.row, p.it.col = row, span{c, c + colLen}
		default:
			r, c := cursorRow, cursorCol
			if flow.IsDense() {
				r, c = 0, 0
			}
			if flow.IsColumn() {
				for {
					row := span{r, r + rowLen}
					if row.end > rowCount && r > 0 {
						r = 0
						c++
						continue
					}
					col := span{c, c + colLen}
					if occ.fits(row, col) {
						p.it.row, p.it.col = row, col
						break
					}
					r++
				}
				if !flow.IsDense() {
					cursorRow, cursorCol = p.it.row.start, p.it.col.start
				}
			} else {
				for {
					col := span{c, c + colLen}
					if col.end > colCount && c > 0 {
						c = 0
						r++
						continue
					}
					row := span{r, r + rowLen}
					if occ.fits(row, col) {
						p.it.row, p.it.col = row, col
						break
					}
					c++
				}
				if !flow.IsDense() {
					cursorRow, cursorCol = p.it.row.start, p.it.col.start
				}
			}
		}
		grow(p.it.row, p.it.col)
		occ.fill(p.it.row, p.it.col)
	}

	return rowCount, colCount, rowOffset, colOffset
}

// expandTemplate flattens a template track list: repeat(N, …) becomes N
// copies, repeat(auto-fill|auto-fit, …) as many copies as the definite
// inner size allows (at least one).
func expandTemplate(template []style.TrackSizingFunction, inner geom.OptFloat, gap float64) []style.TrackSizingFunction {
	var out []style.TrackSizingFunction
	for _, t := range template {
		if t.Kind != style.TrackRepeat {
			out = append(out, t)
			continue
		}
		count := t.Count
		if t.Mode != style.RepeatCount {
			count = autoRepeatCount(t.Tracks, inner, gap)
		}
		for i := 0; i < count; i++ {
			out = append(out, t.Tracks...)
		}
	}
	return out
}

// autoRepeatCount fits as many copies of the repeated tracks as the
// container's definite inner size permits. Indefinite axes and
// non-definite repeated tracks clamp to a single copy.
func autoRepeatCount(tracks []style.TrackSizingFunction, inner geom.OptFloat, gap float64) int {
	if !inner.Valid || len(tracks) == 0 {
		return 1
	}
	var per float64
	for _, t := range tracks {
		switch t.Kind {
		case style.TrackLength:
			per += t.Value
		case style.TrackPercent:
			per += t.Value * inner.Value
		case style.TrackMinMax:
			if t.Max != nil && t.Max.Kind == style.TrackLength {
				per += t.Max.Value
			} else if t.Min != nil && t.Min.Kind == style.TrackLength {
				per += t.Min.Value
			}
		}
	}
	per += gap * float64(len(tracks))
	if per <= 0 {
		return 1
	}
	n := int((inner.Value + gap) / per)
	if n < 1 {
		return 1
	}
	return n
}
