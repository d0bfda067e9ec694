package layout

import (
	"math"
	"sort"

	"boxflow/pkg/geom"
	"boxflow/pkg/style"
)

type trackFnKind int

const (
	fnAuto trackFnKind = iota
	fnLength
	fnPercent
	fnMinContent
	fnMaxContent
	fnFr
	fnFitContent
)

// trackFn is one bound of a track's sizing function after minmax
// decomposition.
type trackFn struct {
	kind  trackFnKind
	value float64
}

func (f trackFn) isIntrinsicMin() bool {
	return f.kind == fnAuto || f.kind == fnMinContent || f.kind == fnMaxContent
}

func (f trackFn) isIntrinsicMax() bool {
	return f.kind == fnAuto || f.kind == fnMinContent || f.kind == fnMaxContent || f.kind == fnFitContent
}

// gridTrack is the mutable sizing state of one row or column.
type gridTrack struct {
	min, max   trackFn
	base       float64
	limit      float64 // +Inf until an intrinsic contribution lands
	maxContrib float64 // largest single-span max contribution, for indefinite fr
	collapsed  bool    // auto-fit track with no items
}

// decomposeTrack splits a TrackSizingFunction into min/max bounds.
func decomposeTrack(t style.TrackSizingFunction) gridTrack {
	simple := func(t style.TrackSizingFunction) trackFn {
		switch t.Kind {
		case style.TrackLength:
			return trackFn{kind: fnLength, value: geom.NonNegative(t.Value)}
		case style.TrackPercent:
			return trackFn{kind: fnPercent, value: geom.NonNegative(t.Value)}
		case style.TrackFr:
			return trackFn{kind: fnFr, value: geom.NonNegative(t.Value)}
		case style.TrackMinContent:
			return trackFn{kind: fnMinContent}
		case style.TrackMaxContent:
			return trackFn{kind: fnMaxContent}
		case style.TrackFitContent:
			return trackFn{kind: fnFitContent, value: geom.NonNegative(t.Value)}
		default:
			return trackFn{kind: fnAuto}
		}
	}
	if t.Kind == style.TrackMinMax {
		var mn, mx trackFn
		if t.Min != nil {
			mn = simple(*t.Min)
		}
		if t.Max != nil {
			mx = simple(*t.Max)
		}
		// An fr min behaves as auto.
		if mn.kind == fnFr {
			mn = trackFn{kind: fnAuto}
		}
		return gridTrack{min: mn, max: mx}
	}
	fn := simple(t)
	mn := fn
	if fn.kind == fnFr || fn.kind == fnFitContent {
		mn = trackFn{kind: fnAuto}
	}
	return gridTrack{min: mn, max: fn}
}

// initTrackSizes sets base sizes and growth limits from the sizing
// functions (CSS Grid §12.4).
func initTrackSizes(tracks []gridTrack, inner geom.OptFloat) {
	for i := range tracks {
		tr := &tracks[i]
		tr.maxContrib = 0
		switch tr.min.kind {
		case fnLength:
			tr.base = tr.min.value
		case fnPercent:
			tr.base = tr.min.value * inner.Or(0)
		default:
			tr.base = 0
		}
		switch tr.max.kind {
		case fnLength:
			tr.limit = tr.max.value
		case fnPercent:
			if inner.Valid {
				tr.limit = tr.max.value * inner.Value
			} else {
				tr.limit = math.Inf(1)
			}
		case fnFitContent:
			tr.limit = tr.max.value
		default:
			tr.limit = math.Inf(1)
		}
		if tr.limit < tr.base {
			tr.limit = tr.base
		}
	}
}

// axisSpan returns the item's span on the axis being sized.
func axisSpan(it *gridItem, isCols bool) span {
	if isCols {
		return it.col
	}
	return it.row
}

// minContribution returns the item's min contribution on the axis:
// its min-content outer size when the spanned min function demands an
// intrinsic floor, honoring the automatic-minimum rule (§6.6) for auto
// minimums on overflow-visible items.
func (e *Engine) gridMinContribution(d Dispatcher, ctx Context, it *gridItem, isCols bool, auto bool, areaWidth geom.OptFloat) float64 {
	if auto && !overflowVisibleBoth(it.st) {
		return 0
	}
	if isCols {
		e.measureGridItemWidths(d, ctx, it)
		min := it.minContribW
		// Clamp by the specified min/max sizes.
		if v := it.st.MaxWidth.Resolve(geom.None()); v.Valid {
			min = minf(min, v.Value+it.fr.margin.Horizontal())
		}
		if v := it.st.MinWidth.Resolve(geom.None()); v.Valid {
			min = maxf(min, v.Value+it.fr.margin.Horizontal())
		}
		return min
	}
	e.measureGridItemHeight(d, ctx, it, areaWidth)
	return it.contribH
}

func (e *Engine) gridMaxContribution(d Dispatcher, ctx Context, it *gridItem, isCols bool, areaWidth geom.OptFloat) float64 {
	if isCols {
		e.measureGridItemWidths(d, ctx, it)
		return it.maxContribW
	}
	e.measureGridItemHeight(d, ctx, it, areaWidth)
	return it.contribH
}

func (e *Engine) measureGridItemWidths(d Dispatcher, ctx Context, it *gridItem) {
	if it.measuredW {
		return
	}
	it.minContribW = d.Dispatch(it.node, ctx.child(geom.None(), geom.None()).withMode(SizingMinContent)).OuterWidth()
	it.maxContribW = d.Dispatch(it.node, ctx.child(geom.None(), geom.None()).withMode(SizingMaxContent)).OuterWidth()
	it.measuredW = true
}

func (e *Engine) measureGridItemHeight(d Dispatcher, ctx Context, it *gridItem, areaWidth geom.OptFloat) {
	if it.measuredH {
		return
	}
	it.contribH = d.Dispatch(it.node, ctx.child(areaWidth, geom.None())).OuterHeight()
	it.measuredH = true
}

// sizeGridTracks runs the track sizing algorithm (CSS Grid §12) for one
// axis. colWidth supplies the resolved area width per item when sizing
// rows; nil when sizing columns.
func (e *Engine) sizeGridTracks(d Dispatcher, ctx Context, tracks []gridTrack, items []*gridItem, isCols bool, inner geom.OptFloat, gap float64, colWidth func(*gridItem) geom.OptFloat, stretchAuto bool) {
	initTrackSizes(tracks, inner)
	if len(tracks) == 0 {
		return
	}
	gaps := gap * float64(len(tracks)-1)

	areaW := func(it *gridItem) geom.OptFloat {
		if colWidth == nil {
			return geom.None()
		}
		return colWidth(it)
	}

	// Single-span items, then spanning items in ascending span order.
	sorted := append([]*gridItem(nil), items...)
	sort.SliceStable(sorted, func(i, j int) bool {
		return axisSpan(sorted[i], isCols).len() < axisSpan(sorted[j], isCols).len()
	})

	for _, it := range sorted {
		sp := axisSpan(it, isCols)
		if sp.start < 0 || sp.end > len(tracks) {
			continue
		}
		crossesFr := false
		for i := sp.start; i < sp.end; i++ {
			if tracks[i].max.kind == fnFr {
				crossesFr = true
				break
			}
		}

		if sp.len() == 1 {
			tr := &tracks[sp.start]
			if tr.min.isIntrinsicMin() {
				var contrib float64
				if tr.min.kind == fnMaxContent {
					contrib = e.gridMaxContribution(d, ctx, it, isCols, areaW(it))
				} else {
					contrib = e.gridMinContribution(d, ctx, it, isCols, tr.min.kind == fnAuto, areaW(it))
				}
				tr.base = maxf(tr.base, contrib)
			}
			if tr.max.isIntrinsicMax() {
				var contrib float64
				if tr.max.kind == fnMinContent {
					contrib = e.gridMinContribution(d, ctx, it, isCols, false, areaW(it))
				} else {
					contrib = e.gridMaxContribution(d, ctx, it, isCols, areaW(it))
					if tr.max.kind == fnFitContent {
						contrib = minf(contrib, tr.max.value)
					}
				}
				if math.IsInf(tr.limit, 1) {
					tr.limit = contrib
				} else {
					tr.limit = maxf(tr.limit, contrib)
				}
			}
			if tr.max.kind == fnFr {
				tr.maxContrib = maxf(tr.maxContrib, e.gridMaxContribution(d, ctx, it, isCols, areaW(it)))
			}
			if tr.limit < tr.base {
				tr.limit = tr.base
			}
			continue
		}

		if crossesFr {
			// Handled by flexible-track resolution.
			continue
		}

		spanGaps := gap * float64(sp.len()-1)
		var allocated float64
		for i := sp.start; i < sp.end; i++ {
			allocated += tracks[i].base
		}
		minC := e.gridMinContribution(d, ctx, it, isCols, true, areaW(it))
		if extra := minC - allocated - spanGaps; extra > 0 {
			var recv []int
			for i := sp.start; i < sp.end; i++ {
				if tracks[i].min.isIntrinsicMin() {
					recv = append(recv, i)
				}
			}
			if len(recv) == 0 {
				for i := sp.start; i < sp.end; i++ {
					recv = append(recv, i)
				}
			}
			share := extra / float64(len(recv))
			for _, i := range recv {
				tracks[i].base += share
				if tracks[i].limit < tracks[i].base {
					tracks[i].limit = tracks[i].base
				}
			}
		}
		maxC := e.gridMaxContribution(d, ctx, it, isCols, areaW(it))
		var allocatedLimit float64
		for i := sp.start; i < sp.end; i++ {
			if !math.IsInf(tracks[i].limit, 1) {
				allocatedLimit += tracks[i].limit
			}
		}
		if extra := maxC - allocatedLimit - spanGaps; extra > 0 {
			var recv []int
			for i := sp.start; i < sp.end; i++ {
				if tracks[i].max.isIntrinsicMax() {
					recv = append(recv, i)
				}
			}
			if len(recv) > 0 {
				share := extra / float64(len(recv))
				for _, i := range recv {
					if math.IsInf(tracks[i].limit, 1) {
						tracks[i].limit = tracks[i].base + share
					} else {
						tracks[i].limit += share
					}
				}
			}
		}
	}

	// Maximize: grow bases toward finite limits with definite free space.
	if inner.Valid {
		free := inner.Value - gaps
		for i := range tracks {
			free -= tracks[i].base
		}
		for free > 0.0001 {
			var recv []int
			for i := range tracks {
				if !math.IsInf(tracks[i].limit, 1) && tracks[i].limit > tracks[i].base+0.0001 {
					recv = append(recv, i)
				}
			}
			if len(recv) == 0 {
				break
			}
			share := free / float64(len(recv))
			var given float64
			for _, i := range recv {
				room := tracks[i].limit - tracks[i].base
				g := minf(share, room)
				tracks[i].base += g
				given += g
			}
			if given < 0.0001 {
				break
			}
			free -= given
		}
	}

	// Flexible tracks.
	var sumFr float64
	for i := range tracks {
		if tracks[i].max.kind == fnFr {
			sumFr += tracks[i].max.value
		}
	}
	if sumFr > 0 {
		if inner.Valid {
			leftover := inner.Value - gaps
			for i := range tracks {
				if tracks[i].max.kind != fnFr {
					leftover -= tracks[i].base
				}
			}
			if leftover > 0 {
				for i := range tracks {
					if tracks[i].max.kind == fnFr {
						tracks[i].base = maxf(tracks[i].base, tracks[i].max.value*leftover/sumFr)
					}
				}
			}
		} else {
			// Indefinite axis: fr sizes to its content, like max-content.
			for i := range tracks {
				if tracks[i].max.kind == fnFr {
					tracks[i].base = maxf(tracks[i].base, tracks[i].maxContrib)
				}
			}
		}
	}

	// Stretch auto tracks into remaining space.
	if stretchAuto && inner.Valid && sumFr == 0 {
		free := inner.Value - gaps
		for i := range tracks {
			free -= tracks[i].base
		}
		if free > 0 {
			var recv []int
			for i := range tracks {
				if tracks[i].max.kind == fnAuto && !tracks[i].collapsed {
					recv = append(recv, i)
				}
			}
			if len(recv) > 0 {
				share := free / float64(len(recv))
				for _, i := range recv {
					tracks[i].base += share
				}
			}
		}
	}

	for i := range tracks {
		tracks[i].base = geom.NonNegative(tracks[i].base)
	}
}

// trackOffsets converts track bases into cumulative start offsets.
func trackOffsets(tracks []gridTrack, gap float64) []float64 {
	offsets := make([]float64, len(tracks)+1)
	cursor := 0.0
	for i := range tracks {
		offsets[i] = cursor
		cursor += tracks[i].base
		if i < len(tracks)-1 && !tracks[i].collapsed {
			cursor += gap
		}
	}
	offsets[len(tracks)] = cursor
	return offsets
}

// spanSize sums the track sizes and interior gaps of a span.
func spanSize(tracks []gridTrack, sp span, gap float64) float64 {
	if sp.start < 0 || sp.end > len(tracks) || sp.start >= sp.end {
		return 0
	}
	var size float64
	for i := sp.start; i < sp.end; i++ {
		size += tracks[i].base
		if i > sp.start {
			size += gap
		}
	}
	return size
}
