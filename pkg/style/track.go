package style

import "boxflow/pkg/geom"

// TrackKind discriminates TrackSizingFunction.
type TrackKind int

const (
	TrackAuto TrackKind = iota
	TrackLength
	TrackPercent
	TrackFr
	TrackMinContent
	TrackMaxContent
	TrackFitContent
	TrackMinMax
	TrackRepeat
)

// RepeatMode is the count argument of repeat().
type RepeatMode int

const (
	RepeatCount RepeatMode = iota
	RepeatAutoFill
	RepeatAutoFit
)

// TrackSizingFunction is one entry of grid-template-rows/columns or
// grid-auto-rows/columns. Length, Percent and Fr carry their magnitude in
// Value; MinMax carries Min and Max; Repeat carries Mode, Count and
// Tracks.
type TrackSizingFunction struct {
	Kind  TrackKind
	Value float64 // length px, percent fraction, fr factor, fit-content px

	Min *TrackSizingFunction // minmax() only
	Max *TrackSizingFunction

	Mode   RepeatMode // repeat() only
	Count  int
	Tracks []TrackSizingFunction
}

// FixedTrack returns a pixel-length track.
func FixedTrack(px float64) TrackSizingFunction {
	return TrackSizingFunction{Kind: TrackLength, Value: geom.Sanitize(px)}
}

// PercentTrack returns a percentage track; f is a fraction (0.5 = 50%).
func PercentTrack(f float64) TrackSizingFunction {
	return TrackSizingFunction{Kind: TrackPercent, Value: geom.Sanitize(f)}
}

// FrTrack returns a flexible track with the given factor.
func FrTrack(factor float64) TrackSizingFunction {
	return TrackSizingFunction{Kind: TrackFr, Value: geom.NonNegative(factor)}
}

// AutoTrack returns an auto track.
func AutoTrack() TrackSizingFunction { return TrackSizingFunction{Kind: TrackAuto} }

// MinContentTrack returns a min-content track.
func MinContentTrack() TrackSizingFunction { return TrackSizingFunction{Kind: TrackMinContent} }

// MaxContentTrack returns a max-content track.
func MaxContentTrack() TrackSizingFunction { return TrackSizingFunction{Kind: TrackMaxContent} }

// FitContentTrack returns fit-content(limit) with limit in pixels.
func FitContentTrack(limit float64) TrackSizingFunction {
	return TrackSizingFunction{Kind: TrackFitContent, Value: geom.NonNegative(limit)}
}

// MinMaxTrack returns minmax(min, max).
func MinMaxTrack(min, max TrackSizingFunction) TrackSizingFunction {
	mn, mx := min, max
	return TrackSizingFunction{Kind: TrackMinMax, Min: &mn, Max: &mx}
}

// RepeatTracks returns repeat(count, tracks...).
func RepeatTracks(count int, tracks ...TrackSizingFunction) TrackSizingFunction {
	if count < 1 {
		count = 1
	}
	return TrackSizingFunction{Kind: TrackRepeat, Mode: RepeatCount, Count: count, Tracks: tracks}
}

// RepeatAuto returns repeat(auto-fill, ...) or repeat(auto-fit, ...).
func RepeatAuto(mode RepeatMode, tracks ...TrackSizingFunction) TrackSizingFunction {
	return TrackSizingFunction{Kind: TrackRepeat, Mode: mode, Tracks: tracks}
}

// PlacementKind discriminates a grid line placement.
type PlacementKind int

const (
	PlacementAuto PlacementKind = iota
	PlacementLine
	PlacementSpan
)

// Placement is one end of a grid-row or grid-column value: auto, a line
// number (1-based, negative counts from the end), or span N.
type Placement struct {
	Kind PlacementKind
	N    int
}

// AutoPlacement returns the auto placement.
func AutoPlacement() Placement { return Placement{} }

// Line returns a line placement. Lines are 1-based; negative indexes
// count back from the end line.
func Line(i int) Placement { return Placement{Kind: PlacementLine, N: i} }

// Span returns a span placement covering n tracks.
func Span(n int) Placement {
	if n < 1 {
		n = 1
	}
	return Placement{Kind: PlacementSpan, N: n}
}

// GridLine is the start/end pair of grid-row or grid-column.
type GridLine struct {
	Start Placement
	End   Placement
}

func trackEqual(a, b TrackSizingFunction) bool {
	if a.Kind != b.Kind || a.Value != b.Value || a.Mode != b.Mode || a.Count != b.Count {
		return false
	}
	if (a.Min == nil) != (b.Min == nil) || (a.Max == nil) != (b.Max == nil) {
		return false
	}
	if a.Min != nil && !trackEqual(*a.Min, *b.Min) {
		return false
	}
	if a.Max != nil && !trackEqual(*a.Max, *b.Max) {
		return false
	}
	if len(a.Tracks) != len(b.Tracks) {
		return false
	}
	for i := range a.Tracks {
		if !trackEqual(a.Tracks[i], b.Tracks[i]) {
			return false
		}
	}
	return true
}

func trackListEqual(a, b []TrackSizingFunction) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if !trackEqual(a[i], b[i]) {
			return false
		}
	}
	return true
}
