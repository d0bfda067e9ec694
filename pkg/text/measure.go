// Package text provides measure callbacks backed by real font metrics,
// for leaves whose content the layout engine cannot size itself.
package text

import (
	"fmt"
	"os"
	"strings"

	"github.com/golang/freetype/truetype"
	"golang.org/x/image/font"
	"golang.org/x/image/math/fixed"

	"boxflow/pkg/geom"
	"boxflow/pkg/layout"
)

// Face wraps a sized TrueType face with pixel-unit metric queries.
type Face struct {
	font *truetype.Font
	face font.Face
	size float64
}

// LoadFace parses a TTF file and builds a face at the given pixel size.
func LoadFace(path string, size float64) (*Face, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read font %s: %w", path, err)
	}
	return NewFace(data, size)
}

// NewFace builds a face from raw TTF bytes.
func NewFace(data []byte, size float64) (*Face, error) {
	ft, err := truetype.Parse(data)
	if err != nil {
		return nil, fmt.Errorf("parse font: %w", err)
	}
	face := truetype.NewFace(ft, &truetype.Options{Size: size})
	return &Face{font: ft, face: face, size: size}, nil
}

func fromFixed(v fixed.Int26_6) float64 { return float64(v) / 64 }

// MeasureString returns the advance width of s in pixels.
func (f *Face) MeasureString(s string) float64 {
	return fromFixed(font.MeasureString(f.face, s))
}

// LineHeight is the face's ascent plus descent.
func (f *Face) LineHeight() float64 {
	m := f.face.Metrics()
	return fromFixed(m.Ascent + m.Descent)
}

// Ascent is the distance from the baseline to the top of the face.
func (f *Face) Ascent() float64 {
	return fromFixed(f.face.Metrics().Ascent)
}

// Measurer returns a MeasureFunc for content rendered with the face.
// Min width is the widest unbreakable segment, max width the widest
// unwrapped line; heights come from greedy wrapping at the offered
// width. The callback is pure and monotone in available width.
func Measurer(face *Face, content string) layout.MeasureFunc {
	return func(availW, availH geom.OptFloat) layout.IntrinsicSize {
		return measureWith(content, face.MeasureString, face.LineHeight(), availW)
	}
}

// FixedMeasure returns a deterministic MeasureFunc that charges every
// grapheme cluster the same advance. Used by tests and as the CLI
// default when no font is supplied; the heuristic mirrors the rough
// fallback estimate renderers use when a font fails to load.
func FixedMeasure(content string, charWidth, lineHeight float64) layout.MeasureFunc {
	measure := func(s string) float64 {
		return float64(Graphemes(s)) * charWidth
	}
	return func(availW, availH geom.OptFloat) layout.IntrinsicSize {
		return measureWith(content, measure, lineHeight, availW)
	}
}

// measureWith computes the intrinsic sizes of content under a width
// measure and line height.
func measureWith(content string, measure func(string) float64, lineHeight float64, availW geom.OptFloat) layout.IntrinsicSize {
	lines := strings.Split(normalizeNewlines(content), "\n")

	var minW, maxW float64
	for _, line := range lines {
		maxW = maxOf(maxW, measure(line))
		for _, w := range Words(line) {
			minW = maxOf(minW, measure(w))
		}
	}

	// Height from greedy wrapping at the offered width (unbounded width
	// means one box per input line).
	wrapped := 0
	for _, line := range lines {
		wrapped += wrapCount(line, measure, availW)
	}
	maxH := float64(wrapped) * lineHeight
	minH := maxH
	if len(content) == 0 {
		minH, maxH = 0, 0
	}

	return layout.IntrinsicSize{
		MinWidth:  minW,
		MaxWidth:  maxW,
		MinHeight: minH,
		MaxHeight: maxH,
	}
}

// wrapCount estimates the number of boxes one input line occupies when
// wrapped greedily at width.
func wrapCount(line string, measure func(string) float64, availW geom.OptFloat) int {
	if !availW.Valid || availW.Value <= 0 {
		return 1
	}
	words := Words(line)
	if len(words) == 0 {
		return 1
	}
	count := 1
	var current string
	for _, w := range words {
		candidate := w
		if current != "" {
			candidate = current + " " + w
		}
		if current != "" && measure(candidate) > availW.Value {
			count++
			current = w
			continue
		}
		current = candidate
	}
	return count
}

func normalizeNewlines(s string) string {
	s = strings.ReplaceAll(s, "\r\n", "\n")
	return strings.ReplaceAll(s, "\r", "\n")
}

func maxOf(a, b float64) float64 {
	if a > b {
		return a
	}
	return b
}
