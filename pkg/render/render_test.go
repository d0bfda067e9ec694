package render

import (
	"image/color"
	"testing"

	"boxflow/pkg/layout"
)

func TestDrawOutlinesBoxes(t *testing.T) {
	root := &layout.Layout{
		ID:    "root",
		Width: 100, Height: 60,
		Children: []*layout.Layout{
			{ID: "child", X: 10, Y: 10, Width: 40, Height: 20},
		},
	}
	img, err := Draw(root, Options{})
	if err != nil {
		t.Fatalf("Draw: %v", err)
	}
	bounds := img.Bounds()
	if bounds.Dx() < 100 || bounds.Dy() < 60 {
		t.Fatalf("image %v smaller than root box", bounds)
	}

	// The root outline must have painted something non-white near the
	// top-left corner.
	r, g, b, _ := img.At(0, 0).RGBA()
	white := color.White
	wr, wg, wb, _ := white.RGBA()
	if r == wr && g == wg && b == wb {
		t.Error("corner pixel still white; outline not painted")
	}
}

func TestDrawRejectsDegenerateRoot(t *testing.T) {
	if _, err := Draw(&layout.Layout{Width: -5, Height: 0}, Options{}); err == nil {
		t.Error("expected error for degenerate root")
	}
}

func TestDrawSkipsZeroPlaceholders(t *testing.T) {
	root := &layout.Layout{
		ID:    "root",
		Width: 50, Height: 50,
		Children: []*layout.Layout{
			{ID: "ghost"}, // display:none placeholder
			{ID: "real", X: 5, Y: 5, Width: 10, Height: 10},
		},
	}
	if _, err := Draw(root, Options{Scale: 2}); err != nil {
		t.Fatalf("Draw: %v", err)
	}
}
