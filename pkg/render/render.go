// Package render rasterizes a computed Layout tree into an image for
// debugging: border-box outlines, padding tint, and a depth-based
// palette. It is a pure consumer of the Layout contract.
package render

import (
	"fmt"
	"image"

	"github.com/fogleman/gg"

	"boxflow/pkg/layout"
)

// palette cycles by tree depth; translucent fills keep overlaps legible.
var palette = [][3]float64{
	{0.27, 0.52, 0.81},
	{0.85, 0.43, 0.33},
	{0.40, 0.70, 0.45},
	{0.77, 0.63, 0.29},
	{0.58, 0.46, 0.75},
	{0.36, 0.67, 0.70},
}

// Options control rasterization.
type Options struct {
	Scale    float64 // pixels per layout unit; 0 means 1
	FontPath string  // optional TTF for id labels
	FontSize float64 // label size; 0 means 11
}

// Draw renders the layout tree onto a new image sized to the root's
// border box.
func Draw(root *layout.Layout, opts Options) (image.Image, error) {
	scale := opts.Scale
	if scale <= 0 {
		scale = 1
	}
	w := int(root.Width*scale) + 1
	h := int(root.Height*scale) + 1
	if w < 1 || h < 1 {
		return nil, fmt.Errorf("degenerate root size %gx%g", root.Width, root.Height)
	}
	dc := gg.NewContext(w, h)
	dc.SetRGB(1, 1, 1)
	dc.Clear()
	if opts.FontPath != "" {
		size := opts.FontSize
		if size <= 0 {
			size = 11
		}
		if err := dc.LoadFontFace(opts.FontPath, size*scale); err != nil {
			return nil, fmt.Errorf("load label font: %w", err)
		}
	}
	drawBox(dc, root, 0, 0, 0, scale, opts.FontPath != "")
	return dc.Image(), nil
}

// SavePNG renders and writes the tree to path.
func SavePNG(root *layout.Layout, path string, opts Options) error {
	img, err := Draw(root, opts)
	if err != nil {
		return err
	}
	if err := gg.SavePNG(path, img); err != nil {
		return fmt.Errorf("save %s: %w", path, err)
	}
	return nil
}

// drawBox paints one box at its absolute position and recurses. x, y
// are the parent's content-box origin in image coordinates.
func drawBox(dc *gg.Context, l *layout.Layout, x, y float64, depth int, scale float64, labels bool) {
	if l.Width <= 0 && l.Height <= 0 && len(l.Children) == 0 {
		// display:none placeholder
		return
	}
	bx := (x + l.X) * scale
	by := (y + l.Y) * scale
	bw := l.Width * scale
	bh := l.Height * scale

	c := palette[depth%len(palette)]

	// Content fill.
	dc.SetRGBA(c[0], c[1], c[2], 0.18)
	dc.DrawRectangle(bx, by, bw, bh)
	dc.Fill()

	// Padding band, when visible.
	if l.Padding.Horizontal()+l.Padding.Vertical() > 0 {
		dc.SetRGBA(c[0], c[1], c[2], 0.10)
		dc.DrawRectangle(
			bx+l.Border.Left*scale,
			by+l.Border.Top*scale,
			bw-(l.Border.Horizontal())*scale,
			bh-(l.Border.Vertical())*scale,
		)
		dc.Fill()
	}

	// Border-box outline.
	dc.SetRGBA(c[0], c[1], c[2], 0.9)
	dc.SetLineWidth(1)
	dc.DrawRectangle(bx+0.5, by+0.5, bw-1, bh-1)
	dc.Stroke()

	if labels && l.ID != "" {
		dc.SetRGBA(0.1, 0.1, 0.1, 0.9)
		dc.DrawString(l.ID, bx+2*scale, by+11*scale)
	}

	// Children are positioned relative to this box's content origin.
	cx := x + l.X + l.Border.Left + l.Padding.Left
	cy := y + l.Y + l.Border.Top + l.Padding.Top
	for _, child := range l.Children {
		drawBox(dc, child, cx, cy, depth+1, scale, labels)
	}
}
