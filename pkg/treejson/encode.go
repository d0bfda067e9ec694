package treejson

import (
	"encoding/json"
	"fmt"

	"boxflow/pkg/layout"
)

// layoutJSON is the serialized shape of a computed Layout.
type layoutJSON struct {
	ID       string       `json:"id,omitempty"`
	X        float64      `json:"x"`
	Y        float64      `json:"y"`
	Width    float64      `json:"width"`
	Height   float64      `json:"height"`
	Margin   rectJSON     `json:"margin,omitempty"`
	Padding  rectJSON     `json:"padding,omitempty"`
	Border   rectJSON     `json:"border,omitempty"`
	Children []layoutJSON `json:"children,omitempty"`
	Text     string       `json:"text,omitempty"`
}

type rectJSON struct {
	Left   float64 `json:"left,omitempty"`
	Right  float64 `json:"right,omitempty"`
	Top    float64 `json:"top,omitempty"`
	Bottom float64 `json:"bottom,omitempty"`
}

func toLayoutJSON(l *layout.Layout) layoutJSON {
	out := layoutJSON{
		ID:     l.ID,
		X:      l.X,
		Y:      l.Y,
		Width:  l.Width,
		Height: l.Height,
		Margin: rectJSON{l.Margin.Left, l.Margin.Right, l.Margin.Top, l.Margin.Bottom},
		Padding: rectJSON{
			l.Padding.Left, l.Padding.Right, l.Padding.Top, l.Padding.Bottom,
		},
		Border: rectJSON{l.Border.Left, l.Border.Right, l.Border.Top, l.Border.Bottom},
		Text:   l.Text,
	}
	for _, c := range l.Children {
		out.Children = append(out.Children, toLayoutJSON(c))
	}
	return out
}

// EncodeLayout serializes a computed layout tree as indented JSON.
func EncodeLayout(l *layout.Layout) ([]byte, error) {
	data, err := json.MarshalIndent(toLayoutJSON(l), "", "  ")
	if err != nil {
		return nil, fmt.Errorf("encode layout: %w", err)
	}
	return data, nil
}
