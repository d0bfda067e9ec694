// Package treejson decodes layout fixtures from JSON and encodes
// computed layouts back out. It is the wire format of the CLI harness.
package treejson

import (
	"encoding/json"
	"fmt"

	"boxflow/pkg/geom"
	"boxflow/pkg/layout"
	"boxflow/pkg/style"
	"boxflow/pkg/text"
)

// nodeJSON is the on-disk shape of one node.
type nodeJSON struct {
	ID       string          `json:"id,omitempty"`
	Style    json.RawMessage `json:"style,omitempty"`
	Children []nodeJSON      `json:"children,omitempty"`
	Text     string          `json:"text,omitempty"`
	Measure  *measureJSON    `json:"measure,omitempty"`
}

// measureJSON configures a deterministic fixed-advance measure callback
// for the node's text.
type measureJSON struct {
	CharWidth  float64 `json:"charWidth"`
	LineHeight float64 `json:"lineHeight"`
}

// DecodeTree parses a JSON document into a Node tree, assigning uids in
// document order.
func DecodeTree(data []byte) (*layout.Node, error) {
	var root nodeJSON
	if err := json.Unmarshal(data, &root); err != nil {
		return nil, fmt.Errorf("decode tree: %w", err)
	}
	uid := 0
	return buildNode(&root, &uid)
}

func buildNode(n *nodeJSON, uid *int) (*layout.Node, error) {
	node := &layout.Node{Uid: *uid, ID: n.ID, Text: n.Text}
	*uid++
	if len(n.Style) > 0 {
		st, err := DecodeStyle(n.Style)
		if err != nil {
			return nil, fmt.Errorf("node %q: %w", n.ID, err)
		}
		node.Style = st
	}
	if n.Measure != nil {
		cw, lh := n.Measure.CharWidth, n.Measure.LineHeight
		if cw <= 0 {
			cw = 8
		}
		if lh <= 0 {
			lh = 16
		}
		node.Measure = text.FixedMeasure(n.Text, cw, lh)
	}
	for i := range n.Children {
		child, err := buildNode(&n.Children[i], uid)
		if err != nil {
			return nil, err
		}
		node.Children = append(node.Children, child)
	}
	return node, nil
}

// styleJSON is the on-disk shape of a style record. Dimensions are
// strings or numbers; shorthand edges accept CSS-like 1–4 value forms.
type styleJSON struct {
	Display  string `json:"display,omitempty"`
	Position string `json:"position,omitempty"`

	Width     any `json:"width,omitempty"`
	Height    any `json:"height,omitempty"`
	MinWidth  any `json:"minWidth,omitempty"`
	MinHeight any `json:"minHeight,omitempty"`
	MaxWidth  any `json:"maxWidth,omitempty"`
	MaxHeight any `json:"maxHeight,omitempty"`

	AspectRatio float64 `json:"aspectRatio,omitempty"`
	BoxSizing   string  `json:"boxSizing,omitempty"`

	Margin  any `json:"margin,omitempty"`
	Padding any `json:"padding,omitempty"`
	Border  any `json:"border,omitempty"`
	Inset   any `json:"inset,omitempty"`

	OverflowX string `json:"overflowX,omitempty"`
	OverflowY string `json:"overflowY,omitempty"`
	Overflow  string `json:"overflow,omitempty"`

	FlexDirection  string  `json:"flexDirection,omitempty"`
	FlexWrap       string  `json:"flexWrap,omitempty"`
	JustifyContent string  `json:"justifyContent,omitempty"`
	AlignItems     string  `json:"alignItems,omitempty"`
	AlignContent   string  `json:"alignContent,omitempty"`
	AlignSelf      string  `json:"alignSelf,omitempty"`
	RowGap         any     `json:"rowGap,omitempty"`
	ColumnGap      any     `json:"columnGap,omitempty"`
	Gap            any     `json:"gap,omitempty"`
	FlexGrow       float64 `json:"flexGrow,omitempty"`
	FlexShrink     *float64 `json:"flexShrink,omitempty"`
	FlexBasis      any     `json:"flexBasis,omitempty"`
	Order          int     `json:"order,omitempty"`

	GridTemplateRows    string   `json:"gridTemplateRows,omitempty"`
	GridTemplateColumns string   `json:"gridTemplateColumns,omitempty"`
	GridAutoRows        string   `json:"gridAutoRows,omitempty"`
	GridAutoColumns     string   `json:"gridAutoColumns,omitempty"`
	GridAutoFlow        string   `json:"gridAutoFlow,omitempty"`
	GridTemplateAreas   []string `json:"gridTemplateAreas,omitempty"`
	JustifyItems        string   `json:"justifyItems,omitempty"`
	JustifySelf         string   `json:"justifySelf,omitempty"`
	GridRow             string   `json:"gridRow,omitempty"`
	GridColumn          string   `json:"gridColumn,omitempty"`
	GridArea            string   `json:"gridArea,omitempty"`

	Color      string `json:"color,omitempty"`
	Background string `json:"background,omitempty"`
}

// DecodeStyle parses one style object.
func DecodeStyle(data []byte) (*style.Style, error) {
	var sj styleJSON
	if err := json.Unmarshal(data, &sj); err != nil {
		return nil, fmt.Errorf("decode style: %w", err)
	}
	st := style.New()

	var err error
	set := func(field string, dst *geom.Dimension, v any) {
		if err != nil || v == nil {
			return
		}
		var d geom.Dimension
		if d, err = ParseDimension(v); err != nil {
			err = fmt.Errorf("%s: %w", field, err)
			return
		}
		*dst = d
	}

	if sj.Display != "" {
		if st.Display, err = parseDisplay(sj.Display); err != nil {
			return nil, err
		}
	}
	if sj.Position != "" {
		if st.Position, err = parsePosition(sj.Position); err != nil {
			return nil, err
		}
	}
	set("width", &st.Width, sj.Width)
	set("height", &st.Height, sj.Height)
	set("minWidth", &st.MinWidth, sj.MinWidth)
	set("minHeight", &st.MinHeight, sj.MinHeight)
	set("maxWidth", &st.MaxWidth, sj.MaxWidth)
	set("maxHeight", &st.MaxHeight, sj.MaxHeight)
	set("flexBasis", &st.FlexBasis, sj.FlexBasis)
	if err != nil {
		return nil, err
	}

	st.AspectRatio = sj.AspectRatio
	if sj.BoxSizing == "border-box" {
		st.BoxSizing = style.BoxSizingBorderBox
	}

	for _, e := range []struct {
		name string
		dst  *style.Edges
		src  any
	}{
		{"margin", &st.Margin, sj.Margin},
		{"padding", &st.Padding, sj.Padding},
		{"border", &st.Border, sj.Border},
		{"inset", &st.Inset, sj.Inset},
	} {
		if e.src == nil {
			continue
		}
		edges, perr := ParseEdges(e.src)
		if perr != nil {
			return nil, fmt.Errorf("%s: %w", e.name, perr)
		}
		*e.dst = edges
	}

	if sj.Overflow != "" {
		o, perr := parseOverflow(sj.Overflow)
		if perr != nil {
			return nil, perr
		}
		st.OverflowX, st.OverflowY = o, o
	}
	if sj.OverflowX != "" {
		if st.OverflowX, err = parseOverflow(sj.OverflowX); err != nil {
			return nil, err
		}
	}
	if sj.OverflowY != "" {
		if st.OverflowY, err = parseOverflow(sj.OverflowY); err != nil {
			return nil, err
		}
	}

	if sj.FlexDirection != "" {
		if st.FlexDirection, err = parseFlexDirection(sj.FlexDirection); err != nil {
			return nil, err
		}
	}
	if sj.FlexWrap != "" {
		if st.FlexWrap, err = parseFlexWrap(sj.FlexWrap); err != nil {
			return nil, err
		}
	}
	if sj.JustifyContent != "" {
		if st.JustifyContent, err = parseJustifyContent(sj.JustifyContent); err != nil {
			return nil, err
		}
	}
	if sj.AlignItems != "" {
		if st.AlignItems, err = parseAlignItems(sj.AlignItems); err != nil {
			return nil, err
		}
	}
	if sj.AlignContent != "" {
		if st.AlignContent, err = parseAlignContent(sj.AlignContent); err != nil {
			return nil, err
		}
	}
	if sj.AlignSelf != "" {
		if st.AlignSelf, err = parseAlignSelf(sj.AlignSelf); err != nil {
			return nil, err
		}
	}

	if sj.Gap != nil {
		d, perr := ParseDimension(sj.Gap)
		if perr != nil {
			return nil, fmt.Errorf("gap: %w", perr)
		}
		st.RowGap, st.ColumnGap = d, d
	}
	set("rowGap", &st.RowGap, sj.RowGap)
	set("columnGap", &st.ColumnGap, sj.ColumnGap)
	if err != nil {
		return nil, err
	}

	st.FlexGrow = sj.FlexGrow
	if sj.FlexShrink != nil {
		st.FlexShrink = *sj.FlexShrink
	}
	st.Order = sj.Order

	if sj.GridTemplateRows != "" {
		if st.GridTemplateRows, err = ParseTracks(sj.GridTemplateRows); err != nil {
			return nil, fmt.Errorf("gridTemplateRows: %w", err)
		}
	}
	if sj.GridTemplateColumns != "" {
		if st.GridTemplateColumns, err = ParseTracks(sj.GridTemplateColumns); err != nil {
			return nil, fmt.Errorf("gridTemplateColumns: %w", err)
		}
	}
	if sj.GridAutoRows != "" {
		if st.GridAutoRows, err = ParseTracks(sj.GridAutoRows); err != nil {
			return nil, fmt.Errorf("gridAutoRows: %w", err)
		}
	}
	if sj.GridAutoColumns != "" {
		if st.GridAutoColumns, err = ParseTracks(sj.GridAutoColumns); err != nil {
			return nil, fmt.Errorf("gridAutoColumns: %w", err)
		}
	}
	if sj.GridAutoFlow != "" {
		if st.GridAutoFlow, err = parseGridAutoFlow(sj.GridAutoFlow); err != nil {
			return nil, err
		}
	}
	for _, row := range sj.GridTemplateAreas {
		st.GridTemplateAreas = append(st.GridTemplateAreas, splitFields(row))
	}
	if sj.JustifyItems != "" {
		if st.JustifyItems, err = parseJustifyItems(sj.JustifyItems); err != nil {
			return nil, err
		}
	}
	if sj.JustifySelf != "" {
		if st.JustifySelf, err = parseJustifySelf(sj.JustifySelf); err != nil {
			return nil, err
		}
	}
	if sj.GridRow != "" {
		if st.GridRow, err = ParseGridLine(sj.GridRow); err != nil {
			return nil, fmt.Errorf("gridRow: %w", err)
		}
	}
	if sj.GridColumn != "" {
		if st.GridColumn, err = ParseGridLine(sj.GridColumn); err != nil {
			return nil, fmt.Errorf("gridColumn: %w", err)
		}
	}
	st.GridArea = sj.GridArea
	st.Color = sj.Color
	st.Background = sj.Background
	return st, nil
}
