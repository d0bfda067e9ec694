package treejson

import (
	"fmt"
	"strconv"
	"strings"

	"boxflow/pkg/geom"
	"boxflow/pkg/style"
)

// ParseDimension accepts a JSON number (pixels) or a string: "auto",
// "120", "120px", "50%", "min-content", "max-content",
// "fit-content(200)".
func ParseDimension(v any) (geom.Dimension, error) {
	switch t := v.(type) {
	case float64:
		return geom.Length(t), nil
	case int:
		return geom.Length(float64(t)), nil
	case string:
		return parseDimensionString(t)
	default:
		return geom.Dimension{}, fmt.Errorf("unsupported dimension value %v", v)
	}
}

func parseDimensionString(s string) (geom.Dimension, error) {
	s = strings.TrimSpace(strings.ToLower(s))
	switch s {
	case "", "auto":
		return geom.Auto(), nil
	case "min-content":
		return geom.MinContent(), nil
	case "max-content":
		return geom.MaxContent(), nil
	}
	if inner, ok := callArg(s, "fit-content"); ok {
		v, err := parsePixels(inner)
		if err != nil {
			return geom.Dimension{}, fmt.Errorf("fit-content: %w", err)
		}
		return geom.FitContent(v), nil
	}
	if strings.HasSuffix(s, "%") {
		v, err := strconv.ParseFloat(strings.TrimSuffix(s, "%"), 64)
		if err != nil {
			return geom.Dimension{}, fmt.Errorf("percentage %q: %w", s, err)
		}
		return geom.Percent(v / 100), nil
	}
	v, err := parsePixels(s)
	if err != nil {
		return geom.Dimension{}, err
	}
	return geom.Length(v), nil
}

func parsePixels(s string) (float64, error) {
	s = strings.TrimSuffix(strings.TrimSpace(s), "px")
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, fmt.Errorf("length %q: %w", s, err)
	}
	return v, nil
}

// callArg extracts the argument of name(arg), if s has that form.
func callArg(s, name string) (string, bool) {
	if strings.HasPrefix(s, name+"(") && strings.HasSuffix(s, ")") {
		return strings.TrimSpace(s[len(name)+1 : len(s)-1]), true
	}
	return "", false
}

// ParseEdges accepts a number, a CSS-like shorthand string of 1–4
// dimensions, or an object {left, right, top, bottom}.
func ParseEdges(v any) (style.Edges, error) {
	switch t := v.(type) {
	case float64:
		return style.UniformEdges(t), nil
	case string:
		return parseEdgesShorthand(t)
	case map[string]any:
		var e style.Edges
		for key, dst := range map[string]*geom.Dimension{
			"left": &e.Left, "right": &e.Right, "top": &e.Top, "bottom": &e.Bottom,
		} {
			raw, ok := t[key]
			if !ok {
				continue
			}
			d, err := ParseDimension(raw)
			if err != nil {
				return style.Edges{}, fmt.Errorf("%s: %w", key, err)
			}
			*dst = d
		}
		return e, nil
	default:
		return style.Edges{}, fmt.Errorf("unsupported edges value %v", v)
	}
}

func parseEdgesShorthand(s string) (style.Edges, error) {
	fields := splitFields(s)
	dims := make([]geom.Dimension, 0, 4)
	for _, f := range fields {
		d, err := parseDimensionString(f)
		if err != nil {
			return style.Edges{}, err
		}
		dims = append(dims, d)
	}
	var e style.Edges
	switch len(dims) {
	case 1:
		e.Top, e.Right, e.Bottom, e.Left = dims[0], dims[0], dims[0], dims[0]
	case 2:
		e.Top, e.Bottom = dims[0], dims[0]
		e.Right, e.Left = dims[1], dims[1]
	case 3:
		e.Top, e.Right, e.Left, e.Bottom = dims[0], dims[1], dims[1], dims[2]
	case 4:
		e.Top, e.Right, e.Bottom, e.Left = dims[0], dims[1], dims[2], dims[3]
	default:
		return style.Edges{}, fmt.Errorf("edges shorthand %q needs 1-4 values", s)
	}
	return e, nil
}

// ParseTracks parses a track list: "100 1fr auto", "repeat(3, 1fr 100)",
// "minmax(100, 1fr)", "repeat(auto-fill, 120)", "fit-content(200)".
func ParseTracks(s string) ([]style.TrackSizingFunction, error) {
	tokens, err := splitTopLevel(s)
	if err != nil {
		return nil, err
	}
	var out []style.TrackSizingFunction
	for _, tok := range tokens {
		t, err := parseTrack(tok)
		if err != nil {
			return nil, err
		}
		out = append(out, t)
	}
	return out, nil
}

func parseTrack(tok string) (style.TrackSizingFunction, error) {
	tok = strings.TrimSpace(strings.ToLower(tok))
	switch tok {
	case "auto":
		return style.AutoTrack(), nil
	case "min-content":
		return style.MinContentTrack(), nil
	case "max-content":
		return style.MaxContentTrack(), nil
	}
	if inner, ok := callArg(tok, "fit-content"); ok {
		v, err := parsePixels(inner)
		if err != nil {
			return style.TrackSizingFunction{}, err
		}
		return style.FitContentTrack(v), nil
	}
	if inner, ok := callArg(tok, "minmax"); ok {
		parts, err := splitTopLevelComma(inner)
		if err != nil {
			return style.TrackSizingFunction{}, err
		}
		if len(parts) != 2 {
			return style.TrackSizingFunction{}, fmt.Errorf("minmax needs 2 arguments: %q", tok)
		}
		mn, err := parseTrack(parts[0])
		if err != nil {
			return style.TrackSizingFunction{}, err
		}
		mx, err := parseTrack(parts[1])
		if err != nil {
			return style.TrackSizingFunction{}, err
		}
		return style.MinMaxTrack(mn, mx), nil
	}
	if inner, ok := callArg(tok, "repeat"); ok {
		parts, err := splitTopLevelComma(inner)
		if err != nil {
			return style.TrackSizingFunction{}, err
		}
		if len(parts) != 2 {
			return style.TrackSizingFunction{}, fmt.Errorf("repeat needs 2 arguments: %q", tok)
		}
		tracks, err := ParseTracks(parts[1])
		if err != nil {
			return style.TrackSizingFunction{}, err
		}
		switch strings.TrimSpace(parts[0]) {
		case "auto-fill":
			return style.RepeatAuto(style.RepeatAutoFill, tracks...), nil
		case "auto-fit":
			return style.RepeatAuto(style.RepeatAutoFit, tracks...), nil
		default:
			n, err := strconv.Atoi(strings.TrimSpace(parts[0]))
			if err != nil {
				return style.TrackSizingFunction{}, fmt.Errorf("repeat count %q: %w", parts[0], err)
			}
			return style.RepeatTracks(n, tracks...), nil
		}
	}
	if strings.HasSuffix(tok, "fr") {
		v, err := strconv.ParseFloat(strings.TrimSuffix(tok, "fr"), 64)
		if err != nil {
			return style.TrackSizingFunction{}, fmt.Errorf("fr value %q: %w", tok, err)
		}
		return style.FrTrack(v), nil
	}
	if strings.HasSuffix(tok, "%") {
		v, err := strconv.ParseFloat(strings.TrimSuffix(tok, "%"), 64)
		if err != nil {
			return style.TrackSizingFunction{}, fmt.Errorf("percent track %q: %w", tok, err)
		}
		return style.PercentTrack(v / 100), nil
	}
	v, err := parsePixels(tok)
	if err != nil {
		return style.TrackSizingFunction{}, fmt.Errorf("track %q: %w", tok, err)
	}
	return style.FixedTrack(v), nil
}

// ParseGridLine parses "auto", "2", "-1", "span 3", "1 / 3",
// "2 / span 2".
func ParseGridLine(s string) (style.GridLine, error) {
	parts := strings.SplitN(s, "/", 2)
	start, err := parsePlacement(parts[0])
	if err != nil {
		return style.GridLine{}, err
	}
	line := style.GridLine{Start: start}
	if len(parts) == 2 {
		end, err := parsePlacement(parts[1])
		if err != nil {
			return style.GridLine{}, err
		}
		line.End = end
	}
	return line, nil
}

func parsePlacement(s string) (style.Placement, error) {
	s = strings.TrimSpace(strings.ToLower(s))
	if s == "" || s == "auto" {
		return style.AutoPlacement(), nil
	}
	if rest, ok := strings.CutPrefix(s, "span"); ok {
		n, err := strconv.Atoi(strings.TrimSpace(rest))
		if err != nil {
			return style.Placement{}, fmt.Errorf("span %q: %w", s, err)
		}
		return style.Span(n), nil
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return style.Placement{}, fmt.Errorf("grid line %q: %w", s, err)
	}
	return style.Line(n), nil
}

// splitFields splits on whitespace.
func splitFields(s string) []string { return strings.Fields(s) }

// splitTopLevel splits a track list on spaces outside parentheses.
func splitTopLevel(s string) ([]string, error) {
	var out []string
	depth := 0
	var cur strings.Builder
	for _, r := range s {
		switch r {
		case '(':
			depth++
			cur.WriteRune(r)
		case ')':
			depth--
			if depth < 0 {
				return nil, fmt.Errorf("unbalanced parens in %q", s)
			}
			cur.WriteRune(r)
		case ' ', '\t':
			if depth == 0 {
				if cur.Len() > 0 {
					out = append(out, cur.String())
					cur.Reset()
				}
			} else {
				cur.WriteRune(r)
			}
		default:
			cur.WriteRune(r)
		}
	}
	if depth != 0 {
		return nil, fmt.Errorf("unbalanced parens in %q", s)
	}
	if cur.Len() > 0 {
		out = append(out, cur.String())
	}
	return out, nil
}

// splitTopLevelComma splits on commas outside parentheses.
func splitTopLevelComma(s string) ([]string, error) {
	var out []string
	depth := 0
	var cur strings.Builder
	for _, r := range s {
		switch r {
		case '(':
			depth++
			cur.WriteRune(r)
		case ')':
			depth--
			cur.WriteRune(r)
		case ',':
			if depth == 0 {
				out = append(out, cur.String())
				cur.Reset()
			} else {
				cur.WriteRune(r)
			}
		default:
			cur.WriteRune(r)
		}
	}
	out = append(out, cur.String())
	return out, nil
}

func parseDisplay(s string) (style.Display, error) {
	switch strings.ToLower(s) {
	case "block":
		return style.DisplayBlock, nil
	case "inline-block":
		return style.DisplayInlineBlock, nil
	case "flex":
		return style.DisplayFlex, nil
	case "inline-flex":
		return style.DisplayInlineFlex, nil
	case "grid":
		return style.DisplayGrid, nil
	case "inline-grid":
		return style.DisplayInlineGrid, nil
	case "none":
		return style.DisplayNone, nil
	case "contents":
		return style.DisplayContents, nil
	default:
		return 0, fmt.Errorf("unknown display %q", s)
	}
}

func parsePosition(s string) (style.Position, error) {
	switch strings.ToLower(s) {
	case "static":
		return style.PositionStatic, nil
	case "relative":
		return style.PositionRelative, nil
	case "absolute":
		return style.PositionAbsolute, nil
	case "fixed":
		return style.PositionFixed, nil
	default:
		return 0, fmt.Errorf("unknown position %q", s)
	}
}

func parseOverflow(s string) (style.Overflow, error) {
	switch strings.ToLower(s) {
	case "visible":
		return style.OverflowVisible, nil
	case "hidden":
		return style.OverflowHidden, nil
	case "scroll":
		return style.OverflowScroll, nil
	case "auto":
		return style.OverflowAuto, nil
	case "clip":
		return style.OverflowClip, nil
	default:
		return 0, fmt.Errorf("unknown overflow %q", s)
	}
}

func parseFlexDirection(s string) (style.FlexDirection, error) {
	switch strings.ToLower(s) {
	case "row":
		return style.FlexDirectionRow, nil
	case "row-reverse":
		return style.FlexDirectionRowReverse, nil
	case "column":
		return style.FlexDirectionColumn, nil
	case "column-reverse":
		return style.FlexDirectionColumnReverse, nil
	default:
		return 0, fmt.Errorf("unknown flex-direction %q", s)
	}
}

func parseFlexWrap(s string) (style.FlexWrap, error) {
	switch strings.ToLower(s) {
	case "nowrap":
		return style.FlexWrapNoWrap, nil
	case "wrap":
		return style.FlexWrapWrap, nil
	case "wrap-reverse":
		return style.FlexWrapWrapReverse, nil
	default:
		return 0, fmt.Errorf("unknown flex-wrap %q", s)
	}
}

func parseJustifyContent(s string) (style.JustifyContent, error) {
	switch strings.ToLower(s) {
	case "flex-start", "start":
		return style.JustifyStart, nil
	case "flex-end", "end":
		return style.JustifyEnd, nil
	case "center":
		return style.JustifyCenter, nil
	case "space-between":
		return style.JustifySpaceBetween, nil
	case "space-around":
		return style.JustifySpaceAround, nil
	case "space-evenly":
		return style.JustifySpaceEvenly, nil
	default:
		return 0, fmt.Errorf("unknown justify-content %q", s)
	}
}

func parseAlignItems(s string) (style.AlignItems, error) {
	switch strings.ToLower(s) {
	case "stretch":
		return style.AlignStretch, nil
	case "flex-start", "start":
		return style.AlignStart, nil
	case "flex-end", "end":
		return style.AlignEnd, nil
	case "center":
		return style.AlignCenter, nil
	case "baseline":
		return style.AlignBaseline, nil
	default:
		return 0, fmt.Errorf("unknown align-items %q", s)
	}
}

func parseAlignSelf(s string) (style.AlignSelf, error) {
	switch strings.ToLower(s) {
	case "auto":
		return style.AlignSelfAuto, nil
	case "stretch":
		return style.AlignSelfStretch, nil
	case "flex-start", "start":
		return style.AlignSelfStart, nil
	case "flex-end", "end":
		return style.AlignSelfEnd, nil
	case "center":
		return style.AlignSelfCenter, nil
	case "baseline":
		return style.AlignSelfBaseline, nil
	default:
		return 0, fmt.Errorf("unknown align-self %q", s)
	}
}

func parseAlignContent(s string) (style.AlignContent, error) {
	switch strings.ToLower(s) {
	case "stretch":
		return style.AlignContentStretch, nil
	case "flex-start", "start":
		return style.AlignContentStart, nil
	case "flex-end", "end":
		return style.AlignContentEnd, nil
	case "center":
		return style.AlignContentCenter, nil
	case "space-between":
		return style.AlignContentSpaceBetween, nil
	case "space-around":
		return style.AlignContentSpaceAround, nil
	case "space-evenly":
		return style.AlignContentSpaceEvenly, nil
	default:
		return 0, fmt.Errorf("unknown align-content %q", s)
	}
}

func parseJustifyItems(s string) (style.JustifyItems, error) {
	switch strings.ToLower(s) {
	case "stretch":
		return style.JustifyItemsStretch, nil
	case "start":
		return style.JustifyItemsStart, nil
	case "end":
		return style.JustifyItemsEnd, nil
	case "center":
		return style.JustifyItemsCenter, nil
	default:
		return 0, fmt.Errorf("unknown justify-items %q", s)
	}
}

func parseJustifySelf(s string) (style.JustifySelf, error) {
	switch strings.ToLower(s) {
	case "auto":
		return style.JustifySelfAuto, nil
	case "stretch":
		return style.JustifySelfStretch, nil
	case "start":
		return style.JustifySelfStart, nil
	case "end":
		return style.JustifySelfEnd, nil
	case "center":
		return style.JustifySelfCenter, nil
	default:
		return 0, fmt.Errorf("unknown justify-self %q", s)
	}
}

func parseGridAutoFlow(s string) (style.GridAutoFlow, error) {
	switch strings.ToLower(s) {
	case "row":
		return style.GridAutoFlowRow, nil
	case "column":
		return style.GridAutoFlowColumn, nil
	case "row-dense", "row dense":
		return style.GridAutoFlowRowDense, nil
	case "column-dense", "column dense":
		return style.GridAutoFlowColumnDense, nil
	default:
		return 0, fmt.Errorf("unknown grid-auto-flow %q", s)
	}
}
