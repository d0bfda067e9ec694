package style

// Display selects the formatting context a box establishes.
type Display int

const (
	DisplayBlock Display = iota
	DisplayInlineBlock
	DisplayFlex
	DisplayInlineFlex
	DisplayGrid
	DisplayInlineGrid
	DisplayNone
	DisplayContents
)

// Position selects the positioning scheme.
type Position int

const (
	PositionStatic Position = iota
	PositionRelative
	PositionAbsolute
	PositionFixed
)

// IsAbsolutelyPositioned reports whether the position takes the box out
// of normal flow.
func (p Position) IsAbsolutelyPositioned() bool {
	return p == PositionAbsolute || p == PositionFixed
}

// Overflow controls clipping behavior; only the visible/non-visible
// distinction affects layout (automatic minimum sizes).
type Overflow int

const (
	OverflowVisible Overflow = iota
	OverflowHidden
	OverflowScroll
	OverflowAuto
	OverflowClip
)

// BoxSizing selects whether declared sizes include padding and border.
type BoxSizing int

const (
	BoxSizingContentBox BoxSizing = iota
	BoxSizingBorderBox
)

// FlexDirection sets the flex main axis.
type FlexDirection int

const (
	FlexDirectionRow FlexDirection = iota
	FlexDirectionRowReverse
	FlexDirectionColumn
	FlexDirectionColumnReverse
)

// IsRow reports a horizontal main axis.
func (d FlexDirection) IsRow() bool {
	return d == FlexDirectionRow || d == FlexDirectionRowReverse
}

// IsReverse reports a reversed main axis.
func (d FlexDirection) IsReverse() bool {
	return d == FlexDirectionRowReverse || d == FlexDirectionColumnReverse
}

// FlexWrap controls flex line breaking.
type FlexWrap int

const (
	FlexWrapNoWrap FlexWrap = iota
	FlexWrapWrap
	FlexWrapWrapReverse
)

// JustifyContent distributes free space on the main axis.
type JustifyContent int

const (
	JustifyStart JustifyContent = iota
	JustifyEnd
	JustifyCenter
	JustifySpaceBetween
	JustifySpaceAround
	JustifySpaceEvenly
)

// AlignItems aligns items on the cross axis (flex) or block axis (grid).
// The zero value is Stretch, the CSS initial value for align-items.
type AlignItems int

const (
	AlignStretch AlignItems = iota
	AlignStart
	AlignEnd
	AlignCenter
	AlignBaseline
)

// AlignSelf is the per-item override of the container's AlignItems.
// The zero value Auto inherits from the container.
type AlignSelf int

const (
	AlignSelfAuto AlignSelf = iota
	AlignSelfStretch
	AlignSelfStart
	AlignSelfEnd
	AlignSelfCenter
	AlignSelfBaseline
)

// Resolve maps the item value onto the container's AlignItems.
func (a AlignSelf) Resolve(containerDefault AlignItems) AlignItems {
	switch a {
	case AlignSelfStretch:
		return AlignStretch
	case AlignSelfStart:
		return AlignStart
	case AlignSelfEnd:
		return AlignEnd
	case AlignSelfCenter:
		return AlignCenter
	case AlignSelfBaseline:
		return AlignBaseline
	default:
		return containerDefault
	}
}

// AlignContent distributes flex lines or grid tracks within the container.
type AlignContent int

const (
	AlignContentStretch AlignContent = iota
	AlignContentStart
	AlignContentEnd
	AlignContentCenter
	AlignContentSpaceBetween
	AlignContentSpaceAround
	AlignContentSpaceEvenly
)

// JustifyItems aligns grid items on the inline axis. Zero value is
// Stretch, the CSS Grid initial value.
type JustifyItems int

const (
	JustifyItemsStretch JustifyItems = iota
	JustifyItemsStart
	JustifyItemsEnd
	JustifyItemsCenter
)

// JustifySelf is the per-item override of the container's JustifyItems.
type JustifySelf int

const (
	JustifySelfAuto JustifySelf = iota
	JustifySelfStretch
	JustifySelfStart
	JustifySelfEnd
	JustifySelfCenter
)

// Resolve maps the item value onto the container's JustifyItems.
func (j JustifySelf) Resolve(containerDefault JustifyItems) JustifyItems {
	switch j {
	case JustifySelfStretch:
		return JustifyItemsStretch
	case JustifySelfStart:
		return JustifyItemsStart
	case JustifySelfEnd:
		return JustifyItemsEnd
	case JustifySelfCenter:
		return JustifyItemsCenter
	default:
		return containerDefault
	}
}

// GridAutoFlow controls the grid auto-placement cursor.
type GridAutoFlow int

const (
	GridAutoFlowRow GridAutoFlow = iota
	GridAutoFlowColumn
	GridAutoFlowRowDense
	GridAutoFlowColumnDense
)

// IsDense reports dense packing.
func (f GridAutoFlow) IsDense() bool {
	return f == GridAutoFlowRowDense || f == GridAutoFlowColumnDense
}

// IsColumn reports a column-major cursor.
func (f GridAutoFlow) IsColumn() bool {
	return f == GridAutoFlowColumn || f == GridAutoFlowColumnDense
}
