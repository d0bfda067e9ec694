package geom

// DimensionKind discriminates the Dimension tagged value.
type DimensionKind int

const (
	// DimAuto is the zero value so that a zero Dimension means "auto",
	// matching the CSS initial value for width/height/inset/flex-basis.
	DimAuto DimensionKind = iota
	DimLength
	DimPercent
	DimMinContent
	DimMaxContent
	DimFitContent
)

// Dimension is a CSS sizing value: a pixel length, a percentage of the
// containing block, auto, or an intrinsic-size keyword.
type Dimension struct {
	Kind DimensionKind
	// Value is the pixel count for DimLength, the fraction in [0,1] for
	// DimPercent, and the pixel limit for DimFitContent.
	Value float64
}

// Length returns a pixel-length dimension.
func Length(v float64) Dimension { return Dimension{Kind: DimLength, Value: Sanitize(v)} }

// Percent returns a percentage dimension. f is a fraction: 0.5 means 50%.
func Percent(f float64) Dimension { return Dimension{Kind: DimPercent, Value: Sanitize(f)} }

// Auto returns the auto dimension.
func Auto() Dimension { return Dimension{} }

// MinContent returns the min-content keyword.
func MinContent() Dimension { return Dimension{Kind: DimMinContent} }

// MaxContent returns the max-content keyword.
func MaxContent() Dimension { return Dimension{Kind: DimMaxContent} }

// FitContent returns fit-content(limit).
func FitContent(limit float64) Dimension {
	return Dimension{Kind: DimFitContent, Value: Sanitize(limit)}
}

// IsAuto reports whether the dimension is auto.
func (d Dimension) IsAuto() bool { return d.Kind == DimAuto }

// IsIntrinsic reports whether the dimension is one of the content-derived
// keywords (min-content, max-content, fit-content).
func (d Dimension) IsIntrinsic() bool {
	return d.Kind == DimMinContent || d.Kind == DimMaxContent || d.Kind == DimFitContent
}

// Resolve turns the dimension into a definite pixel value when possible.
// Lengths always resolve; percentages resolve only against a definite
// context; auto and the intrinsic keywords never resolve here (the
// formatting algorithms handle them with content knowledge).
func (d Dimension) Resolve(context OptFloat) OptFloat {
	switch d.Kind {
	case DimLength:
		return Some(d.Value)
	case DimPercent:
		if context.Valid {
			return Some(d.Value * context.Value)
		}
		return None()
	default:
		return None()
	}
}

// ResolveOr resolves against context, substituting def when indefinite.
func (d Dimension) ResolveOr(context OptFloat, def float64) float64 {
	return d.Resolve(context).Or(def)
}
