package canvas

import "github.com/flatland/canvas/geom"

// Gradient is a closed variant: nil (no gradient), LinearGradient, or
// RadialGradient. Grounded on canvas.hpp's Gradient = variant<monostate,
// LinearGradient, RadialGradient>.
type Gradient interface {
	isGradient()
}

// LinearGradient interpolates along the segment from Start to End,
// sampling TextureIndex (a pre-baked gradient ramp texture the backend
// resolves).
type LinearGradient struct {
	Start, End   geom.Point
	TextureIndex uint32
}

func (LinearGradient) isGradient() {}

// RadialGradient interpolates from Center outward to Radius.
type RadialGradient struct {
	Center       geom.Point
	Radius       float32
	TextureIndex uint32
}

func (RadialGradient) isGradient() {}

// ImageFilter is a closed variant: nil (no filter) or GaussianFilter.
type ImageFilter interface {
	isImageFilter()
}

// GaussianFilter blurs a layer with standard deviation Sigma. The zero
// value is not meaningful as a filter; use NewGaussianFilter for the
// source's default sigma of 1.0.
type GaussianFilter struct {
	Sigma float32
}

func (GaussianFilter) isImageFilter() {}

// NewGaussianFilter returns a GaussianFilter with the default sigma.
func NewGaussianFilter() GaussianFilter {
	return GaussianFilter{Sigma: 1.0}
}

// ColorFilter is a closed variant: nil (no filter) or ColorMatrixFilter.
type ColorFilter interface {
	isColorFilter()
}

// ColorMatrixFilter applies a 4x5 color matrix (4 output channels, 5
// input terms: r,g,b,a,1) to every sampled pixel.
type ColorMatrixFilter struct {
	M [20]float32
}

func (ColorMatrixFilter) isColorFilter() {}

// ClipStyle selects how a ClipPath call affects the clip stack.
type ClipStyle int

const (
	// ClipIntersect renders only content inside the clip path.
	ClipIntersect ClipStyle = iota
	// ClipDifference cuts a hole matching the clip path out of the
	// current clip region.
	ClipDifference
)

// Paint describes how a draw command is shaded: a solid color, optionally
// modulated by a gradient, plus stroke parameters for DrawPath.
type Paint struct {
	Color       geom.Color
	Gradient    Gradient
	Stroke      bool
	StrokeWidth float32
}

// HasGradient reports whether this paint samples a gradient rather than
// a flat color.
func (p Paint) HasGradient() bool {
	return p.Gradient != nil
}

// IsOpaque reports whether this paint fully occludes whatever is drawn
// beneath it: no gradient and a fully opaque color.
func (p Paint) IsOpaque() bool {
	return !p.HasGradient() && p.Color.IsOpaque()
}
