package geom

// Color holds RGBA components in nominal sRGB, extended range (components
// may exceed [0,1] to represent HDR intermediates before clamping at the
// backend boundary).
type Color struct {
	R, G, B, A float32
}

// RGBAColor constructs a color from components.
func RGBAColor(r, g, b, a float32) Color {
	return Color{R: r, G: g, B: b, A: a}
}

// RGB constructs an opaque color.
func RGB(r, g, b float32) Color {
	return Color{R: r, G: g, B: b, A: 1}
}

// IsOpaque reports whether the color's alpha is saturated.
func (c Color) IsOpaque() bool {
	return c.A >= 1.0
}

// Premultiply returns the color with RGB scaled by alpha.
func (c Color) Premultiply() Color {
	return Color{R: c.R * c.A, G: c.G * c.A, B: c.B * c.A, A: c.A}
}

// Unpremultiply reverses Premultiply. A color with zero alpha unpremultiplies
// to transparent black, matching the source's degenerate-division guard.
func (c Color) Unpremultiply() Color {
	if c.A == 0 {
		return Color{}
	}
	return Color{R: c.R / c.A, G: c.G / c.A, B: c.B / c.A, A: c.A}
}

// Lerp performs linear interpolation between two colors.
func (c Color) Lerp(o Color, t float32) Color {
	return Color{
		R: c.R + (o.R-c.R)*t,
		G: c.G + (o.G-c.G)*t,
		B: c.B + (o.B-c.B)*t,
		A: c.A + (o.A-c.A)*t,
	}
}

// Common colors, matching the palette the teacher exposes at package scope.
var (
	Black       = RGB(0, 0, 0)
	White       = RGB(1, 1, 1)
	Red         = RGB(1, 0, 0)
	Green       = RGB(0, 1, 0)
	Blue        = RGB(0, 0, 1)
	Transparent = RGBAColor(0, 0, 0, 0)
)
