package vmath

import colorful "github.com/lucasb-eyer/go-colorful"

// Color is an RGB triple with channels in [0, 1]. Conversions to and from the
// cylindrical spaces use hue in degrees [0, 360) and saturation/lightness/
// value in [0, 1].
type Color struct {
	R, G, B float64
}

// RGBToHSL converts a color to hue, saturation and lightness.
func RGBToHSL(c Color) (h, s, l float64) {
	return colorful.Color{R: c.R, G: c.G, B: c.B}.Hsl()
}

// HSLToRGB converts hue, saturation and lightness to a color.
func HSLToRGB(h, s, l float64) Color {
	c := colorful.Hsl(h, s, l)
	return Color{R: c.R, G: c.G, B: c.B}
}

// RGBToHSV converts a color to hue, saturation and value.
func RGBToHSV(c Color) (h, s, v float64) {
	return colorful.Color{R: c.R, G: c.G, B: c.B}.Hsv()
}

// HSVToRGB converts hue, saturation and value to a color.
func HSVToRGB(h, s, v float64) Color {
	c := colorful.Hsv(h, s, v)
	return Color{R: c.R, G: c.G, B: c.B}
}

// LerpColor blends two colors channel-wise in RGB space. t is clamped.
func LerpColor(a, b Color, t float64) Color {
	blended := colorful.Color{R: a.R, G: a.G, B: a.B}.
		BlendRgb(colorful.Color{R: b.R, G: b.G, B: b.B}, Clamp01(t))
	return Color{R: blended.R, G: blended.G, B: blended.B}
}
