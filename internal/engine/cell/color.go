package cell

import "fmt"

// Rgb is a true-color 24-bit RGB triple.
type Rgb struct {
	R, G, B uint8
}

// String returns the #RRGGBB form.
func (c Rgb) String() string {
	return fmt.Sprintf("#%02X%02X%02X", c.R, c.G, c.B)
}

// Color is an optional Rgb. The zero value is transparent (no color).
type Color struct {
	Rgb
	Valid bool
}

// RGB returns an opaque color from channel values.
func RGB(r, g, b uint8) Color {
	return Color{Rgb: Rgb{R: r, G: g, B: b}, Valid: true}
}

// None is the transparent color.
func None() Color {
	return Color{}
}

// DefaultFg is the conventional terminal white used for new cells.
var DefaultFg = RGB(229, 229, 229)
