package palette

import (
	"github.com/dshills/pixelstorm/internal/engine/cell"
	"github.com/dshills/pixelstorm/internal/engine/color"
)

// defaultIndices is the curated 24-color palette: neutrals, warm, cool, and
// accent hues, expressed as xterm-256 indices and converted to RGB at init.
var defaultIndices = [24]uint8{
	// Neutrals
	0, 236, 244, 250, 255, 15,
	// Warm
	1, 196, 208, 214, 226, 229,
	// Cool
	22, 46, 30, 39, 21, 54,
	// Accent
	200, 213, 93, 180, 137, 94,
}

// Default is the curated startup palette.
var Default = buildDefault()

func buildDefault() []cell.Rgb {
	out := make([]cell.Rgb, len(defaultIndices))
	for i, idx := range defaultIndices {
		out[i] = color.IndexRGB(idx)
	}
	return out
}

// HueGroup is one named slice of the 216-entry color cube.
type HueGroup struct {
	Name   string
	Colors []cell.Rgb
}

// HueGroups organizes cube indices 16-231 into 8 named groups by hue angle.
// Every index lands in exactly one group; the cube's grays join Reds.
func HueGroups() []HueGroup {
	groups := []HueGroup{
		{Name: "Reds"}, {Name: "Oranges"}, {Name: "Yellows"}, {Name: "Greens"},
		{Name: "Cyans"}, {Name: "Blues"}, {Name: "Purples"}, {Name: "Pinks"},
	}
	for idx := 16; idx <= 231; idx++ {
		rgb := color.IndexRGB(uint8(idx))
		groups[hueGroupFor(rgb)].Colors = append(groups[hueGroupFor(rgb)].Colors, rgb)
	}
	return groups
}

func hueGroupFor(rgb cell.Rgb) int {
	h, s, _ := color.RGBToHSL(rgb.R, rgb.G, rgb.B)
	if s == 0 {
		return 0 // grays join Reds
	}
	switch {
	case h <= 14 || h >= 346:
		return 0
	case h <= 39:
		return 1
	case h <= 69:
		return 2
	case h <= 159:
		return 3
	case h <= 199:
		return 4
	case h <= 259:
		return 5
	case h <= 299:
		return 6
	default:
		return 7
	}
}

// Grayscale returns the 24-step grayscale ramp (indices 232-255).
func Grayscale() []cell.Rgb {
	out := make([]cell.Rgb, 24)
	for i := range out {
		out[i] = color.IndexRGB(uint8(232 + i))
	}
	return out
}

// Standard returns the 16 ANSI colors.
func Standard() []cell.Rgb {
	out := make([]cell.Rgb, 16)
	for i := range out {
		out[i] = color.IndexRGB(uint8(i))
	}
	return out
}
