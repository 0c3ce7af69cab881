package color

import (
	"strconv"
	"strings"

	"github.com/dshills/pixelstorm/internal/engine/cell"
)

// Conventional RGB values for the 16 standard ANSI colors (indices 0-15).
var ansi16 = [16]cell.Rgb{
	{R: 0, G: 0, B: 0},       // 0  Black
	{R: 205, G: 0, B: 0},     // 1  Red
	{R: 0, G: 205, B: 0},     // 2  Green
	{R: 205, G: 205, B: 0},   // 3  Yellow
	{R: 0, G: 0, B: 238},     // 4  Blue
	{R: 205, G: 0, B: 205},   // 5  Magenta
	{R: 0, G: 205, B: 205},   // 6  Cyan
	{R: 229, G: 229, B: 229}, // 7  White
	{R: 127, G: 127, B: 127}, // 8  BrightBlack
	{R: 255, G: 0, B: 0},     // 9  BrightRed
	{R: 0, G: 255, B: 0},     // 10 BrightGreen
	{R: 255, G: 255, B: 0},   // 11 BrightYellow
	{R: 92, G: 92, B: 255},   // 12 BrightBlue
	{R: 255, G: 0, B: 255},   // 13 BrightMagenta
	{R: 0, G: 255, B: 255},   // 14 BrightCyan
	{R: 255, G: 255, B: 255}, // 15 BrightWhite
}

var ansi16Names = [16]string{
	"Black", "Red", "Green", "Yellow", "Blue", "Magenta", "Cyan", "White",
	"BrightBlack", "BrightRed", "BrightGreen", "BrightYellow",
	"BrightBlue", "BrightMagenta", "BrightCyan", "BrightWhite",
}

// IndexRGB converts an xterm-256 palette index to its RGB value: 16 standard
// entries, the 6x6x6 color cube, and the 24-step grayscale ramp. This is the
// input-conversion path for legacy palette-indexed files; indices are never
// the canonical in-memory representation.
func IndexRGB(idx uint8) cell.Rgb {
	switch {
	case idx < 16:
		return ansi16[idx]
	case idx < 232:
		n := idx - 16
		r := n / 36
		g := (n % 36) / 6
		b := n % 6
		return cell.Rgb{R: cubeChannel(r), G: cubeChannel(g), B: cubeChannel(b)}
	default:
		gray := 8 + 10*(idx-232)
		return cell.Rgb{R: gray, G: gray, B: gray}
	}
}

func cubeChannel(v uint8) uint8 {
	if v == 0 {
		return 0
	}
	return 55 + 40*v
}

// IndexName returns the conventional name for the 16 standard indices and
// a "#n" form for the rest.
func IndexName(idx uint8) string {
	if idx < 16 {
		return ansi16Names[idx]
	}
	return "#" + strconv.Itoa(int(idx))
}

// NameIndex resolves a legacy ANSI color name to its standard index. Names
// match case-insensitively.
func NameIndex(name string) (uint8, bool) {
	for i, n := range ansi16Names {
		if strings.EqualFold(n, name) {
			return uint8(i), true
		}
	}
	return 0, false
}
