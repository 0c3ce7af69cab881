// Package color provides the color math for the drawing engine: RGB/HSL
// conversion, hex parsing, and quantization onto the xterm-style palettes.
package color

import (
	"errors"
	"fmt"
	"math"

	colorful "github.com/lucasb-eyer/go-colorful"

	"github.com/dshills/pixelstorm/internal/engine/cell"
)

// ErrInvalidFormat is returned for malformed hex color input.
var ErrInvalidFormat = errors.New("invalid hex color format")

// RGBToHSL converts 8-bit RGB channels to HSL with h in [0,360) degrees and
// s, l in [0,100]. Achromatic inputs yield h=0, s=0.
func RGBToHSL(r, g, b uint8) (h, s, l int) {
	c := colorful.Color{R: float64(r) / 255.0, G: float64(g) / 255.0, B: float64(b) / 255.0}
	hf, sf, lf := c.Hsl()
	h = int(math.Round(hf)) % 360
	s = int(math.Round(sf * 100))
	l = int(math.Round(lf * 100))
	return h, s, l
}

// HSLToRGB converts HSL (h in degrees, s and l in [0,100]) back to 8-bit RGB.
// Out-of-range saturation and lightness are clamped; hue wraps.
func HSLToRGB(h, s, l int) (r, g, b uint8) {
	hf := float64(((h % 360) + 360) % 360)
	sf := clamp01(float64(s) / 100)
	lf := clamp01(float64(l) / 100)
	return colorful.Hsl(hf, sf, lf).RGB255()
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

// ParseHex parses "#RRGGBB" or "RRGGBB" (case insensitive) into an RGB
// triple. Any other length or a non-hex digit is ErrInvalidFormat.
func ParseHex(s string) (cell.Rgb, error) {
	orig := s
	if len(s) > 0 && s[0] == '#' {
		s = s[1:]
	}
	if len(s) != 6 {
		return cell.Rgb{}, fmt.Errorf("%q: %w", orig, ErrInvalidFormat)
	}
	var channels [3]uint8
	for i := 0; i < 3; i++ {
		hi, ok1 := hexDigit(s[i*2])
		lo, ok2 := hexDigit(s[i*2+1])
		if !ok1 || !ok2 {
			return cell.Rgb{}, fmt.Errorf("%q: %w", orig, ErrInvalidFormat)
		}
		channels[i] = hi<<4 | lo
	}
	return cell.Rgb{R: channels[0], G: channels[1], B: channels[2]}, nil
}

func hexDigit(c byte) (uint8, bool) {
	switch {
	case c >= '0' && c <= '9':
		return c - '0', true
	case c >= 'a' && c <= 'f':
		return c - 'a' + 10, true
	case c >= 'A' && c <= 'F':
		return c - 'A' + 10, true
	}
	return 0, false
}

// Nearest256 returns the xterm-256 palette index closest to rgb by squared
// Euclidean distance. Ties go to the lowest index.
func Nearest256(rgb cell.Rgb) uint8 {
	return nearest(rgb, 256)
}

// Nearest16 is Nearest256 restricted to the 16 standard ANSI entries.
func Nearest16(rgb cell.Rgb) uint8 {
	return nearest(rgb, 16)
}

func nearest(rgb cell.Rgb, n int) uint8 {
	best := 0
	bestDist := math.MaxInt
	for i := 0; i < n; i++ {
		p := IndexRGB(uint8(i))
		dr := int(rgb.R) - int(p.R)
		dg := int(rgb.G) - int(p.G)
		db := int(rgb.B) - int(p.B)
		dist := dr*dr + dg*dg + db*db
		if dist < bestDist {
			bestDist = dist
			best = i
		}
	}
	return uint8(best)
}
