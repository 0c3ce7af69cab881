// Package export renders the canvas as plain Unicode text or ANSI art.
// Cells are doubled horizontally so the output keeps square pixels.
package export

import (
	"fmt"
	"strings"

	"github.com/dshills/pixelstorm/internal/engine/cell"
	"github.com/dshills/pixelstorm/internal/engine/color"
	"github.com/dshills/pixelstorm/internal/engine/grid"
)

// Level selects the ANSI color depth.
type Level int

const (
	// Truecolor emits 24-bit 38;2;r;g;b sequences.
	Truecolor Level = iota
	// Xterm256 quantizes to the 256-entry palette (38;5;n).
	Xterm256
	// ANSI16 quantizes to the 16 standard colors (SGR 30-37/90-97).
	ANSI16
)

// Label returns the menu text for a level.
func (l Level) Label() string {
	switch l {
	case Xterm256:
		return "256 color"
	case ANSI16:
		return "16 color"
	default:
		return "Truecolor"
	}
}

// PlainText renders glyphs only, no color. Trailing blank rows and trailing
// spaces on each row are trimmed; an empty canvas yields "".
func PlainText(g *grid.Grid) string {
	last := lastContentRow(g)
	if last < 0 {
		return ""
	}
	var b strings.Builder
	for y := 0; y <= last; y++ {
		var row strings.Builder
		for x := 0; x < g.Width(); x++ {
			c := resolved(g, x, y)
			row.WriteRune(c.Ch)
			row.WriteRune(c.Ch)
		}
		b.WriteString(strings.TrimRight(row.String(), " "))
		if y < last {
			b.WriteByte('\n')
		}
	}
	return b.String()
}

// ANSI renders glyphs with color escape sequences at the given depth. Color
// sequences are emitted only when the color pair changes, and every line ends
// with a reset.
func ANSI(g *grid.Grid, level Level) string {
	last := lastContentRow(g)
	if last < 0 {
		return ""
	}
	var b strings.Builder
	for y := 0; y <= last; y++ {
		var prevFg, prevBg cell.Color
		styled := false
		for x := 0; x < g.Width(); x++ {
			c := resolved(g, x, y)
			if !styled || c.Fg != prevFg || c.Bg != prevBg {
				b.WriteString(sequence(c.Fg, c.Bg, level))
				prevFg, prevBg = c.Fg, c.Bg
				styled = true
			}
			b.WriteRune(c.Ch)
			b.WriteRune(c.Ch)
		}
		b.WriteString("\x1b[0m")
		if y < last {
			b.WriteByte('\n')
		}
	}
	return b.String()
}

// resolved returns the display form of a cell, canonicalizing half-blocks.
func resolved(g *grid.Grid, x, y int) cell.Cell {
	c, _ := g.Get(x, y)
	if r, ok := cell.Resolve(c); ok {
		return r
	}
	return c
}

// sequence builds one SGR escape for a fg/bg pair. Transparent channels use
// the terminal defaults (39/49).
func sequence(fg, bg cell.Color, level Level) string {
	return "\x1b[" + colorCode(fg, level, false) + ";" + colorCode(bg, level, true) + "m"
}

func colorCode(c cell.Color, level Level, background bool) string {
	if !c.Valid {
		if background {
			return "49"
		}
		return "39"
	}
	switch level {
	case Xterm256:
		base := "38;5;"
		if background {
			base = "48;5;"
		}
		return fmt.Sprintf("%s%d", base, color.Nearest256(c.Rgb))
	case ANSI16:
		idx := color.Nearest16(c.Rgb)
		code := 30 + int(idx)
		if idx >= 8 {
			code = 90 + int(idx) - 8
		}
		if background {
			code += 10
		}
		return fmt.Sprintf("%d", code)
	default:
		base := "38;2;"
		if background {
			base = "48;2;"
		}
		return fmt.Sprintf("%s%d;%d;%d", base, c.R, c.G, c.B)
	}
}

// lastContentRow returns the highest row index holding a non-empty cell, or
// -1 for a blank canvas.
func lastContentRow(g *grid.Grid) int {
	last := -1
	for y := 0; y < g.Height(); y++ {
		for x := 0; x < g.Width(); x++ {
			c, _ := g.Get(x, y)
			if !c.IsEmpty() {
				last = y
				break
			}
		}
	}
	return last
}
