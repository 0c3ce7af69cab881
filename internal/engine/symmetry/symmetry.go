// Package symmetry expands drawing mutations into mirrored copies across the
// canvas axes.
package symmetry

import (
	"strings"

	"github.com/dshills/pixelstorm/internal/engine/history"
)

// Mode selects which axes mirror edits.
type Mode int

const (
	Off Mode = iota
	Horizontal
	Vertical
	Quad
)

// ToggleHorizontal flips the horizontal mirror bit.
func (m Mode) ToggleHorizontal() Mode {
	switch m {
	case Off:
		return Horizontal
	case Horizontal:
		return Off
	case Vertical:
		return Quad
	default:
		return Vertical
	}
}

// ToggleVertical flips the vertical mirror bit.
func (m Mode) ToggleVertical() Mode {
	switch m {
	case Off:
		return Vertical
	case Vertical:
		return Off
	case Horizontal:
		return Quad
	default:
		return Horizontal
	}
}

// HasHorizontal reports whether edits mirror across the vertical center line.
func (m Mode) HasHorizontal() bool {
	return m == Horizontal || m == Quad
}

// HasVertical reports whether edits mirror across the horizontal center line.
func (m Mode) HasVertical() bool {
	return m == Vertical || m == Quad
}

// Label returns the status bar text.
func (m Mode) Label() string {
	switch m {
	case Horizontal:
		return "Horiz"
	case Vertical:
		return "Vert"
	case Quad:
		return "Quad"
	default:
		return "Off"
	}
}

// String returns the serialized mode name.
func (m Mode) String() string {
	switch m {
	case Horizontal:
		return "horizontal"
	case Vertical:
		return "vertical"
	case Quad:
		return "quad"
	default:
		return "off"
	}
}

// ParseMode parses a serialized mode name, ignoring case.
func ParseMode(s string) (Mode, bool) {
	switch strings.ToLower(s) {
	case "off":
		return Off, true
	case "horizontal":
		return Horizontal, true
	case "vertical":
		return Vertical, true
	case "quad":
		return Quad, true
	default:
		return Off, false
	}
}

// Apply expands mutations with mirrored copies for the given mode and canvas
// dimensions. Each original is kept and emitted first, then its horizontal,
// vertical, and diagonal mirrors in that order; a mirror landing on the
// original coordinate is skipped, and the diagonal is added only when both
// mirrored coordinates differ so axis points never duplicate.
//
// Mirrored copies carry the origin's Old cell, which is stale for the
// mirrored position. Callers must re-read Old from the live grid and
// recompute New before applying.
func Apply(mutations []history.CellMutation, mode Mode, width, height int) []history.CellMutation {
	if mode == Off {
		return mutations
	}

	result := make([]history.CellMutation, 0, len(mutations)*4)
	for _, m := range mutations {
		result = append(result, m)

		mx := width - 1 - m.X
		my := height - 1 - m.Y

		if mode.HasHorizontal() && mx != m.X {
			mirrored := m
			mirrored.X = mx
			result = append(result, mirrored)
		}
		if mode.HasVertical() && my != m.Y {
			mirrored := m
			mirrored.Y = my
			result = append(result, mirrored)
		}
		if mode == Quad && mx != m.X && my != m.Y {
			mirrored := m
			mirrored.X = mx
			mirrored.Y = my
			result = append(result, mirrored)
		}
	}
	return result
}
