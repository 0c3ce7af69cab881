// Package tools implements the drawing tool algorithms. Every tool is a pure
// function from a grid and parameters to a list of cell mutations; tools
// never write to the grid themselves, and a mutation is emitted only when it
// would change the cell.
package tools

import (
	"github.com/dshills/pixelstorm/internal/engine/cell"
	"github.com/dshills/pixelstorm/internal/engine/grid"
	"github.com/dshills/pixelstorm/internal/engine/history"
)

// Kind identifies a drawing tool.
type Kind int

const (
	Pencil Kind = iota
	Eraser
	Line
	Rectangle
	Fill
	Eyedropper
)

// All lists every tool in toolbar order.
var All = []Kind{Pencil, Eraser, Line, Rectangle, Fill, Eyedropper}

// Name returns the toolbar label.
func (k Kind) Name() string {
	switch k {
	case Pencil:
		return "Pencil"
	case Eraser:
		return "Eraser"
	case Line:
		return "Line"
	case Rectangle:
		return "Rect"
	case Fill:
		return "Fill"
	case Eyedropper:
		return "Pick"
	default:
		return "Unknown"
	}
}

// Icon returns the toolbar glyph.
func (k Kind) Icon() string {
	switch k {
	case Pencil:
		return "✏" // ✏
	case Eraser:
		return "◻" // ◻
	case Line:
		return "╱" // ╱
	case Rectangle:
		return "▭" // ▭
	case Fill:
		return "◉" // ◉
	case Eyedropper:
		return "◈" // ◈
	default:
		return "?"
	}
}

// Key returns the keyboard shortcut label.
func (k Kind) Key() string {
	switch k {
	case Pencil:
		return "P"
	case Eraser:
		return "E"
	case Line:
		return "L"
	case Rectangle:
		return "R"
	case Fill:
		return "F"
	case Eyedropper:
		return "I"
	default:
		return ""
	}
}

// State is the transient two-click state for line and rectangle tools. It is
// the only state the tool layer owns.
type State struct {
	Awaiting bool
	X, Y     int
}

// Idle returns the state with no pending first corner.
func Idle() State {
	return State{}
}

// AwaitingSecondPoint returns the state holding the first corner.
func AwaitingSecondPoint(x, y int) State {
	return State{Awaiting: true, X: x, Y: y}
}

// ApplyPencil stamps a single cell.
func ApplyPencil(g *grid.Grid, x, y int, ch rune, fg, bg cell.Color) []history.CellMutation {
	old, ok := g.Get(x, y)
	if !ok {
		return nil
	}
	next := cell.Compose(old, ch, fg, bg)
	if old == next {
		return nil
	}
	return []history.CellMutation{{X: x, Y: y, Old: old, New: next}}
}

// ApplyEraser resets a single cell to the default.
func ApplyEraser(g *grid.Grid, x, y int) []history.CellMutation {
	old, ok := g.Get(x, y)
	if !ok {
		return nil
	}
	next := cell.Default()
	if old == next {
		return nil
	}
	return []history.CellMutation{{X: x, Y: y, Old: old, New: next}}
}

// BresenhamLine returns the integer points from (x0,y0) to (x1,y1) inclusive.
// The point set is symmetric under endpoint reversal and has exactly
// max(|dx|,|dy|)+1 entries.
func BresenhamLine(x0, y0, x1, y1 int) [][2]int {
	var points [][2]int

	dx := abs(x1 - x0)
	dy := -abs(y1 - y0)
	sx := 1
	if x0 > x1 {
		sx = -1
	}
	sy := 1
	if y0 > y1 {
		sy = -1
	}
	err := dx + dy

	for {
		points = append(points, [2]int{x0, y0})
		if x0 == x1 && y0 == y1 {
			break
		}
		e2 := 2 * err
		if e2 >= dy {
			err += dy
			x0 += sx
		}
		if e2 <= dx {
			err += dx
			y0 += sy
		}
	}

	return points
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

// ApplyLine stamps a Bresenham line between two points.
func ApplyLine(g *grid.Grid, x0, y0, x1, y1 int, ch rune, fg, bg cell.Color) []history.CellMutation {
	var mutations []history.CellMutation
	for _, p := range BresenhamLine(x0, y0, x1, y1) {
		old, ok := g.Get(p[0], p[1])
		if !ok {
			continue
		}
		next := cell.Compose(old, ch, fg, bg)
		if old == next {
			continue
		}
		mutations = append(mutations, history.CellMutation{X: p[0], Y: p[1], Old: old, New: next})
	}
	return mutations
}

// ApplyRectangle stamps an axis-aligned box between two corners. Outline mode
// emits only the border; filled mode emits the interior too.
func ApplyRectangle(g *grid.Grid, x0, y0, x1, y1 int, ch rune, fg, bg cell.Color, filled bool) []history.CellMutation {
	minX, maxX := minMax(x0, x1)
	minY, maxY := minMax(y0, y1)

	var mutations []history.CellMutation
	for y := minY; y <= maxY; y++ {
		for x := minX; x <= maxX; x++ {
			border := x == minX || x == maxX || y == minY || y == maxY
			if !filled && !border {
				continue
			}
			old, ok := g.Get(x, y)
			if !ok {
				continue
			}
			next := cell.Compose(old, ch, fg, bg)
			if old == next {
				continue
			}
			mutations = append(mutations, history.CellMutation{X: x, Y: y, Old: old, New: next})
		}
	}
	return mutations
}

func minMax(a, b int) (int, int) {
	if a > b {
		return b, a
	}
	return a, b
}

// ApplyFill flood-fills 4-connected cells matching the seed's original value.
// The walk is iterative with an explicit stack and a visited set sized
// width*height, so every in-bounds cell is visited at most once.
func ApplyFill(g *grid.Grid, startX, startY int, ch rune, fg, bg cell.Color) []history.CellMutation {
	target, ok := g.Get(startX, startY)
	if !ok {
		return nil
	}
	next := cell.Compose(target, ch, fg, bg)
	if target == next {
		return nil // seed already matches
	}

	w := g.Width()
	h := g.Height()
	visited := make([]bool, w*h)
	stack := [][2]int{{startX, startY}}

	var mutations []history.CellMutation
	for len(stack) > 0 {
		p := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		x, y := p[0], p[1]

		if x < 0 || y < 0 || x >= w || y >= h || visited[y*w+x] {
			continue
		}
		c, ok := g.Get(x, y)
		if !ok || c != target {
			continue
		}

		visited[y*w+x] = true
		mutations = append(mutations, history.CellMutation{X: x, Y: y, Old: target, New: next})

		stack = append(stack, [2]int{x - 1, y}, [2]int{x + 1, y}, [2]int{x, y - 1}, [2]int{x, y + 1})
	}

	return mutations
}

// ApplyEyedropper reads the cell under the cursor without mutating anything.
func ApplyEyedropper(g *grid.Grid, x, y int) (cell.Cell, bool) {
	return g.Get(x, y)
}
