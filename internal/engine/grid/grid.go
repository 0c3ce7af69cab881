// Package grid provides bounded 2D cell storage for a canvas.
package grid

import "github.com/dshills/pixelstorm/internal/engine/cell"

// Canvas dimension limits. Construction and resize clamp into this range.
const (
	MinDimension = 8
	MaxDimension = 128

	DefaultWidth  = 32
	DefaultHeight = 32
)

// Grid is a rectangular array of cells. It is pure storage: all access is
// bounds checked, and out-of-range writes are silently dropped so tool
// algorithms can probe past the edges without special cases.
type Grid struct {
	cells  []cell.Cell
	width  int
	height int
}

// New creates a default-sized grid filled with default cells.
func New() *Grid {
	return NewWithSize(DefaultWidth, DefaultHeight)
}

// NewWithSize creates a grid with the given dimensions, clamped to
// [MinDimension, MaxDimension].
func NewWithSize(width, height int) *Grid {
	w := clamp(width)
	h := clamp(height)
	g := &Grid{
		cells:  make([]cell.Cell, w*h),
		width:  w,
		height: h,
	}
	g.fillDefault(g.cells)
	return g
}

func clamp(v int) int {
	if v < MinDimension {
		return MinDimension
	}
	if v > MaxDimension {
		return MaxDimension
	}
	return v
}

func (g *Grid) fillDefault(cells []cell.Cell) {
	d := cell.Default()
	for i := range cells {
		cells[i] = d
	}
}

// Width returns the grid width in cells.
func (g *Grid) Width() int { return g.width }

// Height returns the grid height in cells.
func (g *Grid) Height() int { return g.height }

// Get returns the cell at (x, y), or ok=false when out of bounds.
func (g *Grid) Get(x, y int) (cell.Cell, bool) {
	if x < 0 || y < 0 || x >= g.width || y >= g.height {
		return cell.Cell{}, false
	}
	return g.cells[y*g.width+x], true
}

// Set writes the cell at (x, y). Out-of-bounds writes are no-ops.
func (g *Grid) Set(x, y int, c cell.Cell) {
	if x < 0 || y < 0 || x >= g.width || y >= g.height {
		return
	}
	g.cells[y*g.width+x] = c
}

// Clear resets every cell to the default.
func (g *Grid) Clear() {
	g.fillDefault(g.cells)
}

// Resize changes the grid dimensions, clamping to the allowed range. The
// overlapping top-left region is preserved; newly exposed cells are default.
func (g *Grid) Resize(width, height int) {
	w := clamp(width)
	h := clamp(height)
	if w == g.width && h == g.height {
		return
	}

	cells := make([]cell.Cell, w*h)
	g.fillDefault(cells)

	copyW := min(w, g.width)
	copyH := min(h, g.height)
	for y := 0; y < copyH; y++ {
		copy(cells[y*w:y*w+copyW], g.cells[y*g.width:y*g.width+copyW])
	}

	g.cells = cells
	g.width = w
	g.height = h
}
