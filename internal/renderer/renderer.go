// Package renderer draws the editor UI: toolbar, canvas, palette strip, and
// status line. Canvas cells are doubled horizontally so pixels stay square.
package renderer

import (
	"fmt"

	"github.com/dshills/pixelstorm/internal/engine/cell"
	"github.com/dshills/pixelstorm/internal/engine/grid"
	"github.com/dshills/pixelstorm/internal/engine/symmetry"
	"github.com/dshills/pixelstorm/internal/engine/tools"
	"github.com/dshills/pixelstorm/internal/renderer/backend"
)

// Frame is one snapshot of editor state to draw. The renderer holds no
// editor references; the app builds a Frame per redraw.
type Frame struct {
	Grid *grid.Grid

	CursorX, CursorY int
	CursorVisible    bool

	Tool       tools.Kind
	Glyph      rune
	Fg, Bg     cell.Color
	FilledRect bool
	Symmetry   symmetry.Mode

	Palette    []cell.Rgb
	PaletteSel int
	Recent     []cell.Rgb

	Name   string
	Dirty  bool
	Status string
	Prompt string

	// PlainBackdrop blanks transparent cells instead of drawing the
	// checkerboard.
	PlainBackdrop bool
}

// Layout rows reserved around the canvas.
const (
	toolbarRow    = 0
	canvasTop     = 1
	paletteRows   = 1
	statusRows    = 1
	canvasLeft    = 1
	pixelWidth    = 2
	swatchWidth   = 2
	swatchPadding = 1
)

// Renderer draws frames onto a backend.
type Renderer struct {
	b backend.Backend
}

// New creates a renderer for the backend.
func New(b backend.Backend) *Renderer {
	return &Renderer{b: b}
}

// Render draws a complete frame and flushes it.
func (r *Renderer) Render(f *Frame) {
	r.b.Clear()
	r.drawToolbar(f)
	r.drawCanvas(f)
	r.drawPalette(f)
	r.drawStatus(f)
	r.b.Show()
}

// CanvasCell maps a screen position to canvas coordinates. ok is false
// outside the canvas area.
func (r *Renderer) CanvasCell(f *Frame, screenX, screenY int) (cx, cy int, ok bool) {
	cx = (screenX - canvasLeft) / pixelWidth
	cy = screenY - canvasTop
	if screenX < canvasLeft || cx < 0 || cx >= f.Grid.Width() || cy < 0 || cy >= f.Grid.Height() {
		return 0, 0, false
	}
	return cx, cy, true
}

// PaletteSwatch maps a screen position to a palette index. ok is false off
// the palette strip.
func (r *Renderer) PaletteSwatch(f *Frame, screenX, screenY int) (int, bool) {
	if screenY != r.paletteRow(f) {
		return 0, false
	}
	idx := (screenX - canvasLeft) / (swatchWidth + swatchPadding)
	if screenX < canvasLeft || idx < 0 || idx >= len(f.Palette) {
		return 0, false
	}
	offset := (screenX - canvasLeft) % (swatchWidth + swatchPadding)
	if offset >= swatchWidth {
		return 0, false // gap between swatches
	}
	return idx, true
}

func (r *Renderer) paletteRow(f *Frame) int {
	return canvasTop + f.Grid.Height()
}

func (r *Renderer) statusRow() int {
	_, h := r.b.Size()
	return h - 1
}

func (r *Renderer) drawText(x, y int, text string, sc backend.ScreenCell) int {
	w, _ := r.b.Size()
	for _, ch := range text {
		if x >= w {
			break
		}
		sc.Ch = ch
		r.b.SetCell(x, y, sc)
		x++
	}
	return x
}

func (r *Renderer) drawToolbar(f *Frame) {
	x := canvasLeft
	for _, k := range tools.All {
		sc := backend.ScreenCell{}
		if k == f.Tool {
			sc.Reverse = true
		}
		label := fmt.Sprintf(" %s %s ", k.Icon(), k.Name())
		x = r.drawText(x, toolbarRow, label, sc)
		x++
	}

	// Right side: active glyph and symmetry mode.
	w, _ := r.b.Size()
	right := fmt.Sprintf("%c  sym:%s", f.Glyph, f.Symmetry.Label())
	r.drawText(w-len([]rune(right))-1, toolbarRow, right, backend.ScreenCell{Dim: true})
}

func (r *Renderer) drawCanvas(f *Frame) {
	for y := 0; y < f.Grid.Height(); y++ {
		for x := 0; x < f.Grid.Width(); x++ {
			c, _ := f.Grid.Get(x, y)
			if res, ok := cell.Resolve(c); ok {
				c = res
			}
			sc := backend.ScreenCell{Ch: c.Ch, Fg: c.Fg, Bg: c.Bg}
			if c.IsEmpty() && !c.Bg.Valid {
				if f.PlainBackdrop {
					sc = backend.ScreenCell{Ch: ' '}
				} else {
					sc = checkerCell(x, y)
				}
			}
			if f.CursorVisible && x == f.CursorX && y == f.CursorY {
				sc.Reverse = true
			}
			sx := canvasLeft + x*pixelWidth
			sy := canvasTop + y
			r.b.SetCell(sx, sy, sc)
			r.b.SetCell(sx+1, sy, sc)
		}
	}
}

// checkerCell renders transparency as a dim checkerboard.
func checkerCell(x, y int) backend.ScreenCell {
	if (x+y)%2 == 0 {
		return backend.ScreenCell{Ch: '·', Dim: true}
	}
	return backend.ScreenCell{Ch: ' '}
}

func (r *Renderer) drawPalette(f *Frame) {
	row := r.paletteRow(f)
	x := canvasLeft
	for i, rgb := range f.Palette {
		sc := backend.ScreenCell{
			Ch: '█',
			Fg: cell.Color{Rgb: rgb, Valid: true},
		}
		marker := backend.ScreenCell{Ch: ' '}
		if i == f.PaletteSel {
			marker.Ch = '▸'
		}
		r.b.SetCell(x-1, row, marker)
		for dx := 0; dx < swatchWidth; dx++ {
			r.b.SetCell(x+dx, row, sc)
		}
		x += swatchWidth + swatchPadding
	}

	// Recent colors after a separator.
	if len(f.Recent) > 0 {
		x = r.drawText(x+1, row, "recent:", backend.ScreenCell{Dim: true})
		x++
		for _, rgb := range f.Recent {
			sc := backend.ScreenCell{Ch: '█', Fg: cell.Color{Rgb: rgb, Valid: true}}
			r.b.SetCell(x, row, sc)
			x += 2
		}
	}
}

func (r *Renderer) drawStatus(f *Frame) {
	row := r.statusRow()
	if f.Prompt != "" {
		r.drawText(0, row, f.Prompt, backend.ScreenCell{Bold: true})
		return
	}

	name := f.Name
	if name == "" {
		name = "untitled"
	}
	if f.Dirty {
		name += " *"
	}
	left := fmt.Sprintf(" %s  %dx%d", name, f.Grid.Width(), f.Grid.Height())
	x := r.drawText(0, row, left, backend.ScreenCell{})
	if f.Status != "" {
		r.drawText(x+2, row, f.Status, backend.ScreenCell{Dim: true})
	}

	// Active colors on the right edge.
	w, _ := r.b.Size()
	fgCell := backend.ScreenCell{Ch: '█', Fg: f.Fg}
	if !f.Fg.Valid {
		fgCell.Ch = '·'
	}
	bgCell := backend.ScreenCell{Ch: '█', Fg: f.Bg}
	if !f.Bg.Valid {
		bgCell.Ch = '·'
	}
	x = r.drawText(w-9, row, "fg:", backend.ScreenCell{Dim: true})
	r.b.SetCell(x, row, fgCell)
	x = r.drawText(x+1, row, " bg:", backend.ScreenCell{Dim: true})
	r.b.SetCell(x, row, bgCell)
}
