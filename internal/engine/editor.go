// Package engine wires the drawing core together: grid, tools, symmetry,
// and history. The Editor is the single writer of the grid and the only
// place that sequences "compute mutations, re-read old values against the
// live grid, apply, commit".
package engine

import (
	"github.com/dshills/pixelstorm/internal/engine/cell"
	"github.com/dshills/pixelstorm/internal/engine/grid"
	"github.com/dshills/pixelstorm/internal/engine/history"
	"github.com/dshills/pixelstorm/internal/engine/symmetry"
	"github.com/dshills/pixelstorm/internal/engine/tools"
)

// maxRecentColors caps the auto-tracked recent color list.
const maxRecentColors = 8

// StampPoint is one cell of a programmatic stamp (brush scripts and other
// bulk edits) routed through the normal mutation path.
type StampPoint struct {
	X, Y int
	Ch   rune
	Fg   cell.Color
	Bg   cell.Color
}

// Editor owns the canvas and edit state. It is not safe for concurrent use;
// the application drives it from one event loop.
type Editor struct {
	grid    *grid.Grid
	history *history.History

	tool      tools.Kind
	toolState tools.State
	mode      symmetry.Mode

	glyph      rune
	fg         cell.Color
	bg         cell.Color
	filledRect bool

	recent []cell.Rgb
	dirty  bool
}

// New creates an editor with a default-sized blank canvas.
func New() *Editor {
	return NewWithGrid(grid.New())
}

// NewWithGrid creates an editor around an existing grid (e.g. a loaded
// project).
func NewWithGrid(g *grid.Grid) *Editor {
	return &Editor{
		grid:    g,
		history: history.New(),
		tool:    tools.Pencil,
		glyph:   cell.Full,
		fg:      cell.DefaultFg,
	}
}

// Grid returns the live canvas. Callers must not retain the pointer across
// ReplaceGrid.
func (e *Editor) Grid() *grid.Grid { return e.grid }

// History returns the undo/redo engine.
func (e *Editor) History() *history.History { return e.history }

// ReplaceGrid swaps in a new canvas and resets history and tool state.
func (e *Editor) ReplaceGrid(g *grid.Grid) {
	e.grid = g
	e.history.Clear()
	e.toolState = tools.Idle()
	e.dirty = false
}

// NewCanvas replaces the canvas with a blank grid of the given size.
func (e *Editor) NewCanvas(width, height int) {
	e.ReplaceGrid(grid.NewWithSize(width, height))
}

// Resize changes the canvas dimensions in place. Mutations recorded against
// the old dimensions may reference cells that no longer exist, so history is
// cleared.
func (e *Editor) Resize(width, height int) {
	e.grid.Resize(width, height)
	e.history.Clear()
	e.dirty = true
}

// Tool returns the active tool.
func (e *Editor) Tool() tools.Kind { return e.tool }

// SetTool selects the active tool and cancels any pending two-click state.
func (e *Editor) SetTool(k tools.Kind) {
	e.tool = k
	e.toolState = tools.Idle()
}

// CancelTool drops a pending first corner.
func (e *Editor) CancelTool() {
	e.toolState = tools.Idle()
}

// AwaitingSecondPoint reports whether a line/rectangle first corner is held.
func (e *Editor) AwaitingSecondPoint() bool { return e.toolState.Awaiting }

// Glyph returns the active drawing glyph.
func (e *Editor) Glyph() rune { return e.glyph }

// SetGlyph selects the drawing glyph; non-taxonomy runes are ignored.
func (e *Editor) SetGlyph(ch rune) {
	if cell.IsGlyph(ch) && ch != cell.Empty {
		e.glyph = ch
	}
}

// CycleGlyph advances to the next drawable glyph.
func (e *Editor) CycleGlyph() {
	e.glyph = cell.NextGlyph(e.glyph)
}

// CycleGlyphBack steps to the previous drawable glyph.
func (e *Editor) CycleGlyphBack() {
	e.glyph = cell.PrevGlyph(e.glyph)
}

// Fg returns the active foreground color.
func (e *Editor) Fg() cell.Color { return e.fg }

// SetFg selects the active foreground color.
func (e *Editor) SetFg(c cell.Color) { e.fg = c }

// Bg returns the active background color.
func (e *Editor) Bg() cell.Color { return e.bg }

// SetBg selects the active background color.
func (e *Editor) SetBg(c cell.Color) { e.bg = c }

// FilledRect reports whether the rectangle tool fills its interior.
func (e *Editor) FilledRect() bool { return e.filledRect }

// ToggleFilledRect flips rectangle fill mode.
func (e *Editor) ToggleFilledRect() { e.filledRect = !e.filledRect }

// Symmetry returns the active mirror mode.
func (e *Editor) Symmetry() symmetry.Mode { return e.mode }

// SetSymmetry sets the mirror mode directly (project load).
func (e *Editor) SetSymmetry(m symmetry.Mode) { e.mode = m }

// ToggleSymmetryHorizontal flips the horizontal mirror bit.
func (e *Editor) ToggleSymmetryHorizontal() { e.mode = e.mode.ToggleHorizontal() }

// ToggleSymmetryVertical flips the vertical mirror bit.
func (e *Editor) ToggleSymmetryVertical() { e.mode = e.mode.ToggleVertical() }

// Dirty reports whether the canvas changed since the last save.
func (e *Editor) Dirty() bool { return e.dirty }

// MarkClean records a successful save.
func (e *Editor) MarkClean() { e.dirty = false }

// MarkDirty flags unsaved changes without an edit, e.g. a recovered
// autosave load.
func (e *Editor) MarkDirty() { e.dirty = true }

// Recent returns the auto-tracked recent foreground colors, most recent
// first.
func (e *Editor) Recent() []cell.Rgb { return e.recent }

func (e *Editor) trackRecent(c cell.Color) {
	if !c.Valid {
		return
	}
	for i, r := range e.recent {
		if r == c.Rgb {
			e.recent = append(e.recent[:i], e.recent[i+1:]...)
			break
		}
	}
	e.recent = append([]cell.Rgb{c.Rgb}, e.recent...)
	if len(e.recent) > maxRecentColors {
		e.recent = e.recent[:maxRecentColors]
	}
}

// BeginStroke opens a drag-gesture undo batch.
func (e *Editor) BeginStroke() { e.history.BeginStroke() }

// EndStroke commits the open drag gesture as one undo unit.
func (e *Editor) EndStroke() { e.history.EndStroke() }

// Undo reverts the last action. Reports whether anything was undone.
func (e *Editor) Undo() bool {
	if e.history.Undo(e.grid) {
		e.dirty = true
		return true
	}
	return false
}

// Redo replays the last undone action. Reports whether anything was redone.
func (e *Editor) Redo() bool {
	if e.history.Redo(e.grid) {
		e.dirty = true
		return true
	}
	return false
}

// ApplyTool applies the active tool at (x, y), handling two-click tools,
// symmetry expansion, and history recording. It returns the number of cells
// changed (zero for first clicks, no-ops, and the eyedropper).
func (e *Editor) ApplyTool(x, y int) int {
	var muts []history.CellMutation

	switch e.tool {
	case tools.Pencil:
		e.trackRecent(e.fg)
		muts = tools.ApplyPencil(e.grid, x, y, e.glyph, e.fg, e.bg)

	case tools.Eraser:
		muts = tools.ApplyEraser(e.grid, x, y)

	case tools.Fill:
		e.trackRecent(e.fg)
		muts = tools.ApplyFill(e.grid, x, y, e.glyph, e.fg, e.bg)

	case tools.Eyedropper:
		if c, ok := tools.ApplyEyedropper(e.grid, x, y); ok {
			if c.Fg.Valid {
				e.fg = c.Fg
				e.trackRecent(c.Fg)
			}
			if !c.IsEmpty() {
				e.glyph = c.Ch
			}
		}
		return 0

	case tools.Line:
		if !e.toolState.Awaiting {
			e.toolState = tools.AwaitingSecondPoint(x, y)
			return 0
		}
		x0, y0 := e.toolState.X, e.toolState.Y
		e.toolState = tools.Idle()
		e.trackRecent(e.fg)
		muts = tools.ApplyLine(e.grid, x0, y0, x, y, e.glyph, e.fg, e.bg)

	case tools.Rectangle:
		if !e.toolState.Awaiting {
			e.toolState = tools.AwaitingSecondPoint(x, y)
			return 0
		}
		x0, y0 := e.toolState.X, e.toolState.Y
		e.toolState = tools.Idle()
		e.trackRecent(e.fg)
		muts = tools.ApplyRectangle(e.grid, x0, y0, x, y, e.glyph, e.fg, e.bg, e.filledRect)
	}

	return e.applyMutations(muts)
}

// ApplyStamp routes programmatic stamp points through the same symmetry and
// history path as interactive tools, as a single undo unit when no stroke is
// open.
func (e *Editor) ApplyStamp(points []StampPoint) int {
	var muts []history.CellMutation
	for _, p := range points {
		old, ok := e.grid.Get(p.X, p.Y)
		if !ok {
			continue
		}
		next := cell.Compose(old, p.Ch, p.Fg, p.Bg)
		if old == next {
			continue
		}
		muts = append(muts, history.CellMutation{X: p.X, Y: p.Y, Old: old, New: next})
	}

	if e.history.StrokeActive() {
		return e.applyMutations(muts)
	}

	e.history.BeginStroke()
	n := e.applyMutations(muts)
	e.history.EndStroke()
	return n
}

// applyMutations expands symmetry, revalidates every mutation against the
// live grid, applies, and records history.
func (e *Editor) applyMutations(muts []history.CellMutation) int {
	muts = symmetry.Apply(muts, e.mode, e.grid.Width(), e.grid.Height())
	if len(muts) == 0 {
		return 0
	}

	// Mirrored mutations carry the origin's Old, which is stale for their
	// own coordinate. Re-read the grid and recompose before applying, and
	// drop anything that turns out to be a no-op.
	applied := muts[:0]
	for _, m := range muts {
		actual, ok := e.grid.Get(m.X, m.Y)
		if !ok {
			continue
		}
		m.Old = actual
		m.New = cell.Compose(actual, m.New.Ch, m.New.Fg, m.New.Bg)
		if m.Old == m.New {
			continue
		}
		applied = append(applied, m)
	}

	for _, m := range applied {
		e.grid.Set(m.X, m.Y, m.New)
	}
	for _, m := range applied {
		e.history.PushMutation(m)
	}

	if len(applied) > 0 {
		e.dirty = true
	}
	return len(applied)
}
