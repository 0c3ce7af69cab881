package app

import (
	"github.com/dshills/pixelstorm/internal/engine/cell"
	"github.com/dshills/pixelstorm/internal/engine/color"
	"github.com/dshills/pixelstorm/internal/engine/tools"
	"github.com/dshills/pixelstorm/internal/input"
	"github.com/dshills/pixelstorm/internal/renderer/backend"
)

// handleEvent routes one backend event. Caller holds a.mu.
func (a *App) handleEvent(ev backend.Event) {
	if a.mode != ModeNormal {
		a.handleDialogEvent(ev)
		return
	}
	cmd := a.handler.Translate(ev, surface{r: a.rend, f: a.frame()})
	a.execute(cmd)
}

// execute runs one normal-mode command. Caller holds a.mu.
func (a *App) execute(cmd input.Command) {
	switch cmd.Op {
	case input.OpSelectTool:
		a.editor.SetTool(cmd.Tool)
		a.setStatus("Tool: %s", cmd.Tool.Name())

	case input.OpToggleSymmetryHorizontal:
		a.editor.ToggleSymmetryHorizontal()
		a.setStatus("Symmetry: %s", a.editor.Symmetry().Label())

	case input.OpToggleSymmetryVertical:
		a.editor.ToggleSymmetryVertical()
		a.setStatus("Symmetry: %s", a.editor.Symmetry().Label())

	case input.OpCycleGlyph, input.OpGlyphNext:
		a.editor.CycleGlyph()

	case input.OpGlyphPrev:
		a.editor.CycleGlyphBack()

	case input.OpToggleFilledRect:
		a.editor.ToggleFilledRect()
		if a.editor.FilledRect() {
			a.setStatus("Rect: filled")
		} else {
			a.setStatus("Rect: outline")
		}

	case input.OpCancel:
		a.editor.CancelTool()
		a.setStatus("Cancelled")

	case input.OpUndo:
		if !a.editor.Undo() {
			a.setStatus("Nothing to undo")
		}

	case input.OpRedo:
		if !a.editor.Redo() {
			a.setStatus("Nothing to redo")
		}

	case input.OpQuickColor, input.OpPaletteSelect:
		a.selectSwatch(cmd.Index)

	case input.OpPalettePrev:
		a.selectSwatch(a.stripSel - 1)

	case input.OpPaletteNext:
		a.selectSwatch(a.stripSel + 1)

	case input.OpColorSliders:
		fg := a.editor.Fg()
		a.sliderH, a.sliderS, a.sliderL = color.RGBToHSL(fg.R, fg.G, fg.B)
		a.sliderActive = 0
		a.mode = ModeColorSliders

	case input.OpPaletteDialog:
		a.openPaletteDialog()

	case input.OpBrushDialog:
		a.openBrushDialog()

	case input.OpAddColor:
		a.addColorToCustom()

	case input.OpSave:
		a.saveOrPrompt()

	case input.OpOpen:
		a.openFileDialog()

	case input.OpNewCanvas:
		a.newWidth = a.editor.Grid().Width()
		a.newHeight = a.editor.Grid().Height()
		a.newCursor = 0
		a.mode = ModeNewCanvas

	case input.OpExport:
		a.exportSel = 0
		a.mode = ModeExportDialog

	case input.OpCycleTheme:
		if a.cfg.Theme == "plain" {
			a.cfg.Theme = "default"
		} else {
			a.cfg.Theme = "plain"
		}
		a.setStatus("Theme: %s", a.cfg.Theme)

	case input.OpHelp:
		a.mode = ModeHelp

	case input.OpQuit:
		a.requestQuit()

	case input.OpDrawPress:
		a.cursorX, a.cursorY = cmd.X, cmd.Y
		a.cursorVisible = true
		if continuous(a.editor.Tool()) {
			a.editor.BeginStroke()
		}
		a.editor.ApplyTool(cmd.X, cmd.Y)

	case input.OpDrawDrag:
		a.cursorX, a.cursorY = cmd.X, cmd.Y
		a.cursorVisible = true
		if continuous(a.editor.Tool()) {
			a.editor.ApplyTool(cmd.X, cmd.Y)
		}

	case input.OpDrawRelease:
		if a.editor.History().StrokeActive() {
			a.editor.EndStroke()
		}

	case input.OpPickColor:
		a.pickColor(cmd.X, cmd.Y)

	case input.OpHover:
		a.cursorX, a.cursorY = cmd.X, cmd.Y
		a.cursorVisible = true

	case input.OpHoverOff:
		a.cursorVisible = false

	case input.OpResize:
		// Terminal contents are stale after a resize; the loop redraws
		// every frame, so only a full repaint needs forcing.
		a.backend.Sync()
	}
}

// continuous reports whether the tool paints while the button is held.
func continuous(k tools.Kind) bool {
	return k == tools.Pencil || k == tools.Eraser
}

// selectSwatch picks a palette strip slot and makes it the foreground.
func (a *App) selectSwatch(idx int) {
	if idx < 0 || idx >= len(a.strip) {
		return
	}
	a.stripSel = idx
	a.editor.SetFg(cell.Color{Rgb: a.strip[idx], Valid: true})
}

// pickColor is the right-click eyedropper, independent of the active tool.
func (a *App) pickColor(x, y int) {
	c, ok := tools.ApplyEyedropper(a.editor.Grid(), x, y)
	if !ok {
		return
	}
	if c.Fg.Valid {
		a.editor.SetFg(c.Fg)
	}
	if !c.IsEmpty() {
		a.editor.SetGlyph(c.Ch)
		a.setStatus("Picked %c", c.Ch)
	}
}

// requestQuit exits immediately when clean, otherwise asks first.
func (a *App) requestQuit() {
	if a.editor.Dirty() {
		a.mode = ModeQuitting
		return
	}
	a.running = false
}
