package input

import (
	"unicode"

	"github.com/dshills/pixelstorm/internal/engine/tools"
	"github.com/dshills/pixelstorm/internal/renderer/backend"
)

// Op identifies an editor command produced from an input event.
type Op int

const (
	OpNone Op = iota
	OpQuit
	OpSelectTool
	OpToggleSymmetryHorizontal
	OpToggleSymmetryVertical
	OpCycleGlyph
	OpGlyphNext
	OpGlyphPrev
	OpToggleFilledRect
	OpCancel
	OpHelp
	OpUndo
	OpRedo
	OpSave
	OpOpen
	OpNewCanvas
	OpExport
	OpCycleTheme
	OpQuickColor
	OpPalettePrev
	OpPaletteNext
	OpPaletteSelect
	OpColorSliders
	OpPaletteDialog
	OpBrushDialog
	OpAddColor
	OpDrawPress
	OpDrawDrag
	OpDrawRelease
	OpPickColor
	OpHover
	OpHoverOff
	OpResize
)

// Command is one translated input event. X and Y are canvas coordinates
// for draw commands and the new terminal size for OpResize. Index is the
// palette slot for OpQuickColor and OpPaletteSelect. Tool is set for
// OpSelectTool.
type Command struct {
	Op    Op
	Tool  tools.Kind
	X, Y  int
	Index int
}

// Surface reports where screen positions land in the editor UI. The
// renderer provides the implementation for the current frame layout.
type Surface interface {
	CanvasCell(screenX, screenY int) (x, y int, ok bool)
	PaletteSwatch(screenX, screenY int) (int, bool)
}

// Handler translates backend events into commands. It carries the mouse
// button state needed to tell a press from a drag.
type Handler struct {
	leftDown  bool
	rightDown bool
}

// NewHandler returns a handler with no buttons held.
func NewHandler() *Handler {
	return &Handler{}
}

// Translate converts one event into a command. OpNone means the event
// needs no action.
func (h *Handler) Translate(ev backend.Event, s Surface) Command {
	switch ev.Type {
	case backend.EventKey:
		return translateKey(ev)
	case backend.EventMouse:
		return h.translateMouse(ev, s)
	case backend.EventResize:
		return Command{Op: OpResize, X: ev.Width, Y: ev.Height}
	}
	return Command{}
}

func translateKey(ev backend.Event) Command {
	switch ev.Key {
	case backend.KeyCtrlZ:
		return Command{Op: OpUndo}
	case backend.KeyCtrlY:
		return Command{Op: OpRedo}
	case backend.KeyCtrlS:
		return Command{Op: OpSave}
	case backend.KeyCtrlO:
		return Command{Op: OpOpen}
	case backend.KeyCtrlN:
		return Command{Op: OpNewCanvas}
	case backend.KeyCtrlE:
		return Command{Op: OpExport}
	case backend.KeyCtrlT:
		return Command{Op: OpCycleTheme}
	case backend.KeyCtrlC:
		return Command{Op: OpQuit}
	case backend.KeyEscape:
		return Command{Op: OpCancel}
	case backend.KeyLeft:
		return Command{Op: OpPalettePrev}
	case backend.KeyRight:
		return Command{Op: OpPaletteNext}
	case backend.KeyRune:
		return translateRune(ev.Rune)
	}
	return Command{}
}

func translateRune(r rune) Command {
	if k, ok := toolForRune(r); ok {
		return Command{Op: OpSelectTool, Tool: k}
	}
	if r >= '1' && r <= '9' {
		return Command{Op: OpQuickColor, Index: int(r - '1')}
	}
	switch unicode.ToLower(r) {
	case '0':
		return Command{Op: OpQuickColor, Index: 9}
	case 'h':
		return Command{Op: OpToggleSymmetryHorizontal}
	case 'v':
		return Command{Op: OpToggleSymmetryVertical}
	case 'b':
		return Command{Op: OpCycleGlyph}
	case 't':
		return Command{Op: OpToggleFilledRect}
	case 's':
		return Command{Op: OpColorSliders}
	case 'c':
		return Command{Op: OpPaletteDialog}
	case 'g':
		return Command{Op: OpBrushDialog}
	case 'a':
		return Command{Op: OpAddColor}
	case '?':
		return Command{Op: OpHelp}
	case 'q':
		return Command{Op: OpQuit}
	}
	return Command{}
}

// toolForRune matches a key to a tool through the tool's own shortcut.
func toolForRune(r rune) (tools.Kind, bool) {
	upper := string(unicode.ToUpper(r))
	for _, k := range tools.All {
		if k.Key() == upper {
			return k, true
		}
	}
	return 0, false
}

func (h *Handler) translateMouse(ev backend.Event, s Surface) Command {
	switch ev.MouseButton {
	case backend.MouseLeft:
		press := !h.leftDown
		h.leftDown = true
		if x, y, ok := s.CanvasCell(ev.MouseX, ev.MouseY); ok {
			if press {
				return Command{Op: OpDrawPress, X: x, Y: y}
			}
			return Command{Op: OpDrawDrag, X: x, Y: y}
		}
		if press {
			if idx, ok := s.PaletteSwatch(ev.MouseX, ev.MouseY); ok {
				return Command{Op: OpPaletteSelect, Index: idx}
			}
		}
		return Command{}
	case backend.MouseRight:
		press := !h.rightDown
		h.rightDown = true
		if press {
			if x, y, ok := s.CanvasCell(ev.MouseX, ev.MouseY); ok {
				return Command{Op: OpPickColor, X: x, Y: y}
			}
		}
		return Command{}
	case backend.MouseWheelUp:
		return Command{Op: OpGlyphNext}
	case backend.MouseWheelDown:
		return Command{Op: OpGlyphPrev}
	case backend.MouseNone:
		h.rightDown = false
		if h.leftDown {
			h.leftDown = false
			return Command{Op: OpDrawRelease}
		}
		if x, y, ok := s.CanvasCell(ev.MouseX, ev.MouseY); ok {
			return Command{Op: OpHover, X: x, Y: y}
		}
		return Command{Op: OpHoverOff}
	}
	return Command{}
}
