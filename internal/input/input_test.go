package input

import (
	"testing"

	"github.com/dshills/pixelstorm/internal/engine/tools"
	"github.com/dshills/pixelstorm/internal/renderer/backend"
)

// fixedSurface maps a 10x10 canvas at screen origin (1,1) with doubled
// cells, and a palette strip on screen row 12.
type fixedSurface struct{}

func (fixedSurface) CanvasCell(sx, sy int) (int, int, bool) {
	if sx < 1 || sy < 1 || sy > 10 {
		return 0, 0, false
	}
	x := (sx - 1) / 2
	if x >= 10 {
		return 0, 0, false
	}
	return x, sy - 1, true
}

func (fixedSurface) PaletteSwatch(sx, sy int) (int, bool) {
	if sy != 12 || sx >= 24 {
		return 0, false
	}
	return sx / 3, true
}

func keyEvent(k backend.Key, r rune) backend.Event {
	return backend.Event{Type: backend.EventKey, Key: k, Rune: r}
}

func runeEvent(r rune) backend.Event {
	return keyEvent(backend.KeyRune, r)
}

func mouseEvent(b backend.MouseButton, x, y int) backend.Event {
	return backend.Event{Type: backend.EventMouse, MouseButton: b, MouseX: x, MouseY: y}
}

func TestTranslateToolKeys(t *testing.T) {
	tests := []struct {
		r    rune
		want tools.Kind
	}{
		{'p', tools.Pencil},
		{'P', tools.Pencil},
		{'e', tools.Eraser},
		{'l', tools.Line},
		{'r', tools.Rectangle},
		{'f', tools.Fill},
		{'i', tools.Eyedropper},
	}
	h := NewHandler()
	for _, tt := range tests {
		t.Run(string(tt.r), func(t *testing.T) {
			cmd := h.Translate(runeEvent(tt.r), fixedSurface{})
			if cmd.Op != OpSelectTool || cmd.Tool != tt.want {
				t.Errorf("got op %d tool %v, want select %v", cmd.Op, cmd.Tool, tt.want)
			}
		})
	}
}

func TestTranslateCommandKeys(t *testing.T) {
	tests := []struct {
		name string
		ev   backend.Event
		want Op
	}{
		{"undo", keyEvent(backend.KeyCtrlZ, 0), OpUndo},
		{"redo", keyEvent(backend.KeyCtrlY, 0), OpRedo},
		{"save", keyEvent(backend.KeyCtrlS, 0), OpSave},
		{"open", keyEvent(backend.KeyCtrlO, 0), OpOpen},
		{"new", keyEvent(backend.KeyCtrlN, 0), OpNewCanvas},
		{"export", keyEvent(backend.KeyCtrlE, 0), OpExport},
		{"theme", keyEvent(backend.KeyCtrlT, 0), OpCycleTheme},
		{"ctrl-c quits", keyEvent(backend.KeyCtrlC, 0), OpQuit},
		{"escape cancels", keyEvent(backend.KeyEscape, 0), OpCancel},
		{"left palette", keyEvent(backend.KeyLeft, 0), OpPalettePrev},
		{"right palette", keyEvent(backend.KeyRight, 0), OpPaletteNext},
		{"symmetry h", runeEvent('h'), OpToggleSymmetryHorizontal},
		{"symmetry v", runeEvent('V'), OpToggleSymmetryVertical},
		{"cycle glyph", runeEvent('b'), OpCycleGlyph},
		{"filled rect", runeEvent('t'), OpToggleFilledRect},
		{"sliders", runeEvent('s'), OpColorSliders},
		{"palette dialog", runeEvent('c'), OpPaletteDialog},
		{"brush dialog", runeEvent('g'), OpBrushDialog},
		{"add color", runeEvent('a'), OpAddColor},
		{"help", runeEvent('?'), OpHelp},
		{"quit", runeEvent('q'), OpQuit},
		{"unbound rune", runeEvent('z'), OpNone},
	}
	h := NewHandler()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cmd := h.Translate(tt.ev, fixedSurface{})
			if cmd.Op != tt.want {
				t.Errorf("op = %d, want %d", cmd.Op, tt.want)
			}
		})
	}
}

func TestTranslateQuickColor(t *testing.T) {
	h := NewHandler()
	for i, r := range "123456789" {
		cmd := h.Translate(runeEvent(r), fixedSurface{})
		if cmd.Op != OpQuickColor || cmd.Index != i {
			t.Errorf("%c: got op %d index %d, want quick color %d", r, cmd.Op, cmd.Index, i)
		}
	}
	cmd := h.Translate(runeEvent('0'), fixedSurface{})
	if cmd.Op != OpQuickColor || cmd.Index != 9 {
		t.Errorf("0: got op %d index %d, want quick color 9", cmd.Op, cmd.Index)
	}
}

func TestMousePressDragRelease(t *testing.T) {
	h := NewHandler()

	cmd := h.Translate(mouseEvent(backend.MouseLeft, 1, 1), fixedSurface{})
	if cmd.Op != OpDrawPress || cmd.X != 0 || cmd.Y != 0 {
		t.Fatalf("press = %+v", cmd)
	}

	cmd = h.Translate(mouseEvent(backend.MouseLeft, 5, 3), fixedSurface{})
	if cmd.Op != OpDrawDrag || cmd.X != 2 || cmd.Y != 2 {
		t.Fatalf("drag = %+v", cmd)
	}

	cmd = h.Translate(mouseEvent(backend.MouseNone, 5, 3), fixedSurface{})
	if cmd.Op != OpDrawRelease {
		t.Fatalf("release = %+v", cmd)
	}

	// Now that the button is up, motion is plain hover.
	cmd = h.Translate(mouseEvent(backend.MouseNone, 5, 3), fixedSurface{})
	if cmd.Op != OpHover || cmd.X != 2 || cmd.Y != 2 {
		t.Fatalf("hover = %+v", cmd)
	}
}

func TestMousePressOffCanvasSelectsSwatch(t *testing.T) {
	h := NewHandler()
	cmd := h.Translate(mouseEvent(backend.MouseLeft, 7, 12), fixedSurface{})
	if cmd.Op != OpPaletteSelect || cmd.Index != 2 {
		t.Fatalf("swatch = %+v", cmd)
	}
	// Dragging across the palette does not re-select.
	cmd = h.Translate(mouseEvent(backend.MouseLeft, 10, 12), fixedSurface{})
	if cmd.Op != OpNone {
		t.Fatalf("drag over palette = %+v", cmd)
	}
	cmd = h.Translate(mouseEvent(backend.MouseNone, 10, 12), fixedSurface{})
	if cmd.Op != OpDrawRelease {
		t.Fatalf("release = %+v", cmd)
	}
}

func TestMouseRightPicksColorOncePerPress(t *testing.T) {
	h := NewHandler()
	cmd := h.Translate(mouseEvent(backend.MouseRight, 3, 2), fixedSurface{})
	if cmd.Op != OpPickColor || cmd.X != 1 || cmd.Y != 1 {
		t.Fatalf("pick = %+v", cmd)
	}
	cmd = h.Translate(mouseEvent(backend.MouseRight, 3, 2), fixedSurface{})
	if cmd.Op != OpNone {
		t.Fatalf("held right = %+v", cmd)
	}
	h.Translate(mouseEvent(backend.MouseNone, 3, 2), fixedSurface{})
	cmd = h.Translate(mouseEvent(backend.MouseRight, 3, 2), fixedSurface{})
	if cmd.Op != OpPickColor {
		t.Fatalf("second press = %+v", cmd)
	}
}

func TestMouseWheelCyclesGlyph(t *testing.T) {
	h := NewHandler()
	if cmd := h.Translate(mouseEvent(backend.MouseWheelUp, 0, 0), fixedSurface{}); cmd.Op != OpGlyphNext {
		t.Errorf("wheel up = %+v", cmd)
	}
	if cmd := h.Translate(mouseEvent(backend.MouseWheelDown, 0, 0), fixedSurface{}); cmd.Op != OpGlyphPrev {
		t.Errorf("wheel down = %+v", cmd)
	}
}

func TestHoverOffCanvas(t *testing.T) {
	h := NewHandler()
	cmd := h.Translate(mouseEvent(backend.MouseNone, 50, 50), fixedSurface{})
	if cmd.Op != OpHoverOff {
		t.Errorf("off canvas = %+v", cmd)
	}
}

func TestResizeEvent(t *testing.T) {
	h := NewHandler()
	cmd := h.Translate(backend.Event{Type: backend.EventResize, Width: 120, Height: 40}, fixedSurface{})
	if cmd.Op != OpResize || cmd.X != 120 || cmd.Y != 40 {
		t.Errorf("resize = %+v", cmd)
	}
}
