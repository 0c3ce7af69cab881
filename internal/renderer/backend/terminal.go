package backend

import (
	"sync"

	"github.com/gdamore/tcell/v2"

	"github.com/dshills/pixelstorm/internal/engine/cell"
)

// Terminal implements Backend on a real terminal via tcell.
type Terminal struct {
	mu     sync.Mutex
	screen tcell.Screen
}

// NewTerminal creates a terminal backend.
func NewTerminal() (*Terminal, error) {
	screen, err := tcell.NewScreen()
	if err != nil {
		return nil, err
	}
	return &Terminal{screen: screen}, nil
}

func (t *Terminal) Init() error {
	t.mu.Lock()
	defer t.mu.Unlock()
	if err := t.screen.Init(); err != nil {
		return err
	}
	t.screen.EnableMouse()
	t.screen.HideCursor()
	return nil
}

func (t *Terminal) Shutdown() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.screen.Fini()
}

func (t *Terminal) Size() (int, int) {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.screen.Size()
}

func (t *Terminal) SetCell(x, y int, sc ScreenCell) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.screen.SetContent(x, y, sc.Ch, nil, convertStyle(sc))
}

func (t *Terminal) Clear() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.screen.Clear()
}

func (t *Terminal) Show() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.screen.Show()
}

func (t *Terminal) Sync() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.screen.Sync()
}

func (t *Terminal) HideCursor() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.screen.HideCursor()
}

func (t *Terminal) PollEvent() Event {
	return convertEvent(t.screen.PollEvent())
}

func (t *Terminal) PostEvent(ev Event) {
	var tev tcell.Event
	if ev.Type == EventKey {
		tev = tcell.NewEventKey(convertToTcellKey(ev.Key), ev.Rune, convertToTcellMod(ev.Mod))
	} else {
		// Non-key events exist only to unblock PollEvent; an interrupt
		// round-trips to EventNone on the other side.
		tev = tcell.NewEventInterrupt(nil)
	}
	_ = t.screen.PostEvent(tev) // queue may be full
}

func (t *Terminal) HasTrueColor() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.screen.Colors() > 256
}

func (t *Terminal) EnableMouse() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.screen.EnableMouse()
}

func (t *Terminal) Beep() {
	t.mu.Lock()
	defer t.mu.Unlock()
	_ = t.screen.Beep() // best effort
}

func convertStyle(sc ScreenCell) tcell.Style {
	style := tcell.StyleDefault
	if sc.Fg.Valid {
		style = style.Foreground(rgbColor(sc.Fg))
	}
	if sc.Bg.Valid {
		style = style.Background(rgbColor(sc.Bg))
	}
	if sc.Bold {
		style = style.Bold(true)
	}
	if sc.Dim {
		style = style.Dim(true)
	}
	if sc.Reverse {
		style = style.Reverse(true)
	}
	return style
}

func rgbColor(c cell.Color) tcell.Color {
	return tcell.NewRGBColor(int32(c.R), int32(c.G), int32(c.B))
}

func convertEvent(ev tcell.Event) Event {
	switch e := ev.(type) {
	case *tcell.EventKey:
		return Event{
			Type: EventKey,
			Key:  convertKey(e.Key()),
			Rune: e.Rune(),
			Mod:  convertMod(e.Modifiers()),
		}
	case *tcell.EventMouse:
		x, y := e.Position()
		return Event{
			Type:        EventMouse,
			MouseX:      x,
			MouseY:      y,
			MouseButton: convertMouseButton(e.Buttons()),
			Mod:         convertMod(e.Modifiers()),
		}
	case *tcell.EventResize:
		w, h := e.Size()
		return Event{Type: EventResize, Width: w, Height: h}
	case *tcell.EventInterrupt:
		// Posted by PostEvent to wake a blocked PollEvent.
		return Event{Type: EventNone}
	default:
		return Event{Type: EventNone}
	}
}

func convertKey(k tcell.Key) Key {
	switch k {
	case tcell.KeyRune:
		return KeyRune
	case tcell.KeyEscape:
		return KeyEscape
	case tcell.KeyEnter:
		return KeyEnter
	case tcell.KeyTab:
		return KeyTab
	case tcell.KeyBackspace, tcell.KeyBackspace2:
		return KeyBackspace
	case tcell.KeyDelete:
		return KeyDelete
	case tcell.KeyUp:
		return KeyUp
	case tcell.KeyDown:
		return KeyDown
	case tcell.KeyLeft:
		return KeyLeft
	case tcell.KeyRight:
		return KeyRight
	case tcell.KeyCtrlC:
		return KeyCtrlC
	case tcell.KeyCtrlS:
		return KeyCtrlS
	case tcell.KeyCtrlZ:
		return KeyCtrlZ
	case tcell.KeyCtrlY:
		return KeyCtrlY
	case tcell.KeyCtrlO:
		return KeyCtrlO
	case tcell.KeyCtrlN:
		return KeyCtrlN
	case tcell.KeyCtrlE:
		return KeyCtrlE
	case tcell.KeyCtrlT:
		return KeyCtrlT
	default:
		return KeyNone
	}
}

func convertToTcellKey(k Key) tcell.Key {
	switch k {
	case KeyEscape:
		return tcell.KeyEscape
	case KeyEnter:
		return tcell.KeyEnter
	case KeyTab:
		return tcell.KeyTab
	case KeyBackspace:
		return tcell.KeyBackspace2
	case KeyDelete:
		return tcell.KeyDelete
	case KeyUp:
		return tcell.KeyUp
	case KeyDown:
		return tcell.KeyDown
	case KeyLeft:
		return tcell.KeyLeft
	case KeyRight:
		return tcell.KeyRight
	case KeyCtrlC:
		return tcell.KeyCtrlC
	case KeyCtrlS:
		return tcell.KeyCtrlS
	case KeyCtrlZ:
		return tcell.KeyCtrlZ
	case KeyCtrlY:
		return tcell.KeyCtrlY
	case KeyCtrlO:
		return tcell.KeyCtrlO
	case KeyCtrlN:
		return tcell.KeyCtrlN
	case KeyCtrlE:
		return tcell.KeyCtrlE
	case KeyCtrlT:
		return tcell.KeyCtrlT
	default:
		return tcell.KeyRune
	}
}

func convertMod(m tcell.ModMask) ModMask {
	var out ModMask
	if m&tcell.ModShift != 0 {
		out |= ModShift
	}
	if m&tcell.ModCtrl != 0 {
		out |= ModCtrl
	}
	if m&tcell.ModAlt != 0 {
		out |= ModAlt
	}
	return out
}

func convertToTcellMod(m ModMask) tcell.ModMask {
	var out tcell.ModMask
	if m&ModShift != 0 {
		out |= tcell.ModShift
	}
	if m&ModCtrl != 0 {
		out |= tcell.ModCtrl
	}
	if m&ModAlt != 0 {
		out |= tcell.ModAlt
	}
	return out
}

func convertMouseButton(b tcell.ButtonMask) MouseButton {
	switch {
	case b&tcell.Button1 != 0:
		return MouseLeft
	case b&tcell.Button2 != 0:
		return MouseMiddle
	case b&tcell.Button3 != 0:
		return MouseRight
	case b&tcell.WheelUp != 0:
		return MouseWheelUp
	case b&tcell.WheelDown != 0:
		return MouseWheelDown
	default:
		return MouseNone
	}
}

var _ Backend = (*Terminal)(nil)
