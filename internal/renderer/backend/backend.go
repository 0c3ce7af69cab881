// Package backend provides the terminal abstraction for the renderer.
package backend

import "github.com/dshills/pixelstorm/internal/engine/cell"

// ScreenCell is one terminal cell as drawn. Transparent colors use the
// terminal defaults.
type ScreenCell struct {
	Ch      rune
	Fg      cell.Color
	Bg      cell.Color
	Bold    bool
	Dim     bool
	Reverse bool
}

// EmptyCell returns a blank screen cell.
func EmptyCell() ScreenCell {
	return ScreenCell{Ch: ' '}
}

// EventType identifies a terminal event.
type EventType int

const (
	EventNone EventType = iota
	EventKey
	EventMouse
	EventResize
)

// Key identifies special keys; printable input arrives as KeyRune.
type Key int

const (
	KeyNone Key = iota
	KeyRune
	KeyEscape
	KeyEnter
	KeyTab
	KeyBackspace
	KeyDelete
	KeyUp
	KeyDown
	KeyLeft
	KeyRight
	KeyCtrlC
	KeyCtrlS
	KeyCtrlZ
	KeyCtrlY
	KeyCtrlO
	KeyCtrlN
	KeyCtrlE
	KeyCtrlT
)

// ModMask is the modifier key state.
type ModMask int

const (
	ModNone  ModMask = 0
	ModShift ModMask = 1 << iota
	ModCtrl
	ModAlt
)

// Has reports whether the mask contains mod.
func (m ModMask) Has(mod ModMask) bool { return m&mod != 0 }

// MouseButton identifies the pressed button, or wheel motion.
type MouseButton int

const (
	MouseNone MouseButton = iota
	MouseLeft
	MouseMiddle
	MouseRight
	MouseWheelUp
	MouseWheelDown
)

// Event is one terminal event.
type Event struct {
	Type EventType

	Key  Key
	Rune rune
	Mod  ModMask

	MouseX, MouseY int
	MouseButton    MouseButton

	Width, Height int
}

// Backend is the display surface the renderer draws on.
type Backend interface {
	// Init prepares the backend. Must be called before any other method.
	Init() error

	// Shutdown restores the terminal state.
	Shutdown()

	// Size returns the terminal dimensions.
	Size() (width, height int)

	// SetCell draws one cell. Out-of-screen positions are ignored.
	SetCell(x, y int, sc ScreenCell)

	// Clear blanks the screen.
	Clear()

	// Show flushes buffered drawing to the display.
	Show()

	// Sync forces a full repaint on the next Show. Used after a resize,
	// when the terminal contents can no longer be trusted.
	Sync()

	// HideCursor hides the hardware cursor; the editor draws its own.
	HideCursor()

	// PollEvent blocks for the next event.
	PollEvent() Event

	// PostEvent injects a synthetic event, best effort.
	PostEvent(ev Event)

	// HasTrueColor reports 24-bit color support.
	HasTrueColor() bool

	// EnableMouse turns on mouse reporting.
	EnableMouse()

	// Beep signals an invalid action.
	Beep()
}

// Null is an in-memory backend for tests.
type Null struct {
	width, height int
	cells         [][]ScreenCell
	events        chan Event
	syncs         int
}

// NewNull creates a test backend with fixed dimensions.
func NewNull(width, height int) *Null {
	n := &Null{width: width, height: height, events: make(chan Event, 64)}
	n.reset()
	return n
}

func (n *Null) reset() {
	n.cells = make([][]ScreenCell, n.height)
	for y := range n.cells {
		n.cells[y] = make([]ScreenCell, n.width)
		for x := range n.cells[y] {
			n.cells[y][x] = EmptyCell()
		}
	}
}

func (n *Null) Init() error { return nil }

func (n *Null) Shutdown() {}

func (n *Null) Size() (int, int) { return n.width, n.height }

func (n *Null) SetCell(x, y int, sc ScreenCell) {
	if x >= 0 && x < n.width && y >= 0 && y < n.height {
		n.cells[y][x] = sc
	}
}

// Cell returns the drawn cell at (x, y) for assertions.
func (n *Null) Cell(x, y int) ScreenCell {
	if x >= 0 && x < n.width && y >= 0 && y < n.height {
		return n.cells[y][x]
	}
	return EmptyCell()
}

// Row returns the runes of row y as a string.
func (n *Null) Row(y int) string {
	if y < 0 || y >= n.height {
		return ""
	}
	runes := make([]rune, n.width)
	for x := range runes {
		runes[x] = n.cells[y][x].Ch
	}
	return string(runes)
}

func (n *Null) Clear()      { n.reset() }
func (n *Null) Show()       {}
func (n *Null) Sync()       { n.syncs++ }
func (n *Null) HideCursor() {}

// SyncCount reports how many full repaints were requested.
func (n *Null) SyncCount() int { return n.syncs }

func (n *Null) PollEvent() Event { return <-n.events }

func (n *Null) PostEvent(ev Event) {
	select {
	case n.events <- ev:
	default:
	}
}

func (n *Null) HasTrueColor() bool { return true }
func (n *Null) EnableMouse()       {}
func (n *Null) Beep()              {}

var _ Backend = (*Null)(nil)
