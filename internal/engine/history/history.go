// Package history provides the bounded undo/redo engine for canvas edits.
//
// Edits are recorded as CellMutations (a position with its before and after
// cell) and grouped into Actions, the atomic undo unit. A drag gesture is
// batched into one Action via BeginStroke/PushMutation/EndStroke; mutations
// pushed outside a stroke commit immediately as singletons.
package history

import (
	"sync"

	"github.com/dshills/pixelstorm/internal/engine/cell"
	"github.com/dshills/pixelstorm/internal/engine/grid"
)

// MaxEntries is the undo stack capacity. The oldest action is discarded when
// a commit exceeds it.
const MaxEntries = 256

// CellMutation records one cell's before/after state. Old must reflect the
// grid's actual value at commit time; callers applying symmetry-expanded
// mutations re-read it from the live grid first.
type CellMutation struct {
	X, Y int
	Old  cell.Cell
	New  cell.Cell
}

// Action is an ordered list of mutations applied and reverted atomically.
type Action struct {
	Mutations []CellMutation
}

// History manages the undo and redo stacks and the pending stroke buffer.
type History struct {
	mu sync.Mutex

	undoStack []Action
	redoStack []Action
	pending   []CellMutation
	inStroke  bool
}

// New creates an empty history.
func New() *History {
	return &History{}
}

// BeginStroke opens the pending buffer for a drag gesture, discarding any
// prior unflushed buffer.
func (h *History) BeginStroke() {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.pending = nil
	h.inStroke = true
}

// PushMutation appends to the open stroke, or commits immediately as a
// singleton action when no stroke is active.
func (h *History) PushMutation(m CellMutation) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.inStroke {
		h.pending = append(h.pending, m)
		return
	}
	h.commitLocked(Action{Mutations: []CellMutation{m}})
}

// EndStroke closes the pending buffer, committing it as one action if it is
// non-empty.
func (h *History) EndStroke() {
	h.mu.Lock()
	defer h.mu.Unlock()

	if !h.inStroke {
		return
	}
	h.inStroke = false
	if len(h.pending) > 0 {
		h.commitLocked(Action{Mutations: h.pending})
	}
	h.pending = nil
}

// Commit pushes an action onto the undo stack. Empty actions are ignored.
// Any committed action invalidates the redo stack.
func (h *History) Commit(a Action) {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.commitLocked(a)
}

func (h *History) commitLocked(a Action) {
	if len(a.Mutations) == 0 {
		return
	}
	h.redoStack = nil
	h.undoStack = append(h.undoStack, a)
	if len(h.undoStack) > MaxEntries {
		excess := len(h.undoStack) - MaxEntries
		h.undoStack = h.undoStack[excess:]
	}
}

// Undo reverts the most recent action by applying Old values in reverse
// order. It reports whether an action existed.
func (h *History) Undo(g *grid.Grid) bool {
	h.mu.Lock()
	defer h.mu.Unlock()

	if len(h.undoStack) == 0 {
		return false
	}
	a := h.undoStack[len(h.undoStack)-1]
	h.undoStack = h.undoStack[:len(h.undoStack)-1]

	for i := len(a.Mutations) - 1; i >= 0; i-- {
		m := a.Mutations[i]
		g.Set(m.X, m.Y, m.Old)
	}
	h.redoStack = append(h.redoStack, a)
	return true
}

// Redo replays the most recently undone action by applying New values in
// forward order. It reports whether an action existed.
func (h *History) Redo(g *grid.Grid) bool {
	h.mu.Lock()
	defer h.mu.Unlock()

	if len(h.redoStack) == 0 {
		return false
	}
	a := h.redoStack[len(h.redoStack)-1]
	h.redoStack = h.redoStack[:len(h.redoStack)-1]

	for _, m := range a.Mutations {
		g.Set(m.X, m.Y, m.New)
	}
	h.undoStack = append(h.undoStack, a)
	return true
}

// CanUndo reports whether an undoable action exists.
func (h *History) CanUndo() bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.undoStack) > 0
}

// CanRedo reports whether a redoable action exists.
func (h *History) CanRedo() bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.redoStack) > 0
}

// StrokeActive reports whether a pending stroke buffer is open.
func (h *History) StrokeActive() bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.inStroke
}

// Clear empties both stacks and the pending buffer. Called whenever the
// grid is replaced wholesale.
func (h *History) Clear() {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.undoStack = nil
	h.redoStack = nil
	h.pending = nil
	h.inStroke = false
}
