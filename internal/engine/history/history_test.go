package history

import (
	"testing"

	"github.com/dshills/pixelstorm/internal/engine/cell"
	"github.com/dshills/pixelstorm/internal/engine/grid"
)

func redCell() cell.Cell {
	return cell.Cell{Ch: cell.Full, Fg: cell.RGB(205, 0, 0)}
}

// mutate writes the new cell and records the mutation.
func mutate(g *grid.Grid, h *History, x, y int, c cell.Cell) {
	old, _ := g.Get(x, y)
	g.Set(x, y, c)
	h.PushMutation(CellMutation{X: x, Y: y, Old: old, New: c})
}

func TestUndoRedoSingle(t *testing.T) {
	g := grid.New()
	h := New()

	old, _ := g.Get(0, 0)
	mutate(g, h, 0, 0, redCell())

	if c, _ := g.Get(0, 0); c != redCell() {
		t.Fatal("mutation not applied")
	}
	if !h.Undo(g) {
		t.Fatal("Undo returned false")
	}
	if c, _ := g.Get(0, 0); c != old {
		t.Error("undo did not restore old value")
	}
	if !h.Redo(g) {
		t.Fatal("Redo returned false")
	}
	if c, _ := g.Get(0, 0); c != redCell() {
		t.Error("redo did not restore new value")
	}
}

func TestUndoRedoRoundTripExact(t *testing.T) {
	g := grid.New()
	h := New()

	h.BeginStroke()
	for x := 0; x < 8; x++ {
		mutate(g, h, x, 3, redCell())
	}
	h.EndStroke()

	h.Undo(g)
	h.Redo(g)
	for x := 0; x < 8; x++ {
		if c, _ := g.Get(x, 3); c != redCell() {
			t.Fatalf("cell (%d,3) = %+v after undo/redo round trip", x, c)
		}
	}
}

func TestStrokeBatching(t *testing.T) {
	g := grid.New()
	h := New()

	h.BeginStroke()
	if !h.StrokeActive() {
		t.Fatal("stroke should be active")
	}
	for x := 0; x < 5; x++ {
		mutate(g, h, x, 0, redCell())
	}
	h.EndStroke()
	if h.StrokeActive() {
		t.Fatal("stroke should be closed")
	}

	// One undo reverts all five cells.
	if !h.Undo(g) {
		t.Fatal("Undo returned false")
	}
	for x := 0; x < 5; x++ {
		if c, _ := g.Get(x, 0); c != cell.Default() {
			t.Errorf("cell (%d,0) not reverted", x)
		}
	}
	if h.Undo(g) {
		t.Error("second undo should find nothing")
	}
}

func TestEmptyStrokeCommitsNothing(t *testing.T) {
	h := New()

	h.BeginStroke()
	h.EndStroke()
	if h.CanUndo() {
		t.Error("empty stroke should not commit")
	}
}

func TestBeginStrokeDiscardsUnflushedBuffer(t *testing.T) {
	g := grid.New()
	h := New()

	h.BeginStroke()
	mutate(g, h, 0, 0, redCell())
	// Second BeginStroke without EndStroke drops the buffered mutation.
	h.BeginStroke()
	h.EndStroke()
	if h.CanUndo() {
		t.Error("discarded buffer should not have committed")
	}
}

func TestUndoAppliesInReverseOrder(t *testing.T) {
	g := grid.New()
	h := New()

	blue := cell.Cell{Ch: cell.Full, Fg: cell.RGB(0, 0, 205)}

	// Two mutations of the same cell in one stroke: undo must land on the
	// first mutation's Old, which only happens with reverse-order replay.
	h.BeginStroke()
	mutate(g, h, 2, 2, redCell())
	mutate(g, h, 2, 2, blue)
	h.EndStroke()

	h.Undo(g)
	if c, _ := g.Get(2, 2); c != cell.Default() {
		t.Errorf("cell = %+v after undo, want default", c)
	}
}

func TestNewActionClearsRedo(t *testing.T) {
	g := grid.New()
	h := New()

	mutate(g, h, 0, 0, redCell())
	h.Undo(g)
	if !h.CanRedo() {
		t.Fatal("redo should be available")
	}

	mutate(g, h, 1, 1, redCell())
	if h.CanRedo() {
		t.Error("new action should clear redo stack")
	}
}

func TestCommitEmptyActionIgnored(t *testing.T) {
	h := New()
	h.Commit(Action{})
	if h.CanUndo() {
		t.Error("empty action should not be committed")
	}
}

func TestCapacityLimit(t *testing.T) {
	g := grid.New()
	h := New()

	for i := 0; i < 300; i++ {
		mutate(g, h, i%32, 0, redCell())
	}

	count := 0
	for h.Undo(g) {
		count++
	}
	if count != MaxEntries {
		t.Errorf("undo count = %d, want exactly %d after overflow", count, MaxEntries)
	}
}

func TestClear(t *testing.T) {
	g := grid.New()
	h := New()

	mutate(g, h, 0, 0, redCell())
	h.Undo(g)
	h.BeginStroke()
	h.Clear()

	if h.CanUndo() || h.CanRedo() || h.StrokeActive() {
		t.Error("Clear should empty all state")
	}
}
