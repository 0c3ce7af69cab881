package app

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/dshills/pixelstorm/internal/engine/cell"
	"github.com/dshills/pixelstorm/internal/engine/grid"
	"github.com/dshills/pixelstorm/internal/palette"
	"github.com/dshills/pixelstorm/internal/project"
	"github.com/dshills/pixelstorm/internal/renderer/backend"
)

func writeTestConfig(t *testing.T, root string) string {
	t.Helper()
	for _, d := range []string{"projects", "palettes", "brushes"} {
		if err := os.MkdirAll(filepath.Join(root, d), 0o755); err != nil {
			t.Fatal(err)
		}
	}
	cfg := fmt.Sprintf(`[canvas]
width = 16
height = 16

[autosave]
enabled = false
interval_seconds = 60

[directories]
projects = %q
palettes = %q
brushes = %q
`,
		filepath.Join(root, "projects"),
		filepath.Join(root, "palettes"),
		filepath.Join(root, "brushes"))
	path := filepath.Join(root, "config.toml")
	if err := os.WriteFile(path, []byte(cfg), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func newTestApp(t *testing.T) *App {
	t.Helper()
	root := t.TempDir()
	a, err := New(Options{
		ConfigPath: writeTestConfig(t, root),
		Backend:    backend.NewNull(80, 30),
	})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return a
}

func key(k backend.Key) backend.Event {
	return backend.Event{Type: backend.EventKey, Key: k}
}

func runeKey(r rune) backend.Event {
	return backend.Event{Type: backend.EventKey, Key: backend.KeyRune, Rune: r}
}

func mouse(b backend.MouseButton, x, y int) backend.Event {
	return backend.Event{Type: backend.EventMouse, MouseButton: b, MouseX: x, MouseY: y}
}

// send drives one event through the app under its lock, as the loop would.
func send(a *App, ev backend.Event) {
	a.mu.Lock()
	a.handleEvent(ev)
	a.mu.Unlock()
}

func typeText(a *App, s string) {
	for _, r := range s {
		send(a, runeKey(r))
	}
}

func TestMouseStrokeMarksDirty(t *testing.T) {
	a := newTestApp(t)

	// Canvas starts at screen (1,1); a press, drag, release is one stroke.
	send(a, mouse(backend.MouseLeft, 1, 1))
	send(a, mouse(backend.MouseLeft, 3, 1))
	send(a, mouse(backend.MouseNone, 3, 1))

	if !a.Editor().Dirty() {
		t.Fatal("editor not dirty after stroke")
	}
	c, _ := a.Editor().Grid().Get(0, 0)
	if c.Ch != cell.Full {
		t.Errorf("cell (0,0) = %c", c.Ch)
	}
	c, _ = a.Editor().Grid().Get(1, 0)
	if c.Ch != cell.Full {
		t.Errorf("cell (1,0) = %c", c.Ch)
	}

	// One stroke, one undo.
	send(a, key(backend.KeyCtrlZ))
	c, _ = a.Editor().Grid().Get(0, 0)
	if c.Ch != cell.Empty {
		t.Errorf("cell after undo = %c", c.Ch)
	}
}

func TestQuickColorSelectsFromStrip(t *testing.T) {
	a := newTestApp(t)
	send(a, runeKey('3'))
	want := cell.Color{Rgb: palette.Default[2], Valid: true}
	if got := a.Editor().Fg(); got != want {
		t.Errorf("fg = %+v, want %+v", got, want)
	}
}

func TestToolKeysSwitchTool(t *testing.T) {
	a := newTestApp(t)
	send(a, runeKey('f'))
	if got := a.Editor().Tool().Name(); got != "Fill" {
		t.Errorf("tool = %s", got)
	}
}

func TestQuitPromptsWhenDirty(t *testing.T) {
	a := newTestApp(t)
	a.mu.Lock()
	a.running = true
	a.mu.Unlock()

	send(a, mouse(backend.MouseLeft, 1, 1))
	send(a, mouse(backend.MouseNone, 1, 1))

	send(a, runeKey('q'))
	if a.Mode() != ModeQuitting {
		t.Fatalf("mode = %d, want quitting", a.Mode())
	}

	send(a, runeKey('n'))
	if a.Mode() != ModeNormal {
		t.Fatalf("mode after decline = %d", a.Mode())
	}

	send(a, runeKey('q'))
	send(a, runeKey('y'))
	a.mu.Lock()
	running := a.running
	a.mu.Unlock()
	if running {
		t.Fatal("still running after confirmed quit")
	}
}

func TestSaveAsWritesProjectFile(t *testing.T) {
	a := newTestApp(t)

	send(a, mouse(backend.MouseLeft, 1, 1))
	send(a, mouse(backend.MouseNone, 1, 1))

	send(a, key(backend.KeyCtrlS))
	if a.Mode() != ModeSaveAs {
		t.Fatalf("mode = %d, want save-as", a.Mode())
	}
	typeText(a, "ship")
	send(a, key(backend.KeyEnter))

	path := filepath.Join(a.Config().Dirs.Projects, "ship.pxs")
	if _, err := os.Stat(path); err != nil {
		t.Fatalf("project file: %v", err)
	}
	if a.Editor().Dirty() {
		t.Error("still dirty after save")
	}

	// Second save goes straight to disk, no prompt.
	send(a, mouse(backend.MouseLeft, 5, 1))
	send(a, mouse(backend.MouseNone, 5, 1))
	send(a, key(backend.KeyCtrlS))
	if a.Mode() != ModeNormal {
		t.Errorf("mode after re-save = %d", a.Mode())
	}
	if a.Editor().Dirty() {
		t.Error("dirty after re-save")
	}
}

func TestOpenDialogLoadsProject(t *testing.T) {
	a := newTestApp(t)

	g := grid.NewWithSize(16, 16)
	g.Set(2, 2, cell.Cell{Ch: cell.Full, Fg: cell.Color{Rgb: cell.Rgb{R: 255}, Valid: true}})
	p := project.New("boat", g, cell.Color{}, 0)
	if err := project.SaveFile(p, filepath.Join(a.Config().Dirs.Projects, "boat.pxs")); err != nil {
		t.Fatal(err)
	}

	send(a, key(backend.KeyCtrlO))
	if a.Mode() != ModeFileDialog {
		t.Fatalf("mode = %d, want file dialog", a.Mode())
	}
	send(a, key(backend.KeyEnter))

	if a.Mode() != ModeNormal {
		t.Fatalf("mode after open = %d", a.Mode())
	}
	c, _ := a.Editor().Grid().Get(2, 2)
	if c.Ch != cell.Full {
		t.Errorf("loaded cell = %c", c.Ch)
	}
	if a.Editor().Dirty() {
		t.Error("dirty right after load")
	}
}

func TestNewCanvasDialogResizes(t *testing.T) {
	a := newTestApp(t)

	send(a, key(backend.KeyCtrlN))
	if a.Mode() != ModeNewCanvas {
		t.Fatalf("mode = %d", a.Mode())
	}
	send(a, key(backend.KeyRight)) // width 16 -> 24
	send(a, key(backend.KeyDown))  // switch to height
	send(a, key(backend.KeyLeft))  // height 16 -> 8
	send(a, key(backend.KeyEnter))

	g := a.Editor().Grid()
	if g.Width() != 24 || g.Height() != 8 {
		t.Errorf("canvas = %dx%d, want 24x8", g.Width(), g.Height())
	}
}

func TestExportPlainTextFlow(t *testing.T) {
	a := newTestApp(t)

	send(a, mouse(backend.MouseLeft, 1, 1))
	send(a, mouse(backend.MouseNone, 1, 1))

	send(a, key(backend.KeyCtrlE))
	if a.Mode() != ModeExportDialog {
		t.Fatalf("mode = %d", a.Mode())
	}
	send(a, key(backend.KeyEnter)) // plain text
	if a.Mode() != ModeExportFile {
		t.Fatalf("mode = %d", a.Mode())
	}
	send(a, key(backend.KeyEnter)) // accept suggested name

	path := filepath.Join(a.Config().Dirs.Projects, "untitled.txt")
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("export file: %v", err)
	}
	if !strings.Contains(string(data), string(cell.Full)) {
		t.Errorf("export = %q", data)
	}
}

func TestPaletteCreateLoadAdd(t *testing.T) {
	a := newTestApp(t)

	send(a, runeKey('c'))
	if a.Mode() != ModePaletteDialog {
		t.Fatalf("mode = %d", a.Mode())
	}
	send(a, runeKey('n'))
	typeText(a, "warm")
	send(a, key(backend.KeyEnter))

	if a.customName != "warm" {
		t.Fatalf("custom palette = %q", a.customName)
	}
	if len(a.strip) != 1 {
		t.Fatalf("strip length = %d", len(a.strip))
	}

	// Pick a different color through the sliders (the default fg is gray,
	// so bump saturation), then add it.
	send(a, runeKey('s'))
	send(a, key(backend.KeyDown))
	send(a, key(backend.KeyRight))
	send(a, key(backend.KeyEnter))
	send(a, runeKey('a'))
	if len(a.custom.Colors) != 2 {
		t.Errorf("palette colors = %d, want 2", len(a.custom.Colors))
	}

	names, err := a.palettes.List()
	if err != nil || len(names) != 1 || names[0] != "warm" {
		t.Errorf("stored palettes = %v (%v)", names, err)
	}
}

func TestPaletteDialogHueGroups(t *testing.T) {
	a := newTestApp(t)

	send(a, runeKey('c'))
	send(a, runeKey('4')) // Greens
	if a.Mode() != ModeNormal {
		t.Fatalf("mode = %d", a.Mode())
	}
	groups := palette.HueGroups()
	if len(a.strip) != len(groups[3].Colors) {
		t.Errorf("strip = %d colors, want %d", len(a.strip), len(groups[3].Colors))
	}
	if got := a.Editor().Fg(); got != (cell.Color{Rgb: groups[3].Colors[0], Valid: true}) {
		t.Errorf("fg = %+v", got)
	}

	// 0 restores the curated default.
	send(a, runeKey('c'))
	send(a, runeKey('0'))
	if len(a.strip) != len(palette.Default) {
		t.Errorf("strip = %d colors, want default %d", len(a.strip), len(palette.Default))
	}
}

func TestRecoveryPromptAndAccept(t *testing.T) {
	root := t.TempDir()
	cfgPath := writeTestConfig(t, root)

	g := grid.NewWithSize(16, 16)
	g.Set(4, 4, cell.Cell{Ch: cell.ShadeDark, Fg: cell.Color{Rgb: cell.Rgb{G: 200}, Valid: true}})
	p := project.New("wreck", g, cell.Color{}, 0)
	autosave := filepath.Join(root, "projects", "wreck.pxs.autosave")
	if err := project.WriteAutosave(p, autosave); err != nil {
		t.Fatal(err)
	}

	a, err := New(Options{ConfigPath: cfgPath, Backend: backend.NewNull(80, 30)})
	if err != nil {
		t.Fatal(err)
	}
	if a.Mode() != ModeRecovery {
		t.Fatalf("mode = %d, want recovery", a.Mode())
	}

	send(a, runeKey('y'))
	if a.Mode() != ModeNormal {
		t.Fatalf("mode after recover = %d", a.Mode())
	}
	c, _ := a.Editor().Grid().Get(4, 4)
	if c.Ch != cell.ShadeDark {
		t.Errorf("recovered cell = %c", c.Ch)
	}
	if !a.Editor().Dirty() {
		t.Error("recovered session should be dirty")
	}
	if a.projectPath != filepath.Join(root, "projects", "wreck.pxs") {
		t.Errorf("project path = %q", a.projectPath)
	}
}

func TestRecoveryDecline(t *testing.T) {
	root := t.TempDir()
	cfgPath := writeTestConfig(t, root)

	p := project.New("junk", grid.NewWithSize(16, 16), cell.Color{}, 0)
	autosave := filepath.Join(root, "projects", "junk.pxs.autosave")
	if err := project.WriteAutosave(p, autosave); err != nil {
		t.Fatal(err)
	}

	a, err := New(Options{ConfigPath: cfgPath, Backend: backend.NewNull(80, 30)})
	if err != nil {
		t.Fatal(err)
	}
	send(a, runeKey('n'))
	if a.Mode() != ModeNormal {
		t.Fatalf("mode = %d", a.Mode())
	}
	// Declining keeps the snapshot on disk.
	if _, err := os.Stat(autosave); err != nil {
		t.Errorf("autosave removed on decline: %v", err)
	}
}

func TestBrushStampsThroughHistory(t *testing.T) {
	a := newTestApp(t)

	brush := `
function stamp(x, y, w, h)
  return {
    {x = 0, y = 0, fg = "#FF0000"},
    {x = 1, y = 0, fg = "#FF0000"},
  }
end
`
	if err := os.WriteFile(filepath.Join(a.Config().Dirs.Brushes, "pair.lua"), []byte(brush), 0o644); err != nil {
		t.Fatal(err)
	}

	send(a, runeKey('g'))
	if a.Mode() != ModeBrushDialog {
		t.Fatalf("mode = %d", a.Mode())
	}
	send(a, key(backend.KeyEnter))

	c, _ := a.Editor().Grid().Get(0, 0)
	if c.Ch != cell.Full {
		t.Fatalf("stamped cell = %c", c.Ch)
	}

	// The whole stamp is one undo unit.
	send(a, key(backend.KeyCtrlZ))
	c, _ = a.Editor().Grid().Get(0, 0)
	if c.Ch != cell.Empty {
		t.Errorf("cell after undo = %c", c.Ch)
	}
	c, _ = a.Editor().Grid().Get(1, 0)
	if c.Ch != cell.Empty {
		t.Errorf("second cell after undo = %c", c.Ch)
	}
}

func TestSymmetryToggleStatus(t *testing.T) {
	a := newTestApp(t)
	send(a, runeKey('h'))
	if got := a.Status(); !strings.Contains(got, "Symmetry") {
		t.Errorf("status = %q", got)
	}
	if !a.Editor().Symmetry().HasHorizontal() {
		t.Error("horizontal symmetry not set")
	}
}

func TestHelpDismissesOnAnyKey(t *testing.T) {
	a := newTestApp(t)
	send(a, runeKey('?'))
	if a.Mode() != ModeHelp {
		t.Fatalf("mode = %d", a.Mode())
	}
	send(a, runeKey('x'))
	if a.Mode() != ModeNormal {
		t.Errorf("mode = %d", a.Mode())
	}
}

func TestResizeForcesFullRepaint(t *testing.T) {
	a := newTestApp(t)
	nb := a.backend.(*backend.Null)
	send(a, backend.Event{Type: backend.EventResize, Width: 120, Height: 40})
	if nb.SyncCount() != 1 {
		t.Errorf("sync count = %d, want 1", nb.SyncCount())
	}
}
