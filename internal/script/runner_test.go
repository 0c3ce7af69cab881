package script

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/dshills/pixelstorm/internal/engine/cell"
)

func TestRunSourceBasicBrush(t *testing.T) {
	src := `
function stamp(x, y, w, h)
	return {
		{x = x, y = y, glyph = "█", fg = "#ff0000"},
		{x = x + 1, y = y, glyph = "▀", fg = "#00ff00", bg = "#0000ff"},
	}
end`
	points, err := RunSource(context.Background(), src, 0, 3, 4, 32, 32)
	if err != nil {
		t.Fatal(err)
	}
	if len(points) != 2 {
		t.Fatalf("len(points) = %d, want 2", len(points))
	}
	want := Point{X: 3, Y: 4, Ch: cell.Full, Fg: cell.Color{Rgb: cell.Rgb{R: 255}, Valid: true}}
	if points[0] != want {
		t.Errorf("points[0] = %+v, want %+v", points[0], want)
	}
	if points[1].Ch != cell.UpperHalf || !points[1].Bg.Valid {
		t.Errorf("points[1] = %+v", points[1])
	}
}

func TestRunSourceDefaultGlyph(t *testing.T) {
	src := `function stamp(x, y, w, h) return {{x = 0, y = 0, fg = "#ffffff"}} end`
	points, err := RunSource(context.Background(), src, 0, 0, 0, 8, 8)
	if err != nil {
		t.Fatal(err)
	}
	if points[0].Ch != cell.Full {
		t.Errorf("default glyph = %q, want full block", points[0].Ch)
	}
}

func TestRunSourceUsesCanvasBounds(t *testing.T) {
	src := `
function stamp(x, y, w, h)
	local pts = {}
	for i = 0, w - 1 do
		pts[#pts + 1] = {x = i, y = h - 1, fg = "#102030"}
	end
	return pts
end`
	points, err := RunSource(context.Background(), src, 0, 0, 0, 16, 9)
	if err != nil {
		t.Fatal(err)
	}
	if len(points) != 16 {
		t.Fatalf("len(points) = %d, want 16", len(points))
	}
	if points[5].Y != 8 {
		t.Errorf("y = %d, want 8", points[5].Y)
	}
}

func TestRunSourceMissingStamp(t *testing.T) {
	if _, err := RunSource(context.Background(), `local x = 1`, 0, 0, 0, 8, 8); !errors.Is(err, ErrNoStamp) {
		t.Errorf("err = %v, want ErrNoStamp", err)
	}
}

func TestRunSourceBadResults(t *testing.T) {
	cases := []struct {
		name string
		src  string
	}{
		{"non-table return", `function stamp(x, y, w, h) return 42 end`},
		{"point missing coords", `function stamp(x, y, w, h) return {{glyph = "█"}} end`},
		{"bad glyph", `function stamp(x, y, w, h) return {{x = 0, y = 0, glyph = "Q"}} end`},
		{"bad color", `function stamp(x, y, w, h) return {{x = 0, y = 0, fg = "red"}} end`},
		{"non-table point", `function stamp(x, y, w, h) return {1, 2} end`},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := RunSource(context.Background(), tc.src, 0, 0, 0, 8, 8); !errors.Is(err, ErrBadResult) {
				t.Errorf("err = %v, want ErrBadResult", err)
			}
		})
	}
}

func TestRunSourceBudgetStopsRunawayBrush(t *testing.T) {
	src := `
function stamp(x, y, w, h)
	while true do end
end`
	start := time.Now()
	_, err := RunSource(context.Background(), src, 50*time.Millisecond, 0, 0, 8, 8)
	if !errors.Is(err, ErrBudgetExceeded) {
		t.Fatalf("err = %v, want ErrBudgetExceeded", err)
	}
	if time.Since(start) > 5*time.Second {
		t.Error("runaway brush was not stopped promptly")
	}
}

func TestSandboxBlocksFilesystem(t *testing.T) {
	cases := []struct {
		name string
		src  string
	}{
		{"io", `function stamp(x, y, w, h) io.open("/etc/passwd") return {} end`},
		{"os", `function stamp(x, y, w, h) os.execute("ls") return {} end`},
		{"dofile", `function stamp(x, y, w, h) dofile("x.lua") return {} end`},
		{"require", `function stamp(x, y, w, h) require("io") return {} end`},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := RunSource(context.Background(), tc.src, 0, 0, 0, 8, 8); err == nil {
				t.Error("expected sandbox error")
			}
		})
	}
}

func TestRunnerListAndRun(t *testing.T) {
	dir := t.TempDir()
	brush := `function stamp(x, y, w, h) return {{x = x, y = y, fg = "#abcdef"}} end`
	if err := os.WriteFile(filepath.Join(dir, "dot"+Ext), []byte(brush), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}

	r := NewRunner(dir, 0)
	names, err := r.List()
	if err != nil {
		t.Fatal(err)
	}
	if len(names) != 1 || names[0] != "dot" {
		t.Errorf("names = %v", names)
	}

	points, err := r.Run(context.Background(), "dot", 2, 3, 32, 32)
	if err != nil {
		t.Fatal(err)
	}
	if len(points) != 1 || points[0].X != 2 || points[0].Y != 3 {
		t.Errorf("points = %+v", points)
	}

	if _, err := r.Run(context.Background(), "missing", 0, 0, 8, 8); !errors.Is(err, ErrNotFound) {
		t.Errorf("err = %v, want ErrNotFound", err)
	}
}

func TestRunnerListMissingDir(t *testing.T) {
	r := NewRunner(filepath.Join(t.TempDir(), "nope"), 0)
	names, err := r.List()
	if err != nil {
		t.Fatal(err)
	}
	if names != nil {
		t.Errorf("names = %v, want nil", names)
	}
}
