package script

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	lua "github.com/yuin/gopher-lua"

	"github.com/dshills/pixelstorm/internal/engine/cell"
	"github.com/dshills/pixelstorm/internal/engine/color"
)

// Ext is the brush file extension.
const Ext = ".lua"

// DefaultBudget bounds a single stamp() call.
const DefaultBudget = 250 * time.Millisecond

// Point is one cell emitted by a brush.
type Point struct {
	X, Y int
	Ch   rune
	Fg   cell.Color
	Bg   cell.Color
}

// Runner loads and executes brush files from one directory. Each run uses a
// fresh Lua state; gopher-lua states are not goroutine-safe and brushes must
// not leak globals into each other.
type Runner struct {
	dir    string
	budget time.Duration
}

// NewRunner creates a runner for the brushes directory. A non-positive
// budget uses the default.
func NewRunner(dir string, budget time.Duration) *Runner {
	if budget <= 0 {
		budget = DefaultBudget
	}
	return &Runner{dir: dir, budget: budget}
}

// List returns brush names (without extension), sorted.
func (r *Runner) List() ([]string, error) {
	entries, err := os.ReadDir(r.dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("list brushes: %w", err)
	}
	var names []string
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), Ext) {
			continue
		}
		names = append(names, strings.TrimSuffix(e.Name(), Ext))
	}
	sort.Strings(names)
	return names, nil
}

// Run executes the named brush's stamp(x, y, w, h) and returns its points.
func (r *Runner) Run(ctx context.Context, name string, x, y, w, h int) ([]Point, error) {
	src, err := os.ReadFile(filepath.Join(r.dir, name+Ext))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("read brush: %w", err)
	}
	return RunSource(ctx, string(src), r.budget, x, y, w, h)
}

// RunSource executes brush source directly. Used by Run and by tests.
func RunSource(ctx context.Context, src string, budget time.Duration, x, y, w, h int) ([]Point, error) {
	if budget <= 0 {
		budget = DefaultBudget
	}
	L := newSandboxedState()
	defer L.Close()

	ctx, cancel := context.WithTimeout(ctx, budget)
	defer cancel()
	L.SetContext(ctx)

	if err := L.DoString(src); err != nil {
		return nil, budgetErr(ctx, fmt.Errorf("brush load: %w", err))
	}

	stamp := L.GetGlobal("stamp")
	if stamp.Type() != lua.LTFunction {
		return nil, ErrNoStamp
	}

	L.Push(stamp)
	L.Push(lua.LNumber(x))
	L.Push(lua.LNumber(y))
	L.Push(lua.LNumber(w))
	L.Push(lua.LNumber(h))
	if err := L.PCall(4, 1, nil); err != nil {
		return nil, budgetErr(ctx, fmt.Errorf("brush stamp: %w", err))
	}

	ret := L.Get(-1)
	L.Pop(1)
	tbl, ok := ret.(*lua.LTable)
	if !ok {
		return nil, fmt.Errorf("%w: stamp returned %s", ErrBadResult, ret.Type())
	}
	return decodePoints(tbl)
}

// newSandboxedState opens only the pure computation libraries and strips the
// loaders that could reach the filesystem.
func newSandboxedState() *lua.LState {
	L := lua.NewState(lua.Options{SkipOpenLibs: true})
	for _, lib := range []struct {
		name string
		open lua.LGFunction
	}{
		{lua.BaseLibName, lua.OpenBase},
		{lua.TabLibName, lua.OpenTable},
		{lua.StringLibName, lua.OpenString},
		{lua.MathLibName, lua.OpenMath},
	} {
		L.Push(L.NewFunction(lib.open))
		L.Push(lua.LString(lib.name))
		L.Call(1, 0)
	}
	for _, name := range []string{"dofile", "loadfile", "load", "loadstring", "require", "print"} {
		L.SetGlobal(name, lua.LNil)
	}
	return L
}

func budgetErr(ctx context.Context, err error) error {
	if errors.Is(ctx.Err(), context.DeadlineExceeded) {
		return ErrBudgetExceeded
	}
	return err
}

func decodePoints(tbl *lua.LTable) ([]Point, error) {
	var points []Point
	var decodeErr error
	tbl.ForEach(func(_, v lua.LValue) {
		if decodeErr != nil {
			return
		}
		entry, ok := v.(*lua.LTable)
		if !ok {
			decodeErr = fmt.Errorf("%w: point is %s", ErrBadResult, v.Type())
			return
		}
		p, err := decodePoint(entry)
		if err != nil {
			decodeErr = err
			return
		}
		points = append(points, p)
	})
	if decodeErr != nil {
		return nil, decodeErr
	}
	return points, nil
}

func decodePoint(entry *lua.LTable) (Point, error) {
	px, okX := entry.RawGetString("x").(lua.LNumber)
	py, okY := entry.RawGetString("y").(lua.LNumber)
	if !okX || !okY {
		return Point{}, fmt.Errorf("%w: point missing x or y", ErrBadResult)
	}
	p := Point{X: int(px), Y: int(py), Ch: cell.Full}

	if g := entry.RawGetString("glyph"); g != lua.LNil {
		s, ok := g.(lua.LString)
		runes := []rune(string(s))
		if !ok || len(runes) != 1 || !cell.IsGlyph(runes[0]) {
			return Point{}, fmt.Errorf("%w: bad glyph %v", ErrBadResult, g)
		}
		p.Ch = runes[0]
	}

	fg, err := decodePointColor(entry, "fg")
	if err != nil {
		return Point{}, err
	}
	p.Fg = fg
	bg, err := decodePointColor(entry, "bg")
	if err != nil {
		return Point{}, err
	}
	p.Bg = bg
	return p, nil
}

func decodePointColor(entry *lua.LTable, field string) (cell.Color, error) {
	v := entry.RawGetString(field)
	if v == lua.LNil {
		return cell.Color{}, nil
	}
	s, ok := v.(lua.LString)
	if !ok {
		return cell.Color{}, fmt.Errorf("%w: %s is %s", ErrBadResult, field, v.Type())
	}
	rgb, err := color.ParseHex(string(s))
	if err != nil {
		return cell.Color{}, fmt.Errorf("%w: %s %q", ErrBadResult, field, s)
	}
	return cell.Color{Rgb: rgb, Valid: true}, nil
}
