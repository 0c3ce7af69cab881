package project

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/tidwall/gjson"
	"github.com/tidwall/sjson"

	"github.com/dshills/pixelstorm/internal/engine/cell"
	"github.com/dshills/pixelstorm/internal/engine/color"
	"github.com/dshills/pixelstorm/internal/engine/grid"
	"github.com/dshills/pixelstorm/internal/engine/symmetry"
)

// CurrentVersion is the newest file format this release writes.
//
// v1 stored 16-color name strings, v2 stored xterm-256 indices, v3 stores
// hex RGB with a dynamic canvas. All three load; anything newer is rejected.
const CurrentVersion = 3

// Ext is the project file extension.
const Ext = ".pxs"

// Project is one saved drawing.
type Project struct {
	Version    int
	ID         string
	Name       string
	CreatedAt  time.Time
	ModifiedAt time.Time
	Color      cell.Color
	Symmetry   symmetry.Mode
	Grid       *grid.Grid
}

// New creates a current-version project around an existing canvas.
func New(name string, g *grid.Grid, active cell.Color, mode symmetry.Mode) *Project {
	now := time.Now().UTC().Truncate(time.Second)
	return &Project{
		Version:    CurrentVersion,
		ID:         uuid.NewString(),
		Name:       name,
		CreatedAt:  now,
		ModifiedAt: now,
		Color:      active,
		Symmetry:   mode,
		Grid:       g,
	}
}

// Encode serializes the project in the current format. Only non-empty cells
// are written.
func (p *Project) Encode() ([]byte, error) {
	out := "{}"
	var err error
	set := func(path string, v any) {
		if err != nil {
			return
		}
		out, err = sjson.Set(out, path, v)
	}

	set("version", CurrentVersion)
	set("id", p.ID)
	set("name", p.Name)
	set("created_at", p.CreatedAt.Format(time.RFC3339))
	set("modified_at", p.ModifiedAt.Format(time.RFC3339))
	if p.Color.Valid {
		set("color", p.Color.Rgb.String())
	}
	set("symmetry", p.Symmetry.String())
	set("canvas.width", p.Grid.Width())
	set("canvas.height", p.Grid.Height())

	cells := make([]map[string]any, 0)
	for y := 0; y < p.Grid.Height(); y++ {
		for x := 0; x < p.Grid.Width(); x++ {
			c, _ := p.Grid.Get(x, y)
			// Empty-glyph cells still carry visible state when a brush
			// stamped a background onto them, so only the pristine
			// default cell is elided.
			if c == cell.Default() {
				continue
			}
			m := map[string]any{"x": x, "y": y, "ch": string(c.Ch)}
			if c.Fg.Valid {
				m["fg"] = c.Fg.Rgb.String()
			}
			if c.Bg.Valid {
				m["bg"] = c.Bg.Rgb.String()
			}
			cells = append(cells, m)
		}
	}
	set("canvas.cells", cells)

	if err != nil {
		return nil, fmt.Errorf("encode project: %w", err)
	}
	return []byte(out), nil
}

// Decode parses a project file of any supported version.
func Decode(data []byte) (*Project, error) {
	if !gjson.ValidBytes(data) {
		return nil, ErrInvalidFile
	}
	doc := gjson.ParseBytes(data)

	version := doc.Get("version")
	if !version.Exists() {
		return nil, fmt.Errorf("%w: missing version", ErrInvalidFile)
	}
	v := int(version.Int())
	if v > CurrentVersion {
		return nil, fmt.Errorf("%w: v%d", ErrUnsupportedVersion, v)
	}

	canvas := doc.Get("canvas")
	if !canvas.Exists() {
		return nil, fmt.Errorf("%w: missing canvas", ErrInvalidFile)
	}

	p := &Project{
		Version: v,
		ID:      doc.Get("id").String(),
		Name:    doc.Get("name").String(),
	}
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	p.CreatedAt, _ = time.Parse(time.RFC3339, doc.Get("created_at").String())
	p.ModifiedAt, _ = time.Parse(time.RFC3339, doc.Get("modified_at").String())

	if c := doc.Get("color"); c.Exists() {
		rgb, err := decodeColor(c)
		if err != nil {
			return nil, err
		}
		p.Color = cell.Color{Rgb: rgb, Valid: true}
	}

	if m, ok := symmetry.ParseMode(doc.Get("symmetry").String()); ok {
		p.Symmetry = m
	}

	g := grid.NewWithSize(int(canvas.Get("width").Int()), int(canvas.Get("height").Int()))
	var cellErr error
	canvas.Get("cells").ForEach(func(_, entry gjson.Result) bool {
		x := int(entry.Get("x").Int())
		y := int(entry.Get("y").Int())
		c, err := decodeCell(entry)
		if err != nil {
			cellErr = err
			return false
		}
		g.Set(x, y, c)
		return true
	})
	if cellErr != nil {
		return nil, cellErr
	}
	p.Grid = g
	return p, nil
}

func decodeCell(entry gjson.Result) (cell.Cell, error) {
	ch, err := decodeGlyph(entry.Get("ch").String())
	if err != nil {
		return cell.Cell{}, err
	}
	c := cell.Cell{Ch: ch}
	if fg := entry.Get("fg"); fg.Exists() {
		rgb, err := decodeColor(fg)
		if err != nil {
			return cell.Cell{}, err
		}
		c.Fg = cell.Color{Rgb: rgb, Valid: true}
	}
	if bg := entry.Get("bg"); bg.Exists() {
		rgb, err := decodeColor(bg)
		if err != nil {
			return cell.Cell{}, err
		}
		c.Bg = cell.Color{Rgb: rgb, Valid: true}
	}
	return c, nil
}

// legacyGlyphs maps v1/v2 block variant names to runes.
var legacyGlyphs = map[string]rune{
	"Empty":     cell.Empty,
	"Full":      cell.Full,
	"UpperHalf": cell.UpperHalf,
	"LowerHalf": cell.LowerHalf,
	"LeftHalf":  cell.LeftHalf,
	"RightHalf": cell.RightHalf,
}

func decodeGlyph(s string) (rune, error) {
	if ch, ok := legacyGlyphs[s]; ok {
		return ch, nil
	}
	runes := []rune(s)
	if len(runes) == 1 && cell.IsGlyph(runes[0]) {
		return runes[0], nil
	}
	return 0, fmt.Errorf("%w: unknown glyph %q", ErrInvalidFile, s)
}

// decodeColor accepts the current hex form plus both legacy encodings:
// xterm-256 numeric indices (v2) and 16-color names (v1).
func decodeColor(v gjson.Result) (cell.Rgb, error) {
	switch v.Type {
	case gjson.Number:
		n := v.Int()
		if n < 0 || n > 255 {
			return cell.Rgb{}, fmt.Errorf("%w: color index %d out of range", ErrInvalidFile, n)
		}
		return color.IndexRGB(uint8(n)), nil
	case gjson.String:
		s := v.String()
		if idx, ok := color.NameIndex(s); ok {
			return color.IndexRGB(idx), nil
		}
		rgb, err := color.ParseHex(s)
		if err != nil {
			return cell.Rgb{}, fmt.Errorf("%w: color %q", ErrInvalidFile, s)
		}
		return rgb, nil
	default:
		return cell.Rgb{}, fmt.Errorf("%w: unsupported color value", ErrInvalidFile)
	}
}
