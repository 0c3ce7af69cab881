package palette

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/tidwall/gjson"
	"github.com/tidwall/sjson"

	"github.com/dshills/pixelstorm/internal/engine/cell"
	"github.com/dshills/pixelstorm/internal/engine/color"
)

// Ext is the custom palette file extension.
const Ext = ".palette"

// Custom is a user-defined palette.
type Custom struct {
	Name   string
	Colors []cell.Rgb
}

// Store manages .palette files in one directory.
type Store struct {
	dir string
}

// NewStore creates a store rooted at dir, creating it if needed.
func NewStore(dir string) (*Store, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create palette dir: %w", err)
	}
	return &Store{dir: dir}, nil
}

// Dir returns the store's directory.
func (s *Store) Dir() string { return s.dir }

// List returns the names of all stored palettes, sorted.
func (s *Store) List() ([]string, error) {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		return nil, fmt.Errorf("list palettes: %w", err)
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

// Load reads the named palette.
func (s *Store) Load(name string) (*Custom, error) {
	path, err := s.path(name)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("read palette: %w", err)
	}
	return Decode(data)
}

// Save writes the palette, overwriting any existing file of the same name.
func (s *Store) Save(p *Custom) error {
	path, err := s.path(p.Name)
	if err != nil {
		return err
	}
	data, err := Encode(p)
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write palette: %w", err)
	}
	return nil
}

// Rename changes a palette's name. Renaming onto an existing palette fails
// with ErrExists.
func (s *Store) Rename(oldName, newName string) error {
	oldPath, err := s.path(oldName)
	if err != nil {
		return err
	}
	newPath, err := s.path(newName)
	if err != nil {
		return err
	}
	if _, err := os.Stat(newPath); err == nil {
		return ErrExists
	}
	p, err := s.Load(oldName)
	if err != nil {
		return err
	}
	p.Name = newName
	data, err := Encode(p)
	if err != nil {
		return err
	}
	if err := os.WriteFile(newPath, data, 0o644); err != nil {
		return fmt.Errorf("write palette: %w", err)
	}
	return os.Remove(oldPath)
}

// Duplicate copies a palette under "<name> (Copy)".
func (s *Store) Duplicate(name string) (*Custom, error) {
	p, err := s.Load(name)
	if err != nil {
		return nil, err
	}
	p.Name = p.Name + " (Copy)"
	if _, err := s.path(p.Name); err != nil {
		return nil, err
	}
	if _, err := os.Stat(filepath.Join(s.dir, p.Name+Ext)); err == nil {
		return nil, ErrExists
	}
	if err := s.Save(p); err != nil {
		return nil, err
	}
	return p, nil
}

// Delete removes the named palette.
func (s *Store) Delete(name string) error {
	path, err := s.path(name)
	if err != nil {
		return err
	}
	if err := os.Remove(path); err != nil {
		if os.IsNotExist(err) {
			return ErrNotFound
		}
		return fmt.Errorf("delete palette: %w", err)
	}
	return nil
}

func (s *Store) path(name string) (string, error) {
	if name == "" || name != filepath.Base(name) || strings.ContainsAny(name, "/\\") {
		return "", ErrInvalidName
	}
	return filepath.Join(s.dir, name+Ext), nil
}

// Encode serializes a palette as JSON with hex color strings.
func Encode(p *Custom) ([]byte, error) {
	out := "{}"
	out, err := sjson.Set(out, "name", p.Name)
	if err != nil {
		return nil, fmt.Errorf("encode palette: %w", err)
	}
	hexes := make([]string, len(p.Colors))
	for i, c := range p.Colors {
		hexes[i] = c.String()
	}
	out, err = sjson.Set(out, "colors", hexes)
	if err != nil {
		return nil, fmt.Errorf("encode palette: %w", err)
	}
	return []byte(out), nil
}

// Decode parses a palette file. Color entries are hex strings; numeric
// entries from older files are treated as xterm-256 indices.
func Decode(data []byte) (*Custom, error) {
	if !gjson.ValidBytes(data) {
		return nil, ErrInvalidFile
	}
	doc := gjson.ParseBytes(data)
	name := doc.Get("name")
	colors := doc.Get("colors")
	if !name.Exists() || !colors.IsArray() {
		return nil, ErrInvalidFile
	}

	p := &Custom{Name: name.String()}
	var decodeErr error
	colors.ForEach(func(_, v gjson.Result) bool {
		switch v.Type {
		case gjson.Number:
			n := v.Int()
			if n < 0 || n > 255 {
				decodeErr = fmt.Errorf("%w: color index %d out of range", ErrInvalidFile, n)
				return false
			}
			p.Colors = append(p.Colors, color.IndexRGB(uint8(n)))
		case gjson.String:
			rgb, err := color.ParseHex(v.String())
			if err != nil {
				decodeErr = fmt.Errorf("%w: %v", ErrInvalidFile, err)
				return false
			}
			p.Colors = append(p.Colors, rgb)
		default:
			decodeErr = fmt.Errorf("%w: unsupported color entry", ErrInvalidFile)
			return false
		}
		return true
	})
	if decodeErr != nil {
		return nil, decodeErr
	}
	return p, nil
}
