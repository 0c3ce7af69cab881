package palette

import (
	"errors"
	"testing"

	"github.com/dshills/pixelstorm/internal/engine/cell"
)

func TestDefaultPaletteUniqueAndSized(t *testing.T) {
	if len(Default) != 24 {
		t.Fatalf("len(Default) = %d, want 24", len(Default))
	}
	seen := map[cell.Rgb]bool{}
	for _, c := range Default {
		if seen[c] {
			t.Errorf("duplicate color %v", c)
		}
		seen[c] = true
	}
}

func TestHueGroupsCoverCubeExactlyOnce(t *testing.T) {
	groups := HueGroups()
	if len(groups) != 8 {
		t.Fatalf("len(groups) = %d, want 8", len(groups))
	}
	total := 0
	seen := map[cell.Rgb]int{}
	for _, g := range groups {
		total += len(g.Colors)
		for _, c := range g.Colors {
			seen[c]++
		}
	}
	if total != 216 {
		t.Errorf("total cube entries = %d, want 216", total)
	}
	// The cube contains 6 repeated gray values across its diagonal only
	// once each, so 216 entries means no index was assigned twice.
	for c, n := range seen {
		if n > 1 && c.R != c.G {
			t.Errorf("chromatic color %v assigned %d times", c, n)
		}
	}
}

func TestHueGroupNames(t *testing.T) {
	groups := HueGroups()
	want := []string{"Reds", "Oranges", "Yellows", "Greens", "Cyans", "Blues", "Purples", "Pinks"}
	for i, g := range groups {
		if g.Name != want[i] {
			t.Errorf("group[%d] = %q, want %q", i, g.Name, want[i])
		}
	}
}

func TestStandardAndGrayscale(t *testing.T) {
	if got := len(Standard()); got != 16 {
		t.Errorf("len(Standard()) = %d, want 16", got)
	}
	gs := Grayscale()
	if len(gs) != 24 {
		t.Fatalf("len(Grayscale()) = %d, want 24", len(gs))
	}
	if gs[0] != (cell.Rgb{R: 8, G: 8, B: 8}) {
		t.Errorf("grayscale start = %v, want (8,8,8)", gs[0])
	}
	if gs[23] != (cell.Rgb{R: 238, G: 238, B: 238}) {
		t.Errorf("grayscale end = %v, want (238,238,238)", gs[23])
	}
}

func TestStoreSaveLoadRoundTrip(t *testing.T) {
	s, err := NewStore(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	p := &Custom{
		Name:   "Forest",
		Colors: []cell.Rgb{{R: 0, G: 95, B: 0}, {R: 0, G: 215, B: 0}, {R: 95, G: 135, B: 95}},
	}
	if err := s.Save(p); err != nil {
		t.Fatal(err)
	}
	got, err := s.Load("Forest")
	if err != nil {
		t.Fatal(err)
	}
	if got.Name != "Forest" || len(got.Colors) != 3 {
		t.Fatalf("loaded = %+v", got)
	}
	for i := range p.Colors {
		if got.Colors[i] != p.Colors[i] {
			t.Errorf("color[%d] = %v, want %v", i, got.Colors[i], p.Colors[i])
		}
	}
}

func TestStoreLegacyNumericEntries(t *testing.T) {
	got, err := Decode([]byte(`{"name":"Legacy","colors":[196,46,21]}`))
	if err != nil {
		t.Fatal(err)
	}
	want := []cell.Rgb{{R: 255}, {G: 255}, {B: 255}}
	for i := range want {
		if got.Colors[i] != want[i] {
			t.Errorf("color[%d] = %v, want %v", i, got.Colors[i], want[i])
		}
	}
}

func TestDecodeRejectsMalformed(t *testing.T) {
	cases := []struct {
		name string
		data string
	}{
		{"not json", "not json"},
		{"missing colors", `{"name":"x"}`},
		{"bad hex", `{"name":"x","colors":["#zzzzzz"]}`},
		{"index out of range", `{"name":"x","colors":[300]}`},
		{"bool entry", `{"name":"x","colors":[true]}`},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := Decode([]byte(tc.data)); err == nil {
				t.Error("expected error")
			}
		})
	}
}

func TestStoreListSorted(t *testing.T) {
	s, err := NewStore(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	for _, name := range []string{"ocean", "forest", "sunset"} {
		if err := s.Save(&Custom{Name: name, Colors: []cell.Rgb{{R: 1}}}); err != nil {
			t.Fatal(err)
		}
	}
	names, err := s.List()
	if err != nil {
		t.Fatal(err)
	}
	want := []string{"forest", "ocean", "sunset"}
	if len(names) != len(want) {
		t.Fatalf("names = %v", names)
	}
	for i := range want {
		if names[i] != want[i] {
			t.Errorf("names[%d] = %q, want %q", i, names[i], want[i])
		}
	}
}

func TestStoreRename(t *testing.T) {
	s, err := NewStore(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	if err := s.Save(&Custom{Name: "Old", Colors: []cell.Rgb{{R: 9}}}); err != nil {
		t.Fatal(err)
	}
	if err := s.Rename("Old", "New"); err != nil {
		t.Fatal(err)
	}
	if _, err := s.Load("Old"); !errors.Is(err, ErrNotFound) {
		t.Errorf("Load(Old) err = %v, want ErrNotFound", err)
	}
	got, err := s.Load("New")
	if err != nil {
		t.Fatal(err)
	}
	if got.Name != "New" {
		t.Errorf("renamed name = %q", got.Name)
	}
}

func TestStoreRenameConflictBlocked(t *testing.T) {
	s, err := NewStore(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	s.Save(&Custom{Name: "A", Colors: []cell.Rgb{{R: 1}}})
	s.Save(&Custom{Name: "B", Colors: []cell.Rgb{{R: 2}}})
	if err := s.Rename("A", "B"); !errors.Is(err, ErrExists) {
		t.Errorf("err = %v, want ErrExists", err)
	}
}

func TestStoreDuplicate(t *testing.T) {
	s, err := NewStore(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	s.Save(&Custom{Name: "Base", Colors: []cell.Rgb{{R: 7}}})
	dup, err := s.Duplicate("Base")
	if err != nil {
		t.Fatal(err)
	}
	if dup.Name != "Base (Copy)" {
		t.Errorf("duplicate name = %q", dup.Name)
	}
	if _, err := s.Load("Base (Copy)"); err != nil {
		t.Errorf("load duplicate: %v", err)
	}
	if _, err := s.Load("Base"); err != nil {
		t.Errorf("original missing after duplicate: %v", err)
	}
}

func TestStoreDelete(t *testing.T) {
	s, err := NewStore(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	s.Save(&Custom{Name: "Gone", Colors: []cell.Rgb{{R: 3}}})
	if err := s.Delete("Gone"); err != nil {
		t.Fatal(err)
	}
	if err := s.Delete("Gone"); !errors.Is(err, ErrNotFound) {
		t.Errorf("second delete err = %v, want ErrNotFound", err)
	}
}

func TestStoreInvalidNames(t *testing.T) {
	s, err := NewStore(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	for _, name := range []string{"", "../escape", "a/b"} {
		if _, err := s.Load(name); !errors.Is(err, ErrInvalidName) {
			t.Errorf("Load(%q) err = %v, want ErrInvalidName", name, err)
		}
	}
}
