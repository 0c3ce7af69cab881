package cell

// Cell is one drawable canvas position. Cells are comparable; tools rely on
// == to suppress no-op mutations.
type Cell struct {
	Ch rune
	Fg Color
	Bg Color
}

// Default returns the cell a fresh canvas is filled with: empty glyph,
// default foreground, transparent background.
func Default() Cell {
	return Cell{Ch: Empty, Fg: DefaultFg}
}

// IsEmpty reports whether the cell holds the empty glyph.
func (c Cell) IsEmpty() bool {
	return c.Ch == Empty
}

// Compose builds the cell a drawing operation leaves behind. The existing
// cell is discarded entirely; half-blocks stamp cleanly rather than blending
// with what was underneath, so UpperHalf over LowerHalf never merges into a
// Full block. Compose is idempotent.
func Compose(_ Cell, ch rune, fg, bg Color) Cell {
	return Cell{Ch: ch, Fg: fg, Bg: bg}
}

// Resolve normalizes a half-block cell for display. It returns ok=false for
// every non-half-block glyph.
//
// Lower and right orientations store their halves swapped, so they are first
// normalized to the upper/left canonical form. Transparency then resolves as
// follows: both halves opaque keeps the canonical glyph with fg=primary and
// bg=secondary; only the secondary half opaque flips to the opposite
// orientation showing that half with the background cleared; both halves
// transparent yields the empty cell. Resolving an already-resolved
// half-block cell returns it unchanged.
func Resolve(c Cell) (Cell, bool) {
	if !IsHalfBlock(c.Ch) {
		return Cell{}, false
	}

	var canonical, flipped rune
	primary, secondary := c.Fg, c.Bg
	switch c.Ch {
	case UpperHalf:
		canonical, flipped = UpperHalf, LowerHalf
	case LowerHalf:
		canonical, flipped = UpperHalf, LowerHalf
		primary, secondary = secondary, primary
	case LeftHalf:
		canonical, flipped = LeftHalf, RightHalf
	case RightHalf:
		canonical, flipped = LeftHalf, RightHalf
		primary, secondary = secondary, primary
	}

	switch {
	case primary.Valid && secondary.Valid:
		return Cell{Ch: canonical, Fg: primary, Bg: secondary}, true
	case primary.Valid:
		return Cell{Ch: canonical, Fg: primary}, true
	case secondary.Valid:
		return Cell{Ch: flipped, Fg: secondary}, true
	default:
		return Cell{Ch: Empty}, true
	}
}
