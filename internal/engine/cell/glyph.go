package cell

// Block glyphs.
const (
	Empty rune = ' '
	Full  rune = '█' // █

	UpperHalf rune = '▀' // ▀
	LowerHalf rune = '▄' // ▄
	LeftHalf  rune = '▌' // ▌
	RightHalf rune = '▐' // ▐

	ShadeLight  rune = '░' // ░
	ShadeMedium rune = '▒' // ▒
	ShadeDark   rune = '▓' // ▓
)

// Vertical fractional fills (lower blocks, excluding the half and full
// blocks which have their own identities above).
var VerticalFills = []rune{
	'▁', // ▁ one eighth
	'▂', // ▂ one quarter
	'▃', // ▃ three eighths
	'▅', // ▅ five eighths
	'▆', // ▆ three quarters
	'▇', // ▇ seven eighths
}

// Horizontal fractional fills (left blocks, same exclusions).
var HorizontalFills = []rune{
	'▏', // ▏ one eighth
	'▎', // ▎ one quarter
	'▍', // ▍ three eighths
	'▋', // ▋ five eighths
	'▊', // ▊ three quarters
	'▉', // ▉ seven eighths
}

// Drawable lists every glyph a tool may stamp, in cycle order.
var Drawable = func() []rune {
	gs := []rune{Full, UpperHalf, LowerHalf, LeftHalf, RightHalf, ShadeLight, ShadeMedium, ShadeDark}
	gs = append(gs, VerticalFills...)
	gs = append(gs, HorizontalFills...)
	return gs
}()

// IsGlyph reports whether ch belongs to the closed glyph set (including
// the empty glyph).
func IsGlyph(ch rune) bool {
	if ch == Empty {
		return true
	}
	for _, g := range Drawable {
		if g == ch {
			return true
		}
	}
	return false
}

// IsHalfBlock reports whether ch is one of the four half-block orientations.
func IsHalfBlock(ch rune) bool {
	switch ch {
	case UpperHalf, LowerHalf, LeftHalf, RightHalf:
		return true
	}
	return false
}

// NextGlyph cycles to the next drawable glyph. Unknown glyphs (including
// Empty) restart the cycle at Full.
func NextGlyph(ch rune) rune {
	for i, g := range Drawable {
		if g == ch {
			return Drawable[(i+1)%len(Drawable)]
		}
	}
	return Full
}

// PrevGlyph cycles to the previous drawable glyph. Unknown glyphs
// (including Empty) restart the cycle at Full.
func PrevGlyph(ch rune) rune {
	for i, g := range Drawable {
		if g == ch {
			return Drawable[(i+len(Drawable)-1)%len(Drawable)]
		}
	}
	return Full
}
