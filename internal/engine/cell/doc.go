// Package cell defines the drawable unit of a Pixelstorm canvas: a glyph
// plus optional foreground and background colors.
//
// # Glyphs
//
// The glyph set is fixed and closed: the full block, four half-block
// orientations, three shade stipples, six vertical and six horizontal
// fractional-fill blocks, and the space character. A cell is empty iff its
// glyph is the space character.
//
// # Half blocks
//
// Half-block glyphs split a terminal cell into two colored halves. The
// upper/left orientations are canonical: fg is the top (or left) half and bg
// the bottom (or right) half. The lower/right orientations store the halves
// swapped and are normalized by Resolve before interpretation. Resolution is
// derived on demand and never stored; storage always keeps the orientation
// and color pair exactly as composed.
package cell
