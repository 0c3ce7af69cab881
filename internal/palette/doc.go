// Package palette provides the curated default palette, hue-group
// organization of the xterm color cube, and custom palette files stored as
// .palette JSON.
package palette
