package palette

import "errors"

var (
	// ErrNotFound is returned when a named palette file does not exist.
	ErrNotFound = errors.New("palette not found")
	// ErrExists is returned when a save or rename would overwrite an
	// existing palette.
	ErrExists = errors.New("palette already exists")
	// ErrInvalidName is returned for empty or path-escaping palette names.
	ErrInvalidName = errors.New("invalid palette name")
	// ErrInvalidFile is returned for files that do not parse as a palette.
	ErrInvalidFile = errors.New("invalid palette file")
)
