package project

import "errors"

var (
	// ErrInvalidFile is returned for files that do not parse as a project.
	ErrInvalidFile = errors.New("invalid project file")
	// ErrUnsupportedVersion is returned for files written by a newer
	// release.
	ErrUnsupportedVersion = errors.New("project file version is newer than supported")
	// ErrWatcherClosed is returned from watcher operations after Close.
	ErrWatcherClosed = errors.New("watcher closed")
)
