package script

import "errors"

var (
	// ErrNotFound is returned when a named brush file does not exist.
	ErrNotFound = errors.New("brush not found")
	// ErrNoStamp is returned when a brush does not define stamp().
	ErrNoStamp = errors.New("brush does not define a stamp function")
	// ErrBadResult is returned when stamp() returns something other than a
	// list of well-formed points.
	ErrBadResult = errors.New("invalid stamp result")
	// ErrBudgetExceeded is returned when a brush runs past its execution
	// budget.
	ErrBudgetExceeded = errors.New("brush exceeded execution budget")
)
