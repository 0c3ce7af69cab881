// Package script runs user-provided Lua brushes. A brush file defines a
// stamp(x, y, w, h) function returning a list of points; the points are fed
// through the editor's normal mutation path.
//
// Brushes run in a stripped Lua state: no filesystem, shell, or module
// loading, and a hard execution budget so a runaway script cannot hang the
// editor.
package script
