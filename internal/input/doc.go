// Package input translates terminal events into editor commands.
//
// The Handler is a small state machine over backend events: it tracks
// mouse button transitions so a left press, the drags that follow it,
// and the release arrive as distinct commands, and it maps key events
// to the closed Op set. Screen-to-canvas hit testing is delegated to a
// Surface so the handler stays independent of the renderer's layout.
package input
