// Package project persists drawings as .pxs JSON files, including autosave
// snapshots for crash recovery and a directory watcher that keeps file
// listings current.
package project
