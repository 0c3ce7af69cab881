package project

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"
)

// AutosaveSuffix marks crash-recovery snapshots next to their project file.
const AutosaveSuffix = ".autosave"

// SaveFile writes the project to path, refreshing its modified timestamp.
func SaveFile(p *Project, path string) error {
	p.ModifiedAt = time.Now().UTC().Truncate(time.Second)
	data, err := p.Encode()
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write project: %w", err)
	}
	return nil
}

// LoadFile reads a project file of any supported version.
func LoadFile(path string) (*Project, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read project: %w", err)
	}
	p, err := Decode(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", filepath.Base(path), err)
	}
	return p, nil
}

// ListFiles returns the .pxs file names in dir, sorted. Autosave snapshots
// are excluded.
func ListFiles(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("list projects: %w", err)
	}
	var names []string
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), Ext) {
			continue
		}
		names = append(names, e.Name())
	}
	sort.Strings(names)
	return names, nil
}

// AutosavePath returns the snapshot path for a project path, or the default
// snapshot name inside dir when the project has never been saved.
func AutosavePath(dir, projectPath string) string {
	if projectPath == "" {
		return filepath.Join(dir, "untitled"+Ext+AutosaveSuffix)
	}
	return projectPath + AutosaveSuffix
}

// WriteAutosave writes a snapshot without touching the project's modified
// timestamp.
func WriteAutosave(p *Project, path string) error {
	data, err := p.Encode()
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write autosave: %w", err)
	}
	return nil
}

// FindAutosave returns the first autosave snapshot found in dir, or "" when
// none exists.
func FindAutosave(dir string) string {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return ""
	}
	for _, e := range entries {
		if !e.IsDir() && strings.HasSuffix(e.Name(), Ext+AutosaveSuffix) {
			return filepath.Join(dir, e.Name())
		}
	}
	return ""
}

// RemoveAutosave deletes a snapshot; a missing file is not an error.
func RemoveAutosave(path string) error {
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("remove autosave: %w", err)
	}
	return nil
}
