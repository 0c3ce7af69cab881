package app

import (
	"context"
	"os"
	"path/filepath"
	"strings"

	"github.com/dshills/pixelstorm/internal/engine"
	"github.com/dshills/pixelstorm/internal/engine/cell"
	"github.com/dshills/pixelstorm/internal/export"
	"github.com/dshills/pixelstorm/internal/palette"
	"github.com/dshills/pixelstorm/internal/project"
)

// resolveProjectPath turns a bare name into a path under the projects
// directory and guarantees the .pxs extension.
func (a *App) resolveProjectPath(name string) string {
	if !strings.HasSuffix(name, project.Ext) {
		name += project.Ext
	}
	if filepath.IsAbs(name) || strings.ContainsRune(name, os.PathSeparator) {
		return name
	}
	return filepath.Join(a.cfg.Dirs.Projects, name)
}

// loadProject opens a project file and replaces the session with it.
func (a *App) loadProject(name string) error {
	path := a.resolveProjectPath(name)
	p, err := project.LoadFile(path)
	if err != nil {
		return err
	}
	a.installProject(p, path)
	a.logger.WithComponent("project").Info("loaded %s", path)
	a.setStatus("Loaded %s", p.Name)
	return nil
}

// installProject points the session at p. The editor history resets.
func (a *App) installProject(p *project.Project, path string) {
	a.proj = p
	a.projectName = p.Name
	a.projectPath = path
	a.editor.ReplaceGrid(p.Grid)
	a.editor.SetSymmetry(p.Symmetry)
	if p.Color.Valid {
		a.editor.SetFg(p.Color)
	}
	a.editor.MarkClean()
	a.cursorVisible = false
}

// saveOrPrompt saves in place, or prompts for a name on the first save.
func (a *App) saveOrPrompt() {
	if a.projectPath == "" {
		a.textInput = a.projectName
		if a.textInput == "" {
			a.textInput = "untitled"
		}
		a.mode = ModeSaveAs
		return
	}
	a.saveProject()
}

// saveAs names the project and saves it under the projects directory.
func (a *App) saveAs(name string) {
	a.projectName = strings.TrimSuffix(name, project.Ext)
	a.projectPath = a.resolveProjectPath(name)
	a.saveProject()
}

func (a *App) saveProject() {
	if a.proj == nil {
		a.proj = project.New(a.projectName, a.editor.Grid(), a.editor.Fg(), a.editor.Symmetry())
	} else {
		a.proj.Name = a.projectName
		a.proj.Grid = a.editor.Grid()
		a.proj.Color = a.editor.Fg()
		a.proj.Symmetry = a.editor.Symmetry()
	}
	if err := project.SaveFile(a.proj, a.projectPath); err != nil {
		a.logger.WithComponent("project").Error("save failed: %v", err)
		a.setStatus("Save failed: %v", err)
		return
	}
	a.editor.MarkClean()
	// A clean save supersedes any snapshot.
	_ = project.RemoveAutosave(a.projectPath + project.AutosaveSuffix)
	a.setStatus("Saved %s", a.projectName)
}

// autosave writes a crash-recovery snapshot when there are unsaved edits.
func (a *App) autosave() {
	if !a.editor.Dirty() {
		return
	}
	name := a.projectName
	if name == "" {
		name = "untitled"
	}
	p := a.proj
	if p == nil {
		p = project.New(name, a.editor.Grid(), a.editor.Fg(), a.editor.Symmetry())
	} else {
		p.Grid = a.editor.Grid()
		p.Color = a.editor.Fg()
		p.Symmetry = a.editor.Symmetry()
	}
	path := project.AutosavePath(a.cfg.Dirs.Projects, a.projectPath)
	if err := project.WriteAutosave(p, path); err != nil {
		a.logger.WithComponent("autosave").Error("%v", err)
		return
	}
	a.logger.WithComponent("autosave").Debug("wrote %s", path)
}

// checkRecovery looks for a leftover snapshot and prompts before loading.
func (a *App) checkRecovery() {
	if path := project.FindAutosave(a.cfg.Dirs.Projects); path != "" {
		a.recoveryPath = path
		a.mode = ModeRecovery
	}
}

// recoverAutosave loads the snapshot found at startup. The session comes
// back dirty so the user saves it properly.
func (a *App) recoverAutosave() {
	path := a.recoveryPath
	a.recoveryPath = ""
	a.mode = ModeNormal

	p, err := project.LoadFile(path)
	if err != nil {
		a.setStatus("Recovery failed: %v", err)
		return
	}
	real := strings.TrimSuffix(path, project.AutosaveSuffix)
	if filepath.Base(real) == "untitled"+project.Ext {
		real = ""
	}
	a.installProject(p, real)
	// A recovered canvas is unsaved by definition.
	a.editor.MarkDirty()
	a.setStatus("Recovered from autosave")
}

func (a *App) openFileDialog() {
	files, err := project.ListFiles(a.cfg.Dirs.Projects)
	if err != nil {
		a.setStatus("Open failed: %v", err)
		return
	}
	a.dialogFiles = files
	a.dialogSel = 0
	a.mode = ModeFileDialog
}

// refreshFileDialog re-lists projects after a watcher event.
func (a *App) refreshFileDialog() {
	files, err := project.ListFiles(a.cfg.Dirs.Projects)
	if err != nil {
		return
	}
	a.dialogFiles = files
	if a.dialogSel >= len(files) {
		a.dialogSel = len(files) - 1
	}
	if a.dialogSel < 0 {
		a.dialogSel = 0
	}
}

// defaultExportName suggests a destination for the export prompt.
func (a *App) defaultExportName() string {
	name := a.projectName
	if name == "" {
		name = "untitled"
	}
	return name + ".txt"
}

// exportToFile writes the canvas in the chosen format. Relative paths land
// next to the projects.
func (a *App) exportToFile(name string) {
	var out string
	if a.exportSel == 0 {
		out = export.PlainText(a.editor.Grid())
	} else {
		out = export.ANSI(a.editor.Grid(), export.Level(a.exportSel-1))
	}
	path := name
	if !filepath.IsAbs(path) && !strings.ContainsRune(path, os.PathSeparator) {
		path = filepath.Join(a.cfg.Dirs.Projects, path)
	}
	if err := os.WriteFile(path, []byte(out), 0o644); err != nil {
		a.setStatus("Export failed: %v", err)
		return
	}
	a.setStatus("Exported %s (%s)", path, exportChoices[a.exportSel])
}

func (a *App) openPaletteDialog() {
	names, err := a.palettes.List()
	if err != nil {
		a.setStatus("Palettes unavailable: %v", err)
		return
	}
	a.dialogFiles = names
	a.dialogSel = 0
	a.mode = ModePaletteDialog
}

func (a *App) loadSelectedPalette() {
	if a.dialogSel >= len(a.dialogFiles) {
		return
	}
	name := a.dialogFiles[a.dialogSel]
	p, err := a.palettes.Load(name)
	if err != nil {
		a.setStatus("Load failed: %v", err)
		return
	}
	if len(p.Colors) == 0 {
		a.setStatus("Palette %s is empty", name)
		return
	}
	a.custom = p
	a.customName = name
	a.strip = p.Colors
	a.stripSel = 0
	a.editor.SetFg(cell.Color{Rgb: p.Colors[0], Valid: true})
	a.mode = ModeNormal
	a.setStatus("Palette: %s", name)
}

func (a *App) createCustomPalette(name string) {
	p := &palette.Custom{Name: name, Colors: []cell.Rgb{a.editor.Fg().Rgb}}
	if err := a.palettes.Save(p); err != nil {
		a.setStatus("Create failed: %v", err)
		return
	}
	a.custom = p
	a.customName = name
	a.strip = p.Colors
	a.stripSel = 0
	a.setStatus("Palette: %s", name)
}

func (a *App) renameCustomPalette(newName string) {
	if a.dialogSel >= len(a.dialogFiles) {
		return
	}
	oldName := a.dialogFiles[a.dialogSel]
	if err := a.palettes.Rename(oldName, newName); err != nil {
		a.setStatus("Rename failed: %v", err)
		return
	}
	if a.customName == oldName {
		a.customName = newName
		a.custom.Name = newName
	}
	a.openPaletteDialog()
	a.setStatus("Renamed %s to %s", oldName, newName)
}

func (a *App) deleteSelectedPalette() {
	if a.dialogSel >= len(a.dialogFiles) {
		return
	}
	name := a.dialogFiles[a.dialogSel]
	if err := a.palettes.Delete(name); err != nil {
		a.setStatus("Delete failed: %v", err)
		return
	}
	if a.customName == name {
		a.custom = nil
		a.customName = ""
		a.strip = palette.Default
		a.stripSel = 0
	}
	a.openPaletteDialog()
	a.setStatus("Deleted %s", name)
}

func (a *App) duplicateSelectedPalette() {
	if a.dialogSel >= len(a.dialogFiles) {
		return
	}
	name := a.dialogFiles[a.dialogSel]
	copyP, err := a.palettes.Duplicate(name)
	if err != nil {
		a.setStatus("Duplicate failed: %v", err)
		return
	}
	a.openPaletteDialog()
	a.setStatus("Created %s", copyP.Name)
}

// addColorToCustom appends the foreground to the loaded custom palette.
func (a *App) addColorToCustom() {
	if a.custom == nil {
		a.setStatus("No custom palette loaded")
		return
	}
	fg := a.editor.Fg()
	for _, c := range a.custom.Colors {
		if c == fg.Rgb {
			a.setStatus("Color already in %s", a.customName)
			return
		}
	}
	a.custom.Colors = append(a.custom.Colors, fg.Rgb)
	if err := a.palettes.Save(a.custom); err != nil {
		a.setStatus("Save failed: %v", err)
		return
	}
	a.strip = a.custom.Colors
	a.setStatus("Added color to %s", a.customName)
}

func (a *App) openBrushDialog() {
	names, err := a.brushes.List()
	if err != nil {
		a.setStatus("Brushes unavailable: %v", err)
		return
	}
	if len(names) == 0 {
		a.setStatus("No brushes in %s", a.cfg.Dirs.Brushes)
		return
	}
	a.dialogFiles = names
	a.dialogSel = 0
	a.mode = ModeBrushDialog
}

// runBrush executes a Lua brush at the cursor and stamps its points as one
// undo unit.
func (a *App) runBrush(name string) {
	g := a.editor.Grid()
	points, err := a.brushes.Run(context.Background(), name, a.cursorX, a.cursorY, g.Width(), g.Height())
	if err != nil {
		a.setStatus("Brush failed: %v", err)
		return
	}
	stamps := make([]engine.StampPoint, len(points))
	for i, p := range points {
		stamps[i] = engine.StampPoint{X: p.X, Y: p.Y, Ch: p.Ch, Fg: p.Fg, Bg: p.Bg}
	}
	n := a.editor.ApplyStamp(stamps)
	a.setStatus("Brush %s: %d cells", name, n)
}
