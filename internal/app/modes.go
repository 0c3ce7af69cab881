package app

import (
	"fmt"
	"strings"

	"github.com/dshills/pixelstorm/internal/export"
)

// Mode is the UI mode. Normal mode draws; every other mode routes keys to
// a one-line prompt or dialog.
type Mode int

const (
	ModeNormal Mode = iota
	ModeHelp
	ModeQuitting
	ModeRecovery
	ModeFileDialog
	ModeExportDialog
	ModeSaveAs
	ModeExportFile
	ModeNewCanvas
	ModeColorSliders
	ModePaletteDialog
	ModePaletteName
	ModePaletteRename
	ModeBrushDialog
)

// exportChoices orders the export dialog entries. Index 0 is plain text;
// the rest map to ANSI levels.
var exportChoices = []string{
	"plain text",
	export.Truecolor.Label(),
	export.Xterm256.Label(),
	export.ANSI16.Label(),
}

const helpLine = "p/e/l/r/f/i tools  h/v symmetry  b glyph  t fill  1-0 colors  s sliders  c palettes  g brushes  ^S save  ^O open  ^N new  ^E export  ^Z/^Y undo/redo  q quit"

// promptLine renders the one-line dialog for the current mode. Empty in
// normal mode so the status line shows through. Caller holds a.mu.
func (a *App) promptLine() string {
	switch a.mode {
	case ModeHelp:
		return helpLine
	case ModeQuitting:
		return "Unsaved changes. Quit? (y/n)"
	case ModeRecovery:
		return fmt.Sprintf("Autosave found (%s). Recover? (y/n)", a.recoveryPath)
	case ModeFileDialog:
		return listPrompt("Open", a.dialogFiles, a.dialogSel)
	case ModeExportDialog:
		return listPrompt("Export as", exportChoices, a.exportSel)
	case ModeSaveAs:
		return "Save as: " + a.textInput + "_"
	case ModeExportFile:
		return "Export to: " + a.textInput + "_"
	case ModeNewCanvas:
		marks := [2]string{" ", " "}
		marks[a.newCursor] = "▸"
		return fmt.Sprintf("New canvas  %swidth %d  %sheight %d  (←/→ adjust, Enter create)",
			marks[0], a.newWidth, marks[1], a.newHeight)
	case ModeColorSliders:
		marks := [3]string{" ", " ", " "}
		marks[a.sliderActive] = "▸"
		return fmt.Sprintf("HSL  %sH %d  %sS %d  %sL %d  (←/→ adjust, Enter pick)",
			marks[0], a.sliderH, marks[1], a.sliderS, marks[2], a.sliderL)
	case ModePaletteDialog:
		return listPrompt("Palette", a.dialogFiles, a.dialogSel) + "  [n]ew [r]ename [u]dup [d]el  1-8 hues 9 gray 0 default"
	case ModePaletteName:
		return "New palette: " + a.textInput + "_"
	case ModePaletteRename:
		return "Rename palette: " + a.textInput + "_"
	case ModeBrushDialog:
		return listPrompt("Brush", a.dialogFiles, a.dialogSel)
	}
	return ""
}

// listPrompt shows a selectable list inline: the selection is bracketed.
func listPrompt(label string, items []string, sel int) string {
	if len(items) == 0 {
		return label + ": (none)"
	}
	parts := make([]string, len(items))
	for i, it := range items {
		if i == sel {
			parts[i] = "[" + it + "]"
		} else {
			parts[i] = it
		}
	}
	return label + ": " + strings.Join(parts, " ")
}
