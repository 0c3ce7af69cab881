package app

import (
	"strings"
	"unicode"

	"github.com/dshills/pixelstorm/internal/engine/cell"
	"github.com/dshills/pixelstorm/internal/engine/color"
	"github.com/dshills/pixelstorm/internal/engine/grid"
	"github.com/dshills/pixelstorm/internal/palette"
	"github.com/dshills/pixelstorm/internal/renderer/backend"
)

// maxNameLength bounds text prompt input.
const maxNameLength = 64

// handleDialogEvent routes keys while a dialog or prompt is open. Caller
// holds a.mu.
func (a *App) handleDialogEvent(ev backend.Event) {
	if ev.Type != backend.EventKey {
		return
	}

	switch a.mode {
	case ModeHelp:
		a.mode = ModeNormal

	case ModeQuitting:
		if isYes(ev) {
			a.running = false
		} else {
			a.mode = ModeNormal
		}

	case ModeRecovery:
		if isYes(ev) {
			a.recoverAutosave()
		} else {
			a.recoveryPath = ""
			a.mode = ModeNormal
		}

	case ModeFileDialog:
		a.handleFileDialog(ev)

	case ModeExportDialog:
		a.handleExportDialog(ev)

	case ModeSaveAs, ModeExportFile, ModePaletteName, ModePaletteRename:
		a.handleTextInput(ev)

	case ModeNewCanvas:
		a.handleNewCanvas(ev)

	case ModeColorSliders:
		a.handleColorSliders(ev)

	case ModePaletteDialog:
		a.handlePaletteDialog(ev)

	case ModeBrushDialog:
		a.handleBrushDialog(ev)
	}
}

func isYes(ev backend.Event) bool {
	return ev.Key == backend.KeyRune && unicode.ToLower(ev.Rune) == 'y'
}

func (a *App) handleFileDialog(ev backend.Event) {
	switch ev.Key {
	case backend.KeyUp, backend.KeyLeft:
		if a.dialogSel > 0 {
			a.dialogSel--
		}
	case backend.KeyDown, backend.KeyRight:
		if a.dialogSel+1 < len(a.dialogFiles) {
			a.dialogSel++
		}
	case backend.KeyEnter:
		if a.dialogSel < len(a.dialogFiles) {
			name := a.dialogFiles[a.dialogSel]
			a.mode = ModeNormal
			if err := a.loadProject(name); err != nil {
				a.setStatus("Open failed: %v", err)
			}
		}
	case backend.KeyEscape:
		a.mode = ModeNormal
	}
}

func (a *App) handleExportDialog(ev backend.Event) {
	switch ev.Key {
	case backend.KeyUp, backend.KeyLeft:
		if a.exportSel > 0 {
			a.exportSel--
		}
	case backend.KeyDown, backend.KeyRight:
		if a.exportSel+1 < len(exportChoices) {
			a.exportSel++
		}
	case backend.KeyEnter:
		a.textInput = a.defaultExportName()
		a.mode = ModeExportFile
	case backend.KeyEscape:
		a.mode = ModeNormal
	}
}

func (a *App) handleTextInput(ev backend.Event) {
	switch ev.Key {
	case backend.KeyEnter:
		a.commitTextInput()
	case backend.KeyEscape:
		a.textInput = ""
		a.mode = ModeNormal
	case backend.KeyBackspace, backend.KeyDelete:
		if len(a.textInput) > 0 {
			runes := []rune(a.textInput)
			a.textInput = string(runes[:len(runes)-1])
		}
	case backend.KeyRune:
		if len(a.textInput) < maxNameLength {
			a.textInput += string(ev.Rune)
		}
	}
}

// commitTextInput finishes the prompt the current mode belongs to.
func (a *App) commitTextInput() {
	name := strings.TrimSpace(a.textInput)
	if name == "" {
		a.setStatus("Name cannot be empty")
		return
	}
	mode := a.mode
	a.textInput = ""
	a.mode = ModeNormal
	switch mode {
	case ModeSaveAs:
		a.saveAs(name)
	case ModeExportFile:
		a.exportToFile(name)
	case ModePaletteName:
		a.createCustomPalette(name)
	case ModePaletteRename:
		a.renameCustomPalette(name)
	}
}

func (a *App) handleNewCanvas(ev backend.Event) {
	switch ev.Key {
	case backend.KeyUp, backend.KeyDown, backend.KeyTab:
		a.newCursor = 1 - a.newCursor
	case backend.KeyLeft:
		if a.newCursor == 0 {
			a.newWidth = clampDimension(a.newWidth - 8)
		} else {
			a.newHeight = clampDimension(a.newHeight - 8)
		}
	case backend.KeyRight:
		if a.newCursor == 0 {
			a.newWidth = clampDimension(a.newWidth + 8)
		} else {
			a.newHeight = clampDimension(a.newHeight + 8)
		}
	case backend.KeyEnter:
		a.editor.NewCanvas(a.newWidth, a.newHeight)
		a.proj = nil
		a.projectName = ""
		a.projectPath = ""
		a.cursorVisible = false
		a.mode = ModeNormal
		a.setStatus("New canvas %dx%d", a.newWidth, a.newHeight)
	case backend.KeyEscape:
		a.mode = ModeNormal
	}
}

func clampDimension(v int) int {
	if v < grid.MinDimension {
		return grid.MinDimension
	}
	if v > grid.MaxDimension {
		return grid.MaxDimension
	}
	return v
}

func (a *App) handleColorSliders(ev backend.Event) {
	switch ev.Key {
	case backend.KeyUp:
		if a.sliderActive > 0 {
			a.sliderActive--
		}
	case backend.KeyDown:
		if a.sliderActive < 2 {
			a.sliderActive++
		}
	case backend.KeyLeft:
		a.adjustSlider(-5)
	case backend.KeyRight:
		a.adjustSlider(5)
	case backend.KeyEnter:
		r, g, b := color.HSLToRGB(a.sliderH, a.sliderS, a.sliderL)
		a.editor.SetFg(cell.Color{Rgb: cell.Rgb{R: r, G: g, B: b}, Valid: true})
		a.mode = ModeNormal
		a.setStatus("Color: #%02X%02X%02X", r, g, b)
	case backend.KeyEscape:
		a.mode = ModeNormal
	}
}

func (a *App) adjustSlider(delta int) {
	clamp := func(v, max int) int {
		if v < 0 {
			return 0
		}
		if v > max {
			return max
		}
		return v
	}
	switch a.sliderActive {
	case 0:
		a.sliderH = clamp(a.sliderH+delta, 359)
	case 1:
		a.sliderS = clamp(a.sliderS+delta, 100)
	default:
		a.sliderL = clamp(a.sliderL+delta, 100)
	}
}

func (a *App) handlePaletteDialog(ev backend.Event) {
	switch ev.Key {
	case backend.KeyUp, backend.KeyLeft:
		if a.dialogSel > 0 {
			a.dialogSel--
		}
	case backend.KeyDown, backend.KeyRight:
		if a.dialogSel+1 < len(a.dialogFiles) {
			a.dialogSel++
		}
	case backend.KeyEnter:
		a.loadSelectedPalette()
	case backend.KeyEscape:
		a.mode = ModeNormal
	case backend.KeyRune:
		r := unicode.ToLower(ev.Rune)
		if r >= '1' && r <= '8' {
			a.loadHueGroup(int(r - '1'))
			return
		}
		switch r {
		case '9':
			a.loadBuiltinStrip("Grayscale", palette.Grayscale())
		case '0':
			a.loadBuiltinStrip("Default", palette.Default)
		case 'n':
			a.textInput = ""
			a.mode = ModePaletteName
		case 'd':
			a.deleteSelectedPalette()
		case 'r':
			if a.dialogSel < len(a.dialogFiles) {
				a.textInput = a.dialogFiles[a.dialogSel]
				a.mode = ModePaletteRename
			}
		case 'u':
			a.duplicateSelectedPalette()
		}
	}
}

// loadHueGroup swaps the strip to one of the eight cube hue groups.
func (a *App) loadHueGroup(n int) {
	groups := palette.HueGroups()
	if n < 0 || n >= len(groups) {
		return
	}
	a.loadBuiltinStrip(groups[n].Name, groups[n].Colors)
}

// loadBuiltinStrip shows a built-in palette. It clears any loaded custom
// palette so 'a' cannot write into a read-only section.
func (a *App) loadBuiltinStrip(name string, colors []cell.Rgb) {
	if len(colors) == 0 {
		return
	}
	a.custom = nil
	a.customName = ""
	a.strip = colors
	a.stripSel = 0
	a.editor.SetFg(cell.Color{Rgb: colors[0], Valid: true})
	a.mode = ModeNormal
	a.setStatus("Palette: %s", name)
}

func (a *App) handleBrushDialog(ev backend.Event) {
	switch ev.Key {
	case backend.KeyUp, backend.KeyLeft:
		if a.dialogSel > 0 {
			a.dialogSel--
		}
	case backend.KeyDown, backend.KeyRight:
		if a.dialogSel+1 < len(a.dialogFiles) {
			a.dialogSel++
		}
	case backend.KeyEnter:
		if a.dialogSel < len(a.dialogFiles) {
			name := a.dialogFiles[a.dialogSel]
			a.mode = ModeNormal
			a.runBrush(name)
		}
	case backend.KeyEscape:
		a.mode = ModeNormal
	}
}
