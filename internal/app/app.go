// Package app wires the editor together and runs the main event loop. It
// owns all session state: the open project, dialog modes, the active
// palette strip, and autosave.
package app

import (
	"fmt"
	"os"
	"sync"

	"github.com/dshills/pixelstorm/internal/config"
	"github.com/dshills/pixelstorm/internal/engine"
	"github.com/dshills/pixelstorm/internal/engine/cell"
	"github.com/dshills/pixelstorm/internal/input"
	"github.com/dshills/pixelstorm/internal/palette"
	"github.com/dshills/pixelstorm/internal/project"
	"github.com/dshills/pixelstorm/internal/renderer"
	"github.com/dshills/pixelstorm/internal/renderer/backend"
	"github.com/dshills/pixelstorm/internal/script"
)

// Options configures application startup.
type Options struct {
	// ConfigPath overrides the default config file location.
	ConfigPath string

	// File is a project file to open on startup.
	File string

	// Backend overrides the terminal backend. Tests inject a Null backend.
	Backend backend.Backend
}

// App is the central coordinator: one editor, one backend, one event loop.
type App struct {
	mu sync.Mutex

	cfg     config.Config
	logger  *Logger
	logFile *os.File

	editor  *engine.Editor
	backend backend.Backend
	rend    *renderer.Renderer
	handler *input.Handler

	palettes *palette.Store
	brushes  *script.Runner
	watcher  *project.Watcher

	// Open project. proj is nil until the first save or load.
	proj        *project.Project
	projectName string
	projectPath string

	// Active palette strip. custom is non-nil while a user palette is
	// loaded.
	strip      []cell.Rgb
	stripSel   int
	custom     *palette.Custom
	customName string

	mode   Mode
	status string

	cursorX, cursorY int
	cursorVisible    bool

	// Dialog state.
	textInput    string
	dialogFiles  []string
	dialogSel    int
	exportSel    int
	sliderH      int
	sliderS      int
	sliderL      int
	sliderActive int
	newWidth     int
	newHeight    int
	newCursor    int
	recoveryPath string

	running bool
	done    chan struct{}
}

// New builds an application from options: config, logger, editor, stores,
// backend. The terminal is not touched until Run.
func New(opts Options) (*App, error) {
	path := opts.ConfigPath
	if path == "" {
		path = config.DefaultPath()
	}
	cfg, err := config.Load(path)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}

	a := &App{
		cfg:     cfg,
		logger:  NullLogger,
		handler: input.NewHandler(),
		strip:   palette.Default,
		done:    make(chan struct{}),
	}

	if cfg.LogFile != "" {
		f, err := os.OpenFile(cfg.LogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return nil, fmt.Errorf("open log file: %w", err)
		}
		a.logFile = f
		a.logger = NewLogger(LoggerConfig{
			Level:  ParseLogLevel(cfg.LogLevel),
			Output: f,
			Prefix: "pixelstorm",
		})
	}

	a.editor = engine.New()
	a.editor.NewCanvas(cfg.Canvas.Width, cfg.Canvas.Height)

	if err := os.MkdirAll(cfg.Dirs.Projects, 0o755); err != nil {
		return nil, fmt.Errorf("create projects dir: %w", err)
	}
	a.palettes, err = palette.NewStore(cfg.Dirs.Palettes)
	if err != nil {
		return nil, fmt.Errorf("open palette store: %w", err)
	}
	a.brushes = script.NewRunner(cfg.Dirs.Brushes, script.DefaultBudget)

	a.backend = opts.Backend
	if a.backend == nil {
		term, err := backend.NewTerminal()
		if err != nil {
			return nil, fmt.Errorf("create terminal backend: %w", err)
		}
		a.backend = term
	}
	a.rend = renderer.New(a.backend)

	if opts.File != "" {
		if err := a.loadProject(opts.File); err != nil {
			return nil, err
		}
	} else {
		a.checkRecovery()
	}

	return a, nil
}

// Config returns the loaded configuration.
func (a *App) Config() config.Config { return a.cfg }

// Editor exposes the drawing editor, primarily for tests.
func (a *App) Editor() *engine.Editor { return a.editor }

// Mode returns the current UI mode.
func (a *App) Mode() Mode {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.mode
}

// Status returns the current status line text.
func (a *App) Status() string {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.status
}

func (a *App) setStatus(format string, args ...any) {
	a.status = fmt.Sprintf(format, args...)
}

// frame snapshots the state the renderer needs. Caller holds a.mu.
func (a *App) frame() *renderer.Frame {
	name := a.projectName
	if name == "" {
		name = "untitled"
	}
	return &renderer.Frame{
		Grid:          a.editor.Grid(),
		CursorX:       a.cursorX,
		CursorY:       a.cursorY,
		CursorVisible: a.cursorVisible,
		Tool:          a.editor.Tool(),
		Glyph:         a.editor.Glyph(),
		Fg:            a.editor.Fg(),
		Bg:            a.editor.Bg(),
		FilledRect:    a.editor.FilledRect(),
		Symmetry:      a.editor.Symmetry(),
		Palette:       a.strip,
		PaletteSel:    a.stripSel,
		Recent:        a.editor.Recent(),
		Name:          name,
		Dirty:         a.editor.Dirty(),
		Status:        a.status,
		Prompt:        a.promptLine(),
		PlainBackdrop: a.cfg.Theme == "plain",
	}
}

// surface adapts the renderer's hit testing for the input handler using
// the frame being displayed.
type surface struct {
	r *renderer.Renderer
	f *renderer.Frame
}

func (s surface) CanvasCell(sx, sy int) (int, int, bool) {
	return s.r.CanvasCell(s.f, sx, sy)
}

func (s surface) PaletteSwatch(sx, sy int) (int, bool) {
	return s.r.PaletteSwatch(s.f, sx, sy)
}
