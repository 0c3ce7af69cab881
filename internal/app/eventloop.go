package app

import (
	"context"
	"fmt"
	"time"

	"github.com/dshills/pixelstorm/internal/project"
	"github.com/dshills/pixelstorm/internal/renderer/backend"
)

// Run owns the terminal until quit. It drives the poll/handle/render loop
// and the autosave and watcher goroutines.
func (a *App) Run(ctx context.Context) error {
	if err := a.backend.Init(); err != nil {
		return fmt.Errorf("init backend: %w", err)
	}
	defer a.backend.Shutdown()
	a.backend.EnableMouse()

	a.mu.Lock()
	a.running = true
	a.mu.Unlock()

	a.startWatcher()
	defer a.stopWatcher()

	stopAutosave := a.startAutosave()
	defer stopAutosave()

	go func() {
		select {
		case <-ctx.Done():
			a.Stop()
		case <-a.done:
		}
	}()

	for {
		a.mu.Lock()
		a.rend.Render(a.frame())
		running := a.running
		a.mu.Unlock()
		if !running {
			break
		}

		ev := a.backend.PollEvent()

		a.mu.Lock()
		a.handleEvent(ev)
		a.mu.Unlock()
	}

	close(a.done)
	a.closeLog()
	return nil
}

// Stop ends the event loop. A wake event unblocks PollEvent so the loop
// can observe the flag.
func (a *App) Stop() {
	a.mu.Lock()
	a.running = false
	a.mu.Unlock()
	a.backend.PostEvent(backend.Event{Type: backend.EventNone})
}

// startAutosave launches the snapshot ticker. The returned func stops it.
func (a *App) startAutosave() func() {
	if !a.cfg.Autosave.Enabled {
		return func() {}
	}
	interval := a.cfg.AutosaveInterval()
	if interval <= 0 {
		interval = time.Minute
	}
	stop := make(chan struct{})
	go func() {
		t := time.NewTicker(interval)
		defer t.Stop()
		for {
			select {
			case <-t.C:
				a.mu.Lock()
				a.autosave()
				a.mu.Unlock()
			case <-stop:
				return
			}
		}
	}()
	return func() { close(stop) }
}

// startWatcher watches the projects directory so the open dialog stays
// current. Watch failures degrade to a static dialog.
func (a *App) startWatcher() {
	w, err := project.NewWatcher(a.cfg.Dirs.Projects, 0)
	if err != nil {
		a.logger.WithComponent("watcher").Warn("disabled: %v", err)
		return
	}
	a.watcher = w
	go func() {
		for {
			select {
			case ev, ok := <-w.Events():
				if !ok {
					return
				}
				a.mu.Lock()
				open := a.mode == ModeFileDialog
				if open {
					a.refreshFileDialog()
				}
				a.mu.Unlock()
				if open {
					// Wake the loop so the dialog redraws.
					a.backend.PostEvent(backend.Event{Type: backend.EventNone})
				}
				a.logger.WithComponent("watcher").Debug("%s %v", ev.Path, ev.Op)
			case err, ok := <-w.Errors():
				if !ok {
					return
				}
				a.logger.WithComponent("watcher").Warn("%v", err)
			}
		}
	}()
}

func (a *App) stopWatcher() {
	if a.watcher != nil {
		_ = a.watcher.Close()
		a.watcher = nil
	}
}

func (a *App) closeLog() {
	if a.logFile != nil {
		_ = a.logFile.Close()
		a.logFile = nil
	}
}
