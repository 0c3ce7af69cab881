package project

import (
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// Op is a bitmask of filesystem operations observed on a project file.
type Op uint32

const (
	OpCreate Op = 1 << iota
	OpWrite
	OpRemove
	OpRename
)

// Event is one debounced change to a project file.
type Event struct {
	Path      string
	Op        Op
	Timestamp time.Time
}

const defaultDebounce = 100 * time.Millisecond

// Watcher reports changes to .pxs files in the projects directory so open
// and recovery dialogs stay current. Rapid writes to the same file coalesce
// into one event.
type Watcher struct {
	fsw      *fsnotify.Watcher
	debounce time.Duration

	mu      sync.Mutex
	pending map[string]*pendingEvent
	closed  bool

	events  chan Event
	errors  chan error
	closeCh chan struct{}
	wg      sync.WaitGroup
}

type pendingEvent struct {
	ops   Op
	timer *time.Timer
}

// NewWatcher starts watching dir. A non-positive debounce uses the default.
func NewWatcher(dir string, debounce time.Duration) (*Watcher, error) {
	if debounce <= 0 {
		debounce = defaultDebounce
	}
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	if err := fsw.Add(dir); err != nil {
		fsw.Close()
		return nil, err
	}

	w := &Watcher{
		fsw:      fsw,
		debounce: debounce,
		pending:  make(map[string]*pendingEvent),
		events:   make(chan Event, 64),
		errors:   make(chan error, 16),
		closeCh:  make(chan struct{}),
	}
	w.wg.Add(1)
	go w.loop()
	return w, nil
}

// Events returns the debounced event channel. It is closed by Close.
func (w *Watcher) Events() <-chan Event { return w.events }

// Errors returns the error channel. It is closed by Close.
func (w *Watcher) Errors() <-chan error { return w.errors }

// Close stops the watcher and closes both channels.
func (w *Watcher) Close() error {
	w.mu.Lock()
	if w.closed {
		w.mu.Unlock()
		return nil
	}
	w.closed = true
	close(w.closeCh)
	for path, p := range w.pending {
		p.timer.Stop()
		delete(w.pending, path)
	}
	w.mu.Unlock()

	err := w.fsw.Close()
	w.wg.Wait()
	close(w.events)
	close(w.errors)
	return err
}

func (w *Watcher) loop() {
	defer w.wg.Done()
	for {
		select {
		case <-w.closeCh:
			return
		case ev, ok := <-w.fsw.Events:
			if !ok {
				return
			}
			w.handle(ev)
		case err, ok := <-w.fsw.Errors:
			if !ok {
				return
			}
			select {
			case w.errors <- err:
			default:
			}
		}
	}
}

func (w *Watcher) handle(ev fsnotify.Event) {
	if !relevant(ev.Name) {
		return
	}
	op := convertOp(ev.Op)
	if op == 0 {
		return
	}

	w.mu.Lock()
	defer w.mu.Unlock()
	if w.closed {
		return
	}
	if p, ok := w.pending[ev.Name]; ok {
		p.ops |= op
		p.timer.Reset(w.debounce)
		return
	}
	p := &pendingEvent{ops: op}
	p.timer = time.AfterFunc(w.debounce, func() { w.flush(ev.Name) })
	w.pending[ev.Name] = p
}

// flush emits under the mutex so no send can race Close closing the channel.
func (w *Watcher) flush(path string) {
	w.mu.Lock()
	defer w.mu.Unlock()
	p, ok := w.pending[path]
	if !ok || w.closed {
		return
	}
	delete(w.pending, path)
	select {
	case w.events <- Event{Path: path, Op: p.ops, Timestamp: time.Now()}:
	default:
	}
}

// relevant reports whether a path is a project file or autosave snapshot.
func relevant(path string) bool {
	return strings.HasSuffix(path, Ext) || strings.HasSuffix(path, Ext+AutosaveSuffix)
}

func convertOp(fsOp fsnotify.Op) Op {
	var op Op
	if fsOp.Has(fsnotify.Create) {
		op |= OpCreate
	}
	if fsOp.Has(fsnotify.Write) {
		op |= OpWrite
	}
	if fsOp.Has(fsnotify.Remove) {
		op |= OpRemove
	}
	if fsOp.Has(fsnotify.Rename) {
		op |= OpRename
	}
	return op
}
