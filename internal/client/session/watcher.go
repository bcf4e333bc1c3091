package session

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/dmitrijs2005/paydesk/internal/logging"
)

// DefaultDebounce is the quiet window used when none is configured.
const DefaultDebounce = 200 * time.Millisecond

// Watcher turns filesystem writes to the session database into "session
// changed" signals. It watches the parent directory because SQLite replaces
// and recreates its journal files, which a per-file watch would lose.
//
// Bursts of events collapse into one signal fired once the directory has
// been quiet for the debounce window.
type Watcher struct {
	fsw      *fsnotify.Watcher
	names    map[string]struct{}
	debounce time.Duration
	logger   logging.Logger
}

// NewWatcher prepares a watcher for the database file at path.
func NewWatcher(path string, debounce time.Duration, logger logging.Logger) (*Watcher, error) {
	if debounce <= 0 {
		debounce = DefaultDebounce
	}
	if logger == nil {
		logger = logging.Nop()
	}

	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, err
	}

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	if err := fsw.Add(filepath.Dir(abs)); err != nil {
		_ = fsw.Close()
		return nil, fmt.Errorf("watch %s: %w", filepath.Dir(abs), err)
	}

	base := filepath.Base(abs)
	return &Watcher{
		fsw: fsw,
		names: map[string]struct{}{
			base:              {},
			base + "-journal": {},
			base + "-wal":     {},
		},
		debounce: debounce,
		logger:   logger.With("component", "session-watcher"),
	}, nil
}

func (w *Watcher) relevant(ev fsnotify.Event) bool {
	if !ev.Has(fsnotify.Write | fsnotify.Create | fsnotify.Remove | fsnotify.Rename) {
		return false
	}
	_, ok := w.names[filepath.Base(ev.Name)]
	return ok
}

// Run blocks until ctx is done or the watcher is closed, calling onChange
// after every debounced burst of relevant events.
func (w *Watcher) Run(ctx context.Context, onChange func()) {
	var (
		timer *time.Timer
		fire  <-chan time.Time
	)
	defer func() {
		if timer != nil {
			timer.Stop()
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return

		case ev, ok := <-w.fsw.Events:
			if !ok {
				return
			}
			if !w.relevant(ev) {
				continue
			}
			w.logger.Debug(ctx, "session file event", "op", ev.Op.String(), "name", ev.Name)
			if timer == nil {
				timer = time.NewTimer(w.debounce)
			} else {
				timer.Reset(w.debounce)
			}
			fire = timer.C

		case <-fire:
			fire = nil
			onChange()

		case err, ok := <-w.fsw.Errors:
			if !ok {
				return
			}
			w.logger.Warn(ctx, "session watcher error", "error", err)
		}
	}
}

// Close releases the underlying fsnotify watcher; Run returns afterwards.
func (w *Watcher) Close() error {
	return w.fsw.Close()
}
