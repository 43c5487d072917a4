package lexicon

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// Watcher reloads a lexicon file whenever it changes on disk, delivering
// each successfully parsed revision on Updates. Close the watcher to release
// the inotify handle and the delivery goroutine.
//
// Writes are debounced: editors commonly emit several events per save.
type Watcher struct {
	path    string
	watcher *fsnotify.Watcher
	updates chan *Lexicon
	logger  *slog.Logger

	mu      sync.Mutex
	current *Lexicon

	stopOnce sync.Once
	done     chan struct{}
}

const debounceWindow = 250 * time.Millisecond

// Watch starts watching path for lexicon changes. The initial load must
// succeed; later reload failures are logged and skipped, leaving the last
// good lexicon in place.
func Watch(ctx context.Context, path string, logger *slog.Logger) (*Watcher, error) {
	initial, err := LoadFile(path)
	if err != nil {
		return nil, err
	}

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("creating lexicon watcher: %w", err)
	}
	// Watch the directory, not the file: editors replace files on save,
	// which would drop a direct file watch.
	if err := fsw.Add(filepath.Dir(path)); err != nil {
		fsw.Close()
		return nil, fmt.Errorf("watching lexicon dir: %w", err)
	}

	if logger == nil {
		logger = slog.Default()
	}
	w := &Watcher{
		path:    path,
		watcher: fsw,
		updates: make(chan *Lexicon, 1),
		logger:  logger,
		current: initial,
		done:    make(chan struct{}),
	}
	go w.run(ctx)
	return w, nil
}

// Current returns the most recently loaded lexicon. The returned value is
// never mutated after load, so callers may hold it without copying.
func (w *Watcher) Current() *Lexicon {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.current
}

// Updates delivers each new lexicon revision. The channel holds one pending
// revision; if a consumer lags, intermediate revisions are dropped in favor
// of the newest.
func (w *Watcher) Updates() <-chan *Lexicon {
	return w.updates
}

// Close stops watching and closes Updates.
func (w *Watcher) Close() error {
	var err error
	w.stopOnce.Do(func() {
		err = w.watcher.Close()
		<-w.done
		close(w.updates)
	})
	return err
}

func (w *Watcher) run(ctx context.Context) {
	defer close(w.done)

	var pending *time.Timer
	var pendingC <-chan time.Time

	for {
		select {
		case <-ctx.Done():
			return
		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if filepath.Clean(event.Name) != filepath.Clean(w.path) {
				continue
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) {
				continue
			}
			if pending == nil {
				pending = time.NewTimer(debounceWindow)
				pendingC = pending.C
			} else {
				pending.Reset(debounceWindow)
			}
		case <-pendingC:
			pending = nil
			pendingC = nil
			w.reload()
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			w.logger.Warn("lexicon watch error", "path", w.path, "error", err)
		}
	}
}

func (w *Watcher) reload() {
	lex, err := LoadFile(w.path)
	if err != nil {
		w.logger.Warn("lexicon reload failed, keeping previous revision",
			"path", w.path, "error", err)
		return
	}

	w.mu.Lock()
	w.current = lex
	w.mu.Unlock()

	// Replace any undelivered revision with the newest one.
	select {
	case w.updates <- lex:
	default:
		select {
		case <-w.updates:
		default:
		}
		select {
		case w.updates <- lex:
		default:
		}
	}
	w.logger.Info("lexicon reloaded", "name", lex.Name, "version", lex.Version)
}
