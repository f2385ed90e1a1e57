package corpus

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/rs/zerolog/log"
)

const debounceInterval = 100 * time.Millisecond

// Watcher reports files under a directory tree that were created or written.
// Editors often write several times per save; events for one path are
// coalesced until it has been quiet for the debounce interval.
type Watcher struct {
	fw      *fsnotify.Watcher
	filter  *Filter
	done    chan struct{}
	stopped bool
	mu      sync.Mutex
}

// NewWatcher creates a watcher that reports files accepted by filter.
func NewWatcher(filter *Filter) (*Watcher, error) {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create watcher: %w", err)
	}
	return &Watcher{
		fw:     fw,
		filter: filter,
		done:   make(chan struct{}),
	}, nil
}

// Watch starts monitoring root recursively. onChange runs on a single
// goroutine, one call per settled path.
func (w *Watcher) Watch(root string, onChange func(path string)) error {
	err := filepath.Walk(root, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return nil
		}
		if info.IsDir() {
			if path != root && shouldIgnoreDir(info.Name()) {
				return filepath.SkipDir
			}
			return w.fw.Add(path)
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("failed to watch %s: %w", root, err)
	}

	go w.loop(onChange)
	return nil
}

func (w *Watcher) loop(onChange func(path string)) {
	pending := make(map[string]time.Time)
	ticker := time.NewTicker(debounceInterval / 2)
	defer ticker.Stop()

	for {
		select {
		case event, ok := <-w.fw.Events:
			if !ok {
				return
			}
			path := event.Name
			if event.Has(fsnotify.Create) {
				if info, err := os.Stat(path); err == nil && info.IsDir() {
					if !shouldIgnoreDir(info.Name()) {
						if err := w.fw.Add(path); err != nil {
							log.Warn().Err(err).Str("path", path).Msg("Failed to watch new directory")
						}
					}
					continue
				}
			}
			if !event.Has(fsnotify.Create) && !event.Has(fsnotify.Write) {
				continue
			}
			if !w.filter.Accept(path) {
				continue
			}
			pending[path] = time.Now()

		case err, ok := <-w.fw.Errors:
			if !ok {
				return
			}
			log.Warn().Err(err).Msg("Watcher error")

		case now := <-ticker.C:
			for path, last := range pending {
				if now.Sub(last) >= debounceInterval {
					delete(pending, path)
					onChange(path)
				}
			}

		case <-w.done:
			return
		}
	}
}

// Stop ends monitoring. Safe to call multiple times.
func (w *Watcher) Stop() error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.stopped {
		return nil
	}
	w.stopped = true
	close(w.done)
	return w.fw.Close()
}
