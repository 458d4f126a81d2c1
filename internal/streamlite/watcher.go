package streamlite

import (
	"fmt"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/rs/zerolog"
)

// DefaultDebounce is how long a file must stay quiet before onChange fires
const DefaultDebounce = 100 * time.Millisecond

// FileWatcher calls onChange after the watched file is written, replaced or
// removed. Bursts of events inside the debounce window collapse into one call.
type FileWatcher struct {
	*BaseConnector
	path     string
	debounce time.Duration
	onChange func() error
	logger   zerolog.Logger

	watcher  *fsnotify.Watcher
	done     chan struct{}
	wg       sync.WaitGroup
	stopOnce sync.Once
}

var _ Connector = (*FileWatcher)(nil)

// NewFileWatcher creates a watcher for path. A non-positive debounce uses
// DefaultDebounce.
func NewFileWatcher(path string, debounce time.Duration, onChange func() error, logger zerolog.Logger) *FileWatcher {
	if debounce <= 0 {
		debounce = DefaultDebounce
	}
	return &FileWatcher{
		BaseConnector: NewBaseConnector("file-watcher"),
		path:          filepath.Clean(path),
		debounce:      debounce,
		onChange:      onChange,
		logger:        logger,
		done:          make(chan struct{}),
	}
}

// Start begins watching. The parent directory is watched rather than the
// file itself so atomic rename-over writes are still seen.
func (w *FileWatcher) Start() error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create watcher: %w", err)
	}
	if err := watcher.Add(filepath.Dir(w.path)); err != nil {
		_ = watcher.Close()
		return fmt.Errorf("failed to watch %s: %w", filepath.Dir(w.path), err)
	}

	w.watcher = watcher
	_ = w.BaseConnector.Start()

	w.wg.Add(1)
	go w.run()

	w.logger.Info().Str("path", w.path).Msg("watching catalog file")
	return nil
}

// Stop ends watching and waits for a pending callback to finish
func (w *FileWatcher) Stop() error {
	var err error
	w.stopOnce.Do(func() {
		close(w.done)
		if w.watcher != nil {
			err = w.watcher.Close()
		}
		w.wg.Wait()
	})
	return err
}

func (w *FileWatcher) run() {
	defer w.wg.Done()

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
		case <-w.done:
			return

		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if !w.relevant(event) {
				continue
			}
			if timer == nil {
				timer = time.NewTimer(w.debounce)
			} else {
				timer.Stop()
				timer.Reset(w.debounce)
			}
			fire = timer.C

		case <-fire:
			fire = nil
			if err := w.onChange(); err != nil {
				w.logger.Error().Err(err).Str("path", w.path).Msg("change handler failed")
			}

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			w.logger.Warn().Err(err).Msg("watcher error")
		}
	}
}

func (w *FileWatcher) relevant(event fsnotify.Event) bool {
	if filepath.Clean(event.Name) != w.path {
		return false
	}
	return event.Has(fsnotify.Write) || event.Has(fsnotify.Create) ||
		event.Has(fsnotify.Rename) || event.Has(fsnotify.Remove)
}
