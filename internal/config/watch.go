package config

import (
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"
)

// DefaultDebounce is how long a file must be quiet before a change is
// reported. Editors commonly write a file in several steps.
const DefaultDebounce = 100 * time.Millisecond

// FileWatcher reports changes to a single configuration file. It implements
// visibility.Watcher, so onChange runs on the loop goroutine.
//
// The parent directory is watched rather than the file itself, so editors
// that save by renaming a temporary file over the original keep working.
type FileWatcher struct {
	watcher  *fsnotify.Watcher
	path     string
	onChange func()
	debounce time.Duration
	logger   *zap.Logger
}

// Watch creates a watcher for path. Nothing is delivered until Start is
// called by the loop.
func Watch(path string, onChange func(), logger *zap.Logger) (*FileWatcher, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, err
	}
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	if err := w.Add(filepath.Dir(abs)); err != nil {
		_ = w.Close()
		return nil, err
	}
	return &FileWatcher{
		watcher:  w,
		path:     abs,
		onChange: onChange,
		debounce: DefaultDebounce,
		logger:   logger,
	}, nil
}

// Start the watcher. The fsnotify watcher is closed when stopCh closes.
func (w *FileWatcher) Start(eventQueue chan<- func(), stopCh <-chan struct{}) {
	go w.run(eventQueue, stopCh)
}

// Close releases the underlying fsnotify watcher. It is only needed when the
// watcher is never started; a started watcher closes when its loop stops.
func (w *FileWatcher) Close() error {
	return w.watcher.Close()
}

func (w *FileWatcher) run(eventQueue chan<- func(), stopCh <-chan struct{}) {
	defer w.watcher.Close()

	var (
		timer  *time.Timer
		settle <-chan time.Time
	)
	defer func() {
		if timer != nil {
			timer.Stop()
		}
	}()

	for {
		select {
		case <-stopCh:
			return

		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if !w.relevant(event) {
				continue
			}
			w.logger.Debug("config file event", zap.String("path", event.Name), zap.Stringer("op", event.Op))
			if timer == nil {
				timer = time.NewTimer(w.debounce)
			} else {
				timer.Reset(w.debounce)
			}
			settle = timer.C

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			w.logger.Warn("config watcher error", zap.Error(err))

		case <-settle:
			settle = nil
			select {
			case eventQueue <- w.onChange:
			case <-stopCh:
				return
			}
		}
	}
}

func (w *FileWatcher) relevant(event fsnotify.Event) bool {
	if filepath.Clean(event.Name) != w.path {
		return false
	}
	return event.Has(fsnotify.Write) || event.Has(fsnotify.Create) || event.Has(fsnotify.Rename)
}
