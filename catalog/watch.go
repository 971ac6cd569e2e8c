package catalog

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"timeblessed/logger"
)

const DefaultDebounce = 500 * time.Millisecond

// Watcher signals when desktop entries under the watched directories change.
// Bursts of filesystem events collapse into one signal.
type Watcher struct {
	watcher  *fsnotify.Watcher
	debounce time.Duration
	changes  chan struct{}

	mu      sync.Mutex
	watched map[string]struct{}

	stop chan struct{}
	wg   sync.WaitGroup
	once sync.Once
}

func NewWatcher(dirs []string, debounce time.Duration) (*Watcher, error) {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	if debounce <= 0 {
		debounce = DefaultDebounce
	}
	w := &Watcher{
		watcher:  fw,
		debounce: debounce,
		changes:  make(chan struct{}, 1),
		watched:  make(map[string]struct{}),
		stop:     make(chan struct{}),
	}
	for _, d := range dirs {
		if info, err := os.Stat(d); err != nil || !info.IsDir() {
			continue
		}
		if err := w.watchRecursive(filepath.Clean(d)); err != nil {
			logger.Warnf("catalog: watch %s: %v", d, err)
		}
	}
	if len(w.watched) == 0 {
		_ = fw.Close()
		return nil, errors.New("catalog watcher: no directories to watch")
	}
	w.wg.Add(1)
	go w.loop()
	return w, nil
}

// Changes delivers at most one pending signal at a time.
func (w *Watcher) Changes() <-chan struct{} { return w.changes }

func (w *Watcher) loop() {
	defer w.wg.Done()
	var (
		timer   *time.Timer
		timerC  <-chan time.Time
		pending bool
	)
	for {
		select {
		case <-w.stop:
			if timer != nil {
				timer.Stop()
			}
			return
		case evt, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if !w.relevant(evt) {
				continue
			}
			pending = true
			if timer == nil {
				timer = time.NewTimer(w.debounce)
			} else {
				timer.Reset(w.debounce)
			}
			timerC = timer.C
		case <-timerC:
			timerC = nil
			if pending {
				pending = false
				select {
				case w.changes <- struct{}{}:
				default:
				}
			}
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			logger.Errorf("catalog watcher error: %v", err)
		}
	}
}

func (w *Watcher) relevant(evt fsnotify.Event) bool {
	path := filepath.Clean(evt.Name)
	if evt.Op&fsnotify.Create != 0 {
		if info, err := os.Stat(path); err == nil && info.IsDir() {
			if err := w.watchRecursive(path); err != nil {
				logger.Warnf("catalog: watch new dir %s: %v", path, err)
			}
			return true
		}
	}
	if evt.Op == fsnotify.Chmod {
		return false
	}
	dir := w.isWatched(path)
	if evt.Op&(fsnotify.Remove|fsnotify.Rename) != 0 {
		w.unwatch(path)
	}
	return dir || strings.HasSuffix(path, ".desktop")
}

func (w *Watcher) watchRecursive(root string) error {
	return filepath.WalkDir(root, func(path string, d os.DirEntry, err error) error {
		if err != nil || !d.IsDir() {
			return nil
		}
		w.mu.Lock()
		_, exists := w.watched[path]
		w.mu.Unlock()
		if exists {
			return nil
		}
		if err := w.watcher.Add(path); err != nil {
			return err
		}
		w.mu.Lock()
		w.watched[path] = struct{}{}
		w.mu.Unlock()
		return nil
	})
}

func (w *Watcher) isWatched(path string) bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	_, ok := w.watched[path]
	return ok
}

func (w *Watcher) unwatch(path string) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if _, ok := w.watched[path]; ok {
		_ = w.watcher.Remove(path)
		delete(w.watched, path)
	}
}

func (w *Watcher) Close() error {
	var closeErr error
	w.once.Do(func() {
		close(w.stop)
		closeErr = w.watcher.Close()
	})
	w.wg.Wait()
	return closeErr
}
