package nature

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// watchDebounce drops repeated events for one file within this window;
// editors often write a file several times per save.
const watchDebounce = 100 * time.Millisecond

// DefinitionWatcher reports changed YAML definition files in a set of
// directories. Its goroutine only forwards file names; reloading happens on
// the caller's goroutine through Reload.
type DefinitionWatcher struct {
	watcher *fsnotify.Watcher
	Events  chan string
	Errors  chan error
	closeCh chan struct{}
	doneCh  chan struct{}
	once    sync.Once
}

// NewDefinitionWatcher watches dirs for created, written or renamed
// definition files.
func NewDefinitionWatcher(dirs ...string) (*DefinitionWatcher, error) {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("nature: watch: %w", err)
	}
	for _, dir := range dirs {
		if err := w.Add(dir); err != nil {
			_ = w.Close()
			return nil, fmt.Errorf("nature: watch %s: %w", dir, err)
		}
	}

	dw := &DefinitionWatcher{
		watcher: w,
		Events:  make(chan string, 16),
		Errors:  make(chan error, 1),
		closeCh: make(chan struct{}),
		doneCh:  make(chan struct{}),
	}
	go dw.run()
	return dw, nil
}

// Close stops the watcher. It is safe to call more than once.
func (w *DefinitionWatcher) Close() error {
	var err error
	w.once.Do(func() {
		close(w.closeCh)
		err = w.watcher.Close()
		<-w.doneCh
	})
	return err
}

func (w *DefinitionWatcher) run() {
	defer close(w.doneCh)
	last := make(map[string]time.Time)
	for {
		select {
		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
				continue
			}
			if !isDefinitionFile(event.Name) {
				continue
			}
			now := time.Now()
			if t, ok := last[event.Name]; ok && now.Sub(t) < watchDebounce {
				continue
			}
			last[event.Name] = now
			select {
			case w.Events <- event.Name:
			case <-w.closeCh:
				return
			}
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			select {
			case w.Errors <- err:
			default:
			}
		case <-w.closeCh:
			return
		}
	}
}

// Reload drains pending file events without blocking and reloads each
// changed file into reg. It returns the number of files reloaded; a file
// that fails to read or parse is reported and leaves reg unchanged for its
// kinds.
func (w *DefinitionWatcher) Reload(reg *Registry) (int, error) {
	n := 0
	for {
		select {
		case path := <-w.Events:
			data, err := os.ReadFile(path)
			if err != nil {
				return n, fmt.Errorf("nature: reload %s: %w", path, err)
			}
			if err := reg.ReloadDefinitions(data); err != nil {
				return n, fmt.Errorf("nature: reload %s: %w", path, err)
			}
			n++
		case err := <-w.Errors:
			return n, fmt.Errorf("nature: watch: %w", err)
		default:
			return n, nil
		}
	}
}

func isDefinitionFile(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	return ext == ".yaml" || ext == ".yml"
}
