package resource

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sync"

	"github.com/cespare/xxhash/v2"
	"github.com/fsnotify/fsnotify"
)

// UnregisterFunc removes a watch registered with Watcher.Watch.
type UnregisterFunc func()

type watchEntry struct {
	path    Path
	osPath  string
	dir     string
	handler func(Path)
	hash    uint64 // hash of the last observed contents
}

// Watcher invokes handlers when watched resources change on disk,
// enabling live reload of configuration and shader sources.
//
// Handlers run on the watcher's event goroutine, after firing once at
// registration. Editors commonly emit several write events per save;
// events that do not change the resource's content hash are dropped.
type Watcher struct {
	logger *slog.Logger
	fw     *fsnotify.Watcher

	mu      sync.Mutex
	entries map[*watchEntry]struct{}
	dirs    map[string]int // watched directory refcounts
}

func NewWatcher(logger *slog.Logger) (*Watcher, error) {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	if logger == nil {
		logger = slog.Default()
	}
	w := &Watcher{
		logger:  logger,
		fw:      fw,
		entries: make(map[*watchEntry]struct{}),
		dirs:    make(map[string]int),
	}
	go w.run()
	return w, nil
}

// Watch registers a change handler for a resource. The handler is called
// once before Watch returns and again every time the resource's contents
// change. The parent directory is watched rather than the file itself, so
// the watch survives editors that replace the file on save.
func (w *Watcher) Watch(p Path, handler func(Path)) (UnregisterFunc, error) {
	osPath := p.OSPath()
	e := &watchEntry{
		path:    p,
		osPath:  osPath,
		dir:     filepath.Dir(osPath),
		handler: handler,
		hash:    contentHash(osPath),
	}

	w.mu.Lock()
	if w.dirs[e.dir] == 0 {
		if err := w.fw.Add(e.dir); err != nil {
			w.mu.Unlock()
			return nil, fmt.Errorf("cannot watch resource %v: %w", p, err)
		}
	}
	w.dirs[e.dir]++
	w.entries[e] = struct{}{}
	w.mu.Unlock()

	handler(p)

	var once sync.Once
	return func() {
		once.Do(func() { w.unregister(e) })
	}, nil
}

func (w *Watcher) unregister(e *watchEntry) {
	w.mu.Lock()
	defer w.mu.Unlock()

	delete(w.entries, e)
	w.dirs[e.dir]--
	if w.dirs[e.dir] == 0 {
		delete(w.dirs, e.dir)
		if err := w.fw.Remove(e.dir); err != nil {
			w.logger.Warn("failed to remove watch", "dir", e.dir, "error", err)
		}
	}
}

// Close stops the event loop and releases the underlying watches. Watch
// handlers are not called after Close returns.
func (w *Watcher) Close() error {
	return w.fw.Close()
}

func (w *Watcher) run() {
	for {
		select {
		case ev, ok := <-w.fw.Events:
			if !ok {
				return
			}
			if ev.Op.Has(fsnotify.Write) || ev.Op.Has(fsnotify.Create) || ev.Op.Has(fsnotify.Rename) {
				w.dispatch(ev.Name)
			}
		case err, ok := <-w.fw.Errors:
			if !ok {
				return
			}
			w.logger.Error("file watcher error", "error", err)
		}
	}
}

func (w *Watcher) dispatch(osPath string) {
	w.mu.Lock()
	var fire []*watchEntry
	for e := range w.entries {
		if e.osPath != osPath {
			continue
		}
		if h := contentHash(osPath); h != e.hash {
			e.hash = h
			fire = append(fire, e)
		}
	}
	w.mu.Unlock()

	for _, e := range fire {
		e.handler(e.path)
	}
}

// contentHash returns the hash of the file's contents, or 0 when the file
// cannot be read.
func contentHash(osPath string) uint64 {
	data, err := os.ReadFile(osPath)
	if err != nil {
		return 0
	}
	return xxhash.Sum64(data)
}
