package catalog

import (
	"log/slog"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// debounceInterval is how long the watcher waits after the last event before
// rehydrating. JSONL appends and editor saves arrive as bursts (create, then
// one write per line); a single rehydrate at the end covers the whole burst.
const debounceInterval = 250 * time.Millisecond

// FileWatcher watches the catalog's data file and rehydrates the catalog when
// it changes, so edits made outside a running TUI show up live. The parent
// directory is watched rather than the file itself, which keeps the watch
// alive across atomic replaces (write tmp, rename over).
type FileWatcher struct {
	watcher  *fsnotify.Watcher
	catalog  *Catalog
	filePath string
	debounce time.Duration
	done     chan struct{}
	mu       sync.Mutex
	running  bool
}

// NewFileWatcher creates a new file watcher for the catalog's data file.
func NewFileWatcher(catalog *Catalog, filePath string) (*FileWatcher, error) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	return &FileWatcher{
		watcher:  watcher,
		catalog:  catalog,
		filePath: filePath,
		debounce: debounceInterval,
		done:     make(chan struct{}),
	}, nil
}

// Start begins watching the file for changes.
func (fw *FileWatcher) Start() error {
	fw.mu.Lock()
	if fw.running {
		fw.mu.Unlock()
		return nil
	}
	fw.running = true
	fw.mu.Unlock()

	if err := fw.watcher.Add(filepath.Dir(fw.filePath)); err != nil {
		return err
	}

	go fw.watch()
	return nil
}

// watch is the main watch loop. Events for the data file arm a debounce
// timer; the rehydrate runs when the timer fires with no further events.
func (fw *FileWatcher) watch() {
	filename := filepath.Base(fw.filePath)

	timer := time.NewTimer(fw.debounce)
	if !timer.Stop() {
		<-timer.C
	}
	defer timer.Stop()
	armed := false

	for {
		select {
		case event, ok := <-fw.watcher.Events:
			if !ok {
				return
			}

			if filepath.Base(event.Name) != filename {
				continue
			}

			// Writes, atomic replaces (create/rename) and removals all
			// change what Load would return
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) &&
				!event.Has(fsnotify.Rename) && !event.Has(fsnotify.Remove) {
				continue
			}

			if armed && !timer.Stop() {
				select {
				case <-timer.C:
				default:
				}
			}
			timer.Reset(fw.debounce)
			armed = true

		case <-timer.C:
			armed = false
			slog.Debug("projects file changed, rehydrating catalog", "file", fw.filePath)
			if err := fw.catalog.Hydrate(); err != nil {
				slog.Warn("failed to rehydrate catalog", "error", err)
			}

		case err, ok := <-fw.watcher.Errors:
			if !ok {
				return
			}
			slog.Warn("file watcher error", "error", err)

		case <-fw.done:
			return
		}
	}
}

// Stop stops the file watcher.
func (fw *FileWatcher) Stop() error {
	fw.mu.Lock()
	defer fw.mu.Unlock()

	if !fw.running {
		return nil
	}

	fw.running = false
	close(fw.done)
	return fw.watcher.Close()
}
