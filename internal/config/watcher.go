package config

import (
	"errors"
	"reflect"
	"sync"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"
)

// WatcherEvent represents a configuration change.
type WatcherEvent struct {
	Config *Config
	Error  error
}

// Watcher watches a configuration file and sends the reloaded Config
// whenever its contents change.
type Watcher struct {
	path    string
	watcher *fsnotify.Watcher
	events  chan WatcherEvent
	done    chan struct{}
	logger  *zap.Logger
	mu      sync.Mutex
	running bool
	last    *Config
}

// NewWatcher creates a new Watcher for the given config file path.
func NewWatcher(path string, logger *zap.Logger) (*Watcher, error) {
	fsWatcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	return &Watcher{
		path:    path,
		watcher: fsWatcher,
		events:  make(chan WatcherEvent, 10),
		done:    make(chan struct{}),
		logger:  logger,
	}, nil
}

// Start begins watching the config file. The current contents are sent as
// the first event.
func (w *Watcher) Start() error {
	w.mu.Lock()
	if w.running {
		w.mu.Unlock()
		return errors.New("watcher already running")
	}
	w.running = true
	w.mu.Unlock()

	if err := w.watcher.Add(w.path); err != nil {
		return err
	}

	w.handleFileChange()
	go w.processEvents()

	return nil
}

// Stop stops watching the config file.
func (w *Watcher) Stop() {
	w.mu.Lock()
	if !w.running {
		w.mu.Unlock()
		w.watcher.Close()
		return
	}
	w.running = false
	w.mu.Unlock()

	close(w.done)
	w.watcher.Close()
}

// Events returns the channel for receiving config change events.
func (w *Watcher) Events() <-chan WatcherEvent {
	return w.events
}

func (w *Watcher) processEvents() {
	for {
		select {
		case <-w.done:
			close(w.events)
			return

		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			w.logger.Debug("config file event", zap.String("path", event.Name), zap.String("op", event.Op.String()))

			if event.Op&(fsnotify.Write|fsnotify.Create) != 0 {
				w.handleFileChange()
			}

			// Editors often replace the file; re-add the watch for the new inode.
			if event.Op&(fsnotify.Remove|fsnotify.Rename) != 0 {
				w.send(WatcherEvent{Error: errors.New("config file was removed")})
				_ = w.watcher.Add(w.path)
			}

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			w.send(WatcherEvent{Error: err})
		}
	}
}

// handleFileChange reloads the config and sends an event if it changed.
func (w *Watcher) handleFileChange() {
	cfg, err := Load(w.path)
	if err == nil {
		err = cfg.Validate()
	}
	if err != nil {
		w.send(WatcherEvent{Error: err})
		return
	}

	if w.last != nil && reflect.DeepEqual(w.last, cfg) {
		return
	}
	w.last = cfg
	w.send(WatcherEvent{Config: cfg})
}

func (w *Watcher) send(ev WatcherEvent) {
	select {
	case w.events <- ev:
	case <-w.done:
	}
}
