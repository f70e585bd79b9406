package runner

import (
	"fmt"
	"log/slog"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/quillaja/spacesim/internal/scenario"
	"github.com/quillaja/spacesim/internal/sim"
)

// SettingsWatcher re-reads a scenario file whenever it changes on disk and
// emits its settings block. Only settings are live: bodies and clouds
// describe the initial state and are ignored after startup.
type SettingsWatcher struct {
	Changes <-chan sim.Settings

	path    string
	log     *slog.Logger
	changes chan sim.Settings
	done    chan struct{}
	watcher *fsnotify.Watcher
}

// NewSettingsWatcher prepares a watcher for the given scenario file.
func NewSettingsWatcher(path string, log *slog.Logger) (*SettingsWatcher, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("runner: resolve %s: %w", path, err)
	}
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("runner: watcher: %w", err)
	}
	ch := make(chan sim.Settings, 4)
	return &SettingsWatcher{
		Changes: ch,
		path:    abs,
		log:     log,
		changes: ch,
		done:    make(chan struct{}),
		watcher: fw,
	}, nil
}

// Start begins watching. The watch is registered on the directory, not
// the file: editors that save by rename-and-replace would silently drop a
// watch on the file itself.
func (w *SettingsWatcher) Start() error {
	if err := w.watcher.Add(filepath.Dir(w.path)); err != nil {
		return fmt.Errorf("runner: watch %s: %w", w.path, err)
	}
	go w.loop()
	return nil
}

// Stop closes the watcher and the Changes channel.
func (w *SettingsWatcher) Stop() {
	w.watcher.Close()
	<-w.done
	close(w.changes)
}

func (w *SettingsWatcher) loop() {
	defer close(w.done)

	// debounce: editors fire several events per save
	const debounce = 100 * time.Millisecond
	var pending time.Time
	ticker := time.NewTicker(debounce)
	defer ticker.Stop()

	for {
		select {
		case event, ok := <-w.watcher.Events:
			if !ok {
				if !pending.IsZero() {
					w.emit()
				}
				return
			}
			if filepath.Clean(event.Name) != w.path {
				continue
			}
			if event.Has(fsnotify.Write) || event.Has(fsnotify.Create) || event.Has(fsnotify.Rename) {
				pending = time.Now()
			}

		case <-ticker.C:
			if !pending.IsZero() && time.Since(pending) >= debounce {
				w.emit()
				pending = time.Time{}
			}

		case _, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			// watch errors are non-fatal; the current settings stand
		}
	}
}

// emit reloads the file and publishes its settings. A file mid-edit may
// not parse; the previous settings stay in force until it does.
func (w *SettingsWatcher) emit() {
	sc, err := scenario.Load(w.path)
	if err != nil {
		w.log.Warn("settings reload failed", "path", w.path, "error", err)
		return
	}
	select {
	case w.changes <- sc.Settings.Settings():
		w.log.Info("settings reloaded", "path", w.path)
	default:
		// consumer is behind; drop rather than stall the watcher
	}
}
