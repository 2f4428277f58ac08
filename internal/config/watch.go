package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// DebounceInterval groups bursts of writes (editors often write, truncate
// and rename) into one reload.
const DebounceInterval = 100 * time.Millisecond

// Watcher reloads a config file when it changes on disk.
type Watcher struct {
	watcher *fsnotify.Watcher
	path    string
	base    Config
	logger  *slog.Logger

	// Configs receives each successfully reloaded config.
	Configs chan Config
	// Errors receives reload and watch errors.
	Errors chan error

	closeCh chan struct{}
	done    chan struct{}
	once    sync.Once
}

// Watch starts watching path. The file's directory is watched so that
// atomic replace-by-rename is seen. Reloads overlay the file onto base.
func Watch(path string, base Config, logger *slog.Logger) (*Watcher, error) {
	if logger == nil {
		logger = slog.Default()
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

	watcher := &Watcher{
		watcher: w,
		path:    abs,
		base:    base,
		logger:  logger,
		Configs: make(chan Config, 1),
		Errors:  make(chan error, 1),
		closeCh: make(chan struct{}),
		done:    make(chan struct{}),
	}
	go watcher.run()
	return watcher, nil
}

// Close stops the watcher and closes both channels.
func (w *Watcher) Close() error {
	var err error
	w.once.Do(func() {
		close(w.closeCh)
		err = w.watcher.Close()
		<-w.done
	})
	return err
}

func (w *Watcher) run() {
	defer close(w.done)
	defer close(w.Errors)
	defer close(w.Configs)

	var pending <-chan time.Time
	for {
		select {
		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
				continue
			}
			if filepath.Clean(event.Name) != w.path {
				continue
			}
			pending = time.After(DebounceInterval)
		case <-pending:
			pending = nil
			w.reload()
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			w.sendError(err)
		case <-w.closeCh:
			return
		}
	}
}

func (w *Watcher) reload() {
	data, err := os.ReadFile(w.path)
	if errors.Is(err, os.ErrNotExist) {
		// Renamed away or mid-replace; a later create brings it back.
		w.logger.Warn("config file missing, keeping previous", "path", w.path)
		return
	}
	var cfg Config
	if err == nil {
		cfg, err = Decode(data, w.base)
	}
	if err != nil {
		err = fmt.Errorf("%s: %w", w.path, err)
		w.logger.Warn("config reload failed, keeping previous", "path", w.path, "err", err)
		w.sendError(err)
		return
	}
	cfg = cfg.Validate(w.base, w.logger)
	w.logger.Info("config reloaded", "path", w.path)

	// Only the newest config matters.
	select {
	case <-w.Configs:
	default:
	}
	select {
	case w.Configs <- cfg:
	case <-w.closeCh:
	}
}

func (w *Watcher) sendError(err error) {
	select {
	case w.Errors <- err:
	default:
	}
}
