// Package watcher reports debounced changes to a fixed set of files
package watcher

import (
	"context"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/fumiya-kume/ccrefactor/pkg/errors"
	"github.com/fumiya-kume/ccrefactor/pkg/logger"
)

// DefaultDebounce groups editor save bursts into one notification
const DefaultDebounce = 500 * time.Millisecond

// ChangeFunc receives the watched paths that changed, sorted
type ChangeFunc func(paths []string)

// Watcher watches files through their parent directories so that
// editors replacing a file on save are still seen
type Watcher struct {
	fs       *fsnotify.Watcher
	paths    map[string]bool
	debounce time.Duration
	logger   logger.LoggerInterface
}

// New starts watching paths. A non-positive debounce uses DefaultDebounce.
func New(paths []string, debounce time.Duration, log logger.LoggerInterface) (*Watcher, error) {
	if debounce <= 0 {
		debounce = DefaultDebounce
	}
	log = logger.OrNop(log)

	fs, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, errors.FileSystemError("watch", "", err)
	}

	w := &Watcher{
		fs:       fs,
		paths:    make(map[string]bool, len(paths)),
		debounce: debounce,
		logger:   log,
	}

	dirs := make(map[string]bool)
	for _, path := range paths {
		abs, err := filepath.Abs(path)
		if err != nil {
			_ = fs.Close()
			return nil, errors.FileSystemError("resolve", path, err)
		}

		info, err := os.Stat(abs)
		if err != nil {
			_ = fs.Close()
			if os.IsNotExist(err) {
				return nil, errors.InputNotFoundError(path)
			}
			return nil, errors.FileSystemError("stat", path, err)
		}
		if info.IsDir() {
			_ = fs.Close()
			return nil, errors.InvalidShapeError(path, "file")
		}

		w.paths[abs] = true
		dirs[filepath.Dir(abs)] = true
	}

	for dir := range dirs {
		if err := fs.Add(dir); err != nil {
			_ = fs.Close()
			return nil, errors.FileSystemError("watch", dir, err)
		}
		log.Debug("watching %s", dir)
	}

	return w, nil
}

// Run calls onChange after each quiet period following writes to watched files.
// It returns when ctx is done or the watcher is closed.
func (w *Watcher) Run(ctx context.Context, onChange ChangeFunc) error {
	var debounceTimer *time.Timer
	fire := make(chan struct{}, 1)
	pending := make(map[string]bool)

	defer func() {
		if debounceTimer != nil {
			debounceTimer.Stop()
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-w.fs.Events:
			if !ok {
				return nil
			}

			if !w.paths[filepath.Clean(event.Name)] {
				continue
			}

			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) {
				continue
			}

			pending[filepath.Clean(event.Name)] = true
			if debounceTimer != nil {
				debounceTimer.Stop()
			}
			debounceTimer = time.AfterFunc(w.debounce, func() {
				select {
				case fire <- struct{}{}:
				default:
				}
			})

		case <-fire:
			if len(pending) == 0 {
				continue
			}
			changed := make([]string, 0, len(pending))
			for path := range pending {
				changed = append(changed, path)
			}
			sort.Strings(changed)
			pending = make(map[string]bool)

			w.logger.Info("detected changes in %d file(s)", len(changed))
			onChange(changed)

		case err, ok := <-w.fs.Errors:
			if !ok {
				return nil
			}
			w.logger.Error("watcher error: %v", err)
		}
	}
}

// Close stops watching
func (w *Watcher) Close() error {
	return w.fs.Close()
}
