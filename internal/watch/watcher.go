// Package watch re-renders the site configuration when the overlay or its
// env files change.
package watch

import (
	"context"
	"log/slog"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/kevinreber/sitecfg/internal/build"
	"github.com/kevinreber/sitecfg/internal/foundation/errors"
	"github.com/kevinreber/sitecfg/internal/logfields"
)

// DefaultDebounce coalesces editor save bursts into one rebuild.
const DefaultDebounce = 300 * time.Millisecond

// Watcher monitors the overlay directory and triggers rebuilds.
type Watcher struct {
	req      build.BuildRequest
	service  build.BuildService
	watcher  *fsnotify.Watcher
	dir      string
	names    map[string]bool
	debounce time.Duration

	// rebuilt receives the outcome of every debounced rebuild (for testing).
	rebuilt chan *build.BuildResult
}

// Option configures a Watcher.
type Option func(*Watcher)

// WithDebounce overrides DefaultDebounce.
func WithDebounce(d time.Duration) Option {
	return func(w *Watcher) { w.debounce = d }
}

// WithNotify sends each rebuild result to ch without blocking.
func WithNotify(ch chan *build.BuildResult) Option {
	return func(w *Watcher) { w.rebuilt = ch }
}

// New creates a watcher for req.ConfigPath. The directory is watched rather
// than the file so that editors replacing the file by rename are seen.
func New(service build.BuildService, req build.BuildRequest, opts ...Option) (*Watcher, error) {
	absPath, err := filepath.Abs(req.ConfigPath)
	if err != nil {
		return nil, errors.WrapError(err, errors.CategoryFileSystem, "resolve config path").
			WithContext("path", req.ConfigPath).Build()
	}
	req.ConfigPath = absPath

	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, errors.WrapError(err, errors.CategoryInternal, "create file watcher").Build()
	}

	w := &Watcher{
		req:      req,
		service:  service,
		watcher:  fw,
		dir:      filepath.Dir(absPath),
		names:    map[string]bool{filepath.Base(absPath): true, ".env": true, ".env.local": true},
		debounce: DefaultDebounce,
	}
	for _, opt := range opts {
		opt(w)
	}

	if err := fw.Add(w.dir); err != nil {
		_ = fw.Close()
		return nil, errors.WrapError(err, errors.CategoryFileSystem, "watch config directory").
			WithContext("dir", w.dir).Build()
	}
	return w, nil
}

// Run builds once, then rebuilds after each debounced change until ctx is
// done. A failed rebuild is logged and the previous output stays in place.
func (w *Watcher) Run(ctx context.Context) error {
	defer func() {
		if err := w.watcher.Close(); err != nil {
			slog.Error("Error closing file watcher", logfields.Error(err))
		}
	}()

	slog.Info("Watching configuration", logfields.Path(w.req.ConfigPath))
	w.rebuild(ctx)

	var timer *time.Timer
	var fire <-chan time.Time
	for {
		select {
		case <-ctx.Done():
			if timer != nil {
				timer.Stop()
			}
			return nil

		case event, ok := <-w.watcher.Events:
			if !ok {
				return nil
			}
			if !w.names[filepath.Base(event.Name)] {
				continue
			}
			if event.Op&fsnotify.Remove == fsnotify.Remove {
				slog.Warn("Watched file removed", logfields.File(event.Name))
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename|fsnotify.Remove) == 0 {
				continue
			}
			slog.Debug("Change detected", logfields.File(event.Name), slog.String("op", event.Op.String()))
			if timer == nil {
				timer = time.NewTimer(w.debounce)
			} else {
				if !timer.Stop() {
					select {
					case <-timer.C:
					default:
					}
				}
				timer.Reset(w.debounce)
			}
			fire = timer.C

		case <-fire:
			fire = nil
			w.rebuild(ctx)

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return nil
			}
			slog.Error("File watcher error", logfields.Error(err))
		}
	}
}

func (w *Watcher) rebuild(ctx context.Context) {
	res, err := w.service.Run(ctx, w.req)
	switch {
	case err != nil:
		slog.Error("Rebuild failed, keeping previous output", logfields.Path(w.req.ConfigPath), logfields.Error(err))
	case res.Status == build.BuildStatusUnchanged:
		slog.Debug("Rendered output unchanged", logfields.Path(res.OutputPath))
	default:
		slog.Info("Rebuilt site configuration",
			logfields.Path(res.OutputPath),
			logfields.Format(string(res.Format)),
			logfields.Snapshot(res.Snapshot))
	}
	if w.rebuilt != nil {
		select {
		case w.rebuilt <- res:
		default:
		}
	}
}
