// Package watch analyzes subtitle files as they appear in a directory.
package watch

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"learnsubs/internal/logging"
	"learnsubs/internal/subtitles"
)

// DefaultSettleDelay is how long a new file is left alone before it is handled,
// so that writers have a chance to finish.
const DefaultSettleDelay = 500 * time.Millisecond

// Handler processes one newly created subtitle file.
type Handler func(ctx context.Context, path string) error

// Options configures a Watcher.
type Options struct {
	MaxConcurrent int
	SettleDelay   time.Duration
}

// Watcher dispatches created .srt files in a directory to a Handler.
type Watcher struct {
	dir     string
	handler Handler
	opts    Options
	logger  *slog.Logger
	watcher *fsnotify.Watcher
	sem     chan struct{}
	wg      sync.WaitGroup
}

// New starts watching dir. Call Run to process events and Close when done.
func New(dir string, handler Handler, opts Options, logger *slog.Logger) (*Watcher, error) {
	if handler == nil {
		return nil, errors.New("watch: handler is required")
	}
	if opts.MaxConcurrent < 1 {
		opts.MaxConcurrent = 1
	}
	if opts.SettleDelay < 0 {
		opts.SettleDelay = 0
	}

	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("create watcher: %w", err)
	}
	if err := fw.Add(dir); err != nil {
		_ = fw.Close()
		return nil, fmt.Errorf("watch %s: %w", dir, err)
	}
	return &Watcher{
		dir:     dir,
		handler: handler,
		opts:    opts,
		logger:  logging.NewComponentLogger(logger, "watch"),
		watcher: fw,
		sem:     make(chan struct{}, opts.MaxConcurrent),
	}, nil
}

// Run handles events until ctx is cancelled, then waits for in-flight
// handlers and returns ctx.Err().
func (w *Watcher) Run(ctx context.Context) error {
	w.logger.Info("watching for subtitles",
		logging.String("dir", w.dir),
		logging.Int("max_concurrent", w.opts.MaxConcurrent),
	)
	defer w.wg.Wait()

	for {
		select {
		case <-ctx.Done():
			w.logger.Info("watcher stopping; waiting for running analyses")
			return ctx.Err()

		case event, ok := <-w.watcher.Events:
			if !ok {
				return errors.New("watcher events channel closed")
			}
			if !event.Has(fsnotify.Create) {
				continue
			}
			if !w.accepts(event.Name) {
				w.logger.Debug("ignoring file", logging.String("path", event.Name))
				continue
			}
			select {
			case w.sem <- struct{}{}:
			case <-ctx.Done():
				return ctx.Err()
			}
			w.wg.Add(1)
			go w.handle(ctx, event.Name)

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return errors.New("watcher errors channel closed")
			}
			w.logger.Error("watcher error", logging.Error(err))
		}
	}
}

func (w *Watcher) handle(ctx context.Context, path string) {
	defer w.wg.Done()
	defer func() { <-w.sem }()

	if w.opts.SettleDelay > 0 {
		timer := time.NewTimer(w.opts.SettleDelay)
		select {
		case <-ctx.Done():
			timer.Stop()
			return
		case <-timer.C:
		}
	}
	w.logger.Info("new subtitle detected", logging.String("path", path))
	if err := w.handler(ctx, path); err != nil {
		w.logger.Error("subtitle handling failed",
			logging.String("path", path),
			logging.Error(err),
		)
	}
}

func (w *Watcher) accepts(path string) bool {
	name := filepath.Base(path)
	if name == subtitles.RepairFileName || strings.HasPrefix(name, ".") {
		return false
	}
	return strings.EqualFold(filepath.Ext(name), ".srt")
}

// Close stops the underlying file watcher.
func (w *Watcher) Close() error {
	return w.watcher.Close()
}
