package analysis

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"learnsubs/internal/logging"
	"learnsubs/internal/subtitles"
)

// BatchItem is the outcome for one file of a batch. Exactly one of Result
// and Err is set.
type BatchItem struct {
	Path   string
	Result *Result
	Err    error
}

// semaphore is a counting semaphore bounding concurrent analyses.
type semaphore struct {
	ch chan struct{}
}

func newSemaphore(capacity int) *semaphore {
	if capacity < 1 {
		capacity = 1
	}
	return &semaphore{ch: make(chan struct{}, capacity)}
}

func (s *semaphore) acquire(ctx context.Context) error {
	select {
	case s.ch <- struct{}{}:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (s *semaphore) release() {
	<-s.ch
}

// Batch analyzes paths with at most workers analyses in flight. A failure
// for one file does not stop the others. Items are returned in input order.
func (a *Analyzer) Batch(ctx context.Context, paths []string, lang string, workers int) []BatchItem {
	items := make([]BatchItem, len(paths))
	sem := newSemaphore(workers)
	var wg sync.WaitGroup

	for i, path := range paths {
		items[i].Path = path
		if err := ctx.Err(); err != nil {
			items[i].Err = err
			continue
		}
		if err := sem.acquire(ctx); err != nil {
			items[i].Err = err
			continue
		}
		wg.Add(1)
		go func(i int, path string) {
			defer wg.Done()
			defer sem.release()
			result, err := a.Analyze(ctx, path, lang)
			if err != nil {
				a.logger.Error("analysis failed",
					logging.String("path", path),
					logging.Error(err),
				)
				items[i].Err = err
				return
			}
			items[i].Result = result
		}(i, path)
	}
	wg.Wait()

	failed := 0
	for _, item := range items {
		if item.Err != nil {
			failed++
		}
	}
	a.logger.Info("batch complete",
		logging.Int("files", len(items)),
		logging.Int("failed", failed),
		logging.Int("workers", workers),
	)
	return items
}

// ListSubtitles returns the .srt files directly inside dir sorted by name.
// Repaired side files are skipped.
func ListSubtitles(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("list subtitles: %w", err)
	}
	var paths []string
	for _, entry := range entries {
		if !entry.Type().IsRegular() {
			continue
		}
		name := entry.Name()
		if name == subtitles.RepairFileName || !IsSubtitleFile(name) {
			continue
		}
		paths = append(paths, filepath.Join(dir, name))
	}
	sort.Strings(paths)
	return paths, nil
}

// IsSubtitleFile reports whether name has an .srt extension.
func IsSubtitleFile(name string) bool {
	return strings.EqualFold(filepath.Ext(name), ".srt")
}
