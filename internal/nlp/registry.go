package nlp

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"strings"
	"sync"
	"time"

	"learnsubs/internal/logging"
)

// Registry caches loaded pipelines by model identifier. Each identifier is
// loaded at most once; concurrent first callers wait for the same load.
// Failed loads are not cached. Entries are never evicted.
type Registry struct {
	loader Loader
	logger *slog.Logger

	mu      sync.Mutex
	entries map[string]*registryEntry
}

type registryEntry struct {
	ready    chan struct{}
	pipeline Pipeline
	err      error
}

// NewRegistry creates a registry backed by loader.
func NewRegistry(loader Loader, logger *slog.Logger) *Registry {
	return &Registry{
		loader:  loader,
		logger:  logging.NewComponentLogger(logger, "nlp"),
		entries: make(map[string]*registryEntry),
	}
}

// Get returns the pipeline for modelID, loading it on first use.
func (r *Registry) Get(ctx context.Context, modelID string) (Pipeline, error) {
	modelID = strings.TrimSpace(modelID)
	if modelID == "" {
		return nil, fmt.Errorf("%w: empty model id", ErrModelNotFound)
	}

	r.mu.Lock()
	entry, ok := r.entries[modelID]
	if !ok {
		entry = &registryEntry{ready: make(chan struct{})}
		r.entries[modelID] = entry
		r.mu.Unlock()
		r.load(ctx, modelID, entry)
		return entry.pipeline, entry.err
	}
	r.mu.Unlock()

	select {
	case <-entry.ready:
		return entry.pipeline, entry.err
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

func (r *Registry) load(ctx context.Context, modelID string, entry *registryEntry) {
	defer close(entry.ready)

	started := time.Now()
	pipeline, err := r.loader(ctx, modelID)
	if err != nil {
		entry.err = fmt.Errorf("load model %s: %w", modelID, err)
		r.mu.Lock()
		delete(r.entries, modelID)
		r.mu.Unlock()
		return
	}
	entry.pipeline = pipeline
	r.logger.Debug("nlp model loaded",
		logging.String("model", modelID),
		logging.Duration("elapsed", time.Since(started)),
	)
}

// Loaded returns the identifiers of successfully loaded models, sorted.
func (r *Registry) Loaded() []string {
	r.mu.Lock()
	defer r.mu.Unlock()

	ids := make([]string, 0, len(r.entries))
	for id, entry := range r.entries {
		select {
		case <-entry.ready:
			if entry.err == nil {
				ids = append(ids, id)
			}
		default:
		}
	}
	sort.Strings(ids)
	return ids
}
