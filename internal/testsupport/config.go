package testsupport

import (
	"path/filepath"
	"testing"

	"learnsubs/internal/config"
)

// ConfigOption allows callers to customize the generated test configuration.
type ConfigOption func(*configBuilder)

type configBuilder struct {
	t       testing.TB
	baseDir string
	cfg     *config.Config
}

// NewConfig produces a config seeded with unique temp directories per test.
// It defaults common fields and applies any provided options.
func NewConfig(t testing.TB, opts ...ConfigOption) *config.Config {
	t.Helper()

	base := t.TempDir()
	cfgVal := config.Default()
	cfgVal.Paths.LogDir = filepath.Join(base, "logs")
	cfgVal.Paths.RepairDir = filepath.Join(base, "repair")
	cfgVal.Paths.FrequencyDB = filepath.Join(base, "frequency.db")
	cfgVal.Batch.Workers = 1

	builder := &configBuilder{
		t:       t,
		baseDir: base,
		cfg:     &cfgVal,
	}

	for _, opt := range opts {
		opt(builder)
	}

	if err := builder.cfg.Validate(); err != nil {
		t.Fatalf("invalid test config: %v", err)
	}
	return builder.cfg
}

// WithWorkers overrides the batch worker count.
func WithWorkers(n int) ConfigOption {
	return func(b *configBuilder) {
		b.cfg.Batch.Workers = n
	}
}

// WithModelDir points the lexicon model directory at dir.
func WithModelDir(dir string) ConfigOption {
	return func(b *configBuilder) {
		b.cfg.Paths.ModelDir = dir
	}
}

// WithLanguage adds or replaces a language table entry.
func WithLanguage(code, model, corpus string) ConfigOption {
	return func(b *configBuilder) {
		b.cfg.Languages[code] = config.Language{Model: model, Corpus: corpus, Enabled: true}
	}
}

// BaseDir returns the root temp directory backing the generated config.
func BaseDir(cfg *config.Config) string {
	return filepath.Dir(cfg.Paths.LogDir)
}

// WithThresholds overrides the difficulty tier boundaries.
func WithThresholds(easyMin, intermediateMin float64) ConfigOption {
	return func(b *configBuilder) {
		b.cfg.Difficulty.EasyMin = easyMin
		b.cfg.Difficulty.IntermediateMin = intermediateMin
	}
}

// WithCommandBackend switches tokenization to an external command.
func WithCommandBackend(command string, args ...string) ConfigOption {
	return func(b *configBuilder) {
		b.cfg.NLP.Backend = config.BackendCommand
		b.cfg.NLP.Command = command
		b.cfg.NLP.Args = args
	}
}
