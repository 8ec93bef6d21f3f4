package analysis

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"learnsubs/internal/config"
	"learnsubs/internal/frequency"
	"learnsubs/internal/language"
	"learnsubs/internal/logging"
	"learnsubs/internal/nlp"
	"learnsubs/internal/subtitles"
	"learnsubs/internal/vocab"
)

// ErrUnsupportedLanguage is returned for languages that are not configured
// or not enabled.
var ErrUnsupportedLanguage = errors.New("unsupported language")

// Result is the outcome of analyzing one subtitle file.
type Result struct {
	Path           string
	Language       string
	RunID          string
	Text           string
	ImportantWords []string
	Dictionary     *vocab.StudyDictionary
	FilmLevel      float64
	Repaired       bool
	RepairPath     string
}

// Analyzer runs the extraction, selection and classification stages.
type Analyzer struct {
	cfg        *config.Config
	extractor  *subtitles.Extractor
	registry   *nlp.Registry
	classifier *vocab.Classifier
	logger     *slog.Logger
}

// New constructs an Analyzer. The registry and source are shared by every
// analysis the Analyzer runs.
func New(cfg *config.Config, registry *nlp.Registry, source frequency.Source, logger *slog.Logger) *Analyzer {
	thresholds := vocab.Thresholds{
		EasyMin:         cfg.Difficulty.EasyMin,
		IntermediateMin: cfg.Difficulty.IntermediateMin,
	}
	return &Analyzer{
		cfg:        cfg,
		extractor:  subtitles.NewExtractor(cfg.Paths.RepairDir, logger),
		registry:   registry,
		classifier: vocab.NewClassifier(source, thresholds),
		logger:     logging.NewComponentLogger(logger, "analyzer"),
	}
}

// NewRegistry builds the pipeline registry for the configured NLP backend.
func NewRegistry(cfg *config.Config, logger *slog.Logger) *nlp.Registry {
	var loader nlp.Loader
	switch cfg.NLP.Backend {
	case config.BackendCommand:
		timeout := time.Duration(cfg.NLP.TimeoutSeconds) * time.Second
		loader = nlp.CommandLoader(cfg.NLP.Command, cfg.NLP.Args, timeout)
	default:
		loader = nlp.LexiconLoader(cfg.Paths.ModelDir)
	}
	return nlp.NewRegistry(loader, logger)
}

// Analyze produces the study dictionary and film level for the subtitle at
// path, written in lang.
func (a *Analyzer) Analyze(ctx context.Context, path, lang string) (*Result, error) {
	code := language.ToISO2(lang)
	if code == "" {
		code = strings.ToLower(strings.TrimSpace(lang))
	}
	entry, ok := a.cfg.LanguageFor(code)
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedLanguage, lang)
	}

	runID := uuid.NewString()
	logger := a.logger.With(
		logging.String(logging.FieldRunID, runID),
		logging.String("path", path),
		logging.String("lang", code),
	)
	started := time.Now()

	text, info, err := a.extractor.Extract(ctx, path)
	if err != nil {
		return nil, err
	}
	logger.Debug("subtitle text extracted",
		logging.Int("captions", info.Captions),
		logging.Int("chars", len(text)),
		logging.Bool("repaired", info.Repaired),
	)

	pipeline, err := a.registry.Get(ctx, entry.Model)
	if err != nil {
		return nil, fmt.Errorf("load model %q: %w", entry.Model, err)
	}

	words, err := vocab.Select(ctx, text, pipeline, code)
	if err != nil {
		return nil, err
	}

	dict, level, err := a.classifier.Classify(ctx, words, entry.Corpus)
	if err != nil {
		return nil, err
	}

	counts := dict.Counts()
	logger.Info("analysis complete",
		logging.Float64("film_level", level),
		logging.Int("words", dict.Len()),
		logging.Int("easy", counts[vocab.Easy]),
		logging.Int("intermediate", counts[vocab.Intermediate]),
		logging.Int("advanced", counts[vocab.Advanced]),
		logging.Duration("elapsed", time.Since(started)),
	)

	return &Result{
		Path:           path,
		Language:       code,
		RunID:          runID,
		Text:           text,
		ImportantWords: words,
		Dictionary:     dict,
		FilmLevel:      level,
		Repaired:       info.Repaired,
		RepairPath:     info.RepairPath,
	}, nil
}
