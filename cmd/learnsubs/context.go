package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"sync"

	"github.com/spf13/cobra"

	"learnsubs/internal/analysis"
	"learnsubs/internal/config"
	"learnsubs/internal/frequency"
	"learnsubs/internal/language"
	"learnsubs/internal/logging"
)

type commandContext struct {
	configFlag *string

	configOnce sync.Once
	config     *config.Config
	configErr  error

	mu       sync.Mutex
	logger   *slog.Logger
	logClose func() error
	store    *frequency.Store
}

func newCommandContext(configFlag *string) *commandContext {
	return &commandContext{configFlag: configFlag}
}

func (c *commandContext) ensureConfig() (*config.Config, error) {
	c.configOnce.Do(func() {
		var path string
		if c.configFlag != nil {
			path = strings.TrimSpace(*c.configFlag)
		}
		cfg, _, _, err := config.Load(path)
		if err != nil {
			c.configErr = err
			return
		}
		if err := cfg.EnsureDirectories(); err != nil {
			c.configErr = err
			return
		}
		c.config = cfg
	})
	return c.config, c.configErr
}

// loggerFor returns the process logger, writing console output to the
// command's stderr.
func (c *commandContext) loggerFor(cmd *cobra.Command) (*slog.Logger, error) {
	cfg, err := c.ensureConfig()
	if err != nil {
		return nil, err
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.logger != nil {
		return c.logger, nil
	}
	logger, logClose, err := logging.NewFromConfig(cfg, cmd.ErrOrStderr())
	if err != nil {
		return nil, err
	}
	c.logger = logger
	c.logClose = logClose
	return logger, nil
}

// frequencyStore opens the frequency database on first use.
func (c *commandContext) frequencyStore(ctx context.Context, logger *slog.Logger) (*frequency.Store, error) {
	cfg, err := c.ensureConfig()
	if err != nil {
		return nil, err
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.store != nil {
		return c.store, nil
	}
	store, err := frequency.Open(ctx, cfg.Paths.FrequencyDB, frequency.Options{StemFallback: cfg.Frequency.StemFallback}, logger)
	if err != nil {
		return nil, fmt.Errorf("open frequency database: %w", err)
	}
	c.store = store
	return store, nil
}

func (c *commandContext) newAnalyzer(cmd *cobra.Command) (*analysis.Analyzer, *slog.Logger, error) {
	cfg, err := c.ensureConfig()
	if err != nil {
		return nil, nil, err
	}
	logger, err := c.loggerFor(cmd)
	if err != nil {
		return nil, nil, err
	}
	store, err := c.frequencyStore(cmd.Context(), logger)
	if err != nil {
		return nil, nil, err
	}
	registry := analysis.NewRegistry(cfg, logger)
	return analysis.New(cfg, registry, store, logger), logger, nil
}

// close releases the frequency database and the log file. It runs after the
// command finishes, whether or not the command failed.
func (c *commandContext) close() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	var errs []error
	if c.store != nil {
		errs = append(errs, c.store.Close())
		c.store = nil
	}
	if c.logClose != nil {
		errs = append(errs, c.logClose())
		c.logClose = nil
	}
	return errors.Join(errs...)
}

// resolveLanguage picks the analysis language: the flag when given,
// otherwise the only enabled language.
func (c *commandContext) resolveLanguage(flag string) (string, error) {
	if strings.TrimSpace(flag) != "" {
		return flag, nil
	}
	cfg, err := c.ensureConfig()
	if err != nil {
		return "", err
	}
	enabled := cfg.EnabledLanguages()
	if len(enabled) == 1 {
		return enabled[0], nil
	}
	return "", fmt.Errorf("--lang is required (configured: %s)", strings.Join(enabled, ", "))
}

// corpusFor maps a --lang value to the frequency corpus it reads and writes.
// A configured language resolves to its corpus code, a configured corpus code
// is used as is, and any other valid language code names its own corpus.
func corpusFor(cfg *config.Config, value string) (string, error) {
	value = strings.ToLower(strings.TrimSpace(value))
	if value == "" {
		return "", errors.New("language is required")
	}
	code := language.ToISO2(value)
	if code != "" {
		if entry, ok := cfg.Languages[code]; ok && entry.Corpus != "" {
			return entry.Corpus, nil
		}
	}
	for _, entry := range cfg.Languages {
		if entry.Corpus == value {
			return entry.Corpus, nil
		}
	}
	if code == "" {
		return "", fmt.Errorf("unrecognized language %q", value)
	}
	return code, nil
}

func shouldSkipConfig(cmd *cobra.Command) bool {
	for c := cmd; c != nil; c = c.Parent() {
		if c.Annotations != nil && c.Annotations["skipConfigLoad"] == "true" {
			return true
		}
	}
	return false
}

func languageLabel(code string) string {
	name := language.DisplayName(code)
	if name == "" || strings.EqualFold(name, code) {
		return code
	}
	return fmt.Sprintf("%s (%s)", name, code)
}

func yesNo(value bool) string {
	if value {
		return "yes"
	}
	return "no"
}

func fprintf(w io.Writer, format string, args ...any) {
	_, _ = fmt.Fprintf(w, format, args...)
}
