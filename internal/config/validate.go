package config

import (
	"errors"
	"fmt"
)

// Validate ensures the configuration is usable.
func (c *Config) Validate() error {
	if err := c.validateLanguages(); err != nil {
		return err
	}
	if err := c.validateDifficulty(); err != nil {
		return err
	}
	if err := c.validateNLP(); err != nil {
		return err
	}
	if err := c.validateBatch(); err != nil {
		return err
	}
	return c.validateLogging()
}

func (c *Config) validateLanguages() error {
	enabled := 0
	for code, lang := range c.Languages {
		if !lang.Enabled {
			continue
		}
		enabled++
		if lang.Model == "" {
			return fmt.Errorf("languages.%s.model must be set when the language is enabled", code)
		}
		if lang.Corpus == "" {
			return fmt.Errorf("languages.%s.corpus must be set when the language is enabled", code)
		}
	}
	if enabled == 0 {
		return errors.New("languages: at least one language must be enabled")
	}
	return nil
}

func (c *Config) validateDifficulty() error {
	if c.Difficulty.IntermediateMin <= 0 {
		return errors.New("difficulty.intermediate_min must be positive")
	}
	if c.Difficulty.EasyMin <= c.Difficulty.IntermediateMin {
		return errors.New("difficulty.easy_min must be greater than difficulty.intermediate_min")
	}
	return nil
}

func (c *Config) validateNLP() error {
	switch c.NLP.Backend {
	case BackendLexicon:
		return nil
	case BackendCommand:
		if c.NLP.Command == "" {
			return errors.New("nlp.command must be set when nlp.backend is \"command\"")
		}
		return nil
	default:
		return fmt.Errorf("nlp.backend: unsupported value %q", c.NLP.Backend)
	}
}

func (c *Config) validateBatch() error {
	if c.Batch.Workers < 1 {
		return errors.New("batch.workers must be at least 1")
	}
	return nil
}

func (c *Config) validateLogging() error {
	switch c.Logging.Format {
	case "console", "json":
	default:
		return fmt.Errorf("logging.format: unsupported value %q", c.Logging.Format)
	}
	switch c.Logging.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("logging.level: unsupported value %q", c.Logging.Level)
	}
	return nil
}
