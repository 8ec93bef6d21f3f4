package config

import (
	"fmt"
	"os"
	"strings"

	"learnsubs/internal/language"
)

func (c *Config) normalize() error {
	if err := c.normalizePaths(); err != nil {
		return err
	}
	if err := c.normalizeLanguages(); err != nil {
		return err
	}
	c.normalizeNLP()
	c.normalizeLogging()
	return nil
}

func (c *Config) normalizePaths() error {
	var err error
	if c.Paths.LogDir, err = expandPath(c.Paths.LogDir); err != nil {
		return fmt.Errorf("paths.log_dir: %w", err)
	}
	if strings.TrimSpace(c.Paths.RepairDir) == "" {
		c.Paths.RepairDir = defaultRepairDir
	}
	if c.Paths.RepairDir, err = expandPath(c.Paths.RepairDir); err != nil {
		return fmt.Errorf("paths.repair_dir: %w", err)
	}
	if value, ok := os.LookupEnv(defaultFrequencyFromEnv); ok && strings.TrimSpace(value) != "" {
		c.Paths.FrequencyDB = strings.TrimSpace(value)
	}
	if strings.TrimSpace(c.Paths.FrequencyDB) == "" {
		c.Paths.FrequencyDB = defaultFrequencyDB
	}
	if c.Paths.FrequencyDB, err = expandPath(c.Paths.FrequencyDB); err != nil {
		return fmt.Errorf("paths.frequency_db: %w", err)
	}
	if c.Paths.ModelDir, err = expandPath(strings.TrimSpace(c.Paths.ModelDir)); err != nil {
		return fmt.Errorf("paths.model_dir: %w", err)
	}
	return nil
}

func (c *Config) normalizeLanguages() error {
	normalized := make(map[string]Language, len(c.Languages))
	for code, lang := range c.Languages {
		key := language.ToISO2(code)
		if key == "" {
			return fmt.Errorf("languages: unrecognized language code %q", code)
		}
		if _, dup := normalized[key]; dup {
			return fmt.Errorf("languages: %q configured more than once", key)
		}
		lang.Model = strings.TrimSpace(lang.Model)
		lang.Corpus = strings.ToLower(strings.TrimSpace(lang.Corpus))
		if lang.Corpus == "" {
			lang.Corpus = key
		}
		normalized[key] = lang
	}
	c.Languages = normalized
	return nil
}

func (c *Config) normalizeNLP() {
	c.NLP.Backend = strings.ToLower(strings.TrimSpace(c.NLP.Backend))
	if c.NLP.Backend == "" {
		c.NLP.Backend = defaultNLPBackend
	}
	c.NLP.Command = strings.TrimSpace(c.NLP.Command)
	if c.NLP.TimeoutSeconds <= 0 {
		c.NLP.TimeoutSeconds = defaultNLPTimeout
	}
}

func (c *Config) normalizeLogging() {
	c.Logging.Format = strings.ToLower(strings.TrimSpace(c.Logging.Format))
	if c.Logging.Format == "" {
		c.Logging.Format = defaultLogFormat
	}
	c.Logging.Level = strings.ToLower(strings.TrimSpace(c.Logging.Level))
	if c.Logging.Level == "" {
		c.Logging.Level = defaultLogLevel
	}
}
