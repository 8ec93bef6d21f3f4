package config

import (
	_ "embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/pelletier/go-toml/v2"
)

//go:embed sample_config.toml
var sampleConfig string

// Paths contains directory and file locations.
type Paths struct {
	LogDir      string `toml:"log_dir"`
	RepairDir   string `toml:"repair_dir"`
	FrequencyDB string `toml:"frequency_db"`
	ModelDir    string `toml:"model_dir"`
}

// Language maps a language code to the NLP model and frequency corpus used
// when analyzing subtitles in that language.
type Language struct {
	Model   string `toml:"model"`
	Corpus  string `toml:"corpus"`
	Enabled bool   `toml:"enabled"`
}

// Difficulty holds the frequency score thresholds for the difficulty tiers.
// Scores at or above EasyMin are easy, at or above IntermediateMin are
// intermediate, everything below is advanced.
type Difficulty struct {
	EasyMin         float64 `toml:"easy_min"`
	IntermediateMin float64 `toml:"intermediate_min"`
}

// NLP selects the tokenizer backend.
type NLP struct {
	// Backend is "lexicon" (built-in YAML lexicon models) or "command"
	// (external tokenizer process speaking JSON on stdout).
	Backend        string   `toml:"backend"`
	Command        string   `toml:"command"`
	Args           []string `toml:"args"`
	TimeoutSeconds int      `toml:"timeout_seconds"`
}

// Frequency contains frequency corpus lookup settings.
type Frequency struct {
	StemFallback bool `toml:"stem_fallback"`
}

// Batch contains settings for multi-file analysis.
type Batch struct {
	Workers int `toml:"workers"`
}

// Logging contains configuration for log output.
type Logging struct {
	Format string `toml:"format"`
	Level  string `toml:"level"`
}

// Config encapsulates all configuration values for learnsubs.
//
// Configuration sections by subsystem:
//   - Paths: log, repair, frequency database and model directories
//   - Languages: language code to model/corpus table
//   - Difficulty: tier thresholds
//   - NLP: tokenizer backend selection
//   - Frequency: corpus lookup behaviour
//   - Batch: worker count for directory analysis
//   - Logging: log format and level
type Config struct {
	Paths      Paths               `toml:"paths"`
	Languages  map[string]Language `toml:"languages"`
	Difficulty Difficulty          `toml:"difficulty"`
	NLP        NLP                 `toml:"nlp"`
	Frequency  Frequency           `toml:"frequency"`
	Batch      Batch               `toml:"batch"`
	Logging    Logging             `toml:"logging"`
}

// DefaultConfigPath returns the absolute path to the default configuration file location.
func DefaultConfigPath() (string, error) {
	return expandPath(defaultConfigPath)
}

// Load locates, parses, and validates a configuration file. The returned config has all
// path fields expanded and normalized.
func Load(path string) (*Config, string, bool, error) {
	cfg := Default()

	resolvedPath, exists, err := resolveConfigPath(path)
	if err != nil {
		return nil, "", false, err
	}

	if exists {
		file, err := os.Open(resolvedPath)
		if err != nil {
			return nil, "", false, fmt.Errorf("open config: %w", err)
		}
		defer file.Close()

		// Languages listed in the file replace the defaults entirely so a
		// user can disable a language by omitting it.
		cfg.Languages = nil
		decoder := toml.NewDecoder(file)
		if err := decoder.Decode(&cfg); err != nil {
			return nil, "", false, fmt.Errorf("parse config: %w", err)
		}
		if len(cfg.Languages) == 0 {
			cfg.Languages = defaultLanguages()
		}
	}

	if err := cfg.normalize(); err != nil {
		return nil, "", false, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, "", false, err
	}

	return &cfg, resolvedPath, exists, nil
}

func resolveConfigPath(path string) (string, bool, error) {
	if path != "" {
		expanded, err := expandPath(path)
		if err != nil {
			return "", false, err
		}
		_, err = os.Stat(expanded)
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				return expanded, false, nil
			}
			return "", false, fmt.Errorf("stat config: %w", err)
		}
		return expanded, true, nil
	}

	defaultPath, err := expandPath(defaultConfigPath)
	if err != nil {
		return "", false, err
	}

	projectPath, err := filepath.Abs("learnsubs.toml")
	if err != nil {
		return "", false, err
	}

	if info, err := os.Stat(defaultPath); err == nil && !info.IsDir() {
		return defaultPath, true, nil
	}
	if info, err := os.Stat(projectPath); err == nil && !info.IsDir() {
		return projectPath, true, nil
	}

	return defaultPath, false, nil
}

// EnsureDirectories creates the directories learnsubs writes into.
func (c *Config) EnsureDirectories() error {
	dirs := []string{c.Paths.LogDir, c.Paths.RepairDir}
	if c.Paths.FrequencyDB != "" {
		dirs = append(dirs, filepath.Dir(c.Paths.FrequencyDB))
	}
	for _, dir := range dirs {
		if strings.TrimSpace(dir) == "" {
			continue
		}
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create directory %q: %w", dir, err)
		}
	}
	return nil
}

// LanguageFor returns the language table entry for code if it is configured
// and enabled.
func (c *Config) LanguageFor(code string) (Language, bool) {
	code = strings.ToLower(strings.TrimSpace(code))
	lang, ok := c.Languages[code]
	if !ok || !lang.Enabled {
		return Language{}, false
	}
	return lang, true
}

// EnabledLanguages returns the sorted codes of every enabled language.
func (c *Config) EnabledLanguages() []string {
	codes := make([]string, 0, len(c.Languages))
	for code, lang := range c.Languages {
		if lang.Enabled {
			codes = append(codes, code)
		}
	}
	sort.Strings(codes)
	return codes
}

func expandPath(pathValue string) (string, error) {
	if pathValue == "" {
		return pathValue, nil
	}
	if strings.HasPrefix(pathValue, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home directory: %w", err)
		}
		if pathValue == "~" {
			pathValue = home
		} else if len(pathValue) > 1 && (pathValue[1] == '/' || pathValue[1] == '\\') {
			pathValue = filepath.Join(home, pathValue[2:])
		}
	}
	cleaned := filepath.Clean(pathValue)
	absolute, err := filepath.Abs(cleaned)
	if err != nil {
		return "", fmt.Errorf("resolve absolute path for %q: %w", cleaned, err)
	}
	return absolute, nil
}

// ExpandPath exposes the repository path expansion rules for other packages.
func ExpandPath(pathValue string) (string, error) {
	return expandPath(pathValue)
}

// CreateSample writes a sample configuration file to the specified location.
func CreateSample(path string) error {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create config directory: %w", err)
		}
	}

	if err := os.WriteFile(path, []byte(sampleConfig), 0o644); err != nil {
		return fmt.Errorf("write sample config: %w", err)
	}
	return nil
}

// Encode renders the configuration as TOML.
func (c *Config) Encode() ([]byte, error) {
	data, err := toml.Marshal(c)
	if err != nil {
		return nil, fmt.Errorf("encode config: %w", err)
	}
	return data, nil
}
