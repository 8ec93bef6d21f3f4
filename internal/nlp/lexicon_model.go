package nlp

import (
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"learnsubs/internal/language"
)

//go:embed models/*.yaml
var builtinModels embed.FS

// LexiconModel is the on-disk description of a lexicon tokenizer.
type LexiconModel struct {
	ID       string `yaml:"id"`
	Language string `yaml:"language"`
	// CapitalizedNouns disables the capitalization proper-noun heuristic for
	// languages that capitalize every noun.
	CapitalizedNouns bool              `yaml:"capitalized_nouns"`
	Stopwords        []string          `yaml:"stopwords"`
	NumberWords      []string          `yaml:"number_words"`
	ProperNouns      []string          `yaml:"proper_nouns"`
	Lemmas           map[string]string `yaml:"lemmas"`
	POS              map[string]string `yaml:"pos"`
}

// ParseLexiconModel decodes a YAML lexicon model.
func ParseLexiconModel(data []byte) (*LexiconModel, error) {
	var model LexiconModel
	if err := yaml.Unmarshal(data, &model); err != nil {
		return nil, fmt.Errorf("decode lexicon model: %w", err)
	}
	model.ID = strings.TrimSpace(model.ID)
	if model.ID == "" {
		return nil, errors.New("lexicon model: id is required")
	}
	model.Language = language.ToISO2(model.Language)
	if model.Language == "" {
		return nil, fmt.Errorf("lexicon model %s: unrecognized language", model.ID)
	}
	return &model, nil
}

// LoadLexiconModel finds modelID in dir (if set) and then among the built-in
// models. Files are named <model id>.yaml.
func LoadLexiconModel(dir, modelID string) (*LexiconModel, error) {
	name := modelID + ".yaml"
	if strings.ContainsAny(modelID, `/\`) {
		return nil, fmt.Errorf("%w: invalid model id %q", ErrModelNotFound, modelID)
	}

	var data []byte
	var err error
	if dir != "" {
		data, err = os.ReadFile(filepath.Join(dir, name))
		if err != nil && !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("read lexicon model: %w", err)
		}
	}
	if data == nil {
		data, err = builtinModels.ReadFile("models/" + name)
		if err != nil {
			return nil, fmt.Errorf("%w: %s", ErrModelNotFound, modelID)
		}
	}

	model, err := ParseLexiconModel(data)
	if err != nil {
		return nil, err
	}
	if model.ID != modelID {
		return nil, fmt.Errorf("lexicon model file %s declares id %q", name, model.ID)
	}
	return model, nil
}

// BuiltinModelIDs lists the identifiers of the embedded lexicon models.
func BuiltinModelIDs() []string {
	entries, err := builtinModels.ReadDir("models")
	if err != nil {
		return nil
	}
	ids := make([]string, 0, len(entries))
	for _, entry := range entries {
		ids = append(ids, strings.TrimSuffix(entry.Name(), ".yaml"))
	}
	return ids
}
