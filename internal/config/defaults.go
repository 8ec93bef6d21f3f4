package config

const (
	defaultConfigPath       = "~/.config/learnsubs/config.toml"
	defaultLogDir           = "~/.local/share/learnsubs/logs"
	defaultRepairDir        = "."
	defaultFrequencyDB      = "~/.local/share/learnsubs/frequency.db"
	defaultEasyMin          = 5.0
	defaultIntermediateMin  = 3.5
	defaultNLPBackend       = "lexicon"
	defaultNLPTimeout       = 120
	defaultBatchWorkers     = 2
	defaultLogFormat        = "console"
	defaultLogLevel         = "info"
	defaultFrequencyFromEnv = "LEARNSUBS_FREQUENCY_DB"
)

// NLP backends.
const (
	BackendLexicon = "lexicon"
	BackendCommand = "command"
)

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Paths: Paths{
			LogDir:      defaultLogDir,
			RepairDir:   defaultRepairDir,
			FrequencyDB: defaultFrequencyDB,
		},
		Languages: defaultLanguages(),
		Difficulty: Difficulty{
			EasyMin:         defaultEasyMin,
			IntermediateMin: defaultIntermediateMin,
		},
		NLP: NLP{
			Backend:        defaultNLPBackend,
			TimeoutSeconds: defaultNLPTimeout,
		},
		Frequency: Frequency{
			StemFallback: true,
		},
		Batch: Batch{
			Workers: defaultBatchWorkers,
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
	}
}

func defaultLanguages() map[string]Language {
	return map[string]Language{
		"de": {Model: "de_lexicon_md", Corpus: "de", Enabled: true},
		"en": {Model: "en_lexicon_md", Corpus: "en", Enabled: true},
		"pt": {Model: "pt_lexicon_md", Corpus: "pt", Enabled: true},
	}
}
