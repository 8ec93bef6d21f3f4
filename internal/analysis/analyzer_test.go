package analysis_test

import (
	"context"
	"errors"
	"math"
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"learnsubs/internal/analysis"
	"learnsubs/internal/config"
	"learnsubs/internal/frequency"
	"learnsubs/internal/subtitles"
	"learnsubs/internal/testsupport"
	"learnsubs/internal/vocab"
)

func newAnalyzer(t *testing.T, opts ...testsupport.ConfigOption) (*analysis.Analyzer, *config.Config) {
	t.Helper()
	cfg := testsupport.NewConfig(t, opts...)

	ctx := context.Background()
	store, err := frequency.Open(ctx, cfg.Paths.FrequencyDB, frequency.Options{StemFallback: cfg.Frequency.StemFallback}, nil)
	if err != nil {
		t.Fatalf("open frequency store: %v", err)
	}
	t.Cleanup(func() { _ = store.Close() })
	if _, err := store.ImportFile(ctx, "de", filepath.Join("testdata", "de_frequency.tsv")); err != nil {
		t.Fatalf("import frequencies: %v", err)
	}

	registry := analysis.NewRegistry(cfg, nil)
	return analysis.New(cfg, registry, store, nil), cfg
}

func TestAnalyzeBeginnerEpisode(t *testing.T) {
	analyzer, _ := newAnalyzer(t)

	path := filepath.Join("testdata", "nicos_weg_a1.srt")
	result, err := analyzer.Analyze(context.Background(), path, "de")
	if err != nil {
		t.Fatalf("Analyze: %v", err)
	}

	if result.RunID == "" {
		t.Fatal("expected a run id")
	}
	if result.Language != "de" {
		t.Fatalf("language = %q", result.Language)
	}
	if result.Repaired {
		t.Fatal("well-formed file should not be repaired")
	}
	wantText := "Hallo, ich bin Nico. Ich wohne in Berlin. Das Haus ist gut. Ich trinke gern Kaffee. " +
		"Wir gehen jetzt nach Hause. Mein Freund kommt heute."
	if result.Text != wantText {
		t.Fatalf("text = %q", result.Text)
	}

	for _, w := range result.ImportantWords {
		switch w {
		case "Nico", "Berlin", "ich", "Ich", "bin", "in", "ist":
			t.Fatalf("important words contain %q: %v", w, result.ImportantWords)
		}
	}
	if _, ok := result.Dictionary.Get("wohnen"); !ok {
		t.Fatalf("expected lemma wohnen in %v", result.ImportantWords)
	}
	if result.Dictionary.Len() != len(result.ImportantWords) {
		t.Fatalf("dictionary has %d entries for %d words", result.Dictionary.Len(), len(result.ImportantWords))
	}
	if result.FilmLevel < 5.0 {
		t.Fatalf("beginner film level = %v, want >= 5", result.FilmLevel)
	}
}

func TestFilmLevelDecreasesWithCourseLevel(t *testing.T) {
	analyzer, _ := newAnalyzer(t)
	ctx := context.Background()

	levels := make([]float64, 0, 3)
	for _, name := range []string{"nicos_weg_a1.srt", "nicos_weg_a2.srt", "nicos_weg_b1.srt"} {
		result, err := analyzer.Analyze(ctx, filepath.Join("testdata", name), "de")
		if err != nil {
			t.Fatalf("Analyze(%s): %v", name, err)
		}
		levels = append(levels, result.FilmLevel)
	}
	if !(levels[0] > levels[1] && levels[1] > levels[2]) {
		t.Fatalf("film levels not decreasing: A1=%.3f A2=%.3f B1=%.3f", levels[0], levels[1], levels[2])
	}
}

func TestAnalyzeAdvancedEpisodeHasAdvancedWords(t *testing.T) {
	analyzer, _ := newAnalyzer(t)
	result, err := analyzer.Analyze(context.Background(), filepath.Join("testdata", "nicos_weg_b1.srt"), "deu")
	if err != nil {
		t.Fatalf("Analyze: %v", err)
	}
	advanced := result.Dictionary.Words(vocab.Advanced)
	found := false
	for _, w := range advanced {
		if w == "Aufenthaltsgenehmigung" {
			found = true
		}
	}
	if !found {
		t.Fatalf("advanced words = %v", advanced)
	}
}

func TestAnalyzeErrors(t *testing.T) {
	analyzer, cfg := newAnalyzer(t)
	ctx := context.Background()
	dir := testsupport.BaseDir(cfg)

	if _, err := analyzer.Analyze(ctx, filepath.Join(dir, "missing.srt"), "de"); !errors.Is(err, subtitles.ErrNotFound) {
		t.Fatalf("missing file error = %v, want ErrNotFound", err)
	}

	empty := testsupport.WriteSRT(t, dir, "empty.srt", "", "<i></i>")
	if _, err := analyzer.Analyze(ctx, empty, "de"); !errors.Is(err, vocab.ErrEmptyCorpus) {
		t.Fatalf("empty captions error = %v, want ErrEmptyCorpus", err)
	}

	stopwords := testsupport.WriteSRT(t, dir, "stop.srt", "Ich bin da.", "Nico und Selina.")
	if _, err := analyzer.Analyze(ctx, stopwords, "de"); !errors.Is(err, vocab.ErrEmptyCorpus) {
		t.Fatalf("stopword-only error = %v, want ErrEmptyCorpus", err)
	}

	broken := testsupport.WriteFile(t, filepath.Join(dir, "broken.srt"), "kein Untertitel\nnur Text\n")
	if _, err := analyzer.Analyze(ctx, broken, "de"); !errors.Is(err, subtitles.ErrParseFailure) {
		t.Fatalf("broken file error = %v, want ErrParseFailure", err)
	}

	for _, lang := range []string{"fr", "klingon", ""} {
		if _, err := analyzer.Analyze(ctx, empty, lang); !errors.Is(err, analysis.ErrUnsupportedLanguage) {
			t.Fatalf("Analyze(lang=%q) error = %v, want ErrUnsupportedLanguage", lang, err)
		}
	}
}

func TestAnalyzeRepairsMalformedFile(t *testing.T) {
	analyzer, cfg := newAnalyzer(t)
	dir := testsupport.BaseDir(cfg)

	content := "\ufeff" + testsupport.SRT("Das Haus ist gut.", "Wir gehen nach Hause.")
	path := testsupport.WriteFile(t, filepath.Join(dir, "bom.srt"), content)

	result, err := analyzer.Analyze(context.Background(), path, "de")
	if err != nil {
		t.Fatalf("Analyze: %v", err)
	}
	if !result.Repaired {
		t.Fatal("expected repair path to be used")
	}
	if result.RepairPath != filepath.Join(cfg.Paths.RepairDir, subtitles.RepairFileName) {
		t.Fatalf("repair path = %q", result.RepairPath)
	}
	if _, err := os.Stat(result.RepairPath); err != nil {
		t.Fatalf("repaired copy missing: %v", err)
	}
	if result.Text != "Das Haus ist gut. Wir gehen nach Hause." {
		t.Fatalf("text = %q", result.Text)
	}
}

func TestAnalyzeUsesConfiguredThresholds(t *testing.T) {
	analyzer, _ := newAnalyzer(t, testsupport.WithThresholds(6.5, 6.0))
	result, err := analyzer.Analyze(context.Background(), filepath.Join("testdata", "nicos_weg_a1.srt"), "de")
	if err != nil {
		t.Fatalf("Analyze: %v", err)
	}
	counts := result.Dictionary.Counts()
	if counts[vocab.Easy] != 0 || counts[vocab.Intermediate] != 2 {
		t.Fatalf("counts with raised thresholds = %v", counts)
	}
	if counts[vocab.Advanced] != result.Dictionary.Len()-2 {
		t.Fatalf("counts with raised thresholds = %v", counts)
	}
}

func TestAnalyzeWithCommandTokenizer(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("shell scripts not supported on windows")
	}
	script := filepath.Join(t.TempDir(), "tokenizer")
	body := `#!/bin/sh
cat >/dev/null
printf '[{"text":"Martin","lemma":"Martin","pos":"PROPN"},{"text":"sucht","lemma":"suchen","pos":"VERB"},` +
		`{"text":"ein","lemma":"ein","pos":"DET","is_stop":true},{"text":"Haus","lemma":"Haus","pos":"NOUN"},` +
		`{"text":".","lemma":".","pos":"PUNCT","is_punct":true}]'
`
	if err := os.WriteFile(script, []byte(body), 0o755); err != nil {
		t.Fatalf("write tokenizer: %v", err)
	}

	analyzer, cfg := newAnalyzer(t, testsupport.WithCommandBackend(script, "{model}"))
	path := testsupport.WriteSRT(t, testsupport.BaseDir(cfg), "martin.srt", "Martin sucht ein Haus.")

	result, err := analyzer.Analyze(context.Background(), path, "de")
	if err != nil {
		t.Fatalf("Analyze: %v", err)
	}
	if _, ok := result.Dictionary.Get("Martin"); ok {
		t.Fatalf("proper noun tagged by the tokenizer was kept: %v", result.ImportantWords)
	}
	if len(result.ImportantWords) != 2 {
		t.Fatalf("important words = %v, want suchen and Haus", result.ImportantWords)
	}
	entry, ok := result.Dictionary.Get("Haus")
	if !ok || entry.Score != 5.6 {
		t.Fatalf("Haus entry = %+v (found %v), want score 5.6", entry, ok)
	}
	if want := (5.1 + 5.6) / 2; math.Abs(result.FilmLevel-want) > 1e-9 {
		t.Fatalf("film level = %v, want %v", result.FilmLevel, want)
	}
}
