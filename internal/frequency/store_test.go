package frequency

import (
	"context"
	"errors"
	"math"
	"path/filepath"
	"strings"
	"testing"
)

func openTestStore(t *testing.T, opts Options) *Store {
	t.Helper()
	store, err := Open(context.Background(), filepath.Join(t.TempDir(), "db", "frequency.db"), opts, nil)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	t.Cleanup(func() { _ = store.Close() })
	return store
}

func TestImportAndLookup(t *testing.T) {
	ctx := context.Background()
	store := openTestStore(t, Options{})

	list := strings.Join([]string{
		"# word\tzipf",
		"Haus\t5.62",
		"gehen\t5.9",
		"",
		"Erbsensuppe 1.8",
	}, "\n")
	n, err := store.Import(ctx, "de", strings.NewReader(list))
	if err != nil {
		t.Fatalf("Import: %v", err)
	}
	if n != 3 {
		t.Fatalf("imported %d words, want 3", n)
	}

	tests := []struct {
		word string
		want float64
	}{
		{"haus", 5.62},
		{"Haus", 5.62},
		{"HAUS", 5.62},
		{"Erbsensuppe", 1.8},
		{"unbekannt", 0},
		{"", 0},
	}
	for _, tt := range tests {
		got, err := store.Zipf(ctx, tt.word, "de")
		if err != nil {
			t.Fatalf("Zipf(%q): %v", tt.word, err)
		}
		if math.Abs(got-tt.want) > 1e-9 {
			t.Errorf("Zipf(%q) = %v, want %v", tt.word, got, tt.want)
		}
	}

	if got, _ := store.Zipf(ctx, "haus", "en"); got != 0 {
		t.Errorf("lookup in other corpus = %v, want 0", got)
	}
}

func TestImportReplacesExistingScores(t *testing.T) {
	ctx := context.Background()
	store := openTestStore(t, Options{})

	if _, err := store.Import(ctx, "en", strings.NewReader("house\t4.0\n")); err != nil {
		t.Fatalf("first import: %v", err)
	}
	if _, err := store.Import(ctx, "en", strings.NewReader("house\t5.5\n")); err != nil {
		t.Fatalf("second import: %v", err)
	}
	got, err := store.Zipf(ctx, "house", "en")
	if err != nil {
		t.Fatalf("Zipf: %v", err)
	}
	if got != 5.5 {
		t.Fatalf("Zipf = %v, want 5.5", got)
	}

	counts, err := store.Counts(ctx)
	if err != nil {
		t.Fatalf("Counts: %v", err)
	}
	if counts["en"] != 1 {
		t.Fatalf("counts = %v, want en=1", counts)
	}
}

func TestImportRejectsMalformedLines(t *testing.T) {
	ctx := context.Background()
	store := openTestStore(t, Options{})

	cases := []string{
		"house\n",
		"house five\n",
		"house -1\n",
		"house 4.0 extra\n",
	}
	for _, input := range cases {
		if _, err := store.Import(ctx, "en", strings.NewReader("ok 3.0\n"+input)); err == nil {
			t.Errorf("Import(%q) succeeded, want error", input)
		} else if !strings.Contains(err.Error(), "line 2") {
			t.Errorf("Import(%q) error %q does not name line 2", input, err)
		}
	}

	counts, err := store.Counts(ctx)
	if err != nil {
		t.Fatalf("Counts: %v", err)
	}
	if counts["en"] != 0 {
		t.Fatalf("failed imports left %d rows behind", counts["en"])
	}
}

func TestStemFallback(t *testing.T) {
	ctx := context.Background()

	list := "run\t5.5\nrunner\t3.9\n"

	withFallback := openTestStore(t, Options{StemFallback: true})
	if _, err := withFallback.Import(ctx, "en", strings.NewReader(list)); err != nil {
		t.Fatalf("Import: %v", err)
	}
	got, err := withFallback.Zipf(ctx, "running", "en")
	if err != nil {
		t.Fatalf("Zipf: %v", err)
	}
	if got != 5.5 {
		t.Fatalf("stem fallback Zipf(running) = %v, want 5.5", got)
	}

	without := openTestStore(t, Options{})
	if _, err := without.Import(ctx, "en", strings.NewReader(list)); err != nil {
		t.Fatalf("Import: %v", err)
	}
	if got, _ := without.Zipf(ctx, "running", "en"); got != 0 {
		t.Fatalf("Zipf(running) without fallback = %v, want 0", got)
	}
}

func TestStemFallbackSkipsLanguagesWithoutStemmer(t *testing.T) {
	ctx := context.Background()
	store := openTestStore(t, Options{StemFallback: true})
	if _, err := store.Import(ctx, "de", strings.NewReader("gehen\t5.9\n")); err != nil {
		t.Fatalf("Import: %v", err)
	}
	if got, _ := store.Zipf(ctx, "gehend", "de"); got != 0 {
		t.Fatalf("Zipf(gehend) = %v, want 0", got)
	}
}

func TestReopenKeepsData(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "frequency.db")

	store, err := Open(ctx, path, Options{}, nil)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	if _, err := store.Import(ctx, "pt", strings.NewReader("casa\t5.4\n")); err != nil {
		t.Fatalf("Import: %v", err)
	}
	if err := store.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	reopened, err := Open(ctx, path, Options{}, nil)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	defer reopened.Close()
	if got, _ := reopened.Zipf(ctx, "casa", "pt"); got != 5.4 {
		t.Fatalf("Zipf(casa) after reopen = %v, want 5.4", got)
	}
}

func TestOpenRejectsNewerSchema(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "frequency.db")

	store, err := Open(ctx, path, Options{}, nil)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	if _, err := store.db.ExecContext(ctx, "UPDATE schema_version SET version = 99"); err != nil {
		t.Fatalf("bump version: %v", err)
	}
	_ = store.Close()

	if _, err := Open(ctx, path, Options{}, nil); !errors.Is(err, ErrSchemaMismatch) {
		t.Fatalf("Open error = %v, want ErrSchemaMismatch", err)
	}
}

func TestMapSource(t *testing.T) {
	src := MapSource{"de": {"haus": 5.6}}
	got, err := src.Zipf(context.Background(), "Haus", "de")
	if err != nil {
		t.Fatalf("Zipf: %v", err)
	}
	if got != 5.6 {
		t.Fatalf("Zipf = %v, want 5.6", got)
	}
	if got, _ := src.Zipf(context.Background(), "Haus", "en"); got != 0 {
		t.Fatalf("Zipf in missing corpus = %v, want 0", got)
	}
}
