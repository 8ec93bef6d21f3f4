package frequency

import (
	"context"
	"database/sql"
	_ "embed"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/kljensen/snowball"
	"golang.org/x/text/unicode/norm"
	_ "modernc.org/sqlite"

	"learnsubs/internal/language"
	"learnsubs/internal/logging"
)

//go:embed schema.sql
var schemaSQL string

// schemaVersion is the current schema version. Bump this when the schema changes.
const schemaVersion = 1

// ErrSchemaMismatch indicates the database schema version doesn't match the expected version.
var ErrSchemaMismatch = errors.New("schema version mismatch")

// Options configures a Store.
type Options struct {
	// StemFallback retries misses with the snowball stem of the word for
	// languages that have a stemmer.
	StemFallback bool
}

// Store is a SQLite-backed Source.
type Store struct {
	db     *sql.DB
	path   string
	opts   Options
	logger *slog.Logger
}

// Open initializes or connects to the frequency database.
func Open(ctx context.Context, path string, opts Options, logger *slog.Logger) (*Store, error) {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create frequency db directory: %w", err)
		}
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}

	pragmas := []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA busy_timeout = 5000",
	}
	for _, pragma := range pragmas {
		if _, execErr := db.ExecContext(ctx, pragma); execErr != nil {
			_ = db.Close()
			return nil, fmt.Errorf("apply pragma %q: %w", pragma, execErr)
		}
	}

	store := &Store{
		db:     db,
		path:   path,
		opts:   opts,
		logger: logging.NewComponentLogger(logger, "frequency"),
	}
	if err := store.initSchema(ctx); err != nil {
		_ = db.Close()
		return nil, err
	}
	return store, nil
}

// Close closes the underlying database connection.
func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

// Path returns the database file path.
func (s *Store) Path() string { return s.path }

func (s *Store) initSchema(ctx context.Context) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin schema tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, schemaSQL); err != nil {
		return fmt.Errorf("create schema: %w", err)
	}

	var version int
	err = tx.QueryRowContext(ctx, "SELECT version FROM schema_version LIMIT 1").Scan(&version)
	switch {
	case errors.Is(err, sql.ErrNoRows):
		if _, err := tx.ExecContext(ctx, "INSERT INTO schema_version (version) VALUES (?)", schemaVersion); err != nil {
			return fmt.Errorf("record schema version: %w", err)
		}
	case err != nil:
		return fmt.Errorf("read schema version: %w", err)
	case version != schemaVersion:
		return fmt.Errorf("%w: database has version %d, expected %d (delete %s and re-import)",
			ErrSchemaMismatch, version, schemaVersion, s.path)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit schema: %w", err)
	}
	return nil
}

// Zipf implements Source.
func (s *Store) Zipf(ctx context.Context, word, lang string) (float64, error) {
	lower := wordKey(lang, word)
	if lower == "" {
		return 0, nil
	}

	var zipf float64
	err := s.db.QueryRowContext(ctx,
		"SELECT zipf FROM word_frequency WHERE lang = ? AND word = ?", lang, lower,
	).Scan(&zipf)
	if err == nil {
		return zipf, nil
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return 0, fmt.Errorf("lookup %q: %w", lower, err)
	}

	if !s.opts.StemFallback {
		return 0, nil
	}
	stem := stemOf(lower, lang)
	if stem == "" {
		return 0, nil
	}
	var best sql.NullFloat64
	err = s.db.QueryRowContext(ctx,
		"SELECT MAX(zipf) FROM word_frequency WHERE lang = ? AND stem = ?", lang, stem,
	).Scan(&best)
	if err != nil {
		return 0, fmt.Errorf("lookup stem %q: %w", stem, err)
	}
	if best.Valid {
		s.logger.Debug("frequency stem fallback",
			logging.String("word", lower),
			logging.String("stem", stem),
			logging.Float64("zipf", best.Float64),
		)
		return best.Float64, nil
	}
	return 0, nil
}

// Counts returns the number of stored words per language.
func (s *Store) Counts(ctx context.Context) (map[string]int, error) {
	rows, err := s.db.QueryContext(ctx, "SELECT lang, COUNT(1) FROM word_frequency GROUP BY lang")
	if err != nil {
		return nil, fmt.Errorf("count words: %w", err)
	}
	defer rows.Close()

	counts := make(map[string]int)
	for rows.Next() {
		var lang string
		var n int
		if err := rows.Scan(&lang, &n); err != nil {
			return nil, fmt.Errorf("scan count: %w", err)
		}
		counts[lang] = n
	}
	return counts, rows.Err()
}

// wordKey is the stored form of a word: lowercase in NFC.
func wordKey(lang, word string) string {
	return norm.NFC.String(language.Lower(lang, strings.TrimSpace(word)))
}

// stemOf returns the snowball stem of word, or "" when the language has no
// stemmer.
func stemOf(word, lang string) string {
	stemmer := language.StemmerName(lang)
	if stemmer == "" {
		return ""
	}
	stem, err := snowball.Stem(word, stemmer, true)
	if err != nil {
		return ""
	}
	return stem
}
