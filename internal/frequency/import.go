package frequency

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"math"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/gofrs/flock"

	"learnsubs/internal/logging"
)

const importLockRetry = 100 * time.Millisecond

// ImportFile loads a word list file into the store. See Import.
func (s *Store) ImportFile(ctx context.Context, lang, path string) (int, error) {
	file, err := os.Open(path)
	if err != nil {
		return 0, fmt.Errorf("open word list: %w", err)
	}
	defer file.Close()
	return s.Import(ctx, lang, file)
}

// Import reads "word zipf" lines (tab or space separated, # comments allowed)
// and upserts them for lang in a single transaction. Only one import may run
// against a database file at a time.
func (s *Store) Import(ctx context.Context, lang string, r io.Reader) (int, error) {
	lang = strings.ToLower(strings.TrimSpace(lang))
	if lang == "" {
		return 0, fmt.Errorf("import: language is required")
	}

	lock := flock.New(s.path + ".lock")
	locked, err := lock.TryLockContext(ctx, importLockRetry)
	if err != nil {
		return 0, fmt.Errorf("lock frequency db: %w", err)
	}
	if !locked {
		return 0, fmt.Errorf("lock frequency db %s: not acquired", s.path)
	}
	defer lock.Unlock() //nolint:errcheck

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("begin import tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	stmt, err := tx.PrepareContext(ctx,
		`INSERT INTO word_frequency (lang, word, zipf, stem) VALUES (?, ?, ?, ?)
         ON CONFLICT (lang, word) DO UPDATE SET zipf = excluded.zipf, stem = excluded.stem`)
	if err != nil {
		return 0, fmt.Errorf("prepare import: %w", err)
	}
	defer stmt.Close()

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 64*1024), 1024*1024)
	lineNo := 0
	imported := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		word, zipf, err := parseEntry(line)
		if err != nil {
			return 0, fmt.Errorf("word list line %d: %w", lineNo, err)
		}
		word = wordKey(lang, word)
		var stem any
		if st := stemOf(word, lang); st != "" {
			stem = st
		}
		if _, err := stmt.ExecContext(ctx, lang, word, zipf, stem); err != nil {
			return 0, fmt.Errorf("insert %q: %w", word, err)
		}
		imported++
	}
	if err := scanner.Err(); err != nil {
		return 0, fmt.Errorf("read word list: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("commit import: %w", err)
	}
	s.logger.Info("frequency list imported",
		logging.String("lang", lang),
		logging.Int("words", imported),
	)
	return imported, nil
}

func parseEntry(line string) (string, float64, error) {
	fields := strings.Fields(line)
	if len(fields) != 2 {
		return "", 0, fmt.Errorf("expected \"word zipf\", got %q", line)
	}
	zipf, err := strconv.ParseFloat(fields[1], 64)
	if err != nil || math.IsNaN(zipf) || math.IsInf(zipf, 0) || zipf < 0 {
		return "", 0, fmt.Errorf("invalid zipf value %q", fields[1])
	}
	return fields[0], zipf, nil
}
