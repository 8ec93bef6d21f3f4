package subtitles

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	"github.com/gofrs/flock"
)

// RepairFileName is the fixed name of the repaired copy written into the
// repair directory. The file is left in place after analysis.
const RepairFileName = "reworked_subtitle.srt"

// firstIndexPattern matches a line that is "1" optionally preceded by one
// stray character, such as a byte order mark or a typo.
var firstIndexPattern = regexp.MustCompile(`^.?1$`)

const repairLockRetry = 50 * time.Millisecond

// RepairContent cuts everything before the first line matching
// firstIndexPattern and replaces that line with a clean "1" index. The first
// match wins.
func RepairContent(raw []byte) ([]byte, error) {
	content := strings.ReplaceAll(string(raw), "\r\n", "\n")
	lines := strings.Split(content, "\n")
	for i, line := range lines {
		if !firstIndexPattern.MatchString(line) {
			continue
		}
		repaired := append([]string{"1"}, lines[i+1:]...)
		return []byte(strings.Join(repaired, "\n")), nil
	}
	return nil, ErrNoRepairAnchor
}

// Repair writes the repaired copy of raw to dir/RepairFileName and parses it
// back from disk. The write and re-parse happen under an advisory file lock
// because concurrent analyses share the fixed file name.
func Repair(ctx context.Context, raw []byte, dir string) (string, ParseResult, error) {
	repaired, err := RepairContent(raw)
	if err != nil {
		return "", ParseResult{}, err
	}

	if dir == "" {
		dir = "."
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", ParseResult{}, fmt.Errorf("create repair directory: %w", err)
	}
	path := filepath.Join(dir, RepairFileName)

	lock := flock.New(path + ".lock")
	locked, err := lock.TryLockContext(ctx, repairLockRetry)
	if err != nil {
		return "", ParseResult{}, fmt.Errorf("lock repair file: %w", err)
	}
	if !locked {
		return "", ParseResult{}, fmt.Errorf("lock repair file %s: not acquired", path)
	}
	defer lock.Unlock() //nolint:errcheck

	if err := os.WriteFile(path, repaired, 0o644); err != nil {
		return "", ParseResult{}, fmt.Errorf("write repaired subtitle: %w", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return "", ParseResult{}, fmt.Errorf("read repaired subtitle: %w", err)
	}
	return path, Parse(data), nil
}
