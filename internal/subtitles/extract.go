package subtitles

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"strings"

	"learnsubs/internal/logging"
	"learnsubs/internal/textutil"
)

// Extraction describes how the normalized text was obtained.
type Extraction struct {
	Captions   int
	Repaired   bool
	RepairPath string
}

// Extractor reads subtitle files and produces normalized caption text.
type Extractor struct {
	repairDir string
	logger    *slog.Logger
}

// NewExtractor creates an extractor that writes repaired copies into repairDir.
func NewExtractor(repairDir string, logger *slog.Logger) *Extractor {
	return &Extractor{
		repairDir: repairDir,
		logger:    logging.NewComponentLogger(logger, "extractor"),
	}
}

// Extract parses the subtitle at path and returns its cleaned caption text
// joined by single spaces. A file whose captions are all empty yields "".
func (e *Extractor) Extract(ctx context.Context, path string) (string, Extraction, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return "", Extraction{}, fmt.Errorf("%w: %s", ErrNotFound, path)
		}
		return "", Extraction{}, fmt.Errorf("read subtitle: %w", err)
	}

	var info Extraction
	result := Parse(raw)
	if !result.OK() {
		e.logger.Info("subtitle has parsing problems; trying to repair",
			logging.String("path", path),
			logging.Error(result.Err),
		)
		repairPath, repaired, err := Repair(ctx, raw, e.repairDir)
		switch {
		case errors.Is(err, ErrNoRepairAnchor):
			return "", Extraction{}, fmt.Errorf("%w: %s: %v", ErrParseFailure, path, result.Err)
		case err != nil:
			return "", Extraction{}, err
		case !repaired.OK():
			return "", Extraction{}, fmt.Errorf("%w: %s: %v", ErrParseFailure, path, repaired.Err)
		}
		logging.WarnWithContext(e.logger, "subtitle repaired", "subtitle_repaired",
			logging.String("path", path),
			logging.String("repair_path", repairPath),
			logging.String(logging.FieldErrorHint, "inspect the repaired copy and fix the source file"),
			logging.String(logging.FieldImpact, "captions before the first index line were dropped"),
		)
		result = repaired
		info.Repaired = true
		info.RepairPath = repairPath
	}

	info.Captions = len(result.Captions)
	return JoinCaptions(result.Captions), info, nil
}

// JoinCaptions cleans every caption payload and joins them into a single
// normalized string.
func JoinCaptions(captions []Caption) string {
	var b strings.Builder
	for _, caption := range captions {
		b.WriteString(textutil.CleanLine(caption.Text))
		b.WriteByte(' ')
	}
	return strings.TrimSpace(textutil.CollapseSpaces(b.String()))
}
