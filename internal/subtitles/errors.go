package subtitles

import (
	"errors"
	"fmt"
	"io/fs"
)

var (
	// ErrNotFound reports that the subtitle path does not exist. It also
	// matches fs.ErrNotExist.
	ErrNotFound = fmt.Errorf("subtitle file not found: %w", fs.ErrNotExist)

	// ErrParseFailure reports a subtitle file that could not be parsed even
	// after the repair attempt.
	ErrParseFailure = errors.New("subtitle file still has parsing problems; fix it manually")

	// ErrNoRepairAnchor reports that no line looked like a first caption index.
	ErrNoRepairAnchor = errors.New("no first caption index line found")
)
