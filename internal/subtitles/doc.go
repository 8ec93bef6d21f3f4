// Package subtitles turns SRT subtitle files into normalized caption text.
//
// Parsing is strict: a file whose block structure is broken yields a failed
// ParseResult rather than a partial caption list. The Extractor then makes
// exactly one repair attempt (see Repair) by cutting everything before the
// first plausible "1" index line and re-parsing the repaired copy, which is
// left on disk for inspection. A file that still fails surfaces
// ErrParseFailure; a missing file surfaces ErrNotFound.
package subtitles
