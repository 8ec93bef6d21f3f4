package subtitles

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Caption is one numbered, timed subtitle block.
type Caption struct {
	Index int
	Start time.Duration
	End   time.Duration
	Text  string
}

// SyntaxError describes where strict SRT parsing stopped.
type SyntaxError struct {
	Line int
	Msg  string
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("srt line %d: %s", e.Line, e.Msg)
}

// ParseResult is the outcome of a single parse attempt: either captions or
// the error that stopped parsing, never both.
type ParseResult struct {
	Captions []Caption
	Err      error
}

// OK reports whether the parse attempt succeeded.
func (r ParseResult) OK() bool {
	return r.Err == nil
}

// Parse reads SRT content. Blocks are separated by blank lines; each block is
// an integer index line, a "start --> end" timing line and zero or more text
// lines. Anything else fails the whole parse.
func Parse(data []byte) ParseResult {
	content := strings.ReplaceAll(string(data), "\r\n", "\n")
	lines := strings.Split(content, "\n")

	var captions []Caption
	i := 0
	for {
		for i < len(lines) && strings.TrimSpace(lines[i]) == "" {
			i++
		}
		if i >= len(lines) {
			break
		}

		index, err := strconv.Atoi(strings.TrimSpace(lines[i]))
		if err != nil || index < 0 {
			return ParseResult{Err: &SyntaxError{Line: i + 1, Msg: fmt.Sprintf("expected caption index, got %q", lines[i])}}
		}
		i++
		if i >= len(lines) {
			return ParseResult{Err: &SyntaxError{Line: i, Msg: "missing timing line after caption index"}}
		}
		start, end, err := parseTiming(lines[i])
		if err != nil {
			return ParseResult{Err: &SyntaxError{Line: i + 1, Msg: err.Error()}}
		}
		i++

		var text []string
		for i < len(lines) && strings.TrimSpace(lines[i]) != "" {
			text = append(text, lines[i])
			i++
		}
		captions = append(captions, Caption{
			Index: index,
			Start: start,
			End:   end,
			Text:  strings.Join(text, "\n"),
		})
	}
	return ParseResult{Captions: captions}
}

// parseTiming parses "00:00:01,000 --> 00:00:02,500". Trailing position
// hints after the end timestamp are ignored.
func parseTiming(line string) (time.Duration, time.Duration, error) {
	parts := strings.SplitN(line, "-->", 2)
	if len(parts) != 2 {
		return 0, 0, fmt.Errorf("expected timing line, got %q", line)
	}
	start, err := parseSRTTimestamp(parts[0])
	if err != nil {
		return 0, 0, err
	}
	endFields := strings.Fields(parts[1])
	if len(endFields) == 0 {
		return 0, 0, fmt.Errorf("missing end timestamp in %q", line)
	}
	end, err := parseSRTTimestamp(endFields[0])
	if err != nil {
		return 0, 0, err
	}
	return start, end, nil
}

func parseSRTTimestamp(value string) (time.Duration, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return 0, fmt.Errorf("empty timestamp")
	}
	// SRT uses a comma before milliseconds; some encoders write a period.
	value = strings.ReplaceAll(value, ".", ",")
	timeParts := strings.Split(value, ",")
	if len(timeParts) != 2 {
		return 0, fmt.Errorf("invalid timestamp %q", value)
	}
	hms := strings.Split(timeParts[0], ":")
	if len(hms) != 3 {
		return 0, fmt.Errorf("invalid timestamp %q", value)
	}
	hours, errH := strconv.Atoi(hms[0])
	minutes, errM := strconv.Atoi(hms[1])
	seconds, errS := strconv.Atoi(hms[2])
	millis, errMS := strconv.Atoi(timeParts[1])
	if errH != nil || errM != nil || errS != nil || errMS != nil {
		return 0, fmt.Errorf("invalid timestamp %q", value)
	}
	if hours < 0 || minutes < 0 || seconds < 0 || millis < 0 {
		return 0, fmt.Errorf("invalid timestamp %q", value)
	}
	return time.Duration(hours)*time.Hour +
		time.Duration(minutes)*time.Minute +
		time.Duration(seconds)*time.Second +
		time.Duration(millis)*time.Millisecond, nil
}
