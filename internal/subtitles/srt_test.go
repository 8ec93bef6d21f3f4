package subtitles

import (
	"errors"
	"testing"
	"time"
)

func TestParseWellFormed(t *testing.T) {
	content := "1\n00:00:01,000 --> 00:00:02,500\nHallo\nWelt\n\n2\n00:00:03.000 --> 00:00:04,000 X1:10 X2:20\n<i>Tschüss</i>\n"
	result := Parse([]byte(content))
	if !result.OK() {
		t.Fatalf("Parse failed: %v", result.Err)
	}
	if len(result.Captions) != 2 {
		t.Fatalf("expected 2 captions, got %d", len(result.Captions))
	}
	first := result.Captions[0]
	if first.Index != 1 || first.Text != "Hallo\nWelt" {
		t.Errorf("unexpected first caption: %+v", first)
	}
	if first.Start != time.Second || first.End != 2500*time.Millisecond {
		t.Errorf("unexpected timing: %v -> %v", first.Start, first.End)
	}
	if result.Captions[1].Start != 3*time.Second {
		t.Errorf("period milliseconds not accepted: %v", result.Captions[1].Start)
	}
}

func TestParseCRLFAndExtraBlankLines(t *testing.T) {
	content := "\r\n\r\n1\r\n00:00:01,000 --> 00:00:02,000\r\nEins\r\n\r\n\r\n\r\n2\r\n00:00:02,000 --> 00:00:03,000\r\nZwei\r\n"
	result := Parse([]byte(content))
	if !result.OK() {
		t.Fatalf("Parse failed: %v", result.Err)
	}
	if len(result.Captions) != 2 || result.Captions[1].Text != "Zwei" {
		t.Fatalf("unexpected captions: %+v", result.Captions)
	}
}

func TestParseEmptyCaptionAndEmptyFile(t *testing.T) {
	result := Parse([]byte("1\n00:00:01,000 --> 00:00:02,000\n\n2\n00:00:02,000 --> 00:00:03,000\n"))
	if !result.OK() {
		t.Fatalf("Parse failed: %v", result.Err)
	}
	if len(result.Captions) != 2 || result.Captions[0].Text != "" {
		t.Fatalf("unexpected captions: %+v", result.Captions)
	}

	empty := Parse([]byte("  \n\n"))
	if !empty.OK() || len(empty.Captions) != 0 {
		t.Fatalf("expected empty success, got %+v", empty)
	}
}

func TestParseFailures(t *testing.T) {
	tests := []struct {
		name    string
		content string
		line    int
	}{
		{"missing index", "00:00:01,000 --> 00:00:02,000\nHallo\n", 1},
		{"byte order mark", "\ufeff1\n00:00:01,000 --> 00:00:02,000\nHallo\n", 1},
		{"bad timestamp", "1\n00:00:01 --> 00:00:02,000\nHallo\n", 2},
		{"no arrow", "1\nHallo\n", 2},
		{"index without timing", "1\n00:00:01,000 --> 00:00:02,000\nA\n\n2", 5},
		{"junk between blocks", "1\n00:00:01,000 --> 00:00:02,000\nA\n\njunk\n00:00:02,000 --> 00:00:03,000\nB\n", 5},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := Parse([]byte(tt.content))
			if result.OK() {
				t.Fatalf("expected failure, got %+v", result.Captions)
			}
			if result.Captions != nil {
				t.Fatalf("failed parse must not carry captions: %+v", result.Captions)
			}
			var syntaxErr *SyntaxError
			if !errors.As(result.Err, &syntaxErr) {
				t.Fatalf("expected SyntaxError, got %T", result.Err)
			}
			if syntaxErr.Line != tt.line {
				t.Errorf("line = %d, want %d (%v)", syntaxErr.Line, tt.line, syntaxErr)
			}
		})
	}
}

func TestParseSRTTimestamp(t *testing.T) {
	got, err := parseSRTTimestamp("01:02:03,004")
	if err != nil {
		t.Fatalf("parseSRTTimestamp: %v", err)
	}
	want := time.Hour + 2*time.Minute + 3*time.Second + 4*time.Millisecond
	if got != want {
		t.Fatalf("got %v, want %v", got, want)
	}
	for _, bad := range []string{"", "1:2", "aa:bb:cc,ddd", "00:00:-1,000"} {
		if _, err := parseSRTTimestamp(bad); err == nil {
			t.Errorf("expected error for %q", bad)
		}
	}
}
