package testsupport

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// SRT renders captions as a well-formed SRT document with one-second cues.
func SRT(captions ...string) string {
	var b strings.Builder
	for i, text := range captions {
		if i > 0 {
			b.WriteString("\n")
		}
		fmt.Fprintf(&b, "%d\n%s --> %s\n%s\n", i+1, stamp(i), stamp(i+1), text)
	}
	return b.String()
}

func stamp(second int) string {
	return fmt.Sprintf("00:%02d:%02d,000", second/60, second%60)
}

// WriteFile writes content to path, creating parent directories.
func WriteFile(t testing.TB, path, content string) string {
	t.Helper()

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir for %s: %v", path, err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
	return path
}

// WriteSRT writes a well-formed SRT file containing captions into dir.
func WriteSRT(t testing.TB, dir, name string, captions ...string) string {
	t.Helper()
	return WriteFile(t, filepath.Join(dir, name), SRT(captions...))
}
