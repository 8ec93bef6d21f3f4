package textutil

import (
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/unicode/norm"
)

// tagPattern matches HTML-like markup, shortest match first.
var tagPattern = regexp.MustCompile(`(?s)<.*?>`)

// whitespaceRun matches two or more consecutive whitespace characters.
var whitespaceRun = regexp.MustCompile(`\s{2,}`)

// CleanLine removes tags, line breaks, and characters outside the allowed set
// from a single caption payload, then collapses repeated spaces.
func CleanLine(raw string) string {
	line := norm.NFC.String(raw)
	line = tagPattern.ReplaceAllString(line, "")
	line = strings.ReplaceAll(line, "\r\n", " ")
	line = strings.ReplaceAll(line, "\n", " ")
	line = strings.Map(func(r rune) rune {
		if Allowed(r) {
			return r
		}
		return -1
	}, line)
	return CollapseSpaces(line)
}

// Allowed reports whether r may appear in normalized text.
func Allowed(r rune) bool {
	switch r {
	case ' ', '.', ',', '?', '!':
		return true
	}
	return unicode.IsLetter(r) || unicode.IsDigit(r)
}

// CollapseSpaces replaces every run of two or more whitespace characters with
// a single space.
func CollapseSpaces(text string) string {
	return whitespaceRun.ReplaceAllString(text, " ")
}

// IsNormalized reports whether text satisfies the normalized text rules: only
// allowed characters, no line breaks, no whitespace runs.
func IsNormalized(text string) bool {
	prevSpace := false
	for _, r := range text {
		if !Allowed(r) {
			return false
		}
		space := r == ' '
		if space && prevSpace {
			return false
		}
		prevSpace = space
	}
	return true
}

// IsUpper reports whether s contains at least one cased letter and no
// lowercase letters.
func IsUpper(s string) bool {
	cased := false
	for _, r := range s {
		if unicode.IsLower(r) {
			return false
		}
		if unicode.IsUpper(r) || unicode.IsTitle(r) {
			cased = true
		}
	}
	return cased
}
