package vocab

import (
	"context"
	"fmt"
	"strings"
	"unicode/utf8"

	"learnsubs/internal/language"
	"learnsubs/internal/nlp"
	"learnsubs/internal/textutil"
)

// minWordRunes is the shortest surface form that counts as a content word.
const minWordRunes = 3

// Select runs text through pipeline and returns the important words: lemmas
// of content tokens, deduplicated case-insensitively in order of first
// appearance. Fully uppercase lemmas are lowercased using lang's case rules.
func Select(ctx context.Context, text string, pipeline nlp.Pipeline, lang string) ([]string, error) {
	tokens, err := pipeline.Process(ctx, text)
	if err != nil {
		return nil, fmt.Errorf("process text: %w", err)
	}

	words := make([]string, 0, len(tokens)/2)
	seen := make(map[string]struct{}, len(tokens)/2)
	for _, tok := range tokens {
		if !important(tok) {
			continue
		}
		lemma := strings.TrimSpace(tok.Lemma)
		if lemma == "" {
			continue
		}
		if textutil.IsUpper(lemma) {
			lemma = language.Lower(lang, lemma)
		}
		key := language.Fold(lang, lemma)
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		words = append(words, lemma)
	}
	return words, nil
}

func important(tok nlp.Token) bool {
	return !tok.IsStop &&
		utf8.RuneCountInString(tok.Text) >= minWordRunes &&
		!tok.IsPunct &&
		!tok.LikeNum &&
		tok.POS != nlp.POSProperNoun
}
