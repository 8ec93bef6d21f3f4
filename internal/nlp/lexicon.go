package nlp

import (
	"context"
	"strings"
	"unicode"

	"learnsubs/internal/language"
)

// Lexicon is a rule-and-wordlist tokenizer built from a LexiconModel.
type Lexicon struct {
	id               string
	lang             string
	capitalizedNouns bool
	stopwords        map[string]struct{}
	numberWords      map[string]struct{}
	properNouns      map[string]struct{}
	lemmas           map[string]string
	pos              map[string]string
}

// NewLexicon indexes model for lookups. Word lists are matched on lowercase forms.
func NewLexicon(model *LexiconModel) *Lexicon {
	lx := &Lexicon{
		id:               model.ID,
		lang:             model.Language,
		capitalizedNouns: model.CapitalizedNouns,
		stopwords:        make(map[string]struct{}, len(model.Stopwords)),
		numberWords:      make(map[string]struct{}, len(model.NumberWords)),
		properNouns:      make(map[string]struct{}, len(model.ProperNouns)),
		lemmas:           make(map[string]string, len(model.Lemmas)),
		pos:              make(map[string]string, len(model.POS)),
	}
	for _, w := range model.Stopwords {
		lx.stopwords[lx.lower(w)] = struct{}{}
	}
	for _, w := range model.NumberWords {
		lx.numberWords[lx.lower(w)] = struct{}{}
	}
	for _, w := range model.ProperNouns {
		lx.properNouns[lx.lower(w)] = struct{}{}
	}
	for form, lemma := range model.Lemmas {
		lx.lemmas[lx.lower(form)] = strings.TrimSpace(lemma)
	}
	for lemma, tag := range model.POS {
		lx.pos[lx.lower(lemma)] = strings.ToUpper(strings.TrimSpace(tag))
	}
	return lx
}

// LexiconLoader returns a Loader that builds lexicon pipelines from dir and
// the built-in models.
func LexiconLoader(dir string) Loader {
	return func(_ context.Context, modelID string) (Pipeline, error) {
		model, err := LoadLexiconModel(dir, modelID)
		if err != nil {
			return nil, err
		}
		return NewLexicon(model), nil
	}
}

// ID returns the model identifier.
func (lx *Lexicon) ID() string { return lx.id }

// Process splits text into word and punctuation tokens and tags them.
func (lx *Lexicon) Process(ctx context.Context, text string) ([]Token, error) {
	pieces := split(text)
	tokens := make([]Token, 0, len(pieces))
	sentenceStart := true
	for i, piece := range pieces {
		if i%1024 == 0 {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
		}
		if isPunctPiece(piece) {
			tokens = append(tokens, Token{Text: piece, Lemma: piece, POS: POSPunct, IsPunct: true})
			if piece == "." || piece == "?" || piece == "!" {
				sentenceStart = true
			}
			continue
		}
		tokens = append(tokens, lx.tag(piece, sentenceStart))
		sentenceStart = false
	}
	return tokens, nil
}

func (lx *Lexicon) tag(word string, sentenceStart bool) Token {
	lower := lx.lower(word)
	tok := Token{Text: word, Lemma: word, POS: POSOther}

	if lemma, ok := lx.lemmas[lower]; ok && lemma != "" {
		tok.Lemma = lemma
	}
	if _, ok := lx.stopwords[lower]; ok {
		tok.IsStop = true
	}
	if _, ok := lx.numberWords[lower]; ok || isDigits(word) {
		tok.LikeNum = true
		tok.POS = POSNumber
		return tok
	}

	lemmaKey := lx.lower(tok.Lemma)
	switch {
	case lx.hasProperNoun(lower, lemmaKey):
		tok.POS = POSProperNoun
	case lx.pos[lemmaKey] != "":
		tok.POS = lx.pos[lemmaKey]
	case !lx.capitalizedNouns && !sentenceStart && startsUpper(word) && !lx.known(lower):
		tok.POS = POSProperNoun
	}
	return tok
}

func (lx *Lexicon) hasProperNoun(keys ...string) bool {
	for _, key := range keys {
		if _, ok := lx.properNouns[key]; ok {
			return true
		}
	}
	return false
}

func (lx *Lexicon) known(lower string) bool {
	if _, ok := lx.lemmas[lower]; ok {
		return true
	}
	if _, ok := lx.stopwords[lower]; ok {
		return true
	}
	_, ok := lx.pos[lower]
	return ok
}

func (lx *Lexicon) lower(s string) string {
	return language.Lower(lx.lang, strings.TrimSpace(s))
}

// split breaks text into words and single punctuation marks. Whitespace
// separates pieces and is dropped.
func split(text string) []string {
	var pieces []string
	start := -1
	for i, r := range text {
		switch {
		case isWordRune(r):
			if start < 0 {
				start = i
			}
			continue
		case start >= 0:
			pieces = append(pieces, text[start:i])
			start = -1
		}
		if !unicode.IsSpace(r) {
			pieces = append(pieces, string(r))
		}
	}
	if start >= 0 {
		pieces = append(pieces, text[start:])
	}
	return pieces
}

func isWordRune(r rune) bool {
	return unicode.IsLetter(r) || unicode.IsDigit(r) || unicode.Is(unicode.Mn, r)
}

func isPunctPiece(piece string) bool {
	for _, r := range piece {
		if isWordRune(r) {
			return false
		}
	}
	return piece != ""
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if !unicode.IsDigit(r) {
			return false
		}
	}
	return true
}

func startsUpper(s string) bool {
	for _, r := range s {
		return unicode.IsUpper(r) || unicode.IsTitle(r)
	}
	return false
}
