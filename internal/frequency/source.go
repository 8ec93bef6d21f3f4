package frequency

import "context"

// Source returns the Zipf frequency of a word in a language corpus. Unknown
// words score 0.
type Source interface {
	Zipf(ctx context.Context, word, lang string) (float64, error)
}

// MapSource is an in-memory Source keyed by corpus code and lowercase word.
type MapSource map[string]map[string]float64

// Zipf implements Source.
func (m MapSource) Zipf(_ context.Context, word, lang string) (float64, error) {
	return m[lang][wordKey(lang, word)], nil
}
