// Package frequency answers word frequency lookups on the Zipf scale.
//
// A Zipf score is log10 of a word's frequency per billion words: 7 is "the",
// 3 is a rare word, 0 means the corpus has never seen the word. Scores are
// stored per language in a SQLite database populated from word<TAB>zipf
// exports (for example from the wordfreq project). When a word is missing
// and stem fallback is enabled, the best score among corpus words sharing
// its snowball stem is used instead.
package frequency
