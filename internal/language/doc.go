// Package language provides language code normalization, display names, and
// language-aware case folding.
//
// Configuration keys, NLP model selection, frequency corpus lookup, and the
// important-word selector all resolve languages through this package so a
// code such as "ger", "deu", "german" or "de" always means the same thing.
package language
