// Package nlp tokenizes normalized caption text into tagged tokens.
//
// A Pipeline turns text into Tokens carrying a lemma, a coarse universal
// part-of-speech tag and stopword/punctuation/number flags. Two backends are
// provided: lexicon models (YAML word lists, several built in) and an
// external command that prints tokens as JSON, which lets a spaCy or Stanza
// process stand in for the built-in models.
//
// Pipelines are obtained through a Registry, which loads each model
// identifier at most once per process and shares it between analyses.
package nlp
