// Package vocab turns tagged tokens into a study vocabulary.
//
// Select keeps the content words of a text (no stopwords, punctuation,
// numbers, proper nouns or words of two characters or fewer) as unique
// lemmas in first-occurrence order. Classifier scores those words against a
// frequency corpus, buckets them into easy, intermediate and advanced tiers
// and averages the scores into a single film level.
package vocab
