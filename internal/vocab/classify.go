package vocab

import (
	"context"
	"errors"
	"fmt"

	"learnsubs/internal/frequency"
)

// ErrEmptyCorpus is returned when there are no words to classify.
var ErrEmptyCorpus = errors.New("no important words to classify")

// Tier is a vocabulary difficulty bucket.
type Tier string

// Difficulty tiers, easiest first.
const (
	Easy         Tier = "easy"
	Intermediate Tier = "intermediate"
	Advanced     Tier = "advanced"
)

// Tiers lists every tier, easiest first.
var Tiers = []Tier{Easy, Intermediate, Advanced}

// ParseTier converts a tier name to a Tier.
func ParseTier(name string) (Tier, error) {
	for _, t := range Tiers {
		if string(t) == name {
			return t, nil
		}
	}
	return "", fmt.Errorf("unknown difficulty tier %q", name)
}

// Thresholds are the inclusive lower Zipf bounds of the easy and
// intermediate tiers.
type Thresholds struct {
	EasyMin         float64
	IntermediateMin float64
}

// DefaultThresholds returns the standard tier boundaries.
func DefaultThresholds() Thresholds {
	return Thresholds{EasyMin: 5.0, IntermediateMin: 3.5}
}

// TierFor buckets a score.
func (t Thresholds) TierFor(score float64) Tier {
	switch {
	case score >= t.EasyMin:
		return Easy
	case score >= t.IntermediateMin:
		return Intermediate
	default:
		return Advanced
	}
}

// Classifier scores words against a frequency source.
type Classifier struct {
	source     frequency.Source
	thresholds Thresholds
}

// NewClassifier constructs a Classifier.
func NewClassifier(source frequency.Source, thresholds Thresholds) *Classifier {
	return &Classifier{source: source, thresholds: thresholds}
}

// Classify scores each word in the given corpus and returns the study
// dictionary together with the film level, the mean score over the distinct
// words. An empty word list yields ErrEmptyCorpus.
func (c *Classifier) Classify(ctx context.Context, words []string, corpus string) (*StudyDictionary, float64, error) {
	if len(words) == 0 {
		return nil, 0, ErrEmptyCorpus
	}

	dict := newStudyDictionary(len(words))
	sum := 0.0
	for _, word := range words {
		if _, dup := dict.index[word]; dup {
			continue
		}
		score, err := c.source.Zipf(ctx, word, corpus)
		if err != nil {
			return nil, 0, fmt.Errorf("score %q: %w", word, err)
		}
		dict.add(Entry{Word: word, Score: score, Tier: c.thresholds.TierFor(score)})
		sum += score
	}
	return dict, sum / float64(dict.Len()), nil
}
