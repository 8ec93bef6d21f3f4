package nlp

import (
	"context"
	"errors"
)

// Coarse universal part-of-speech tags used by the selector.
const (
	POSProperNoun = "PROPN"
	POSPunct      = "PUNCT"
	POSNumber     = "NUM"
	POSOther      = "X"
)

// ErrModelNotFound reports an unknown model identifier.
var ErrModelNotFound = errors.New("nlp model not found")

// Token is one tagged unit of text.
type Token struct {
	Text    string `json:"text"`
	Lemma   string `json:"lemma"`
	POS     string `json:"pos"`
	IsStop  bool   `json:"is_stop"`
	IsPunct bool   `json:"is_punct"`
	LikeNum bool   `json:"like_num"`
}

// Pipeline tokenizes and tags text.
type Pipeline interface {
	Process(ctx context.Context, text string) ([]Token, error)
}

// Loader constructs the pipeline for a model identifier.
type Loader func(ctx context.Context, modelID string) (Pipeline, error)
