package vocab

import (
	"context"
	"errors"
	"math"
	"reflect"
	"testing"

	"learnsubs/internal/frequency"
)

type failingSource struct{ err error }

func (s failingSource) Zipf(context.Context, string, string) (float64, error) {
	return 0, s.err
}

func TestThresholdBoundaries(t *testing.T) {
	th := DefaultThresholds()
	tests := []struct {
		score float64
		want  Tier
	}{
		{7.3, Easy},
		{5.0, Easy},
		{4.999, Intermediate},
		{3.5, Intermediate},
		{3.499, Advanced},
		{0, Advanced},
	}
	for _, tt := range tests {
		if got := th.TierFor(tt.score); got != tt.want {
			t.Errorf("TierFor(%v) = %s, want %s", tt.score, got, tt.want)
		}
	}
}

func TestClassify(t *testing.T) {
	source := frequency.MapSource{"de": {
		"haus":        5.6,
		"gehen":       5.0,
		"bahnhof":     4.1,
		"erbsensuppe": 1.9,
	}}
	c := NewClassifier(source, DefaultThresholds())

	words := []string{"Haus", "gehen", "Bahnhof", "Erbsensuppe", "Quatschwort"}
	dict, level, err := c.Classify(context.Background(), words, "de")
	if err != nil {
		t.Fatalf("Classify: %v", err)
	}

	wantLevel := (5.6 + 5.0 + 4.1 + 1.9 + 0) / 5
	if math.Abs(level-wantLevel) > 1e-9 {
		t.Fatalf("level = %v, want %v", level, wantLevel)
	}

	var order []string
	for _, e := range dict.Entries() {
		order = append(order, e.Word)
	}
	if !reflect.DeepEqual(order, words) {
		t.Fatalf("entry order = %v, want %v", order, words)
	}

	if got := dict.Words(Easy); !reflect.DeepEqual(got, []string{"Haus", "gehen"}) {
		t.Fatalf("easy words = %v", got)
	}
	if got := dict.Words(Intermediate); !reflect.DeepEqual(got, []string{"Bahnhof"}) {
		t.Fatalf("intermediate words = %v", got)
	}
	if got := dict.Words(Advanced); !reflect.DeepEqual(got, []string{"Erbsensuppe", "Quatschwort"}) {
		t.Fatalf("advanced words = %v", got)
	}
	want := map[Tier]int{Easy: 2, Intermediate: 1, Advanced: 2}
	if got := dict.Counts(); !reflect.DeepEqual(got, want) {
		t.Fatalf("counts = %v, want %v", got, want)
	}

	entry, ok := dict.Get("Bahnhof")
	if !ok || entry.Score != 4.1 || entry.Tier != Intermediate {
		t.Fatalf("Get(Bahnhof) = %+v, %v", entry, ok)
	}
	if _, ok := dict.Get("fehlt"); ok {
		t.Fatal("Get returned an entry for an unknown word")
	}
}

func TestClassifyIsDeterministic(t *testing.T) {
	source := frequency.MapSource{"en": {"house": 5.5, "whale": 3.9, "sextant": 2.1}}
	c := NewClassifier(source, DefaultThresholds())
	words := []string{"sextant", "house", "whale"}

	first, level1, err := c.Classify(context.Background(), words, "en")
	if err != nil {
		t.Fatalf("Classify: %v", err)
	}
	second, level2, err := c.Classify(context.Background(), words, "en")
	if err != nil {
		t.Fatalf("Classify: %v", err)
	}
	if level1 != level2 {
		t.Fatalf("levels differ: %v vs %v", level1, level2)
	}
	if !reflect.DeepEqual(first.Entries(), second.Entries()) {
		t.Fatalf("dictionaries differ:\n%v\n%v", first.Entries(), second.Entries())
	}
}

func TestClassifyIgnoresRepeatedWords(t *testing.T) {
	source := frequency.MapSource{"en": {"house": 6.0, "sextant": 2.0}}
	c := NewClassifier(source, DefaultThresholds())
	dict, level, err := c.Classify(context.Background(), []string{"house", "sextant", "house"}, "en")
	if err != nil {
		t.Fatalf("Classify: %v", err)
	}
	if dict.Len() != 2 {
		t.Fatalf("Len = %d, want 2", dict.Len())
	}
	if level != 4.0 {
		t.Fatalf("level = %v, want 4", level)
	}
}

func TestClassifyCustomThresholds(t *testing.T) {
	source := frequency.MapSource{"en": {"whale": 3.9}}
	c := NewClassifier(source, Thresholds{EasyMin: 3.8, IntermediateMin: 2.0})
	dict, _, err := c.Classify(context.Background(), []string{"whale"}, "en")
	if err != nil {
		t.Fatalf("Classify: %v", err)
	}
	if got := dict.Words(Easy); len(got) != 1 {
		t.Fatalf("easy words = %v, want [whale]", got)
	}
}

func TestClassifyEmptyCorpus(t *testing.T) {
	c := NewClassifier(failingSource{err: errors.New("must not be called")}, DefaultThresholds())
	dict, level, err := c.Classify(context.Background(), nil, "en")
	if !errors.Is(err, ErrEmptyCorpus) {
		t.Fatalf("Classify error = %v, want ErrEmptyCorpus", err)
	}
	if dict != nil || level != 0 {
		t.Fatalf("expected no partial result, got %v %v", dict, level)
	}
}

func TestClassifyPropagatesSourceError(t *testing.T) {
	boom := errors.New("database is locked")
	c := NewClassifier(failingSource{err: boom}, DefaultThresholds())
	dict, _, err := c.Classify(context.Background(), []string{"house"}, "en")
	if !errors.Is(err, boom) {
		t.Fatalf("Classify error = %v, want wrapped %v", err, boom)
	}
	if dict != nil {
		t.Fatal("expected no partial dictionary")
	}
}

func TestParseTier(t *testing.T) {
	for _, tier := range Tiers {
		got, err := ParseTier(string(tier))
		if err != nil || got != tier {
			t.Fatalf("ParseTier(%q) = %q, %v", tier, got, err)
		}
	}
	if _, err := ParseTier("expert"); err == nil {
		t.Fatal("ParseTier accepted an unknown tier")
	}
}

func TestNilDictionaryCounts(t *testing.T) {
	var d *StudyDictionary
	counts := d.Counts()
	for _, tier := range Tiers {
		if counts[tier] != 0 {
			t.Fatalf("counts[%s] = %d", tier, counts[tier])
		}
	}
}
