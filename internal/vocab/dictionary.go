package vocab

// Entry is one classified word.
type Entry struct {
	Word  string  `json:"word"`
	Score float64 `json:"score"`
	Tier  Tier    `json:"tier"`
}

// StudyDictionary maps words to their classification, preserving the order
// in which words were added.
type StudyDictionary struct {
	entries []Entry
	index   map[string]int
}

func newStudyDictionary(size int) *StudyDictionary {
	return &StudyDictionary{
		entries: make([]Entry, 0, size),
		index:   make(map[string]int, size),
	}
}

func (d *StudyDictionary) add(e Entry) {
	d.index[e.Word] = len(d.entries)
	d.entries = append(d.entries, e)
}

// Len returns the number of words.
func (d *StudyDictionary) Len() int {
	if d == nil {
		return 0
	}
	return len(d.entries)
}

// Entries returns a copy of all entries in insertion order.
func (d *StudyDictionary) Entries() []Entry {
	if d == nil {
		return nil
	}
	return append([]Entry(nil), d.entries...)
}

// Get looks up a word.
func (d *StudyDictionary) Get(word string) (Entry, bool) {
	if d == nil {
		return Entry{}, false
	}
	i, ok := d.index[word]
	if !ok {
		return Entry{}, false
	}
	return d.entries[i], true
}

// Words returns the words in tier, in insertion order.
func (d *StudyDictionary) Words(tier Tier) []string {
	if d == nil {
		return nil
	}
	var out []string
	for _, e := range d.entries {
		if e.Tier == tier {
			out = append(out, e.Word)
		}
	}
	return out
}

// Counts returns the number of words per tier. Every tier is present.
func (d *StudyDictionary) Counts() map[Tier]int {
	counts := make(map[Tier]int, len(Tiers))
	for _, t := range Tiers {
		counts[t] = 0
	}
	if d == nil {
		return counts
	}
	for _, e := range d.entries {
		counts[e.Tier]++
	}
	return counts
}
