package language

import (
	"strings"

	"golang.org/x/text/cases"
	xlang "golang.org/x/text/language"
)

type entry struct {
	code2   string   // ISO 639-1 (2-letter)
	code3   string   // ISO 639-2 primary (3-letter)
	alt3    string   // ISO 639-2 alternate (e.g. "fre" vs "fra")
	display string   // Human-readable name
	words   []string // Full word forms (e.g. "english")
	stemmer string   // snowball stemmer name, empty when unsupported
}

var languages = []entry{
	{"en", "eng", "", "English", []string{"english"}, "english"},
	{"es", "spa", "", "Spanish", []string{"spanish"}, "spanish"},
	{"fr", "fra", "fre", "French", []string{"french"}, "french"},
	{"de", "deu", "ger", "German", []string{"german", "deutsch"}, ""},
	{"it", "ita", "", "Italian", []string{"italian"}, ""},
	{"pt", "por", "", "Portuguese", []string{"portuguese"}, ""},
	{"nl", "nld", "dut", "Dutch", []string{"dutch"}, ""},
	{"ru", "rus", "", "Russian", []string{"russian"}, "russian"},
	{"sv", "swe", "", "Swedish", []string{"swedish"}, "swedish"},
	{"no", "nor", "", "Norwegian", []string{"norwegian"}, "norwegian"},
	{"hu", "hun", "", "Hungarian", []string{"hungarian"}, "hungarian"},
	{"pl", "pol", "", "Polish", []string{"polish"}, ""},
	{"da", "dan", "", "Danish", []string{"danish"}, ""},
	{"fi", "fin", "", "Finnish", []string{"finnish"}, ""},
	{"tr", "tur", "", "Turkish", []string{"turkish"}, ""},
}

// Index maps built at init time.
var (
	byCode2 map[string]*entry
	byCode3 map[string]*entry
	byWord  map[string]*entry
)

func init() {
	byCode2 = make(map[string]*entry, len(languages))
	byCode3 = make(map[string]*entry, len(languages)*2)
	byWord = make(map[string]*entry, len(languages))
	for i := range languages {
		e := &languages[i]
		byCode2[e.code2] = e
		byCode3[e.code3] = e
		if e.alt3 != "" {
			byCode3[e.alt3] = e
		}
		for _, w := range e.words {
			byWord[w] = e
		}
	}
}

func lookup(code string) *entry {
	code = strings.ToLower(strings.TrimSpace(code))
	if code == "" {
		return nil
	}
	if e, ok := byCode2[code]; ok {
		return e
	}
	if e, ok := byCode3[code]; ok {
		return e
	}
	if e, ok := byWord[code]; ok {
		return e
	}
	return nil
}

// ToISO2 converts any recognized language code or word to ISO 639-1 (2-letter).
// Returns empty string for unrecognized input.
// If the input is a 2-letter code or BCP 47 tag that x/text understands
// (e.g. "pt-BR"), its base language is returned.
func ToISO2(code string) string {
	code = strings.ToLower(strings.TrimSpace(code))
	if code == "" {
		return ""
	}
	if e := lookup(code); e != nil {
		return e.code2
	}
	tag, err := xlang.Parse(code)
	if err != nil {
		return ""
	}
	base, conf := tag.Base()
	if conf == xlang.No {
		return ""
	}
	if e := lookup(base.String()); e != nil {
		return e.code2
	}
	if b := base.String(); len(b) == 2 {
		return b
	}
	return ""
}

// DisplayName returns a human-readable language name for any recognized code.
// Returns "Unknown" for empty input, or the uppercased code for unrecognized input.
func DisplayName(code string) string {
	if strings.TrimSpace(code) == "" {
		return "Unknown"
	}
	if e := lookup(code); e != nil {
		return e.display
	}
	return strings.ToUpper(strings.TrimSpace(code))
}

// StemmerName returns the snowball stemmer name for the language, or "" when
// no stemmer exists for it.
func StemmerName(code string) string {
	if e := lookup(ToISO2(code)); e != nil {
		return e.stemmer
	}
	return ""
}

// Tag returns the x/text language tag for code, or language.Und.
func Tag(code string) xlang.Tag {
	iso := ToISO2(code)
	if iso == "" {
		return xlang.Und
	}
	tag, err := xlang.Parse(iso)
	if err != nil {
		return xlang.Und
	}
	return tag
}

// Lower lowercases s using the case mapping rules of the given language
// (Turkish dotted/dotless i, German sharp s, and so on).
func Lower(code, s string) string {
	return cases.Lower(Tag(code)).String(s)
}

// Fold returns a key suitable for case-insensitive comparison of words.
func Fold(code, s string) string {
	return cases.Fold().String(Lower(code, s))
}
