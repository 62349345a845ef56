package species

import (
	"strings"

	"github.com/gnames/gnfmt/gnlang"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// PickVernacular chooses a common name for a taxon. English names are
// preferred when there are any. Among them an exact match to the query
// wins, then a prefix match, then a substring match, then the first
// English name, then the first name in any language. If there are no
// names at all, the name is synthesized from the canonical name.
func PickVernacular(
	entries []VernacularEntry,
	query, canonical string,
) VernacularName {
	var all, eng []VernacularEntry
	for _, v := range entries {
		if strings.TrimSpace(v.Name) == "" {
			continue
		}
		all = append(all, v)
		if IsEnglish(v.Language) {
			eng = append(eng, v)
		}
	}

	if len(all) == 0 {
		return VernacularName{
			Text:        Synthesize(canonical),
			Quality:     MatchFallback,
			Synthesized: true,
		}
	}

	q := strings.ToLower(query)
	matchers := []struct {
		quality MatchQuality
		fn      func(string) bool
	}{
		{MatchExact, func(s string) bool { return s == q }},
		{MatchPrefix, func(s string) bool { return strings.HasPrefix(s, q) }},
		{MatchContains, func(s string) bool { return strings.Contains(s, q) }},
	}
	for _, m := range matchers {
		for _, v := range eng {
			if m.fn(strings.ToLower(v.Name)) {
				return newVernacular(v, m.quality)
			}
		}
	}

	if len(eng) > 0 {
		return newVernacular(eng[0], MatchFallback)
	}
	return newVernacular(all[0], MatchFallback)
}

// CommonName returns the name a resolved species is stored under. For an
// exact match the user's spelling is kept, otherwise the vernacular text
// is used.
func CommonName(query string, vn VernacularName) string {
	if vn.Quality == MatchExact || vn.Text == "" {
		return query
	}
	return vn.Text
}

// Synthesize creates a display name from a canonical scientific name by
// title-casing its first two words: "gadus morhua" becomes "Gadus Morhua".
func Synthesize(canonical string) string {
	words := strings.Fields(canonical)
	if len(words) > 2 {
		words = words[:2]
	}
	// Caser keeps state, it cannot be shared between goroutines.
	caser := cases.Title(language.English)
	for i := range words {
		words[i] = caser.String(words[i])
	}
	return strings.Join(words, " ")
}

// IsEnglish checks if a GBIF language field denotes English. GBIF mostly
// uses ISO 639-2 codes, but two-letter codes and full names also occur.
func IsEnglish(lang string) bool {
	lang = strings.ToLower(strings.TrimSpace(lang))
	switch len(lang) {
	case 0:
		return false
	case 2:
		if lang == "en" {
			return true
		}
		lang3, err := gnlang.LangCode2To3Letters(lang)
		return err == nil && lang3 == "eng"
	case 3:
		return lang == "eng"
	default:
		return gnlang.LangCode(lang) == "eng"
	}
}

func newVernacular(v VernacularEntry, q MatchQuality) VernacularName {
	return VernacularName{
		Text:     strings.TrimSpace(v.Name),
		Language: v.Language,
		Quality:  q,
	}
}
