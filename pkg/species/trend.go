package species

import "strings"

var trendKeywords = []struct {
	trend    string
	keywords []string
}{
	{"Increasing", []string{"increasing", "increase", "rising"}},
	{"Decreasing", []string{"decreasing", "decline", "decreased"}},
	{"Stable", []string{"stable", "relatively stable"}},
	{"Fluctuating", []string{"fluctuating", "fluctuates"}},
}

// MineTrend returns the population trend of an assessment. A structured
// trend is used as is. Otherwise population and then rationale texts are
// scanned for trend keywords. This is a heuristic, the first keyword
// group found wins.
func MineTrend(ca ConservationAssessment) string {
	if t := deref(ca.PopulationTrend); t != "" && !strings.EqualFold(t, "unknown") {
		return t
	}

	for _, txt := range []string{deref(ca.Population), deref(ca.Rationale)} {
		if trend := findTrend(txt); trend != "" {
			return trend
		}
	}
	return TrendNotQuantified
}

func findTrend(txt string) string {
	if txt == "" {
		return ""
	}
	txt = strings.ToLower(txt)
	for _, v := range trendKeywords {
		for _, kw := range v.keywords {
			if strings.Contains(txt, kw) {
				return v.trend
			}
		}
	}
	return ""
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return strings.TrimSpace(*s)
}
