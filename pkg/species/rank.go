package species

import "strings"

const (
	rankSpecies    = "SPECIES"
	statusAccepted = "ACCEPTED"
)

// Rank selects the best candidate. The first accepted species with a
// canonical name wins, then the first candidate with any canonical name.
// If there is none, Rank returns a NoMatch error.
func Rank(cands []TaxonCandidate, query string) (TaxonCandidate, error) {
	for _, v := range cands {
		if strings.EqualFold(v.Rank, rankSpecies) &&
			strings.EqualFold(v.TaxonomicStatus, statusAccepted) &&
			hasCanonical(v) {
			return v, nil
		}
	}

	for _, v := range cands {
		if hasCanonical(v) {
			return v, nil
		}
	}

	return TaxonCandidate{}, NoMatchError(query, len(cands))
}

func hasCanonical(tc TaxonCandidate) bool {
	return strings.TrimSpace(tc.CanonicalName) != ""
}
