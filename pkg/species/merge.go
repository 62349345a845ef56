package species

import (
	"strings"

	"github.com/gnames/gnuuid"
)

// Merge combines the ranked taxon with the results of the vernacular and
// conservation branches. Both branches always have a value, so the merge
// cannot fail.
func Merge(
	query string,
	taxon TaxonCandidate,
	vn VernacularName,
	ca ConservationAssessment,
) Record {
	sciName := strings.TrimSpace(taxon.CanonicalName)
	res := Record{
		ID:                 RecordID(sciName),
		CommonName:         CommonName(query, vn),
		ScientificName:     sciName,
		FullScientificName: taxon.ScientificName,
		GBIFKey:            taxon.Key,
		VernacularName:     vn.Text,
		MatchQuality:       vn.Quality,
		ConservationStatus: ca.Category,
		CategoryCode:       ca.CategoryCode,
		PopulationTrend:    MineTrend(ca),
		AssessmentID:       ca.AssessmentID,
		YearPublished:      deref(ca.YearPublished),
	}
	if res.ConservationStatus == "" {
		res.ConservationStatus = DefaultCategory
	}
	if res.CategoryCode == "" {
		res.CategoryCode = DefaultCategoryCode
	}
	return res
}

// RecordID generates a stable UUID v5 from a scientific name.
func RecordID(scientificName string) string {
	return gnuuid.New(strings.ToLower(scientificName)).String()
}

// GenusSpecies splits a scientific name into genus and specific epithet.
// The ok value is false if the name has fewer than two words.
func GenusSpecies(name string) (genus, sp string, ok bool) {
	words := strings.Fields(name)
	if len(words) < 2 {
		return "", "", false
	}
	return words[0], words[1], true
}
