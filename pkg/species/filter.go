package species

import (
	"slices"
	"strings"
)

var (
	// fishClasses are full names of accepted fish classes.
	fishClasses = []string{"actinopterygii", "teleostei"}

	// fishClassPrefixes cover truncated class names GBIF sometimes returns.
	fishClassPrefixes = []string{"actinopteri", "teleost"}

	animalKingdoms    = []string{"animalia", "metazoa", ""}
	nonAnimalKingdoms = []string{"plantae", "viridiplantae", "fungi"}
)

// FilterFish keeps candidates that belong to ray-finned or bony fish and
// are not explicitly non-animal. The order of candidates is preserved.
func FilterFish(cands []TaxonCandidate) []TaxonCandidate {
	var res []TaxonCandidate
	for _, v := range cands {
		if IsFish(v) {
			res = append(res, v)
		}
	}
	return res
}

// IsFish checks class and kingdom of a candidate.
func IsFish(tc TaxonCandidate) bool {
	return isFishClass(tc.Class) && isAnimalKingdom(tc.Kingdom)
}

func isFishClass(class string) bool {
	class = strings.ToLower(strings.TrimSpace(class))
	if class == "" {
		return false
	}
	if slices.Contains(fishClasses, class) {
		return true
	}
	for _, v := range fishClassPrefixes {
		if strings.HasPrefix(class, v) {
			return true
		}
	}
	return false
}

func isAnimalKingdom(kingdom string) bool {
	kingdom = strings.ToLower(strings.TrimSpace(kingdom))
	if slices.Contains(nonAnimalKingdoms, kingdom) ||
		strings.Contains(kingdom, "virus") ||
		strings.Contains(kingdom, "bacteria") {
		return false
	}
	return slices.Contains(animalKingdoms, kingdom)
}
