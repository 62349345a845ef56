package species

import (
	"strings"

	"github.com/gnames/gnlib"
)

// NormalizeQuery trims the raw input, repairs broken UTF-8 and collapses
// inner whitespace. An empty result is an InvalidQuery error.
func NormalizeQuery(raw string) (string, error) {
	s := gnlib.FixUtf8(raw)
	s = strings.Join(strings.Fields(s), " ")
	if s == "" {
		return "", InvalidQueryError(raw)
	}
	return s, nil
}
