// Package species contains the data model of fish name resolution and the
// pure stages of the pipeline: query normalization, fish filtering,
// candidate ranking, vernacular name selection and trend mining.
//
// Nothing in this package performs I/O. Upstream clients and the species
// store live in internal/io* packages and exchange data with the pipeline
// through the types defined here.
package species

import (
	"time"
)

const (
	// DefaultCategoryCode is used when no IUCN assessment is available.
	DefaultCategoryCode = "DD"

	// DefaultCategory is the conservation status of species without an
	// assessment.
	DefaultCategory = "Not Assessed"

	// TrendNotQuantified is returned by the trend miner when neither a
	// structured trend nor a trend keyword is found.
	TrendNotQuantified = "Trend not quantified"

	// NotFoundSuggestion is shown to users when a name cannot be resolved.
	NotFoundSuggestion = "Try: Atlantic Cod, Yellowfin Tuna, Red Snapper, " +
		"Mahi-Mahi, Salmon, etc."
)

// TaxonCandidate is one result of the taxon search.
type TaxonCandidate struct {
	// Key is the GBIF usage key.
	Key int `json:"key"`

	// ScientificName usually includes authorship.
	ScientificName string `json:"scientificName"`

	// CanonicalName is the scientific name without authorship.
	CanonicalName string `json:"canonicalName"`

	Rank            string `json:"rank"`
	TaxonomicStatus string `json:"taxonomicStatus"`
	Kingdom         string `json:"kingdom"`
	Class           string `json:"class"`
}

// VernacularEntry is a common name returned by the vernacular names
// endpoint.
type VernacularEntry struct {
	Name     string `json:"vernacularName"`
	Language string `json:"language"`
}

// MatchQuality tells how a vernacular name was related to the query.
type MatchQuality string

const (
	MatchExact    MatchQuality = "exact"
	MatchPrefix   MatchQuality = "prefix"
	MatchContains MatchQuality = "contains"
	MatchFallback MatchQuality = "fallback"
)

// VernacularName is the common name chosen for a taxon.
type VernacularName struct {
	Text     string       `json:"text"`
	Language string       `json:"language,omitempty"`
	Quality  MatchQuality `json:"matchQuality"`

	// Synthesized is true when the name was built from the canonical
	// scientific name because no vernacular names were available.
	Synthesized bool `json:"synthesized,omitempty"`
}

// ConservationAssessment is the IUCN Red List data for a species.
// CategoryCode and Category are always set.
type ConservationAssessment struct {
	AssessmentID    int     `json:"assessmentId,omitempty"`
	CategoryCode    string  `json:"categoryCode"`
	Category        string  `json:"categoryDescription"`
	PopulationTrend *string `json:"populationTrend,omitempty"`
	YearPublished   *string `json:"yearPublished,omitempty"`
	AssessmentDate  *string `json:"assessmentDate,omitempty"`
	Rationale       *string `json:"rationale,omitempty"`
	Range           *string `json:"range,omitempty"`
	Population      *string `json:"population,omitempty"`
	Threats         *string `json:"threats,omitempty"`
	Measures        *string `json:"measures,omitempty"`
	Citation        *string `json:"citation,omitempty"`
}

// DefaultAssessment returns the "Not Assessed" assessment.
func DefaultAssessment() ConservationAssessment {
	return ConservationAssessment{
		CategoryCode: DefaultCategoryCode,
		Category:     DefaultCategory,
	}
}

// IsDefault returns true if the assessment carries no IUCN data.
func (ca ConservationAssessment) IsDefault() bool {
	return ca.AssessmentID == 0 &&
		ca.CategoryCode == DefaultCategoryCode &&
		ca.Category == DefaultCategory
}

// Record is a resolved species as it is kept in the species store.
type Record struct {
	// ID is a UUID v5 generated from the lowercased scientific name.
	ID string `json:"id"`

	CommonName     string `json:"commonName"`
	ScientificName string `json:"scientificName"`

	// FullScientificName is the scientific name with authorship.
	FullScientificName string `json:"fullScientificName,omitempty"`

	GBIFKey int `json:"gbifKey,omitempty"`

	// VernacularName is the name returned by GBIF, CommonName is the name
	// the species is known by in the store.
	VernacularName string       `json:"vernacularName,omitempty"`
	MatchQuality   MatchQuality `json:"matchQuality,omitempty"`

	ConservationStatus string `json:"conservationStatus"`
	CategoryCode       string `json:"categoryCode"`
	PopulationTrend    string `json:"populationTrend,omitempty"`
	AssessmentID       int    `json:"assessmentId,omitempty"`
	YearPublished      string `json:"yearPublished,omitempty"`

	MinLength *float64 `json:"minLength"`
	MaxLength *float64 `json:"maxLength"`
	AvgWeight *float64 `json:"avgWeight"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`

	// KeepConservation is set when the conservation lookup failed. An
	// upsert then leaves conservation fields of an existing row as they
	// are.
	KeepConservation bool `json:"-"`
}

// Action tells what an upsert did to the store.
type Action string

const (
	ActionNone     Action = ""
	ActionInserted Action = "inserted"
	ActionUpdated  Action = "updated"
)

// Resolution is the outcome of resolving one common name.
type Resolution struct {
	Query  string         `json:"query"`
	Record Record         `json:"record"`
	Action Action         `json:"action,omitempty"`
	Taxon  TaxonCandidate `json:"taxon"`

	Vernacular   VernacularName         `json:"vernacular"`
	Conservation ConservationAssessment `json:"conservation"`

	// FromCache is true when upstream search failed and the record was
	// taken from the species store.
	FromCache bool `json:"fromCache,omitempty"`

	// Trace keeps results of every pipeline stage in execution order.
	Trace []StageResult `json:"trace"`
}

// ItemResult is one element of a batch result. Exactly one of Record or
// Error is set.
type ItemResult struct {
	CommonName string  `json:"commonName"`
	Record     *Record `json:"record,omitempty"`
	Action     Action  `json:"action,omitempty"`
	Error      string  `json:"errorReason,omitempty"`
}

// OK returns true if the item was resolved.
func (ir ItemResult) OK() bool {
	return ir.Record != nil
}
