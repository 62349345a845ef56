// Package schema provides the database model of the species store.
package schema

import (
	"strings"
	"time"

	"github.com/gnames/gnfish/pkg/species"
)

// Species is a row of the species table. Common and scientific names are
// unique ignoring case, the lowercased forms are kept in CommonKey and
// ScientificKey.
type Species struct {
	// ID is generated from the scientific name when the row is inserted
	// and does not change afterwards.
	ID string `gorm:"primaryKey;size:36"`

	CommonName string `gorm:"not null"`
	CommonKey  string `gorm:"not null;uniqueIndex"`

	// ScientificName is the canonical form without authorship.
	ScientificName string `gorm:"not null"`
	ScientificKey  string `gorm:"not null;uniqueIndex"`

	FullScientificName string
	GBIFKey            int `gorm:"column:gbif_key"`
	VernacularName     string
	MatchQuality       string

	ConservationStatus string
	CategoryCode       string
	PopulationTrend    string
	AssessmentID       int
	YearPublished      string

	MinLength *float64
	MaxLength *float64
	AvgWeight *float64

	CreatedAt time.Time
	UpdatedAt time.Time

	// KeepConservation is not stored, it tells UpdateColumns to skip
	// conservation fields.
	KeepConservation bool `gorm:"-"`
}

// TableName returns the table name for GORM.
func (Species) TableName() string {
	return "species"
}

// Key normalizes a name for case-insensitive uniqueness.
func Key(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}

// FromRecord converts a species record to a row.
func FromRecord(rec species.Record) Species {
	return Species{
		ID:                 rec.ID,
		CommonName:         rec.CommonName,
		CommonKey:          Key(rec.CommonName),
		ScientificName:     rec.ScientificName,
		ScientificKey:      Key(rec.ScientificName),
		FullScientificName: rec.FullScientificName,
		GBIFKey:            rec.GBIFKey,
		VernacularName:     rec.VernacularName,
		MatchQuality:       string(rec.MatchQuality),
		ConservationStatus: rec.ConservationStatus,
		CategoryCode:       rec.CategoryCode,
		PopulationTrend:    rec.PopulationTrend,
		AssessmentID:       rec.AssessmentID,
		YearPublished:      rec.YearPublished,
		MinLength:          rec.MinLength,
		MaxLength:          rec.MaxLength,
		AvgWeight:          rec.AvgWeight,
		CreatedAt:          rec.CreatedAt,
		UpdatedAt:          rec.UpdatedAt,
		KeepConservation:   rec.KeepConservation,
	}
}

// Record converts a row to a species record.
func (s Species) Record() species.Record {
	return species.Record{
		ID:                 s.ID,
		CommonName:         s.CommonName,
		ScientificName:     s.ScientificName,
		FullScientificName: s.FullScientificName,
		GBIFKey:            s.GBIFKey,
		VernacularName:     s.VernacularName,
		MatchQuality:       species.MatchQuality(s.MatchQuality),
		ConservationStatus: s.ConservationStatus,
		CategoryCode:       s.CategoryCode,
		PopulationTrend:    s.PopulationTrend,
		AssessmentID:       s.AssessmentID,
		YearPublished:      s.YearPublished,
		MinLength:          s.MinLength,
		MaxLength:          s.MaxLength,
		AvgWeight:          s.AvgWeight,
		CreatedAt:          s.CreatedAt,
		UpdatedAt:          s.UpdatedAt,
	}
}

// UpdateColumns returns values that an upsert writes into an existing row.
// CreatedAt and ID are never updated. Size fields are only updated when
// the new row has them, conservation fields are skipped when
// KeepConservation is set.
func (s Species) UpdateColumns() map[string]any {
	res := map[string]any{
		"common_name":          s.CommonName,
		"common_key":           s.CommonKey,
		"scientific_name":      s.ScientificName,
		"scientific_key":       s.ScientificKey,
		"full_scientific_name": s.FullScientificName,
		"gbif_key":             s.GBIFKey,
		"vernacular_name":      s.VernacularName,
		"match_quality":        s.MatchQuality,
		"updated_at":           s.UpdatedAt,
	}
	if !s.KeepConservation {
		res["conservation_status"] = s.ConservationStatus
		res["category_code"] = s.CategoryCode
		res["population_trend"] = s.PopulationTrend
		res["assessment_id"] = s.AssessmentID
		res["year_published"] = s.YearPublished
	}
	if s.MinLength != nil {
		res["min_length"] = s.MinLength
	}
	if s.MaxLength != nil {
		res["max_length"] = s.MaxLength
	}
	if s.AvgWeight != nil {
		res["avg_weight"] = s.AvgWeight
	}
	return res
}
