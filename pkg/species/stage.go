package species

import "time"

// Stage is a state of the resolution pipeline.
type Stage string

const (
	StageNormalizing  Stage = "normalizing"
	StageSearching    Stage = "searching"
	StageFiltering    Stage = "filtering"
	StageRanking      Stage = "ranking"
	StageVernacular   Stage = "vernacular_resolving"
	StageConservation Stage = "conservation_lookup"
	StageMerging      Stage = "merging"
	StageCaching      Stage = "caching"
)

// StageResult records how a pipeline stage ended. Failed stages keep the
// reason, and the pipeline applies that stage's fallback.
type StageResult struct {
	Stage    Stage         `json:"stage"`
	OK       bool          `json:"ok"`
	Reason   string        `json:"reason,omitempty"`
	Duration time.Duration `json:"duration"`
}

// Passed creates a successful stage result.
func Passed(st Stage, start time.Time) StageResult {
	return StageResult{Stage: st, OK: true, Duration: time.Since(start)}
}

// Failed creates a stage result for a stage that did not produce a value.
func Failed(st Stage, start time.Time, reason string) StageResult {
	return StageResult{
		Stage:    st,
		Reason:   reason,
		Duration: time.Since(start),
	}
}
