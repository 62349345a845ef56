// Package gnfish resolves free-text fish names into GBIF taxa enriched
// with IUCN Red List conservation status.
package gnfish

import (
	"context"

	"github.com/gnames/gnfish/pkg/species"
)

var (
	// Version of gnfish, set during build.
	Version = "v0.1.0"
	// Build timestamp, set during build.
	Build = "n/a"
)

// Resolver is the interface exposed to the rest of the system: CLI
// commands and the HTTP API call only these methods.
type Resolver interface {
	// Resolve runs the full pipeline for one common name and upserts the
	// result into the species store. The only errors it returns are
	// InvalidQuery and NotFound (see pkg/errcode), everything else degrades
	// into the returned resolution.
	Resolve(ctx context.Context, commonName string) (species.Resolution, error)

	// ResolveAll resolves names with bounded concurrency. One item failing
	// does not affect other items. Results keep the input order.
	ResolveAll(ctx context.Context, commonNames []string) []species.ItemResult

	// RefreshAll re-resolves every common name found in the store.
	RefreshAll(ctx context.Context) ([]species.ItemResult, error)

	// ListCached returns all stored records ordered by common name.
	ListCached(ctx context.Context) ([]species.Record, error)

	// Taxon resolves a common name to the best fish taxon without touching
	// the conservation service or the store.
	Taxon(ctx context.Context, commonName string) (species.TaxonCandidate, error)

	// Conservation returns the IUCN assessment for a scientific name.
	// It never fails: missing data yields the "Not Assessed" default.
	Conservation(
		ctx context.Context,
		scientificName string,
	) species.ConservationAssessment

	// Close releases resources held by the resolver (store, caches).
	Close() error
}
