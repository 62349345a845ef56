// Package ioresolver runs the fish name resolution pipeline. It finds a
// fish taxon for a common name at GBIF, picks its vernacular name and
// loads its IUCN assessment concurrently, merges the results and saves
// them to the species store.
package ioresolver

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"github.com/gnames/gnfish/internal/iometrics"
	gnfish "github.com/gnames/gnfish/pkg"
	"github.com/gnames/gnfish/pkg/config"
	"github.com/gnames/gnfish/pkg/errcode"
	"github.com/gnames/gnfish/pkg/parserpool"
	"github.com/gnames/gnfish/pkg/species"
	"golang.org/x/sync/errgroup"
)

// TaxonSource finds taxa and their vernacular names.
type TaxonSource interface {
	Search(ctx context.Context, query string) ([]species.TaxonCandidate, error)
	VernacularNames(ctx context.Context, key int) ([]species.VernacularEntry, error)
}

// ConservationSource finds conservation assessments. The returned
// assessment is always usable, the error only explains why it is the
// default one.
type ConservationSource interface {
	Lookup(
		ctx context.Context,
		scientificName string,
	) (species.ConservationAssessment, error)
}

type resolver struct {
	jobs    int
	taxa    TaxonSource
	cons    ConservationSource
	store   species.Store
	parser  parserpool.Pool
	metrics *iometrics.Metrics
	closers []func() error

	// progress is called once per batch item when its result is ready.
	progress func()
}

// Option modifies the resolver.
type Option func(*resolver)

// OptMetrics sets metrics collectors.
func OptMetrics(m *iometrics.Metrics) Option {
	return func(r *resolver) { r.metrics = m }
}

// OptParserPool sets the parser pool used to restore missing canonical
// names and to clean scientific names from authorship.
func OptParserPool(p parserpool.Pool) Option {
	return func(r *resolver) { r.parser = p }
}

// OptProgress sets a function called by ResolveAll after every item. It
// is called from several goroutines.
func OptProgress(fn func()) Option {
	return func(r *resolver) { r.progress = fn }
}

// OptCloser adds a function that is called by Close.
func OptCloser(fn func() error) Option {
	return func(r *resolver) { r.closers = append(r.closers, fn) }
}

// New creates a resolver. The store is closed by Close.
func New(
	cfg *config.Config,
	taxa TaxonSource,
	cons ConservationSource,
	store species.Store,
	opts ...Option,
) gnfish.Resolver {
	res := &resolver{
		jobs:  cfg.JobsNumber,
		taxa:  taxa,
		cons:  cons,
		store: store,
	}
	if res.jobs < 1 {
		res.jobs = 1
	}
	for _, opt := range opts {
		opt(res)
	}
	return res
}

// Resolve implements gnfish.Resolver.
func (r *resolver) Resolve(
	ctx context.Context,
	commonName string,
) (species.Resolution, error) {
	res := species.Resolution{Query: commonName}

	start := time.Now()
	query, err := species.NormalizeQuery(commonName)
	if err != nil {
		r.add(&res, species.Failed(species.StageNormalizing, start, err.Error()))
		r.metrics.IncResolution("invalid")
		return res, err
	}
	r.add(&res, species.Passed(species.StageNormalizing, start))
	res.Query = query

	taxon, err := r.findTaxon(ctx, query, &res)
	if err != nil {
		if species.IsCode(err, errcode.UpstreamUnavailableError) {
			if rec := r.fromStore(ctx, query); rec != nil {
				res.Record = *rec
				res.FromCache = true
				r.metrics.IncResolution("cached")
				slog.Info("Taxon search unavailable, using stored record",
					"query", query, "scientificName", rec.ScientificName)
				return res, nil
			}
		}
		r.metrics.IncResolution("not_found")
		slog.Info("Species not found", "query", query, "reason", reason(err))
		return res, species.NotFoundError(query, err)
	}
	res.Taxon = taxon

	var consOK bool
	res.Vernacular, res.Conservation, consOK =
		r.enrich(ctx, query, taxon, &res)

	start = time.Now()
	rec := species.Merge(query, taxon, res.Vernacular, res.Conservation)
	rec.KeepConservation = !consOK
	r.add(&res, species.Passed(species.StageMerging, start))
	res.Record = rec

	start = time.Now()
	stored, action, err := r.store.Upsert(ctx, rec)
	if err != nil {
		slog.Warn("Cannot save species", "commonName", rec.CommonName, "error", err)
		r.add(&res, species.Failed(species.StageCaching, start, reason(err)))
	} else {
		r.add(&res, species.Passed(species.StageCaching, start))
		if rec.KeepConservation {
			// the stored assessment is kept, the caller gets the default
			stored = withConservation(stored, rec)
		}
		res.Record = stored
		res.Action = action
	}

	r.metrics.IncResolution("ok")
	slog.Info("Resolved species",
		"query", query,
		"commonName", res.Record.CommonName,
		"scientificName", res.Record.ScientificName,
		"category", res.Record.CategoryCode,
		"action", string(res.Action),
	)
	return res, nil
}

// findTaxon runs searching, filtering and ranking stages.
func (r *resolver) findTaxon(
	ctx context.Context,
	query string,
	res *species.Resolution,
) (species.TaxonCandidate, error) {
	var taxon species.TaxonCandidate

	start := time.Now()
	cands, err := r.taxa.Search(ctx, query)
	if err != nil {
		r.add(res, species.Failed(species.StageSearching, start, reason(err)))
		return taxon, err
	}
	if len(cands) == 0 {
		err = species.NoMatchError(query, 0)
		r.add(res, species.Failed(species.StageSearching, start, "no results"))
		return taxon, err
	}
	r.add(res, species.Passed(species.StageSearching, start))

	start = time.Now()
	fish := species.FilterFish(cands)
	if len(fish) == 0 {
		err = species.NoMatchError(query, len(cands))
		r.add(res, species.Failed(species.StageFiltering, start, "no fish candidates"))
		return taxon, err
	}
	r.add(res, species.Passed(species.StageFiltering, start))

	start = time.Now()
	r.fillCanonical(fish)
	taxon, err = species.Rank(fish, query)
	if err != nil {
		r.add(res, species.Failed(species.StageRanking, start, reason(err)))
		return taxon, err
	}
	r.add(res, species.Passed(species.StageRanking, start))
	return taxon, nil
}

// fillCanonical restores empty canonical names from scientific names.
func (r *resolver) fillCanonical(cands []species.TaxonCandidate) {
	if r.parser == nil {
		return
	}
	for i := range cands {
		if strings.TrimSpace(cands[i].CanonicalName) != "" {
			continue
		}
		if can, ok := r.parser.Canonical(cands[i].ScientificName); ok {
			cands[i].CanonicalName = can
		}
	}
}

// enrich runs vernacular and conservation branches concurrently. Neither
// branch fails, each falls back to its default value. The returned flag
// is false when the conservation service could not give an answer.
func (r *resolver) enrich(
	ctx context.Context,
	query string,
	taxon species.TaxonCandidate,
	res *species.Resolution,
) (species.VernacularName, species.ConservationAssessment, bool) {
	var vn species.VernacularName
	var ca species.ConservationAssessment
	var consOK bool
	var vStage, cStage species.StageResult

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		start := time.Now()
		entries, err := r.taxa.VernacularNames(gctx, taxon.Key)
		vn = species.PickVernacular(entries, query, taxon.CanonicalName)
		if err != nil {
			slog.Debug("Vernacular names are unavailable",
				"key", taxon.Key, "error", err)
			vStage = species.Failed(species.StageVernacular, start, reason(err))
			return nil
		}
		vStage = species.Passed(species.StageVernacular, start)
		return nil
	})

	g.Go(func() error {
		start := time.Now()
		var err error
		ca, err = r.cons.Lookup(gctx, taxon.CanonicalName)
		if err != nil {
			slog.Debug("Conservation status is unavailable",
				"scientificName", taxon.CanonicalName, "error", err)
			ca = species.DefaultAssessment()
			cStage = species.Failed(species.StageConservation, start, reason(err))
			// IUCN answered that there is no assessment
			consOK = species.IsCode(err, errcode.NoMatchError)
			return nil
		}
		cStage = species.Passed(species.StageConservation, start)
		consOK = true
		return nil
	})

	_ = g.Wait()
	r.add(res, vStage)
	r.add(res, cStage)
	return vn, ca, consOK
}

// withConservation copies conservation fields of src into dst.
func withConservation(dst, src species.Record) species.Record {
	dst.ConservationStatus = src.ConservationStatus
	dst.CategoryCode = src.CategoryCode
	dst.PopulationTrend = src.PopulationTrend
	dst.AssessmentID = src.AssessmentID
	dst.YearPublished = src.YearPublished
	return dst
}

func (r *resolver) fromStore(ctx context.Context, query string) *species.Record {
	rec, err := r.store.FindByCommonOrScientificName(ctx, query)
	if err != nil {
		slog.Warn("Cannot read species store", "query", query, "error", err)
		return nil
	}
	return rec
}

func (r *resolver) add(res *species.Resolution, sr species.StageResult) {
	res.Trace = append(res.Trace, sr)
	r.metrics.ObserveStage(string(sr.Stage), sr.OK, sr.Duration)
}

// Taxon implements gnfish.Resolver.
func (r *resolver) Taxon(
	ctx context.Context,
	commonName string,
) (species.TaxonCandidate, error) {
	var res species.Resolution
	query, err := species.NormalizeQuery(commonName)
	if err != nil {
		return species.TaxonCandidate{}, err
	}
	taxon, err := r.findTaxon(ctx, query, &res)
	if err != nil {
		return taxon, species.NotFoundError(query, err)
	}
	return taxon, nil
}

// Conservation implements gnfish.Resolver.
func (r *resolver) Conservation(
	ctx context.Context,
	scientificName string,
) species.ConservationAssessment {
	name := strings.Join(strings.Fields(scientificName), " ")
	if r.parser != nil {
		if can, ok := r.parser.Canonical(name); ok {
			name = can
		}
	}

	start := time.Now()
	ca, err := r.cons.Lookup(ctx, name)
	r.metrics.ObserveStage(string(species.StageConservation), err == nil,
		time.Since(start))
	if err != nil {
		slog.Debug("Conservation status is unavailable",
			"scientificName", name, "error", err)
		return species.DefaultAssessment()
	}
	return ca
}

// ListCached implements gnfish.Resolver.
func (r *resolver) ListCached(ctx context.Context) ([]species.Record, error) {
	return r.store.ListAll(ctx)
}

// Close implements gnfish.Resolver.
func (r *resolver) Close() error {
	err := r.store.Close()
	if r.parser != nil {
		r.parser.Close()
	}
	for _, fn := range r.closers {
		if e := fn(); e != nil && err == nil {
			err = e
		}
	}
	return err
}

// reason converts an error to a short text for traces and batch results.
func reason(err error) string {
	switch species.ErrCode(err) {
	case errcode.InvalidQueryError:
		return "invalid query"
	case errcode.NotFoundError:
		return "not found"
	case errcode.NoMatchError:
		return "no match"
	case errcode.UpstreamUnavailableError:
		return "upstream unavailable"
	case errcode.MalformedResponseError:
		return "malformed response"
	}
	if errors.Is(err, context.Canceled) {
		return "canceled"
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return "timeout"
	}
	return err.Error()
}
