package ioresolver

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/gnames/gnfish/pkg/species"
	"golang.org/x/sync/errgroup"
)

// reasonCanceled is reported for batch items that did not start before
// the context was canceled.
const reasonCanceled = "canceled"

// ResolveAll implements gnfish.Resolver. Names that are equal ignoring
// case and extra spaces are resolved once.
func (r *resolver) ResolveAll(
	ctx context.Context,
	commonNames []string,
) []species.ItemResult {
	start := time.Now()
	res := make([]species.ItemResult, len(commonNames))
	first := make(map[string]int, len(commonNames))
	dups := make(map[int]int)

	g := &errgroup.Group{}
	g.SetLimit(r.jobs)
	for i, name := range commonNames {
		res[i].CommonName = name

		key := strings.ToLower(strings.Join(strings.Fields(name), " "))
		if j, ok := first[key]; ok {
			dups[i] = j
			continue
		}
		first[key] = i

		g.Go(func() error {
			defer r.tick()
			if ctx.Err() != nil {
				res[i].Error = reasonCanceled
				return nil
			}
			res[i] = r.resolveItem(ctx, name)
			return nil
		})
	}
	_ = g.Wait()

	for i, j := range dups {
		item := res[j]
		item.CommonName = commonNames[i]
		// the store was changed by the first occurrence only
		item.Action = species.ActionNone
		res[i] = item
		r.tick()
	}

	slog.Info("Batch resolution finished",
		"names", len(commonNames),
		"unique", len(first),
		"duration", time.Since(start).String(),
	)
	return res
}

func (r *resolver) tick() {
	if r.progress != nil {
		r.progress()
	}
}

func (r *resolver) resolveItem(ctx context.Context, name string) species.ItemResult {
	item := species.ItemResult{CommonName: name}
	rsl, err := r.Resolve(ctx, name)
	if err != nil {
		item.Error = reason(err)
		if ctx.Err() != nil {
			item.Error = reasonCanceled
		}
		return item
	}
	if ctx.Err() != nil && rsl.Action == species.ActionNone {
		// canceled before the record was saved
		item.Error = reasonCanceled
		return item
	}
	rec := rsl.Record
	item.Record = &rec
	item.Action = rsl.Action
	return item
}

// RefreshAll implements gnfish.Resolver.
func (r *resolver) RefreshAll(ctx context.Context) ([]species.ItemResult, error) {
	recs, err := r.store.ListAll(ctx)
	if err != nil {
		return nil, err
	}

	names := make([]string, len(recs))
	for i := range recs {
		names[i] = recs[i].CommonName
	}
	slog.Info("Refreshing stored species", "count", len(names))
	return r.ResolveAll(ctx, names), nil
}
