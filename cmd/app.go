/*
Copyright © 2025 Dmitry Mozzherin <dmozzherin@gmail.com>

Permission is hereby granted, free of charge, to any person obtaining a copy
of this software and associated documentation files (the "Software"), to deal
in the Software without restriction, including without limitation the rights
to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
copies of the Software, and to permit persons to whom the Software is
furnished to do so, subject to the following conditions:

The above copyright notice and this permission notice shall be included in
all copies or substantial portions of the Software.

THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN
THE SOFTWARE.
*/
package cmd

import (
	"context"
	"log/slog"

	"github.com/gnames/gnfish/internal/iocache"
	"github.com/gnames/gnfish/internal/iogbif"
	"github.com/gnames/gnfish/internal/ioiucn"
	"github.com/gnames/gnfish/internal/iometrics"
	"github.com/gnames/gnfish/internal/ioresolver"
	"github.com/gnames/gnfish/internal/iostore"
	gnfish "github.com/gnames/gnfish/pkg"
	"github.com/gnames/gnfish/pkg/config"
	"github.com/gnames/gnfish/pkg/parserpool"
	"github.com/prometheus/client_golang/prometheus"
)

// newResolver wires upstream clients, the response cache and the species
// store into a resolver. Metrics are registered only when reg is not nil.
func newResolver(
	ctx context.Context,
	cfg *config.Config,
	reg prometheus.Registerer,
	extra ...ioresolver.Option,
) (gnfish.Resolver, error) {
	var metrics *iometrics.Metrics
	if reg != nil {
		metrics = iometrics.New(reg)
	}

	gbifOpts := []iogbif.Option{iogbif.OptMetrics(metrics)}
	iucnOpts := []ioiucn.Option{ioiucn.OptMetrics(metrics)}
	resOpts := []ioresolver.Option{ioresolver.OptMetrics(metrics)}

	var cache iocache.Cache
	if cfg.Cache.Enabled {
		cache = openCache(cfg)
		gbifOpts = append(gbifOpts, iogbif.OptCache(cache))
		iucnOpts = append(iucnOpts, ioiucn.OptCache(cache))
		resOpts = append(resOpts, ioresolver.OptCloser(cache.Close))
	}

	store, err := iostore.New(ctx, cfg)
	if err != nil {
		if cache != nil {
			_ = cache.Close()
		}
		return nil, err
	}

	resOpts = append(resOpts,
		ioresolver.OptParserPool(parserpool.NewPool(cfg.JobsNumber)),
	)
	resOpts = append(resOpts, extra...)

	res := ioresolver.New(
		cfg,
		iogbif.New(cfg.GBIF, gbifOpts...),
		ioiucn.New(cfg.IUCN, iucnOpts...),
		store,
		resOpts...,
	)
	return res, nil
}

// openCache opens the persistent response cache. If the cache directory
// is locked by another gnfish process, an in-memory cache is used.
func openCache(cfg *config.Config) iocache.Cache {
	dir := config.HTTPCacheDir(cfg.HomeDir)
	cache, err := iocache.New(dir, cfg.Cache.TTL)
	if err != nil {
		slog.Warn("Cannot open response cache, using memory only",
			"dir", dir, "error", err)
		return iocache.NewMemory(cfg.Cache.TTL)
	}
	return cache
}
