// Package ioupstream implements the HTTP plumbing shared by the GBIF and
// IUCN clients: per-call timeouts, rate limiting, a small retry for
// transient failures, response caching and error classification.
package ioupstream

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/gnames/gnfish/internal/iocache"
	"github.com/gnames/gnfish/internal/iometrics"
	"github.com/gnames/gnfmt"
	"golang.org/x/time/rate"
)

// maxBodySize limits how much of a response body is read.
const maxBodySize = 10 << 20

// Options configure a Fetcher.
type Options struct {
	// Service is a short name of the upstream ("gbif", "iucn") used in
	// logs and metrics.
	Service string

	// Timeout applies to every single HTTP call, retries included.
	Timeout time.Duration

	// RateLimit is the number of requests per second, 0 means no limit.
	RateLimit int

	// Retries is the number of additional attempts after a network error
	// or a 5xx/429 status.
	Retries int

	// Headers are added to every request.
	Headers map[string]string

	// HTTPClient is used for requests, http.DefaultClient if nil.
	HTTPClient *http.Client

	// Cache keeps successful response bodies. Optional.
	Cache iocache.Cache

	// Metrics receives request counters. Optional.
	Metrics *iometrics.Metrics
}

// Fetcher gets JSON documents from one upstream service.
type Fetcher struct {
	opts    Options
	client  *http.Client
	limiter *rate.Limiter
}

// New creates a Fetcher.
func New(opts Options) *Fetcher {
	res := &Fetcher{
		opts:   opts,
		client: opts.HTTPClient,
	}
	if res.client == nil {
		res.client = http.DefaultClient
	}
	if res.opts.Timeout <= 0 {
		res.opts.Timeout = 5 * time.Second
	}
	if opts.RateLimit > 0 {
		res.limiter = rate.NewLimiter(rate.Limit(opts.RateLimit), opts.RateLimit)
	}
	return res
}

// GetJSON fetches url and decodes the JSON body into result. Errors are
// UpstreamUnavailable for network failures, timeouts and non-2xx
// statuses, and MalformedResponse for bodies that cannot be decoded.
func (f *Fetcher) GetJSON(ctx context.Context, url string, result any) error {
	enc := gnfmt.GNjson{}

	if f.opts.Cache != nil {
		body, ok := f.opts.Cache.Get(url)
		f.opts.Metrics.IncCache(f.opts.Service, ok)
		if ok {
			if err := enc.Decode(body, result); err == nil {
				return nil
			}
			slog.Warn("Ignoring undecodable cached response",
				"service", f.opts.Service, "url", url)
		}
	}

	ctx, cancel := context.WithTimeout(ctx, f.opts.Timeout)
	defer cancel()

	body, err := f.getWithRetry(ctx, url)
	if err != nil {
		f.opts.Metrics.IncUpstream(f.opts.Service, "unavailable")
		return err
	}

	if err = enc.Decode(body, result); err != nil {
		f.opts.Metrics.IncUpstream(f.opts.Service, "malformed")
		slog.Warn("Malformed upstream response",
			"service", f.opts.Service,
			"url", url,
			"preview", preview(body),
			"error", err,
		)
		return MalformedResponseError(f.opts.Service, url, err)
	}

	f.opts.Metrics.IncUpstream(f.opts.Service, "ok")
	if f.opts.Cache != nil {
		if err = f.opts.Cache.Set(url, body); err != nil {
			slog.Warn("Cannot cache upstream response",
				"service", f.opts.Service, "url", url, "error", err)
		}
	}
	return nil
}

func (f *Fetcher) getWithRetry(ctx context.Context, url string) ([]byte, error) {
	var lastErr error
	for attempt := 0; attempt <= f.opts.Retries; attempt++ {
		if attempt > 0 {
			if err := backoff(ctx, attempt); err != nil {
				return nil, UpstreamUnavailableError(f.opts.Service, url, 0, err)
			}
		}

		body, status, err := f.get(ctx, url)
		if err == nil {
			return body, nil
		}
		lastErr = UpstreamUnavailableError(f.opts.Service, url, status, err)

		// client errors will not be fixed by a retry
		if status >= 400 && status < 500 && status != http.StatusTooManyRequests {
			break
		}
		if ctx.Err() != nil {
			break
		}
		slog.Debug("Upstream request failed",
			"service", f.opts.Service,
			"url", url,
			"attempt", attempt+1,
			"status", status,
			"error", err,
		)
	}
	return nil, lastErr
}

func (f *Fetcher) get(ctx context.Context, url string) ([]byte, int, error) {
	if f.limiter != nil {
		if err := f.limiter.Wait(ctx); err != nil {
			return nil, 0, fmt.Errorf("rate limiter wait: %w", err)
		}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, 0, fmt.Errorf("cannot create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	for k, v := range f.opts.Headers {
		req.Header.Set(k, v)
	}

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, 0, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodySize))
	if err != nil {
		return nil, resp.StatusCode, fmt.Errorf("cannot read body: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, resp.StatusCode,
			fmt.Errorf("unexpected status %d: %s", resp.StatusCode, preview(body))
	}
	return body, resp.StatusCode, nil
}

func backoff(ctx context.Context, attempt int) error {
	t := time.NewTimer(time.Duration(attempt) * 200 * time.Millisecond)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}

func preview(body []byte) string {
	if len(body) > 200 {
		return string(body[:200]) + "..."
	}
	return string(body)
}
