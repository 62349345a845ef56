// Package iogbif is a client of the GBIF species API. It searches the
// backbone taxonomy by free text and fetches vernacular names of a taxon.
package iogbif

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"github.com/gnames/gnfish/internal/iocache"
	"github.com/gnames/gnfish/internal/iometrics"
	"github.com/gnames/gnfish/internal/ioupstream"
	"github.com/gnames/gnfish/pkg/config"
	"github.com/gnames/gnfish/pkg/species"
)

// broadLimit is the number of candidates requested when the search is not
// constrained by rank and class.
const broadLimit = 50

// vernacularLimit is the page size of the vernacular names request.
const vernacularLimit = 100

// Client talks to GBIF.
type Client struct {
	cfg     config.GBIFConfig
	fetcher *ioupstream.Fetcher
}

// Option modifies the client.
type Option func(*settings)

type settings struct {
	client  *http.Client
	cache   iocache.Cache
	metrics *iometrics.Metrics
}

// OptHTTPClient sets the HTTP client, mostly for tests.
func OptHTTPClient(c *http.Client) Option {
	return func(s *settings) { s.client = c }
}

// OptCache enables caching of GBIF responses.
func OptCache(c iocache.Cache) Option {
	return func(s *settings) { s.cache = c }
}

// OptMetrics sets metrics collectors.
func OptMetrics(m *iometrics.Metrics) Option {
	return func(s *settings) { s.metrics = m }
}

// New creates a GBIF client.
func New(cfg config.GBIFConfig, opts ...Option) *Client {
	var s settings
	for _, opt := range opts {
		opt(&s)
	}
	if cfg.Limit <= 0 {
		cfg.Limit = config.New().GBIF.Limit
	}
	f := ioupstream.New(ioupstream.Options{
		Service:    "gbif",
		Timeout:    cfg.Timeout,
		RateLimit:  cfg.RateLimit,
		Retries:    1,
		HTTPClient: s.client,
		Cache:      s.cache,
		Metrics:    s.metrics,
	})
	return &Client{cfg: cfg, fetcher: f}
}

type searchResponse struct {
	Offset       int                      `json:"offset"`
	Limit        int                      `json:"limit"`
	EndOfRecords bool                     `json:"endOfRecords"`
	Count        int                      `json:"count"`
	Results      []species.TaxonCandidate `json:"results"`
}

type vernacularResponse struct {
	Results []species.VernacularEntry `json:"results"`
}

// Search returns taxon candidates for a free-text query in the order GBIF
// returned them. By default the search is constrained to species of
// ray-finned fishes.
func (c *Client) Search(
	ctx context.Context,
	query string,
) ([]species.TaxonCandidate, error) {
	vals := url.Values{}
	vals.Set("q", query)
	if c.cfg.BroadSearch {
		vals.Set("limit", strconv.Itoa(broadLimit))
	} else {
		vals.Set("rank", "SPECIES")
		vals.Set("class", "Actinopterygii")
		vals.Set("limit", strconv.Itoa(c.cfg.Limit))
	}
	u := c.cfg.BaseURL + "/species/search?" + vals.Encode()

	var resp searchResponse
	if err := c.fetcher.GetJSON(ctx, u, &resp); err != nil {
		return nil, err
	}
	return resp.Results, nil
}

// VernacularNames returns common names of a taxon in many languages.
func (c *Client) VernacularNames(
	ctx context.Context,
	key int,
) ([]species.VernacularEntry, error) {
	u := fmt.Sprintf("%s/species/%d/vernacularNames?limit=%d",
		c.cfg.BaseURL, key, vernacularLimit)

	var resp vernacularResponse
	if err := c.fetcher.GetJSON(ctx, u, &resp); err != nil {
		return nil, err
	}
	return resp.Results, nil
}
