// Package ioiucn is a client of the IUCN Red List API v4. A lookup finds
// the latest assessment of a species by genus and epithet and then loads
// the assessment itself.
package ioiucn

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"sync"

	"github.com/gnames/gnfish/internal/iocache"
	"github.com/gnames/gnfish/internal/iometrics"
	"github.com/gnames/gnfish/internal/ioupstream"
	"github.com/gnames/gnfish/pkg/config"
	"github.com/gnames/gnfish/pkg/species"
	"github.com/gnames/gnfmt"
)

// Client talks to the IUCN Red List.
type Client struct {
	cfg       config.IUCNConfig
	fetcher   *ioupstream.Fetcher
	tokenWarn sync.Once
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

// OptCache enables caching of IUCN responses.
func OptCache(c iocache.Cache) Option {
	return func(s *settings) { s.cache = c }
}

// OptMetrics sets metrics collectors.
func OptMetrics(m *iometrics.Metrics) Option {
	return func(s *settings) { s.metrics = m }
}

// New creates an IUCN client.
func New(cfg config.IUCNConfig, opts ...Option) *Client {
	var s settings
	for _, opt := range opts {
		opt(&s)
	}
	f := ioupstream.New(ioupstream.Options{
		Service:    "iucn",
		Timeout:    cfg.Timeout,
		RateLimit:  cfg.RateLimit,
		Retries:    1,
		Headers:    map[string]string{"Authorization": cfg.Token},
		HTTPClient: s.client,
		Cache:      s.cache,
		Metrics:    s.metrics,
	})
	return &Client{cfg: cfg, fetcher: f}
}

type taxonResponse struct {
	Assessments []struct {
		AssessmentID  int  `json:"assessment_id"`
		YearPublished text `json:"year_published"`
		Latest        bool `json:"latest"`
	} `json:"assessments"`
}

type assessmentResponse struct {
	AssessmentID    int  `json:"assessment_id"`
	YearPublished   text `json:"year_published"`
	AssessmentDate  text `json:"assessment_date"`
	PopulationTrend text `json:"population_trend"`
	RedListCategory *struct {
		Code        string `json:"code"`
		Description struct {
			EN string `json:"en"`
		} `json:"description"`
	} `json:"red_list_category"`
	Documentation struct {
		Rationale  text `json:"rationale"`
		Range      text `json:"range"`
		Population text `json:"population"`
		Threats    text `json:"threats"`
		Measures   text `json:"measures"`
	} `json:"documentation"`
	Citation text `json:"citation"`
}

// Lookup returns the latest assessment of a species. It never fails: on
// any problem the default "Not Assessed" assessment is returned together
// with the reason it was used.
func (c *Client) Lookup(
	ctx context.Context,
	scientificName string,
) (species.ConservationAssessment, error) {
	res := species.DefaultAssessment()

	genus, sp, ok := species.GenusSpecies(scientificName)
	if !ok {
		return res, NotBinomialError(scientificName)
	}

	if c.cfg.Token == "" {
		c.tokenWarn.Do(func() {
			slog.Warn("IUCN token is not set, conservation lookups are disabled")
		})
		return res, NoTokenError()
	}

	id, err := c.assessmentID(ctx, genus, sp)
	if err != nil {
		return res, err
	}

	var ar assessmentResponse
	u := c.cfg.BaseURL + "/assessment/" + strconv.Itoa(id)
	if err = c.fetcher.GetJSON(ctx, u, &ar); err != nil {
		return res, err
	}
	if ar.RedListCategory == nil || ar.RedListCategory.Code == "" {
		return res, MissingFieldError(scientificName, "red_list_category")
	}

	res = species.ConservationAssessment{
		AssessmentID:    id,
		CategoryCode:    ar.RedListCategory.Code,
		Category:        ar.RedListCategory.Description.EN,
		PopulationTrend: ar.PopulationTrend.ptr(),
		YearPublished:   ar.YearPublished.ptr(),
		AssessmentDate:  ar.AssessmentDate.ptr(),
		Rationale:       ar.Documentation.Rationale.ptr(),
		Range:           ar.Documentation.Range.ptr(),
		Population:      ar.Documentation.Population.ptr(),
		Threats:         ar.Documentation.Threats.ptr(),
		Measures:        ar.Documentation.Measures.ptr(),
		Citation:        ar.Citation.ptr(),
	}
	if res.Category == "" {
		res.Category = categoryName(res.CategoryCode)
	}
	return res, nil
}

// redListNames are the Red List categories by code, used when an
// assessment carries a code without its description.
var redListNames = map[string]string{
	"EX":    "Extinct",
	"EW":    "Extinct in the Wild",
	"CR":    "Critically Endangered",
	"EN":    "Endangered",
	"VU":    "Vulnerable",
	"NT":    "Near Threatened",
	"LR/cd": "Lower Risk/conservation dependent",
	"LR/nt": "Lower Risk/near threatened",
	"LR/lc": "Lower Risk/least concern",
	"LC":    "Least Concern",
	"DD":    "Data Deficient",
	"NE":    "Not Evaluated",
}

func categoryName(code string) string {
	if name, ok := redListNames[code]; ok {
		return name
	}
	return code
}

func (c *Client) assessmentID(ctx context.Context, genus, sp string) (int, error) {
	vals := url.Values{}
	vals.Set("genus_name", genus)
	vals.Set("species_name", sp)
	u := c.cfg.BaseURL + "/taxa/scientific_name?" + vals.Encode()

	var tr taxonResponse
	if err := c.fetcher.GetJSON(ctx, u, &tr); err != nil {
		return 0, err
	}

	name := genus + " " + sp
	if len(tr.Assessments) == 0 {
		return 0, NoAssessmentError(name)
	}
	// the first assessment is the latest one
	id := tr.Assessments[0].AssessmentID
	if id == 0 {
		return 0, MissingFieldError(name, "assessment_id")
	}
	return id, nil
}

// text is a JSON value that is normally a string. Numbers are kept as
// their literal text, objects with "description.en" are reduced to the
// English description, null is an empty value.
type text struct {
	val string
	ok  bool
}

func (t *text) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		return nil
	}

	enc := gnfmt.GNjson{}
	switch data[0] {
	case '"':
		var s string
		if err := enc.Decode(data, &s); err != nil {
			return err
		}
		t.val, t.ok = s, s != ""
	case '{':
		var obj struct {
			Description struct {
				EN string `json:"en"`
			} `json:"description"`
		}
		if err := enc.Decode(data, &obj); err != nil {
			return err
		}
		t.val, t.ok = obj.Description.EN, obj.Description.EN != ""
	case '[':
		return errors.New("unexpected array")
	default:
		t.val, t.ok = string(data), true
	}
	return nil
}

func (t text) ptr() *string {
	if !t.ok {
		return nil
	}
	s := t.val
	return &s
}
