package iogbif_test

import (
	"context"
	"net/http"
	"testing"

	"github.com/gnames/gn"
	"github.com/gnames/gnfish/internal/iogbif"
	"github.com/gnames/gnfish/pkg/config"
	"github.com/gnames/gnfish/pkg/errcode"
	"github.com/gnames/gnfish/pkg/species"
	"github.com/jarcoal/httpmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const codSearch = `{
  "offset": 0, "limit": 20, "endOfRecords": true, "count": 2,
  "results": [
    {"key": 8084280, "scientificName": "Gadus morhua Linnaeus, 1758",
     "canonicalName": "Gadus morhua", "rank": "SPECIES",
     "taxonomicStatus": "ACCEPTED", "kingdom": "Animalia",
     "class": "Actinopterygii", "nubKey": 8084280},
    {"key": 100, "scientificName": "Gadus callarias Linnaeus, 1758",
     "canonicalName": "Gadus callarias", "rank": "SPECIES",
     "taxonomicStatus": "SYNONYM", "kingdom": "Animalia",
     "class": "Actinopterygii"}
  ]
}`

const codVernacular = `{
  "offset": 0, "limit": 100, "endOfRecords": true,
  "results": [
    {"vernacularName": "Kabeljau", "language": "deu"},
    {"vernacularName": "Atlantic cod", "language": "eng", "source": "x"}
  ]
}`

func testClient(t *testing.T, mt *httpmock.MockTransport, broad bool) *iogbif.Client {
	t.Helper()
	cfg := config.New().GBIF
	cfg.BroadSearch = broad
	return iogbif.New(cfg, iogbif.OptHTTPClient(&http.Client{Transport: mt}))
}

func TestSearch(t *testing.T) {
	assert := assert.New(t)
	require := require.New(t)
	mt := httpmock.NewMockTransport()
	mt.RegisterResponder("GET", "https://api.gbif.org/v1/species/search",
		func(req *http.Request) (*http.Response, error) {
			q := req.URL.Query()
			assert.Equal("Atlantic Cod", q.Get("q"))
			assert.Equal("SPECIES", q.Get("rank"))
			assert.Equal("Actinopterygii", q.Get("class"))
			assert.Equal("20", q.Get("limit"))
			return httpmock.NewStringResponse(200, codSearch), nil
		})

	c := testClient(t, mt, false)
	res, err := c.Search(context.Background(), "Atlantic Cod")
	require.NoError(err)
	require.Len(res, 2)
	assert.Equal(8084280, res[0].Key)
	assert.Equal("Gadus morhua", res[0].CanonicalName)
	assert.Equal("Gadus morhua Linnaeus, 1758", res[0].ScientificName)
	assert.Equal("ACCEPTED", res[0].TaxonomicStatus)
	assert.Equal("Actinopterygii", res[0].Class)
	assert.Equal("SYNONYM", res[1].TaxonomicStatus)
}

func TestSearchBroad(t *testing.T) {
	assert := assert.New(t)
	mt := httpmock.NewMockTransport()
	mt.RegisterResponder("GET", "https://api.gbif.org/v1/species/search",
		func(req *http.Request) (*http.Response, error) {
			q := req.URL.Query()
			assert.Empty(q.Get("rank"))
			assert.Empty(q.Get("class"))
			assert.Equal("50", q.Get("limit"))
			return httpmock.NewStringResponse(200, `{"results":[]}`), nil
		})

	c := testClient(t, mt, true)
	res, err := c.Search(context.Background(), "cod")
	assert.NoError(err)
	assert.Empty(res)
}

func TestSearchErrors(t *testing.T) {
	tests := []struct {
		msg    string
		status int
		body   string
		code   gn.ErrorCode
	}{
		{"server error", 500, "boom", errcode.UpstreamUnavailableError},
		{"bad request", 400, "bad", errcode.UpstreamUnavailableError},
		{"malformed", 200, `{"results": [}`, errcode.MalformedResponseError},
	}

	for _, v := range tests {
		t.Run(v.msg, func(t *testing.T) {
			mt := httpmock.NewMockTransport()
			mt.RegisterResponder("GET", "https://api.gbif.org/v1/species/search",
				httpmock.NewStringResponder(v.status, v.body))
			c := testClient(t, mt, false)
			_, err := c.Search(context.Background(), "cod")
			assert.True(t, species.IsCode(err, v.code), v.msg)
		})
	}
}

func TestVernacularNames(t *testing.T) {
	assert := assert.New(t)
	require := require.New(t)
	mt := httpmock.NewMockTransport()
	mt.RegisterResponder("GET",
		"https://api.gbif.org/v1/species/8084280/vernacularNames",
		httpmock.NewStringResponder(200, codVernacular))

	c := testClient(t, mt, false)
	res, err := c.VernacularNames(context.Background(), 8084280)
	require.NoError(err)
	require.Len(res, 2)
	assert.Equal("Atlantic cod", res[1].Name)
	assert.Equal("eng", res[1].Language)
}
