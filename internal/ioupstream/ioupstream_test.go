package ioupstream_test

import (
	"context"
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/gnames/gnfish/internal/iocache"
	"github.com/gnames/gnfish/internal/ioupstream"
	"github.com/gnames/gnfish/pkg/errcode"
	"github.com/gnames/gnfish/pkg/species"
	"github.com/jarcoal/httpmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testURL = "https://example.org/api/thing"

type thing struct {
	Name string `json:"name"`
}

func newFetcher(mt *httpmock.MockTransport, opts ioupstream.Options) *ioupstream.Fetcher {
	opts.Service = "test"
	opts.HTTPClient = &http.Client{Transport: mt}
	return ioupstream.New(opts)
}

func TestGetJSON(t *testing.T) {
	assert := assert.New(t)
	require := require.New(t)
	mt := httpmock.NewMockTransport()
	mt.RegisterResponder("GET", testURL,
		func(req *http.Request) (*http.Response, error) {
			assert.Equal("application/json", req.Header.Get("Accept"))
			assert.Equal("secret", req.Header.Get("Authorization"))
			return httpmock.NewStringResponse(200, `{"name":"cod"}`), nil
		})

	f := newFetcher(mt, ioupstream.Options{
		Headers: map[string]string{"Authorization": "secret"},
	})
	var res thing
	err := f.GetJSON(context.Background(), testURL, &res)
	require.NoError(err)
	assert.Equal("cod", res.Name)
}

func TestGetJSONStatus(t *testing.T) {
	assert := assert.New(t)
	mt := httpmock.NewMockTransport()
	mt.RegisterResponder("GET", testURL, httpmock.NewStringResponder(404, "nope"))

	f := newFetcher(mt, ioupstream.Options{Retries: 2})
	var res thing
	err := f.GetJSON(context.Background(), testURL, &res)
	assert.True(species.IsCode(err, errcode.UpstreamUnavailableError))
	// 4xx responses are not retried
	assert.Equal(1, mt.GetTotalCallCount())
}

func TestGetJSONRetry(t *testing.T) {
	assert := assert.New(t)
	mt := httpmock.NewMockTransport()
	calls := 0
	mt.RegisterResponder("GET", testURL,
		func(req *http.Request) (*http.Response, error) {
			calls++
			if calls == 1 {
				return httpmock.NewStringResponse(503, "busy"), nil
			}
			return httpmock.NewStringResponse(200, `{"name":"tuna"}`), nil
		})

	f := newFetcher(mt, ioupstream.Options{Retries: 1})
	var res thing
	err := f.GetJSON(context.Background(), testURL, &res)
	assert.NoError(err)
	assert.Equal("tuna", res.Name)
	assert.Equal(2, calls)
}

func TestGetJSONNetworkError(t *testing.T) {
	mt := httpmock.NewMockTransport()
	mt.RegisterResponder("GET", testURL,
		httpmock.NewErrorResponder(errors.New("connection refused")))

	f := newFetcher(mt, ioupstream.Options{})
	var res thing
	err := f.GetJSON(context.Background(), testURL, &res)
	assert.True(t, species.IsCode(err, errcode.UpstreamUnavailableError))
}

func TestGetJSONMalformed(t *testing.T) {
	mt := httpmock.NewMockTransport()
	mt.RegisterResponder("GET", testURL, httpmock.NewStringResponder(200, `{"name":`))

	f := newFetcher(mt, ioupstream.Options{})
	var res thing
	err := f.GetJSON(context.Background(), testURL, &res)
	assert.True(t, species.IsCode(err, errcode.MalformedResponseError))
}

func TestGetJSONTimeout(t *testing.T) {
	assert := assert.New(t)
	mt := httpmock.NewMockTransport()
	mt.RegisterResponder("GET", testURL,
		func(req *http.Request) (*http.Response, error) {
			<-req.Context().Done()
			return nil, req.Context().Err()
		})

	f := newFetcher(mt, ioupstream.Options{Timeout: 50 * time.Millisecond})
	var res thing
	start := time.Now()
	err := f.GetJSON(context.Background(), testURL, &res)
	assert.True(species.IsCode(err, errcode.UpstreamUnavailableError))
	assert.Less(time.Since(start), 2*time.Second)
}

func TestGetJSONCache(t *testing.T) {
	assert := assert.New(t)
	mt := httpmock.NewMockTransport()
	mt.RegisterResponder("GET", testURL, httpmock.NewStringResponder(200, `{"name":"cod"}`))

	cache := iocache.NewMemory(time.Minute)
	defer cache.Close()

	f := newFetcher(mt, ioupstream.Options{Cache: cache})
	for range 3 {
		var res thing
		err := f.GetJSON(context.Background(), testURL, &res)
		assert.NoError(err)
		assert.Equal("cod", res.Name)
	}
	assert.Equal(1, mt.GetTotalCallCount())
}

func TestGetJSONNoCacheOnError(t *testing.T) {
	mt := httpmock.NewMockTransport()
	mt.RegisterResponder("GET", testURL, httpmock.NewStringResponder(500, "oops"))

	cache := iocache.NewMemory(time.Minute)
	defer cache.Close()

	f := newFetcher(mt, ioupstream.Options{Cache: cache})
	var res thing
	_ = f.GetJSON(context.Background(), testURL, &res)
	_, ok := cache.Get(testURL)
	assert.False(t, ok)
}
