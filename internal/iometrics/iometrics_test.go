package iometrics_test

import (
	"testing"
	"time"

	"github.com/gnames/gnfish/internal/iometrics"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestMetrics(t *testing.T) {
	m := iometrics.New(prometheus.NewRegistry())

	m.IncUpstream("gbif", "ok")
	m.IncUpstream("gbif", "ok")
	m.IncUpstream("iucn", "unavailable")
	m.IncResolution("resolved")
	m.IncCache("gbif", true)
	m.ObserveStage("searching", true, 10*time.Millisecond)

	assert.Equal(t, 2.0,
		testutil.ToFloat64(m.UpstreamRequests.WithLabelValues("gbif", "ok")))
	assert.Equal(t, 1.0,
		testutil.ToFloat64(m.UpstreamRequests.WithLabelValues("iucn", "unavailable")))
	assert.Equal(t, 1.0,
		testutil.ToFloat64(m.Resolutions.WithLabelValues("resolved")))
	assert.Equal(t, 1.0,
		testutil.ToFloat64(m.CacheLookups.WithLabelValues("gbif", "hit")))
	assert.Equal(t, 1, testutil.CollectAndCount(m.StageLatency))
}

func TestNilMetrics(t *testing.T) {
	var m *iometrics.Metrics
	assert.NotPanics(t, func() {
		m.IncUpstream("gbif", "ok")
		m.IncResolution("resolved")
		m.IncCache("gbif", false)
		m.ObserveStage("searching", false, time.Second)
	})
}
