package metrics

import (
	"net/http/httptest"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestRegistry_Observations(t *testing.T) {
	r := NewRegistry()

	r.ObserveUpstream("yahoo", "ok", 120*time.Millisecond)
	r.ObserveUpstream("yahoo", "ok", 80*time.Millisecond)
	r.ObserveUpstream("eia", "error", time.Second)
	r.ObserveCache(true)
	r.ObserveCache(false)
	r.ObserveCache(false)
	r.ObserveResolution("pending")
	r.ObserveIntradayUnavailable()
	r.ObserveHTTP("/health", 200, time.Millisecond)

	assert.Equal(t, 2.0, testutil.ToFloat64(r.UpstreamRequests.WithLabelValues("yahoo", "ok")))
	assert.Equal(t, 1.0, testutil.ToFloat64(r.UpstreamRequests.WithLabelValues("eia", "error")))
	assert.Equal(t, 1.0, testutil.ToFloat64(r.CacheLookups.WithLabelValues("hit")))
	assert.Equal(t, 2.0, testutil.ToFloat64(r.CacheLookups.WithLabelValues("miss")))
	assert.Equal(t, 1.0, testutil.ToFloat64(r.Resolutions.WithLabelValues("pending")))
	assert.Equal(t, 1.0, testutil.ToFloat64(r.IntradayUnavailable))
	assert.Equal(t, 1.0, testutil.ToFloat64(r.HTTPRequests.WithLabelValues("/health", "200")))
}

func TestRegistry_NilIsNoop(t *testing.T) {
	var r *Registry
	assert.NotPanics(t, func() {
		r.ObserveUpstream("yahoo", "ok", time.Second)
		r.ObserveCache(true)
		r.SetBreakerState("yahoo", 2)
		r.ObserveResolution("exact")
		r.ObserveIntradayUnavailable()
		r.ObserveHTTP("/", 200, time.Second)
	})
}

func TestRegistry_Handler(t *testing.T) {
	r := NewRegistry()
	r.ObserveResolution("exact")

	rec := httptest.NewRecorder()
	r.Handler().ServeHTTP(rec, httptest.NewRequest("GET", "/metrics", nil))

	assert.Equal(t, 200, rec.Code)
	assert.Contains(t, rec.Body.String(), `tracker_resolution_total{status="exact"} 1`)
}
