package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Registry holds all Prometheus metrics for the tracker. A nil *Registry is
// valid and records nothing.
type Registry struct {
	reg *prometheus.Registry

	// Upstream feed metrics
	UpstreamRequests *prometheus.CounterVec
	UpstreamDuration *prometheus.HistogramVec
	BreakerState     *prometheus.GaugeVec

	// Read-through cache metrics
	CacheLookups *prometheus.CounterVec

	// HTTP surface metrics
	HTTPRequests *prometheus.CounterVec
	HTTPDuration *prometheus.HistogramVec

	// Calibration outcome metrics
	Resolutions         *prometheus.CounterVec
	IntradayUnavailable prometheus.Counter
}

// NewRegistry creates a registry with every tracker metric plus Go runtime collectors.
func NewRegistry() *Registry {
	r := &Registry{
		reg: prometheus.NewRegistry(),

		UpstreamRequests: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "tracker_upstream_requests_total",
				Help: "Upstream feed requests by source and outcome",
			},
			[]string{"source", "outcome"},
		),

		UpstreamDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "tracker_upstream_duration_seconds",
				Help:    "Upstream feed request latency in seconds",
				Buckets: []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 15},
			},
			[]string{"source"},
		),

		BreakerState: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "tracker_upstream_breaker_state",
				Help: "Circuit breaker state per source (0=closed, 1=half-open, 2=open)",
			},
			[]string{"source"},
		),

		CacheLookups: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "tracker_cache_lookups_total",
				Help: "Read-through cache lookups by result",
			},
			[]string{"result"},
		),

		HTTPRequests: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "tracker_http_requests_total",
				Help: "HTTP requests by route and status code",
			},
			[]string{"route", "status"},
		),

		HTTPDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "tracker_http_request_duration_seconds",
				Help:    "HTTP request latency in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"route"},
		),

		Resolutions: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "tracker_resolution_total",
				Help: "Calibrations served by resolution status",
			},
			[]string{"status"},
		),

		IntradayUnavailable: prometheus.NewCounter(
			prometheus.CounterOpts{
				Name: "tracker_intraday_unavailable_total",
				Help: "Calibrations whose intraday section was omitted",
			},
		),
	}

	r.reg.MustRegister(
		r.UpstreamRequests,
		r.UpstreamDuration,
		r.BreakerState,
		r.CacheLookups,
		r.HTTPRequests,
		r.HTTPDuration,
		r.Resolutions,
		r.IntradayUnavailable,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	return r
}

// Handler serves the registry in the Prometheus exposition format.
func (r *Registry) Handler() http.Handler {
	if r == nil {
		return promhttp.Handler()
	}
	return promhttp.HandlerFor(r.reg, promhttp.HandlerOpts{})
}

// ObserveUpstream records one upstream call.
func (r *Registry) ObserveUpstream(source, outcome string, elapsed time.Duration) {
	if r == nil {
		return
	}
	r.UpstreamRequests.WithLabelValues(source, outcome).Inc()
	r.UpstreamDuration.WithLabelValues(source).Observe(elapsed.Seconds())
}

// SetBreakerState records a circuit breaker transition.
func (r *Registry) SetBreakerState(source string, state float64) {
	if r == nil {
		return
	}
	r.BreakerState.WithLabelValues(source).Set(state)
}

// ObserveCache records a cache hit or miss.
func (r *Registry) ObserveCache(hit bool) {
	if r == nil {
		return
	}
	result := "miss"
	if hit {
		result = "hit"
	}
	r.CacheLookups.WithLabelValues(result).Inc()
}

// ObserveHTTP records one served request.
func (r *Registry) ObserveHTTP(route string, status int, elapsed time.Duration) {
	if r == nil {
		return
	}
	r.HTTPRequests.WithLabelValues(route, strconv.Itoa(status)).Inc()
	r.HTTPDuration.WithLabelValues(route).Observe(elapsed.Seconds())
}

// ObserveResolution records the resolution status of a served calibration.
func (r *Registry) ObserveResolution(status string) {
	if r == nil {
		return
	}
	r.Resolutions.WithLabelValues(status).Inc()
}

// ObserveIntradayUnavailable counts a calibration served without intraday data.
func (r *Registry) ObserveIntradayUnavailable() {
	if r == nil {
		return
	}
	r.IntradayUnavailable.Inc()
}
