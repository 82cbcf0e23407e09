// Package upstream is the shared HTTP plumbing for third-party data feeds:
// bounded timeout, client-side rate limit and a circuit breaker per source.
// It never retries; a failed call is reported to the caller as-is.
package upstream

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/epeers/tracker/internal/metrics"
	log "github.com/sirupsen/logrus"
	"github.com/sony/gobreaker"
	"golang.org/x/time/rate"
)

// maxBodyBytes caps how much of an upstream response is read.
const maxBodyBytes = 16 << 20

// ErrStatus wraps non-200 upstream responses.
var ErrStatus = errors.New("unexpected upstream status")

// Settings configures a Fetcher for one upstream source.
type Settings struct {
	Name       string
	Timeout    time.Duration
	RatePerSec float64
	Burst      int
	Headers    map[string]string

	// Breaker trips after this many consecutive failures and stays open for BreakerCooldown.
	BreakerFailures uint32
	BreakerCooldown time.Duration
}

// Fetcher performs GET requests against one upstream source.
type Fetcher struct {
	name       string
	httpClient *http.Client
	limiter    *rate.Limiter
	breaker    *gobreaker.CircuitBreaker
	headers    map[string]string
	metrics    *metrics.Registry
}

// NewFetcher creates a Fetcher. Zero settings fall back to a 15s timeout,
// 5 req/s, and a breaker that opens after 5 consecutive failures for 30s.
func NewFetcher(s Settings, reg *metrics.Registry) *Fetcher {
	if s.Timeout <= 0 {
		s.Timeout = 15 * time.Second
	}
	if s.RatePerSec <= 0 {
		s.RatePerSec = 5
	}
	if s.Burst <= 0 {
		s.Burst = 5
	}
	if s.BreakerFailures == 0 {
		s.BreakerFailures = 5
	}
	if s.BreakerCooldown <= 0 {
		s.BreakerCooldown = 30 * time.Second
	}

	failures := s.BreakerFailures
	settings := gobreaker.Settings{
		Name:     s.Name,
		Interval: 60 * time.Second,
		Timeout:  s.BreakerCooldown,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= failures
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			log.Warnf("upstream %s circuit breaker %s -> %s", name, from, to)
			reg.SetBreakerState(name, float64(to))
		},
	}

	return &Fetcher{
		name:       s.Name,
		httpClient: &http.Client{Timeout: s.Timeout},
		limiter:    rate.NewLimiter(rate.Limit(s.RatePerSec), s.Burst),
		breaker:    gobreaker.NewCircuitBreaker(settings),
		headers:    s.Headers,
		metrics:    reg,
	}
}

// Get fetches reqURL and returns the response body.
func (f *Fetcher) Get(ctx context.Context, reqURL string) ([]byte, error) {
	start := time.Now()

	if err := f.limiter.Wait(ctx); err != nil {
		f.metrics.ObserveUpstream(f.name, "rate_limited", time.Since(start))
		return nil, fmt.Errorf("%s rate limiter: %w", f.name, err)
	}

	result, err := f.breaker.Execute(func() (interface{}, error) {
		return f.do(ctx, reqURL)
	})
	if err != nil {
		outcome := "error"
		if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
			outcome = "breaker_open"
		}
		f.metrics.ObserveUpstream(f.name, outcome, time.Since(start))
		return nil, fmt.Errorf("%s request failed: %w", f.name, err)
	}

	f.metrics.ObserveUpstream(f.name, "ok", time.Since(start))
	return result.([]byte), nil
}

// GetJSON fetches reqURL and decodes the JSON body into out.
func (f *Fetcher) GetJSON(ctx context.Context, reqURL string, out any) error {
	body, err := f.Get(ctx, reqURL)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("%s: failed to unmarshal response: %w", f.name, err)
	}
	return nil
}

func (f *Fetcher) do(ctx context.Context, reqURL string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	for k, v := range f.headers {
		req.Header.Set(k, v)
	}

	resp, err := f.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: %d", ErrStatus, resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}
	return body, nil
}
