package services

import "errors"

// Sentinel errors returned by the services. Handlers map them to HTTP statuses
// with errors.Is; the underlying cause stays wrapped alongside.
var (
	// ErrConfiguration means the service is missing a credential or has invalid settings.
	ErrConfiguration = errors.New("configuration error")
	// ErrUpstreamFetch means a required upstream call failed or returned an unusable payload.
	ErrUpstreamFetch = errors.New("upstream fetch failed")
	// ErrInsufficientData means the upstream data arrived but cannot support a headline value.
	ErrInsufficientData = errors.New("insufficient data")
)
