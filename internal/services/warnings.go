package services

import (
	"context"
	"fmt"
	"sync"

	"github.com/epeers/tracker/internal/models"
)

type warningContextKey struct{}

// WarningCollector gathers the non-fatal conditions raised while one request
// is served. It is safe for concurrent use by fetch goroutines.
type WarningCollector struct {
	mu       sync.Mutex
	warnings []models.Warning
	seen     map[models.Warning]struct{}
}

// NewWarningContext attaches a fresh collector to ctx and returns both.
func NewWarningContext(ctx context.Context) (context.Context, *WarningCollector) {
	wc := &WarningCollector{seen: make(map[models.Warning]struct{})}
	return context.WithValue(ctx, warningContextKey{}, wc), wc
}

func collectorFrom(ctx context.Context) *WarningCollector {
	wc, _ := ctx.Value(warningContextKey{}).(*WarningCollector)
	return wc
}

// AddWarning records w on the collector in ctx. Repeats of an identical
// warning are kept once. Without a collector the call does nothing.
func AddWarning(ctx context.Context, w models.Warning) {
	wc := collectorFrom(ctx)
	if wc == nil {
		return
	}
	wc.mu.Lock()
	defer wc.mu.Unlock()
	if _, dup := wc.seen[w]; dup {
		return
	}
	wc.seen[w] = struct{}{}
	wc.warnings = append(wc.warnings, w)
}

// AddWarningf is AddWarning with a formatted message.
func AddWarningf(ctx context.Context, code models.WarningCode, format string, args ...any) {
	AddWarning(ctx, models.Warning{Code: code, Message: fmt.Sprintf(format, args...)})
}

// GetWarnings returns a copy of the collected warnings in the order raised.
// The result is never nil so responses always carry an array.
func (wc *WarningCollector) GetWarnings() []models.Warning {
	wc.mu.Lock()
	defer wc.mu.Unlock()
	out := make([]models.Warning, len(wc.warnings))
	copy(out, wc.warnings)
	return out
}

// Len returns the number of distinct warnings so far.
func (wc *WarningCollector) Len() int {
	wc.mu.Lock()
	defer wc.mu.Unlock()
	return len(wc.warnings)
}
