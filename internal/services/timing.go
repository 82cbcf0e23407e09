package services

import (
	"context"
	"time"

	log "github.com/sirupsen/logrus"
)

// TrackTime starts timing op and returns the func that logs it at debug level,
// along with how many warnings the request had raised by then.
//
//	defer TrackTime(ctx, "CalibrationService.Compute")()
func TrackTime(ctx context.Context, op string) func() {
	start := time.Now()
	return func() {
		fields := log.Fields{
			"op":         op,
			"elapsed_ms": time.Since(start).Milliseconds(),
		}
		if wc := collectorFrom(ctx); wc != nil {
			fields["warnings"] = wc.Len()
		}
		log.WithFields(fields).Debug("timing")
	}
}
