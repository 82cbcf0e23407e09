package util

import (
	"time"

	log "github.com/sirupsen/logrus"
)

const (
	marketTimezone = "America/New_York"
	settleHour     = 16
	settleMinute   = 30
)

// NextMarketDate predicts when the next daily futures settle becomes available.
// It returns the next weekday at 4:30 PM New York time, in UTC. An input at
// exactly 4:30 PM on a weekday returns that same instant.
func NextMarketDate(input time.Time) time.Time {
	loc, err := time.LoadLocation(marketTimezone)
	if err != nil {
		log.Errorf("Failed to load location '%s': %v. Falling back to UTC.", marketTimezone, err)
		loc = time.UTC
	}
	nowET := input.In(loc)

	next := time.Date(nowET.Year(), nowET.Month(), nowET.Day(), settleHour, settleMinute, 0, 0, loc)
	if nowET.After(next) {
		next = next.AddDate(0, 0, 1)
	}

	for !IsWeekday(next) {
		next = next.AddDate(0, 0, 1)
	}

	return next.UTC()
}
