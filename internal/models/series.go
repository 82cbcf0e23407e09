package models

import (
	"math"
	"sort"
	"time"
)

// DateSeries maps an ISO date (YYYY-MM-DD, UTC, weekdays only) to a value.
// ISO keys sort lexicographically in chronological order.
type DateSeries map[string]float64

// Dates returns the keys in ascending order.
func (s DateSeries) Dates() []string {
	dates := make([]string, 0, len(s))
	for d := range s {
		dates = append(dates, d)
	}
	sort.Strings(dates)
	return dates
}

// Value returns the value for date if present and finite.
func (s DateSeries) Value(date string) (float64, bool) {
	v, ok := s[date]
	if !ok || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, false
	}
	return v, true
}

// LivePrice is the latest traded price reported by the futures feed.
type LivePrice struct {
	Price     *float64   `json:"price"`
	Timestamp *time.Time `json:"timestamp"`
}

// Finite reports whether the live price is present and usable.
func (l LivePrice) Finite() bool {
	return l.Price != nil && !math.IsNaN(*l.Price) && !math.IsInf(*l.Price, 0)
}

// DailyCloseSeries is a futures symbol's daily settle history plus its live price.
type DailyCloseSeries struct {
	Symbol      string     `json:"symbol"`
	CloseByDate DateSeries `json:"close_by_date"`
	Live        LivePrice  `json:"live"`
}

// IntradayCloseSeries is a futures symbol's intraday bar closes keyed by unix seconds.
type IntradayCloseSeries struct {
	Symbol      string            `json:"symbol"`
	ByTimestamp map[int64]float64 `json:"by_timestamp"`
	Live        LivePrice         `json:"live"`
}

// Timestamps returns the bar timestamps in ascending order.
func (s IntradayCloseSeries) Timestamps() []int64 {
	ts := make([]int64, 0, len(s.ByTimestamp))
	for t := range s.ByTimestamp {
		ts = append(ts, t)
	}
	sort.Slice(ts, func(i, j int) bool { return ts[i] < ts[j] })
	return ts
}
