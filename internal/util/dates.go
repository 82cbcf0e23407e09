package util

import (
	"fmt"
	"time"
)

// DateLayout is the ISO calendar date format used for every date key.
const DateLayout = "2006-01-02"

// ParseDate parses a YYYY-MM-DD string as a UTC midnight time.
func ParseDate(s string) (time.Time, error) {
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q: must be YYYY-MM-DD", s)
	}
	return t, nil
}

// IsValidDate reports whether s is a well-formed ISO calendar date.
func IsValidDate(s string) bool {
	_, err := ParseDate(s)
	return err == nil
}

// FormatDate renders the UTC calendar date of t.
func FormatDate(t time.Time) string {
	return t.UTC().Format(DateLayout)
}

// TruncateToDate drops the time of day, keeping the UTC calendar date.
func TruncateToDate(t time.Time) time.Time {
	u := t.UTC()
	return time.Date(u.Year(), u.Month(), u.Day(), 0, 0, 0, 0, time.UTC)
}

// IsWeekday reports whether t falls Monday through Friday in its own location.
func IsWeekday(t time.Time) bool {
	wd := t.Weekday()
	return wd != time.Saturday && wd != time.Sunday
}

// IsWeekdayDate is IsWeekday for an ISO date string. Malformed dates are not weekdays.
func IsWeekdayDate(s string) bool {
	t, err := ParseDate(s)
	if err != nil {
		return false
	}
	return IsWeekday(t)
}

// AddDays shifts an ISO date by n calendar days.
func AddDays(s string, n int) (string, error) {
	t, err := ParseDate(s)
	if err != nil {
		return "", err
	}
	return FormatDate(t.AddDate(0, 0, n)), nil
}

// DaysBetween returns the signed number of calendar days from start to end.
func DaysBetween(start, end string) (int, error) {
	s, err := ParseDate(start)
	if err != nil {
		return 0, err
	}
	e, err := ParseDate(end)
	if err != nil {
		return 0, err
	}
	return int(e.Sub(s).Hours() / 24), nil
}

// BusinessDaysBetween counts weekdays in (from, to]: the start date is
// excluded and the end date included. Returns 0 when to is not after from.
func BusinessDaysBetween(from, to time.Time) int {
	start := TruncateToDate(from)
	end := TruncateToDate(to)
	count := 0
	for d := start.AddDate(0, 0, 1); !d.After(end); d = d.AddDate(0, 0, 1) {
		if IsWeekday(d) {
			count++
		}
	}
	return count
}

// YearStart returns January 1st of the UTC year containing t, as an ISO date.
func YearStart(t time.Time) string {
	return fmt.Sprintf("%04d-01-01", t.UTC().Year())
}
