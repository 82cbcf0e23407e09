package util

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestNextMarketDate(t *testing.T) {
	ny, err := time.LoadLocation("America/New_York")
	if err != nil {
		t.Fatalf("should have loaded timezone America/New_York: %v", err)
	}

	testCases := []struct {
		name     string
		input    time.Time
		expected time.Time
	}{
		{
			name:     "Weekday before settle",
			input:    time.Date(2026, 3, 3, 10, 0, 0, 0, ny),  // Tuesday 10:00 AM
			expected: time.Date(2026, 3, 3, 16, 30, 0, 0, ny), // Tuesday 4:30 PM
		},
		{
			name:     "Weekday after settle",
			input:    time.Date(2026, 3, 3, 17, 0, 0, 0, ny),  // Tuesday 5:00 PM
			expected: time.Date(2026, 3, 4, 16, 30, 0, 0, ny), // Wednesday 4:30 PM
		},
		{
			name:     "Friday after settle",
			input:    time.Date(2026, 3, 6, 18, 0, 0, 0, ny),  // Friday 6:00 PM
			expected: time.Date(2026, 3, 9, 16, 30, 0, 0, ny), // Monday 4:30 PM
		},
		{
			name:     "Saturday",
			input:    time.Date(2026, 3, 7, 12, 0, 0, 0, ny),
			expected: time.Date(2026, 3, 9, 16, 30, 0, 0, ny),
		},
		{
			name:     "Sunday",
			input:    time.Date(2026, 3, 8, 12, 0, 0, 0, ny),
			expected: time.Date(2026, 3, 9, 16, 30, 0, 0, ny),
		},
		{
			name:     "Exactly at settle",
			input:    time.Date(2026, 3, 3, 16, 30, 0, 0, ny),
			expected: time.Date(2026, 3, 3, 16, 30, 0, 0, ny),
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			actual := NextMarketDate(tc.input)
			assert.Equal(t, tc.expected.UTC(), actual, "The expected date should be %v but was %v", tc.expected.UTC(), actual)
		})
	}
}
