package clock

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestISOWeek(t *testing.T) {
	tests := []struct {
		name string
		date time.Time
		week int
	}{
		{"mid year", time.Date(2024, 3, 4, 12, 0, 0, 0, time.UTC), 10},
		{"jan 1st belongs to previous year week", time.Date(2023, 1, 1, 0, 0, 0, 0, time.UTC), 52},
		{"iso week 1 starts in previous december", time.Date(2024, 12, 30, 0, 0, 0, 0, time.UTC), 1},
		{"week 53 year", time.Date(2020, 12, 31, 0, 0, 0, 0, time.UTC), 53},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.week, ISOWeek(tt.date))
		})
	}
}

func TestFixedClock(t *testing.T) {
	instant := time.Date(2024, 3, 4, 12, 0, 0, 0, time.UTC)
	c := Fixed{Instant: instant}
	assert.Equal(t, instant, c.Now())
	assert.Equal(t, 10, ISOWeek(c.Now()))
}

func TestSystemClock(t *testing.T) {
	before := time.Now()
	now := System{}.Now()
	assert.False(t, now.Before(before))
}
