package clock

import "time"

// Clock abstracts wall-clock time so week-boundary behavior can be
// pinned in tests. The current ISO week is always derived from Now;
// there is no cached week state anywhere in the process.
type Clock interface {
	Now() time.Time
}

// System reads the real wall clock.
type System struct{}

func (System) Now() time.Time { return time.Now() }

// Fixed is a Clock pinned to a single instant.
type Fixed struct {
	Instant time.Time
}

func (f Fixed) Now() time.Time { return f.Instant }

// ISOWeek returns the ISO-8601 week number of t in its own location.
func ISOWeek(t time.Time) int {
	_, week := t.ISOWeek()
	return week
}
