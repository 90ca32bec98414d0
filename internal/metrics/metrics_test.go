package metrics

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMetrics(t *testing.T) {
	// Register should be safe to call multiple times
	Register()
	Register()

	assert.NotPanics(t, func() {
		IncHTTP("/api/v1/bookings")
		IncBookingCreated()
		IncBookingConflict()
		IncStatusChange("approved")
		IncWeekReset()
	})
}
