package database

import "errors"

var (
	// ErrSlotTaken means an active (pending/approved) booking already
	// occupies the slot for that week.
	ErrSlotTaken = errors.New("slot already has an active booking for this week")

	// ErrBookingNotFound means the booking id does not exist.
	ErrBookingNotFound = errors.New("booking not found")
)
