package models

import "time"

const (
	StatusPending   = "pending"
	StatusApproved  = "approved"
	StatusRejected  = "rejected"
	StatusCancelled = "cancelled"
)

// Booking is one requested use of one timetable slot in one ISO week.
// Everything except Status is immutable after creation.
type Booking struct {
	ID          int64     `json:"id"`
	Day         string    `json:"day"`
	Period      string    `json:"period"`
	StudentName string    `json:"student_name"`
	RollNumber  string    `json:"roll_number"`
	Department  string    `json:"department"`
	Purpose     string    `json:"purpose"`
	Email       string    `json:"email,omitempty"`
	BookingTime time.Time `json:"booking_time"`
	Status      string    `json:"status"`
	WeekNumber  int       `json:"week_number"`
}

// SlotRef identifies a timetable slot without exposing who requested it.
type SlotRef struct {
	Day    string `json:"day"`
	Period string `json:"period"`
}

// IsActiveStatus reports whether a status blocks the slot for its week.
func IsActiveStatus(status string) bool {
	return status == StatusPending || status == StatusApproved
}
