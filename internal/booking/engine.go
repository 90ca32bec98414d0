package booking

import (
	"context"
	"strings"

	"facultyroom/internal/clock"
	"facultyroom/internal/database"
	"facultyroom/internal/models"

	"github.com/rs/zerolog"
)

// Engine orchestrates the booking lifecycle: request, approve, reject,
// cancel and the weekly reset. Every operation derives the current week
// from the injected clock; old bookings age out on their own once the
// calendar rolls over.
type Engine struct {
	db     *database.DB
	clock  clock.Clock
	logger zerolog.Logger
}

func NewEngine(db *database.DB, clk clock.Clock, logger *zerolog.Logger) *Engine {
	var componentLogger zerolog.Logger
	if logger != nil {
		componentLogger = logger.With().Str("component", "booking").Logger()
	}
	return &Engine{db: db, clock: clk, logger: componentLogger}
}

// Request is a student's ask for one free slot this week. Field names
// match the wire format so validation errors name the offending field.
type Request struct {
	Day         string `json:"day"`
	Period      string `json:"period"`
	StudentName string `json:"studentName"`
	RollNumber  string `json:"rollNumber"`
	Department  string `json:"department"`
	Purpose     string `json:"purpose"`
	Email       string `json:"email"`
}

func (r *Request) validate() error {
	required := []struct {
		field string
		value string
	}{
		{"day", r.Day},
		{"period", r.Period},
		{"studentName", r.StudentName},
		{"rollNumber", r.RollNumber},
		{"department", r.Department},
		{"purpose", r.Purpose},
	}
	for _, f := range required {
		if strings.TrimSpace(f.value) == "" {
			return &ValidationError{Field: f.field}
		}
	}
	return nil
}

// CurrentWeek returns the ISO week number at this instant.
func (e *Engine) CurrentWeek() int {
	return clock.ISOWeek(e.clock.Now())
}

// RequestSlot validates the request and claims the slot for the current
// week. Returns database.ErrSlotTaken when another active booking holds
// it; the conflict never reveals who holds the slot.
func (e *Engine) RequestSlot(ctx context.Context, req Request) (*models.Booking, error) {
	if err := req.validate(); err != nil {
		return nil, err
	}

	now := e.clock.Now()
	booking := &models.Booking{
		Day:         strings.TrimSpace(req.Day),
		Period:      strings.TrimSpace(req.Period),
		StudentName: strings.TrimSpace(req.StudentName),
		RollNumber:  strings.TrimSpace(req.RollNumber),
		Department:  strings.TrimSpace(req.Department),
		Purpose:     strings.TrimSpace(req.Purpose),
		Email:       strings.TrimSpace(req.Email),
		BookingTime: now,
		Status:      models.StatusPending,
		WeekNumber:  clock.ISOWeek(now),
	}

	if err := e.db.InsertIfFree(ctx, booking); err != nil {
		return nil, err
	}

	e.logger.Info().
		Int64("booking_id", booking.ID).
		Str("day", booking.Day).
		Str("period", booking.Period).
		Int("week", booking.WeekNumber).
		Msg("booking requested")

	return booking, nil
}

// Approve flips a booking to approved. There is deliberately no check
// of the prior status or week; re-approving silently succeeds.
func (e *Engine) Approve(ctx context.Context, actor models.Identity, id int64) error {
	return e.setStatus(ctx, actor, id, models.StatusApproved)
}

// Reject flips a booking to rejected, freeing its slot for re-booking.
func (e *Engine) Reject(ctx context.Context, actor models.Identity, id int64) error {
	return e.setStatus(ctx, actor, id, models.StatusRejected)
}

// Cancel flips a booking to cancelled. Like rejection it frees the slot
// but keeps the row as history.
func (e *Engine) Cancel(ctx context.Context, actor models.Identity, id int64) error {
	return e.setStatus(ctx, actor, id, models.StatusCancelled)
}

func (e *Engine) setStatus(ctx context.Context, actor models.Identity, id int64, status string) error {
	if !actor.Is(models.RoleTeacher) {
		return ErrForbidden
	}

	if err := e.db.SetBookingStatus(ctx, id, status); err != nil {
		return err
	}

	e.logger.Info().Int64("booking_id", id).Str("status", status).Msg("booking status changed")
	return nil
}

// ResetCurrentWeek deletes every pending and approved booking for the
// current week and returns the count removed. Rejected and cancelled
// rows are preserved.
func (e *Engine) ResetCurrentWeek(ctx context.Context, actor models.Identity) (int64, error) {
	if !actor.Is(models.RoleDeveloper) {
		return 0, ErrForbidden
	}

	week := e.CurrentWeek()
	count, err := e.db.DeleteActive(ctx, week)
	if err != nil {
		return 0, err
	}

	e.logger.Info().Int("week", week).Int64("removed", count).Msg("week reset")
	return count, nil
}

// WeekBookings lists every booking made in the current week, newest first.
func (e *Engine) WeekBookings(ctx context.Context) ([]*models.Booking, error) {
	return e.db.BookingsByWeek(ctx, e.CurrentWeek())
}

// PendingSlots is the student view of claimed slots, stripped of
// requester identity.
func (e *Engine) PendingSlots(ctx context.Context) ([]models.SlotRef, error) {
	return e.db.PendingSlotsByWeek(ctx, e.CurrentWeek())
}

// Dashboard is the teacher's working set for the current week.
type Dashboard struct {
	Pending  []*models.Booking `json:"pending"`
	Approved []*models.Booking `json:"approved"`
}

func (e *Engine) TeacherDashboard(ctx context.Context, actor models.Identity) (*Dashboard, error) {
	if !actor.Is(models.RoleTeacher) {
		return nil, ErrForbidden
	}

	week := e.CurrentWeek()
	pending, err := e.db.BookingsByWeekAndStatus(ctx, week, models.StatusPending)
	if err != nil {
		return nil, err
	}
	approved, err := e.db.BookingsByWeekAndStatus(ctx, week, models.StatusApproved)
	if err != nil {
		return nil, err
	}

	return &Dashboard{Pending: pending, Approved: approved}, nil
}
