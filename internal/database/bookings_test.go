package database

import (
	"context"
	"io"
	"testing"
	"time"

	"facultyroom/internal/models"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupTestDB(t *testing.T) *DB {
	logger := zerolog.New(io.Discard)
	db, err := New(":memory:", &logger)
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return db
}

func testBooking(day, period string, week int) *models.Booking {
	return &models.Booking{
		Day:         day,
		Period:      period,
		StudentName: "Asha Verma",
		RollNumber:  "21CS042",
		Department:  "CSE",
		Purpose:     "project demo",
		Email:       "asha@example.edu",
		BookingTime: time.Now(),
		Status:      models.StatusPending,
		WeekNumber:  week,
	}
}

func TestInsertIfFree(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()

	first := testBooking("Monday", "P1", 10)
	require.NoError(t, db.InsertIfFree(ctx, first))
	assert.NotZero(t, first.ID)

	// Same slot, same week, different student: conflict.
	second := testBooking("Monday", "P1", 10)
	second.StudentName = "Rohan Iyer"
	second.RollNumber = "21EC017"
	err := db.InsertIfFree(ctx, second)
	assert.ErrorIs(t, err, ErrSlotTaken)

	// The ledger still holds exactly one row for the slot.
	bookings, err := db.BookingsByWeek(ctx, 10)
	require.NoError(t, err)
	assert.Len(t, bookings, 1)
	assert.Equal(t, "Asha Verma", bookings[0].StudentName)

	// Different period and different week are both fine.
	assert.NoError(t, db.InsertIfFree(ctx, testBooking("Monday", "P2", 10)))
	assert.NoError(t, db.InsertIfFree(ctx, testBooking("Monday", "P1", 11)))
}

func TestSlotRecycleAfterRejection(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()

	booking := testBooking("Tuesday", "P3", 12)
	require.NoError(t, db.InsertIfFree(ctx, booking))

	// An approved booking still blocks the slot.
	require.NoError(t, db.SetBookingStatus(ctx, booking.ID, models.StatusApproved))
	err := db.InsertIfFree(ctx, testBooking("Tuesday", "P3", 12))
	assert.ErrorIs(t, err, ErrSlotTaken)

	// Once rejected, the slot becomes re-bookable.
	require.NoError(t, db.SetBookingStatus(ctx, booking.ID, models.StatusRejected))
	assert.NoError(t, db.InsertIfFree(ctx, testBooking("Tuesday", "P3", 12)))
}

func TestSlotRecycleAfterCancellation(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()

	booking := testBooking("Friday", "P6", 12)
	require.NoError(t, db.InsertIfFree(ctx, booking))
	require.NoError(t, db.SetBookingStatus(ctx, booking.ID, models.StatusCancelled))

	assert.NoError(t, db.InsertIfFree(ctx, testBooking("Friday", "P6", 12)))
}

func TestWeekIsolation(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()

	require.NoError(t, db.InsertIfFree(ctx, testBooking("Wednesday", "P2", 10)))

	bookings, err := db.BookingsByWeek(ctx, 11)
	require.NoError(t, err)
	assert.Empty(t, bookings)

	bookings, err = db.BookingsByWeek(ctx, 10)
	require.NoError(t, err)
	assert.Len(t, bookings, 1)
}

func TestBookingsByWeekOrdering(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()

	older := testBooking("Monday", "P1", 10)
	older.BookingTime = time.Date(2024, 3, 4, 9, 0, 0, 0, time.UTC)
	require.NoError(t, db.InsertIfFree(ctx, older))

	newer := testBooking("Monday", "P2", 10)
	newer.BookingTime = time.Date(2024, 3, 4, 11, 0, 0, 0, time.UTC)
	require.NoError(t, db.InsertIfFree(ctx, newer))

	bookings, err := db.BookingsByWeek(ctx, 10)
	require.NoError(t, err)
	require.Len(t, bookings, 2)
	assert.Equal(t, "P2", bookings[0].Period)
	assert.Equal(t, "P1", bookings[1].Period)
}

func TestBookingsByWeekAndStatus(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()

	pending := testBooking("Monday", "P1", 10)
	require.NoError(t, db.InsertIfFree(ctx, pending))

	approved := testBooking("Monday", "P2", 10)
	require.NoError(t, db.InsertIfFree(ctx, approved))
	require.NoError(t, db.SetBookingStatus(ctx, approved.ID, models.StatusApproved))

	got, err := db.BookingsByWeekAndStatus(ctx, 10, models.StatusPending)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, pending.ID, got[0].ID)

	got, err = db.BookingsByWeekAndStatus(ctx, 10, models.StatusApproved)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, approved.ID, got[0].ID)
}

func TestPendingSlotsByWeek(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()

	pending := testBooking("Monday", "P1", 10)
	require.NoError(t, db.InsertIfFree(ctx, pending))

	approved := testBooking("Tuesday", "P2", 10)
	require.NoError(t, db.InsertIfFree(ctx, approved))
	require.NoError(t, db.SetBookingStatus(ctx, approved.ID, models.StatusApproved))

	slots, err := db.PendingSlotsByWeek(ctx, 10)
	require.NoError(t, err)
	require.Len(t, slots, 1)
	assert.Equal(t, models.SlotRef{Day: "Monday", Period: "P1"}, slots[0])
}

func TestSetBookingStatus(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()

	booking := testBooking("Thursday", "P4", 15)
	require.NoError(t, db.InsertIfFree(ctx, booking))

	require.NoError(t, db.SetBookingStatus(ctx, booking.ID, models.StatusApproved))

	got, err := db.GetBooking(ctx, booking.ID)
	require.NoError(t, err)
	assert.Equal(t, models.StatusApproved, got.Status)

	// Idempotent in effect: setting the same status again succeeds.
	require.NoError(t, db.SetBookingStatus(ctx, booking.ID, models.StatusApproved))

	// Transitions are deliberately unguarded: approve after reject works.
	require.NoError(t, db.SetBookingStatus(ctx, booking.ID, models.StatusRejected))
	require.NoError(t, db.SetBookingStatus(ctx, booking.ID, models.StatusApproved))

	err = db.SetBookingStatus(ctx, 9999, models.StatusApproved)
	assert.ErrorIs(t, err, ErrBookingNotFound)
}

func TestDeleteActivePreservesHistory(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()

	pending := testBooking("Monday", "P1", 20)
	require.NoError(t, db.InsertIfFree(ctx, pending))

	approved := testBooking("Monday", "P2", 20)
	require.NoError(t, db.InsertIfFree(ctx, approved))
	require.NoError(t, db.SetBookingStatus(ctx, approved.ID, models.StatusApproved))

	rejected := testBooking("Monday", "P3", 20)
	require.NoError(t, db.InsertIfFree(ctx, rejected))
	require.NoError(t, db.SetBookingStatus(ctx, rejected.ID, models.StatusRejected))

	otherWeek := testBooking("Monday", "P1", 21)
	require.NoError(t, db.InsertIfFree(ctx, otherWeek))

	count, err := db.DeleteActive(ctx, 20)
	require.NoError(t, err)
	assert.Equal(t, int64(2), count)

	// Rejected history survives the reset.
	remaining, err := db.BookingsByWeek(ctx, 20)
	require.NoError(t, err)
	require.Len(t, remaining, 1)
	assert.Equal(t, models.StatusRejected, remaining[0].Status)

	// Other weeks are untouched.
	other, err := db.BookingsByWeek(ctx, 21)
	require.NoError(t, err)
	assert.Len(t, other, 1)

	// The slot is free again after the reset.
	assert.NoError(t, db.InsertIfFree(ctx, testBooking("Monday", "P1", 20)))

	// Resetting an empty week succeeds with zero.
	count, err = db.DeleteActive(ctx, 33)
	require.NoError(t, err)
	assert.Equal(t, int64(0), count)
}

func TestGetBookingNotFound(t *testing.T) {
	db := setupTestDB(t)

	_, err := db.GetBooking(context.Background(), 42)
	assert.ErrorIs(t, err, ErrBookingNotFound)
}
