package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"facultyroom/internal/models"

	"github.com/mattn/go-sqlite3"
)

const bookingColumns = `id, day, period, student_name, roll_number, department,
                 purpose, email, booking_time, status, week_number`

// InsertIfFree inserts a booking, relying on the partial unique index to
// reject a second active booking for the same (day, period, week). The
// check and the insert are a single atomic statement.
func (db *DB) InsertIfFree(ctx context.Context, booking *models.Booking) error {
	query := `INSERT INTO bookings (
				day, period, student_name, roll_number, department,
				purpose, email, booking_time, status, week_number
			) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`

	result, err := db.ExecContext(ctx, query,
		booking.Day,
		booking.Period,
		booking.StudentName,
		booking.RollNumber,
		booking.Department,
		booking.Purpose,
		booking.Email,
		booking.BookingTime,
		booking.Status,
		booking.WeekNumber,
	)
	if err != nil {
		var sqliteErr sqlite3.Error
		if errors.As(err, &sqliteErr) && sqliteErr.ExtendedCode == sqlite3.ErrConstraintUnique {
			return ErrSlotTaken
		}
		return fmt.Errorf("failed to insert booking: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to get last insert id: %w", err)
	}
	booking.ID = id

	return nil
}

// BookingsByWeek returns all bookings for a week, most recent first.
func (db *DB) BookingsByWeek(ctx context.Context, week int) ([]*models.Booking, error) {
	query := `SELECT ` + bookingColumns + `
              FROM bookings WHERE week_number = ?
              ORDER BY booking_time DESC, id DESC`
	return db.queryBookings(ctx, query, week)
}

// BookingsByWeekAndStatus returns a week's bookings with the given
// status, most recent first.
func (db *DB) BookingsByWeekAndStatus(ctx context.Context, week int, status string) ([]*models.Booking, error) {
	query := `SELECT ` + bookingColumns + `
              FROM bookings WHERE week_number = ? AND status = ?
              ORDER BY booking_time DESC, id DESC`
	return db.queryBookings(ctx, query, week, status)
}

// PendingSlotsByWeek is the identity-stripped projection students see:
// which slots are already spoken for, without requester details.
func (db *DB) PendingSlotsByWeek(ctx context.Context, week int) ([]models.SlotRef, error) {
	query := `SELECT day, period FROM bookings
              WHERE status = ? AND week_number = ?`
	rows, err := db.QueryContext(ctx, query, models.StatusPending, week)
	if err != nil {
		return nil, fmt.Errorf("failed to get pending slots: %w", err)
	}
	defer rows.Close()

	var slots []models.SlotRef
	for rows.Next() {
		var slot models.SlotRef
		if err := rows.Scan(&slot.Day, &slot.Period); err != nil {
			return nil, fmt.Errorf("failed to scan slot: %w", err)
		}
		slots = append(slots, slot)
	}
	return slots, rows.Err()
}

func (db *DB) GetBooking(ctx context.Context, id int64) (*models.Booking, error) {
	query := `SELECT ` + bookingColumns + ` FROM bookings WHERE id = ?`

	booking, err := scanBooking(db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrBookingNotFound
		}
		return nil, fmt.Errorf("failed to get booking: %w", err)
	}
	return booking, nil
}

// SetBookingStatus flips a booking's status unconditionally: there is no
// prior-state check, so re-approving a rejected booking succeeds.
func (db *DB) SetBookingStatus(ctx context.Context, id int64, status string) error {
	query := `UPDATE bookings SET status = ? WHERE id = ?`
	result, err := db.ExecContext(ctx, query, status, id)
	if err != nil {
		return fmt.Errorf("failed to update booking status: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		return ErrBookingNotFound
	}
	return nil
}

// DeleteActive removes all pending and approved bookings for a week and
// returns the count removed. Rejected and cancelled rows are kept as an
// audit trail.
func (db *DB) DeleteActive(ctx context.Context, week int) (int64, error) {
	query := `DELETE FROM bookings WHERE week_number = ? AND status IN (?, ?)`
	result, err := db.ExecContext(ctx, query, week, models.StatusPending, models.StatusApproved)
	if err != nil {
		return 0, fmt.Errorf("failed to delete active bookings: %w", err)
	}

	count, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to get rows affected: %w", err)
	}
	return count, nil
}

func (db *DB) queryBookings(ctx context.Context, query string, args ...any) ([]*models.Booking, error) {
	rows, err := db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query bookings: %w", err)
	}
	defer rows.Close()

	var bookings []*models.Booking
	for rows.Next() {
		booking, err := scanBooking(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan booking: %w", err)
		}
		bookings = append(bookings, booking)
	}
	return bookings, rows.Err()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanBooking(row rowScanner) (*models.Booking, error) {
	b := &models.Booking{}
	err := row.Scan(
		&b.ID, &b.Day, &b.Period, &b.StudentName, &b.RollNumber,
		&b.Department, &b.Purpose, &b.Email, &b.BookingTime,
		&b.Status, &b.WeekNumber,
	)
	if err != nil {
		return nil, err
	}
	return b, nil
}
