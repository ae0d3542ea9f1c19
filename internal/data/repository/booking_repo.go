package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"hotel-reservation/internal/data/entity"
	"hotel-reservation/pkg/database"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

type BookingRepository interface {
	Create(ctx context.Context, booking *entity.Booking) error
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Booking, error)
	FindByUserID(ctx context.Context, userID uuid.UUID, limit, offset int) ([]*entity.Booking, error)
	CountByUserID(ctx context.Context, userID uuid.UUID) (int64, error)
	FindAll(ctx context.Context, status *entity.BookingStatus, limit, offset int) ([]*entity.Booking, error)
	Count(ctx context.Context, status *entity.BookingStatus) (int64, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status entity.BookingStatus) error

	// Business queries
	FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*entity.Booking, error)
	HasOverlap(ctx context.Context, roomID uuid.UUID, checkIn, checkOut time.Time) (bool, error)
	FindCheckInsByDate(ctx context.Context, date time.Time, statuses []entity.BookingStatus) ([]*entity.Booking, error)
	FindCheckOutsByDate(ctx context.Context, date time.Time, statuses []entity.BookingStatus) ([]*entity.Booking, error)
	FindActiveOnDate(ctx context.Context, date time.Time) ([]*entity.Booking, error)
}

const bookingColumns = `id, reference, user_id, room_id, check_in_date, check_out_date, guests, total_price, status, special_request, created_at, updated_at`

type bookingRepository struct {
	db  database.Querier
	log *zap.Logger
}

func NewBookingRepository(db database.Querier, log *zap.Logger) BookingRepository {
	return &bookingRepository{
		db:  db,
		log: log.With(zap.String("repository", "booking")),
	}
}

func scanBooking(row scanner) (*entity.Booking, error) {
	var booking entity.Booking
	err := row.Scan(
		&booking.ID,
		&booking.Reference,
		&booking.UserID,
		&booking.RoomID,
		&booking.CheckInDate,
		&booking.CheckOutDate,
		&booking.Guests,
		&booking.TotalPrice,
		&booking.Status,
		&booking.SpecialRequest,
		&booking.CreatedAt,
		&booking.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &booking, nil
}

func (r *bookingRepository) list(ctx context.Context, query string, args ...any) ([]*entity.Booking, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var bookings []*entity.Booking
	for rows.Next() {
		booking, err := scanBooking(rows)
		if err != nil {
			return nil, fmt.Errorf("scan booking: %w", err)
		}
		bookings = append(bookings, booking)
	}
	return bookings, rows.Err()
}

func (r *bookingRepository) Create(ctx context.Context, booking *entity.Booking) error {
	query := `
		INSERT INTO bookings (` + bookingColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
	`

	_, err := r.db.Exec(ctx, query,
		booking.ID,
		booking.Reference,
		booking.UserID,
		booking.RoomID,
		booking.CheckInDate,
		booking.CheckOutDate,
		booking.Guests,
		booking.TotalPrice,
		string(booking.Status),
		booking.SpecialRequest,
		booking.CreatedAt,
		booking.UpdatedAt,
	)
	if err != nil {
		r.log.Error("Failed to create booking",
			zap.Error(err),
			zap.String("reference", booking.Reference),
			zap.String("room_id", booking.RoomID.String()),
			zap.String("user_id", booking.UserID.String()),
		)
		return fmt.Errorf("create booking %s: %w", booking.Reference, translateError(err))
	}

	return nil
}

func (r *bookingRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Booking, error) {
	return r.findByID(ctx, `SELECT `+bookingColumns+` FROM bookings WHERE id = $1`, id)
}

// FindByIDForUpdate locks the booking row for the rest of the transaction.
func (r *bookingRepository) FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*entity.Booking, error) {
	return r.findByID(ctx, `SELECT `+bookingColumns+` FROM bookings WHERE id = $1 FOR UPDATE`, id)
}

func (r *bookingRepository) findByID(ctx context.Context, query string, id uuid.UUID) (*entity.Booking, error) {
	booking, err := scanBooking(r.db.QueryRow(ctx, query, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find booking by ID",
			zap.Error(err),
			zap.String("booking_id", id.String()),
		)
		return nil, fmt.Errorf("find booking by ID %s: %w", id.String(), err)
	}
	return booking, nil
}

func (r *bookingRepository) FindByUserID(ctx context.Context, userID uuid.UUID, limit, offset int) ([]*entity.Booking, error) {
	query := `
		SELECT ` + bookingColumns + `
		FROM bookings
		WHERE user_id = $1
		ORDER BY created_at DESC
		LIMIT $2 OFFSET $3
	`

	bookings, err := r.list(ctx, query, userID, limit, offset)
	if err != nil {
		r.log.Error("Failed to find bookings by user ID",
			zap.Error(err),
			zap.String("user_id", userID.String()),
		)
		return nil, fmt.Errorf("find bookings by user ID %s: %w", userID.String(), err)
	}
	return bookings, nil
}

func (r *bookingRepository) CountByUserID(ctx context.Context, userID uuid.UUID) (int64, error) {
	var count int64
	err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM bookings WHERE user_id = $1`, userID).Scan(&count)
	if err != nil {
		r.log.Error("Failed to count bookings by user ID", zap.Error(err), zap.String("user_id", userID.String()))
		return 0, fmt.Errorf("count bookings by user ID %s: %w", userID.String(), err)
	}
	return count, nil
}

// FindAll lists every booking, newest first. A nil status means no filter.
func (r *bookingRepository) FindAll(ctx context.Context, status *entity.BookingStatus, limit, offset int) ([]*entity.Booking, error) {
	query := `
		SELECT ` + bookingColumns + `
		FROM bookings
		WHERE ($1::text IS NULL OR status = $1)
		ORDER BY created_at DESC
		LIMIT $2 OFFSET $3
	`

	bookings, err := r.list(ctx, query, statusArg(status), limit, offset)
	if err != nil {
		r.log.Error("Failed to find bookings", zap.Error(err))
		return nil, fmt.Errorf("find bookings: %w", err)
	}
	return bookings, nil
}

func (r *bookingRepository) Count(ctx context.Context, status *entity.BookingStatus) (int64, error) {
	var count int64
	query := `SELECT COUNT(*) FROM bookings WHERE ($1::text IS NULL OR status = $1)`
	if err := r.db.QueryRow(ctx, query, statusArg(status)).Scan(&count); err != nil {
		r.log.Error("Failed to count bookings", zap.Error(err))
		return 0, fmt.Errorf("count bookings: %w", err)
	}
	return count, nil
}

func statusArg(status *entity.BookingStatus) *string {
	if status == nil {
		return nil
	}
	s := string(*status)
	return &s
}

// HasOverlap applies the inclusive test existing.check_in <= checkOut AND existing.check_out >= checkIn.
func (r *bookingRepository) HasOverlap(ctx context.Context, roomID uuid.UUID, checkIn, checkOut time.Time) (bool, error) {
	query := `
		SELECT EXISTS (
			SELECT 1 FROM bookings
			WHERE room_id = $1
			  AND status <> 'cancelled'
			  AND check_in_date <= $3
			  AND check_out_date >= $2
		)
	`

	var exists bool
	if err := r.db.QueryRow(ctx, query, roomID, checkIn, checkOut).Scan(&exists); err != nil {
		r.log.Error("Failed to check booking overlap",
			zap.Error(err),
			zap.String("room_id", roomID.String()),
		)
		return false, fmt.Errorf("check overlap for room %s: %w", roomID.String(), err)
	}
	return exists, nil
}

func (r *bookingRepository) FindCheckInsByDate(ctx context.Context, date time.Time, statuses []entity.BookingStatus) ([]*entity.Booking, error) {
	query := `
		SELECT ` + bookingColumns + `
		FROM bookings
		WHERE check_in_date = $1 AND status = ANY($2)
		ORDER BY created_at
	`

	bookings, err := r.list(ctx, query, date, statusStrings(statuses))
	if err != nil {
		r.log.Error("Failed to find check-ins", zap.Error(err), zap.Time("date", date))
		return nil, fmt.Errorf("find check-ins on %s: %w", date.Format(time.DateOnly), err)
	}
	return bookings, nil
}

func (r *bookingRepository) FindCheckOutsByDate(ctx context.Context, date time.Time, statuses []entity.BookingStatus) ([]*entity.Booking, error) {
	query := `
		SELECT ` + bookingColumns + `
		FROM bookings
		WHERE check_out_date = $1 AND status = ANY($2)
		ORDER BY created_at
	`

	bookings, err := r.list(ctx, query, date, statusStrings(statuses))
	if err != nil {
		r.log.Error("Failed to find check-outs", zap.Error(err), zap.Time("date", date))
		return nil, fmt.Errorf("find check-outs on %s: %w", date.Format(time.DateOnly), err)
	}
	return bookings, nil
}

// FindActiveOnDate returns in-house stays covering date.
func (r *bookingRepository) FindActiveOnDate(ctx context.Context, date time.Time) ([]*entity.Booking, error) {
	query := `
		SELECT ` + bookingColumns + `
		FROM bookings
		WHERE check_in_date <= $1 AND check_out_date >= $1 AND status = ANY($2)
		ORDER BY check_in_date, created_at
	`

	bookings, err := r.list(ctx, query, date, statusStrings(entity.InHouseStatuses))
	if err != nil {
		r.log.Error("Failed to find active bookings", zap.Error(err), zap.Time("date", date))
		return nil, fmt.Errorf("find active bookings on %s: %w", date.Format(time.DateOnly), err)
	}
	return bookings, nil
}

func (r *bookingRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status entity.BookingStatus) error {
	query := `UPDATE bookings SET status = $2, updated_at = NOW() WHERE id = $1`

	result, err := r.db.Exec(ctx, query, id, string(status))
	if err != nil {
		r.log.Error("Failed to update booking status",
			zap.Error(err),
			zap.String("booking_id", id.String()),
			zap.String("status", string(status)),
		)
		return fmt.Errorf("update booking %s status: %w", id.String(), translateError(err))
	}
	if result.RowsAffected() == 0 {
		return fmt.Errorf("booking %s not found", id.String())
	}
	return nil
}
