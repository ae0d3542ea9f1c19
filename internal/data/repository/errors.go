package repository

import (
	"errors"
	"fmt"

	"hotel-reservation/internal/data/entity"

	"github.com/jackc/pgx/v5/pgconn"
)

var (
	// ErrBookingOverlap is returned when a write would give a room two live stays on the same dates.
	ErrBookingOverlap = errors.New("booking overlaps an existing stay")
	// ErrDuplicate is returned on unique constraint violations.
	ErrDuplicate = errors.New("duplicate record")
)

const (
	pgUniqueViolation    = "23505"
	pgExclusionViolation = "23P01"
)

func translateError(err error) error {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return err
	}

	switch pgErr.Code {
	case pgExclusionViolation:
		return fmt.Errorf("%w (%s)", ErrBookingOverlap, pgErr.ConstraintName)
	case pgUniqueViolation:
		return fmt.Errorf("%w (%s)", ErrDuplicate, pgErr.ConstraintName)
	}
	return err
}

func statusStrings(statuses []entity.BookingStatus) []string {
	out := make([]string, len(statuses))
	for i, s := range statuses {
		out[i] = string(s)
	}
	return out
}

// scanner matches both pgx.Row and pgx.Rows.
type scanner interface {
	Scan(dest ...any) error
}
