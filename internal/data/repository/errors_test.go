package repository

import (
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
)

func TestTranslateError(t *testing.T) {
	overlap := fmt.Errorf("exec: %w", &pgconn.PgError{Code: "23P01", ConstraintName: "bookings_no_overlap"})
	assert.ErrorIs(t, translateError(overlap), ErrBookingOverlap)
	assert.Contains(t, translateError(overlap).Error(), "bookings_no_overlap")

	duplicate := &pgconn.PgError{Code: "23505", ConstraintName: "payments_booking_id_key"}
	assert.ErrorIs(t, translateError(duplicate), ErrDuplicate)

	fk := &pgconn.PgError{Code: "23503"}
	assert.Same(t, error(fk), translateError(fk))

	plain := errors.New("conn closed")
	assert.Equal(t, plain, translateError(plain))
}
