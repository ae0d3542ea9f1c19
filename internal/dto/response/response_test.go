package response

import (
	"encoding/json"
	"testing"
	"time"

	"hotel-reservation/internal/data/entity"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBookingToResponse(t *testing.T) {
	room := &entity.Room{Base: entity.Base{ID: uuid.New()}, RoomNumber: "101", Name: "Garden View"}
	booking := &entity.Booking{
		Base:         entity.Base{ID: uuid.New()},
		Reference:    "BK-20240601-ABCDEF12",
		UserID:       uuid.New(),
		RoomID:       room.ID,
		CheckInDate:  time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC),
		CheckOutDate: time.Date(2024, 6, 4, 0, 0, 0, 0, time.UTC),
		Guests:       2,
		TotalPrice:   decimal.RequireFromString("150.00"),
		Status:       entity.BookingStatusCheckedIn,
	}

	resp := BookingToResponse(booking, room)

	assert.Equal(t, "2024-06-01", resp.CheckInDate)
	assert.Equal(t, "2024-06-04", resp.CheckOutDate)
	assert.Equal(t, 3, resp.Nights)
	assert.Equal(t, "checked_in", resp.Status)
	assert.Equal(t, string(entity.BookingStatusCheckedIn.Lifecycle()), resp.Lifecycle)
	assert.Equal(t, "101", resp.RoomNumber)

	raw, err := json.Marshal(resp)
	require.NoError(t, err)
	assert.Contains(t, string(raw), `"total_price":"150"`)
	assert.NotContains(t, string(raw), `"payment"`)
}

func TestBookingToResponseWithoutRoom(t *testing.T) {
	booking := &entity.Booking{Status: entity.BookingStatusPending}

	resp := BookingToResponse(booking, nil)

	assert.Empty(t, resp.RoomNumber)
	assert.Empty(t, resp.RoomName)
}

func TestNewPaginatedResponse(t *testing.T) {
	resp := NewPaginatedResponse[RoomResponse](nil, 2, 10, 21)

	assert.NotNil(t, resp.Data)
	assert.Equal(t, 3, resp.Pagination.TotalPages)
	assert.Equal(t, int64(21), resp.Pagination.Total)
}
