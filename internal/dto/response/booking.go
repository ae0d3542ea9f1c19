package response

import (
	"time"

	"hotel-reservation/internal/data/entity"
	"hotel-reservation/pkg/utils"

	"github.com/shopspring/decimal"
)

type BookingResponse struct {
	ID             string           `json:"id"`
	Reference      string           `json:"reference"`
	UserID         string           `json:"user_id"`
	RoomID         string           `json:"room_id"`
	RoomNumber     string           `json:"room_number,omitempty"`
	RoomName       string           `json:"room_name,omitempty"`
	CheckInDate    string           `json:"check_in_date"`
	CheckOutDate   string           `json:"check_out_date"`
	Nights         int              `json:"nights"`
	Guests         int              `json:"guests"`
	TotalPrice     decimal.Decimal  `json:"total_price"`
	Status         string           `json:"status"`
	Lifecycle      string           `json:"lifecycle"`
	SpecialRequest *string          `json:"special_request,omitempty"`
	Payment        *PaymentResponse `json:"payment,omitempty"`
	CreatedAt      time.Time        `json:"created_at"`
	UpdatedAt      time.Time        `json:"updated_at"`
}

// BookingToResponse; room may be nil when it could not be loaded.
func BookingToResponse(booking *entity.Booking, room *entity.Room) BookingResponse {
	resp := BookingResponse{
		ID:             booking.ID.String(),
		Reference:      booking.Reference,
		UserID:         booking.UserID.String(),
		RoomID:         booking.RoomID.String(),
		CheckInDate:    utils.FormatDate(booking.CheckInDate),
		CheckOutDate:   utils.FormatDate(booking.CheckOutDate),
		Nights:         booking.Nights(),
		Guests:         booking.Guests,
		TotalPrice:     booking.TotalPrice,
		Status:         string(booking.Status),
		Lifecycle:      string(booking.Status.Lifecycle()),
		SpecialRequest: booking.SpecialRequest,
		CreatedAt:      booking.CreatedAt,
		UpdatedAt:      booking.UpdatedAt,
	}
	if room != nil {
		resp.RoomNumber = room.RoomNumber
		resp.RoomName = room.Name
	}
	return resp
}
