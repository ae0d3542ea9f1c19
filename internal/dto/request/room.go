package request

import "github.com/shopspring/decimal"

type CreateRoomRequest struct {
	RoomNumber    string          `json:"room_number" validate:"required,max=20"`
	Name          string          `json:"name" validate:"required,max=100"`
	RoomType      string          `json:"room_type" validate:"required,oneof=standard deluxe suite"`
	Description   *string         `json:"description,omitempty" validate:"omitempty,max=2000"`
	Capacity      int             `json:"capacity" validate:"required,min=1,max=20"`
	PricePerNight decimal.Decimal `json:"price_per_night"`
}

type UpdateRoomRequest = CreateRoomRequest

type UpdateRoomStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=available booked maintenance cleaning"`
}

// AvailabilityRequest carries the optional stay dates of a room search.
type AvailabilityRequest struct {
	CheckIn  string `json:"check_in" validate:"omitempty,datetime=2006-01-02"`
	CheckOut string `json:"check_out" validate:"omitempty,datetime=2006-01-02"`
}
