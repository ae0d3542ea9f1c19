package request

type CreateBookingRequest struct {
	RoomID         string  `json:"room_id" validate:"required,uuid"`
	CheckInDate    string  `json:"check_in_date" validate:"required,datetime=2006-01-02"`
	CheckOutDate   string  `json:"check_out_date" validate:"required,datetime=2006-01-02"`
	Guests         int     `json:"guests" validate:"required,min=1"`
	SpecialRequest *string `json:"special_request,omitempty" validate:"omitempty,max=500"`
}

type UpdateBookingStatusRequest struct {
	Status string `json:"status" validate:"required"`
}

// BookingFilterRequest is the admin listing query.
type BookingFilterRequest struct {
	PaginatedRequest
	Status string `json:"status"`
}
