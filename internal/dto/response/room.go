package response

import (
	"time"

	"hotel-reservation/internal/data/entity"

	"github.com/shopspring/decimal"
)

type RoomResponse struct {
	ID            string          `json:"id"`
	RoomNumber    string          `json:"room_number"`
	Name          string          `json:"name"`
	RoomType      string          `json:"room_type"`
	Description   *string         `json:"description,omitempty"`
	Capacity      int             `json:"capacity"`
	PricePerNight decimal.Decimal `json:"price_per_night"`
	Status        string          `json:"status"`
	Active        bool            `json:"active"`
	CreatedAt     time.Time       `json:"created_at"`
	UpdatedAt     time.Time       `json:"updated_at"`
}

func RoomToResponse(room *entity.Room) RoomResponse {
	return RoomResponse{
		ID:            room.ID.String(),
		RoomNumber:    room.RoomNumber,
		Name:          room.Name,
		RoomType:      string(room.RoomType),
		Description:   room.Description,
		Capacity:      room.Capacity,
		PricePerNight: room.PricePerNight,
		Status:        string(room.Status),
		Active:        room.Active,
		CreatedAt:     room.CreatedAt,
		UpdatedAt:     room.UpdatedAt,
	}
}

func RoomsToResponse(rooms []*entity.Room) []RoomResponse {
	out := make([]RoomResponse, len(rooms))
	for i, room := range rooms {
		out[i] = RoomToResponse(room)
	}
	return out
}
