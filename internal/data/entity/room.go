package entity

import (
	"github.com/shopspring/decimal"
)

type RoomType string

const (
	RoomTypeStandard RoomType = "standard"
	RoomTypeDeluxe   RoomType = "deluxe"
	RoomTypeSuite    RoomType = "suite"
)

// RoomStatus is operational only. Availability is computed from bookings.
type RoomStatus string

const (
	RoomStatusAvailable   RoomStatus = "available"
	RoomStatusBooked      RoomStatus = "booked"
	RoomStatusMaintenance RoomStatus = "maintenance"
	RoomStatusCleaning    RoomStatus = "cleaning"
)

type Room struct {
	Base
	RoomNumber    string          `db:"room_number"`
	Name          string          `db:"name"`
	RoomType      RoomType        `db:"room_type"`
	Description   *string         `db:"description"`
	Capacity      int             `db:"capacity"`
	PricePerNight decimal.Decimal `db:"price_per_night"`
	Status        RoomStatus      `db:"status"`
	Active        bool            `db:"active"`
}
