package entity

import (
	"time"

	"github.com/google/uuid"
)

const (
	MinRating = 1
	MaxRating = 5
)

type Review struct {
	Base
	BookingID    uuid.UUID  `db:"booking_id"`
	UserID       uuid.UUID  `db:"user_id"`
	RoomID       uuid.UUID  `db:"room_id"`
	Rating       int        `db:"rating"` // 1-5
	Comment      *string    `db:"comment"`
	AdminReply   *string    `db:"admin_reply"`
	AdminReplyAt *time.Time `db:"admin_reply_at"`
	Visible      bool       `db:"visible"`
}

type RoomReviewStats struct {
	AverageRating float64 `db:"average_rating"`
	ReviewCount   int64   `db:"review_count"`
}
