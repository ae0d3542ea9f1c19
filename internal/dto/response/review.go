package response

import (
	"time"

	"hotel-reservation/internal/data/entity"
)

type ReviewResponse struct {
	ID           string     `json:"id"`
	BookingID    string     `json:"booking_id"`
	UserID       string     `json:"user_id"`
	RoomID       string     `json:"room_id"`
	Rating       int        `json:"rating"`
	Comment      *string    `json:"comment,omitempty"`
	AdminReply   *string    `json:"admin_reply,omitempty"`
	AdminReplyAt *time.Time `json:"admin_reply_at,omitempty"`
	Visible      bool       `json:"visible"`
	CreatedAt    time.Time  `json:"created_at"`
}

type RoomReviewStats struct {
	AverageRating float64 `json:"average_rating"`
	ReviewCount   int64   `json:"review_count"`
}

// Helper converter
func ReviewToResponse(review *entity.Review) ReviewResponse {
	return ReviewResponse{
		ID:           review.ID.String(),
		BookingID:    review.BookingID.String(),
		UserID:       review.UserID.String(),
		RoomID:       review.RoomID.String(),
		Rating:       review.Rating,
		Comment:      review.Comment,
		AdminReply:   review.AdminReply,
		AdminReplyAt: review.AdminReplyAt,
		Visible:      review.Visible,
		CreatedAt:    review.CreatedAt,
	}
}

func ReviewsToResponse(reviews []*entity.Review) []ReviewResponse {
	out := make([]ReviewResponse, len(reviews))
	for i, review := range reviews {
		out[i] = ReviewToResponse(review)
	}
	return out
}
