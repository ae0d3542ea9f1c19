package wire

import (
	"hotel-reservation/internal/adaptor"

	"github.com/go-chi/chi/v5"
)

func wireReview(r chi.Router, reviewHandler *adaptor.ReviewHandler, g guards) {
	// ==================== PUBLIC ROUTES ====================
	// GET /api/rooms/{id}/reviews - Visible reviews of a room
	r.Get("/api/rooms/{id}/reviews", reviewHandler.GetRoomReviews)

	// GET /api/rooms/{id}/reviews/stats - Average rating and count
	r.Get("/api/rooms/{id}/reviews/stats", reviewHandler.GetRoomReviewStats)

	r.Get("/api/reviews", reviewHandler.GetReviews)
	r.Get("/api/reviews/{id}", reviewHandler.GetReview)

	// ==================== PROTECTED ROUTES (require auth) ====================
	r.Group(func(r chi.Router) {
		r.Use(g.auth)

		// POST /api/bookings/{id}/review - Review a checked-out stay
		r.Post("/api/bookings/{id}/review", reviewHandler.CreateReview)

		// GET /api/user/reviews - Own reviews
		r.Get("/api/user/reviews", reviewHandler.GetUserReviews)
	})

	// ==================== ADMIN ROUTES ====================
	r.Group(func(r chi.Router) {
		r.Use(g.auth)
		r.Use(g.admin)

		r.Get("/api/admin/reviews/hidden", reviewHandler.GetHiddenReviews)
		r.Put("/api/admin/reviews/{id}/visibility", reviewHandler.UpdateVisibility)
		r.Put("/api/admin/reviews/{id}/reply", reviewHandler.AddAdminReply)
	})
}
