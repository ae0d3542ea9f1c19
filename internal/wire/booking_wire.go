package wire

import (
	"hotel-reservation/internal/adaptor"

	"github.com/go-chi/chi/v5"
)

func wireBooking(r chi.Router, bookingHandler *adaptor.BookingHandler, g guards) {
	// ==================== PROTECTED ROUTES (require auth) ====================
	r.Group(func(r chi.Router) {
		r.Use(g.auth)

		// POST /api/bookings - Create booking in pending state
		r.Post("/api/bookings", bookingHandler.CreateBooking)

		// GET /api/bookings - Own bookings, newest first
		r.Get("/api/bookings", bookingHandler.GetUserBookings)

		// GET /api/bookings/{id} - Booking details (owner or admin)
		r.Get("/api/bookings/{id}", bookingHandler.GetBookingByID)

		// DELETE /api/bookings/{id} - Cancel booking (owner or admin)
		r.Delete("/api/bookings/{id}", bookingHandler.CancelBooking)
	})

	// ==================== ADMIN ROUTES ====================
	r.Group(func(r chi.Router) {
		r.Use(g.auth)
		r.Use(g.admin)

		r.Get("/api/admin/bookings", bookingHandler.GetAllBookings)
		r.Get("/api/admin/bookings/check-ins/today", bookingHandler.GetCheckInsToday)
		r.Get("/api/admin/bookings/check-outs/today", bookingHandler.GetCheckOutsToday)
		r.Get("/api/admin/bookings/active", bookingHandler.GetActiveBookings)
		r.Put("/api/admin/bookings/{id}/status", bookingHandler.UpdateBookingStatus)
	})
}
