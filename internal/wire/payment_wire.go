package wire

import (
	"hotel-reservation/internal/adaptor"

	"github.com/go-chi/chi/v5"
)

func wirePayment(r chi.Router, paymentHandler *adaptor.PaymentHandler, g guards) {
	// ==================== PROTECTED ROUTES (require auth) ====================
	r.Group(func(r chi.Router) {
		r.Use(g.auth)

		// POST /api/bookings/{id}/payment - Pay a pending booking
		r.Post("/api/bookings/{id}/payment", paymentHandler.ProcessPayment)
		r.Get("/api/bookings/{id}/payment", paymentHandler.GetBookingPayment)

		// GET /api/user/payments - Own payment history
		r.Get("/api/user/payments", paymentHandler.GetUserPayments)
	})

	// ==================== ADMIN ROUTES ====================
	r.Group(func(r chi.Router) {
		r.Use(g.auth)
		r.Use(g.admin)

		// POST /api/admin/payments/{id}/refund - Refund and cancel the booking
		r.Post("/api/admin/payments/{id}/refund", paymentHandler.RefundPayment)
	})
}
