package adaptor

import (
	"net/http"

	"hotel-reservation/internal/dto/request"
	"hotel-reservation/internal/usecase"
	"hotel-reservation/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

type PaymentHandler struct {
	service usecase.PaymentService
	log     *zap.Logger
}

func NewPaymentHandler(service usecase.PaymentService, log *zap.Logger) *PaymentHandler {
	return &PaymentHandler{
		service: service,
		log:     log.With(zap.String("handler", "payment")),
	}
}

// ProcessPayment handles POST /api/bookings/{id}/payment (owner or admin)
func (h *PaymentHandler) ProcessPayment(w http.ResponseWriter, r *http.Request) {
	actor, ok := actorFromRequest(w, r)
	if !ok {
		return
	}

	var req request.ProcessPaymentRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	payment, err := h.service.ProcessPayment(r.Context(), actor, chi.URLParam(r, "id"), &req)
	if err != nil {
		handleServiceError(h.log, w, err, "process payment")
		return
	}

	utils.ResponseCreated(w, "Payment completed", payment)
}

// GetBookingPayment handles GET /api/bookings/{id}/payment (owner or admin)
func (h *PaymentHandler) GetBookingPayment(w http.ResponseWriter, r *http.Request) {
	actor, ok := actorFromRequest(w, r)
	if !ok {
		return
	}

	payment, err := h.service.GetPaymentByBookingID(r.Context(), actor, chi.URLParam(r, "id"))
	if err != nil {
		handleServiceError(h.log, w, err, "get booking payment")
		return
	}

	utils.ResponseSuccess(w, "success", payment)
}

// GetUserPayments handles GET /api/user/payments (protected)
func (h *PaymentHandler) GetUserPayments(w http.ResponseWriter, r *http.Request) {
	actor, ok := actorFromRequest(w, r)
	if !ok {
		return
	}

	payments, err := h.service.GetUserPayments(r.Context(), actor)
	if err != nil {
		handleServiceError(h.log, w, err, "get user payments")
		return
	}

	utils.ResponseSuccess(w, "success", payments)
}

// RefundPayment handles POST /api/admin/payments/{id}/refund
func (h *PaymentHandler) RefundPayment(w http.ResponseWriter, r *http.Request) {
	refund, err := h.service.RefundPayment(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		handleServiceError(h.log, w, err, "refund payment")
		return
	}

	utils.ResponseSuccess(w, "Payment refunded", refund)
}
