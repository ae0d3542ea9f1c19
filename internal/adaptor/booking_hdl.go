package adaptor

import (
	"net/http"

	"hotel-reservation/internal/dto/request"
	"hotel-reservation/internal/usecase"
	"hotel-reservation/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

type BookingHandler struct {
	service usecase.BookingService
	log     *zap.Logger
}

func NewBookingHandler(service usecase.BookingService, log *zap.Logger) *BookingHandler {
	return &BookingHandler{
		service: service,
		log:     log.With(zap.String("handler", "booking")),
	}
}

// CreateBooking handles POST /api/bookings (protected)
func (h *BookingHandler) CreateBooking(w http.ResponseWriter, r *http.Request) {
	actor, ok := actorFromRequest(w, r)
	if !ok {
		return
	}

	var req request.CreateBookingRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	booking, err := h.service.CreateBooking(r.Context(), actor, &req)
	if err != nil {
		handleServiceError(h.log, w, err, "create booking")
		return
	}

	utils.ResponseCreated(w, "Booking created", booking)
}

// GetUserBookings handles GET /api/bookings (protected, own bookings)
func (h *BookingHandler) GetUserBookings(w http.ResponseWriter, r *http.Request) {
	actor, ok := actorFromRequest(w, r)
	if !ok {
		return
	}

	req := paginationFromQuery(r)
	bookings, err := h.service.GetUserBookings(r.Context(), actor, &req)
	if err != nil {
		handleServiceError(h.log, w, err, "get user bookings")
		return
	}

	utils.ResponseSuccess(w, "success", bookings)
}

// GetBookingByID handles GET /api/bookings/{id} (owner or admin)
func (h *BookingHandler) GetBookingByID(w http.ResponseWriter, r *http.Request) {
	actor, ok := actorFromRequest(w, r)
	if !ok {
		return
	}

	booking, err := h.service.GetBookingByID(r.Context(), actor, chi.URLParam(r, "id"))
	if err != nil {
		handleServiceError(h.log, w, err, "get booking")
		return
	}

	utils.ResponseSuccess(w, "success", booking)
}

// CancelBooking handles DELETE /api/bookings/{id} (owner or admin)
func (h *BookingHandler) CancelBooking(w http.ResponseWriter, r *http.Request) {
	actor, ok := actorFromRequest(w, r)
	if !ok {
		return
	}

	if err := h.service.CancelBooking(r.Context(), actor, chi.URLParam(r, "id")); err != nil {
		handleServiceError(h.log, w, err, "cancel booking")
		return
	}

	utils.ResponseNoContent(w)
}

// ==================== ADMIN METHODS ====================

// GetAllBookings handles GET /api/admin/bookings?status=
func (h *BookingHandler) GetAllBookings(w http.ResponseWriter, r *http.Request) {
	req := &request.BookingFilterRequest{
		PaginatedRequest: paginationFromQuery(r),
		Status:           r.URL.Query().Get("status"),
	}

	bookings, err := h.service.GetAllBookings(r.Context(), req)
	if err != nil {
		handleServiceError(h.log, w, err, "get all bookings")
		return
	}

	utils.ResponseSuccess(w, "success", bookings)
}

// UpdateBookingStatus handles PUT /api/admin/bookings/{id}/status
func (h *BookingHandler) UpdateBookingStatus(w http.ResponseWriter, r *http.Request) {
	var req request.UpdateBookingStatusRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	booking, err := h.service.UpdateBookingStatus(r.Context(), chi.URLParam(r, "id"), &req)
	if err != nil {
		handleServiceError(h.log, w, err, "update booking status")
		return
	}

	utils.ResponseSuccess(w, "Booking status updated", booking)
}

// GetCheckInsToday handles GET /api/admin/bookings/check-ins/today
func (h *BookingHandler) GetCheckInsToday(w http.ResponseWriter, r *http.Request) {
	bookings, err := h.service.GetCheckInsForToday(r.Context())
	if err != nil {
		handleServiceError(h.log, w, err, "get today's check-ins")
		return
	}

	utils.ResponseSuccess(w, "success", bookings)
}

// GetCheckOutsToday handles GET /api/admin/bookings/check-outs/today
func (h *BookingHandler) GetCheckOutsToday(w http.ResponseWriter, r *http.Request) {
	bookings, err := h.service.GetCheckOutsForToday(r.Context())
	if err != nil {
		handleServiceError(h.log, w, err, "get today's check-outs")
		return
	}

	utils.ResponseSuccess(w, "success", bookings)
}

// GetActiveBookings handles GET /api/admin/bookings/active?date=
func (h *BookingHandler) GetActiveBookings(w http.ResponseWriter, r *http.Request) {
	bookings, err := h.service.GetActiveBookingsOn(r.Context(), r.URL.Query().Get("date"))
	if err != nil {
		handleServiceError(h.log, w, err, "get active bookings")
		return
	}

	utils.ResponseSuccess(w, "success", bookings)
}
