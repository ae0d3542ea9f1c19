package adaptor

import (
	"net/http"

	"hotel-reservation/internal/dto/request"
	"hotel-reservation/internal/usecase"
	"hotel-reservation/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

type ReviewHandler struct {
	service usecase.ReviewService
	log     *zap.Logger
}

func NewReviewHandler(service usecase.ReviewService, log *zap.Logger) *ReviewHandler {
	return &ReviewHandler{
		service: service,
		log:     log.With(zap.String("handler", "review")),
	}
}

// GetRoomReviews handles GET /api/rooms/{id}/reviews (public)
func (h *ReviewHandler) GetRoomReviews(w http.ResponseWriter, r *http.Request) {
	req := paginationFromQuery(r)
	reviews, err := h.service.GetRoomReviews(r.Context(), chi.URLParam(r, "id"), &req)
	if err != nil {
		handleServiceError(h.log, w, err, "get room reviews")
		return
	}

	utils.ResponseSuccess(w, "success", reviews)
}

// GetRoomReviewStats handles GET /api/rooms/{id}/reviews/stats (public)
func (h *ReviewHandler) GetRoomReviewStats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.service.GetRoomReviewStats(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		handleServiceError(h.log, w, err, "get room review stats")
		return
	}

	utils.ResponseSuccess(w, "success", stats)
}

// GetReviews handles GET /api/reviews (public)
func (h *ReviewHandler) GetReviews(w http.ResponseWriter, r *http.Request) {
	req := paginationFromQuery(r)
	reviews, err := h.service.GetVisibleReviews(r.Context(), &req)
	if err != nil {
		handleServiceError(h.log, w, err, "get reviews")
		return
	}

	utils.ResponseSuccess(w, "success", reviews)
}

// GetReview handles GET /api/reviews/{id} (public)
func (h *ReviewHandler) GetReview(w http.ResponseWriter, r *http.Request) {
	review, err := h.service.GetReview(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		handleServiceError(h.log, w, err, "get review")
		return
	}

	utils.ResponseSuccess(w, "success", review)
}

// CreateReview handles POST /api/bookings/{id}/review (booking owner)
func (h *ReviewHandler) CreateReview(w http.ResponseWriter, r *http.Request) {
	actor, ok := actorFromRequest(w, r)
	if !ok {
		return
	}

	var req request.CreateReviewRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	review, err := h.service.CreateReview(r.Context(), actor, chi.URLParam(r, "id"), &req)
	if err != nil {
		handleServiceError(h.log, w, err, "create review")
		return
	}

	utils.ResponseCreated(w, "Review created", review)
}

// GetUserReviews handles GET /api/user/reviews (protected)
func (h *ReviewHandler) GetUserReviews(w http.ResponseWriter, r *http.Request) {
	actor, ok := actorFromRequest(w, r)
	if !ok {
		return
	}

	reviews, err := h.service.GetUserReviews(r.Context(), actor)
	if err != nil {
		handleServiceError(h.log, w, err, "get user reviews")
		return
	}

	utils.ResponseSuccess(w, "success", reviews)
}

// ==================== ADMIN METHODS ====================

// GetHiddenReviews handles GET /api/admin/reviews/hidden
func (h *ReviewHandler) GetHiddenReviews(w http.ResponseWriter, r *http.Request) {
	reviews, err := h.service.GetHiddenReviews(r.Context())
	if err != nil {
		handleServiceError(h.log, w, err, "get hidden reviews")
		return
	}

	utils.ResponseSuccess(w, "success", reviews)
}

// UpdateVisibility handles PUT /api/admin/reviews/{id}/visibility
func (h *ReviewHandler) UpdateVisibility(w http.ResponseWriter, r *http.Request) {
	var req request.UpdateReviewVisibilityRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	review, err := h.service.UpdateVisibility(r.Context(), chi.URLParam(r, "id"), &req)
	if err != nil {
		handleServiceError(h.log, w, err, "update review visibility")
		return
	}

	utils.ResponseSuccess(w, "Review visibility updated", review)
}

// AddAdminReply handles PUT /api/admin/reviews/{id}/reply
func (h *ReviewHandler) AddAdminReply(w http.ResponseWriter, r *http.Request) {
	var req request.AdminReplyRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	review, err := h.service.AddAdminReply(r.Context(), chi.URLParam(r, "id"), &req)
	if err != nil {
		handleServiceError(h.log, w, err, "add admin reply")
		return
	}

	utils.ResponseSuccess(w, "Reply added", review)
}
