package adaptor

import (
	"encoding/json"
	"net/http"

	"hotel-reservation/internal/data/entity"
	"hotel-reservation/internal/dto/request"
	"hotel-reservation/internal/usecase"
	"hotel-reservation/pkg/apperror"
	"hotel-reservation/pkg/utils"

	"go.uber.org/zap"
)

type Handler struct {
	Room    *RoomHandler
	Booking *BookingHandler
	Payment *PaymentHandler
	Review  *ReviewHandler
}

func NewHandler(service *usecase.Service, log *zap.Logger) *Handler {
	return &Handler{
		Room:    NewRoomHandler(service.Room, log),
		Booking: NewBookingHandler(service.Booking, log),
		Payment: NewPaymentHandler(service.Payment, log),
		Review:  NewReviewHandler(service.Review, log),
	}
}

// actorFromRequest reads the identity placed in the context by the auth middleware.
func actorFromRequest(w http.ResponseWriter, r *http.Request) (entity.Actor, bool) {
	identity, ok := utils.IdentityFromContext(r.Context())
	if !ok {
		utils.ResponseUnauthorized(w, "Authentication required")
		return entity.Actor{}, false
	}
	role := entity.UserRole(identity.Role)
	if role == "" {
		role = entity.RoleCustomer
	}
	return entity.Actor{UserID: identity.UserID, Role: role}, true
}

func decodeJSON(w http.ResponseWriter, r *http.Request, dst any) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return false
	}
	return true
}

func paginationFromQuery(r *http.Request) request.PaginatedRequest {
	query := r.URL.Query()
	return request.PaginatedRequest{
		Page:    utils.ParseInt(query.Get("page"), 1),
		PerPage: utils.ParseInt(query.Get("per_page"), utils.DefaultPerPage),
	}
}

// handleServiceError maps the service error taxonomy onto HTTP responses.
// Anything unclassified is logged and reported as a generic 500.
func handleServiceError(log *zap.Logger, w http.ResponseWriter, err error, operation string) {
	appErr, ok := apperror.As(err)
	if !ok {
		log.Error(operation+" failed",
			zap.Error(err),
			zap.String("operation", operation))
		utils.ResponseInternalError(w, "Internal server error")
		return
	}

	log.Warn(operation+" rejected",
		zap.Error(err),
		zap.String("operation", operation),
		zap.String("kind", appErr.Kind.String()))

	if appErr.Kind == apperror.KindInternal {
		utils.ResponseInternalError(w, "Internal server error")
		return
	}
	utils.ResponseError(w, appErr.Kind.HTTPStatus(), appErr.Message, appErr.Fields)
}
