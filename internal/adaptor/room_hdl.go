package adaptor

import (
	"net/http"

	"hotel-reservation/internal/dto/request"
	"hotel-reservation/internal/usecase"
	"hotel-reservation/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

type RoomHandler struct {
	service usecase.RoomService
	log     *zap.Logger
}

func NewRoomHandler(service usecase.RoomService, log *zap.Logger) *RoomHandler {
	return &RoomHandler{
		service: service,
		log:     log.With(zap.String("handler", "room")),
	}
}

// ListRooms handles GET /api/rooms?check_in=&check_out= (public)
func (h *RoomHandler) ListRooms(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	req := &request.AvailabilityRequest{
		CheckIn:  query.Get("check_in"),
		CheckOut: query.Get("check_out"),
	}

	rooms, err := h.service.ListRooms(r.Context(), req)
	if err != nil {
		handleServiceError(h.log, w, err, "list rooms")
		return
	}

	utils.ResponseSuccess(w, "success", rooms)
}

// GetRoom handles GET /api/rooms/{id} (public)
func (h *RoomHandler) GetRoom(w http.ResponseWriter, r *http.Request) {
	room, err := h.service.GetRoom(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		handleServiceError(h.log, w, err, "get room")
		return
	}

	utils.ResponseSuccess(w, "success", room)
}

// ==================== ADMIN METHODS ====================

// CreateRoom handles POST /api/admin/rooms
func (h *RoomHandler) CreateRoom(w http.ResponseWriter, r *http.Request) {
	var req request.CreateRoomRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	room, err := h.service.CreateRoom(r.Context(), &req)
	if err != nil {
		handleServiceError(h.log, w, err, "create room")
		return
	}

	utils.ResponseCreated(w, "Room created", room)
}

// UpdateRoom handles PUT /api/admin/rooms/{id}
func (h *RoomHandler) UpdateRoom(w http.ResponseWriter, r *http.Request) {
	var req request.UpdateRoomRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	room, err := h.service.UpdateRoom(r.Context(), chi.URLParam(r, "id"), &req)
	if err != nil {
		handleServiceError(h.log, w, err, "update room")
		return
	}

	utils.ResponseSuccess(w, "Room updated", room)
}

// DeactivateRoom handles DELETE /api/admin/rooms/{id}
func (h *RoomHandler) DeactivateRoom(w http.ResponseWriter, r *http.Request) {
	if err := h.service.DeactivateRoom(r.Context(), chi.URLParam(r, "id")); err != nil {
		handleServiceError(h.log, w, err, "deactivate room")
		return
	}

	utils.ResponseNoContent(w)
}

// UpdateRoomStatus handles PATCH /api/admin/rooms/{id}/status
func (h *RoomHandler) UpdateRoomStatus(w http.ResponseWriter, r *http.Request) {
	var req request.UpdateRoomStatusRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	room, err := h.service.UpdateRoomStatus(r.Context(), chi.URLParam(r, "id"), &req)
	if err != nil {
		handleServiceError(h.log, w, err, "update room status")
		return
	}

	utils.ResponseSuccess(w, "Room status updated", room)
}
