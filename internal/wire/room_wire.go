package wire

import (
	"hotel-reservation/internal/adaptor"

	"github.com/go-chi/chi/v5"
)

func wireRoom(r chi.Router, roomHandler *adaptor.RoomHandler, g guards) {
	// ==================== PUBLIC ROUTES ====================
	// GET /api/rooms - Active rooms, or rooms free for ?check_in&check_out
	r.Get("/api/rooms", roomHandler.ListRooms)

	// GET /api/rooms/{id} - Room details
	r.Get("/api/rooms/{id}", roomHandler.GetRoom)

	// ==================== ADMIN ROUTES ====================
	r.Group(func(r chi.Router) {
		r.Use(g.auth)
		r.Use(g.admin)

		r.Post("/api/admin/rooms", roomHandler.CreateRoom)
		r.Put("/api/admin/rooms/{id}", roomHandler.UpdateRoom)

		// DELETE deactivates; rooms are never removed
		r.Delete("/api/admin/rooms/{id}", roomHandler.DeactivateRoom)
		r.Patch("/api/admin/rooms/{id}/status", roomHandler.UpdateRoomStatus)
	})
}
