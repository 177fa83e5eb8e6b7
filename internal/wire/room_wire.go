package wire

import (
	"hotel-booking/internal/adaptor"

	"github.com/go-chi/chi/v5"
)

func wireRoom(r chi.Router, roomHandler *adaptor.RoomHandler, availabilityHandler *adaptor.AvailabilityHandler) {
	// Catalog and lookups are public: guests browse before they sign in.
	r.Get("/api/room-types", roomHandler.ListRoomTypes)
	r.Get("/api/room-types/{id}", roomHandler.GetRoomType)

	// GET /api/availability - advisory availability check (public)
	r.Get("/api/availability", availabilityHandler.CheckAvailability)

	// GET /api/quote - night-by-night price quote (public)
	r.Get("/api/quote", availabilityHandler.QuotePrice)
}
