package wire

import (
	"hotel-booking/internal/adaptor"
	"hotel-booking/internal/data/repository"
	"hotel-booking/pkg/middleware"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

func wireBooking(
	r chi.Router,
	bookingHandler *adaptor.BookingHandler,
	repo *repository.Repository,
	log *zap.Logger,
) {
	r.Route("/api/bookings", func(r chi.Router) {
		r.Use(middleware.AuthSession(repo.Session, repo.User, log))

		// POST /api/bookings - create provisional booking
		r.Post("/", bookingHandler.CreateBooking)

		// GET /api/bookings - booking history for the caller
		r.Get("/", bookingHandler.GetUserBookings)

		// GET /api/bookings/{id} - booking detail
		r.Get("/{id}", bookingHandler.GetBooking)

		// PUT /api/bookings/{id}/confirm - confirm and take inventory
		r.Put("/{id}/confirm", bookingHandler.ConfirmBooking)

		// PUT /api/bookings/{id}/cancel - cancel, releasing inventory if confirmed
		r.Put("/{id}/cancel", bookingHandler.CancelBooking)
	})
}
