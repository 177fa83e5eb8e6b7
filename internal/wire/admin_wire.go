package wire

import (
	"hotel-booking/internal/adaptor"
	"hotel-booking/internal/data/repository"
	"hotel-booking/pkg/middleware"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

func wireAdmin(
	r chi.Router,
	adminHandler *adaptor.AdminHandler,
	repo *repository.Repository,
	log *zap.Logger,
) {
	r.Route("/api/admin", func(r chi.Router) {
		r.Use(middleware.AuthSession(repo.Session, repo.User, log))
		r.Use(middleware.Admin(repo.User, log))

		// Special day rules
		r.Get("/special-days", adminHandler.ListSpecialDays)
		r.Post("/special-days", adminHandler.CreateSpecialDay)
		r.Delete("/special-days/{id}", adminHandler.DeleteSpecialDay)

		// Booking rules per guest class
		r.Put("/booking-rules", adminHandler.UpsertBookingRule)

		// Inventory
		r.Get("/inventory", adminHandler.InventoryReport)
		r.Post("/inventory/adjust", adminHandler.AdjustInventory)

		// Bookings
		r.Get("/bookings/{id}", adminHandler.GetBooking)
		r.Put("/bookings/{id}/cancel", adminHandler.CancelBooking)

		// Notifications
		r.Post("/broadcast", adminHandler.Broadcast)
	})
}
