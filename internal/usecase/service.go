package usecase

import (
	"hotel-booking/internal/data/repository"
	"hotel-booking/internal/notify"
	"hotel-booking/pkg/utils"

	"go.uber.org/zap"
)

type Service struct {
	Pricing      PricingService
	Availability AvailabilityService
	Rules        RulesService
	Booking      BookingService
	Payment      PaymentService
	Room         RoomService
	Admin        AdminService
	Access       AccessService
}

func NewService(repo *repository.Repository, cfg *utils.Config, notifier notify.Dispatcher, log *zap.Logger) *Service {
	pricing := NewPricingService(repo, log)
	availability := NewAvailabilityService(repo, log)
	rules := NewRulesService(repo, log)

	return &Service{
		Pricing:      pricing,
		Availability: availability,
		Rules:        rules,
		Booking:      NewBookingService(repo, pricing, rules, availability, notifier, cfg, log),
		Payment:      NewPaymentService(repo, notifier, cfg, log),
		Room:         NewRoomService(repo, log),
		Admin:        NewAdminService(repo, notifier, log),
		Access:       NewAccessService(repo, notifier, cfg, log),
	}
}
