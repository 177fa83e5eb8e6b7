package repository

import (
	"hotel-booking/pkg/database"

	"go.uber.org/zap"
)

type Repository struct {
	User        UserRepository
	Session     SessionRepository
	RoomType    RoomTypeRepository
	Inventory   InventoryRepository
	SpecialDay  SpecialDayRepository
	BookingRule BookingRuleRepository
	Booking     BookingRepository
	Payment     PaymentRepository
	AccessCode  AccessCodeRepository
}

func NewRepository(db database.PgxIface, log *zap.Logger) *Repository {
	return &Repository{
		User:        NewUserRepository(db, log),
		Session:     NewSessionRepository(db, log),
		RoomType:    NewRoomTypeRepository(db, log),
		Inventory:   NewInventoryRepository(db, log),
		SpecialDay:  NewSpecialDayRepository(db, log),
		BookingRule: NewBookingRuleRepository(db, log),
		Booking:     NewBookingRepository(db, log),
		Payment:     NewPaymentRepository(db, log),
		AccessCode:  NewAccessCodeRepository(db, log),
	}
}
