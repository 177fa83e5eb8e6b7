package entity

import (
	"time"

	"github.com/google/uuid"
)

type BookingStatus string

const (
	BookingStatusProvisional BookingStatus = "provisional"
	BookingStatusConfirmed   BookingStatus = "confirmed"
	BookingStatusCancelled   BookingStatus = "cancelled"
	BookingStatusExpired     BookingStatus = "expired"
)

// Booking is a stay request. EndDate is exclusive: the night of EndDate is
// neither charged nor reserved. Provisional bookings hold no inventory;
// only the confirm transition decrements the ledger.
type Booking struct {
	Base
	BookingRef      string        `db:"booking_ref"`
	UserID          uuid.UUID     `db:"user_id"`
	RoomTypeID      uuid.UUID     `db:"room_type_id"`
	StartDate       time.Time     `db:"start_date"`
	EndDate         time.Time     `db:"end_date"`
	RoomsBooked     int           `db:"rooms_booked"`
	TotalPriceMinor int64         `db:"total_price_minor"`
	DepositMinor    int64         `db:"deposit_minor"`
	Status          BookingStatus `db:"status"`
}

// CanTransitionTo reports whether the status change is a legal lifecycle
// transition.
func (b *Booking) CanTransitionTo(next BookingStatus) bool {
	switch b.Status {
	case BookingStatusProvisional:
		return next == BookingStatusConfirmed ||
			next == BookingStatusCancelled ||
			next == BookingStatusExpired
	case BookingStatusConfirmed:
		return next == BookingStatusCancelled
	default:
		return false
	}
}
