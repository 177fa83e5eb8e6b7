package entity

import (
	"time"

	"github.com/google/uuid"
)

// AccessCode is a short-lived, single-use verification code tied to one
// booking. Only the bcrypt hash is stored.
type AccessCode struct {
	BaseSimple
	BookingID uuid.UUID  `db:"booking_id"`
	CodeHash  string     `db:"code_hash"`
	ExpiresAt time.Time  `db:"expires_at"`
	UsedAt    *time.Time `db:"used_at"`
}
