package entity

import (
	"time"

	"github.com/google/uuid"
)

type PaymentStatus string

const (
	PaymentStatusPending   PaymentStatus = "pending"
	PaymentStatusSucceeded PaymentStatus = "succeeded"
	PaymentStatusFailed    PaymentStatus = "failed"
	PaymentStatusRefunded  PaymentStatus = "refunded"
)

// Payment records one payment attempt against a booking.
// ProviderPaymentID is the provider-assigned idempotency key; duplicate
// webhook deliveries for the same key must be no-ops.
type Payment struct {
	Base
	BookingID         uuid.UUID     `db:"booking_id"`
	AmountMinor       int64         `db:"amount_minor"`
	Currency          string        `db:"currency"`
	Provider          string        `db:"provider"`
	ProviderPaymentID string        `db:"provider_payment_id"`
	Status            PaymentStatus `db:"status"`
	PaidAt            *time.Time    `db:"paid_at"`
}
