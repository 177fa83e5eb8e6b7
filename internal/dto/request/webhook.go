package request

// PaymentEvent is the provider webhook payload. Type selects which payload
// pointer is populated; the others stay nil. ProviderPaymentID doubles as
// the idempotency key across redeliveries.
type PaymentEvent struct {
	Type              string            `json:"type" validate:"required,oneof=payment_succeeded payment_failed refunded"`
	ProviderPaymentID string            `json:"provider_payment_id" validate:"required"`
	BookingRef        string            `json:"booking_ref" validate:"required"`
	Succeeded         *SucceededPayload `json:"succeeded,omitempty"`
	Failed            *FailedPayload    `json:"failed,omitempty"`
	Refunded          *RefundedPayload  `json:"refunded,omitempty"`
}

type SucceededPayload struct {
	AmountMinor int64  `json:"amount_minor" validate:"required,min=1"`
	Currency    string `json:"currency" validate:"required,len=3"`
	PaidAt      string `json:"paid_at" validate:"required"`
}

type FailedPayload struct {
	Reason string `json:"reason"`
}

type RefundedPayload struct {
	AmountMinor int64  `json:"amount_minor" validate:"required,min=1"`
	Reason      string `json:"reason"`
}
