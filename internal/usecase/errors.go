package usecase

import "errors"

// Service-level error taxonomy. Handlers map these to stable response codes
// with errors.Is; wrapped messages carry the human-readable detail.
var (
	// ErrValidation covers semantically invalid input that passed tag
	// validation, like an end date on or before the start date.
	ErrValidation = errors.New("invalid request")

	// ErrRuleViolation covers bookings rejected by policy: advance-window
	// or minimum-notice breaches and blocked dates.
	ErrRuleViolation = errors.New("booking rule violation")

	// ErrNotFound covers missing bookings, room types and payments.
	ErrNotFound = errors.New("resource not found")

	// ErrForbidden is returned when a caller touches a booking they do not own.
	ErrForbidden = errors.New("access denied")

	// ErrConflict covers illegal lifecycle transitions, like confirming a
	// cancelled booking.
	ErrConflict = errors.New("conflicting state")

	// ErrIdempotentNoop signals a redelivered webhook whose effect was
	// already applied. Callers acknowledge without reprocessing.
	ErrIdempotentNoop = errors.New("event already processed")
)
