package entity

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBookingTransitions(t *testing.T) {
	tests := []struct {
		from    BookingStatus
		to      BookingStatus
		allowed bool
	}{
		{BookingStatusProvisional, BookingStatusConfirmed, true},
		{BookingStatusProvisional, BookingStatusCancelled, true},
		{BookingStatusProvisional, BookingStatusExpired, true},
		{BookingStatusConfirmed, BookingStatusCancelled, true},
		{BookingStatusConfirmed, BookingStatusExpired, false},
		{BookingStatusConfirmed, BookingStatusProvisional, false},
		{BookingStatusCancelled, BookingStatusConfirmed, false},
		{BookingStatusCancelled, BookingStatusProvisional, false},
		{BookingStatusExpired, BookingStatusConfirmed, false},
		{BookingStatusExpired, BookingStatusCancelled, false},
	}

	for _, tc := range tests {
		b := &Booking{Status: tc.from}
		assert.Equal(t, tc.allowed, b.CanTransitionTo(tc.to),
			"%s -> %s", tc.from, tc.to)
	}
}
