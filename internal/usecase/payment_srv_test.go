package usecase

import (
	"context"
	"testing"
	"time"

	"hotel-booking/internal/data/entity"
	"hotel-booking/internal/data/repository"
	"hotel-booking/internal/dto/request"
	"hotel-booking/internal/notify"
	"hotel-booking/pkg/utils"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type paymentFixture struct {
	svc      *paymentService
	bookings *stubBookingRepo
	payments *stubPaymentRepo
	notifier *stubNotifier
	booking  *entity.Booking
}

func newPaymentFixture(t *testing.T, payments ...*entity.Payment) *paymentFixture {
	t.Helper()

	booking := provisionalBooking(uuid.New(), uuid.New())
	bookingRepo := newStubBookingRepo(booking)
	paymentRepo := newStubPaymentRepo(payments...)
	notifier := &stubNotifier{}

	repo := &repository.Repository{
		Booking: bookingRepo,
		Payment: paymentRepo,
	}

	cfg := &utils.Config{Payment: utils.PaymentConfig{Provider: "stripe"}}

	svc := NewPaymentService(repo, notifier, cfg, zap.NewNop()).(*paymentService)
	svc.now = func() time.Time { return mustDate("2026-01-05") }

	return &paymentFixture{
		svc:      svc,
		bookings: bookingRepo,
		payments: paymentRepo,
		notifier: notifier,
		booking:  booking,
	}
}

func succeededEvent(bookingRef string) *request.PaymentEvent {
	return &request.PaymentEvent{
		Type:              "payment_succeeded",
		ProviderPaymentID: "pi_12345",
		BookingRef:        bookingRef,
		Succeeded: &request.SucceededPayload{
			AmountMinor: 60000,
			Currency:    "USD",
			PaidAt:      "2026-01-05T12:00:00Z",
		},
	}
}

func TestHandleSucceededConfirmsBooking(t *testing.T) {
	f := newPaymentFixture(t)

	err := f.svc.HandleEvent(context.Background(), succeededEvent(f.booking.BookingRef))
	require.NoError(t, err)

	// Payment row created on first delivery, then confirmed.
	require.Len(t, f.payments.created, 1)
	assert.Equal(t, "pi_12345", f.payments.created[0].ProviderPaymentID)
	assert.Equal(t, 1, f.payments.confirmCalls)

	require.Len(t, f.notifier.sent, 1)
	assert.Equal(t, notify.TypeBookingConfirmed, f.notifier.sent[0].msgType)
}

func TestHandleSucceededRedeliveryIsNoop(t *testing.T) {
	f := newPaymentFixture(t)

	event := succeededEvent(f.booking.BookingRef)
	require.NoError(t, f.svc.HandleEvent(context.Background(), event))

	err := f.svc.HandleEvent(context.Background(), event)
	assert.ErrorIs(t, err, ErrIdempotentNoop)
	assert.Equal(t, 1, f.payments.confirmCalls)
}

func TestHandleSucceededNoAvailabilityEscalates(t *testing.T) {
	f := newPaymentFixture(t)
	f.payments.succeededErr = repository.ErrNoAvailability

	err := f.svc.HandleEvent(context.Background(), succeededEvent(f.booking.BookingRef))
	assert.ErrorIs(t, err, repository.ErrNoAvailability)

	// Ops alert instead of a confirmation notice.
	require.Len(t, f.notifier.sent, 1)
	assert.Equal(t, notify.TypeOpsAlert, f.notifier.sent[0].msgType)
}

func TestHandleFailedKeepsBookingProvisional(t *testing.T) {
	f := newPaymentFixture(t)

	err := f.svc.HandleEvent(context.Background(), &request.PaymentEvent{
		Type:              "payment_failed",
		ProviderPaymentID: "pi_12345",
		BookingRef:        f.booking.BookingRef,
		Failed:            &request.FailedPayload{Reason: "card_declined"},
	})
	require.NoError(t, err)

	assert.Equal(t, entity.BookingStatusProvisional, f.booking.Status)
	require.Len(t, f.payments.updates, 1)
	assert.Equal(t, entity.PaymentStatusFailed, f.payments.updates[0].status)

	require.Len(t, f.notifier.sent, 1)
	assert.Equal(t, notify.TypePaymentFailed, f.notifier.sent[0].msgType)
}

func TestHandleRefundedCancelsBooking(t *testing.T) {
	payment := &entity.Payment{
		Base:              entity.Base{ID: uuid.New()},
		AmountMinor:       60000,
		Currency:          "USD",
		Provider:          "stripe",
		ProviderPaymentID: "pi_12345",
		Status:            entity.PaymentStatusSucceeded,
	}
	f := newPaymentFixture(t, payment)
	payment.BookingID = f.booking.ID

	err := f.svc.HandleEvent(context.Background(), &request.PaymentEvent{
		Type:              "refunded",
		ProviderPaymentID: "pi_12345",
		BookingRef:        f.booking.BookingRef,
		Refunded:          &request.RefundedPayload{AmountMinor: 60000},
	})
	require.NoError(t, err)

	assert.Equal(t, 1, f.payments.refundedCalls)
	assert.Equal(t, entity.PaymentStatusRefunded, payment.Status)
}

func TestHandleRefundedRedeliveryIsNoop(t *testing.T) {
	payment := &entity.Payment{
		Base:              entity.Base{ID: uuid.New()},
		ProviderPaymentID: "pi_12345",
		Status:            entity.PaymentStatusRefunded,
	}
	f := newPaymentFixture(t, payment)

	err := f.svc.HandleEvent(context.Background(), &request.PaymentEvent{
		Type:              "refunded",
		ProviderPaymentID: "pi_12345",
		BookingRef:        f.booking.BookingRef,
		Refunded:          &request.RefundedPayload{AmountMinor: 60000},
	})
	assert.ErrorIs(t, err, ErrIdempotentNoop)
	assert.Equal(t, 0, f.payments.refundedCalls)
}

func TestHandleRefundedWithoutPayment(t *testing.T) {
	f := newPaymentFixture(t)

	err := f.svc.HandleEvent(context.Background(), &request.PaymentEvent{
		Type:              "refunded",
		ProviderPaymentID: "pi_unknown",
		BookingRef:        f.booking.BookingRef,
		Refunded:          &request.RefundedPayload{AmountMinor: 60000},
	})
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestHandleEventUnknownBooking(t *testing.T) {
	f := newPaymentFixture(t)

	err := f.svc.HandleEvent(context.Background(), succeededEvent("STAY-UNKNOWN"))
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestHandleSucceededWithoutPayload(t *testing.T) {
	f := newPaymentFixture(t)

	err := f.svc.HandleEvent(context.Background(), &request.PaymentEvent{
		Type:              "payment_succeeded",
		ProviderPaymentID: "pi_12345",
		BookingRef:        f.booking.BookingRef,
	})
	assert.ErrorIs(t, err, ErrValidation)
}
