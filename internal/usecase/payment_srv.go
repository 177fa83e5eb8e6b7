package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"hotel-booking/internal/data/entity"
	"hotel-booking/internal/data/repository"
	"hotel-booking/internal/dto/request"
	"hotel-booking/internal/notify"
	"hotel-booking/pkg/utils"

	"go.uber.org/zap"
)

type PaymentService interface {
	// HandleEvent applies one provider webhook event. Redelivered events for
	// an already-terminal payment return ErrIdempotentNoop so the caller can
	// acknowledge without side effects.
	HandleEvent(ctx context.Context, event *request.PaymentEvent) error
}

type paymentService struct {
	repo     *repository.Repository
	notifier notify.Dispatcher
	provider string
	log      *zap.Logger
	now      func() time.Time
}

func NewPaymentService(repo *repository.Repository, notifier notify.Dispatcher, cfg *utils.Config, log *zap.Logger) PaymentService {
	return &paymentService{
		repo:     repo,
		notifier: notifier,
		provider: cfg.Payment.Provider,
		log:      log.With(zap.String("service", "payment")),
		now:      time.Now,
	}
}

func (s *paymentService) HandleEvent(ctx context.Context, event *request.PaymentEvent) error {
	booking, err := s.repo.Booking.FindByRef(ctx, event.BookingRef)
	if err != nil {
		return err
	}
	if booking == nil {
		return fmt.Errorf("%w: booking %s", ErrNotFound, event.BookingRef)
	}

	payment, err := s.repo.Payment.FindByProviderPaymentID(ctx, event.ProviderPaymentID)
	if err != nil {
		return err
	}

	switch event.Type {
	case "payment_succeeded":
		return s.handleSucceeded(ctx, event, booking, payment)
	case "payment_failed":
		return s.handleFailed(ctx, event, booking, payment)
	case "refunded":
		return s.handleRefunded(ctx, event, booking, payment)
	default:
		return fmt.Errorf("%w: unknown event type %s", ErrValidation, event.Type)
	}
}

func (s *paymentService) handleSucceeded(ctx context.Context, event *request.PaymentEvent, booking *entity.Booking, payment *entity.Payment) error {
	if event.Succeeded == nil {
		return fmt.Errorf("%w: missing succeeded payload", ErrValidation)
	}

	if payment != nil && payment.Status != entity.PaymentStatusPending {
		return fmt.Errorf("%w: payment %s is already %s",
			ErrIdempotentNoop, event.ProviderPaymentID, payment.Status)
	}

	if payment == nil {
		payment = s.newPayment(booking, event.ProviderPaymentID, event.Succeeded.AmountMinor, event.Succeeded.Currency)
		if err := s.repo.Payment.Create(ctx, payment); err != nil {
			return err
		}
	}

	err := s.repo.Payment.MarkSucceededWithConfirm(ctx, payment.ID, booking.ID)
	if errors.Is(err, repository.ErrNoAvailability) {
		// The money moved but the rooms are gone. The payment row stays
		// succeeded and operations must trigger a refund.
		s.log.Error("Payment succeeded but rooms no longer available",
			zap.String("booking_ref", booking.BookingRef),
			zap.String("provider_payment_id", event.ProviderPaymentID),
			zap.Int64("amount_minor", event.Succeeded.AmountMinor),
		)
		s.notifyOps(ctx, booking, "paid booking could not be confirmed, refund required")
		return err
	}
	if err != nil {
		return err
	}

	s.log.Info("Payment confirmed booking",
		zap.String("booking_ref", booking.BookingRef),
		zap.String("provider_payment_id", event.ProviderPaymentID),
	)

	s.notifyUser(ctx, booking, notify.TypeBookingConfirmed)
	return nil
}

func (s *paymentService) handleFailed(ctx context.Context, event *request.PaymentEvent, booking *entity.Booking, payment *entity.Payment) error {
	if payment != nil && payment.Status != entity.PaymentStatusPending {
		return fmt.Errorf("%w: payment %s is already %s",
			ErrIdempotentNoop, event.ProviderPaymentID, payment.Status)
	}

	if payment == nil {
		payment = s.newPayment(booking, event.ProviderPaymentID, booking.TotalPriceMinor, defaultCurrency)
		if err := s.repo.Payment.Create(ctx, payment); err != nil {
			return err
		}
	}

	if err := s.repo.Payment.UpdateStatus(ctx, payment.ID, entity.PaymentStatusFailed, nil); err != nil {
		return err
	}

	reason := ""
	if event.Failed != nil {
		reason = event.Failed.Reason
	}
	s.log.Info("Payment failed",
		zap.String("booking_ref", booking.BookingRef),
		zap.String("provider_payment_id", event.ProviderPaymentID),
		zap.String("reason", reason),
	)

	// The booking stays provisional; the guest can retry until the hold
	// window expires it.
	s.notifyUser(ctx, booking, notify.TypePaymentFailed)
	return nil
}

func (s *paymentService) handleRefunded(ctx context.Context, event *request.PaymentEvent, booking *entity.Booking, payment *entity.Payment) error {
	if payment == nil {
		return fmt.Errorf("%w: no payment recorded for %s", ErrNotFound, event.ProviderPaymentID)
	}
	if payment.Status == entity.PaymentStatusRefunded {
		return fmt.Errorf("%w: payment %s is already refunded",
			ErrIdempotentNoop, event.ProviderPaymentID)
	}

	if err := s.repo.Payment.MarkRefundedWithCancel(ctx, payment.ID, booking.ID); err != nil {
		return err
	}

	s.log.Info("Payment refunded, booking cancelled",
		zap.String("booking_ref", booking.BookingRef),
		zap.String("provider_payment_id", event.ProviderPaymentID),
	)

	s.notifyUser(ctx, booking, notify.TypePaymentRefunded)
	return nil
}

func (s *paymentService) newPayment(booking *entity.Booking, providerPaymentID string, amountMinor int64, currency string) *entity.Payment {
	now := s.now()
	return &entity.Payment{
		Base: entity.Base{
			ID:        utils.GenerateUUID(),
			CreatedAt: now,
			UpdatedAt: now,
		},
		BookingID:         booking.ID,
		AmountMinor:       amountMinor,
		Currency:          currency,
		Provider:          s.provider,
		ProviderPaymentID: providerPaymentID,
		Status:            entity.PaymentStatusPending,
	}
}

func (s *paymentService) notifyUser(ctx context.Context, booking *entity.Booking, msgType string) {
	data := map[string]string{"booking_ref": booking.BookingRef}
	if err := s.notifier.Send(ctx, booking.UserID, msgType, notify.ChannelEmail, data); err != nil {
		s.log.Warn("Failed to dispatch payment notification",
			zap.Error(err),
			zap.String("type", msgType),
			zap.String("booking_ref", booking.BookingRef),
		)
	}
}

func (s *paymentService) notifyOps(ctx context.Context, booking *entity.Booking, detail string) {
	data := map[string]string{
		"booking_ref": booking.BookingRef,
		"detail":      detail,
	}
	if err := s.notifier.Send(ctx, booking.UserID, notify.TypeOpsAlert, notify.ChannelEmail, data); err != nil {
		s.log.Warn("Failed to dispatch ops alert",
			zap.Error(err),
			zap.String("booking_ref", booking.BookingRef),
		)
	}
}
