package usecase

import (
	"context"
	"fmt"
	"time"

	"hotel-booking/internal/data/entity"
	"hotel-booking/internal/data/repository"
	"hotel-booking/internal/dto/request"
	"hotel-booking/internal/dto/response"
	"hotel-booking/internal/notify"
	"hotel-booking/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

type AccessService interface {
	// RequestCode issues a short-lived verification code for a booking and
	// dispatches it over the requested channel. Only the bcrypt hash is
	// stored.
	RequestCode(ctx context.Context, userID uuid.UUID, req *request.RequestAccessCodeRequest) error

	// VerifyCode checks the code and burns it on success.
	VerifyCode(ctx context.Context, userID uuid.UUID, req *request.VerifyAccessCodeRequest) (*response.BookingResponse, error)
}

type accessService struct {
	repo       *repository.Repository
	notifier   notify.Dispatcher
	codeLength int
	expiry     time.Duration
	log        *zap.Logger
	now        func() time.Time
}

func NewAccessService(repo *repository.Repository, notifier notify.Dispatcher, cfg *utils.Config, log *zap.Logger) AccessService {
	return &accessService{
		repo:       repo,
		notifier:   notifier,
		codeLength: cfg.Access.Length,
		expiry:     time.Duration(cfg.Access.ExpiryMinutes) * time.Minute,
		log:        log.With(zap.String("service", "access")),
		now:        time.Now,
	}
}

func (s *accessService) RequestCode(ctx context.Context, userID uuid.UUID, req *request.RequestAccessCodeRequest) error {
	booking, err := s.ownedBooking(ctx, userID, req.BookingRef)
	if err != nil {
		return err
	}

	code := utils.GenerateAccessCode(s.codeLength)

	hash, err := bcrypt.GenerateFromPassword([]byte(code), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("hash access code: %w", err)
	}

	now := s.now()
	accessCode := &entity.AccessCode{
		BaseSimple: entity.BaseSimple{
			ID:        utils.GenerateUUID(),
			CreatedAt: now,
		},
		BookingID: booking.ID,
		CodeHash:  string(hash),
		ExpiresAt: now.Add(s.expiry),
	}

	if err := s.repo.AccessCode.Create(ctx, accessCode); err != nil {
		return err
	}

	data := map[string]string{
		"booking_ref": booking.BookingRef,
		"code":        code,
	}
	if err := s.notifier.Send(ctx, userID, notify.TypeAccessCode, notify.Channel(req.Channel), data); err != nil {
		s.log.Error("Failed to dispatch access code",
			zap.Error(err),
			zap.String("booking_ref", booking.BookingRef),
		)
		return err
	}

	s.log.Info("Access code issued",
		zap.String("booking_ref", booking.BookingRef),
		zap.String("channel", req.Channel),
	)

	return nil
}

func (s *accessService) VerifyCode(ctx context.Context, userID uuid.UUID, req *request.VerifyAccessCodeRequest) (*response.BookingResponse, error) {
	booking, err := s.ownedBooking(ctx, userID, req.BookingRef)
	if err != nil {
		return nil, err
	}

	accessCode, err := s.repo.AccessCode.FindActiveByBookingID(ctx, booking.ID)
	if err != nil {
		return nil, err
	}
	if accessCode == nil {
		return nil, fmt.Errorf("%w: no active code for this booking", ErrValidation)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(accessCode.CodeHash), []byte(req.Code)); err != nil {
		return nil, fmt.Errorf("%w: incorrect code", ErrValidation)
	}

	if err := s.repo.AccessCode.MarkUsed(ctx, accessCode.ID); err != nil {
		return nil, err
	}

	s.log.Info("Access code verified",
		zap.String("booking_ref", booking.BookingRef),
	)

	return response.NewBookingResponse(booking), nil
}

func (s *accessService) ownedBooking(ctx context.Context, userID uuid.UUID, bookingRef string) (*entity.Booking, error) {
	booking, err := s.repo.Booking.FindByRef(ctx, bookingRef)
	if err != nil {
		return nil, err
	}
	if booking == nil {
		return nil, fmt.Errorf("%w: booking %s", ErrNotFound, bookingRef)
	}
	if booking.UserID != userID {
		return nil, fmt.Errorf("%w: booking belongs to another user", ErrForbidden)
	}
	return booking, nil
}
