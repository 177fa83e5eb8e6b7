package usecase

import (
	"context"
	"errors"
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
)

type BookingService interface {
	// CreateBooking runs rule validation, an advisory availability check and
	// pricing, then persists a provisional booking. No inventory is held
	// until confirmation.
	CreateBooking(ctx context.Context, userID uuid.UUID, req *request.CreateBookingRequest) (*response.BookingResponse, error)

	// ConfirmBooking promotes a provisional booking to confirmed, decrementing
	// the inventory ledger in the same transaction. It requires a succeeded
	// payment on record for the booking; rooms are never consumed unpaid.
	ConfirmBooking(ctx context.Context, userID, bookingID uuid.UUID, isAdmin bool) (*response.BookingResponse, error)
	CancelBooking(ctx context.Context, userID, bookingID uuid.UUID, isAdmin bool) (*response.BookingResponse, error)
	GetBooking(ctx context.Context, userID, bookingID uuid.UUID, isAdmin bool) (*response.BookingResponse, error)
	GetUserBookings(ctx context.Context, userID uuid.UUID, page, perPage int) (*response.BookingListResponse, error)

	// ExpireStale moves provisional bookings older than the hold window to
	// expired. Returns how many were expired.
	ExpireStale(ctx context.Context) (int64, error)

	// StartExpirySweep runs ExpireStale on a ticker until ctx is cancelled.
	StartExpirySweep(ctx context.Context)
}

type bookingService struct {
	repo         *repository.Repository
	pricing      PricingService
	rules        RulesService
	availability AvailabilityService
	notifier     notify.Dispatcher
	holdWindow   time.Duration
	sweepEvery   time.Duration
	log          *zap.Logger
	now          func() time.Time
}

func NewBookingService(
	repo *repository.Repository,
	pricing PricingService,
	rules RulesService,
	availability AvailabilityService,
	notifier notify.Dispatcher,
	cfg *utils.Config,
	log *zap.Logger,
) BookingService {
	return &bookingService{
		repo:         repo,
		pricing:      pricing,
		rules:        rules,
		availability: availability,
		notifier:     notifier,
		holdWindow:   time.Duration(cfg.Booking.HoldMinutes) * time.Minute,
		sweepEvery:   time.Duration(cfg.Booking.SweepIntervalSecs) * time.Second,
		log:          log.With(zap.String("service", "booking")),
		now:          time.Now,
	}
}

func (s *bookingService) CreateBooking(ctx context.Context, userID uuid.UUID, req *request.CreateBookingRequest) (*response.BookingResponse, error) {
	roomTypeID, start, end, err := parseStayRange(req.RoomTypeID, req.StartDate, req.EndDate)
	if err != nil {
		return nil, err
	}

	user, err := s.repo.User.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, fmt.Errorf("%w: user %s", ErrNotFound, userID.String())
	}

	if err := s.rules.ValidateWindow(ctx, user.GuestType, start, s.now()); err != nil {
		return nil, err
	}

	stayReq := &request.AvailabilityRequest{
		RoomTypeID: req.RoomTypeID,
		StartDate:  req.StartDate,
		EndDate:    req.EndDate,
		Rooms:      req.Rooms,
	}

	check, err := s.availability.Check(ctx, stayReq)
	if err != nil {
		return nil, err
	}
	if !check.IsAvailable {
		return nil, fmt.Errorf("%w for %d room(s) on %v",
			repository.ErrNoAvailability, req.Rooms, check.BlockingDates)
	}

	quote, err := s.pricing.Quote(ctx, stayReq)
	if err != nil {
		return nil, err
	}

	now := s.now()
	booking := &entity.Booking{
		Base: entity.Base{
			ID:        utils.GenerateUUID(),
			CreatedAt: now,
			UpdatedAt: now,
		},
		BookingRef:      utils.GenerateBookingRef(),
		UserID:          userID,
		RoomTypeID:      roomTypeID,
		StartDate:       start,
		EndDate:         end,
		RoomsBooked:     req.Rooms,
		TotalPriceMinor: quote.TotalMinor,
		DepositMinor:    quote.DepositMinor,
		Status:          entity.BookingStatusProvisional,
	}

	if err := s.repo.Booking.Create(ctx, booking); err != nil {
		return nil, err
	}

	s.log.Info("Provisional booking created",
		zap.String("booking_ref", booking.BookingRef),
		zap.String("user_id", userID.String()),
		zap.Int64("total_price_minor", booking.TotalPriceMinor),
	)

	s.sendNotification(ctx, userID, notify.TypeBookingCreated, booking)

	return response.NewBookingResponse(booking), nil
}

func (s *bookingService) ConfirmBooking(ctx context.Context, userID, bookingID uuid.UUID, isAdmin bool) (*response.BookingResponse, error) {
	if _, err := s.authorizedBooking(ctx, userID, bookingID, isAdmin); err != nil {
		return nil, err
	}

	payment, err := s.repo.Payment.FindByBookingID(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	if payment == nil || payment.Status != entity.PaymentStatusSucceeded {
		return nil, fmt.Errorf("%w: booking has no succeeded payment", ErrConflict)
	}

	booking, err := s.repo.Booking.ConfirmWithInventory(ctx, bookingID)
	if err != nil {
		if errors.Is(err, repository.ErrInvalidTransition) {
			return nil, fmt.Errorf("%w: %v", ErrConflict, err)
		}
		return nil, err
	}

	s.log.Info("Booking confirmed",
		zap.String("booking_ref", booking.BookingRef),
		zap.String("booking_id", bookingID.String()),
	)

	s.sendNotification(ctx, booking.UserID, notify.TypeBookingConfirmed, booking)

	return response.NewBookingResponse(booking), nil
}

func (s *bookingService) CancelBooking(ctx context.Context, userID, bookingID uuid.UUID, isAdmin bool) (*response.BookingResponse, error) {
	if _, err := s.authorizedBooking(ctx, userID, bookingID, isAdmin); err != nil {
		return nil, err
	}

	booking, err := s.repo.Booking.CancelWithInventory(ctx, bookingID)
	if err != nil {
		if errors.Is(err, repository.ErrInvalidTransition) {
			return nil, fmt.Errorf("%w: %v", ErrConflict, err)
		}
		return nil, err
	}

	s.log.Info("Booking cancelled",
		zap.String("booking_ref", booking.BookingRef),
		zap.String("booking_id", bookingID.String()),
	)

	s.sendNotification(ctx, booking.UserID, notify.TypeBookingCancelled, booking)

	return response.NewBookingResponse(booking), nil
}

func (s *bookingService) GetBooking(ctx context.Context, userID, bookingID uuid.UUID, isAdmin bool) (*response.BookingResponse, error) {
	booking, err := s.authorizedBooking(ctx, userID, bookingID, isAdmin)
	if err != nil {
		return nil, err
	}
	return response.NewBookingResponse(booking), nil
}

func (s *bookingService) GetUserBookings(ctx context.Context, userID uuid.UUID, page, perPage int) (*response.BookingListResponse, error) {
	total, err := s.repo.Booking.CountByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}

	offset := utils.CalculateOffset(page, perPage)
	bookings, err := s.repo.Booking.FindByUserID(ctx, userID, perPage, offset)
	if err != nil {
		return nil, err
	}

	items := make([]*response.BookingResponse, 0, len(bookings))
	for _, b := range bookings {
		items = append(items, response.NewBookingResponse(b))
	}

	return &response.BookingListResponse{
		Bookings: items,
		Pagination: response.PaginationMeta{
			Page:       page,
			PerPage:    perPage,
			TotalPages: utils.CalculateTotalPages(total, perPage),
			TotalItems: total,
		},
	}, nil
}

func (s *bookingService) ExpireStale(ctx context.Context) (int64, error) {
	cutoff := s.now().Add(-s.holdWindow)

	expired, err := s.repo.Booking.ExpireProvisionalBefore(ctx, cutoff)
	if err != nil {
		return 0, err
	}

	if expired > 0 {
		s.log.Info("Expired stale provisional bookings",
			zap.Int64("count", expired),
			zap.Time("cutoff", cutoff),
		)
	}

	return expired, nil
}

func (s *bookingService) StartExpirySweep(ctx context.Context) {
	go func() {
		ticker := time.NewTicker(s.sweepEvery)
		defer ticker.Stop()

		for {
			select {
			case <-ctx.Done():
				s.log.Info("Expiry sweep stopped")
				return
			case <-ticker.C:
				if _, err := s.ExpireStale(ctx); err != nil {
					s.log.Error("Expiry sweep failed", zap.Error(err))
				}
			}
		}
	}()
}

// authorizedBooking loads the booking and enforces ownership. Admins can
// touch any booking.
func (s *bookingService) authorizedBooking(ctx context.Context, userID, bookingID uuid.UUID, isAdmin bool) (*entity.Booking, error) {
	booking, err := s.repo.Booking.FindByID(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	if booking == nil {
		return nil, fmt.Errorf("%w: booking %s", ErrNotFound, bookingID.String())
	}
	if !isAdmin && booking.UserID != userID {
		return nil, fmt.Errorf("%w: booking belongs to another user", ErrForbidden)
	}
	return booking, nil
}

func (s *bookingService) sendNotification(ctx context.Context, userID uuid.UUID, msgType string, booking *entity.Booking) {
	data := map[string]string{
		"booking_ref": booking.BookingRef,
		"start_date":  booking.StartDate.Format("2006-01-02"),
		"end_date":    booking.EndDate.Format("2006-01-02"),
		"status":      string(booking.Status),
	}

	if err := s.notifier.Send(ctx, userID, msgType, notify.ChannelEmail, data); err != nil {
		s.log.Warn("Failed to dispatch booking notification",
			zap.Error(err),
			zap.String("type", msgType),
			zap.String("booking_ref", booking.BookingRef),
		)
	}
}
