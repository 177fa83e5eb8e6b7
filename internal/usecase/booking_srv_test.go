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

type bookingFixture struct {
	svc      *bookingService
	repo     *repository.Repository
	bookings *stubBookingRepo
	payments *stubPaymentRepo
	notifier *stubNotifier
	roomType *entity.RoomType
	user     *entity.User
}

func newBookingFixture(t *testing.T, bookings ...*entity.Booking) *bookingFixture {
	t.Helper()

	roomType := standardRoomType()
	user := &entity.User{
		Base:      entity.Base{ID: uuid.New()},
		Name:      "Ayu",
		Email:     "ayu@example.com",
		Role:      entity.RoleCustomer,
		GuestType: entity.GuestRegular,
		IsActive:  true,
	}

	bookingRepo := newStubBookingRepo(bookings...)
	paymentRepo := newStubPaymentRepo()
	notifier := &stubNotifier{}

	repo := &repository.Repository{
		User:        &stubUserRepo{users: map[uuid.UUID]*entity.User{user.ID: user}},
		RoomType:    &stubRoomTypeRepo{roomTypes: map[uuid.UUID]*entity.RoomType{roomType.ID: roomType}},
		Inventory:   &stubInventoryRepo{},
		SpecialDay:  &stubSpecialDayRepo{},
		BookingRule: &stubBookingRuleRepo{rules: regularRule()},
		Booking:     bookingRepo,
		Payment:     paymentRepo,
	}

	cfg := &utils.Config{
		Booking: utils.BookingConfig{HoldMinutes: 30, SweepIntervalSecs: 60},
	}

	log := zap.NewNop()
	pricing := NewPricingService(repo, log)
	rules := NewRulesService(repo, log)
	availability := NewAvailabilityService(repo, log)

	svc := NewBookingService(repo, pricing, rules, availability, notifier, cfg, log).(*bookingService)
	svc.now = func() time.Time { return mustDate("2026-01-01") }

	return &bookingFixture{
		svc:      svc,
		repo:     repo,
		bookings: bookingRepo,
		payments: paymentRepo,
		notifier: notifier,
		roomType: roomType,
		user:     user,
	}
}

// recordPayment seeds a payment row for the booking in the given state.
func (f *bookingFixture) recordPayment(bookingID uuid.UUID, status entity.PaymentStatus) {
	f.payments.payments["pi_"+bookingID.String()] = &entity.Payment{
		Base:              entity.Base{ID: uuid.New()},
		BookingID:         bookingID,
		AmountMinor:       60000,
		Currency:          "USD",
		Provider:          "stripe",
		ProviderPaymentID: "pi_" + bookingID.String(),
		Status:            status,
	}
}

func TestCreateBookingProvisional(t *testing.T) {
	f := newBookingFixture(t)

	resp, err := f.svc.CreateBooking(context.Background(), f.user.ID, &request.CreateBookingRequest{
		RoomTypeID: f.roomType.ID.String(),
		StartDate:  "2026-01-10",
		EndDate:    "2026-01-13",
		Rooms:      2,
	})
	require.NoError(t, err)

	assert.Equal(t, string(entity.BookingStatusProvisional), resp.Status)
	assert.Equal(t, int64(60000), resp.TotalPriceMinor)
	assert.NotEmpty(t, resp.BookingRef)

	// Creation holds nothing in the ledger.
	require.Len(t, f.bookings.created, 1)
	inv := f.repo.Inventory.(*stubInventoryRepo)
	assert.Empty(t, inv.adjusted)

	require.Len(t, f.notifier.sent, 1)
	assert.Equal(t, notify.TypeBookingCreated, f.notifier.sent[0].msgType)
}

func TestCreateBookingRejectedByNoticeWindow(t *testing.T) {
	f := newBookingFixture(t)

	_, err := f.svc.CreateBooking(context.Background(), f.user.ID, &request.CreateBookingRequest{
		RoomTypeID: f.roomType.ID.String(),
		StartDate:  "2026-01-02",
		EndDate:    "2026-01-05",
		Rooms:      1,
	})
	assert.ErrorIs(t, err, ErrRuleViolation)
	assert.Empty(t, f.bookings.created)
}

func TestCreateBookingRejectedWhenSoldOut(t *testing.T) {
	f := newBookingFixture(t)

	inv := f.repo.Inventory.(*stubInventoryRepo)
	inv.records = []*entity.InventoryRecord{{
		Base:           entity.Base{ID: uuid.New()},
		RoomTypeID:     f.roomType.ID,
		Night:          mustDate("2026-01-11"),
		AvailableRooms: 0,
	}}

	_, err := f.svc.CreateBooking(context.Background(), f.user.ID, &request.CreateBookingRequest{
		RoomTypeID: f.roomType.ID.String(),
		StartDate:  "2026-01-10",
		EndDate:    "2026-01-13",
		Rooms:      1,
	})
	assert.ErrorIs(t, err, repository.ErrNoAvailability)
}

func provisionalBooking(userID, roomTypeID uuid.UUID) *entity.Booking {
	return &entity.Booking{
		Base:        entity.Base{ID: uuid.New(), CreatedAt: mustDate("2026-01-01")},
		BookingRef:  "STAY-20260101-120000-0001",
		UserID:      userID,
		RoomTypeID:  roomTypeID,
		StartDate:   mustDate("2026-01-10"),
		EndDate:     mustDate("2026-01-13"),
		RoomsBooked: 1,
		Status:      entity.BookingStatusProvisional,
	}
}

func TestConfirmBookingWithSucceededPayment(t *testing.T) {
	f := newBookingFixture(t)
	booking := provisionalBooking(f.user.ID, f.roomType.ID)
	f.bookings.bookings[booking.ID] = booking
	f.recordPayment(booking.ID, entity.PaymentStatusSucceeded)

	resp, err := f.svc.ConfirmBooking(context.Background(), f.user.ID, booking.ID, false)
	require.NoError(t, err)

	assert.Equal(t, string(entity.BookingStatusConfirmed), resp.Status)
	require.Len(t, f.notifier.sent, 1)
	assert.Equal(t, notify.TypeBookingConfirmed, f.notifier.sent[0].msgType)
}

func TestConfirmBookingWithoutPaymentRejected(t *testing.T) {
	f := newBookingFixture(t)
	booking := provisionalBooking(f.user.ID, f.roomType.ID)
	f.bookings.bookings[booking.ID] = booking

	_, err := f.svc.ConfirmBooking(context.Background(), f.user.ID, booking.ID, false)
	assert.ErrorIs(t, err, ErrConflict)

	// No rooms consumed, no confirmation sent.
	assert.Equal(t, entity.BookingStatusProvisional, booking.Status)
	assert.Empty(t, f.notifier.sent)
}

func TestConfirmBookingWithPendingPaymentRejected(t *testing.T) {
	f := newBookingFixture(t)
	booking := provisionalBooking(f.user.ID, f.roomType.ID)
	f.bookings.bookings[booking.ID] = booking
	f.recordPayment(booking.ID, entity.PaymentStatusPending)

	_, err := f.svc.ConfirmBooking(context.Background(), f.user.ID, booking.ID, false)
	assert.ErrorIs(t, err, ErrConflict)
	assert.Equal(t, entity.BookingStatusProvisional, booking.Status)
}

func TestConfirmBookingOwnedByAnotherUser(t *testing.T) {
	f := newBookingFixture(t)
	booking := provisionalBooking(uuid.New(), f.roomType.ID)
	f.bookings.bookings[booking.ID] = booking

	_, err := f.svc.ConfirmBooking(context.Background(), f.user.ID, booking.ID, false)
	assert.ErrorIs(t, err, ErrForbidden)
}

func TestConfirmBookingAsAdminBypassesOwnership(t *testing.T) {
	f := newBookingFixture(t)
	booking := provisionalBooking(uuid.New(), f.roomType.ID)
	f.bookings.bookings[booking.ID] = booking
	f.recordPayment(booking.ID, entity.PaymentStatusSucceeded)

	_, err := f.svc.ConfirmBooking(context.Background(), f.user.ID, booking.ID, true)
	assert.NoError(t, err)
}

func TestConfirmCancelledBookingConflicts(t *testing.T) {
	f := newBookingFixture(t)
	booking := provisionalBooking(f.user.ID, f.roomType.ID)
	booking.Status = entity.BookingStatusCancelled
	f.bookings.bookings[booking.ID] = booking
	f.recordPayment(booking.ID, entity.PaymentStatusSucceeded)

	_, err := f.svc.ConfirmBooking(context.Background(), f.user.ID, booking.ID, false)
	assert.ErrorIs(t, err, ErrConflict)
}

func TestCancelConfirmedBooking(t *testing.T) {
	f := newBookingFixture(t)
	booking := provisionalBooking(f.user.ID, f.roomType.ID)
	booking.Status = entity.BookingStatusConfirmed
	f.bookings.bookings[booking.ID] = booking

	resp, err := f.svc.CancelBooking(context.Background(), f.user.ID, booking.ID, false)
	require.NoError(t, err)

	assert.Equal(t, string(entity.BookingStatusCancelled), resp.Status)
}

func TestExpireStaleUsesHoldWindowCutoff(t *testing.T) {
	f := newBookingFixture(t)
	f.bookings.expired = 3

	count, err := f.svc.ExpireStale(context.Background())
	require.NoError(t, err)

	assert.Equal(t, int64(3), count)
	assert.Equal(t, mustDate("2026-01-01").Add(-30*time.Minute), f.bookings.expireCut)
}

func TestGetBookingNotFound(t *testing.T) {
	f := newBookingFixture(t)

	_, err := f.svc.GetBooking(context.Background(), f.user.ID, uuid.New(), false)
	assert.ErrorIs(t, err, ErrNotFound)
}
