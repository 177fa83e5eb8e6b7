package usecase

import (
	"context"
	"time"

	"hotel-booking/internal/data/entity"
	"hotel-booking/internal/data/repository"
	"hotel-booking/internal/notify"

	"github.com/google/uuid"
)

// In-memory repository stubs. Each test builds a repository.Repository with
// only the fields the service under test touches.

type stubRoomTypeRepo struct {
	roomTypes map[uuid.UUID]*entity.RoomType
}

func (s *stubRoomTypeRepo) FindAllActive(ctx context.Context) ([]*entity.RoomType, error) {
	var out []*entity.RoomType
	for _, rt := range s.roomTypes {
		if rt.IsActive {
			out = append(out, rt)
		}
	}
	return out, nil
}

func (s *stubRoomTypeRepo) FindByID(ctx context.Context, id uuid.UUID) (*entity.RoomType, error) {
	return s.roomTypes[id], nil
}

type stubSpecialDayRepo struct {
	rules   []*entity.SpecialDayRule
	created []*entity.SpecialDayRule
}

func (s *stubSpecialDayRepo) FindForRange(ctx context.Context, roomTypeID uuid.UUID, start, end time.Time) ([]*entity.SpecialDayRule, error) {
	var out []*entity.SpecialDayRule
	for _, r := range s.rules {
		if !r.Night.Before(start) && r.Night.Before(end) && r.AppliesTo(roomTypeID) {
			out = append(out, r)
		}
	}
	return out, nil
}

func (s *stubSpecialDayRepo) FindAll(ctx context.Context, from time.Time) ([]*entity.SpecialDayRule, error) {
	return s.rules, nil
}

func (s *stubSpecialDayRepo) Create(ctx context.Context, rule *entity.SpecialDayRule) error {
	s.created = append(s.created, rule)
	s.rules = append(s.rules, rule)
	return nil
}

func (s *stubSpecialDayRepo) Delete(ctx context.Context, id uuid.UUID) error {
	return nil
}

type stubBookingRuleRepo struct {
	rules    map[entity.GuestType]*entity.BookingRule
	policies []*entity.DepositPolicy
	upserted []*entity.BookingRule
}

func (s *stubBookingRuleRepo) FindByGuestType(ctx context.Context, guestType entity.GuestType) (*entity.BookingRule, error) {
	return s.rules[guestType], nil
}

func (s *stubBookingRuleRepo) Upsert(ctx context.Context, rule *entity.BookingRule) error {
	s.upserted = append(s.upserted, rule)
	return nil
}

func (s *stubBookingRuleRepo) FindActiveDepositPolicies(ctx context.Context) ([]*entity.DepositPolicy, error) {
	return s.policies, nil
}

type adjustCall struct {
	roomTypeID uuid.UUID
	start, end time.Time
	rooms      int
	direction  entity.AdjustDirection
}

type stubInventoryRepo struct {
	records   []*entity.InventoryRecord
	adjustErr error
	adjusted  []adjustCall
}

func (s *stubInventoryRepo) FindRange(ctx context.Context, roomTypeID uuid.UUID, start, end time.Time) ([]*entity.InventoryRecord, error) {
	var out []*entity.InventoryRecord
	for _, rec := range s.records {
		if rec.RoomTypeID == roomTypeID && !rec.Night.Before(start) && rec.Night.Before(end) {
			out = append(out, rec)
		}
	}
	return out, nil
}

func (s *stubInventoryRepo) AdjustRange(ctx context.Context, roomTypeID uuid.UUID, start, end time.Time, rooms int, direction entity.AdjustDirection) error {
	if s.adjustErr != nil {
		return s.adjustErr
	}
	s.adjusted = append(s.adjusted, adjustCall{roomTypeID, start, end, rooms, direction})
	return nil
}

type stubBookingRepo struct {
	bookings   map[uuid.UUID]*entity.Booking
	created    []*entity.Booking
	confirmErr error
	cancelErr  error
	expired    int64
	expireCut  time.Time
}

func newStubBookingRepo(bookings ...*entity.Booking) *stubBookingRepo {
	m := make(map[uuid.UUID]*entity.Booking, len(bookings))
	for _, b := range bookings {
		m[b.ID] = b
	}
	return &stubBookingRepo{bookings: m}
}

func (s *stubBookingRepo) Create(ctx context.Context, booking *entity.Booking) error {
	s.created = append(s.created, booking)
	s.bookings[booking.ID] = booking
	return nil
}

func (s *stubBookingRepo) FindByID(ctx context.Context, id uuid.UUID) (*entity.Booking, error) {
	return s.bookings[id], nil
}

func (s *stubBookingRepo) FindByRef(ctx context.Context, bookingRef string) (*entity.Booking, error) {
	for _, b := range s.bookings {
		if b.BookingRef == bookingRef {
			return b, nil
		}
	}
	return nil, nil
}

func (s *stubBookingRepo) FindByUserID(ctx context.Context, userID uuid.UUID, limit, offset int) ([]*entity.Booking, error) {
	var out []*entity.Booking
	for _, b := range s.bookings {
		if b.UserID == userID {
			out = append(out, b)
		}
	}
	return out, nil
}

func (s *stubBookingRepo) CountByUserID(ctx context.Context, userID uuid.UUID) (int64, error) {
	var n int64
	for _, b := range s.bookings {
		if b.UserID == userID {
			n++
		}
	}
	return n, nil
}

func (s *stubBookingRepo) ConfirmWithInventory(ctx context.Context, bookingID uuid.UUID) (*entity.Booking, error) {
	if s.confirmErr != nil {
		return nil, s.confirmErr
	}
	b := s.bookings[bookingID]
	if b == nil {
		return nil, repository.ErrBookingNotFound
	}
	if !b.CanTransitionTo(entity.BookingStatusConfirmed) {
		return nil, repository.ErrInvalidTransition
	}
	b.Status = entity.BookingStatusConfirmed
	return b, nil
}

func (s *stubBookingRepo) CancelWithInventory(ctx context.Context, bookingID uuid.UUID) (*entity.Booking, error) {
	if s.cancelErr != nil {
		return nil, s.cancelErr
	}
	b := s.bookings[bookingID]
	if b == nil {
		return nil, repository.ErrBookingNotFound
	}
	if b.Status != entity.BookingStatusCancelled && !b.CanTransitionTo(entity.BookingStatusCancelled) {
		return nil, repository.ErrInvalidTransition
	}
	b.Status = entity.BookingStatusCancelled
	return b, nil
}

func (s *stubBookingRepo) ExpireProvisionalBefore(ctx context.Context, cutoff time.Time) (int64, error) {
	s.expireCut = cutoff
	return s.expired, nil
}

type statusUpdate struct {
	paymentID uuid.UUID
	status    entity.PaymentStatus
}

type stubPaymentRepo struct {
	payments      map[string]*entity.Payment
	created       []*entity.Payment
	updates       []statusUpdate
	succeededErr  error
	refundedErr   error
	confirmCalls  int
	refundedCalls int
}

func newStubPaymentRepo(payments ...*entity.Payment) *stubPaymentRepo {
	m := make(map[string]*entity.Payment, len(payments))
	for _, p := range payments {
		m[p.ProviderPaymentID] = p
	}
	return &stubPaymentRepo{payments: m}
}

func (s *stubPaymentRepo) Create(ctx context.Context, payment *entity.Payment) error {
	s.created = append(s.created, payment)
	s.payments[payment.ProviderPaymentID] = payment
	return nil
}

func (s *stubPaymentRepo) FindByID(ctx context.Context, id uuid.UUID) (*entity.Payment, error) {
	for _, p := range s.payments {
		if p.ID == id {
			return p, nil
		}
	}
	return nil, nil
}

func (s *stubPaymentRepo) FindByBookingID(ctx context.Context, bookingID uuid.UUID) (*entity.Payment, error) {
	for _, p := range s.payments {
		if p.BookingID == bookingID {
			return p, nil
		}
	}
	return nil, nil
}

func (s *stubPaymentRepo) FindByProviderPaymentID(ctx context.Context, providerPaymentID string) (*entity.Payment, error) {
	return s.payments[providerPaymentID], nil
}

func (s *stubPaymentRepo) UpdateStatus(ctx context.Context, paymentID uuid.UUID, status entity.PaymentStatus, paidAt *time.Time) error {
	s.updates = append(s.updates, statusUpdate{paymentID, status})
	for _, p := range s.payments {
		if p.ID == paymentID {
			p.Status = status
			p.PaidAt = paidAt
		}
	}
	return nil
}

func (s *stubPaymentRepo) MarkSucceededWithConfirm(ctx context.Context, paymentID, bookingID uuid.UUID) error {
	s.confirmCalls++
	if s.succeededErr != nil {
		return s.succeededErr
	}
	for _, p := range s.payments {
		if p.ID == paymentID {
			p.Status = entity.PaymentStatusSucceeded
		}
	}
	return nil
}

func (s *stubPaymentRepo) MarkRefundedWithCancel(ctx context.Context, paymentID, bookingID uuid.UUID) error {
	s.refundedCalls++
	if s.refundedErr != nil {
		return s.refundedErr
	}
	for _, p := range s.payments {
		if p.ID == paymentID {
			p.Status = entity.PaymentStatusRefunded
		}
	}
	return nil
}

type stubAccessCodeRepo struct {
	codes map[uuid.UUID]*entity.AccessCode
	used  []uuid.UUID
}

func newStubAccessCodeRepo() *stubAccessCodeRepo {
	return &stubAccessCodeRepo{codes: make(map[uuid.UUID]*entity.AccessCode)}
}

func (s *stubAccessCodeRepo) Create(ctx context.Context, code *entity.AccessCode) error {
	s.codes[code.BookingID] = code
	return nil
}

func (s *stubAccessCodeRepo) FindActiveByBookingID(ctx context.Context, bookingID uuid.UUID) (*entity.AccessCode, error) {
	code, ok := s.codes[bookingID]
	if !ok || code.UsedAt != nil {
		return nil, nil
	}
	return code, nil
}

func (s *stubAccessCodeRepo) MarkUsed(ctx context.Context, id uuid.UUID) error {
	s.used = append(s.used, id)
	for _, code := range s.codes {
		if code.ID == id {
			now := time.Now()
			code.UsedAt = &now
		}
	}
	return nil
}

type stubUserRepo struct {
	users map[uuid.UUID]*entity.User
}

func (s *stubUserRepo) FindByID(ctx context.Context, id uuid.UUID) (*entity.User, error) {
	return s.users[id], nil
}

func (s *stubUserRepo) FindByEmail(ctx context.Context, email string) (*entity.User, error) {
	for _, u := range s.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, nil
}

func (s *stubUserRepo) FindActiveIDs(ctx context.Context) ([]uuid.UUID, error) {
	var out []uuid.UUID
	for id, u := range s.users {
		if u.IsActive {
			out = append(out, id)
		}
	}
	return out, nil
}

type sentMessage struct {
	userID  uuid.UUID
	msgType string
	channel notify.Channel
	data    map[string]string
}

type stubNotifier struct {
	sent    []sentMessage
	sendErr error
}

func (s *stubNotifier) Send(ctx context.Context, userID uuid.UUID, msgType string, channel notify.Channel, data map[string]string) error {
	if s.sendErr != nil {
		return s.sendErr
	}
	s.sent = append(s.sent, sentMessage{userID, msgType, channel, data})
	return nil
}

// mustDate parses a YYYY-MM-DD test fixture date.
func mustDate(s string) time.Time {
	t, err := time.ParseInLocation("2006-01-02", s, time.UTC)
	if err != nil {
		panic(err)
	}
	return t
}
