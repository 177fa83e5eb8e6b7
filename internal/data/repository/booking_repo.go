package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"hotel-booking/internal/data/entity"
	"hotel-booking/pkg/database"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

type BookingRepository interface {
	Create(ctx context.Context, booking *entity.Booking) error
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Booking, error)
	FindByRef(ctx context.Context, bookingRef string) (*entity.Booking, error)
	FindByUserID(ctx context.Context, userID uuid.UUID, limit, offset int) ([]*entity.Booking, error)
	CountByUserID(ctx context.Context, userID uuid.UUID) (int64, error)

	// ConfirmWithInventory decrements the ledger for the booking's date range
	// and sets status to confirmed in one transaction. Returns
	// ErrNoAvailability when any night cannot cover the booking, leaving
	// both the ledger and the booking untouched.
	ConfirmWithInventory(ctx context.Context, bookingID uuid.UUID) (*entity.Booking, error)

	// CancelWithInventory cancels the booking; a confirmed booking's nights
	// are released back to the ledger in the same transaction.
	CancelWithInventory(ctx context.Context, bookingID uuid.UUID) (*entity.Booking, error)

	// ExpireProvisionalBefore moves provisional bookings created before the
	// cutoff to expired. No ledger effect: provisional never decremented.
	ExpireProvisionalBefore(ctx context.Context, cutoff time.Time) (int64, error)
}

type bookingRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewBookingRepository(db database.PgxIface, log *zap.Logger) BookingRepository {
	return &bookingRepository{
		db:  db,
		log: log.With(zap.String("repository", "booking")),
	}
}

const bookingColumns = `id, booking_ref, user_id, room_type_id, start_date, end_date,
	rooms_booked, total_price_minor, deposit_minor, status, created_at, updated_at`

func scanBooking(row pgx.Row) (*entity.Booking, error) {
	var b entity.Booking
	err := row.Scan(
		&b.ID,
		&b.BookingRef,
		&b.UserID,
		&b.RoomTypeID,
		&b.StartDate,
		&b.EndDate,
		&b.RoomsBooked,
		&b.TotalPriceMinor,
		&b.DepositMinor,
		&b.Status,
		&b.CreatedAt,
		&b.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &b, nil
}

func (r *bookingRepository) Create(ctx context.Context, booking *entity.Booking) error {
	query := `
		INSERT INTO bookings (` + bookingColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
	`

	_, err := r.db.Exec(ctx, query,
		booking.ID,
		booking.BookingRef,
		booking.UserID,
		booking.RoomTypeID,
		booking.StartDate,
		booking.EndDate,
		booking.RoomsBooked,
		booking.TotalPriceMinor,
		booking.DepositMinor,
		booking.Status,
		booking.CreatedAt,
		booking.UpdatedAt,
	)

	if err != nil {
		r.log.Error("Failed to create booking",
			zap.Error(err),
			zap.String("booking_ref", booking.BookingRef),
			zap.String("user_id", booking.UserID.String()),
		)
		return fmt.Errorf("create booking %s: %w", booking.BookingRef, err)
	}

	return nil
}

func (r *bookingRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Booking, error) {
	query := `SELECT ` + bookingColumns + ` FROM bookings WHERE id = $1`

	booking, err := scanBooking(r.db.QueryRow(ctx, query, id))
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find booking by ID",
			zap.Error(err),
			zap.String("booking_id", id.String()),
		)
		return nil, fmt.Errorf("find booking by ID %s: %w", id.String(), err)
	}

	return booking, nil
}

func (r *bookingRepository) FindByRef(ctx context.Context, bookingRef string) (*entity.Booking, error) {
	query := `SELECT ` + bookingColumns + ` FROM bookings WHERE booking_ref = $1`

	booking, err := scanBooking(r.db.QueryRow(ctx, query, bookingRef))
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find booking by ref",
			zap.Error(err),
			zap.String("booking_ref", bookingRef),
		)
		return nil, fmt.Errorf("find booking by ref %s: %w", bookingRef, err)
	}

	return booking, nil
}

func (r *bookingRepository) FindByUserID(ctx context.Context, userID uuid.UUID, limit, offset int) ([]*entity.Booking, error) {
	query := `
		SELECT ` + bookingColumns + `
		FROM bookings
		WHERE user_id = $1
		ORDER BY created_at DESC
		LIMIT $2 OFFSET $3
	`

	rows, err := r.db.Query(ctx, query, userID, limit, offset)
	if err != nil {
		r.log.Error("Failed to find bookings by user ID",
			zap.Error(err),
			zap.String("user_id", userID.String()),
		)
		return nil, fmt.Errorf("find bookings by user ID %s: %w", userID.String(), err)
	}
	defer rows.Close()

	var bookings []*entity.Booking
	for rows.Next() {
		booking, err := scanBooking(rows)
		if err != nil {
			r.log.Error("Failed to scan booking row", zap.Error(err))
			return nil, fmt.Errorf("scan booking row: %w", err)
		}
		bookings = append(bookings, booking)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("booking rows: %w", err)
	}

	return bookings, nil
}

func (r *bookingRepository) CountByUserID(ctx context.Context, userID uuid.UUID) (int64, error) {
	query := `SELECT COUNT(*) FROM bookings WHERE user_id = $1`

	var count int64
	err := r.db.QueryRow(ctx, query, userID).Scan(&count)
	if err != nil {
		r.log.Error("Failed to count bookings by user ID",
			zap.Error(err),
			zap.String("user_id", userID.String()),
		)
		return 0, fmt.Errorf("count bookings by user ID %s: %w", userID.String(), err)
	}

	return count, nil
}

func (r *bookingRepository) ConfirmWithInventory(ctx context.Context, bookingID uuid.UUID) (*entity.Booking, error) {
	var confirmed *entity.Booking

	err := withTxRetry(ctx, r.db, func(tx pgx.Tx) error {
		booking, err := confirmBookingTx(ctx, tx, bookingID)
		if errors.Is(err, errAlreadyConfirmed) {
			// A repeated confirm changes nothing and succeeds.
			confirmed = booking
			return nil
		}
		if err != nil {
			return err
		}
		confirmed = booking
		return nil
	})
	if err != nil {
		return nil, err
	}

	r.log.Info("Booking confirmed",
		zap.String("booking_id", bookingID.String()),
		zap.String("booking_ref", confirmed.BookingRef),
		zap.Int("rooms", confirmed.RoomsBooked),
	)

	return confirmed, nil
}

func (r *bookingRepository) CancelWithInventory(ctx context.Context, bookingID uuid.UUID) (*entity.Booking, error) {
	var cancelled *entity.Booking

	err := withTxRetry(ctx, r.db, func(tx pgx.Tx) error {
		booking, err := cancelBookingTx(ctx, tx, bookingID)
		if err != nil {
			return err
		}
		cancelled = booking
		return nil
	})
	if err != nil {
		return nil, err
	}

	r.log.Info("Booking cancelled",
		zap.String("booking_id", bookingID.String()),
		zap.String("booking_ref", cancelled.BookingRef),
	)

	return cancelled, nil
}

func (r *bookingRepository) ExpireProvisionalBefore(ctx context.Context, cutoff time.Time) (int64, error) {
	query := `
		UPDATE bookings
		SET status = $1, updated_at = NOW()
		WHERE status = $2 AND created_at < $3
	`

	result, err := r.db.Exec(ctx, query, entity.BookingStatusExpired, entity.BookingStatusProvisional, cutoff)
	if err != nil {
		r.log.Error("Failed to expire provisional bookings", zap.Error(err))
		return 0, fmt.Errorf("expire provisional bookings: %w", err)
	}

	return result.RowsAffected(), nil
}

// confirmBookingTx locks the booking row, decrements the ledger for its date
// range and writes the confirmed status, all inside the caller's
// transaction. Returns errAlreadyConfirmed when a duplicate confirm races in.
func confirmBookingTx(ctx context.Context, tx pgx.Tx, bookingID uuid.UUID) (*entity.Booking, error) {
	booking, err := lockBookingTx(ctx, tx, bookingID)
	if err != nil {
		return nil, err
	}

	if booking.Status == entity.BookingStatusConfirmed {
		return booking, errAlreadyConfirmed
	}
	if !booking.CanTransitionTo(entity.BookingStatusConfirmed) {
		return nil, fmt.Errorf("%w: %s -> confirmed", ErrInvalidTransition, booking.Status)
	}

	err = adjustRangeTx(ctx, tx, booking.RoomTypeID, booking.StartDate, booking.EndDate, booking.RoomsBooked, entity.AdjustDecrement)
	if err != nil {
		return nil, err
	}

	_, err = tx.Exec(ctx,
		`UPDATE bookings SET status = $2, updated_at = NOW() WHERE id = $1`,
		bookingID, entity.BookingStatusConfirmed,
	)
	if err != nil {
		return nil, fmt.Errorf("update booking %s status: %w", bookingID.String(), err)
	}

	booking.Status = entity.BookingStatusConfirmed
	return booking, nil
}

// cancelBookingTx cancels inside the caller's transaction; a confirmed
// booking's date range is released back to the ledger first. Cancelling an
// already-cancelled booking is a no-op so refund retries stay idempotent.
func cancelBookingTx(ctx context.Context, tx pgx.Tx, bookingID uuid.UUID) (*entity.Booking, error) {
	booking, err := lockBookingTx(ctx, tx, bookingID)
	if err != nil {
		return nil, err
	}

	if booking.Status == entity.BookingStatusCancelled {
		return booking, nil
	}
	if !booking.CanTransitionTo(entity.BookingStatusCancelled) {
		return nil, fmt.Errorf("%w: %s -> cancelled", ErrInvalidTransition, booking.Status)
	}

	if booking.Status == entity.BookingStatusConfirmed {
		err = adjustRangeTx(ctx, tx, booking.RoomTypeID, booking.StartDate, booking.EndDate, booking.RoomsBooked, entity.AdjustIncrement)
		if err != nil {
			return nil, err
		}
	}

	_, err = tx.Exec(ctx,
		`UPDATE bookings SET status = $2, updated_at = NOW() WHERE id = $1`,
		bookingID, entity.BookingStatusCancelled,
	)
	if err != nil {
		return nil, fmt.Errorf("update booking %s status: %w", bookingID.String(), err)
	}

	booking.Status = entity.BookingStatusCancelled
	return booking, nil
}

func lockBookingTx(ctx context.Context, tx pgx.Tx, bookingID uuid.UUID) (*entity.Booking, error) {
	query := `SELECT ` + bookingColumns + ` FROM bookings WHERE id = $1 FOR UPDATE`

	booking, err := scanBooking(tx.QueryRow(ctx, query, bookingID))
	if err == pgx.ErrNoRows {
		return nil, fmt.Errorf("%w: %s", ErrBookingNotFound, bookingID.String())
	}
	if err != nil {
		return nil, fmt.Errorf("lock booking %s: %w", bookingID.String(), err)
	}

	return booking, nil
}
