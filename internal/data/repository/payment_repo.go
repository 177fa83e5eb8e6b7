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

type PaymentRepository interface {
	Create(ctx context.Context, payment *entity.Payment) error
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Payment, error)
	FindByBookingID(ctx context.Context, bookingID uuid.UUID) (*entity.Payment, error)
	FindByProviderPaymentID(ctx context.Context, providerPaymentID string) (*entity.Payment, error)
	UpdateStatus(ctx context.Context, paymentID uuid.UUID, status entity.PaymentStatus, paidAt *time.Time) error

	// MarkSucceededWithConfirm records the successful payment and confirms the
	// booking (ledger decrement included) in one transaction. When the rooms
	// are gone, the payment is still recorded as succeeded (the money moved)
	// and ErrNoAvailability is returned for the refund workflow.
	MarkSucceededWithConfirm(ctx context.Context, paymentID, bookingID uuid.UUID) error

	// MarkRefundedWithCancel records the refund and cancels the booking
	// (releasing confirmed nights) in one transaction.
	MarkRefundedWithCancel(ctx context.Context, paymentID, bookingID uuid.UUID) error
}

type paymentRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewPaymentRepository(db database.PgxIface, log *zap.Logger) PaymentRepository {
	return &paymentRepository{
		db:  db,
		log: log.With(zap.String("repository", "payment")),
	}
}

const paymentColumns = `id, booking_id, amount_minor, currency, provider,
	provider_payment_id, status, paid_at, created_at, updated_at`

func scanPayment(row pgx.Row) (*entity.Payment, error) {
	var p entity.Payment
	err := row.Scan(
		&p.ID,
		&p.BookingID,
		&p.AmountMinor,
		&p.Currency,
		&p.Provider,
		&p.ProviderPaymentID,
		&p.Status,
		&p.PaidAt,
		&p.CreatedAt,
		&p.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *paymentRepository) Create(ctx context.Context, payment *entity.Payment) error {
	query := `
		INSERT INTO payments (` + paymentColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	`

	_, err := r.db.Exec(ctx, query,
		payment.ID,
		payment.BookingID,
		payment.AmountMinor,
		payment.Currency,
		payment.Provider,
		payment.ProviderPaymentID,
		payment.Status,
		payment.PaidAt,
		payment.CreatedAt,
		payment.UpdatedAt,
	)

	if err != nil {
		r.log.Error("Failed to create payment",
			zap.Error(err),
			zap.String("booking_id", payment.BookingID.String()),
			zap.String("provider_payment_id", payment.ProviderPaymentID),
		)
		return fmt.Errorf("create payment for booking %s: %w", payment.BookingID.String(), err)
	}

	return nil
}

func (r *paymentRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Payment, error) {
	query := `SELECT ` + paymentColumns + ` FROM payments WHERE id = $1`

	payment, err := scanPayment(r.db.QueryRow(ctx, query, id))
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find payment by ID",
			zap.Error(err),
			zap.String("payment_id", id.String()),
		)
		return nil, fmt.Errorf("find payment by ID %s: %w", id.String(), err)
	}

	return payment, nil
}

func (r *paymentRepository) FindByBookingID(ctx context.Context, bookingID uuid.UUID) (*entity.Payment, error) {
	query := `
		SELECT ` + paymentColumns + `
		FROM payments
		WHERE booking_id = $1
		ORDER BY created_at DESC
		LIMIT 1
	`

	payment, err := scanPayment(r.db.QueryRow(ctx, query, bookingID))
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find payment by booking ID",
			zap.Error(err),
			zap.String("booking_id", bookingID.String()),
		)
		return nil, fmt.Errorf("find payment by booking ID %s: %w", bookingID.String(), err)
	}

	return payment, nil
}

func (r *paymentRepository) FindByProviderPaymentID(ctx context.Context, providerPaymentID string) (*entity.Payment, error) {
	query := `SELECT ` + paymentColumns + ` FROM payments WHERE provider_payment_id = $1`

	payment, err := scanPayment(r.db.QueryRow(ctx, query, providerPaymentID))
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find payment by provider payment ID",
			zap.Error(err),
			zap.String("provider_payment_id", providerPaymentID),
		)
		return nil, fmt.Errorf("find payment by provider payment ID %s: %w", providerPaymentID, err)
	}

	return payment, nil
}

func (r *paymentRepository) UpdateStatus(ctx context.Context, paymentID uuid.UUID, status entity.PaymentStatus, paidAt *time.Time) error {
	query := `UPDATE payments SET status = $2, paid_at = $3, updated_at = NOW() WHERE id = $1`

	result, err := r.db.Exec(ctx, query, paymentID, status, paidAt)
	if err != nil {
		r.log.Error("Failed to update payment status",
			zap.Error(err),
			zap.String("payment_id", paymentID.String()),
			zap.String("status", string(status)),
		)
		return fmt.Errorf("update payment %s status to %s: %w", paymentID.String(), string(status), err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("payment %s not found", paymentID.String())
	}

	return nil
}

func (r *paymentRepository) MarkSucceededWithConfirm(ctx context.Context, paymentID, bookingID uuid.UUID) error {
	err := withTxRetry(ctx, r.db, func(tx pgx.Tx) error {
		if err := markPaymentTx(ctx, tx, paymentID, entity.PaymentStatusSucceeded); err != nil {
			return err
		}

		_, err := confirmBookingTx(ctx, tx, bookingID)
		if errors.Is(err, errAlreadyConfirmed) {
			// Duplicate delivery raced past the status short-circuit; the
			// decrement already happened exactly once.
			return nil
		}
		return err
	})

	if errors.Is(err, ErrNoAvailability) {
		// The held rooms disappeared between provisional creation and payment.
		// The charge is real, so the payment must still read succeeded; the
		// booking stays provisional pending refund or waitlist.
		if uerr := r.UpdateStatus(ctx, paymentID, entity.PaymentStatusSucceeded, timePtr(time.Now())); uerr != nil {
			r.log.Error("Failed to record succeeded payment after availability conflict",
				zap.Error(uerr),
				zap.String("payment_id", paymentID.String()),
			)
			return uerr
		}
		return err
	}
	if err != nil {
		return err
	}

	r.log.Info("Payment succeeded and booking confirmed",
		zap.String("payment_id", paymentID.String()),
		zap.String("booking_id", bookingID.String()),
	)

	return nil
}

func (r *paymentRepository) MarkRefundedWithCancel(ctx context.Context, paymentID, bookingID uuid.UUID) error {
	err := withTxRetry(ctx, r.db, func(tx pgx.Tx) error {
		if err := markPaymentTx(ctx, tx, paymentID, entity.PaymentStatusRefunded); err != nil {
			return err
		}

		_, err := cancelBookingTx(ctx, tx, bookingID)
		if errors.Is(err, ErrInvalidTransition) {
			// An expired booking holds no inventory; the refund is still
			// recorded.
			return nil
		}
		return err
	})
	if err != nil {
		return err
	}

	r.log.Info("Payment refunded and booking cancelled",
		zap.String("payment_id", paymentID.String()),
		zap.String("booking_id", bookingID.String()),
	)

	return nil
}

// markPaymentTx locks the payment row and writes its new status inside the
// caller's transaction.
func markPaymentTx(ctx context.Context, tx pgx.Tx, paymentID uuid.UUID, status entity.PaymentStatus) error {
	var current entity.PaymentStatus
	err := tx.QueryRow(ctx,
		`SELECT status FROM payments WHERE id = $1 FOR UPDATE`,
		paymentID,
	).Scan(&current)
	if err == pgx.ErrNoRows {
		return fmt.Errorf("payment %s not found", paymentID.String())
	}
	if err != nil {
		return fmt.Errorf("lock payment %s: %w", paymentID.String(), err)
	}

	var paidAt *time.Time
	if status == entity.PaymentStatusSucceeded {
		paidAt = timePtr(time.Now())
	}

	_, err = tx.Exec(ctx,
		`UPDATE payments SET status = $2, paid_at = COALESCE($3, paid_at), updated_at = NOW() WHERE id = $1`,
		paymentID, status, paidAt,
	)
	if err != nil {
		return fmt.Errorf("update payment %s status to %s: %w", paymentID.String(), string(status), err)
	}

	return nil
}

func timePtr(t time.Time) *time.Time {
	return &t
}
