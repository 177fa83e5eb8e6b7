package repository

import (
	"context"
	"fmt"

	"hotel-booking/internal/data/entity"
	"hotel-booking/pkg/database"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

type AccessCodeRepository interface {
	Create(ctx context.Context, code *entity.AccessCode) error
	// FindActiveByBookingID returns the most recent unused, unexpired code.
	FindActiveByBookingID(ctx context.Context, bookingID uuid.UUID) (*entity.AccessCode, error)
	MarkUsed(ctx context.Context, id uuid.UUID) error
}

type accessCodeRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewAccessCodeRepository(db database.PgxIface, log *zap.Logger) AccessCodeRepository {
	return &accessCodeRepository{
		db:  db,
		log: log.With(zap.String("repository", "access_code")),
	}
}

func (r *accessCodeRepository) Create(ctx context.Context, code *entity.AccessCode) error {
	query := `
		INSERT INTO booking_access_codes (id, booking_id, code_hash, expires_at, used_at, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`

	_, err := r.db.Exec(ctx, query,
		code.ID,
		code.BookingID,
		code.CodeHash,
		code.ExpiresAt,
		code.UsedAt,
		code.CreatedAt,
	)

	if err != nil {
		r.log.Error("Failed to create access code",
			zap.Error(err),
			zap.String("booking_id", code.BookingID.String()),
		)
		return fmt.Errorf("create access code for booking %s: %w", code.BookingID.String(), err)
	}

	return nil
}

func (r *accessCodeRepository) FindActiveByBookingID(ctx context.Context, bookingID uuid.UUID) (*entity.AccessCode, error) {
	query := `
		SELECT id, booking_id, code_hash, expires_at, used_at, created_at
		FROM booking_access_codes
		WHERE booking_id = $1 AND used_at IS NULL AND expires_at > NOW()
		ORDER BY created_at DESC
		LIMIT 1
	`

	var code entity.AccessCode
	err := r.db.QueryRow(ctx, query, bookingID).Scan(
		&code.ID,
		&code.BookingID,
		&code.CodeHash,
		&code.ExpiresAt,
		&code.UsedAt,
		&code.CreatedAt,
	)

	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find active access code",
			zap.Error(err),
			zap.String("booking_id", bookingID.String()),
		)
		return nil, fmt.Errorf("find active access code for booking %s: %w", bookingID.String(), err)
	}

	return &code, nil
}

func (r *accessCodeRepository) MarkUsed(ctx context.Context, id uuid.UUID) error {
	result, err := r.db.Exec(ctx,
		`UPDATE booking_access_codes SET used_at = NOW() WHERE id = $1 AND used_at IS NULL`,
		id,
	)
	if err != nil {
		r.log.Error("Failed to mark access code used",
			zap.Error(err),
			zap.String("access_code_id", id.String()),
		)
		return fmt.Errorf("mark access code %s used: %w", id.String(), err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("access code %s not found or already used", id.String())
	}

	return nil
}
