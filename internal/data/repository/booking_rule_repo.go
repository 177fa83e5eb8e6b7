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

type BookingRuleRepository interface {
	FindByGuestType(ctx context.Context, guestType entity.GuestType) (*entity.BookingRule, error)
	Upsert(ctx context.Context, rule *entity.BookingRule) error
	FindActiveDepositPolicies(ctx context.Context) ([]*entity.DepositPolicy, error)
}

type bookingRuleRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewBookingRuleRepository(db database.PgxIface, log *zap.Logger) BookingRuleRepository {
	return &bookingRuleRepository{
		db:  db,
		log: log.With(zap.String("repository", "booking_rule")),
	}
}

func (r *bookingRuleRepository) FindByGuestType(ctx context.Context, guestType entity.GuestType) (*entity.BookingRule, error) {
	query := `
		SELECT id, guest_type, max_days_advance, min_days_notice, created_at, updated_at
		FROM booking_rules
		WHERE guest_type = $1
	`

	var rule entity.BookingRule
	err := r.db.QueryRow(ctx, query, guestType).Scan(
		&rule.ID,
		&rule.GuestType,
		&rule.MaxDaysAdvance,
		&rule.MinDaysNotice,
		&rule.CreatedAt,
		&rule.UpdatedAt,
	)

	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find booking rule",
			zap.Error(err),
			zap.String("guest_type", string(guestType)),
		)
		return nil, fmt.Errorf("find booking rule for %s: %w", string(guestType), err)
	}

	return &rule, nil
}

func (r *bookingRuleRepository) Upsert(ctx context.Context, rule *entity.BookingRule) error {
	query := `
		INSERT INTO booking_rules (id, guest_type, max_days_advance, min_days_notice, created_at, updated_at)
		VALUES ($1, $2, $3, $4, NOW(), NOW())
		ON CONFLICT (guest_type)
		DO UPDATE SET max_days_advance = $3, min_days_notice = $4, updated_at = NOW()
	`

	_, err := r.db.Exec(ctx, query, uuid.New(), rule.GuestType, rule.MaxDaysAdvance, rule.MinDaysNotice)
	if err != nil {
		r.log.Error("Failed to upsert booking rule",
			zap.Error(err),
			zap.String("guest_type", string(rule.GuestType)),
		)
		return fmt.Errorf("upsert booking rule for %s: %w", string(rule.GuestType), err)
	}

	return nil
}

func (r *bookingRuleRepository) FindActiveDepositPolicies(ctx context.Context) ([]*entity.DepositPolicy, error) {
	query := `
		SELECT id, min_rooms, max_rooms, deposit_type, value, is_active, created_at, updated_at
		FROM deposit_policies
		WHERE is_active = TRUE
		ORDER BY min_rooms
	`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		r.log.Error("Failed to find deposit policies", zap.Error(err))
		return nil, fmt.Errorf("find deposit policies: %w", err)
	}
	defer rows.Close()

	var policies []*entity.DepositPolicy
	for rows.Next() {
		var p entity.DepositPolicy
		err := rows.Scan(
			&p.ID,
			&p.MinRooms,
			&p.MaxRooms,
			&p.Type,
			&p.Value,
			&p.IsActive,
			&p.CreatedAt,
			&p.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("scan deposit policy row: %w", err)
		}
		policies = append(policies, &p)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("deposit policy rows: %w", err)
	}

	return policies, nil
}
