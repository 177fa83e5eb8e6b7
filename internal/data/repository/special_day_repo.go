package repository

import (
	"context"
	"fmt"
	"time"

	"hotel-booking/internal/data/entity"
	"hotel-booking/pkg/database"
	"hotel-booking/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type SpecialDayRepository interface {
	// FindForRange returns all rules touching nights in [start, end) that are
	// either global or scoped to the given room type.
	FindForRange(ctx context.Context, roomTypeID uuid.UUID, start, end time.Time) ([]*entity.SpecialDayRule, error)
	FindAll(ctx context.Context, from time.Time) ([]*entity.SpecialDayRule, error)
	Create(ctx context.Context, rule *entity.SpecialDayRule) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type specialDayRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewSpecialDayRepository(db database.PgxIface, log *zap.Logger) SpecialDayRepository {
	return &specialDayRepository{
		db:  db,
		log: log.With(zap.String("repository", "special_day")),
	}
}

const specialDayColumns = `id, night, room_type_id, rule_type, rate_type, rate_value, created_at, updated_at`

func (r *specialDayRepository) FindForRange(ctx context.Context, roomTypeID uuid.UUID, start, end time.Time) ([]*entity.SpecialDayRule, error) {
	query := `
		SELECT ` + specialDayColumns + `
		FROM special_day_rules
		WHERE night >= $2 AND night < $3
		  AND (room_type_id IS NULL OR room_type_id = $1)
		ORDER BY night
	`

	rows, err := r.db.Query(ctx, query, roomTypeID, utils.NormalizeDate(start), utils.NormalizeDate(end))
	if err != nil {
		r.log.Error("Failed to find special day rules for range",
			zap.Error(err),
			zap.String("room_type_id", roomTypeID.String()),
		)
		return nil, fmt.Errorf("find special day rules for room type %s: %w", roomTypeID.String(), err)
	}
	defer rows.Close()

	return scanSpecialDayRows(rows)
}

func (r *specialDayRepository) FindAll(ctx context.Context, from time.Time) ([]*entity.SpecialDayRule, error) {
	query := `SELECT ` + specialDayColumns + ` FROM special_day_rules WHERE night >= $1 ORDER BY night`

	rows, err := r.db.Query(ctx, query, utils.NormalizeDate(from))
	if err != nil {
		r.log.Error("Failed to list special day rules", zap.Error(err))
		return nil, fmt.Errorf("list special day rules: %w", err)
	}
	defer rows.Close()

	return scanSpecialDayRows(rows)
}

func (r *specialDayRepository) Create(ctx context.Context, rule *entity.SpecialDayRule) error {
	query := `
		INSERT INTO special_day_rules (` + specialDayColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`

	_, err := r.db.Exec(ctx, query,
		rule.ID,
		rule.Night,
		rule.RoomTypeID,
		rule.RuleType,
		rule.RateType,
		rule.RateValue,
		rule.CreatedAt,
		rule.UpdatedAt,
	)

	if err != nil {
		r.log.Error("Failed to create special day rule",
			zap.Error(err),
			zap.Time("night", rule.Night),
		)
		return fmt.Errorf("create special day rule for %s: %w", rule.Night.Format("2006-01-02"), err)
	}

	return nil
}

func (r *specialDayRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result, err := r.db.Exec(ctx, `DELETE FROM special_day_rules WHERE id = $1`, id)
	if err != nil {
		r.log.Error("Failed to delete special day rule",
			zap.Error(err),
			zap.String("rule_id", id.String()),
		)
		return fmt.Errorf("delete special day rule %s: %w", id.String(), err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("special day rule %s not found", id.String())
	}

	return nil
}

func scanSpecialDayRows(rows interface {
	Next() bool
	Scan(dest ...any) error
	Err() error
}) ([]*entity.SpecialDayRule, error) {
	var rules []*entity.SpecialDayRule
	for rows.Next() {
		var rule entity.SpecialDayRule
		err := rows.Scan(
			&rule.ID,
			&rule.Night,
			&rule.RoomTypeID,
			&rule.RuleType,
			&rule.RateType,
			&rule.RateValue,
			&rule.CreatedAt,
			&rule.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("scan special day rule row: %w", err)
		}
		rules = append(rules, &rule)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("special day rule rows: %w", err)
	}

	return rules, nil
}
