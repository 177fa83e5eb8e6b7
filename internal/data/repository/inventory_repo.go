package repository

import (
	"context"
	"fmt"
	"time"

	"hotel-booking/internal/data/entity"
	"hotel-booking/pkg/database"
	"hotel-booking/pkg/utils"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

type InventoryRepository interface {
	// FindRange returns the inventory rows that exist for the date range.
	// Missing nights mean full availability (RoomType.TotalRooms).
	FindRange(ctx context.Context, roomTypeID uuid.UUID, start, end time.Time) ([]*entity.InventoryRecord, error)

	// AdjustRange atomically adjusts every night in [start, end) by rooms.
	// DECREMENT verifies sufficiency for the whole range first and fails with
	// ErrNoAvailability without touching any night; INCREMENT clamps at the
	// room type's total and never fails the check.
	AdjustRange(ctx context.Context, roomTypeID uuid.UUID, start, end time.Time, rooms int, direction entity.AdjustDirection) error
}

type inventoryRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewInventoryRepository(db database.PgxIface, log *zap.Logger) InventoryRepository {
	return &inventoryRepository{
		db:  db,
		log: log.With(zap.String("repository", "inventory")),
	}
}

func (r *inventoryRepository) FindRange(ctx context.Context, roomTypeID uuid.UUID, start, end time.Time) ([]*entity.InventoryRecord, error) {
	query := `
		SELECT id, room_type_id, night, available_rooms, created_at, updated_at
		FROM room_inventory
		WHERE room_type_id = $1 AND night >= $2 AND night < $3
		ORDER BY night
	`

	rows, err := r.db.Query(ctx, query, roomTypeID, utils.NormalizeDate(start), utils.NormalizeDate(end))
	if err != nil {
		r.log.Error("Failed to find inventory range",
			zap.Error(err),
			zap.String("room_type_id", roomTypeID.String()),
		)
		return nil, fmt.Errorf("find inventory range for room type %s: %w", roomTypeID.String(), err)
	}
	defer rows.Close()

	var records []*entity.InventoryRecord
	for rows.Next() {
		var rec entity.InventoryRecord
		err := rows.Scan(
			&rec.ID,
			&rec.RoomTypeID,
			&rec.Night,
			&rec.AvailableRooms,
			&rec.CreatedAt,
			&rec.UpdatedAt,
		)
		if err != nil {
			r.log.Error("Failed to scan inventory row", zap.Error(err))
			return nil, fmt.Errorf("scan inventory row: %w", err)
		}
		records = append(records, &rec)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("inventory rows: %w", err)
	}

	return records, nil
}

func (r *inventoryRepository) AdjustRange(ctx context.Context, roomTypeID uuid.UUID, start, end time.Time, rooms int, direction entity.AdjustDirection) error {
	err := withTxRetry(ctx, r.db, func(tx pgx.Tx) error {
		return adjustRangeTx(ctx, tx, roomTypeID, start, end, rooms, direction)
	})
	if err != nil {
		return err
	}

	r.log.Info("Inventory adjusted",
		zap.String("room_type_id", roomTypeID.String()),
		zap.Time("start", start),
		zap.Time("end", end),
		zap.Int("rooms", rooms),
		zap.String("direction", string(direction)),
	)

	return nil
}

// adjustRangeTx is the ledger primitive. It runs inside the caller's
// transaction so composite operations (confirm, cancel, refund) keep the
// ledger write and the status write indivisible.
func adjustRangeTx(ctx context.Context, tx pgx.Tx, roomTypeID uuid.UUID, start, end time.Time, rooms int, direction entity.AdjustDirection) error {
	nights := utils.Nights(start, end)
	if len(nights) == 0 {
		return fmt.Errorf("empty date range %s to %s", start.Format("2006-01-02"), end.Format("2006-01-02"))
	}
	if rooms <= 0 {
		return fmt.Errorf("rooms must be positive, got %d", rooms)
	}

	startDate := nights[0]
	endDate := utils.NormalizeDate(end)

	if direction == entity.AdjustIncrement {
		// Releasing nights never fails the availability check; the counter is
		// clamped so it cannot exceed the room type's total. Nights without a
		// row are already at full availability.
		_, err := tx.Exec(ctx, `
			UPDATE room_inventory
			SET available_rooms = LEAST(
			        available_rooms + $4,
			        (SELECT total_rooms FROM room_types WHERE id = $1)
			    ),
			    updated_at = NOW()
			WHERE room_type_id = $1 AND night >= $2 AND night < $3
		`, roomTypeID, startDate, endDate, rooms)
		if err != nil {
			return fmt.Errorf("increment inventory for room type %s: %w", roomTypeID.String(), err)
		}
		return nil
	}

	// Lazily create missing rows at full availability so every night of the
	// range has a lockable counter.
	for _, night := range nights {
		_, err := tx.Exec(ctx, `
			INSERT INTO room_inventory (id, room_type_id, night, available_rooms, created_at, updated_at)
			SELECT $1, id, $3, total_rooms, NOW(), NOW()
			FROM room_types
			WHERE id = $2
			ON CONFLICT (room_type_id, night) DO NOTHING
		`, uuid.New(), roomTypeID, night)
		if err != nil {
			return fmt.Errorf("seed inventory row for %s: %w", night.Format("2006-01-02"), err)
		}
	}

	// Lock every night of the range in one ordered pass, then verify
	// sufficiency for all of them before writing anything. Ordered locking
	// keeps concurrent adjusters from deadlocking each other.
	lockRows, err := tx.Query(ctx, `
		SELECT night, available_rooms
		FROM room_inventory
		WHERE room_type_id = $1 AND night >= $2 AND night < $3
		ORDER BY night
		FOR UPDATE
	`, roomTypeID, startDate, endDate)
	if err != nil {
		return fmt.Errorf("lock inventory range for room type %s: %w", roomTypeID.String(), err)
	}

	locked := 0
	for lockRows.Next() {
		var night time.Time
		var available int
		if err := lockRows.Scan(&night, &available); err != nil {
			lockRows.Close()
			return fmt.Errorf("scan locked inventory row: %w", err)
		}
		locked++

		if available < rooms {
			lockRows.Close()
			return fmt.Errorf("%w: %d of %d rooms on %s", ErrNoAvailability, available, rooms, night.Format("2006-01-02"))
		}
	}
	lockRows.Close()
	if err := lockRows.Err(); err != nil {
		return fmt.Errorf("locked inventory rows: %w", err)
	}

	// Seeding creates one row per night unless the room type itself is gone.
	if locked != len(nights) {
		return fmt.Errorf("%w: %s", ErrRoomTypeNotFound, roomTypeID.String())
	}

	_, err = tx.Exec(ctx, `
		UPDATE room_inventory
		SET available_rooms = available_rooms - $4,
		    updated_at = NOW()
		WHERE room_type_id = $1 AND night >= $2 AND night < $3
	`, roomTypeID, startDate, endDate, rooms)
	if err != nil {
		return fmt.Errorf("decrement inventory for room type %s: %w", roomTypeID.String(), err)
	}

	return nil
}
