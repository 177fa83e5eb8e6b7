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

type RoomTypeRepository interface {
	FindAllActive(ctx context.Context) ([]*entity.RoomType, error)
	FindByID(ctx context.Context, id uuid.UUID) (*entity.RoomType, error)
}

type roomTypeRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewRoomTypeRepository(db database.PgxIface, log *zap.Logger) RoomTypeRepository {
	return &roomTypeRepository{
		db:  db,
		log: log.With(zap.String("repository", "room_type")),
	}
}

const roomTypeColumns = `id, name, description, base_price_minor, total_rooms, max_occupancy, is_active, created_at, updated_at`

func scanRoomType(row pgx.Row) (*entity.RoomType, error) {
	var rt entity.RoomType
	err := row.Scan(
		&rt.ID,
		&rt.Name,
		&rt.Description,
		&rt.BasePriceMinor,
		&rt.TotalRooms,
		&rt.MaxOccupancy,
		&rt.IsActive,
		&rt.CreatedAt,
		&rt.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &rt, nil
}

func (r *roomTypeRepository) FindAllActive(ctx context.Context) ([]*entity.RoomType, error) {
	query := `SELECT ` + roomTypeColumns + ` FROM room_types WHERE is_active = TRUE ORDER BY name`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		r.log.Error("Failed to find active room types", zap.Error(err))
		return nil, fmt.Errorf("find active room types: %w", err)
	}
	defer rows.Close()

	var roomTypes []*entity.RoomType
	for rows.Next() {
		rt, err := scanRoomType(rows)
		if err != nil {
			r.log.Error("Failed to scan room type row", zap.Error(err))
			return nil, fmt.Errorf("scan room type row: %w", err)
		}
		roomTypes = append(roomTypes, rt)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("room type rows: %w", err)
	}

	return roomTypes, nil
}

func (r *roomTypeRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.RoomType, error) {
	query := `SELECT ` + roomTypeColumns + ` FROM room_types WHERE id = $1`

	rt, err := scanRoomType(r.db.QueryRow(ctx, query, id))
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find room type by ID",
			zap.Error(err),
			zap.String("room_type_id", id.String()),
		)
		return nil, fmt.Errorf("find room type by ID %s: %w", id.String(), err)
	}

	return rt, nil
}
