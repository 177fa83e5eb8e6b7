package entity

import (
	"time"

	"github.com/google/uuid"
)

// AdjustDirection selects decrement (confirm) or increment (release) on the
// inventory ledger.
type AdjustDirection string

const (
	AdjustDecrement AdjustDirection = "DECREMENT"
	AdjustIncrement AdjustDirection = "INCREMENT"
)

// InventoryRecord is one room-night counter: remaining units of a room type
// on one calendar night. Rows are created lazily on first decrement; a
// missing row means the full RoomType.TotalRooms is still available.
// Invariant: 0 <= AvailableRooms <= RoomType.TotalRooms.
type InventoryRecord struct {
	Base
	RoomTypeID     uuid.UUID `db:"room_type_id"`
	Night          time.Time `db:"night"`
	AvailableRooms int       `db:"available_rooms"`
}
