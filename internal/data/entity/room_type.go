package entity

// RoomType is the bookable unit catalog entry. BasePriceMinor is the nightly
// rate in minor currency units; TotalRooms caps the inventory ledger for
// every night of this type.
type RoomType struct {
	Base
	Name           string `db:"name"`
	Description    string `db:"description"`
	BasePriceMinor int64  `db:"base_price_minor"`
	TotalRooms     int    `db:"total_rooms"`
	MaxOccupancy   int    `db:"max_occupancy"`
	IsActive       bool   `db:"is_active"`
}
