package response

type InventoryNight struct {
	Night          string `json:"night"`
	AvailableRooms int    `json:"available_rooms"`
}

type InventoryReportResponse struct {
	RoomTypeID string           `json:"room_type_id"`
	TotalRooms int              `json:"total_rooms"`
	Nights     []InventoryNight `json:"nights"`
}
