package response

import "hotel-booking/internal/data/entity"

type RoomTypeResponse struct {
	ID             string `json:"id"`
	Name           string `json:"name"`
	Description    string `json:"description"`
	BasePriceMinor int64  `json:"base_price_minor"`
	MaxOccupancy   int    `json:"max_occupancy"`
}

func NewRoomTypeResponse(rt *entity.RoomType) *RoomTypeResponse {
	return &RoomTypeResponse{
		ID:             rt.ID.String(),
		Name:           rt.Name,
		Description:    rt.Description,
		BasePriceMinor: rt.BasePriceMinor,
		MaxOccupancy:   rt.MaxOccupancy,
	}
}
