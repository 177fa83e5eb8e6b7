package request

// AvailabilityRequest is shared by the availability check and the price
// quote. Rooms defaults to 1 when omitted on the quote endpoint.
type AvailabilityRequest struct {
	RoomTypeID string `json:"room_type_id" validate:"required,uuid4"`
	StartDate  string `json:"start_date" validate:"required,datetime=2006-01-02"`
	EndDate    string `json:"end_date" validate:"required,datetime=2006-01-02"`
	Rooms      int    `json:"rooms" validate:"omitempty,min=1"`
}
