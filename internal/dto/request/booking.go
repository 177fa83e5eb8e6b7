package request

type CreateBookingRequest struct {
	RoomTypeID string `json:"room_type_id" validate:"required,uuid4"`
	StartDate  string `json:"start_date" validate:"required,datetime=2006-01-02"`
	EndDate    string `json:"end_date" validate:"required,datetime=2006-01-02"`
	Rooms      int    `json:"rooms" validate:"required,min=1"`
}
