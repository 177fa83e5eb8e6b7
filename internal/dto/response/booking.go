package response

import (
	"time"

	"hotel-booking/internal/data/entity"
)

type BookingResponse struct {
	ID              string    `json:"id"`
	BookingRef      string    `json:"booking_ref"`
	RoomTypeID      string    `json:"room_type_id"`
	StartDate       string    `json:"start_date"`
	EndDate         string    `json:"end_date"`
	Rooms           int       `json:"rooms"`
	TotalPriceMinor int64     `json:"total_price_minor"`
	DepositMinor    int64     `json:"deposit_minor"`
	Status          string    `json:"status"`
	CreatedAt       time.Time `json:"created_at"`
}

func NewBookingResponse(b *entity.Booking) *BookingResponse {
	return &BookingResponse{
		ID:              b.ID.String(),
		BookingRef:      b.BookingRef,
		RoomTypeID:      b.RoomTypeID.String(),
		StartDate:       b.StartDate.Format("2006-01-02"),
		EndDate:         b.EndDate.Format("2006-01-02"),
		Rooms:           b.RoomsBooked,
		TotalPriceMinor: b.TotalPriceMinor,
		DepositMinor:    b.DepositMinor,
		Status:          string(b.Status),
		CreatedAt:       b.CreatedAt,
	}
}

type BookingListResponse struct {
	Bookings   []*BookingResponse `json:"bookings"`
	Pagination PaginationMeta     `json:"pagination"`
}
