package response

type NightPrice struct {
	Date        string `json:"date"`
	PriceMinor  int64  `json:"price_minor"`
	SpecialRate bool   `json:"special_rate"`
}

type PriceQuoteResponse struct {
	RoomTypeID   string       `json:"room_type_id"`
	Rooms        int          `json:"rooms"`
	Currency     string       `json:"currency"`
	Nights       []NightPrice `json:"nights"`
	TotalMinor   int64        `json:"total_minor"`
	DepositMinor int64        `json:"deposit_minor"`
}
