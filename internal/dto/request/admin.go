package request

type CreateSpecialDayRequest struct {
	Night      string   `json:"night" validate:"required,datetime=2006-01-02"`
	RoomTypeID *string  `json:"room_type_id" validate:"omitempty,uuid4"`
	RuleType   string   `json:"rule_type" validate:"required,oneof=BLOCKED SPECIAL_RATE"`
	RateType   *string  `json:"rate_type" validate:"omitempty,oneof=MULTIPLIER FIXED"`
	RateValue  *float64 `json:"rate_value" validate:"omitempty,gt=0"`
}

type UpsertBookingRuleRequest struct {
	GuestType      string `json:"guest_type" validate:"required,oneof=REGULAR VIP CORPORATE"`
	MaxDaysAdvance int    `json:"max_days_advance" validate:"required,min=1"`
	MinDaysNotice  int    `json:"min_days_notice" validate:"min=0"`
}

type AdjustInventoryRequest struct {
	RoomTypeID string `json:"room_type_id" validate:"required,uuid4"`
	StartDate  string `json:"start_date" validate:"required,datetime=2006-01-02"`
	EndDate    string `json:"end_date" validate:"required,datetime=2006-01-02"`
	Rooms      int    `json:"rooms" validate:"required,min=1"`
	Direction  string `json:"direction" validate:"required,oneof=DECREMENT INCREMENT"`
}

type BroadcastRequest struct {
	Message string `json:"message" validate:"required,max=500"`
	Channel string `json:"channel" validate:"required,oneof=email sms whatsapp"`
}
