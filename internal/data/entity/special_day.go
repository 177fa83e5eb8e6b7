package entity

import (
	"time"

	"github.com/google/uuid"
)

type SpecialDayRuleType string

const (
	SpecialDayBlocked     SpecialDayRuleType = "BLOCKED"
	SpecialDaySpecialRate SpecialDayRuleType = "SPECIAL_RATE"
)

type SpecialRateType string

const (
	RateMultiplier SpecialRateType = "MULTIPLIER"
	RateFixed      SpecialRateType = "FIXED"
)

// SpecialDayRule overrides pricing or bookability for one night. A nil
// RoomTypeID applies to every room type; a room-type-scoped rule takes
// precedence over a global one on the same night.
type SpecialDayRule struct {
	Base
	Night      time.Time          `db:"night"`
	RoomTypeID *uuid.UUID         `db:"room_type_id"`
	RuleType   SpecialDayRuleType `db:"rule_type"`
	RateType   *SpecialRateType   `db:"rate_type"`
	RateValue  *float64           `db:"rate_value"`
}

// AppliesTo reports whether the rule covers the given room type.
func (r *SpecialDayRule) AppliesTo(roomTypeID uuid.UUID) bool {
	return r.RoomTypeID == nil || *r.RoomTypeID == roomTypeID
}
