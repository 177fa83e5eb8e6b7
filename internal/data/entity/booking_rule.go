package entity

// BookingRule is the per-guest-class advance/notice window: a stay may start
// at most MaxDaysAdvance days in the future and at least MinDaysNotice days
// from today, both bounds inclusive.
type BookingRule struct {
	Base
	GuestType      GuestType `db:"guest_type"`
	MaxDaysAdvance int       `db:"max_days_advance"`
	MinDaysNotice  int       `db:"min_days_notice"`
}

type DepositType string

const (
	DepositPercent DepositType = "percent"
	DepositFixed   DepositType = "fixed"
)

// DepositPolicy sets the deposit owed by group bookings whose room count
// falls in [MinRooms, MaxRooms]. Active policies must not overlap.
type DepositPolicy struct {
	Base
	MinRooms int         `db:"min_rooms"`
	MaxRooms int         `db:"max_rooms"`
	Type     DepositType `db:"deposit_type"`
	Value    float64     `db:"value"`
	IsActive bool        `db:"is_active"`
}

// Covers reports whether rooms falls inside the policy range.
func (p *DepositPolicy) Covers(rooms int) bool {
	return rooms >= p.MinRooms && rooms <= p.MaxRooms
}
