package entity

type UserRole string

const (
	RoleCustomer UserRole = "customer"
	RoleAdmin    UserRole = "admin"
)

// GuestType drives the advance-booking and minimum-notice windows.
type GuestType string

const (
	GuestRegular   GuestType = "REGULAR"
	GuestVIP       GuestType = "VIP"
	GuestCorporate GuestType = "CORPORATE"
)

type User struct {
	Base
	Name      string    `db:"name"`
	Email     string    `db:"email"`
	Phone     *string   `db:"phone"`
	Role      UserRole  `db:"role"`
	GuestType GuestType `db:"guest_type"`
	IsActive  bool      `db:"is_active"`
}
