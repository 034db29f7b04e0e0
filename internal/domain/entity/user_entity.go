package entity

import (
	"time"
)

// Role gates which operations a user may call. It is fixed at creation;
// no exposed operation reassigns it.
type Role string

const (
	RoleCustomer Role = "customer"
	RoleVendor   Role = "vendor"
	RoleAdmin    Role = "admin"
)

func ValidRole(r Role) bool {
	switch r {
	case RoleCustomer, RoleVendor, RoleAdmin:
		return true
	}
	return false
}

// User is the aggregate root for the identity domain.
// Passwords are stored as bcrypt hashes in Password field.
type User struct {
	ID       string
	Email    string
	Password string
	Name     string
	Role     Role
	IsActive bool
	Phone    string
	Address  string

	// Vendor-only fields
	YearsExperience int
	Expertise       []string
	DocumentURL     string

	CreatedAt time.Time
	UpdatedAt time.Time
}
