package domain

import "time"

// UserRole роль пользователя в системе
type UserRole string

const (
	RoleCustomer UserRole = "customer"
	RoleStaff    UserRole = "staff"
	RoleAdmin    UserRole = "admin"
)

// IsValid returns true if the role is known
func (r UserRole) IsValid() bool {
	return r == RoleCustomer || r == RoleStaff || r == RoleAdmin
}

// IsStaff returns true for shop employees (staff and admins)
func (r UserRole) IsStaff() bool {
	return r == RoleStaff || r == RoleAdmin
}

// User represents a registered user: customer, employee or admin
type User struct {
	ID           int64
	Name         string
	Email        string
	PasswordHash string
	Phone        *string
	Role         UserRole

	CreatedAt time.Time
	UpdatedAt time.Time
}
