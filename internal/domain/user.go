package domain

import "time"

// UserRole enumerates HR operator roles.
type UserRole string

const (
	UserRoleAdmin    UserRole = "ADMIN"
	UserRoleOperator UserRole = "OPERATOR"
)

// User is an HR operator allowed to consult the dashboards and reports.
type User struct {
	ID           string
	Username     string
	Name         string
	PasswordHash string
	Role         UserRole
	Active       bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
