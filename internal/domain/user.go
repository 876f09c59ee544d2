package domain

import "time"

// Role enumerates caller roles used by the task mutation guard.
type Role string

const (
	RoleAdmin     Role = "admin"
	RoleGroupHead Role = "group_head"
	RoleEmployee  Role = "employee"
)

// User is a login account. Accounts are read-only in this service except for
// the last-login touch on successful authentication. EmployeeID is a weak
// reference; EmployeeName and Position are resolved by join on login.
type User struct {
	ID           int64
	Username     string
	FullName     string
	Role         Role
	EmployeeID   *int64
	EmployeeName *string
	Position     *string
	PasswordHash string
	LastLogin    *time.Time
}
