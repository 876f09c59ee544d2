package domain

import "time"

// Group represents an organizational unit employees may belong to.
// EmployeeCount is computed by join on read, never stored.
type Group struct {
	ID            int64
	Name          string
	Description   string
	EmployeeCount int64
	CreatedAt     *time.Time
}
