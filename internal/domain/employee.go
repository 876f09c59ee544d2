package domain

import "time"

// Employee models a member of the organization.
// GroupID is a weak reference to a Group; GroupName is resolved by join when listing.
type Employee struct {
	ID        int64
	FullName  string
	Email     *string
	Position  *string
	GroupID   *int64
	GroupName *string
	CreatedAt *time.Time
}
