package dto

import "github.com/spec-kit/opsboard/internal/domain"

// CreateEmployeeRequest payload.
type CreateEmployeeRequest struct {
	FullName string  `json:"fullName"`
	Email    *string `json:"email"`
	Position *string `json:"position"`
	GroupID  string  `json:"groupId"`
}

// UpdateEmployeeRequest payload; only keys present in the body are applied.
type UpdateEmployeeRequest struct {
	FullName domain.Optional[string]  `json:"fullName"`
	Email    domain.Optional[*string] `json:"email"`
	Position domain.Optional[*string] `json:"position"`
	GroupID  domain.Optional[*string] `json:"groupId"`
}

// EmployeeResponse wire representation. Identifiers render as strings and
// absent values as explicit nulls.
type EmployeeResponse struct {
	ID        string  `json:"id"`
	FullName  string  `json:"fullName"`
	Email     *string `json:"email"`
	Position  *string `json:"position"`
	GroupID   *string `json:"groupId"`
	GroupName *string `json:"groupName"`
	CreatedAt *string `json:"createdAt"`
}
