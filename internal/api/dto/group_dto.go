package dto

// CreateGroupRequest payload.
type CreateGroupRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

// GroupResponse wire representation with the live-computed member count.
type GroupResponse struct {
	ID            string  `json:"id"`
	Name          string  `json:"name"`
	Description   string  `json:"description"`
	EmployeeCount int64   `json:"employeeCount"`
	CreatedAt     *string `json:"createdAt"`
}
