package dto

// LoginRequest payload.
type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// UserResponse enriched profile returned on successful login. The session
// token is one-shot; no endpoint validates it afterwards.
type UserResponse struct {
	ID           string  `json:"id"`
	Username     string  `json:"username"`
	FullName     string  `json:"fullName"`
	Role         string  `json:"role"`
	EmployeeID   *string `json:"employeeId"`
	EmployeeName *string `json:"employeeName"`
	Position     *string `json:"position"`
	SessionToken string  `json:"sessionToken"`
}
