package dto

import (
	"encoding/json"

	"github.com/spec-kit/opsboard/internal/domain"
)

// CreateTaskRequest payload. Attachments are an opaque ordered sequence.
type CreateTaskRequest struct {
	Title       string          `json:"title"`
	Description string          `json:"description"`
	Status      string          `json:"status"`
	Priority    string          `json:"priority"`
	Assignee    string          `json:"assignee"`
	DueDate     string          `json:"dueDate"`
	Attachments json.RawMessage `json:"attachments"`
}

// UpdateTaskRequest payload; only keys present in the body are applied.
type UpdateTaskRequest struct {
	Title       domain.Optional[string]          `json:"title"`
	Description domain.Optional[string]          `json:"description"`
	Status      domain.Optional[string]          `json:"status"`
	Priority    domain.Optional[string]          `json:"priority"`
	Assignee    domain.Optional[string]          `json:"assignee"`
	DueDate     domain.Optional[*string]         `json:"dueDate"`
	Attachments domain.Optional[json.RawMessage] `json:"attachments"`
}

// TaskResponse wire representation. Attachments render as an empty sequence
// when absent, never null.
type TaskResponse struct {
	ID          string          `json:"id"`
	Title       string          `json:"title"`
	Description string          `json:"description"`
	Status      string          `json:"status"`
	Priority    string          `json:"priority"`
	Assignee    string          `json:"assignee"`
	DueDate     *string         `json:"dueDate"`
	CreatedAt   *string         `json:"createdAt"`
	UpdatedAt   *string         `json:"updatedAt"`
	Attachments json.RawMessage `json:"attachments"`
}
