package domain

import (
	"encoding/json"
	"time"
)

// Well-known task states. The board accepts any string; these are the values
// the frontend uses and the defaults applied on creation.
const (
	TaskStatusPending    = "pending"
	TaskStatusInProgress = "in-progress"
	TaskStatusDone       = "done"

	TaskPriorityLow    = "low"
	TaskPriorityMedium = "medium"
	TaskPriorityHigh   = "high"
)

// Task is an item on the task board. Assignee is the free-text full name of an
// employee, matched by exact string equality for authorization purposes; it is
// not a foreign key.
type Task struct {
	ID          int64
	Title       string
	Description string
	Status      string
	Priority    string
	Assignee    string
	DueDate     *time.Time
	Attachments json.RawMessage
	CreatedAt   *time.Time
	UpdatedAt   *time.Time
}
