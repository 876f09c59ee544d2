package events

import (
	"time"

	"github.com/google/uuid"
)

// EventType enumerates supported event identifiers.
type EventType string

const (
	EventTaskCreated     EventType = "task_created"
	EventTaskUpdated     EventType = "task_updated"
	EventTaskDeleted     EventType = "task_deleted"
	EventEmployeeCreated EventType = "employee_created"
	EventGroupCreated    EventType = "group_created"
	EventUserLoggedIn    EventType = "user_logged_in"
)

// Event represents a domain event emitted by services.
type Event struct {
	ID        string      `json:"id"`
	Type      EventType   `json:"type"`
	Timestamp time.Time   `json:"timestamp"`
	Payload   interface{} `json:"payload"`
}

// New stamps a fresh event.
func New(eventType EventType, payload interface{}) Event {
	return Event{
		ID:        uuid.NewString(),
		Type:      eventType,
		Timestamp: time.Now(),
		Payload:   payload,
	}
}

// TaskPayload describes a task mutation.
type TaskPayload struct {
	TaskID   int64  `json:"task_id"`
	Title    string `json:"title,omitempty"`
	Status   string `json:"status,omitempty"`
	Priority string `json:"priority,omitempty"`
	Assignee string `json:"assignee,omitempty"`
}

// EmployeeCreatedPayload payload.
type EmployeeCreatedPayload struct {
	EmployeeID int64  `json:"employee_id"`
	FullName   string `json:"full_name"`
	GroupID    *int64 `json:"group_id,omitempty"`
}

// GroupCreatedPayload payload.
type GroupCreatedPayload struct {
	GroupID int64  `json:"group_id"`
	Name    string `json:"name"`
}

// UserLoggedInPayload payload.
type UserLoggedInPayload struct {
	UserID   int64  `json:"user_id"`
	Username string `json:"username"`
	Role     string `json:"role"`
}
