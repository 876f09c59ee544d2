package handlers

import (
	"encoding/json"
	"strconv"
	"time"

	"github.com/spec-kit/opsboard/internal/api/dto"
	"github.com/spec-kit/opsboard/internal/domain"
)

// Mapping helpers transcode persisted records into the wire representation:
// ids as strings, timestamps as RFC3339 or explicit null, absent attachments
// as an empty sequence.

func employeeResponse(emp *domain.Employee) dto.EmployeeResponse {
	return dto.EmployeeResponse{
		ID:        formatID(emp.ID),
		FullName:  emp.FullName,
		Email:     emp.Email,
		Position:  emp.Position,
		GroupID:   formatNullableID(emp.GroupID),
		GroupName: emp.GroupName,
		CreatedAt: formatTime(emp.CreatedAt),
	}
}

func groupResponse(group *domain.Group) dto.GroupResponse {
	return dto.GroupResponse{
		ID:            formatID(group.ID),
		Name:          group.Name,
		Description:   group.Description,
		EmployeeCount: group.EmployeeCount,
		CreatedAt:     formatTime(group.CreatedAt),
	}
}

func taskResponse(task *domain.Task) dto.TaskResponse {
	attachments := task.Attachments
	if len(attachments) == 0 || string(attachments) == "null" {
		attachments = json.RawMessage("[]")
	}
	return dto.TaskResponse{
		ID:          formatID(task.ID),
		Title:       task.Title,
		Description: task.Description,
		Status:      task.Status,
		Priority:    task.Priority,
		Assignee:    task.Assignee,
		DueDate:     formatTime(task.DueDate),
		CreatedAt:   formatTime(task.CreatedAt),
		UpdatedAt:   formatTime(task.UpdatedAt),
		Attachments: attachments,
	}
}

func userResponse(user *domain.User, sessionToken string) dto.UserResponse {
	return dto.UserResponse{
		ID:           formatID(user.ID),
		Username:     user.Username,
		FullName:     user.FullName,
		Role:         string(user.Role),
		EmployeeID:   formatNullableID(user.EmployeeID),
		EmployeeName: user.EmployeeName,
		Position:     user.Position,
		SessionToken: sessionToken,
	}
}

func formatID(id int64) string {
	return strconv.FormatInt(id, 10)
}

func formatNullableID(id *int64) *string {
	if id == nil {
		return nil
	}
	s := strconv.FormatInt(*id, 10)
	return &s
}

func formatTime(t *time.Time) *string {
	if t == nil {
		return nil
	}
	s := t.Format(time.RFC3339)
	return &s
}
