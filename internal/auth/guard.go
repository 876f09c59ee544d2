package auth

import (
	"context"
	"fmt"
	"strconv"

	"github.com/spec-kit/opsboard/internal/domain"
	"github.com/spec-kit/opsboard/pkg/util"
)

// TaskAction names the mutation being authorized; it only affects the
// denial message.
type TaskAction string

const (
	TaskActionEdit   TaskAction = "edit"
	TaskActionDelete TaskAction = "delete"
)

// Actor is the caller's self-reported identity, taken from request headers.
// It is not verified against any session mechanism.
type Actor struct {
	Role    string
	GroupID string
}

// TaskAccess answers whether a task's assignee resolves to an employee of a
// given group.
type TaskAccess interface {
	AssigneeInGroup(ctx context.Context, taskID, groupID int64) (bool, error)
}

// TaskGuard decides whether an actor may mutate a task. Allowed roles are an
// explicit list: admins mutate anything, group heads only tasks whose
// assignee matches an employee of their own group. Everything else is denied.
type TaskGuard struct {
	access TaskAccess
}

// NewTaskGuard constructs the guard.
func NewTaskGuard(access TaskAccess) *TaskGuard {
	return &TaskGuard{access: access}
}

// Authorize runs strictly before the mutation; a non-nil return prevents it.
func (g *TaskGuard) Authorize(ctx context.Context, actor Actor, taskID int64, action TaskAction) error {
	switch domain.Role(actor.Role) {
	case domain.RoleAdmin:
		return nil
	case domain.RoleGroupHead:
		groupID, err := strconv.ParseInt(actor.GroupID, 10, 64)
		if actor.GroupID == "" || err != nil {
			return util.NewAccessDenied("Access denied: group id required")
		}
		ok, err := g.access.AssigneeInGroup(ctx, taskID, groupID)
		if err != nil {
			return util.MapError(err)
		}
		if !ok {
			return util.NewAccessDenied("Access denied: task not in your group")
		}
		return nil
	case domain.RoleEmployee:
		return util.NewAccessDenied(fmt.Sprintf("Access denied: employees cannot %s tasks", action))
	default:
		return util.NewAccessDenied("Access denied: role not permitted to modify tasks")
	}
}
