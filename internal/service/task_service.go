package service

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"github.com/spec-kit/opsboard/internal/auth"
	"github.com/spec-kit/opsboard/internal/domain"
	"github.com/spec-kit/opsboard/internal/events"
	"github.com/spec-kit/opsboard/internal/repository"
	"github.com/spec-kit/opsboard/pkg/util"
)

const emptyAttachments = "[]"

// CreateTaskInput carries a new task in wire form.
type CreateTaskInput struct {
	Title       string
	Description string
	Status      string
	Priority    string
	Assignee    string
	DueDate     string
	Attachments string
}

// UpdateTaskInput carries a partial task update in wire form.
type UpdateTaskInput struct {
	Title       domain.Optional[string]
	Description domain.Optional[string]
	Status      domain.Optional[string]
	Priority    domain.Optional[string]
	Assignee    domain.Optional[string]
	DueDate     domain.Optional[*string]
	Attachments domain.Optional[string]
}

// TaskService coordinates task board operations.
type TaskService struct {
	tasks      repository.TaskRepository
	guard      *auth.TaskGuard
	dispatcher events.Dispatcher
	logger     *zap.Logger
}

// TaskDependencies encapsulates requirements for the task service.
type TaskDependencies struct {
	TaskRepo   repository.TaskRepository
	Guard      *auth.TaskGuard
	Dispatcher events.Dispatcher
	Logger     *zap.Logger
}

// NewTaskService builds the service.
func NewTaskService(deps TaskDependencies) *TaskService {
	return &TaskService{
		tasks:      deps.TaskRepo,
		guard:      deps.Guard,
		dispatcher: deps.Dispatcher,
		logger:     deps.Logger,
	}
}

// ListTasks returns tasks sorted by due date, optionally filtered by exact
// status and/or priority. The sentinel "all" (or absence) means no filter.
func (s *TaskService) ListTasks(ctx context.Context, status, priority string) ([]domain.Task, error) {
	filter := repository.TaskFilter{}
	if status != "" && status != "all" {
		filter.Status = &status
	}
	if priority != "" && priority != "all" {
		filter.Priority = &priority
	}
	tasks, err := s.tasks.List(ctx, filter)
	if err != nil {
		return nil, util.MapError(err)
	}
	return tasks, nil
}

// CreateTask inserts a task, applying status/priority defaults.
func (s *TaskService) CreateTask(ctx context.Context, in CreateTaskInput) (*domain.Task, error) {
	if in.Status == "" {
		in.Status = domain.TaskStatusPending
	}
	if in.Priority == "" {
		in.Priority = domain.TaskPriorityMedium
	}
	if in.Attachments == "" {
		in.Attachments = emptyAttachments
	}

	task, err := s.tasks.Create(ctx, repository.TaskCreate{
		Title:       in.Title,
		Description: in.Description,
		Status:      in.Status,
		Priority:    in.Priority,
		Assignee:    in.Assignee,
		DueDate:     in.DueDate,
		Attachments: in.Attachments,
	})
	if err != nil {
		return nil, util.MapError(err)
	}

	_ = s.dispatcher.Publish(ctx, events.New(events.EventTaskCreated, taskPayload(task)))
	return task, nil
}

// UpdateTask authorizes the actor, then applies a partial update. The guard
// runs strictly before the mutation; a denial prevents the write.
func (s *TaskService) UpdateTask(ctx context.Context, actor auth.Actor, id int64, in UpdateTaskInput) (*domain.Task, error) {
	if err := s.guard.Authorize(ctx, actor, id, auth.TaskActionEdit); err != nil {
		return nil, err
	}

	update := repository.TaskUpdate{
		Title:       in.Title,
		Description: in.Description,
		Status:      in.Status,
		Priority:    in.Priority,
		Assignee:    in.Assignee,
		DueDate:     in.DueDate,
	}
	if in.Attachments.Present {
		value := in.Attachments.Value
		if value == "" {
			value = emptyAttachments
		}
		update.Attachments = domain.Some(value)
	}

	task, err := s.tasks.Update(ctx, id, update)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, util.NewNotFound("Task not found")
		}
		return nil, util.MapError(err)
	}

	_ = s.dispatcher.Publish(ctx, events.New(events.EventTaskUpdated, taskPayload(task)))
	return task, nil
}

// DeleteTask authorizes the actor, then removes the task.
func (s *TaskService) DeleteTask(ctx context.Context, actor auth.Actor, id int64) error {
	if err := s.guard.Authorize(ctx, actor, id, auth.TaskActionDelete); err != nil {
		return err
	}

	if err := s.tasks.Delete(ctx, id); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return util.NewNotFound("Task not found")
		}
		return util.MapError(err)
	}

	_ = s.dispatcher.Publish(ctx, events.New(events.EventTaskDeleted, events.TaskPayload{TaskID: id}))
	return nil
}

func taskPayload(task *domain.Task) events.TaskPayload {
	return events.TaskPayload{
		TaskID:   task.ID,
		Title:    task.Title,
		Status:   task.Status,
		Priority: task.Priority,
		Assignee: task.Assignee,
	}
}
