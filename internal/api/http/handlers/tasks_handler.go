package handlers

import (
	"net/http"
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/opsboard/internal/api/dto"
	"github.com/spec-kit/opsboard/internal/auth"
	"github.com/spec-kit/opsboard/internal/domain"
	"github.com/spec-kit/opsboard/internal/service"
	"github.com/spec-kit/opsboard/pkg/util"
)

// Role and group headers are self-reported by the caller; the guard treats
// them as unverified input.
const (
	headerUserRole    = "X-User-Role"
	headerUserGroupID = "X-User-Group-Id"
)

// TasksHandler exposes the tasks resource.
type TasksHandler struct {
	tasks *service.TaskService
}

// NewTasksHandler constructs handler.
func NewTasksHandler(taskService *service.TaskService) *TasksHandler {
	return &TasksHandler{tasks: taskService}
}

// List handles GET ?resource=tasks with optional status/priority filters.
func (h *TasksHandler) List(c *fiber.Ctx) error {
	tasks, err := h.tasks.ListTasks(c.Context(), c.Query("status"), c.Query("priority"))
	if err != nil {
		return err
	}

	items := make([]dto.TaskResponse, 0, len(tasks))
	for i := range tasks {
		items = append(items, taskResponse(&tasks[i]))
	}
	return c.JSON(fiber.Map{"tasks": items})
}

// Create handles POST ?resource=tasks.
func (h *TasksHandler) Create(c *fiber.Ctx) error {
	var req dto.CreateTaskRequest
	if err := c.BodyParser(&req); err != nil {
		return util.NewValidationError("Invalid request body")
	}
	if req.Title == "" || req.Assignee == "" || req.DueDate == "" {
		return util.NewValidationError("Missing required fields: title, assignee, dueDate")
	}

	task, err := h.tasks.CreateTask(c.Context(), service.CreateTaskInput{
		Title:       req.Title,
		Description: req.Description,
		Status:      req.Status,
		Priority:    req.Priority,
		Assignee:    req.Assignee,
		DueDate:     req.DueDate,
		Attachments: string(req.Attachments),
	})
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{"task": taskResponse(task)})
}

// Update handles PUT ?resource=tasks with a path identifier. The mutation is
// authorized before any write.
func (h *TasksHandler) Update(c *fiber.Ctx) error {
	id, err := taskID(c)
	if err != nil {
		return err
	}

	var req dto.UpdateTaskRequest
	if err := c.BodyParser(&req); err != nil {
		return util.NewValidationError("Invalid request body")
	}

	input := service.UpdateTaskInput{
		Title:       req.Title,
		Description: req.Description,
		Status:      req.Status,
		Priority:    req.Priority,
		Assignee:    req.Assignee,
		DueDate:     req.DueDate,
	}
	if req.Attachments.Present {
		input.Attachments = domain.Some(string(req.Attachments.Value))
	}

	task, err := h.tasks.UpdateTask(c.Context(), actorFrom(c), id, input)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"task": taskResponse(task)})
}

// Delete handles DELETE ?resource=tasks with a path identifier.
func (h *TasksHandler) Delete(c *fiber.Ctx) error {
	id, err := taskID(c)
	if err != nil {
		return err
	}

	if err := h.tasks.DeleteTask(c.Context(), actorFrom(c), id); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"message": "Task deleted successfully"})
}

func taskID(c *fiber.Ctx) (int64, error) {
	rawID := c.Params("id")
	if rawID == "" {
		return 0, util.NewValidationError("Task ID is required")
	}
	id, err := strconv.ParseInt(rawID, 10, 64)
	if err != nil {
		return 0, util.NewValidationError("Invalid task ID")
	}
	return id, nil
}

func actorFrom(c *fiber.Ctx) auth.Actor {
	return auth.Actor{
		Role:    c.Get(headerUserRole),
		GroupID: c.Get(headerUserGroupID),
	}
}
