package handlers

import (
	"net/http"
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/opsboard/internal/api/dto"
	"github.com/spec-kit/opsboard/internal/service"
	"github.com/spec-kit/opsboard/pkg/util"
)

// EmployeesHandler exposes the employees resource.
type EmployeesHandler struct {
	directory *service.DirectoryService
}

// NewEmployeesHandler constructs handler.
func NewEmployeesHandler(directory *service.DirectoryService) *EmployeesHandler {
	return &EmployeesHandler{directory: directory}
}

// List handles GET ?resource=employees, optionally filtered by group_id.
func (h *EmployeesHandler) List(c *fiber.Ctx) error {
	employees, err := h.directory.ListEmployees(c.Context(), c.Query("group_id"))
	if err != nil {
		return err
	}

	items := make([]dto.EmployeeResponse, 0, len(employees))
	for i := range employees {
		items = append(items, employeeResponse(&employees[i]))
	}
	return c.JSON(fiber.Map{"employees": items})
}

// Create handles POST ?resource=employees.
func (h *EmployeesHandler) Create(c *fiber.Ctx) error {
	var req dto.CreateEmployeeRequest
	if err := c.BodyParser(&req); err != nil {
		return util.NewValidationError("Invalid request body")
	}
	if req.FullName == "" {
		return util.NewValidationError("Full name is required")
	}

	emp, err := h.directory.CreateEmployee(c.Context(), service.CreateEmployeeInput{
		FullName: req.FullName,
		Email:    req.Email,
		Position: req.Position,
		GroupID:  req.GroupID,
	})
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{"employee": employeeResponse(emp)})
}

// Update handles PUT ?resource=employees with a path identifier.
func (h *EmployeesHandler) Update(c *fiber.Ctx) error {
	rawID := c.Params("id")
	if rawID == "" {
		return util.NewValidationError("Employee ID is required")
	}
	id, err := strconv.ParseInt(rawID, 10, 64)
	if err != nil {
		return util.NewValidationError("Invalid employee ID")
	}

	var req dto.UpdateEmployeeRequest
	if err := c.BodyParser(&req); err != nil {
		return util.NewValidationError("Invalid request body")
	}

	emp, err := h.directory.UpdateEmployee(c.Context(), id, service.UpdateEmployeeInput{
		FullName: req.FullName,
		Email:    req.Email,
		Position: req.Position,
		GroupID:  req.GroupID,
	})
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"employee": employeeResponse(emp)})
}
