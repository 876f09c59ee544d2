package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/opsboard/internal/api/dto"
	"github.com/spec-kit/opsboard/internal/service"
	"github.com/spec-kit/opsboard/pkg/util"
)

// GroupsHandler exposes the groups resource.
type GroupsHandler struct {
	directory *service.DirectoryService
}

// NewGroupsHandler constructs handler.
func NewGroupsHandler(directory *service.DirectoryService) *GroupsHandler {
	return &GroupsHandler{directory: directory}
}

// List handles GET ?resource=groups.
func (h *GroupsHandler) List(c *fiber.Ctx) error {
	groups, err := h.directory.ListGroups(c.Context())
	if err != nil {
		return err
	}

	items := make([]dto.GroupResponse, 0, len(groups))
	for i := range groups {
		items = append(items, groupResponse(&groups[i]))
	}
	return c.JSON(fiber.Map{"groups": items})
}

// Create handles POST ?resource=groups.
func (h *GroupsHandler) Create(c *fiber.Ctx) error {
	var req dto.CreateGroupRequest
	if err := c.BodyParser(&req); err != nil {
		return util.NewValidationError("Invalid request body")
	}
	if req.Name == "" {
		return util.NewValidationError("Group name is required")
	}

	group, err := h.directory.CreateGroup(c.Context(), req.Name, req.Description)
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{"group": groupResponse(group)})
}
