package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/opsboard/internal/api/http/handlers"
	"github.com/spec-kit/opsboard/pkg/util"
)

// RouteConfig bundles dependencies for route registration.
type RouteConfig struct {
	Health    *handlers.HealthHandler
	Employees *handlers.EmployeesHandler
	Groups    *handlers.GroupsHandler
	Tasks     *handlers.TasksHandler
	Auth      *handlers.AuthHandler
}

// RegisterRoutes wires HTTP routes. Every resource shares a single dispatch
// entry point keyed by the `resource` query parameter and the HTTP method.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	app.Get("/health/live", cfg.Health.Live)
	app.Get("/health/ready", cfg.Health.Ready)

	dispatch := dispatchResource(cfg)
	app.All("/", dispatch)
	app.All("/:id", dispatch)
}

// dispatchResource resolves (resource, method) to an operation. Unmatched
// combinations fall through to 405.
func dispatchResource(cfg RouteConfig) fiber.Handler {
	return func(c *fiber.Ctx) error {
		switch c.Query("resource", "employees") {
		case "employees":
			switch c.Method() {
			case fiber.MethodGet:
				return cfg.Employees.List(c)
			case fiber.MethodPost:
				return cfg.Employees.Create(c)
			case fiber.MethodPut:
				return cfg.Employees.Update(c)
			}
		case "groups":
			switch c.Method() {
			case fiber.MethodGet:
				return cfg.Groups.List(c)
			case fiber.MethodPost:
				return cfg.Groups.Create(c)
			}
		case "tasks":
			switch c.Method() {
			case fiber.MethodGet:
				return cfg.Tasks.List(c)
			case fiber.MethodPost:
				return cfg.Tasks.Create(c)
			case fiber.MethodPut:
				return cfg.Tasks.Update(c)
			case fiber.MethodDelete:
				return cfg.Tasks.Delete(c)
			}
		case "auth":
			if c.Method() == fiber.MethodPost {
				return cfg.Auth.Login(c)
			}
		}
		return util.NewMethodNotSupported()
	}
}
