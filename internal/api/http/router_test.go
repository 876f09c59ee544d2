package http

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	stdhttp "net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"github.com/spec-kit/opsboard/internal/api/http/handlers"
	"github.com/spec-kit/opsboard/internal/auth"
	"github.com/spec-kit/opsboard/internal/domain"
	"github.com/spec-kit/opsboard/internal/events"
	"github.com/spec-kit/opsboard/internal/observability"
	"github.com/spec-kit/opsboard/internal/persistence"
	"github.com/spec-kit/opsboard/internal/repository"
	"github.com/spec-kit/opsboard/internal/service"
)

type stubEmployeeRepo struct {
	listFn   func(context.Context, repository.EmployeeFilter) ([]domain.Employee, error)
	createFn func(context.Context, repository.EmployeeCreate) (*domain.Employee, error)
	updateFn func(context.Context, int64, repository.EmployeeUpdate) (*domain.Employee, error)
	getFn    func(context.Context, int64) (*domain.Employee, error)
}

func (s stubEmployeeRepo) List(ctx context.Context, filter repository.EmployeeFilter) ([]domain.Employee, error) {
	if s.listFn == nil {
		return nil, nil
	}
	return s.listFn(ctx, filter)
}

func (s stubEmployeeRepo) Create(ctx context.Context, in repository.EmployeeCreate) (*domain.Employee, error) {
	if s.createFn == nil {
		return nil, errors.New("unexpected employee create")
	}
	return s.createFn(ctx, in)
}

func (s stubEmployeeRepo) Update(ctx context.Context, id int64, update repository.EmployeeUpdate) (*domain.Employee, error) {
	if s.updateFn == nil {
		return nil, errors.New("unexpected employee update")
	}
	return s.updateFn(ctx, id, update)
}

func (s stubEmployeeRepo) GetByID(ctx context.Context, id int64) (*domain.Employee, error) {
	if s.getFn == nil {
		return nil, pgx.ErrNoRows
	}
	return s.getFn(ctx, id)
}

type stubGroupRepo struct {
	listFn   func(context.Context) ([]domain.Group, error)
	createFn func(context.Context, repository.GroupCreate) (*domain.Group, error)
	getFn    func(context.Context, int64) (*domain.Group, error)
}

func (s stubGroupRepo) List(ctx context.Context) ([]domain.Group, error) {
	if s.listFn == nil {
		return nil, nil
	}
	return s.listFn(ctx)
}

func (s stubGroupRepo) Create(ctx context.Context, in repository.GroupCreate) (*domain.Group, error) {
	if s.createFn == nil {
		return nil, errors.New("unexpected group create")
	}
	return s.createFn(ctx, in)
}

func (s stubGroupRepo) GetByID(ctx context.Context, id int64) (*domain.Group, error) {
	if s.getFn == nil {
		return nil, pgx.ErrNoRows
	}
	return s.getFn(ctx, id)
}

type stubTaskRepo struct {
	listFn            func(context.Context, repository.TaskFilter) ([]domain.Task, error)
	createFn          func(context.Context, repository.TaskCreate) (*domain.Task, error)
	updateFn          func(context.Context, int64, repository.TaskUpdate) (*domain.Task, error)
	deleteFn          func(context.Context, int64) error
	assigneeInGroupFn func(context.Context, int64, int64) (bool, error)
}

func (s stubTaskRepo) List(ctx context.Context, filter repository.TaskFilter) ([]domain.Task, error) {
	if s.listFn == nil {
		return nil, nil
	}
	return s.listFn(ctx, filter)
}

func (s stubTaskRepo) Create(ctx context.Context, in repository.TaskCreate) (*domain.Task, error) {
	if s.createFn == nil {
		return nil, errors.New("unexpected task create")
	}
	return s.createFn(ctx, in)
}

func (s stubTaskRepo) Update(ctx context.Context, id int64, update repository.TaskUpdate) (*domain.Task, error) {
	if s.updateFn == nil {
		return nil, errors.New("unexpected task update")
	}
	return s.updateFn(ctx, id, update)
}

func (s stubTaskRepo) Delete(ctx context.Context, id int64) error {
	if s.deleteFn == nil {
		return errors.New("unexpected task delete")
	}
	return s.deleteFn(ctx, id)
}

func (s stubTaskRepo) AssigneeInGroup(ctx context.Context, taskID, groupID int64) (bool, error) {
	if s.assigneeInGroupFn == nil {
		return false, nil
	}
	return s.assigneeInGroupFn(ctx, taskID, groupID)
}

type stubUserRepo struct {
	getByCredentialsFn func(context.Context, string, string) (*domain.User, error)
	touchFn            func(context.Context, int64) error
}

func (s stubUserRepo) GetByCredentials(ctx context.Context, username, passwordHash string) (*domain.User, error) {
	if s.getByCredentialsFn == nil {
		return nil, pgx.ErrNoRows
	}
	return s.getByCredentialsFn(ctx, username, passwordHash)
}

func (s stubUserRepo) TouchLastLogin(ctx context.Context, id int64) error {
	if s.touchFn == nil {
		return nil
	}
	return s.touchFn(ctx, id)
}

type testRepos struct {
	employees stubEmployeeRepo
	groups    stubGroupRepo
	tasks     stubTaskRepo
	users     stubUserRepo
}

func newTestApp(repos testRepos) *fiber.App {
	logger := zap.NewNop()
	metrics := observability.NewMetrics()
	dispatcher := events.NewInMemoryDispatcher()

	directory := service.NewDirectoryService(service.DirectoryDependencies{
		EmployeeRepo: repos.employees,
		GroupRepo:    repos.groups,
		Dispatcher:   dispatcher,
		Logger:       logger,
	})
	taskService := service.NewTaskService(service.TaskDependencies{
		TaskRepo:   repos.tasks,
		Guard:      auth.NewTaskGuard(repos.tasks),
		Dispatcher: dispatcher,
		Logger:     logger,
	})
	authService := service.NewAuthService(service.AuthDependencies{
		UserRepo:   repos.users,
		Sessions:   auth.NewSessionStore(nil, 0),
		TokenBytes: 32,
		Dispatcher: dispatcher,
		Logger:     logger,
	})

	app := fiber.New()
	RegisterMiddlewares(app, logger, metrics, 0)
	RegisterRoutes(app, RouteConfig{
		Health:    handlers.NewHealthHandler("opsboard-test", "test", &persistence.Postgres{}, &persistence.Redis{}),
		Employees: handlers.NewEmployeesHandler(directory),
		Groups:    handlers.NewGroupsHandler(directory),
		Tasks:     handlers.NewTasksHandler(taskService),
		Auth:      handlers.NewAuthHandler(authService),
	})
	return app
}

func doRequest(t *testing.T, app *fiber.App, method, target, body string, headers map[string]string) (*stdhttp.Response, string) {
	t.Helper()

	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, target, reader)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	for key, value := range headers {
		req.Header.Set(key, value)
	}

	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("test request: %v", err)
	}
	data, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("read body: %v", err)
	}
	return resp, string(data)
}

func TestPreflightShortCircuits(t *testing.T) {
	app := newTestApp(testRepos{})

	resp, body := doRequest(t, app, "OPTIONS", "/?resource=tasks", "", nil)
	if resp.StatusCode != stdhttp.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}
	if body != "" {
		t.Fatalf("expected empty pre-flight body, got %q", body)
	}
	if resp.Header.Get("Access-Control-Allow-Origin") != "*" {
		t.Fatal("missing permissive CORS origin")
	}
	if resp.Header.Get("Access-Control-Max-Age") != "86400" {
		t.Fatal("missing pre-flight cache lifetime")
	}
}

func TestUnmatchedResourceMethodReturns405(t *testing.T) {
	app := newTestApp(testRepos{})

	cases := []struct {
		method string
		target string
	}{
		{"GET", "/?resource=widgets"},
		{"DELETE", "/?resource=groups"},
		{"PUT", "/3?resource=groups"},
		{"DELETE", "/3?resource=employees"},
		{"GET", "/?resource=auth"},
	}
	for _, tc := range cases {
		resp, body := doRequest(t, app, tc.method, tc.target, "", nil)
		if resp.StatusCode != stdhttp.StatusMethodNotAllowed {
			t.Fatalf("%s %s: expected 405, got %d", tc.method, tc.target, resp.StatusCode)
		}
		if !strings.Contains(body, `"error":"Method not allowed"`) {
			t.Fatalf("%s %s: unexpected body %s", tc.method, tc.target, body)
		}
	}
}

func TestResourceDefaultsToEmployees(t *testing.T) {
	app := newTestApp(testRepos{})

	resp, body := doRequest(t, app, "GET", "/", "", nil)
	if resp.StatusCode != stdhttp.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}
	if !strings.Contains(body, `"employees":[]`) {
		t.Fatalf("unexpected body: %s", body)
	}
}

func TestListEmployeesGroupFilter(t *testing.T) {
	var gotFilter repository.EmployeeFilter
	app := newTestApp(testRepos{
		employees: stubEmployeeRepo{
			listFn: func(_ context.Context, filter repository.EmployeeFilter) ([]domain.Employee, error) {
				gotFilter = filter
				return nil, nil
			},
		},
	})

	doRequest(t, app, "GET", "/?resource=employees&group_id=12", "", nil)
	if gotFilter.GroupID == nil || *gotFilter.GroupID != 12 {
		t.Fatalf("expected group filter 12, got %v", gotFilter.GroupID)
	}

	doRequest(t, app, "GET", "/?resource=employees&group_id=all", "", nil)
	if gotFilter.GroupID != nil {
		t.Fatal("sentinel 'all' must disable the filter")
	}
}

func TestCreateGroupRequiresName(t *testing.T) {
	created := false
	app := newTestApp(testRepos{
		groups: stubGroupRepo{
			createFn: func(context.Context, repository.GroupCreate) (*domain.Group, error) {
				created = true
				return nil, errors.New("should not be reached")
			},
		},
	})

	resp, body := doRequest(t, app, "POST", "/?resource=groups", `{"description":"no name"}`, nil)
	if resp.StatusCode != stdhttp.StatusBadRequest {
		t.Fatalf("expected 400, got %d", resp.StatusCode)
	}
	if !strings.Contains(body, "Group name is required") {
		t.Fatalf("unexpected body: %s", body)
	}
	if created {
		t.Fatal("no row must be persisted on validation failure")
	}
}

func TestCreateGroupReportsZeroMembers(t *testing.T) {
	created := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	app := newTestApp(testRepos{
		groups: stubGroupRepo{
			createFn: func(_ context.Context, in repository.GroupCreate) (*domain.Group, error) {
				if in.Name != "Eng" {
					t.Fatalf("unexpected group name: %s", in.Name)
				}
				return &domain.Group{ID: 1, Name: in.Name, Description: in.Description, CreatedAt: &created}, nil
			},
		},
	})

	resp, body := doRequest(t, app, "POST", "/?resource=groups", `{"name":"Eng"}`, nil)
	if resp.StatusCode != stdhttp.StatusCreated {
		t.Fatalf("expected 201, got %d", resp.StatusCode)
	}
	if !strings.Contains(body, `"employeeCount":0`) {
		t.Fatalf("fresh group must report zero members: %s", body)
	}
}

func TestCreateEmployeeRequiresFullName(t *testing.T) {
	app := newTestApp(testRepos{})

	resp, body := doRequest(t, app, "POST", "/?resource=employees", `{"email":"a@b.c"}`, nil)
	if resp.StatusCode != stdhttp.StatusBadRequest {
		t.Fatalf("expected 400, got %d", resp.StatusCode)
	}
	if !strings.Contains(body, "Full name is required") {
		t.Fatalf("unexpected body: %s", body)
	}
}

func TestCreateEmployeeResolvesGroupName(t *testing.T) {
	groupID := int64(7)
	app := newTestApp(testRepos{
		employees: stubEmployeeRepo{
			createFn: func(_ context.Context, in repository.EmployeeCreate) (*domain.Employee, error) {
				if in.GroupID == nil || *in.GroupID != 7 {
					t.Fatalf("expected parsed group id 7, got %v", in.GroupID)
				}
				return &domain.Employee{ID: 4, FullName: in.FullName, GroupID: &groupID}, nil
			},
		},
		groups: stubGroupRepo{
			getFn: func(_ context.Context, id int64) (*domain.Group, error) {
				if id != 7 {
					t.Fatalf("unexpected group lookup: %d", id)
				}
				return &domain.Group{ID: 7, Name: "Eng"}, nil
			},
		},
	})

	resp, body := doRequest(t, app, "POST", "/?resource=employees", `{"fullName":"Ann","groupId":"7"}`, nil)
	if resp.StatusCode != stdhttp.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", resp.StatusCode, body)
	}
	if !strings.Contains(body, `"groupName":"Eng"`) || !strings.Contains(body, `"groupId":"7"`) {
		t.Fatalf("group reference not resolved: %s", body)
	}
}

func TestUpdateEmployeeRequiresID(t *testing.T) {
	app := newTestApp(testRepos{})

	resp, body := doRequest(t, app, "PUT", "/?resource=employees", `{"position":"Lead"}`, nil)
	if resp.StatusCode != stdhttp.StatusBadRequest {
		t.Fatalf("expected 400, got %d", resp.StatusCode)
	}
	if !strings.Contains(body, "Employee ID is required") {
		t.Fatalf("unexpected body: %s", body)
	}
}

func TestUpdateEmployeeOnlyTouchesPresentFields(t *testing.T) {
	app := newTestApp(testRepos{
		employees: stubEmployeeRepo{
			updateFn: func(_ context.Context, id int64, update repository.EmployeeUpdate) (*domain.Employee, error) {
				if id != 5 {
					t.Fatalf("unexpected id: %d", id)
				}
				if update.FullName.Present || update.Email.Present {
					t.Fatalf("absent keys must not be touched: %+v", update)
				}
				if !update.Position.Present || update.Position.Value == nil || *update.Position.Value != "Lead" {
					t.Fatalf("position not applied: %+v", update.Position)
				}
				if !update.GroupID.Present || update.GroupID.Value != nil {
					t.Fatalf("explicit null group must clear the reference: %+v", update.GroupID)
				}
				position := "Lead"
				return &domain.Employee{ID: id, FullName: "Ann", Position: &position}, nil
			},
		},
	})

	resp, body := doRequest(t, app, "PUT", "/5?resource=employees", `{"position":"Lead","groupId":null}`, nil)
	if resp.StatusCode != stdhttp.StatusOK {
		t.Fatalf("expected 200, got %d: %s", resp.StatusCode, body)
	}
	if !strings.Contains(body, `"groupId":null`) {
		t.Fatalf("cleared group must render as explicit null: %s", body)
	}
}

func TestUpdateEmployeeNotFound(t *testing.T) {
	app := newTestApp(testRepos{
		employees: stubEmployeeRepo{
			updateFn: func(context.Context, int64, repository.EmployeeUpdate) (*domain.Employee, error) {
				return nil, pgx.ErrNoRows
			},
		},
	})

	resp, body := doRequest(t, app, "PUT", "/99?resource=employees", `{"position":"Lead"}`, nil)
	if resp.StatusCode != stdhttp.StatusNotFound {
		t.Fatalf("expected 404, got %d", resp.StatusCode)
	}
	if !strings.Contains(body, "Employee not found") {
		t.Fatalf("unexpected body: %s", body)
	}
}

func TestCreateTaskValidation(t *testing.T) {
	created := false
	app := newTestApp(testRepos{
		tasks: stubTaskRepo{
			createFn: func(context.Context, repository.TaskCreate) (*domain.Task, error) {
				created = true
				return nil, errors.New("should not be reached")
			},
		},
	})

	bodies := []string{
		`{}`,
		`{"title":"Fix bug"}`,
		`{"title":"Fix bug","assignee":"Ann"}`,
		`{"assignee":"Ann","dueDate":"2025-01-01"}`,
		`{"title":"","assignee":"Ann","dueDate":"2025-01-01"}`,
	}
	for _, reqBody := range bodies {
		resp, body := doRequest(t, app, "POST", "/?resource=tasks", reqBody, nil)
		if resp.StatusCode != stdhttp.StatusBadRequest {
			t.Fatalf("body %s: expected 400, got %d", reqBody, resp.StatusCode)
		}
		if !strings.Contains(body, "Missing required fields: title, assignee, dueDate") {
			t.Fatalf("body %s: unexpected response %s", reqBody, body)
		}
	}
	if created {
		t.Fatal("no row must be persisted on validation failure")
	}
}

func TestCreateTaskAppliesDefaults(t *testing.T) {
	app := newTestApp(testRepos{
		tasks: stubTaskRepo{
			createFn: func(_ context.Context, in repository.TaskCreate) (*domain.Task, error) {
				if in.Status != "pending" || in.Priority != "medium" {
					t.Fatalf("defaults not applied: %+v", in)
				}
				if in.Attachments != "[]" {
					t.Fatalf("attachments must default to empty sequence, got %q", in.Attachments)
				}
				due := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
				return &domain.Task{
					ID:       10,
					Title:    in.Title,
					Status:   in.Status,
					Priority: in.Priority,
					Assignee: in.Assignee,
					DueDate:  &due,
				}, nil
			},
		},
	})

	resp, body := doRequest(t, app, "POST", "/?resource=tasks",
		`{"title":"Fix bug","assignee":"Ann","dueDate":"2025-01-01"}`, nil)
	if resp.StatusCode != stdhttp.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", resp.StatusCode, body)
	}
	if !strings.Contains(body, `"status":"pending"`) || !strings.Contains(body, `"priority":"medium"`) {
		t.Fatalf("defaults missing from response: %s", body)
	}
	if !strings.Contains(body, `"id":"10"`) {
		t.Fatalf("id must render as a string: %s", body)
	}
}

func TestUpdateTaskRequiresID(t *testing.T) {
	app := newTestApp(testRepos{})

	resp, body := doRequest(t, app, "PUT", "/?resource=tasks", `{"status":"done"}`,
		map[string]string{"X-User-Role": "admin"})
	if resp.StatusCode != stdhttp.StatusBadRequest {
		t.Fatalf("expected 400, got %d", resp.StatusCode)
	}
	if !strings.Contains(body, "Task ID is required") {
		t.Fatalf("unexpected body: %s", body)
	}
}

func TestUpdateTaskEmployeeRoleAlwaysDenied(t *testing.T) {
	mutated := false
	app := newTestApp(testRepos{
		tasks: stubTaskRepo{
			updateFn: func(context.Context, int64, repository.TaskUpdate) (*domain.Task, error) {
				mutated = true
				return nil, errors.New("should not be reached")
			},
		},
	})

	resp, body := doRequest(t, app, "PUT", "/9?resource=tasks", `{"status":"done"}`,
		map[string]string{"X-User-Role": "employee", "X-User-Group-Id": "3"})
	if resp.StatusCode != stdhttp.StatusForbidden {
		t.Fatalf("expected 403, got %d", resp.StatusCode)
	}
	if !strings.Contains(body, "Access denied: employees cannot edit tasks") {
		t.Fatalf("unexpected body: %s", body)
	}
	if mutated {
		t.Fatal("denial must prevent the mutation")
	}
}

func TestDeleteTaskEmployeeRoleAlwaysDenied(t *testing.T) {
	app := newTestApp(testRepos{})

	resp, body := doRequest(t, app, "DELETE", "/9?resource=tasks", "",
		map[string]string{"X-User-Role": "employee"})
	if resp.StatusCode != stdhttp.StatusForbidden {
		t.Fatalf("expected 403, got %d", resp.StatusCode)
	}
	if !strings.Contains(body, "Access denied: employees cannot delete tasks") {
		t.Fatalf("unexpected body: %s", body)
	}
}

func TestUpdateTaskGroupHeadScoping(t *testing.T) {
	var lookups [][2]int64
	inGroup := false
	app := newTestApp(testRepos{
		tasks: stubTaskRepo{
			assigneeInGroupFn: func(_ context.Context, taskID, groupID int64) (bool, error) {
				lookups = append(lookups, [2]int64{taskID, groupID})
				return inGroup, nil
			},
			updateFn: func(_ context.Context, id int64, update repository.TaskUpdate) (*domain.Task, error) {
				if !update.Status.Present || update.Status.Value != "done" {
					t.Fatalf("status not applied: %+v", update.Status)
				}
				if update.Priority.Present || update.Title.Present {
					t.Fatalf("absent keys must not be touched: %+v", update)
				}
				return &domain.Task{ID: id, Title: "Fix bug", Status: "done", Priority: "high", Assignee: "Ann"}, nil
			},
		},
	})

	headers := map[string]string{"X-User-Role": "group_head", "X-User-Group-Id": "3"}

	resp, body := doRequest(t, app, "PUT", "/9?resource=tasks", `{"status":"done"}`, headers)
	if resp.StatusCode != stdhttp.StatusForbidden {
		t.Fatalf("outside group: expected 403, got %d", resp.StatusCode)
	}
	if !strings.Contains(body, "Access denied: task not in your group") {
		t.Fatalf("unexpected body: %s", body)
	}

	inGroup = true
	resp, body = doRequest(t, app, "PUT", "/9?resource=tasks", `{"status":"done"}`, headers)
	if resp.StatusCode != stdhttp.StatusOK {
		t.Fatalf("inside group: expected 200, got %d: %s", resp.StatusCode, body)
	}
	if !strings.Contains(body, `"status":"done"`) || !strings.Contains(body, `"priority":"high"`) {
		t.Fatalf("partial update must leave other fields intact: %s", body)
	}

	for _, lookup := range lookups {
		if lookup != [2]int64{9, 3} {
			t.Fatalf("unexpected authorization lookup: %v", lookup)
		}
	}
}

func TestUpdateTaskUnrecognizedRoleDenied(t *testing.T) {
	app := newTestApp(testRepos{})

	resp, body := doRequest(t, app, "PUT", "/9?resource=tasks", `{"status":"done"}`,
		map[string]string{"X-User-Role": "manager"})
	if resp.StatusCode != stdhttp.StatusForbidden {
		t.Fatalf("expected 403, got %d", resp.StatusCode)
	}
	if !strings.Contains(body, "Access denied: role not permitted to modify tasks") {
		t.Fatalf("unexpected body: %s", body)
	}
}

func TestDeleteTaskSuccess(t *testing.T) {
	deleted := int64(0)
	app := newTestApp(testRepos{
		tasks: stubTaskRepo{
			deleteFn: func(_ context.Context, id int64) error {
				deleted = id
				return nil
			},
		},
	})

	resp, body := doRequest(t, app, "DELETE", "/9?resource=tasks", "",
		map[string]string{"X-User-Role": "admin"})
	if resp.StatusCode != stdhttp.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}
	if !strings.Contains(body, `"message":"Task deleted successfully"`) {
		t.Fatalf("unexpected body: %s", body)
	}
	if deleted != 9 {
		t.Fatalf("expected task 9 deleted, got %d", deleted)
	}
}

func TestDeleteTaskNotFound(t *testing.T) {
	app := newTestApp(testRepos{
		tasks: stubTaskRepo{
			deleteFn: func(context.Context, int64) error {
				return pgx.ErrNoRows
			},
		},
	})

	resp, body := doRequest(t, app, "DELETE", "/99?resource=tasks", "",
		map[string]string{"X-User-Role": "admin"})
	if resp.StatusCode != stdhttp.StatusNotFound {
		t.Fatalf("expected 404, got %d", resp.StatusCode)
	}
	if !strings.Contains(body, "Task not found") {
		t.Fatalf("unexpected body: %s", body)
	}
}

func TestListTasksFilterSentinels(t *testing.T) {
	var gotFilter repository.TaskFilter
	app := newTestApp(testRepos{
		tasks: stubTaskRepo{
			listFn: func(_ context.Context, filter repository.TaskFilter) ([]domain.Task, error) {
				gotFilter = filter
				return nil, nil
			},
		},
	})

	doRequest(t, app, "GET", "/?resource=tasks&status=all&priority=high", "", nil)
	if gotFilter.Status != nil {
		t.Fatal("sentinel 'all' must disable the status filter")
	}
	if gotFilter.Priority == nil || *gotFilter.Priority != "high" {
		t.Fatalf("priority filter not applied: %v", gotFilter.Priority)
	}
}

func TestLoginValidation(t *testing.T) {
	app := newTestApp(testRepos{})

	resp, body := doRequest(t, app, "POST", "/?resource=auth", `{"username":"ann"}`, nil)
	if resp.StatusCode != stdhttp.StatusBadRequest {
		t.Fatalf("expected 400, got %d", resp.StatusCode)
	}
	if !strings.Contains(body, "Username and password are required") {
		t.Fatalf("unexpected body: %s", body)
	}
}

func TestLoginFailuresAreIndistinguishable(t *testing.T) {
	app := newTestApp(testRepos{
		users: stubUserRepo{
			getByCredentialsFn: func(context.Context, string, string) (*domain.User, error) {
				return nil, pgx.ErrNoRows
			},
		},
	})

	respUnknown, bodyUnknown := doRequest(t, app, "POST", "/?resource=auth",
		`{"username":"ghost","password":"whatever"}`, nil)
	respWrong, bodyWrong := doRequest(t, app, "POST", "/?resource=auth",
		`{"username":"ann","password":"wrong"}`, nil)

	if respUnknown.StatusCode != stdhttp.StatusUnauthorized || respWrong.StatusCode != stdhttp.StatusUnauthorized {
		t.Fatalf("expected 401/401, got %d/%d", respUnknown.StatusCode, respWrong.StatusCode)
	}
	if bodyUnknown != bodyWrong {
		t.Fatalf("failure bodies must be identical: %s vs %s", bodyUnknown, bodyWrong)
	}
	if !strings.Contains(bodyUnknown, "Invalid username or password") {
		t.Fatalf("unexpected body: %s", bodyUnknown)
	}
}

func TestLoginSuccessIssuesSessionToken(t *testing.T) {
	touched := int64(0)
	app := newTestApp(testRepos{
		users: stubUserRepo{
			getByCredentialsFn: func(_ context.Context, username, passwordHash string) (*domain.User, error) {
				if username != "ann" {
					t.Fatalf("unexpected username: %s", username)
				}
				if passwordHash != auth.DigestPassword("secret") {
					t.Fatalf("expected deterministic digest lookup, got %s", passwordHash)
				}
				name := "Ann Smith"
				empID := int64(4)
				return &domain.User{
					ID:           2,
					Username:     username,
					FullName:     "Ann Smith",
					Role:         domain.RoleGroupHead,
					EmployeeID:   &empID,
					EmployeeName: &name,
				}, nil
			},
			touchFn: func(_ context.Context, id int64) error {
				touched = id
				return nil
			},
		},
	})

	resp, body := doRequest(t, app, "POST", "/?resource=auth",
		`{"username":"ann","password":"secret"}`, nil)
	if resp.StatusCode != stdhttp.StatusOK {
		t.Fatalf("expected 200, got %d: %s", resp.StatusCode, body)
	}
	if touched != 2 {
		t.Fatalf("last login not touched for user 2, got %d", touched)
	}

	var payload struct {
		User struct {
			SessionToken string `json:"sessionToken"`
			EmployeeName string `json:"employeeName"`
			Role         string `json:"role"`
		} `json:"user"`
	}
	if err := json.Unmarshal([]byte(body), &payload); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if payload.User.SessionToken == "" {
		t.Fatal("expected a fresh session token")
	}
	if payload.User.EmployeeName != "Ann Smith" || payload.User.Role != "group_head" {
		t.Fatalf("profile not enriched: %s", body)
	}
}

func TestInternalFailureLeaksCause(t *testing.T) {
	app := newTestApp(testRepos{
		employees: stubEmployeeRepo{
			listFn: func(context.Context, repository.EmployeeFilter) ([]domain.Employee, error) {
				return nil, errors.New("connection refused")
			},
		},
	})

	resp, body := doRequest(t, app, "GET", "/?resource=employees", "", nil)
	if resp.StatusCode != stdhttp.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", resp.StatusCode)
	}
	if !strings.Contains(body, "Internal server error: connection refused") {
		t.Fatalf("unexpected body: %s", body)
	}
}

func TestHealthLive(t *testing.T) {
	app := newTestApp(testRepos{})

	resp, body := doRequest(t, app, "GET", "/health/live", "", nil)
	if resp.StatusCode != stdhttp.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}
	if !strings.Contains(body, `"status":"alive"`) {
		t.Fatalf("unexpected body: %s", body)
	}
}
