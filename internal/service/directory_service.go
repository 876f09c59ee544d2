package service

import (
	"context"
	"errors"
	"strconv"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"github.com/spec-kit/opsboard/internal/domain"
	"github.com/spec-kit/opsboard/internal/events"
	"github.com/spec-kit/opsboard/internal/repository"
	"github.com/spec-kit/opsboard/pkg/util"
)

// CreateEmployeeInput carries a new employee. GroupID is the raw wire value;
// empty means no group.
type CreateEmployeeInput struct {
	FullName string
	Email    *string
	Position *string
	GroupID  string
}

// UpdateEmployeeInput carries a partial employee update in wire form.
type UpdateEmployeeInput struct {
	FullName domain.Optional[string]
	Email    domain.Optional[*string]
	Position domain.Optional[*string]
	GroupID  domain.Optional[*string]
}

// DirectoryService coordinates employee and group operations.
type DirectoryService struct {
	employees  repository.EmployeeRepository
	groups     repository.GroupRepository
	dispatcher events.Dispatcher
	logger     *zap.Logger
}

// DirectoryDependencies encapsulates repo requirements for the directory service.
type DirectoryDependencies struct {
	EmployeeRepo repository.EmployeeRepository
	GroupRepo    repository.GroupRepository
	Dispatcher   events.Dispatcher
	Logger       *zap.Logger
}

// NewDirectoryService builds the service.
func NewDirectoryService(deps DirectoryDependencies) *DirectoryService {
	return &DirectoryService{
		employees:  deps.EmployeeRepo,
		groups:     deps.GroupRepo,
		dispatcher: deps.Dispatcher,
		logger:     deps.Logger,
	}
}

// ListEmployees returns all employees sorted by full name, optionally
// restricted to one group. The sentinel "all" (or absence) means no filter.
func (s *DirectoryService) ListEmployees(ctx context.Context, groupFilter string) ([]domain.Employee, error) {
	filter := repository.EmployeeFilter{}
	if groupFilter != "" && groupFilter != "all" {
		groupID, err := strconv.ParseInt(groupFilter, 10, 64)
		if err != nil {
			return nil, util.NewValidationError("Invalid group ID")
		}
		filter.GroupID = &groupID
	}
	employees, err := s.employees.List(ctx, filter)
	if err != nil {
		return nil, util.MapError(err)
	}
	return employees, nil
}

// CreateEmployee inserts an employee and resolves the denormalized group name
// with a secondary read, since the write returns only the group id.
func (s *DirectoryService) CreateEmployee(ctx context.Context, in CreateEmployeeInput) (*domain.Employee, error) {
	groupID, err := parseOptionalID(in.GroupID)
	if err != nil {
		return nil, util.NewValidationError("Invalid group ID")
	}

	emp, err := s.employees.Create(ctx, repository.EmployeeCreate{
		FullName: in.FullName,
		Email:    in.Email,
		Position: in.Position,
		GroupID:  groupID,
	})
	if err != nil {
		return nil, util.MapError(err)
	}

	if err := s.resolveGroupName(ctx, emp); err != nil {
		return nil, err
	}

	_ = s.dispatcher.Publish(ctx, events.New(events.EventEmployeeCreated, events.EmployeeCreatedPayload{
		EmployeeID: emp.ID,
		FullName:   emp.FullName,
		GroupID:    emp.GroupID,
	}))
	return emp, nil
}

// UpdateEmployee applies a partial update. Employee rows carry no
// updated_at stamp; only the fields present in the input change.
func (s *DirectoryService) UpdateEmployee(ctx context.Context, id int64, in UpdateEmployeeInput) (*domain.Employee, error) {
	update := repository.EmployeeUpdate{
		FullName: in.FullName,
		Email:    in.Email,
		Position: in.Position,
	}
	if in.GroupID.Present {
		var groupID *int64
		if in.GroupID.Value != nil {
			parsed, err := parseOptionalID(*in.GroupID.Value)
			if err != nil {
				return nil, util.NewValidationError("Invalid group ID")
			}
			groupID = parsed
		}
		update.GroupID = domain.Some(groupID)
	}

	emp, err := s.employees.Update(ctx, id, update)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, util.NewNotFound("Employee not found")
		}
		return nil, util.MapError(err)
	}

	if err := s.resolveGroupName(ctx, emp); err != nil {
		return nil, err
	}
	return emp, nil
}

// ListGroups returns all groups with live member counts, sorted by name.
func (s *DirectoryService) ListGroups(ctx context.Context) ([]domain.Group, error) {
	groups, err := s.groups.List(ctx)
	if err != nil {
		return nil, util.MapError(err)
	}
	return groups, nil
}

// CreateGroup inserts a group. A fresh group always reports zero members.
func (s *DirectoryService) CreateGroup(ctx context.Context, name, description string) (*domain.Group, error) {
	group, err := s.groups.Create(ctx, repository.GroupCreate{Name: name, Description: description})
	if err != nil {
		return nil, util.MapError(err)
	}

	_ = s.dispatcher.Publish(ctx, events.New(events.EventGroupCreated, events.GroupCreatedPayload{
		GroupID: group.ID,
		Name:    group.Name,
	}))
	return group, nil
}

func (s *DirectoryService) resolveGroupName(ctx context.Context, emp *domain.Employee) error {
	if emp.GroupID == nil {
		return nil
	}
	group, err := s.groups.GetByID(ctx, *emp.GroupID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			// Weak reference; a dangling group id renders as a null name.
			return nil
		}
		return util.MapError(err)
	}
	emp.GroupName = &group.Name
	return nil
}

func parseOptionalID(raw string) (*int64, error) {
	if raw == "" {
		return nil, nil
	}
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return nil, err
	}
	return &id, nil
}
