package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/opsboard/internal/domain"
)

// EmployeeFilter captures listing parameters.
type EmployeeFilter struct {
	GroupID *int64
}

// EmployeeCreate carries the fields of a new employee row.
type EmployeeCreate struct {
	FullName string
	Email    *string
	Position *string
	GroupID  *int64
}

// EmployeeUpdate describes a partial update. Only fields whose key was
// present in the request are applied; a present nil on a nullable field
// clears the column. Employee rows carry no update timestamp.
type EmployeeUpdate struct {
	FullName domain.Optional[string]
	Email    domain.Optional[*string]
	Position domain.Optional[*string]
	GroupID  domain.Optional[*int64]
}

// EmployeeRepository defines persistence access for employees.
type EmployeeRepository interface {
	List(ctx context.Context, filter EmployeeFilter) ([]domain.Employee, error)
	Create(ctx context.Context, in EmployeeCreate) (*domain.Employee, error)
	Update(ctx context.Context, id int64, update EmployeeUpdate) (*domain.Employee, error)
	GetByID(ctx context.Context, id int64) (*domain.Employee, error)
}

type employeeRepository struct {
	pool *pgxpool.Pool
}

// NewEmployeeRepository returns a Postgres-backed implementation.
func NewEmployeeRepository(pool *pgxpool.Pool) EmployeeRepository {
	return &employeeRepository{pool: pool}
}

func (r *employeeRepository) List(ctx context.Context, filter EmployeeFilter) ([]domain.Employee, error) {
	query := `
        SELECT e.id, e.full_name, e.email, e.position, e.group_id, e.created_at, g.name AS group_name
        FROM employees e
        LEFT JOIN employee_groups g ON e.group_id = g.id`
	args := []any{}

	if filter.GroupID != nil {
		args = append(args, *filter.GroupID)
		query += fmt.Sprintf(" WHERE e.group_id = $%d", len(args))
	}
	query += " ORDER BY e.full_name ASC"

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.Employee
	for rows.Next() {
		var emp domain.Employee
		if err := rows.Scan(
			&emp.ID,
			&emp.FullName,
			&emp.Email,
			&emp.Position,
			&emp.GroupID,
			&emp.CreatedAt,
			&emp.GroupName,
		); err != nil {
			return nil, err
		}
		result = append(result, emp)
	}
	return result, rows.Err()
}

func (r *employeeRepository) Create(ctx context.Context, in EmployeeCreate) (*domain.Employee, error) {
	const query = `
        INSERT INTO employees (full_name, email, position, group_id)
        VALUES ($1, $2, $3, $4)
        RETURNING id, full_name, email, position, group_id, created_at`

	return r.scanOne(r.pool.QueryRow(ctx, query, in.FullName, in.Email, in.Position, in.GroupID))
}

func (r *employeeRepository) Update(ctx context.Context, id int64, update EmployeeUpdate) (*domain.Employee, error) {
	var b UpdateBuilder
	if update.FullName.Present {
		b.Set("full_name", update.FullName.Value)
	}
	if update.Email.Present {
		b.Set("email", update.Email.Value)
	}
	if update.Position.Present {
		b.Set("position", update.Position.Value)
	}
	if update.GroupID.Present {
		b.Set("group_id", update.GroupID.Value)
	}

	// An update with no recognized keys is a valid no-op write.
	if b.Empty() {
		return r.GetByID(ctx, id)
	}

	setClause, idPlaceholder, args := b.Clause(id)
	query := fmt.Sprintf(`
        UPDATE employees SET %s WHERE id = %s
        RETURNING id, full_name, email, position, group_id, created_at`, setClause, idPlaceholder)

	return r.scanOne(r.pool.QueryRow(ctx, query, args...))
}

func (r *employeeRepository) GetByID(ctx context.Context, id int64) (*domain.Employee, error) {
	const query = `
        SELECT id, full_name, email, position, group_id, created_at
        FROM employees WHERE id = $1`

	return r.scanOne(r.pool.QueryRow(ctx, query, id))
}

type rowScanner interface {
	Scan(dest ...any) error
}

func (r *employeeRepository) scanOne(row rowScanner) (*domain.Employee, error) {
	var emp domain.Employee
	if err := row.Scan(
		&emp.ID,
		&emp.FullName,
		&emp.Email,
		&emp.Position,
		&emp.GroupID,
		&emp.CreatedAt,
	); err != nil {
		return nil, err
	}
	return &emp, nil
}
