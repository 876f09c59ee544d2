package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/opsboard/internal/domain"
)

// GroupCreate carries the fields of a new group row.
type GroupCreate struct {
	Name        string
	Description string
}

// GroupRepository defines persistence access for employee groups.
type GroupRepository interface {
	List(ctx context.Context) ([]domain.Group, error)
	Create(ctx context.Context, in GroupCreate) (*domain.Group, error)
	GetByID(ctx context.Context, id int64) (*domain.Group, error)
}

type groupRepository struct {
	pool *pgxpool.Pool
}

// NewGroupRepository returns a Postgres-backed implementation.
func NewGroupRepository(pool *pgxpool.Pool) GroupRepository {
	return &groupRepository{pool: pool}
}

// List returns all groups with a live-computed member count.
func (r *groupRepository) List(ctx context.Context) ([]domain.Group, error) {
	const query = `
        SELECT g.id, g.name, g.description, g.created_at, COUNT(e.id) AS employee_count
        FROM employee_groups g
        LEFT JOIN employees e ON e.group_id = g.id
        GROUP BY g.id, g.name, g.description, g.created_at
        ORDER BY g.name ASC`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.Group
	for rows.Next() {
		var group domain.Group
		if err := rows.Scan(
			&group.ID,
			&group.Name,
			&group.Description,
			&group.CreatedAt,
			&group.EmployeeCount,
		); err != nil {
			return nil, err
		}
		result = append(result, group)
	}
	return result, rows.Err()
}

func (r *groupRepository) Create(ctx context.Context, in GroupCreate) (*domain.Group, error) {
	const query = `
        INSERT INTO employee_groups (name, description)
        VALUES ($1, $2)
        RETURNING id, name, description, created_at`

	var group domain.Group
	if err := r.pool.QueryRow(ctx, query, in.Name, in.Description).Scan(
		&group.ID,
		&group.Name,
		&group.Description,
		&group.CreatedAt,
	); err != nil {
		return nil, err
	}
	return &group, nil
}

func (r *groupRepository) GetByID(ctx context.Context, id int64) (*domain.Group, error) {
	const query = `
        SELECT id, name, description, created_at
        FROM employee_groups WHERE id = $1`

	var group domain.Group
	if err := r.pool.QueryRow(ctx, query, id).Scan(
		&group.ID,
		&group.Name,
		&group.Description,
		&group.CreatedAt,
	); err != nil {
		return nil, err
	}
	return &group, nil
}
