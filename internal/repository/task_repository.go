package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/opsboard/internal/domain"
)

// TaskFilter captures listing parameters. Nil means no filter.
type TaskFilter struct {
	Status   *string
	Priority *string
}

// TaskCreate carries the fields of a new task row. DueDate and Attachments
// are passed in their wire form and cast by the database.
type TaskCreate struct {
	Title       string
	Description string
	Status      string
	Priority    string
	Assignee    string
	DueDate     string
	Attachments string
}

// TaskUpdate describes a partial update. Only fields whose key was present in
// the request are applied. The updated_at stamp is always added for tasks.
type TaskUpdate struct {
	Title       domain.Optional[string]
	Description domain.Optional[string]
	Status      domain.Optional[string]
	Priority    domain.Optional[string]
	Assignee    domain.Optional[string]
	DueDate     domain.Optional[*string]
	Attachments domain.Optional[string]
}

// TaskRepository encapsulates task persistence.
type TaskRepository interface {
	List(ctx context.Context, filter TaskFilter) ([]domain.Task, error)
	Create(ctx context.Context, in TaskCreate) (*domain.Task, error)
	Update(ctx context.Context, id int64, update TaskUpdate) (*domain.Task, error)
	Delete(ctx context.Context, id int64) error
	AssigneeInGroup(ctx context.Context, taskID, groupID int64) (bool, error)
}

type taskRepository struct {
	pool *pgxpool.Pool
}

// NewTaskRepository instantiates the repository.
func NewTaskRepository(pool *pgxpool.Pool) TaskRepository {
	return &taskRepository{pool: pool}
}

const taskColumns = "id, title, description, status, priority, assignee, due_date, created_at, updated_at, attachments"

func (r *taskRepository) List(ctx context.Context, filter TaskFilter) ([]domain.Task, error) {
	query := "SELECT " + taskColumns + " FROM tasks"
	clauses := ""
	args := []any{}

	if filter.Status != nil {
		args = append(args, *filter.Status)
		clauses = fmt.Sprintf(" WHERE status = $%d", len(args))
	}
	if filter.Priority != nil {
		args = append(args, *filter.Priority)
		if clauses == "" {
			clauses = fmt.Sprintf(" WHERE priority = $%d", len(args))
		} else {
			clauses += fmt.Sprintf(" AND priority = $%d", len(args))
		}
	}

	// Tasks without a due date sort last.
	query += clauses + " ORDER BY due_date ASC NULLS LAST"

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.Task
	for rows.Next() {
		var task domain.Task
		if err := scanTask(rows, &task); err != nil {
			return nil, err
		}
		result = append(result, task)
	}
	return result, rows.Err()
}

func (r *taskRepository) Create(ctx context.Context, in TaskCreate) (*domain.Task, error) {
	const query = `
        INSERT INTO tasks (title, description, status, priority, assignee, due_date, attachments)
        VALUES ($1, $2, $3, $4, $5, $6, $7)
        RETURNING ` + taskColumns

	var task domain.Task
	if err := scanTask(r.pool.QueryRow(ctx, query,
		in.Title,
		in.Description,
		in.Status,
		in.Priority,
		in.Assignee,
		in.DueDate,
		in.Attachments,
	), &task); err != nil {
		return nil, err
	}
	return &task, nil
}

func (r *taskRepository) Update(ctx context.Context, id int64, update TaskUpdate) (*domain.Task, error) {
	var b UpdateBuilder
	if update.Title.Present {
		b.Set("title", update.Title.Value)
	}
	if update.Description.Present {
		b.Set("description", update.Description.Value)
	}
	if update.Status.Present {
		b.Set("status", update.Status.Value)
	}
	if update.Priority.Present {
		b.Set("priority", update.Priority.Value)
	}
	if update.Assignee.Present {
		b.Set("assignee", update.Assignee.Value)
	}
	if update.DueDate.Present {
		b.Set("due_date", update.DueDate.Value)
	}
	if update.Attachments.Present {
		b.Set("attachments", update.Attachments.Value)
	}
	b.SetNow("updated_at")

	setClause, idPlaceholder, args := b.Clause(id)
	query := fmt.Sprintf("UPDATE tasks SET %s WHERE id = %s RETURNING %s", setClause, idPlaceholder, taskColumns)

	var task domain.Task
	if err := scanTask(r.pool.QueryRow(ctx, query, args...), &task); err != nil {
		return nil, err
	}
	return &task, nil
}

func (r *taskRepository) Delete(ctx context.Context, id int64) error {
	cmd, err := r.pool.Exec(ctx, "DELETE FROM tasks WHERE id = $1", id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

// AssigneeInGroup reports whether the task's assignee name matches an
// employee belonging to the given group. The join is exact string equality
// against employees.full_name; assignee is not a foreign key.
func (r *taskRepository) AssigneeInGroup(ctx context.Context, taskID, groupID int64) (bool, error) {
	const query = `
        SELECT t.id FROM tasks t
        JOIN employees e ON t.assignee = e.full_name
        WHERE t.id = $1 AND e.group_id = $2`

	var id int64
	if err := r.pool.QueryRow(ctx, query, taskID, groupID).Scan(&id); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

func scanTask(row rowScanner, task *domain.Task) error {
	return row.Scan(
		&task.ID,
		&task.Title,
		&task.Description,
		&task.Status,
		&task.Priority,
		&task.Assignee,
		&task.DueDate,
		&task.CreatedAt,
		&task.UpdatedAt,
		&task.Attachments,
	)
}
