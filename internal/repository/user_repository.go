package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/opsboard/internal/domain"
)

// UserRepository defines persistence access for login accounts. Accounts are
// read-only here except for the last-login touch.
type UserRepository interface {
	GetByCredentials(ctx context.Context, username, passwordHash string) (*domain.User, error)
	TouchLastLogin(ctx context.Context, id int64) error
}

type userRepository struct {
	pool *pgxpool.Pool
}

// NewUserRepository returns a Postgres-backed implementation.
func NewUserRepository(pool *pgxpool.Pool) UserRepository {
	return &userRepository{pool: pool}
}

// GetByCredentials looks up the (username, hash) pair and resolves the linked
// employee's name and position when present.
func (r *userRepository) GetByCredentials(ctx context.Context, username, passwordHash string) (*domain.User, error) {
	const query = `
        SELECT u.id, u.username, u.full_name, u.role, u.employee_id,
               e.full_name AS employee_name, e.position
        FROM users u
        LEFT JOIN employees e ON u.employee_id = e.id
        WHERE u.username = $1 AND u.password_hash = $2`

	var user domain.User
	if err := r.pool.QueryRow(ctx, query, username, passwordHash).Scan(
		&user.ID,
		&user.Username,
		&user.FullName,
		&user.Role,
		&user.EmployeeID,
		&user.EmployeeName,
		&user.Position,
	); err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *userRepository) TouchLastLogin(ctx context.Context, id int64) error {
	cmd, err := r.pool.Exec(ctx, "UPDATE users SET last_login = NOW() WHERE id = $1", id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}
