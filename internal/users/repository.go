package users

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/jobboard/jobboard/internal/authz"
	"github.com/jobboard/jobboard/internal/platform/db"
	"github.com/jobboard/jobboard/internal/shared"
)

// RepositoryPort defines data access methods for users.
type RepositoryPort interface {
	GetUser(ctx context.Context, id int64) (*User, error)
	UpdateProfile(ctx context.Context, id int64, username, email string) (*User, error)
	ListUsers(ctx context.Context) ([]User, error)
}

// Repository provides PostgreSQL backed persistence.
type Repository struct {
	pool *pgxpool.Pool
}

// NewRepository constructs a repository.
func NewRepository(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

const userColumns = `id, username, email, role, is_active, created_at, updated_at`

func scanUser(row pgx.Row) (*User, error) {
	var user User
	var role string
	err := row.Scan(&user.ID, &user.Username, &user.Email, &role, &user.IsActive, &user.CreatedAt, &user.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	user.Role = authz.ParseRole(role)
	return &user, nil
}

// GetUser fetches a user by primary key.
func (r *Repository) GetUser(ctx context.Context, id int64) (*User, error) {
	row := r.pool.QueryRow(ctx, `SELECT `+userColumns+` FROM users WHERE id = $1`, id)
	return scanUser(row)
}

// UpdateProfile changes the mutable profile fields. Role is deliberately
// not part of the statement.
func (r *Repository) UpdateProfile(ctx context.Context, id int64, username, email string) (*User, error) {
	row := r.pool.QueryRow(ctx, `
		UPDATE users SET username = $2, email = $3, updated_at = NOW()
		WHERE id = $1
		RETURNING `+userColumns,
		id, username, email)
	user, err := scanUser(row)
	if err != nil {
		if db.IsUniqueViolation(err, "users_username_key") {
			return nil, fmt.Errorf("%w: username already taken", shared.ErrValidation)
		}
		return nil, err
	}
	return user, nil
}

// ListUsers returns all accounts ordered by id.
func (r *Repository) ListUsers(ctx context.Context) ([]User, error) {
	rows, err := r.pool.Query(ctx, `SELECT `+userColumns+` FROM users ORDER BY id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var result []User
	for rows.Next() {
		var user User
		var role string
		if err := rows.Scan(&user.ID, &user.Username, &user.Email, &role, &user.IsActive, &user.CreatedAt, &user.UpdatedAt); err != nil {
			return nil, err
		}
		user.Role = authz.ParseRole(role)
		result = append(result, user)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

var _ RepositoryPort = (*Repository)(nil)
