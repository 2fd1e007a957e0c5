package categories

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/jobboard/jobboard/internal/platform/db"
	"github.com/jobboard/jobboard/internal/shared"
)

// Repository defines persistence operations for categories.
type Repository interface {
	List(ctx context.Context) ([]Category, error)
	Get(ctx context.Context, id int64) (*Category, error)
	Create(ctx context.Context, category Category) (*Category, error)
	Update(ctx context.Context, id int64, category Category) (*Category, error)
	Delete(ctx context.Context, id int64) error
}

type repository struct {
	pool *pgxpool.Pool
}

// NewRepository constructs a PostgreSQL repository.
func NewRepository(pool *pgxpool.Pool) Repository {
	return &repository{pool: pool}
}

func (r *repository) List(ctx context.Context) ([]Category, error) {
	rows, err := r.pool.Query(ctx, `SELECT id, name, slug FROM categories ORDER BY name`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var result []Category
	for rows.Next() {
		var c Category
		if err := rows.Scan(&c.ID, &c.Name, &c.Slug); err != nil {
			return nil, err
		}
		result = append(result, c)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

func (r *repository) Get(ctx context.Context, id int64) (*Category, error) {
	var c Category
	err := r.pool.QueryRow(ctx, `SELECT id, name, slug FROM categories WHERE id = $1`, id).
		Scan(&c.ID, &c.Name, &c.Slug)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &c, nil
}

func (r *repository) Create(ctx context.Context, category Category) (*Category, error) {
	err := r.pool.QueryRow(ctx, `
		INSERT INTO categories (name, slug) VALUES ($1, $2) RETURNING id`,
		category.Name, category.Slug).Scan(&category.ID)
	if err != nil {
		if db.IsUniqueViolation(err, "") {
			return nil, fmt.Errorf("%w: category name or slug already exists", shared.ErrConflict)
		}
		return nil, err
	}
	return &category, nil
}

func (r *repository) Update(ctx context.Context, id int64, category Category) (*Category, error) {
	tag, err := r.pool.Exec(ctx, `
		UPDATE categories SET name = $2, slug = $3 WHERE id = $1`,
		id, category.Name, category.Slug)
	if err != nil {
		if db.IsUniqueViolation(err, "") {
			return nil, fmt.Errorf("%w: category name or slug already exists", shared.ErrConflict)
		}
		return nil, err
	}
	if tag.RowsAffected() == 0 {
		return nil, shared.ErrNotFound
	}
	category.ID = id
	return &category, nil
}

// Delete removes a category. The jobs FK is declared RESTRICT, so a
// referenced category refuses to go regardless of who asks.
func (r *repository) Delete(ctx context.Context, id int64) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM categories WHERE id = $1`, id)
	if err != nil {
		if db.IsForeignKeyViolation(err) {
			return fmt.Errorf("%w: category still has job listings", shared.ErrConflict)
		}
		return err
	}
	if tag.RowsAffected() == 0 {
		return shared.ErrNotFound
	}
	return nil
}
