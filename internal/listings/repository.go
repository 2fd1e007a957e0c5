package listings

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/jobboard/jobboard/internal/platform/db"
	"github.com/jobboard/jobboard/internal/shared"
)

// Repository defines persistence operations for job listings.
type Repository interface {
	List(ctx context.Context, filters ListFilters) ([]Job, int, error)
	Get(ctx context.Context, id int64) (*Job, error)
	Create(ctx context.Context, job Job) (*Job, error)
	Update(ctx context.Context, id int64, job Job) (*Job, error)
	Delete(ctx context.Context, id int64) error
}

type repository struct {
	pool *pgxpool.Pool
}

// NewRepository constructs a PostgreSQL repository.
func NewRepository(pool *pgxpool.Pool) Repository {
	return &repository{pool: pool}
}

const jobColumns = `j.id, j.title, j.description, j.company, j.location, j.job_type,
	c.id, c.name, c.slug, j.posted_by, j.created_at, j.updated_at`

const jobFrom = ` FROM jobs j JOIN categories c ON c.id = j.category_id`

func scanJob(row pgx.Row) (*Job, error) {
	var job Job
	err := row.Scan(
		&job.ID, &job.Title, &job.Description, &job.Company, &job.Location, &job.JobType,
		&job.Category.ID, &job.Category.Name, &job.Category.Slug,
		&job.PostedBy, &job.CreatedAt, &job.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &job, nil
}

// List uses a dynamic query due to filter complexity.
func (r *repository) List(ctx context.Context, filters ListFilters) ([]Job, int, error) {
	where := ` WHERE 1=1`
	args := []interface{}{}
	argCount := 0

	if filters.CategoryID > 0 {
		argCount++
		where += ` AND j.category_id = $` + strconv.Itoa(argCount)
		args = append(args, filters.CategoryID)
	}
	if filters.JobType != "" {
		argCount++
		where += ` AND j.job_type = $` + strconv.Itoa(argCount)
		args = append(args, filters.JobType)
	}
	if filters.Location != "" {
		argCount++
		where += ` AND j.location ILIKE $` + strconv.Itoa(argCount)
		args = append(args, "%"+filters.Location+"%")
	}
	if filters.Search != "" {
		argCount++
		placeholder := `$` + strconv.Itoa(argCount)
		where += ` AND (j.title ILIKE ` + placeholder +
			` OR j.description ILIKE ` + placeholder +
			` OR j.company ILIKE ` + placeholder +
			` OR j.location ILIKE ` + placeholder + `)`
		args = append(args, "%"+filters.Search+"%")
	}

	var total int
	if err := r.pool.QueryRow(ctx, `SELECT COUNT(*)`+jobFrom+where, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	query := `SELECT ` + jobColumns + jobFrom + where + ` ORDER BY ` + sortOrder(filters.SortBy, filters.SortDir)

	if filters.Limit > 0 {
		argCount++
		query += ` LIMIT $` + strconv.Itoa(argCount)
		args = append(args, filters.Limit)

		argCount++
		query += ` OFFSET $` + strconv.Itoa(argCount)
		offset := (filters.Page - 1) * filters.Limit
		if offset < 0 {
			offset = 0
		}
		args = append(args, offset)
	}

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var jobs []Job
	for rows.Next() {
		var job Job
		err := rows.Scan(
			&job.ID, &job.Title, &job.Description, &job.Company, &job.Location, &job.JobType,
			&job.Category.ID, &job.Category.Name, &job.Category.Slug,
			&job.PostedBy, &job.CreatedAt, &job.UpdatedAt,
		)
		if err != nil {
			return nil, 0, err
		}
		jobs = append(jobs, job)
	}
	return jobs, total, rows.Err()
}

func sortOrder(sortBy, sortDir string) string {
	column := "j.created_at"
	if sortBy == "title" {
		column = "j.title"
	}
	dir := "DESC"
	if sortDir == "asc" {
		dir = "ASC"
	}
	return column + " " + dir
}

// querier is satisfied by both *pgxpool.Pool and pgx.Tx.
type querier interface {
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

func getJob(ctx context.Context, q querier, id int64) (*Job, error) {
	row := q.QueryRow(ctx, `SELECT `+jobColumns+jobFrom+` WHERE j.id = $1`, id)
	return scanJob(row)
}

func (r *repository) Get(ctx context.Context, id int64) (*Job, error) {
	return getJob(ctx, r.pool, id)
}

// Create inserts the job and re-reads the joined view inside one
// transaction, so the returned row matches what was written.
func (r *repository) Create(ctx context.Context, job Job) (*Job, error) {
	var created *Job
	err := db.WithTx(ctx, r.pool, func(tx pgx.Tx) error {
		err := tx.QueryRow(ctx, `
			INSERT INTO jobs (title, description, company, location, job_type, category_id, posted_by)
			VALUES ($1, $2, $3, $4, $5, $6, $7)
			RETURNING id, created_at, updated_at`,
			job.Title, job.Description, job.Company, job.Location, job.JobType, job.Category.ID, job.PostedBy,
		).Scan(&job.ID, &job.CreatedAt, &job.UpdatedAt)
		if err != nil {
			if db.IsForeignKeyViolation(err) {
				return fmt.Errorf("%w: category does not exist", shared.ErrValidation)
			}
			return err
		}
		created, err = getJob(ctx, tx, job.ID)
		return err
	})
	if err != nil {
		return nil, err
	}
	return created, nil
}

func (r *repository) Update(ctx context.Context, id int64, job Job) (*Job, error) {
	var updated *Job
	err := db.WithTx(ctx, r.pool, func(tx pgx.Tx) error {
		tag, err := tx.Exec(ctx, `
			UPDATE jobs
			SET title = $2, description = $3, company = $4, location = $5, job_type = $6,
				category_id = $7, updated_at = NOW()
			WHERE id = $1`,
			id, job.Title, job.Description, job.Company, job.Location, job.JobType, job.Category.ID)
		if err != nil {
			if db.IsForeignKeyViolation(err) {
				return fmt.Errorf("%w: category does not exist", shared.ErrValidation)
			}
			return err
		}
		if tag.RowsAffected() == 0 {
			return shared.ErrNotFound
		}
		updated, err = getJob(ctx, tx, id)
		return err
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

// Delete removes a job; its applications go with it (cascade).
func (r *repository) Delete(ctx context.Context, id int64) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM jobs WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return shared.ErrNotFound
	}
	return nil
}
