package applications

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/jobboard/jobboard/internal/platform/db"
	"github.com/jobboard/jobboard/internal/shared"
)

// Repository defines persistence operations for applications.
type Repository interface {
	Create(ctx context.Context, app Application) (*Application, error)
	Get(ctx context.Context, id int64) (*Application, error)
	Exists(ctx context.Context, jobID, candidateID int64) (bool, error)
	ListAll(ctx context.Context) ([]Application, error)
	ListVisible(ctx context.Context, userID int64) ([]Application, error)
	Update(ctx context.Context, id int64, resume, coverLetter string) (*Application, error)
	Delete(ctx context.Context, id int64) error
}

type repository struct {
	pool *pgxpool.Pool
}

// NewRepository constructs a PostgreSQL repository.
func NewRepository(pool *pgxpool.Pool) Repository {
	return &repository{pool: pool}
}

const appColumns = `a.id, a.job_id, j.title, a.candidate_id, a.resume, a.cover_letter, a.created_at, j.posted_by`

const appFrom = ` FROM applications a JOIN jobs j ON j.id = a.job_id`

func scanApplication(row pgx.Row) (*Application, error) {
	var app Application
	err := row.Scan(&app.ID, &app.JobID, &app.JobTitle, &app.CandidateID, &app.Resume, &app.CoverLetter, &app.CreatedAt, &app.JobPostedBy)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &app, nil
}

// Create inserts a submission. The (job, candidate) unique constraint is
// the backstop for two concurrent submissions passing the advisory
// pre-check; the losing writer surfaces a conflict.
func (r *repository) Create(ctx context.Context, app Application) (*Application, error) {
	err := r.pool.QueryRow(ctx, `
		INSERT INTO applications (job_id, candidate_id, resume, cover_letter)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at`,
		app.JobID, app.CandidateID, app.Resume, app.CoverLetter,
	).Scan(&app.ID, &app.CreatedAt)
	if err != nil {
		if db.IsUniqueViolation(err, "applications_job_id_candidate_id_key") {
			return nil, fmt.Errorf("%w: already applied to this job", shared.ErrConflict)
		}
		return nil, err
	}
	return r.Get(ctx, app.ID)
}

func (r *repository) Get(ctx context.Context, id int64) (*Application, error) {
	row := r.pool.QueryRow(ctx, `SELECT `+appColumns+appFrom+` WHERE a.id = $1`, id)
	return scanApplication(row)
}

func (r *repository) Exists(ctx context.Context, jobID, candidateID int64) (bool, error) {
	var exists bool
	err := r.pool.QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM applications WHERE job_id = $1 AND candidate_id = $2)`,
		jobID, candidateID).Scan(&exists)
	return exists, err
}

func (r *repository) ListAll(ctx context.Context) ([]Application, error) {
	rows, err := r.pool.Query(ctx, `SELECT `+appColumns+appFrom+` ORDER BY a.created_at DESC`)
	if err != nil {
		return nil, err
	}
	return collect(rows)
}

// ListVisible returns the union of the user's own submissions and the
// submissions to jobs the user posted. A single scan over the join needs
// no explicit deduplication.
func (r *repository) ListVisible(ctx context.Context, userID int64) ([]Application, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT `+appColumns+appFrom+`
		WHERE a.candidate_id = $1 OR j.posted_by = $1
		ORDER BY a.created_at DESC`, userID)
	if err != nil {
		return nil, err
	}
	return collect(rows)
}

func collect(rows pgx.Rows) ([]Application, error) {
	defer rows.Close()
	var result []Application
	for rows.Next() {
		var app Application
		if err := rows.Scan(&app.ID, &app.JobID, &app.JobTitle, &app.CandidateID, &app.Resume, &app.CoverLetter, &app.CreatedAt, &app.JobPostedBy); err != nil {
			return nil, err
		}
		result = append(result, app)
	}
	return result, rows.Err()
}

func (r *repository) Update(ctx context.Context, id int64, resume, coverLetter string) (*Application, error) {
	tag, err := r.pool.Exec(ctx,
		`UPDATE applications SET resume = $2, cover_letter = $3 WHERE id = $1`,
		id, resume, coverLetter)
	if err != nil {
		return nil, err
	}
	if tag.RowsAffected() == 0 {
		return nil, shared.ErrNotFound
	}
	return r.Get(ctx, id)
}

func (r *repository) Delete(ctx context.Context, id int64) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM applications WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return shared.ErrNotFound
	}
	return nil
}
