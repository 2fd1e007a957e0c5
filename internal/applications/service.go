package applications

import (
	"context"
	"fmt"
	"strings"

	"github.com/jobboard/jobboard/internal/authz"
	"github.com/jobboard/jobboard/internal/listings"
	"github.com/jobboard/jobboard/internal/shared"
)

// JobDirectory resolves job listings for the submission workflow.
// Satisfied by *listings.Service.
type JobDirectory interface {
	Get(ctx context.Context, id int64) (*listings.Job, error)
}

// Service implements the application workflow and its visibility rules.
type Service struct {
	repo Repository
	jobs JobDirectory
}

// NewService constructs a Service.
func NewService(repo Repository, jobs JobDirectory) *Service {
	return &Service{repo: repo, jobs: jobs}
}

// SubmitInput carries the candidate-settable fields. Job and candidate
// are always taken from the resolved job and the authenticated actor,
// never from the payload.
type SubmitInput struct {
	Resume      string
	CoverLetter string
}

// Submit applies the actor to a job. Order of checks: job existence,
// self-application ban, duplicate pre-check, insert. The unique
// constraint backs the pre-check up under concurrency.
func (s *Service) Submit(ctx context.Context, actor authz.Actor, jobID int64, in SubmitInput) (*Application, error) {
	if !actor.Authenticated {
		return nil, shared.ErrUnauthorized
	}
	job, err := s.jobs.Get(ctx, jobID)
	if err != nil {
		return nil, err
	}
	if poster, ok := job.OwnerID(); ok && poster == actor.ID {
		return nil, fmt.Errorf("%w: cannot apply to your own job", shared.ErrPermissionDenied)
	}
	if strings.TrimSpace(in.Resume) == "" {
		return nil, fmt.Errorf("%w: resume is required", shared.ErrValidation)
	}
	exists, err := s.repo.Exists(ctx, job.ID, actor.ID)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, fmt.Errorf("%w: already applied to this job", shared.ErrValidation)
	}
	return s.repo.Create(ctx, Application{
		JobID:       job.ID,
		CandidateID: actor.ID,
		Resume:      in.Resume,
		CoverLetter: in.CoverLetter,
	})
}

// List returns the applications the actor is entitled to see: everything
// for admins, otherwise own submissions plus submissions to own jobs.
func (s *Service) List(ctx context.Context, actor authz.Actor) ([]Application, error) {
	if !actor.Authenticated {
		return nil, shared.ErrUnauthorized
	}
	if authz.IsAdmin(actor) {
		return s.repo.ListAll(ctx)
	}
	return s.repo.ListVisible(ctx, actor.ID)
}

// Get returns one application, visible to its candidate, the job's
// poster, or an admin.
func (s *Service) Get(ctx context.Context, actor authz.Actor, id int64) (*Application, error) {
	if !actor.Authenticated {
		return nil, shared.ErrUnauthorized
	}
	app, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if !s.mayManage(actor, app) {
		return nil, shared.ErrPermissionDenied
	}
	return app, nil
}

// Update rewrites the submission text. Candidate, job poster, or admin.
func (s *Service) Update(ctx context.Context, actor authz.Actor, id int64, in SubmitInput) (*Application, error) {
	if !actor.Authenticated {
		return nil, shared.ErrUnauthorized
	}
	app, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if !s.mayManage(actor, app) {
		return nil, shared.ErrPermissionDenied
	}
	if strings.TrimSpace(in.Resume) == "" {
		return nil, fmt.Errorf("%w: resume is required", shared.ErrValidation)
	}
	return s.repo.Update(ctx, id, in.Resume, in.CoverLetter)
}

// Delete withdraws a submission. Candidate, job poster, or admin.
func (s *Service) Delete(ctx context.Context, actor authz.Actor, id int64) error {
	if !actor.Authenticated {
		return shared.ErrUnauthorized
	}
	app, err := s.repo.Get(ctx, id)
	if err != nil {
		return err
	}
	if !s.mayManage(actor, app) {
		return shared.ErrPermissionDenied
	}
	return s.repo.Delete(ctx, id)
}

// mayManage composes the ownership policy with the job-poster grant:
// applications answer to their candidate, and additionally to the poster
// of the referenced job.
func (s *Service) mayManage(actor authz.Actor, app *Application) bool {
	if authz.OwnerOrReadOnly(actor, authz.ActionUpdate, app) {
		return true
	}
	return app.JobPostedBy != nil && *app.JobPostedBy == actor.ID
}
