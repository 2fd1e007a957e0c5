package listings

import (
	"context"
	"fmt"
	"strings"

	"github.com/jobboard/jobboard/internal/authz"
	"github.com/jobboard/jobboard/internal/shared"
)

// Service applies the posting and ownership policy over job storage.
type Service struct {
	repo Repository
}

// NewService constructs a Service.
func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// List returns jobs matching the filters. Open to anyone.
func (s *Service) List(ctx context.Context, filters ListFilters) ([]Job, int, error) {
	return s.repo.List(ctx, filters)
}

// Get returns a single job. Open to anyone.
func (s *Service) Get(ctx context.Context, id int64) (*Job, error) {
	return s.repo.Get(ctx, id)
}

// Input carries the client-settable job fields. The poster is never part
// of it; it always comes from the authenticated actor.
type Input struct {
	Title       string
	Description string
	Company     string
	Location    string
	JobType     string
	CategoryID  int64
}

// Create inserts a job posted by the actor. Recruiters and admins only.
func (s *Service) Create(ctx context.Context, actor authz.Actor, in Input) (*Job, error) {
	if !actor.Authenticated {
		return nil, shared.ErrUnauthorized
	}
	if !authz.IsRecruiterOrAdmin(actor) {
		return nil, shared.ErrPermissionDenied
	}
	job, err := buildJob(in)
	if err != nil {
		return nil, err
	}
	poster := actor.ID
	job.PostedBy = &poster
	return s.repo.Create(ctx, job)
}

// Update rewrites a job. Only the poster or an admin may do so; the
// poster reference itself never changes.
func (s *Service) Update(ctx context.Context, actor authz.Actor, id int64, in Input) (*Job, error) {
	existing, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if !authz.OwnerOrReadOnly(actor, authz.ActionUpdate, existing) {
		return nil, shared.ErrPermissionDenied
	}
	job, err := buildJob(in)
	if err != nil {
		return nil, err
	}
	return s.repo.Update(ctx, id, job)
}

// Delete removes a job. Only the poster or an admin.
func (s *Service) Delete(ctx context.Context, actor authz.Actor, id int64) error {
	existing, err := s.repo.Get(ctx, id)
	if err != nil {
		return err
	}
	if !authz.OwnerOrReadOnly(actor, authz.ActionDelete, existing) {
		return shared.ErrPermissionDenied
	}
	return s.repo.Delete(ctx, id)
}

func buildJob(in Input) (Job, error) {
	title := strings.TrimSpace(in.Title)
	if title == "" {
		return Job{}, fmt.Errorf("%w: title is required", shared.ErrValidation)
	}
	if strings.TrimSpace(in.Company) == "" {
		return Job{}, fmt.Errorf("%w: company is required", shared.ErrValidation)
	}
	if in.CategoryID <= 0 {
		return Job{}, fmt.Errorf("%w: category_id is required", shared.ErrValidation)
	}
	return Job{
		Title:       title,
		Description: in.Description,
		Company:     strings.TrimSpace(in.Company),
		Location:    strings.TrimSpace(in.Location),
		JobType:     strings.TrimSpace(in.JobType),
		Category:    CategoryRef{ID: in.CategoryID},
	}, nil
}
