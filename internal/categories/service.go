package categories

import (
	"context"
	"fmt"
	"strings"

	"github.com/jobboard/jobboard/internal/authz"
	"github.com/jobboard/jobboard/internal/shared"
)

// Service applies the admin-only mutation policy over category storage.
type Service struct {
	repo Repository
}

// NewService constructs a Service.
func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// List returns all categories. Open to anyone, anonymous included.
func (s *Service) List(ctx context.Context) ([]Category, error) {
	return s.repo.List(ctx)
}

// Get returns a single category. Open to anyone.
func (s *Service) Get(ctx context.Context, id int64) (*Category, error) {
	return s.repo.Get(ctx, id)
}

// Input carries a create or update request. Slug is derived from the
// name when left empty.
type Input struct {
	Name string
	Slug string
}

// Create inserts a category. Admin only.
func (s *Service) Create(ctx context.Context, actor authz.Actor, in Input) (*Category, error) {
	if !authz.IsAdmin(actor) {
		return nil, shared.ErrPermissionDenied
	}
	category, err := normalize(in)
	if err != nil {
		return nil, err
	}
	return s.repo.Create(ctx, category)
}

// Update rewrites a category. Admin only.
func (s *Service) Update(ctx context.Context, actor authz.Actor, id int64, in Input) (*Category, error) {
	if !authz.IsAdmin(actor) {
		return nil, shared.ErrPermissionDenied
	}
	category, err := normalize(in)
	if err != nil {
		return nil, err
	}
	return s.repo.Update(ctx, id, category)
}

// Delete removes a category. Admin only; a category with listings still
// refuses to go (storage-level restrict).
func (s *Service) Delete(ctx context.Context, actor authz.Actor, id int64) error {
	if !authz.IsAdmin(actor) {
		return shared.ErrPermissionDenied
	}
	return s.repo.Delete(ctx, id)
}

func normalize(in Input) (Category, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return Category{}, fmt.Errorf("%w: category name is required", shared.ErrValidation)
	}
	slug := strings.TrimSpace(in.Slug)
	if slug == "" {
		slug = Slugify(name)
	}
	if slug == "" {
		return Category{}, fmt.Errorf("%w: cannot derive a slug from %q", shared.ErrValidation, name)
	}
	return Category{Name: name, Slug: slug}, nil
}
