package users

import (
	"context"
	"fmt"
	"strings"

	"github.com/jobboard/jobboard/internal/authz"
	"github.com/jobboard/jobboard/internal/shared"
)

// Service handles profile and account-listing logic.
type Service struct {
	repo RepositoryPort
}

// NewService builds a Service instance.
func NewService(repo RepositoryPort) *Service {
	return &Service{repo: repo}
}

// Current returns the acting user's own profile.
func (s *Service) Current(ctx context.Context, actor authz.Actor) (*User, error) {
	if !actor.Authenticated {
		return nil, shared.ErrUnauthorized
	}
	return s.repo.GetUser(ctx, actor.ID)
}

// ProfileUpdate carries the fields a user may change on their own
// account. Role is immutable through this path.
type ProfileUpdate struct {
	Username string
	Email    string
}

// UpdateCurrent updates the acting user's profile.
func (s *Service) UpdateCurrent(ctx context.Context, actor authz.Actor, update ProfileUpdate) (*User, error) {
	if !actor.Authenticated {
		return nil, shared.ErrUnauthorized
	}
	username := strings.TrimSpace(update.Username)
	if username == "" {
		return nil, fmt.Errorf("%w: username is required", shared.ErrValidation)
	}
	return s.repo.UpdateProfile(ctx, actor.ID, username, strings.TrimSpace(update.Email))
}

// List returns all accounts. Admin only.
func (s *Service) List(ctx context.Context, actor authz.Actor) ([]User, error) {
	if !actor.Authenticated {
		return nil, shared.ErrUnauthorized
	}
	if !authz.IsAdmin(actor) {
		return nil, shared.ErrPermissionDenied
	}
	return s.repo.ListUsers(ctx)
}
