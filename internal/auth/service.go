package auth

import (
	"context"
	"fmt"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/jobboard/jobboard/internal/authz"
	"github.com/jobboard/jobboard/internal/shared"
)

// Service wraps registration and credential rules.
type Service struct {
	repo       Repository
	tokens     *TokenStore
	bcryptCost int
}

// NewService constructs a Service.
func NewService(repo Repository, tokens *TokenStore, bcryptCost int) *Service {
	if bcryptCost == 0 {
		bcryptCost = bcrypt.DefaultCost
	}
	return &Service{repo: repo, tokens: tokens, bcryptCost: bcryptCost}
}

// RegisterInput carries a registration request.
type RegisterInput struct {
	Username string
	Email    string
	Password string
	Role     string
}

// Register creates an account and logs it in. Accounts may self-select
// USER or RECRUITER; anything else, including ADMIN, degrades to USER.
// Admin accounts are only created through back-office tooling.
func (s *Service) Register(ctx context.Context, in RegisterInput) (*User, string, error) {
	role := authz.ParseRole(in.Role)
	if role == authz.RoleAdmin {
		role = authz.RoleUser
	}
	if len(in.Password) < 8 {
		return nil, "", fmt.Errorf("%w: password must be at least 8 characters", shared.ErrValidation)
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), s.bcryptCost)
	if err != nil {
		return nil, "", fmt.Errorf("auth: hash password: %w", err)
	}
	user, err := s.repo.CreateUser(ctx, in.Username, in.Email, string(hash), role)
	if err != nil {
		return nil, "", err
	}
	token, err := s.issue(ctx, user, "", "")
	if err != nil {
		return nil, "", err
	}
	return user, token, nil
}

// Login validates credentials and issues a bearer token. All failure
// modes collapse into ErrInvalidCredentials.
func (s *Service) Login(ctx context.Context, username, password, ip, ua string) (*User, string, error) {
	user, err := s.repo.FindByUsername(ctx, username)
	if err != nil {
		return nil, "", shared.ErrInvalidCredentials
	}
	if !user.IsActive {
		return nil, "", shared.ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, "", shared.ErrInvalidCredentials
	}
	token, err := s.issue(ctx, user, ip, ua)
	if err != nil {
		return nil, "", err
	}
	return user, token, nil
}

// Logout revokes the token and removes its audit row.
func (s *Service) Logout(ctx context.Context, token string) error {
	if err := s.tokens.Revoke(ctx, token); err != nil {
		return err
	}
	return s.repo.DeleteSession(ctx, SessionID(token))
}

// ResolveActor maps a bearer token to its actor.
func (s *Service) ResolveActor(ctx context.Context, token string) (authz.Actor, error) {
	return s.tokens.Resolve(ctx, token)
}

// PruneExpiredSessions removes audit rows for tokens past their expiry.
// Redis evicts the tokens themselves through key TTLs.
func (s *Service) PruneExpiredSessions(ctx context.Context, now time.Time) (int64, error) {
	return s.repo.DeleteExpiredSessions(ctx, now)
}

func (s *Service) issue(ctx context.Context, user *User, ip, ua string) (string, error) {
	token, err := s.tokens.Issue(ctx, user)
	if err != nil {
		return "", err
	}
	expiresAt := time.Now().Add(s.tokens.TTL())
	if err := s.repo.CreateSession(ctx, SessionID(token), user.ID, expiresAt, ip, ua); err != nil {
		// Audit row is best effort relative to the issued token; revoke
		// so the two stores never disagree.
		_ = s.tokens.Revoke(ctx, token)
		return "", err
	}
	return token, nil
}
