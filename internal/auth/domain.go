package auth

import (
	"time"

	"github.com/jobboard/jobboard/internal/authz"
)

// User represents a registered account.
type User struct {
	ID           int64
	Username     string
	Email        string
	PasswordHash string
	Role         authz.Role
	IsActive     bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// Actor returns the policy-facing identity for the user.
func (u *User) Actor() authz.Actor {
	return authz.Actor{ID: u.ID, Role: u.Role, Authenticated: true}
}
