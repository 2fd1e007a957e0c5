package users

import (
	"time"

	"github.com/jobboard/jobboard/internal/authz"
)

// User is the profile-facing account record.
type User struct {
	ID        int64
	Username  string
	Email     string
	Role      authz.Role
	IsActive  bool
	CreatedAt time.Time
	UpdatedAt time.Time
}
