// Package authz holds the role model and the policy predicates gating
// every mutation in the API. Predicates are pure functions over an
// explicit Actor; nothing in this package reads ambient request state.
package authz

// Role is the closed set of authenticated role tags.
type Role string

const (
	RoleAdmin     Role = "ADMIN"
	RoleRecruiter Role = "RECRUITER"
	RoleUser      Role = "USER"
)

// ParseRole normalizes a stored role tag. Unknown or empty values map to
// RoleUser so that a record with a mangled role keeps working at the
// least-privileged authenticated level instead of failing the request.
func ParseRole(raw string) Role {
	switch Role(raw) {
	case RoleAdmin:
		return RoleAdmin
	case RoleRecruiter:
		return RoleRecruiter
	default:
		return RoleUser
	}
}

// Valid reports whether r is one of the three known tags.
func (r Role) Valid() bool {
	switch r {
	case RoleAdmin, RoleRecruiter, RoleUser:
		return true
	}
	return false
}

// Actor is the identity initiating a request action.
type Actor struct {
	ID            int64
	Role          Role
	Authenticated bool
}

// Anonymous returns the unauthenticated actor. It satisfies no policy
// that requires authentication.
func Anonymous() Actor {
	return Actor{}
}
