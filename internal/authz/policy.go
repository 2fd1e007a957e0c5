package authz

// Action classifies a request for the owner-or-read-only predicate.
type Action string

const (
	ActionView   Action = "view"
	ActionList   Action = "list"
	ActionCreate Action = "create"
	ActionUpdate Action = "update"
	ActionDelete Action = "delete"
)

// ReadOnly reports whether the action never mutates state.
func (a Action) ReadOnly() bool {
	return a == ActionView || a == ActionList
}

// Ownable is implemented by resources with a responsible identity: a job
// resolves to its poster, an application to its candidate. The bool is
// false when the resource currently has no owner (e.g. the posting user
// was removed), in which case only an admin may mutate it.
type Ownable interface {
	OwnerID() (int64, bool)
}

// IsAdmin reports whether the actor is an authenticated administrator.
func IsAdmin(actor Actor) bool {
	return actor.Authenticated && actor.Role == RoleAdmin
}

// IsRecruiterOrAdmin reports whether the actor may post jobs.
func IsRecruiterOrAdmin(actor Actor) bool {
	return actor.Authenticated && (actor.Role == RoleRecruiter || actor.Role == RoleAdmin)
}

// OwnerOrReadOnly allows any read action unconditionally. Mutations are
// allowed only to the resource owner or an admin; a resource without an
// owner denies mutation to everyone below admin.
func OwnerOrReadOnly(actor Actor, action Action, resource Ownable) bool {
	if action.ReadOnly() {
		return true
	}
	if IsAdmin(actor) {
		return true
	}
	if !actor.Authenticated || resource == nil {
		return false
	}
	owner, ok := resource.OwnerID()
	return ok && owner == actor.ID
}
