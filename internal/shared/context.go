package shared

import (
	"context"

	"github.com/jobboard/jobboard/internal/authz"
)

type actorContextKey struct{}

// ContextWithActor stores the resolved actor in context.
func ContextWithActor(ctx context.Context, actor authz.Actor) context.Context {
	return context.WithValue(ctx, actorContextKey{}, actor)
}

// ActorFromContext extracts the actor from context. A request that never
// passed the auth middleware resolves to the anonymous actor.
func ActorFromContext(ctx context.Context) authz.Actor {
	actor, ok := ctx.Value(actorContextKey{}).(authz.Actor)
	if !ok {
		return authz.Anonymous()
	}
	return actor
}
