package middleware

import (
	"context"

	"github.com/gin-gonic/gin"
)

// contextKey is the type of the values this package stores in request contexts.
// Using a custom type prevents collisions.
type contextKey string

const (
	loggerCtxKey  = contextKey("logger")
	actorIDCtxKey = contextKey("actorID")
)

// WithActorID returns a copy of ctx carrying the authenticated actor id.
func WithActorID(ctx context.Context, actorID string) context.Context {
	return context.WithValue(ctx, actorIDCtxKey, actorID)
}

// ActorIDFromCtx returns the actor id stored by AuthMiddleware.
func ActorIDFromCtx(ctx context.Context) (string, bool) {
	actorID, ok := ctx.Value(actorIDCtxKey).(string)
	return actorID, ok && actorID != ""
}

// GetActorIDFromContext retrieves the authenticated actor id from the Gin context.
// It returns the actor id and a boolean indicating if it was found.
func GetActorIDFromContext(c *gin.Context) (string, bool) {
	if v, exists := c.Get(string(actorIDCtxKey)); exists {
		if actorID, ok := v.(string); ok && actorID != "" {
			return actorID, true
		}
	}
	return ActorIDFromCtx(c.Request.Context())
}
