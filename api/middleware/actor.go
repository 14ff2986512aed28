package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/abhyudyayatech/procure-backend/pkg/logger"
)

type contextKey string

const (
	ctxActorID   contextKey = "actor_id"
	ctxActorRole contextKey = "actor_role"
)

const (
	actorIDHeader   = "X-Actor-Id"
	actorRoleHeader = "X-Actor-Role"
)

// Actor reads the caller identity established by the fronting gateway and
// injects it into the request context. Requests without an identity still
// pass through; handlers that need one reject them.
func Actor(logg *logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()

			actorID := strings.TrimSpace(r.Header.Get(actorIDHeader))
			role := strings.ToLower(strings.TrimSpace(r.Header.Get(actorRoleHeader)))

			if actorID != "" {
				ctx = context.WithValue(ctx, ctxActorID, actorID)
				if logg != nil {
					ctx = logg.WithActorID(ctx, actorID)
				}
			}
			if role != "" {
				ctx = context.WithValue(ctx, ctxActorRole, role)
			}

			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func ActorIDFromContext(ctx context.Context) string {
	if ctx == nil {
		return ""
	}
	if v, ok := ctx.Value(ctxActorID).(string); ok {
		return v
	}
	return ""
}

func ActorRoleFromContext(ctx context.Context) string {
	if ctx == nil {
		return ""
	}
	if v, ok := ctx.Value(ctxActorRole).(string); ok {
		return v
	}
	return ""
}

// WithActor injects a caller identity, used by tests and internal calls.
func WithActor(ctx context.Context, actorID, role string) context.Context {
	if ctx == nil {
		ctx = context.Background()
	}
	ctx = context.WithValue(ctx, ctxActorID, actorID)
	return context.WithValue(ctx, ctxActorRole, role)
}
