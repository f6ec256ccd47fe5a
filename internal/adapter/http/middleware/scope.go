package middleware

import (
	"context"
	"net/http"

	"github.com/caixinha/caixinha/internal/domain"
	"github.com/caixinha/caixinha/internal/usecase"
)

// Request headers carrying the acting identity and view selection.
const (
	UserIDHeader      = "X-User-ID"
	HouseholdIDHeader = "X-Household-ID"
	SharedViewHeader  = "X-Shared-View"
)

type contextKey string

const (
	scopeKey  contextKey = "scope"
	userIDKey contextKey = "userID"
)

// ScopeResolver resolves the row scope of a request.
type ScopeResolver interface {
	Resolve(ctx context.Context, input usecase.ResolveScopeInput) (domain.Scope, error)
}

// ScopeMiddleware resolves the scope once per request and stores it in the
// request context. Every handler downstream reads the same owner set, so a
// request is entirely personal or entirely shared.
type ScopeMiddleware struct {
	resolver ScopeResolver
}

// NewScopeMiddleware creates a new ScopeMiddleware.
func NewScopeMiddleware(resolver ScopeResolver) *ScopeMiddleware {
	return &ScopeMiddleware{resolver: resolver}
}

// Wrap wraps an http.Handler with scope resolution.
func (m *ScopeMiddleware) Wrap(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		userID := r.Header.Get(UserIDHeader)
		if userID == "" {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusUnauthorized)
			w.Write([]byte(`{"error":"missing ` + UserIDHeader + ` header"}`))
			return
		}

		scope, err := m.resolver.Resolve(r.Context(), usecase.ResolveScopeInput{
			ActingUserID: userID,
			HouseholdID:  r.Header.Get(HouseholdIDHeader),
			SharedView:   r.Header.Get(SharedViewHeader) == "true",
		})
		if err != nil {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusInternalServerError)
			w.Write([]byte(`{"error":"failed to resolve scope"}`))
			return
		}

		ctx := context.WithValue(r.Context(), scopeKey, scope)
		ctx = context.WithValue(ctx, userIDKey, userID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// WithScope returns a context carrying an already-resolved scope and
// acting user. Used by tests and by internal callers that bypass the
// middleware.
func WithScope(ctx context.Context, scope domain.Scope, userID string) context.Context {
	ctx = context.WithValue(ctx, scopeKey, scope)
	return context.WithValue(ctx, userIDKey, userID)
}

// ScopeFromContext returns the scope resolved for this request.
func ScopeFromContext(ctx context.Context) domain.Scope {
	if scope, ok := ctx.Value(scopeKey).(domain.Scope); ok {
		return scope
	}

	return domain.Scope{}
}

// UserIDFromContext returns the acting user id of this request.
func UserIDFromContext(ctx context.Context) string {
	if id, ok := ctx.Value(userIDKey).(string); ok {
		return id
	}

	return ""
}
