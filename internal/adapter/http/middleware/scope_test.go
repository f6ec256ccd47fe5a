package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/caixinha/caixinha/internal/domain"
	"github.com/caixinha/caixinha/internal/usecase"
)

type scopeResolverStub struct {
	resolveFn func(ctx context.Context, input usecase.ResolveScopeInput) (domain.Scope, error)
}

func (s *scopeResolverStub) Resolve(ctx context.Context, input usecase.ResolveScopeInput) (domain.Scope, error) {
	return s.resolveFn(ctx, input)
}

func TestScopeMiddleware_MissingUser(t *testing.T) {
	m := NewScopeMiddleware(&scopeResolverStub{
		resolveFn: func(ctx context.Context, input usecase.ResolveScopeInput) (domain.Scope, error) {
			t.Fatal("resolver should not be called without a user header")
			return domain.Scope{}, nil
		},
	})

	handler := m.Wrap(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("handler should not be reached")
	}))

	req := httptest.NewRequest(http.MethodGet, "/api/v1/transactions", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
}

func TestScopeMiddleware_PersonalScope(t *testing.T) {
	m := NewScopeMiddleware(&scopeResolverStub{
		resolveFn: func(ctx context.Context, input usecase.ResolveScopeInput) (domain.Scope, error) {
			if input.ActingUserID != "alice" || input.SharedView {
				t.Fatalf("unexpected input: %+v", input)
			}
			return domain.PersonalScope(input.ActingUserID), nil
		},
	})

	var gotScope domain.Scope
	var gotUser string
	handler := m.Wrap(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotScope = ScopeFromContext(r.Context())
		gotUser = UserIDFromContext(r.Context())
	}))

	req := httptest.NewRequest(http.MethodGet, "/api/v1/transactions", nil)
	req.Header.Set(UserIDHeader, "alice")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if gotUser != "alice" {
		t.Fatalf("user id = %q, want alice", gotUser)
	}
	if !gotScope.Contains("alice") || gotScope.Contains("bob") {
		t.Fatalf("unexpected scope: %+v", gotScope)
	}
}

func TestScopeMiddleware_SharedView(t *testing.T) {
	m := NewScopeMiddleware(&scopeResolverStub{
		resolveFn: func(ctx context.Context, input usecase.ResolveScopeInput) (domain.Scope, error) {
			if !input.SharedView || input.HouseholdID != "house-1" {
				t.Fatalf("unexpected input: %+v", input)
			}
			return domain.SharedScope([]string{"alice", "bob"}), nil
		},
	})

	var gotScope domain.Scope
	handler := m.Wrap(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotScope = ScopeFromContext(r.Context())
	}))

	req := httptest.NewRequest(http.MethodGet, "/api/v1/forecast", nil)
	req.Header.Set(UserIDHeader, "alice")
	req.Header.Set(HouseholdIDHeader, "house-1")
	req.Header.Set(SharedViewHeader, "true")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if !gotScope.Contains("alice") || !gotScope.Contains("bob") {
		t.Fatalf("expected both members in scope, got %+v", gotScope)
	}
}

func TestScopeMiddleware_ResolverError(t *testing.T) {
	m := NewScopeMiddleware(&scopeResolverStub{
		resolveFn: func(ctx context.Context, input usecase.ResolveScopeInput) (domain.Scope, error) {
			return domain.Scope{}, errors.New("database down")
		},
	})

	handler := m.Wrap(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("handler should not be reached")
	}))

	req := httptest.NewRequest(http.MethodGet, "/api/v1/transactions", nil)
	req.Header.Set(UserIDHeader, "alice")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", rec.Code)
	}
}

func TestScopeFromContext_Missing(t *testing.T) {
	scope := ScopeFromContext(context.Background())
	if scope.Contains("anyone") {
		t.Fatalf("empty context should yield an empty scope, got %+v", scope)
	}
	if UserIDFromContext(context.Background()) != "" {
		t.Fatal("empty context should yield an empty user id")
	}
}
