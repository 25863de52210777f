package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/communityos/eventhub/internal/core/authz"
	"github.com/communityos/eventhub/internal/core/domain"
)

// guardResolver serves a fixed ownership table keyed by "resource:id".
type guardResolver struct {
	ownership map[string]authz.Ownership
}

func (r *guardResolver) ResolveOwnership(_ context.Context, resource authz.Resource, resourceID string) (authz.Ownership, error) {
	own, ok := r.ownership[string(resource)+":"+resourceID]
	if !ok {
		return authz.Ownership{}, domain.ErrEventNotFound
	}
	return own, nil
}

func (r *guardResolver) IsCollaborator(context.Context, string, string) (bool, error) {
	return false, nil
}

func newGuardEvaluator() *authz.Evaluator {
	return authz.NewEvaluator(&guardResolver{
		ownership: map[string]authz.Ownership{
			"event:e1": {OwningGroupID: "g1", OwnerUserID: "u1", EventID: "e1"},
			"event:e2": {OwningGroupID: "g2", OwnerUserID: "u9", EventID: "e2"},
		},
	}, zerolog.Nop())
}

func editEventGuard() GuardConfig {
	return GuardConfig{
		Evaluator:   newGuardEvaluator(),
		Resource:    authz.ResourceEvent,
		Action:      authz.ActionUpdate,
		Param:       "id",
		SignInURL:   "/auth/login",
		FallbackURL: "/dashboard",
	}
}

func pageRequest(e *echo.Echo, path, id string) (echo.Context, *httptest.ResponseRecorder) {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetPath(path)
	c.SetParamNames("id")
	c.SetParamValues(id)
	return c, rec
}

func TestPageGuard_AnonymousRedirectsToSignIn(t *testing.T) {
	e := echo.New()
	c, rec := pageRequest(e, "/dashboard/events/:id/edit", "e1")

	handler := PageGuard(editEventGuard())(func(c echo.Context) error {
		t.Fatalf("protected page must not render for anonymous visitors")
		return nil
	})

	if err := handler(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusSeeOther {
		t.Fatalf("expected 303, got %d", rec.Code)
	}
	if loc := rec.Header().Get("Location"); loc != "/auth/login" {
		t.Fatalf("expected redirect to /auth/login, got %q", loc)
	}
}

func TestPageGuard_WrongGroupRedirectsToFallback(t *testing.T) {
	e := echo.New()
	// Leader of g1 opening the edit page of g2's event.
	c, rec := pageRequest(e, "/dashboard/events/:id/edit", "e2")
	c.Set(ClaimsKey, &domain.SessionClaims{
		UserID:       "u1",
		Role:         domain.RoleCommunityLeader,
		Status:       domain.AuthStatusAuthenticated,
		LedUserGroup: &domain.UserGroupRef{ID: "g1", Name: "GDG Centro"},
	})

	handler := PageGuard(editEventGuard())(func(c echo.Context) error {
		t.Fatalf("protected page must not render without permission")
		return nil
	})

	if err := handler(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusSeeOther {
		t.Fatalf("expected 303, got %d", rec.Code)
	}
	if loc := rec.Header().Get("Location"); loc != "/dashboard" {
		t.Fatalf("expected redirect to /dashboard, got %q", loc)
	}
}

func TestPageGuard_OwningLeaderPasses(t *testing.T) {
	e := echo.New()
	c, rec := pageRequest(e, "/dashboard/events/:id/edit", "e1")
	c.Set(ClaimsKey, &domain.SessionClaims{
		UserID:       "u1",
		Role:         domain.RoleCommunityLeader,
		Status:       domain.AuthStatusAuthenticated,
		LedUserGroup: &domain.UserGroupRef{ID: "g1", Name: "GDG Centro"},
	})

	called := false
	handler := PageGuard(editEventGuard())(func(c echo.Context) error {
		called = true
		return c.NoContent(http.StatusOK)
	})

	if err := handler(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if !called {
		t.Fatalf("next not called")
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}
