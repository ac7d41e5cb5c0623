package middleware

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"folio/internal/models"

	"github.com/labstack/echo/v4"
)

func optionalViewerRequest(t *testing.T, authHeader string) (*models.Profile, bool) {
	t.Helper()

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/gallery", nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	m := NewAuthMiddleware("test-secret", nil, nil, nil)

	called := false
	handler := m.OptionalViewer()(func(c echo.Context) error {
		called = true
		return c.NoContent(http.StatusOK)
	})
	if err := handler(c); err != nil {
		t.Fatalf("handler returned error: %v", err)
	}
	return GetViewer(c), called
}

func TestOptionalViewerNoHeader(t *testing.T) {
	viewer, called := optionalViewerRequest(t, "")
	if !called {
		t.Fatal("anonymous request did not reach the handler")
	}
	if viewer != nil {
		t.Fatalf("anonymous request resolved a viewer: %+v", viewer)
	}
}

func TestOptionalViewerGarbageToken(t *testing.T) {
	viewer, called := optionalViewerRequest(t, "Bearer not-a-jwt")
	if !called {
		t.Fatal("request with an unusable token did not reach the handler")
	}
	if viewer != nil {
		t.Fatalf("unusable token resolved a viewer: %+v", viewer)
	}
}

func TestOptionalViewerMalformedHeader(t *testing.T) {
	viewer, called := optionalViewerRequest(t, "not-a-bearer-header")
	if !called {
		t.Fatal("request with a malformed header did not reach the handler")
	}
	if viewer != nil {
		t.Fatalf("malformed header resolved a viewer: %+v", viewer)
	}
}

func requireAdminRequest(t *testing.T, viewer *models.Profile) (error, bool) {
	t.Helper()

	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/admin/grants", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	if viewer != nil {
		c.Set("viewer", viewer)
	}

	called := false
	handler := RequireAdmin()(func(c echo.Context) error {
		called = true
		return c.NoContent(http.StatusOK)
	})
	return handler(c), called
}

func TestRequireAdminRejectsAnonymous(t *testing.T) {
	err, called := requireAdminRequest(t, nil)
	if called {
		t.Fatal("anonymous request reached the admin handler")
	}

	var httpErr *echo.HTTPError
	if !errors.As(err, &httpErr) || httpErr.Code != http.StatusForbidden {
		t.Fatalf("err = %v, want 403", err)
	}
}

func TestRequireAdminRejectsUserRole(t *testing.T) {
	err, called := requireAdminRequest(t, &models.Profile{Role: models.ProfileRoleUser})
	if called {
		t.Fatal("non-admin viewer reached the admin handler")
	}

	var httpErr *echo.HTTPError
	if !errors.As(err, &httpErr) || httpErr.Code != http.StatusForbidden {
		t.Fatalf("err = %v, want 403", err)
	}
}

func TestRequireAdminAllowsAdmin(t *testing.T) {
	err, called := requireAdminRequest(t, &models.Profile{Role: models.ProfileRoleAdmin})
	if err != nil {
		t.Fatalf("admin viewer rejected: %v", err)
	}
	if !called {
		t.Fatal("admin viewer did not reach the handler")
	}
}

func TestMiddlewareRequiresHeader(t *testing.T) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/auth/me", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	m := NewAuthMiddleware("test-secret", nil, nil, nil)
	handler := m.Middleware()(func(c echo.Context) error {
		t.Fatal("missing credentials reached the handler")
		return nil
	})

	err := handler(c)
	var httpErr *echo.HTTPError
	if !errors.As(err, &httpErr) || httpErr.Code != http.StatusUnauthorized {
		t.Fatalf("err = %v, want 401", err)
	}
}
