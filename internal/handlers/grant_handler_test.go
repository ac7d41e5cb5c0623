package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"folio/internal/api/validator"
	"folio/internal/models"
	"folio/internal/services"

	"github.com/labstack/echo/v4"
)

type memoryStore struct {
	profiles map[string]*models.Profile
}

func (s *memoryStore) ByID(ctx context.Context, id string) (*models.Profile, error) {
	for _, p := range s.profiles {
		if p.ID == id {
			return p, nil
		}
	}
	return nil, services.ErrAccessKeyNotFound
}

func (s *memoryStore) ByAccessKey(ctx context.Context, accessKey string) (*models.Profile, error) {
	p, ok := s.profiles[accessKey]
	if !ok {
		return nil, services.ErrAccessKeyNotFound
	}
	return p, nil
}

func (s *memoryStore) PersistGrants(ctx context.Context, accessKey string, grants []string, version int64) error {
	p, ok := s.profiles[accessKey]
	if !ok {
		return services.ErrAccessKeyNotFound
	}
	if p.GrantVersion != version {
		return services.ErrGrantConflict
	}
	p.GrantedResources = grants
	p.GrantVersion = version + 1
	return nil
}

func issueGrant(t *testing.T, store services.ProfileStore, body string) *httptest.ResponseRecorder {
	t.Helper()

	e := echo.New()
	e.Validator = validator.NewValidator()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/admin/grants", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	h := NewGrantHandler(services.NewGrantService(store))
	if err := h.IssueGrant(c); err != nil {
		t.Fatalf("handler returned error: %v", err)
	}
	return rec
}

func grantStore() *memoryStore {
	p := &models.Profile{
		DisplayName: "Visitor",
		AccessKey:   "AIR-VISITOR2",
		CustomID:    "EXP-0007",
		Role:        models.ProfileRoleUser,
	}
	p.ID = "profile-7"
	return &memoryStore{profiles: map[string]*models.Profile{p.AccessKey: p}}
}

func TestIssueGrantSuccess(t *testing.T) {
	store := grantStore()
	rec := issueGrant(t, store, `{"accessKey":"AIR-VISITOR2","resourceId":"g-private-1"}`)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
	}

	var body map[string]string
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if !strings.Contains(body["message"], "Visitor") {
		t.Errorf("confirmation %q does not name the grantee", body["message"])
	}

	p := store.profiles["AIR-VISITOR2"]
	if len(p.GrantedResources) != 1 || p.GrantedResources[0] != "g-private-1" {
		t.Errorf("grants = %v", p.GrantedResources)
	}
}

func TestIssueGrantUnknownAccessKey(t *testing.T) {
	rec := issueGrant(t, grantStore(), `{"accessKey":"AIR-MISSING9","resourceId":"g-private-1"}`)

	if rec.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", rec.Code)
	}
	var body map[string]string
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if body["error"] != "access key not found" {
		t.Errorf("error = %q", body["error"])
	}
}

func TestIssueGrantUnknownResource(t *testing.T) {
	rec := issueGrant(t, grantStore(), `{"accessKey":"AIR-VISITOR2","resourceId":"doc-999"}`)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
}

func TestIssueGrantMissingFields(t *testing.T) {
	rec := issueGrant(t, grantStore(), `{"accessKey":"AIR-VISITOR2"}`)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
}

func TestIssueGrantWildcard(t *testing.T) {
	store := grantStore()
	rec := issueGrant(t, store, `{"accessKey":"AIR-VISITOR2","resourceId":"*"}`)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
	}
	p := store.profiles["AIR-VISITOR2"]
	if len(p.GrantedResources) != 1 || p.GrantedResources[0] != "*" {
		t.Errorf("grants = %v", p.GrantedResources)
	}
}
