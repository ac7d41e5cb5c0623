package services

import (
	"context"
	"errors"
	"testing"

	"folio/internal/models"
)

// fakeProfileStore keeps profiles in memory and can simulate version
// conflicts on a configurable number of writes.
type fakeProfileStore struct {
	profiles      map[string]*models.Profile // keyed by access key
	persistCalls  int
	conflictsLeft int
}

func newFakeStore(profiles ...*models.Profile) *fakeProfileStore {
	store := &fakeProfileStore{profiles: make(map[string]*models.Profile)}
	for _, p := range profiles {
		store.profiles[p.AccessKey] = p
	}
	return store
}

func (s *fakeProfileStore) ByID(ctx context.Context, id string) (*models.Profile, error) {
	for _, p := range s.profiles {
		if p.ID == id {
			return p, nil
		}
	}
	return nil, errors.New("record not found")
}

func (s *fakeProfileStore) ByAccessKey(ctx context.Context, accessKey string) (*models.Profile, error) {
	p, ok := s.profiles[accessKey]
	if !ok {
		return nil, ErrAccessKeyNotFound
	}
	return p, nil
}

func (s *fakeProfileStore) PersistGrants(ctx context.Context, accessKey string, grants []string, version int64) error {
	s.persistCalls++
	p, ok := s.profiles[accessKey]
	if !ok {
		return ErrAccessKeyNotFound
	}
	if s.conflictsLeft > 0 {
		s.conflictsLeft--
		// Another writer got there first: its write bumped the version.
		p.GrantVersion++
		return ErrGrantConflict
	}
	if p.GrantVersion != version {
		return ErrGrantConflict
	}
	p.GrantedResources = grants
	p.GrantVersion = version + 1
	return nil
}

func testProfile() *models.Profile {
	p := &models.Profile{
		DisplayName: "Redwan",
		AccessKey:   "AIR-TESTKEY1",
		CustomID:    "EXP-0001",
		Role:        models.ProfileRoleUser,
	}
	p.ID = "profile-1"
	return p
}

func TestIssueGrant(t *testing.T) {
	store := newFakeStore(testProfile())
	svc := NewGrantService(store)

	label, err := svc.Issue(context.Background(), "AIR-TESTKEY1", "g-private-1")
	if err != nil {
		t.Fatalf("Issue returned error: %v", err)
	}
	if label != "Redwan" {
		t.Errorf("label = %q, want Redwan", label)
	}

	p := store.profiles["AIR-TESTKEY1"]
	if len(p.GrantedResources) != 1 || p.GrantedResources[0] != "g-private-1" {
		t.Errorf("grants = %v", p.GrantedResources)
	}
	if p.GrantVersion != 1 {
		t.Errorf("grant version = %d, want 1", p.GrantVersion)
	}
}

func TestIssueGrantIdempotent(t *testing.T) {
	p := testProfile()
	p.GrantedResources = []string{"g-private-1"}
	store := newFakeStore(p)
	svc := NewGrantService(store)

	label, err := svc.Issue(context.Background(), "AIR-TESTKEY1", "g-private-1")
	if err != nil {
		t.Fatalf("re-issuing a held grant failed: %v", err)
	}
	if label != "Redwan" {
		t.Errorf("label = %q", label)
	}
	if store.persistCalls != 0 {
		t.Errorf("re-issuing a held grant wrote %d times, want 0", store.persistCalls)
	}
	if store.profiles["AIR-TESTKEY1"].GrantVersion != 0 {
		t.Error("re-issuing a held grant bumped the version")
	}
}

func TestIssueGrantUnknownKey(t *testing.T) {
	store := newFakeStore(testProfile())
	svc := NewGrantService(store)

	_, err := svc.Issue(context.Background(), "AIR-MISSING1", "g-private-1")
	if !errors.Is(err, ErrAccessKeyNotFound) {
		t.Fatalf("err = %v, want ErrAccessKeyNotFound", err)
	}
	if store.persistCalls != 0 {
		t.Errorf("unknown key reached the write path %d times", store.persistCalls)
	}
	if len(store.profiles["AIR-TESTKEY1"].GrantedResources) != 0 {
		t.Error("unknown key mutated another profile")
	}
}

func TestIssueGrantRetriesConflict(t *testing.T) {
	store := newFakeStore(testProfile())
	store.conflictsLeft = 2
	svc := NewGrantService(store)

	_, err := svc.Issue(context.Background(), "AIR-TESTKEY1", "g-private-1")
	if err != nil {
		t.Fatalf("Issue after transient conflicts failed: %v", err)
	}
	if store.persistCalls != 3 {
		t.Errorf("persist calls = %d, want 3", store.persistCalls)
	}
	p := store.profiles["AIR-TESTKEY1"]
	if len(p.GrantedResources) != 1 || p.GrantedResources[0] != "g-private-1" {
		t.Errorf("grants after retries = %v", p.GrantedResources)
	}
}

func TestIssueGrantConflictExhausted(t *testing.T) {
	store := newFakeStore(testProfile())
	store.conflictsLeft = 100
	svc := NewGrantService(store)

	_, err := svc.Issue(context.Background(), "AIR-TESTKEY1", "g-private-1")
	if !errors.Is(err, ErrGrantConflict) {
		t.Fatalf("err = %v, want ErrGrantConflict", err)
	}
	if store.persistCalls != grantRetries {
		t.Errorf("persist calls = %d, want %d", store.persistCalls, grantRetries)
	}
}
