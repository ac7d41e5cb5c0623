package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"folio/internal/models"
)

// flakyStore fails ByID a fixed number of times before the profile
// becomes readable, mimicking replica lag after sign-up.
type flakyStore struct {
	fakeProfileStore
	failuresLeft int
}

func (s *flakyStore) ByID(ctx context.Context, id string) (*models.Profile, error) {
	if s.failuresLeft > 0 {
		s.failuresLeft--
		return nil, errors.New("record not found")
	}
	return s.fakeProfileStore.ByID(ctx, id)
}

func TestWaitForProfileImmediate(t *testing.T) {
	store := newFakeStore(testProfile())

	profile, err := WaitForProfile(context.Background(), store, "profile-1")
	if err != nil {
		t.Fatalf("WaitForProfile failed: %v", err)
	}
	if profile.CustomID != "EXP-0001" {
		t.Errorf("profile = %+v", profile)
	}
}

func TestWaitForProfileAfterLag(t *testing.T) {
	store := &flakyStore{failuresLeft: 2}
	store.profiles = map[string]*models.Profile{"AIR-TESTKEY1": testProfile()}

	start := time.Now()
	profile, err := WaitForProfile(context.Background(), store, "profile-1")
	if err != nil {
		t.Fatalf("WaitForProfile failed after transient lag: %v", err)
	}
	if profile == nil || profile.ID != "profile-1" {
		t.Fatalf("profile = %+v", profile)
	}
	// Two failures cost the 200ms and 400ms backoff steps.
	if elapsed := time.Since(start); elapsed < 500*time.Millisecond {
		t.Errorf("backoff too short: %v", elapsed)
	}
}

func TestWaitForProfileExhausted(t *testing.T) {
	store := &flakyStore{failuresLeft: 100}
	store.profiles = map[string]*models.Profile{}

	_, err := WaitForProfile(context.Background(), store, "profile-1")
	if !errors.Is(err, ErrProfileSync) {
		t.Fatalf("err = %v, want ErrProfileSync", err)
	}
}

func TestWaitForProfileContextCancelled(t *testing.T) {
	store := &flakyStore{failuresLeft: 100}
	store.profiles = map[string]*models.Profile{}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := WaitForProfile(ctx, store, "profile-1")
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("err = %v, want context.Canceled", err)
	}
}
