package utils

import (
	"os"
	"testing"

	"folio/internal/config"
	"folio/internal/models"
)

func setTestSecret(t *testing.T) {
	t.Helper()
	cfg := config.LoadTestConfig()
	old := os.Getenv("JWT_SECRET")
	os.Setenv("JWT_SECRET", cfg.JWT.Secret)
	t.Cleanup(func() { os.Setenv("JWT_SECRET", old) })
}

func tokenProfile() models.Profile {
	p := models.Profile{
		Email: "a@b.c",
		Role:  models.ProfileRoleUser,
	}
	p.ID = "profile-1"
	return p
}

func TestJWTRoundTrip(t *testing.T) {
	setTestSecret(t)

	token, err := GenerateJWT(tokenProfile())
	if err != nil {
		t.Fatalf("GenerateJWT failed: %v", err)
	}

	claims, err := ParseJWT(token)
	if err != nil {
		t.Fatalf("ParseJWT failed: %v", err)
	}
	if claims.ProfileID != "profile-1" || claims.Email != "a@b.c" || claims.Role != "user" {
		t.Errorf("claims = %+v", claims)
	}
}

func TestParseJWTRejectsWrongSecret(t *testing.T) {
	setTestSecret(t)

	token, err := GenerateJWT(tokenProfile())
	if err != nil {
		t.Fatalf("GenerateJWT failed: %v", err)
	}

	os.Setenv("JWT_SECRET", "a-different-secret")
	if _, err := ParseJWT(token); err == nil {
		t.Fatal("token parsed under the wrong secret")
	}
}

func TestRefreshTokenRoundTrip(t *testing.T) {
	setTestSecret(t)

	token, err := GenerateRefreshToken(tokenProfile())
	if err != nil {
		t.Fatalf("GenerateRefreshToken failed: %v", err)
	}

	claims, err := ParseRefreshToken(token)
	if err != nil {
		t.Fatalf("ParseRefreshToken failed: %v", err)
	}
	if claims.ProfileID != "profile-1" {
		t.Errorf("claims = %+v", claims)
	}
}
