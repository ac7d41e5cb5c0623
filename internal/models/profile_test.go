package models

import (
	"encoding/json"
	"strings"
	"testing"
)

func TestProfileLabel(t *testing.T) {
	p := &Profile{DisplayName: "Redwan", CustomID: "EXP-0001"}
	if got := p.Label(); got != "Redwan" {
		t.Errorf("Label() = %q, want display name", got)
	}

	p.DisplayName = ""
	if got := p.Label(); got != "EXP-0001" {
		t.Errorf("Label() = %q, want custom id fallback", got)
	}
}

func TestProfileJSONHidesSecrets(t *testing.T) {
	p := Profile{
		Email:        "a@b.c",
		Password:     "bcrypt-hash",
		DisplayName:  "Redwan",
		AccessKey:    "AIR-X2J9QK7M",
		CustomID:     "EXP-0001",
		GrantVersion: 3,
	}

	data, err := json.Marshal(p)
	if err != nil {
		t.Fatalf("marshal failed: %v", err)
	}
	body := string(data)

	if strings.Contains(body, "bcrypt-hash") {
		t.Error("password hash serialized")
	}
	if strings.Contains(body, "grant_version") || strings.Contains(body, "grantVersion") {
		t.Error("version token serialized")
	}
	// The access key is the owner's own capability; the profile view
	// must include it so the account page can show it.
	if !strings.Contains(body, "AIR-X2J9QK7M") {
		t.Error("access key missing from profile view")
	}
}

func TestIsValidProfileRole(t *testing.T) {
	if !IsValidProfileRole(ProfileRoleUser) || !IsValidProfileRole(ProfileRoleAdmin) {
		t.Error("built-in roles rejected")
	}
	if IsValidProfileRole("superuser") {
		t.Error("unknown role accepted")
	}
}
