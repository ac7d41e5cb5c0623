package utils

import (
	"strings"
	"testing"
)

func TestGenerateAccessKeyFormat(t *testing.T) {
	key, err := GenerateAccessKey()
	if err != nil {
		t.Fatalf("GenerateAccessKey failed: %v", err)
	}

	if !strings.HasPrefix(key, "AIR-") {
		t.Fatalf("key %q lacks AIR- prefix", key)
	}
	suffix := strings.TrimPrefix(key, "AIR-")
	if len(suffix) != 8 {
		t.Fatalf("key suffix %q has length %d, want 8", suffix, len(suffix))
	}

	const charset = "ABCDEFGHJKLMNPQRSTUVWXYZ23456789"
	for _, r := range suffix {
		if !strings.ContainsRune(charset, r) {
			t.Errorf("key %q contains %q, outside sampling charset", key, r)
		}
	}
}

func TestGenerateAccessKeyAvoidsAmbiguousCharacters(t *testing.T) {
	for i := 0; i < 200; i++ {
		key, err := GenerateAccessKey()
		if err != nil {
			t.Fatalf("GenerateAccessKey failed: %v", err)
		}
		if strings.ContainsAny(strings.TrimPrefix(key, "AIR-"), "0O1I") {
			t.Fatalf("key %q contains an ambiguous character", key)
		}
	}
}

func TestGenerateAccessKeyVaries(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 100; i++ {
		key, err := GenerateAccessKey()
		if err != nil {
			t.Fatalf("GenerateAccessKey failed: %v", err)
		}
		if seen[key] {
			t.Fatalf("duplicate key %q in 100 draws", key)
		}
		seen[key] = true
	}
}

func TestFormatCustomID(t *testing.T) {
	tests := []struct {
		seq  int64
		want string
	}{
		{1, "EXP-0001"},
		{42, "EXP-0042"},
		{999, "EXP-0999"},
		{10000, "EXP-10000"},
	}
	for _, tt := range tests {
		if got := FormatCustomID(tt.seq); got != tt.want {
			t.Errorf("FormatCustomID(%d) = %q, want %q", tt.seq, got, tt.want)
		}
	}
}

func TestGenerateRandomStringLength(t *testing.T) {
	s, err := GenerateRandomString(32)
	if err != nil {
		t.Fatalf("GenerateRandomString failed: %v", err)
	}
	if len(s) != 32 {
		t.Fatalf("length = %d, want 32", len(s))
	}
}
