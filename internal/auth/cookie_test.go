package auth

import (
	"testing"
	"time"
)

func TestMintVerifyRoundTrip(t *testing.T) {
	m := NewManager("test-secret", time.Hour)

	raw, err := m.Mint("session-123")

	if err != nil {
		t.Fatalf("Mint: %v", err)
	}

	sid, err := m.Verify(raw)

	if err != nil {
		t.Fatalf("Verify: %v", err)
	}

	if sid != "session-123" {
		t.Fatalf("got session id %q, want %q", sid, "session-123")
	}
}

func TestVerifyRejectsWrongSecret(t *testing.T) {
	raw, err := NewManager("secret-a", time.Hour).Mint("session-123")

	if err != nil {
		t.Fatalf("Mint: %v", err)
	}

	if _, err := NewManager("secret-b", time.Hour).Verify(raw); err == nil {
		t.Fatal("expected verification to fail with a different secret")
	}
}

func TestVerifyRejectsExpired(t *testing.T) {
	m := NewManager("test-secret", -time.Minute)

	raw, err := m.Mint("session-123")

	if err != nil {
		t.Fatalf("Mint: %v", err)
	}

	if _, err := m.Verify(raw); err == nil {
		t.Fatal("expected verification to fail for an expired token")
	}
}

func TestVerifyRejectsGarbage(t *testing.T) {
	m := NewManager("test-secret", time.Hour)

	if _, err := m.Verify("not-a-token"); err == nil {
		t.Fatal("expected verification to fail for garbage input")
	}
}
