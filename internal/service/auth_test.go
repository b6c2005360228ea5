package service

import (
	"testing"
)

func TestTokenRoundTrip(t *testing.T) {
	secret := []byte("test-secret")

	token, err := SignToken(secret, "session-1", "alice")
	if err != nil {
		t.Fatalf("sign failed: %v", err)
	}

	sessionID, err := ParseToken(secret, token)
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	if sessionID != "session-1" {
		t.Fatalf("expected session-1 got %s", sessionID)
	}
}

func TestParseTokenRejectsWrongSecret(t *testing.T) {
	token, err := SignToken([]byte("secret-a"), "session-1", "alice")
	if err != nil {
		t.Fatalf("sign failed: %v", err)
	}

	if _, err := ParseToken([]byte("secret-b"), token); err == nil {
		t.Fatalf("expected verification failure")
	}
}

func TestParseTokenRejectsGarbage(t *testing.T) {
	if _, err := ParseToken([]byte("secret"), "not-a-token"); err == nil {
		t.Fatalf("expected parse failure")
	}
}
