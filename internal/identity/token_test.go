package identity

import (
	"testing"
	"time"

	"github.com/careloop/hms-backend/internal/apperr"
)

func TestTokenRoundTrip(t *testing.T) {
	p := NewTokenProvider("test-secret", time.Hour)

	token, err := p.Generate("alice@example.com", RoleDoctor)
	if err != nil {
		t.Fatalf("generate: %v", err)
	}

	email, role, err := p.Parse(token)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if email != "alice@example.com" {
		t.Errorf("subject = %q, want alice@example.com", email)
	}
	if role != RoleDoctor {
		t.Errorf("role = %q, want DOCTOR", role)
	}
}

func TestTokenExpired(t *testing.T) {
	p := NewTokenProvider("test-secret", -time.Minute)

	token, err := p.Generate("alice@example.com", RolePatient)
	if err != nil {
		t.Fatalf("generate: %v", err)
	}

	_, _, err = p.Parse(token)
	if !apperr.IsKind(err, apperr.KindUnauthenticated) {
		t.Fatalf("expected unauthenticated for expired token, got %v", err)
	}
}

func TestTokenWrongKey(t *testing.T) {
	issuer := NewTokenProvider("issuer-secret", time.Hour)
	verifier := NewTokenProvider("other-secret", time.Hour)

	token, err := issuer.Generate("alice@example.com", RolePatient)
	if err != nil {
		t.Fatalf("generate: %v", err)
	}

	_, _, err = verifier.Parse(token)
	if !apperr.IsKind(err, apperr.KindUnauthenticated) {
		t.Fatalf("expected unauthenticated for wrong key, got %v", err)
	}
}

func TestTokenGarbage(t *testing.T) {
	p := NewTokenProvider("test-secret", time.Hour)

	_, _, err := p.Parse("not-a-token")
	if !apperr.IsKind(err, apperr.KindUnauthenticated) {
		t.Fatalf("expected unauthenticated for garbage input, got %v", err)
	}
}
