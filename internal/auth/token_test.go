package auth

import (
	"errors"
	"strings"
	"testing"
	"time"

	jwt "github.com/golang-jwt/jwt/v5"

	"taskAssignment/internal/testutil"
	"taskAssignment/models"
)

const testSecret = "test-secret"

func newTokens(t *testing.T, ttl time.Duration) *TokenService {
	t.Helper()
	s, err := NewTokenService(testSecret, ttl)
	if err != nil {
		t.Fatalf("NewTokenService: %v", err)
	}
	return s
}

func TestTokenService_IssueVerifyRoundTrip(t *testing.T) {
	s := newTokens(t, 0)
	tok, err := s.Issue(42, models.RoleTeacher)
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}
	if strings.Count(tok, ".") != 2 {
		t.Fatalf("expected compact JWS, got %q", tok)
	}
	id, err := s.Verify(tok)
	if err != nil {
		t.Fatalf("Verify: %v", err)
	}
	if id.SubjectID != 42 || id.Role != models.RoleTeacher {
		t.Fatalf("identity mismatch: %+v", id)
	}
}

func TestTokenService_NoExpiryByDefault(t *testing.T) {
	s := newTokens(t, 0)
	tok, _ := s.Issue(1, models.RoleAdmin)
	var c jwt.MapClaims
	if _, _, err := jwt.NewParser().ParseUnverified(tok, &c); err != nil {
		t.Fatalf("parse unverified: %v", err)
	}
	if _, ok := c["exp"]; ok {
		t.Fatalf("expected no exp claim, got %v", c)
	}
	if len(c) != 2 {
		t.Fatalf("expected exactly id and role claims, got %v", c)
	}
}

func TestTokenService_WrongSecret(t *testing.T) {
	tok := testutil.GenerateJWTHS256(t, "other-secret", 7, "teacher")
	_, err := newTokens(t, 0).Verify(tok)
	if !errors.Is(err, ErrInvalidSignature) {
		t.Fatalf("expected ErrInvalidSignature, got %v", err)
	}
}

func TestTokenService_Tampered(t *testing.T) {
	s := newTokens(t, 0)
	tok, _ := s.Issue(7, models.RoleTeacher)
	forged := testutil.GenerateJWTHS256(t, testSecret, 1, "admin")
	// Keep the forged payload, reuse the original signature.
	parts := strings.Split(tok, ".")
	fparts := strings.Split(forged, ".")
	tampered := parts[0] + "." + fparts[1] + "." + parts[2]
	if _, err := s.Verify(tampered); !errors.Is(err, ErrInvalidSignature) {
		t.Fatalf("expected ErrInvalidSignature, got %v", err)
	}
}

func TestTokenService_Malformed(t *testing.T) {
	s := newTokens(t, 0)
	for _, raw := range []string{"", "garbage", "a.b.c", "....."} {
		if _, err := s.Verify(raw); !errors.Is(err, ErrMalformedToken) {
			t.Fatalf("Verify(%q): expected ErrMalformedToken, got %v", raw, err)
		}
	}
}

func TestTokenService_RejectsNoneAlgorithm(t *testing.T) {
	tok, err := jwt.NewWithClaims(jwt.SigningMethodNone, jwt.MapClaims{"id": 1, "role": "admin"}).SignedString(jwt.UnsafeAllowNoneSignatureType)
	if err != nil {
		t.Fatalf("sign none: %v", err)
	}
	if _, err := newTokens(t, 0).Verify(tok); !errors.Is(err, ErrInvalidSignature) {
		t.Fatalf("expected ErrInvalidSignature for alg=none, got %v", err)
	}
}

func TestTokenService_ClaimsValidation(t *testing.T) {
	s := newTokens(t, 0)
	missing := testutil.SignClaims(t, testSecret, jwt.MapClaims{"role": "teacher"})
	if _, err := s.Verify(missing); !errors.Is(err, ErrMalformedToken) {
		t.Fatalf("expected ErrMalformedToken for missing id, got %v", err)
	}
	unknown := testutil.GenerateJWTHS256(t, testSecret, 3, "student")
	if _, err := s.Verify(unknown); !errors.Is(err, ErrUnknownRole) {
		t.Fatalf("expected ErrUnknownRole, got %v", err)
	}
	for _, role := range []string{"Admin", "ADMIN", " admin"} {
		tok := testutil.GenerateJWTHS256(t, testSecret, 3, role)
		if id, err := s.Verify(tok); !errors.Is(err, ErrUnknownRole) {
			t.Fatalf("role %q: expected ErrUnknownRole, got %+v, %v", role, id, err)
		}
	}
}

func TestTokenService_Expiry(t *testing.T) {
	s := newTokens(t, time.Minute)
	base := time.Now()
	s.now = func() time.Time { return base }
	tok, err := s.Issue(5, models.RoleTeacher)
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}
	if _, err := s.Verify(tok); err != nil {
		t.Fatalf("fresh token: %v", err)
	}
	s.now = func() time.Time { return base.Add(2 * time.Minute) }
	if _, err := s.Verify(tok); !errors.Is(err, ErrTokenExpired) {
		t.Fatalf("expected ErrTokenExpired, got %v", err)
	}
}

func TestTokenService_IssueRejectsBadInput(t *testing.T) {
	s := newTokens(t, 0)
	if _, err := s.Issue(0, models.RoleAdmin); err == nil {
		t.Fatalf("expected error for zero subject")
	}
	if _, err := s.Issue(1, models.Role("root")); err == nil {
		t.Fatalf("expected error for unknown role")
	}
	if _, err := NewTokenService("", 0); err == nil {
		t.Fatalf("expected error for empty secret")
	}
}
