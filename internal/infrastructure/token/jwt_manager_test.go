package token

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

func TestGenerateAndValidate_Success(t *testing.T) {
	t.Parallel()

	m := NewJWTManager("super-secret", time.Hour, "campus-attendance")
	userID := "user-123"

	tok, err := m.Generate(userID)
	if err != nil {
		t.Fatalf("Generate error: %v", err)
	}

	gotUserID, err := m.Validate(tok)
	if err != nil {
		t.Fatalf("Validate error: %v", err)
	}
	if gotUserID != userID {
		t.Fatalf("userID mismatch: got %q want %q", gotUserID, userID)
	}
}

func TestValidate_Expired(t *testing.T) {
	t.Parallel()

	m := NewJWTManager("secret", -1*time.Second, "campus-attendance")
	tok, err := m.Generate("u1")
	if err != nil {
		t.Fatalf("Generate error: %v", err)
	}

	if _, err := m.Validate(tok); err == nil {
		t.Fatalf("expected error for expired token, got nil")
	}
}

func TestValidate_WrongSecret(t *testing.T) {
	t.Parallel()

	issuer := NewJWTManager("right-secret", time.Hour, "campus-attendance")
	tok, err := issuer.Generate("u2")
	if err != nil {
		t.Fatalf("Generate error: %v", err)
	}

	verifier := NewJWTManager("wrong-secret", time.Hour, "campus-attendance")
	if _, err := verifier.Validate(tok); err == nil {
		t.Fatalf("expected error for invalid signature, got nil")
	}
}

func TestValidate_MalformedString(t *testing.T) {
	t.Parallel()

	m := NewJWTManager("k", time.Hour, "campus-attendance")
	if _, err := m.Validate("not.a.jwt"); err == nil {
		t.Fatalf("expected error for malformed token, got nil")
	}
}

func TestValidate_MissingSubject(t *testing.T) {
	t.Parallel()

	secret := "k"
	claims := jwt.RegisteredClaims{
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
	}
	tok, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	if err != nil {
		t.Fatalf("SignedString error: %v", err)
	}

	m := NewJWTManager(secret, time.Hour, "campus-attendance")
	if _, err := m.Validate(tok); err == nil {
		t.Fatalf("expected error for token without subject, got nil")
	}
}

func TestValidate_RejectsNonHMAC(t *testing.T) {
	t.Parallel()

	// alg=none tokens must not pass the signing-method check.
	claims := jwt.RegisteredClaims{
		Subject:   "u3",
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
	}
	tok, err := jwt.NewWithClaims(jwt.SigningMethodNone, claims).SignedString(jwt.UnsafeAllowNoneSignatureType)
	if err != nil {
		t.Fatalf("SignedString error: %v", err)
	}

	m := NewJWTManager("k", time.Hour, "campus-attendance")
	if _, err := m.Validate(tok); err == nil {
		t.Fatalf("expected error for unsigned token, got nil")
	}
}
