package auth

import (
	"errors"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

func testManager() *TokenManager {
	return NewTokenManager("access-secret", "refresh-secret")
}

func TestIssuePairAndVerifyAccess(t *testing.T) {
	t.Parallel()

	tm := testManager()
	access, refresh, err := tm.IssuePair("u1", "alice", "admin")
	if err != nil {
		t.Fatalf("IssuePair error: %v", err)
	}
	if access == "" || refresh == "" {
		t.Fatalf("expected non-empty pair")
	}

	claims, err := tm.VerifyAccess(access)
	if err != nil {
		t.Fatalf("VerifyAccess error: %v", err)
	}
	if claims.UserID != "u1" || claims.Username != "alice" || claims.Role != "admin" {
		t.Fatalf("claims mismatch: %+v", claims)
	}
}

func TestVerifyRefresh_CarriesOnlyUserID(t *testing.T) {
	t.Parallel()

	tm := testManager()
	_, refresh, err := tm.IssuePair("u1", "alice", "admin")
	if err != nil {
		t.Fatalf("IssuePair error: %v", err)
	}

	claims, err := tm.VerifyRefresh(refresh)
	if err != nil {
		t.Fatalf("VerifyRefresh error: %v", err)
	}
	if claims.UserID != "u1" {
		t.Fatalf("UserID mismatch: got %q", claims.UserID)
	}
	if claims.Username != "" || claims.Role != "" {
		t.Fatalf("refresh claims should carry only the user id, got %+v", claims)
	}
}

func TestVerifyAccess_ExpiredIsNotInvalid(t *testing.T) {
	t.Parallel()

	tm := &TokenManager{
		accessSecret:  []byte("access-secret"),
		refreshSecret: []byte("refresh-secret"),
		accessTTL:     -time.Minute,
		refreshTTL:    RefreshTTL,
	}
	access, _, err := tm.IssuePair("u1", "alice", "user")
	if err != nil {
		t.Fatalf("IssuePair error: %v", err)
	}

	_, err = tm.VerifyAccess(access)
	if !errors.Is(err, ErrTokenExpired) {
		t.Fatalf("expected ErrTokenExpired, got %v", err)
	}
}

func TestVerifyAccess_TamperedIsInvalidNotExpired(t *testing.T) {
	t.Parallel()

	tm := testManager()
	other := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		UserID: "u1",
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	})
	tok, err := other.SignedString([]byte("wrong-secret"))
	if err != nil {
		t.Fatalf("sign error: %v", err)
	}

	_, err = tm.VerifyAccess(tok)
	if !errors.Is(err, ErrTokenInvalid) {
		t.Fatalf("expected ErrTokenInvalid, got %v", err)
	}
	if errors.Is(err, ErrTokenExpired) {
		t.Fatalf("tampered token must not be reported expired")
	}
}

func TestVerifyRefresh_AccessSecretRejected(t *testing.T) {
	t.Parallel()

	tm := testManager()
	access, _, err := tm.IssuePair("u1", "alice", "user")
	if err != nil {
		t.Fatalf("IssuePair error: %v", err)
	}

	if _, err := tm.VerifyRefresh(access); !errors.Is(err, ErrTokenInvalid) {
		t.Fatalf("access token must not verify as refresh, got %v", err)
	}
}

func TestVerifyAccess_Malformed(t *testing.T) {
	t.Parallel()

	tm := testManager()
	if _, err := tm.VerifyAccess("not.a.jwt"); !errors.Is(err, ErrTokenInvalid) {
		t.Fatalf("expected ErrTokenInvalid, got %v", err)
	}
}
