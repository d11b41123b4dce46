package auth

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var (
	// ErrTokenExpired means the signature checked out but the token is past
	// its expiry; the guard can still recover via a refresh token.
	ErrTokenExpired = errors.New("token expired")
	// ErrTokenInvalid covers bad signatures, malformed tokens and anything
	// else that is not recoverable.
	ErrTokenInvalid = errors.New("invalid token")
)

const (
	AccessTTL  = 15 * time.Minute
	RefreshTTL = 7 * 24 * time.Hour
)

// Claims carried by an access token. Refresh tokens reuse the struct with
// only UserID set.
type Claims struct {
	UserID   string `json:"userId"`
	Username string `json:"username,omitempty"`
	Role     string `json:"role,omitempty"`
	jwt.RegisteredClaims
}

// TokenManager signs and verifies the two credential classes. Access tokens
// carry the full identity claims, refresh tokens only the user id, each
// under its own secret.
type TokenManager struct {
	accessSecret  []byte
	refreshSecret []byte
	accessTTL     time.Duration
	refreshTTL    time.Duration
}

func NewTokenManager(accessSecret, refreshSecret string) *TokenManager {
	return &TokenManager{
		accessSecret:  []byte(accessSecret),
		refreshSecret: []byte(refreshSecret),
		accessTTL:     AccessTTL,
		refreshTTL:    RefreshTTL,
	}
}

// IssuePair mints an access/refresh pair for the given identity. It has no
// side effects; persisting the refresh token on the user record is the
// caller's contract.
func (tm *TokenManager) IssuePair(userID, username, role string) (access string, refresh string, err error) {
	now := time.Now()

	access, err = jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		UserID:   userID,
		Username: username,
		Role:     role,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(tm.accessTTL)),
		},
	}).SignedString(tm.accessSecret)
	if err != nil {
		return "", "", err
	}

	refresh, err = jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		UserID: userID,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(tm.refreshTTL)),
		},
	}).SignedString(tm.refreshSecret)
	if err != nil {
		return "", "", err
	}
	return access, refresh, nil
}

// IssueAccess mints a standalone access token with the canonical claim set.
// Used by the guard when rotating an expired token.
func (tm *TokenManager) IssueAccess(userID, username, role string) (string, error) {
	now := time.Now()
	return jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		UserID:   userID,
		Username: username,
		Role:     role,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(tm.accessTTL)),
		},
	}).SignedString(tm.accessSecret)
}

// VerifyAccess decodes an access token. ErrTokenExpired and ErrTokenInvalid
// are distinct outcomes: only the former is recoverable with a refresh token.
func (tm *TokenManager) VerifyAccess(token string) (*Claims, error) {
	return tm.verify(token, tm.accessSecret, true)
}

// VerifyRefresh decodes a refresh token. Expiry is not a recoverable state
// here, so every failure collapses to ErrTokenInvalid.
func (tm *TokenManager) VerifyRefresh(token string) (*Claims, error) {
	return tm.verify(token, tm.refreshSecret, false)
}

func (tm *TokenManager) verify(token string, secret []byte, splitExpired bool) (*Claims, error) {
	claims := &Claims{}
	_, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (any, error) {
		return secret, nil
	})
	if err != nil {
		if splitExpired && errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrTokenExpired
		}
		return nil, ErrTokenInvalid
	}
	return claims, nil
}
