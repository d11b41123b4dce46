package middleware

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/staylist/staylist-backend/internal/api/httpx"
	"github.com/staylist/staylist-backend/internal/auth"
	"github.com/staylist/staylist-backend/internal/metrics"
)

type claimsKey struct{}

func WithClaims(ctx context.Context, c *auth.Claims) context.Context {
	return context.WithValue(ctx, claimsKey{}, c)
}

func ClaimsFrom(ctx context.Context) (*auth.Claims, bool) {
	c, ok := ctx.Value(claimsKey{}).(*auth.Claims)
	return c, ok
}

// UserLookup is the minimal store dependency the guard needs to rebuild a
// full claim set when rotating an expired access token.
type UserLookup interface {
	LookupIdentity(ctx context.Context, userID string) (username, role string, err error)
}

// Guard gates protected routes. Outcomes per request:
//
//	missing/malformed header            -> 403 Access Denied
//	valid access token                  -> claims in context, proceed
//	expired access, no refresh header   -> 401 Token expired, login again
//	expired access, valid refresh       -> rotate: new access token in the
//	                                       x-access-token response header, proceed
//	expired access, bad refresh         -> 403 Invalid refresh token
//	otherwise invalid access token      -> 401 Invalid token
type Guard struct {
	tm    *auth.TokenManager
	users UserLookup
}

func NewGuard(tm *auth.TokenManager, users UserLookup) *Guard {
	return &Guard{tm: tm, users: users}
}

func (g *Guard) Require(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ah := r.Header.Get("Authorization")
		if ah == "" || !strings.HasPrefix(ah, "Bearer ") {
			httpx.WriteError(w, http.StatusForbidden, "Access Denied")
			return
		}
		token := strings.TrimSpace(ah[len("Bearer "):])

		claims, err := g.tm.VerifyAccess(token)
		if err == nil {
			next.ServeHTTP(w, r.WithContext(WithClaims(r.Context(), claims)))
			return
		}

		if !errors.Is(err, auth.ErrTokenExpired) {
			httpx.WriteError(w, http.StatusUnauthorized, "Invalid token")
			return
		}

		refresh := r.Header.Get("x-refresh-token")
		if refresh == "" {
			httpx.WriteError(w, http.StatusUnauthorized, "Token expired, login again")
			return
		}

		refClaims, err := g.tm.VerifyRefresh(refresh)
		if err != nil {
			httpx.WriteError(w, http.StatusForbidden, "Invalid refresh token")
			return
		}

		// Rebuild the canonical claim set so the rotated token is
		// indistinguishable from a login-issued one.
		username, role, err := g.users.LookupIdentity(r.Context(), refClaims.UserID)
		if err != nil {
			httpx.WriteError(w, http.StatusForbidden, "Invalid refresh token")
			return
		}
		newAccess, err := g.tm.IssueAccess(refClaims.UserID, username, role)
		if err != nil {
			httpx.WriteError(w, http.StatusInternalServerError, "Internal Server Error")
			return
		}

		metrics.GuardRotationsTotal.Inc()
		w.Header().Set("x-access-token", newAccess)
		full := &auth.Claims{UserID: refClaims.UserID, Username: username, Role: role}
		next.ServeHTTP(w, r.WithContext(WithClaims(r.Context(), full)))
	})
}
