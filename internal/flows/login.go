package flows

import (
	"context"

	"github.com/veltrabank/webgate/token"
)

// LoginResult carries the freshly minted credential pair.
type LoginResult struct {
	SessionToken string
	RefreshToken string
}

// LoginRateLimiter is the subset of the rate limiter the login flow needs.
type LoginRateLimiter interface {
	CheckLogin(ctx context.Context, identifier, ip string) error
	ResetLogin(ctx context.Context, identifier, ip string) error
}

// LoginDeps captures login flow dependencies.
type LoginDeps struct {
	IssueSession func(token.Claims) (string, error)
	IssueRefresh func(token.Claims) (string, error)
	ClientIP     func(context.Context) string
	RateLimiter  LoginRateLimiter
}

// RunLogin mints the session and refresh token pair for claims handed over
// by the external credential collaborator. The credential check itself
// happened before this point; the flow only enforces the issuance budget
// and clears the failure counter on success.
func RunLogin(ctx context.Context, claims token.Claims, deps LoginDeps) (LoginResult, error) {
	ip := ""
	if deps.ClientIP != nil {
		ip = deps.ClientIP(ctx)
	}

	if deps.RateLimiter != nil {
		if err := deps.RateLimiter.CheckLogin(ctx, claims.ID, ip); err != nil {
			return LoginResult{}, err
		}
	}

	sessionToken, err := deps.IssueSession(claims)
	if err != nil {
		return LoginResult{}, err
	}

	refreshToken, err := deps.IssueRefresh(claims)
	if err != nil {
		return LoginResult{}, err
	}

	if deps.RateLimiter != nil {
		// Best effort: a throttle-store hiccup must not fail a valid login.
		_ = deps.RateLimiter.ResetLogin(ctx, claims.ID, ip)
	}

	return LoginResult{SessionToken: sessionToken, RefreshToken: refreshToken}, nil
}
