package flows

import (
	"context"

	"github.com/veltrabank/webgate/token"
)

// RefreshFailureKind classifies refresh flow failures for root-level mapping.
type RefreshFailureKind int

const (
	RefreshFailureNone RefreshFailureKind = iota
	RefreshFailureVerify
	RefreshFailureRateLimited
	RefreshFailureIssue
)

// RefreshResult carries either the issued session token or failure metadata.
type RefreshResult struct {
	Failure      RefreshFailureKind
	Err          error
	Claims       *token.Claims
	SessionToken string
}

// RefreshRateLimiter is the subset of the rate limiter the refresh flow needs.
type RefreshRateLimiter interface {
	CheckRefresh(ctx context.Context, subject string) error
}

// RefreshDeps captures refresh flow dependencies.
type RefreshDeps struct {
	VerifyRefresh func(string) (*token.Claims, error)
	IssueSession  func(token.Claims) (string, error)
	RateLimiter   RefreshRateLimiter
}

// RunRefresh verifies the long-lived refresh credential and mints a new
// session token for the same claims. The refresh token never authorizes a
// protected route directly; it only reaches this flow.
func RunRefresh(ctx context.Context, refreshToken string, deps RefreshDeps) RefreshResult {
	claims, err := deps.VerifyRefresh(refreshToken)
	if err != nil {
		return RefreshResult{Failure: RefreshFailureVerify, Err: err}
	}

	if deps.RateLimiter != nil {
		if err := deps.RateLimiter.CheckRefresh(ctx, claims.ID); err != nil {
			return RefreshResult{Failure: RefreshFailureRateLimited, Err: err, Claims: claims}
		}
	}

	sessionToken, err := deps.IssueSession(*claims)
	if err != nil {
		return RefreshResult{Failure: RefreshFailureIssue, Err: err, Claims: claims}
	}

	return RefreshResult{Claims: claims, SessionToken: sessionToken}
}
