package webgate

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"go.uber.org/zap"

	"github.com/veltrabank/webgate/internal/flows"
	"github.com/veltrabank/webgate/internal/rate"
	"github.com/veltrabank/webgate/routes"
	"github.com/veltrabank/webgate/session"
	"github.com/veltrabank/webgate/token"
)

// Engine is the request-gating engine: it classifies paths, verifies
// session credentials, and produces the allow/redirect decision for every
// inbound request. It also owns the token-minting boundaries (login,
// refresh, logout).
//
// An Engine is immutable after [Builder.Build] and safe for concurrent use.
// Gating itself is a stateless pure function over (path, cookies,
// configuration); the only shared resource is the read-only secret
// configuration, plus an optional Redis-backed limiter that is consulted
// exclusively at the minting boundaries.
type Engine struct {
	config     Config
	sessions   *token.Codec
	refreshes  *token.Codec
	cookies    *session.CookieStore
	legacy     *session.LegacyReader
	classifier *routes.Classifier
	limiter    *rate.Limiter
	logger     *zap.Logger
	metrics    *Metrics
}

// LoginResult carries the credential pair minted at login.
type LoginResult struct {
	SessionToken string
	RefreshToken string
}

// Login mints a session and refresh token for claims handed over by the
// external credential collaborator, and returns both. The caller writes the
// session token via [Engine.WriteSessionCookie]; the refresh token is
// returned to the client out of band and never authorizes a gated route.
func (e *Engine) Login(ctx context.Context, claims token.Claims) (LoginResult, error) {
	if e == nil || e.sessions == nil {
		return LoginResult{}, ErrEngineNotReady
	}

	res, err := flows.RunLogin(ctx, claims, flows.LoginDeps{
		IssueSession: e.sessions.Issue,
		IssueRefresh: e.refreshes.Issue,
		ClientIP:     clientIPFromContext,
		RateLimiter:  e.loginLimiter(),
	})
	if err != nil {
		if errors.Is(err, rate.ErrRateLimited) {
			e.metrics.Inc(MetricLoginRateLimited)
			return LoginResult{}, ErrLoginRateLimited
		}
		return LoginResult{}, err
	}

	e.metrics.Inc(MetricLoginIssued)
	return LoginResult{
		SessionToken: res.SessionToken,
		RefreshToken: res.RefreshToken,
	}, nil
}

// Refresh verifies the refresh credential and mints a fresh session token
// for the same claims. Expired or malformed refresh tokens resolve to
// [ErrRefreshInvalid]; the caller should send the client back through login.
func (e *Engine) Refresh(ctx context.Context, refreshToken string) (string, error) {
	if e == nil || e.refreshes == nil {
		return "", ErrEngineNotReady
	}

	res := flows.RunRefresh(ctx, refreshToken, flows.RefreshDeps{
		VerifyRefresh: e.refreshes.Verify,
		IssueSession:  e.sessions.Issue,
		RateLimiter:   e.refreshLimiter(),
	})

	switch res.Failure {
	case flows.RefreshFailureNone:
		e.metrics.Inc(MetricRefreshSuccess)
		return res.SessionToken, nil
	case flows.RefreshFailureRateLimited:
		e.metrics.Inc(MetricRefreshRateLimited)
		return "", ErrRefreshRateLimited
	case flows.RefreshFailureVerify:
		e.metrics.Inc(MetricRefreshFailure)
		e.logger.Warn("refresh token rejected", zap.Error(res.Err))
		return "", fmt.Errorf("%w: %v", ErrRefreshInvalid, res.Err)
	default:
		e.metrics.Inc(MetricRefreshFailure)
		return "", res.Err
	}
}

// Logout clears the session cookie on the response. Tokens are stateless:
// no server-side state is invalidated, and a credential already held by a
// client stays valid until its embedded expiry.
func (e *Engine) Logout(w http.ResponseWriter) {
	flows.RunLogout(flows.LogoutDeps{
		ClearSession: func() { e.cookies.Clear(w) },
	})
	e.metrics.Inc(MetricLogout)
}

// CheckLogin reports whether the identifier (plus the client IP attached
// via [WithClientIP]) is still within the failed-login budget. Call before
// the external credential check.
func (e *Engine) CheckLogin(ctx context.Context, identifier string) error {
	if e.limiter == nil {
		return nil
	}
	if err := e.limiter.CheckLogin(ctx, identifier, clientIPFromContext(ctx)); err != nil {
		if errors.Is(err, rate.ErrRateLimited) {
			e.metrics.Inc(MetricLoginRateLimited)
			return ErrLoginRateLimited
		}
		return err
	}
	return nil
}

// RecordLoginFailure counts a failed external credential check against the
// identifier+IP budget.
func (e *Engine) RecordLoginFailure(ctx context.Context, identifier string) error {
	if e.limiter == nil {
		return nil
	}
	err := e.limiter.IncrementLogin(ctx, identifier, clientIPFromContext(ctx))
	if errors.Is(err, rate.ErrRateLimited) {
		e.metrics.Inc(MetricLoginRateLimited)
		return ErrLoginRateLimited
	}
	return err
}

// WriteSessionCookie sets the session cookie on the response being built.
func (e *Engine) WriteSessionCookie(w http.ResponseWriter, sessionToken string) {
	e.cookies.Write(w, sessionToken)
}

// ClearSessionCookie deletes the session cookie on the response being built.
func (e *Engine) ClearSessionCookie(w http.ResponseWriter) {
	e.cookies.Clear(w)
	e.metrics.Inc(MetricSessionCookieCleared)
}

// MetricsSnapshot returns a point-in-time copy of the engine counters.
// Safe on a nil engine: exporters may be wired before the engine is.
func (e *Engine) MetricsSnapshot() MetricsSnapshot {
	if e == nil {
		return MetricsSnapshot{Counters: make(map[MetricID]uint64)}
	}
	return e.metrics.Snapshot()
}

func (e *Engine) loginLimiter() flows.LoginRateLimiter {
	if e.limiter == nil {
		return nil
	}
	return e.limiter
}

func (e *Engine) refreshLimiter() flows.RefreshRateLimiter {
	if e.limiter == nil {
		return nil
	}
	return e.limiter
}
