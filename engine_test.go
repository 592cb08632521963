package webgate

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"

	"github.com/veltrabank/webgate/session"
	"github.com/veltrabank/webgate/token"
)

func testClaims() token.Claims {
	return token.Claims{ID: "u-1", Email: "ada@example.com", Name: "Ada", Role: token.RoleUser}
}

func buildEngineWithRedis(t *testing.T, cfg Config) (*Engine, *miniredis.Miniredis) {
	t.Helper()

	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	engine, err := New().WithConfig(cfg).WithRedis(client).Build()
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}
	return engine, mr
}

func TestLoginMintsVerifiablePair(t *testing.T) {
	engine := buildEngine(t, testConfig())

	res, err := engine.Login(context.Background(), testClaims())
	if err != nil {
		t.Fatalf("Login failed: %v", err)
	}
	if res.SessionToken == "" || res.RefreshToken == "" {
		t.Fatal("expected both tokens to be minted")
	}
	if res.SessionToken == res.RefreshToken {
		t.Fatal("session and refresh tokens must differ")
	}

	// The session token must authorize a gated route.
	cookie := &http.Cookie{Name: session.DefaultCookieName, Value: res.SessionToken}
	d := engine.Evaluate(request(t, "/dashboard", cookie))
	if d.Action != ActionPass || d.Claims == nil || d.Claims.ID != "u-1" {
		t.Fatalf("minted session token rejected: %+v", d)
	}
}

func TestRefreshTokenNeverAuthorizesRoutes(t *testing.T) {
	engine := buildEngine(t, testConfig())

	res, err := engine.Login(context.Background(), testClaims())
	if err != nil {
		t.Fatalf("Login failed: %v", err)
	}

	cookie := &http.Cookie{Name: session.DefaultCookieName, Value: res.RefreshToken}
	d := engine.Evaluate(request(t, "/dashboard", cookie))
	if d.Action != ActionRedirect || !d.ClearsSession() {
		t.Fatalf("refresh token in the session cookie must be rejected, got %+v", d)
	}
}

func TestRefresh(t *testing.T) {
	engine := buildEngine(t, testConfig())

	res, err := engine.Login(context.Background(), testClaims())
	if err != nil {
		t.Fatalf("Login failed: %v", err)
	}

	t.Run("valid refresh mints a new session token", func(t *testing.T) {
		minted, err := engine.Refresh(context.Background(), res.RefreshToken)
		if err != nil {
			t.Fatalf("Refresh failed: %v", err)
		}

		cookie := &http.Cookie{Name: session.DefaultCookieName, Value: minted}
		d := engine.Evaluate(request(t, "/banking/transfers", cookie))
		if d.Action != ActionPass {
			t.Fatalf("refreshed session token rejected: %+v", d)
		}
	})

	t.Run("session token is not a refresh token", func(t *testing.T) {
		_, err := engine.Refresh(context.Background(), res.SessionToken)
		if !errors.Is(err, ErrRefreshInvalid) {
			t.Fatalf("expected ErrRefreshInvalid, got %v", err)
		}
	})

	t.Run("garbage is rejected", func(t *testing.T) {
		_, err := engine.Refresh(context.Background(), "not-a-token")
		if !errors.Is(err, ErrRefreshInvalid) {
			t.Fatalf("expected ErrRefreshInvalid, got %v", err)
		}
	})

	t.Run("expired refresh token is rejected", func(t *testing.T) {
		cfg := testConfig()
		cfg.Token.RefreshTTL = time.Millisecond
		short := buildEngine(t, cfg)

		res, err := short.Login(context.Background(), testClaims())
		if err != nil {
			t.Fatalf("Login failed: %v", err)
		}
		time.Sleep(5 * time.Millisecond)

		_, err = short.Refresh(context.Background(), res.RefreshToken)
		if !errors.Is(err, ErrRefreshInvalid) {
			t.Fatalf("expected ErrRefreshInvalid, got %v", err)
		}
	})
}

func TestRefreshRateLimited(t *testing.T) {
	cfg := testConfig()
	cfg.RateLimit.MaxRefreshAttempts = 3
	engine, _ := buildEngineWithRedis(t, cfg)

	res, err := engine.Login(context.Background(), testClaims())
	if err != nil {
		t.Fatalf("Login failed: %v", err)
	}

	for i := 0; i < 3; i++ {
		if _, err := engine.Refresh(context.Background(), res.RefreshToken); err != nil {
			t.Fatalf("refresh %d failed: %v", i, err)
		}
	}

	_, err = engine.Refresh(context.Background(), res.RefreshToken)
	if !errors.Is(err, ErrRefreshRateLimited) {
		t.Fatalf("expected ErrRefreshRateLimited, got %v", err)
	}
	if got := engine.MetricsSnapshot().Counters[MetricRefreshRateLimited]; got != 1 {
		t.Fatalf("MetricRefreshRateLimited = %d, want 1", got)
	}
}

func TestLoginBudget(t *testing.T) {
	cfg := testConfig()
	cfg.RateLimit.MaxLoginAttempts = 2
	engine, mr := buildEngineWithRedis(t, cfg)

	ctx := WithClientIP(context.Background(), "10.0.0.1")

	if err := engine.CheckLogin(ctx, "u-1"); err != nil {
		t.Fatalf("fresh identifier must be within budget: %v", err)
	}

	// Burn through the budget with failed credential checks.
	for i := 0; i < 3; i++ {
		_ = engine.RecordLoginFailure(ctx, "u-1")
	}
	if err := engine.CheckLogin(ctx, "u-1"); !errors.Is(err, ErrLoginRateLimited) {
		t.Fatalf("expected ErrLoginRateLimited, got %v", err)
	}
	if _, err := engine.Login(ctx, testClaims()); !errors.Is(err, ErrLoginRateLimited) {
		t.Fatalf("Login must honor the budget, got %v", err)
	}

	// The cooldown window expiring restores the budget.
	mr.FastForward(cfg.RateLimit.LoginCooldown + time.Second)
	if err := engine.CheckLogin(ctx, "u-1"); err != nil {
		t.Fatalf("budget must reset after cooldown: %v", err)
	}
}

func TestLoginSuccessResetsBudget(t *testing.T) {
	cfg := testConfig()
	cfg.RateLimit.MaxLoginAttempts = 3
	engine, _ := buildEngineWithRedis(t, cfg)

	ctx := WithClientIP(context.Background(), "10.0.0.2")

	for i := 0; i < 2; i++ {
		_ = engine.RecordLoginFailure(ctx, "u-1")
	}
	if _, err := engine.Login(ctx, testClaims()); err != nil {
		t.Fatalf("Login within budget failed: %v", err)
	}

	// A successful login clears the counter entirely.
	for i := 0; i < 2; i++ {
		_ = engine.RecordLoginFailure(ctx, "u-1")
	}
	if err := engine.CheckLogin(ctx, "u-1"); err != nil {
		t.Fatalf("counter should have been reset by the successful login: %v", err)
	}
}

func TestLogoutClearsCookie(t *testing.T) {
	engine := buildEngine(t, testConfig())

	w := httptest.NewRecorder()
	engine.Logout(w)

	cookies := w.Result().Cookies()
	if len(cookies) != 1 {
		t.Fatalf("expected one Set-Cookie, got %d", len(cookies))
	}
	c := cookies[0]
	if c.Name != session.DefaultCookieName || c.Value != "" || c.MaxAge >= 0 {
		t.Fatalf("unexpected clearing cookie: %+v", c)
	}
	if got := engine.MetricsSnapshot().Counters[MetricLogout]; got != 1 {
		t.Fatalf("MetricLogout = %d, want 1", got)
	}
}

func TestWriteSessionCookieAttributes(t *testing.T) {
	cfg := testConfig()
	cfg.Production = true
	engine := buildEngine(t, cfg)

	w := httptest.NewRecorder()
	engine.WriteSessionCookie(w, "tok")

	cookies := w.Result().Cookies()
	if len(cookies) != 1 {
		t.Fatalf("expected one Set-Cookie, got %d", len(cookies))
	}
	c := cookies[0]
	if !c.HttpOnly || !c.Secure || c.SameSite != http.SameSiteStrictMode || c.Path != "/" {
		t.Fatalf("unexpected cookie attributes: %+v", c)
	}
	if want := int(cfg.Token.SessionTTL / time.Second); c.MaxAge != want {
		t.Fatalf("MaxAge = %d, want %d", c.MaxAge, want)
	}
}

func TestEngineNotReady(t *testing.T) {
	var engine *Engine

	if _, err := engine.Login(context.Background(), testClaims()); !errors.Is(err, ErrEngineNotReady) {
		t.Fatalf("expected ErrEngineNotReady, got %v", err)
	}
	if _, err := engine.Refresh(context.Background(), "x"); !errors.Is(err, ErrEngineNotReady) {
		t.Fatalf("expected ErrEngineNotReady, got %v", err)
	}
}

func TestMetricsSnapshotNilEngine(t *testing.T) {
	var engine *Engine

	snap := engine.MetricsSnapshot()
	if snap.Counters == nil || len(snap.Counters) != 0 {
		t.Fatalf("nil engine must yield an empty snapshot, got %v", snap.Counters)
	}
}
