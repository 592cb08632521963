package rate

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
)

func testLimiter(t *testing.T, cfg Config) (*Limiter, *miniredis.Miniredis) {
	t.Helper()

	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	return New(client, cfg), mr
}

func TestLoginBudget(t *testing.T) {
	limiter, _ := testLimiter(t, Config{
		MaxLoginAttempts:      3,
		LoginCooldownDuration: time.Minute,
	})
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		if err := limiter.IncrementLogin(ctx, "acct-1", ""); err != nil {
			t.Fatalf("attempt %d within budget failed: %v", i+1, err)
		}
	}

	if err := limiter.IncrementLogin(ctx, "acct-1", ""); !errors.Is(err, ErrRateLimited) {
		t.Fatalf("expected ErrRateLimited, got %v", err)
	}
	if err := limiter.CheckLogin(ctx, "acct-1", ""); !errors.Is(err, ErrRateLimited) {
		t.Fatalf("CheckLogin after exhaustion: expected ErrRateLimited, got %v", err)
	}

	// Other identifiers are unaffected.
	if err := limiter.CheckLogin(ctx, "acct-2", ""); err != nil {
		t.Fatalf("unrelated identifier throttled: %v", err)
	}
}

func TestLoginIPThrottle(t *testing.T) {
	limiter, _ := testLimiter(t, Config{
		EnableIPThrottle:      true,
		MaxLoginAttempts:      2,
		LoginCooldownDuration: time.Minute,
	})
	ctx := context.Background()

	for i := 0; i < 2; i++ {
		if err := limiter.IncrementLogin(ctx, "acct-1", "10.0.0.1"); err != nil {
			t.Fatalf("attempt %d failed: %v", i+1, err)
		}
	}

	// Same IP, different identifier: still throttled.
	if err := limiter.IncrementLogin(ctx, "acct-2", "10.0.0.1"); !errors.Is(err, ErrRateLimited) {
		t.Fatalf("expected per-IP ErrRateLimited, got %v", err)
	}
}

func TestResetLoginClearsCounters(t *testing.T) {
	limiter, _ := testLimiter(t, Config{
		MaxLoginAttempts:      1,
		LoginCooldownDuration: time.Minute,
	})
	ctx := context.Background()

	if err := limiter.IncrementLogin(ctx, "acct-1", ""); err != nil {
		t.Fatalf("IncrementLogin failed: %v", err)
	}
	if err := limiter.ResetLogin(ctx, "acct-1", ""); err != nil {
		t.Fatalf("ResetLogin failed: %v", err)
	}
	if err := limiter.IncrementLogin(ctx, "acct-1", ""); err != nil {
		t.Fatalf("attempt after reset failed: %v", err)
	}
}

func TestRefreshBudgetAndWindowExpiry(t *testing.T) {
	limiter, mr := testLimiter(t, Config{
		EnableRefreshThrottle:   true,
		MaxRefreshAttempts:      2,
		RefreshCooldownDuration: time.Minute,
	})
	ctx := context.Background()

	for i := 0; i < 2; i++ {
		if err := limiter.CheckRefresh(ctx, "u-1"); err != nil {
			t.Fatalf("refresh %d within budget failed: %v", i+1, err)
		}
	}
	if err := limiter.CheckRefresh(ctx, "u-1"); !errors.Is(err, ErrRateLimited) {
		t.Fatalf("expected ErrRateLimited, got %v", err)
	}

	mr.FastForward(2 * time.Minute)

	if err := limiter.CheckRefresh(ctx, "u-1"); err != nil {
		t.Fatalf("refresh after window expiry failed: %v", err)
	}
}

func TestRefreshThrottleDisabled(t *testing.T) {
	limiter, _ := testLimiter(t, Config{})

	for i := 0; i < 10; i++ {
		if err := limiter.CheckRefresh(context.Background(), "u-1"); err != nil {
			t.Fatalf("disabled throttle must never limit: %v", err)
		}
	}
}

func TestRedisUnavailable(t *testing.T) {
	limiter, mr := testLimiter(t, Config{
		MaxLoginAttempts:      3,
		LoginCooldownDuration: time.Minute,
	})
	mr.Close()

	err := limiter.IncrementLogin(context.Background(), "acct-1", "")
	if !errors.Is(err, ErrRedisUnavailable) {
		t.Fatalf("expected ErrRedisUnavailable, got %v", err)
	}
}
