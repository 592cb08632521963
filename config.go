package webgate

import (
	"bytes"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"github.com/veltrabank/webgate/session"
)

// Config defines a public type used by webgate APIs.
//
// Config instances are intended to be configured during initialization and then treated as immutable unless documented otherwise.
type Config struct {
	Token     TokenConfig
	Cookie    CookieConfig
	Routes    RoutesConfig
	Legacy    session.LegacyConfig
	RateLimit RateLimitConfig

	// Production controls deployment-sensitive behavior, currently the
	// Secure attribute of the session cookie.
	Production bool
}

/*
====================================
TOKEN CONFIG
====================================
*/

// TokenConfig defines a public type used by webgate APIs.
//
// TokenConfig instances are intended to be configured during initialization and then treated as immutable unless documented otherwise.
type TokenConfig struct {
	SessionSecret []byte
	RefreshSecret []byte
	SessionTTL    time.Duration
	RefreshTTL    time.Duration
	Issuer        string
	Leeway        time.Duration
}

/*
====================================
COOKIE CONFIG
====================================
*/

// CookieConfig defines a public type used by webgate APIs.
//
// CookieConfig instances are intended to be configured during initialization and then treated as immutable unless documented otherwise.
type CookieConfig struct {
	Name string
	Path string
}

/*
====================================
ROUTES CONFIG
====================================
*/

// RoutesConfig composes the default route sets with optional extra entries
// and names the three paths the decision table special-cases. Plain data;
// no inheritance between the sets.
type RoutesConfig struct {
	PublicExtra  []string
	PrivateExtra []string

	LoginPath     string
	RegisterPath  string
	DashboardPath string
	RedirectParam string
}

/*
====================================
RATE LIMIT CONFIG
====================================
*/

// RateLimitConfig defines a public type used by webgate APIs.
//
// RateLimitConfig instances are intended to be configured during initialization and then treated as immutable unless documented otherwise.
type RateLimitConfig struct {
	EnableIPThrottle      bool
	EnableRefreshThrottle bool
	MaxLoginAttempts      int
	LoginCooldown         time.Duration
	MaxRefreshAttempts    int
	RefreshCooldown       time.Duration
}

// DefaultConfig returns the default configuration. Secrets are empty and
// must be supplied before [Builder.Build].
func DefaultConfig() Config {
	return defaultConfig()
}

func defaultConfig() Config {
	return Config{
		Token: TokenConfig{
			SessionTTL: 7 * 24 * time.Hour,
			RefreshTTL: 30 * 24 * time.Hour,
			Issuer:     "webgate",
		},
		Cookie: CookieConfig{
			Name: session.DefaultCookieName,
			Path: "/",
		},
		Routes: RoutesConfig{
			LoginPath:     "/auth/login",
			RegisterPath:  "/auth/register",
			DashboardPath: "/dashboard",
			RedirectParam: "redirect",
		},
		Legacy: session.LegacyConfig{
			Enabled:     false,
			TokenCookie: session.DefaultLegacyTokenCookie,
			BlobCookie:  session.DefaultLegacyBlobCookie,
		},
		RateLimit: RateLimitConfig{
			EnableIPThrottle:      true,
			EnableRefreshThrottle: true,
			MaxLoginAttempts:      5,
			LoginCooldown:         15 * time.Minute,
			MaxRefreshAttempts:    10,
			RefreshCooldown:       time.Minute,
		},
	}
}

// Validate checks the startup invariants. Missing or shared secrets are
// fatal configuration errors, never per-request failures.
func (c *Config) Validate() error {
	if len(c.Token.SessionSecret) == 0 || len(c.Token.RefreshSecret) == 0 {
		return ErrConfigSecretMissing
	}
	if bytes.Equal(c.Token.SessionSecret, c.Token.RefreshSecret) {
		return ErrConfigSecretsShared
	}
	if c.Token.SessionTTL <= 0 || c.Token.RefreshTTL <= 0 {
		return fmt.Errorf("%w: token TTLs must be positive", ErrConfigInvalid)
	}
	if c.Token.Leeway < 0 || c.Token.Leeway > 2*time.Minute {
		return fmt.Errorf("%w: leeway out of range", ErrConfigInvalid)
	}
	for _, p := range []string{
		c.Routes.LoginPath,
		c.Routes.RegisterPath,
		c.Routes.DashboardPath,
	} {
		if !strings.HasPrefix(p, "/") {
			return fmt.Errorf("%w: route path %q must be absolute", ErrConfigInvalid, p)
		}
	}
	if strings.TrimSpace(c.Routes.RedirectParam) == "" {
		return fmt.Errorf("%w: redirect parameter must be set", ErrConfigInvalid)
	}
	return nil
}

func cloneConfig(cfg Config) Config {
	out := cfg
	out.Token.SessionSecret = append([]byte(nil), cfg.Token.SessionSecret...)
	out.Token.RefreshSecret = append([]byte(nil), cfg.Token.RefreshSecret...)
	out.Routes.PublicExtra = append([]string(nil), cfg.Routes.PublicExtra...)
	out.Routes.PrivateExtra = append([]string(nil), cfg.Routes.PrivateExtra...)
	return out
}

// ConfigFromEnv builds a Config from WEBGATE_* environment variables,
// loading a .env file first when one is present. Variables:
//
//	WEBGATE_SESSION_SECRET   session signing secret (required)
//	WEBGATE_REFRESH_SECRET   refresh signing secret (required)
//	WEBGATE_SESSION_TTL      session token lifetime, Go duration (optional)
//	WEBGATE_REFRESH_TTL      refresh token lifetime, Go duration (optional)
//	WEBGATE_ENV              "production" enables the Secure cookie flag
//	WEBGATE_LEGACY_COOKIES   "1" enables the legacy two-cookie reader
//
// Validation is deferred to [Builder.Build] so callers can still override
// fields programmatically.
func ConfigFromEnv() (Config, error) {
	_ = godotenv.Load()

	cfg := defaultConfig()
	cfg.Token.SessionSecret = []byte(os.Getenv("WEBGATE_SESSION_SECRET"))
	cfg.Token.RefreshSecret = []byte(os.Getenv("WEBGATE_REFRESH_SECRET"))
	cfg.Production = os.Getenv("WEBGATE_ENV") == "production"
	cfg.Legacy.Enabled = os.Getenv("WEBGATE_LEGACY_COOKIES") == "1"

	if raw := os.Getenv("WEBGATE_SESSION_TTL"); raw != "" {
		ttl, err := time.ParseDuration(raw)
		if err != nil {
			return Config{}, fmt.Errorf("%w: WEBGATE_SESSION_TTL: %v", ErrConfigInvalid, err)
		}
		cfg.Token.SessionTTL = ttl
	}
	if raw := os.Getenv("WEBGATE_REFRESH_TTL"); raw != "" {
		ttl, err := time.ParseDuration(raw)
		if err != nil {
			return Config{}, fmt.Errorf("%w: WEBGATE_REFRESH_TTL: %v", ErrConfigInvalid, err)
		}
		cfg.Token.RefreshTTL = ttl
	}

	return cfg, nil
}
