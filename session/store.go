package session

import (
	"net/http"
	"time"
)

// DefaultCookieName is the fixed name of the session-token cookie.
const DefaultCookieName = "vb_session"

// DefaultMaxAge is the default session cookie lifetime.
const DefaultMaxAge = 7 * 24 * time.Hour

// CookieConfig defines a public type used by webgate APIs.
//
// CookieConfig instances are intended to be configured during initialization and then treated as immutable unless documented otherwise.
type CookieConfig struct {
	Name   string
	Path   string
	MaxAge time.Duration
	Secure bool
}

// CookieStore performs scoped reads and writes of the session token against
// an HTTP cookie. Mutations only take effect on the response being
// constructed for the current request; the store holds no mutable state.
type CookieStore struct {
	config CookieConfig
}

// NewCookieStore applies defaults and returns a ready [CookieStore].
func NewCookieStore(cfg CookieConfig) *CookieStore {
	if cfg.Name == "" {
		cfg.Name = DefaultCookieName
	}
	if cfg.Path == "" {
		cfg.Path = "/"
	}
	if cfg.MaxAge <= 0 {
		cfg.MaxAge = DefaultMaxAge
	}
	return &CookieStore{config: cfg}
}

// Name returns the configured cookie name.
func (s *CookieStore) Name() string {
	return s.config.Name
}

// Read returns the raw session token carried by the request, if present.
func (s *CookieStore) Read(r *http.Request) (string, bool) {
	c, err := r.Cookie(s.config.Name)
	if err != nil || c.Value == "" {
		return "", false
	}
	return c.Value, true
}

// Write sets the session cookie on the response. HttpOnly and
// SameSite=Strict are unconditional; Secure follows the configured
// deployment flag.
func (s *CookieStore) Write(w http.ResponseWriter, token string) {
	http.SetCookie(w, s.cookie(token, int(s.config.MaxAge/time.Second)))
}

// Clear deletes the session cookie on the response.
func (s *CookieStore) Clear(w http.ResponseWriter) {
	http.SetCookie(w, s.cookie("", -1))
}

func (s *CookieStore) cookie(value string, maxAge int) *http.Cookie {
	return &http.Cookie{
		Name:     s.config.Name,
		Value:    value,
		Path:     s.config.Path,
		MaxAge:   maxAge,
		HttpOnly: true,
		Secure:   s.config.Secure,
		SameSite: http.SameSiteStrictMode,
	}
}
