package session

import (
	"encoding/json"
	"net/http"
	"net/url"

	"go.uber.org/zap"
)

// Default cookie names consumed by the legacy two-cookie scheme.
const (
	DefaultLegacyTokenCookie = "token"
	DefaultLegacyBlobCookie  = "session"
)

// LegacyConfig defines a public type used by webgate APIs.
//
// LegacyConfig instances are intended to be configured during initialization and then treated as immutable unless documented otherwise.
type LegacyConfig struct {
	Enabled     bool
	TokenCookie string
	BlobCookie  string
}

// LegacyReader is the compatibility shim for the pre-gate two-cookie scheme:
// a raw token cookie plus a JSON session blob. It accepts a request as
// authenticated when the blob's nested identity field and the raw token
// cookie are both present and non-empty. It performs no cryptographic
// verification of the token, so it can never distinguish an expired
// credential from an absent one. The verified single-cookie scheme is the
// primary mechanism; keep this reader disabled unless old clients still
// depend on it.
type LegacyReader struct {
	config      LegacyConfig
	logger      *zap.Logger
	onMalformed func()
}

type legacyBlob struct {
	User struct {
		UserID string `json:"userId"`
		JWT    struct {
			JWT string `json:"jwt"`
		} `json:"_jwt_"`
	} `json:"user"`
}

// NewLegacyReader applies defaults and returns a ready [LegacyReader].
// A nil logger disables logging.
func NewLegacyReader(cfg LegacyConfig, logger *zap.Logger) *LegacyReader {
	if cfg.TokenCookie == "" {
		cfg.TokenCookie = DefaultLegacyTokenCookie
	}
	if cfg.BlobCookie == "" {
		cfg.BlobCookie = DefaultLegacyBlobCookie
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &LegacyReader{config: cfg, logger: logger}
}

// OnMalformedBlob registers a callback invoked whenever a session blob
// fails to parse. Set once during engine assembly, before any requests.
func (l *LegacyReader) OnMalformedBlob(fn func()) {
	l.onMalformed = fn
}

// Authenticated reports the legacy presence-only verdict for the request.
// A malformed blob is logged and treated as unauthenticated; the failure
// never surfaces to the caller.
func (l *LegacyReader) Authenticated(r *http.Request) bool {
	tokenCookie, err := r.Cookie(l.config.TokenCookie)
	if err != nil || tokenCookie.Value == "" {
		return false
	}

	blobCookie, err := r.Cookie(l.config.BlobCookie)
	if err != nil || blobCookie.Value == "" {
		return false
	}

	// Clients store the blob percent-encoded; raw JSON is not cookie-safe.
	raw := blobCookie.Value
	if decoded, err := url.QueryUnescape(raw); err == nil {
		raw = decoded
	}

	var blob legacyBlob
	if err := json.Unmarshal([]byte(raw), &blob); err != nil {
		l.logger.Warn("legacy session blob unparseable",
			zap.String("cookie", l.config.BlobCookie),
			zap.Error(err),
		)
		if l.onMalformed != nil {
			l.onMalformed()
		}
		return false
	}

	return blob.User.UserID != "" && blob.User.JWT.JWT != ""
}
