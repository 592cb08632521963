package webgate

import (
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/veltrabank/webgate/internal/rate"
	"github.com/veltrabank/webgate/routes"
	"github.com/veltrabank/webgate/session"
	"github.com/veltrabank/webgate/token"
)

// Builder defines a public type used by webgate APIs.
//
// Builder instances are intended to be configured during initialization and then treated as immutable unless documented otherwise.
type Builder struct {
	config Config
	redis  *redis.Client
	logger *zap.Logger

	built bool
}

// New returns a [Builder] seeded with the default configuration.
func New() *Builder {
	return &Builder{
		config: defaultConfig(),
	}
}

// WithConfig replaces the builder's configuration wholesale.
func (b *Builder) WithConfig(cfg Config) *Builder {
	b.config = cloneConfig(cfg)
	return b
}

// WithRedis attaches a Redis client, enabling the login/refresh rate
// limiter at the token-minting boundary. Without it the limiter is off and
// the engine stays fully stateless.
func (b *Builder) WithRedis(client *redis.Client) *Builder {
	b.redis = client
	return b
}

// WithLogger attaches a structured logger. Defaults to a no-op logger.
func (b *Builder) WithLogger(logger *zap.Logger) *Builder {
	b.logger = logger
	return b
}

// Build validates the configuration and assembles the [Engine]. A Builder
// builds at most once. All configuration failures surface here, at process
// start, never per request.
func (b *Builder) Build() (*Engine, error) {
	if b.built {
		return nil, errors.New("builder already used")
	}
	if err := b.config.Validate(); err != nil {
		return nil, err
	}

	sessions, err := token.NewCodec(token.Config{
		Secret: b.config.Token.SessionSecret,
		TTL:    b.config.Token.SessionTTL,
		Issuer: b.config.Token.Issuer,
		Leeway: b.config.Token.Leeway,
	})
	if err != nil {
		return nil, fmt.Errorf("session codec: %w", err)
	}

	refreshes, err := token.NewCodec(token.Config{
		Secret: b.config.Token.RefreshSecret,
		TTL:    b.config.Token.RefreshTTL,
		Issuer: b.config.Token.Issuer,
		Leeway: b.config.Token.Leeway,
	})
	if err != nil {
		return nil, fmt.Errorf("refresh codec: %w", err)
	}

	logger := b.logger
	if logger == nil {
		logger = zap.NewNop()
	}

	classifier := routes.NewClassifier(
		append(routes.DefaultPublic(), routes.ParseAll(b.config.Routes.PublicExtra)...),
		append(routes.DefaultPrivate(), routes.ParseAll(b.config.Routes.PrivateExtra)...),
	)

	engine := &Engine{
		config:    b.config,
		sessions:  sessions,
		refreshes: refreshes,
		cookies: session.NewCookieStore(session.CookieConfig{
			Name:   b.config.Cookie.Name,
			Path:   b.config.Cookie.Path,
			MaxAge: b.config.Token.SessionTTL,
			Secure: b.config.Production,
		}),
		classifier: classifier,
		logger:     logger,
		metrics:    &Metrics{},
	}

	if b.config.Legacy.Enabled {
		engine.legacy = session.NewLegacyReader(b.config.Legacy, logger)
		engine.legacy.OnMalformedBlob(func() {
			engine.metrics.Inc(MetricLegacyBlobMalformed)
		})
	}

	if b.redis != nil {
		engine.limiter = rate.New(b.redis, rate.Config{
			EnableIPThrottle:        b.config.RateLimit.EnableIPThrottle,
			EnableRefreshThrottle:   b.config.RateLimit.EnableRefreshThrottle,
			MaxLoginAttempts:        b.config.RateLimit.MaxLoginAttempts,
			LoginCooldownDuration:   b.config.RateLimit.LoginCooldown,
			MaxRefreshAttempts:      b.config.RateLimit.MaxRefreshAttempts,
			RefreshCooldownDuration: b.config.RateLimit.RefreshCooldown,
		})
	}

	b.built = true
	return engine, nil
}
