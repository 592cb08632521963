package webgate

import "errors"

var (
	// ErrConfigSecretMissing is an exported constant or variable used by the gating engine.
	ErrConfigSecretMissing = errors.New("signing secret not configured")
	// ErrConfigSecretsShared is an exported constant or variable used by the gating engine.
	ErrConfigSecretsShared = errors.New("session and refresh secrets must be distinct")
	// ErrConfigInvalid is an exported constant or variable used by the gating engine.
	ErrConfigInvalid = errors.New("invalid configuration")
	// ErrEngineNotReady is an exported constant or variable used by the gating engine.
	ErrEngineNotReady = errors.New("engine not initialized")
	// ErrRefreshInvalid is an exported constant or variable used by the gating engine.
	ErrRefreshInvalid = errors.New("invalid refresh token")
	// ErrLoginRateLimited is an exported constant or variable used by the gating engine.
	ErrLoginRateLimited = errors.New("login rate limited")
	// ErrRefreshRateLimited is an exported constant or variable used by the gating engine.
	ErrRefreshRateLimited = errors.New("refresh rate limited")
)
