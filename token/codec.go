package token

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// Role identifies the principal class carried inside a credential.
//
// Role instances are intended to be configured during initialization and then treated as immutable unless documented otherwise.
type Role string

const (
	// RoleUser is an exported constant or variable used by the gating engine.
	RoleUser Role = "user"
	// RoleAdmin is an exported constant or variable used by the gating engine.
	RoleAdmin Role = "admin"
)

// Valid reports whether the role is one of the known principal classes.
func (r Role) Valid() bool {
	return r == RoleUser || r == RoleAdmin
}

var (
	// ErrInvalid is returned by [Codec.Verify] when the signature does not
	// match or the payload cannot be decoded.
	ErrInvalid = errors.New("invalid token")
	// ErrExpired is returned by [Codec.Verify] when the token carries a
	// valid signature but its expiry has passed.
	ErrExpired = errors.New("token expired")
)

// Claims identifies the principal for the lifetime of a credential.
// Claims are immutable once issued; a role or profile change requires
// issuing a new token.
type Claims struct {
	ID    string
	Email string
	Name  string
	Role  Role
}

type signedClaims struct {
	Email string `json:"email"`
	Name  string `json:"name"`
	Role  string `json:"role"`
	jwt.RegisteredClaims
}

// Config defines a public type used by webgate APIs.
//
// Config instances are intended to be configured during initialization and then treated as immutable unless documented otherwise.
type Config struct {
	Secret []byte
	TTL    time.Duration
	Issuer string
	Leeway time.Duration
}

// Codec signs and verifies self-contained session credentials. Two
// independent instances exist in a full deployment: one for session tokens
// and one for refresh tokens, sharing the algorithm but never the secret.
type Codec struct {
	config Config
}

// NewCodec validates the configuration and returns a ready [Codec].
//
// A missing secret or a non-positive TTL is a startup invariant violation,
// not a per-request failure path, so it is reported here and nowhere else.
func NewCodec(cfg Config) (*Codec, error) {
	if len(cfg.Secret) == 0 {
		return nil, errors.New("codec requires a signing secret")
	}
	if cfg.TTL <= 0 {
		return nil, errors.New("invalid TTL configuration")
	}
	if cfg.Leeway < 0 || cfg.Leeway > 2*time.Minute {
		return nil, errors.New("invalid leeway configuration")
	}
	return &Codec{config: cfg}, nil
}

// TTL returns the configured credential lifetime.
func (c *Codec) TTL() time.Duration {
	return c.config.TTL
}

// Issue produces a signed token encoding claims, an issued-at time, and an
// expiry of now + TTL. Output is not byte-identical across calls: the jti
// and timestamps differ.
func (c *Codec) Issue(claims Claims) (string, error) {
	now := time.Now()
	sc := signedClaims{
		Email: claims.Email,
		Name:  claims.Name,
		Role:  string(claims.Role),
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   claims.ID,
			ID:        uuid.NewString(),
			ExpiresAt: jwt.NewNumericDate(now.Add(c.config.TTL)),
			IssuedAt:  jwt.NewNumericDate(now),
		},
	}
	if c.config.Issuer != "" {
		sc.Issuer = c.config.Issuer
	}

	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, sc)
	signed, err := tok.SignedString(c.config.Secret)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return signed, nil
}

// Verify checks the signature and expiry of raw and returns the embedded
// claims. Failures map to exactly two sentinels: [ErrExpired] when the
// signature is valid but the expiry has passed, [ErrInvalid] for everything
// else. A token signed with the wrong secret always yields [ErrInvalid],
// never [ErrExpired].
func (c *Codec) Verify(raw string) (*Claims, error) {
	options := []jwt.ParserOption{
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
	}
	if c.config.Leeway > 0 {
		options = append(options, jwt.WithLeeway(c.config.Leeway))
	}
	if c.config.Issuer != "" {
		options = append(options, jwt.WithIssuer(c.config.Issuer))
	}

	parser := jwt.NewParser(options...)
	tok, err := parser.ParseWithClaims(raw, &signedClaims{}, func(t *jwt.Token) (interface{}, error) {
		if t.Method.Alg() != jwt.SigningMethodHS256.Alg() {
			return nil, fmt.Errorf("unexpected signing algorithm: %s", t.Method.Alg())
		}
		return c.config.Secret, nil
	})
	if err != nil {
		return nil, classifyParseError(err)
	}

	sc, ok := tok.Claims.(*signedClaims)
	if !ok || !tok.Valid {
		return nil, ErrInvalid
	}

	return &Claims{
		ID:    sc.Subject,
		Email: sc.Email,
		Name:  sc.Name,
		Role:  Role(sc.Role),
	}, nil
}

// classifyParseError collapses golang-jwt errors into the two sentinels.
// Signature and decode failures take precedence over expiry: the parser
// joins both when a tampered token is also stale, and an unverifiable
// token must never be reported as merely expired.
func classifyParseError(err error) error {
	switch {
	case errors.Is(err, jwt.ErrTokenMalformed),
		errors.Is(err, jwt.ErrTokenSignatureInvalid),
		errors.Is(err, jwt.ErrSignatureInvalid):
		return fmt.Errorf("%w: %v", ErrInvalid, err)
	case errors.Is(err, jwt.ErrTokenExpired):
		return fmt.Errorf("%w: %v", ErrExpired, err)
	default:
		return fmt.Errorf("%w: %v", ErrInvalid, err)
	}
}
