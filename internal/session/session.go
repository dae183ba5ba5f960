// Package session implements the sign-in state carried by each request.
//
// A signed-in administrator holds an HS256 token in an HttpOnly cookie. The
// middleware parses it once per request and stores the resulting Identity in
// the request context, where page rendering and route guards read it.
package session

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

var (
	ErrInvalidToken = errors.New("invalid session token")
	ErrRevoked      = errors.New("session revoked")
)

// Identity describes who is making the request.
type Identity struct {
	Authenticated bool
	Username      string
	DisplayName   string
	TokenID       string
	ExpiresAt     time.Time
}

// Anonymous is the identity of a request without a valid session.
var Anonymous = Identity{}

// Name returns the display name, falling back to the username.
func (i Identity) Name() string {
	if i.DisplayName != "" {
		return i.DisplayName
	}
	return i.Username
}

type ctxKey struct{}

// WithIdentity returns a copy of ctx carrying id.
func WithIdentity(ctx context.Context, id Identity) context.Context {
	return context.WithValue(ctx, ctxKey{}, id)
}

// FromContext returns the identity stored in ctx, or Anonymous.
func FromContext(ctx context.Context) Identity {
	if id, ok := ctx.Value(ctxKey{}).(Identity); ok {
		return id
	}
	return Anonymous
}

type claims struct {
	Name string `json:"name,omitempty"`
	jwt.RegisteredClaims
}

// Config 会话签发参数
type Config struct {
	Secret string
	Issuer string
	TTL    time.Duration
}

// Manager issues and verifies session tokens.
type Manager struct {
	cfg     Config
	revoker Revoker
	now     func() time.Time
}

// NewManager builds a manager; a nil revoker disables revocation checks.
func NewManager(cfg Config, revoker Revoker) *Manager {
	if revoker == nil {
		revoker = NopRevoker{}
	}
	return &Manager{cfg: cfg, revoker: revoker, now: time.Now}
}

// TTL is the lifetime of issued tokens.
func (m *Manager) TTL() time.Duration { return m.cfg.TTL }

// Issue signs a token for the given user.
func (m *Manager) Issue(username, displayName string) (string, Identity, error) {
	now := m.now()
	id := Identity{
		Authenticated: true,
		Username:      username,
		DisplayName:   displayName,
		TokenID:       uuid.NewString(),
		ExpiresAt:     now.Add(m.cfg.TTL),
	}
	c := claims{
		Name: displayName,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        id.TokenID,
			Issuer:    m.cfg.Issuer,
			Subject:   username,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(id.ExpiresAt),
		},
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, c).SignedString([]byte(m.cfg.Secret))
	if err != nil {
		return "", Anonymous, fmt.Errorf("sign session: %w", err)
	}
	return signed, id, nil
}

// Parse verifies token and returns its identity.
func (m *Manager) Parse(ctx context.Context, token string) (Identity, error) {
	var c claims
	parsed, err := jwt.ParseWithClaims(token, &c, func(t *jwt.Token) (interface{}, error) {
		return []byte(m.cfg.Secret), nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(m.cfg.Issuer),
		jwt.WithTimeFunc(m.now),
		jwt.WithExpirationRequired(),
	)
	if err != nil || !parsed.Valid || c.Subject == "" {
		return Anonymous, ErrInvalidToken
	}

	revoked, err := m.revoker.IsRevoked(ctx, c.ID)
	if err != nil {
		return Anonymous, fmt.Errorf("check revocation: %w", err)
	}
	if revoked {
		return Anonymous, ErrRevoked
	}

	return Identity{
		Authenticated: true,
		Username:      c.Subject,
		DisplayName:   c.Name,
		TokenID:       c.ID,
		ExpiresAt:     c.ExpiresAt.Time,
	}, nil
}

// Revoke invalidates id's token for the rest of its lifetime.
func (m *Manager) Revoke(ctx context.Context, id Identity) error {
	if id.TokenID == "" {
		return nil
	}
	ttl := id.ExpiresAt.Sub(m.now())
	if ttl <= 0 {
		return nil
	}
	return m.revoker.Revoke(ctx, id.TokenID, ttl)
}
