package auth

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// The session cookie carries a compact HS256 token whose only payload is the
// opaque session ID. Identity and role live server-side; the signature just
// keeps the ID from being forged or swapped.

type Claims struct {
	SessionID string `json:"sid"`
	jwt.RegisteredClaims
}

type Manager struct {
	secret []byte
	ttl    time.Duration
}

func NewManager(secret string, ttl time.Duration) *Manager {
	return &Manager{
		secret: []byte(secret),
		ttl:    ttl,
	}
}

// Mint signs a session ID into a cookie value.
func (m *Manager) Mint(sessionID string) (string, error) {
	now := time.Now().UTC()

	claims := Claims{
		SessionID: sessionID,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(m.ttl)),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(m.secret)
}

// Verify parses a cookie value and returns the session ID it carries.
func (m *Manager) Verify(raw string) (string, error) {
	token, err := jwt.ParseWithClaims(raw, &Claims{}, func(t *jwt.Token) (interface{}, error) {
		// Enforce HS256
		_, ok := t.Method.(*jwt.SigningMethodHMAC)

		if !ok {
			return nil, errors.New("unexpected signing method")
		}
		return m.secret, nil
	})

	if err != nil {
		return "", err
	}

	claims, ok := token.Claims.(*Claims)

	if !ok || !token.Valid || claims.SessionID == "" {
		return "", errors.New("invalid session token")
	}

	return claims.SessionID, nil
}

// TTL is the cookie lifetime; it matches the server-side session TTL.
func (m *Manager) TTL() time.Duration {
	return m.ttl
}
