package session

import (
	"context"
	"errors"

	"github.com/geocoder89/coursehub/internal/domain/user"
)

// Session is the server-side record behind an opaque session ID. It is the
// only identity a request carries; handlers receive it through the guard,
// never from ambient globals.
type Session struct {
	UserID string    `json:"user_id"`
	Email  string    `json:"email"`
	Role   user.Role `json:"role"`
}

var ErrSessionNotFound = errors.New("session not found")

// Store keeps sessions keyed by opaque ID. Get on a missing or expired ID
// returns ErrSessionNotFound; the guard turns that into a login redirect.
type Store interface {
	Create(ctx context.Context, s Session) (string, error)
	Get(ctx context.Context, id string) (Session, error)
	Destroy(ctx context.Context, id string) error
}
