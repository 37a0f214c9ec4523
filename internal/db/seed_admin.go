package db

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/geocoder89/coursehub/internal/config"
	"github.com/geocoder89/coursehub/internal/domain/user"
	"github.com/geocoder89/coursehub/internal/security"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// EnsureAdminUser inserts the seed admin account on first boot. A no-op when
// the credentials are unset or the account already exists.
func EnsureAdminUser(ctx context.Context, pool *pgxpool.Pool, cfg config.Config) error {
	if cfg.AdminEmail == "" || cfg.AdminPassword == "" {
		return nil
	}

	email := strings.ToLower(strings.TrimSpace(cfg.AdminEmail))

	var dummy string

	err := pool.QueryRow(ctx, `SELECT id FROM users WHERE email = $1`, email).Scan(&dummy)

	if err == nil {
		return nil
	}

	if !errors.Is(err, pgx.ErrNoRows) {
		return err
	}

	hash, err := security.HashPassword(cfg.AdminPassword)

	if err != nil {
		return err
	}

	now := time.Now().UTC()

	u := user.User{
		ID:           uuid.NewString(),
		Email:        email,
		PasswordHash: hash,
		Name:         cfg.AdminName,
		Role:         user.RoleAdmin,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	_, err = pool.Exec(ctx,
		`INSERT INTO users (id,email,password_hash, name,role,created_at, updated_at)
		VALUES ($1,$2,$3,$4,$5,$6,$7)
		`,
		u.ID, u.Email, u.PasswordHash, u.Name, string(u.Role), u.CreatedAt, u.UpdatedAt,
	)

	return err
}
