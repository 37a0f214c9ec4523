package postgres

import (
	"context"
	"errors"

	"github.com/geocoder89/coursehub/internal/domain/user"
	"github.com/geocoder89/coursehub/internal/observability"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

var ErrUserNotFound = errors.New("user not found")

type UsersRepo struct {
	pool *pgxpool.Pool
	obs  *observability.Prom
}

func NewUsersRepo(pool *pgxpool.Pool, obs *observability.Prom) *UsersRepo {
	return &UsersRepo{pool: pool, obs: obs}
}

func (r *UsersRepo) GetByEmail(ctx context.Context, email string) (user.User, error) {
	var u user.User
	var role string

	err := r.obs.ObserveDB("users.get_by_email", func() error {
		return r.pool.QueryRow(
			ctx,
			`SELECT id, email, password_hash, name, role, created_at, updated_at
	         FROM users
	         WHERE email = $1`,
			email,
		).Scan(
			&u.ID,
			&u.Email,
			&u.PasswordHash,
			&u.Name,
			&role,
			&u.CreatedAt,
			&u.UpdatedAt,
		)
	})

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return user.User{}, ErrUserNotFound
		}

		return user.User{}, err
	}

	// unknown roles in storage collapse to student rather than admin
	parsed, ok := user.ParseRole(role)
	if !ok {
		parsed = user.RoleStudent
	}
	u.Role = parsed

	return u, nil
}
