package postgres

import (
	"context"
	"errors"

	"github.com/geocoder89/coursehub/internal/domain/course"
	"github.com/geocoder89/coursehub/internal/observability"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type ModulesRepo struct {
	pool *pgxpool.Pool
	obs  *observability.Prom
}

func NewModulesRepo(pool *pgxpool.Pool, obs *observability.Prom) *ModulesRepo {
	return &ModulesRepo{pool: pool, obs: obs}
}

func (r *ModulesRepo) List(ctx context.Context) ([]course.Module, error) {
	var out []course.Module

	err := r.obs.ObserveDB("modules.list", func() error {
		rows, err := r.pool.Query(ctx,
			`SELECT id, title, description, sort_order, created_at, updated_at
			FROM modules
			ORDER BY sort_order ASC, id ASC`)

		if err != nil {
			return err
		}

		defer rows.Close()

		out = make([]course.Module, 0)

		for rows.Next() {
			var m course.Module

			err = rows.Scan(&m.ID, &m.Title, &m.Description, &m.SortOrder, &m.CreatedAt, &m.UpdatedAt)

			if err != nil {
				return err
			}

			out = append(out, m)
		}

		return rows.Err()
	})

	if err != nil {
		return nil, err
	}

	return out, nil
}

// ListWithCounts backs the admin dashboard: every module plus how many
// lessons hang off it.
func (r *ModulesRepo) ListWithCounts(ctx context.Context) ([]course.ModuleSummary, error) {
	var out []course.ModuleSummary

	err := r.obs.ObserveDB("modules.list_with_counts", func() error {
		rows, err := r.pool.Query(ctx,
			`SELECT m.id, m.title, m.description, m.sort_order, m.created_at, m.updated_at,
				COUNT(l.id) AS lesson_count
			FROM modules m
			LEFT JOIN lessons l ON l.module_id = m.id
			GROUP BY m.id
			ORDER BY m.sort_order ASC, m.id ASC`)

		if err != nil {
			return err
		}

		defer rows.Close()

		out = make([]course.ModuleSummary, 0)

		for rows.Next() {
			var s course.ModuleSummary

			err = rows.Scan(&s.ID, &s.Title, &s.Description, &s.SortOrder, &s.CreatedAt, &s.UpdatedAt, &s.LessonCount)

			if err != nil {
				return err
			}

			out = append(out, s)
		}

		return rows.Err()
	})

	if err != nil {
		return nil, err
	}

	return out, nil
}

func (r *ModulesRepo) GetByID(ctx context.Context, id int64) (course.Module, error) {
	var m course.Module

	err := r.obs.ObserveDB("modules.get_by_id", func() error {
		return r.pool.QueryRow(ctx,
			`SELECT id, title, description, sort_order, created_at, updated_at
			FROM modules
			WHERE id = $1`, id).
			Scan(&m.ID, &m.Title, &m.Description, &m.SortOrder, &m.CreatedAt, &m.UpdatedAt)
	})

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return course.Module{}, course.ErrModuleNotFound
		}

		return course.Module{}, err
	}

	return m, nil
}

func (r *ModulesRepo) Create(ctx context.Context, form course.ModuleForm) (course.Module, error) {
	var m course.Module

	err := r.obs.ObserveDB("modules.create", func() error {
		return r.pool.QueryRow(ctx,
			`INSERT INTO modules (title, description, sort_order)
			VALUES ($1, $2, $3)
			RETURNING id, title, description, sort_order, created_at, updated_at`,
			form.Title, form.Description, form.SortOrder).
			Scan(&m.ID, &m.Title, &m.Description, &m.SortOrder, &m.CreatedAt, &m.UpdatedAt)
	})

	if err != nil {
		return course.Module{}, err
	}

	return m, nil
}

func (r *ModulesRepo) Update(ctx context.Context, id int64, form course.ModuleForm) (course.Module, error) {
	var m course.Module

	err := r.obs.ObserveDB("modules.update", func() error {
		return r.pool.QueryRow(ctx,
			`UPDATE modules
				SET title = $2,
					description = $3,
					sort_order = $4,
					updated_at = NOW()
			WHERE id = $1
			RETURNING id, title, description, sort_order, created_at, updated_at`,
			id, form.Title, form.Description, form.SortOrder).
			Scan(&m.ID, &m.Title, &m.Description, &m.SortOrder, &m.CreatedAt, &m.UpdatedAt)
	})

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return course.Module{}, course.ErrModuleNotFound
		}

		return course.Module{}, err
	}

	return m, nil
}

// Delete removes a module; lessons go with it via the FK cascade. A missing
// id reports ErrModuleNotFound so the handler can decide whether to care.
func (r *ModulesRepo) Delete(ctx context.Context, id int64) error {
	return r.obs.ObserveDB("modules.delete", func() error {
		tag, err := r.pool.Exec(ctx, `DELETE FROM modules WHERE id = $1`, id)

		if err != nil {
			return err
		}

		if tag.RowsAffected() == 0 {
			return course.ErrModuleNotFound
		}

		return nil
	})
}
