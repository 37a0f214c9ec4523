package postgres

import (
	"context"
	"errors"

	"github.com/geocoder89/coursehub/internal/domain/course"
	"github.com/geocoder89/coursehub/internal/observability"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type LessonsRepo struct {
	pool *pgxpool.Pool
	obs  *observability.Prom
}

func NewLessonsRepo(pool *pgxpool.Pool, obs *observability.Prom) *LessonsRepo {
	return &LessonsRepo{pool: pool, obs: obs}
}

const lessonColumns = `id, module_id, title, content, youtube_url, sort_order, created_at, updated_at`

func scanLesson(row pgx.Row, l *course.Lesson) error {
	return row.Scan(&l.ID, &l.ModuleID, &l.Title, &l.Content, &l.YouTubeURL, &l.SortOrder, &l.CreatedAt, &l.UpdatedAt)
}

func (r *LessonsRepo) ListByModule(ctx context.Context, moduleID int64) ([]course.Lesson, error) {
	var out []course.Lesson

	err := r.obs.ObserveDB("lessons.list_by_module", func() error {
		rows, err := r.pool.Query(ctx,
			`SELECT `+lessonColumns+`
			FROM lessons
			WHERE module_id = $1
			ORDER BY sort_order ASC, id ASC`, moduleID)

		if err != nil {
			return err
		}

		defer rows.Close()

		out = make([]course.Lesson, 0)

		for rows.Next() {
			var l course.Lesson

			if err := scanLesson(rows, &l); err != nil {
				return err
			}

			out = append(out, l)
		}

		return rows.Err()
	})

	if err != nil {
		return nil, err
	}

	return out, nil
}

func (r *LessonsRepo) GetByID(ctx context.Context, id int64) (course.Lesson, error) {
	var l course.Lesson

	err := r.obs.ObserveDB("lessons.get_by_id", func() error {
		return scanLesson(r.pool.QueryRow(ctx,
			`SELECT `+lessonColumns+` FROM lessons WHERE id = $1`, id), &l)
	})

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return course.Lesson{}, course.ErrLessonNotFound
		}

		return course.Lesson{}, err
	}

	return l, nil
}

func (r *LessonsRepo) Create(ctx context.Context, form course.LessonForm) (course.Lesson, error) {
	var l course.Lesson

	err := r.obs.ObserveDB("lessons.create", func() error {
		return scanLesson(r.pool.QueryRow(ctx,
			`INSERT INTO lessons (module_id, title, content, youtube_url, sort_order)
			VALUES ($1, $2, $3, $4, $5)
			RETURNING `+lessonColumns,
			form.ModuleID, form.Title, form.Content, form.YouTubeURL, form.SortOrder), &l)
	})

	if err != nil {
		return course.Lesson{}, err
	}

	return l, nil
}

func (r *LessonsRepo) Update(ctx context.Context, id int64, form course.LessonForm) (course.Lesson, error) {
	var l course.Lesson

	err := r.obs.ObserveDB("lessons.update", func() error {
		return scanLesson(r.pool.QueryRow(ctx,
			`UPDATE lessons
				SET module_id = $2,
					title = $3,
					content = $4,
					youtube_url = $5,
					sort_order = $6,
					updated_at = NOW()
			WHERE id = $1
			RETURNING `+lessonColumns,
			id, form.ModuleID, form.Title, form.Content, form.YouTubeURL, form.SortOrder), &l)
	})

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return course.Lesson{}, course.ErrLessonNotFound
		}

		return course.Lesson{}, err
	}

	return l, nil
}

func (r *LessonsRepo) Delete(ctx context.Context, id int64) error {
	return r.obs.ObserveDB("lessons.delete", func() error {
		tag, err := r.pool.Exec(ctx, `DELETE FROM lessons WHERE id = $1`, id)

		if err != nil {
			return err
		}

		if tag.RowsAffected() == 0 {
			return course.ErrLessonNotFound
		}

		return nil
	})
}
