package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/geocoder89/coursehub/internal/domain/course"
)

type LessonsRepo struct {
	mu     sync.RWMutex
	nextID int64
	items  map[int64]course.Lesson
}

func NewLessonsRepo() *LessonsRepo {
	return &LessonsRepo{
		nextID: 1,
		items:  make(map[int64]course.Lesson),
	}
}

func (r *LessonsRepo) ListByModule(ctx context.Context, moduleID int64) ([]course.Lesson, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]course.Lesson, 0)

	for _, l := range r.items {
		if l.ModuleID == moduleID {
			out = append(out, l)
		}
	}

	sort.Slice(out, func(i, j int) bool {
		if out[i].SortOrder != out[j].SortOrder {
			return out[i].SortOrder < out[j].SortOrder
		}
		return out[i].ID < out[j].ID
	})

	return out, nil
}

func (r *LessonsRepo) GetByID(ctx context.Context, id int64) (course.Lesson, error) {
	r.mu.RLock()
	l, ok := r.items[id]
	r.mu.RUnlock()

	if !ok {
		return course.Lesson{}, course.ErrLessonNotFound
	}

	return l, nil
}

func (r *LessonsRepo) Create(ctx context.Context, form course.LessonForm) (course.Lesson, error) {
	now := time.Now()

	r.mu.Lock()
	defer r.mu.Unlock()

	l := course.Lesson{
		ID:         r.nextID,
		ModuleID:   form.ModuleID,
		Title:      form.Title,
		Content:    form.Content,
		YouTubeURL: form.YouTubeURL,
		SortOrder:  form.SortOrder,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	r.nextID++
	r.items[l.ID] = l

	return l, nil
}

func (r *LessonsRepo) Update(ctx context.Context, id int64, form course.LessonForm) (course.Lesson, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	l, ok := r.items[id]

	if !ok {
		return course.Lesson{}, course.ErrLessonNotFound
	}

	l.ModuleID = form.ModuleID
	l.Title = form.Title
	l.Content = form.Content
	l.YouTubeURL = form.YouTubeURL
	l.SortOrder = form.SortOrder
	l.UpdatedAt = time.Now()
	r.items[id] = l

	return l, nil
}

func (r *LessonsRepo) Delete(ctx context.Context, id int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.items[id]; !ok {
		return course.ErrLessonNotFound
	}

	delete(r.items, id)

	return nil
}

// deleteByModule emulates the schema cascade for the in-memory twin.
func (r *LessonsRepo) deleteByModule(moduleID int64) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for id, l := range r.items {
		if l.ModuleID == moduleID {
			delete(r.items, id)
		}
	}
}
