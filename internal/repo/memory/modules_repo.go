package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/geocoder89/coursehub/internal/domain/course"
)

// ModulesRepo mirrors the postgres repo for tests. When wired to a
// LessonsRepo it emulates the schema's ON DELETE CASCADE.
type ModulesRepo struct {
	mu      sync.RWMutex
	nextID  int64
	items   map[int64]course.Module
	lessons *LessonsRepo
}

func NewModulesRepo(lessons *LessonsRepo) *ModulesRepo {
	return &ModulesRepo{
		nextID:  1,
		items:   make(map[int64]course.Module),
		lessons: lessons,
	}
}

func (r *ModulesRepo) sorted() []course.Module {
	out := make([]course.Module, 0, len(r.items))

	for _, m := range r.items {
		out = append(out, m)
	}

	sort.Slice(out, func(i, j int) bool {
		if out[i].SortOrder != out[j].SortOrder {
			return out[i].SortOrder < out[j].SortOrder
		}
		return out[i].ID < out[j].ID
	})

	return out
}

func (r *ModulesRepo) List(ctx context.Context) ([]course.Module, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return r.sorted(), nil
}

func (r *ModulesRepo) ListWithCounts(ctx context.Context) ([]course.ModuleSummary, error) {
	r.mu.RLock()
	mods := r.sorted()
	r.mu.RUnlock()

	out := make([]course.ModuleSummary, 0, len(mods))

	for _, m := range mods {
		count := 0

		if r.lessons != nil {
			ls, _ := r.lessons.ListByModule(ctx, m.ID)
			count = len(ls)
		}

		out = append(out, course.ModuleSummary{Module: m, LessonCount: count})
	}

	return out, nil
}

func (r *ModulesRepo) GetByID(ctx context.Context, id int64) (course.Module, error) {
	r.mu.RLock()
	m, ok := r.items[id]
	r.mu.RUnlock()

	if !ok {
		return course.Module{}, course.ErrModuleNotFound
	}

	return m, nil
}

func (r *ModulesRepo) Create(ctx context.Context, form course.ModuleForm) (course.Module, error) {
	now := time.Now()

	r.mu.Lock()
	defer r.mu.Unlock()

	m := course.Module{
		ID:          r.nextID,
		Title:       form.Title,
		Description: form.Description,
		SortOrder:   form.SortOrder,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	r.nextID++
	r.items[m.ID] = m

	return m, nil
}

func (r *ModulesRepo) Update(ctx context.Context, id int64, form course.ModuleForm) (course.Module, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	m, ok := r.items[id]

	if !ok {
		return course.Module{}, course.ErrModuleNotFound
	}

	m.Title = form.Title
	m.Description = form.Description
	m.SortOrder = form.SortOrder
	m.UpdatedAt = time.Now()
	r.items[id] = m

	return m, nil
}

func (r *ModulesRepo) Delete(ctx context.Context, id int64) error {
	r.mu.Lock()

	_, ok := r.items[id]
	delete(r.items, id)

	r.mu.Unlock()

	if !ok {
		return course.ErrModuleNotFound
	}

	if r.lessons != nil {
		r.lessons.deleteByModule(id)
	}

	return nil
}
