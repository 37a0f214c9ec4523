package handlers_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/geocoder89/coursehub/internal/domain/course"
	"github.com/geocoder89/coursehub/internal/http/handlers"
	"github.com/geocoder89/coursehub/internal/repo/memory"
	"github.com/gin-gonic/gin"
)

func adminTestRouter(t *testing.T) (*gin.Engine, *memory.ModulesRepo, *memory.LessonsRepo) {
	t.Helper()

	lessons := memory.NewLessonsRepo()
	modules := memory.NewModulesRepo(lessons)

	h := handlers.NewAdminHandler(modules, lessons)

	// guards are exercised separately; mount the handlers bare
	r := newTestEngine()
	r.GET("/admin", h.Dashboard)
	r.GET("/admin/modules/new", h.NewModuleForm)
	r.POST("/admin/modules/new", h.CreateModule)
	r.GET("/admin/modules/:id/edit", h.EditModuleForm)
	r.POST("/admin/modules/:id/edit", h.UpdateModule)
	r.POST("/admin/modules/:id/delete", h.DeleteModule)
	r.GET("/admin/lessons/new", h.NewLessonForm)
	r.POST("/admin/lessons/new", h.CreateLesson)
	r.GET("/admin/lessons/:id/edit", h.EditLessonForm)
	r.POST("/admin/lessons/:id/edit", h.UpdateLesson)
	r.POST("/admin/lessons/:id/delete", h.DeleteLesson)

	return r, modules, lessons
}

func wantAdminRedirect(t *testing.T, w *httptest.ResponseRecorder) {
	t.Helper()

	if w.Code != http.StatusSeeOther {
		t.Fatalf("status = %d, want 303", w.Code)
	}

	if loc := w.Header().Get("Location"); loc != "/admin" {
		t.Fatalf("Location = %q, want /admin", loc)
	}
}

func TestCreateModule(t *testing.T) {
	r, modules, _ := adminTestRouter(t)

	w := doPostForm(r, "/admin/modules/new", url.Values{
		"title":       {"  Intro  "},
		"description": {"First module"},
		"sort_order":  {"3"},
	})

	wantAdminRedirect(t, w)

	got, err := modules.GetByID(context.Background(), 1)

	if err != nil {
		t.Fatalf("module not stored: %v", err)
	}

	// fields come in trimmed
	if got.Title != "Intro" || got.SortOrder != 3 {
		t.Fatalf("unexpected module: %+v", got)
	}
}

func TestCreateModuleMissingTitle(t *testing.T) {
	r, modules, _ := adminTestRouter(t)

	w := doPostForm(r, "/admin/modules/new", url.Values{
		"title":       {"   "},
		"description": {"kept on re-render"},
	})

	if w.Code != http.StatusUnprocessableEntity {
		t.Fatalf("status = %d, want 422", w.Code)
	}

	// the form comes back pre-filled
	if !strings.Contains(w.Body.String(), "kept on re-render") {
		t.Fatal("expected the submitted description in the re-rendered form")
	}

	if all, _ := modules.List(context.Background()); len(all) != 0 {
		t.Fatalf("validation failure must not insert, got %d modules", len(all))
	}
}

func TestCreateModuleBadSortOrder(t *testing.T) {
	r, modules, _ := adminTestRouter(t)

	w := doPostForm(r, "/admin/modules/new", url.Values{
		"title":      {"Intro"},
		"sort_order": {"abc"},
	})

	wantAdminRedirect(t, w)

	got, _ := modules.GetByID(context.Background(), 1)

	if got.SortOrder != 0 {
		t.Fatalf("non-numeric sort order should read as 0, got %d", got.SortOrder)
	}
}

func TestUpdateModule(t *testing.T) {
	r, modules, _ := adminTestRouter(t)
	_, _ = modules.Create(context.Background(), course.ModuleForm{Title: "Old"})

	w := doPostForm(r, "/admin/modules/1/edit", url.Values{
		"title":      {"New"},
		"sort_order": {"5"},
	})

	wantAdminRedirect(t, w)

	got, _ := modules.GetByID(context.Background(), 1)

	if got.Title != "New" || got.SortOrder != 5 {
		t.Fatalf("unexpected module after update: %+v", got)
	}
}

func TestUpdateModuleUnknown(t *testing.T) {
	r, _, _ := adminTestRouter(t)

	w := doPostForm(r, "/admin/modules/99/edit", url.Values{"title": {"New"}})

	if w.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", w.Code)
	}
}

func TestDeleteModuleCascades(t *testing.T) {
	r, modules, lessons := adminTestRouter(t)
	ctx := context.Background()

	m, _ := modules.Create(ctx, course.ModuleForm{Title: "Doomed"})
	_, _ = lessons.Create(ctx, course.LessonForm{ModuleID: m.ID, Title: "Goes too"})

	w := doPostForm(r, "/admin/modules/1/delete", url.Values{})

	wantAdminRedirect(t, w)

	if _, err := modules.GetByID(ctx, m.ID); err != course.ErrModuleNotFound {
		t.Fatalf("module still present: %v", err)
	}

	if ls, _ := lessons.ListByModule(ctx, m.ID); len(ls) != 0 {
		t.Fatalf("expected lessons removed with their module, got %d", len(ls))
	}
}

func TestDeleteModuleUnknownIsIdempotent(t *testing.T) {
	r, _, _ := adminTestRouter(t)

	w := doPostForm(r, "/admin/modules/99/delete", url.Values{})

	wantAdminRedirect(t, w)
}

func TestCreateLesson(t *testing.T) {
	r, modules, lessons := adminTestRouter(t)
	m, _ := modules.Create(context.Background(), course.ModuleForm{Title: "Host"})

	w := doPostForm(r, "/admin/lessons/new", url.Values{
		"module_id":   {"1"},
		"title":       {"Lesson One"},
		"content":     {"# Notes"},
		"youtube_url": {"https://youtu.be/dQw4w9WgXcQ"},
		"sort_order":  {"1"},
	})

	wantAdminRedirect(t, w)

	ls, _ := lessons.ListByModule(context.Background(), m.ID)

	if len(ls) != 1 || ls[0].Title != "Lesson One" {
		t.Fatalf("unexpected lessons: %+v", ls)
	}
}

func TestCreateLessonRequiresModule(t *testing.T) {
	r, modules, _ := adminTestRouter(t)
	_, _ = modules.Create(context.Background(), course.ModuleForm{Title: "Host"})

	w := doPostForm(r, "/admin/lessons/new", url.Values{
		"title": {"Orphan"},
		// no module_id
	})

	if w.Code != http.StatusUnprocessableEntity {
		t.Fatalf("status = %d, want 422", w.Code)
	}
}

func TestCreateLessonMissingTitle(t *testing.T) {
	r, modules, lessons := adminTestRouter(t)
	m, _ := modules.Create(context.Background(), course.ModuleForm{Title: "Host"})

	w := doPostForm(r, "/admin/lessons/new", url.Values{
		"module_id": {"1"},
		"title":     {""},
	})

	if w.Code != http.StatusUnprocessableEntity {
		t.Fatalf("status = %d, want 422", w.Code)
	}

	if ls, _ := lessons.ListByModule(context.Background(), m.ID); len(ls) != 0 {
		t.Fatal("validation failure must not insert")
	}
}

func TestUpdateLessonUnknown(t *testing.T) {
	r, modules, _ := adminTestRouter(t)
	_, _ = modules.Create(context.Background(), course.ModuleForm{Title: "Host"})

	w := doPostForm(r, "/admin/lessons/42/edit", url.Values{
		"module_id": {"1"},
		"title":     {"Renamed"},
	})

	if w.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", w.Code)
	}
}

func TestDeleteLessonUnknownIsIdempotent(t *testing.T) {
	r, _, _ := adminTestRouter(t)

	w := doPostForm(r, "/admin/lessons/42/delete", url.Values{})

	wantAdminRedirect(t, w)
}

func TestNewLessonFormPreselectsModule(t *testing.T) {
	r, modules, _ := adminTestRouter(t)
	_, _ = modules.Create(context.Background(), course.ModuleForm{Title: "Host"})

	w := doGet(r, "/admin/lessons/new?module_id=1")

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}

	if !strings.Contains(w.Body.String(), "selected") {
		t.Fatal("expected the module option preselected")
	}
}

func TestDashboardShowsLessonCounts(t *testing.T) {
	r, modules, lessons := adminTestRouter(t)
	ctx := context.Background()

	m, _ := modules.Create(ctx, course.ModuleForm{Title: "Counted"})
	_, _ = lessons.Create(ctx, course.LessonForm{ModuleID: m.ID, Title: "One"})
	_, _ = lessons.Create(ctx, course.LessonForm{ModuleID: m.ID, Title: "Two"})

	w := doGet(r, "/admin")

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}

	if !strings.Contains(w.Body.String(), "Counted") {
		t.Fatal("expected the module on the dashboard")
	}
}
