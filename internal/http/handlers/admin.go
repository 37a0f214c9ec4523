package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/geocoder89/coursehub/internal/config"
	"github.com/geocoder89/coursehub/internal/domain/course"
	"github.com/gin-gonic/gin"
)

type ModulesStore interface {
	List(ctx context.Context) ([]course.Module, error)
	ListWithCounts(ctx context.Context) ([]course.ModuleSummary, error)
	GetByID(ctx context.Context, id int64) (course.Module, error)
	Create(ctx context.Context, form course.ModuleForm) (course.Module, error)
	Update(ctx context.Context, id int64, form course.ModuleForm) (course.Module, error)
	Delete(ctx context.Context, id int64) error
}

type LessonsStore interface {
	ListByModule(ctx context.Context, moduleID int64) ([]course.Lesson, error)
	GetByID(ctx context.Context, id int64) (course.Lesson, error)
	Create(ctx context.Context, form course.LessonForm) (course.Lesson, error)
	Update(ctx context.Context, id int64, form course.LessonForm) (course.Lesson, error)
	Delete(ctx context.Context, id int64) error
}

// AdminHandler owns the content CRUD behind the admin guard. Every write
// follows the same shape: parse and trim, validate, one storage mutation,
// redirect back to /admin.
type AdminHandler struct {
	modules ModulesStore
	lessons LessonsStore
}

func NewAdminHandler(modules ModulesStore, lessons LessonsStore) *AdminHandler {
	return &AdminHandler{
		modules: modules,
		lessons: lessons,
	}
}

func (h *AdminHandler) Dashboard(ctx *gin.Context) {
	cctx, cancel := config.WithTimeout(2 * time.Second)
	defer cancel()

	modules, err := h.modules.ListWithCounts(cctx)

	if err != nil {
		RenderError(ctx, "Could not load modules.")
		return
	}

	data := pageData(ctx, "Admin")
	data["Modules"] = modules

	ctx.HTML(http.StatusOK, "admin.html", data)
}

func redirectToAdmin(ctx *gin.Context) {
	ctx.Redirect(http.StatusSeeOther, "/admin")
}
