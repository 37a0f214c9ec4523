package handlers

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/geocoder89/coursehub/internal/config"
	"github.com/geocoder89/coursehub/internal/content"
	"github.com/geocoder89/coursehub/internal/domain/course"
	"github.com/geocoder89/coursehub/internal/static"
	"github.com/gin-gonic/gin"
)

type ModulesReader interface {
	List(ctx context.Context) ([]course.Module, error)
	GetByID(ctx context.Context, id int64) (course.Module, error)
}

type LessonsReader interface {
	ListByModule(ctx context.Context, moduleID int64) ([]course.Lesson, error)
	GetByID(ctx context.Context, id int64) (course.Lesson, error)
}

type StaticPages interface {
	Syllabus() []static.SyllabusEntry
	QAs() []static.QA
}

// PagesHandler serves the student-facing read-only pages.
type PagesHandler struct {
	modules  ModulesReader
	lessons  LessonsReader
	pages    StaticPages
	markdown *content.Renderer
}

func NewPagesHandler(modules ModulesReader, lessons LessonsReader, pages StaticPages, markdown *content.Renderer) *PagesHandler {
	return &PagesHandler{
		modules:  modules,
		lessons:  lessons,
		pages:    pages,
		markdown: markdown,
	}
}

// pathID parses the :id segment; anything non-numeric reads as "no such row".
func pathID(ctx *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(ctx.Param("id"), 10, 64)

	if err != nil || id <= 0 {
		return 0, false
	}

	return id, true
}

func (h *PagesHandler) Home(ctx *gin.Context) {
	h.renderModuleList(ctx, "Home")
}

func (h *PagesHandler) Modules(ctx *gin.Context) {
	h.renderModuleList(ctx, "Modules")
}

func (h *PagesHandler) renderModuleList(ctx *gin.Context, title string) {
	cctx, cancel := config.WithTimeout(2 * time.Second)
	defer cancel()

	modules, err := h.modules.List(cctx)

	if err != nil {
		RenderError(ctx, "Could not load modules.")
		return
	}

	data := pageData(ctx, title)
	data["Modules"] = modules

	ctx.HTML(http.StatusOK, "modules.html", data)
}

func (h *PagesHandler) ModuleByID(ctx *gin.Context) {
	id, ok := pathID(ctx)

	if !ok {
		RenderNotFound(ctx, "Module not found.")
		return
	}

	cctx, cancel := config.WithTimeout(2 * time.Second)
	defer cancel()

	module, err := h.modules.GetByID(cctx, id)

	if err != nil {
		if err == course.ErrModuleNotFound {
			RenderNotFound(ctx, "Module not found.")
			return
		}
		RenderError(ctx, "Could not load module.")
		return
	}

	lessons, err := h.lessons.ListByModule(cctx, id)

	if err != nil {
		RenderError(ctx, "Could not load lessons.")
		return
	}

	data := pageData(ctx, module.Title)
	data["Module"] = module
	data["Lessons"] = lessons

	ctx.HTML(http.StatusOK, "module.html", data)
}

func (h *PagesHandler) LessonByID(ctx *gin.Context) {
	id, ok := pathID(ctx)

	if !ok {
		RenderNotFound(ctx, "Lesson not found.")
		return
	}

	cctx, cancel := config.WithTimeout(2 * time.Second)
	defer cancel()

	lesson, err := h.lessons.GetByID(cctx, id)

	if err != nil {
		if err == course.ErrLessonNotFound {
			RenderNotFound(ctx, "Lesson not found.")
			return
		}
		RenderError(ctx, "Could not load lesson.")
		return
	}

	module, err := h.modules.GetByID(cctx, lesson.ModuleID)

	if err != nil {
		RenderError(ctx, "Could not load lesson.")
		return
	}

	data := pageData(ctx, lesson.Title)
	data["Module"] = module
	data["Lesson"] = lesson
	data["Content"] = h.markdown.Render(lesson.Content)

	// a malformed video URL means no embed, not an error
	if videoID, ok := content.VideoID(lesson.YouTubeURL); ok {
		data["VideoID"] = videoID
	}

	ctx.HTML(http.StatusOK, "lesson.html", data)
}

func (h *PagesHandler) Syllabus(ctx *gin.Context) {
	data := pageData(ctx, "Syllabus")
	data["Entries"] = h.pages.Syllabus()

	ctx.HTML(http.StatusOK, "syllabus.html", data)
}

func (h *PagesHandler) QAs(ctx *gin.Context) {
	data := pageData(ctx, "Q&A")
	data["QAs"] = h.pages.QAs()

	ctx.HTML(http.StatusOK, "qas.html", data)
}
