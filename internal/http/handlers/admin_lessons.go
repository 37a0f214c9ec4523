package handlers

import (
	"fmt"
	"net/http"
	"time"

	"github.com/geocoder89/coursehub/internal/config"
	"github.com/geocoder89/coursehub/internal/domain/course"
	"github.com/gin-gonic/gin"
)

type lessonInput struct {
	Title    string `validate:"required"`
	ModuleID int64  `validate:"gt=0"`
}

func parseLessonForm(ctx *gin.Context) course.LessonForm {
	return course.LessonForm{
		ModuleID:   formInt64(ctx, "module_id"),
		Title:      formValue(ctx, "title"),
		Content:    formValue(ctx, "content"),
		YouTubeURL: formValue(ctx, "youtube_url"),
		SortOrder:  formInt(ctx, "sort_order"),
	}
}

func (h *AdminHandler) renderLessonForm(ctx *gin.Context, status int, action string, form course.LessonForm, errs map[string]string) {
	cctx, cancel := config.WithTimeout(2 * time.Second)
	defer cancel()

	// module select needs the full list regardless of validity
	modules, err := h.modules.List(cctx)

	if err != nil {
		RenderError(ctx, "Could not load modules.")
		return
	}

	data := pageData(ctx, "Lesson")
	data["Action"] = action
	data["Form"] = form
	data["Modules"] = modules
	data["Errors"] = errs

	ctx.HTML(status, "admin_lesson_form.html", data)
}

func (h *AdminHandler) NewLessonForm(ctx *gin.Context) {
	form := course.LessonForm{}

	// preselect the module when coming from a module edit page
	if id, err := parseQueryID(ctx, "module_id"); err == nil {
		form.ModuleID = id
	}

	h.renderLessonForm(ctx, http.StatusOK, "/admin/lessons/new", form, nil)
}

func (h *AdminHandler) CreateLesson(ctx *gin.Context) {
	form := parseLessonForm(ctx)

	if err := validate.Struct(lessonInput{Title: form.Title, ModuleID: form.ModuleID}); err != nil {
		h.renderLessonForm(ctx, http.StatusUnprocessableEntity, "/admin/lessons/new", form, validationErrors(err))
		return
	}

	cctx, cancel := config.WithTimeout(2 * time.Second)
	defer cancel()

	_, err := h.lessons.Create(cctx, form)

	if err != nil {
		RenderError(ctx, "Could not create lesson.")
		return
	}

	redirectToAdmin(ctx)
}

func (h *AdminHandler) EditLessonForm(ctx *gin.Context) {
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

	form := course.LessonForm{
		ModuleID:   lesson.ModuleID,
		Title:      lesson.Title,
		Content:    lesson.Content,
		YouTubeURL: lesson.YouTubeURL,
		SortOrder:  lesson.SortOrder,
	}

	h.renderLessonForm(ctx, http.StatusOK, fmt.Sprintf("/admin/lessons/%d/edit", id), form, nil)
}

func (h *AdminHandler) UpdateLesson(ctx *gin.Context) {
	id, ok := pathID(ctx)

	if !ok {
		RenderNotFound(ctx, "Lesson not found.")
		return
	}

	form := parseLessonForm(ctx)
	action := fmt.Sprintf("/admin/lessons/%d/edit", id)

	if err := validate.Struct(lessonInput{Title: form.Title, ModuleID: form.ModuleID}); err != nil {
		h.renderLessonForm(ctx, http.StatusUnprocessableEntity, action, form, validationErrors(err))
		return
	}

	cctx, cancel := config.WithTimeout(2 * time.Second)
	defer cancel()

	_, err := h.lessons.Update(cctx, id, form)

	if err != nil {
		if err == course.ErrLessonNotFound {
			RenderNotFound(ctx, "Lesson not found.")
			return
		}
		RenderError(ctx, "Could not update lesson.")
		return
	}

	redirectToAdmin(ctx)
}

func (h *AdminHandler) DeleteLesson(ctx *gin.Context) {
	id, ok := pathID(ctx)

	if !ok {
		redirectToAdmin(ctx)
		return
	}

	cctx, cancel := config.WithTimeout(2 * time.Second)
	defer cancel()

	err := h.lessons.Delete(cctx, id)

	if err != nil && err != course.ErrLessonNotFound {
		RenderError(ctx, "Could not delete lesson.")
		return
	}

	redirectToAdmin(ctx)
}
