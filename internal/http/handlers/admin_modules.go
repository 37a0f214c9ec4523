package handlers

import (
	"fmt"
	"net/http"
	"time"

	"github.com/geocoder89/coursehub/internal/config"
	"github.com/geocoder89/coursehub/internal/domain/course"
	"github.com/gin-gonic/gin"
)

type moduleInput struct {
	Title string `validate:"required"`
}

func parseModuleForm(ctx *gin.Context) course.ModuleForm {
	return course.ModuleForm{
		Title:       formValue(ctx, "title"),
		Description: formValue(ctx, "description"),
		SortOrder:   formInt(ctx, "sort_order"),
	}
}

func (h *AdminHandler) renderModuleForm(ctx *gin.Context, status int, action string, form course.ModuleForm, errs map[string]string) {
	data := pageData(ctx, "Module")
	data["Action"] = action
	data["Form"] = form
	data["Errors"] = errs

	ctx.HTML(status, "admin_module_form.html", data)
}

func (h *AdminHandler) NewModuleForm(ctx *gin.Context) {
	h.renderModuleForm(ctx, http.StatusOK, "/admin/modules/new", course.ModuleForm{}, nil)
}

func (h *AdminHandler) CreateModule(ctx *gin.Context) {
	form := parseModuleForm(ctx)

	if err := validate.Struct(moduleInput{Title: form.Title}); err != nil {
		// a validation miss re-renders the form pre-filled; no insert happens
		h.renderModuleForm(ctx, http.StatusUnprocessableEntity, "/admin/modules/new", form, validationErrors(err))
		return
	}

	cctx, cancel := config.WithTimeout(2 * time.Second)
	defer cancel()

	_, err := h.modules.Create(cctx, form)

	if err != nil {
		RenderError(ctx, "Could not create module.")
		return
	}

	redirectToAdmin(ctx)
}

func (h *AdminHandler) EditModuleForm(ctx *gin.Context) {
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

	form := course.ModuleForm{
		Title:       module.Title,
		Description: module.Description,
		SortOrder:   module.SortOrder,
	}

	data := pageData(ctx, "Edit Module")
	data["Action"] = fmt.Sprintf("/admin/modules/%d/edit", id)
	data["Form"] = form
	data["Module"] = module
	data["Lessons"] = lessons

	ctx.HTML(http.StatusOK, "admin_module_form.html", data)
}

func (h *AdminHandler) UpdateModule(ctx *gin.Context) {
	id, ok := pathID(ctx)

	if !ok {
		RenderNotFound(ctx, "Module not found.")
		return
	}

	form := parseModuleForm(ctx)
	action := fmt.Sprintf("/admin/modules/%d/edit", id)

	if err := validate.Struct(moduleInput{Title: form.Title}); err != nil {
		h.renderModuleForm(ctx, http.StatusUnprocessableEntity, action, form, validationErrors(err))
		return
	}

	cctx, cancel := config.WithTimeout(2 * time.Second)
	defer cancel()

	_, err := h.modules.Update(cctx, id, form)

	if err != nil {
		if err == course.ErrModuleNotFound {
			RenderNotFound(ctx, "Module not found.")
			return
		}
		RenderError(ctx, "Could not update module.")
		return
	}

	redirectToAdmin(ctx)
}

// DeleteModule is idempotent: deleting an id that is already gone redirects
// back to the listing without complaint. The lesson cascade is the
// storage layer's job.
func (h *AdminHandler) DeleteModule(ctx *gin.Context) {
	id, ok := pathID(ctx)

	if !ok {
		redirectToAdmin(ctx)
		return
	}

	cctx, cancel := config.WithTimeout(2 * time.Second)
	defer cancel()

	err := h.modules.Delete(cctx, id)

	if err != nil && err != course.ErrModuleNotFound {
		RenderError(ctx, "Could not delete module.")
		return
	}

	redirectToAdmin(ctx)
}
