package handlers

import (
	"net/http"

	"github.com/geocoder89/coursehub/internal/http/middlewares"
	"github.com/gin-gonic/gin"
)

// pageData assembles the fields every template expects: title, signed-in
// identity for the nav bar, and the request id for the footer.
func pageData(ctx *gin.Context, title string) gin.H {
	data := gin.H{
		"Title": title,
	}

	if email, ok := middlewares.EmailFromContext(ctx); ok {
		data["UserEmail"] = email
	}

	if role, ok := middlewares.RoleFromContext(ctx); ok {
		data["IsAdmin"] = role.CanManageContent()
	}

	if v, ok := ctx.Get(middlewares.CtxRequestID); ok {
		if id, ok := v.(string); ok {
			data["RequestID"] = id
		}
	}

	return data
}

func RenderNotFound(ctx *gin.Context, message string) {
	data := pageData(ctx, "Not Found")
	data["Message"] = message

	ctx.HTML(http.StatusNotFound, "not_found.html", data)
	ctx.Abort()
}

func RenderError(ctx *gin.Context, message string) {
	data := pageData(ctx, "Something Went Wrong")
	data["Message"] = message

	ctx.HTML(http.StatusInternalServerError, "error.html", data)
	ctx.Abort()
}
