package handlers

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/geocoder89/coursehub/internal/auth"
	"github.com/geocoder89/coursehub/internal/config"
	"github.com/geocoder89/coursehub/internal/domain/user"
	"github.com/geocoder89/coursehub/internal/http/middlewares"
	"github.com/geocoder89/coursehub/internal/observability"
	"github.com/geocoder89/coursehub/internal/security"
	"github.com/geocoder89/coursehub/internal/session"
	"github.com/gin-gonic/gin"
)

type UserReader interface {
	GetByEmail(ctx context.Context, email string) (user.User, error)
}

type AuthHandler struct {
	users    UserReader
	sessions session.Store
	cookies  *auth.Manager
	obs      *observability.Prom
	cfg      config.Config
}

func NewAuthHandler(users UserReader, sessions session.Store, cookies *auth.Manager, obs *observability.Prom, cfg config.Config) *AuthHandler {
	return &AuthHandler{
		users:    users,
		sessions: sessions,
		cookies:  cookies,
		obs:      obs,
		cfg:      cfg,
	}
}

type loginInput struct {
	Email    string `validate:"required,email"`
	Password string `validate:"required"`
}

// LoginPage renders the login form. A browser that already holds a live
// session is sent home instead.
func (h *AuthHandler) LoginPage(ctx *gin.Context) {
	if h.hasLiveSession(ctx) {
		ctx.Redirect(http.StatusFound, "/")
		return
	}

	ctx.HTML(http.StatusOK, "login.html", pageData(ctx, "Sign In"))
}

func (h *AuthHandler) Login(ctx *gin.Context) {
	input := loginInput{
		Email:    strings.ToLower(formValue(ctx, "email")),
		Password: ctx.PostForm("password"),
	}

	if err := validate.Struct(input); err != nil {
		h.renderLoginError(ctx, http.StatusUnprocessableEntity, input.Email, validationErrors(err))
		return
	}

	// short timeout for DB lookup
	cctx, cancel := config.WithTimeout(2 * time.Second)
	defer cancel()

	foundUser, err := h.users.GetByEmail(cctx, input.Email)
	if err != nil {
		h.failLogin(ctx, input.Email)
		return
	}

	err = security.CheckPassword(foundUser.PasswordHash, input.Password)

	if err != nil {
		h.failLogin(ctx, input.Email)
		return
	}

	sid, err := h.sessions.Create(cctx, session.Session{
		UserID: foundUser.ID,
		Email:  foundUser.Email,
		Role:   foundUser.Role,
	})

	if err != nil {
		RenderError(ctx, "Could not create session.")
		return
	}

	cookieValue, err := h.cookies.Mint(sid)

	if err != nil {
		RenderError(ctx, "Could not create session.")
		return
	}

	h.setSessionCookie(ctx, cookieValue)
	h.obs.ObserveLogin("ok")

	ctx.Redirect(http.StatusSeeOther, "/")
}

func (h *AuthHandler) Logout(ctx *gin.Context) {
	if sid, ok := middlewares.SessionIDFromContext(ctx); ok {
		cctx, cancel := config.WithTimeout(2 * time.Second)
		defer cancel()

		// destroy is idempotent; a stale id is not worth an error page
		_ = h.sessions.Destroy(cctx, sid)
	}

	h.clearSessionCookie(ctx)

	ctx.Redirect(http.StatusSeeOther, "/login")
}

// Helper functions

func (h *AuthHandler) failLogin(ctx *gin.Context, email string) {
	h.obs.ObserveLogin("bad_credentials")
	h.renderLoginError(ctx, http.StatusUnauthorized, email, map[string]string{
		"form": "Email or password is incorrect.",
	})
}

func (h *AuthHandler) renderLoginError(ctx *gin.Context, status int, email string, errs map[string]string) {
	data := pageData(ctx, "Sign In")
	data["Email"] = email
	data["Errors"] = errs

	ctx.HTML(status, "login.html", data)
}

func (h *AuthHandler) hasLiveSession(ctx *gin.Context) bool {
	raw, err := ctx.Cookie(middlewares.SessionCookieName)

	if err != nil || raw == "" {
		return false
	}

	sid, err := h.cookies.Verify(raw)

	if err != nil {
		return false
	}

	cctx, cancel := config.WithTimeout(1 * time.Second)
	defer cancel()

	_, err = h.sessions.Get(cctx, sid)

	return err == nil
}

func (h *AuthHandler) setSessionCookie(ctx *gin.Context, raw string) {
	secure := h.cfg.Env == "prod"

	maxAge := int(h.cookies.TTL().Seconds())

	ctx.SetSameSite(http.SameSiteLaxMode)

	ctx.SetCookie(
		middlewares.SessionCookieName,
		raw,
		maxAge,
		"/",
		"",
		secure,
		true, // HttpOnly.
	)
}

func (h *AuthHandler) clearSessionCookie(ctx *gin.Context) {
	secure := h.cfg.Env == "prod"
	ctx.SetSameSite(http.SameSiteLaxMode)
	ctx.SetCookie(
		middlewares.SessionCookieName,
		"",
		-1,
		"/",
		"",
		secure,
		true,
	)
}
