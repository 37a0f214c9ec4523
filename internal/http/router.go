package http

import (
	"log/slog"
	"time"

	"github.com/geocoder89/coursehub/internal/auth"
	"github.com/geocoder89/coursehub/internal/config"
	"github.com/geocoder89/coursehub/internal/content"
	"github.com/geocoder89/coursehub/internal/http/handlers"
	"github.com/geocoder89/coursehub/internal/http/middlewares"
	"github.com/geocoder89/coursehub/internal/observability"
	"github.com/geocoder89/coursehub/internal/session"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
)

// Deps carries everything the router wires together. Handlers see narrow
// interfaces, so tests can assemble the full router over the memory repos.
type Deps struct {
	Log      *slog.Logger
	Users    handlers.UserReader
	Modules  handlers.ModulesStore
	Lessons  handlers.LessonsStore
	Static   handlers.StaticPages
	Sessions session.Store
	Cookies  *auth.Manager
	Markdown *content.Renderer
	Prom     *observability.Prom
	Ping     func() error
}

func NewRouter(cfg config.Config, d Deps) *gin.Engine {
	if cfg.Env != "dev" {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()

	r.SetHTMLTemplate(Templates())

	// middleware

	r.Use(gin.Recovery())
	r.Use(middlewares.RequestID())
	r.Use(middlewares.RequestLogger(d.Log))
	r.Use(middlewares.SecurityHeaders())
	r.Use(otelgin.Middleware("coursehub"))

	if d.Prom != nil {
		r.Use(d.Prom.GinHandleMiddleware())
	}

	r.Use(middlewares.MaxBodyBytes(1 << 20))

	// health + metrics

	h := handlers.NewHealthHandler(d.Ping)
	r.GET("/healthz", h.Healthz)
	r.GET("/readyz", h.Readyz)

	if d.Prom != nil {
		r.GET("/metrics", gin.WrapH(promhttp.HandlerFor(d.Prom.Registry, promhttp.HandlerOpts{})))
	}

	// wire up handlers

	guard := middlewares.NewGuard(d.Cookies, d.Sessions)

	authHandler := handlers.NewAuthHandler(d.Users, d.Sessions, d.Cookies, d.Prom, cfg)
	pagesHandler := handlers.NewPagesHandler(d.Modules, d.Lessons, d.Static, d.Markdown)
	adminHandler := handlers.NewAdminHandler(d.Modules, d.Lessons)

	// login is public but rate limited per IP
	loginLimit := middlewares.NewRateLimiter(10, time.Minute)

	r.GET("/login", authHandler.LoginPage)
	r.POST("/login", loginLimit.RateLimiterMiddleware(middlewares.KeyByIP), authHandler.Login)

	// student-facing pages

	portal := r.Group("")
	portal.Use(guard.RequireSession())

	portal.GET("/", pagesHandler.Home)
	portal.GET("/modules", pagesHandler.Modules)
	portal.GET("/modules/:id", pagesHandler.ModuleByID)
	portal.GET("/lessons/:id", pagesHandler.LessonByID)
	portal.GET("/syllabus", pagesHandler.Syllabus)
	portal.GET("/qas", pagesHandler.QAs)
	portal.POST("/logout", authHandler.Logout)

	// admin CRUD

	admin := portal.Group("/admin")
	admin.Use(guard.RequireAdmin())

	admin.GET("", adminHandler.Dashboard)
	admin.GET("/modules/new", adminHandler.NewModuleForm)
	admin.POST("/modules/new", adminHandler.CreateModule)
	admin.GET("/modules/:id/edit", adminHandler.EditModuleForm)
	admin.POST("/modules/:id/edit", adminHandler.UpdateModule)
	admin.POST("/modules/:id/delete", adminHandler.DeleteModule)
	admin.GET("/lessons/new", adminHandler.NewLessonForm)
	admin.POST("/lessons/new", adminHandler.CreateLesson)
	admin.GET("/lessons/:id/edit", adminHandler.EditLessonForm)
	admin.POST("/lessons/:id/edit", adminHandler.UpdateLesson)
	admin.POST("/lessons/:id/delete", adminHandler.DeleteLesson)

	return r
}
