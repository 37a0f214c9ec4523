package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/geocoder89/coursehub/internal/auth"
	"github.com/geocoder89/coursehub/internal/config"
	"github.com/geocoder89/coursehub/internal/content"
	"github.com/geocoder89/coursehub/internal/db"
	httpx "github.com/geocoder89/coursehub/internal/http"
	"github.com/geocoder89/coursehub/internal/observability"
	"github.com/geocoder89/coursehub/internal/redisclient"
	"github.com/geocoder89/coursehub/internal/repo/postgres"
	"github.com/geocoder89/coursehub/internal/session"
	"github.com/geocoder89/coursehub/internal/static"
	"github.com/joho/godotenv"
)

func main() {
	// .env is optional; real deployments use the environment directly
	_ = godotenv.Load()

	cfg := config.Load()

	log := observability.NewLogger(cfg.Env)

	// tracing is best effort; the portal runs fine without a collector
	shutdownTracer, err := observability.InitTracer(context.Background(), "coursehub", cfg.OTLPEndpoint)

	if err != nil {
		log.Warn("tracer init failed", "err", err)
		shutdownTracer = func(context.Context) error { return nil }
	}

	pool, err := db.NewPool(cfg.DBURL)

	if err != nil {
		log.Error("db connect failed", "err", err)
		os.Exit(1)
	}

	defer pool.Close()

	startCtx, cancelStart := config.WithTimeout(10 * time.Second)

	if err := db.Migrate(startCtx, pool); err != nil {
		cancelStart()
		log.Error("migration failed", "err", err)
		os.Exit(1)
	}

	if err := db.EnsureAdminUser(startCtx, pool, cfg); err != nil {
		cancelStart()
		log.Error("admin seed failed", "err", err)
		os.Exit(1)
	}

	cancelStart()

	redisC := redisclient.New(redisclient.Config{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
	})

	defer redisC.Close()

	pingCtx, cancelPing := config.WithTimeout(2 * time.Second)

	if err := redisC.Ping(pingCtx); err != nil {
		cancelPing()
		log.Error("redis connect failed", "err", err)
		os.Exit(1)
	}

	cancelPing()

	prom := observability.NewProm()

	ping := func() error {
		ctx, cancel := config.WithTimeout(1 * time.Second)
		defer cancel()

		if err := pool.Ping(ctx); err != nil {
			return err
		}

		return redisC.Ping(ctx)
	}

	router := httpx.NewRouter(cfg, httpx.Deps{
		Log:      log,
		Users:    postgres.NewUsersRepo(pool, prom),
		Modules:  postgres.NewModulesRepo(pool, prom),
		Lessons:  postgres.NewLessonsRepo(pool, prom),
		Static:   static.NewLoader(cfg.DataDir),
		Sessions: session.NewRedisStore(redisC.Raw(), cfg.SessionTTL),
		Cookies:  auth.NewManager(cfg.SessionSecret, cfg.SessionTTL),
		Markdown: content.NewRenderer(),
		Prom:     prom,
		Ping:     ping,
	})

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Port),
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      15 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	go func() {
		log.Info("server starting", "port", cfg.Port, "env", cfg.Env)
		err := srv.ListenAndServe()

		if err != nil && err != http.ErrServerClosed {
			log.Error("server failed", "err", err)
			os.Exit(1)
		}
	}()

	// Graceful shutdown

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop
	log.Info("server shutting down")

	shutdownCh := make(chan struct{})

	go func() {
		defer close(shutdownCh)

		ctx, cancel := config.WithTimeout(10 * time.Second)

		defer cancel()

		if err := srv.Shutdown(ctx); err != nil {
			log.Error("graceful shutdown failed", "err", err)
		}

		_ = shutdownTracer(ctx)
	}()

	select {
	case <-shutdownCh:
		log.Info("shutdown complete")

	case <-time.After(12 * time.Second):
		log.Error("shutdown timed out")
	}
}
