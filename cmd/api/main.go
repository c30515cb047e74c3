package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"bookly/internal/audit"
	"bookly/internal/auth"
	"bookly/internal/books"
	"bookly/internal/config"
	"bookly/internal/httpapi"
	"bookly/internal/mail"
	"bookly/internal/observability"
	"bookly/internal/users"
	"bookly/pkg/logger"
	"bookly/pkg/utils"

	"github.com/gin-gonic/gin"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/joho/godotenv"
)

func main() {
	// Root context that cancels on shutdown
	rootCtx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// .env is optional; real deployments set env directly.
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("config load failed", "err", err)
		os.Exit(1)
	}

	log := logger.New(cfg.App.Env, "bookly-api")
	slog.SetDefault(log)

	if err := observability.InitSentry(cfg.Sentry.DSN, cfg.App.Env); err != nil {
		log.Error("sentry init failed", "err", err)
		os.Exit(1)
	}
	defer observability.FlushSentry()

	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	tokens, err := auth.NewManager(cfg.Auth)
	if err != nil {
		log.Error("auth init failed", "err", err)
		os.Exit(1)
	}

	links, err := auth.NewLinkCodec(cfg.Auth.JWTSecret)
	if err != nil {
		log.Error("link codec init failed", "err", err)
		os.Exit(1)
	}

	db, err := utils.OpenPostgres(rootCtx, "pgx", cfg.PostgresDSN(), utils.PostgresPoolConfig{})
	if err != nil {
		log.Error("postgres init failed", "err", err)
		os.Exit(1)
	}
	defer db.Close()

	rdb, err := utils.OpenRedis(rootCtx, utils.RedisConfig{Addr: cfg.RedisAddr()})
	if err != nil {
		log.Error("redis init failed", "err", err)
		os.Exit(1)
	}
	defer rdb.Close()

	blocklist, err := auth.NewRedisBlocklist(rdb, cfg.Auth.RevocationTTL)
	if err != nil {
		log.Error("blocklist init failed", "err", err)
		os.Exit(1)
	}

	verifier, err := auth.NewVerifier(tokens, blocklist)
	if err != nil {
		log.Error("verifier init failed", "err", err)
		os.Exit(1)
	}

	limiter, err := httpapi.NewLoginLimiter(rdb, cfg.Login.MaxFailures, cfg.Login.FailureWindow)
	if err != nil {
		log.Error("login limiter init failed", "err", err)
		os.Exit(1)
	}

	userSvc := users.NewService(users.NewPGRepo(db))
	bookSvc := books.NewService(books.NewPGRepo(db))
	auditSvc := audit.NewService(audit.NewMemoryRepo())

	authH := httpapi.AuthHandlers{
		Users:      userSvc,
		Tokens:     tokens,
		Blocklist:  blocklist,
		Links:      links,
		LinkMaxAge: cfg.Auth.LinkTokenMaxAge,
		Mail:       mail.LogSender{Log: log},
		Audit:      auditSvc,
		Limiter:    limiter,
		BaseURL:    fmt.Sprintf("http://localhost:%d", cfg.App.Port),
	}
	bookH := httpapi.BookHandlers{Books: bookSvc}

	// Gin router
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(logger.Middleware(log))

	registerRoutes(r, verifier, userSvc.Identity, authH, bookH)

	srv := &http.Server{
		Addr:              cfg.HTTPAddr(),
		Handler:           r,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	go func() {
		log.Info("api listening", "addr", srv.Addr, "env", cfg.App.Env)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("http server failed", "err", err)
			observability.CaptureError(err)
			stop()
		}
	}()

	<-rootCtx.Done()
	log.Info("shutdown initiated")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 20*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("http shutdown failed", "err", err)
	}
}
