// Copyright (c) 2025-2026 SaunaStroy
// SPDX-License-Identifier: GPL-3.0-or-later

package main

import (
	"context"
	"database/sql"
	"errors"
	"flag"
	"fmt"
	"io/fs"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/saunastroy/site/internal/auth"
	"github.com/saunastroy/site/internal/cache"
	"github.com/saunastroy/site/internal/captcha"
	"github.com/saunastroy/site/internal/catalog"
	"github.com/saunastroy/site/internal/config"
	"github.com/saunastroy/site/internal/handler"
	"github.com/saunastroy/site/internal/lead"
	"github.com/saunastroy/site/internal/logging"
	"github.com/saunastroy/site/internal/media"
	"github.com/saunastroy/site/internal/middleware"
	"github.com/saunastroy/site/internal/render"
	"github.com/saunastroy/site/internal/scheduler"
	"github.com/saunastroy/site/internal/session"
	"github.com/saunastroy/site/internal/store"
	"github.com/saunastroy/site/internal/version"
	"github.com/saunastroy/site/web"
)

// Version information - injected at build time via ldflags
var (
	appVersion   = "dev"
	appGitCommit = "unknown"
	appBuildTime = "unknown"
)

func main() {
	showVersion := flag.Bool("version", false, "Show version information")
	flag.BoolVar(showVersion, "v", false, "Show version information (shorthand)")

	flag.Usage = func() {
		_, _ = fmt.Fprintf(os.Stderr, "SaunaStroy site server\n\n")
		_, _ = fmt.Fprintf(os.Stderr, "Usage: %s [options]\n\n", os.Args[0])
		_, _ = fmt.Fprintf(os.Stderr, "Options:\n")
		flag.PrintDefaults()
		_, _ = fmt.Fprintf(os.Stderr, "\nEnvironment Variables:\n")
		_, _ = fmt.Fprintf(os.Stderr, "  SAUNA_SECRET_KEY       CSRF key (required in production, min 32 bytes)\n")
		_, _ = fmt.Fprintf(os.Stderr, "  SAUNA_DB_PATH          SQLite database path (default: ./data/site.db)\n")
		_, _ = fmt.Fprintf(os.Stderr, "  SAUNA_SERVER_PORT      Server port (default: 8080)\n")
		_, _ = fmt.Fprintf(os.Stderr, "  SAUNA_ENV              Environment: development|production (default: development)\n")
		_, _ = fmt.Fprintf(os.Stderr, "  SAUNA_UPLOADS_DIR      Uploaded media directory (default: ./uploads)\n")
		_, _ = fmt.Fprintf(os.Stderr, "  SAUNA_REDIS_URL        Redis URL for shared caching (optional)\n")
		_, _ = fmt.Fprintf(os.Stderr, "  SAUNA_HCAPTCHA_SITE_KEY / SAUNA_HCAPTCHA_SECRET_KEY\n")
		_, _ = fmt.Fprintf(os.Stderr, "                         hCaptcha keys for the lead forms (optional)\n")
		_, _ = fmt.Fprintf(os.Stderr, "  SAUNA_ADMIN_EMAIL / SAUNA_ADMIN_PASSWORD\n")
		_, _ = fmt.Fprintf(os.Stderr, "                         First admin account, created when none exists\n")
	}

	flag.Parse()

	if *showVersion {
		info := version.Info{Version: appVersion, GitCommit: appGitCommit, BuildTime: appBuildTime}
		_, _ = fmt.Printf("site %s\n", info)
		os.Exit(0)
	}

	if err := run(); err != nil {
		slog.Error("application error", "error", err)
		os.Exit(1)
	}
}

func run() error {
	// Load .env if present (development)
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	logLevel := slog.LevelInfo
	switch cfg.LogLevel {
	case "debug":
		logLevel = slog.LevelDebug
	case "warn":
		logLevel = slog.LevelWarn
	case "error":
		logLevel = slog.LevelError
	}
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: logLevel}))
	slog.SetDefault(logger)

	for _, dir := range []string{filepath.Dir(cfg.DBPath), cfg.UploadsDir} {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("creating directory %s: %w", dir, err)
		}
	}

	slog.Info("initializing database", "path", cfg.DBPath)
	db, err := store.NewDB(cfg.DBPath)
	if err != nil {
		return fmt.Errorf("initializing database: %w", err)
	}
	defer func(db *sql.DB) {
		if err := db.Close(); err != nil {
			slog.Error("closing database", "error", err)
		}
	}(db)

	if err := store.Migrate(db); err != nil {
		return fmt.Errorf("running migrations: %w", err)
	}
	slog.Info("database ready")

	// Mirror WARN and ERROR logs into the events table
	textHandler := slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: logLevel})
	logger = slog.New(logging.NewEventLogHandler(textHandler, db))
	slog.SetDefault(logger)

	queries := store.New(db)
	ctx := context.Background()

	if err := bootstrapAdmin(ctx, queries, cfg, logger); err != nil {
		return fmt.Errorf("bootstrapping admin user: %w", err)
	}

	cacheCfg := cache.DefaultConfig()
	cacheCfg.RedisURL = cfg.RedisURL
	cacheCfg.Prefix = cfg.CachePrefix
	cacher := cache.NewCache(cacheCfg)
	defer func() {
		if err := cacher.Close(); err != nil {
			slog.Error("closing cache", "error", err)
		}
	}()

	sched := scheduler.New(db, logger)
	if err := sched.Start(); err != nil {
		return fmt.Errorf("starting scheduler: %w", err)
	}
	defer sched.Stop()

	sessionManager := session.New(db, cfg.IsDevelopment())

	templatesFS, err := fs.Sub(web.Templates, "templates")
	if err != nil {
		return fmt.Errorf("templates sub filesystem: %w", err)
	}

	renderer, err := render.New(render.Config{
		TemplatesFS:    templatesFS,
		SessionManager: sessionManager,
		IsDev:          cfg.IsDevelopment(),
	})
	if err != nil {
		return fmt.Errorf("initializing renderer: %w", err)
	}

	verifier := captcha.NewHCaptcha(cfg.HCaptchaSiteKey, cfg.HCaptchaSecretKey, logger)
	captchaSiteKey := ""
	if verifier.Enabled() {
		captchaSiteKey = verifier.SiteKey()
		slog.Info("hcaptcha verification enabled")
	} else {
		slog.Warn("hcaptcha keys not set, lead forms accept submissions without captcha")
	}

	catalogService := catalog.NewService(queries, cacher)
	leadService := lead.NewService(queries, verifier, logger)
	authenticator := auth.NewAuthenticator(queries, logger)
	mediaStore := media.NewStore(cfg.UploadsDir)

	router := handler.NewRouter(handler.RouterConfig{
		Frontend: handler.NewFrontendHandler(handler.FrontendConfig{
			Catalog:        catalogService,
			Renderer:       renderer,
			FeaturedLimit:  cfg.FeaturedLimit,
			SiteURL:        cfg.SiteURL,
			CaptchaSiteKey: captchaSiteKey,
			IsDev:          cfg.IsDevelopment(),
			Logger:         logger,
		}),
		Leads:          handler.NewLeadHandler(leadService, renderer, captchaSiteKey, logger),
		Auth:           handler.NewAuthHandler(authenticator, renderer, sessionManager, logger),
		Admin:          handler.NewAdminHandler(catalogService, queries, renderer, mediaStore, logger),
		SessionManager: sessionManager,
		DB:             db,
		LeadLimiter:    middleware.NewLeadRateLimiter(cfg.LeadRatePerMinute, cfg.LeadRateBurst),
		CSRFKey:        []byte(cfg.SecretKey),
		IsDev:          cfg.IsDevelopment(),
		StaticFS:       web.Static,
		UploadsDir:     cfg.UploadsDir,
	})

	srv := &http.Server{
		Addr:              cfg.ServerAddr(),
		Handler:           router,
		ReadTimeout:       cfg.ReadTimeout,
		ReadHeaderTimeout: 5 * time.Second,
		WriteTimeout:      cfg.WriteTimeout,
		IdleTimeout:       60 * time.Second,
		MaxHeaderBytes:    1 << 20,
	}

	go func() {
		slog.Info("starting server", "addr", cfg.ServerAddr(), "env", cfg.Env)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("server error", "error", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	slog.Info("shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown: %w", err)
	}

	slog.Info("server stopped")
	return nil
}

// bootstrapAdmin creates the first admin account from the environment when
// the admin_users table is empty.
func bootstrapAdmin(ctx context.Context, queries *store.Queries, cfg *config.Config, logger *slog.Logger) error {
	if cfg.AdminEmail == "" || cfg.AdminPassword == "" {
		return nil
	}

	count, err := queries.CountAdminUsers(ctx)
	if err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	hash, err := auth.HashPassword(cfg.AdminPassword)
	if err != nil {
		return err
	}

	if _, err := queries.CreateAdminUser(ctx, store.CreateAdminUserParams{
		Email:        cfg.AdminEmail,
		PasswordHash: hash,
		Name:         "Администратор",
	}); err != nil {
		return err
	}

	logger.Info("created initial admin user", "email", cfg.AdminEmail)
	return nil
}
