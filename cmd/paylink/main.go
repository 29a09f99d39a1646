// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Command paylink runs the payment link workbench: a minimal courseware host
// that serves the payment link component over HTTP.
package main

import (
	"context"
	"database/sql"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/joho/godotenv"

	"github.com/olegiv/ocms-paylink/internal/cache"
	"github.com/olegiv/ocms-paylink/internal/config"
	"github.com/olegiv/ocms-paylink/internal/handler"
	"github.com/olegiv/ocms-paylink/internal/i18n"
	"github.com/olegiv/ocms-paylink/internal/logging"
	"github.com/olegiv/ocms-paylink/internal/middleware"
	"github.com/olegiv/ocms-paylink/internal/module"
	"github.com/olegiv/ocms-paylink/internal/service"
	"github.com/olegiv/ocms-paylink/internal/store"
	"github.com/olegiv/ocms-paylink/internal/version"
	"github.com/olegiv/ocms-paylink/modules/paylink"
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
	showHelp := flag.Bool("help", false, "Show help information")
	flag.BoolVar(showHelp, "h", false, "Show help information (shorthand)")

	flag.Usage = func() {
		_, _ = fmt.Fprintf(os.Stderr, "paylink - payment link component workbench\n\n")
		_, _ = fmt.Fprintf(os.Stderr, "Usage: %s [options]\n\n", os.Args[0])
		_, _ = fmt.Fprintf(os.Stderr, "Options:\n")
		flag.PrintDefaults()
		_, _ = fmt.Fprintf(os.Stderr, "\nEnvironment Variables:\n")
		_, _ = fmt.Fprintf(os.Stderr, "  PAYLINK_DB_PATH            SQLite database path (default: ./data/paylink.db)\n")
		_, _ = fmt.Fprintf(os.Stderr, "  PAYLINK_SERVER_PORT        Server port (default: 8000)\n")
		_, _ = fmt.Fprintf(os.Stderr, "  PAYLINK_ENV                Environment: development|production (default: development)\n")
		_, _ = fmt.Fprintf(os.Stderr, "  PAYLINK_PROJECT            Project type: lms|cms (default: lms)\n")
		_, _ = fmt.Fprintf(os.Stderr, "  PAYLINK_ECOMMERCE_URL      Ecommerce base URL (optional)\n")
		_, _ = fmt.Fprintf(os.Stderr, "  PAYLINK_REDIS_URL          Redis URL for distributed caching (optional)\n")
		_, _ = fmt.Fprintf(os.Stderr, "  PAYLINK_DO_SEED            Seed the workbench demo course (default: false)\n")
	}

	flag.Parse()

	if *showHelp {
		flag.Usage()
		os.Exit(0)
	}

	versionInfo := &version.Info{
		Version:   appVersion,
		GitCommit: appGitCommit,
		BuildTime: appBuildTime,
	}

	if *showVersion {
		_, _ = fmt.Println(versionInfo.String())
		os.Exit(0)
	}

	if err := run(versionInfo); err != nil {
		slog.Error("application error", "error", err)
		os.Exit(1)
	}
}

func parseLogLevel(s string) slog.Level {
	switch s {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	}
	return slog.LevelInfo
}

func run(versionInfo *version.Info) error {
	// Load .env file if present (development)
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	logLevel := parseLogLevel(cfg.LogLevel)
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: logLevel}))
	slog.SetDefault(logger)

	if err := i18n.Init(logger); err != nil {
		return fmt.Errorf("initializing i18n: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(cfg.DBPath), 0755); err != nil {
		return fmt.Errorf("creating data directory: %w", err)
	}

	slog.Info("initializing database", "path", cfg.DBPath)
	db, err := store.NewDB(cfg.DBPath)
	if err != nil {
		return fmt.Errorf("initializing database: %w", err)
	}
	defer func(db *sql.DB) {
		if err := db.Close(); err != nil {
			slog.Error("error closing database connection", "error", err)
		}
	}(db)

	if err := store.Migrate(db); err != nil {
		return fmt.Errorf("running migrations: %w", err)
	}

	// Component diagnostics (WARN and above) also go to the event log.
	textHandler := slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: logLevel})
	logger = slog.New(logging.NewEventLogHandler(textHandler, db))
	slog.SetDefault(logger)

	ctx := context.Background()
	seeded, err := store.Seed(ctx, db, cfg.DoSeed)
	if err != nil {
		return fmt.Errorf("seeding database: %w", err)
	}

	cacheTTL := time.Duration(cfg.CacheTTL) * time.Second
	cacher, cacheInfo, err := cache.NewCache(cache.Config{
		RedisURL:         cfg.RedisURL,
		Prefix:           cfg.CachePrefix,
		DefaultTTL:       cacheTTL,
		MaxSize:          cfg.CacheMaxSize,
		CleanupInterval:  time.Minute,
		FallbackToMemory: true,
	}, logger)
	if err != nil {
		return fmt.Errorf("initializing cache: %w", err)
	}
	defer func() { _ = cacher.Close() }()
	slog.Info("cache initialized", "backend", cacheInfo.Backend, "fallback", cacheInfo.IsFallback)

	services := service.New(db, cacher, service.Options{
		EcommerceURL: cfg.EcommerceURL,
		BasketPath:   cfg.EcommerceBasketPath,
		CacheTTL:     cacheTTL,
	})

	hooks := module.NewHookRegistry(logger)
	registry := module.NewRegistry(logger)
	moduleCtx := &module.Context{
		DB:       db,
		Store:    store.New(db),
		Logger:   logger,
		Config:   cfg,
		Services: services,
		Hooks:    hooks,
		Settings: module.NewSettings(cfg.Project),
	}

	if err := registry.Register(paylink.New()); err != nil {
		return fmt.Errorf("registering paylink module: %w", err)
	}
	if err := registry.InitAll(moduleCtx); err != nil {
		return fmt.Errorf("initializing modules: %w", err)
	}
	defer func() {
		if err := registry.ShutdownAll(); err != nil {
			slog.Error("error shutting down modules", "error", err)
		}
	}()
	hooks.SetIsModuleActive(registry.IsActive)
	slog.Info("module system initialized",
		"modules", registry.Count(),
		"project", cfg.Project,
		"components", moduleCtx.Settings.Components(),
	)

	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(chimw.Logger)
	r.Use(chimw.Recoverer)
	r.Use(chimw.GetHead)
	r.Use(chimw.Timeout(30 * time.Second))
	r.Use(middleware.SecurityHeaders(middleware.DefaultSecurityHeadersConfig(cfg.IsDevelopment())))
	r.Use(middleware.Runtime(services.Users, cfg.IsStudio()))

	pinger, _ := cacher.(handler.Pinger)
	healthHandler := handler.NewHealthHandler(db, cacheInfo, pinger, versionInfo)
	r.Get("/health", healthHandler.Health)
	r.Get("/health/live", healthHandler.Liveness)
	r.Get("/health/ready", healthHandler.Readiness)

	modulesHandler := handler.NewModulesHandler(registry, hooks, moduleCtx.Settings)
	eventsHandler := handler.NewEventsHandler(services.Events)
	cacheHandler := handler.NewCacheHandler(cacher, cacheInfo, services.Events)
	r.Route("/workbench", func(r chi.Router) {
		r.Get("/modules", modulesHandler.List)
		r.Post("/modules/{name}/active", modulesHandler.SetActive)
		r.Get("/events", eventsHandler.List)
		r.Get("/cache", cacheHandler.Stats)
		r.Post("/cache/clear", cacheHandler.Clear)
	})

	registry.RouteAll(r)
	if cfg.IsStudio() {
		registry.StudioRouteAll(r)
	}

	if seeded != nil {
		base := fmt.Sprintf("http://%s/courses/%s/xblock/%s", cfg.ServerAddr(), seeded.CourseID, seeded.BlockID)
		slog.Info("workbench block ready",
			"student_view", base+"/student_view?user="+store.DemoStudentUser,
			"staff_view", base+"/student_view?user="+store.DemoStaffUser,
		)
	}

	srv := &http.Server{
		Addr:              cfg.ServerAddr(),
		Handler:           r,
		ReadTimeout:       15 * time.Second,
		ReadHeaderTimeout: 5 * time.Second,
		WriteTimeout:      60 * time.Second,
		IdleTimeout:       60 * time.Second,
		MaxHeaderBytes:    1 << 20,
	}

	go func() {
		slog.Info("starting server", "addr", cfg.ServerAddr(), "env", cfg.Env, "version", versionInfo.Version)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("server error", "error", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	slog.Info("shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown: %w", err)
	}

	slog.Info("server stopped")
	return nil
}
