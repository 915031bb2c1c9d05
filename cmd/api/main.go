package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"moviehub/internal/config"
	"moviehub/internal/database"
	"moviehub/internal/logger"
	"moviehub/internal/middleware"
	"moviehub/internal/modules/catalog"
	"moviehub/internal/modules/favorite"
	"moviehub/internal/modules/settings"
	"moviehub/internal/repository"
	"moviehub/internal/tmdb"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}
	logger.Init(cfg.AppEnv, cfg.LogLevel, cfg.Debug)

	db, err := database.Open(cfg.DatabaseURL)
	if err != nil {
		logger.Error("database open failed", "error", err)
		os.Exit(1)
	}

	remote, err := tmdb.New(tmdb.Options{
		BaseURL:     cfg.TMDBBaseURL,
		Token:       cfg.TMDBToken,
		Language:    cfg.TMDBLanguage,
		Timeout:     cfg.TMDBTimeout,
		CacheMaxAge: cfg.TMDBCacheMaxAge,
		RateLimit:   cfg.TMDBRateLimit,
	})
	if err != nil {
		logger.Error("tmdb client setup failed", "error", err)
		os.Exit(1)
	}

	favoriteService := favorite.NewService(repository.NewFavoriteRepository(db), remote)
	catalogService := catalog.NewService(remote, favoriteService)
	settingsService := settings.NewService(repository.NewPreferenceRepository(db))
	settingsService.Load(context.Background())

	limiter := middleware.NewRateLimiter(cfg.APIRateLimit, int(cfg.APIRateLimit)*2)
	sweepCtx, stopSweep := context.WithCancel(context.Background())
	defer stopSweep()
	go limiter.Run(sweepCtx)

	router := newRouter(cfg, routerDeps{
		catalog:   catalog.NewHandler(catalogService),
		favorites: favorite.NewHandler(favoriteService),
		settings:  settings.NewHandler(settingsService),
		limiter:   limiter,
	})

	srv := &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	go func() {
		logger.Info("http server listening", "addr", cfg.HTTPAddr, "env", cfg.AppEnv)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("http server failed", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down")
	catalogService.Shutdown()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("forced shutdown", "error", err)
	}

	if sqlDB, err := db.DB(); err == nil {
		_ = sqlDB.Close()
	}
	logger.Info("server exited")
}
