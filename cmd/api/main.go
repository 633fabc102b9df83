package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/BruksfildServices01/campus-booking/internal/audit"
	"github.com/BruksfildServices01/campus-booking/internal/config"
	dbpkg "github.com/BruksfildServices01/campus-booking/internal/db"
	"github.com/BruksfildServices01/campus-booking/internal/infra/cache"
	"github.com/BruksfildServices01/campus-booking/internal/logger"
	"github.com/BruksfildServices01/campus-booking/internal/routes"
)

const shutdownTimeout = 15 * time.Second

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	zlog := logger.New(cfg.Environment)
	defer func() { _ = zlog.Sync() }()

	db, err := dbpkg.NewDB(cfg)
	if err != nil {
		zlog.Fatal("Failed to open database", zap.String("driver", cfg.DBDriver), zap.Error(err))
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	rdb := cache.NewRedisClient(cfg)
	if rdb != nil {
		pingCtx, cancel := context.WithTimeout(ctx, 2*time.Second)
		if err := rdb.Ping(pingCtx).Err(); err != nil {
			zlog.Warn("Redis unreachable, template cache will bypass it",
				zap.String("addr", cfg.RedisAddr), zap.Error(err))
		}
		cancel()
	}

	dispatcher := audit.NewDispatcher(audit.New(db), zlog.Named("audit"))

	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	routes.RegisterRoutes(r, routes.Deps{
		DB:     db,
		Config: cfg,
		Logger: zlog,
		Redis:  rdb,
		Audit:  dispatcher,
	})

	srv := &http.Server{
		Addr:         cfg.Addr(),
		Handler:      r,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
		IdleTimeout:  60 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		zlog.Info("HTTP server starting",
			zap.String("addr", srv.Addr),
			zap.String("env", cfg.Environment),
			zap.String("timezone", cfg.Timezone))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case <-ctx.Done():
		zlog.Info("Shutdown signal received")
	case err := <-errCh:
		zlog.Error("HTTP server stopped", zap.Error(err))
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		zlog.Error("HTTP shutdown failed", zap.Error(err))
	}

	dispatcher.Close()

	if rdb != nil {
		_ = rdb.Close()
	}
	if sqlDB, err := db.DB(); err == nil {
		_ = sqlDB.Close()
	}

	zlog.Info("Server stopped")
}
