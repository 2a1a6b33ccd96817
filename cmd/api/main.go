package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"sustainability-analytics-api/config"
	"sustainability-analytics-api/database"
	"sustainability-analytics-api/handlers"
	"sustainability-analytics-api/scoring"
	"sustainability-analytics-api/services"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// sqlPinger adapts *sql.DB to the health check.
type sqlPinger struct{ db *sql.DB }

func (p sqlPinger) Ping(ctx context.Context) error { return p.db.PingContext(ctx) }

func newLogger(cfg *config.Config) (*zap.Logger, error) {
	if cfg.IsDevelopment() {
		return zap.NewDevelopment()
	}
	return zap.NewProduction()
}

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	logger, err := newLogger(cfg)
	if err != nil {
		log.Fatalf("Failed to create logger: %v", err)
	}
	defer logger.Sync() //nolint:errcheck

	if !cfg.IsDevelopment() {
		gin.SetMode(gin.ReleaseMode)
	}

	if err := run(cfg, logger); err != nil {
		logger.Error("server exited with error", zap.Error(err))
		os.Exit(1)
	}
}

func run(cfg *config.Config, logger *zap.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	db, err := database.Connect(ctx, cfg, logger)
	if err != nil {
		return err
	}
	sqlDB, err := db.DB()
	if err != nil {
		return fmt.Errorf("failed to get sql db handle: %w", err)
	}
	defer sqlDB.Close()

	if err := database.RunMigrations(sqlDB, logger); err != nil {
		return err
	}

	cache, err := services.NewCacheService(ctx, cfg.Redis, logger)
	if err != nil {
		logger.Warn("redis unavailable, continuing with in-process cache", zap.Error(err))
	}
	defer cache.Close()

	statuses := services.NewModelStatusStore(db, cache, logger)
	predictions := services.NewPredictionLog(db, cache, logger)
	jobs := services.NewBatchJobStore(db)
	engine := scoring.NewEngine()
	scheduler := services.NewTrainingScheduler(statuses, cfg.Training.Delay, cfg.Training.ModelVersion, logger)

	if n, err := scheduler.Reconcile(ctx); err != nil {
		logger.Warn("failed to reconcile training models", zap.Error(err))
	} else if n > 0 {
		logger.Info("rescheduled training completions", zap.Int("count", n))
	}

	router := handlers.NewRouter(handlers.RouterDeps{
		Statuses:     statuses,
		Trainer:      scheduler,
		Engine:       engine,
		Predictions:  predictions,
		Jobs:         jobs,
		Batches:      services.NewBatchProcessor(jobs, engine, logger),
		DB:           sqlPinger{db: sqlDB},
		CORS:         cfg.CORS,
		APIPrefix:    cfg.Server.APIPrefix,
		MaxBodyBytes: cfg.Server.MaxBodyBytes,
		Logger:       logger,
	})

	srv := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.Server.Port),
		Handler: router,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("starting server", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("server failed: %w", err)
		}
	case <-ctx.Done():
	}

	logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("http shutdown failed", zap.Error(err))
	}
	if err := scheduler.Shutdown(shutdownCtx); err != nil {
		logger.Error("training scheduler shutdown failed", zap.Error(err))
	}
	return nil
}
