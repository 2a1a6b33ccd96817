package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"math/rand/v2"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"sustainability-analytics-api/config"
	"sustainability-analytics-api/services"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
)

// staleGrace is added to the training delay before a row counts as stuck.
const staleGrace = 30 * time.Second

// ModelsChannel carries completions made by the worker.
const ModelsChannel = "sustainability:models"

type Completion struct {
	ModelType   string    `json:"modelType"`
	Accuracy    float64   `json:"accuracy"`
	LastTrained time.Time `json:"lastTrained"`
	Version     string    `json:"version"`
}

var (
	modelsCompleted = promauto.NewCounter(prometheus.CounterOpts{
		Name: "sustainability_worker_models_completed_total",
		Help: "Total number of stuck training rows completed by the worker.",
	})
	cycleFailures = promauto.NewCounter(prometheus.CounterOpts{
		Name: "sustainability_worker_failures_total",
		Help: "Total number of reconcile query or update failures.",
	})
	cycleDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "sustainability_worker_cycle_duration_seconds",
		Help:    "Duration of a full reconcile cycle.",
		Buckets: []float64{0.01, 0.05, 0.1, 0.5, 1.0, 5.0},
	})
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	logger, err := zap.NewProduction()
	if cfg.IsDevelopment() {
		logger, err = zap.NewDevelopment()
	}
	if err != nil {
		log.Fatalf("Failed to create logger: %v", err)
	}
	defer logger.Sync() //nolint:errcheck

	dbPool, err := pgxpool.New(ctx, cfg.Database.GetDSN())
	if err != nil {
		logger.Fatal("db pool init failed", zap.Error(err))
	}
	defer dbPool.Close()

	if err := dbPool.Ping(ctx); err != nil {
		logger.Fatal("db ping failed", zap.Error(err))
	}
	logger.Info("db connected")

	cache, err := services.NewCacheService(ctx, cfg.Redis, logger)
	if err != nil {
		logger.Warn("redis unavailable, completions will not be announced", zap.Error(err))
	}
	defer cache.Close()

	go serveHTTP(cfg.Worker.MetricsAddr, logger)

	threshold := staleThreshold(cfg.Training.Delay)
	logger.Info("worker running",
		zap.Duration("interval", cfg.Worker.ReconcileInterval),
		zap.Duration("stale_after", threshold))

	runCycle(ctx, dbPool, cache, threshold, cfg.Training.ModelVersion, logger)

	ticker := time.NewTicker(cfg.Worker.ReconcileInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			runCycle(ctx, dbPool, cache, threshold, cfg.Training.ModelVersion, logger)
		case <-ctx.Done():
			logger.Info("worker shutting down")
			return
		}
	}
}

// staleThreshold is how long a row may stay in training before the worker
// completes it. The API process normally finishes well within the delay.
func staleThreshold(delay time.Duration) time.Duration {
	if delay < 0 {
		delay = 0
	}
	return delay + staleGrace
}

func randomAccuracy() float64 {
	return 75 + rand.Float64()*20
}

func runCycle(ctx context.Context, dbPool *pgxpool.Pool, cache *services.CacheService, threshold time.Duration, version string, logger *zap.Logger) {
	start := time.Now()
	defer func() {
		cycleDuration.Observe(time.Since(start).Seconds())
	}()

	cutoff := time.Now().UTC().Add(-threshold)
	rows, err := dbPool.Query(ctx, `
		SELECT model_type
		FROM model_status
		WHERE status = 'training' AND updated_at < $1
	`, cutoff)
	if err != nil {
		cycleFailures.Inc()
		logger.Error("query model_status failed", zap.Error(err))
		return
	}
	var stuck []string
	for rows.Next() {
		var modelType string
		if err := rows.Scan(&modelType); err != nil {
			cycleFailures.Inc()
			logger.Error("row scan failed", zap.Error(err))
			continue
		}
		stuck = append(stuck, modelType)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		cycleFailures.Inc()
		logger.Error("rows iteration error", zap.Error(err))
		return
	}
	if len(stuck) == 0 {
		return
	}

	completed := completeModels(ctx, dbPool, stuck, cutoff, version, logger)
	if len(completed) > 0 {
		if err := cache.Delete(ctx, services.StatusCacheKey); err != nil {
			logger.Warn("status cache invalidation failed", zap.Error(err))
		}
		announce(ctx, cache, completed, logger)
	}

	logger.Info("reconcile cycle completed",
		zap.Int("stuck", len(stuck)),
		zap.Int("completed", len(completed)),
		zap.Duration("took", time.Since(start)))
}

func completeModels(ctx context.Context, dbPool *pgxpool.Pool, modelTypes []string, cutoff time.Time, version string, logger *zap.Logger) []Completion {
	var done []Completion
	for _, mt := range modelTypes {
		c := Completion{
			ModelType:   mt,
			Accuracy:    randomAccuracy(),
			LastTrained: time.Now().UTC(),
			Version:     version,
		}
		// The status and cutoff guards skip rows the API touched meanwhile.
		tag, err := dbPool.Exec(ctx, `
			UPDATE model_status
			SET status = 'trained', accuracy = $2, last_trained = $3, version = $4, updated_at = $3
			WHERE model_type = $1 AND status = 'training' AND updated_at < $5
		`, c.ModelType, c.Accuracy, c.LastTrained, c.Version, cutoff)
		if err != nil {
			cycleFailures.Inc()
			logger.Error("model_status update failed", zap.String("model_type", mt), zap.Error(err))
			continue
		}
		if tag.RowsAffected() == 0 {
			continue
		}
		modelsCompleted.Inc()
		done = append(done, c)
	}
	return done
}

func announce(ctx context.Context, cache *services.CacheService, completions []Completion, logger *zap.Logger) {
	for _, c := range completions {
		if err := cache.Publish(ctx, ModelsChannel, c); err != nil {
			logger.Warn("redis publish failed", zap.String("model_type", c.ModelType), zap.Error(err))
		}
	}
}

func serveHTTP(addr string, logger *zap.Logger) {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		fmt.Fprint(w, "ok")
	})

	server := &http.Server{
		Addr:              addr,
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}

	logger.Info("metrics server listening", zap.String("addr", addr))
	if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logger.Fatal("metrics server failed", zap.Error(err))
	}
}
