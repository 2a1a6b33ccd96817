package handlers

import (
	"net/http"

	"sustainability-analytics-api/config"
	"sustainability-analytics-api/middleware"
	"sustainability-analytics-api/scoring"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
)

type RouterDeps struct {
	Statuses    StatusStore
	Trainer     Trainer
	Engine      *scoring.Engine
	Predictions PredictionLogger
	Jobs        BatchJobLister
	Batches     BatchSubmitter
	DB          Pinger
	CORS        config.CORSConfig
	APIPrefix   string
	// MaxBodyBytes caps request bodies; zero means DefaultMaxBodyBytes.
	MaxBodyBytes int64
	Logger       *zap.Logger
}

// NewRouter builds the HTTP handler. Paths are served with or without the
// API prefix and a trailing slash.
func NewRouter(deps RouterDeps) http.Handler {
	router := gin.New()
	router.RedirectTrailingSlash = false
	router.RedirectFixedPath = false
	router.HandleMethodNotAllowed = false

	router.Use(
		middleware.RequestLogger(deps.Logger),
		middleware.Recovery(deps.Logger),
		middleware.Metrics(),
		middleware.SetupCORS(deps.CORS),
	)

	NewHealthHandler(deps.DB, deps.Logger).RegisterRoutes(router)
	NewModelsHandler(deps.Statuses, deps.Trainer, deps.Logger).RegisterRoutes(router)
	NewPredictHandler(deps.Engine, deps.Predictions, deps.MaxBodyBytes, deps.Logger).RegisterRoutes(router)
	NewBatchHandler(deps.Jobs, deps.Batches, deps.MaxBodyBytes, deps.Logger).RegisterRoutes(router)

	router.GET("/metrics", gin.WrapH(promhttp.Handler()))
	router.OPTIONS("/*path", middleware.Preflight)
	router.NoRoute(NotFound)

	return middleware.NormalizePath(deps.APIPrefix, router)
}
