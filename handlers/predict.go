package handlers

import (
	"errors"
	"net/http"

	"sustainability-analytics-api/models"
	"sustainability-analytics-api/scoring"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type PredictHandler struct {
	engine  *scoring.Engine
	log     PredictionLogger
	maxBody int64
	logger  *zap.Logger
}

func NewPredictHandler(engine *scoring.Engine, log PredictionLogger, maxBody int64, logger *zap.Logger) *PredictHandler {
	return &PredictHandler{engine: engine, log: log, maxBody: maxBody, logger: logger}
}

func (h *PredictHandler) RegisterRoutes(r gin.IRoutes) {
	r.POST("/predict/packaging", h.Predict(models.ModelTypePackaging))
	r.POST("/predict/carbon", h.Predict(models.ModelTypeCarbon))
	r.POST("/predict/product", h.Predict(models.ModelTypeProduct))
	r.POST("/predict/esg", h.Predict(models.ModelTypeESG))
}

// Predict scores the request body with the modelType function, logs the
// prediction and returns it with the log id.
func (h *PredictHandler) Predict(modelType models.ModelType) gin.HandlerFunc {
	return func(c *gin.Context) {
		body := ParseBody(c, h.maxBody)
		if !body.OK() {
			h.logger.Debug("rejected prediction body", zap.String("model_type", string(modelType)), zap.Error(body.Err))
			respondError(c, http.StatusBadRequest, msgInvalidBody)
			return
		}

		res, err := h.engine.Predict(modelType, body.Raw)
		if errors.Is(err, scoring.ErrInvalidInput) {
			h.logger.Debug("rejected prediction input", zap.String("model_type", string(modelType)), zap.Error(err))
			respondError(c, http.StatusBadRequest, msgInvalidBody)
			return
		}
		if err != nil {
			respondInternal(c, h.logger, "prediction failed", err)
			return
		}

		confidence := res.Confidence
		id, err := h.log.Append(c.Request.Context(), modelType, body.Raw, res.Prediction, &confidence)
		if err != nil {
			respondInternal(c, h.logger, "failed to log prediction", err)
			return
		}

		c.JSON(http.StatusOK, gin.H{"prediction": res.Prediction, "id": id})
	}
}
