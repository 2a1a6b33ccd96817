package handlers

import (
	"errors"
	"net/http"

	"sustainability-analytics-api/models"
	"sustainability-analytics-api/services"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type ModelsHandler struct {
	store   StatusStore
	trainer Trainer
	logger  *zap.Logger
}

func NewModelsHandler(store StatusStore, trainer Trainer, logger *zap.Logger) *ModelsHandler {
	return &ModelsHandler{store: store, trainer: trainer, logger: logger}
}

func (h *ModelsHandler) RegisterRoutes(r gin.IRoutes) {
	r.GET("/models/status", h.ListStatus)
	r.GET("/models/status/:type", h.GetStatus)
	r.POST("/models/train/:type", h.Train)
}

// ListStatus handles GET /models/status.
func (h *ModelsHandler) ListStatus(c *gin.Context) {
	statuses, err := h.store.ListAll(c.Request.Context())
	if err != nil {
		respondInternal(c, h.logger, "failed to list model statuses", err)
		return
	}
	c.JSON(http.StatusOK, statuses)
}

// GetStatus handles GET /models/status/:type.
func (h *ModelsHandler) GetStatus(c *gin.Context) {
	modelType, ok := models.ParseModelType(c.Param("type"))
	if !ok {
		respondError(c, http.StatusNotFound, msgModelNotFound)
		return
	}

	status, err := h.store.Get(c.Request.Context(), modelType)
	if errors.Is(err, services.ErrNotFound) {
		respondError(c, http.StatusNotFound, msgModelNotFound)
		return
	}
	if err != nil {
		respondInternal(c, h.logger, "failed to get model status", err)
		return
	}
	c.JSON(http.StatusOK, status)
}

// Train handles POST /models/train/:type. The model is marked as training
// right away and completes in the background.
func (h *ModelsHandler) Train(c *gin.Context) {
	modelType, ok := models.ParseModelType(c.Param("type"))
	if !ok {
		respondError(c, http.StatusNotFound, msgModelNotFound)
		return
	}

	if err := h.trainer.Start(c.Request.Context(), modelType); err != nil {
		respondInternal(c, h.logger, "failed to start training", err)
		return
	}

	h.logger.Info("training started", zap.String("model_type", string(modelType)))
	c.JSON(http.StatusOK, gin.H{"message": "Training started", "modelType": modelType})
}
