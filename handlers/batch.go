package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type BatchHandler struct {
	jobs      BatchJobLister
	processor BatchSubmitter
	maxBody   int64
	logger    *zap.Logger
}

func NewBatchHandler(jobs BatchJobLister, processor BatchSubmitter, maxBody int64, logger *zap.Logger) *BatchHandler {
	return &BatchHandler{jobs: jobs, processor: processor, maxBody: maxBody, logger: logger}
}

func (h *BatchHandler) RegisterRoutes(r gin.IRoutes) {
	r.GET("/batch/jobs", h.ListJobs)
	r.POST("/batch/upload", h.Upload)
}

type uploadRequest struct {
	ModelType string          `json:"modelType"`
	Data      json.RawMessage `json:"data"`
}

// ListJobs handles GET /batch/jobs.
func (h *BatchHandler) ListJobs(c *gin.Context) {
	jobs, err := h.jobs.List(c.Request.Context())
	if err != nil {
		respondInternal(c, h.logger, "failed to list batch jobs", err)
		return
	}
	c.JSON(http.StatusOK, jobs)
}

// Upload handles POST /batch/upload.
func (h *BatchHandler) Upload(c *gin.Context) {
	body := ParseBody(c, h.maxBody)
	if !body.OK() {
		respondError(c, http.StatusBadRequest, msgInvalidBody)
		return
	}

	var req uploadRequest
	if err := json.Unmarshal(body.Raw, &req); err != nil {
		respondError(c, http.StatusBadRequest, msgInvalidBody)
		return
	}
	if req.ModelType == "" {
		respondError(c, http.StatusBadRequest, "modelType is required")
		return
	}

	job, err := h.processor.Process(c.Request.Context(), req.ModelType, req.Data)
	if err != nil {
		respondInternal(c, h.logger, "failed to process batch upload", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"jobId": job.ID, "totalRows": job.TotalRows})
}
