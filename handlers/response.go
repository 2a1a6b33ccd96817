package handlers

import (
	"net/http"

	"sustainability-analytics-api/middleware"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const (
	msgNotFound      = "Not found"
	msgModelNotFound = "Model not found"
	msgInvalidBody   = "Invalid request body"
)

func respondError(c *gin.Context, status int, message string) {
	c.AbortWithStatusJSON(status, gin.H{"error": message})
}

// respondInternal logs err and answers with an opaque 500.
func respondInternal(c *gin.Context, logger *zap.Logger, msg string, err error) {
	logger.Error(msg,
		zap.String("method", c.Request.Method),
		zap.String("path", c.Request.URL.Path),
		zap.Error(err))
	respondError(c, http.StatusInternalServerError, middleware.InternalErrorMessage)
}

// NotFound answers unmatched method and path combinations.
func NotFound(c *gin.Context) {
	respondError(c, http.StatusNotFound, msgNotFound)
}
