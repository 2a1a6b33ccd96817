package middleware

import (
	"net/http"
	"strings"
	"time"

	"sustainability-analytics-api/config"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

var corsMethods = []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"}

func SetupCORS(cfg config.CORSConfig) gin.HandlerFunc {
	allowedOrigins := strings.Split(cfg.AllowedOrigins, ",")
	for i := range allowedOrigins {
		allowedOrigins[i] = strings.TrimSpace(allowedOrigins[i])
	}

	if len(allowedOrigins) == 1 && allowedOrigins[0] == "*" {
		return cors.New(cors.Config{
			AllowAllOrigins:           true,
			AllowMethods:              corsMethods,
			AllowHeaders:              []string{"Origin", "Content-Type"},
			ExposeHeaders:             []string{"Content-Length"},
			AllowCredentials:          false,
			MaxAge:                    12 * time.Hour,
			OptionsResponseStatusCode: http.StatusOK,
		})
	}

	return cors.New(cors.Config{
		AllowOrigins:              allowedOrigins,
		AllowMethods:              corsMethods,
		AllowHeaders:              []string{"Origin", "Content-Type"},
		ExposeHeaders:             []string{"Content-Length"},
		AllowCredentials:          true,
		MaxAge:                    12 * time.Hour,
		OptionsResponseStatusCode: http.StatusOK,
	})
}

// Preflight answers any OPTIONS request that reaches routing with an empty
// 200, including requests without an Origin header.
func Preflight(c *gin.Context) {
	c.Status(http.StatusOK)
}
