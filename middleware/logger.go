package middleware

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"
)

// RequestLogger tags every request with an id and logs its outcome.
func RequestLogger(logger *log.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		requestId := uuid.NewString()
		c.Writer.Header().Set("X-Request-Id", requestId)

		start := time.Now()
		c.Next()

		logger.WithFields(log.Fields{
			"requestId": requestId,
			"method":    c.Request.Method,
			"path":      c.Request.URL.Path,
			"status":    c.Writer.Status(),
			"duration":  time.Since(start).String(),
		}).Info("request handled")
	}
}
