package middleware

import (
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"cv-builder/internal/shared/telemetry"
)

// Logging emits a structured log per request.
func Logging() gin.HandlerFunc {
	return func(c *gin.Context) {
		if strings.EqualFold(c.Request.Method, "OPTIONS") {
			c.Next()
			return
		}

		start := time.Now()
		c.Next()
		latency := time.Since(start)

		formID, _ := c.Get("formId")
		generationID, _ := c.Get("generationId")
		stateTransition := c.GetString("stateTransition")

		telemetry.Info("request.complete", telemetry.Fields{
			"request_id":       RequestIDFromContext(c),
			"method":           c.Request.Method,
			"path":             c.Request.URL.Path,
			"route":            c.FullPath(),
			"status":           c.Writer.Status(),
			"state_transition": stateTransition,
			"duration_ms":      float64(latency.Microseconds()) / 1000.0,
			"form_id":          formID,
			"generation_id":    generationID,
			"bytes_out":        c.Writer.Size(),
			"client_ip":        c.ClientIP(),
			"user_agent":       c.Request.UserAgent(),
		})
	}
}
