package middleware

import (
	"fmt"
	"net/http"
	"runtime/debug"

	"github.com/gin-gonic/gin"

	"cv-builder/internal/shared/server/respond"
	"cv-builder/internal/shared/telemetry"
)

// Recovery turns a handler panic into a 500 error envelope. A panic after the
// response was committed is logged and the connection is left as is.
func Recovery() gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			rec := recover()
			if rec == nil {
				return
			}
			fields := telemetry.Fields{
				"request_id": RequestIDFromContext(c),
				"route":      c.FullPath(),
				"method":     c.Request.Method,
				"panic":      fmt.Sprint(rec),
				"stack":      string(debug.Stack()),
			}
			if formID := c.GetString("formId"); formID != "" {
				fields["form_id"] = formID
			}
			telemetry.Error("handler panic", fields)

			if c.Writer.Written() {
				c.Abort()
				return
			}
			respond.Error(c, http.StatusInternalServerError, "internal_error", "unexpected error", nil)
		}()
		c.Next()
	}
}
