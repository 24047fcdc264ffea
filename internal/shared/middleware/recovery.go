package middleware

import (
	"net/http"
	"runtime/debug"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"library-catalog/internal/shared/response"
)

// Recovery turns a handler panic into a 500 envelope and counts it under
// http_panics_total{service}. The stack goes to the log only.
func Recovery(service string) gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			rec := recover()
			if rec == nil {
				return
			}
			httpPanicsTotal.WithLabelValues(service).Inc()

			log.Error().
				Str("request_id", c.GetString(RequestIDKey)).
				Str("method", c.Request.Method).
				Str("route", c.FullPath()).
				Interface("panic", rec).
				Str("stack", string(debug.Stack())).
				Msg("handler panicked")

			c.Abort()
			response.ErrorResponse(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Internal server error")
		}()

		c.Next()
	}
}
