// Package middleware contains shared Gin middleware used by the HTTP layer.
//
// This file defines RenderFault, the single exit point through which every
// failure becomes an HTTP response. Middleware and handlers construct an
// apierror.Fault and hand it here; classification, correlation propagation,
// and envelope construction all happen in internal/apierror.
package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/supplyline/go-wms-backend/internal/apierror"
)

// RenderFault classifies f, writes the canonical error envelope with the
// resulting status, and aborts the request. Server-side statuses (>= 500)
// are logged with the request-scoped logger; 4xx envelopes are left to the
// access log.
func RenderFault(c *gin.Context, f apierror.Fault) {
	status, env := apierror.Classify(f, CorrelationID(c))

	if status >= http.StatusInternalServerError {
		lg := LoggerFrom(c)
		lg.Error().
			Int("status", status).
			Int("fault_kind", int(f.Kind())).
			Str("message", env.Message).
			Msg("api error")
	}

	c.AbortWithStatusJSON(status, env)
}
