// Package middleware contains shared Gin middleware used by the HTTP layer.
//
// This file handles the two request identifiers the service works with:
//
//   - X-Request-ID: a server-side id, generated when absent, used to tie
//     access logs to responses.
//   - Correlation-Id: a caller-supplied opaque id propagated verbatim into
//     every error envelope. It is NEVER generated server-side: when the
//     header is absent the envelope carries an explicit null, so clients
//     can tell "I did not send one" apart from a placeholder.
package middleware

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/supplyline/go-wms-backend/internal/apierror"
)

const (
	// requestIDKey is the Gin context key under which the request ID is stored.
	requestIDKey = "requestID"
	// requestIDHeader is the HTTP header used to propagate the server-side id.
	requestIDHeader = "X-Request-ID"
	// correlationIDKey is the Gin context key holding the caller's correlation id.
	correlationIDKey = "correlationID"
)

// RequestID attaches (or propagates) a server-side identifier per request.
//
// If the incoming request has X-Request-ID, that value is reused; otherwise
// a new UUIDv4 is generated. The ID is written back to the response header
// and stored in the Gin context. Place this early in the chain.
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		rid := c.GetHeader(requestIDHeader)
		if rid == "" {
			rid = uuid.NewString()
		}
		c.Set(requestIDKey, rid)
		c.Writer.Header().Set(requestIDHeader, rid)
		c.Next()
	}
}

// Correlation captures the caller-supplied correlation header (headerName;
// pass "" for the default Correlation-Id) into the Gin context and echoes it
// on the response. Absence is preserved as nil.
func Correlation(headerName string) gin.HandlerFunc {
	if headerName == "" {
		headerName = apierror.CorrelationHeader
	}
	return func(c *gin.Context) {
		if v := c.GetHeader(headerName); v != "" {
			c.Set(correlationIDKey, v)
			c.Writer.Header().Set(headerName, v)
		}
		c.Next()
	}
}

// CorrelationID returns the caller's correlation id, or nil when the request
// carried none. The pointer is what envelope construction expects.
func CorrelationID(c *gin.Context) *string {
	if v, ok := c.Get(correlationIDKey); ok {
		if s, ok := v.(string); ok && s != "" {
			return &s
		}
	}
	return nil
}
