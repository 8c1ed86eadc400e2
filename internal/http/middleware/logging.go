// Package middleware contains shared Gin middleware used by the HTTP layer.
//
// This file provides structured request logging with sensitive-value
// scrubbing, and a panic-safe recovery handler that funnels panics through
// the canonical error envelope.
//
//   - Logger() emits structured access logs (latency, status, sizes) with
//     query strings and header values scrubbed, attaches a request-scoped
//     zerolog.Logger, and selects log level by outcome (info/warn/error).
//   - Recovery() converts panics into the uncategorized 500 envelope while
//     preserving the correlation id and emitting a stack trace to logs.
//   - LoggerFrom() retrieves the request-scoped logger for handlers and
//     services.
//
// Design notes:
//   - Compose as RequestID() → Correlation() → Logger() → Recovery() so
//     panics and errors are logged with both identifiers.
//   - Header scrubbing fully masks credential headers (Authorization,
//     Cookie, Set-Cookie, X-API-Key) and applies the envelope redaction
//     rules plus an id/email scrub to everything else, so log output obeys
//     the same no-sensitive-text guarantee as error responses.
//   - Query strings are truncated to a capped length to avoid log bloat.
package middleware

import (
	"regexp"
	"runtime/debug"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/supplyline/go-wms-backend/internal/apierror"
)

// maxQueryLogLength caps the number of bytes of the raw query string logged.
const maxQueryLogLength = 2048

// maskedHeaders are fully replaced with "[MASKED]" in access logs.
var maskedHeaders = map[string]struct{}{
	"authorization": {},
	"cookie":        {},
	"set-cookie":    {},
	"x-api-key":     {},
}

// Compiled once; uuidRE before emailRE so id segments are not half-eaten.
var (
	uuidRE  = regexp.MustCompile(`(?i)\b[0-9a-f]{8}\-[0-9a-f]{4}\-[1-5][0-9a-f]{3}\-[89ab][0-9a-f]{3}\-[0-9a-f]{12}\b`)
	emailRE = regexp.MustCompile(`(?i)\b[a-z0-9._%+\-]+@[a-z0-9.\-]+\.[a-z]{2,}\b`)
)

// scrub applies the envelope redaction rules and the id/email scrub to a
// logged value. A value tripping the envelope rules is masked whole, same
// as it would be on the wire.
func scrub(s string) string {
	if s == "" {
		return s
	}
	if out := apierror.Redact(s); out != s {
		return out
	}
	out := uuidRE.ReplaceAllString(s, "[MASKED:id]")
	out = emailRE.ReplaceAllString(out, "[MASKED:email]")
	return out
}

// Logger writes a structured access log for each request and response.
//
// Records method, route path, remote IP, correlation id, scrubbed query and
// headers, request size, response status, latency, and bytes written. A
// request-scoped zerolog.Logger is stored in the Gin context (key "logger")
// so downstream code can emit enriched logs tied to the request.
func Logger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		rid, _ := c.Get(requestIDKey)
		path := c.FullPath()
		if path == "" {
			// Fallback when route not matched / 404.
			path = c.Request.URL.Path
		}

		cid := ""
		if p := CorrelationID(c); p != nil {
			cid = *p
		}

		safeHeaders := make(map[string]string, len(c.Request.Header))
		for k, vv := range c.Request.Header {
			if _, ok := maskedHeaders[strings.ToLower(k)]; ok {
				safeHeaders[k] = "[MASKED]"
				continue
			}
			safeHeaders[k] = scrub(strings.Join(vv, ", "))
		}

		l := log.With().
			Str("request_id", asString(rid)).
			Str("correlation_id", cid).
			Str("method", c.Request.Method).
			Str("path", path).
			Str("remote_ip", c.ClientIP()).
			Str("query", truncate(scrub(c.Request.URL.RawQuery), maxQueryLogLength)).
			Int64("bytes_in", c.Request.ContentLength).
			Logger()

		// Make it available to handlers/services.
		c.Set("logger", &l)

		c.Next()

		latency := time.Since(start)
		status := c.Writer.Status()
		bytesOut := c.Writer.Size()

		ev := l.With().
			Int("status", status).
			Dur("latency", latency).
			Int("bytes_out", bytesOut).
			Interface("headers", safeHeaders).
			Logger()

		switch {
		case len(c.Errors) > 0:
			ev.Error().Str("errors", c.Errors.String()).Msg("request")
		case status >= 500:
			ev.Error().Msg("request")
		case status >= 400:
			ev.Warn().Msg("request")
		default:
			ev.Info().Msg("request")
		}
	}
}

// Recovery intercepts panics, logs a stack trace, and responds with the
// uncategorized 500 envelope. The panic value itself never reaches the
// client; the envelope carries a generic message.
func Recovery() gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if rec := recover(); rec != nil {
				rid, _ := c.Get(requestIDKey)
				log.Error().
					Interface("panic", rec).
					Bytes("stack", debug.Stack()).
					Str("request_id", asString(rid)).
					Msg("panic recovered")

				if !c.Writer.Written() {
					RenderFault(c, apierror.Uncategorized("Unexpected internal error"))
					return
				}
				c.Abort()
			}
		}()
		c.Next()
	}
}

// LoggerFrom returns the request-scoped zerolog.Logger.
//
// If a logger was not previously attached by Logger(), a fallback logger is
// returned so callers never need nil checks.
func LoggerFrom(c *gin.Context) *zerolog.Logger {
	if v, ok := c.Get("logger"); ok {
		if lg, ok := v.(*zerolog.Logger); ok {
			return lg
		}
	}
	l := log.With().Logger()
	return &l
}

// asString converts a context value to a string, returning "" for non-strings.
func asString(v interface{}) string {
	if s, ok := v.(string); ok {
		return s
	}
	return ""
}

// truncate caps s at max bytes, appending an ellipsis when cut. A max <= 0
// disables truncation. Byte-level is acceptable for logging.
func truncate(s string, max int) string {
	if max <= 0 || len(s) <= max {
		return s
	}
	return s[:max] + "…"
}
