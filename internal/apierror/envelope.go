// Package apierror – wire envelope construction.
//
// Envelope is the canonical JSON error body returned by every endpoint.
// Example:
//
//	HTTP/1.1 400 Bad Request
//	{
//	  "code": "400",
//	  "message": "Validation error",
//	  "properties": {
//	    "timestamp": "2026-08-31T12:00:00.000Z",
//	    "correlationId": "7f1c9e2a"
//	  },
//	  "details": [ { ...same shape, code "400"... } ]
//	}
//
// Conventions:
//   - code is the decimal string of the HTTP status, never a symbolic name.
//   - properties.correlationId echoes the caller-supplied Correlation-Id
//     header verbatim and is an explicit JSON null when the header was
//     absent; it is never replaced with a placeholder.
//   - details is omitted entirely when there are no sub-errors; it is never
//     serialized as an empty array.
package apierror

import (
	"strconv"
	"time"
)

// CorrelationHeader is the request header propagated into every envelope.
const CorrelationHeader = "Correlation-Id"

// timestampLayout renders UTC instants with millisecond precision and a
// literal trailing Z.
const timestampLayout = "2006-01-02T15:04:05.000Z"

// ---- TEST SEAM ----
// now is sampled once per Build call so tests can pin the clock.
var now = time.Now

// Properties carries the generic per-envelope metadata.
type Properties struct {
	Timestamp     string  `json:"timestamp"`
	CorrelationID *string `json:"correlationId"`
}

// Envelope is the wire-level error body. Nested detail entries share the
// same shape but are only ever transmitted under a parent envelope.
type Envelope struct {
	Code       string     `json:"code"`
	Message    string     `json:"message"`
	Properties Properties `json:"properties"`
	Details    []Envelope `json:"details,omitempty"`
}

// Build assembles an envelope from the classifier's output. It samples the
// wall clock on every call; results must not be memoized within a request.
func Build(message string, status int, correlationID *string, details []Envelope) Envelope {
	e := Envelope{
		Code:    strconv.Itoa(status),
		Message: message,
		Properties: Properties{
			Timestamp:     now().UTC().Format(timestampLayout),
			CorrelationID: correlationID,
		},
	}
	if len(details) > 0 {
		e.Details = details
	}
	return e
}
