// Package apierror – fault classification.
//
// Classify is the single dispatch point from a captured Fault to the
// (status, Envelope) pair written to the wire. The mapping is a fixed table:
//
//	MissingParameter       400  "<name> parameter is missing"
//	UnsupportedMediaType   415  "<ct> media type is not supported. Supported media types are <s1>, <s2>"
//	ValidationFailed       400  "Validation error" + one detail per violation
//	ConstraintViolated     400  redacted aggregate message + one detail per violation
//	EntityNotFound         404  redacted message
//	MalformedBody          400  "Malformed JSON request: <redacted>"
//	UnwritableResponse     500  "Error writing JSON output: <redacted>"
//	NoRouteFound           400  "Could not find the <method> method for URL <url>: <redacted>"
//	DataIntegrityViolated  409  "Database error: <redacted>"   (constraint cause)
//	                       500  "Server error: <redacted>"     (otherwise)
//	TypeMismatch           400  "The parameter '<n>' of value '<v>' could not be converted to type '<t>': <redacted>"
//	AuthenticationFailed   401  redacted message
//	AuthorizationDenied    403  redacted message
//	Uncategorized          500  redacted message
//
// NoRouteFound is surfaced as 400 rather than 404. That mirrors the observed
// behavior of the service this contract was lifted from; clients depend on
// it, so it is kept until the contract itself is versioned.
package apierror

import (
	"fmt"
	"net/http"
	"strings"
)

// Classify maps a fault and the request's correlation id to the canonical
// HTTP status and wire envelope. It is pure apart from sampling the clock
// while building envelopes: no fault is retried, and no classification can
// itself fail — unknown kinds take the uncategorized 500 path.
func Classify(f Fault, correlationID *string) (int, Envelope) {
	switch f.kind {
	case KindMissingParameter:
		msg := f.param + " parameter is missing"
		return http.StatusBadRequest, Build(msg, http.StatusBadRequest, correlationID, nil)

	case KindUnsupportedMediaType:
		msg := f.contentType + " media type is not supported. Supported media types are " +
			strings.Join(f.supported, ", ")
		return http.StatusUnsupportedMediaType, Build(msg, http.StatusUnsupportedMediaType, correlationID, nil)

	case KindValidationFailed:
		details := violationDetails(f.violations, correlationID)
		return http.StatusBadRequest, Build("Validation error", http.StatusBadRequest, correlationID, details)

	case KindConstraintViolated:
		details := violationDetails(f.violations, correlationID)
		return http.StatusBadRequest, Build(Redact(f.message), http.StatusBadRequest, correlationID, details)

	case KindEntityNotFound:
		return http.StatusNotFound, Build(Redact(f.message), http.StatusNotFound, correlationID, nil)

	case KindMalformedBody:
		msg := "Malformed JSON request: " + Redact(f.message)
		return http.StatusBadRequest, Build(msg, http.StatusBadRequest, correlationID, nil)

	case KindUnwritableResponse:
		msg := "Error writing JSON output: " + Redact(f.message)
		return http.StatusInternalServerError, Build(msg, http.StatusInternalServerError, correlationID, nil)

	case KindNoRouteFound:
		msg := fmt.Sprintf("Could not find the %s method for URL %s: %s",
			f.method, f.url, Redact(f.message))
		return http.StatusBadRequest, Build(msg, http.StatusBadRequest, correlationID, nil)

	case KindDataIntegrityViolated:
		if f.constraintCause {
			msg := "Database error: " + Redact(f.message)
			return http.StatusConflict, Build(msg, http.StatusConflict, correlationID, nil)
		}
		msg := "Server error: " + Redact(f.message)
		return http.StatusInternalServerError, Build(msg, http.StatusInternalServerError, correlationID, nil)

	case KindTypeMismatch:
		msg := fmt.Sprintf("The parameter '%s' of value '%s' could not be converted to type '%s': %s",
			f.param, f.value, f.targetType, Redact(f.message))
		return http.StatusBadRequest, Build(msg, http.StatusBadRequest, correlationID, nil)

	case KindAuthenticationFailed:
		return http.StatusUnauthorized, Build(Redact(f.message), http.StatusUnauthorized, correlationID, nil)

	case KindAuthorizationDenied:
		return http.StatusForbidden, Build(Redact(f.message), http.StatusForbidden, correlationID, nil)

	default:
		// KindUncategorized and anything unrecognized: fail-safe 500.
		return http.StatusInternalServerError, Build(Redact(f.message), http.StatusInternalServerError, correlationID, nil)
	}
}

// violationDetails renders one nested envelope per field violation, in input
// order, each with status 400 and the parent's correlation id. A nil or
// empty input yields nil so the parent omits the details key entirely.
func violationDetails(violations []FieldViolation, correlationID *string) []Envelope {
	if len(violations) == 0 {
		return nil
	}
	details := make([]Envelope, 0, len(violations))
	for _, v := range violations {
		rejected := "null"
		if v.RejectedValue != nil {
			rejected = *v.RejectedValue
		}
		msg := fmt.Sprintf("Invalid value %s on field %s for object %s: %s.",
			rejected, v.Field, v.Object, v.Message)
		details = append(details, Build(msg, http.StatusBadRequest, correlationID, nil))
	}
	return details
}
