// Package apierror implements the centralized error-normalization core for
// the HTTP API: every failure captured while serving a request is expressed
// as a Fault, classified to a canonical HTTP status, and rendered as one
// client-safe JSON envelope with a stable schema.
//
// Design goals:
//   - One wire contract for every failure origin (binding, validation,
//     persistence, routing, access control, panics)
//   - No internal error text, stack trace, or framework message reaches a
//     client unredacted
//   - Pure, total classification: every Fault yields exactly one
//     (status, Envelope) pair, with the uncategorized/500 path as the
//     mandatory fallback
//
// Conventions:
//   - Faults are immutable values created at the dispatch boundary (handlers
//     and middleware) and discarded once the response is written.
//   - The transport layer maps concrete library errors (gin binding errors,
//     validator.ValidationErrors, gorm errors) to Fault variants; this
//     package never imports transport or persistence types.
package apierror

// Kind discriminates the closed set of failure categories the classifier
// knows how to render. The zero value is KindUncategorized so that a
// malformed or forgotten Fault still takes the fail-safe 500 path.
type Kind int

const (
	// KindUncategorized is the catch-all for faults with no dedicated
	// mapping (including recovered panics).
	KindUncategorized Kind = iota
	// KindMissingParameter reports a required request parameter that was
	// not supplied.
	KindMissingParameter
	// KindUnsupportedMediaType reports a request Content-Type the API does
	// not accept.
	KindUnsupportedMediaType
	// KindValidationFailed reports one or more field-level validation
	// violations on a bound request body.
	KindValidationFailed
	// KindConstraintViolated reports violations raised by domain-rule
	// validation outside body binding.
	KindConstraintViolated
	// KindEntityNotFound reports a missing domain entity.
	KindEntityNotFound
	// KindMalformedBody reports an unreadable or syntactically invalid
	// request body.
	KindMalformedBody
	// KindUnwritableResponse reports a failure to serialize the response
	// body.
	KindUnwritableResponse
	// KindNoRouteFound reports a request that matched no registered route.
	KindNoRouteFound
	// KindDataIntegrityViolated reports a persistence-layer integrity
	// failure (duplicate key, check constraint, ...).
	KindDataIntegrityViolated
	// KindTypeMismatch reports a parameter value that could not be
	// converted to its target type.
	KindTypeMismatch
	// KindAuthenticationFailed reports a missing or invalid credential.
	KindAuthenticationFailed
	// KindAuthorizationDenied reports a valid credential lacking the
	// required permission.
	KindAuthorizationDenied
)

// FieldViolation describes one invalid field on a bound or validated value.
// RejectedValue is nil when the offending value was absent; rendering then
// uses the literal word "null" so the sub-error message never drops a slot.
type FieldViolation struct {
	Object        string
	Field         string
	RejectedValue *string
	Message       string
}

// Fault is a tagged value representing one detected failure. Construct it
// with the variant constructors below; the zero Fault classifies as an
// uncategorized 500.
type Fault struct {
	kind    Kind
	message string

	// Variant payloads. Only the fields relevant to kind are set.
	param           string
	value           string
	targetType      string
	method          string
	url             string
	contentType     string
	supported       []string
	violations      []FieldViolation
	constraintCause bool
}

// Kind returns the fault's category.
func (f Fault) Kind() Kind { return f.kind }

// Message returns the fault's raw (pre-redaction) free-text content.
func (f Fault) Message() string { return f.message }

// Violations returns the field violations carried by validation-type faults.
func (f Fault) Violations() []FieldViolation { return f.violations }

// MissingParameter reports a required request parameter that was absent.
func MissingParameter(name string) Fault {
	return Fault{kind: KindMissingParameter, param: name}
}

// UnsupportedMediaType reports a rejected request Content-Type along with the
// media types the endpoint accepts.
func UnsupportedMediaType(contentType string, supported []string) Fault {
	return Fault{kind: KindUnsupportedMediaType, contentType: contentType, supported: supported}
}

// ValidationFailed reports body-binding validation violations. Order of the
// slice is preserved into the envelope's details.
func ValidationFailed(violations []FieldViolation) Fault {
	return Fault{kind: KindValidationFailed, violations: violations}
}

// ConstraintViolated reports domain-rule violations together with the
// validation engine's aggregate message.
func ConstraintViolated(message string, violations []FieldViolation) Fault {
	return Fault{kind: KindConstraintViolated, message: message, violations: violations}
}

// EntityNotFound reports a missing domain entity.
func EntityNotFound(message string) Fault {
	return Fault{kind: KindEntityNotFound, message: message}
}

// MalformedBody reports an unreadable request body.
func MalformedBody(message string) Fault {
	return Fault{kind: KindMalformedBody, message: message}
}

// UnwritableResponse reports a response serialization failure.
func UnwritableResponse(message string) Fault {
	return Fault{kind: KindUnwritableResponse, message: message}
}

// NoRouteFound reports a request that matched no route.
func NoRouteFound(method, url, message string) Fault {
	return Fault{kind: KindNoRouteFound, method: method, url: url, message: message}
}

// DataIntegrityViolated reports a persistence integrity failure.
// causeIsConstraint selects the 409 (constraint) versus 500 (generic) path.
func DataIntegrityViolated(causeIsConstraint bool, message string) Fault {
	return Fault{kind: KindDataIntegrityViolated, constraintCause: causeIsConstraint, message: message}
}

// TypeMismatch reports a parameter whose value could not be converted to the
// named target type.
func TypeMismatch(name, value, targetType, message string) Fault {
	return Fault{kind: KindTypeMismatch, param: name, value: value, targetType: targetType, message: message}
}

// AuthenticationFailed reports a missing or rejected credential.
func AuthenticationFailed(message string) Fault {
	return Fault{kind: KindAuthenticationFailed, message: message}
}

// AuthorizationDenied reports an authenticated caller lacking permission.
func AuthorizationDenied(message string) Fault {
	return Fault{kind: KindAuthorizationDenied, message: message}
}

// Uncategorized wraps any failure with no dedicated mapping.
func Uncategorized(message string) Fault {
	return Fault{kind: KindUncategorized, message: message}
}
