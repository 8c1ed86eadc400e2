// Package handlers provides HTTP handler implementations for the public API.
//
// This file maps concrete Go errors — binding failures, validator results,
// service sentinels, persistence errors — onto apierror.Fault variants. It
// is the only place that knows which library produced a failure; the
// classifier downstream only sees the closed Fault set.
//
// Conventions:
//   - Body-binding failures become ValidationFailed (validator errors, one
//     sub-error per field) or MalformedBody (syntax, type, EOF).
//   - Service sentinels map 1:1 (not-found → EntityNotFound, rule
//     violations → ConstraintViolated).
//   - Persistence failures become DataIntegrityViolated; the constraint
//     cause selects 409 versus 500.
//   - Anything unrecognized falls back to Uncategorized so the response is
//     always a well-formed envelope.
package handlers

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"gorm.io/gorm"

	"github.com/supplyline/go-wms-backend/internal/apierror"
	"github.com/supplyline/go-wms-backend/internal/services"
)

// bindFault converts a ShouldBindJSON failure on objectName into a Fault.
func bindFault(objectName string, err error) apierror.Fault {
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		violations := make([]apierror.FieldViolation, 0, len(verrs))
		for _, fe := range verrs {
			violations = append(violations, apierror.FieldViolation{
				Object:        objectName,
				Field:         fe.Field(),
				RejectedValue: bindRejectedValue(fe.Value()),
				Message:       bindMessage(fe),
			})
		}
		return apierror.ValidationFailed(violations)
	}
	// Syntax errors, wrong JSON types, truncated bodies, etc.
	return apierror.MalformedBody(err.Error())
}

// bindRejectedValue renders the offending bound value; absent values (nil
// or the string zero value) surface as the literal "null" in sub-errors.
func bindRejectedValue(v any) *string {
	if v == nil {
		return nil
	}
	if s, ok := v.(string); ok && s == "" {
		return nil
	}
	s := fmt.Sprintf("%v", v)
	return &s
}

// bindMessage maps a binding validator tag to the rule text used in
// sub-error messages.
func bindMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "must not be blank"
	case "min":
		return "length must be at least " + fe.Param()
	case "max":
		return "length must be at most " + fe.Param()
	case "gte":
		return "must be greater than or equal to " + fe.Param()
	case "gt":
		return "must be greater than " + fe.Param()
	default:
		return "failed rule '" + fe.Tag() + "'"
	}
}

// serviceFault converts a service-layer error into a Fault.
func serviceFault(err error) apierror.Fault {
	var rv *services.RuleViolationError
	if errors.As(err, &rv) {
		return apierror.ConstraintViolated(rv.Aggregate, rv.Violations)
	}

	switch {
	case errors.Is(err, services.ErrItemNotFound),
		errors.Is(err, services.ErrWarehouseNotFound),
		errors.Is(err, services.ErrStockNotFound):
		return apierror.EntityNotFound(err.Error())
	}

	var se *services.StorageError
	if errors.As(err, &se) {
		return apierror.DataIntegrityViolated(isConstraintViolation(se.Err), se.Err.Error())
	}

	return apierror.Uncategorized(err.Error())
}

// isConstraintViolation reports whether a persistence error is a constraint
// failure (duplicate key, FK, check) rather than a generic database fault.
func isConstraintViolation(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) ||
		errors.Is(err, gorm.ErrForeignKeyViolated) ||
		errors.Is(err, gorm.ErrCheckConstraintViolated) {
		return true
	}
	// The pure-Go sqlite driver reports some constraint failures only in
	// the error text.
	return strings.Contains(err.Error(), "constraint")
}
