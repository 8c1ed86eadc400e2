// Package services – domain-rule validation helpers.
//
// Services validate rule structs with go-playground/validator and convert
// failures into RuleViolationError so the HTTP layer can render one nested
// sub-error per violated rule.
package services

import (
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/supplyline/go-wms-backend/internal/apierror"
)

// checkRules validates v and converts any validator failure into a
// *RuleViolationError named after objectName. Non-validator failures
// (e.g. an invalid rule struct) are returned as-is.
func checkRules(validate *validator.Validate, objectName string, v any) error {
	err := validate.Struct(v)
	if err == nil {
		return nil
	}
	verrs, ok := err.(validator.ValidationErrors)
	if !ok {
		return err
	}

	violations := make([]apierror.FieldViolation, 0, len(verrs))
	parts := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		violations = append(violations, apierror.FieldViolation{
			Object:        objectName,
			Field:         fe.Field(),
			RejectedValue: rejectedValue(fe.Value()),
			Message:       ruleMessage(fe),
		})
		parts = append(parts, fmt.Sprintf("%s.%s: %s", objectName, fe.Field(), ruleMessage(fe)))
	}
	return &RuleViolationError{
		Aggregate:  strings.Join(parts, ", "),
		Violations: violations,
	}
}

// rejectedValue renders the offending value, or nil when it was absent so
// the envelope shows the literal "null".
func rejectedValue(v any) *string {
	if v == nil {
		return nil
	}
	s := fmt.Sprintf("%v", v)
	return &s
}

// ruleMessage maps a validator tag to the human-readable rule text used in
// sub-error messages.
func ruleMessage(fe validator.FieldError) string {
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
	case "lte":
		return "must be less than or equal to " + fe.Param()
	case "ne":
		return "must not equal " + fe.Param()
	default:
		return "failed rule '" + fe.Tag() + "'"
	}
}
