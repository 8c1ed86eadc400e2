// Package handlers – query parameter helpers.
//
// Parameter extraction is strict: a required parameter that is absent
// renders the MissingParameter envelope, and a value that cannot be
// converted to its target type renders the TypeMismatch envelope carrying
// the parameter name, the rejected value, and the target type name. There
// are no silent defaults for required parameters.
package handlers

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/supplyline/go-wms-backend/internal/apierror"
	"github.com/supplyline/go-wms-backend/internal/http/middleware"
)

// requireQuery returns the named query parameter, rendering the
// MissingParameter envelope and returning ok=false when it is absent.
func requireQuery(c *gin.Context, name string) (string, bool) {
	v, exists := c.GetQuery(name)
	if !exists || v == "" {
		middleware.RenderFault(c, apierror.MissingParameter(name))
		return "", false
	}
	return v, true
}

// requireQueryInt returns the named query parameter converted to int,
// rendering MissingParameter or TypeMismatch as appropriate.
func requireQueryInt(c *gin.Context, name string) (int, bool) {
	raw, ok := requireQuery(c, name)
	if !ok {
		return 0, false
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		middleware.RenderFault(c, apierror.TypeMismatch(name, raw, "int", err.Error()))
		return 0, false
	}
	return n, true
}

// optionalQueryInt returns the named query parameter converted to int, or
// def when absent. A present but unconvertible value still renders the
// TypeMismatch envelope: optional means omittable, not malformed.
func optionalQueryInt(c *gin.Context, name string, def int) (int, bool) {
	raw, exists := c.GetQuery(name)
	if !exists || raw == "" {
		return def, true
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		middleware.RenderFault(c, apierror.TypeMismatch(name, raw, "int", err.Error()))
		return 0, false
	}
	return n, true
}
