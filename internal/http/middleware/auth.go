// Package middleware contains shared Gin middleware used by the HTTP layer.
//
// This file implements API-key authentication and role-based authorization.
// Both failure modes are reported through the canonical envelope: a missing
// or unknown key classifies as 401, a valid key lacking the required role
// as 403. The messages handed to the classifier pass through the same
// redaction rules as every other envelope message.
package middleware

import (
	"github.com/gin-gonic/gin"

	"github.com/supplyline/go-wms-backend/internal/apierror"
)

const (
	// apiKeyHeader carries the caller's credential.
	apiKeyHeader = "X-API-Key"
	// roleKey is the Gin context key holding the authenticated role.
	roleKey = "role"
)

// RoleWriter and RoleReader are the two roles the API distinguishes.
// Writers may mutate resources; readers may only fetch them.
const (
	RoleWriter = "writer"
	RoleReader = "reader"
)

// APIKeyAuth returns a middleware that authenticates requests by API key.
//
// keys maps a key value to the role it grants. An empty map disables
// authentication entirely (local development); otherwise a missing or
// unknown key aborts with the 401 envelope.
func APIKeyAuth(keys map[string]string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if len(keys) == 0 {
			c.Next()
			return
		}
		key := c.GetHeader(apiKeyHeader)
		if key == "" {
			RenderFault(c, apierror.AuthenticationFailed("Missing API key"))
			return
		}
		role, ok := keys[key]
		if !ok {
			RenderFault(c, apierror.AuthenticationFailed("Invalid API key"))
			return
		}
		c.Set(roleKey, role)
		c.Next()
	}
}

// RequireRole returns a middleware that aborts with the 403 envelope unless
// the authenticated role matches. When authentication is disabled (no role
// in context), the check is skipped.
func RequireRole(role string) gin.HandlerFunc {
	return func(c *gin.Context) {
		v, ok := c.Get(roleKey)
		if !ok {
			c.Next()
			return
		}
		if s, _ := v.(string); s != role {
			RenderFault(c, apierror.AuthorizationDenied("Access is denied"))
			return
		}
		c.Next()
	}
}
