// Package middleware contains shared Gin middleware used by the HTTP layer.
//
// This file enforces the request media type on body-carrying methods. A
// Content-Type outside the supported set short-circuits with the 415
// envelope, listing the media types the API accepts.
package middleware

import (
	"mime"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/supplyline/go-wms-backend/internal/apierror"
)

// supportedMediaTypes is the fixed set of body media types the API accepts.
var supportedMediaTypes = []string{"application/json"}

// RequireJSON returns a middleware that rejects POST/PUT/PATCH requests
// whose Content-Type is not an accepted media type. Requests without a body
// (GET, DELETE, empty POST) pass through untouched.
func RequireJSON() gin.HandlerFunc {
	accepted := make(map[string]struct{}, len(supportedMediaTypes))
	for _, mt := range supportedMediaTypes {
		accepted[mt] = struct{}{}
	}
	return func(c *gin.Context) {
		switch c.Request.Method {
		case http.MethodPost, http.MethodPut, http.MethodPatch:
		default:
			c.Next()
			return
		}
		if c.Request.ContentLength == 0 {
			c.Next()
			return
		}

		ct := c.ContentType()
		// Strip parameters such as "; charset=utf-8" before matching.
		if parsed, _, err := mime.ParseMediaType(c.GetHeader("Content-Type")); err == nil {
			ct = parsed
		}
		if _, ok := accepted[ct]; !ok {
			RenderFault(c, apierror.UnsupportedMediaType(ct, supportedMediaTypes))
			return
		}
		c.Next()
	}
}
