// Package handlers provides HTTP handler implementations for the public API.
//
// This file defines the response utilities shared by all endpoints. Error
// responses always travel through middleware.RenderFault so that every
// failure — regardless of where it was detected — is serialized as the one
// canonical envelope. Success responses are marshaled here so that a
// serialization failure can itself be reported through the envelope
// (UnwritableResponse → 500) instead of a truncated body.
//
// Example error response:
//
//	HTTP/1.1 404 Not Found
//	{
//	  "code": "404",
//	  "message": "Item not found",
//	  "properties": {
//	    "timestamp": "2026-08-31T12:00:00.000Z",
//	    "correlationId": null
//	  }
//	}
package handlers

import (
	"encoding/json"

	"github.com/gin-gonic/gin"

	"github.com/supplyline/go-wms-backend/internal/apierror"
	"github.com/supplyline/go-wms-backend/internal/http/middleware"
)

// ok marshals body and writes it with the given status. A marshal failure is
// rendered as the UnwritableResponse envelope rather than a broken body.
func ok(c *gin.Context, status int, body any) {
	data, err := json.Marshal(body)
	if err != nil {
		middleware.RenderFault(c, apierror.UnwritableResponse(err.Error()))
		return
	}
	c.Data(status, "application/json; charset=utf-8", data)
}
