// Package httperr translates tagged pipeline errors to HTTP responses. It is
// the only place transport status codes attach to service error kinds.
package httperr

import (
	"net/http"

	"github.com/aurelia-jewels/jewelry-api/services"
	"github.com/gin-gonic/gin"
)

func status(err error) int {
	switch {
	case services.IsKind(err, services.KindNotFound):
		return http.StatusNotFound
	case services.IsKind(err, services.KindInvalid):
		return http.StatusBadRequest
	case services.IsKind(err, services.KindPriceMismatch),
		services.IsKind(err, services.KindInsufficientStock):
		return http.StatusConflict
	case services.IsKind(err, services.KindProvider):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

// Respond writes the error as a structured JSON body with the matching status.
func Respond(c *gin.Context, err error) {
	if e := services.AsError(err); e != nil {
		c.JSON(status(err), gin.H{"error": e})
		return
	}
	c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
}
