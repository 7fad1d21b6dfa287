package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/scoutalina/scout-backend-go/internal/apperr"
	"github.com/scoutalina/scout-backend-go/pkg/response"
)

// respondError maps the service error taxonomy onto HTTP statuses:
// validation 400, unknown identifier 404, index not built 503, anything
// else 500.
func respondError(c *gin.Context, err error) {
	switch {
	case apperr.IsValidation(err):
		response.BadRequest(c, err.Error())
	case apperr.IsNotFound(err):
		response.NotFound(c, err.Error())
	case apperr.IsIndexUnavailable(err):
		response.ServiceUnavailable(c, "Spatial index is still building, retry shortly")
	default:
		response.InternalError(c, err.Error())
	}
}
