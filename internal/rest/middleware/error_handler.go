package middleware

import (
	"github.com/gin-gonic/gin"

	ierr "github.com/luminapower/propdeck/internal/errors"
)

// ErrorHandlerMiddleware converts errors recorded on the gin context into the
// standard error response body. Handlers call c.Error(err) and return; the
// sentinel mark on the error drives the HTTP status.
func ErrorHandlerMiddleware(c *gin.Context) {
	c.Next()

	if len(c.Errors) == 0 {
		return
	}

	err := c.Errors.Last().Err
	c.JSON(ierr.HTTPStatusFromErr(err), ierr.NewErrorResponse(err))
}
