package middleware

import (
	"github.com/gin-gonic/gin"

	"github.com/luminapower/propdeck/internal/types"
)

// RequestIDMiddleware attaches a request ID to the request context, reusing
// the caller-provided X-Request-ID header when present
func RequestIDMiddleware(c *gin.Context) {
	requestID := c.GetHeader(types.HeaderRequestID)
	if requestID == "" {
		requestID = types.GenerateUUIDWithPrefix(types.UUID_PREFIX_REQUEST)
	}

	ctx := types.SetRequestID(c.Request.Context(), requestID)
	c.Request = c.Request.WithContext(ctx)
	c.Writer.Header().Set(types.HeaderRequestID, requestID)

	c.Next()
}
