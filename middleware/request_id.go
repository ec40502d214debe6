package middleware

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const (
	// HeaderRequestID is the header carrying the per-request correlation ID.
	HeaderRequestID = "X-Request-ID"
	// ContextRequestIDKey stores the correlation ID inside Gin context.
	ContextRequestIDKey = "request_id"
)

// RequestID assigns a UUID to requests arriving without one and echoes it back
// so clients can correlate their logs with ours.
func RequestID() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		id := ctx.GetHeader(HeaderRequestID)
		if id == "" {
			id = uuid.NewString()
		}
		ctx.Set(ContextRequestIDKey, id)
		ctx.Writer.Header().Set(HeaderRequestID, id)
		ctx.Next()
	}
}
