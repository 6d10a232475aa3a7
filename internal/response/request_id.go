package response

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// ContextKeyRequestID is the Gin context key under which the request ID is
// stored. buildMetadata reads it to stamp every response envelope.
const ContextKeyRequestID = "request_id"

// RequestIDMiddleware attaches a request ID to every request so responses and
// log lines can be correlated. An incoming X-Request-ID is honored, letting a
// caller thread its own ID through survey creation and the submissions that
// follow; otherwise a fresh UUID is generated. The ID is echoed back in the
// X-Request-ID response header and in the envelope metadata.
func RequestIDMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader("X-Request-ID")
		if id == "" {
			id = uuid.New().String()
		}

		c.Set(ContextKeyRequestID, id)
		c.Header("X-Request-ID", id)
		c.Next()
	}
}
