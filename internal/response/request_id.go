package response

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// ContextKeyRequestID is the Gin context key for the request ID.
const ContextKeyRequestID = "request_id"

// HeaderRequestID is the wire header carrying the request ID.
const HeaderRequestID = "X-Request-ID"

// RequestIDMiddleware tags every request with an ID and echoes it in the
// response header. A caller-supplied ID is honored only when it is a
// valid UUID; anything else is replaced so log correlation keys stay
// well-formed.
func RequestIDMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		reqID := c.GetHeader(HeaderRequestID)
		if _, err := uuid.Parse(reqID); err != nil {
			reqID = uuid.New().String()
		}
		c.Set(ContextKeyRequestID, reqID)
		c.Header(HeaderRequestID, reqID)
		c.Next()
	}
}
