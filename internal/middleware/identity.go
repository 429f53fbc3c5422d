package middleware

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/lendhub/service-rental/internal/response"
)

// userIDHeader carries the caller's identity. Requests arrive through an
// edge gateway that has already authenticated them; this service only needs
// to know who the caller is.
const userIDHeader = "X-User-ID"

const userIDKey = "userID"

// Identity extracts the caller's user id from the identity header and aborts
// with 401 when it is missing or malformed.
func Identity() gin.HandlerFunc {
	return func(c *gin.Context) {
		raw := c.GetHeader(userIDHeader)
		if raw == "" {
			response.Unauthorized(c, "missing "+userIDHeader+" header")
			c.Abort()
			return
		}
		userID, err := uuid.Parse(raw)
		if err != nil {
			response.Unauthorized(c, "invalid "+userIDHeader+" header")
			c.Abort()
			return
		}
		c.Set(userIDKey, userID)
		c.Next()
	}
}

// GetUserID returns the caller's user id set by Identity.
func GetUserID(c *gin.Context) (uuid.UUID, bool) {
	v, exists := c.Get(userIDKey)
	if !exists {
		return uuid.Nil, false
	}
	userID, ok := v.(uuid.UUID)
	return userID, ok
}
