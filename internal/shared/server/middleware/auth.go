package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"web3stack-api/internal/shared/server/respond"
)

const (
	userIDKey  = "userId"
	isGuestKey = "isGuest"

	guestHeader     = "X-Guest-Id"
	maxGuestIDBytes = 128
)

// Identity reads the guest header and stores the caller in context. It never
// rejects; routes that need a caller add RequireIdentity.
func Identity() gin.HandlerFunc {
	return func(c *gin.Context) {
		guestID := strings.TrimSpace(c.GetHeader(guestHeader))
		if guestID != "" && len(guestID) <= maxGuestIDBytes {
			c.Set(userIDKey, "guest:"+guestID)
			c.Set(isGuestKey, true)
		}
		c.Next()
	}
}

// RequireIdentity rejects requests that Identity could not attribute.
func RequireIdentity() gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}
		if UserIDFromContext(c) == "" {
			respond.Error(c, http.StatusUnauthorized, "unauthorized", "Missing identity", nil)
			return
		}
		c.Next()
	}
}

// UserIDFromContext fetches the user ID set by the Identity middleware.
func UserIDFromContext(c *gin.Context) string {
	if c == nil {
		return ""
	}
	val, _ := c.Get(userIDKey)
	if id, ok := val.(string); ok {
		return id
	}
	return ""
}
