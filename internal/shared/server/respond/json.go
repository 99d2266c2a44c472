package respond

import (
	"github.com/gin-gonic/gin"
)

// JSON writes a JSON response with the given status.
func JSON(c *gin.Context, status int, payload any) {
	c.JSON(status, payload)
}

// Private writes a JSON response that shared caches must not store. Used for
// anything derived from the caller's identity or entitlement.
func Private(c *gin.Context, status int, payload any) {
	c.Header("Cache-Control", "no-store")
	c.Header("Vary", "X-Guest-Id")
	c.JSON(status, payload)
}
