package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"web3stack-api/internal/shared/server/respond"
)

const (
	corsAllowMethods  = "GET,POST,OPTIONS"
	corsAllowHeaders  = "Content-Type, " + guestHeader + ", " + requestIDHeader
	corsExposeHeaders = requestIDHeader + ", Retry-After"
)

// CORS answers cross-origin requests from the allow-list. A "*" entry allows
// any origin. Identity travels in a header rather than cookies, so
// credentials are never allowed. Preflights from other origins get 403.
func CORS(allowedOrigins []string) gin.HandlerFunc {
	origins := make(map[string]struct{})
	anyOrigin := false
	for _, o := range allowedOrigins {
		switch trimmed := strings.TrimRight(strings.TrimSpace(o), "/"); trimmed {
		case "":
		case "*":
			anyOrigin = true
		default:
			origins[trimmed] = struct{}{}
		}
	}
	allowed := func(origin string) bool {
		if anyOrigin {
			return true
		}
		_, ok := origins[origin]
		return ok
	}

	return func(c *gin.Context) {
		origin := c.GetHeader("Origin")
		ok := origin != "" && allowed(origin)
		if ok {
			h := c.Writer.Header()
			if anyOrigin {
				h.Set("Access-Control-Allow-Origin", "*")
			} else {
				h.Set("Access-Control-Allow-Origin", origin)
				h.Add("Vary", "Origin")
			}
			h.Set("Access-Control-Allow-Methods", corsAllowMethods)
			h.Set("Access-Control-Allow-Headers", corsAllowHeaders)
			h.Set("Access-Control-Expose-Headers", corsExposeHeaders)
			h.Set("Access-Control-Max-Age", "600")
		}

		if c.Request.Method == http.MethodOptions {
			if origin != "" && !ok {
				respond.Error(c, http.StatusForbidden, "cors_forbidden", "Origin not allowed", nil)
				return
			}
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	}
}
