package middleware

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"web3stack-api/internal/shared/telemetry"
)

// BundleIDKey is set by handlers that produced a recommendation bundle.
const BundleIDKey = "bundleId"

// Logging emits one request.complete entry per request. Preflights and the
// given probe paths (health, metrics) are not logged. Server errors log at
// error level, client errors at warn.
func Logging(skipPaths ...string) gin.HandlerFunc {
	skip := make(map[string]bool, len(skipPaths))
	for _, p := range skipPaths {
		skip[p] = true
	}
	return func(c *gin.Context) {
		if c.Request.Method == http.MethodOptions || skip[c.Request.URL.Path] {
			c.Next()
			return
		}

		start := time.Now()
		c.Next()

		status := c.Writer.Status()
		fields := map[string]any{
			"request_id":  RequestIDFromContext(c),
			"method":      c.Request.Method,
			"route":       c.FullPath(),
			"status":      status,
			"duration_ms": float64(time.Since(start).Microseconds()) / 1000.0,
			"user_id":     UserIDFromContext(c),
			"client_ip":   c.ClientIP(),
		}
		if isGuest, ok := c.Get(isGuestKey); ok {
			fields["is_guest"] = isGuest
		}
		if bundleID := c.GetString(BundleIDKey); bundleID != "" {
			fields["bundle_id"] = bundleID
		}
		if len(c.Errors) > 0 {
			fields["errors"] = c.Errors.String()
		}

		switch {
		case status >= http.StatusInternalServerError:
			telemetry.Error("request.complete", fields)
		case status >= http.StatusBadRequest:
			telemetry.Warn("request.complete", fields)
		default:
			telemetry.Info("request.complete", fields)
		}
	}
}
