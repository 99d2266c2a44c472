package server

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"web3stack-api/internal/entitlements"
	"web3stack-api/internal/questionnaire"
	"web3stack-api/internal/recommendations"
	"web3stack-api/internal/shared/config"
	"web3stack-api/internal/shared/metrics"
	"web3stack-api/internal/shared/server/middleware"
	"web3stack-api/internal/shared/server/respond"
)

// Rate limit groups.
const (
	GroupDefault   = "DEFAULT"
	GroupRecommend = "RECOMMEND"
	GroupUnlock    = "UNLOCK"
)

// RouterDeps carries the handlers the router mounts.
type RouterDeps struct {
	Config                 config.Config
	QuestionnaireHandler   *questionnaire.Handler
	RecommendationsHandler *recommendations.Handler
	EntitlementsHandler    *entitlements.Handler
	RateLimits             map[string]middleware.RateLimitRule
	Limiter                *middleware.RateLimiter
}

// DefaultRateLimits returns per-principal token buckets for each group.
func DefaultRateLimits() map[string]middleware.RateLimitRule {
	return map[string]middleware.RateLimitRule{
		GroupDefault:   {Rate: 5, Burst: 20},
		GroupRecommend: {Rate: 2, Burst: 10},
		GroupUnlock:    {Rate: 0.2, Burst: 3},
	}
}

// NewRouter constructs the Gin engine with middleware and routes registered.
func NewRouter(deps RouterDeps) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	r := gin.New()

	rules := deps.RateLimits
	if rules == nil {
		rules = DefaultRateLimits()
	}

	r.Use(
		middleware.RequestID(),
		middleware.Logging("/metrics", "/api/v1/health"),
		middleware.Recovery(),
		middleware.CORS(deps.Config.CORSAllowOrigin),
		middleware.Identity(),
		middleware.RateLimit(middleware.RateLimitConfig{
			Rules:        rules,
			DefaultGroup: GroupDefault,
			Limiter:      deps.Limiter,
			GroupFor: middleware.GroupByRoute(map[string]string{
				http.MethodPost + " /api/v1/recommendations":     GroupRecommend,
				http.MethodPost + " /api/v1/entitlements/unlock": GroupUnlock,
			}),
		}),
	)

	r.GET("/metrics", metrics.Handler())

	api := r.Group("/api/v1")
	api.GET("/health", func(c *gin.Context) {
		respond.JSON(c, http.StatusOK, gin.H{"ok": true})
	})
	if deps.QuestionnaireHandler != nil {
		deps.QuestionnaireHandler.RegisterRoutes(api)
	}
	if deps.RecommendationsHandler != nil {
		deps.RecommendationsHandler.RegisterPublicRoutes(api)
	}

	protected := api.Group("", middleware.RequireIdentity())
	if deps.RecommendationsHandler != nil {
		deps.RecommendationsHandler.RegisterRoutes(protected)
	}
	if deps.EntitlementsHandler != nil {
		deps.EntitlementsHandler.RegisterRoutes(protected)
		if deps.Config.IsDevLike() {
			deps.EntitlementsHandler.RegisterDevRoutes(protected.Group("/dev"))
		}
	}

	return r
}

// Addr normalizes the listen address.
func Addr(port string) string {
	if port == "" {
		return ":8080"
	}
	if port[0] == ':' {
		return port
	}
	return ":" + port
}
