package server

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"resume-builder/internal/export"
	"resume-builder/internal/optimize"
	"resume-builder/internal/resumes"
	"resume-builder/internal/shared/config"
	"resume-builder/internal/shared/metrics"
	"resume-builder/internal/shared/server/middleware"
	"resume-builder/internal/shared/server/respond"
	"resume-builder/internal/templates"
)

const heavyRateGroup = "HEAVY"

// Deps collects the feature handlers the router mounts.
type Deps struct {
	Config    config.Config
	Templates *templates.Handler
	Resumes   *resumes.Handler
	Exports   *export.Handler
	// Optimize is nil when no optimizer endpoint is configured; the
	// optimize routes are simply absent then.
	Optimize *optimize.Handler
}

// NewRouter constructs the Gin engine with middleware and routes registered.
func NewRouter(d Deps) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	r := gin.New()

	r.Use(
		middleware.RequestID(),
		middleware.Logging(),
		middleware.Recovery(),
		middleware.CORS(d.Config.CORSAllowOrigin),
		middleware.Auth(d.Config.Env),
	)

	api := r.Group("/api/v1")
	api.GET("/health", func(c *gin.Context) {
		respond.JSON(c, http.StatusOK, gin.H{"ok": true})
	})
	api.GET("/metrics", metrics.Handler())
	registerMeRoutes(api)

	d.Templates.RegisterRoutes(api)
	d.Resumes.RegisterRoutes(api)

	// Export and optimize spin up Chrome or call out to another
	// service; give each user a modest budget.
	heavy := api.Group("", middleware.RateLimit(middleware.RateLimitConfig{
		Rules: map[string]middleware.RateLimitRule{
			heavyRateGroup: {Rate: 0.5, Burst: 3},
		},
		GroupFor: func(c *gin.Context) string {
			if c.Request.Method == http.MethodPost && (strings.HasSuffix(c.FullPath(), "/export") || strings.HasSuffix(c.FullPath(), "/optimize")) {
				return heavyRateGroup
			}
			return ""
		},
	}))
	d.Exports.RegisterRoutes(heavy)
	if d.Optimize != nil {
		d.Optimize.RegisterRoutes(heavy)
		d.Optimize.RegisterWebhookRoutes(api)
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
