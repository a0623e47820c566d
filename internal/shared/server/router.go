package server

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"cv-builder/internal/forms"
	"cv-builder/internal/services/health"
	"cv-builder/internal/shared/config"
	"cv-builder/internal/shared/metrics"
	"cv-builder/internal/shared/server/middleware"
	"cv-builder/internal/shared/server/respond"
)

// RouterDeps holds the handlers mounted on the engine.
type RouterDeps struct {
	Config      config.Config
	FormHandler *forms.Handler
	Health      *health.Service
	Limiter     *middleware.RateLimiter
}

// NewRouter constructs the Gin engine with middleware and routes registered.
func NewRouter(deps RouterDeps) *gin.Engine {
	if deps.Config.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()

	renderRoutes := make(map[string]struct{})
	for _, route := range forms.RenderRoutes() {
		renderRoutes[route] = struct{}{}
	}

	r.Use(
		middleware.RequestID(),
		middleware.Logging(),
		middleware.Recovery(),
		middleware.CORS(deps.Config.CORSAllowOrigin),
		middleware.RateLimit(middleware.RateLimitConfig{
			Limiter: deps.Limiter,
			GroupFor: func(c *gin.Context) string {
				if _, ok := renderRoutes[c.FullPath()]; ok {
					return middleware.RenderGroup
				}
				return ""
			},
			Rules: map[string]middleware.RateLimitRule{
				middleware.RenderGroup: {Rate: deps.Config.RenderRate, Burst: deps.Config.RenderBurst},
			},
		}),
	)

	r.GET("/metrics", metrics.Handler())

	api := r.Group("/api/v1")
	api.GET("/health", func(c *gin.Context) {
		if deps.Health == nil {
			respond.OK(c, gin.H{"ok": true})
			return
		}
		status := deps.Health.Status(c.Request.Context())
		code := http.StatusOK
		if !status.OK {
			code = http.StatusServiceUnavailable
		}
		respond.JSON(c, code, status)
	})
	if deps.FormHandler != nil {
		deps.FormHandler.RegisterRoutes(api)
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
