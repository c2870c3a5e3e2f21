package server

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/kmanav329/ai-resume-screener/internal/optimize"
	"github.com/kmanav329/ai-resume-screener/internal/shared/config"
	"github.com/kmanav329/ai-resume-screener/internal/shared/metrics"
	"github.com/kmanav329/ai-resume-screener/internal/shared/server/middleware"
	"github.com/kmanav329/ai-resume-screener/internal/shared/server/respond"
)

// NewRouter constructs the Gin engine with middleware and routes registered.
func NewRouter(cfg config.Config, handler *optimize.Handler) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	r := gin.New()

	r.Use(
		middleware.RequestID(),
		middleware.Logging(),
		middleware.Recovery(),
		middleware.CORS(cfg.CORSAllowOrigin),
	)

	r.GET("/metrics", metrics.Handler())

	api := r.Group("/api/v1")
	api.GET("/health", func(c *gin.Context) {
		respond.JSON(c, http.StatusOK, gin.H{"ok": true})
	})

	api.POST("/optimizations", handler.Create)
	api.GET("/optimizations", handler.List)
	api.GET("/optimizations/:id", handler.Get)
	api.GET("/optimizations/:id/download", handler.Download)

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
