package router

import (
	"github.com/gin-gonic/gin"

	"invana/internal/config"
	"invana/internal/handler"
	"invana/internal/middleware"
)

// Setup configures the Gin engine with all routes and middleware.
func Setup(
	cfg *config.Config,
	analysisH *handler.AnalysisHandler,
	configH *handler.ConfigHandler,
	healthH *handler.HealthHandler,
) *gin.Engine {
	r := gin.New()

	// Global middleware
	r.Use(middleware.Recovery())
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger())
	r.Use(middleware.CORS(cfg.CORS.AllowedOrigins))

	// Health checks
	r.GET("/healthz", healthH.Liveness)
	r.GET("/readyz", healthH.Readiness)

	v1 := r.Group("/api/v1")

	v1.POST("/analyze", analysisH.Analyze)
	v1.POST("/prompt/preview", analysisH.PromptPreview)
	v1.POST("/cache/reset", analysisH.ResetClients)

	v1.GET("/config", configH.GetGlobal)
	v1.PUT("/config", configH.PutGlobal)
	v1.GET("/clients/:id/overrides", configH.GetOverrides)
	v1.PUT("/clients/:id/overrides", configH.PutOverrides)

	return r
}
