// Package router sets up the HTTP routing for the application.
package router

import (
	"github.com/gin-gonic/gin"

	"github.com/life-index/backend/internal/integration/entrypoint/controller"
	"github.com/life-index/backend/internal/integration/entrypoint/middleware"
)

// Router holds the Gin engine and controller dependencies.
type Router struct {
	engine              *gin.Engine
	healthController    *controller.HealthController
	lifeIndexController *controller.LifeIndexController
	insightController   *controller.InsightController
	insightRateLimiter  *middleware.RateLimiter
}

// NewRouter creates a new router instance with all dependencies.
func NewRouter(
	healthController *controller.HealthController,
	lifeIndexController *controller.LifeIndexController,
	insightController *controller.InsightController,
	insightRateLimiter *middleware.RateLimiter,
) *Router {
	return &Router{
		healthController:    healthController,
		lifeIndexController: lifeIndexController,
		insightController:   insightController,
		insightRateLimiter:  insightRateLimiter,
	}
}

// Setup configures and returns the Gin engine with all routes.
func (r *Router) Setup(environment string) *gin.Engine {
	if environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	} else if environment == "test" {
		gin.SetMode(gin.TestMode)
	}

	r.engine = gin.Default()

	r.setupHealthRoutes()
	r.setupAPIRoutes()

	return r.engine
}

// setupHealthRoutes configures health check endpoints.
func (r *Router) setupHealthRoutes() {
	r.engine.GET("/health", r.healthController.Check)
}

// setupAPIRoutes configures the main API routes.
func (r *Router) setupAPIRoutes() {
	v1 := r.engine.Group("/api/v1")
	{
		lifeIndex := v1.Group("/life-index")
		{
			lifeIndex.GET("", r.lifeIndexController.Get)
			lifeIndex.GET("/categories/:id", r.lifeIndexController.GetCategory)
			lifeIndex.PUT("/categories/:id/metrics", r.lifeIndexController.UpdateMetrics)
			lifeIndex.POST("/categories/:id/metrics", r.lifeIndexController.AddMetric)
			lifeIndex.GET("/history", r.lifeIndexController.History)
			lifeIndex.GET("/history/chart", r.lifeIndexController.HistoryChart)
		}

		if r.insightController != nil {
			insights := v1.Group("/insights")
			if r.insightRateLimiter != nil {
				insights.Use(r.insightRateLimiter.Middleware())
			}
			{
				insights.POST("", r.insightController.Generate)
				insights.POST("/email", r.insightController.Email)
			}
		}
	}
}
