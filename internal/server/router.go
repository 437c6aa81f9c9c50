// Package server assembles the HTTP router.
package server

import (
	"net/http"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"finsight/internal/config"
	_ "finsight/internal/docs" // Import swagger docs
	"finsight/internal/handlers"
	"finsight/internal/logger"
	"finsight/internal/metrics"
	"finsight/internal/middleware"
	"finsight/internal/services"
)

// Deps are the collaborators the router serves.
type Deps struct {
	Config   *config.Config
	Insights services.InsightServicer
	History  services.NetWorthHistoryServicer
	// Metrics may be nil, in which case /metrics is not mounted.
	Metrics *metrics.Collector
	// Ping reports whether the store is reachable. Optional.
	Ping func() error
}

// NewRouter builds the Gin engine with middleware and every route.
func NewRouter(d Deps) *gin.Engine {
	router := gin.New()
	router.Use(middleware.Recovery())
	router.Use(middleware.RequestLogging())
	if d.Config.MetricsEnabled && d.Metrics != nil {
		router.Use(middleware.Metrics(d.Metrics))
	}
	router.Use(middleware.ErrorHandler())

	// CORS middleware
	router.Use(func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization, X-API-Key, X-Request-ID")

		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	})

	// Swagger documentation
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	router.GET("/api/health", func(c *gin.Context) {
		if d.Ping != nil {
			if err := d.Ping(); err != nil {
				logger.Get().Warnw("health check failed", "error", err)
				c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unavailable"})
				return
			}
		}
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	if d.Config.MetricsEnabled && d.Metrics != nil {
		router.GET("/metrics", gin.WrapH(d.Metrics.Handler()))
	}

	insightHandler := handlers.NewInsightHandler(d.Insights)
	evaluateHandler := handlers.NewEvaluateHandler(d.Insights)
	historyHandler := handlers.NewHistoryHandler(d.History)

	v1 := router.Group("/api/v1")

	// Pipeline routes (API key auth)
	pipeline := v1.Group("/pipeline")
	pipeline.Use(middleware.PipelineAuthMiddleware(d.Config.PipelineAPIKey))
	pipeline.POST("/net-worth/snapshots", historyHandler.RecordSnapshots)

	// Protected routes
	protected := v1.Group("/")
	protected.Use(middleware.AuthMiddleware(d.Config.JWTSecret))

	insights := protected.Group("/insights")
	insights.GET("/net-worth", insightHandler.GetNetWorth)
	insights.GET("/net-worth/history", historyHandler.GetHistory)
	insights.GET("/cash-flow", insightHandler.GetCashFlow)
	insights.GET("/budget", insightHandler.GetBudget)
	insights.GET("/goals", insightHandler.GetGoals)
	insights.GET("/debts", insightHandler.GetDebts)
	insights.GET("/debts/plan", insightHandler.GetPayoffPlan)
	insights.GET("/portfolio", insightHandler.GetPortfolio)
	insights.GET("/assets", insightHandler.GetAssets)
	insights.GET("/assets/:id", insightHandler.GetAsset)
	insights.GET("/bills", insightHandler.GetBills)
	insights.GET("/report", insightHandler.GetReport)

	protected.GET("/goals/:id/progress", insightHandler.GetGoalProgress)
	protected.POST("/evaluate", evaluateHandler.Evaluate)

	return router
}
