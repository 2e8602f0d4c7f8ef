package main

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/JonnyWalker81/remindr/backend/internal/handlers"
	"github.com/JonnyWalker81/remindr/backend/internal/middleware"
)

// newRouter wires middleware and routes. The returned limiter must be
// stopped when the server shuts down.
func newRouter(a *app) (*gin.Engine, *middleware.RateLimiter) {
	reminderHandler := handlers.NewReminderHandler(a.reminders, a.activity)
	activityHandler := handlers.NewActivityHandler(a.activity)
	analyticsHandler := handlers.NewAnalyticsHandler(a.analytics, a.export, a.cfg.Analytics.Range())

	limiter := middleware.NewRateLimiter(a.cfg.Server.RateLimitRPS, a.cfg.Server.RateLimitBurst, 10*time.Minute, "api")

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestLogger(a.log))
	router.Use(middleware.SecurityHeaders(a.cfg.Server.IsProduction()))
	router.Use(middleware.CORS(a.cfg.Server.CORSAllowedOrigins))

	router.GET("/health", handlers.Health(a.cfg.Server.Env))
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	v1 := router.Group("/api/v1")
	v1.Use(middleware.RateLimit(limiter))
	{
		v1.GET("/categories", handlers.GetCategories)

		v1.GET("/reminders", reminderHandler.GetReminders)
		v1.POST("/reminders", reminderHandler.CreateReminder)
		v1.GET("/reminders/:id", reminderHandler.GetReminder)
		v1.PUT("/reminders/:id", reminderHandler.UpdateReminder)
		v1.DELETE("/reminders/:id", reminderHandler.DeleteReminder)
		v1.GET("/reminders/:id/logs", reminderHandler.GetReminderLogs)

		v1.GET("/logs", activityHandler.GetLogs)
		v1.POST("/logs", middleware.Idempotency(a.repos.Idempotency), activityHandler.LogActivity)

		v1.GET("/analytics/snapshot", analyticsHandler.GetSnapshot)
		v1.GET("/analytics/latest", analyticsHandler.GetLatest)
		v1.GET("/analytics/export", analyticsHandler.Export)
	}

	return router, limiter
}
