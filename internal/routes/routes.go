package routes

import (
	"github.com/gin-gonic/gin"

	"notifyhub_backend/internal/config"
	"notifyhub_backend/internal/handlers"
	"notifyhub_backend/internal/middleware"
	"notifyhub_backend/ws"
)

// RegisterRoutes assembles the full route table: health probe, the REST
// surface under /api, and the realtime endpoint.
func RegisterRoutes(router *gin.Engine, cfg *config.Config, appHandlers *handlers.AppHandlers, wsHandler *ws.WebSocketHandler) {
	router.GET("/health", appHandlers.HealthHandler.Health)
	router.GET("/ws", wsHandler.ServeWS)

	// Middleware applied to mutating notification routes only.
	var mutating []gin.HandlerFunc
	if cfg.RateLimit.Enabled {
		limiter := middleware.NewRateLimiter(cfg.RateLimit.RPS, cfg.RateLimit.Burst)
		mutating = append(mutating, limiter.Limit())
	}
	if cfg.Auth.Enabled {
		mutating = append(mutating, middleware.ServiceAuthMiddleware(cfg.Auth.Secret))
	}

	api := router.Group("/api")
	appHandlers.NotificationHandler.RegisterRoutes(api, mutating...)
}
