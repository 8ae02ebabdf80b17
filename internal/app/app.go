package app

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"notifyhub_backend/internal/config"
	"notifyhub_backend/internal/handlers"
	"notifyhub_backend/internal/logger"
	"notifyhub_backend/internal/middleware"
	"notifyhub_backend/internal/models"
	"notifyhub_backend/internal/repositories"
	"notifyhub_backend/internal/routes"
	"notifyhub_backend/internal/services"
	"notifyhub_backend/internal/validator"
	"notifyhub_backend/internal/workers"
	"notifyhub_backend/ws"
)

func Run() {
	config.LoadConfig()
	cfg := config.AppConfig
	logger.Init(cfg.Server.Env)
	logger.Info("Logger initialized", "env", cfg.Server.Env)

	gormDB, err := gorm.Open(postgres.Open(cfg.Database.DSN), &gorm.Config{})
	if err != nil {
		logger.Fatal("Failed to connect to database", "error", err)
	}
	sqlDB, err := gormDB.DB()
	if err != nil {
		logger.Fatal("Failed to get *sql.DB from GORM", "error", err)
	}
	if err = sqlDB.Ping(); err != nil {
		logger.Fatal("Database unavailable", "error", err)
	}
	logger.Info("Database connected")

	if err := gormDB.AutoMigrate(&models.Notification{}); err != nil {
		logger.Fatal("Failed to migrate schema", "error", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	ginRouter, serviceContainer := SetupRouter(cfg, gormDB)

	if cfg.Retention.Enabled {
		retention := workers.NewRetentionWorker(
			serviceContainer.NotificationService,
			cfg.Retention.MaxAge,
			cfg.Retention.Interval,
		)
		retention.Start(ctx)
		logger.Info("Retention worker started",
			"max_age", cfg.Retention.MaxAge, "interval", cfg.Retention.Interval)
	}

	address := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	server := &http.Server{
		Addr:    address,
		Handler: ginRouter,
	}

	go func() {
		logger.Info("Server starting", "address", address)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("Server startup error", "error", err)
		}
	}()

	<-ctx.Done()
	logger.Info("Shutdown signal received")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("Graceful shutdown failed", "error", err)
	}
	logger.Info("Server stopped")
}

// SetupRouter wires repositories, services, handlers and the realtime
// gateway into a ready gin engine. Exposed for the test helpers.
func SetupRouter(cfg *config.Config, gormDB *gorm.DB) (*gin.Engine, *services.ServiceContainer) {
	wsManager := ws.NewRoomManager()
	go wsManager.Run()
	wsHandler := ws.NewWebSocketHandler(wsManager)

	serviceContainer := initializeServices(gormDB, wsManager)
	appHandlers := initializeHandlers(serviceContainer)

	ginRouter := initializeGinRouter(cfg)
	routes.RegisterRoutes(ginRouter, cfg, appHandlers, wsHandler)

	return ginRouter, serviceContainer
}

func initializeServices(gormDB *gorm.DB, publisher services.EventPublisher) *services.ServiceContainer {
	notificationRepo := repositories.NewNotificationRepository(gormDB)
	notificationService := services.NewNotificationService(notificationRepo, publisher)

	return &services.ServiceContainer{
		NotificationService: notificationService,
	}
}

func initializeHandlers(container *services.ServiceContainer) *handlers.AppHandlers {
	customValidator := validator.New()
	baseHandler := handlers.NewBaseHandler(customValidator)

	return &handlers.AppHandlers{
		NotificationHandler: handlers.NewNotificationHandler(baseHandler, container.NotificationService),
		HealthHandler:       handlers.NewHealthHandler(),
	}
}

func initializeGinRouter(cfg *config.Config) *gin.Engine {
	if cfg.Server.Env != "development" {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestIDMiddleware())
	router.Use(middleware.LoggingMiddleware())
	router.Use(middleware.CORSMiddleware())
	return router
}
