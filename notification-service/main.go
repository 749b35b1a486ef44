package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"organizations-backend/notification-service/handlers"
	"organizations-backend/notification-service/services"
	"organizations-backend/shared/config"
	"organizations-backend/shared/database"
	"organizations-backend/shared/events"
	"organizations-backend/shared/logger"
	"organizations-backend/shared/repository"
	"organizations-backend/shared/utils/cache"
)

// @title Notification Service API
// @version 1.0
// @description Real-time organization events over WebSocket
// @BasePath /

func main() {
	cfg := config.LoadConfig()

	log := logger.New(logger.Config{Level: cfg.LogLevel, Format: cfg.LogFormat})
	defer log.Sync()

	db, err := database.InitDatabase(cfg, log)
	if err != nil {
		log.Fatal("failed to initialize database", zap.Error(err))
	}
	defer database.CloseDatabase(db)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	redisCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	redisClient, err := cache.NewRedisClient(redisCtx, cfg)
	cancel()
	if err != nil {
		log.Fatal("redis is required for event delivery", zap.Error(err))
	}
	defer redisClient.Close()

	stream, err := events.Subscribe(ctx, redisClient, cfg.EventsChannel, log)
	if err != nil {
		log.Fatal("failed to subscribe to events", zap.Error(err))
	}

	manager := services.NewWebSocketManager([]string{cfg.FrontendURL}, log)
	go manager.Run(ctx.Done())

	fanout := services.NewEventFanout(repository.NewRoleRepository(db), manager, log)
	go fanout.Run(ctx, stream)

	wsHandler := handlers.NewWebSocketHandler(manager, cfg.JWTSecret, log)

	router := gin.New()
	router.Use(gin.Recovery())
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"service":     "notification-service",
			"status":      "healthy",
			"connections": manager.GetConnectionCount(),
		})
	})
	router.GET("/ws/organizations", wsHandler.Connect)
	router.GET("/ws/connections", wsHandler.Connections)

	port := config.ServicePort(cfg.NotificationServiceURL, "8004")
	srv := &http.Server{
		Addr:    ":" + port,
		Handler: router,
	}

	go func() {
		log.Info("notification service starting", zap.String("port", port), zap.String("channel", cfg.EventsChannel))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("server failed", zap.Error(err))
		}
	}()

	<-ctx.Done()
	log.Info("shutting down notification service")

	shutdownCtx, cancelShutdown := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancelShutdown()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("graceful shutdown failed", zap.Error(err))
	}
}
