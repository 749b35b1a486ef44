package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"

	_ "organizations-backend/docs"
	"organizations-backend/organization-service/handlers"
	"organizations-backend/organization-service/middleware"
	"organizations-backend/organization-service/routes"
	"organizations-backend/shared/authz"
	"organizations-backend/shared/config"
	"organizations-backend/shared/database"
	"organizations-backend/shared/events"
	"organizations-backend/shared/logger"
	"organizations-backend/shared/repository"
	"organizations-backend/shared/utils/cache"
	"organizations-backend/shared/validation"
)

// @title Organizations API
// @version 1.0
// @description Organizations with owner, admin and member roles

// @BasePath /api
// @schemes http https

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and the JWT token.

func main() {
	cfg := config.LoadConfig()

	log := logger.New(logger.Config{Level: cfg.LogLevel, Format: cfg.LogFormat})
	defer log.Sync()

	db, err := database.InitDatabase(cfg, log)
	if err != nil {
		log.Fatal("failed to initialize database", zap.Error(err))
	}
	defer database.CloseDatabase(db)

	var roles authz.RoleOracle = repository.NewRoleRepository(db)

	var redisClient *redis.Client
	if cfg.RedisEnabled {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		redisClient, err = cache.NewRedisClient(ctx, cfg)
		cancel()
		if err != nil {
			// the service runs without cache and pub/sub
			log.Warn("redis unavailable, continuing without it", zap.Error(err))
			redisClient = nil
		} else {
			defer redisClient.Close()
			roles = cache.NewRoleCache(roles, redisClient, cfg.GetRoleCacheTTL(), log)
		}
	}

	var workspaces authz.WorkspaceAccess
	if cfg.WorkspaceRoles {
		workspaces = authz.NewRoleWorkspaceAccess(roles)
	}
	gate := authz.NewGate(roles, workspaces, cfg.WorkspaceScoped)

	dispatcher := events.NewDispatcher(log, events.NewLogPublisher(log))
	if redisClient != nil {
		dispatcher.Add(events.NewRedisPublisher(redisClient, cfg.EventsChannel))
	}
	if cfg.EventsWebhookURL != "" {
		dispatcher.Add(events.NewWebhookPublisher(cfg.EventsWebhookURL))
	}

	validation.Setup()

	organizationHandler := handlers.NewOrganizationHandler(
		repository.NewOrganizationRepository(db),
		repository.NewUserRepository(db),
		roles,
		gate,
		dispatcher,
		cfg,
		log,
	)

	stopCleanup := make(chan struct{})
	defer close(stopCleanup)

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestLogger(log))
	router.Use(cors.New(cors.Config{
		AllowOrigins:     []string{cfg.FrontendURL},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization", middleware.RequestIDHeader},
		ExposeHeaders:    []string{middleware.RequestIDHeader},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	routes.RegisterHealthRoutes(router, "organizations")
	if cfg.RegisterRoutes {
		apiMiddlewares := []gin.HandlerFunc{middleware.AuthMiddleware(cfg.JWTSecret)}
		if cfg.RateLimitEnabled {
			var store middleware.RateLimitStore
			if redisClient != nil {
				store = middleware.NewRedisRateStore(redisClient, "throttle:")
			} else {
				memoryStore := middleware.NewMemoryRateStore()
				go memoryStore.Cleanup(5*time.Minute, stopCleanup)
				store = memoryStore
			}
			apiMiddlewares = append(apiMiddlewares, middleware.RateLimit(store, middleware.RateLimitConfig{
				MaxRequests: cfg.RateLimitMaxRequests,
				Window:      cfg.GetRateLimitWindow(),
			}, log))
		}
		routes.RegisterOrganizationRoutes(router, cfg.RoutePrefix, organizationHandler, apiMiddlewares...)
	}

	// Swagger documentation
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	port := config.ServicePort(cfg.OrganizationServiceURL, "8003")
	srv := &http.Server{
		Addr:    ":" + port,
		Handler: router,
	}

	go func() {
		log.Info("organization service starting", zap.String("port", port))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("server failed", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("shutting down organization service")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Error("graceful shutdown failed", zap.Error(err))
	}

	// events of the last requests are still in flight
	dispatcher.Wait()
}
