package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go-gin-event-rsvp/config"
	"go-gin-event-rsvp/internal/database"
	"go-gin-event-rsvp/internal/handler"
	"go-gin-event-rsvp/internal/middleware"
	"go-gin-event-rsvp/internal/queue"
	"go-gin-event-rsvp/internal/repository"
	"go-gin-event-rsvp/internal/service"
	"go-gin-event-rsvp/internal/worker"
	"go-gin-event-rsvp/pkg/logger"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

func main() {
	cfg := config.LoadConfig()

	log := logger.WithComponent("server")
	if err := logger.SetLevel(cfg.LogLevel); err != nil {
		log.Warn("Invalid log level, keeping info", zap.String("level", cfg.LogLevel), zap.Error(err))
	}
	defer logger.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	pool, err := database.InitDatabase(&cfg.Database)
	if err != nil {
		log.Fatal("Failed to initialize database", zap.Error(err))
	}
	defer pool.Close()

	if err := database.Migrate(ctx, pool); err != nil {
		log.Fatal("Failed to migrate database", zap.Error(err))
	}

	rdb, err := initRedis(cfg)
	if err != nil {
		log.Fatal("Failed to initialize redis", zap.Error(err))
	}
	if rdb != nil {
		defer rdb.Close()
	}

	activityQueue, err := newActivityQueue(ctx, cfg, rdb)
	if err != nil {
		log.Fatal("Failed to initialize activity queue", zap.Error(err))
	}

	// repositories
	userRepo := repository.NewUserRepository(pool)
	eventRepo := repository.NewEventRepository(pool)
	participationRepo := repository.NewParticipationRepository(pool)
	activityRepo := repository.NewActivityLogRepository(pool)

	// services
	activityService := service.NewActivityLogService(activityRepo, activityQueue, time.Now)
	eventService := service.NewEventService(database.NewTransactor(pool), eventRepo, participationRepo, userRepo, activityService, time.Now)
	eventQueryService := service.NewEventQueryService(eventRepo, participationRepo, userRepo, time.Now)
	participationService := service.NewParticipationService(eventRepo, participationRepo, activityService)
	userService := service.NewUserService(userRepo)

	workerCtx, cancelWorker := context.WithCancel(context.Background())
	activityWorker := worker.NewActivityWorker(activityService, activityQueue)
	if err := activityWorker.Start(workerCtx); err != nil {
		log.Fatal("Failed to start activity worker", zap.Error(err))
	}

	checks := []handler.HealthCheck{{Name: "postgres", Check: pool.Ping}}
	if rdb != nil {
		checks = append(checks, handler.HealthCheck{Name: "redis", Check: func(ctx context.Context) error {
			return rdb.Ping(ctx).Err()
		}})
	}

	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.Use(
		gin.Recovery(),
		middleware.RequestLogger(),
		middleware.Identity(cfg.Auth.JWTSecret),
		middleware.RateLimit(rdb, cfg.RateLimit),
	)

	handler.NewEventHandler(eventService, eventQueryService).RegisterRoutes(router)
	handler.NewParticipationHandler(participationService).RegisterRoutes(router)
	handler.NewActivityLogHandler(activityService).RegisterRoutes(router)
	handler.NewWebhookHandler(userService).RegisterRoutes(router)
	handler.NewHealthHandler(checks...).RegisterRoutes(router)

	srv := &http.Server{
		Addr:              ":" + cfg.Server.Port,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		log.Info("HTTP server listening", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("HTTP server stopped", zap.Error(err))
			stop()
		}
	}()

	<-ctx.Done()
	log.Info("Shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("HTTP server shutdown failed", zap.Error(err))
	}

	// in-flight requests are done; let the worker drain what it holds
	cancelWorker()
	activityWorker.Wait()
}

// initRedis connects only when a component needs Redis.
func initRedis(cfg *config.Config) (*redis.Client, error) {
	if cfg.Activity.QueueDriver != "redis" && !cfg.RateLimit.Enabled {
		return nil, nil
	}
	return database.InitRedis(&cfg.Redis)
}

func newActivityQueue(ctx context.Context, cfg *config.Config, rdb *redis.Client) (queue.ActivityQueue, error) {
	switch cfg.Activity.QueueDriver {
	case "memory", "":
		return queue.NewMemoryActivityQueue(cfg.Activity.BufferSize, cfg.Activity.MaxRetryCount), nil
	case "redis":
		consumerID := cfg.Activity.ConsumerID
		if consumerID == "" {
			consumerID, _ = os.Hostname()
		}
		return queue.NewRedisStreamActivityQueue(ctx, rdb, consumerID, &queue.RedisStreamConfig{
			StreamKey:        queue.DefaultStreamKey,
			ClaimMinIdleTime: cfg.Activity.ClaimMinIdleTime,
			MaxRetryCount:    cfg.Activity.MaxRetryCount,
		})
	}
	return nil, errors.New("unknown activity queue driver: " + cfg.Activity.QueueDriver)
}
