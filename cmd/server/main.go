package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go-gin-event-ticketing/config"
	"go-gin-event-ticketing/internal/cache"
	"go-gin-event-ticketing/internal/database"
	"go-gin-event-ticketing/internal/handler"
	"go-gin-event-ticketing/internal/middleware"
	"go-gin-event-ticketing/internal/notifier"
	"go-gin-event-ticketing/internal/queue"
	"go-gin-event-ticketing/internal/repository"
	"go-gin-event-ticketing/internal/seed"
	"go-gin-event-ticketing/internal/service"
	"go-gin-event-ticketing/internal/storage"
	"go-gin-event-ticketing/internal/worker"
	"go-gin-event-ticketing/pkg/logger"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

func main() {
	if err := run(); err != nil {
		logger.L.Fatal("Server exited", zap.Error(err))
	}
}

func run() error {
	defer logger.Sync()

	cfg, err := config.LoadConfig()
	if err != nil {
		return err
	}
	logger.SetLevel(cfg.LogLevel)
	log := logger.WithComponent("main")

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	pool, err := database.InitDatabase(ctx, &cfg.Database)
	if err != nil {
		return err
	}
	defer pool.Close()

	if err := database.Migrate(ctx, pool); err != nil {
		return err
	}

	rdb, err := database.InitRedis(ctx, &cfg.Redis)
	if err != nil {
		return err
	}
	defer rdb.Close()

	userRepo := repository.NewUserRepository(pool)
	eventRepo := repository.NewEventRepository(pool)
	registrationRepo := repository.NewRegistrationRepository(pool)

	notificationQueue, err := newNotificationQueue(ctx, cfg, rdb)
	if err != nil {
		return err
	}

	workerCtx, cancelWorker := context.WithCancel(context.Background())
	defer cancelWorker()
	workerDone, err := worker.NewNotificationWorker(notifier.NewLogSender(), notificationQueue).Start(workerCtx)
	if err != nil {
		return err
	}

	authService := service.NewAuthService(userRepo, service.AuthServiceConfig{
		JWTSecret: cfg.JWT.Secret,
		Issuer:    cfg.JWT.Issuer,
		Audience:  cfg.JWT.Audience,
		TokenTTL:  cfg.JWT.TTL,
	})
	eventService := service.NewEventService(eventRepo, cache.NewRedisEventCache(rdb, cfg.Redis.EventCacheTTL))
	registrationService := service.NewRegistrationService(
		registrationRepo,
		eventRepo,
		service.NewNotificationService(notificationQueue),
	)

	if cfg.SeedData {
		if err := seed.Users(ctx, userRepo, authService); err != nil {
			return err
		}
	}

	gin.SetMode(cfg.Server.Mode)
	router := gin.New()
	router.Use(
		gin.Recovery(),
		middleware.RequestID(),
		middleware.Logger(),
		middleware.CORS(middleware.DefaultCORSConfig(cfg.Server.AllowOrigins...)),
	)
	router.Static(handler.UploadsPath, cfg.Storage.UploadsDir)

	authenticate := middleware.Authenticate(authService)
	api := router.Group("/api")
	handler.NewHealthHandler(pool).RegisterRoutes(api)
	handler.NewAuthHandler(authService).RegisterRoutes(api)
	handler.NewEventHandler(eventService).RegisterRoutes(api, authenticate)
	handler.NewRegistrationHandler(registrationService).RegisterRoutes(api, authenticate)
	handler.NewUploadHandler(storage.NewLocalImageStorage(cfg.Storage.UploadsDir, cfg.Storage.MaxUploadSize)).
		RegisterRoutes(api, authenticate)

	srv := &http.Server{
		Addr:              cfg.Server.Addr(),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	serverErr := make(chan error, 1)
	go func() {
		log.Info("HTTP server listening", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
		close(serverErr)
	}()

	select {
	case err := <-serverErr:
		if err != nil {
			return err
		}
	case <-ctx.Done():
		log.Info("Shutting down")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("HTTP server shutdown failed", zap.Error(err))
	}

	cancelWorker()
	select {
	case <-workerDone:
	case <-shutdownCtx.Done():
		log.Warn("Notification worker did not stop in time")
	}
	return nil
}

func newNotificationQueue(ctx context.Context, cfg *config.Config, rdb *redis.Client) (queue.NotificationQueue, error) {
	if cfg.Notify.Queue == "memory" {
		return queue.NewNotificationQueue(cfg.Notify.BufferSize), nil
	}
	return queue.NewRedisStreamNotificationQueue(ctx, rdb, cfg.Notify.ConsumerID, nil)
}
