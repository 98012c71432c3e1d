package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/hibiken/asynq"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	identityapp "github.com/nicksmd/fu-marketplace-api/internal/application/identity"
	shopapp "github.com/nicksmd/fu-marketplace-api/internal/application/shop"
	supportapp "github.com/nicksmd/fu-marketplace-api/internal/application/support"
	tradeapp "github.com/nicksmd/fu-marketplace-api/internal/application/trade"
	"github.com/nicksmd/fu-marketplace-api/internal/infrastructure/config"
	"github.com/nicksmd/fu-marketplace-api/internal/infrastructure/event"
	"github.com/nicksmd/fu-marketplace-api/internal/infrastructure/logger"
	"github.com/nicksmd/fu-marketplace-api/internal/infrastructure/persistence"
	"github.com/nicksmd/fu-marketplace-api/internal/infrastructure/queue"
	"github.com/nicksmd/fu-marketplace-api/internal/infrastructure/search"
	"github.com/nicksmd/fu-marketplace-api/internal/infrastructure/storage"
	"github.com/nicksmd/fu-marketplace-api/internal/interfaces/http/handler"
	"github.com/nicksmd/fu-marketplace-api/internal/interfaces/http/middleware"
	"github.com/nicksmd/fu-marketplace-api/internal/interfaces/http/router"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("Failed to load configuration: " + err.Error())
	}

	log := logger.New(cfg.Log)
	defer func() {
		_ = log.Sync()
	}()

	log.Info("Starting marketplace API",
		zap.String("app", cfg.App.Name),
		zap.String("env", cfg.App.Env),
		zap.String("port", cfg.App.Port),
	)

	gormLog := logger.NewGormLogger(log, logger.MapGormLogLevel(cfg.Log.Level))
	db, err := persistence.NewDatabase(cfg.Database, gormLog)
	if err != nil {
		log.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Error("Error closing database", zap.Error(err))
		}
	}()

	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr(),
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	defer func() {
		_ = rdb.Close()
	}()

	// Repositories
	shopRepo := persistence.NewGormShopRepository(db.DB)
	itemRepo := persistence.NewGormItemRepository(db.DB)
	shipPlaceRepo := persistence.NewGormShipPlaceRepository(db.DB)
	reviewRepo := persistence.NewGormReviewRepository(db.DB)
	orderRepo := persistence.NewGormOrderRepository(db.DB)
	ticketRepo := persistence.NewGormTicketRepository(db.DB)
	userRepo := persistence.NewGormUserRepository(db.DB)
	notificationRepo := persistence.NewGormNotificationRepository(db.DB)

	// External collaborators
	indexer := search.NewElasticIndexer(cfg.Search, db.DB, log)
	imageStorage, err := storage.NewS3ImageStorage(cfg.Storage, log)
	if err != nil {
		log.Fatal("Failed to initialize image storage", zap.Error(err))
	}

	redisOpt := asynq.RedisClientOpt{
		Addr:     cfg.Redis.Addr(),
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	}
	fence := queue.NewStampFence(rdb)
	queueClient := queue.NewClient(redisOpt, fence, cfg.Queue, log)
	defer func() {
		_ = queueClient.Close()
	}()

	// Event bus and the index-sync bridge
	bus := event.NewInMemoryEventBus(log)
	bus.Subscribe(shopapp.NewIndexSyncHandler(queueClient, imageStorage, log))

	// Application services
	shopService := shopapp.NewShopService(shopRepo, shipPlaceRepo, indexer, imageStorage, bus, log)
	itemService := shopapp.NewItemService(itemRepo, shopRepo, queueClient, log)
	reviewService := shopapp.NewReviewService(reviewRepo, shopRepo)
	orderService := tradeapp.NewOrderService(orderRepo, shopRepo, notificationRepo, log)
	ticketService := supportapp.NewTicketService(ticketRepo, orderRepo, shopRepo, userRepo)
	userService := identityapp.NewUserService(userRepo, notificationRepo)

	middleware.SetupValidator()
	engine := router.New(cfg, log, router.Handlers{
		Shop:   handler.NewShopHandler(shopService, itemService),
		Order:  handler.NewOrderHandler(orderService, reviewService),
		Ticket: handler.NewTicketHandler(ticketService),
		User:   handler.NewUserHandler(userService),
	})

	srv := &http.Server{
		Addr:           ":" + cfg.App.Port,
		Handler:        engine,
		ReadTimeout:    cfg.HTTP.ReadTimeout,
		WriteTimeout:   cfg.HTTP.WriteTimeout,
		IdleTimeout:    cfg.HTTP.IdleTimeout,
		MaxHeaderBytes: cfg.HTTP.MaxHeaderBytes,
	}

	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("HTTP server failed", zap.Error(err))
		}
	}()
	log.Info("HTTP server listening", zap.String("addr", srv.Addr))

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Error("Forced shutdown", zap.Error(err))
	}
}
