package main

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/hibiken/asynq"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/nicksmd/fu-marketplace-api/internal/infrastructure/config"
	"github.com/nicksmd/fu-marketplace-api/internal/infrastructure/logger"
	"github.com/nicksmd/fu-marketplace-api/internal/infrastructure/persistence"
	"github.com/nicksmd/fu-marketplace-api/internal/infrastructure/queue"
	"github.com/nicksmd/fu-marketplace-api/internal/infrastructure/search"
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

	log.Info("Starting index worker",
		zap.String("app", cfg.App.Name),
		zap.String("env", cfg.App.Env),
		zap.Int("concurrency", cfg.Queue.Concurrency),
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

	indexer := search.NewElasticIndexer(cfg.Search, db.DB, log)
	fence := queue.NewStampFence(rdb)
	handler := queue.NewIndexTaskHandler(indexer, fence, log)

	redisOpt := asynq.RedisClientOpt{
		Addr:     cfg.Redis.Addr(),
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	}
	worker := queue.NewWorker(redisOpt, handler, cfg.Queue, log)

	go func() {
		quit := make(chan os.Signal, 1)
		signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
		<-quit
		worker.Shutdown()
	}()

	if err := worker.Run(); err != nil {
		log.Fatal("Worker stopped with error", zap.Error(err))
	}
}
