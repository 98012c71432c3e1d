package queue

import (
	"context"
	"time"

	"github.com/hibiken/asynq"
	"go.uber.org/zap"

	"github.com/nicksmd/fu-marketplace-api/internal/infrastructure/config"
)

// Worker runs the asynq server consuming index maintenance tasks. Failed
// attempts retry on a fixed delay; a task that exhausts its retries is
// archived for inspection instead of being dropped.
type Worker struct {
	server *asynq.Server
	mux    *asynq.ServeMux
	logger *zap.Logger
}

// NewWorker creates a new queue worker
func NewWorker(redisOpt asynq.RedisConnOpt, handler *IndexTaskHandler, cfg config.QueueConfig, logger *zap.Logger) *Worker {
	server := asynq.NewServer(redisOpt, asynq.Config{
		Concurrency: cfg.Concurrency,
		Queues: map[string]int{
			cfg.QueueName: 1,
		},
		RetryDelayFunc: fixedRetryDelay(cfg.RetryDelay),
		ErrorHandler: asynq.ErrorHandlerFunc(func(ctx context.Context, task *asynq.Task, err error) {
			retried, _ := asynq.GetRetryCount(ctx)
			maxRetry, _ := asynq.GetMaxRetry(ctx)
			logger.Warn("index task failed",
				zap.String("type", task.Type()),
				zap.Int("retried", retried),
				zap.Int("max_retry", maxRetry),
				zap.Error(err),
			)
		}),
		Logger: newAsynqLogger(logger),
	})

	mux := asynq.NewServeMux()
	mux.HandleFunc(TypeUpdateShopIndex, handler.HandleUpdateShopIndex)
	mux.HandleFunc(TypeDeleteShopIndex, handler.HandleDeleteShopIndex)

	return &Worker{
		server: server,
		mux:    mux,
		logger: logger,
	}
}

// fixedRetryDelay waits the same delay before every retry, regardless of
// attempt count
func fixedRetryDelay(delay time.Duration) asynq.RetryDelayFunc {
	return func(n int, err error, task *asynq.Task) time.Duration {
		return delay
	}
}

// Run starts processing tasks and blocks until Shutdown
func (w *Worker) Run() error {
	w.logger.Info("queue worker starting")
	return w.server.Run(w.mux)
}

// Shutdown stops the worker gracefully, waiting for in-flight tasks
func (w *Worker) Shutdown() {
	w.server.Shutdown()
	w.logger.Info("queue worker stopped")
}

// asynqLogger adapts zap to asynq's logger interface
type asynqLogger struct {
	sugar *zap.SugaredLogger
}

func newAsynqLogger(logger *zap.Logger) *asynqLogger {
	return &asynqLogger{sugar: logger.Named("asynq").Sugar()}
}

func (l *asynqLogger) Debug(args ...interface{}) { l.sugar.Debug(args...) }
func (l *asynqLogger) Info(args ...interface{})  { l.sugar.Info(args...) }
func (l *asynqLogger) Warn(args ...interface{})  { l.sugar.Warn(args...) }
func (l *asynqLogger) Error(args ...interface{}) { l.sugar.Error(args...) }
func (l *asynqLogger) Fatal(args ...interface{}) { l.sugar.Fatal(args...) }
