package queue

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/hibiken/asynq"
	"go.uber.org/zap"

	appshop "github.com/nicksmd/fu-marketplace-api/internal/application/shop"
	"github.com/nicksmd/fu-marketplace-api/internal/infrastructure/config"
)

var _ appshop.IndexJobEnqueuer = (*Client)(nil)

// Client enqueues index maintenance jobs. Each enqueue issues a fresh stamp,
// so the job carrying the highest stamp always reflects the newest committed
// state.
type Client struct {
	client *asynq.Client
	fence  *StampFence
	cfg    config.QueueConfig
	logger *zap.Logger
}

// NewClient creates a new queue client
func NewClient(redisOpt asynq.RedisConnOpt, fence *StampFence, cfg config.QueueConfig, logger *zap.Logger) *Client {
	return &Client{
		client: asynq.NewClient(redisOpt),
		fence:  fence,
		cfg:    cfg,
		logger: logger,
	}
}

// EnqueueUpdateShopIndex schedules a full reindex of the shop's document
func (c *Client) EnqueueUpdateShopIndex(ctx context.Context, shopID uuid.UUID) error {
	return c.enqueue(ctx, shopID, NewUpdateShopIndexTask)
}

// EnqueueDeleteShopIndex schedules removal of the shop's document
func (c *Client) EnqueueDeleteShopIndex(ctx context.Context, shopID uuid.UUID) error {
	return c.enqueue(ctx, shopID, NewDeleteShopIndexTask)
}

func (c *Client) enqueue(ctx context.Context, shopID uuid.UUID, build func(uuid.UUID, int64) (*asynq.Task, error)) error {
	stamp, err := c.fence.Next(ctx, shopID)
	if err != nil {
		return err
	}

	task, err := build(shopID, stamp)
	if err != nil {
		return err
	}

	info, err := c.client.EnqueueContext(ctx, task, enqueueOptions(c.cfg)...)
	if err != nil {
		return fmt.Errorf("enqueue %s for shop %s: %w", task.Type(), shopID, err)
	}

	c.logger.Debug("index job enqueued",
		zap.String("task_id", info.ID),
		zap.String("type", task.Type()),
		zap.String("shop_id", shopID.String()),
		zap.Int64("stamp", stamp),
	)
	return nil
}

// enqueueOptions builds the options every index job is enqueued with. No
// retention option is set, so completed tasks are removed; an exhausted task
// is archived rather than dropped.
func enqueueOptions(cfg config.QueueConfig) []asynq.Option {
	return []asynq.Option{
		asynq.Queue(cfg.QueueName),
		asynq.MaxRetry(cfg.MaxRetry),
		asynq.Timeout(cfg.JobTimeout),
	}
}

// Close releases the underlying connection
func (c *Client) Close() error {
	return c.client.Close()
}
