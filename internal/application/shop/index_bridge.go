package shop

import (
	"context"
	"fmt"
	"sync"

	"go.uber.org/multierr"
	"go.uber.org/zap"

	"github.com/nicksmd/fu-marketplace-api/internal/domain/shared"
	"github.com/nicksmd/fu-marketplace-api/internal/domain/shop"
)

// IndexSyncHandler bridges committed shop mutations to asynchronous index
// maintenance. It subscribes to shop lifecycle events and enqueues the
// matching index job; for deletions it also releases the shop's stored
// images, concurrently with the enqueue.
type IndexSyncHandler struct {
	enqueuer IndexJobEnqueuer
	storage  ImageStorage
	logger   *zap.Logger
}

// NewIndexSyncHandler creates a new IndexSyncHandler
func NewIndexSyncHandler(enqueuer IndexJobEnqueuer, storage ImageStorage, logger *zap.Logger) *IndexSyncHandler {
	return &IndexSyncHandler{
		enqueuer: enqueuer,
		storage:  storage,
		logger:   logger,
	}
}

// EventTypes returns the event types this handler consumes
func (h *IndexSyncHandler) EventTypes() []string {
	return []string{shop.EventTypeShopUpdated, shop.EventTypeShopDeleted}
}

// Handle dispatches one shop lifecycle event
func (h *IndexSyncHandler) Handle(ctx context.Context, event shared.DomainEvent) error {
	switch e := event.(type) {
	case *shop.ShopUpdatedEvent:
		return h.handleUpdated(ctx, e)
	case *shop.ShopDeletedEvent:
		return h.handleDeleted(ctx, e)
	default:
		return nil
	}
}

func (h *IndexSyncHandler) handleUpdated(ctx context.Context, e *shop.ShopUpdatedEvent) error {
	if err := h.enqueuer.EnqueueUpdateShopIndex(ctx, e.ShopID); err != nil {
		h.logger.Error("failed to enqueue shop index update",
			zap.String("shop_id", e.ShopID.String()),
			zap.Int("version", e.Version),
			zap.Error(err),
		)
		return fmt.Errorf("enqueue shop index update: %w", err)
	}
	return nil
}

// handleDeleted releases the shop's stored images and enqueues the index-entry
// removal. The two cleanups are independent; a failure in one must not stop
// the other, so they run concurrently and the errors are aggregated.
func (h *IndexSyncHandler) handleDeleted(ctx context.Context, e *shop.ShopDeletedEvent) error {
	var wg sync.WaitGroup
	var mu sync.Mutex
	var errs error

	collect := func(err error) {
		if err == nil {
			return
		}
		mu.Lock()
		errs = multierr.Append(errs, err)
		mu.Unlock()
	}

	if len(e.FileVersions) > 0 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if err := h.storage.DeleteImages(ctx, e.FileVersions); err != nil {
				h.logger.Error("failed to delete shop images",
					zap.String("shop_id", e.ShopID.String()),
					zap.Error(err),
				)
				collect(fmt.Errorf("delete shop images: %w", err))
			}
		}()
	}

	wg.Add(1)
	go func() {
		defer wg.Done()
		if err := h.enqueuer.EnqueueDeleteShopIndex(ctx, e.ShopID); err != nil {
			h.logger.Error("failed to enqueue shop index deletion",
				zap.String("shop_id", e.ShopID.String()),
				zap.Error(err),
			)
			collect(fmt.Errorf("enqueue shop index deletion: %w", err))
		}
	}()

	wg.Wait()
	return errs
}
