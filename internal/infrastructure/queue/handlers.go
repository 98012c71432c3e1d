package queue

import (
	"context"

	"github.com/google/uuid"
	"github.com/hibiken/asynq"
	"go.uber.org/zap"

	appshop "github.com/nicksmd/fu-marketplace-api/internal/application/shop"
)

// StalenessChecker answers whether a job stamp was superseded by a later
// enqueue. Implemented by StampFence.
type StalenessChecker interface {
	IsStale(ctx context.Context, shopID uuid.UUID, stamp int64) (bool, error)
}

// IndexTaskHandler processes index maintenance tasks. Both handlers are
// idempotent: the update recomputes the whole document and the delete
// tolerates an already-missing one, so a retry after a half-applied attempt
// is safe.
type IndexTaskHandler struct {
	indexer appshop.SearchIndexer
	fence   StalenessChecker
	logger  *zap.Logger
}

// NewIndexTaskHandler creates a new IndexTaskHandler
func NewIndexTaskHandler(indexer appshop.SearchIndexer, fence StalenessChecker, logger *zap.Logger) *IndexTaskHandler {
	return &IndexTaskHandler{
		indexer: indexer,
		fence:   fence,
		logger:  logger,
	}
}

// HandleUpdateShopIndex recomputes and pushes the shop's index document
func (h *IndexTaskHandler) HandleUpdateShopIndex(ctx context.Context, task *asynq.Task) error {
	payload, err := ParseIndexPayload(task)
	if err != nil {
		return err
	}

	stale, err := h.fence.IsStale(ctx, payload.ShopID, payload.Stamp)
	if err != nil {
		return err
	}
	if stale {
		h.logger.Info("skipping superseded index update",
			zap.String("shop_id", payload.ShopID.String()),
			zap.Int64("stamp", payload.Stamp),
		)
		return nil
	}

	if err := h.indexer.IndexShopByID(ctx, payload.ShopID); err != nil {
		h.logger.Error("shop index update failed",
			zap.String("shop_id", payload.ShopID.String()),
			zap.Int64("stamp", payload.Stamp),
			zap.Error(err),
		)
		return err
	}
	return nil
}

// HandleDeleteShopIndex removes the shop's index document
func (h *IndexTaskHandler) HandleDeleteShopIndex(ctx context.Context, task *asynq.Task) error {
	payload, err := ParseIndexPayload(task)
	if err != nil {
		return err
	}

	stale, err := h.fence.IsStale(ctx, payload.ShopID, payload.Stamp)
	if err != nil {
		return err
	}
	if stale {
		h.logger.Info("skipping superseded index deletion",
			zap.String("shop_id", payload.ShopID.String()),
			zap.Int64("stamp", payload.Stamp),
		)
		return nil
	}

	if err := h.indexer.DeleteShopIndexByID(ctx, payload.ShopID); err != nil {
		h.logger.Error("shop index deletion failed",
			zap.String("shop_id", payload.ShopID.String()),
			zap.Int64("stamp", payload.Stamp),
			zap.Error(err),
		)
		return err
	}
	return nil
}
