package shop

import (
	"context"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/nicksmd/fu-marketplace-api/internal/domain/shop"
)

// CreateItemRequest is the payload for listing a new item in a shop
type CreateItemRequest struct {
	Name        string          `json:"name" binding:"required,max=255"`
	Description string          `json:"description"`
	Price       decimal.Decimal `json:"price" binding:"required"`
	Image       string          `json:"image"`
	Sort        int             `json:"sort"`
}

// UpdateItemRequest is the payload for updating an item.
// Nil fields are left unchanged.
type UpdateItemRequest struct {
	Name        *string          `json:"name" binding:"omitempty,min=1,max=255"`
	Description *string          `json:"description"`
	Price       *decimal.Decimal `json:"price"`
	Image       *string          `json:"image"`
	Sort        *int             `json:"sort"`
	Status      *shop.ItemStatus `json:"status" binding:"omitempty,oneof=0 1"`
}

// ItemService handles shop item operations. Item changes feed the shop's
// search document, so every committed write enqueues a shop index update.
type ItemService struct {
	itemRepo shop.ItemRepository
	shopRepo shop.ShopRepository
	enqueuer IndexJobEnqueuer
	logger   *zap.Logger
}

// NewItemService creates a new ItemService
func NewItemService(itemRepo shop.ItemRepository, shopRepo shop.ShopRepository, enqueuer IndexJobEnqueuer, logger *zap.Logger) *ItemService {
	return &ItemService{
		itemRepo: itemRepo,
		shopRepo: shopRepo,
		enqueuer: enqueuer,
		logger:   logger,
	}
}

// Create lists a new item in the shop. New items start NOT_FOR_SALE.
func (s *ItemService) Create(ctx context.Context, shopID uuid.UUID, req CreateItemRequest) (*shop.Item, error) {
	if _, err := s.shopRepo.FindByID(ctx, shopID); err != nil {
		return nil, err
	}

	item, err := shop.NewItem(shopID, req.Name, req.Description, req.Price)
	if err != nil {
		return nil, err
	}
	item.Image = req.Image
	item.Sort = req.Sort

	if err := s.itemRepo.Save(ctx, item); err != nil {
		return nil, err
	}
	s.enqueueShopIndex(ctx, shopID)
	return item, nil
}

// Update applies changes to an existing item of the shop
func (s *ItemService) Update(ctx context.Context, shopID, itemID uuid.UUID, req UpdateItemRequest) (*shop.Item, error) {
	items, err := s.itemRepo.FindByShop(ctx, shopID)
	if err != nil {
		return nil, err
	}

	var item *shop.Item
	for i := range items {
		if items[i].ID == itemID {
			item = &items[i]
			break
		}
	}
	if item == nil {
		return nil, shop.ErrItemMissing
	}

	if req.Name != nil {
		item.Name = *req.Name
	}
	if req.Description != nil {
		item.Description = *req.Description
	}
	if req.Price != nil {
		item.Price = *req.Price
	}
	if req.Image != nil {
		item.Image = *req.Image
	}
	if req.Sort != nil {
		item.Sort = *req.Sort
	}
	if req.Status != nil {
		item.Status = *req.Status
	}

	if err := s.itemRepo.Save(ctx, item); err != nil {
		return nil, err
	}
	s.enqueueShopIndex(ctx, shopID)
	return item, nil
}

// ListByShop retrieves all items of a shop
func (s *ItemService) ListByShop(ctx context.Context, shopID uuid.UUID) ([]shop.Item, error) {
	if _, err := s.shopRepo.FindByID(ctx, shopID); err != nil {
		return nil, err
	}
	return s.itemRepo.FindByShop(ctx, shopID)
}

// enqueueShopIndex schedules a shop index refresh after an item write. The
// item row is already durable, so a queue failure is logged, not surfaced.
func (s *ItemService) enqueueShopIndex(ctx context.Context, shopID uuid.UUID) {
	if err := s.enqueuer.EnqueueUpdateShopIndex(ctx, shopID); err != nil {
		s.logger.Error("failed to enqueue shop index update after item write",
			zap.String("shop_id", shopID.String()),
			zap.Error(err),
		)
	}
}
