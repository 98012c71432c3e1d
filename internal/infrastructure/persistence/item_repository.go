package persistence

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/nicksmd/fu-marketplace-api/internal/domain/shop"
)

// GormItemRepository implements shop.ItemRepository using GORM
type GormItemRepository struct {
	db *gorm.DB
}

// NewGormItemRepository creates a new GormItemRepository
func NewGormItemRepository(db *gorm.DB) *GormItemRepository {
	return &GormItemRepository{db: db}
}

// FindSellableByIDs resolves the requested ids against the shop's currently
// for-sale items. Unknown ids and not-for-sale items are silently dropped.
func (r *GormItemRepository) FindSellableByIDs(ctx context.Context, shopID uuid.UUID, ids []uuid.UUID) ([]shop.Item, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	var items []shop.Item
	if err := r.db.WithContext(ctx).
		Where("shop_id = ? AND status = ? AND id IN ?", shopID, shop.ItemStatusForSale, ids).
		Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

// FindByShop finds all items of a shop ordered for display
func (r *GormItemRepository) FindByShop(ctx context.Context, shopID uuid.UUID) ([]shop.Item, error) {
	var items []shop.Item
	if err := r.db.WithContext(ctx).
		Where("shop_id = ?", shopID).
		Order("sort ASC, created_at ASC").
		Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

// Save creates or updates an item
func (r *GormItemRepository) Save(ctx context.Context, item *shop.Item) error {
	return r.db.WithContext(ctx).Save(item).Error
}
