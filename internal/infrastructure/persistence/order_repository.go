package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/nicksmd/fu-marketplace-api/internal/domain/shared"
	"github.com/nicksmd/fu-marketplace-api/internal/domain/shop"
	"github.com/nicksmd/fu-marketplace-api/internal/domain/trade"
)

// GormOrderRepository implements trade.OrderRepository using GORM
type GormOrderRepository struct {
	db *gorm.DB
}

// NewGormOrderRepository creates a new GormOrderRepository
func NewGormOrderRepository(db *gorm.DB) *GormOrderRepository {
	return &GormOrderRepository{db: db}
}

// CreateFromRequest resolves the requested items and persists the order with
// its line snapshots inside one transaction. When no requested item resolves
// the transaction rolls back and nothing is written.
func (r *GormOrderRepository) CreateFromRequest(ctx context.Context, shopID, userID uuid.UUID, shipAddress, note string, requested []trade.RequestedItem) (*trade.Order, error) {
	var order *trade.Order
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		ids := make([]uuid.UUID, len(requested))
		for i, req := range requested {
			ids[i] = req.ItemID
		}

		var resolved []shop.Item
		if len(ids) > 0 {
			if err := tx.
				Where("shop_id = ? AND status = ? AND id IN ?", shopID, shop.ItemStatusForSale, ids).
				Find(&resolved).Error; err != nil {
				return err
			}
		}

		var err error
		order, err = trade.NewOrder(userID, shopID, shipAddress, note, resolved, requested)
		if err != nil {
			return err
		}

		return tx.Create(order).Error
	})
	if err != nil {
		return nil, err
	}
	return order, nil
}

// FindByID finds an order by ID with its lines loaded
func (r *GormOrderRepository) FindByID(ctx context.Context, id uuid.UUID) (*trade.Order, error) {
	var order trade.Order
	if err := r.db.WithContext(ctx).
		Preload("Lines").
		First(&order, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, trade.ErrOrderNotFound
		}
		return nil, err
	}
	return &order, nil
}

// ExistsByShopAndUser reports whether the user has ever ordered from the shop
func (r *GormOrderRepository) ExistsByShopAndUser(ctx context.Context, shopID, userID uuid.UUID) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&trade.Order{}).
		Where("shop_id = ? AND user_id = ?", shopID, userID).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// FindByShop finds a shop's orders newest first
func (r *GormOrderRepository) FindByShop(ctx context.Context, shopID uuid.UUID, filter shared.Filter) ([]trade.Order, error) {
	var orders []trade.Order
	if err := r.db.WithContext(ctx).
		Preload("Lines").
		Where("shop_id = ?", shopID).
		Order("created_at DESC").
		Offset(filter.Offset()).
		Limit(filter.Limit()).
		Find(&orders).Error; err != nil {
		return nil, err
	}
	return orders, nil
}
