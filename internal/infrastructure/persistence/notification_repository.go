package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/nicksmd/fu-marketplace-api/internal/domain/identity"
	"github.com/nicksmd/fu-marketplace-api/internal/domain/shared"
	"github.com/nicksmd/fu-marketplace-api/internal/domain/shop"
	"github.com/nicksmd/fu-marketplace-api/internal/domain/trade"
)

// GormNotificationRepository implements identity.NotificationRepository using
// GORM
type GormNotificationRepository struct {
	db *gorm.DB
}

// NewGormNotificationRepository creates a new GormNotificationRepository
func NewGormNotificationRepository(db *gorm.DB) *GormNotificationRepository {
	return &GormNotificationRepository{db: db}
}

// CreateForSeller creates a notification for the owner of the shop the given
// order targets
func (r *GormNotificationRepository) CreateForSeller(ctx context.Context, orderID uuid.UUID, typ identity.NotificationType) error {
	var order trade.Order
	if err := r.db.WithContext(ctx).First(&order, "id = ?", orderID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return trade.ErrOrderNotFound
		}
		return err
	}

	var sh shop.Shop
	if err := r.db.WithContext(ctx).First(&sh, "id = ?", order.ShopID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return shop.ErrShopNotFound
		}
		return err
	}

	notification := identity.NewUserNotification(sh.OwnerID, typ, identity.NotificationData{
		OrderID: order.ID,
		ShopID:  sh.ID,
	})
	return r.db.WithContext(ctx).Create(notification).Error
}

// FindByUser finds a user's notifications newest first
func (r *GormNotificationRepository) FindByUser(ctx context.Context, userID uuid.UUID, filter shared.Filter) ([]identity.UserNotification, error) {
	var notifications []identity.UserNotification
	if err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Offset(filter.Offset()).
		Limit(filter.Limit()).
		Find(&notifications).Error; err != nil {
		return nil, err
	}
	return notifications, nil
}
