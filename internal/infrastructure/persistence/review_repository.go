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

// GormReviewRepository implements shop.ReviewRepository using GORM
type GormReviewRepository struct {
	db *gorm.DB
}

// NewGormReviewRepository creates a new GormReviewRepository
func NewGormReviewRepository(db *gorm.DB) *GormReviewRepository {
	return &GormReviewRepository{db: db}
}

// UpsertChecked verifies the user ordered from the shop at least once, then
// creates or overwrites the user's review of the shop. Check and write share
// one transaction so a concurrently removed order cannot slip a review
// through.
func (r *GormReviewRepository) UpsertChecked(ctx context.Context, shopID, userID uuid.UUID, rate int, comment string) (*shop.Review, error) {
	var review *shop.Review
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var orderCount int64
		if err := tx.Model(&trade.Order{}).
			Where("shop_id = ? AND user_id = ?", shopID, userID).
			Count(&orderCount).Error; err != nil {
			return err
		}
		if orderCount == 0 {
			return shop.ErrReviewNoPriorOrder
		}

		var existing shop.Review
		err := tx.Where("shop_id = ? AND user_id = ?", shopID, userID).First(&existing).Error
		switch {
		case err == nil:
			existing.Rate = rate
			existing.Comment = comment
			if err := tx.Save(&existing).Error; err != nil {
				return err
			}
			review = &existing
			return nil
		case errors.Is(err, gorm.ErrRecordNotFound):
			created := shop.NewReview(shopID, userID, rate, comment)
			if err := tx.Create(created).Error; err != nil {
				return err
			}
			review = created
			return nil
		default:
			return err
		}
	})
	if err != nil {
		return nil, err
	}
	return review, nil
}

// FindByShop finds the reviews of a shop newest first
func (r *GormReviewRepository) FindByShop(ctx context.Context, shopID uuid.UUID, filter shared.Filter) ([]shop.Review, error) {
	var reviews []shop.Review
	if err := r.db.WithContext(ctx).
		Where("shop_id = ?", shopID).
		Order("updated_at DESC").
		Offset(filter.Offset()).
		Limit(filter.Limit()).
		Find(&reviews).Error; err != nil {
		return nil, err
	}
	return reviews, nil
}
