package shop

import (
	"github.com/google/uuid"

	"github.com/nicksmd/fu-marketplace-api/internal/domain/shared"
)

// Accepted bounds for a review rate
const (
	MinReviewRate = 1
	MaxReviewRate = 5
)

// Review is a buyer's rating of a shop. A (shop, user) pair holds at most one
// review; repeated reviews overwrite rate and comment.
type Review struct {
	shared.BaseEntity
	ShopID  uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_reviews_shop_user" json:"shopId"`
	UserID  uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_reviews_shop_user" json:"userId"`
	Rate    int       `gorm:"not null" json:"rate"`
	Comment string    `json:"comment"`
}

// NewReview creates a new review for a shop
func NewReview(shopID, userID uuid.UUID, rate int, comment string) *Review {
	return &Review{
		BaseEntity: shared.NewBaseEntity(),
		ShopID:     shopID,
		UserID:     userID,
		Rate:       rate,
		Comment:    comment,
	}
}
