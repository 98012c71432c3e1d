package shop

import (
	"context"

	"github.com/google/uuid"

	"github.com/nicksmd/fu-marketplace-api/internal/domain/shared"
	"github.com/nicksmd/fu-marketplace-api/internal/domain/shop"
)

// ReviewService handles buyer reviews of shops
type ReviewService struct {
	reviewRepo shop.ReviewRepository
	shopRepo   shop.ShopRepository
}

// NewReviewService creates a new ReviewService
func NewReviewService(reviewRepo shop.ReviewRepository, shopRepo shop.ShopRepository) *ReviewService {
	return &ReviewService{
		reviewRepo: reviewRepo,
		shopRepo:   shopRepo,
	}
}

// Submit records or replaces the user's review of the shop. The caller must
// have ordered from the shop at least once; the repository enforces that check
// and the one-review-per-user upsert inside a single transaction.
func (s *ReviewService) Submit(ctx context.Context, shopID uuid.UUID, req ReviewRequest) (*ReviewResponse, error) {
	if req.UserID == nil || *req.UserID == uuid.Nil {
		return nil, shop.ErrReviewMissingUser
	}
	if req.Rate == nil {
		return nil, shop.ErrReviewMissingRate
	}
	if *req.Rate < shop.MinReviewRate || *req.Rate > shop.MaxReviewRate {
		return nil, shared.NewValidationError("INVALID_RATE",
			"Review rate must be between 1 and 5")
	}

	if _, err := s.shopRepo.FindByID(ctx, shopID); err != nil {
		return nil, err
	}

	review, err := s.reviewRepo.UpsertChecked(ctx, shopID, *req.UserID, *req.Rate, req.Comment)
	if err != nil {
		return nil, err
	}

	resp := ToReviewResponse(review)
	return &resp, nil
}

// ListByShop retrieves the shop's reviews with pagination
func (s *ReviewService) ListByShop(ctx context.Context, shopID uuid.UUID, filter shared.Filter) ([]ReviewResponse, error) {
	if _, err := s.shopRepo.FindByID(ctx, shopID); err != nil {
		return nil, err
	}
	reviews, err := s.reviewRepo.FindByShop(ctx, shopID, filter)
	if err != nil {
		return nil, err
	}
	return ToReviewResponses(reviews), nil
}
