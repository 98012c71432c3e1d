package shop

import (
	"time"

	"github.com/google/uuid"

	"github.com/nicksmd/fu-marketplace-api/internal/domain/identity"
	"github.com/nicksmd/fu-marketplace-api/internal/domain/shop"
)

// CreateShopRequest is the payload for creating a shop
type CreateShopRequest struct {
	OwnerID     uuid.UUID `json:"ownerId" binding:"required"`
	Name        string    `json:"name" binding:"required,max=255"`
	Description string    `json:"description" binding:"required,max=255"`
	Address     string    `json:"address"`
}

// UpdateShopRequest is the payload for an admin shop update.
// Nil fields are left unchanged.
type UpdateShopRequest struct {
	Name        *string          `json:"name" binding:"omitempty,min=1,max=255"`
	Description *string          `json:"description" binding:"omitempty,min=1,max=255"`
	Opening     *bool            `json:"opening"`
	Banned      *bool            `json:"banned"`
	Address     *string          `json:"address"`
	Status      *shop.ShopStatus `json:"status"`
}

// SetShipPlacesRequest is the payload for replacing a shop's ship places
type SetShipPlacesRequest struct {
	ShipPlaces []uuid.UUID `json:"shipPlaces"`
}

// ReviewRequest is the payload for reviewing a shop
type ReviewRequest struct {
	UserID  *uuid.UUID `json:"userId"`
	Rate    *int       `json:"rate"`
	Comment string     `json:"comment"`
}

// ShopResponse is the API representation of a shop with denormalized related
// fields. File-version metadata stays internal.
type ShopResponse struct {
	ID          uuid.UUID            `json:"id"`
	Name        string               `json:"name"`
	Description string               `json:"description"`
	Avatar      string               `json:"avatar"`
	Cover       string               `json:"cover"`
	Opening     bool                 `json:"opening"`
	Banned      bool                 `json:"banned"`
	Address     string               `json:"address"`
	Status      shop.ShopStatus      `json:"status"`
	ShipPlaces  []uuid.UUID          `json:"shipPlaces"`
	Seller      *identity.SellerInfo `json:"seller,omitempty"`
	CreatedAt   time.Time            `json:"createdAt"`
	UpdatedAt   time.Time            `json:"updatedAt"`
}

// ToShopResponse converts a shop aggregate into its API representation
func ToShopResponse(s *shop.Shop) ShopResponse {
	resp := ShopResponse{
		ID:          s.ID,
		Name:        s.Name,
		Description: s.Description,
		Avatar:      s.Avatar,
		Cover:       s.Cover,
		Opening:     s.Opening,
		Banned:      s.Banned,
		Address:     s.Address,
		Status:      s.Status,
		ShipPlaces:  s.ShipPlaceIDs(),
		CreatedAt:   s.CreatedAt,
		UpdatedAt:   s.UpdatedAt,
	}
	if s.Owner != nil {
		seller := s.Owner.AllSellerInfo()
		resp.Seller = &seller
	}
	return resp
}

// ToShopResponses converts a slice of shops
func ToShopResponses(shops []shop.Shop) []ShopResponse {
	out := make([]ShopResponse, len(shops))
	for i := range shops {
		out[i] = ToShopResponse(&shops[i])
	}
	return out
}

// ReviewResponse is the API representation of a review
type ReviewResponse struct {
	ID        uuid.UUID `json:"id"`
	ShopID    uuid.UUID `json:"shopId"`
	UserID    uuid.UUID `json:"userId"`
	Rate      int       `json:"rate"`
	Comment   string    `json:"comment"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// ToReviewResponse converts a review into its API representation
func ToReviewResponse(r *shop.Review) ReviewResponse {
	return ReviewResponse{
		ID:        r.ID,
		ShopID:    r.ShopID,
		UserID:    r.UserID,
		Rate:      r.Rate,
		Comment:   r.Comment,
		CreatedAt: r.CreatedAt,
		UpdatedAt: r.UpdatedAt,
	}
}

// ToReviewResponses converts a slice of reviews into API representations
func ToReviewResponses(reviews []shop.Review) []ReviewResponse {
	out := make([]ReviewResponse, len(reviews))
	for i := range reviews {
		out[i] = ToReviewResponse(&reviews[i])
	}
	return out
}
