package shop

import (
	"context"

	"github.com/google/uuid"

	"github.com/nicksmd/fu-marketplace-api/internal/domain/shared"
)

// ShopRepository defines the interface for shop persistence
type ShopRepository interface {
	// FindByID finds a shop by ID with ship places and owner loaded
	FindByID(ctx context.Context, id uuid.UUID) (*Shop, error)

	// FindAll finds shops with pagination
	FindAll(ctx context.Context, filter shared.Filter) ([]Shop, error)

	// Count counts shops matching the filter
	Count(ctx context.Context, filter shared.Filter) (int64, error)

	// Save creates a new shop
	Save(ctx context.Context, s *Shop) error

	// SaveWithLock updates a shop with an optimistic version check
	SaveWithLock(ctx context.Context, s *Shop) error

	// ReplaceShipPlaces atomically replaces a shop's ship-place set
	ReplaceShipPlaces(ctx context.Context, s *Shop, places []ShipPlace) error

	// Delete removes a shop row
	Delete(ctx context.Context, id uuid.UUID) error
}

// ItemRepository defines the interface for item persistence
type ItemRepository interface {
	// FindSellableByIDs resolves the requested ids against the shop's
	// currently for-sale items
	FindSellableByIDs(ctx context.Context, shopID uuid.UUID, ids []uuid.UUID) ([]Item, error)

	// FindByShop finds all items of a shop
	FindByShop(ctx context.Context, shopID uuid.UUID) ([]Item, error)

	// Save creates or updates an item
	Save(ctx context.Context, item *Item) error
}

// ShipPlaceRepository defines the interface for ship-place persistence
type ShipPlaceRepository interface {
	// FindByIDs finds ship places by their ids
	FindByIDs(ctx context.Context, ids []uuid.UUID) ([]ShipPlace, error)

	// FindOrCreateByName finds a ship place by name, creating it if absent
	FindOrCreateByName(ctx context.Context, name string) (*ShipPlace, error)
}

// ReviewRepository defines the interface for review persistence
type ReviewRepository interface {
	// UpsertChecked runs the prior-order check and the find-or-create plus
	// rate/comment update inside one transaction, so a concurrently removed
	// order cannot slip a review through
	UpsertChecked(ctx context.Context, shopID, userID uuid.UUID, rate int, comment string) (*Review, error)

	// FindByShop finds the reviews of a shop
	FindByShop(ctx context.Context, shopID uuid.UUID, filter shared.Filter) ([]Review, error)
}
