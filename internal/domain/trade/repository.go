package trade

import (
	"context"

	"github.com/google/uuid"

	"github.com/nicksmd/fu-marketplace-api/internal/domain/shared"
)

// ErrOrderNotFound is returned when an order id does not resolve
var ErrOrderNotFound = shared.NewNotFoundError("ORDER_NOT_FOUND", "Order does not exist")

// OrderRepository defines the interface for order persistence
type OrderRepository interface {
	// CreateFromRequest resolves the requested items against the shop's
	// sellable inventory and persists the order with its line snapshots, all
	// inside one transaction. Returns ErrItemNotFound and writes nothing when
	// no requested item resolves. No partial order is ever visible to
	// readers.
	CreateFromRequest(ctx context.Context, shopID, userID uuid.UUID, shipAddress, note string, requested []RequestedItem) (*Order, error)

	// FindByID finds an order by ID with its lines loaded
	FindByID(ctx context.Context, id uuid.UUID) (*Order, error)

	// ExistsByShopAndUser reports whether the user has ever ordered from the
	// shop
	ExistsByShopAndUser(ctx context.Context, shopID, userID uuid.UUID) (bool, error)

	// FindByShop finds a shop's orders
	FindByShop(ctx context.Context, shopID uuid.UUID, filter shared.Filter) ([]Order, error)
}
