package trade

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/nicksmd/fu-marketplace-api/internal/domain/identity"
	"github.com/nicksmd/fu-marketplace-api/internal/domain/shared"
	"github.com/nicksmd/fu-marketplace-api/internal/domain/shop"
	"github.com/nicksmd/fu-marketplace-api/internal/domain/trade"
)

// OrderService handles order business operations
type OrderService struct {
	orderRepo        trade.OrderRepository
	shopRepo         shop.ShopRepository
	notificationRepo identity.NotificationRepository
	logger           *zap.Logger
}

// NewOrderService creates a new OrderService
func NewOrderService(orderRepo trade.OrderRepository, shopRepo shop.ShopRepository, notificationRepo identity.NotificationRepository, logger *zap.Logger) *OrderService {
	return &OrderService{
		orderRepo:        orderRepo,
		shopRepo:         shopRepo,
		notificationRepo: notificationRepo,
		logger:           logger,
	}
}

// PlaceOrder places an order at the given shop. Item resolution and the order
// write happen in one transaction; the seller notification runs after commit,
// and its failure surfaces to the caller while the order stays durable.
func (s *OrderService) PlaceOrder(ctx context.Context, shopID uuid.UUID, req PlaceOrderRequest) (*OrderResponse, error) {
	if req.ShipAddress == "" {
		return nil, shared.NewValidationError("MISSING_SHIP_ADDRESS", "Must provide shipAddress when place order")
	}

	if _, err := s.shopRepo.FindByID(ctx, shopID); err != nil {
		return nil, err
	}

	order, err := s.orderRepo.CreateFromRequest(ctx, shopID, req.UserID, req.ShipAddress, req.Note, ToRequestedItems(req.Items))
	if err != nil {
		return nil, err
	}

	if err := s.notificationRepo.CreateForSeller(ctx, order.ID, identity.NotificationUserPlaceOrder); err != nil {
		s.logger.Error("order placed but seller notification failed",
			zap.String("order_id", order.ID.String()),
			zap.String("shop_id", shopID.String()),
			zap.Error(err),
		)
		return nil, fmt.Errorf("order placed but seller notification failed: %w", err)
	}

	resp := ToOrderResponse(order)
	return &resp, nil
}

// GetByID retrieves an order with its line snapshots
func (s *OrderService) GetByID(ctx context.Context, orderID uuid.UUID) (*OrderResponse, error) {
	order, err := s.orderRepo.FindByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	resp := ToOrderResponse(order)
	return &resp, nil
}

// ListByShop retrieves a shop's orders with pagination
func (s *OrderService) ListByShop(ctx context.Context, shopID uuid.UUID, filter shared.Filter) ([]OrderResponse, error) {
	if _, err := s.shopRepo.FindByID(ctx, shopID); err != nil {
		return nil, err
	}
	orders, err := s.orderRepo.FindByShop(ctx, shopID, filter)
	if err != nil {
		return nil, err
	}
	return ToOrderResponses(orders), nil
}
