package trade

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/nicksmd/fu-marketplace-api/internal/domain/identity"
	"github.com/nicksmd/fu-marketplace-api/internal/domain/shared"
	"github.com/nicksmd/fu-marketplace-api/internal/domain/shop"
	"github.com/nicksmd/fu-marketplace-api/internal/domain/trade"
)

// MockOrderRepository is a mock implementation of trade.OrderRepository
type MockOrderRepository struct {
	mock.Mock
}

func (m *MockOrderRepository) CreateFromRequest(ctx context.Context, shopID, userID uuid.UUID, shipAddress, note string, requested []trade.RequestedItem) (*trade.Order, error) {
	args := m.Called(ctx, shopID, userID, shipAddress, note, requested)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*trade.Order), args.Error(1)
}

func (m *MockOrderRepository) FindByID(ctx context.Context, id uuid.UUID) (*trade.Order, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*trade.Order), args.Error(1)
}

func (m *MockOrderRepository) ExistsByShopAndUser(ctx context.Context, shopID, userID uuid.UUID) (bool, error) {
	args := m.Called(ctx, shopID, userID)
	return args.Bool(0), args.Error(1)
}

func (m *MockOrderRepository) FindByShop(ctx context.Context, shopID uuid.UUID, filter shared.Filter) ([]trade.Order, error) {
	args := m.Called(ctx, shopID, filter)
	return args.Get(0).([]trade.Order), args.Error(1)
}

// MockShopRepository is a mock implementation of shop.ShopRepository
type MockShopRepository struct {
	mock.Mock
}

func (m *MockShopRepository) FindByID(ctx context.Context, id uuid.UUID) (*shop.Shop, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*shop.Shop), args.Error(1)
}

func (m *MockShopRepository) FindAll(ctx context.Context, filter shared.Filter) ([]shop.Shop, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]shop.Shop), args.Error(1)
}

func (m *MockShopRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockShopRepository) Save(ctx context.Context, s *shop.Shop) error {
	args := m.Called(ctx, s)
	return args.Error(0)
}

func (m *MockShopRepository) SaveWithLock(ctx context.Context, s *shop.Shop) error {
	args := m.Called(ctx, s)
	return args.Error(0)
}

func (m *MockShopRepository) ReplaceShipPlaces(ctx context.Context, s *shop.Shop, places []shop.ShipPlace) error {
	args := m.Called(ctx, s, places)
	return args.Error(0)
}

func (m *MockShopRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// MockNotificationRepository is a mock implementation of identity.NotificationRepository
type MockNotificationRepository struct {
	mock.Mock
}

func (m *MockNotificationRepository) CreateForSeller(ctx context.Context, orderID uuid.UUID, typ identity.NotificationType) error {
	args := m.Called(ctx, orderID, typ)
	return args.Error(0)
}

func (m *MockNotificationRepository) FindByUser(ctx context.Context, userID uuid.UUID, filter shared.Filter) ([]identity.UserNotification, error) {
	args := m.Called(ctx, userID, filter)
	return args.Get(0).([]identity.UserNotification), args.Error(1)
}

func createTestShop(t *testing.T) *shop.Shop {
	sh, err := shop.NewShop(uuid.New(), "Banh Mi Corner", "Fresh banh mi", "dorm A")
	require.NoError(t, err)
	sh.ClearDomainEvents()
	return sh
}

func createTestOrder(t *testing.T, shopID, userID uuid.UUID) *trade.Order {
	item, err := shop.NewItem(shopID, "banh mi", "classic", decimal.NewFromFloat(15000))
	require.NoError(t, err)
	item.Status = shop.ItemStatusForSale

	order, err := trade.NewOrder(userID, shopID, "dorm B, room 305", "",
		[]shop.Item{*item}, []trade.RequestedItem{{ItemID: item.ID, Quantity: 2}})
	require.NoError(t, err)
	return order
}

func TestOrderService_PlaceOrder(t *testing.T) {
	orderRepo := new(MockOrderRepository)
	shopRepo := new(MockShopRepository)
	notificationRepo := new(MockNotificationRepository)
	service := NewOrderService(orderRepo, shopRepo, notificationRepo, zap.NewNop())

	ctx := context.Background()
	sh := createTestShop(t)
	userID := uuid.New()
	order := createTestOrder(t, sh.ID, userID)

	req := PlaceOrderRequest{
		UserID:      userID,
		ShipAddress: "dorm B, room 305",
		Items:       []RequestedItemDTO{{ItemID: order.Lines[0].ItemID, Quantity: 2}},
	}

	shopRepo.On("FindByID", ctx, sh.ID).Return(sh, nil)
	orderRepo.On("CreateFromRequest", ctx, sh.ID, userID, "dorm B, room 305", "",
		ToRequestedItems(req.Items)).Return(order, nil)
	notificationRepo.On("CreateForSeller", ctx, order.ID, identity.NotificationUserPlaceOrder).Return(nil)

	result, err := service.PlaceOrder(ctx, sh.ID, req)

	require.NoError(t, err)
	assert.Equal(t, order.ID, result.ID)
	assert.Equal(t, trade.OrderStatusNew, result.Status)
	require.Len(t, result.Lines, 1)
	assert.Equal(t, 2, result.Lines[0].Quantity)
	orderRepo.AssertExpectations(t)
	notificationRepo.AssertExpectations(t)
}

func TestOrderService_PlaceOrder_MissingShipAddress(t *testing.T) {
	orderRepo := new(MockOrderRepository)
	shopRepo := new(MockShopRepository)
	service := NewOrderService(orderRepo, shopRepo, new(MockNotificationRepository), zap.NewNop())

	_, err := service.PlaceOrder(context.Background(), uuid.New(), PlaceOrderRequest{
		UserID: uuid.New(),
		Items:  []RequestedItemDTO{{ItemID: uuid.New()}},
	})

	require.Error(t, err)
	var domainErr *shared.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, "MISSING_SHIP_ADDRESS", domainErr.Code)
	shopRepo.AssertNotCalled(t, "FindByID", mock.Anything, mock.Anything)
	orderRepo.AssertNotCalled(t, "CreateFromRequest", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestOrderService_PlaceOrder_ShopNotFound(t *testing.T) {
	orderRepo := new(MockOrderRepository)
	shopRepo := new(MockShopRepository)
	service := NewOrderService(orderRepo, shopRepo, new(MockNotificationRepository), zap.NewNop())

	ctx := context.Background()
	shopID := uuid.New()
	shopRepo.On("FindByID", ctx, shopID).Return(nil, shop.ErrShopNotFound)

	_, err := service.PlaceOrder(ctx, shopID, PlaceOrderRequest{
		UserID:      uuid.New(),
		ShipAddress: "somewhere",
		Items:       []RequestedItemDTO{{ItemID: uuid.New()}},
	})

	assert.ErrorIs(t, err, shop.ErrShopNotFound)
}

func TestOrderService_PlaceOrder_NoItemResolves(t *testing.T) {
	orderRepo := new(MockOrderRepository)
	shopRepo := new(MockShopRepository)
	service := NewOrderService(orderRepo, shopRepo, new(MockNotificationRepository), zap.NewNop())

	ctx := context.Background()
	sh := createTestShop(t)

	shopRepo.On("FindByID", ctx, sh.ID).Return(sh, nil)
	orderRepo.On("CreateFromRequest", ctx, sh.ID, mock.Anything, mock.Anything, mock.Anything, mock.Anything).
		Return(nil, trade.ErrItemNotFound)

	_, err := service.PlaceOrder(ctx, sh.ID, PlaceOrderRequest{
		UserID:      uuid.New(),
		ShipAddress: "somewhere",
		Items:       []RequestedItemDTO{{ItemID: uuid.New()}},
	})

	assert.ErrorIs(t, err, trade.ErrItemNotFound)
}

func TestOrderService_PlaceOrder_NotificationFailureSurfaces(t *testing.T) {
	orderRepo := new(MockOrderRepository)
	shopRepo := new(MockShopRepository)
	notificationRepo := new(MockNotificationRepository)
	service := NewOrderService(orderRepo, shopRepo, notificationRepo, zap.NewNop())

	ctx := context.Background()
	sh := createTestShop(t)
	userID := uuid.New()
	order := createTestOrder(t, sh.ID, userID)

	shopRepo.On("FindByID", ctx, sh.ID).Return(sh, nil)
	orderRepo.On("CreateFromRequest", ctx, sh.ID, userID, mock.Anything, mock.Anything, mock.Anything).
		Return(order, nil)
	notificationRepo.On("CreateForSeller", ctx, order.ID, identity.NotificationUserPlaceOrder).
		Return(errors.New("order row vanished"))

	// The order is already committed when the notification fails; the caller
	// sees the error but no rollback happens.
	result, err := service.PlaceOrder(ctx, sh.ID, PlaceOrderRequest{
		UserID:      userID,
		ShipAddress: "dorm B, room 305",
		Items:       []RequestedItemDTO{{ItemID: order.Lines[0].ItemID}},
	})

	require.Error(t, err)
	assert.Nil(t, result)
	assert.Contains(t, err.Error(), "seller notification failed")
	orderRepo.AssertExpectations(t)
}

func TestOrderService_GetByID(t *testing.T) {
	orderRepo := new(MockOrderRepository)
	service := NewOrderService(orderRepo, new(MockShopRepository), new(MockNotificationRepository), zap.NewNop())

	ctx := context.Background()
	order := createTestOrder(t, uuid.New(), uuid.New())

	orderRepo.On("FindByID", ctx, order.ID).Return(order, nil)

	result, err := service.GetByID(ctx, order.ID)

	require.NoError(t, err)
	assert.Equal(t, order.ID, result.ID)
	assert.Equal(t, order.Lines[0].ItemName, result.Lines[0].ItemName)
}

func TestOrderService_GetByID_NotFound(t *testing.T) {
	orderRepo := new(MockOrderRepository)
	service := NewOrderService(orderRepo, new(MockShopRepository), new(MockNotificationRepository), zap.NewNop())

	ctx := context.Background()
	id := uuid.New()
	orderRepo.On("FindByID", ctx, id).Return(nil, trade.ErrOrderNotFound)

	_, err := service.GetByID(ctx, id)

	assert.ErrorIs(t, err, trade.ErrOrderNotFound)
}

func TestOrderService_ListByShop(t *testing.T) {
	orderRepo := new(MockOrderRepository)
	shopRepo := new(MockShopRepository)
	service := NewOrderService(orderRepo, shopRepo, new(MockNotificationRepository), zap.NewNop())

	ctx := context.Background()
	sh := createTestShop(t)
	order := createTestOrder(t, sh.ID, uuid.New())
	filter := shared.Filter{Page: 1, PageSize: 10}

	shopRepo.On("FindByID", ctx, sh.ID).Return(sh, nil)
	orderRepo.On("FindByShop", ctx, sh.ID, filter).Return([]trade.Order{*order}, nil)

	result, err := service.ListByShop(ctx, sh.ID, filter)

	require.NoError(t, err)
	require.Len(t, result, 1)
	assert.Equal(t, order.ID, result[0].ID)
}
