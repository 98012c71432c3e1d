package shop

import (
	"context"
	"errors"
	"io"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/nicksmd/fu-marketplace-api/internal/domain/shared"
	"github.com/nicksmd/fu-marketplace-api/internal/domain/shop"
)

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

// MockShipPlaceRepository is a mock implementation of shop.ShipPlaceRepository
type MockShipPlaceRepository struct {
	mock.Mock
}

func (m *MockShipPlaceRepository) FindByIDs(ctx context.Context, ids []uuid.UUID) ([]shop.ShipPlace, error) {
	args := m.Called(ctx, ids)
	return args.Get(0).([]shop.ShipPlace), args.Error(1)
}

func (m *MockShipPlaceRepository) FindOrCreateByName(ctx context.Context, name string) (*shop.ShipPlace, error) {
	args := m.Called(ctx, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*shop.ShipPlace), args.Error(1)
}

// MockSearchIndexer is a mock implementation of SearchIndexer
type MockSearchIndexer struct {
	mock.Mock
}

func (m *MockSearchIndexer) IndexShopByID(ctx context.Context, shopID uuid.UUID) error {
	args := m.Called(ctx, shopID)
	return args.Error(0)
}

func (m *MockSearchIndexer) DeleteShopIndexByID(ctx context.Context, shopID uuid.UUID) error {
	args := m.Called(ctx, shopID)
	return args.Error(0)
}

// MockImageStorage is a mock implementation of ImageStorage
type MockImageStorage struct {
	mock.Mock
}

func (m *MockImageStorage) UploadWithVersions(ctx context.Context, cfg UploadConfig, body io.Reader) ([]shop.ImageVersion, error) {
	args := m.Called(ctx, cfg, body)
	return args.Get(0).([]shop.ImageVersion), args.Error(1)
}

func (m *MockImageStorage) DeleteImages(ctx context.Context, versions []shop.ImageVersion) error {
	args := m.Called(ctx, versions)
	return args.Error(0)
}

// MockEventPublisher is a mock implementation of shared.EventPublisher
type MockEventPublisher struct {
	mock.Mock
}

func (m *MockEventPublisher) Publish(ctx context.Context, events ...shared.DomainEvent) error {
	args := m.Called(ctx, events)
	return args.Error(0)
}

func newShopService(shopRepo *MockShopRepository, shipPlaceRepo *MockShipPlaceRepository, indexer *MockSearchIndexer, storage *MockImageStorage, publisher *MockEventPublisher) *ShopService {
	return NewShopService(shopRepo, shipPlaceRepo, indexer, storage, publisher, zap.NewNop())
}

func newPersistedShop(t *testing.T) *shop.Shop {
	s, err := shop.NewShop(uuid.New(), "Banh Mi Corner", "Fresh banh mi near dorm A", "dorm A")
	require.NoError(t, err)
	s.ClearDomainEvents()
	return s
}

func TestShopService_Create_IndexesSynchronously(t *testing.T) {
	shopRepo := new(MockShopRepository)
	indexer := new(MockSearchIndexer)
	service := newShopService(shopRepo, nil, indexer, nil, nil)

	ctx := context.Background()
	req := CreateShopRequest{
		OwnerID:     uuid.New(),
		Name:        "Banh Mi Corner",
		Description: "Fresh banh mi",
		Address:     "dorm A",
	}

	var createdID uuid.UUID
	shopRepo.On("Save", ctx, mock.AnythingOfType("*shop.Shop")).Run(func(args mock.Arguments) {
		createdID = args.Get(1).(*shop.Shop).ID
	}).Return(nil)
	indexer.On("IndexShopByID", ctx, mock.AnythingOfType("uuid.UUID")).Return(nil)
	shopRepo.On("FindByID", ctx, mock.AnythingOfType("uuid.UUID")).Return(&shop.Shop{}, nil).Run(func(args mock.Arguments) {
		assert.Equal(t, createdID, args.Get(1).(uuid.UUID))
	})

	result, err := service.Create(ctx, req)

	require.NoError(t, err)
	require.NotNil(t, result)
	shopRepo.AssertExpectations(t)
	indexer.AssertExpectations(t)
}

func TestShopService_Create_IndexFailureSurfaces(t *testing.T) {
	shopRepo := new(MockShopRepository)
	indexer := new(MockSearchIndexer)
	service := newShopService(shopRepo, nil, indexer, nil, nil)

	ctx := context.Background()
	req := CreateShopRequest{
		OwnerID:     uuid.New(),
		Name:        "Banh Mi Corner",
		Description: "Fresh banh mi",
	}

	shopRepo.On("Save", ctx, mock.AnythingOfType("*shop.Shop")).Return(nil)
	indexer.On("IndexShopByID", ctx, mock.AnythingOfType("uuid.UUID")).Return(errors.New("search cluster down"))

	result, err := service.Create(ctx, req)

	require.Error(t, err)
	assert.Nil(t, result)
	assert.Contains(t, err.Error(), "initial indexing failed")
	// The row was saved before indexing; no delete is attempted.
	shopRepo.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
	shopRepo.AssertExpectations(t)
}

func TestShopService_Create_InvalidInput(t *testing.T) {
	service := newShopService(new(MockShopRepository), nil, nil, nil, nil)

	_, err := service.Create(context.Background(), CreateShopRequest{OwnerID: uuid.New(), Name: "", Description: "d"})
	require.Error(t, err)

	var domainErr *shared.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, "INVALID_NAME", domainErr.Code)
}

func TestShopService_Update_PublishesAfterCommit(t *testing.T) {
	shopRepo := new(MockShopRepository)
	publisher := new(MockEventPublisher)
	service := newShopService(shopRepo, nil, nil, nil, publisher)

	ctx := context.Background()
	sh := newPersistedShop(t)
	name := "Pho Corner"

	shopRepo.On("FindByID", ctx, sh.ID).Return(sh, nil)
	shopRepo.On("SaveWithLock", ctx, sh).Return(nil)
	publisher.On("Publish", ctx, mock.Anything).Return(nil)

	result, err := service.Update(ctx, sh.ID, UpdateShopRequest{Name: &name})

	require.NoError(t, err)
	assert.Equal(t, "Pho Corner", result.Name)
	assert.Empty(t, sh.GetDomainEvents())
	publisher.AssertExpectations(t)
}

func TestShopService_Update_ConcurrencyConflict(t *testing.T) {
	shopRepo := new(MockShopRepository)
	publisher := new(MockEventPublisher)
	service := newShopService(shopRepo, nil, nil, nil, publisher)

	ctx := context.Background()
	sh := newPersistedShop(t)
	name := "Pho Corner"

	shopRepo.On("FindByID", ctx, sh.ID).Return(sh, nil)
	shopRepo.On("SaveWithLock", ctx, sh).Return(shared.ErrConcurrency)

	_, err := service.Update(ctx, sh.ID, UpdateShopRequest{Name: &name})

	assert.ErrorIs(t, err, shared.ErrConcurrency)
	publisher.AssertNotCalled(t, "Publish", mock.Anything, mock.Anything)
}

func TestShopService_Update_PublishFailureDoesNotSurface(t *testing.T) {
	shopRepo := new(MockShopRepository)
	publisher := new(MockEventPublisher)
	service := newShopService(shopRepo, nil, nil, nil, publisher)

	ctx := context.Background()
	sh := newPersistedShop(t)
	opening := true

	shopRepo.On("FindByID", ctx, sh.ID).Return(sh, nil)
	shopRepo.On("SaveWithLock", ctx, sh).Return(nil)
	publisher.On("Publish", ctx, mock.Anything).Return(errors.New("bus unavailable"))

	result, err := service.Update(ctx, sh.ID, UpdateShopRequest{Opening: &opening})

	require.NoError(t, err)
	assert.True(t, result.Opening)
}

func TestShopService_SetShipPlaces(t *testing.T) {
	shopRepo := new(MockShopRepository)
	shipPlaceRepo := new(MockShipPlaceRepository)
	indexer := new(MockSearchIndexer)
	service := newShopService(shopRepo, shipPlaceRepo, indexer, nil, nil)

	ctx := context.Background()
	sh := newPersistedShop(t)
	place, err := shop.NewShipPlace("Dorm A")
	require.NoError(t, err)
	ids := []uuid.UUID{place.ID}

	shopRepo.On("FindByID", ctx, sh.ID).Return(sh, nil)
	shipPlaceRepo.On("FindByIDs", ctx, ids).Return([]shop.ShipPlace{*place}, nil)
	shopRepo.On("ReplaceShipPlaces", ctx, sh, []shop.ShipPlace{*place}).Return(nil)
	indexer.On("IndexShopByID", ctx, sh.ID).Return(nil)

	_, err = service.SetShipPlaces(ctx, sh.ID, ids)

	require.NoError(t, err)
	shopRepo.AssertExpectations(t)
	indexer.AssertExpectations(t)
}

func TestShopService_SetShipPlaces_ReindexFailure(t *testing.T) {
	shopRepo := new(MockShopRepository)
	shipPlaceRepo := new(MockShipPlaceRepository)
	indexer := new(MockSearchIndexer)
	service := newShopService(shopRepo, shipPlaceRepo, indexer, nil, nil)

	ctx := context.Background()
	sh := newPersistedShop(t)

	shopRepo.On("FindByID", ctx, sh.ID).Return(sh, nil)
	shipPlaceRepo.On("FindByIDs", ctx, mock.Anything).Return([]shop.ShipPlace{}, nil)
	shopRepo.On("ReplaceShipPlaces", ctx, sh, mock.Anything).Return(nil)
	indexer.On("IndexShopByID", ctx, sh.ID).Return(errors.New("search cluster down"))

	result, err := service.SetShipPlaces(ctx, sh.ID, nil)

	// The replacement stays committed; only the index projection is stale.
	assert.ErrorIs(t, err, ErrReindexFailed)
	assert.Nil(t, result)
	assert.Equal(t, 502, ErrReindexFailed.Status)
	shopRepo.AssertExpectations(t)
}

func TestShopService_UploadAvatar(t *testing.T) {
	shopRepo := new(MockShopRepository)
	storage := new(MockImageStorage)
	publisher := new(MockEventPublisher)
	service := newShopService(shopRepo, nil, nil, storage, publisher)

	ctx := context.Background()
	sh := newPersistedShop(t)
	stored := []shop.ImageVersion{{URL: "https://cdn.example.com/shops/avatar.jpg", Key: "shops/avatar.jpg"}}

	shopRepo.On("FindByID", ctx, sh.ID).Return(sh, nil)
	storage.On("UploadWithVersions", ctx, mock.MatchedBy(func(cfg UploadConfig) bool {
		return cfg.MaxFileSize == shop.MaxAvatarSize && len(cfg.Versions) == 1 && cfg.Versions[0].Resize == "200x200"
	}), mock.Anything).Return(stored, nil)
	shopRepo.On("SaveWithLock", ctx, sh).Return(nil)
	publisher.On("Publish", ctx, mock.Anything).Return(nil)

	_, err := service.UploadAvatar(ctx, sh.ID, nil, "image/jpeg")

	require.NoError(t, err)
	require.NotNil(t, sh.AvatarFile)
	assert.Equal(t, stored, sh.AvatarFile.Versions)
	// Public URL carries a cache-busting query suffix.
	assert.Contains(t, sh.Avatar, stored[0].URL+"?")
	storage.AssertExpectations(t)
}

func TestShopService_Delete_PublishesDeletedEvent(t *testing.T) {
	shopRepo := new(MockShopRepository)
	publisher := new(MockEventPublisher)
	service := newShopService(shopRepo, nil, nil, nil, publisher)

	ctx := context.Background()
	sh := newPersistedShop(t)

	shopRepo.On("FindByID", ctx, sh.ID).Return(sh, nil)
	shopRepo.On("Delete", ctx, sh.ID).Return(nil)
	publisher.On("Publish", ctx, mock.MatchedBy(func(events []shared.DomainEvent) bool {
		if len(events) != 1 {
			return false
		}
		deleted, ok := events[0].(*shop.ShopDeletedEvent)
		return ok && deleted.ShopID == sh.ID
	})).Return(nil)

	err := service.Delete(ctx, sh.ID)

	require.NoError(t, err)
	publisher.AssertExpectations(t)
}

func TestShopService_Delete_NotFound(t *testing.T) {
	shopRepo := new(MockShopRepository)
	service := newShopService(shopRepo, nil, nil, nil, new(MockEventPublisher))

	ctx := context.Background()
	id := uuid.New()
	shopRepo.On("FindByID", ctx, id).Return(nil, shop.ErrShopNotFound)

	err := service.Delete(ctx, id)

	assert.ErrorIs(t, err, shop.ErrShopNotFound)
	shopRepo.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
}
