package shop

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/nicksmd/fu-marketplace-api/internal/domain/shared"
	"github.com/nicksmd/fu-marketplace-api/internal/domain/shop"
)

// ErrReindexFailed reports a reindex failure after the primary write already
// committed. The write is durable; only the index projection is stale.
var ErrReindexFailed = shared.NewDomainError(http.StatusBadGateway, shared.KindJob,
	"REINDEX_FAILED", "Shop was updated but search reindexing failed")

// ShopService handles shop business operations. Mutations commit first, then
// fan out index maintenance through the event bus.
type ShopService struct {
	shopRepo      shop.ShopRepository
	shipPlaceRepo shop.ShipPlaceRepository
	indexer       SearchIndexer
	storage       ImageStorage
	publisher     shared.EventPublisher
	logger        *zap.Logger
}

// NewShopService creates a new ShopService
func NewShopService(shopRepo shop.ShopRepository, shipPlaceRepo shop.ShipPlaceRepository, indexer SearchIndexer, storage ImageStorage, publisher shared.EventPublisher, logger *zap.Logger) *ShopService {
	return &ShopService{
		shopRepo:      shopRepo,
		shipPlaceRepo: shipPlaceRepo,
		indexer:       indexer,
		storage:       storage,
		publisher:     publisher,
		logger:        logger,
	}
}

// Create creates a new shop and indexes it synchronously. An indexing failure
// surfaces to the creator; the committed row stays.
func (s *ShopService) Create(ctx context.Context, req CreateShopRequest) (*ShopResponse, error) {
	sh, err := shop.NewShop(req.OwnerID, req.Name, req.Description, req.Address)
	if err != nil {
		return nil, err
	}

	if err := s.shopRepo.Save(ctx, sh); err != nil {
		return nil, err
	}
	sh.ClearDomainEvents()

	// A freshly created shop must be searchable after one round-trip, so the
	// first index write does not go through the queue.
	if err := s.indexer.IndexShopByID(ctx, sh.ID); err != nil {
		return nil, fmt.Errorf("shop created but initial indexing failed: %w", err)
	}

	resp, err := s.response(ctx, sh.ID)
	if err != nil {
		return nil, err
	}
	return resp, nil
}

// GetByID retrieves a shop by ID
func (s *ShopService) GetByID(ctx context.Context, shopID uuid.UUID) (*ShopResponse, error) {
	return s.response(ctx, shopID)
}

// List retrieves shops with pagination
func (s *ShopService) List(ctx context.Context, filter shared.Filter) ([]ShopResponse, error) {
	shops, err := s.shopRepo.FindAll(ctx, filter)
	if err != nil {
		return nil, err
	}
	return ToShopResponses(shops), nil
}

// Update applies an admin update and enqueues a reindex job after commit
func (s *ShopService) Update(ctx context.Context, shopID uuid.UUID, req UpdateShopRequest) (*ShopResponse, error) {
	sh, err := s.shopRepo.FindByID(ctx, shopID)
	if err != nil {
		return nil, err
	}

	if err := sh.Update(shop.UpdateParams{
		Name:        req.Name,
		Description: req.Description,
		Opening:     req.Opening,
		Banned:      req.Banned,
		Address:     req.Address,
		Status:      req.Status,
	}); err != nil {
		return nil, err
	}

	if err := s.shopRepo.SaveWithLock(ctx, sh); err != nil {
		return nil, err
	}
	s.publishEvents(ctx, sh)

	return s.response(ctx, shopID)
}

// UploadAvatar stores the avatar renditions and updates the shop
func (s *ShopService) UploadAvatar(ctx context.Context, shopID uuid.UUID, body io.Reader, contentType string) (*ShopResponse, error) {
	return s.uploadImage(ctx, shopID, body, UploadConfig{
		MaxFileSize: shop.MaxAvatarSize,
		ContentType: contentType,
		Versions: []UploadVersion{
			{Resize: "200x200", Crop: "200x200", Quality: 90, FileName: fmt.Sprintf("shops/%s/avatar", shopID)},
		},
	}, (*shop.Shop).SetAvatarUpload)
}

// UploadCover stores the cover renditions and updates the shop
func (s *ShopService) UploadCover(ctx context.Context, shopID uuid.UUID, body io.Reader, contentType string) (*ShopResponse, error) {
	return s.uploadImage(ctx, shopID, body, UploadConfig{
		MaxFileSize: shop.MaxCoverSize,
		ContentType: contentType,
		Versions: []UploadVersion{
			{Resize: "850x250", Crop: "850x250", Quality: 90, FileName: fmt.Sprintf("shops/%s/cover", shopID)},
		},
	}, (*shop.Shop).SetCoverUpload)
}

func (s *ShopService) uploadImage(ctx context.Context, shopID uuid.UUID, body io.Reader, cfg UploadConfig, apply func(*shop.Shop, string, []shop.ImageVersion)) (*ShopResponse, error) {
	sh, err := s.shopRepo.FindByID(ctx, shopID)
	if err != nil {
		return nil, err
	}

	versions, err := s.storage.UploadWithVersions(ctx, cfg, body)
	if err != nil {
		return nil, err
	}
	if len(versions) == 0 {
		return nil, shared.NewValidationError("UPLOAD_FAILED", "Image upload produced no stored versions")
	}

	// Cache-bust the public URL so clients pick up the replaced image.
	url := fmt.Sprintf("%s?%d", versions[0].URL, time.Now().UnixMilli())
	apply(sh, url, versions)

	if err := s.shopRepo.SaveWithLock(ctx, sh); err != nil {
		return nil, err
	}
	s.publishEvents(ctx, sh)

	return s.response(ctx, shopID)
}

// SetShipPlaces replaces the shop's ship-place set and reindexes. A reindex
// failure after the committed replacement is reported as ErrReindexFailed and
// never rolls the association back.
func (s *ShopService) SetShipPlaces(ctx context.Context, shopID uuid.UUID, shipPlaceIDs []uuid.UUID) (*ShopResponse, error) {
	sh, err := s.shopRepo.FindByID(ctx, shopID)
	if err != nil {
		return nil, err
	}

	places, err := s.shipPlaceRepo.FindByIDs(ctx, shipPlaceIDs)
	if err != nil {
		return nil, err
	}

	if err := s.shopRepo.ReplaceShipPlaces(ctx, sh, places); err != nil {
		return nil, err
	}

	if err := s.indexer.IndexShopByID(ctx, sh.ID); err != nil {
		s.logger.Error("reindex after ship-place change failed",
			zap.String("shop_id", sh.ID.String()),
			zap.Error(err),
		)
		return nil, ErrReindexFailed
	}

	return s.response(ctx, shopID)
}

// Reindex re-pushes the shop's full current index document
func (s *ShopService) Reindex(ctx context.Context, shopID uuid.UUID) error {
	return s.indexer.IndexShopByID(ctx, shopID)
}

// Delete destroys a shop. Index-entry deletion and uploaded-file release run
// after commit through the bridge and never block each other.
func (s *ShopService) Delete(ctx context.Context, shopID uuid.UUID) error {
	sh, err := s.shopRepo.FindByID(ctx, shopID)
	if err != nil {
		return err
	}

	if err := s.shopRepo.Delete(ctx, sh.ID); err != nil {
		return err
	}

	sh.MarkDeleted()
	s.publishEvents(ctx, sh)
	return nil
}

// publishEvents publishes the aggregate's pending events after a committed
// write. Bridge failures are logged by the bus, not surfaced to the caller:
// the primary write is already durable.
func (s *ShopService) publishEvents(ctx context.Context, sh *shop.Shop) {
	events := sh.GetDomainEvents()
	if len(events) == 0 {
		return
	}
	if err := s.publisher.Publish(ctx, events...); err != nil {
		s.logger.Error("failed to publish shop events",
			zap.String("shop_id", sh.ID.String()),
			zap.Error(err),
		)
	}
	sh.ClearDomainEvents()
}

func (s *ShopService) response(ctx context.Context, shopID uuid.UUID) (*ShopResponse, error) {
	sh, err := s.shopRepo.FindByID(ctx, shopID)
	if err != nil {
		return nil, err
	}
	resp := ToShopResponse(sh)
	return &resp, nil
}
