package shop

import (
	"context"
	"io"

	"github.com/google/uuid"

	"github.com/nicksmd/fu-marketplace-api/internal/domain/shop"
)

// SearchIndexer is the external indexing collaborator. Both operations are
// idempotent and safe to call concurrently for the same id.
type SearchIndexer interface {
	// IndexShopByID recomputes and pushes the shop's full index document
	IndexShopByID(ctx context.Context, shopID uuid.UUID) error
	// DeleteShopIndexByID removes the shop's index document
	DeleteShopIndexByID(ctx context.Context, shopID uuid.UUID) error
}

// IndexJobEnqueuer schedules asynchronous index maintenance through the
// background job queue. Callers must not enqueue an update and a delete for
// the same shop without external synchronization; staleness is fenced by a
// per-shop monotonic stamp issued at enqueue time.
type IndexJobEnqueuer interface {
	EnqueueUpdateShopIndex(ctx context.Context, shopID uuid.UUID) error
	EnqueueDeleteShopIndex(ctx context.Context, shopID uuid.UUID) error
}

// UploadVersion describes one rendition of an uploaded image
type UploadVersion struct {
	Resize   string
	Crop     string
	Quality  int
	FileName string
}

// UploadConfig describes an image upload request
type UploadConfig struct {
	MaxFileSize int64
	ContentType string
	Versions    []UploadVersion
}

// ImageStorage is the external image storage collaborator
type ImageStorage interface {
	// UploadWithVersions stores the image under each configured version key
	// and returns the stored renditions
	UploadWithVersions(ctx context.Context, cfg UploadConfig, body io.Reader) ([]shop.ImageVersion, error)
	// DeleteImages removes previously stored renditions
	DeleteImages(ctx context.Context, versions []shop.ImageVersion) error
}
