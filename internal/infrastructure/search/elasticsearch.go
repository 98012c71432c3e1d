package search

import (
	"context"
	"fmt"
	"net/http"

	"github.com/go-resty/resty/v2"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/nicksmd/fu-marketplace-api/internal/domain/shop"
	"github.com/nicksmd/fu-marketplace-api/internal/infrastructure/config"
)

// ItemDocument is the indexed representation of one shop item
type ItemDocument struct {
	ID          uuid.UUID       `json:"id"`
	Name        string          `json:"name"`
	Description string          `json:"description"`
	Price       decimal.Decimal `json:"price"`
	Image       string          `json:"image,omitempty"`
}

// ShopDocument is the search document for one shop. It is recomputed from
// the database on every index call, never patched incrementally, so repeated
// indexing of the same state is idempotent.
type ShopDocument struct {
	ID          uuid.UUID      `json:"id"`
	Name        string         `json:"name"`
	Description string         `json:"description"`
	Address     string         `json:"address"`
	Avatar      string         `json:"avatar,omitempty"`
	Cover       string         `json:"cover,omitempty"`
	Opening     bool           `json:"opening"`
	Banned      bool           `json:"banned"`
	Status      int            `json:"status"`
	SellerName  string         `json:"sellerName,omitempty"`
	ShipPlaces  []string       `json:"shipPlaces"`
	Items       []ItemDocument `json:"items"`
}

// ElasticIndexer indexes shop documents into Elasticsearch over its HTTP API
type ElasticIndexer struct {
	client *resty.Client
	index  string
	db     *gorm.DB
	logger *zap.Logger
}

// NewElasticIndexer creates a new ElasticIndexer
func NewElasticIndexer(cfg config.SearchConfig, db *gorm.DB, logger *zap.Logger) *ElasticIndexer {
	client := resty.New().
		SetBaseURL(cfg.BaseURL).
		SetTimeout(cfg.Timeout).
		SetRetryCount(cfg.RetryCount).
		SetRetryWaitTime(cfg.RetryWait).
		SetHeader("Content-Type", "application/json")

	return &ElasticIndexer{
		client: client,
		index:  cfg.Index,
		db:     db,
		logger: logger,
	}
}

// IndexShopByID recomputes the shop's document from the database and pushes
// it whole
func (i *ElasticIndexer) IndexShopByID(ctx context.Context, shopID uuid.UUID) error {
	doc, err := i.buildDocument(ctx, shopID)
	if err != nil {
		return err
	}

	resp, err := i.client.R().
		SetContext(ctx).
		SetBody(doc).
		Put(fmt.Sprintf("/%s/_doc/%s", i.index, shopID))
	if err != nil {
		return fmt.Errorf("index shop %s: %w", shopID, err)
	}
	if resp.IsError() {
		return fmt.Errorf("index shop %s: elasticsearch returned %d: %s",
			shopID, resp.StatusCode(), resp.String())
	}

	i.logger.Debug("shop indexed", zap.String("shop_id", shopID.String()))
	return nil
}

// DeleteShopIndexByID removes the shop's document. A missing document is
// success: the desired state already holds.
func (i *ElasticIndexer) DeleteShopIndexByID(ctx context.Context, shopID uuid.UUID) error {
	resp, err := i.client.R().
		SetContext(ctx).
		Delete(fmt.Sprintf("/%s/_doc/%s", i.index, shopID))
	if err != nil {
		return fmt.Errorf("delete shop index %s: %w", shopID, err)
	}
	if resp.IsError() && resp.StatusCode() != http.StatusNotFound {
		return fmt.Errorf("delete shop index %s: elasticsearch returned %d: %s",
			shopID, resp.StatusCode(), resp.String())
	}

	i.logger.Debug("shop index entry deleted", zap.String("shop_id", shopID.String()))
	return nil
}

// buildDocument loads the shop with its associations and flattens it into the
// search document
func (i *ElasticIndexer) buildDocument(ctx context.Context, shopID uuid.UUID) (*ShopDocument, error) {
	var s shop.Shop
	if err := i.db.WithContext(ctx).
		Preload("ShipPlaces").
		Preload("Owner").
		First(&s, "id = ?", shopID).Error; err != nil {
		return nil, fmt.Errorf("load shop %s: %w", shopID, err)
	}

	var items []shop.Item
	if err := i.db.WithContext(ctx).
		Where("shop_id = ?", shopID).
		Order("sort ASC, created_at ASC").
		Find(&items).Error; err != nil {
		return nil, fmt.Errorf("load items of shop %s: %w", shopID, err)
	}

	doc := &ShopDocument{
		ID:          s.ID,
		Name:        s.Name,
		Description: s.Description,
		Address:     s.Address,
		Avatar:      s.Avatar,
		Cover:       s.Cover,
		Opening:     s.Opening,
		Banned:      s.Banned,
		Status:      int(s.Status),
		ShipPlaces:  make([]string, len(s.ShipPlaces)),
		Items:       make([]ItemDocument, len(items)),
	}
	if s.Owner != nil {
		doc.SellerName = s.Owner.FullName
	}
	for idx, sp := range s.ShipPlaces {
		doc.ShipPlaces[idx] = sp.Name
	}
	for idx, item := range items {
		doc.Items[idx] = ItemDocument{
			ID:          item.ID,
			Name:        item.Name,
			Description: item.Description,
			Price:       item.Price,
			Image:       item.Image,
		}
	}
	return doc, nil
}
