package shop

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/nicksmd/fu-marketplace-api/internal/domain/shared"
)

// ItemStatus represents the sellable status of an item
type ItemStatus int

const (
	ItemStatusNotForSale ItemStatus = 0
	ItemStatusForSale    ItemStatus = 1
)

// Item is a product listed by a shop
type Item struct {
	shared.BaseEntity
	ShopID      uuid.UUID       `gorm:"type:uuid;not null;index" json:"shopId"`
	Name        string          `gorm:"size:255;not null" json:"name"`
	Description string          `json:"description"`
	Image       string          `json:"image"`
	Price       decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"price"`
	Sort        int             `gorm:"not null;default:0" json:"sort"`
	Status      ItemStatus      `gorm:"not null;default:0" json:"status"`
}

// NewItem creates a new item for a shop
func NewItem(shopID uuid.UUID, name, description string, price decimal.Decimal) (*Item, error) {
	if shopID == uuid.Nil {
		return nil, shared.NewValidationError("INVALID_SHOP", "Item shop cannot be empty")
	}
	if name == "" || len(name) > 255 {
		return nil, shared.NewValidationError("INVALID_NAME", "Item name must be between 1 and 255 characters")
	}
	if price.IsNegative() {
		return nil, shared.NewValidationError("INVALID_PRICE", "Item price cannot be negative")
	}
	return &Item{
		BaseEntity:  shared.NewBaseEntity(),
		ShopID:      shopID,
		Name:        name,
		Description: description,
		Price:       price,
		Status:      ItemStatusNotForSale,
	}, nil
}

// IsForSale returns true if the item can currently be ordered
func (i *Item) IsForSale() bool {
	return i.Status == ItemStatusForSale
}
