package trade

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/nicksmd/fu-marketplace-api/internal/domain/shared"
	"github.com/nicksmd/fu-marketplace-api/internal/domain/shop"
)

// OrderStatus represents the status of an order
type OrderStatus int

const (
	OrderStatusNew OrderStatus = 0
)

// DefaultQuantity is used when a requested item carries quantity zero
const DefaultQuantity = 1

// ErrItemNotFound is returned when none of the requested items resolve
// against the shop's sellable inventory
var ErrItemNotFound = shared.NewDomainError(http.StatusForbidden, shared.KindOrder,
	"ITEM_NOT_FOUND", "Item not found")

// RequestedItem is one entry of a buyer's order request
type RequestedItem struct {
	ItemID   uuid.UUID
	Quantity int
	Note     string
}

// OrderLine is an immutable snapshot of one ordered item. Item attributes are
// copied at order time and never follow later item edits.
type OrderLine struct {
	shared.BaseEntity
	OrderID         uuid.UUID       `gorm:"type:uuid;not null;index" json:"orderId"`
	ItemID          uuid.UUID       `gorm:"type:uuid;not null" json:"itemId"`
	ItemName        string          `gorm:"size:255;not null" json:"itemName"`
	ItemDescription string          `json:"itemDescription"`
	ItemPrice       decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"itemPrice"`
	Quantity        int             `gorm:"not null" json:"quantity"`
	Note            string          `json:"note"`
}

// Order is a buyer's purchase at one shop. It is never persisted without at
// least one order line.
type Order struct {
	shared.BaseEntity
	UserID      uuid.UUID   `gorm:"type:uuid;not null;index" json:"userId"`
	ShopID      uuid.UUID   `gorm:"type:uuid;not null;index" json:"shopId"`
	Note        string      `json:"note"`
	ShipAddress string      `gorm:"not null" json:"shipAddress"`
	Status      OrderStatus `gorm:"not null;default:0" json:"status"`
	Lines       []OrderLine `gorm:"foreignKey:OrderID" json:"orderLines"`
}

// NewOrder builds an order from the items that resolved against the shop's
// sellable inventory. An empty resolved set is rejected.
func NewOrder(userID, shopID uuid.UUID, shipAddress, note string, resolved []shop.Item, requested []RequestedItem) (*Order, error) {
	if shipAddress == "" {
		return nil, shared.NewValidationError("MISSING_SHIP_ADDRESS", "Must provide shipAddress when place order")
	}
	if len(resolved) == 0 {
		return nil, ErrItemNotFound
	}

	o := &Order{
		BaseEntity:  shared.NewBaseEntity(),
		UserID:      userID,
		ShopID:      shopID,
		Note:        note,
		ShipAddress: shipAddress,
		Status:      OrderStatusNew,
	}

	o.Lines = make([]OrderLine, len(resolved))
	for i, item := range resolved {
		quantity, lineNote := requestedQuantityAndNote(requested, item.ID)
		o.Lines[i] = OrderLine{
			BaseEntity:      shared.NewBaseEntity(),
			OrderID:         o.ID,
			ItemID:          item.ID,
			ItemName:        item.Name,
			ItemDescription: item.Description,
			ItemPrice:       item.Price,
			Quantity:        quantity,
			Note:            lineNote,
		}
	}

	return o, nil
}

// requestedQuantityAndNote looks up the buyer's requested quantity and note
// for an item, applying the default quantity for zero
func requestedQuantityAndNote(requested []RequestedItem, itemID uuid.UUID) (int, string) {
	for _, r := range requested {
		if r.ItemID == itemID {
			if r.Quantity == 0 {
				return DefaultQuantity, r.Note
			}
			return r.Quantity, r.Note
		}
	}
	return DefaultQuantity, ""
}
