package trade

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/nicksmd/fu-marketplace-api/internal/domain/trade"
)

// RequestedItemDTO is one entry of a place-order payload
type RequestedItemDTO struct {
	ItemID   uuid.UUID `json:"itemId" binding:"required"`
	Quantity int       `json:"quantity" binding:"omitempty,min=1"`
	Note     string    `json:"note"`
}

// PlaceOrderRequest is the payload for placing an order at a shop
type PlaceOrderRequest struct {
	UserID      uuid.UUID          `json:"userId" binding:"required"`
	Note        string             `json:"note"`
	ShipAddress string             `json:"shipAddress"`
	Items       []RequestedItemDTO `json:"items" binding:"required,min=1,dive"`
}

// OrderLineResponse is the API representation of an order line snapshot
type OrderLineResponse struct {
	ID              uuid.UUID       `json:"id"`
	ItemID          uuid.UUID       `json:"itemId"`
	ItemName        string          `json:"itemName"`
	ItemDescription string          `json:"itemDescription"`
	ItemPrice       decimal.Decimal `json:"itemPrice"`
	Quantity        int             `json:"quantity"`
	Note            string          `json:"note"`
}

// OrderResponse is the API representation of an order
type OrderResponse struct {
	ID          uuid.UUID           `json:"id"`
	UserID      uuid.UUID           `json:"userId"`
	ShopID      uuid.UUID           `json:"shopId"`
	Note        string              `json:"note"`
	ShipAddress string              `json:"shipAddress"`
	Status      trade.OrderStatus   `json:"status"`
	Lines       []OrderLineResponse `json:"orderLines"`
	CreatedAt   time.Time           `json:"createdAt"`
	UpdatedAt   time.Time           `json:"updatedAt"`
}

// ToOrderResponse converts an order into its API representation
func ToOrderResponse(o *trade.Order) OrderResponse {
	lines := make([]OrderLineResponse, len(o.Lines))
	for i, l := range o.Lines {
		lines[i] = OrderLineResponse{
			ID:              l.ID,
			ItemID:          l.ItemID,
			ItemName:        l.ItemName,
			ItemDescription: l.ItemDescription,
			ItemPrice:       l.ItemPrice,
			Quantity:        l.Quantity,
			Note:            l.Note,
		}
	}
	return OrderResponse{
		ID:          o.ID,
		UserID:      o.UserID,
		ShopID:      o.ShopID,
		Note:        o.Note,
		ShipAddress: o.ShipAddress,
		Status:      o.Status,
		Lines:       lines,
		CreatedAt:   o.CreatedAt,
		UpdatedAt:   o.UpdatedAt,
	}
}

// ToOrderResponses converts a slice of orders into API representations
func ToOrderResponses(orders []trade.Order) []OrderResponse {
	out := make([]OrderResponse, len(orders))
	for i := range orders {
		out[i] = ToOrderResponse(&orders[i])
	}
	return out
}

// ToRequestedItems converts the payload entries into domain requested items
func ToRequestedItems(items []RequestedItemDTO) []trade.RequestedItem {
	out := make([]trade.RequestedItem, len(items))
	for i, it := range items {
		out[i] = trade.RequestedItem{
			ItemID:   it.ItemID,
			Quantity: it.Quantity,
			Note:     it.Note,
		}
	}
	return out
}
