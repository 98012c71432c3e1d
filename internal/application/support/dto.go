package support

import (
	"time"

	"github.com/google/uuid"

	apptrade "github.com/nicksmd/fu-marketplace-api/internal/application/trade"
	"github.com/nicksmd/fu-marketplace-api/internal/domain/support"
)

// OpenTicketRequest is the payload for opening a ticket on an order
type OpenTicketRequest struct {
	OrderID  uuid.UUID `json:"orderId" binding:"required"`
	UserNote string    `json:"userNote"`
}

// CloseTicketRequest is the payload for closing a ticket
type CloseTicketRequest struct {
	AdminComment string `json:"adminComment"`
}

// TicketOrderSummary is the denormalized order context shown in ticket
// listings
type TicketOrderSummary struct {
	ID       uuid.UUID `json:"id"`
	UserID   uuid.UUID `json:"userId"`
	UserName string    `json:"userName"`
	ShopID   uuid.UUID `json:"shopId"`
	ShopName string    `json:"shopName"`
}

// TicketResponse is the API representation of a ticket in listings
type TicketResponse struct {
	ID           uuid.UUID           `json:"id"`
	Status       string              `json:"status"`
	UserNote     string              `json:"userNote"`
	AdminComment string              `json:"adminComment"`
	Order        *TicketOrderSummary `json:"order,omitempty"`
	CreatedAt    time.Time           `json:"createdAt"`
	UpdatedAt    time.Time           `json:"updatedAt"`
}

// TicketDetailResponse is the API representation of a single ticket,
// embedding the full order with its line snapshots
type TicketDetailResponse struct {
	TicketResponse
	OrderDetail *apptrade.OrderResponse `json:"orderDetail,omitempty"`
}

// ToTicketResponse converts a ticket into its listing representation
func ToTicketResponse(t *support.Ticket) TicketResponse {
	return TicketResponse{
		ID:           t.ID,
		Status:       t.Status.Label(),
		UserNote:     t.UserNote,
		AdminComment: t.AdminComment,
		CreatedAt:    t.CreatedAt,
		UpdatedAt:    t.UpdatedAt,
	}
}
