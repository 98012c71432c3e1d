package support

import (
	"context"

	"github.com/google/uuid"

	apptrade "github.com/nicksmd/fu-marketplace-api/internal/application/trade"
	"github.com/nicksmd/fu-marketplace-api/internal/domain/identity"
	"github.com/nicksmd/fu-marketplace-api/internal/domain/shared"
	"github.com/nicksmd/fu-marketplace-api/internal/domain/shop"
	"github.com/nicksmd/fu-marketplace-api/internal/domain/support"
	"github.com/nicksmd/fu-marketplace-api/internal/domain/trade"
)

// TicketService handles support ticket operations
type TicketService struct {
	ticketRepo support.TicketRepository
	orderRepo  trade.OrderRepository
	shopRepo   shop.ShopRepository
	userRepo   identity.UserRepository
}

// NewTicketService creates a new TicketService
func NewTicketService(ticketRepo support.TicketRepository, orderRepo trade.OrderRepository, shopRepo shop.ShopRepository, userRepo identity.UserRepository) *TicketService {
	return &TicketService{
		ticketRepo: ticketRepo,
		orderRepo:  orderRepo,
		shopRepo:   shopRepo,
		userRepo:   userRepo,
	}
}

// Open opens a ticket on an existing order
func (s *TicketService) Open(ctx context.Context, req OpenTicketRequest) (*TicketResponse, error) {
	order, err := s.orderRepo.FindByID(ctx, req.OrderID)
	if err != nil {
		return nil, err
	}

	ticket, err := support.NewTicket(order.ID, req.UserNote)
	if err != nil {
		return nil, err
	}
	if err := s.ticketRepo.Save(ctx, ticket); err != nil {
		return nil, err
	}

	resp := ToTicketResponse(ticket)
	return &resp, nil
}

// List lists tickets sorted unresolved-first, optionally filtered by the
// status label from the query string. An unknown label is rejected before any
// repository access.
func (s *TicketService) List(ctx context.Context, statusLabel string, filter shared.Filter) ([]TicketResponse, error) {
	var status *support.TicketStatus
	if statusLabel != "" {
		st, err := support.StatusFromLabel(statusLabel)
		if err != nil {
			return nil, err
		}
		status = &st
	}

	tickets, err := s.ticketRepo.FindAll(ctx, status, filter)
	if err != nil {
		return nil, err
	}

	out := make([]TicketResponse, len(tickets))
	for i := range tickets {
		out[i] = ToTicketResponse(&tickets[i])
		out[i].Order = s.orderSummary(ctx, tickets[i].Order)
	}
	return out, nil
}

// GetByID retrieves one ticket with its full order and line snapshots
func (s *TicketService) GetByID(ctx context.Context, ticketID uuid.UUID) (*TicketDetailResponse, error) {
	ticket, err := s.ticketRepo.FindByID(ctx, ticketID)
	if err != nil {
		return nil, err
	}

	resp := TicketDetailResponse{TicketResponse: ToTicketResponse(ticket)}
	if ticket.Order != nil {
		resp.Order = s.orderSummary(ctx, ticket.Order)
		detail := apptrade.ToOrderResponse(ticket.Order)
		resp.OrderDetail = &detail
	}
	return &resp, nil
}

// Investigate moves an open ticket into investigation
func (s *TicketService) Investigate(ctx context.Context, ticketID uuid.UUID) (*TicketResponse, error) {
	ticket, err := s.ticketRepo.FindByID(ctx, ticketID)
	if err != nil {
		return nil, err
	}
	if err := ticket.Investigate(); err != nil {
		return nil, err
	}
	if err := s.ticketRepo.Save(ctx, ticket); err != nil {
		return nil, err
	}

	resp := ToTicketResponse(ticket)
	return &resp, nil
}

// Close closes a ticket with a mandatory admin comment. The comment is
// validated before the ticket lookup, so a missing comment reports 400 even
// for an unknown id.
func (s *TicketService) Close(ctx context.Context, ticketID uuid.UUID, req CloseTicketRequest) (*TicketResponse, error) {
	if req.AdminComment == "" {
		return nil, support.ErrMissingAdminComment
	}

	ticket, err := s.ticketRepo.FindByID(ctx, ticketID)
	if err != nil {
		return nil, err
	}
	if err := ticket.Close(req.AdminComment); err != nil {
		return nil, err
	}
	if err := s.ticketRepo.Save(ctx, ticket); err != nil {
		return nil, err
	}

	resp := ToTicketResponse(ticket)
	return &resp, nil
}

// orderSummary builds the denormalized order context for a ticket. A ticket
// may outlive its shop or buyer; missing rows leave the names blank instead
// of failing the listing.
func (s *TicketService) orderSummary(ctx context.Context, order *trade.Order) *TicketOrderSummary {
	if order == nil {
		return nil
	}
	summary := &TicketOrderSummary{
		ID:     order.ID,
		UserID: order.UserID,
		ShopID: order.ShopID,
	}
	if u, err := s.userRepo.FindByID(ctx, order.UserID); err == nil {
		summary.UserName = u.FullName
	}
	if sh, err := s.shopRepo.FindByID(ctx, order.ShopID); err == nil {
		summary.ShopName = sh.Name
	}
	return summary
}
