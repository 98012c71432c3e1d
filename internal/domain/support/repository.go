package support

import (
	"context"

	"github.com/google/uuid"

	"github.com/nicksmd/fu-marketplace-api/internal/domain/shared"
)

// TicketRepository defines the interface for ticket persistence
type TicketRepository interface {
	// FindByID finds a ticket by ID with its order and lines loaded
	FindByID(ctx context.Context, id uuid.UUID) (*Ticket, error)

	// FindAll lists tickets sorted by status ascending then last update
	// descending, optionally filtered by status
	FindAll(ctx context.Context, status *TicketStatus, filter shared.Filter) ([]Ticket, error)

	// Save creates or updates a ticket
	Save(ctx context.Context, t *Ticket) error
}
