package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/nicksmd/fu-marketplace-api/internal/domain/shared"
	"github.com/nicksmd/fu-marketplace-api/internal/domain/support"
)

// GormTicketRepository implements support.TicketRepository using GORM
type GormTicketRepository struct {
	db *gorm.DB
}

// NewGormTicketRepository creates a new GormTicketRepository
func NewGormTicketRepository(db *gorm.DB) *GormTicketRepository {
	return &GormTicketRepository{db: db}
}

// FindByID finds a ticket by ID with its order and line snapshots loaded
func (r *GormTicketRepository) FindByID(ctx context.Context, id uuid.UUID) (*support.Ticket, error) {
	var ticket support.Ticket
	if err := r.db.WithContext(ctx).
		Preload("Order").
		Preload("Order.Lines").
		First(&ticket, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, support.ErrTicketNotFound
		}
		return nil, err
	}
	return &ticket, nil
}

// FindAll lists tickets unresolved-first: status ascending, then most
// recently updated. An optional status narrows the listing.
func (r *GormTicketRepository) FindAll(ctx context.Context, status *support.TicketStatus, filter shared.Filter) ([]support.Ticket, error) {
	query := r.db.WithContext(ctx).Model(&support.Ticket{}).Preload("Order")
	if status != nil {
		query = query.Where("status = ?", *status)
	}

	var tickets []support.Ticket
	if err := query.
		Order("status ASC").
		Order("updated_at DESC").
		Offset(filter.Offset()).
		Limit(filter.Limit()).
		Find(&tickets).Error; err != nil {
		return nil, err
	}
	return tickets, nil
}

// Save creates or updates a ticket
func (r *GormTicketRepository) Save(ctx context.Context, t *support.Ticket) error {
	return r.db.WithContext(ctx).Omit("Order").Save(t).Error
}
