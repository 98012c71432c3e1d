package support

import (
	"net/http"

	"github.com/google/uuid"

	"github.com/nicksmd/fu-marketplace-api/internal/domain/shared"
	"github.com/nicksmd/fu-marketplace-api/internal/domain/trade"
)

// TicketStatus represents the lifecycle state of a support ticket. The
// integer codes are ordered so that ascending sort surfaces unresolved
// tickets first.
type TicketStatus int

const (
	TicketStatusOpen          TicketStatus = 1
	TicketStatusInvestigating TicketStatus = 2
	TicketStatusClosed        TicketStatus = 3
)

// IsValid checks if the status is a known TicketStatus
func (s TicketStatus) IsValid() bool {
	switch s {
	case TicketStatusOpen, TicketStatusInvestigating, TicketStatusClosed:
		return true
	}
	return false
}

// Label returns the status enum key used in query strings and responses
func (s TicketStatus) Label() string {
	switch s {
	case TicketStatusOpen:
		return "OPEN"
	case TicketStatusInvestigating:
		return "INVESTIGATING"
	case TicketStatusClosed:
		return "CLOSED"
	}
	return ""
}

// StatusFromLabel resolves a query-string label to a status. Only the exact
// enum key names match; anything else, including lowercase variants, is a
// query error rather than a validation error.
func StatusFromLabel(label string) (TicketStatus, error) {
	switch label {
	case "OPEN":
		return TicketStatusOpen, nil
	case "INVESTIGATING":
		return TicketStatusInvestigating, nil
	case "CLOSED":
		return TicketStatusClosed, nil
	}
	return 0, ErrInvalidStatusQuery
}

// Support context errors
var (
	ErrTicketNotFound = shared.NewNotFoundError("TICKET_NOT_FOUND", "Ticket does not exist")

	ErrInvalidStatusQuery = shared.NewDomainError(http.StatusNotFound, shared.KindQuery,
		"INVALID_STATUS", "Invalid status query")

	ErrMissingAdminComment = shared.NewDomainError(http.StatusBadRequest, shared.KindValidation,
		"MISSING_COMMENT", "Admin must provide comment when close ticket")
)

// Ticket is a support case tied to one order.
// Transitions are one-directional: OPEN -> INVESTIGATING -> CLOSED.
type Ticket struct {
	shared.BaseEntity
	OrderID      uuid.UUID    `gorm:"type:uuid;not null;index" json:"orderId"`
	Order        *trade.Order `gorm:"foreignKey:OrderID" json:"-"`
	UserNote     string       `json:"userNote"`
	AdminComment string       `json:"adminComment"`
	Status       TicketStatus `gorm:"not null;default:1;index" json:"status"`
}

// NewTicket opens a ticket for an order
func NewTicket(orderID uuid.UUID, userNote string) (*Ticket, error) {
	if orderID == uuid.Nil {
		return nil, shared.NewValidationError("INVALID_ORDER", "Ticket order cannot be empty")
	}
	return &Ticket{
		BaseEntity: shared.NewBaseEntity(),
		OrderID:    orderID,
		UserNote:   userNote,
		Status:     TicketStatusOpen,
	}, nil
}

// Investigate moves an open ticket into investigation
func (t *Ticket) Investigate() error {
	if t.Status != TicketStatusOpen {
		return shared.NewDomainError(http.StatusUnprocessableEntity, shared.KindValidation,
			"INVALID_STATE", "Only open tickets can be investigated")
	}
	t.Status = TicketStatusInvestigating
	return nil
}

// Close closes the ticket with a mandatory admin comment
func (t *Ticket) Close(adminComment string) error {
	if adminComment == "" {
		return ErrMissingAdminComment
	}
	if t.Status == TicketStatusClosed {
		return shared.NewDomainError(http.StatusUnprocessableEntity, shared.KindValidation,
			"INVALID_STATE", "Ticket is already closed")
	}
	t.Status = TicketStatusClosed
	t.AdminComment = adminComment
	return nil
}

// IsClosed reports whether the ticket reached its terminal state
func (t *Ticket) IsClosed() bool {
	return t.Status == TicketStatusClosed
}
