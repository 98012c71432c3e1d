package support

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nicksmd/fu-marketplace-api/internal/domain/shared"
)

func createTestTicket(t *testing.T) *Ticket {
	ticket, err := NewTicket(uuid.New(), "order never arrived")
	require.NoError(t, err)
	return ticket
}

func TestNewTicket(t *testing.T) {
	orderID := uuid.New()
	ticket, err := NewTicket(orderID, "wrong item delivered")
	require.NoError(t, err)

	assert.Equal(t, orderID, ticket.OrderID)
	assert.Equal(t, "wrong item delivered", ticket.UserNote)
	assert.Equal(t, TicketStatusOpen, ticket.Status)
	assert.Empty(t, ticket.AdminComment)
}

func TestNewTicket_RequiresOrder(t *testing.T) {
	_, err := NewTicket(uuid.Nil, "note")
	require.Error(t, err)

	var domainErr *shared.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, shared.KindValidation, domainErr.Kind)
}

func TestTicketStatus_Label(t *testing.T) {
	assert.Equal(t, "OPEN", TicketStatusOpen.Label())
	assert.Equal(t, "INVESTIGATING", TicketStatusInvestigating.Label())
	assert.Equal(t, "CLOSED", TicketStatusClosed.Label())
	assert.Equal(t, "", TicketStatus(99).Label())
}

func TestStatusFromLabel(t *testing.T) {
	tests := []struct {
		label   string
		status  TicketStatus
		wantErr bool
	}{
		{"OPEN", TicketStatusOpen, false},
		{"INVESTIGATING", TicketStatusInvestigating, false},
		{"CLOSED", TicketStatusClosed, false},
		{"open", 0, true},
		{"closed", 0, true},
		{"Closed", 0, true},
		{"resolved", 0, true},
		{"", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.label, func(t *testing.T) {
			status, err := StatusFromLabel(tt.label)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidStatusQuery)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.status, status)
		})
	}
}

func TestStatusFromLabel_UnknownIsQueryError(t *testing.T) {
	_, err := StatusFromLabel("bogus")

	var domainErr *shared.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, 404, domainErr.Status)
	assert.Equal(t, shared.KindQuery, domainErr.Kind)
}

func TestStatusFromLabel_LowercaseKeyRejected(t *testing.T) {
	_, err := StatusFromLabel("closed")
	require.Error(t, err)

	var domainErr *shared.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, 404, domainErr.Status)
	assert.Equal(t, shared.KindQuery, domainErr.Kind)
}

func TestTicket_Investigate(t *testing.T) {
	ticket := createTestTicket(t)

	require.NoError(t, ticket.Investigate())
	assert.Equal(t, TicketStatusInvestigating, ticket.Status)
}

func TestTicket_Investigate_OnlyFromOpen(t *testing.T) {
	ticket := createTestTicket(t)
	require.NoError(t, ticket.Investigate())

	err := ticket.Investigate()
	require.Error(t, err)
	assert.Equal(t, TicketStatusInvestigating, ticket.Status)

	require.NoError(t, ticket.Close("resolved with seller"))
	err = ticket.Investigate()
	require.Error(t, err)
	assert.Equal(t, TicketStatusClosed, ticket.Status)
}

func TestTicket_Close_FromOpen(t *testing.T) {
	ticket := createTestTicket(t)

	require.NoError(t, ticket.Close("refund issued"))
	assert.Equal(t, TicketStatusClosed, ticket.Status)
	assert.Equal(t, "refund issued", ticket.AdminComment)
	assert.True(t, ticket.IsClosed())
}

func TestTicket_Close_FromInvestigating(t *testing.T) {
	ticket := createTestTicket(t)
	require.NoError(t, ticket.Investigate())

	require.NoError(t, ticket.Close("seller reshipped"))
	assert.True(t, ticket.IsClosed())
}

func TestTicket_Close_RequiresComment(t *testing.T) {
	ticket := createTestTicket(t)

	err := ticket.Close("")
	assert.ErrorIs(t, err, ErrMissingAdminComment)
	assert.Equal(t, TicketStatusOpen, ticket.Status)
	assert.Empty(t, ticket.AdminComment)
}

func TestTicket_Close_AlreadyClosed(t *testing.T) {
	ticket := createTestTicket(t)
	require.NoError(t, ticket.Close("done"))

	err := ticket.Close("done again")
	require.Error(t, err)
	assert.Equal(t, "done", ticket.AdminComment)
}
