package persistence

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/nicksmd/fu-marketplace-api/internal/domain/shared"
	"github.com/nicksmd/fu-marketplace-api/internal/domain/support"
)

func seedTicket(t *testing.T, db *gorm.DB, status support.TicketStatus, updatedAt time.Time) *support.Ticket {
	ticket, err := support.NewTicket(uuid.New(), "note")
	require.NoError(t, err)
	ticket.Status = status
	require.NoError(t, db.Create(ticket).Error)
	require.NoError(t, db.Model(&support.Ticket{}).Where("id = ?", ticket.ID).
		Update("updated_at", updatedAt).Error)
	return ticket
}

func TestGormTicketRepository_FindAll_UnresolvedFirst(t *testing.T) {
	db := setupTestDB(t)
	repo := NewGormTicketRepository(db)
	ctx := context.Background()

	now := time.Now()
	closed := seedTicket(t, db, support.TicketStatusClosed, now)
	openOld := seedTicket(t, db, support.TicketStatusOpen, now.Add(-2*time.Hour))
	openNew := seedTicket(t, db, support.TicketStatusOpen, now.Add(-time.Hour))
	investigating := seedTicket(t, db, support.TicketStatusInvestigating, now)

	tickets, err := repo.FindAll(ctx, nil, shared.Filter{Page: 1, PageSize: 10})
	require.NoError(t, err)
	require.Len(t, tickets, 4)

	// Status ascending, then most recently updated within a status.
	assert.Equal(t, openNew.ID, tickets[0].ID)
	assert.Equal(t, openOld.ID, tickets[1].ID)
	assert.Equal(t, investigating.ID, tickets[2].ID)
	assert.Equal(t, closed.ID, tickets[3].ID)
}

func TestGormTicketRepository_FindAll_FilterByStatus(t *testing.T) {
	db := setupTestDB(t)
	repo := NewGormTicketRepository(db)
	ctx := context.Background()

	now := time.Now()
	seedTicket(t, db, support.TicketStatusOpen, now)
	closed := seedTicket(t, db, support.TicketStatusClosed, now)

	status := support.TicketStatusClosed
	tickets, err := repo.FindAll(ctx, &status, shared.Filter{Page: 1, PageSize: 10})
	require.NoError(t, err)
	require.Len(t, tickets, 1)
	assert.Equal(t, closed.ID, tickets[0].ID)
}

func TestGormTicketRepository_FindByID_LoadsOrderLines(t *testing.T) {
	db := setupTestDB(t)
	repo := NewGormTicketRepository(db)
	ctx := context.Background()

	order := seedOrder(t, db, uuid.New(), uuid.New())
	ticket, err := support.NewTicket(order.ID, "wrong item delivered")
	require.NoError(t, err)
	require.NoError(t, repo.Save(ctx, ticket))

	found, err := repo.FindByID(ctx, ticket.ID)
	require.NoError(t, err)
	require.NotNil(t, found.Order)
	assert.Equal(t, order.ID, found.Order.ID)
	require.Len(t, found.Order.Lines, 1)
	assert.Equal(t, "banh mi", found.Order.Lines[0].ItemName)
}

func TestGormTicketRepository_FindByID_NotFound(t *testing.T) {
	db := setupTestDB(t)
	repo := NewGormTicketRepository(db)

	_, err := repo.FindByID(context.Background(), uuid.New())

	assert.ErrorIs(t, err, support.ErrTicketNotFound)
}

func TestGormTicketRepository_Save_UpdatesStatus(t *testing.T) {
	db := setupTestDB(t)
	repo := NewGormTicketRepository(db)
	ctx := context.Background()

	ticket, err := support.NewTicket(uuid.New(), "note")
	require.NoError(t, err)
	require.NoError(t, repo.Save(ctx, ticket))

	require.NoError(t, ticket.Close("refund issued"))
	require.NoError(t, repo.Save(ctx, ticket))

	found, err := repo.FindByID(ctx, ticket.ID)
	require.NoError(t, err)
	assert.True(t, found.IsClosed())
	assert.Equal(t, "refund issued", found.AdminComment)
}
