package shop

import (
	"github.com/google/uuid"

	"github.com/nicksmd/fu-marketplace-api/internal/domain/shared"
)

// Aggregate type constant
const AggregateTypeShop = "Shop"

// Event type constants
const (
	EventTypeShopCreated = "ShopCreated"
	EventTypeShopUpdated = "ShopUpdated"
	EventTypeShopDeleted = "ShopDeleted"
)

// ShopCreatedEvent is raised when a new shop is created
type ShopCreatedEvent struct {
	shared.BaseDomainEvent
	ShopID  uuid.UUID `json:"shop_id"`
	OwnerID uuid.UUID `json:"owner_id"`
	Name    string    `json:"name"`
}

// NewShopCreatedEvent creates a new ShopCreatedEvent
func NewShopCreatedEvent(s *Shop) *ShopCreatedEvent {
	return &ShopCreatedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeShopCreated, AggregateTypeShop, s.ID),
		ShopID:          s.ID,
		OwnerID:         s.OwnerID,
		Name:            s.Name,
	}
}

// EventType returns the event type name
func (e *ShopCreatedEvent) EventType() string {
	return EventTypeShopCreated
}

// ShopUpdatedEvent is raised after any committed mutation of a shop row.
// Version is the aggregate version at emission time and fences stale index
// jobs in the worker.
type ShopUpdatedEvent struct {
	shared.BaseDomainEvent
	ShopID  uuid.UUID `json:"shop_id"`
	Version int       `json:"version"`
}

// NewShopUpdatedEvent creates a new ShopUpdatedEvent
func NewShopUpdatedEvent(s *Shop) *ShopUpdatedEvent {
	return &ShopUpdatedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeShopUpdated, AggregateTypeShop, s.ID),
		ShopID:          s.ID,
		Version:         s.Version,
	}
}

// EventType returns the event type name
func (e *ShopUpdatedEvent) EventType() string {
	return EventTypeShopUpdated
}

// ShopDeletedEvent is raised when a shop is destroyed. It carries the stored
// image renditions so the bridge can release them without reloading the
// deleted row.
type ShopDeletedEvent struct {
	shared.BaseDomainEvent
	ShopID       uuid.UUID      `json:"shop_id"`
	FileVersions []ImageVersion `json:"file_versions"`
}

// NewShopDeletedEvent creates a new ShopDeletedEvent
func NewShopDeletedEvent(s *Shop) *ShopDeletedEvent {
	return &ShopDeletedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeShopDeleted, AggregateTypeShop, s.ID),
		ShopID:          s.ID,
		FileVersions:    s.UploadedVersions(),
	}
}

// EventType returns the event type name
func (e *ShopDeletedEvent) EventType() string {
	return EventTypeShopDeleted
}
