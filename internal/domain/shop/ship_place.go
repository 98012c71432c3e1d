package shop

import (
	"github.com/nicksmd/fu-marketplace-api/internal/domain/shared"
)

// ShipPlace is a shipping destination a shop declares it can deliver to
type ShipPlace struct {
	shared.BaseEntity
	Name string `gorm:"size:255;not null;uniqueIndex" json:"name"`
}

// NewShipPlace creates a new shipping destination
func NewShipPlace(name string) (*ShipPlace, error) {
	if name == "" {
		return nil, shared.NewValidationError("INVALID_NAME", "Ship place name cannot be empty")
	}
	return &ShipPlace{
		BaseEntity: shared.NewBaseEntity(),
		Name:       name,
	}, nil
}
