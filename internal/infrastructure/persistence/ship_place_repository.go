package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/nicksmd/fu-marketplace-api/internal/domain/shop"
)

// GormShipPlaceRepository implements shop.ShipPlaceRepository using GORM
type GormShipPlaceRepository struct {
	db *gorm.DB
}

// NewGormShipPlaceRepository creates a new GormShipPlaceRepository
func NewGormShipPlaceRepository(db *gorm.DB) *GormShipPlaceRepository {
	return &GormShipPlaceRepository{db: db}
}

// FindByIDs finds ship places by their ids. Unknown ids are dropped.
func (r *GormShipPlaceRepository) FindByIDs(ctx context.Context, ids []uuid.UUID) ([]shop.ShipPlace, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	var places []shop.ShipPlace
	if err := r.db.WithContext(ctx).Where("id IN ?", ids).Find(&places).Error; err != nil {
		return nil, err
	}
	return places, nil
}

// FindOrCreateByName finds a ship place by name, creating it if absent
func (r *GormShipPlaceRepository) FindOrCreateByName(ctx context.Context, name string) (*shop.ShipPlace, error) {
	var place shop.ShipPlace
	err := r.db.WithContext(ctx).Where("name = ?", name).First(&place).Error
	if err == nil {
		return &place, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	created, err := shop.NewShipPlace(name)
	if err != nil {
		return nil, err
	}
	if err := r.db.WithContext(ctx).Create(created).Error; err != nil {
		return nil, err
	}
	return created, nil
}
