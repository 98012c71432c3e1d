package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/nicksmd/fu-marketplace-api/internal/domain/shared"
	"github.com/nicksmd/fu-marketplace-api/internal/domain/shop"
)

// GormShopRepository implements shop.ShopRepository using GORM
type GormShopRepository struct {
	db *gorm.DB
}

// NewGormShopRepository creates a new GormShopRepository
func NewGormShopRepository(db *gorm.DB) *GormShopRepository {
	return &GormShopRepository{db: db}
}

// FindByID finds a shop by its ID with ship places and owner loaded
func (r *GormShopRepository) FindByID(ctx context.Context, id uuid.UUID) (*shop.Shop, error) {
	var s shop.Shop
	if err := r.db.WithContext(ctx).
		Preload("ShipPlaces").
		Preload("Owner").
		First(&s, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shop.ErrShopNotFound
		}
		return nil, err
	}
	return &s, nil
}

// FindAll finds shops with pagination
func (r *GormShopRepository) FindAll(ctx context.Context, filter shared.Filter) ([]shop.Shop, error) {
	var shops []shop.Shop
	query := r.db.WithContext(ctx).Model(&shop.Shop{}).
		Preload("ShipPlaces").
		Preload("Owner")
	query = applyFilters(query, filter.Filters)
	if err := query.
		Order("created_at DESC").
		Offset(filter.Offset()).
		Limit(filter.Limit()).
		Find(&shops).Error; err != nil {
		return nil, err
	}
	return shops, nil
}

// Count counts shops matching the filter
func (r *GormShopRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	var count int64
	query := r.db.WithContext(ctx).Model(&shop.Shop{})
	query = applyFilters(query, filter.Filters)
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// Save creates a new shop
func (r *GormShopRepository) Save(ctx context.Context, s *shop.Shop) error {
	return r.db.WithContext(ctx).Omit("ShipPlaces", "Owner").Create(s).Error
}

// SaveWithLock updates a shop guarded by an optimistic version check. A
// concurrent writer that committed first makes the check fail with
// ErrConcurrency; callers reload and retry.
func (r *GormShopRepository) SaveWithLock(ctx context.Context, s *shop.Shop) error {
	currentVersion := s.Version
	s.IncrementVersion()

	result := r.db.WithContext(ctx).
		Model(&shop.Shop{}).
		Where("id = ? AND version = ?", s.ID, currentVersion).
		Select("*").
		Omit("id", "created_at", "ShipPlaces", "Owner").
		Updates(s)
	if result.Error != nil {
		s.Version = currentVersion
		return result.Error
	}
	if result.RowsAffected == 0 {
		s.Version = currentVersion
		return shared.ErrConcurrency
	}
	return nil
}

// ReplaceShipPlaces atomically replaces a shop's ship-place set
func (r *GormShopRepository) ReplaceShipPlaces(ctx context.Context, s *shop.Shop, places []shop.ShipPlace) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(s).Association("ShipPlaces").Replace(places); err != nil {
			return err
		}
		s.ShipPlaces = places
		return nil
	})
}

// Delete removes a shop row together with its join rows
func (r *GormShopRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Exec("DELETE FROM shop_ship_places WHERE shop_id = ?", id).Error; err != nil {
			return err
		}
		result := tx.Delete(&shop.Shop{}, "id = ?", id)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return shop.ErrShopNotFound
		}
		return nil
	})
}

// applyFilters applies simple equality filters to a query
func applyFilters(query *gorm.DB, filters map[string]interface{}) *gorm.DB {
	for key, value := range filters {
		query = query.Where(key+" = ?", value)
	}
	return query
}
