package shop

import (
	"net/http"

	"github.com/google/uuid"

	"github.com/nicksmd/fu-marketplace-api/internal/domain/identity"
	"github.com/nicksmd/fu-marketplace-api/internal/domain/shared"
)

// ShopStatus represents the publication status of a shop
type ShopStatus int

const (
	ShopStatusUnpublished ShopStatus = 0
	ShopStatusPublished   ShopStatus = 1
)

// IsValid checks if the status is a known ShopStatus
func (s ShopStatus) IsValid() bool {
	return s == ShopStatusUnpublished || s == ShopStatusPublished
}

// Maximum accepted upload sizes for shop images
const (
	MaxAvatarSize = 3 * 1024 * 1024
	MaxCoverSize  = 3 * 1024 * 1024
)

// ImageVersion is one stored rendition of an uploaded image
type ImageVersion struct {
	URL string `json:"url"`
	Key string `json:"key"`
}

// ImageFile holds the stored renditions of an uploaded image
type ImageFile struct {
	Versions []ImageVersion `json:"versions"`
}

// Shop is the aggregate root for a seller's shop.
// Its search-index document is a downstream projection of this row; every
// committed mutation must be followed by an index update, either synchronous
// or through the job queue.
type Shop struct {
	shared.BaseAggregateRoot
	Name        string         `gorm:"size:255;not null" json:"name"`
	Description string         `gorm:"size:255;not null" json:"description"`
	Avatar      string         `json:"avatar"`
	Cover       string         `json:"cover"`
	AvatarFile  *ImageFile     `gorm:"serializer:json" json:"-"`
	CoverFile   *ImageFile     `gorm:"serializer:json" json:"-"`
	Opening     bool           `gorm:"not null;default:false" json:"opening"`
	OwnerID     uuid.UUID      `gorm:"type:uuid;not null" json:"ownerId"`
	Owner       *identity.User `gorm:"foreignKey:OwnerID" json:"-"`
	Banned      bool           `gorm:"not null;default:false" json:"banned"`
	Address     string         `json:"address"`
	Status      ShopStatus     `gorm:"not null;default:0" json:"status"`
	ShipPlaces  []ShipPlace    `gorm:"many2many:shop_ship_places" json:"-"`
}

// NewShop creates a new shop owned by the given user
func NewShop(ownerID uuid.UUID, name, description, address string) (*Shop, error) {
	if ownerID == uuid.Nil {
		return nil, shared.NewValidationError("INVALID_OWNER", "Shop owner cannot be empty")
	}
	if name == "" || len(name) > 255 {
		return nil, shared.NewValidationError("INVALID_NAME", "Shop name must be between 1 and 255 characters")
	}
	if description == "" || len(description) > 255 {
		return nil, shared.NewValidationError("INVALID_DESCRIPTION", "Shop description must be between 1 and 255 characters")
	}

	s := &Shop{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		Name:              name,
		Description:       description,
		OwnerID:           ownerID,
		Address:           address,
		Status:            ShopStatusUnpublished,
	}
	s.AddDomainEvent(NewShopCreatedEvent(s))
	return s, nil
}

// UpdateParams holds the mutable shop attributes for an admin update.
// Nil fields are left unchanged.
type UpdateParams struct {
	Name        *string
	Description *string
	Opening     *bool
	Banned      *bool
	Address     *string
	Status      *ShopStatus
}

// Update applies the given params and records a ShopUpdated event
func (s *Shop) Update(params UpdateParams) error {
	if params.Name != nil {
		if *params.Name == "" || len(*params.Name) > 255 {
			return shared.NewValidationError("INVALID_NAME", "Shop name must be between 1 and 255 characters")
		}
		s.Name = *params.Name
	}
	if params.Description != nil {
		if *params.Description == "" || len(*params.Description) > 255 {
			return shared.NewValidationError("INVALID_DESCRIPTION", "Shop description must be between 1 and 255 characters")
		}
		s.Description = *params.Description
	}
	if params.Opening != nil {
		s.Opening = *params.Opening
	}
	if params.Banned != nil {
		s.Banned = *params.Banned
	}
	if params.Address != nil {
		s.Address = *params.Address
	}
	if params.Status != nil {
		if !params.Status.IsValid() {
			return shared.NewDomainError(http.StatusNotFound, shared.KindQuery, "INVALID_STATUS", "Invalid shop status")
		}
		s.Status = *params.Status
	}

	s.AddDomainEvent(NewShopUpdatedEvent(s))
	return nil
}

// SetAvatarUpload records the stored avatar renditions and public URL
func (s *Shop) SetAvatarUpload(url string, versions []ImageVersion) {
	s.Avatar = url
	s.AvatarFile = &ImageFile{Versions: versions}
	s.AddDomainEvent(NewShopUpdatedEvent(s))
}

// SetCoverUpload records the stored cover renditions and public URL
func (s *Shop) SetCoverUpload(url string, versions []ImageVersion) {
	s.Cover = url
	s.CoverFile = &ImageFile{Versions: versions}
	s.AddDomainEvent(NewShopUpdatedEvent(s))
}

// MarkDeleted records a ShopDeleted event carrying the uploaded file versions
// that must be released
func (s *Shop) MarkDeleted() {
	s.AddDomainEvent(NewShopDeletedEvent(s))
}

// UploadedVersions returns every stored image rendition of the shop
func (s *Shop) UploadedVersions() []ImageVersion {
	var versions []ImageVersion
	if s.AvatarFile != nil {
		versions = append(versions, s.AvatarFile.Versions...)
	}
	if s.CoverFile != nil {
		versions = append(versions, s.CoverFile.Versions...)
	}
	return versions
}

// ShipPlaceIDs returns the ids of the shop's shipping destinations
func (s *Shop) ShipPlaceIDs() []uuid.UUID {
	ids := make([]uuid.UUID, len(s.ShipPlaces))
	for i, sp := range s.ShipPlaces {
		ids[i] = sp.ID
	}
	return ids
}
