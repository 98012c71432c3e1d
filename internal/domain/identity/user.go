package identity

import (
	"github.com/nicksmd/fu-marketplace-api/internal/domain/shared"
)

// User is a marketplace account, buyer or seller
type User struct {
	shared.BaseEntity
	FullName       string `gorm:"size:255;not null" json:"fullName"`
	Email          string `gorm:"size:255;not null;uniqueIndex" json:"email"`
	Phone          string `json:"phone"`
	Avatar         string `json:"avatar"`
	IdentityNumber string `json:"identityNumber"`
}

// NewUser creates a new user account
func NewUser(fullName, email string) (*User, error) {
	if fullName == "" {
		return nil, shared.NewValidationError("INVALID_NAME", "User full name cannot be empty")
	}
	if email == "" {
		return nil, shared.NewValidationError("INVALID_EMAIL", "User email cannot be empty")
	}
	return &User{
		BaseEntity: shared.NewBaseEntity(),
		FullName:   fullName,
		Email:      email,
	}, nil
}

// UpdateParams holds the mutable user attributes for an admin update.
// Nil fields are left unchanged.
type UpdateParams struct {
	FullName *string
	Phone    *string
	Avatar   *string
}

// Update applies the given params
func (u *User) Update(params UpdateParams) error {
	if params.FullName != nil {
		if *params.FullName == "" {
			return shared.NewValidationError("INVALID_NAME", "User full name cannot be empty")
		}
		u.FullName = *params.FullName
	}
	if params.Phone != nil {
		u.Phone = *params.Phone
	}
	if params.Avatar != nil {
		u.Avatar = *params.Avatar
	}
	return nil
}

// SellerInfo is the denormalized owner payload embedded in shop responses
type SellerInfo struct {
	ID       string `json:"id"`
	FullName string `json:"fullName"`
	Email    string `json:"email"`
	Phone    string `json:"phone"`
	Avatar   string `json:"avatar"`
}

// AllSellerInfo returns the seller payload for shop responses
func (u *User) AllSellerInfo() SellerInfo {
	return SellerInfo{
		ID:       u.ID.String(),
		FullName: u.FullName,
		Email:    u.Email,
		Phone:    u.Phone,
		Avatar:   u.Avatar,
	}
}
