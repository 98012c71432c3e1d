package identity

import (
	"context"

	"github.com/google/uuid"

	"github.com/nicksmd/fu-marketplace-api/internal/domain/shared"
)

// User context errors
var ErrUserNotFound = shared.NewNotFoundError("USER_NOT_FOUND", "User does not exist")

// UserRepository defines the interface for user persistence
type UserRepository interface {
	// FindByID finds a user by ID
	FindByID(ctx context.Context, id uuid.UUID) (*User, error)

	// FindAll finds users with pagination
	FindAll(ctx context.Context, filter shared.Filter) ([]User, error)

	// Save creates or updates a user
	Save(ctx context.Context, u *User) error
}

// NotificationRepository defines the interface for notification persistence
type NotificationRepository interface {
	// CreateForSeller creates a notification for the seller who owns the shop
	// the given order targets
	CreateForSeller(ctx context.Context, orderID uuid.UUID, typ NotificationType) error

	// FindByUser finds a user's notifications
	FindByUser(ctx context.Context, userID uuid.UUID, filter shared.Filter) ([]UserNotification, error)
}
