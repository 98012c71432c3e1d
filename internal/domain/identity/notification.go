package identity

import (
	"github.com/google/uuid"

	"github.com/nicksmd/fu-marketplace-api/internal/domain/shared"
)

// NotificationType identifies the kind of a user notification
type NotificationType int

const (
	// NotificationUserPlaceOrder informs a seller that a buyer placed an order
	NotificationUserPlaceOrder NotificationType = 1
)

// NotificationData is the JSON payload of a notification
type NotificationData struct {
	OrderID uuid.UUID `json:"orderId"`
	ShopID  uuid.UUID `json:"shopId,omitempty"`
}

// UserNotification is a message delivered to a user's inbox
type UserNotification struct {
	shared.BaseEntity
	UserID uuid.UUID        `gorm:"type:uuid;not null;index" json:"userId"`
	Type   NotificationType `gorm:"not null" json:"type"`
	Read   bool             `gorm:"not null;default:false" json:"read"`
	Data   NotificationData `gorm:"serializer:json" json:"data"`
}

// NewUserNotification creates a new notification for a user
func NewUserNotification(userID uuid.UUID, typ NotificationType, data NotificationData) *UserNotification {
	return &UserNotification{
		BaseEntity: shared.NewBaseEntity(),
		UserID:     userID,
		Type:       typ,
		Data:       data,
	}
}
