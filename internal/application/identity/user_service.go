package identity

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/nicksmd/fu-marketplace-api/internal/domain/identity"
	"github.com/nicksmd/fu-marketplace-api/internal/domain/shared"
)

// CreateUserRequest is the payload for creating a user account
type CreateUserRequest struct {
	FullName string `json:"fullName" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Phone    string `json:"phone"`
}

// UpdateUserRequest is the payload for an admin user update.
// Only the listed fields may be changed; anything else in the request body is
// dropped.
type UpdateUserRequest struct {
	FullName *string `json:"fullName" binding:"omitempty,min=1"`
	Phone    *string `json:"phone"`
	Avatar   *string `json:"avatar"`
}

// UserResponse is the API representation of a user account
type UserResponse struct {
	ID             uuid.UUID `json:"id"`
	FullName       string    `json:"fullName"`
	Email          string    `json:"email"`
	Phone          string    `json:"phone"`
	Avatar         string    `json:"avatar"`
	IdentityNumber string    `json:"identityNumber"`
	CreatedAt      time.Time `json:"createdAt"`
	UpdatedAt      time.Time `json:"updatedAt"`
}

// ToUserResponse converts a user into its API representation
func ToUserResponse(u *identity.User) UserResponse {
	return UserResponse{
		ID:             u.ID,
		FullName:       u.FullName,
		Email:          u.Email,
		Phone:          u.Phone,
		Avatar:         u.Avatar,
		IdentityNumber: u.IdentityNumber,
		CreatedAt:      u.CreatedAt,
		UpdatedAt:      u.UpdatedAt,
	}
}

// UserService handles user account operations
type UserService struct {
	userRepo         identity.UserRepository
	notificationRepo identity.NotificationRepository
}

// NewUserService creates a new UserService
func NewUserService(userRepo identity.UserRepository, notificationRepo identity.NotificationRepository) *UserService {
	return &UserService{
		userRepo:         userRepo,
		notificationRepo: notificationRepo,
	}
}

// Create creates a new user account
func (s *UserService) Create(ctx context.Context, req CreateUserRequest) (*UserResponse, error) {
	u, err := identity.NewUser(req.FullName, req.Email)
	if err != nil {
		return nil, err
	}
	u.Phone = req.Phone

	if err := s.userRepo.Save(ctx, u); err != nil {
		return nil, err
	}

	resp := ToUserResponse(u)
	return &resp, nil
}

// GetByID retrieves a user by ID
func (s *UserService) GetByID(ctx context.Context, userID uuid.UUID) (*UserResponse, error) {
	u, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	resp := ToUserResponse(u)
	return &resp, nil
}

// List retrieves users with pagination
func (s *UserService) List(ctx context.Context, filter shared.Filter) ([]UserResponse, error) {
	users, err := s.userRepo.FindAll(ctx, filter)
	if err != nil {
		return nil, err
	}
	out := make([]UserResponse, len(users))
	for i := range users {
		out[i] = ToUserResponse(&users[i])
	}
	return out, nil
}

// Update applies an admin update to a user account
func (s *UserService) Update(ctx context.Context, userID uuid.UUID, req UpdateUserRequest) (*UserResponse, error) {
	u, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	if err := u.Update(identity.UpdateParams{
		FullName: req.FullName,
		Phone:    req.Phone,
		Avatar:   req.Avatar,
	}); err != nil {
		return nil, err
	}

	if err := s.userRepo.Save(ctx, u); err != nil {
		return nil, err
	}

	resp := ToUserResponse(u)
	return &resp, nil
}

// Notifications retrieves a user's notifications with pagination
func (s *UserService) Notifications(ctx context.Context, userID uuid.UUID, filter shared.Filter) ([]identity.UserNotification, error) {
	if _, err := s.userRepo.FindByID(ctx, userID); err != nil {
		return nil, err
	}
	return s.notificationRepo.FindByUser(ctx, userID, filter)
}
