package handler

import (
	"github.com/gin-gonic/gin"

	appidentity "github.com/nicksmd/fu-marketplace-api/internal/application/identity"
)

// UserHandler handles admin user endpoints
type UserHandler struct {
	BaseHandler
	userService *appidentity.UserService
}

// NewUserHandler creates a new UserHandler
func NewUserHandler(userService *appidentity.UserService) *UserHandler {
	return &UserHandler{userService: userService}
}

// List handles GET /admin/users
func (h *UserHandler) List(c *gin.Context) {
	users, err := h.userService.List(c.Request.Context(), parseFilter(c))
	if err != nil {
		h.Error(c, err)
		return
	}
	h.Success(c, users)
}

// Get handles GET /admin/users/:userId
func (h *UserHandler) Get(c *gin.Context) {
	userID, err := parseUUIDParam(c, "userId")
	if err != nil {
		h.Error(c, err)
		return
	}
	resp, err := h.userService.GetByID(c.Request.Context(), userID)
	if err != nil {
		h.Error(c, err)
		return
	}
	h.Success(c, resp)
}

// Create handles POST /admin/users
func (h *UserHandler) Create(c *gin.Context) {
	var req appidentity.CreateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err)
		return
	}
	resp, err := h.userService.Create(c.Request.Context(), req)
	if err != nil {
		h.Error(c, err)
		return
	}
	h.Created(c, resp)
}

// Update handles PUT /admin/users/:userId
func (h *UserHandler) Update(c *gin.Context) {
	userID, err := parseUUIDParam(c, "userId")
	if err != nil {
		h.Error(c, err)
		return
	}
	var req appidentity.UpdateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err)
		return
	}
	resp, err := h.userService.Update(c.Request.Context(), userID, req)
	if err != nil {
		h.Error(c, err)
		return
	}
	h.Success(c, resp)
}

// Notifications handles GET /admin/users/:userId/notifications
func (h *UserHandler) Notifications(c *gin.Context) {
	userID, err := parseUUIDParam(c, "userId")
	if err != nil {
		h.Error(c, err)
		return
	}
	notifications, err := h.userService.Notifications(c.Request.Context(), userID, parseFilter(c))
	if err != nil {
		h.Error(c, err)
		return
	}
	h.Success(c, notifications)
}
