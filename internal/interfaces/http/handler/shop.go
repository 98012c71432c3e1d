package handler

import (
	"context"
	"io"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	appshop "github.com/nicksmd/fu-marketplace-api/internal/application/shop"
	"github.com/nicksmd/fu-marketplace-api/internal/domain/shared"
	"github.com/nicksmd/fu-marketplace-api/internal/domain/shop"
)

// ShopHandler handles admin shop endpoints
type ShopHandler struct {
	BaseHandler
	shopService *appshop.ShopService
	itemService *appshop.ItemService
}

// NewShopHandler creates a new ShopHandler
func NewShopHandler(shopService *appshop.ShopService, itemService *appshop.ItemService) *ShopHandler {
	return &ShopHandler{
		shopService: shopService,
		itemService: itemService,
	}
}

// List handles GET /admin/shops
func (h *ShopHandler) List(c *gin.Context) {
	shops, err := h.shopService.List(c.Request.Context(), parseFilter(c))
	if err != nil {
		h.Error(c, err)
		return
	}
	h.Success(c, shops)
}

// Get handles GET /admin/shops/:shopId
func (h *ShopHandler) Get(c *gin.Context) {
	shopID, err := parseUUIDParam(c, "shopId")
	if err != nil {
		h.Error(c, err)
		return
	}
	resp, err := h.shopService.GetByID(c.Request.Context(), shopID)
	if err != nil {
		h.Error(c, err)
		return
	}
	h.Success(c, resp)
}

// Create handles POST /admin/shops
func (h *ShopHandler) Create(c *gin.Context) {
	var req appshop.CreateShopRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err)
		return
	}
	resp, err := h.shopService.Create(c.Request.Context(), req)
	if err != nil {
		h.Error(c, err)
		return
	}
	h.Created(c, resp)
}

// Update handles PUT /admin/shops/:shopId
func (h *ShopHandler) Update(c *gin.Context) {
	shopID, err := parseUUIDParam(c, "shopId")
	if err != nil {
		h.Error(c, err)
		return
	}
	var req appshop.UpdateShopRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err)
		return
	}
	resp, err := h.shopService.Update(c.Request.Context(), shopID, req)
	if err != nil {
		h.Error(c, err)
		return
	}
	h.Success(c, resp)
}

// Delete handles DELETE /admin/shops/:shopId
func (h *ShopHandler) Delete(c *gin.Context) {
	shopID, err := parseUUIDParam(c, "shopId")
	if err != nil {
		h.Error(c, err)
		return
	}
	if err := h.shopService.Delete(c.Request.Context(), shopID); err != nil {
		h.Error(c, err)
		return
	}
	h.NoContent(c)
}

// UploadAvatar handles POST /admin/shops/:shopId/avatar
func (h *ShopHandler) UploadAvatar(c *gin.Context) {
	h.uploadImage(c, h.shopService.UploadAvatar)
}

// UploadCover handles POST /admin/shops/:shopId/cover
func (h *ShopHandler) UploadCover(c *gin.Context) {
	h.uploadImage(c, h.shopService.UploadCover)
}

// SetShipPlaces handles POST /admin/shops/:shopId/shipPlaces
func (h *ShopHandler) SetShipPlaces(c *gin.Context) {
	shopID, err := parseUUIDParam(c, "shopId")
	if err != nil {
		h.Error(c, err)
		return
	}
	var req appshop.SetShipPlacesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err)
		return
	}
	resp, err := h.shopService.SetShipPlaces(c.Request.Context(), shopID, req.ShipPlaces)
	if err != nil {
		h.Error(c, err)
		return
	}
	h.Success(c, resp)
}

// Reindex handles POST /admin/shops/:shopId/reindex
func (h *ShopHandler) Reindex(c *gin.Context) {
	shopID, err := parseUUIDParam(c, "shopId")
	if err != nil {
		h.Error(c, err)
		return
	}
	if err := h.shopService.Reindex(c.Request.Context(), shopID); err != nil {
		h.Error(c, err)
		return
	}
	h.NoContent(c)
}

// ListItems handles GET /admin/shops/:shopId/items
func (h *ShopHandler) ListItems(c *gin.Context) {
	shopID, err := parseUUIDParam(c, "shopId")
	if err != nil {
		h.Error(c, err)
		return
	}
	items, err := h.itemService.ListByShop(c.Request.Context(), shopID)
	if err != nil {
		h.Error(c, err)
		return
	}
	h.Success(c, items)
}

// CreateItem handles POST /admin/shops/:shopId/items
func (h *ShopHandler) CreateItem(c *gin.Context) {
	shopID, err := parseUUIDParam(c, "shopId")
	if err != nil {
		h.Error(c, err)
		return
	}
	var req appshop.CreateItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err)
		return
	}
	item, err := h.itemService.Create(c.Request.Context(), shopID, req)
	if err != nil {
		h.Error(c, err)
		return
	}
	h.Created(c, item)
}

// UpdateItem handles PUT /admin/shops/:shopId/items/:itemId
func (h *ShopHandler) UpdateItem(c *gin.Context) {
	shopID, err := parseUUIDParam(c, "shopId")
	if err != nil {
		h.Error(c, err)
		return
	}
	itemID, err := parseUUIDParam(c, "itemId")
	if err != nil {
		h.Error(c, err)
		return
	}
	var req appshop.UpdateItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err)
		return
	}
	item, err := h.itemService.Update(c.Request.Context(), shopID, itemID, req)
	if err != nil {
		h.Error(c, err)
		return
	}
	h.Success(c, item)
}

// uploadImage reads the multipart image field and delegates to the given
// upload operation
func (h *ShopHandler) uploadImage(c *gin.Context, upload func(ctx context.Context, shopID uuid.UUID, body io.Reader, contentType string) (*appshop.ShopResponse, error)) {
	shopID, err := parseUUIDParam(c, "shopId")
	if err != nil {
		h.Error(c, err)
		return
	}

	fileHeader, err := c.FormFile("image")
	if err != nil {
		h.BadRequest(c, "Must upload an image file")
		return
	}
	if fileHeader.Size > shop.MaxAvatarSize {
		h.Error(c, shared.NewValidationError("FILE_TOO_LARGE", "Image exceeds the maximum upload size"))
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		h.Error(c, err)
		return
	}
	defer file.Close()

	resp, err := upload(c.Request.Context(), shopID, file, fileHeader.Header.Get("Content-Type"))
	if err != nil {
		h.Error(c, err)
		return
	}
	h.Success(c, resp)
}
