package handler

import (
	"github.com/gin-gonic/gin"

	appshop "github.com/nicksmd/fu-marketplace-api/internal/application/shop"
	apptrade "github.com/nicksmd/fu-marketplace-api/internal/application/trade"
)

// OrderHandler handles buyer-facing order and review endpoints
type OrderHandler struct {
	BaseHandler
	orderService  *apptrade.OrderService
	reviewService *appshop.ReviewService
}

// NewOrderHandler creates a new OrderHandler
func NewOrderHandler(orderService *apptrade.OrderService, reviewService *appshop.ReviewService) *OrderHandler {
	return &OrderHandler{
		orderService:  orderService,
		reviewService: reviewService,
	}
}

// PlaceOrder handles POST /shops/:shopId/orders
func (h *OrderHandler) PlaceOrder(c *gin.Context) {
	shopID, err := parseUUIDParam(c, "shopId")
	if err != nil {
		h.Error(c, err)
		return
	}
	var req apptrade.PlaceOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err)
		return
	}
	resp, err := h.orderService.PlaceOrder(c.Request.Context(), shopID, req)
	if err != nil {
		h.Error(c, err)
		return
	}
	h.Created(c, resp)
}

// ListOrders handles GET /shops/:shopId/orders
func (h *OrderHandler) ListOrders(c *gin.Context) {
	shopID, err := parseUUIDParam(c, "shopId")
	if err != nil {
		h.Error(c, err)
		return
	}
	orders, err := h.orderService.ListByShop(c.Request.Context(), shopID, parseFilter(c))
	if err != nil {
		h.Error(c, err)
		return
	}
	h.Success(c, orders)
}

// GetOrder handles GET /orders/:orderId
func (h *OrderHandler) GetOrder(c *gin.Context) {
	orderID, err := parseUUIDParam(c, "orderId")
	if err != nil {
		h.Error(c, err)
		return
	}
	resp, err := h.orderService.GetByID(c.Request.Context(), orderID)
	if err != nil {
		h.Error(c, err)
		return
	}
	h.Success(c, resp)
}

// Review handles POST /shops/:shopId/review
func (h *OrderHandler) Review(c *gin.Context) {
	shopID, err := parseUUIDParam(c, "shopId")
	if err != nil {
		h.Error(c, err)
		return
	}
	var req appshop.ReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err)
		return
	}
	resp, err := h.reviewService.Submit(c.Request.Context(), shopID, req)
	if err != nil {
		h.Error(c, err)
		return
	}
	h.Success(c, resp)
}

// ListReviews handles GET /shops/:shopId/reviews
func (h *OrderHandler) ListReviews(c *gin.Context) {
	shopID, err := parseUUIDParam(c, "shopId")
	if err != nil {
		h.Error(c, err)
		return
	}
	reviews, err := h.reviewService.ListByShop(c.Request.Context(), shopID, parseFilter(c))
	if err != nil {
		h.Error(c, err)
		return
	}
	h.Success(c, reviews)
}
