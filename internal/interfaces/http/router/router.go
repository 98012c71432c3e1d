package router

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/nicksmd/fu-marketplace-api/internal/infrastructure/config"
	"github.com/nicksmd/fu-marketplace-api/internal/infrastructure/logger"
	"github.com/nicksmd/fu-marketplace-api/internal/interfaces/http/handler"
	"github.com/nicksmd/fu-marketplace-api/internal/interfaces/http/middleware"
)

// Handlers bundles the handlers the router wires up
type Handlers struct {
	Shop   *handler.ShopHandler
	Order  *handler.OrderHandler
	Ticket *handler.TicketHandler
	User   *handler.UserHandler
}

// New builds the gin engine with middleware and all API routes
func New(cfg *config.Config, log *zap.Logger, h Handlers) *gin.Engine {
	if cfg.App.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	engine := gin.New()
	engine.Use(
		logger.RequestID(),
		logger.GinMiddleware(log),
		logger.Recovery(log),
		middleware.BodyLimit(cfg.HTTP.MaxBodySize),
	)

	engine.GET("/healthz", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	api := engine.Group("/api/v1")

	shops := api.Group("/shops")
	{
		shops.POST("/:shopId/orders", h.Order.PlaceOrder)
		shops.GET("/:shopId/orders", h.Order.ListOrders)
		shops.POST("/:shopId/review", h.Order.Review)
		shops.GET("/:shopId/reviews", h.Order.ListReviews)
	}

	api.GET("/orders/:orderId", h.Order.GetOrder)
	api.POST("/tickets", h.Ticket.Open)

	admin := api.Group("/admin")
	{
		adminShops := admin.Group("/shops")
		{
			adminShops.GET("", h.Shop.List)
			adminShops.POST("", h.Shop.Create)
			adminShops.GET("/:shopId", h.Shop.Get)
			adminShops.PUT("/:shopId", h.Shop.Update)
			adminShops.DELETE("/:shopId", h.Shop.Delete)
			adminShops.POST("/:shopId/avatar", h.Shop.UploadAvatar)
			adminShops.POST("/:shopId/cover", h.Shop.UploadCover)
			adminShops.POST("/:shopId/shipPlaces", h.Shop.SetShipPlaces)
			adminShops.POST("/:shopId/reindex", h.Shop.Reindex)
			adminShops.GET("/:shopId/items", h.Shop.ListItems)
			adminShops.POST("/:shopId/items", h.Shop.CreateItem)
			adminShops.PUT("/:shopId/items/:itemId", h.Shop.UpdateItem)
		}

		adminTickets := admin.Group("/tickets")
		{
			adminTickets.GET("", h.Ticket.List)
			adminTickets.GET("/:ticketId", h.Ticket.Get)
			adminTickets.POST("/:ticketId/investigate", h.Ticket.Investigate)
			adminTickets.POST("/:ticketId/close", h.Ticket.Close)
		}

		adminUsers := admin.Group("/users")
		{
			adminUsers.GET("", h.User.List)
			adminUsers.POST("", h.User.Create)
			adminUsers.GET("/:userId", h.User.Get)
			adminUsers.PUT("/:userId", h.User.Update)
			adminUsers.GET("/:userId/notifications", h.User.Notifications)
		}
	}

	return engine
}
