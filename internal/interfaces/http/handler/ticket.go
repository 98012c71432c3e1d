package handler

import (
	"github.com/gin-gonic/gin"

	appsupport "github.com/nicksmd/fu-marketplace-api/internal/application/support"
)

// TicketHandler handles admin support ticket endpoints
type TicketHandler struct {
	BaseHandler
	ticketService *appsupport.TicketService
}

// NewTicketHandler creates a new TicketHandler
func NewTicketHandler(ticketService *appsupport.TicketService) *TicketHandler {
	return &TicketHandler{ticketService: ticketService}
}

// List handles GET /admin/tickets
func (h *TicketHandler) List(c *gin.Context) {
	tickets, err := h.ticketService.List(c.Request.Context(), c.Query("status"), parseFilter(c))
	if err != nil {
		h.Error(c, err)
		return
	}
	h.Success(c, tickets)
}

// Get handles GET /admin/tickets/:ticketId
func (h *TicketHandler) Get(c *gin.Context) {
	ticketID, err := parseUUIDParam(c, "ticketId")
	if err != nil {
		h.Error(c, err)
		return
	}
	resp, err := h.ticketService.GetByID(c.Request.Context(), ticketID)
	if err != nil {
		h.Error(c, err)
		return
	}
	h.Success(c, resp)
}

// Open handles POST /tickets
func (h *TicketHandler) Open(c *gin.Context) {
	var req appsupport.OpenTicketRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err)
		return
	}
	resp, err := h.ticketService.Open(c.Request.Context(), req)
	if err != nil {
		h.Error(c, err)
		return
	}
	h.Created(c, resp)
}

// Investigate handles POST /admin/tickets/:ticketId/investigate
func (h *TicketHandler) Investigate(c *gin.Context) {
	ticketID, err := parseUUIDParam(c, "ticketId")
	if err != nil {
		h.Error(c, err)
		return
	}
	resp, err := h.ticketService.Investigate(c.Request.Context(), ticketID)
	if err != nil {
		h.Error(c, err)
		return
	}
	h.Success(c, resp)
}

// Close handles POST /admin/tickets/:ticketId/close
func (h *TicketHandler) Close(c *gin.Context) {
	ticketID, err := parseUUIDParam(c, "ticketId")
	if err != nil {
		h.Error(c, err)
		return
	}
	var req appsupport.CloseTicketRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err)
		return
	}
	resp, err := h.ticketService.Close(c.Request.Context(), ticketID, req)
	if err != nil {
		h.Error(c, err)
		return
	}
	h.Success(c, resp)
}
