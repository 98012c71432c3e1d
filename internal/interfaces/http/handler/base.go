package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/nicksmd/fu-marketplace-api/internal/domain/shared"
	"github.com/nicksmd/fu-marketplace-api/internal/interfaces/http/dto"
	"github.com/nicksmd/fu-marketplace-api/internal/interfaces/http/middleware"
)

// BaseHandler provides common handler utilities
type BaseHandler struct{}

// Success sends a 200 response with the given payload
func (h *BaseHandler) Success(c *gin.Context, data any) {
	c.JSON(http.StatusOK, data)
}

// Created sends a 201 response with the given payload
func (h *BaseHandler) Created(c *gin.Context, data any) {
	c.JSON(http.StatusCreated, data)
}

// NoContent sends a 204 response
func (h *BaseHandler) NoContent(c *gin.Context) {
	c.Status(http.StatusNoContent)
}

// Error maps an error to its HTTP response
func (h *BaseHandler) Error(c *gin.Context, err error) {
	_ = c.Error(err)
	status, body := dto.FromError(err)
	c.JSON(status, body)
}

// BadRequest sends a 400 validation error
func (h *BaseHandler) BadRequest(c *gin.Context, message string) {
	h.Error(c, shared.NewValidationError("BAD_REQUEST", message))
}

// BindError sends a 400 for a failed request binding, with per-field
// messages when the failure came from struct validation
func (h *BaseHandler) BindError(c *gin.Context, err error) {
	h.Error(c, middleware.BindingError(err))
}

// parseUUIDParam parses a uuid path parameter. A malformed id is a param
// error with status 422, matching the routing contract for shaped-but-bad
// identifiers.
func parseUUIDParam(c *gin.Context, name string) (uuid.UUID, error) {
	id, err := uuid.Parse(c.Param(name))
	if err != nil {
		return uuid.Nil, shared.NewDomainError(http.StatusUnprocessableEntity, shared.KindParam,
			"INVALID_ID", "Invalid "+name+" parameter")
	}
	return id, nil
}

// parseFilter builds a pagination filter from the page and perPage query
// parameters
func parseFilter(c *gin.Context) shared.Filter {
	filter := shared.DefaultFilter()
	if page, err := strconv.Atoi(c.Query("page")); err == nil && page > 0 {
		filter.Page = page
	}
	if perPage, err := strconv.Atoi(c.Query("perPage")); err == nil && perPage > 0 {
		filter.PageSize = perPage
	}
	return filter
}
