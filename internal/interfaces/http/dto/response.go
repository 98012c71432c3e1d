package dto

import (
	"errors"
	"net/http"

	"github.com/nicksmd/fu-marketplace-api/internal/domain/shared"
)

// ErrorBody is the JSON shape of every error response
type ErrorBody struct {
	Status  int    `json:"status"`
	Type    string `json:"type"`
	Message string `json:"message"`
}

// FromError maps an error to its HTTP status and response body. Domain
// errors carry their own status and type tag; anything else is an opaque 500.
func FromError(err error) (int, ErrorBody) {
	var domainErr *shared.DomainError
	if errors.As(err, &domainErr) {
		return domainErr.Status, ErrorBody{
			Status:  domainErr.Status,
			Type:    domainErr.Kind,
			Message: domainErr.Message,
		}
	}
	return http.StatusInternalServerError, ErrorBody{
		Status:  http.StatusInternalServerError,
		Type:    "internal",
		Message: "Internal server error",
	}
}
