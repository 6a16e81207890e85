package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/agence-lumen/website-api/internal/service"
)

// ServicesHandler exposes the catalogue of service identifiers the contact
// form's multi-select draws from.
type ServicesHandler struct{}

// NewServicesHandler creates a new handler instance.
func NewServicesHandler() *ServicesHandler {
	return &ServicesHandler{}
}

// List handles GET /api/services.
func (h *ServicesHandler) List(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]any{"services": service.ServiceKeys()})
}
