package router

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/agence-lumen/website-api/internal/config"
	"github.com/agence-lumen/website-api/internal/handler"
	middlewarepkg "github.com/agence-lumen/website-api/internal/middleware"
)

// Handlers aggregates HTTP handlers used by the router.
type Handlers struct {
	Contact      *handler.ContactHandler
	ContactStrip *handler.ContactStripHandler
	Services     *handler.ServicesHandler
}

// Register wires all HTTP routes for the API.
func Register(e *echo.Echo, cfg *config.Config, handlers Handlers) {
	e.GET("/healthz", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
	})

	api := e.Group("/api")
	api.GET("/services", handlers.Services.List)

	submitLimiter := middlewarepkg.SubmitRateLimiter(cfg.RateLimitSubmit)
	api.POST("/contact", handlers.Contact.Submit, submitLimiter)
	api.POST("/contact-strip", handlers.ContactStrip.Submit, submitLimiter)
}
