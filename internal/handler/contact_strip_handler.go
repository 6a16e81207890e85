package handler

import (
	"errors"
	"log"
	"net/http"

	"github.com/labstack/echo/v4"

	middlewarepkg "github.com/agence-lumen/website-api/internal/middleware"
	"github.com/agence-lumen/website-api/internal/service"
)

// ContactStripHandler receives leads from the condensed homepage form.
type ContactStripHandler struct {
	service *service.ContactService
}

// NewContactStripHandler wires a new ContactStripHandler instance.
func NewContactStripHandler(service *service.ContactService) *ContactStripHandler {
	return &ContactStripHandler{service: service}
}

// Submit handles POST /api/contact-strip. The pipeline mirrors the full form
// except for the side effect: strip leads are logged, not stored.
func (h *ContactStripHandler) Submit(c echo.Context) error {
	payload, err := decodeBody(c)
	if err != nil {
		log.Printf("contact strip body decode failed request_id=%s err=%v", middlewarepkg.RequestIDFromContext(c), err)
		return Error(c, http.StatusInternalServerError, "Internal server error")
	}

	form, fieldErrs := service.ValidateStripForm(payload)
	if len(fieldErrs) > 0 {
		return ValidationFailed(c, fieldErrs)
	}

	if err := h.service.SubmitStripLead(c.Request().Context(), form); err != nil {
		if errors.Is(err, service.ErrSpamDetected) {
			return Error(c, http.StatusBadRequest, "Spam detected")
		}
		log.Printf("contact strip submission failed request_id=%s err=%v", middlewarepkg.RequestIDFromContext(c), err)
		return Error(c, http.StatusInternalServerError, "Internal server error")
	}

	return Message(c, http.StatusOK, "Form submitted successfully")
}
