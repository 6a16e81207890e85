package handler

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"github.com/labstack/echo/v4"

	middlewarepkg "github.com/agence-lumen/website-api/internal/middleware"
	"github.com/agence-lumen/website-api/internal/service"
)

// ContactHandler receives full contact form submissions.
type ContactHandler struct {
	service *service.ContactService
}

// NewContactHandler wires a new ContactHandler instance.
func NewContactHandler(service *service.ContactService) *ContactHandler {
	return &ContactHandler{service: service}
}

// Submit handles POST /api/contact: decode, validate, honeypot gate, persist.
// Validation failures name the offending fields; spam and internal failures
// deliberately do not say more than they have to.
func (h *ContactHandler) Submit(c echo.Context) error {
	payload, err := decodeBody(c)
	if err != nil {
		// A body that is not a JSON object surfaces as an internal error,
		// matching the rest of the failure taxonomy.
		log.Printf("contact form body decode failed request_id=%s err=%v", middlewarepkg.RequestIDFromContext(c), err)
		return Error(c, http.StatusInternalServerError, "Internal server error")
	}

	form, fieldErrs := service.ValidateContactForm(payload)
	if len(fieldErrs) > 0 {
		return ValidationFailed(c, fieldErrs)
	}

	if _, err := h.service.SubmitContactForm(c.Request().Context(), form); err != nil {
		if errors.Is(err, service.ErrSpamDetected) {
			return Error(c, http.StatusBadRequest, "Spam detected")
		}
		log.Printf("contact form submission failed request_id=%s err=%v", middlewarepkg.RequestIDFromContext(c), err)
		return Error(c, http.StatusInternalServerError, "Internal server error")
	}

	return Message(c, http.StatusOK, "Form submitted successfully")
}

func decodeBody(c echo.Context) (map[string]any, error) {
	var payload map[string]any
	if err := json.NewDecoder(c.Request().Body).Decode(&payload); err != nil {
		return nil, err
	}
	return payload, nil
}
