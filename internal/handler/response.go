package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/agence-lumen/website-api/internal/service"
)

// The form endpoints speak a fixed wire vocabulary: every response is a JSON
// object carrying either a "message" (success) or an "error" (failure),
// optionally with per-field "details". The UI collaborator renders its
// banners off these shapes.

type messageResponse struct {
	Message string `json:"message"`
}

type errorResponse struct {
	Error   string               `json:"error"`
	Details []service.FieldError `json:"details,omitempty"`
}

// Message sends the success shape.
func Message(c echo.Context, status int, message string) error {
	if status == 0 {
		status = http.StatusOK
	}
	return c.JSON(status, messageResponse{Message: message})
}

// Error sends the generic error shape.
func Error(c echo.Context, status int, message string) error {
	if status == 0 {
		status = http.StatusInternalServerError
	}
	return c.JSON(status, errorResponse{Error: message})
}

// ValidationFailed sends the 400 shape with field-level detail.
func ValidationFailed(c echo.Context, details []service.FieldError) error {
	return c.JSON(http.StatusBadRequest, errorResponse{Error: "Invalid form data", Details: details})
}
