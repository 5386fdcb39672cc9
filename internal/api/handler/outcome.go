package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/cardly/business-card-api/internal/core/domain"
)

var errInvalidPayload = echo.NewHTTPError(http.StatusBadRequest, "invalid payload")

// outcome classifies an operation result into a metric label value.
func outcome(err error) string {
	switch {
	case err == nil:
		return "success"
	case domain.IsValidation(err),
		errors.Is(err, domain.ErrInvalidPhoto),
		errors.Is(err, domain.ErrInvalidCredentials),
		errors.Is(err, errInvalidPayload):
		return "invalid"
	case errors.Is(err, domain.ErrUserExists), errors.Is(err, domain.ErrProfileExists):
		return "conflict"
	case errors.Is(err, domain.ErrProfileNotFound),
		errors.Is(err, domain.ErrUserNotFound),
		errors.Is(err, domain.ErrLinkNotFound):
		return "not_found"
	default:
		return "error"
	}
}
