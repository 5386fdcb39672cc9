package handler

import (
	"github.com/labstack/echo/v4"

	"github.com/cardly/business-card-api/internal/api/middleware"
	"github.com/cardly/business-card-api/internal/core/domain"
)

// ownerID returns the id of the authenticated user. A missing user means the
// route was registered without the Auth middleware; it is reported as 401.
func ownerID(c echo.Context) (string, error) {
	user, ok := middleware.CurrentUser(c)
	if !ok || user.ID == "" {
		return "", domain.ErrUnauthorized
	}
	return user.ID, nil
}

// bindAndValidate decodes the request body into req and runs its validate tags.
func bindAndValidate(c echo.Context, req any) error {
	if err := c.Bind(req); err != nil {
		return errInvalidPayload
	}
	return c.Validate(req)
}
