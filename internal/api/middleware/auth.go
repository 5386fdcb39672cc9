package middleware

import (
	"errors"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/cardly/business-card-api/internal/core/domain"
	"github.com/cardly/business-card-api/internal/core/ports"
)

// TokenHeader carries the identity token on protected requests.
const TokenHeader = "x-auth-token"

const userContextKey = "user"

// Auth verifies the request token and stores the resolved, password-free user
// on the context. It fails with domain.ErrUnauthorized when no token is sent
// and domain.ErrInvalidToken when the token or its user is not valid.
func Auth(identity ports.IdentityService) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			token := extractToken(c)
			if token == "" {
				return domain.ErrUnauthorized
			}

			userID, err := identity.Verify(token)
			if err != nil {
				return domain.ErrInvalidToken
			}

			user, err := identity.Resolve(c.Request().Context(), userID)
			if err != nil {
				if errors.Is(err, domain.ErrUserNotFound) {
					return domain.ErrInvalidToken
				}
				return err
			}

			SetCurrentUser(c, user)
			return next(c)
		}
	}
}

// SetCurrentUser stores a copy of user on the context without its password hash.
func SetCurrentUser(c echo.Context, user *domain.User) {
	u := *user
	u.PasswordHash = ""
	c.Set(userContextKey, &u)
}

// CurrentUser returns the user stored by Auth.
func CurrentUser(c echo.Context) (*domain.User, bool) {
	user, ok := c.Get(userContextKey).(*domain.User)
	return user, ok && user != nil
}

// extractToken reads x-auth-token, falling back to an Authorization bearer token.
func extractToken(c echo.Context) string {
	if tok := strings.TrimSpace(c.Request().Header.Get(TokenHeader)); tok != "" {
		return tok
	}
	parts := strings.SplitN(c.Request().Header.Get(echo.HeaderAuthorization), " ", 2)
	if len(parts) == 2 && strings.EqualFold(parts[0], "bearer") {
		return strings.TrimSpace(parts[1])
	}
	return ""
}
