package ports

import (
	"context"

	"github.com/cardly/business-card-api/internal/core/domain"
)

// IdentityService registers and authenticates users and issues the bearer
// tokens that protect profile routes.
type IdentityService interface {
	Register(ctx context.Context, email, password string) (string, *domain.User, error)
	Authenticate(ctx context.Context, email, password string) (string, *domain.User, error)
	// Verify checks a token's signature and expiry and returns the user ID it binds.
	Verify(token string) (string, error)
	// Resolve loads the user a verified token refers to.
	Resolve(ctx context.Context, userID string) (*domain.User, error)
}
