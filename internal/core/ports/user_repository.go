package ports

import (
	"context"

	"github.com/cardly/business-card-api/internal/core/domain"
)

// UserRepository persists account identities (the credential store).
type UserRepository interface {
	// Create inserts the user and returns it with its assigned ID. A duplicate
	// email or public URL yields domain.ErrUserExists.
	Create(ctx context.Context, user *domain.User) (*domain.User, error)
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
	FindByID(ctx context.Context, id string) (*domain.User, error)
	FindByPublicURL(ctx context.Context, publicURL string) (*domain.User, error)
	PublicURLExists(ctx context.Context, publicURL string) (bool, error)
}
