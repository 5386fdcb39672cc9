package ports

import (
	"context"

	"github.com/cardly/business-card-api/internal/core/domain"
)

// ProfileRepository persists one profile document per user.
type ProfileRepository interface {
	// Create inserts a new profile. A second profile for the same user yields
	// domain.ErrProfileExists.
	Create(ctx context.Context, profile *domain.Profile) (*domain.Profile, error)
	FindByUserID(ctx context.Context, userID string) (*domain.Profile, error)
	// Update overwrites the mutable fields of the profile owned by profile.UserID.
	Update(ctx context.Context, profile *domain.Profile) error
}
