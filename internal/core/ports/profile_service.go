package ports

import (
	"context"
	"io"

	"github.com/cardly/business-card-api/internal/core/domain"
)

// CreateProfileInput carries the fields accepted when a card is first created.
type CreateProfileInput struct {
	Name    string
	Title   string
	Company string
}

// UpdateProfileInput carries a partial update. Empty fields keep the stored value.
type UpdateProfileInput struct {
	Name    string
	Title   string
	Company string
}

// PhotoUpload is an image received from the client.
type PhotoUpload struct {
	Filename string
	Size     int64
	Content  io.Reader
}

// ProfileView is a profile enriched with its owner's public identifiers.
type ProfileView struct {
	Profile          domain.Profile
	PublicURL        string
	PublicProfileURL string
}

// ProfileService defines the use cases of the business card aggregate.
type ProfileService interface {
	Create(ctx context.Context, ownerID string, input CreateProfileInput) (*ProfileView, error)
	GetOwn(ctx context.Context, ownerID string) (*ProfileView, error)
	GetPublic(ctx context.Context, publicURL string) (*ProfileView, error)
	Update(ctx context.Context, ownerID string, input UpdateProfileInput) (*ProfileView, error)
	SetPhoto(ctx context.Context, ownerID string, upload *PhotoUpload) (*ProfileView, error)
	UpsertContactLink(ctx context.Context, ownerID, linkType, url string) (*ProfileView, error)
	RemoveContactLink(ctx context.Context, ownerID, linkID string) (*ProfileView, error)
	UpsertSocialLink(ctx context.Context, ownerID, platform, url string) (*ProfileView, error)
	RemoveSocialLink(ctx context.Context, ownerID, linkID string) (*ProfileView, error)
	// PublicProfileURL builds the shareable card address for a public URL slug.
	PublicProfileURL(publicURL string) string
}
