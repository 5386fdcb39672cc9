package ports

import "context"

// ProfileCache holds rendered public profiles keyed by public URL slug.
type ProfileCache interface {
	Get(ctx context.Context, publicURL string) (*ProfileView, bool, error)
	Set(ctx context.Context, publicURL string, view *ProfileView) error
	Invalidate(ctx context.Context, publicURL string) error
}
