package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/cardly/business-card-api/internal/core/domain"
	"github.com/cardly/business-card-api/internal/core/ports"
)

const defaultProfileTTL = 5 * time.Minute

// ProfileCache stores rendered public profiles.
// Key format: card:public:<public_url>
type ProfileCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewProfileCache creates a ProfileCache wrapping the given Redis client.
func NewProfileCache(client *redis.Client, ttl time.Duration) *ProfileCache {
	if ttl <= 0 {
		ttl = defaultProfileTTL
	}
	return &ProfileCache{client: client, ttl: ttl}
}

type cachedView struct {
	Profile          domain.Profile `json:"profile"`
	PublicURL        string         `json:"publicUrl"`
	PublicProfileURL string         `json:"publicProfileUrl"`
}

// Get returns the cached view, or ok=false on a miss.
func (c *ProfileCache) Get(ctx context.Context, publicURL string) (*ports.ProfileView, bool, error) {
	raw, err := c.client.Get(ctx, c.key(publicURL)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("profile cache get: %w", err)
	}

	var cv cachedView
	if err := json.Unmarshal(raw, &cv); err != nil {
		return nil, false, fmt.Errorf("profile cache decode: %w", err)
	}
	return &ports.ProfileView{
		Profile:          cv.Profile,
		PublicURL:        cv.PublicURL,
		PublicProfileURL: cv.PublicProfileURL,
	}, true, nil
}

// Set caches view for the configured TTL.
func (c *ProfileCache) Set(ctx context.Context, publicURL string, view *ports.ProfileView) error {
	raw, err := json.Marshal(cachedView{
		Profile:          view.Profile,
		PublicURL:        view.PublicURL,
		PublicProfileURL: view.PublicProfileURL,
	})
	if err != nil {
		return fmt.Errorf("profile cache encode: %w", err)
	}
	return c.client.Set(ctx, c.key(publicURL), raw, c.ttl).Err()
}

// Invalidate drops the cached view so the next lookup reads the database.
func (c *ProfileCache) Invalidate(ctx context.Context, publicURL string) error {
	return c.client.Del(ctx, c.key(publicURL)).Err()
}

func (c *ProfileCache) key(publicURL string) string {
	return "card:public:" + publicURL
}
