package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/gabriel-vasile/mimetype"
	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/cardly/business-card-api/internal/core/domain"
	"github.com/cardly/business-card-api/internal/core/ports"
)

// ProfileService implements the business card use cases. Every mutation is a
// read-modify-write of the whole profile document.
type ProfileService struct {
	profiles      ports.ProfileRepository
	users         ports.UserRepository
	photos        ports.PhotoStore
	janitor       ports.PhotoJanitor
	cache         ports.ProfileCache
	publicBaseURL string
	log           zerolog.Logger

	newID func() string
	now   func() time.Time
}

// NewProfileService wires the profile use cases. cache may be nil, in which
// case public lookups always hit the repositories.
func NewProfileService(
	profiles ports.ProfileRepository,
	users ports.UserRepository,
	photos ports.PhotoStore,
	janitor ports.PhotoJanitor,
	cache ports.ProfileCache,
	publicBaseURL string,
	log zerolog.Logger,
) *ProfileService {
	return &ProfileService{
		profiles:      profiles,
		users:         users,
		photos:        photos,
		janitor:       janitor,
		cache:         cache,
		publicBaseURL: strings.TrimRight(publicBaseURL, "/"),
		log:           log,
		newID:         uuid.NewString,
		now:           time.Now,
	}
}

// PublicProfileURL returns {base}/profile/{publicURL}.
func (s *ProfileService) PublicProfileURL(publicURL string) string {
	return s.publicBaseURL + "/profile/" + publicURL
}

// Create makes the owner's card. An owner has at most one.
func (s *ProfileService) Create(ctx context.Context, ownerID string, input ports.CreateProfileInput) (*ports.ProfileView, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, domain.NewValidationError("name is required")
	}

	if _, err := s.profiles.FindByUserID(ctx, ownerID); err == nil {
		return nil, domain.ErrProfileExists
	} else if !errors.Is(err, domain.ErrProfileNotFound) {
		return nil, fmt.Errorf("create profile: %w", err)
	}

	now := s.now().UTC()
	created, err := s.profiles.Create(ctx, &domain.Profile{
		UserID:       ownerID,
		Name:         name,
		Title:        strings.TrimSpace(input.Title),
		Company:      strings.TrimSpace(input.Company),
		ContactLinks: []domain.ContactLink{},
		SocialLinks:  []domain.SocialLink{},
		CreatedAt:    now,
		UpdatedAt:    now,
	})
	if err != nil {
		if errors.Is(err, domain.ErrProfileExists) {
			return nil, err
		}
		return nil, fmt.Errorf("create profile: %w", err)
	}

	s.log.Info().Str("user_id", ownerID).Str("profile_id", created.ID).Msg("profile created")
	return s.view(ctx, created)
}

// GetOwn returns the owner's card with its public address.
func (s *ProfileService) GetOwn(ctx context.Context, ownerID string) (*ports.ProfileView, error) {
	profile, err := s.load(ctx, ownerID)
	if err != nil {
		return nil, err
	}
	return s.view(ctx, profile)
}

// GetPublic resolves a public URL slug to its card. No authentication is
// involved; results are served from the cache when possible.
func (s *ProfileService) GetPublic(ctx context.Context, publicURL string) (*ports.ProfileView, error) {
	if s.cache != nil {
		cached, ok, err := s.cache.Get(ctx, publicURL)
		if err != nil {
			s.log.Warn().Err(err).Str("public_url", publicURL).Msg("profile cache read failed")
		} else if ok {
			return cached, nil
		}
	}

	user, err := s.users.FindByPublicURL(ctx, publicURL)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("get public profile: %w", err)
	}

	profile, err := s.load(ctx, user.ID)
	if err != nil {
		return nil, err
	}

	view := s.viewFor(profile, user)
	s.fillCache(ctx, publicURL, view)
	return view, nil
}

// fillCache stores view, then re-reads the profile and drops the entry if a
// mutation was saved in the meantime. A mutation saved after the re-read
// invalidates the entry itself, so a stale view never outlives a write.
func (s *ProfileService) fillCache(ctx context.Context, publicURL string, view *ports.ProfileView) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Set(ctx, publicURL, view); err != nil {
		s.log.Warn().Err(err).Str("public_url", publicURL).Msg("profile cache write failed")
		return
	}

	current, err := s.profiles.FindByUserID(ctx, view.Profile.UserID)
	if err == nil && current.UpdatedAt.Equal(view.Profile.UpdatedAt) {
		return
	}
	s.invalidate(ctx, publicURL)
}

// Update applies the non-empty fields of input. An empty field means "keep".
func (s *ProfileService) Update(ctx context.Context, ownerID string, input ports.UpdateProfileInput) (*ports.ProfileView, error) {
	return s.mutate(ctx, ownerID, "update", func(p *domain.Profile) error {
		if v := strings.TrimSpace(input.Name); v != "" {
			p.Name = v
		}
		if v := strings.TrimSpace(input.Title); v != "" {
			p.Title = v
		}
		if v := strings.TrimSpace(input.Company); v != "" {
			p.Company = v
		}
		return nil
	})
}

// SetPhoto stores a new JPEG or PNG photo and hands the previous one to the
// janitor.
func (s *ProfileService) SetPhoto(ctx context.Context, ownerID string, upload *ports.PhotoUpload) (*ports.ProfileView, error) {
	if upload == nil || upload.Content == nil {
		return nil, domain.NewValidationError("no file uploaded")
	}
	if upload.Size > domain.MaxPhotoBytes {
		return nil, domain.ErrInvalidPhoto
	}

	data, err := io.ReadAll(io.LimitReader(upload.Content, domain.MaxPhotoBytes+1))
	if err != nil {
		return nil, fmt.Errorf("read photo: %w", err)
	}
	if len(data) == 0 {
		return nil, domain.NewValidationError("no file uploaded")
	}
	if len(data) > domain.MaxPhotoBytes {
		return nil, domain.ErrInvalidPhoto
	}

	mtype := mimetype.Detect(data).String()
	ext, ok := domain.PhotoExtension(mtype)
	if !ok {
		return nil, domain.ErrInvalidPhoto
	}

	var stored, previous string
	saved := false
	view, err := s.mutateThen(ctx, ownerID, "photo", func(p *domain.Profile) error {
		ref, err := s.photos.Save(ctx, s.newID()+ext, mtype, data)
		if err != nil {
			return fmt.Errorf("store photo: %w", err)
		}
		stored, previous = ref, p.Photo
		p.Photo = ref
		return nil
	}, func() { saved = true })

	switch {
	case saved:
		if previous != "" && previous != stored {
			s.janitor.Discard(previous)
		}
	case stored != "":
		// the stored profile still points at the previous photo
		s.janitor.Discard(stored)
	}
	if err != nil {
		return nil, err
	}
	return view, nil
}

// UpsertContactLink sets the link of the given type, keeping one per type.
func (s *ProfileService) UpsertContactLink(ctx context.Context, ownerID, linkType, url string) (*ports.ProfileView, error) {
	linkType, url = strings.TrimSpace(linkType), strings.TrimSpace(url)
	if linkType == "" || url == "" {
		return nil, domain.NewValidationError("type and url are required")
	}
	ct := domain.ContactType(linkType)
	if !ct.Valid() {
		return nil, domain.NewValidationError("type must be one of: email, phone, linkedin, calendly, website")
	}

	return s.mutate(ctx, ownerID, "contact_upsert", func(p *domain.Profile) error {
		p.UpsertContactLink(ct, url, s.newID)
		return nil
	})
}

func (s *ProfileService) RemoveContactLink(ctx context.Context, ownerID, linkID string) (*ports.ProfileView, error) {
	return s.mutate(ctx, ownerID, "contact_remove", func(p *domain.Profile) error {
		return p.RemoveContactLink(linkID)
	})
}

// UpsertSocialLink sets the link for a platform, keeping one per platform
// regardless of letter case.
func (s *ProfileService) UpsertSocialLink(ctx context.Context, ownerID, platform, url string) (*ports.ProfileView, error) {
	platform, url = strings.TrimSpace(platform), strings.TrimSpace(url)
	if platform == "" || url == "" {
		return nil, domain.NewValidationError("platform and url are required")
	}

	return s.mutate(ctx, ownerID, "social_upsert", func(p *domain.Profile) error {
		p.UpsertSocialLink(platform, url, s.newID)
		return nil
	})
}

func (s *ProfileService) RemoveSocialLink(ctx context.Context, ownerID, linkID string) (*ports.ProfileView, error) {
	return s.mutate(ctx, ownerID, "social_remove", func(p *domain.Profile) error {
		return p.RemoveSocialLink(linkID)
	})
}

// mutate loads the owner's profile, applies fn, persists the result and drops
// the cached public view. Nothing is written when fn fails.
func (s *ProfileService) mutate(ctx context.Context, ownerID, op string, fn func(p *domain.Profile) error) (*ports.ProfileView, error) {
	return s.mutateThen(ctx, ownerID, op, fn, nil)
}

// mutateThen is mutate with a hook that runs once the profile is persisted,
// even if building the returned view fails afterwards.
func (s *ProfileService) mutateThen(ctx context.Context, ownerID, op string, fn func(p *domain.Profile) error, onSaved func()) (*ports.ProfileView, error) {
	profile, err := s.load(ctx, ownerID)
	if err != nil {
		return nil, err
	}
	if err := fn(profile); err != nil {
		return nil, err
	}

	profile.UpdatedAt = s.now().UTC()
	if err := s.profiles.Update(ctx, profile); err != nil {
		if errors.Is(err, domain.ErrProfileNotFound) {
			return nil, err
		}
		s.log.Error().Err(err).Str("user_id", ownerID).Str("op", op).Msg("failed to save profile")
		return nil, fmt.Errorf("%s profile: %w", op, err)
	}
	if onSaved != nil {
		onSaved()
	}

	owner, err := s.users.FindByID(ctx, profile.UserID)
	if err != nil {
		return nil, fmt.Errorf("load profile owner: %w", err)
	}
	s.invalidate(ctx, owner.PublicURL)

	s.log.Info().Str("user_id", ownerID).Str("op", op).Msg("profile updated")
	return s.viewFor(profile, owner), nil
}

func (s *ProfileService) load(ctx context.Context, ownerID string) (*domain.Profile, error) {
	profile, err := s.profiles.FindByUserID(ctx, ownerID)
	if err != nil {
		if errors.Is(err, domain.ErrProfileNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("load profile: %w", err)
	}
	return profile, nil
}

func (s *ProfileService) view(ctx context.Context, profile *domain.Profile) (*ports.ProfileView, error) {
	owner, err := s.users.FindByID(ctx, profile.UserID)
	if err != nil {
		return nil, fmt.Errorf("load profile owner: %w", err)
	}
	return s.viewFor(profile, owner), nil
}

func (s *ProfileService) viewFor(profile *domain.Profile, owner *domain.User) *ports.ProfileView {
	return &ports.ProfileView{
		Profile:          *profile,
		PublicURL:        owner.PublicURL,
		PublicProfileURL: s.PublicProfileURL(owner.PublicURL),
	}
}

func (s *ProfileService) invalidate(ctx context.Context, publicURL string) {
	if s.cache == nil || publicURL == "" {
		return
	}
	if err := s.cache.Invalidate(ctx, publicURL); err != nil {
		s.log.Warn().Err(err).Str("public_url", publicURL).Msg("profile cache invalidation failed")
	}
}
