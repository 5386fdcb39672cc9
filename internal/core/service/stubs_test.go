package service

import (
	"context"
	"fmt"
	"sync"

	"github.com/cardly/business-card-api/internal/core/domain"
	"github.com/cardly/business-card-api/internal/core/ports"
)

// ---------------------------------------------------------------------------
// In-memory stub repositories
// ---------------------------------------------------------------------------

type stubUserRepo struct {
	users     map[string]*domain.User
	seq       int
	findErr   error // if set, FindByEmail returns this error
	createErr error // if set, Create returns this error
}

func newStubUserRepo() *stubUserRepo {
	return &stubUserRepo{users: make(map[string]*domain.User)}
}

func cloneUser(u *domain.User) *domain.User {
	clone := *u
	return &clone
}

func (r *stubUserRepo) Create(_ context.Context, user *domain.User) (*domain.User, error) {
	if r.createErr != nil {
		return nil, r.createErr
	}
	for _, u := range r.users {
		if u.Email == user.Email || u.PublicURL == user.PublicURL {
			return nil, domain.ErrUserExists
		}
	}
	r.seq++
	created := cloneUser(user)
	created.ID = fmt.Sprintf("user-%d", r.seq)
	r.users[created.ID] = cloneUser(created)
	return created, nil
}

func (r *stubUserRepo) FindByEmail(_ context.Context, email string) (*domain.User, error) {
	if r.findErr != nil {
		return nil, r.findErr
	}
	for _, u := range r.users {
		if u.Email == email {
			return cloneUser(u), nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (r *stubUserRepo) FindByID(_ context.Context, id string) (*domain.User, error) {
	u, ok := r.users[id]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	return cloneUser(u), nil
}

func (r *stubUserRepo) FindByPublicURL(_ context.Context, publicURL string) (*domain.User, error) {
	for _, u := range r.users {
		if u.PublicURL == publicURL {
			return cloneUser(u), nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (r *stubUserRepo) PublicURLExists(_ context.Context, publicURL string) (bool, error) {
	for _, u := range r.users {
		if u.PublicURL == publicURL {
			return true, nil
		}
	}
	return false, nil
}

// seedUser stores a user directly, bypassing registration.
func (r *stubUserRepo) seedUser(id, email, publicURL string) *domain.User {
	u := &domain.User{ID: id, Email: email, PublicURL: publicURL}
	r.users[id] = u
	return cloneUser(u)
}

type stubProfileRepo struct {
	byUser    map[string]*domain.Profile
	seq       int
	updates   int
	updateErr error
}

func newStubProfileRepo() *stubProfileRepo {
	return &stubProfileRepo{byUser: make(map[string]*domain.Profile)}
}

func cloneProfile(p *domain.Profile) *domain.Profile {
	clone := *p
	clone.ContactLinks = append([]domain.ContactLink(nil), p.ContactLinks...)
	clone.SocialLinks = append([]domain.SocialLink(nil), p.SocialLinks...)
	return &clone
}

func (r *stubProfileRepo) Create(_ context.Context, p *domain.Profile) (*domain.Profile, error) {
	if _, exists := r.byUser[p.UserID]; exists {
		return nil, domain.ErrProfileExists
	}
	r.seq++
	created := cloneProfile(p)
	created.ID = fmt.Sprintf("profile-%d", r.seq)
	r.byUser[p.UserID] = cloneProfile(created)
	return created, nil
}

func (r *stubProfileRepo) FindByUserID(_ context.Context, userID string) (*domain.Profile, error) {
	p, ok := r.byUser[userID]
	if !ok {
		return nil, domain.ErrProfileNotFound
	}
	return cloneProfile(p), nil
}

func (r *stubProfileRepo) Update(_ context.Context, p *domain.Profile) error {
	if r.updateErr != nil {
		return r.updateErr
	}
	if _, ok := r.byUser[p.UserID]; !ok {
		return domain.ErrProfileNotFound
	}
	r.updates++
	r.byUser[p.UserID] = cloneProfile(p)
	return nil
}

type stubPhotoStore struct {
	saved   map[string][]byte
	saveErr error
}

func newStubPhotoStore() *stubPhotoStore {
	return &stubPhotoStore{saved: make(map[string][]byte)}
}

func (s *stubPhotoStore) Save(_ context.Context, name, _ string, data []byte) (string, error) {
	if s.saveErr != nil {
		return "", s.saveErr
	}
	ref := "/uploads/" + name
	s.saved[ref] = data
	return ref, nil
}

func (s *stubPhotoStore) Delete(_ context.Context, ref string) error {
	delete(s.saved, ref)
	return nil
}

type stubJanitor struct {
	mu        sync.Mutex
	discarded []string
}

func (j *stubJanitor) Discard(ref string) {
	j.mu.Lock()
	defer j.mu.Unlock()
	j.discarded = append(j.discarded, ref)
}

type stubCache struct {
	views       map[string]*ports.ProfileView
	gets        int
	hits        int
	invalidated []string
	onSet       func() // runs after a Set, before the caller continues
}

func newStubCache() *stubCache {
	return &stubCache{views: make(map[string]*ports.ProfileView)}
}

func (c *stubCache) Get(_ context.Context, publicURL string) (*ports.ProfileView, bool, error) {
	c.gets++
	v, ok := c.views[publicURL]
	if ok {
		c.hits++
	}
	return v, ok, nil
}

func (c *stubCache) Set(_ context.Context, publicURL string, view *ports.ProfileView) error {
	c.views[publicURL] = view
	if c.onSet != nil {
		c.onSet()
	}
	return nil
}

func (c *stubCache) Invalidate(_ context.Context, publicURL string) error {
	delete(c.views, publicURL)
	c.invalidated = append(c.invalidated, publicURL)
	return nil
}
