package handler

import (
	"context"
	"errors"
	"io"
	"net/http/httptest"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/cardly/business-card-api/internal/api/middleware"
	"github.com/cardly/business-card-api/internal/core/domain"
	"github.com/cardly/business-card-api/internal/core/ports"
)

var errNotStubbed = errors.New("not stubbed")

type stubIdentity struct {
	registerFn     func(ctx context.Context, email, password string) (string, *domain.User, error)
	authenticateFn func(ctx context.Context, email, password string) (string, *domain.User, error)
}

func (s *stubIdentity) Register(ctx context.Context, email, password string) (string, *domain.User, error) {
	if s.registerFn == nil {
		return "", nil, errNotStubbed
	}
	return s.registerFn(ctx, email, password)
}

func (s *stubIdentity) Authenticate(ctx context.Context, email, password string) (string, *domain.User, error) {
	if s.authenticateFn == nil {
		return "", nil, errNotStubbed
	}
	return s.authenticateFn(ctx, email, password)
}

func (s *stubIdentity) Verify(string) (string, error) { return "", errNotStubbed }

func (s *stubIdentity) Resolve(context.Context, string) (*domain.User, error) {
	return nil, errNotStubbed
}

type stubProfileService struct {
	createFn        func(ctx context.Context, ownerID string, in ports.CreateProfileInput) (*ports.ProfileView, error)
	getOwnFn        func(ctx context.Context, ownerID string) (*ports.ProfileView, error)
	getPublicFn     func(ctx context.Context, publicURL string) (*ports.ProfileView, error)
	updateFn        func(ctx context.Context, ownerID string, in ports.UpdateProfileInput) (*ports.ProfileView, error)
	setPhotoFn      func(ctx context.Context, ownerID string, upload *ports.PhotoUpload) (*ports.ProfileView, error)
	upsertContactFn func(ctx context.Context, ownerID, linkType, url string) (*ports.ProfileView, error)
	removeContactFn func(ctx context.Context, ownerID, linkID string) (*ports.ProfileView, error)
	upsertSocialFn  func(ctx context.Context, ownerID, platform, url string) (*ports.ProfileView, error)
	removeSocialFn  func(ctx context.Context, ownerID, linkID string) (*ports.ProfileView, error)
}

func (s *stubProfileService) Create(ctx context.Context, ownerID string, in ports.CreateProfileInput) (*ports.ProfileView, error) {
	if s.createFn == nil {
		return nil, errNotStubbed
	}
	return s.createFn(ctx, ownerID, in)
}

func (s *stubProfileService) GetOwn(ctx context.Context, ownerID string) (*ports.ProfileView, error) {
	if s.getOwnFn == nil {
		return nil, errNotStubbed
	}
	return s.getOwnFn(ctx, ownerID)
}

func (s *stubProfileService) GetPublic(ctx context.Context, publicURL string) (*ports.ProfileView, error) {
	if s.getPublicFn == nil {
		return nil, errNotStubbed
	}
	return s.getPublicFn(ctx, publicURL)
}

func (s *stubProfileService) Update(ctx context.Context, ownerID string, in ports.UpdateProfileInput) (*ports.ProfileView, error) {
	if s.updateFn == nil {
		return nil, errNotStubbed
	}
	return s.updateFn(ctx, ownerID, in)
}

func (s *stubProfileService) SetPhoto(ctx context.Context, ownerID string, upload *ports.PhotoUpload) (*ports.ProfileView, error) {
	if s.setPhotoFn == nil {
		return nil, errNotStubbed
	}
	return s.setPhotoFn(ctx, ownerID, upload)
}

func (s *stubProfileService) UpsertContactLink(ctx context.Context, ownerID, linkType, url string) (*ports.ProfileView, error) {
	if s.upsertContactFn == nil {
		return nil, errNotStubbed
	}
	return s.upsertContactFn(ctx, ownerID, linkType, url)
}

func (s *stubProfileService) RemoveContactLink(ctx context.Context, ownerID, linkID string) (*ports.ProfileView, error) {
	if s.removeContactFn == nil {
		return nil, errNotStubbed
	}
	return s.removeContactFn(ctx, ownerID, linkID)
}

func (s *stubProfileService) UpsertSocialLink(ctx context.Context, ownerID, platform, url string) (*ports.ProfileView, error) {
	if s.upsertSocialFn == nil {
		return nil, errNotStubbed
	}
	return s.upsertSocialFn(ctx, ownerID, platform, url)
}

func (s *stubProfileService) RemoveSocialLink(ctx context.Context, ownerID, linkID string) (*ports.ProfileView, error) {
	if s.removeSocialFn == nil {
		return nil, errNotStubbed
	}
	return s.removeSocialFn(ctx, ownerID, linkID)
}

func (s *stubProfileService) PublicProfileURL(publicURL string) string {
	return "http://cards.test/profile/" + publicURL
}

// newContext builds an echo context with the validator installed. A non-nil
// user is stored as the authenticated caller.
func newContext(method, target string, body io.Reader, contentType string, user *domain.User) (echo.Context, *httptest.ResponseRecorder) {
	e := echo.New()
	e.Validator = NewValidator()

	req := httptest.NewRequest(method, target, body)
	if contentType != "" {
		req.Header.Set(echo.HeaderContentType, contentType)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	if user != nil {
		middleware.SetCurrentUser(c, user)
	}
	return c, rec
}

func jsonContext(method, target, body string, user *domain.User) (echo.Context, *httptest.ResponseRecorder) {
	return newContext(method, target, strings.NewReader(body), echo.MIMEApplicationJSON, user)
}

var testOwner = &domain.User{ID: "user-1", Email: "a@x.com", PublicURL: "0123456789abcdef"}

func sampleView() *ports.ProfileView {
	return &ports.ProfileView{
		Profile: domain.Profile{
			ID:     "profile-1",
			UserID: testOwner.ID,
			Name:   "Ada",
			Title:  "Engineer",
			ContactLinks: []domain.ContactLink{
				{ID: "c1", Type: domain.ContactEmail, URL: "mailto:ada@x.com"},
			},
		},
		PublicURL:        testOwner.PublicURL,
		PublicProfileURL: "http://cards.test/profile/" + testOwner.PublicURL,
	}
}
