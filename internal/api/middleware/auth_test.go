package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/cardly/business-card-api/internal/core/domain"
)

type stubIdentity struct {
	verifyFn  func(token string) (string, error)
	resolveFn func(ctx context.Context, userID string) (*domain.User, error)
}

func (s *stubIdentity) Register(context.Context, string, string) (string, *domain.User, error) {
	return "", nil, errors.New("not implemented")
}

func (s *stubIdentity) Authenticate(context.Context, string, string) (string, *domain.User, error) {
	return "", nil, errors.New("not implemented")
}

func (s *stubIdentity) Verify(token string) (string, error) {
	return s.verifyFn(token)
}

func (s *stubIdentity) Resolve(ctx context.Context, userID string) (*domain.User, error) {
	return s.resolveFn(ctx, userID)
}

func validIdentity() *stubIdentity {
	return &stubIdentity{
		verifyFn: func(token string) (string, error) {
			if token != "good-token" {
				return "", domain.ErrInvalidToken
			}
			return "user-1", nil
		},
		resolveFn: func(_ context.Context, userID string) (*domain.User, error) {
			if userID != "user-1" {
				return nil, domain.ErrUserNotFound
			}
			return &domain.User{ID: "user-1", Email: "a@x.com", PasswordHash: "hash", PublicURL: "0123456789abcdef"}, nil
		},
	}
}

func runAuth(t *testing.T, identity *stubIdentity, header, value string) (error, bool) {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if header != "" {
		req.Header.Set(header, value)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	called := false
	err := Auth(identity)(func(c echo.Context) error {
		called = true
		user, ok := CurrentUser(c)
		if !ok {
			t.Fatalf("user not set on context")
		}
		if user.ID != "user-1" || user.PublicURL != "0123456789abcdef" {
			t.Fatalf("unexpected user %+v", user)
		}
		if user.PasswordHash != "" {
			t.Fatalf("password hash must not reach handlers")
		}
		return c.NoContent(http.StatusOK)
	})(c)
	return err, called
}

func TestAuthMiddleware_ValidToken(t *testing.T) {
	err, called := runAuth(t, validIdentity(), TokenHeader, "good-token")
	if err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if !called {
		t.Fatalf("next not called")
	}
}

func TestAuthMiddleware_BearerFallback(t *testing.T) {
	err, called := runAuth(t, validIdentity(), echo.HeaderAuthorization, "Bearer good-token")
	if err != nil || !called {
		t.Fatalf("expected bearer token to be accepted: %v", err)
	}
}

func TestAuthMiddleware_MissingToken(t *testing.T) {
	err, called := runAuth(t, validIdentity(), "", "")
	if called {
		t.Fatalf("should not reach next")
	}
	if !errors.Is(err, domain.ErrUnauthorized) {
		t.Fatalf("expected ErrUnauthorized, got %v", err)
	}
}

func TestAuthMiddleware_InvalidToken(t *testing.T) {
	err, called := runAuth(t, validIdentity(), TokenHeader, "forged")
	if called {
		t.Fatalf("should not reach next")
	}
	if !errors.Is(err, domain.ErrInvalidToken) {
		t.Fatalf("expected ErrInvalidToken, got %v", err)
	}
}

func TestAuthMiddleware_DeletedUser(t *testing.T) {
	identity := validIdentity()
	identity.resolveFn = func(context.Context, string) (*domain.User, error) {
		return nil, domain.ErrUserNotFound
	}

	err, called := runAuth(t, identity, TokenHeader, "good-token")
	if called {
		t.Fatalf("should not reach next")
	}
	if !errors.Is(err, domain.ErrInvalidToken) {
		t.Fatalf("expected ErrInvalidToken, got %v", err)
	}
}

func TestAuthMiddleware_StoreFailureIsNotUnauthorized(t *testing.T) {
	identity := validIdentity()
	storeErr := errors.New("mongo unavailable")
	identity.resolveFn = func(context.Context, string) (*domain.User, error) {
		return nil, storeErr
	}

	err, _ := runAuth(t, identity, TokenHeader, "good-token")
	if !errors.Is(err, storeErr) {
		t.Fatalf("expected store error to propagate, got %v", err)
	}
}
