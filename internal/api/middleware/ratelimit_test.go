package middleware

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
)

func TestRateLimit_DeniesAfterBurst(t *testing.T) {
	e := echo.New()
	handler := RateLimit(1)(func(c echo.Context) error {
		return c.NoContent(http.StatusOK)
	})

	call := func(ip string) error {
		req := httptest.NewRequest(http.MethodPost, "/api/auth/login", nil)
		req.Header.Set(echo.HeaderXRealIP, ip)
		return handler(e.NewContext(req, httptest.NewRecorder()))
	}

	// burst is 2 at 1 rps
	for i := 0; i < 2; i++ {
		if err := call("10.0.0.1"); err != nil {
			t.Fatalf("request %d should pass: %v", i+1, err)
		}
	}

	err := call("10.0.0.1")
	var he *echo.HTTPError
	if !errors.As(err, &he) || he.Code != http.StatusTooManyRequests {
		t.Fatalf("expected 429, got %v", err)
	}

	if err := call("10.0.0.2"); err != nil {
		t.Fatalf("other clients must not be limited: %v", err)
	}
}
