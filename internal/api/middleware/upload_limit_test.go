package middleware

import (
	"bytes"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
)

var errTooBig = errors.New("too big")

func TestUploadLimit_DeclaredLengthOverLimit(t *testing.T) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, "/", bytes.NewReader(make([]byte, 11)))
	c := e.NewContext(req, httptest.NewRecorder())

	called := false
	err := UploadLimit(10, errTooBig)(func(echo.Context) error {
		called = true
		return nil
	})(c)

	if called {
		t.Fatalf("next must not run for an oversize body")
	}
	if !errors.Is(err, errTooBig) {
		t.Fatalf("expected errTooBig, got %v", err)
	}
}

func TestUploadLimit_UndeclaredLengthIsCapped(t *testing.T) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, "/", bytes.NewReader(make([]byte, 11)))
	req.ContentLength = -1
	c := e.NewContext(req, httptest.NewRecorder())

	err := UploadLimit(10, errTooBig)(func(c echo.Context) error {
		_, err := io.ReadAll(c.Request().Body)
		return err
	})(c)

	var mbe *http.MaxBytesError
	if !errors.As(err, &mbe) {
		t.Fatalf("expected *http.MaxBytesError, got %v", err)
	}
}

func TestUploadLimit_SmallBodyPasses(t *testing.T) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, "/", bytes.NewReader(make([]byte, 10)))
	c := e.NewContext(req, httptest.NewRecorder())

	err := UploadLimit(10, errTooBig)(func(c echo.Context) error {
		data, err := io.ReadAll(c.Request().Body)
		if err == nil && len(data) != 10 {
			t.Fatalf("body truncated to %d bytes", len(data))
		}
		return err
	})(c)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}
