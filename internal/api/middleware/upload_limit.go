package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// UploadLimit rejects request bodies larger than maxBytes with tooLarge
// instead of echo's 413. Bodies without a declared length are capped with
// http.MaxBytesReader; reading past the cap yields *http.MaxBytesError.
func UploadLimit(maxBytes int64, tooLarge error) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			req := c.Request()
			if req.ContentLength > maxBytes {
				return tooLarge
			}
			req.Body = http.MaxBytesReader(c.Response(), req.Body, maxBytes)
			return next(c)
		}
	}
}
