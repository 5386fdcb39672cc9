package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"github.com/skip2/go-qrcode"

	"github.com/cardly/business-card-api/internal/api/metrics"
	"github.com/cardly/business-card-api/internal/core/ports"
)

const (
	defaultQRSize = 256
	minQRSize     = 128
	maxQRSize     = 1024
)

// QRCodeHandler renders QR codes that point at public cards.
type QRCodeHandler struct {
	profiles ports.ProfileService
}

func NewQRCodeHandler(profiles ports.ProfileService) *QRCodeHandler {
	return &QRCodeHandler{profiles: profiles}
}

// Generate handles GET /api/profile/public/:publicUrl/qrcode.
//
// @Summary      QR code of a public profile
// @Tags         profile
// @Produce      png
// @Param        publicUrl  path      string  true   "Public URL slug"
// @Param        size       query     int     false  "Image size in pixels (128-1024, default 256)"
// @Success      200        {file}    binary
// @Failure      404        {object}  errorBody
// @Router       /api/profile/public/{publicUrl}/qrcode [get]
func (h *QRCodeHandler) Generate(c echo.Context) error {
	view, err := h.profiles.GetPublic(c.Request().Context(), c.Param("publicUrl"))
	if err != nil {
		return err
	}

	png, err := qrcode.Encode(view.PublicProfileURL, qrcode.Medium, qrSize(c.QueryParam("size")))
	if err != nil {
		return err
	}

	metrics.QRCodesGeneratedTotal.Inc()
	c.Response().Header().Set("Cache-Control", "public, max-age=3600")
	return c.Blob(http.StatusOK, "image/png", png)
}

func qrSize(raw string) int {
	size, err := strconv.Atoi(raw)
	if err != nil {
		return defaultQRSize
	}
	return min(max(size, minQRSize), maxQRSize)
}
