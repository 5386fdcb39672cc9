package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/cardly/business-card-api/internal/api/metrics"
	"github.com/cardly/business-card-api/internal/core/domain"
	"github.com/cardly/business-card-api/internal/core/ports"
)

// ProfileHandler handles HTTP requests for business card operations.
type ProfileHandler struct {
	service ports.ProfileService
}

func NewProfileHandler(service ports.ProfileService) *ProfileHandler {
	return &ProfileHandler{service: service}
}

// Get handles GET /api/profile.
//
// @Summary      Get the caller's profile
// @Tags         profile
// @Produce      json
// @Security     TokenAuth
// @Success      200  {object}  profileResponse
// @Failure      401  {object}  errorBody
// @Failure      404  {object}  errorBody
// @Router       /api/profile [get]
func (h *ProfileHandler) Get(c echo.Context) error {
	owner, err := ownerID(c)
	if err != nil {
		return err
	}

	view, err := h.service.GetOwn(c.Request().Context(), owner)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toProfileResponse(view))
}

// GetPublic handles GET /api/profile/public/:publicUrl.
//
// @Summary      Get a public profile
// @Tags         profile
// @Produce      json
// @Param        publicUrl  path      string  true  "Public URL slug"
// @Success      200        {object}  profileResponse
// @Failure      404        {object}  errorBody
// @Router       /api/profile/public/{publicUrl} [get]
func (h *ProfileHandler) GetPublic(c echo.Context) error {
	view, err := h.service.GetPublic(c.Request().Context(), c.Param("publicUrl"))
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) || errors.Is(err, domain.ErrProfileNotFound) {
			metrics.PublicProfileViewsTotal.WithLabelValues("not_found").Inc()
		}
		return err
	}

	metrics.PublicProfileViewsTotal.WithLabelValues("found").Inc()
	return c.JSON(http.StatusOK, toProfileResponse(view))
}

// Create handles POST /api/profile.
//
// @Summary      Create the caller's profile
// @Tags         profile
// @Accept       json
// @Produce      json
// @Security     TokenAuth
// @Param        body  body      createProfileRequest  true  "Card details"
// @Success      201   {object}  profileResponse
// @Failure      400   {object}  errorBody
// @Failure      401   {object}  errorBody
// @Router       /api/profile [post]
func (h *ProfileHandler) Create(c echo.Context) (err error) {
	defer observe("create", &err)

	owner, err := ownerID(c)
	if err != nil {
		return err
	}

	var req createProfileRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	view, err := h.service.Create(c.Request().Context(), owner, toCreateInput(req))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, toProfileResponse(view))
}

// Update handles PUT /api/profile. Empty fields keep their stored value.
//
// @Summary      Update the caller's profile
// @Tags         profile
// @Accept       json
// @Produce      json
// @Security     TokenAuth
// @Param        body  body      updateProfileRequest  true  "Fields to change"
// @Success      200   {object}  profileResponse
// @Failure      401   {object}  errorBody
// @Failure      404   {object}  errorBody
// @Router       /api/profile [put]
func (h *ProfileHandler) Update(c echo.Context) (err error) {
	defer observe("update", &err)

	owner, err := ownerID(c)
	if err != nil {
		return err
	}

	var req updateProfileRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	view, err := h.service.Update(c.Request().Context(), owner, toUpdateInput(req))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toProfileResponse(view))
}

// UploadPhoto handles POST /api/profile/photo (multipart field "photo").
//
// @Summary      Upload a profile photo
// @Tags         profile
// @Accept       multipart/form-data
// @Produce      json
// @Security     TokenAuth
// @Param        photo  formData  file  true  "JPEG or PNG image, up to 2MB"
// @Success      200    {object}  photoResponse
// @Failure      400    {object}  errorBody
// @Failure      401    {object}  errorBody
// @Failure      404    {object}  errorBody
// @Router       /api/profile/photo [post]
func (h *ProfileHandler) UploadPhoto(c echo.Context) (err error) {
	defer observe("photo", &err)

	owner, err := ownerID(c)
	if err != nil {
		return err
	}

	fh, err := c.FormFile("photo")
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			return domain.ErrInvalidPhoto
		}
		return domain.NewValidationError("no file uploaded")
	}
	file, err := fh.Open()
	if err != nil {
		return domain.NewValidationError("no file uploaded")
	}
	defer file.Close()

	view, err := h.service.SetPhoto(c.Request().Context(), owner, &ports.PhotoUpload{
		Filename: fh.Filename,
		Size:     fh.Size,
		Content:  file,
	})
	if err != nil {
		return err
	}

	metrics.PhotoUploadBytes.Observe(float64(fh.Size))
	return c.JSON(http.StatusOK, photoResponse{
		Message: "Photo uploaded successfully",
		Photo:   view.Profile.Photo,
	})
}

// AddContact handles POST /api/profile/contact.
//
// @Summary      Add or replace a contact link
// @Description  A card keeps one link per type; posting an existing type replaces its url.
// @Tags         profile
// @Accept       json
// @Produce      json
// @Security     TokenAuth
// @Param        body  body      contactLinkRequest  true  "Contact link (type: email, phone, linkedin, calendly, website)"
// @Success      200   {object}  profileResponse
// @Failure      400   {object}  errorBody
// @Failure      404   {object}  errorBody
// @Router       /api/profile/contact [post]
func (h *ProfileHandler) AddContact(c echo.Context) (err error) {
	defer observe("contact_upsert", &err)

	owner, err := ownerID(c)
	if err != nil {
		return err
	}

	var req contactLinkRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	view, err := h.service.UpsertContactLink(c.Request().Context(), owner, req.Type, req.URL)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toProfileResponse(view))
}

// RemoveContact handles DELETE /api/profile/contact/:id.
//
// @Summary      Remove a contact link
// @Tags         profile
// @Produce      json
// @Security     TokenAuth
// @Param        id   path      string  true  "Contact link id"
// @Success      200  {object}  profileResponse
// @Failure      404  {object}  errorBody
// @Router       /api/profile/contact/{id} [delete]
func (h *ProfileHandler) RemoveContact(c echo.Context) (err error) {
	defer observe("contact_remove", &err)

	owner, err := ownerID(c)
	if err != nil {
		return err
	}

	view, err := h.service.RemoveContactLink(c.Request().Context(), owner, c.Param("id"))
	if err != nil {
		if errors.Is(err, domain.ErrLinkNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "Contact link not found").SetInternal(err)
		}
		return err
	}
	return c.JSON(http.StatusOK, toProfileResponse(view))
}

// AddSocial handles POST /api/profile/social.
//
// @Summary      Add or replace a social link
// @Description  A card keeps one link per platform, compared case-insensitively.
// @Tags         profile
// @Accept       json
// @Produce      json
// @Security     TokenAuth
// @Param        body  body      socialLinkRequest  true  "Social link"
// @Success      200   {object}  profileResponse
// @Failure      400   {object}  errorBody
// @Failure      404   {object}  errorBody
// @Router       /api/profile/social [post]
func (h *ProfileHandler) AddSocial(c echo.Context) (err error) {
	defer observe("social_upsert", &err)

	owner, err := ownerID(c)
	if err != nil {
		return err
	}

	var req socialLinkRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	view, err := h.service.UpsertSocialLink(c.Request().Context(), owner, req.Platform, req.URL)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toProfileResponse(view))
}

// RemoveSocial handles DELETE /api/profile/social/:id.
//
// @Summary      Remove a social link
// @Tags         profile
// @Produce      json
// @Security     TokenAuth
// @Param        id   path      string  true  "Social link id"
// @Success      200  {object}  profileResponse
// @Failure      404  {object}  errorBody
// @Router       /api/profile/social/{id} [delete]
func (h *ProfileHandler) RemoveSocial(c echo.Context) (err error) {
	defer observe("social_remove", &err)

	owner, err := ownerID(c)
	if err != nil {
		return err
	}

	view, err := h.service.RemoveSocialLink(c.Request().Context(), owner, c.Param("id"))
	if err != nil {
		if errors.Is(err, domain.ErrLinkNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "Social link not found").SetInternal(err)
		}
		return err
	}
	return c.JSON(http.StatusOK, toProfileResponse(view))
}

func observe(op string, err *error) {
	metrics.ProfileOperationsTotal.WithLabelValues(op, outcome(*err)).Inc()
}
