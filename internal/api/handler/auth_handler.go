package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/cardly/business-card-api/internal/api/metrics"
	"github.com/cardly/business-card-api/internal/core/domain"
	"github.com/cardly/business-card-api/internal/core/ports"
)

type AuthHandler struct {
	identity ports.IdentityService
}

func NewAuthHandler(identity ports.IdentityService) *AuthHandler {
	return &AuthHandler{identity: identity}
}

type signupRequest struct {
	Email    string `json:"email" validate:"required"`
	Password string `json:"password" validate:"required,min=6"`
}

type loginRequest struct {
	Email    string `json:"email" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type authUser struct {
	ID        string `json:"id"`
	Email     string `json:"email"`
	PublicURL string `json:"publicUrl"`
}

type authResponse struct {
	Token string   `json:"token"`
	User  authUser `json:"user"`
}

func toAuthResponse(token string, user *domain.User) authResponse {
	return authResponse{
		Token: token,
		User: authUser{
			ID:        user.ID,
			Email:     user.Email,
			PublicURL: user.PublicURL,
		},
	}
}

// Signup registers a new account and returns its first token.
//
// @Summary      Register a new user
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      signupRequest  true  "Account credentials"
// @Success      201   {object}  authResponse
// @Failure      400   {object}  errorBody
// @Failure      429   {object}  errorBody
// @Failure      500   {object}  errorBody
// @Router       /api/auth/signup [post]
func (h *AuthHandler) Signup(c echo.Context) (err error) {
	defer func() { metrics.AuthAttemptsTotal.WithLabelValues("signup", outcome(err)).Inc() }()

	var req signupRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	token, user, err := h.identity.Register(c.Request().Context(), req.Email, req.Password)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusCreated, toAuthResponse(token, user))
}

// Login authenticates a user and returns a token.
//
// @Summary      Login
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      loginRequest  true  "Login credentials"
// @Success      200   {object}  authResponse
// @Failure      400   {object}  errorBody
// @Failure      429   {object}  errorBody
// @Failure      500   {object}  errorBody
// @Router       /api/auth/login [post]
func (h *AuthHandler) Login(c echo.Context) (err error) {
	defer func() { metrics.AuthAttemptsTotal.WithLabelValues("login", outcome(err)).Inc() }()

	var req loginRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	token, user, err := h.identity.Authenticate(c.Request().Context(), req.Email, req.Password)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, toAuthResponse(token, user))
}
