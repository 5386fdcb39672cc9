package handler

import (
	"time"

	"github.com/cardly/business-card-api/internal/core/domain"
)

// errorBody documents the {"message": "..."} error envelope.
type errorBody struct {
	Message string `json:"message"`
}

type createProfileRequest struct {
	Name    string `json:"name" validate:"required"`
	Title   string `json:"title"`
	Company string `json:"company"`
}

type updateProfileRequest struct {
	Name    string `json:"name"`
	Title   string `json:"title"`
	Company string `json:"company"`
}

type contactLinkRequest struct {
	Type string `json:"type" validate:"required"`
	URL  string `json:"url" validate:"required"`
}

type socialLinkRequest struct {
	Platform string `json:"platform" validate:"required"`
	URL      string `json:"url" validate:"required"`
}

type profileResponse struct {
	ID               string               `json:"_id"`
	User             string               `json:"user"`
	Name             string               `json:"name"`
	Title            string               `json:"title"`
	Company          string               `json:"company"`
	Photo            string               `json:"photo"`
	ContactLinks     []domain.ContactLink `json:"contactLinks"`
	SocialLinks      []domain.SocialLink  `json:"socialLinks"`
	PublicURL        string               `json:"publicUrl"`
	PublicProfileURL string               `json:"publicProfileUrl"`
	CreatedAt        time.Time            `json:"createdAt"`
	UpdatedAt        time.Time            `json:"updatedAt"`
}

type photoResponse struct {
	Message string `json:"message"`
	Photo   string `json:"photo"`
}
