package handler

import (
	"github.com/cardly/business-card-api/internal/core/domain"
	"github.com/cardly/business-card-api/internal/core/ports"
)

// --- Request → Service input ---

func toCreateInput(req createProfileRequest) ports.CreateProfileInput {
	return ports.CreateProfileInput{
		Name:    req.Name,
		Title:   req.Title,
		Company: req.Company,
	}
}

func toUpdateInput(req updateProfileRequest) ports.UpdateProfileInput {
	return ports.UpdateProfileInput{
		Name:    req.Name,
		Title:   req.Title,
		Company: req.Company,
	}
}

// --- Service output → Response ---

func toProfileResponse(v *ports.ProfileView) profileResponse {
	p := v.Profile
	contacts := p.ContactLinks
	if contacts == nil {
		contacts = []domain.ContactLink{}
	}
	socials := p.SocialLinks
	if socials == nil {
		socials = []domain.SocialLink{}
	}
	return profileResponse{
		ID:               p.ID,
		User:             p.UserID,
		Name:             p.Name,
		Title:            p.Title,
		Company:          p.Company,
		Photo:            p.Photo,
		ContactLinks:     contacts,
		SocialLinks:      socials,
		PublicURL:        v.PublicURL,
		PublicProfileURL: v.PublicProfileURL,
		CreatedAt:        p.CreatedAt,
		UpdatedAt:        p.UpdatedAt,
	}
}
