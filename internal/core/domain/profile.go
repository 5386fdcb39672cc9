package domain

import (
	"strings"
	"time"
)

// ContactType enumerates the contact channels a card can list.
type ContactType string

const (
	ContactEmail    ContactType = "email"
	ContactPhone    ContactType = "phone"
	ContactLinkedIn ContactType = "linkedin"
	ContactCalendly ContactType = "calendly"
	ContactWebsite  ContactType = "website"
)

var contactTypes = map[ContactType]struct{}{
	ContactEmail:    {},
	ContactPhone:    {},
	ContactLinkedIn: {},
	ContactCalendly: {},
	ContactWebsite:  {},
}

// Valid reports whether t is one of the supported contact types.
func (t ContactType) Valid() bool {
	_, ok := contactTypes[t]
	return ok
}

// ContactLink is a single contact channel on a profile.
type ContactLink struct {
	ID   string      `json:"_id" bson:"id"`
	Type ContactType `json:"type" bson:"type"`
	URL  string      `json:"url" bson:"url"`
}

// SocialLink points at the owner's account on a social platform.
type SocialLink struct {
	ID       string `json:"_id" bson:"id"`
	Platform string `json:"platform" bson:"platform"`
	URL      string `json:"url" bson:"url"`
}

// Profile is the business card aggregate. Each user owns at most one.
type Profile struct {
	ID           string        `json:"_id"`
	UserID       string        `json:"user"`
	Name         string        `json:"name"`
	Title        string        `json:"title"`
	Company      string        `json:"company"`
	Photo        string        `json:"photo"`
	ContactLinks []ContactLink `json:"contactLinks"`
	SocialLinks  []SocialLink  `json:"socialLinks"`
	CreatedAt    time.Time     `json:"createdAt"`
	UpdatedAt    time.Time     `json:"updatedAt"`
}

// UpsertContactLink replaces the link of the same type or appends a new one.
// newID is only consulted when a link is appended.
func (p *Profile) UpsertContactLink(t ContactType, url string, newID func() string) {
	for i := range p.ContactLinks {
		if p.ContactLinks[i].Type == t {
			p.ContactLinks[i].URL = url
			return
		}
	}
	p.ContactLinks = append(p.ContactLinks, ContactLink{ID: newID(), Type: t, URL: url})
}

// RemoveContactLink drops the link with the given id. It returns
// ErrLinkNotFound and leaves the collection untouched when no link matches.
func (p *Profile) RemoveContactLink(id string) error {
	for i := range p.ContactLinks {
		if p.ContactLinks[i].ID == id {
			p.ContactLinks = append(p.ContactLinks[:i:i], p.ContactLinks[i+1:]...)
			return nil
		}
	}
	return ErrLinkNotFound
}

// UpsertSocialLink replaces the link for the platform (compared
// case-insensitively) or appends a new one.
func (p *Profile) UpsertSocialLink(platform, url string, newID func() string) {
	for i := range p.SocialLinks {
		if strings.EqualFold(p.SocialLinks[i].Platform, platform) {
			p.SocialLinks[i].URL = url
			return
		}
	}
	p.SocialLinks = append(p.SocialLinks, SocialLink{ID: newID(), Platform: platform, URL: url})
}

// RemoveSocialLink drops the social link with the given id.
func (p *Profile) RemoveSocialLink(id string) error {
	for i := range p.SocialLinks {
		if p.SocialLinks[i].ID == id {
			p.SocialLinks = append(p.SocialLinks[:i:i], p.SocialLinks[i+1:]...)
			return nil
		}
	}
	return ErrLinkNotFound
}
