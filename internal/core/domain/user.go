package domain

import (
	"strings"
	"time"
)

// MinPasswordLength is the shortest password accepted at signup.
const MinPasswordLength = 6

// User models an account that owns a business card.
type User struct {
	ID           string    `json:"id"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	PublicURL    string    `json:"publicUrl"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

// NormalizeEmail trims and lower-cases an email so lookups and the unique
// index agree on a single spelling.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
