package mongo

import (
	"context"
	"errors"
	"testing"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/cardly/business-card-api/internal/core/domain"
)

func TestMongoProfile_ToDomain_InitialisesLinks(t *testing.T) {
	owner := primitive.NewObjectID()
	mp := mongoProfile{ID: primitive.NewObjectID(), UserID: owner, Name: "Ada"}

	p := mp.toDomain()
	if p.UserID != owner.Hex() {
		t.Fatalf("unexpected owner %q", p.UserID)
	}
	if p.ContactLinks == nil || p.SocialLinks == nil {
		t.Fatalf("expected empty, non-nil link collections")
	}
}

func TestMongoProfile_BSONRoundTripKeepsLinkOrder(t *testing.T) {
	in := mongoProfile{
		ID:     primitive.NewObjectID(),
		UserID: primitive.NewObjectID(),
		Name:   "Ada",
		ContactLinks: []domain.ContactLink{
			{ID: "c1", Type: domain.ContactWebsite, URL: "https://ada.dev"},
			{ID: "c2", Type: domain.ContactEmail, URL: "ada@example.com"},
		},
		SocialLinks: []domain.SocialLink{{ID: "s1", Platform: "GitHub", URL: "https://github.com/ada"}},
		CreatedAt:   time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC),
	}

	raw, err := bson.Marshal(in)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}

	var keys bson.M
	if err := bson.Unmarshal(raw, &keys); err != nil {
		t.Fatalf("unmarshal raw: %v", err)
	}
	for _, k := range []string{"user_id", "contact_links", "social_links", "created_at"} {
		if _, ok := keys[k]; !ok {
			t.Fatalf("expected key %q in document", k)
		}
	}

	var out mongoProfile
	if err := bson.Unmarshal(raw, &out); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	p := out.toDomain()
	if len(p.ContactLinks) != 2 || p.ContactLinks[0].ID != "c1" || p.ContactLinks[1].Type != domain.ContactEmail {
		t.Fatalf("contact links not preserved: %+v", p.ContactLinks)
	}
	if p.SocialLinks[0].Platform != "GitHub" {
		t.Fatalf("social links not preserved: %+v", p.SocialLinks)
	}
}

func TestRepositories_InvalidObjectIDIsNotFound(t *testing.T) {
	users := &UserRepository{}
	if _, err := users.FindByID(context.Background(), "not-an-object-id"); !errors.Is(err, domain.ErrUserNotFound) {
		t.Fatalf("expected ErrUserNotFound, got %v", err)
	}

	profiles := &ProfileRepository{}
	if _, err := profiles.FindByUserID(context.Background(), "not-an-object-id"); !errors.Is(err, domain.ErrProfileNotFound) {
		t.Fatalf("expected ErrProfileNotFound, got %v", err)
	}
	if err := profiles.Update(context.Background(), &domain.Profile{UserID: "nope"}); !errors.Is(err, domain.ErrProfileNotFound) {
		t.Fatalf("expected ErrProfileNotFound, got %v", err)
	}
}
