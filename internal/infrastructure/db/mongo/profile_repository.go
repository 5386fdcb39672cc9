package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/cardly/business-card-api/internal/core/domain"
)

const collectionProfiles = "profiles"

// ProfileRepository implements ports.ProfileRepository using MongoDB. Link
// collections are embedded arrays of the profile document.
type ProfileRepository struct {
	col *mongo.Collection
}

func NewProfileRepository(db *mongo.Database) *ProfileRepository {
	return &ProfileRepository{col: db.Collection(collectionProfiles)}
}

type mongoProfile struct {
	ID           primitive.ObjectID   `bson:"_id,omitempty"`
	UserID       primitive.ObjectID   `bson:"user_id"`
	Name         string               `bson:"name"`
	Title        string               `bson:"title"`
	Company      string               `bson:"company"`
	Photo        string               `bson:"photo"`
	ContactLinks []domain.ContactLink `bson:"contact_links"`
	SocialLinks  []domain.SocialLink  `bson:"social_links"`
	CreatedAt    time.Time            `bson:"created_at"`
	UpdatedAt    time.Time            `bson:"updated_at"`
}

func (mp *mongoProfile) toDomain() *domain.Profile {
	p := &domain.Profile{
		ID:           mp.ID.Hex(),
		UserID:       mp.UserID.Hex(),
		Name:         mp.Name,
		Title:        mp.Title,
		Company:      mp.Company,
		Photo:        mp.Photo,
		ContactLinks: mp.ContactLinks,
		SocialLinks:  mp.SocialLinks,
		CreatedAt:    mp.CreatedAt.UTC(),
		UpdatedAt:    mp.UpdatedAt.UTC(),
	}
	if p.ContactLinks == nil {
		p.ContactLinks = []domain.ContactLink{}
	}
	if p.SocialLinks == nil {
		p.SocialLinks = []domain.SocialLink{}
	}
	return p
}

// Create inserts a profile. The unique index on user_id turns a second
// profile for the same owner into domain.ErrProfileExists.
func (r *ProfileRepository) Create(ctx context.Context, profile *domain.Profile) (*domain.Profile, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	owner, err := primitive.ObjectIDFromHex(profile.UserID)
	if err != nil {
		return nil, fmt.Errorf("insert profile: invalid owner id %q: %w", profile.UserID, err)
	}

	doc := mongoProfile{
		UserID:       owner,
		Name:         profile.Name,
		Title:        profile.Title,
		Company:      profile.Company,
		Photo:        profile.Photo,
		ContactLinks: nonNilContacts(profile.ContactLinks),
		SocialLinks:  nonNilSocials(profile.SocialLinks),
		CreatedAt:    profile.CreatedAt,
		UpdatedAt:    profile.UpdatedAt,
	}

	res, err := r.col.InsertOne(ctx, doc)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, domain.ErrProfileExists
		}
		return nil, fmt.Errorf("insert profile: %w", err)
	}

	oid, ok := res.InsertedID.(primitive.ObjectID)
	if !ok {
		return nil, fmt.Errorf("insert profile: unexpected id type %T", res.InsertedID)
	}
	doc.ID = oid
	return doc.toDomain(), nil
}

func (r *ProfileRepository) FindByUserID(ctx context.Context, userID string) (*domain.Profile, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	owner, err := primitive.ObjectIDFromHex(userID)
	if err != nil {
		return nil, domain.ErrProfileNotFound
	}

	var mp mongoProfile
	if err := r.col.FindOne(ctx, bson.M{"user_id": owner}).Decode(&mp); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrProfileNotFound
		}
		return nil, fmt.Errorf("find profile: %w", err)
	}
	return mp.toDomain(), nil
}

// Update overwrites the mutable fields in a single document write.
func (r *ProfileRepository) Update(ctx context.Context, profile *domain.Profile) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	owner, err := primitive.ObjectIDFromHex(profile.UserID)
	if err != nil {
		return domain.ErrProfileNotFound
	}

	update := bson.M{"$set": bson.M{
		"name":          profile.Name,
		"title":         profile.Title,
		"company":       profile.Company,
		"photo":         profile.Photo,
		"contact_links": nonNilContacts(profile.ContactLinks),
		"social_links":  nonNilSocials(profile.SocialLinks),
		"updated_at":    profile.UpdatedAt,
	}}

	res, err := r.col.UpdateOne(ctx, bson.M{"user_id": owner}, update)
	if err != nil {
		return fmt.Errorf("update profile: %w", err)
	}
	if res.MatchedCount == 0 {
		return domain.ErrProfileNotFound
	}
	return nil
}

// EnsureIndexes enforces one profile per user.
func (r *ProfileRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	_, err := r.col.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "user_id", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	return err
}

func nonNilContacts(links []domain.ContactLink) []domain.ContactLink {
	if links == nil {
		return []domain.ContactLink{}
	}
	return links
}

func nonNilSocials(links []domain.SocialLink) []domain.SocialLink {
	if links == nil {
		return []domain.SocialLink{}
	}
	return links
}
