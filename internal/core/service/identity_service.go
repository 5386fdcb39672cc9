package service

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/cardly/business-card-api/internal/core/domain"
	"github.com/cardly/business-card-api/internal/core/ports"
)

const (
	publicURLBytes    = 8
	publicURLAttempts = 10
)

// tokenClaims is the payload of an identity token.
type tokenClaims struct {
	UserID string `json:"id"`
	jwt.RegisteredClaims
}

// IdentityService implements signup, login and token verification.
type IdentityService struct {
	repo      ports.UserRepository
	jwtSecret []byte
	tokenTTL  time.Duration
	log       zerolog.Logger

	newPublicURL func() (string, error)
	now          func() time.Time
}

func NewIdentityService(repo ports.UserRepository, jwtSecret string, tokenTTL time.Duration, log zerolog.Logger) *IdentityService {
	if tokenTTL <= 0 {
		tokenTTL = 24 * time.Hour
	}
	return &IdentityService{
		repo:         repo,
		jwtSecret:    []byte(jwtSecret),
		tokenTTL:     tokenTTL,
		log:          log,
		newPublicURL: randomPublicURL,
		now:          time.Now,
	}
}

// Register creates an account and returns a token for it. The password is
// hashed here, before the user ever reaches the repository.
func (s *IdentityService) Register(ctx context.Context, email, password string) (string, *domain.User, error) {
	email = domain.NormalizeEmail(email)
	if email == "" || password == "" {
		return "", nil, domain.NewValidationError("email and password are required")
	}
	if len(password) < domain.MinPasswordLength {
		return "", nil, domain.NewValidationError(fmt.Sprintf("password must be at least %d characters", domain.MinPasswordLength))
	}

	if _, err := s.repo.FindByEmail(ctx, email); err == nil {
		return "", nil, domain.ErrUserExists
	} else if !errors.Is(err, domain.ErrUserNotFound) {
		return "", nil, fmt.Errorf("register: lookup email: %w", err)
	}

	publicURL, err := s.uniquePublicURL(ctx)
	if err != nil {
		return "", nil, fmt.Errorf("register: %w", err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", nil, fmt.Errorf("register: hash password: %w", err)
	}

	now := s.now().UTC()
	user, err := s.repo.Create(ctx, &domain.User{
		Email:        email,
		PasswordHash: string(hash),
		PublicURL:    publicURL,
		CreatedAt:    now,
		UpdatedAt:    now,
	})
	if err != nil {
		if errors.Is(err, domain.ErrUserExists) {
			return "", nil, err
		}
		return "", nil, fmt.Errorf("register: %w", err)
	}

	token, err := s.issueToken(user.ID)
	if err != nil {
		return "", nil, err
	}

	s.log.Info().Str("user_id", user.ID).Str("public_url", user.PublicURL).Msg("user registered")
	return token, user, nil
}

// Authenticate checks the credentials and returns a fresh token. Unknown
// emails and wrong passwords are indistinguishable to the caller.
func (s *IdentityService) Authenticate(ctx context.Context, email, password string) (string, *domain.User, error) {
	email = domain.NormalizeEmail(email)
	if email == "" || password == "" {
		return "", nil, domain.ErrInvalidCredentials
	}

	user, err := s.repo.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return "", nil, domain.ErrInvalidCredentials
		}
		return "", nil, fmt.Errorf("authenticate: %w", err)
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		return "", nil, domain.ErrInvalidCredentials
	}

	token, err := s.issueToken(user.ID)
	if err != nil {
		return "", nil, err
	}
	return token, user, nil
}

// Verify validates an HS256 token and returns the user ID it was issued for.
func (s *IdentityService) Verify(token string) (string, error) {
	if token == "" {
		return "", domain.ErrInvalidToken
	}

	claims := &tokenClaims{}
	parsed, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (any, error) {
		return s.jwtSecret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(s.now),
	)
	if err != nil || !parsed.Valid || claims.UserID == "" {
		return "", domain.ErrInvalidToken
	}
	return claims.UserID, nil
}

// Resolve loads the user behind a verified token.
func (s *IdentityService) Resolve(ctx context.Context, userID string) (*domain.User, error) {
	user, err := s.repo.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("resolve user: %w", err)
	}
	return user, nil
}

func (s *IdentityService) issueToken(userID string) (string, error) {
	now := s.now()
	claims := tokenClaims{
		UserID: userID,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.tokenTTL)),
		},
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.jwtSecret)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return signed, nil
}

// uniquePublicURL draws random slugs until one is unused. At 64 bits a
// collision is practically impossible, so the attempt bound only guards
// against a broken random source.
func (s *IdentityService) uniquePublicURL(ctx context.Context) (string, error) {
	for i := 0; i < publicURLAttempts; i++ {
		candidate, err := s.newPublicURL()
		if err != nil {
			return "", fmt.Errorf("generate public url: %w", err)
		}
		exists, err := s.repo.PublicURLExists(ctx, candidate)
		if err != nil {
			return "", fmt.Errorf("check public url: %w", err)
		}
		if !exists {
			return candidate, nil
		}
		s.log.Warn().Str("public_url", candidate).Msg("public url collision, retrying")
	}
	return "", fmt.Errorf("no free public url after %d attempts", publicURLAttempts)
}

// randomPublicURL returns 16 lowercase hex characters.
func randomPublicURL() (string, error) {
	b := make([]byte, publicURLBytes)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return hex.EncodeToString(b), nil
}
