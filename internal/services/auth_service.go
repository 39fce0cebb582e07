// Package services – AuthService
//
// This file implements AuthService, which owns registration, login, and
// bearer-token issuance/verification. Passwords are stored as bcrypt hashes;
// tokens are HS256 JWTs carrying the user id in the subject claim.
//
// Observability: public methods are OpenTelemetry-instrumented; spans never
// record credentials.
package services

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/lingocoach/go-backend/internal/domain"
	"github.com/lingocoach/go-backend/internal/repo"
)

// Password length bounds enforced at registration.
const (
	minPasswordRunes = 8
	maxPasswordRunes = 128
)

// emailRE is a permissive shape check, not RFC validation.
var emailRE = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)

// AuthService provides registration, login, and token verification.
type AuthService struct {
	// DB is the GORM handle used for persistence.
	DB *gorm.DB

	// Secret signs and verifies HS256 tokens.
	Secret string
	// TokenTTL is the issued-token lifetime; zero means the 7-day default.
	TokenTTL time.Duration
	// BcryptCost overrides the hashing cost; zero means bcrypt.DefaultCost.
	BcryptCost int
}

// Register validates the input, stores a new user with a bcrypt-hashed
// password, and returns the user together with a signed token.
func (s *AuthService) Register(ctx context.Context, email, password, name string) (*domain.User, string, error) {
	tr := otel.Tracer("services/AuthService")
	ctx, span := tr.Start(ctx, "Register")
	defer span.End()

	email = strings.ToLower(strings.TrimSpace(email))
	if !emailRE.MatchString(email) {
		return nil, "", ErrInvalidEmail
	}
	if n := utf8.RuneCountInString(password); n < minPasswordRunes || n > maxPasswordRunes {
		return nil, "", ErrWeakPassword
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), s.cost())
	if err != nil {
		return nil, "", fmt.Errorf("hash password: %w", err)
	}

	u, err := repo.CreateUser(ctx, s.DB, email, string(hash), strings.TrimSpace(name))
	if err != nil {
		if errors.Is(err, repo.ErrDuplicateEmail) {
			return nil, "", ErrEmailTaken
		}
		return nil, "", err
	}

	token, err := s.signToken(u)
	if err != nil {
		return nil, "", err
	}
	return u, token, nil
}

// Login verifies the credentials and returns the user with a fresh token.
// Unknown email and wrong password are reported identically.
func (s *AuthService) Login(ctx context.Context, email, password string) (*domain.User, string, error) {
	tr := otel.Tracer("services/AuthService")
	ctx, span := tr.Start(ctx, "Login")
	defer span.End()

	email = strings.ToLower(strings.TrimSpace(email))
	u, err := repo.GetUserByEmail(ctx, s.DB, email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, "", ErrInvalidCredentials
		}
		return nil, "", err
	}
	if bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)) != nil {
		return nil, "", ErrInvalidCredentials
	}

	token, err := s.signToken(u)
	if err != nil {
		return nil, "", err
	}
	return u, token, nil
}

// Me returns the user for an authenticated id.
func (s *AuthService) Me(ctx context.Context, userID string) (*domain.User, error) {
	tr := otel.Tracer("services/AuthService")
	ctx, span := tr.Start(ctx, "Me",
		trace.WithAttributes(attribute.String("user.id", userID)),
	)
	defer span.End()

	u, err := repo.GetUser(ctx, s.DB, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return u, nil
}

// VerifyToken validates an HS256 bearer token and returns the subject user
// id. Any parse, signature, or expiry problem maps to ErrInvalidToken.
func (s *AuthService) VerifyToken(token string) (string, error) {
	parsed, err := jwt.Parse(token, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return []byte(s.Secret), nil
	}, jwt.WithValidMethods([]string{"HS256"}))
	if err != nil || !parsed.Valid {
		return "", ErrInvalidToken
	}

	claims, ok := parsed.Claims.(jwt.MapClaims)
	if !ok {
		return "", ErrInvalidToken
	}
	sub, _ := claims["sub"].(string)
	if sub == "" {
		return "", ErrInvalidToken
	}
	return sub, nil
}

// signToken issues an HS256 token with subject, email, and expiry claims.
func (s *AuthService) signToken(u *domain.User) (string, error) {
	now := time.Now().UTC()
	claims := jwt.MapClaims{
		"sub":   u.ID,
		"email": u.Email,
		"iat":   now.Unix(),
		"exp":   now.Add(s.ttl()).Unix(),
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(s.Secret))
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return signed, nil
}

func (s *AuthService) cost() int {
	if s.BcryptCost > 0 {
		return s.BcryptCost
	}
	return bcrypt.DefaultCost
}

// ttl defaults only on zero: a negative TTL deliberately signs an
// already-expired token, which the expiry tests rely on. Config validation
// keeps production TTLs positive.
func (s *AuthService) ttl() time.Duration {
	if s.TokenTTL != 0 {
		return s.TokenTTL
	}
	return 7 * 24 * time.Hour
}
