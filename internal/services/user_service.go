// Package services – UserService
//
// This file implements UserService: profile reads/updates and the
// preferences upsert. Preferences reads fall back to the documented defaults
// (en/es/beginner/15) without persisting a row; the row is created on the
// first write.
package services

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/lingocoach/go-backend/internal/domain"
	"github.com/lingocoach/go-backend/internal/repo"
)

// UserService provides profile and preferences operations.
type UserService struct {
	// DB is the GORM handle used for persistence.
	DB *gorm.DB
}

// Profile returns the user's profile, or ErrUserNotFound.
func (s *UserService) Profile(ctx context.Context, userID string) (*domain.User, error) {
	tr := otel.Tracer("services/UserService")
	ctx, span := tr.Start(ctx, "Profile",
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

// UpdateProfile applies a partial profile update; empty fields are skipped.
func (s *UserService) UpdateProfile(ctx context.Context, userID, name, image string) (*domain.User, error) {
	tr := otel.Tracer("services/UserService")
	ctx, span := tr.Start(ctx, "UpdateProfile",
		trace.WithAttributes(attribute.String("user.id", userID)),
	)
	defer span.End()

	u, err := repo.UpdateUserProfile(ctx, s.DB, userID, name, image)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return u, nil
}

// Preferences returns the stored preferences, or the defaults when the user
// has never written any. The defaults are not persisted by a read.
func (s *UserService) Preferences(ctx context.Context, userID string) (*domain.UserPreferences, error) {
	tr := otel.Tracer("services/UserService")
	ctx, span := tr.Start(ctx, "Preferences",
		trace.WithAttributes(attribute.String("user.id", userID)),
	)
	defer span.End()

	p, err := repo.GetPreferences(ctx, s.DB, userID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return &domain.UserPreferences{
			UserID:         userID,
			Language:       "en",
			TargetLanguage: "es",
			LearningLevel:  "beginner",
			DailyGoal:      15,
		}, nil
	}
	return p, err
}

// UpdatePreferences upserts the preferences row, applying only the provided
// fields.
func (s *UserService) UpdatePreferences(ctx context.Context, userID string, upd repo.PreferencesUpdate) (*domain.UserPreferences, error) {
	tr := otel.Tracer("services/UserService")
	ctx, span := tr.Start(ctx, "UpdatePreferences",
		trace.WithAttributes(attribute.String("user.id", userID)),
	)
	defer span.End()

	return repo.UpsertPreferences(ctx, s.DB, userID, upd)
}
