// Package services – AchievementService
//
// Display-only reads over the static achievement catalog and the per-user
// earned set. There is no award path anywhere in the application.
package services

import (
	"context"

	"gorm.io/gorm"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/lingocoach/go-backend/internal/domain"
	"github.com/lingocoach/go-backend/internal/repo"
)

// AchievementService reads the catalog and earned achievements.
type AchievementService struct {
	// DB is the GORM handle used for persistence.
	DB *gorm.DB
}

// Overview returns the active catalog together with the caller's earned set.
func (s *AchievementService) Overview(ctx context.Context, userID string) ([]domain.Achievement, []domain.UserAchievement, error) {
	tr := otel.Tracer("services/AchievementService")
	ctx, span := tr.Start(ctx, "Overview",
		trace.WithAttributes(attribute.String("user.id", userID)),
	)
	defer span.End()

	catalog, err := repo.ListAchievements(ctx, s.DB)
	if err != nil {
		return nil, nil, err
	}
	earned, err := repo.ListUserAchievements(ctx, s.DB, userID)
	if err != nil {
		return nil, nil, err
	}
	return catalog, earned, nil
}
