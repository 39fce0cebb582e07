// Package services – DashboardService
//
// This file implements DashboardService, the read-only aggregation facade
// behind the dashboard endpoints. Every call recomputes from source rows;
// there is no caching layer.
package services

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/lingocoach/go-backend/internal/domain"
	"github.com/lingocoach/go-backend/internal/repo"
)

// DashboardService aggregates progress, activity, and recommendations.
type DashboardService struct {
	// DB is the GORM handle used for persistence.
	DB *gorm.DB
}

// Stats returns the headline counters for a user.
func (s *DashboardService) Stats(ctx context.Context, userID string) (*repo.DashboardStats, error) {
	tr := otel.Tracer("services/DashboardService")
	ctx, span := tr.Start(ctx, "Stats",
		trace.WithAttributes(attribute.String("user.id", userID)),
	)
	defer span.End()

	return repo.GetDashboardStats(ctx, s.DB, userID, time.Now().UTC())
}

// RecentProgress returns the user's latest progress rows (default 10).
func (s *DashboardService) RecentProgress(ctx context.Context, userID string) ([]domain.LearningProgress, error) {
	tr := otel.Tracer("services/DashboardService")
	ctx, span := tr.Start(ctx, "RecentProgress",
		trace.WithAttributes(attribute.String("user.id", userID)),
	)
	defer span.End()

	return repo.ListRecentProgress(ctx, s.DB, userID, 0)
}

// Weekly returns a dense seven-day series of per-day score/time totals.
func (s *DashboardService) Weekly(ctx context.Context, userID string) ([]repo.DayActivity, error) {
	tr := otel.Tracer("services/DashboardService")
	ctx, span := tr.Start(ctx, "Weekly",
		trace.WithAttributes(attribute.String("user.id", userID)),
	)
	defer span.End()

	return repo.WeeklyActivity(ctx, s.DB, userID, time.Now().UTC())
}

// Languages returns per-language score/time averages.
func (s *DashboardService) Languages(ctx context.Context, userID string) ([]repo.LanguageStats, error) {
	tr := otel.Tracer("services/DashboardService")
	ctx, span := tr.Start(ctx, "Languages",
		trace.WithAttributes(attribute.String("user.id", userID)),
	)
	defer span.End()

	return repo.LanguageAverages(ctx, s.DB, userID)
}

// NextLesson recommends the first active, not-yet-completed lesson in the
// user's target language/level (preferences defaults apply when the user has
// no stored preferences). A nil lesson with nil error means everything
// available is completed.
func (s *DashboardService) NextLesson(ctx context.Context, userID string) (*domain.Lesson, error) {
	tr := otel.Tracer("services/DashboardService")
	ctx, span := tr.Start(ctx, "NextLesson",
		trace.WithAttributes(attribute.String("user.id", userID)),
	)
	defer span.End()

	target, level := "es", defaultLevel
	if p, err := repo.GetPreferences(ctx, s.DB, userID); err == nil {
		target, level = p.TargetLanguage, p.LearningLevel
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	l, err := repo.NextLesson(ctx, s.DB, userID, target, level)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return l, err
}
