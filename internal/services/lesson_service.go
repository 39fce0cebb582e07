// Package services – LessonService
//
// This file implements LessonService, covering the lesson catalog and the
// completion flow. Completion upserts the per-user join row and appends an
// immutable progress record in one transaction, so the dashboard aggregates
// never observe a half-applied completion.
package services

import (
	"context"
	"errors"
	"strings"

	"gorm.io/gorm"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/lingocoach/go-backend/internal/domain"
	"github.com/lingocoach/go-backend/internal/repo"
)

// LessonService provides catalog reads and the completion use-case.
type LessonService struct {
	// DB is the GORM handle used for persistence.
	DB *gorm.DB
}

// List returns active lessons for a language/level, optionally filtered by
// category, newest first.
func (s *LessonService) List(ctx context.Context, language, level, category string) ([]domain.Lesson, error) {
	tr := otel.Tracer("services/LessonService")
	ctx, span := tr.Start(ctx, "List",
		trace.WithAttributes(
			attribute.String("lesson.language", language),
			attribute.String("lesson.level", level),
		),
	)
	defer span.End()

	if language == "" {
		language = defaultLanguage
	}
	if level == "" {
		level = defaultLevel
	}
	return repo.ListLessons(ctx, s.DB, language, level, category)
}

// Get returns one lesson by id, or ErrLessonNotFound.
func (s *LessonService) Get(ctx context.Context, id string) (*domain.Lesson, error) {
	tr := otel.Tracer("services/LessonService")
	ctx, span := tr.Start(ctx, "Get",
		trace.WithAttributes(attribute.String("lesson.id", id)),
	)
	defer span.End()

	l, err := repo.GetLesson(ctx, s.DB, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrLessonNotFound
		}
		return nil, err
	}
	return l, nil
}

// Complete records a lesson completion: the UserLesson row is created or
// overwritten and a LearningProgress record is appended, atomically. The
// progress row inherits language/level from the lesson itself.
func (s *LessonService) Complete(ctx context.Context, userID, lessonID string, score, timeSpent int) (*domain.UserLesson, error) {
	tr := otel.Tracer("services/LessonService")
	ctx, span := tr.Start(ctx, "Complete",
		trace.WithAttributes(
			attribute.String("user.id", userID),
			attribute.String("lesson.id", lessonID),
			attribute.Int("lesson.score", score),
		),
	)
	defer span.End()

	if strings.TrimSpace(lessonID) == "" {
		return nil, ErrMissingFields
	}

	lesson, err := repo.GetLesson(ctx, s.DB, lessonID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrLessonNotFound
		}
		return nil, err
	}

	var ul *domain.UserLesson
	err = s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		u, err := repo.UpsertUserLesson(ctx, tx, userID, lesson.ID, score)
		if err != nil {
			return err
		}
		ul = u
		_, err = repo.CreateProgress(ctx, tx, userID, lesson.Language, lesson.Level, score, timeSpent)
		return err
	})
	if err != nil {
		return nil, err
	}
	return ul, nil
}
