// Package repo implements the data persistence layer for domain entities,
// backed by GORM. This file provides repository functions for the Lesson,
// UserLesson, and LearningProgress models.
package repo

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/lingocoach/go-backend/internal/domain"
)

// StatusCompleted is the UserLesson status written on completion.
const StatusCompleted = "completed"

// ListLessons returns active lessons filtered by language and level, and
// optionally by category, newest first.
func ListLessons(ctx context.Context, db *gorm.DB, language, level, category string) ([]domain.Lesson, error) {
	q := db.WithContext(ctx).
		Where("language = ? AND level = ? AND is_active = ?", language, level, true)
	if category != "" {
		q = q.Where("category = ?", category)
	}
	var out []domain.Lesson
	err := q.Order("created_at desc").Find(&out).Error
	return out, err
}

// GetLesson fetches a lesson by ID, or ErrNotFound.
func GetLesson(ctx context.Context, db *gorm.DB, id string) (*domain.Lesson, error) {
	var l domain.Lesson
	if err := db.WithContext(ctx).Where("id = ?", id).First(&l).Error; err != nil {
		return nil, err
	}
	return &l, nil
}

// UpsertUserLesson marks a lesson completed for a user, creating the join row
// on first completion and overwriting status/score/completedAt on repeats.
// (UserID, LessonID) is unique, so the read-then-write pair inside a caller
// transaction cannot produce duplicates.
func UpsertUserLesson(ctx context.Context, db *gorm.DB, userID, lessonID string, score int) (*domain.UserLesson, error) {
	now := time.Now().UTC()

	var ul domain.UserLesson
	err := db.WithContext(ctx).
		Where("user_id = ? AND lesson_id = ?", userID, lessonID).
		First(&ul).Error
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		ul = domain.UserLesson{
			ID:          uuid.NewString(),
			UserID:      userID,
			LessonID:    lessonID,
			Status:      StatusCompleted,
			Score:       score,
			CompletedAt: &now,
			CreatedAt:   now,
		}
		if err := db.WithContext(ctx).Create(&ul).Error; err != nil {
			return nil, err
		}
	case err != nil:
		return nil, err
	default:
		ul.Status = StatusCompleted
		ul.Score = score
		ul.CompletedAt = &now
		if err := db.WithContext(ctx).Save(&ul).Error; err != nil {
			return nil, err
		}
	}
	return &ul, nil
}

// CreateProgress appends a LearningProgress record. Progress rows are
// write-once: nothing in the application updates them afterwards.
func CreateProgress(ctx context.Context, db *gorm.DB, userID, language, level string, score, timeSpent int) (*domain.LearningProgress, error) {
	p := &domain.LearningProgress{
		ID:          uuid.NewString(),
		UserID:      userID,
		Language:    language,
		Level:       level,
		Score:       score,
		TimeSpent:   timeSpent,
		CompletedAt: time.Now().UTC(),
	}
	if err := db.WithContext(ctx).Create(p).Error; err != nil {
		return nil, err
	}
	return p, nil
}

// ListRecentProgress returns the newest progress rows for a user.
func ListRecentProgress(ctx context.Context, db *gorm.DB, userID string, limit int) ([]domain.LearningProgress, error) {
	if limit <= 0 {
		limit = 10
	}
	var out []domain.LearningProgress
	err := db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("completed_at desc").
		Limit(limit).
		Find(&out).Error
	return out, err
}

// NextLesson returns the first active lesson in (language, level) that the
// user has not yet completed, by stored order. ErrNotFound when the user has
// completed everything available.
func NextLesson(ctx context.Context, db *gorm.DB, userID, language, level string) (*domain.Lesson, error) {
	sub := db.Model(&domain.UserLesson{}).
		Select("lesson_id").
		Where("user_id = ? AND status = ?", userID, StatusCompleted)

	var l domain.Lesson
	err := db.WithContext(ctx).
		Where("language = ? AND level = ? AND is_active = ?", language, level, true).
		Where("id NOT IN (?)", sub).
		Order("sort_order asc, created_at asc").
		First(&l).Error
	if err != nil {
		return nil, err
	}
	return &l, nil
}

// CreateLesson inserts a lesson row; used by seeding.
func CreateLesson(ctx context.Context, db *gorm.DB, l *domain.Lesson) error {
	if l.ID == "" {
		l.ID = uuid.NewString()
	}
	if l.CreatedAt.IsZero() {
		l.CreatedAt = time.Now().UTC()
	}
	return db.WithContext(ctx).Create(l).Error
}

// CountLessons returns the number of lesson rows; used to keep seeding
// idempotent across restarts.
func CountLessons(ctx context.Context, db *gorm.DB) (int64, error) {
	var n int64
	err := db.WithContext(ctx).Model(&domain.Lesson{}).Count(&n).Error
	return n, err
}
