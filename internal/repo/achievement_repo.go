// Package repo implements the data persistence layer for domain entities,
// backed by GORM. This file provides repository functions for the static
// Achievement catalog and the per-user earned join. There is no award path
// in the application; these are read (and seed) queries only.
package repo

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/lingocoach/go-backend/internal/domain"
)

// ListAchievements returns the active achievement catalog.
func ListAchievements(ctx context.Context, db *gorm.DB) ([]domain.Achievement, error) {
	var out []domain.Achievement
	err := db.WithContext(ctx).
		Where("is_active = ?", true).
		Order("points asc").
		Find(&out).Error
	return out, err
}

// ListUserAchievements returns the achievements earned by userID, with the
// catalog entry preloaded for display.
func ListUserAchievements(ctx context.Context, db *gorm.DB, userID string) ([]domain.UserAchievement, error) {
	var out []domain.UserAchievement
	err := db.WithContext(ctx).
		Preload("Achievement").
		Where("user_id = ?", userID).
		Order("earned_at desc").
		Find(&out).Error
	return out, err
}

// SeedAchievement inserts a catalog entry if no row with the same name
// exists, keeping startup seeding idempotent.
func SeedAchievement(ctx context.Context, db *gorm.DB, a domain.Achievement) error {
	var existing domain.Achievement
	err := db.WithContext(ctx).Where("name = ?", a.Name).First(&existing).Error
	if err == nil {
		return nil
	}
	if err != gorm.ErrRecordNotFound {
		return err
	}
	if a.ID == "" {
		a.ID = uuid.NewString()
	}
	a.IsActive = true
	a.CreatedAt = time.Now().UTC()
	return db.WithContext(ctx).Create(&a).Error
}
