// Package repo implements the data persistence layer for domain entities,
// backed by GORM. This file provides repository functions for the
// PracticeSentence model: user-owned snippets with create/list/delete only.
package repo

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/lingocoach/go-backend/internal/domain"
)

// CreateSentence inserts a practice sentence owned by userID.
func CreateSentence(ctx context.Context, db *gorm.DB, userID, text, language, level string) (*domain.PracticeSentence, error) {
	s := &domain.PracticeSentence{
		ID:        uuid.NewString(),
		UserID:    userID,
		Text:      text,
		Language:  language,
		Level:     level,
		CreatedAt: time.Now().UTC(),
	}
	if err := db.WithContext(ctx).Create(s).Error; err != nil {
		return nil, err
	}
	return s, nil
}

// ListSentences returns all sentences belonging to userID, newest first.
func ListSentences(ctx context.Context, db *gorm.DB, userID string) ([]domain.PracticeSentence, error) {
	var out []domain.PracticeSentence
	err := db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at desc").
		Find(&out).Error
	return out, err
}

// DeleteSentence removes a sentence if owned by userID and returns the rows
// affected. Zero rows (missing or foreign sentence) is not an error.
func DeleteSentence(ctx context.Context, db *gorm.DB, id, userID string) (int64, error) {
	res := db.WithContext(ctx).
		Where("id = ? AND user_id = ?", id, userID).
		Delete(&domain.PracticeSentence{})
	return res.RowsAffected, res.Error
}
