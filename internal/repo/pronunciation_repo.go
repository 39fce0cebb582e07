// Package repo implements the data persistence layer for domain entities,
// backed by GORM. This file provides repository functions for the
// PronunciationAnalysis model.
package repo

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/lingocoach/go-backend/internal/domain"
)

// CreateAnalysis appends one scored pronunciation attempt. Feedback is the
// raw JSON payload produced by the AI gateway.
func CreateAnalysis(ctx context.Context, db *gorm.DB, userID, audioURL, text string, score int, feedback []byte) (*domain.PronunciationAnalysis, error) {
	a := &domain.PronunciationAnalysis{
		ID:        uuid.NewString(),
		UserID:    userID,
		AudioURL:  audioURL,
		Text:      text,
		Score:     score,
		Feedback:  feedback,
		CreatedAt: time.Now().UTC(),
	}
	if err := db.WithContext(ctx).Create(a).Error; err != nil {
		return nil, err
	}
	return a, nil
}

// ListAnalyses returns the newest analyses for a user.
func ListAnalyses(ctx context.Context, db *gorm.DB, userID string, limit int) ([]domain.PronunciationAnalysis, error) {
	if limit <= 0 {
		limit = 20
	}
	var out []domain.PronunciationAnalysis
	err := db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at desc").
		Limit(limit).
		Find(&out).Error
	return out, err
}
