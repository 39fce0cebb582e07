// Package repo implements the data persistence layer for domain entities,
// backed by GORM. This file provides the aggregate queries behind the
// dashboard endpoints. Every aggregate recomputes from source rows on each
// call; nothing here is cached.
package repo

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/lingocoach/go-backend/internal/domain"
)

// DashboardStats holds the headline counters for a user's dashboard.
type DashboardStats struct {
	LessonsCompleted   int64 `json:"lessonsCompleted"`
	ConversationsCount int64 `json:"conversationsCount"`
	StreakDays         int   `json:"streakDays"`
	TotalScore         int64 `json:"totalScore"`
}

// DayActivity is one day's totals within the weekly window.
type DayActivity struct {
	Day       string `json:"day"` // YYYY-MM-DD
	Score     int64  `json:"score"`
	TimeSpent int64  `json:"time_spent"`
}

// LanguageStats aggregates per-language averages over all progress rows.
type LanguageStats struct {
	Language     string  `json:"language"`
	AvgScore     float64 `json:"avg_score"`
	AvgTimeSpent float64 `json:"avg_time_spent"`
	Completions  int64   `json:"completions"`
}

// GetDashboardStats computes the headline counters: completed lessons,
// conversation count, summed score, and a streak-day estimate. The streak is
// the number of whole days since the most recent progress record — a coarse
// proxy, not a consecutive-day calculation.
func GetDashboardStats(ctx context.Context, db *gorm.DB, userID string, now time.Time) (*DashboardStats, error) {
	var out DashboardStats

	err := db.WithContext(ctx).
		Model(&domain.UserLesson{}).
		Where("user_id = ? AND status = ?", userID, StatusCompleted).
		Count(&out.LessonsCompleted).Error
	if err != nil {
		return nil, err
	}

	err = db.WithContext(ctx).
		Model(&domain.Conversation{}).
		Where("user_id = ?", userID).
		Count(&out.ConversationsCount).Error
	if err != nil {
		return nil, err
	}

	var sum struct{ Total int64 }
	err = db.WithContext(ctx).
		Model(&domain.LearningProgress{}).
		Select("COALESCE(SUM(score), 0) AS total").
		Where("user_id = ?", userID).
		Scan(&sum).Error
	if err != nil {
		return nil, err
	}
	out.TotalScore = sum.Total

	var last domain.LearningProgress
	err = db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("completed_at desc").
		First(&last).Error
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		out.StreakDays = 0
	case err != nil:
		return nil, err
	default:
		days := int(now.Sub(last.CompletedAt).Hours() / 24)
		if days < 0 {
			days = 0
		}
		out.StreakDays = days
	}

	return &out, nil
}

// WeeklyActivity returns per-day score and time totals for the seven days
// ending at now (inclusive). Days without activity are present with zeros so
// charts get a dense series.
func WeeklyActivity(ctx context.Context, db *gorm.DB, userID string, now time.Time) ([]DayActivity, error) {
	start := now.UTC().Truncate(24 * time.Hour).AddDate(0, 0, -6)

	type row struct {
		Day       string
		Score     int64
		TimeSpent int64
	}
	var rows []row
	err := db.WithContext(ctx).
		Model(&domain.LearningProgress{}).
		Select("strftime('%Y-%m-%d', completed_at) AS day, SUM(score) AS score, SUM(time_spent) AS time_spent").
		Where("user_id = ? AND completed_at >= ?", userID, start).
		Group("day").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	byDay := make(map[string]row, len(rows))
	for _, r := range rows {
		byDay[r.Day] = r
	}

	out := make([]DayActivity, 0, 7)
	for i := 0; i < 7; i++ {
		day := start.AddDate(0, 0, i).Format("2006-01-02")
		r := byDay[day]
		out = append(out, DayActivity{Day: day, Score: r.Score, TimeSpent: r.TimeSpent})
	}
	return out, nil
}

// LanguageAverages returns per-language score/time averages across all of a
// user's progress rows, most-practiced language first.
func LanguageAverages(ctx context.Context, db *gorm.DB, userID string) ([]LanguageStats, error) {
	var out []LanguageStats
	err := db.WithContext(ctx).
		Model(&domain.LearningProgress{}).
		Select("language, AVG(score) AS avg_score, AVG(time_spent) AS avg_time_spent, COUNT(*) AS completions").
		Where("user_id = ?", userID).
		Group("language").
		Order("completions desc").
		Scan(&out).Error
	return out, err
}
