package repo

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/lingocoach/go-backend/internal/domain"
	"gorm.io/gorm"
)

func seedLesson(t *testing.T, db *gorm.DB, id, title, language, level string, order int) {
	t.Helper()
	l := &domain.Lesson{
		ID:       id,
		Title:    title,
		Language: language,
		Level:    level,
		Category: "conversation",
		Order:    order,
		IsActive: true,
	}
	if err := CreateLesson(context.Background(), db, l); err != nil {
		t.Fatalf("seed lesson %s: %v", id, err)
	}
}

func TestListLessons_FiltersAndCategory(t *testing.T) {
	db := newTestDB(t, &domain.Lesson{})
	ctx := context.Background()

	seedLesson(t, db, "l1", "Greetings", "es", "beginner", 1)
	seedLesson(t, db, "l2", "Numbers", "es", "beginner", 2)
	seedLesson(t, db, "l3", "Subjonctif", "fr", "advanced", 1)

	out, err := ListLessons(ctx, db, "es", "beginner", "")
	if err != nil {
		t.Fatalf("ListLessons: %v", err)
	}
	if len(out) != 2 {
		t.Fatalf("len = %d, want 2", len(out))
	}

	out, err = ListLessons(ctx, db, "es", "beginner", "grammar")
	if err != nil {
		t.Fatalf("ListLessons category: %v", err)
	}
	if len(out) != 0 {
		t.Fatalf("category filter leaked %d rows", len(out))
	}
}

func TestUpsertUserLesson_CreateThenOverwrite(t *testing.T) {
	db := newTestDB(t, &domain.UserLesson{})
	ctx := context.Background()

	first, err := UpsertUserLesson(ctx, db, "u1", "l1", 70)
	if err != nil {
		t.Fatalf("first upsert: %v", err)
	}
	if first.Status != StatusCompleted || first.Score != 70 || first.CompletedAt == nil {
		t.Fatalf("first upsert row: %+v", first)
	}

	second, err := UpsertUserLesson(ctx, db, "u1", "l1", 95)
	if err != nil {
		t.Fatalf("second upsert: %v", err)
	}
	if second.ID != first.ID {
		t.Fatalf("upsert created a new row: %s != %s", second.ID, first.ID)
	}
	if second.Score != 95 {
		t.Fatalf("score not overwritten: %d", second.Score)
	}

	var n int64
	db.Model(&domain.UserLesson{}).Where("user_id = ? AND lesson_id = ?", "u1", "l1").Count(&n)
	if n != 1 {
		t.Fatalf("row count = %d, want 1", n)
	}
}

func TestNextLesson_SkipsCompletedByOrder(t *testing.T) {
	db := newTestDB(t, &domain.Lesson{}, &domain.UserLesson{})
	ctx := context.Background()

	seedLesson(t, db, "l1", "First", "es", "beginner", 1)
	seedLesson(t, db, "l2", "Second", "es", "beginner", 2)
	seedLesson(t, db, "l3", "Third", "es", "beginner", 3)

	next, err := NextLesson(ctx, db, "u1", "es", "beginner")
	if err != nil {
		t.Fatalf("NextLesson fresh user: %v", err)
	}
	if next.ID != "l1" {
		t.Fatalf("fresh user next = %s, want l1", next.ID)
	}

	if _, err := UpsertUserLesson(ctx, db, "u1", "l1", 80); err != nil {
		t.Fatalf("complete l1: %v", err)
	}
	next, err = NextLesson(ctx, db, "u1", "es", "beginner")
	if err != nil {
		t.Fatalf("NextLesson after l1: %v", err)
	}
	if next.ID != "l2" {
		t.Fatalf("next = %s, want l2", next.ID)
	}

	// Another user's completions must not affect the result.
	if _, err := UpsertUserLesson(ctx, db, "u2", "l2", 80); err != nil {
		t.Fatalf("complete l2 as u2: %v", err)
	}
	next, err = NextLesson(ctx, db, "u1", "es", "beginner")
	if err != nil {
		t.Fatalf("NextLesson after foreign completion: %v", err)
	}
	if next.ID != "l2" {
		t.Fatalf("next = %s, want l2", next.ID)
	}
}

func TestNextLesson_AllCompleted(t *testing.T) {
	db := newTestDB(t, &domain.Lesson{}, &domain.UserLesson{})
	ctx := context.Background()

	seedLesson(t, db, "l1", "Only", "es", "beginner", 1)
	if _, err := UpsertUserLesson(ctx, db, "u1", "l1", 100); err != nil {
		t.Fatalf("complete: %v", err)
	}

	if _, err := NextLesson(ctx, db, "u1", "es", "beginner"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("err = %v, want ErrNotFound", err)
	}
}

func TestListRecentProgress_NewestFirstWithDefaultLimit(t *testing.T) {
	db := newTestDB(t, &domain.LearningProgress{})
	ctx := context.Background()
	base := time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)

	for i := 0; i < 12; i++ {
		p, err := CreateProgress(ctx, db, "u1", "es", "beginner", i, 60)
		if err != nil {
			t.Fatalf("CreateProgress %d: %v", i, err)
		}
		db.Model(&domain.LearningProgress{}).Where("id = ?", p.ID).
			Update("completed_at", base.AddDate(0, 0, i))
	}

	out, err := ListRecentProgress(ctx, db, "u1", 0)
	if err != nil {
		t.Fatalf("ListRecentProgress: %v", err)
	}
	if len(out) != 10 {
		t.Fatalf("default limit: len = %d, want 10", len(out))
	}
	if out[0].Score != 11 {
		t.Fatalf("first row score = %d, want newest (11)", out[0].Score)
	}
}
