// Package repo implements the data persistence layer for domain entities,
// backed by GORM. This file provides repository functions for the User and
// UserPreferences models.
//
// Error semantics follow the rest of the package: missing rows surface as
// ErrNotFound (an alias of gorm.ErrRecordNotFound); all other DB errors are
// propagated unchanged.
package repo

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/lingocoach/go-backend/internal/domain"
)

// ErrNotFound is returned when a requested record does not exist.
// It aliases gorm.ErrRecordNotFound for convenience and consistency
// across the service layer and handlers.
var ErrNotFound = gorm.ErrRecordNotFound

// ErrDuplicateEmail indicates that a user row already exists for the email.
var ErrDuplicateEmail = errors.New("email already registered")

// CreateUser inserts a new User row with a generated UUID and UTC timestamp.
// A unique-constraint violation on email is mapped to ErrDuplicateEmail.
func CreateUser(ctx context.Context, db *gorm.DB, email, passwordHash, name string) (*domain.User, error) {
	u := &domain.User{
		ID:           uuid.NewString(),
		Email:        email,
		PasswordHash: passwordHash,
		Name:         name,
		CreatedAt:    time.Now().UTC(),
	}
	if err := db.WithContext(ctx).Create(u).Error; err != nil {
		// glebarez/sqlite often returns plain-text errors for UNIQUE violations.
		low := strings.ToLower(err.Error())
		if errors.Is(err, gorm.ErrDuplicatedKey) ||
			strings.Contains(low, "unique constraint failed") ||
			strings.Contains(low, "constraint failed: unique") {
			return nil, ErrDuplicateEmail
		}
		return nil, err
	}
	return u, nil
}

// GetUserByEmail fetches a user by email, or ErrNotFound.
func GetUserByEmail(ctx context.Context, db *gorm.DB, email string) (*domain.User, error) {
	var u domain.User
	if err := db.WithContext(ctx).Where("email = ?", email).First(&u).Error; err != nil {
		return nil, err
	}
	return &u, nil
}

// GetUser fetches a user by ID, or ErrNotFound.
func GetUser(ctx context.Context, db *gorm.DB, id string) (*domain.User, error) {
	var u domain.User
	if err := db.WithContext(ctx).Where("id = ?", id).First(&u).Error; err != nil {
		return nil, err
	}
	return &u, nil
}

// UpdateUserProfile updates the mutable profile fields of a user. Empty
// values are skipped so partial updates do not clobber existing data.
// Returns ErrNotFound when no row matched.
func UpdateUserProfile(ctx context.Context, db *gorm.DB, id, name, image string) (*domain.User, error) {
	updates := map[string]any{}
	if name != "" {
		updates["name"] = name
	}
	if image != "" {
		updates["image"] = image
	}
	if len(updates) > 0 {
		res := db.WithContext(ctx).Model(&domain.User{}).Where("id = ?", id).Updates(updates)
		if res.Error != nil {
			return nil, res.Error
		}
		if res.RowsAffected == 0 {
			return nil, gorm.ErrRecordNotFound
		}
	}
	return GetUser(ctx, db, id)
}

// GetPreferences fetches the preferences row for userID, or ErrNotFound.
func GetPreferences(ctx context.Context, db *gorm.DB, userID string) (*domain.UserPreferences, error) {
	var p domain.UserPreferences
	if err := db.WithContext(ctx).Where("user_id = ?", userID).First(&p).Error; err != nil {
		return nil, err
	}
	return &p, nil
}

// PreferencesUpdate carries the optional fields of a preferences upsert.
// Nil pointers leave the stored value untouched.
type PreferencesUpdate struct {
	Language       *string
	TargetLanguage *string
	LearningLevel  *string
	DailyGoal      *int
	Notifications  []byte
	Privacy        []byte
}

// UpsertPreferences creates the row with defaults on first write and applies
// only the provided fields on subsequent writes, mirroring the partial-update
// semantics of the preferences endpoint.
func UpsertPreferences(ctx context.Context, db *gorm.DB, userID string, upd PreferencesUpdate) (*domain.UserPreferences, error) {
	p, err := GetPreferences(ctx, db, userID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		p = &domain.UserPreferences{
			ID:             uuid.NewString(),
			UserID:         userID,
			Language:       "en",
			TargetLanguage: "es",
			LearningLevel:  "beginner",
			DailyGoal:      15,
			CreatedAt:      time.Now().UTC(),
		}
	} else if err != nil {
		return nil, err
	}

	if upd.Language != nil {
		p.Language = *upd.Language
	}
	if upd.TargetLanguage != nil {
		p.TargetLanguage = *upd.TargetLanguage
	}
	if upd.LearningLevel != nil {
		p.LearningLevel = *upd.LearningLevel
	}
	if upd.DailyGoal != nil {
		p.DailyGoal = *upd.DailyGoal
	}
	if upd.Notifications != nil {
		p.Notifications = upd.Notifications
	}
	if upd.Privacy != nil {
		p.Privacy = upd.Privacy
	}
	p.UpdatedAt = time.Now().UTC()

	if err := db.WithContext(ctx).Save(p).Error; err != nil {
		return nil, err
	}
	return p, nil
}
