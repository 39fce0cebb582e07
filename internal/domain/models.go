// Package domain defines the persistence models for users, conversations,
// lessons, learning progress, pronunciation analyses, achievements, and
// practice material. These types are mapped with GORM and form the core data
// layer of the language-learning backend.
package domain

import (
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Roles allowed for conversation messages.
const (
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// User is the root entity: every other per-user record is owned by exactly
// one User. Users are created at registration and never hard-deleted.
//
// Fields:
//   - ID: stable UUID primary key (char(36)).
//   - Email: unique login identifier.
//   - PasswordHash: bcrypt hash of the credential; never serialized.
//   - Name / Image: optional profile data.
type User struct {
	ID           string         `json:"id"    gorm:"type:char(36);primaryKey"`
	Email        string         `json:"email" gorm:"type:varchar(255);not null;uniqueIndex:ux_users_email"`
	PasswordHash string         `json:"-"     gorm:"type:varchar(128);not null"`
	Name         string         `json:"name"  gorm:"type:varchar(100)"`
	Image        string         `json:"image,omitempty" gorm:"type:varchar(512)"`
	CreatedAt    time.Time      `json:"created_at"`
	UpdatedAt    time.Time      `json:"updated_at"`
	DeletedAt    gorm.DeletedAt `json:"-"     gorm:"index"`
}

// TableName returns the database table name for User.
func (User) TableName() string { return "users" }

// Conversation is an open-ended, user-owned chat with the AI tutor. The
// message log lives in the messages table; rows there are append-only and
// ordered by insertion. Conversations are never explicitly closed.
type Conversation struct {
	ID        string         `json:"id"       gorm:"type:char(36);primaryKey"`
	UserID    string         `json:"user_id"  gorm:"type:char(36);not null;index:idx_user_conversations"`
	Language  string         `json:"language" gorm:"type:varchar(16);not null;default:'en'"`
	Level     string         `json:"level"    gorm:"type:varchar(32);not null;default:'beginner'"`
	Title     string         `json:"title"    gorm:"type:varchar(255)"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `json:"-"        gorm:"index"`
}

// TableName returns the database table name for Conversation.
func (Conversation) TableName() string { return "conversations" }

// Message is a single utterance within a conversation, authored either by
// the "user" or the "assistant". Messages are only ever appended; insertion
// order is the log order (CreatedAt ASC, ID ASC as tie-break).
type Message struct {
	ID             string    `json:"id"              gorm:"type:char(36);primaryKey"`
	ConversationID string    `json:"conversation_id" gorm:"type:char(36);not null;index:idx_conversation_msgs,priority:1"`
	Role           string    `json:"role"            gorm:"type:varchar(16);not null;check:role IN ('user','assistant')"`
	Content        string    `json:"content"         gorm:"type:text;not null"`
	CreatedAt      time.Time `json:"created_at"      gorm:"index:idx_conversation_msgs,priority:2"`

	// Conversation is the parent log. Messages are cascade-deleted if
	// their conversation is removed.
	Conversation Conversation `json:"-" gorm:"foreignKey:ConversationID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE"`
}

// TableName returns the database table name for Message.
func (Message) TableName() string { return "messages" }

// Lesson is a shared, read-only content record keyed by language, level and
// category. Content is an opaque JSON blob (vocabulary/grammar/practice
// sections) produced by seeding; the application never mutates lessons.
type Lesson struct {
	ID          string         `json:"id"          gorm:"type:char(36);primaryKey"`
	Language    string         `json:"language"    gorm:"type:varchar(16);not null;index:idx_lessons_lang_level,priority:1"`
	Level       string         `json:"level"       gorm:"type:varchar(32);not null;index:idx_lessons_lang_level,priority:2"`
	Category    string         `json:"category"    gorm:"type:varchar(64);not null;index"`
	Title       string         `json:"title"       gorm:"type:varchar(255);not null"`
	Description string         `json:"description" gorm:"type:text"`
	Content     datatypes.JSON `json:"content"     gorm:"type:text"`
	Order       int            `json:"order"       gorm:"column:sort_order;not null;default:0"`
	IsActive    bool           `json:"is_active"   gorm:"not null;default:true"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
}

// TableName returns the database table name for Lesson.
func (Lesson) TableName() string { return "lessons" }

// UserLesson tracks one user's completion state for one lesson. Rows are
// upserted on completion; (UserID, LessonID) is unique.
type UserLesson struct {
	ID          string     `json:"id"        gorm:"type:char(36);primaryKey"`
	UserID      string     `json:"user_id"   gorm:"type:char(36);not null;uniqueIndex:ux_user_lesson,priority:1"`
	LessonID    string     `json:"lesson_id" gorm:"type:char(36);not null;uniqueIndex:ux_user_lesson,priority:2"`
	Status      string     `json:"status"    gorm:"type:varchar(32);not null;default:'in_progress'"`
	Score       int        `json:"score"     gorm:"not null;default:0"`
	CompletedAt *time.Time `json:"completed_at,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`

	Lesson Lesson `json:"-" gorm:"foreignKey:LessonID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE"`
}

// TableName returns the database table name for UserLesson.
func (UserLesson) TableName() string { return "user_lessons" }

// LearningProgress is an append-only per-completion record used purely for
// aggregation (dashboard stats, streaks, weekly windows). Rows are never
// updated after creation.
type LearningProgress struct {
	ID          string    `json:"id"         gorm:"type:char(36);primaryKey"`
	UserID      string    `json:"user_id"    gorm:"type:char(36);not null;index:idx_progress_user_time,priority:1"`
	Language    string    `json:"language"   gorm:"type:varchar(16);not null"`
	Level       string    `json:"level"      gorm:"type:varchar(32);not null"`
	Score       int       `json:"score"      gorm:"not null"`
	TimeSpent   int       `json:"time_spent" gorm:"not null;default:0"` // seconds
	CompletedAt time.Time `json:"completed_at" gorm:"index:idx_progress_user_time,priority:2"`
}

// TableName returns the database table name for LearningProgress.
func (LearningProgress) TableName() string { return "learning_progress" }

// PronunciationAnalysis records one scored pronunciation attempt. The audio
// file referenced by AudioURL is stored on disk but never read back; scoring
// is text-based (see the AI gateway). Rows are append-only.
type PronunciationAnalysis struct {
	ID        string         `json:"id"        gorm:"type:char(36);primaryKey"`
	UserID    string         `json:"user_id"   gorm:"type:char(36);not null;index"`
	AudioURL  string         `json:"audio_url" gorm:"type:varchar(512)"`
	Text      string         `json:"text"      gorm:"type:text;not null"`
	Score     int            `json:"score"     gorm:"not null"`
	Feedback  datatypes.JSON `json:"feedback"  gorm:"type:text"`
	CreatedAt time.Time      `json:"created_at"`
}

// TableName returns the database table name for PronunciationAnalysis.
func (PronunciationAnalysis) TableName() string { return "pronunciation_analyses" }

// Achievement is a static catalog entry seeded at startup. The application
// only displays achievements; there is no award path.
type Achievement struct {
	ID          string    `json:"id"          gorm:"type:char(36);primaryKey"`
	Name        string    `json:"name"        gorm:"type:varchar(100);not null;uniqueIndex:ux_achievements_name"`
	Description string    `json:"description" gorm:"type:text"`
	Category    string    `json:"category"    gorm:"type:varchar(64);not null"`
	Points      int       `json:"points"      gorm:"not null;default:0"`
	Icon        string    `json:"icon"        gorm:"type:varchar(16)"`
	IsActive    bool      `json:"is_active"   gorm:"not null;default:true"`
	CreatedAt   time.Time `json:"created_at"`
}

// TableName returns the database table name for Achievement.
func (Achievement) TableName() string { return "achievements" }

// UserAchievement joins a user to an earned achievement.
type UserAchievement struct {
	ID            string    `json:"id"             gorm:"type:char(36);primaryKey"`
	UserID        string    `json:"user_id"        gorm:"type:char(36);not null;uniqueIndex:ux_user_achievement,priority:1"`
	AchievementID string    `json:"achievement_id" gorm:"type:char(36);not null;uniqueIndex:ux_user_achievement,priority:2"`
	EarnedAt      time.Time `json:"earned_at"`

	Achievement Achievement `json:"achievement" gorm:"foreignKey:AchievementID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE"`
}

// TableName returns the database table name for UserAchievement.
func (UserAchievement) TableName() string { return "user_achievements" }

// UserPreferences holds mutable per-user settings, one row per user.
// Notifications and Privacy are opaque JSON blobs owned by the frontend.
type UserPreferences struct {
	ID             string         `json:"id"              gorm:"type:char(36);primaryKey"`
	UserID         string         `json:"user_id"         gorm:"type:char(36);not null;uniqueIndex:ux_preferences_user"`
	Language       string         `json:"language"        gorm:"type:varchar(16);not null;default:'en'"`
	TargetLanguage string         `json:"target_language" gorm:"type:varchar(16);not null;default:'es'"`
	LearningLevel  string         `json:"learning_level"  gorm:"type:varchar(32);not null;default:'beginner'"`
	DailyGoal      int            `json:"daily_goal"      gorm:"not null;default:15"` // minutes
	Notifications  datatypes.JSON `json:"notifications"   gorm:"type:text"`
	Privacy        datatypes.JSON `json:"privacy"         gorm:"type:text"`
	CreatedAt      time.Time      `json:"created_at"`
	UpdatedAt      time.Time      `json:"updated_at"`
}

// TableName returns the database table name for UserPreferences.
func (UserPreferences) TableName() string { return "user_preferences" }

// PracticeSentence is a user-owned free-text snippet used for pronunciation
// and speaking practice. Simple create/list/delete; no other relationships.
type PracticeSentence struct {
	ID        string    `json:"id"       gorm:"type:char(36);primaryKey"`
	UserID    string    `json:"user_id"  gorm:"type:char(36);not null;index"`
	Text      string    `json:"text"     gorm:"type:text;not null"`
	Language  string    `json:"language" gorm:"type:varchar(16);not null"`
	Level     string    `json:"level,omitempty" gorm:"type:varchar(32)"`
	CreatedAt time.Time `json:"created_at"`
}

// TableName returns the database table name for PracticeSentence.
func (PracticeSentence) TableName() string { return "practice_sentences" }
