// Package handlers provides HTTP handler implementations for the public API.
//
// This file wires the handler set to the application services. Handlers are
// transport-thin: they validate input, call services, and translate results
// into HTTP responses. Each handler file declares the slice of the service
// layer it consumes as an interface, so tests can substitute fakes.
package handlers

import (
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// Options bundles the dependencies of the handler set.
type Options struct {
	Auth          AuthService
	Conversations ConversationService
	Lessons       LessonService
	Dashboard     DashboardService
	Users         UserService
	Pronunciation PronunciationService
	Practice      PracticeService
	Achievements  AchievementService

	// DB is used for health pings and idempotency bookkeeping; business
	// queries go through the services.
	DB *gorm.DB

	// IdempotencyTTL bounds how long a stored Idempotency-Key replay is
	// honored. Zero disables replay detection.
	IdempotencyTTL time.Duration

	// Upload settings for the pronunciation endpoint.
	UploadDir      string
	MaxUploadBytes int64

	// AIKeyConfigured feeds the /health/full report.
	AIKeyConfigured bool
}

// Handlers groups the HTTP endpoints of the API surface.
type Handlers struct {
	authSvc     AuthService
	convSvc     ConversationService
	lessonSvc   LessonService
	dashSvc     DashboardService
	userSvc     UserService
	pronSvc     PronunciationService
	practiceSvc PracticeService
	achSvc      AchievementService

	db             *gorm.DB
	idemTTL        time.Duration
	uploadDir      string
	maxUploadBytes int64
	aiKeySet       bool
}

// New constructs a Handlers instance bound to the given dependencies.
func New(o Options) *Handlers {
	return &Handlers{
		authSvc:        o.Auth,
		convSvc:        o.Conversations,
		lessonSvc:      o.Lessons,
		dashSvc:        o.Dashboard,
		userSvc:        o.Users,
		pronSvc:        o.Pronunciation,
		practiceSvc:    o.Practice,
		achSvc:         o.Achievements,
		db:             o.DB,
		idemTTL:        o.IdempotencyTTL,
		uploadDir:      o.UploadDir,
		maxUploadBytes: o.MaxUploadBytes,
		aiKeySet:       o.AIKeyConfigured,
	}
}

// userID extracts the authenticated user id stashed by the auth middleware.
// Protected routes are always behind RequireAuth, so an empty value only
// occurs in misconfigured routing; callers treat it as unauthorized.
func userID(c *gin.Context) string {
	if v, ok := c.Get("userID"); ok {
		if s, ok := v.(string); ok {
			return s
		}
	}
	return ""
}

// SuccessResponse is the minimal acknowledgement body used by endpoints that
// report success without a resource payload (logout, deletes).
type SuccessResponse struct {
	Success bool `json:"success" example:"true"`
}
