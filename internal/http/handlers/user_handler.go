// User profile and preferences HTTP handlers.
//
// This file exposes:
//   - GET /users/profile      (current profile)
//   - PUT /users/profile      (partial update: name, image)
//   - GET /users/preferences  (stored settings, or defaults when unset)
//   - PUT /users/preferences  (partial upsert)
package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/lingocoach/go-backend/internal/domain"
	"github.com/lingocoach/go-backend/internal/repo"
	"github.com/lingocoach/go-backend/internal/services"
)

// UserService defines the profile and preferences operations consumed by HTTP
// handlers.
type UserService interface {
	// Profile returns the current user's profile.
	Profile(ctx context.Context, userID string) (*domain.User, error)
	// UpdateProfile applies a partial profile update.
	UpdateProfile(ctx context.Context, userID, name, image string) (*domain.User, error)
	// Preferences returns stored settings, or defaults when none exist.
	Preferences(ctx context.Context, userID string) (*domain.UserPreferences, error)
	// UpdatePreferences upserts the settings row with only the given fields.
	UpdatePreferences(ctx context.Context, userID string, upd repo.PreferencesUpdate) (*domain.UserPreferences, error)
}

// UpdateProfileRequest is the JSON payload for a profile update. Empty fields
// are left untouched.
type UpdateProfileRequest struct {
	Name  string `json:"name" example:"Ana"`
	Image string `json:"image" example:"https://cdn.example.com/a.png"`
}

// UpdatePreferencesRequest is the JSON payload for a preferences upsert.
// Omitted fields keep their stored value; the blobs are opaque to the server.
type UpdatePreferencesRequest struct {
	Language       *string         `json:"language" example:"en"`
	TargetLanguage *string         `json:"targetLanguage" example:"es"`
	LearningLevel  *string         `json:"learningLevel" example:"beginner"`
	DailyGoal      *int            `json:"dailyGoal" example:"15"`
	Notifications  json.RawMessage `json:"notifications" swaggertype:"object"`
	Privacy        json.RawMessage `json:"privacy" swaggertype:"object"`
}

// GetProfile godoc
// @ID          getProfile
// @Summary     Get profile
// @Description Returns the caller's profile.
// @Tags        Users
// @Produce     json
// @Security    BearerAuth
//
// @Success     200  {object}  domain.User
// @Failure     404  {object}  handlers.ErrorResponse  "Unknown user"
// @Router      /users/profile [get]
func (h *Handlers) GetProfile(c *gin.Context) {
	u, err := h.userSvc.Profile(c.Request.Context(), userID(c))
	if err != nil {
		if errors.Is(err, services.ErrUserNotFound) {
			fail(c, http.StatusNotFound, ErrCodeNotFound, "user not found")
			return
		}
		fail(c, http.StatusInternalServerError, ErrCodeInternal, "could not load profile")
		return
	}
	ok(c, http.StatusOK, u)
}

// UpdateProfile godoc
// @ID          updateProfile
// @Summary     Update profile
// @Description Applies a partial update to the caller's profile and returns the result.
// @Tags        Users
// @Accept      json
// @Produce     json
// @Security    BearerAuth
//
// @Param       body  body  handlers.UpdateProfileRequest  true  "Profile fields"
//
// @Success     200  {object}  domain.User
// @Failure     400  {object}  handlers.ErrorResponse  "Bad request"
// @Failure     404  {object}  handlers.ErrorResponse  "Unknown user"
// @Router      /users/profile [put]
func (h *Handlers) UpdateProfile(c *gin.Context) {
	var req UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "invalid JSON body")
		return
	}

	u, err := h.userSvc.UpdateProfile(c.Request.Context(), userID(c), req.Name, req.Image)
	if err != nil {
		if errors.Is(err, services.ErrUserNotFound) {
			fail(c, http.StatusNotFound, ErrCodeNotFound, "user not found")
			return
		}
		fail(c, http.StatusInternalServerError, ErrCodeInternal, "could not update profile")
		return
	}
	ok(c, http.StatusOK, u)
}

// GetPreferences godoc
// @ID          getPreferences
// @Summary     Get preferences
// @Description Returns stored settings, or the defaults when the caller has never saved any.
// @Tags        Users
// @Produce     json
// @Security    BearerAuth
//
// @Success     200  {object}  domain.UserPreferences
// @Failure     500  {object}  handlers.ErrorResponse  "Internal error"
// @Router      /users/preferences [get]
func (h *Handlers) GetPreferences(c *gin.Context) {
	p, err := h.userSvc.Preferences(c.Request.Context(), userID(c))
	if err != nil {
		fail(c, http.StatusInternalServerError, ErrCodeInternal, "could not load preferences")
		return
	}
	ok(c, http.StatusOK, p)
}

// UpdatePreferences godoc
// @ID          updatePreferences
// @Summary     Update preferences
// @Description Upserts the caller's settings row; omitted fields keep their stored value.
// @Tags        Users
// @Accept      json
// @Produce     json
// @Security    BearerAuth
//
// @Param       body  body  handlers.UpdatePreferencesRequest  true  "Preference fields"
//
// @Success     200  {object}  domain.UserPreferences
// @Failure     400  {object}  handlers.ErrorResponse  "Bad request"
// @Failure     500  {object}  handlers.ErrorResponse  "Internal error"
// @Router      /users/preferences [put]
func (h *Handlers) UpdatePreferences(c *gin.Context) {
	var req UpdatePreferencesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "invalid JSON body")
		return
	}

	p, err := h.userSvc.UpdatePreferences(c.Request.Context(), userID(c), repo.PreferencesUpdate{
		Language:       req.Language,
		TargetLanguage: req.TargetLanguage,
		LearningLevel:  req.LearningLevel,
		DailyGoal:      req.DailyGoal,
		Notifications:  req.Notifications,
		Privacy:        req.Privacy,
	})
	if err != nil {
		fail(c, http.StatusInternalServerError, ErrCodeInternal, "could not update preferences")
		return
	}
	ok(c, http.StatusOK, p)
}
