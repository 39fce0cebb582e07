// Dashboard HTTP handlers.
//
// This file exposes read-only aggregation endpoints:
//   - GET /dashboard/stats        (headline counters)
//   - GET /dashboard/progress     (recent progress rows)
//   - GET /dashboard/weekly       (dense 7-day activity series)
//   - GET /dashboard/languages    (per-language averages)
//   - GET /dashboard/next-lesson  (recommendation from stored preferences)
//
// Everything is recomputed per request; there is no caching layer.
package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/lingocoach/go-backend/internal/domain"
	"github.com/lingocoach/go-backend/internal/repo"
)

// DashboardService defines the aggregation operations consumed by HTTP
// handlers.
type DashboardService interface {
	// Stats returns the headline counters for a user.
	Stats(ctx context.Context, userID string) (*repo.DashboardStats, error)
	// RecentProgress returns the newest progress rows.
	RecentProgress(ctx context.Context, userID string) ([]domain.LearningProgress, error)
	// Weekly returns a dense 7-day activity series ending today.
	Weekly(ctx context.Context, userID string) ([]repo.DayActivity, error)
	// Languages returns per-language score and time averages.
	Languages(ctx context.Context, userID string) ([]repo.LanguageStats, error)
	// NextLesson recommends the first unfinished lesson for the user's
	// target language and level; nil when everything is done.
	NextLesson(ctx context.Context, userID string) (*domain.Lesson, error)
}

// NextLessonResponse wraps the recommendation; Lesson is null when the user
// has completed every active lesson in their track.
type NextLessonResponse struct {
	Lesson *domain.Lesson `json:"lesson"`
}

// DashboardStats godoc
// @ID          dashboardStats
// @Summary     Headline counters
// @Description Returns completed lessons, conversation count, streak days, and total score.
// @Tags        Dashboard
// @Produce     json
// @Security    BearerAuth
//
// @Success     200  {object}  repo.DashboardStats
// @Failure     500  {object}  handlers.ErrorResponse  "Internal error"
// @Router      /dashboard/stats [get]
func (h *Handlers) DashboardStats(c *gin.Context) {
	stats, err := h.dashSvc.Stats(c.Request.Context(), userID(c))
	if err != nil {
		fail(c, http.StatusInternalServerError, ErrCodeInternal, "could not compute stats")
		return
	}
	ok(c, http.StatusOK, stats)
}

// DashboardProgress godoc
// @ID          dashboardProgress
// @Summary     Recent progress
// @Description Returns the caller's newest learning-progress rows (up to 10).
// @Tags        Dashboard
// @Produce     json
// @Security    BearerAuth
//
// @Success     200  {array}   domain.LearningProgress
// @Failure     500  {object}  handlers.ErrorResponse  "Internal error"
// @Router      /dashboard/progress [get]
func (h *Handlers) DashboardProgress(c *gin.Context) {
	items, err := h.dashSvc.RecentProgress(c.Request.Context(), userID(c))
	if err != nil {
		fail(c, http.StatusInternalServerError, ErrCodeListFailed, "could not load progress")
		return
	}
	ok(c, http.StatusOK, items)
}

// DashboardWeekly godoc
// @ID          dashboardWeekly
// @Summary     Weekly activity
// @Description Returns per-day score and time totals for the trailing 7 days, zero-filled.
// @Tags        Dashboard
// @Produce     json
// @Security    BearerAuth
//
// @Success     200  {array}   repo.DayActivity
// @Failure     500  {object}  handlers.ErrorResponse  "Internal error"
// @Router      /dashboard/weekly [get]
func (h *Handlers) DashboardWeekly(c *gin.Context) {
	days, err := h.dashSvc.Weekly(c.Request.Context(), userID(c))
	if err != nil {
		fail(c, http.StatusInternalServerError, ErrCodeInternal, "could not compute weekly activity")
		return
	}
	ok(c, http.StatusOK, days)
}

// DashboardLanguages godoc
// @ID          dashboardLanguages
// @Summary     Per-language averages
// @Description Returns average score and time per language over all progress rows.
// @Tags        Dashboard
// @Produce     json
// @Security    BearerAuth
//
// @Success     200  {array}   repo.LanguageStats
// @Failure     500  {object}  handlers.ErrorResponse  "Internal error"
// @Router      /dashboard/languages [get]
func (h *Handlers) DashboardLanguages(c *gin.Context) {
	items, err := h.dashSvc.Languages(c.Request.Context(), userID(c))
	if err != nil {
		fail(c, http.StatusInternalServerError, ErrCodeInternal, "could not compute language averages")
		return
	}
	ok(c, http.StatusOK, items)
}

// DashboardNextLesson godoc
// @ID          dashboardNextLesson
// @Summary     Next-lesson recommendation
// @Description Returns the first active lesson in the user's target track not yet completed, by order.
// @Tags        Dashboard
// @Produce     json
// @Security    BearerAuth
//
// @Success     200  {object}  handlers.NextLessonResponse
// @Failure     500  {object}  handlers.ErrorResponse  "Internal error"
// @Router      /dashboard/next-lesson [get]
func (h *Handlers) DashboardNextLesson(c *gin.Context) {
	l, err := h.dashSvc.NextLesson(c.Request.Context(), userID(c))
	if err != nil {
		fail(c, http.StatusInternalServerError, ErrCodeInternal, "could not compute recommendation")
		return
	}
	ok(c, http.StatusOK, NextLessonResponse{Lesson: l})
}
