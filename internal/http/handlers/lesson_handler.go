// Lesson HTTP handlers.
//
// This file exposes REST endpoints for lesson content and completion:
//   - GET  /lessons           (filtered catalog, active lessons only)
//   - GET  /lessons/{id}      (single lesson)
//   - POST /lessons/complete  (record a completion with score and time)
package handlers

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/lingocoach/go-backend/internal/domain"
	"github.com/lingocoach/go-backend/internal/services"
)

// LessonService defines the lesson operations consumed by HTTP handlers.
//
// Implementations should be safe for concurrent use and must honor the
// provided context for cancellation and timeouts.
type LessonService interface {
	// List returns active lessons filtered by language, level and category.
	List(ctx context.Context, language, level, category string) ([]domain.Lesson, error)
	// Get returns one lesson by id.
	Get(ctx context.Context, id string) (*domain.Lesson, error)
	// Complete upserts the user's completion state and appends a progress row.
	Complete(ctx context.Context, userID, lessonID string, score, timeSpent int) (*domain.UserLesson, error)
}

// CompleteLessonRequest is the JSON payload for recording a completion.
type CompleteLessonRequest struct {
	LessonID  string `json:"lessonId" binding:"required" example:"4f2c7f0e-8a4b-4f11-9ad5-0b0c8f1d2e33"`
	Score     int    `json:"score" example:"85"`
	TimeSpent int    `json:"timeSpent" example:"300"`
}

// CompleteLessonResponse acknowledges a completion with the stored state.
type CompleteLessonResponse struct {
	Success    bool               `json:"success"`
	UserLesson *domain.UserLesson `json:"userLesson"`
}

// ListLessons godoc
// @ID          listLessons
// @Summary     List lessons
// @Description Returns active lessons matching the language/level/category filters, newest first.
// @Tags        Lessons
// @Produce     json
// @Security    BearerAuth
//
// @Param       language  query  string  false  "Language code (default en)"       example(es)
// @Param       level     query  string  false  "Difficulty (default beginner)"    example(beginner)
// @Param       category  query  string  false  "Category filter (no default)"     example(vocabulary)
//
// @Success     200  {array}   domain.Lesson
// @Failure     500  {object}  handlers.ErrorResponse  "Internal error"
// @Router      /lessons [get]
func (h *Handlers) ListLessons(c *gin.Context) {
	items, err := h.lessonSvc.List(c.Request.Context(),
		c.Query("language"), c.Query("level"), c.Query("category"))
	if err != nil {
		fail(c, http.StatusInternalServerError, ErrCodeListFailed, "could not list lessons")
		return
	}
	ok(c, http.StatusOK, items)
}

// GetLesson godoc
// @ID          getLesson
// @Summary     Get a lesson
// @Description Returns one lesson by id, including its content payload.
// @Tags        Lessons
// @Produce     json
// @Security    BearerAuth
//
// @Param       id  path  string  true  "Lesson ID (UUID)"  format(uuid)
//
// @Success     200  {object}  domain.Lesson
// @Failure     404  {object}  handlers.ErrorResponse  "Unknown lesson"
// @Router      /lessons/{id} [get]
func (h *Handlers) GetLesson(c *gin.Context) {
	l, err := h.lessonSvc.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, services.ErrLessonNotFound) {
			fail(c, http.StatusNotFound, ErrCodeNotFound, "lesson not found")
			return
		}
		fail(c, http.StatusInternalServerError, ErrCodeInternal, "could not load lesson")
		return
	}
	ok(c, http.StatusOK, l)
}

// CompleteLesson godoc
// @ID          completeLesson
// @Summary     Record a lesson completion
// @Description Upserts the caller's completion state and appends a learning-progress record atomically.
// @Tags        Lessons
// @Accept      json
// @Produce     json
// @Security    BearerAuth
//
// @Param       body  body  handlers.CompleteLessonRequest  true  "Completion payload"
//
// @Success     200  {object}  handlers.CompleteLessonResponse
// @Failure     400  {object}  handlers.ErrorResponse  "Missing lessonId"
// @Failure     404  {object}  handlers.ErrorResponse  "Unknown lesson"
// @Failure     500  {object}  handlers.ErrorResponse  "Internal error"
// @Router      /lessons/complete [post]
func (h *Handlers) CompleteLesson(c *gin.Context) {
	var req CompleteLessonRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "lessonId is required")
		return
	}

	ul, err := h.lessonSvc.Complete(c.Request.Context(), userID(c), req.LessonID, req.Score, req.TimeSpent)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrMissingFields):
			fail(c, http.StatusBadRequest, ErrCodeBadRequest, err.Error())
		case errors.Is(err, services.ErrLessonNotFound):
			fail(c, http.StatusNotFound, ErrCodeNotFound, "lesson not found")
		default:
			fail(c, http.StatusInternalServerError, ErrCodeInternal, "could not record completion")
		}
		return
	}
	ok(c, http.StatusOK, CompleteLessonResponse{Success: true, UserLesson: ul})
}
