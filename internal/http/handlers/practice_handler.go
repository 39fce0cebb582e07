// Practice sentence HTTP handlers.
//
// Simple user-owned CRUD minus update:
//   - GET    /practice       (list own sentences, newest first)
//   - POST   /practice       (create)
//   - DELETE /practice/{id}  (idempotent delete)
package handlers

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/lingocoach/go-backend/internal/domain"
	"github.com/lingocoach/go-backend/internal/services"
)

// PracticeService defines the practice-sentence operations consumed by HTTP
// handlers.
type PracticeService interface {
	// List returns the caller's sentences, newest first.
	List(ctx context.Context, userID string) ([]domain.PracticeSentence, error)
	// Create stores a new sentence.
	Create(ctx context.Context, userID, text, language, level string) (*domain.PracticeSentence, error)
	// Delete removes an owned sentence; a miss is not an error.
	Delete(ctx context.Context, id, userID string) error
}

// CreatePracticeRequest is the JSON payload for adding a practice sentence.
type CreatePracticeRequest struct {
	Text     string `json:"text" binding:"required" example:"El gato duerme en el sofá."`
	Language string `json:"language" binding:"required" example:"es"`
	Level    string `json:"level" example:"beginner"`
}

// ListPractice godoc
// @ID          listPractice
// @Summary     List practice sentences
// @Description Returns the caller's practice sentences, newest first.
// @Tags        Practice
// @Produce     json
// @Security    BearerAuth
//
// @Success     200  {array}   domain.PracticeSentence
// @Failure     500  {object}  handlers.ErrorResponse  "Internal error"
// @Router      /practice [get]
func (h *Handlers) ListPractice(c *gin.Context) {
	items, err := h.practiceSvc.List(c.Request.Context(), userID(c))
	if err != nil {
		fail(c, http.StatusInternalServerError, ErrCodeListFailed, "could not list sentences")
		return
	}
	ok(c, http.StatusOK, items)
}

// CreatePractice godoc
// @ID          createPractice
// @Summary     Add a practice sentence
// @Description Stores a new practice sentence owned by the caller.
// @Tags        Practice
// @Accept      json
// @Produce     json
// @Security    BearerAuth
//
// @Param       body  body  handlers.CreatePracticeRequest  true  "Sentence payload"
//
// @Success     201  {object}  domain.PracticeSentence
// @Failure     400  {object}  handlers.ErrorResponse  "Missing text or language"
// @Failure     500  {object}  handlers.ErrorResponse  "Internal error"
// @Router      /practice [post]
func (h *Handlers) CreatePractice(c *gin.Context) {
	var req CreatePracticeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "text and language are required")
		return
	}

	s, err := h.practiceSvc.Create(c.Request.Context(), userID(c), req.Text, req.Language, req.Level)
	if err != nil {
		if errors.Is(err, services.ErrEmptyText) || errors.Is(err, services.ErrMissingFields) {
			fail(c, http.StatusBadRequest, ErrCodeBadRequest, err.Error())
			return
		}
		fail(c, http.StatusInternalServerError, ErrCodeCreateFailed, "could not store sentence")
		return
	}
	ok(c, http.StatusCreated, s)
}

// DeletePractice godoc
// @ID          deletePractice
// @Summary     Delete a practice sentence
// @Description Removes an owned sentence. Reports success whether or not anything matched.
// @Tags        Practice
// @Produce     json
// @Security    BearerAuth
//
// @Param       id  path  string  true  "Sentence ID (UUID)"  format(uuid)
//
// @Success     200  {object}  handlers.SuccessResponse
// @Failure     500  {object}  handlers.ErrorResponse  "Internal error"
// @Router      /practice/{id} [delete]
func (h *Handlers) DeletePractice(c *gin.Context) {
	if err := h.practiceSvc.Delete(c.Request.Context(), c.Param("id"), userID(c)); err != nil {
		fail(c, http.StatusInternalServerError, ErrCodeInternal, "could not delete sentence")
		return
	}
	ok(c, http.StatusOK, SuccessResponse{Success: true})
}
