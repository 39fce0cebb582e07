// Pronunciation HTTP handlers.
//
// This file exposes:
//   - POST /pronunciation/analyze  (multipart audio + text, returns a score)
//   - GET  /pronunciation/history  (recent attempts)
//
// The uploaded audio is stored under the configured upload directory and
// referenced by URL; scoring itself is text-based and never reads the file.
package handlers

import (
	"context"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/lingocoach/go-backend/internal/ai"
	"github.com/lingocoach/go-backend/internal/domain"
	"github.com/lingocoach/go-backend/internal/services"
	"github.com/lingocoach/go-backend/internal/utils"
)

// maxHistoryLimit caps client-supplied history page sizes.
const maxHistoryLimit = 100

// PronunciationService defines the scoring operations consumed by HTTP
// handlers.
type PronunciationService interface {
	// Analyze scores a pronunciation attempt and persists the result.
	Analyze(ctx context.Context, userID, audioURL, text, language string) (*domain.PronunciationAnalysis, *ai.PronunciationResult, error)
	// History returns the caller's most recent attempts.
	History(ctx context.Context, userID string, limit int) ([]domain.PronunciationAnalysis, error)
}

// AnalyzeResponse carries the stored attempt plus the structured scoring.
type AnalyzeResponse struct {
	Analysis *domain.PronunciationAnalysis `json:"analysis"`
	Score    int                           `json:"score"`
	Feedback ai.PronunciationFeedback      `json:"feedback"`
}

// AnalyzePronunciation godoc
// @ID          analyzePronunciation
// @Summary     Score a pronunciation attempt
// @Description Accepts a multipart audio file plus the spoken text, stores the audio, and returns a persisted score with feedback.
// @Tags        Pronunciation
// @Accept      multipart/form-data
// @Produce     json
// @Security    BearerAuth
//
// @Param       audio     formData  file    true   "Audio recording (audio/*)"
// @Param       text      formData  string  true   "Text that was spoken"
// @Param       language  formData  string  false  "Language code (default en)"  example(es)
//
// @Success     200  {object}  handlers.AnalyzeResponse
// @Failure     400  {object}  handlers.ErrorResponse  "Missing audio/text, wrong type, or oversized file"
// @Failure     500  {object}  handlers.ErrorResponse  "Storage or persistence failure"
// @Router      /pronunciation/analyze [post]
func (h *Handlers) AnalyzePronunciation(c *gin.Context) {
	fh, err := c.FormFile("audio")
	if err != nil {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "audio file is required")
		return
	}
	if ct := fh.Header.Get("Content-Type"); !strings.HasPrefix(ct, "audio/") {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "file must be audio/*")
		return
	}
	if h.maxUploadBytes > 0 && fh.Size > h.maxUploadBytes {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "audio file too large")
		return
	}

	text := strings.TrimSpace(c.PostForm("text"))
	if text == "" {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "text is required")
		return
	}
	language := c.PostForm("language")

	// Store under a generated name; the original filename is untrusted input
	// and only contributes its extension.
	name := uuid.NewString() + sanitizeExt(fh.Filename)
	if err := c.SaveUploadedFile(fh, filepath.Join(h.uploadDir, name)); err != nil {
		fail(c, http.StatusInternalServerError, ErrCodeUploadFailed, "could not store audio")
		return
	}
	audioURL := "/uploads/" + name

	analysis, result, err := h.pronSvc.Analyze(c.Request.Context(), userID(c), audioURL, text, language)
	if err != nil {
		if err == services.ErrEmptyText {
			fail(c, http.StatusBadRequest, ErrCodeBadRequest, err.Error())
			return
		}
		fail(c, http.StatusInternalServerError, ErrCodeInternal, "could not analyze pronunciation")
		return
	}
	ok(c, http.StatusOK, AnalyzeResponse{
		Analysis: analysis,
		Score:    result.Score,
		Feedback: result.Feedback,
	})
}

// PronunciationHistory godoc
// @ID          pronunciationHistory
// @Summary     Recent attempts
// @Description Returns the caller's most recent pronunciation attempts (default 20, capped at 100), newest first.
// @Tags        Pronunciation
// @Produce     json
// @Security    BearerAuth
//
// @Param       limit  query  int  false  "Maximum attempts to return"  default(20)
//
// @Success     200  {array}   domain.PronunciationAnalysis
// @Failure     500  {object}  handlers.ErrorResponse  "Internal error"
// @Router      /pronunciation/history [get]
func (h *Handlers) PronunciationHistory(c *gin.Context) {
	limit := utils.AtoiDefault(c.Query("limit"), 0)
	if limit > maxHistoryLimit {
		limit = maxHistoryLimit
	}
	items, err := h.pronSvc.History(c.Request.Context(), userID(c), limit)
	if err != nil {
		fail(c, http.StatusInternalServerError, ErrCodeListFailed, "could not load history")
		return
	}
	ok(c, http.StatusOK, items)
}

// sanitizeExt returns a safe lowercase file extension (".webm", ".wav", ...)
// or empty when the name carries none worth keeping.
func sanitizeExt(name string) string {
	ext := strings.ToLower(filepath.Ext(filepath.Base(name)))
	if len(ext) < 2 || len(ext) > 8 {
		return ""
	}
	for _, r := range ext[1:] {
		if (r < 'a' || r > 'z') && (r < '0' || r > '9') {
			return ""
		}
	}
	return ext
}
