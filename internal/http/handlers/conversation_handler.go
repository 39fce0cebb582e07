// Conversation HTTP handlers.
//
// This file exposes REST endpoints for tutored conversations:
//   - POST   /conversations        (send a turn, creating the conversation on demand)
//   - GET    /conversations        (list summaries, newest-updated first)
//   - GET    /conversations/{id}   (full message log, ownership-filtered)
//   - DELETE /conversations/{id}   (idempotent delete)
//
// The send endpoint honors Idempotency-Key replays: the middleware validates
// and stashes the key, and this handler performs the (user, conversation, key)
// lookup once the body is bound and the conversation id is known. A replay
// re-serves the stored assistant message without a second AI call.
package handlers

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/lingocoach/go-backend/internal/ai"
	"github.com/lingocoach/go-backend/internal/domain"
	"github.com/lingocoach/go-backend/internal/http/middleware"
	"github.com/lingocoach/go-backend/internal/repo"
	"github.com/lingocoach/go-backend/internal/services"
)

// ConversationService defines the conversation operations consumed by HTTP
// handlers and the WebSocket layer.
//
// Implementations should be safe for concurrent use and must honor the
// provided context for cancellation and timeouts.
type ConversationService interface {
	// SendTurn appends a user/assistant message pair, creating the
	// conversation when no id is supplied.
	SendTurn(ctx context.Context, userID string, in services.SendTurnInput) (*services.TurnResult, error)
	// List returns conversation summaries for a user, newest-updated first.
	List(ctx context.Context, userID string) ([]repo.ConversationSummary, error)
	// Get returns one owned conversation with its full ordered log.
	Get(ctx context.Context, id, userID string) (*domain.Conversation, []domain.Message, error)
	// Delete removes an owned conversation; a miss is not an error.
	Delete(ctx context.Context, id, userID string) error
}

// SendMessageRequest is the JSON payload for one conversational turn.
// An empty ConversationID starts a new conversation owned by the caller.
type SendMessageRequest struct {
	Message        string `json:"message" binding:"required" example:"¿Cómo se dice apple?"`
	ConversationID string `json:"conversationId" example:"141add05-4415-4938-b5a1-17e0d3171aff"`
	Language       string `json:"language" example:"es"`
	Level          string `json:"level" example:"beginner"`
}

// SendMessageResponse is the assistant's structured reply.
type SendMessageResponse struct {
	Message            string                 `json:"message"`
	Suggestions        []string               `json:"suggestions"`
	GrammarCorrections []ai.GrammarCorrection `json:"grammarCorrections"`
	ConversationID     string                 `json:"conversationId"`
}

// ListConversationsResponse wraps the caller's conversation summaries.
type ListConversationsResponse struct {
	Conversations []repo.ConversationSummary `json:"conversations"`
}

// ConversationDetail wraps a conversation and its ordered message log.
type ConversationDetail struct {
	Conversation *domain.Conversation `json:"conversation"`
	Messages     []domain.Message     `json:"messages"`
}

// SendMessage godoc
// @ID          sendMessage
// @Summary     Send a conversational turn
// @Description Obtains an AI tutor reply and appends the user/assistant pair. Creates the conversation when no id is given. Supports Idempotency-Key replays.
// @Tags        Conversations
// @Accept      json
// @Produce     json
// @Security    BearerAuth
//
// @Param       Idempotency-Key  header  string  false "Safe-retry key, scoped to (user, conversation)"
// @Param       body             body    handlers.SendMessageRequest  true  "Turn payload"
//
// @Success     200  {object}  handlers.SendMessageResponse
// @Failure     400  {object}  handlers.ErrorResponse  "Empty or oversized message"
// @Failure     404  {object}  handlers.ErrorResponse  "Conversation not owned by caller"
// @Failure     500  {object}  handlers.ErrorResponse  "Persistence failure"
// @Router      /conversations [post]
func (h *Handlers) SendMessage(c *gin.Context) {
	ctx := c.Request.Context()
	uid := userID(c)

	var req SendMessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "message is required")
		return
	}

	// Replay check: only possible when the key is scoped to a known
	// conversation. New-conversation sends cannot be replayed because the
	// client does not hold the id yet.
	key, hasKey := middleware.GetIdempotencyKey(c)
	if hasKey && h.idemTTL > 0 && req.ConversationID != "" {
		if rec, err := repo.GetIdempotency(ctx, h.db, uid, req.ConversationID, key, time.Now().UTC()); err == nil {
			if msg, merr := repo.GetMessage(h.db.WithContext(ctx), rec.MessageID); merr == nil {
				c.Header("Idempotency-Replayed", "true")
				ok(c, rec.Status, SendMessageResponse{
					Message:            msg.Content,
					Suggestions:        []string{},
					GrammarCorrections: []ai.GrammarCorrection{},
					ConversationID:     rec.ConversationID,
				})
				return
			}
		}
	}

	res, err := h.convSvc.SendTurn(ctx, uid, services.SendTurnInput{
		ConversationID: req.ConversationID,
		Message:        req.Message,
		Language:       req.Language,
		Level:          req.Level,
	})
	if err != nil {
		switch {
		case errors.Is(err, services.ErrEmptyMessage), errors.Is(err, services.ErrMessageTooLong):
			fail(c, http.StatusBadRequest, ErrCodeBadRequest, err.Error())
		case errors.Is(err, services.ErrConversationNotFound):
			fail(c, http.StatusNotFound, ErrCodeNotFound, "conversation not found")
		default:
			fail(c, http.StatusInternalServerError, ErrCodeAnswerFailed, "could not process message")
		}
		return
	}

	if hasKey && h.idemTTL > 0 {
		// Best effort: a failed insert only disables replay detection for
		// this turn, it never fails the request.
		_, _ = repo.CreateIdempotency(ctx, h.db, uid, res.ConversationID, key,
			res.AssistantMessageID, http.StatusOK, h.idemTTL)
	}

	ok(c, http.StatusOK, SendMessageResponse{
		Message:            res.Reply.Content,
		Suggestions:        res.Reply.Suggestions,
		GrammarCorrections: res.Reply.GrammarCorrections,
		ConversationID:     res.ConversationID,
	})
}

// ListConversations godoc
// @ID          listConversations
// @Summary     List conversations
// @Description Returns the caller's conversation summaries, newest-updated first, without message bodies.
// @Tags        Conversations
// @Produce     json
// @Security    BearerAuth
//
// @Success     200  {object}  handlers.ListConversationsResponse
// @Failure     500  {object}  handlers.ErrorResponse  "Internal error"
// @Router      /conversations [get]
func (h *Handlers) ListConversations(c *gin.Context) {
	items, err := h.convSvc.List(c.Request.Context(), userID(c))
	if err != nil {
		fail(c, http.StatusInternalServerError, ErrCodeListFailed, "could not list conversations")
		return
	}
	ok(c, http.StatusOK, ListConversationsResponse{Conversations: items})
}

// GetConversation godoc
// @ID          getConversation
// @Summary     Get a conversation
// @Description Returns one owned conversation with its full ordered message log.
// @Tags        Conversations
// @Produce     json
// @Security    BearerAuth
//
// @Param       id  path  string  true  "Conversation ID (UUID)"  format(uuid)
//
// @Success     200  {object}  handlers.ConversationDetail
// @Failure     404  {object}  handlers.ErrorResponse  "Unknown or foreign conversation"
// @Router      /conversations/{id} [get]
func (h *Handlers) GetConversation(c *gin.Context) {
	conv, msgs, err := h.convSvc.Get(c.Request.Context(), c.Param("id"), userID(c))
	if err != nil {
		if errors.Is(err, services.ErrConversationNotFound) {
			fail(c, http.StatusNotFound, ErrCodeNotFound, "conversation not found")
			return
		}
		fail(c, http.StatusInternalServerError, ErrCodeInternal, "could not load conversation")
		return
	}
	ok(c, http.StatusOK, ConversationDetail{Conversation: conv, Messages: msgs})
}

// DeleteConversation godoc
// @ID          deleteConversation
// @Summary     Delete a conversation
// @Description Removes an owned conversation. Reports success whether or not anything matched.
// @Tags        Conversations
// @Produce     json
// @Security    BearerAuth
//
// @Param       id  path  string  true  "Conversation ID (UUID)"  format(uuid)
//
// @Success     200  {object}  handlers.SuccessResponse
// @Failure     500  {object}  handlers.ErrorResponse  "Internal error"
// @Router      /conversations/{id} [delete]
func (h *Handlers) DeleteConversation(c *gin.Context) {
	if err := h.convSvc.Delete(c.Request.Context(), c.Param("id"), userID(c)); err != nil {
		fail(c, http.StatusInternalServerError, ErrCodeInternal, "could not delete conversation")
		return
	}
	ok(c, http.StatusOK, SuccessResponse{Success: true})
}
