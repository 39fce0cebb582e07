// Package services – ConversationService
//
// This file implements ConversationService, the application-level component
// that owns conversational turns. It validates input, checks conversation
// ownership, obtains the assistant reply through the AI gateway, and persists
// the user/assistant message pair atomically. The same SendTurn use-case
// backs both the HTTP handler and the WebSocket event, so persistence
// semantics are identical on both paths.
//
// Optional enhancement: it auto-generates a conversation title from the first
// user message when the conversation still has an empty title.
//
// Observability: all public methods are OpenTelemetry-instrumented; spans
// include conversation/user identifiers.
package services

import (
	"context"
	"errors"
	"regexp"
	"strings"
	"unicode/utf8"

	"gorm.io/gorm"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/lingocoach/go-backend/internal/ai"
	"github.com/lingocoach/go-backend/internal/domain"
	"github.com/lingocoach/go-backend/internal/repo"
)

// Defaults applied when a new conversation omits tutoring parameters.
const (
	defaultLanguage = "en"
	defaultLevel    = "beginner"
)

// TutorGateway is the slice of the AI gateway the service needs. It resolves
// with a degraded payload on failure and never returns an error.
type TutorGateway interface {
	GenerateConversation(ctx context.Context, msgs []ai.Message, cc ai.Context) *ai.Response
}

// SendTurnInput carries one conversational turn from either transport.
// ConversationID empty means "start a new conversation".
type SendTurnInput struct {
	ConversationID string
	Message        string
	Language       string
	Level          string
}

// TurnResult is the outcome of a turn: the (possibly new) conversation id and
// the structured assistant reply. AssistantMessageID identifies the persisted
// assistant message; the HTTP layer uses it to key idempotent replays.
type TurnResult struct {
	ConversationID     string
	Reply              *ai.Response
	AssistantMessageID string
}

// ConversationService coordinates AI replies and message persistence.
type ConversationService struct {
	// DB is the GORM handle used for persistence.
	DB *gorm.DB
	// Gateway produces assistant replies.
	Gateway TutorGateway

	// MaxMessageRunes caps accepted user messages; zero disables the cap.
	MaxMessageRunes int

	// Title generation config.
	TitleLocale language.Tag
	TitleMaxLen int
}

// SendTurn validates the message, resolves or creates the target
// conversation, obtains the assistant reply, and appends the user/assistant
// pair in one transaction. The AI call happens outside the transaction; only
// persistence is atomic.
func (s *ConversationService) SendTurn(ctx context.Context, userID string, in SendTurnInput) (*TurnResult, error) {
	tr := otel.Tracer("services/ConversationService")
	ctx, span := tr.Start(ctx, "SendTurn",
		trace.WithAttributes(
			attribute.String("user.id", userID),
			attribute.String("conversation.id", in.ConversationID),
		),
	)
	defer span.End()

	msg := strings.TrimSpace(in.Message)
	if msg == "" {
		return nil, ErrEmptyMessage
	}
	if s.MaxMessageRunes > 0 && utf8.RuneCountInString(msg) > s.MaxMessageRunes {
		return nil, ErrMessageTooLong
	}

	lang := strings.TrimSpace(in.Language)
	level := strings.TrimSpace(in.Level)

	// Resolve the target conversation up front so an unknown or foreign id
	// fails before any AI spend.
	var conv *domain.Conversation
	if in.ConversationID != "" {
		c, err := repo.GetConversation(ctx, s.DB, in.ConversationID, userID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, ErrConversationNotFound
			}
			return nil, err
		}
		conv = c
		if lang == "" {
			lang = c.Language
		}
		if level == "" {
			level = c.Level
		}
	} else {
		if lang == "" {
			lang = defaultLanguage
		}
		if level == "" {
			level = defaultLevel
		}
	}

	// Only the current message is sent; the stored history is not replayed.
	reply := s.Gateway.GenerateConversation(ctx,
		[]ai.Message{{Role: domain.RoleUser, Content: msg}},
		ai.Context{Language: lang, Level: level},
	)

	var assistantID string
	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if conv == nil {
			c, err := repo.CreateConversation(ctx, tx, userID, lang, level)
			if err != nil {
				return err
			}
			conv = c
		}
		if _, err := repo.CreateMessage(tx, conv.ID, domain.RoleUser, msg); err != nil {
			return err
		}
		am, err := repo.CreateMessage(tx, conv.ID, domain.RoleAssistant, reply.Content)
		if err != nil {
			return err
		}
		assistantID = am.ID

		// Auto-title on the first message of an untitled conversation.
		if strings.TrimSpace(conv.Title) == "" {
			if gen := s.generateTitle(msg); gen != "" {
				if uerr := tx.Model(&domain.Conversation{}).Where("id = ?", conv.ID).
					Update("title", gen).Error; uerr == nil {
					conv.Title = gen
				}
			}
		}
		return repo.TouchConversation(ctx, tx, conv.ID)
	})
	if err != nil {
		return nil, err
	}

	return &TurnResult{ConversationID: conv.ID, Reply: reply, AssistantMessageID: assistantID}, nil
}

// List returns conversation summaries for a user, newest-updated first,
// without message bodies.
func (s *ConversationService) List(ctx context.Context, userID string) ([]repo.ConversationSummary, error) {
	tr := otel.Tracer("services/ConversationService")
	ctx, span := tr.Start(ctx, "List",
		trace.WithAttributes(attribute.String("user.id", userID)),
	)
	defer span.End()

	return repo.ListConversations(ctx, s.DB, userID)
}

// Get returns one owned conversation together with its full ordered message
// log. A foreign or unknown id yields ErrConversationNotFound.
func (s *ConversationService) Get(ctx context.Context, id, userID string) (*domain.Conversation, []domain.Message, error) {
	tr := otel.Tracer("services/ConversationService")
	ctx, span := tr.Start(ctx, "Get",
		trace.WithAttributes(
			attribute.String("conversation.id", id),
			attribute.String("user.id", userID),
		),
	)
	defer span.End()

	conv, err := repo.GetConversation(ctx, s.DB, id, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil, ErrConversationNotFound
		}
		return nil, nil, err
	}
	msgs, err := repo.ListMessages(s.DB.WithContext(ctx), id, 0)
	if err != nil {
		return nil, nil, err
	}
	return conv, msgs, nil
}

// Delete removes an owned conversation. A miss (unknown or foreign id) is not
// an error; the endpoint reports success either way.
func (s *ConversationService) Delete(ctx context.Context, id, userID string) error {
	tr := otel.Tracer("services/ConversationService")
	ctx, span := tr.Start(ctx, "Delete",
		trace.WithAttributes(
			attribute.String("conversation.id", id),
			attribute.String("user.id", userID),
		),
	)
	defer span.End()

	_, err := repo.DeleteConversation(ctx, s.DB, id, userID)
	return err
}

// generateTitle derives a concise title from the first message.
func (s *ConversationService) generateTitle(msg string) string {
	toks := titleWordRE.FindAllString(strings.ToLower(msg), -1)
	if len(toks) == 0 {
		return ""
	}

	titleCaser := cases.Title(s.titleLocale())
	out := make([]string, 0, 8)
	for _, w := range toks {
		if _, skip := titleStopWords[w]; skip {
			continue
		}
		out = append(out, titleCaser.String(w))
		if len(out) >= 8 {
			break
		}
	}
	if len(out) == 0 {
		return ""
	}
	return s.clipTitle(strings.Join(out, " "))
}

// clipTitle truncates a generated title to the configured maximum rune length.
func (s *ConversationService) clipTitle(title string) string {
	max := s.TitleMaxLen
	if max <= 0 {
		max = 60
	}
	if utf8.RuneCountInString(title) > max {
		return string([]rune(title)[:max])
	}
	return title
}

func (s *ConversationService) titleLocale() language.Tag {
	if s.TitleLocale == language.Und {
		return language.English
	}
	return s.TitleLocale
}

// --- Title generation helpers ---

// Extract Unicode letters with optional trailing numbers.
var titleWordRE = regexp.MustCompile(`[\p{L}]+[\p{N}]*`)

// Minimal English stop-words set for compact titles.
var titleStopWords = map[string]struct{}{
	"the": {}, "a": {}, "an": {}, "and": {}, "or": {}, "of": {}, "to": {}, "in": {},
	"is": {}, "are": {}, "for": {}, "on": {}, "with": {}, "by": {}, "from": {},
	"at": {}, "as": {}, "that": {}, "this": {}, "it": {}, "be": {}, "was": {}, "were": {},
}
