// Package services – PracticeService
//
// This file implements PracticeService, the create/list/delete surface for
// user-owned practice sentences.
package services

import (
	"context"
	"strings"

	"gorm.io/gorm"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/lingocoach/go-backend/internal/domain"
	"github.com/lingocoach/go-backend/internal/repo"
)

// PracticeService manages practice sentences.
type PracticeService struct {
	// DB is the GORM handle used for persistence.
	DB *gorm.DB
}

// List returns the user's practice sentences, newest first.
func (s *PracticeService) List(ctx context.Context, userID string) ([]domain.PracticeSentence, error) {
	tr := otel.Tracer("services/PracticeService")
	ctx, span := tr.Start(ctx, "List",
		trace.WithAttributes(attribute.String("user.id", userID)),
	)
	defer span.End()

	return repo.ListSentences(ctx, s.DB, userID)
}

// Create stores a new sentence. Text and language are required.
func (s *PracticeService) Create(ctx context.Context, userID, text, language, level string) (*domain.PracticeSentence, error) {
	tr := otel.Tracer("services/PracticeService")
	ctx, span := tr.Start(ctx, "Create",
		trace.WithAttributes(attribute.String("user.id", userID)),
	)
	defer span.End()

	text = strings.TrimSpace(text)
	if text == "" {
		return nil, ErrEmptyText
	}
	if strings.TrimSpace(language) == "" {
		return nil, ErrMissingFields
	}
	return repo.CreateSentence(ctx, s.DB, userID, text, language, level)
}

// Delete removes an owned sentence. A miss is not an error; the endpoint
// reports success either way.
func (s *PracticeService) Delete(ctx context.Context, id, userID string) error {
	tr := otel.Tracer("services/PracticeService")
	ctx, span := tr.Start(ctx, "Delete",
		trace.WithAttributes(
			attribute.String("sentence.id", id),
			attribute.String("user.id", userID),
		),
	)
	defer span.End()

	_, err := repo.DeleteSentence(ctx, s.DB, id, userID)
	return err
}
