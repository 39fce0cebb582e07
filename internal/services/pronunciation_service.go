// Package services – PronunciationService
//
// This file implements PronunciationService, which scores a text the learner
// intends to say aloud and persists the attempt. The uploaded audio file is
// stored by the handler and referenced by URL only; nothing ever reads it
// back — scoring is text-based through the AI gateway.
package services

import (
	"context"
	"encoding/json"
	"strings"

	"gorm.io/gorm"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/lingocoach/go-backend/internal/ai"
	"github.com/lingocoach/go-backend/internal/domain"
	"github.com/lingocoach/go-backend/internal/repo"
)

// PronunciationGateway is the slice of the AI gateway the service needs. It
// degrades internally and never returns an error.
type PronunciationGateway interface {
	AnalyzePronunciation(ctx context.Context, text, language string) *ai.PronunciationResult
}

// PronunciationService scores attempts and keeps the per-user history.
type PronunciationService struct {
	// DB is the GORM handle used for persistence.
	DB *gorm.DB
	// Gateway produces the text-based analysis.
	Gateway PronunciationGateway
}

// Analyze scores the text through the gateway and persists the attempt.
// audioURL is the public path of the stored upload; it is recorded verbatim.
func (s *PronunciationService) Analyze(ctx context.Context, userID, audioURL, text, language string) (*domain.PronunciationAnalysis, *ai.PronunciationResult, error) {
	tr := otel.Tracer("services/PronunciationService")
	ctx, span := tr.Start(ctx, "Analyze",
		trace.WithAttributes(
			attribute.String("user.id", userID),
			attribute.String("pronunciation.language", language),
		),
	)
	defer span.End()

	text = strings.TrimSpace(text)
	if text == "" {
		return nil, nil, ErrEmptyText
	}
	if language == "" {
		language = defaultLanguage
	}

	result := s.Gateway.AnalyzePronunciation(ctx, text, language)

	feedback, err := json.Marshal(result.Feedback)
	if err != nil {
		return nil, nil, err
	}
	analysis, err := repo.CreateAnalysis(ctx, s.DB, userID, audioURL, text, result.Score, feedback)
	if err != nil {
		return nil, nil, err
	}
	return analysis, result, nil
}

// History returns the user's newest analyses. A non-positive limit falls back
// to the repository default of 20.
func (s *PronunciationService) History(ctx context.Context, userID string, limit int) ([]domain.PronunciationAnalysis, error) {
	tr := otel.Tracer("services/PronunciationService")
	ctx, span := tr.Start(ctx, "History",
		trace.WithAttributes(attribute.String("user.id", userID)),
	)
	defer span.End()

	return repo.ListAnalyses(ctx, s.DB, userID, limit)
}
