package ai

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog/log"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

// Context carries the tutoring parameters interpolated into the system prompt.
type Context struct {
	Language    string
	Level       string
	Topic       string
	Personality string
}

// Response is the structured result of a conversational turn.
type Response struct {
	Content            string              `json:"message"`
	Suggestions        []string            `json:"suggestions"`
	GrammarCorrections []GrammarCorrection `json:"grammarCorrections"`
}

// PhonemeScore is one per-sound entry in pronunciation feedback.
type PhonemeScore struct {
	Sound string `json:"sound"`
	Score int    `json:"score"`
}

// PronunciationFeedback is the structured feedback block of an analysis.
type PronunciationFeedback struct {
	Overall     string         `json:"overall"`
	Suggestions []string       `json:"suggestions"`
	Phonemes    []PhonemeScore `json:"phonemes"`
}

// PronunciationResult is a 0–100 score plus feedback. The score is the
// model's self-reported estimate over the text alone; no audio is analyzed
// anywhere in the system.
type PronunciationResult struct {
	Score    int                   `json:"score"`
	Feedback PronunciationFeedback `json:"feedback"`
}

// Sampling parameters for the grammar/pronunciation one-shot prompts; the
// conversational defaults live on the Gateway.
const (
	analysisTemperature = 0.3
	analysisMaxTokens   = 500
)

// Fallback payload served when the conversational completion fails or times
// out. The turn still resolves; the failure never propagates.
const fallbackContent = "I'm sorry, I'm having trouble responding right now. Let's pick this up again in a moment."

var fallbackSuggestions = []string{
	"💡 Tip: Try rephrasing your message in simpler words.",
	"💡 Tip: Practice a short everyday phrase while you wait.",
}

// defaultPronunciationScore is substituted when the model reply is not
// parseable JSON.
const defaultPronunciationScore = 85

func defaultPronunciationFeedback() PronunciationFeedback {
	return PronunciationFeedback{
		Overall: "Good pronunciation overall. Keep practicing!",
		Suggestions: []string{
			"Slow down on longer words and stress the right syllable.",
			"Record yourself and compare with a native speaker.",
		},
		Phonemes: []PhonemeScore{},
	}
}

// Gateway translates structured turns into model requests and back. Zero
// values fall back to sensible defaults so a bare &Gateway{Client: c} works.
type Gateway struct {
	Client *Client
	Parser Parser

	// Conversation sampling; zero values mean 15s / 0.7 / 1000.
	Timeout     time.Duration
	Temperature float64
	MaxTokens   int
}

// GenerateConversation builds the system prompt, sends the running message
// list, and parses the reply into content, suggestions, and corrections. On
// any failure, including the configured timeout, it resolves with the fixed
// fallback payload; the in-flight request is cancelled via the context.
func (g *Gateway) GenerateConversation(ctx context.Context, msgs []Message, cc Context) *Response {
	tr := otel.Tracer("ai/Gateway")
	ctx, span := tr.Start(ctx, "GenerateConversation",
		trace.WithAttributes(
			attribute.String("ai.language", cc.Language),
			attribute.String("ai.level", cc.Level),
		),
	)
	defer span.End()

	ctx, cancel := context.WithTimeout(ctx, g.timeout())
	defer cancel()

	full := make([]Message, 0, len(msgs)+1)
	full = append(full, Message{Role: roleSystem, Content: buildSystemPrompt(cc)})
	full = append(full, msgs...)

	raw, err := g.Client.Complete(ctx, full, g.temperature(), g.maxTokens())
	if err != nil {
		log.Warn().Err(err).
			Str("language", cc.Language).
			Str("level", cc.Level).
			Msg("conversation completion failed; serving fallback")
		return &Response{
			Content:            fallbackContent,
			Suggestions:        append([]string(nil), fallbackSuggestions...),
			GrammarCorrections: []GrammarCorrection{},
		}
	}

	suggestions, corrections := g.parser().Parse(raw)
	return &Response{
		Content:            raw,
		Suggestions:        suggestions,
		GrammarCorrections: corrections,
	}
}

// AnalyzePronunciation asks the model for a self-reported score/feedback JSON
// for the given text. A parseable reply is returned verbatim; a non-JSON
// reply degrades to the default score and canned suggestions; a transport
// failure yields score 0 with the error in the feedback. Never errors.
func (g *Gateway) AnalyzePronunciation(ctx context.Context, text, language string) *PronunciationResult {
	tr := otel.Tracer("ai/Gateway")
	ctx, span := tr.Start(ctx, "AnalyzePronunciation",
		trace.WithAttributes(attribute.String("ai.language", language)),
	)
	defer span.End()

	ctx, cancel := context.WithTimeout(ctx, g.timeout())
	defer cancel()

	msgs := []Message{
		{
			Role: roleSystem,
			Content: fmt.Sprintf("You are a pronunciation coach for %s. "+
				"Respond ONLY with JSON of the form "+
				`{"score": <0-100>, "feedback": {"overall": <string>, "suggestions": [<string>], "phonemes": [{"sound": <string>, "score": <0-100>}]}}.`,
				language),
		},
		{
			Role:    roleUser,
			Content: fmt.Sprintf("A learner will say this text aloud: %q. Score how well a %s learner is likely to pronounce it and what to focus on.", text, language),
		},
	}

	raw, err := g.Client.Complete(ctx, msgs, analysisTemperature, analysisMaxTokens)
	if err != nil {
		log.Warn().Err(err).Str("language", language).Msg("pronunciation completion failed")
		return &PronunciationResult{
			Score: 0,
			Feedback: PronunciationFeedback{
				Overall:     "Pronunciation analysis is temporarily unavailable: " + err.Error(),
				Suggestions: []string{},
				Phonemes:    []PhonemeScore{},
			},
		}
	}

	if res, ok := parsePronunciationJSON(raw); ok {
		return res
	}
	return &PronunciationResult{
		Score:    defaultPronunciationScore,
		Feedback: defaultPronunciationFeedback(),
	}
}

// CheckGrammar sends a one-shot grammar-check prompt. Parsing the reply into
// a structured correction list is unimplemented; the method always returns an
// empty slice. TODO: parse the reply once the prompt pins down a stable
// output format.
func (g *Gateway) CheckGrammar(ctx context.Context, text, language string) []GrammarCorrection {
	tr := otel.Tracer("ai/Gateway")
	ctx, span := tr.Start(ctx, "CheckGrammar",
		trace.WithAttributes(attribute.String("ai.language", language)),
	)
	defer span.End()

	ctx, cancel := context.WithTimeout(ctx, g.timeout())
	defer cancel()

	msgs := []Message{
		{
			Role:    roleSystem,
			Content: fmt.Sprintf("You are a grammar checker for %s. Analyze the text and provide corrections with explanations.", language),
		},
		{
			Role:    roleUser,
			Content: fmt.Sprintf("Please check the grammar of this text: %q", text),
		},
	}

	if _, err := g.Client.Complete(ctx, msgs, analysisTemperature, analysisMaxTokens); err != nil {
		log.Warn().Err(err).Str("language", language).Msg("grammar completion failed")
	}
	return []GrammarCorrection{}
}

// buildSystemPrompt concatenates the fixed tutoring boilerplate with the
// interpolated context fields.
func buildSystemPrompt(cc Context) string {
	var b strings.Builder
	fmt.Fprintf(&b, "You are an AI language tutor helping someone learn %s at %s level.", cc.Language, cc.Level)
	if cc.Personality != "" {
		fmt.Fprintf(&b, " Your personality: %s.", cc.Personality)
	}
	if cc.Topic != "" {
		fmt.Fprintf(&b, " Focus the conversation on: %s.", cc.Topic)
	}
	fmt.Fprintf(&b, "\n\nGuidelines:\n"+
		"- Respond naturally and conversationally\n"+
		"- Use appropriate vocabulary for %s level\n"+
		"- Provide gentle corrections when needed\n"+
		"- Ask engaging questions to keep the conversation flowing\n"+
		"- Be encouraging and supportive\n"+
		"- Keep responses concise but informative\n", cc.Level)
	return b.String()
}

// parsePronunciationJSON attempts to read the reply as a result object,
// tolerating prose or code fences around the JSON body.
func parsePronunciationJSON(raw string) (*PronunciationResult, bool) {
	s := strings.TrimSpace(raw)
	if i := strings.Index(s, "{"); i >= 0 {
		if j := strings.LastIndex(s, "}"); j > i {
			s = s[i : j+1]
		}
	}
	var res PronunciationResult
	if err := json.Unmarshal([]byte(s), &res); err != nil {
		return nil, false
	}
	if res.Feedback.Suggestions == nil {
		res.Feedback.Suggestions = []string{}
	}
	if res.Feedback.Phonemes == nil {
		res.Feedback.Phonemes = []PhonemeScore{}
	}
	return &res, true
}

func (g *Gateway) timeout() time.Duration {
	if g.Timeout > 0 {
		return g.Timeout
	}
	return 15 * time.Second
}

func (g *Gateway) temperature() float64 {
	if g.Temperature > 0 {
		return g.Temperature
	}
	return 0.7
}

func (g *Gateway) maxTokens() int {
	if g.MaxTokens > 0 {
		return g.MaxTokens
	}
	return 1000
}

func (g *Gateway) parser() Parser {
	if g.Parser != nil {
		return g.Parser
	}
	return MarkerParser{}
}
