package ai

import (
	"regexp"
	"strings"
)

// GrammarCorrection is one structured correction extracted from a model reply.
type GrammarCorrection struct {
	Original    string  `json:"original"`
	Corrected   string  `json:"corrected"`
	Explanation string  `json:"explanation"`
	Confidence  float64 `json:"confidence"`
}

// Parser extracts learning hints from a free-text model reply. The default is
// MarkerParser; alternative strategies (e.g. structured-output prompting) can
// be swapped in without touching the Gateway.
type Parser interface {
	Parse(raw string) (suggestions []string, corrections []GrammarCorrection)
}

// MarkerParser scans the reply line-by-line for marker substrings. This is a
// best-effort heuristic over free text, not guaranteed structured output:
// lines the model formats differently are silently skipped.
type MarkerParser struct{}

// markerConfidence is attached to every heuristic correction; the extraction
// has no real confidence signal.
const markerConfidence = 0.8

// correctionRE matches "original → corrected (explanation)" with the
// explanation optional. Anchored so the lazy groups capture the full spans.
var correctionRE = regexp.MustCompile(`^(.*?)\s*→\s*(.*?)(?:\s*\((.*?)\))?\s*$`)

// Parse extracts suggestion lines (💡 / "Tip:" / "Suggestion:") and
// correction lines (❌ / ✅ / "Correction:" containing an arrow pattern).
func (MarkerParser) Parse(raw string) ([]string, []GrammarCorrection) {
	suggestions := []string{}
	corrections := []GrammarCorrection{}

	for _, line := range strings.Split(raw, "\n") {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" {
			continue
		}

		if strings.Contains(trimmed, "💡") ||
			strings.Contains(trimmed, "Tip:") ||
			strings.Contains(trimmed, "Suggestion:") {
			suggestions = append(suggestions, trimmed)
		}

		if strings.Contains(trimmed, "❌") ||
			strings.Contains(trimmed, "✅") ||
			strings.Contains(trimmed, "Correction:") {
			m := correctionRE.FindStringSubmatch(trimmed)
			if m == nil || strings.TrimSpace(m[2]) == "" {
				continue
			}
			corrections = append(corrections, GrammarCorrection{
				Original:    strings.TrimSpace(m[1]),
				Corrected:   strings.TrimSpace(m[2]),
				Explanation: strings.TrimSpace(m[3]),
				Confidence:  markerConfidence,
			})
		}
	}
	return suggestions, corrections
}
