package content

import (
	"encoding/json"
	"strings"

	"github.com/go-playground/validator/v10"

	pkgerrors "github.com/jordanvega/seoforge-backend/pkg/errors"
)

var payloadValidator = validator.New()

// ParseGeneratedPayload turns raw model output into a validated payload.
// Model output is untrusted text: it may be fenced in markdown, wrapped in
// prose, or not JSON at all. Parsing is strict in outcome, never partial:
// either a complete valid payload comes back or an error does.
func ParseGeneratedPayload(raw string) (*GeneratedPayload, error) {
	cleaned := stripCodeFences(strings.TrimSpace(raw))

	candidate, ok := extractJSONObject(cleaned)
	if !ok {
		return nil, pkgerrors.New(pkgerrors.CodeGenerationFailed, "no JSON object found in model output")
	}

	var payload GeneratedPayload
	if err := json.Unmarshal([]byte(candidate), &payload); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeGenerationFailed, err, "model output is not valid JSON")
	}

	if err := payloadValidator.Struct(&payload); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeGenerationFailed, err, "model output is missing required content sections")
	}

	return &payload, nil
}

// stripCodeFences removes a leading ```json or ``` fence and its closing
// fence when present.
func stripCodeFences(text string) string {
	switch {
	case strings.HasPrefix(text, "```json"):
		text = strings.TrimPrefix(text, "```json")
	case strings.HasPrefix(text, "```"):
		text = strings.TrimPrefix(text, "```")
	default:
		return text
	}
	text = strings.TrimSpace(text)
	text = strings.TrimSuffix(text, "```")
	return strings.TrimSpace(text)
}

// extractJSONObject returns the span from the first '{' to the last '}'.
// The greedy span tolerates prose before and after the object but cannot
// separate two adjacent objects; model output carries at most one.
func extractJSONObject(text string) (string, bool) {
	start := strings.Index(text, "{")
	end := strings.LastIndex(text, "}")
	if start == -1 || end == -1 || end < start {
		return "", false
	}
	return text[start : end+1], true
}
