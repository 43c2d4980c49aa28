// Package plan turns raw model output into a well-formed action plan,
// degrading safely on malformed input.
package plan

import (
	"encoding/json"
	"strings"

	"github.com/Malekse21/Senior-Voice/internal/model"
)

const (
	fallbackUnderstood = "Je n'ai pas pu analyser votre demande."
	fallbackResponse   = "Excusez-moi, pouvez-vous répéter ?"
	defaultUnderstood  = "D'accord."
	defaultResponse    = "C'est fait."
)

// Fallback is the safe plan returned when the reply cannot be parsed:
// nothing to execute, no clarification, zero confidence.
func Fallback() model.Plan {
	return model.Plan{
		Understood:         fallbackUnderstood,
		ResponseVoice:      fallbackResponse,
		ToolsToCall:        []model.ToolCall{},
		NeedsClarification: false,
		Confidence:         0,
	}
}

// IsFallback reports whether p is the safe fallback plan.
func IsFallback(p model.Plan) bool {
	return p.Understood == fallbackUnderstood && p.Confidence == 0 && len(p.ToolsToCall) == 0
}

// Parse extracts the plan JSON from a model reply that may be wrapped in
// code fences or surrounded by prose, then applies field-by-field
// defaulting: a wrong-typed field falls back to its default without
// discarding the rest of the plan. It never fails.
func Parse(raw string) model.Plan {
	if raw == "" {
		return Fallback()
	}

	clean := strings.ReplaceAll(raw, "```json", "")
	clean = strings.ReplaceAll(clean, "```", "")
	clean = strings.TrimSpace(clean)

	// Tolerate leading/trailing commentary: parse only the outermost
	// brace window.
	first := strings.Index(clean, "{")
	last := strings.LastIndex(clean, "}")
	if first != -1 && last != -1 && last > first {
		clean = clean[first : last+1]
	}

	var fields map[string]json.RawMessage
	if err := json.Unmarshal([]byte(clean), &fields); err != nil || fields == nil {
		return Fallback()
	}

	p := model.Plan{ToolsToCall: []model.ToolCall{}}

	understood := stringField(fields, "understood")
	if understood == "" {
		understood = defaultUnderstood
	}
	p.Understood = understood

	p.ResponseVoice = stringField(fields, "response_voice")
	if p.ResponseVoice == "" {
		p.ResponseVoice = stringField(fields, "understood")
	}
	if p.ResponseVoice == "" {
		p.ResponseVoice = defaultResponse
	}

	// tools_to_call must be a list; anything else defaults to empty.
	if raw, ok := fields["tools_to_call"]; ok {
		var calls []model.ToolCall
		if err := json.Unmarshal(raw, &calls); err == nil && calls != nil {
			p.ToolsToCall = calls
		}
	}

	// confidence must be numeric or defaults to 0.
	if raw, ok := fields["confidence"]; ok {
		var c float64
		if err := json.Unmarshal(raw, &c); err == nil {
			p.Confidence = c
		}
	}

	if raw, ok := fields["needs_clarification"]; ok {
		var b bool
		if err := json.Unmarshal(raw, &b); err == nil {
			p.NeedsClarification = b
		}
	}
	if raw, ok := fields["clarification_question"]; ok {
		var q string
		if err := json.Unmarshal(raw, &q); err == nil {
			p.ClarificationQuestion = q
		}
	}

	return p
}

func stringField(fields map[string]json.RawMessage, key string) string {
	raw, ok := fields[key]
	if !ok {
		return ""
	}
	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		return ""
	}
	return s
}
