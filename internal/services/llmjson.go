package services

import (
	"encoding/json"
	"strings"
)

// Helpers for coercing free-form model output into typed structures. Every
// caller supplies its own fallback, so a malformed response never propagates
// as an error.

// stripCodeFences removes markdown code fences and isolates the first JSON
// object or array found in the text.
func stripCodeFences(text string) string {
	text = strings.ReplaceAll(text, "```json", "")
	text = strings.ReplaceAll(text, "```", "")
	text = strings.TrimSpace(text)

	startObj := strings.Index(text, "{")
	endObj := strings.LastIndex(text, "}")
	startArr := strings.Index(text, "[")
	endArr := strings.LastIndex(text, "]")

	if startObj != -1 && endObj > startObj && (startArr == -1 || startObj < startArr) {
		return text[startObj : endObj+1]
	}
	if startArr != -1 && endArr > startArr {
		return text[startArr : endArr+1]
	}
	return text
}

// decodeStringArray parses a JSON array of strings, trimming entries and
// dropping blanks. ok is false when nothing usable could be decoded.
func decodeStringArray(text string) ([]string, bool) {
	var raw []string
	if err := json.Unmarshal([]byte(stripCodeFences(text)), &raw); err != nil {
		return nil, false
	}

	out := make([]string, 0, len(raw))
	for _, s := range raw {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	return out, len(out) > 0
}

// decodeObject parses a JSON object into target.
func decodeObject(text string, target interface{}) bool {
	return json.Unmarshal([]byte(stripCodeFences(text)), target) == nil
}
