package llm

import (
	"encoding/json"
	"fmt"
	"strings"

	"invoiceagent/internal/domain"
)

// DecodeObject decodes a JSON object out of a model reply. The reply is
// parsed directly first; if that fails the object is recovered from a fenced
// code block, preferring a block tagged as json over the first untagged one;
// as a last resort the text between the outermost braces is parsed.
func DecodeObject(raw string, v interface{}) error {
	text := strings.TrimSpace(raw)

	if err := json.Unmarshal([]byte(text), v); err == nil {
		return nil
	}

	if fenced, ok := extractFencedBlock(text); ok {
		if err := json.Unmarshal([]byte(fenced), v); err == nil {
			return nil
		}
	}

	if braced, ok := extractBracedObject(text); ok {
		if err := json.Unmarshal([]byte(braced), v); err == nil {
			return nil
		}
	}

	return fmt.Errorf("%w: no JSON object recoverable from reply", domain.ErrUnparsableResponse)
}

// extractFencedBlock returns the contents of the first markdown code fence in
// text. A fence explicitly tagged ```json wins over an untagged one.
func extractFencedBlock(text string) (string, bool) {
	if idx := strings.Index(text, "```json"); idx >= 0 {
		rest := text[idx+len("```json"):]
		if end := strings.Index(rest, "```"); end >= 0 {
			return strings.TrimSpace(rest[:end]), true
		}
	}
	if idx := strings.Index(text, "```"); idx >= 0 {
		rest := text[idx+len("```"):]
		// Drop a language tag on the opening fence line, if any.
		if nl := strings.IndexByte(rest, '\n'); nl >= 0 && !strings.ContainsAny(rest[:nl], "{[") {
			rest = rest[nl+1:]
		}
		if end := strings.Index(rest, "```"); end >= 0 {
			return strings.TrimSpace(rest[:end]), true
		}
	}
	return "", false
}

// extractBracedObject returns the text spanning the first opening brace to the
// last closing brace. Recovers objects the model wrapped in prose without a
// code fence.
func extractBracedObject(text string) (string, bool) {
	start := strings.IndexByte(text, '{')
	end := strings.LastIndexByte(text, '}')
	if start < 0 || end <= start {
		return "", false
	}
	return text[start : end+1], true
}
