// Package extract recovers structured JSON from free-form model output.
// The oracle is instructed to return bare JSON but not guaranteed to: it
// may wrap the object in prose or markdown fencing. Decode tries a short
// ordered list of salvage strategies and reports failure as an empty map
// so callers can skip the item without error plumbing.
package extract

import (
	"encoding/json"
	"regexp"
	"strings"

	"go.uber.org/zap"
)

// fenceRe matches a markdown code fence, optionally tagged json, and
// captures its contents.
var fenceRe = regexp.MustCompile("(?s)```(?:json)?\\s*\\n(.*?)\\n```")

// previewLen caps the offending-text preview logged on total parse failure.
const previewLen = 150

// Decode parses model output into a generic JSON object. Attempts, first
// success wins:
//
//  1. strict parse of the whole text
//  2. strict parse of each fenced code block's contents
//  3. strict parse of the greedy first-'{' to last-'}' span
//
// On total failure it logs a truncated preview and returns an empty map.
// An empty result means "extraction failed"; callers must not treat it as
// a record.
func Decode(text string) map[string]any {
	if m, ok := tryParse(text); ok {
		return m
	}

	for _, match := range fenceRe.FindAllStringSubmatch(text, -1) {
		if m, ok := tryParse(match[1]); ok {
			return m
		}
	}

	start := strings.Index(text, "{")
	end := strings.LastIndex(text, "}")
	if start >= 0 && end > start {
		if m, ok := tryParse(text[start : end+1]); ok {
			return m
		}
	}

	zap.L().Warn("extract: no parseable JSON in response",
		zap.String("preview", preview(text)),
	)
	return map[string]any{}
}

func tryParse(text string) (map[string]any, bool) {
	var m map[string]any
	if err := json.Unmarshal([]byte(strings.TrimSpace(text)), &m); err != nil {
		return nil, false
	}
	if m == nil {
		// "null" parses but carries nothing.
		return nil, false
	}
	return m, true
}

func preview(text string) string {
	text = strings.TrimSpace(text)
	if len(text) > previewLen {
		return text[:previewLen] + "..."
	}
	return text
}
