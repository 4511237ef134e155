package service

import (
	"encoding/json"
	"regexp"
	"strings"

	"github.com/cartograph-ai/cartograph/internal/domain"
)

var codeFenceRe = regexp.MustCompile("(?i)```[a-z]*")

// stripCodeFences removes triple-backtick fence markers, with or without a
// language tag, and trims surrounding whitespace. Models wrap structured
// output in fences despite being told not to.
func stripCodeFences(raw string) string {
	return strings.TrimSpace(codeFenceRe.ReplaceAllString(raw, ""))
}

// parsePlainText resolves a plain-text completion: fences stripped, remainder
// returned verbatim.
func parsePlainText(raw string) string {
	return stripCodeFences(raw)
}

// parseStructured parses a model completion into v. On a strict parse failure
// it attempts exactly one repair, appending a single closing brace when the
// text does not already end with one, then retries once. An irrecoverable
// completion resolves to MalformedOutputError carrying the raw text; this
// function never panics past its boundary.
func parseStructured(raw string, v any) error {
	clean := stripCodeFences(raw)

	err := json.Unmarshal([]byte(clean), v)
	if err == nil {
		return nil
	}

	if !strings.HasSuffix(clean, "}") {
		repaired := clean + "}"
		if retryErr := json.Unmarshal([]byte(repaired), v); retryErr == nil {
			return nil
		}
	}

	return domain.MalformedOutputError(raw, err)
}
