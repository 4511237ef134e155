package service

import "strings"

// sanitizeText replaces every run of characters outside the printable-ASCII
// plus basic-whitespace set with a single space. Embedding and completion
// services misbehave on exotic control characters and PDF encoding artifacts,
// so ingestion normalizes to this subset. The mapping is idempotent.
func sanitizeText(text string) string {
	var b strings.Builder
	b.Grow(len(text))

	inRun := false
	for _, r := range text {
		if isSafeRune(r) {
			b.WriteRune(r)
			inRun = false
			continue
		}
		if !inRun {
			b.WriteByte(' ')
			inRun = true
		}
	}

	return b.String()
}

func isSafeRune(r rune) bool {
	if r >= 0x20 && r <= 0x7E {
		return true
	}
	switch r {
	case '\n', '\r', '\t':
		return true
	default:
		return false
	}
}
