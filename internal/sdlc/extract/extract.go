// Package extract pulls a candidate structured payload out of raw AI
// response text. Models wrap valid JSON in prose, markdown fences, or
// emit a truncated payload followed by a corrected one, so the
// extractor scans for every balanced brace/bracket span and tries
// them largest first.
package extract

import (
	"encoding/json"
	"sort"
	"strings"

	"github.com/smartsdlc/go-sdlc-backend/internal/sdlc/domain"
)

// Payload returns the first span of text that parses as a JSON object
// or array, as a generic tree (map[string]any / []any). It fails with
// domain.ErrNoStructuredPayload when nothing parses.
func Payload(text string) (any, error) {
	cleaned := stripFences(text)

	for _, span := range balancedSpans(cleaned) {
		var node any
		if err := json.Unmarshal([]byte(span), &node); err != nil {
			continue
		}
		switch node.(type) {
		case map[string]any, []any:
			return node, nil
		}
	}
	return nil, domain.ErrNoStructuredPayload
}

// stripFences removes markdown code-fence marker lines (``` or
// ```json) while keeping the fenced content itself.
func stripFences(text string) string {
	if !strings.Contains(text, "```") {
		return text
	}
	lines := strings.Split(text, "\n")
	kept := make([]string, 0, len(lines))
	for _, line := range lines {
		if strings.HasPrefix(strings.TrimSpace(line), "```") {
			continue
		}
		kept = append(kept, line)
	}
	return strings.Join(kept, "\n")
}

// balancedSpans collects the balanced {...} / [...] span starting at
// every opener position in text, ignoring braces and brackets inside
// quoted strings, and returns them longest first. Scanning from every
// opener means a truncated payload cannot swallow a corrected one
// emitted after it.
func balancedSpans(text string) []string {
	runes := []rune(text)

	var spans []string
	for i, r := range runes {
		if r != '{' && r != '[' {
			continue
		}
		if span, ok := scanBalanced(runes, i); ok {
			spans = append(spans, span)
		}
	}

	sort.SliceStable(spans, func(i, j int) bool {
		return len(spans[i]) > len(spans[j])
	})
	return spans
}

// scanBalanced walks forward from the opener at start and returns the
// span up to its matching closer, or false when the span never closes.
func scanBalanced(runes []rune, start int) (string, bool) {
	depth := 0
	inString := false
	escaped := false

	for i := start; i < len(runes); i++ {
		r := runes[i]
		if inString {
			switch {
			case escaped:
				escaped = false
			case r == '\\':
				escaped = true
			case r == '"':
				inString = false
			}
			continue
		}

		switch r {
		case '"':
			inString = true
		case '{', '[':
			depth++
		case '}', ']':
			depth--
			if depth == 0 {
				return string(runes[start : i+1]), true
			}
			if depth < 0 {
				return "", false
			}
		}
	}
	return "", false
}
