// Package validate checks an extracted payload tree against the
// breakdown shape rules and turns it into a strictly typed draft.
// Everything downstream of this package works with trusted values.
package validate

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/smartsdlc/go-sdlc-backend/internal/sdlc/domain"
)

// Draft validates payload and returns a domain.Draft with at least one
// usable phase, or a *domain.ValidationError describing why the
// payload is unusable. Records without a name are dropped with a
// warning rather than failing the batch.
func Draft(payload any) (*domain.Draft, error) {
	records, err := phaseRecords(payload)
	if err != nil {
		return nil, err
	}

	draft := &domain.Draft{}
	if root, ok := payload.(map[string]any); ok {
		liftSummary(root, draft)
	}

	for i, rec := range records {
		record, ok := rec.(map[string]any)
		if !ok {
			draft.Warnings = append(draft.Warnings, fmt.Sprintf("phase %d is not an object, dropped", i))
			continue
		}

		name := stringValue(record, nameKeys)
		if strings.TrimSpace(name) == "" {
			draft.Warnings = append(draft.Warnings, fmt.Sprintf("phase %d has no name, dropped", i))
			continue
		}

		phase := domain.DraftPhase{
			Name:         strings.TrimSpace(name),
			Description:  stringValue(record, descriptionKeys),
			TeamFocus:    stringValue(record, teamFocusKeys),
			Duration:     numberValue(record, durationKeys),
			Percentage:   numberValue(record, percentageKeys),
			Deliverables: stringListValue(record, deliverableKeys),
			Activities:   stringListValue(record, activityKeys),
		}
		draft.Phases = append(draft.Phases, phase)
	}

	if len(draft.Phases) == 0 {
		return nil, &domain.ValidationError{Reason: "no usable phases in payload"}
	}
	return draft, nil
}

// phaseRecords locates the phases list. A bare top-level array is
// accepted as the list itself.
func phaseRecords(payload any) ([]any, error) {
	switch node := payload.(type) {
	case []any:
		if len(node) == 0 {
			return nil, &domain.ValidationError{Reason: "phases list is empty"}
		}
		return node, nil
	case map[string]any:
		raw, ok := lookup(node, phaseListKeys)
		if !ok {
			return nil, &domain.ValidationError{Reason: "payload has no phases list"}
		}
		list, ok := raw.([]any)
		if !ok {
			return nil, &domain.ValidationError{Reason: "phases is not a list"}
		}
		if len(list) == 0 {
			return nil, &domain.ValidationError{Reason: "phases list is empty"}
		}
		return list, nil
	}
	return nil, &domain.ValidationError{Reason: "payload is not an object or list"}
}

// liftSummary copies informational project metadata from a
// project_summary block when the model included one.
func liftSummary(root map[string]any, draft *domain.Draft) {
	raw, ok := lookup(root, summaryBlockKeys)
	if !ok {
		return
	}
	block, ok := raw.(map[string]any)
	if !ok {
		return
	}
	if name := stringValue(block, nameKeys); name != "" {
		draft.ProjectName = strings.TrimSpace(name)
	}
	if m := stringValue(block, []string{"methodology"}); m != "" {
		draft.Methodology = domain.ParseMethodology(m)
	}
}

func stringValue(record map[string]any, synonyms []string) string {
	raw, ok := lookup(record, synonyms)
	if !ok {
		return ""
	}
	s, ok := raw.(string)
	if !ok {
		return ""
	}
	return s
}

// numberValue accepts JSON numbers and numeric strings ("4 weeks"
// counts as 4). Returns nil when the field is absent or unusable.
func numberValue(record map[string]any, synonyms []string) *float64 {
	raw, ok := lookup(record, synonyms)
	if !ok {
		return nil
	}
	switch v := raw.(type) {
	case float64:
		return &v
	case string:
		if n, ok := leadingNumber(v); ok {
			return &n
		}
	}
	return nil
}

// leadingNumber parses the leading numeric token of a string, e.g.
// "4 weeks" or "12.5%".
func leadingNumber(s string) (float64, bool) {
	s = strings.TrimSpace(s)
	end := 0
	for end < len(s) {
		c := s[end]
		if (c >= '0' && c <= '9') || c == '.' || (end == 0 && (c == '-' || c == '+')) {
			end++
			continue
		}
		break
	}
	if end == 0 {
		return 0, false
	}
	n, err := strconv.ParseFloat(s[:end], 64)
	if err != nil {
		return 0, false
	}
	return n, true
}

func stringListValue(record map[string]any, synonyms []string) []string {
	out := []string{}
	raw, ok := lookup(record, synonyms)
	if !ok {
		return out
	}
	list, ok := raw.([]any)
	if !ok {
		// A single string still counts as a one-item list.
		if s, ok := raw.(string); ok && strings.TrimSpace(s) != "" {
			return append(out, strings.TrimSpace(s))
		}
		return out
	}
	for _, item := range list {
		if s, ok := item.(string); ok && strings.TrimSpace(s) != "" {
			out = append(out, strings.TrimSpace(s))
		}
	}
	return out
}
