package validate

import "strings"

// Ranked key-name synonyms for the loosely-typed payloads models emit.
// Checked in order; first hit wins. Matching is case-insensitive and
// ignores underscores, hyphens and spaces, so "Key Deliverables",
// "key_deliverables" and "keyDeliverables" all land on the same slot.
var (
	phaseListKeys    = []string{"phases", "sdlc_phases", "stages"}
	nameKeys         = []string{"name", "phase_name", "phase", "title"}
	durationKeys     = []string{"duration_weeks", "duration_units", "duration", "weeks"}
	percentageKeys   = []string{"percentage", "percent", "pct"}
	deliverableKeys  = []string{"deliverables", "key_deliverables", "outputs", "artifacts"}
	activityKeys     = []string{"activities", "tasks", "main_activities", "actions"}
	descriptionKeys  = []string{"description", "summary", "details"}
	teamFocusKeys    = []string{"team_focus", "team", "owner"}
	summaryBlockKeys = []string{"project_summary", "summary", "project"}
)

func normalizeKey(k string) string {
	k = strings.ToLower(k)
	return strings.Map(func(r rune) rune {
		switch r {
		case '_', '-', ' ':
			return -1
		}
		return r
	}, k)
}

// lookup finds the first synonym present in record and returns its
// value.
func lookup(record map[string]any, synonyms []string) (any, bool) {
	normalized := make(map[string]any, len(record))
	for k, v := range record {
		if _, seen := normalized[normalizeKey(k)]; !seen {
			normalized[normalizeKey(k)] = v
		}
	}
	for _, syn := range synonyms {
		if v, ok := normalized[normalizeKey(syn)]; ok {
			return v, true
		}
	}
	return nil, false
}
