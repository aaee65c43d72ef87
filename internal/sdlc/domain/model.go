package domain

import "strings"

// Methodology is the closed set of supported SDLC methodologies.
// Unknown values are preserved so the template layer can decide how
// to handle them (it falls back to a generic phase table).
type Methodology string

const (
	MethodologyAgile     Methodology = "Agile"
	MethodologyWaterfall Methodology = "Waterfall"
	MethodologyHybrid    Methodology = "Hybrid"
	MethodologyDevOps    Methodology = "DevOps"
)

// ParseMethodology normalizes the free-form labels the form layer sends
// (e.g. "DevOps-focused", "agile") into a canonical Methodology.
func ParseMethodology(s string) Methodology {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "agile":
		return MethodologyAgile
	case "waterfall":
		return MethodologyWaterfall
	case "hybrid":
		return MethodologyHybrid
	case "devops", "devops-focused":
		return MethodologyDevOps
	}
	return Methodology(strings.TrimSpace(s))
}

// Source tags where a Breakdown came from.
type Source string

const (
	SourceAIGenerated Source = "ai_generated"
	SourceFallback    Source = "fallback"
)

// Phase is one ordered SDLC stage of a Breakdown.
type Phase struct {
	Name          string   `json:"name"`
	Order         int      `json:"order"`
	DurationUnits int      `json:"duration_units"`
	Percentage    float64  `json:"percentage"`
	Description   string   `json:"description,omitempty"`
	Deliverables  []string `json:"deliverables"`
	Activities    []string `json:"activities"`
	TeamFocus     string   `json:"team_focus,omitempty"`
}

// Breakdown is the canonical, validated SDLC schedule for one project
// request. It is constructed once by the reconciler (or the fallback
// generator, which feeds the same reconciler) and never mutated.
type Breakdown struct {
	ProjectName        string      `json:"project_name"`
	TotalDurationUnits int         `json:"total_duration_units"`
	DurationUnitLabel  string      `json:"duration_unit_label"`
	Methodology        Methodology `json:"methodology"`
	Source             Source      `json:"source"`
	Phases             []Phase     `json:"phases"`
}

// Request is the descriptor the form layer supplies with every
// generation call.
type Request struct {
	ProjectName        string      `json:"project_name"`
	Description        string      `json:"description"`
	ProjectType        string      `json:"project_type"`
	TeamSize           string      `json:"team_size"`
	Methodology        Methodology `json:"methodology"`
	TotalDurationUnits int         `json:"total_duration_units"`
	DurationUnitLabel  string      `json:"duration_unit_label"`
}

// Validate checks the caller contract for a request descriptor.
// The core itself never sees an invalid total; this is the boundary
// that rejects it.
func (r Request) Validate() error {
	if strings.TrimSpace(r.ProjectName) == "" {
		return ErrMissingProjectName
	}
	if r.TotalDurationUnits <= 0 {
		return ErrInvalidDuration
	}
	return nil
}

// DraftPhase is one raw phase record that survived schema validation
// (or came out of a fallback template). Duration and Percentage are
// pointers because absence is meaningful: a record with neither gets
// an equal share downstream.
type DraftPhase struct {
	Name         string
	Description  string
	TeamFocus    string
	Duration     *float64
	Percentage   *float64
	Deliverables []string
	Activities   []string
}

// Draft is the validated-but-not-yet-reconciled form of a breakdown.
type Draft struct {
	ProjectName string
	Methodology Methodology
	Phases      []DraftPhase
	Warnings    []string
}
